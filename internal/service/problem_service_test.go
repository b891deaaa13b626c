package service

import (
	"context"
	"testing"

	"ai-boardroom-be/internal/constant"
	"ai-boardroom-be/internal/dto"
	"ai-boardroom-be/internal/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func newProblemFixture() (IProblemService, *fakeProblemRepo) {
	uow := newFakeUnitOfWork()
	svc := NewProblemService(&fakeUowFactory{uow: uow})
	return svc, uow.problems
}

func TestCreateProblemDefaultsToOpen(t *testing.T) {
	svc, repo := newProblemFixture()
	userId := uuid.New()

	res, err := svc.CreateProblem(context.Background(), userId, &dto.CreateProblemRequest{
		Title:  "Shipping the side project",
		Detail: "Landing page stuck at 'almost done' for six weeks.",
	})

	assert.NoError(t, err)
	assert.Equal(t, constant.ProblemStatusOpen, res.Status)
	assert.Len(t, repo.items, 1)
	assert.Equal(t, userId, repo.items[res.Id].UserId)
}

func TestGetAllProblemsScopedToOwner(t *testing.T) {
	svc, repo := newProblemFixture()
	owner := uuid.New()
	stranger := uuid.New()

	mine := uuid.New()
	repo.items[mine] = &entity.Problem{Id: mine, UserId: owner, Title: "Mine", Status: "open"}
	other := uuid.New()
	repo.items[other] = &entity.Problem{Id: other, UserId: stranger, Title: "Not mine", Status: "open"}

	res, err := svc.GetAllProblems(context.Background(), owner)
	assert.NoError(t, err)
	assert.Len(t, res, 1)
	assert.Equal(t, "Mine", res[0].Title)
}

func TestUpdateProblemRejectsForeignOwner(t *testing.T) {
	svc, repo := newProblemFixture()
	owner := uuid.New()
	problemId := uuid.New()
	repo.items[problemId] = &entity.Problem{Id: problemId, UserId: owner, Title: "Mine", Status: "open"}

	_, err := svc.UpdateProblem(context.Background(), uuid.New(), &dto.UpdateProblemRequest{
		Id:    problemId,
		Title: "Hijacked",
	})
	assert.Error(t, err)
	assert.Equal(t, "Mine", repo.items[problemId].Title)
}

func TestUpdateProblemKeepsStatusWhenOmitted(t *testing.T) {
	svc, repo := newProblemFixture()
	owner := uuid.New()
	problemId := uuid.New()
	repo.items[problemId] = &entity.Problem{Id: problemId, UserId: owner, Title: "Mine", Status: "resolved"}

	res, err := svc.UpdateProblem(context.Background(), owner, &dto.UpdateProblemRequest{
		Id:     problemId,
		Title:  "Mine, retitled",
		Detail: "more detail",
	})
	assert.NoError(t, err)
	assert.Equal(t, "resolved", res.Status, "empty status in the request must not overwrite")
	assert.Equal(t, "Mine, retitled", res.Title)
	assert.NotNil(t, res.UpdatedAt)
}

func TestUpdateProblemChangesStatus(t *testing.T) {
	svc, repo := newProblemFixture()
	owner := uuid.New()
	problemId := uuid.New()
	repo.items[problemId] = &entity.Problem{Id: problemId, UserId: owner, Title: "Mine", Status: "open"}

	res, err := svc.UpdateProblem(context.Background(), owner, &dto.UpdateProblemRequest{
		Id:     problemId,
		Title:  "Mine",
		Status: constant.ProblemStatusResolved,
	})
	assert.NoError(t, err)
	assert.Equal(t, "resolved", res.Status)
}

func TestDeleteProblemOwnershipCheck(t *testing.T) {
	svc, repo := newProblemFixture()
	owner := uuid.New()
	problemId := uuid.New()
	repo.items[problemId] = &entity.Problem{Id: problemId, UserId: owner, Title: "Mine", Status: "open"}

	err := svc.DeleteProblem(context.Background(), uuid.New(), problemId)
	assert.Error(t, err)
	assert.Len(t, repo.items, 1)

	err = svc.DeleteProblem(context.Background(), owner, problemId)
	assert.NoError(t, err)
	assert.Empty(t, repo.items)
}
