package service

import (
	"context"
	"fmt"
	"time"

	"ai-boardroom-be/internal/constant"
	"ai-boardroom-be/internal/dto"
	"ai-boardroom-be/internal/entity"
	"ai-boardroom-be/internal/repository/specification"
	"ai-boardroom-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

type IProblemService interface {
	CreateProblem(ctx context.Context, userId uuid.UUID, req *dto.CreateProblemRequest) (*dto.ProblemResponse, error)
	GetAllProblems(ctx context.Context, userId uuid.UUID) ([]*dto.ProblemResponse, error)
	UpdateProblem(ctx context.Context, userId uuid.UUID, req *dto.UpdateProblemRequest) (*dto.ProblemResponse, error)
	DeleteProblem(ctx context.Context, userId uuid.UUID, problemId uuid.UUID) error
}

type problemService struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewProblemService(uowFactory unitofwork.RepositoryFactory) IProblemService {
	return &problemService{uowFactory: uowFactory}
}

func (s *problemService) CreateProblem(ctx context.Context, userId uuid.UUID, req *dto.CreateProblemRequest) (*dto.ProblemResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	problem := &entity.Problem{
		Id:        uuid.New(),
		UserId:    userId,
		Title:     req.Title,
		Detail:    req.Detail,
		Status:    constant.ProblemStatusOpen,
		CreatedAt: time.Now(),
	}

	if err := uow.ProblemRepository().Create(ctx, problem); err != nil {
		return nil, err
	}

	return problemResponse(problem), nil
}

func (s *problemService) GetAllProblems(ctx context.Context, userId uuid.UUID) ([]*dto.ProblemResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	problems, err := uow.ProblemRepository().FindAll(ctx,
		specification.UserOwnedBy{UserID: userId},
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}

	res := make([]*dto.ProblemResponse, 0, len(problems))
	for _, p := range problems {
		res = append(res, problemResponse(p))
	}
	return res, nil
}

func (s *problemService) UpdateProblem(ctx context.Context, userId uuid.UUID, req *dto.UpdateProblemRequest) (*dto.ProblemResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	problem, err := uow.ProblemRepository().FindOne(ctx,
		specification.ByID{ID: req.Id},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	if problem == nil {
		return nil, fmt.Errorf("problem not found or access denied")
	}

	problem.Title = req.Title
	problem.Detail = req.Detail
	if req.Status != "" {
		problem.Status = req.Status
	}
	now := time.Now()
	problem.UpdatedAt = &now

	if err := uow.ProblemRepository().Update(ctx, problem); err != nil {
		return nil, err
	}

	return problemResponse(problem), nil
}

func (s *problemService) DeleteProblem(ctx context.Context, userId uuid.UUID, problemId uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	problem, err := uow.ProblemRepository().FindOne(ctx,
		specification.ByID{ID: problemId},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return err
	}
	if problem == nil {
		return fmt.Errorf("problem not found or access denied")
	}

	return uow.ProblemRepository().Delete(ctx, problemId)
}

func problemResponse(p *entity.Problem) *dto.ProblemResponse {
	return &dto.ProblemResponse{
		Id:        p.Id,
		Title:     p.Title,
		Detail:    p.Detail,
		Status:    p.Status,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}
