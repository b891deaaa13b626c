package service

import (
	"context"
	"errors"
	"time"

	"ai-boardroom-be/internal/entity"
	"ai-boardroom-be/internal/repository/contract"
	"ai-boardroom-be/internal/repository/specification"
	"ai-boardroom-be/internal/repository/unitofwork"
	"ai-boardroom-be/pkg/llm"

	"github.com/google/uuid"
)

// In-memory repository fakes for service tests. Only the specs the services
// actually use (ByID, UserOwnedBy, ByBoardSessionID, ByStatus) are
// interpreted; ordering specs are ignored and messages keep insertion order.

func problemMatches(p *entity.Problem, specs []specification.Specification) bool {
	for _, s := range specs {
		switch spec := s.(type) {
		case specification.ByID:
			if p.Id != spec.ID {
				return false
			}
		case specification.UserOwnedBy:
			if p.UserId != spec.UserID {
				return false
			}
		case specification.ByStatus:
			if p.Status != spec.Status {
				return false
			}
		}
	}
	return true
}

type fakeProblemRepo struct {
	items map[uuid.UUID]*entity.Problem
}

func newFakeProblemRepo() *fakeProblemRepo {
	return &fakeProblemRepo{items: make(map[uuid.UUID]*entity.Problem)}
}

func (r *fakeProblemRepo) Create(_ context.Context, p *entity.Problem) error {
	r.items[p.Id] = p
	return nil
}

func (r *fakeProblemRepo) Update(_ context.Context, p *entity.Problem) error {
	r.items[p.Id] = p
	return nil
}

func (r *fakeProblemRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.items, id)
	return nil
}

func (r *fakeProblemRepo) FindOne(_ context.Context, specs ...specification.Specification) (*entity.Problem, error) {
	for _, p := range r.items {
		if problemMatches(p, specs) {
			return p, nil
		}
	}
	return nil, nil
}

func (r *fakeProblemRepo) FindAll(_ context.Context, specs ...specification.Specification) ([]*entity.Problem, error) {
	var out []*entity.Problem
	for _, p := range r.items {
		if problemMatches(p, specs) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *fakeProblemRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	found, err := r.FindAll(ctx, specs...)
	return int64(len(found)), err
}

type fakeUserRepo struct {
	users map[uuid.UUID]*entity.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uuid.UUID]*entity.User)}
}

func (r *fakeUserRepo) Create(_ context.Context, u *entity.User) error {
	r.users[u.Id] = u
	return nil
}

func (r *fakeUserRepo) Update(_ context.Context, u *entity.User) error {
	r.users[u.Id] = u
	return nil
}

func (r *fakeUserRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.users, id)
	return nil
}

func (r *fakeUserRepo) FindOne(_ context.Context, specs ...specification.Specification) (*entity.User, error) {
	for _, u := range r.users {
		match := true
		for _, s := range specs {
			if spec, ok := s.(specification.ByID); ok && u.Id != spec.ID {
				match = false
			}
		}
		if match {
			return u, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) FindAll(context.Context, ...specification.Specification) ([]*entity.User, error) {
	return nil, nil
}

func (r *fakeUserRepo) Count(context.Context, ...specification.Specification) (int64, error) {
	return int64(len(r.users)), nil
}

func (r *fakeUserRepo) CreatePasswordResetToken(context.Context, *entity.PasswordResetToken) error {
	return nil
}

func (r *fakeUserRepo) FindPasswordResetToken(context.Context, ...specification.Specification) (*entity.PasswordResetToken, error) {
	return nil, nil
}

func (r *fakeUserRepo) MarkTokenUsed(context.Context, uuid.UUID) error { return nil }

func (r *fakeUserRepo) CreateEmailVerificationToken(context.Context, *entity.EmailVerificationToken) error {
	return nil
}

func (r *fakeUserRepo) FindEmailVerificationToken(context.Context, ...specification.Specification) (*entity.EmailVerificationToken, error) {
	return nil, nil
}

func (r *fakeUserRepo) DeleteEmailVerificationToken(context.Context, uuid.UUID) error { return nil }

func (r *fakeUserRepo) CreateRefreshToken(context.Context, *entity.UserRefreshToken) error {
	return nil
}

func (r *fakeUserRepo) RevokeRefreshToken(context.Context, string) error { return nil }

func (r *fakeUserRepo) ActivateUser(context.Context, uuid.UUID) error { return nil }

func (r *fakeUserRepo) UpdatePassword(context.Context, uuid.UUID, string) error { return nil }

func (r *fakeUserRepo) IncrementBoardUsage(_ context.Context, userId uuid.UUID) error {
	u, ok := r.users[userId]
	if !ok {
		return errors.New("user not found")
	}
	u.BoardDailyUsage++
	return nil
}

func (r *fakeUserRepo) ResetBoardUsage(_ context.Context, userId uuid.UUID) error {
	u, ok := r.users[userId]
	if !ok {
		return errors.New("user not found")
	}
	u.BoardDailyUsage = 0
	u.BoardDailyUsageLastReset = time.Now()
	return nil
}

type fakeSessionRepo struct {
	sessions map[uuid.UUID]*entity.BoardSession
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{sessions: make(map[uuid.UUID]*entity.BoardSession)}
}

func (r *fakeSessionRepo) matches(s *entity.BoardSession, specs []specification.Specification) bool {
	for _, sp := range specs {
		switch spec := sp.(type) {
		case specification.ByID:
			if s.Id != spec.ID {
				return false
			}
		case specification.UserOwnedBy:
			if s.UserId != spec.UserID {
				return false
			}
		}
	}
	return true
}

func (r *fakeSessionRepo) Create(_ context.Context, s *entity.BoardSession) error {
	r.sessions[s.Id] = s
	return nil
}

func (r *fakeSessionRepo) Update(_ context.Context, s *entity.BoardSession) error {
	r.sessions[s.Id] = s
	return nil
}

func (r *fakeSessionRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.sessions, id)
	return nil
}

func (r *fakeSessionRepo) FindOne(_ context.Context, specs ...specification.Specification) (*entity.BoardSession, error) {
	for _, s := range r.sessions {
		if r.matches(s, specs) {
			return s, nil
		}
	}
	return nil, nil
}

func (r *fakeSessionRepo) FindAll(_ context.Context, specs ...specification.Specification) ([]*entity.BoardSession, error) {
	var out []*entity.BoardSession
	for _, s := range r.sessions {
		if r.matches(s, specs) {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *fakeSessionRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	found, err := r.FindAll(ctx, specs...)
	return int64(len(found)), err
}

type fakeMessageRepo struct {
	messages []*entity.BoardMessage
}

func (r *fakeMessageRepo) Create(_ context.Context, m *entity.BoardMessage) error {
	r.messages = append(r.messages, m)
	return nil
}

func (r *fakeMessageRepo) CreateBulk(_ context.Context, msgs []*entity.BoardMessage) error {
	r.messages = append(r.messages, msgs...)
	return nil
}

func (r *fakeMessageRepo) FindAll(_ context.Context, specs ...specification.Specification) ([]*entity.BoardMessage, error) {
	var out []*entity.BoardMessage
	for _, m := range r.messages {
		keep := true
		for _, s := range specs {
			if spec, ok := s.(specification.ByBoardSessionID); ok && m.BoardSessionId != spec.BoardSessionID {
				keep = false
			}
		}
		if keep {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *fakeMessageRepo) DeleteByBoardSessionId(_ context.Context, sessionId uuid.UUID) error {
	var kept []*entity.BoardMessage
	for _, m := range r.messages {
		if m.BoardSessionId != sessionId {
			kept = append(kept, m)
		}
	}
	r.messages = kept
	return nil
}

type fakeUnitOfWork struct {
	users    *fakeUserRepo
	sessions *fakeSessionRepo
	messages *fakeMessageRepo
	problems *fakeProblemRepo
}

func newFakeUnitOfWork() *fakeUnitOfWork {
	return &fakeUnitOfWork{
		users:    newFakeUserRepo(),
		sessions: newFakeSessionRepo(),
		messages: &fakeMessageRepo{},
		problems: newFakeProblemRepo(),
	}
}

func (u *fakeUnitOfWork) Begin(context.Context) error { return nil }
func (u *fakeUnitOfWork) Commit() error               { return nil }
func (u *fakeUnitOfWork) Rollback() error             { return nil }

func (u *fakeUnitOfWork) UserRepository() contract.UserRepository                 { return u.users }
func (u *fakeUnitOfWork) BoardSessionRepository() contract.BoardSessionRepository { return u.sessions }
func (u *fakeUnitOfWork) BoardMessageRepository() contract.BoardMessageRepository { return u.messages }
func (u *fakeUnitOfWork) ProblemRepository() contract.ProblemRepository           { return u.problems }

type fakeUowFactory struct {
	uow *fakeUnitOfWork
}

func (f *fakeUowFactory) NewUnitOfWork(context.Context) unitofwork.UnitOfWork { return f.uow }

// fakeLLM scripts both provider methods: Generate serves the gate evaluator,
// Chat serves the persona response generator.
type fakeLLM struct {
	generateReply string
	generateErr   error
	chatReply     string
	chatErr       error

	generateCalls int
	chatCalls     int
}

func (f *fakeLLM) Generate(_ context.Context, _ string, _ ...llm.Option) (string, error) {
	f.generateCalls++
	return f.generateReply, f.generateErr
}

func (f *fakeLLM) Chat(_ context.Context, _ []llm.Message, _ ...llm.Option) (string, error) {
	f.chatCalls++
	return f.chatReply, f.chatErr
}
