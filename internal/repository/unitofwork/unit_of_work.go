package unitofwork

import (
	"context"

	"ai-boardroom-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	UserRepository() contract.UserRepository
	BoardSessionRepository() contract.BoardSessionRepository
	BoardMessageRepository() contract.BoardMessageRepository
	ProblemRepository() contract.ProblemRepository
}
