package contract

import (
	"context"

	"ai-boardroom-be/internal/entity"
	"ai-boardroom-be/internal/repository/specification"

	"github.com/google/uuid"
)

type BoardSessionRepository interface {
	Create(ctx context.Context, session *entity.BoardSession) error
	Update(ctx context.Context, session *entity.BoardSession) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.BoardSession, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.BoardSession, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
