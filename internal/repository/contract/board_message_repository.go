package contract

import (
	"context"

	"ai-boardroom-be/internal/entity"
	"ai-boardroom-be/internal/repository/specification"

	"github.com/google/uuid"
)

type BoardMessageRepository interface {
	Create(ctx context.Context, message *entity.BoardMessage) error
	CreateBulk(ctx context.Context, messages []*entity.BoardMessage) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.BoardMessage, error)
	DeleteByBoardSessionId(ctx context.Context, sessionId uuid.UUID) error
}
