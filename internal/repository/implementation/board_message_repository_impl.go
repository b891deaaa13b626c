package implementation

import (
	"context"

	"ai-boardroom-be/internal/entity"
	"ai-boardroom-be/internal/mapper"
	"ai-boardroom-be/internal/model"
	"ai-boardroom-be/internal/repository/contract"
	"ai-boardroom-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BoardMessageRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.BoardMapper
}

func NewBoardMessageRepository(db *gorm.DB) contract.BoardMessageRepository {
	return &BoardMessageRepositoryImpl{
		db:     db,
		mapper: mapper.NewBoardMapper(),
	}
}

func (r *BoardMessageRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *BoardMessageRepositoryImpl) Create(ctx context.Context, message *entity.BoardMessage) error {
	m := r.mapper.MessageToModel(message)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*message = *r.mapper.MessageToEntity(m)
	return nil
}

func (r *BoardMessageRepositoryImpl) CreateBulk(ctx context.Context, messages []*entity.BoardMessage) error {
	if len(messages) == 0 {
		return nil
	}
	models := make([]*model.BoardMessage, len(messages))
	for i, msg := range messages {
		models[i] = r.mapper.MessageToModel(msg)
	}
	return r.db.WithContext(ctx).Create(&models).Error
}

func (r *BoardMessageRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.BoardMessage, error) {
	var models []*model.BoardMessage
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	entities := make([]*entity.BoardMessage, len(models))
	for i, m := range models {
		entities[i] = r.mapper.MessageToEntity(m)
	}
	return entities, nil
}

func (r *BoardMessageRepositoryImpl) DeleteByBoardSessionId(ctx context.Context, sessionId uuid.UUID) error {
	return r.db.WithContext(ctx).Where("board_session_id = ?", sessionId).Delete(&model.BoardMessage{}).Error
}
