package implementation

import (
	"context"
	"errors"

	"ai-boardroom-be/internal/entity"
	"ai-boardroom-be/internal/mapper"
	"ai-boardroom-be/internal/model"
	"ai-boardroom-be/internal/repository/contract"
	"ai-boardroom-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BoardSessionRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.BoardMapper
}

func NewBoardSessionRepository(db *gorm.DB) contract.BoardSessionRepository {
	return &BoardSessionRepositoryImpl{
		db:     db,
		mapper: mapper.NewBoardMapper(),
	}
}

func (r *BoardSessionRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *BoardSessionRepositoryImpl) Create(ctx context.Context, session *entity.BoardSession) error {
	m := r.mapper.SessionToModel(session)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*session = *r.mapper.SessionToEntity(m)
	return nil
}

func (r *BoardSessionRepositoryImpl) Update(ctx context.Context, session *entity.BoardSession) error {
	m := r.mapper.SessionToModel(session)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*session = *r.mapper.SessionToEntity(m)
	return nil
}

func (r *BoardSessionRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.BoardSession{}, id).Error
}

func (r *BoardSessionRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.BoardSession, error) {
	var m model.BoardSession
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.SessionToEntity(&m), nil
}

func (r *BoardSessionRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.BoardSession, error) {
	var models []*model.BoardSession
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	entities := make([]*entity.BoardSession, len(models))
	for i, m := range models {
		entities[i] = r.mapper.SessionToEntity(m)
	}
	return entities, nil
}

func (r *BoardSessionRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.BoardSession{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
