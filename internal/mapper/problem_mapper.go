package mapper

import (
	"time"

	"ai-boardroom-be/internal/entity"
	"ai-boardroom-be/internal/model"

	"gorm.io/gorm"
)

type ProblemMapper struct{}

func NewProblemMapper() *ProblemMapper {
	return &ProblemMapper{}
}

func (m *ProblemMapper) ToEntity(p *model.Problem) *entity.Problem {
	if p == nil {
		return nil
	}

	var deletedAt *time.Time
	if p.DeletedAt.Valid {
		t := p.DeletedAt.Time
		deletedAt = &t
	}

	var updatedAt *time.Time
	if !p.UpdatedAt.IsZero() {
		t := p.UpdatedAt
		updatedAt = &t
	}

	return &entity.Problem{
		Id:        p.Id,
		UserId:    p.UserId,
		Title:     p.Title,
		Detail:    p.Detail,
		Status:    p.Status,
		CreatedAt: p.CreatedAt,
		UpdatedAt: updatedAt,
		DeletedAt: deletedAt,
		IsDeleted: p.DeletedAt.Valid,
	}
}

func (m *ProblemMapper) ToModel(p *entity.Problem) *model.Problem {
	if p == nil {
		return nil
	}

	var deletedAt gorm.DeletedAt
	if p.DeletedAt != nil {
		deletedAt = gorm.DeletedAt{Time: *p.DeletedAt, Valid: true}
	} else if p.IsDeleted {
		deletedAt = gorm.DeletedAt{Time: time.Now(), Valid: true}
	}

	var updatedAt time.Time
	if p.UpdatedAt != nil {
		updatedAt = *p.UpdatedAt
	}

	return &model.Problem{
		Id:        p.Id,
		UserId:    p.UserId,
		Title:     p.Title,
		Detail:    p.Detail,
		Status:    p.Status,
		CreatedAt: p.CreatedAt,
		UpdatedAt: updatedAt,
		DeletedAt: deletedAt,
	}
}
