package mapper

import (
	"time"

	"ai-boardroom-be/internal/entity"
	"ai-boardroom-be/internal/model"

	"gorm.io/gorm"
)

type BoardMapper struct{}

func NewBoardMapper() *BoardMapper {
	return &BoardMapper{}
}

// Session Mappers

func (m *BoardMapper) SessionToEntity(s *model.BoardSession) *entity.BoardSession {
	if s == nil {
		return nil
	}

	var deletedAt *time.Time
	if s.DeletedAt.Valid {
		t := s.DeletedAt.Time
		deletedAt = &t
	}

	var updatedAt *time.Time
	if !s.UpdatedAt.IsZero() {
		t := s.UpdatedAt
		updatedAt = &t
	}

	return &entity.BoardSession{
		Id:              s.Id,
		UserId:          s.UserId,
		Title:           s.Title,
		PhaseIndex:      s.PhaseIndex,
		PromptIndex:     s.PromptIndex,
		ActivePersonaId: s.ActivePersonaId,
		LeadResponses:   s.LeadResponses,
		Summary:         s.Summary,
		CompletedAt:     s.CompletedAt,
		CreatedAt:       s.CreatedAt,
		UpdatedAt:       updatedAt,
		DeletedAt:       deletedAt,
		IsDeleted:       s.DeletedAt.Valid,
	}
}

func (m *BoardMapper) SessionToModel(s *entity.BoardSession) *model.BoardSession {
	if s == nil {
		return nil
	}

	var deletedAt gorm.DeletedAt
	if s.DeletedAt != nil {
		deletedAt = gorm.DeletedAt{Time: *s.DeletedAt, Valid: true}
	} else if s.IsDeleted {
		deletedAt = gorm.DeletedAt{Time: time.Now(), Valid: true}
	}

	var updatedAt time.Time
	if s.UpdatedAt != nil {
		updatedAt = *s.UpdatedAt
	}

	return &model.BoardSession{
		Id:              s.Id,
		UserId:          s.UserId,
		Title:           s.Title,
		PhaseIndex:      s.PhaseIndex,
		PromptIndex:     s.PromptIndex,
		ActivePersonaId: s.ActivePersonaId,
		LeadResponses:   s.LeadResponses,
		Summary:         s.Summary,
		CompletedAt:     s.CompletedAt,
		CreatedAt:       s.CreatedAt,
		UpdatedAt:       updatedAt,
		DeletedAt:       deletedAt,
	}
}

// Message Mappers

func (m *BoardMapper) MessageToEntity(msg *model.BoardMessage) *entity.BoardMessage {
	if msg == nil {
		return nil
	}

	var deletedAt *time.Time
	if msg.DeletedAt.Valid {
		t := msg.DeletedAt.Time
		deletedAt = &t
	}

	var updatedAt *time.Time
	if !msg.UpdatedAt.IsZero() {
		t := msg.UpdatedAt
		updatedAt = &t
	}

	return &entity.BoardMessage{
		Id:             msg.Id,
		BoardSessionId: msg.BoardSessionId,
		Role:           msg.Role,
		Content:        msg.Content,
		PersonaId:      msg.PersonaId,
		CreatedAt:      msg.CreatedAt,
		UpdatedAt:      updatedAt,
		DeletedAt:      deletedAt,
		IsDeleted:      msg.DeletedAt.Valid,
	}
}

func (m *BoardMapper) MessageToModel(msg *entity.BoardMessage) *model.BoardMessage {
	if msg == nil {
		return nil
	}

	var deletedAt gorm.DeletedAt
	if msg.DeletedAt != nil {
		deletedAt = gorm.DeletedAt{Time: *msg.DeletedAt, Valid: true}
	} else if msg.IsDeleted {
		deletedAt = gorm.DeletedAt{Time: time.Now(), Valid: true}
	}

	var updatedAt time.Time
	if msg.UpdatedAt != nil {
		updatedAt = *msg.UpdatedAt
	}

	return &model.BoardMessage{
		Id:             msg.Id,
		BoardSessionId: msg.BoardSessionId,
		Role:           msg.Role,
		Content:        msg.Content,
		PersonaId:      msg.PersonaId,
		CreatedAt:      msg.CreatedAt,
		UpdatedAt:      updatedAt,
		DeletedAt:      deletedAt,
	}
}
