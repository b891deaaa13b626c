package mapper

import (
	"testing"
	"time"

	"ai-boardroom-be/internal/entity"
	"ai-boardroom-be/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestSessionRoundTrip(t *testing.T) {
	m := NewBoardMapper()

	summary := "The board noted steady progress."
	completed := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	created := time.Date(2025, 5, 1, 9, 0, 0, 0, time.UTC)
	updated := time.Date(2025, 5, 2, 9, 0, 0, 0, time.UTC)

	src := &model.BoardSession{
		Id:              uuid.New(),
		UserId:          uuid.New(),
		Title:           "Board Meeting - 1 May",
		PhaseIndex:      2,
		PromptIndex:     1,
		ActivePersonaId: "skeptic",
		LeadResponses:   1,
		Summary:         &summary,
		CompletedAt:     &completed,
		CreatedAt:       created,
		UpdatedAt:       updated,
	}

	e := m.SessionToEntity(src)
	assert.Equal(t, src.Id, e.Id)
	assert.Equal(t, src.UserId, e.UserId)
	assert.Equal(t, 2, e.PhaseIndex)
	assert.Equal(t, 1, e.PromptIndex)
	assert.Equal(t, "skeptic", e.ActivePersonaId)
	assert.Equal(t, &summary, e.Summary)
	assert.False(t, e.IsDeleted)
	assert.NotNil(t, e.UpdatedAt)
	assert.Equal(t, updated, *e.UpdatedAt)

	back := m.SessionToModel(e)
	assert.Equal(t, src.Id, back.Id)
	assert.Equal(t, src.PhaseIndex, back.PhaseIndex)
	assert.Equal(t, src.LeadResponses, back.LeadResponses)
	assert.Equal(t, src.UpdatedAt, back.UpdatedAt)
	assert.False(t, back.DeletedAt.Valid)
}

func TestSessionToEntityZeroUpdatedAt(t *testing.T) {
	m := NewBoardMapper()

	e := m.SessionToEntity(&model.BoardSession{Id: uuid.New()})
	assert.Nil(t, e.UpdatedAt, "zero UpdatedAt should map to nil")
	assert.Nil(t, e.DeletedAt)
}

func TestSessionSoftDeleteMapping(t *testing.T) {
	m := NewBoardMapper()

	deletedAt := time.Date(2025, 7, 1, 12, 0, 0, 0, time.UTC)
	src := &model.BoardSession{
		Id:        uuid.New(),
		DeletedAt: gorm.DeletedAt{Time: deletedAt, Valid: true},
	}

	e := m.SessionToEntity(src)
	assert.True(t, e.IsDeleted)
	assert.NotNil(t, e.DeletedAt)
	assert.Equal(t, deletedAt, *e.DeletedAt)

	back := m.SessionToModel(e)
	assert.True(t, back.DeletedAt.Valid)
	assert.Equal(t, deletedAt, back.DeletedAt.Time)
}

func TestSessionToModelIsDeletedWithoutTimestamp(t *testing.T) {
	m := NewBoardMapper()

	back := m.SessionToModel(&entity.BoardSession{Id: uuid.New(), IsDeleted: true})
	assert.True(t, back.DeletedAt.Valid, "IsDeleted alone should still produce a valid tombstone")
	assert.False(t, back.DeletedAt.Time.IsZero())
}

func TestMessageRoundTrip(t *testing.T) {
	m := NewBoardMapper()

	created := time.Date(2025, 5, 1, 9, 30, 0, 0, time.UTC)
	src := &model.BoardMessage{
		Id:             uuid.New(),
		BoardSessionId: uuid.New(),
		Role:           "persona",
		Content:        "Let's go through what you committed to last time.",
		PersonaId:      "operator",
		CreatedAt:      created,
	}

	e := m.MessageToEntity(src)
	assert.Equal(t, src.BoardSessionId, e.BoardSessionId)
	assert.Equal(t, "persona", e.Role)
	assert.Equal(t, "operator", e.PersonaId)
	assert.Nil(t, e.UpdatedAt)

	back := m.MessageToModel(e)
	assert.Equal(t, src.Id, back.Id)
	assert.Equal(t, src.Content, back.Content)
	assert.Equal(t, created, back.CreatedAt)
	assert.True(t, back.UpdatedAt.IsZero())
}

func TestNilSafety(t *testing.T) {
	m := NewBoardMapper()

	assert.Nil(t, m.SessionToEntity(nil))
	assert.Nil(t, m.SessionToModel(nil))
	assert.Nil(t, m.MessageToEntity(nil))
	assert.Nil(t, m.MessageToModel(nil))
}
