package entity

import (
	"time"

	"github.com/google/uuid"
)

type BoardSession struct {
	Id              uuid.UUID
	UserId          uuid.UUID
	Title           string
	PhaseIndex      int
	PromptIndex     int
	ActivePersonaId string
	LeadResponses   int
	Summary         *string
	CompletedAt     *time.Time
	CreatedAt       time.Time
	UpdatedAt       *time.Time
	DeletedAt       *time.Time
	IsDeleted       bool
}
