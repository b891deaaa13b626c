package entity

import (
	"time"

	"github.com/google/uuid"
)

type BoardMessage struct {
	Id             uuid.UUID
	BoardSessionId uuid.UUID
	Role           string
	Content        string
	PersonaId      string // empty for user messages
	CreatedAt      time.Time
	UpdatedAt      *time.Time
	DeletedAt      *time.Time
	IsDeleted      bool
}
