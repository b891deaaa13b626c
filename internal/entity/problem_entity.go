package entity

import (
	"time"

	"github.com/google/uuid"
)

// Problem is a user-tracked accountability item. Open problems are handed to
// the board as briefing context for every session message.
type Problem struct {
	Id        uuid.UUID
	UserId    uuid.UUID
	Title     string
	Detail    string
	Status    string
	CreatedAt time.Time
	UpdatedAt *time.Time
	DeletedAt *time.Time
	IsDeleted bool
}
