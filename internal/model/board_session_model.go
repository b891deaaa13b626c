package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BoardSession struct {
	Id              uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId          uuid.UUID `gorm:"type:uuid;not null;index"` // User ownership for data isolation
	Title           string    `gorm:"type:text;not null"`
	PhaseIndex      int       `gorm:"not null;default:0"`
	PromptIndex     int       `gorm:"not null;default:0"`
	ActivePersonaId string    `gorm:"type:varchar(50);not null"`
	LeadResponses   int       `gorm:"not null;default:0"`
	Summary         *string   `gorm:"type:text"`
	CompletedAt     *time.Time
	CreatedAt       time.Time      `gorm:"autoCreateTime"`
	UpdatedAt       time.Time      `gorm:"autoUpdateTime"`
	DeletedAt       gorm.DeletedAt `gorm:"index"`
}

func (BoardSession) TableName() string {
	return "board_sessions"
}
