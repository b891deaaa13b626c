package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BoardMessage struct {
	Id             uuid.UUID `gorm:"type:uuid;primaryKey"`
	BoardSessionId uuid.UUID `gorm:"type:uuid;index"`
	Role           string    `gorm:"type:varchar(20);not null"`
	Content        string    `gorm:"type:text;not null"`
	PersonaId      string    `gorm:"type:varchar(50)"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
	DeletedAt      gorm.DeletedAt `gorm:"index"`
}

func (BoardMessage) TableName() string {
	return "board_messages"
}
