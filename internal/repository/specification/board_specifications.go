package specification

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ByBoardSessionID struct {
	BoardSessionID uuid.UUID
}

func (s ByBoardSessionID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("board_session_id = ?", s.BoardSessionID)
}

type ByStatus struct {
	Status string
}

func (s ByStatus) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("status = ?", s.Status)
}

// ActiveSessions keeps only sessions that have not completed all phases.
type ActiveSessions struct{}

func (s ActiveSessions) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("completed_at IS NULL")
}
