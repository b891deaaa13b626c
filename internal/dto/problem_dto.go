package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateProblemRequest struct {
	Title  string `json:"title" validate:"required,min=3,max=255"`
	Detail string `json:"detail" validate:"max=2000"`
}

type UpdateProblemRequest struct {
	Id     uuid.UUID `json:"-"`
	Title  string    `json:"title" validate:"required,min=3,max=255"`
	Detail string    `json:"detail" validate:"max=2000"`
	Status string    `json:"status" validate:"omitempty,oneof=open resolved"`
}

type ProblemResponse struct {
	Id        uuid.UUID  `json:"id"`
	Title     string     `json:"title"`
	Detail    string     `json:"detail"`
	Status    string     `json:"status"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at"`
}
