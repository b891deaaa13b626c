package dto

import (
	"time"

	"github.com/google/uuid"
)

type UserProfileResponse struct {
	Id              uuid.UUID `json:"id"`
	Email           string    `json:"email"`
	FullName        string    `json:"full_name"`
	Role            string    `json:"role"`
	Status          string    `json:"status"`
	BoardDailyUsage int       `json:"board_daily_usage"`
	BoardDailyLimit int       `json:"board_daily_limit"`
	CreatedAt       time.Time `json:"created_at"`
}

type UpdateProfileRequest struct {
	FullName string `json:"full_name" validate:"required,min=3"`
}
