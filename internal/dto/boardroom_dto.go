package dto

import (
	"time"

	"github.com/google/uuid"
)

type PersonaDTO struct {
	Id    string `json:"id"`
	Name  string `json:"name"`
	Title string `json:"title"`
}

type CreateSessionResponse struct {
	Id      uuid.UUID             `json:"id"`
	Phase   string                `json:"phase"`
	Opening *SendMessageReplyChat `json:"opening"`
}

type GetAllSessionsResponse struct {
	Id          uuid.UUID  `json:"id"`
	Title       string     `json:"title"`
	PhaseIndex  int        `json:"phase_index"`
	Completed   bool       `json:"completed"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   *time.Time `json:"updated_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

type GetSessionHistoryResponse struct {
	Id        uuid.UUID  `json:"id"`
	Role      string     `json:"role"`
	Content   string     `json:"content"`
	Persona   *PersonaDTO `json:"persona,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

type SendMessageRequest struct {
	BoardSessionId uuid.UUID `json:"board_session_id" validate:"required"`
	Content        string    `json:"content" validate:"required"`
}

type SendMessageReplyChat struct {
	Id        uuid.UUID   `json:"id"`
	Role      string      `json:"role"`
	Content   string      `json:"content"`
	Persona   *PersonaDTO `json:"persona,omitempty"`
	CreatedAt time.Time   `json:"created_at"`
}

type SendMessageResponse struct {
	BoardSessionId uuid.UUID             `json:"board_session_id"`
	Phase          string                `json:"phase"`
	PhaseIndex     int                   `json:"phase_index"`
	Completed      bool                  `json:"completed"`
	Challenged     bool                  `json:"challenged"`
	Sent           *SendMessageReplyChat `json:"sent"`
	Reply          *SendMessageReplyChat `json:"reply"`
}

type DeleteSessionRequest struct {
	BoardSessionId uuid.UUID `json:"board_session_id"`
}

// SummarizeSessionMessage is the payload handed to the summary worker when a
// session completes.
type SummarizeSessionMessage struct {
	BoardSessionId uuid.UUID `json:"board_session_id"`
}

// --- Limit Exceeded Error Types ---

// LimitExceededError is a custom error that carries usage details
type LimitExceededError struct {
	Limit      int       `json:"limit"`
	Used       int       `json:"used"`
	ResetAfter time.Time `json:"reset_after"`
}

func (e *LimitExceededError) Error() string {
	return "daily boardroom usage limit exceeded"
}

// LimitExceededData is the data payload for 429 responses
type LimitExceededData struct {
	Limit      int       `json:"limit"`
	Used       int       `json:"used"`
	ResetAfter time.Time `json:"reset_after"`
}

// LimitExceededResponse is the full 429 response structure
type LimitExceededResponse struct {
	Success   bool              `json:"success"`
	Code      int               `json:"code"`
	Message   string            `json:"message"`
	ErrorType string            `json:"error_type"`
	Data      LimitExceededData `json:"data"`
}
