package dto

import (
	"encoding/json"
)

// ChatRequest carries one user turn plus the caller-held session history.
// History entries arrive as raw JSON so malformed entries can be dropped
// individually instead of failing the whole request.
type ChatRequest struct {
	Message             string            `json:"message" validate:"required"`
	ConversationHistory []json.RawMessage `json:"conversation_history"`
}

// ChatHistoryEntry is the well-formed shape of one history entry.
type ChatHistoryEntry struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type ChatResponse struct {
	Response        string            `json:"response"`
	ShouldSendEmail bool              `json:"should_send_email"`
	EmailSent       bool              `json:"email_sent"`
	MissingFields   []string          `json:"missing_fields,omitempty"`
	EmailResult     *EmailResultDTO   `json:"email_result,omitempty"`
	RecentOutcomes  []OutcomeResponse `json:"recent_outcomes"`
}

type EmailResultDTO struct {
	OutcomeId string `json:"outcome_id"`
	Email     string `json:"email"`
}
