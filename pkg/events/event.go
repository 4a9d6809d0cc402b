package events

import (
	"encoding/json"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"
)

// TopicOutcomeEvents carries every outcome lifecycle event. The notifier
// service subscribes and fans the payloads out to dashboard websockets.
const TopicOutcomeEvents = "outcome.events"

// Event kinds.
const (
	KindInvitationSent = "invitation_sent"
	KindReminderSent   = "reminder_sent"
	KindStatusChanged  = "status_changed"
)

// OutcomeEvent is the payload published on TopicOutcomeEvents.
type OutcomeEvent struct {
	Kind           string    `json:"kind"`
	OutcomeId      uuid.UUID `json:"outcome_id"`
	CandidateEmail string    `json:"candidate_email"`
	CandidateName  string    `json:"candidate_name,omitempty"`
	Status         string    `json:"status"`
	ReminderCount  int       `json:"reminder_count,omitempty"`
	OccurredAt     time.Time `json:"occurred_at"`
}

// NewMessage serializes the event into a watermill message.
func (e OutcomeEvent) NewMessage() (*message.Message, error) {
	payload, err := json.Marshal(e)
	if err != nil {
		return nil, err
	}
	return message.NewMessage(watermill.NewUUID(), payload), nil
}
