package entity

import (
	"time"

	"github.com/google/uuid"
)

// Outcome statuses. "pending" and "no_response" both mean the candidate has
// not reacted yet; "sent" is the state right after the invitation goes out.
const (
	OutcomeStatusSent       = "sent"
	OutcomeStatusPending    = "pending"
	OutcomeStatusConfirmed  = "confirmed"
	OutcomeStatusDeclined   = "declined"
	OutcomeStatusNoResponse = "no_response"
)

// MaxReminderCount caps follow-ups per outcome.
const MaxReminderCount = 3

// DispatchOutcome is the persisted result of one invitation send, including
// the state of the confirmation/reminder lifecycle. Rows are never deleted;
// the latest row by SentAt is the active record for a candidate email.
type DispatchOutcome struct {
	Id                uuid.UUID
	CandidateName     string
	CandidateEmail    string
	PostTitle         string
	InterviewDate     string
	InterviewTime     string
	InterviewDuration string
	InterviewLocation string
	EmailSubject      string
	EmailBody         string
	Status            string
	ReminderCount     int
	LastReminderAt    *time.Time
	ConfirmedAt       *time.Time
	SentAt            time.Time
	Meta              map[string]interface{}
	CreatedAt         time.Time
	UpdatedAt         *time.Time
}

// IsConfirmed reports whether the candidate already confirmed. Confirmed
// outcomes must never receive further reminders.
func (o *DispatchOutcome) IsConfirmed() bool {
	return o.Status == OutcomeStatusConfirmed
}

// ReminderLimitReached reports whether the reminder cap is exhausted.
func (o *DispatchOutcome) ReminderLimitReached() bool {
	return o.ReminderCount >= MaxReminderCount
}
