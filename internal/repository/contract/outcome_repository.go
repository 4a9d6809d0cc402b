package contract

import (
	"context"
	"time"

	"ats-scheduler-be/internal/entity"

	"github.com/google/uuid"
)

type OutcomeRepository interface {
	Create(ctx context.Context, outcome *entity.DispatchOutcome) error
	Update(ctx context.Context, outcome *entity.DispatchOutcome) error

	// FindLatestByEmail returns the most recent outcome for the email by
	// SentAt, or nil when the candidate has never been invited.
	FindLatestByEmail(ctx context.Context, email string) (*entity.DispatchOutcome, error)

	// FindRecent returns outcomes newest first for dashboards and the chat
	// context line.
	FindRecent(ctx context.Context, limit int) ([]*entity.DispatchOutcome, error)

	// FindPendingForReminder returns unconfirmed outcomes below the reminder
	// cap whose SentAt falls strictly inside (from, to).
	FindPendingForReminder(ctx context.Context, from, to time.Time) ([]*entity.DispatchOutcome, error)

	// IncrementReminder bumps the counter and stamps LastReminderAt on one row.
	IncrementReminder(ctx context.Context, id uuid.UUID, at time.Time) error
}
