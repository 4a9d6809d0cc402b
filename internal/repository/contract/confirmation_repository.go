package contract

import (
	"context"
	"time"

	"ats-scheduler-be/internal/entity"

	"github.com/google/uuid"
)

type ConfirmationRepository interface {
	Create(ctx context.Context, confirmation *entity.Confirmation) error

	// FindByToken returns the confirmation row for a token, or nil when the
	// token was never issued.
	FindByToken(ctx context.Context, token string) (*entity.Confirmation, error)

	// MarkConsumed stamps ConfirmedAt so the token cannot be replayed.
	MarkConsumed(ctx context.Context, id uuid.UUID, at time.Time) error
}
