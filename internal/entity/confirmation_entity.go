package entity

import (
	"time"

	"github.com/google/uuid"
)

// Confirmation is a one-shot token bound to a candidate email. ConfirmedAt
// is nil until the link is clicked; a consumed token cannot confirm again.
type Confirmation struct {
	Id             uuid.UUID
	CandidateEmail string
	Token          string
	ConfirmedAt    *time.Time
	CreatedAt      time.Time
}

func (c *Confirmation) Consumed() bool {
	return c.ConfirmedAt != nil
}
