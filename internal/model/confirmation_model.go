package model

import (
	"time"

	"github.com/google/uuid"
)

type Confirmation struct {
	Id             uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CandidateEmail string    `gorm:"type:varchar(255);not null;index"`
	Token          string    `gorm:"type:varchar(255);not null;index"`
	ConfirmedAt    *time.Time
	CreatedAt      time.Time `gorm:"autoCreateTime"`
}

func (Confirmation) TableName() string {
	return "confirmations"
}
