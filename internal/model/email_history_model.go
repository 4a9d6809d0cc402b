package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type EmailHistory struct {
	Id                uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CandidateName     string    `gorm:"type:varchar(255);not null"`
	CandidateEmail    string    `gorm:"type:varchar(255);not null;index"`
	PostTitle         string    `gorm:"type:varchar(255);not null"`
	InterviewDate     string    `gorm:"type:varchar(10);not null"`
	InterviewTime     string    `gorm:"type:varchar(5);not null"`
	InterviewDuration string    `gorm:"type:varchar(50);not null"`
	InterviewLocation string    `gorm:"type:varchar(100);not null"`
	EmailSubject      string    `gorm:"type:text"`
	EmailBody         string    `gorm:"type:text"`
	Status            string    `gorm:"type:varchar(20);not null;default:'pending';index"`
	ReminderCount     int       `gorm:"not null;default:0"`
	LastReminderAt    *time.Time
	ConfirmedAt       *time.Time
	SentAt            time.Time      `gorm:"not null;index"`
	Meta              datatypes.JSON `gorm:"type:jsonb"`
	CreatedAt         time.Time      `gorm:"autoCreateTime"`
	UpdatedAt         time.Time      `gorm:"autoUpdateTime"`
}

func (EmailHistory) TableName() string {
	return "email_history"
}
