package dto

import (
	"time"

	"github.com/google/uuid"
)

type UpdateStatusRequest struct {
	Email  string `json:"email" validate:"required,email"`
	Status string `json:"status" validate:"required,oneof=sent pending confirmed declined no_response"`
}

type OutcomeResponse struct {
	Id                uuid.UUID  `json:"id"`
	CandidateName     string     `json:"candidate_name"`
	CandidateEmail    string     `json:"candidate_email"`
	PostTitle         string     `json:"post_title"`
	InterviewDate     string     `json:"interview_date"`
	InterviewTime     string     `json:"interview_time"`
	InterviewDuration string     `json:"interview_duration"`
	InterviewLocation string     `json:"interview_location"`
	Status            string     `json:"status"`
	ReminderCount     int        `json:"reminder_count"`
	LastReminderAt    *time.Time `json:"last_reminder_at,omitempty"`
	ConfirmedAt       *time.Time `json:"confirmed_at,omitempty"`
	SentAt            time.Time  `json:"sent_at"`
}
