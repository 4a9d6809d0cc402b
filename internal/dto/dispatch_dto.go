package dto

import (
	"github.com/google/uuid"
)

type SendInvitationRequest struct {
	CandidateName     string `json:"candidate_name" validate:"required"`
	CandidateEmail    string `json:"candidate_email" validate:"required,email"`
	PostTitle         string `json:"post_title" validate:"required"`
	InterviewDate     string `json:"interview_date" validate:"required"`
	InterviewTime     string `json:"interview_time" validate:"required"`
	InterviewDuration string `json:"interview_duration"`
	InterviewLocation string `json:"interview_location"`
}

type SendInvitationResponse struct {
	Success   bool      `json:"success"`
	OutcomeId uuid.UUID `json:"outcome_id"`
}

type SendReminderRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type SendReminderResponse struct {
	Success       bool `json:"success"`
	ReminderCount int  `json:"reminder_count"`
}

type SweepResponse struct {
	Sent   int `json:"sent"`
	Failed int `json:"failed"`
	Total  int `json:"total"`
}
