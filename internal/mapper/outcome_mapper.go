package mapper

import (
	"encoding/json"
	"time"

	"ats-scheduler-be/internal/entity"
	"ats-scheduler-be/internal/model"

	"gorm.io/datatypes"
)

type OutcomeMapper struct{}

func NewOutcomeMapper() *OutcomeMapper {
	return &OutcomeMapper{}
}

func (m *OutcomeMapper) ToModel(e *entity.DispatchOutcome) *model.EmailHistory {
	var meta datatypes.JSON
	if e.Meta != nil {
		if raw, err := json.Marshal(e.Meta); err == nil {
			meta = raw
		}
	}

	return &model.EmailHistory{
		Id:                e.Id,
		CandidateName:     e.CandidateName,
		CandidateEmail:    e.CandidateEmail,
		PostTitle:         e.PostTitle,
		InterviewDate:     e.InterviewDate,
		InterviewTime:     e.InterviewTime,
		InterviewDuration: e.InterviewDuration,
		InterviewLocation: e.InterviewLocation,
		EmailSubject:      e.EmailSubject,
		EmailBody:         e.EmailBody,
		Status:            e.Status,
		ReminderCount:     e.ReminderCount,
		LastReminderAt:    e.LastReminderAt,
		ConfirmedAt:       e.ConfirmedAt,
		SentAt:            e.SentAt,
		Meta:              meta,
		CreatedAt:         e.CreatedAt,
	}
}

func (m *OutcomeMapper) ToEntity(mo *model.EmailHistory) *entity.DispatchOutcome {
	var updatedAt *time.Time
	if !mo.UpdatedAt.IsZero() {
		t := mo.UpdatedAt
		updatedAt = &t
	}

	var meta map[string]interface{}
	if len(mo.Meta) > 0 {
		_ = json.Unmarshal(mo.Meta, &meta)
	}

	return &entity.DispatchOutcome{
		Id:                mo.Id,
		CandidateName:     mo.CandidateName,
		CandidateEmail:    mo.CandidateEmail,
		PostTitle:         mo.PostTitle,
		InterviewDate:     mo.InterviewDate,
		InterviewTime:     mo.InterviewTime,
		InterviewDuration: mo.InterviewDuration,
		InterviewLocation: mo.InterviewLocation,
		EmailSubject:      mo.EmailSubject,
		EmailBody:         mo.EmailBody,
		Status:            mo.Status,
		ReminderCount:     mo.ReminderCount,
		LastReminderAt:    mo.LastReminderAt,
		ConfirmedAt:       mo.ConfirmedAt,
		SentAt:            mo.SentAt,
		Meta:              meta,
		CreatedAt:         mo.CreatedAt,
		UpdatedAt:         updatedAt,
	}
}

func (m *OutcomeMapper) ConfirmationToModel(e *entity.Confirmation) *model.Confirmation {
	return &model.Confirmation{
		Id:             e.Id,
		CandidateEmail: e.CandidateEmail,
		Token:          e.Token,
		ConfirmedAt:    e.ConfirmedAt,
		CreatedAt:      e.CreatedAt,
	}
}

func (m *OutcomeMapper) ConfirmationToEntity(mo *model.Confirmation) *entity.Confirmation {
	return &entity.Confirmation{
		Id:             mo.Id,
		CandidateEmail: mo.CandidateEmail,
		Token:          mo.Token,
		ConfirmedAt:    mo.ConfirmedAt,
		CreatedAt:      mo.CreatedAt,
	}
}
