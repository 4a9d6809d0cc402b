package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"ats-scheduler-be/internal/entity"
	"ats-scheduler-be/internal/pkg/apperror"
	"ats-scheduler-be/internal/repository/memory"
	"ats-scheduler-be/pkg/events"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDispatchFixture(llmProvider *fakeLLM, mailerSvc *fakeMailer, outcomeRepo *fakeOutcomeRepo, confirmationRepo *fakeConfirmationRepo, pub *fakePublisher) IDispatchService {
	return NewDispatchService(
		llmProvider,
		mailerSvc,
		outcomeRepo,
		confirmationRepo,
		memory.NewContextCache(time.Minute),
		pub,
		noopLogger{},
		"http://localhost:3000",
	)
}

func validRecord() *entity.InvitationRecord {
	return &entity.InvitationRecord{
		CandidateName:     "Marie Dupont",
		CandidateEmail:    "marie@example.com",
		PostTitle:         "Développeuse Go",
		InterviewDate:     "15/09/2026",
		InterviewTime:     "14:30",
		InterviewDuration: "45 minutes",
		InterviewLocation: entity.LocationRemote,
	}
}

func TestSendInvitationWithGeneratedContent(t *testing.T) {
	llmProvider := &fakeLLM{generateReply: `{"subject": "Entretien Go", "body": "Bonjour Marie"}`}
	mailerSvc := &fakeMailer{}
	outcomeRepo := &fakeOutcomeRepo{}
	confirmationRepo := &fakeConfirmationRepo{}
	pub := &fakePublisher{}
	svc := newDispatchFixture(llmProvider, mailerSvc, outcomeRepo, confirmationRepo, pub)

	outcome, err := svc.SendInvitation(context.Background(), validRecord())

	require.NoError(t, err)
	assert.Equal(t, entity.OutcomeStatusSent, outcome.Status)
	assert.Equal(t, "Entretien Go", outcome.EmailSubject)
	assert.Equal(t, "Bonjour Marie", outcome.EmailBody)
	assert.Equal(t, false, outcome.Meta["fallback"])

	require.Len(t, mailerSvc.sent, 1)
	assert.Equal(t, "marie@example.com", mailerSvc.sent[0].To)
	assert.Equal(t, "Entretien Go", mailerSvc.sent[0].Subject)

	require.Len(t, outcomeRepo.created, 1)
	require.Len(t, confirmationRepo.created, 1)
	assert.NotEmpty(t, confirmationRepo.created[0].Token)
	assert.Len(t, pub.published[events.TopicOutcomeEvents], 1)
}

func TestSendInvitationFencedJSON(t *testing.T) {
	llmProvider := &fakeLLM{generateReply: "```json\n{\"subject\": \"Entretien\", \"body\": \"Bonjour\"}\n```"}
	mailerSvc := &fakeMailer{}
	svc := newDispatchFixture(llmProvider, mailerSvc, &fakeOutcomeRepo{}, &fakeConfirmationRepo{}, &fakePublisher{})

	outcome, err := svc.SendInvitation(context.Background(), validRecord())

	require.NoError(t, err)
	assert.Equal(t, "Entretien", outcome.EmailSubject)
	assert.Equal(t, false, outcome.Meta["fallback"])
}

func TestSendInvitationFallbackOnBadOutput(t *testing.T) {
	tests := []struct {
		name string
		llm  *fakeLLM
	}{
		{"provider error", &fakeLLM{generateErr: errors.New("rate limited")}},
		{"not json", &fakeLLM{generateReply: "Bonjour, voici votre email..."}},
		{"empty fields", &fakeLLM{generateReply: `{"subject": "", "body": ""}`}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mailerSvc := &fakeMailer{}
			svc := newDispatchFixture(tt.llm, mailerSvc, &fakeOutcomeRepo{}, &fakeConfirmationRepo{}, &fakePublisher{})

			record := validRecord()
			outcome, err := svc.SendInvitation(context.Background(), record)

			require.NoError(t, err)
			assert.Equal(t, true, outcome.Meta["fallback"])

			// The deterministic template carries every interview detail.
			assert.Contains(t, outcome.EmailBody, record.CandidateName)
			assert.Contains(t, outcome.EmailBody, record.PostTitle)
			assert.Contains(t, outcome.EmailBody, record.InterviewDate)
			assert.Contains(t, outcome.EmailBody, record.InterviewTime)
			assert.Contains(t, outcome.EmailBody, record.InterviewDuration)
			assert.Contains(t, outcome.EmailBody, record.InterviewLocation)
			assert.Contains(t, outcome.EmailSubject, record.PostTitle)
			require.Len(t, mailerSvc.sent, 1)
		})
	}
}

func TestSendInvitationDefaults(t *testing.T) {
	llmProvider := &fakeLLM{generateReply: `{"subject": "S", "body": "B"}`}
	svc := newDispatchFixture(llmProvider, &fakeMailer{}, &fakeOutcomeRepo{}, &fakeConfirmationRepo{}, &fakePublisher{})

	record := validRecord()
	record.InterviewDuration = ""
	record.InterviewLocation = ""

	outcome, err := svc.SendInvitation(context.Background(), record)

	require.NoError(t, err)
	assert.Equal(t, entity.DefaultDuration, outcome.InterviewDuration)
	assert.Equal(t, entity.LocationDefault, outcome.InterviewLocation)
}

func TestSendInvitationMailerFailure(t *testing.T) {
	llmProvider := &fakeLLM{generateReply: `{"subject": "S", "body": "B"}`}
	mailerSvc := &fakeMailer{sendErr: errors.New("smtp down")}
	outcomeRepo := &fakeOutcomeRepo{}
	confirmationRepo := &fakeConfirmationRepo{}
	svc := newDispatchFixture(llmProvider, mailerSvc, outcomeRepo, confirmationRepo, &fakePublisher{})

	_, err := svc.SendInvitation(context.Background(), validRecord())

	require.Error(t, err)
	assert.True(t, apperror.IsUpstream(err))
	assert.Empty(t, outcomeRepo.created)
	assert.Empty(t, confirmationRepo.created)
}

func TestSendInvitationPersistenceFailureDoesNotFailCall(t *testing.T) {
	llmProvider := &fakeLLM{generateReply: `{"subject": "S", "body": "B"}`}
	outcomeRepo := &fakeOutcomeRepo{createErr: errors.New("db down")}
	svc := newDispatchFixture(llmProvider, &fakeMailer{}, outcomeRepo, &fakeConfirmationRepo{}, &fakePublisher{})

	outcome, err := svc.SendInvitation(context.Background(), validRecord())

	require.NoError(t, err)
	assert.NotNil(t, outcome)
}

func TestSendReminderPreconditions(t *testing.T) {
	tests := []struct {
		name     string
		latest   *entity.DispatchOutcome
		wantCode string
		notFound bool
	}{
		{
			name:     "unknown candidate",
			latest:   nil,
			notFound: true,
		},
		{
			name: "already confirmed",
			latest: &entity.DispatchOutcome{
				Id:             uuid.New(),
				CandidateEmail: "marie@example.com",
				Status:         entity.OutcomeStatusConfirmed,
			},
			wantCode: apperror.CodeAlreadyConfirmed,
		},
		{
			name: "reminder limit reached",
			latest: &entity.DispatchOutcome{
				Id:             uuid.New(),
				CandidateEmail: "marie@example.com",
				Status:         entity.OutcomeStatusSent,
				ReminderCount:  entity.MaxReminderCount,
			},
			wantCode: apperror.CodeReminderLimitReached,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mailerSvc := &fakeMailer{}
			svc := newDispatchFixture(&fakeLLM{}, mailerSvc, &fakeOutcomeRepo{latest: tt.latest}, &fakeConfirmationRepo{}, &fakePublisher{})

			_, err := svc.SendReminder(context.Background(), "marie@example.com")

			require.Error(t, err)
			if tt.notFound {
				assert.True(t, apperror.IsNotFound(err))
			} else {
				assert.True(t, apperror.IsPrecondition(err))
				assert.Equal(t, tt.wantCode, apperror.PreconditionCode(err))
			}
			assert.Empty(t, mailerSvc.sent)
		})
	}
}

func TestSendReminderIncrementsCount(t *testing.T) {
	latest := &entity.DispatchOutcome{
		Id:             uuid.New(),
		CandidateEmail: "marie@example.com",
		CandidateName:  "Marie Dupont",
		PostTitle:      "Développeuse Go",
		Status:         entity.OutcomeStatusSent,
		ReminderCount:  2,
	}
	mailerSvc := &fakeMailer{}
	outcomeRepo := &fakeOutcomeRepo{latest: latest}
	confirmationRepo := &fakeConfirmationRepo{}
	pub := &fakePublisher{}
	svc := newDispatchFixture(&fakeLLM{}, mailerSvc, outcomeRepo, confirmationRepo, pub)

	count, err := svc.SendReminder(context.Background(), "marie@example.com")

	require.NoError(t, err)
	assert.Equal(t, 3, count)
	assert.Equal(t, 3, latest.ReminderCount)
	require.Len(t, mailerSvc.sent, 1)
	assert.Contains(t, mailerSvc.sent[0].Subject, "Rappel")
	require.Len(t, confirmationRepo.created, 1)
	assert.Len(t, pub.published[events.TopicOutcomeEvents], 1)

	// The next reminder for the same outcome must hit the cap.
	_, err = svc.SendReminder(context.Background(), "marie@example.com")
	require.Error(t, err)
	assert.Equal(t, apperror.CodeReminderLimitReached, apperror.PreconditionCode(err))
}

func TestSendReminderMailerFailure(t *testing.T) {
	latest := &entity.DispatchOutcome{
		Id:             uuid.New(),
		CandidateEmail: "marie@example.com",
		Status:         entity.OutcomeStatusSent,
		ReminderCount:  1,
	}
	svc := newDispatchFixture(&fakeLLM{}, &fakeMailer{sendErr: errors.New("smtp down")}, &fakeOutcomeRepo{latest: latest}, &fakeConfirmationRepo{}, &fakePublisher{})

	_, err := svc.SendReminder(context.Background(), "marie@example.com")

	require.Error(t, err)
	assert.True(t, apperror.IsUpstream(err))
	assert.Equal(t, 1, latest.ReminderCount)
}
