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

func newStatusFixture(outcomeRepo *fakeOutcomeRepo, confirmationRepo *fakeConfirmationRepo, dispatch IDispatchService, pub *fakePublisher) IStatusService {
	return NewStatusService(
		outcomeRepo,
		confirmationRepo,
		dispatch,
		memory.NewContextCache(time.Minute),
		pub,
		noopLogger{},
		0,
	)
}

func TestUpdateStatusStampsConfirmedAt(t *testing.T) {
	tests := []struct {
		status          string
		wantConfirmedAt bool
	}{
		{entity.OutcomeStatusConfirmed, true},
		{entity.OutcomeStatusDeclined, false},
		{entity.OutcomeStatusPending, false},
		{entity.OutcomeStatusNoResponse, false},
	}

	for _, tt := range tests {
		t.Run(tt.status, func(t *testing.T) {
			past := time.Now().Add(-time.Hour)
			outcomeRepo := &fakeOutcomeRepo{latest: &entity.DispatchOutcome{
				Id:             uuid.New(),
				CandidateEmail: "marie@example.com",
				Status:         entity.OutcomeStatusSent,
				ConfirmedAt:    &past,
			}}
			pub := &fakePublisher{}
			svc := newStatusFixture(outcomeRepo, &fakeConfirmationRepo{}, &fakeDispatchService{}, pub)

			res, err := svc.UpdateStatus(context.Background(), "marie@example.com", tt.status)

			require.NoError(t, err)
			assert.Equal(t, tt.status, res.Status)
			if tt.wantConfirmedAt {
				assert.NotNil(t, res.ConfirmedAt)
			} else {
				assert.Nil(t, res.ConfirmedAt)
			}
			require.Len(t, outcomeRepo.updated, 1)
			assert.Len(t, pub.published[events.TopicOutcomeEvents], 1)
		})
	}
}

func TestUpdateStatusUnknownCandidate(t *testing.T) {
	svc := newStatusFixture(&fakeOutcomeRepo{}, &fakeConfirmationRepo{}, &fakeDispatchService{}, &fakePublisher{})

	_, err := svc.UpdateStatus(context.Background(), "inconnu@example.com", entity.OutcomeStatusConfirmed)

	require.Error(t, err)
	assert.True(t, apperror.IsNotFound(err))
}

func TestConfirmConsumesTokenOnce(t *testing.T) {
	confirmationRepo := &fakeConfirmationRepo{byToken: &entity.Confirmation{
		Id:             uuid.New(),
		CandidateEmail: "marie@example.com",
		Token:          "tok-123",
	}}
	outcomeRepo := &fakeOutcomeRepo{latest: &entity.DispatchOutcome{
		Id:             uuid.New(),
		CandidateEmail: "marie@example.com",
		Status:         entity.OutcomeStatusSent,
	}}
	svc := newStatusFixture(outcomeRepo, confirmationRepo, &fakeDispatchService{}, &fakePublisher{})

	res, err := svc.Confirm(context.Background(), "marie@example.com", "tok-123")

	require.NoError(t, err)
	assert.Equal(t, entity.OutcomeStatusConfirmed, res.Status)
	assert.NotNil(t, res.ConfirmedAt)
	require.Len(t, confirmationRepo.consumed, 1)

	// Replaying the same link must not go through a second time.
	_, err = svc.Confirm(context.Background(), "marie@example.com", "tok-123")
	require.Error(t, err)
	assert.True(t, apperror.IsPrecondition(err))
	assert.Equal(t, apperror.CodeAlreadyConfirmed, apperror.PreconditionCode(err))
	assert.Len(t, confirmationRepo.consumed, 1)
}

func TestConfirmUnknownToken(t *testing.T) {
	svc := newStatusFixture(&fakeOutcomeRepo{}, &fakeConfirmationRepo{}, &fakeDispatchService{}, &fakePublisher{})

	_, err := svc.Confirm(context.Background(), "marie@example.com", "jamais-emis")

	require.Error(t, err)
	assert.True(t, apperror.IsNotFound(err))
}

func TestRunReminderSweepCountsResults(t *testing.T) {
	pending := []*entity.DispatchOutcome{
		{Id: uuid.New(), CandidateEmail: "a@example.com", Status: entity.OutcomeStatusSent},
		{Id: uuid.New(), CandidateEmail: "b@example.com", Status: entity.OutcomeStatusSent},
		{Id: uuid.New(), CandidateEmail: "c@example.com", Status: entity.OutcomeStatusPending},
	}
	dispatch := &fakeDispatchService{reminderErr: map[string]error{
		"b@example.com": errors.New("smtp down"),
	}}
	svc := newStatusFixture(&fakeOutcomeRepo{pending: pending}, &fakeConfirmationRepo{}, dispatch, &fakePublisher{})

	res, err := svc.RunReminderSweep(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 3, res.Total)
	assert.Equal(t, 2, res.Sent)
	assert.Equal(t, 1, res.Failed)
	assert.Equal(t, []string{"a@example.com", "c@example.com"}, dispatch.remindedEmails)
}

func TestRunReminderSweepQueriesEligibilityWindow(t *testing.T) {
	outcomeRepo := &fakeOutcomeRepo{}
	svc := newStatusFixture(outcomeRepo, &fakeConfirmationRepo{}, &fakeDispatchService{}, &fakePublisher{})

	before := time.Now()
	_, err := svc.RunReminderSweep(context.Background())
	after := time.Now()

	require.NoError(t, err)
	// Eligibility opens 24h after send and closes at 48h, so the query spans
	// [now-48h, now-24h].
	assert.False(t, outcomeRepo.sweepFrom.Before(before.Add(-ReminderWindowMax)))
	assert.False(t, outcomeRepo.sweepFrom.After(after.Add(-ReminderWindowMax)))
	assert.False(t, outcomeRepo.sweepTo.Before(before.Add(-ReminderWindowMin)))
	assert.False(t, outcomeRepo.sweepTo.After(after.Add(-ReminderWindowMin)))
	assert.Equal(t, ReminderWindowMax-ReminderWindowMin, outcomeRepo.sweepTo.Sub(outcomeRepo.sweepFrom))
}

func TestRunReminderSweepEmptyWindow(t *testing.T) {
	dispatch := &fakeDispatchService{}
	svc := newStatusFixture(&fakeOutcomeRepo{}, &fakeConfirmationRepo{}, dispatch, &fakePublisher{})

	res, err := svc.RunReminderSweep(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 0, res.Total)
	assert.Empty(t, dispatch.remindedEmails)
}
