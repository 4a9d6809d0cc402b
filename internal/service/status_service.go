package service

import (
	"context"
	"time"

	"ats-scheduler-be/internal/dto"
	"ats-scheduler-be/internal/entity"
	"ats-scheduler-be/internal/pkg/apperror"
	"ats-scheduler-be/internal/pkg/logger"
	"ats-scheduler-be/internal/repository/contract"
	"ats-scheduler-be/internal/repository/memory"
	"ats-scheduler-be/pkg/events"

	"github.com/ThreeDotsLabs/watermill/message"
)

// Reminder eligibility window: an outcome becomes eligible 24h after the
// invitation went out and stays eligible until 48h. Outside that range the
// sweep leaves it alone. This is the single window policy for the whole
// system; there is no separate age-threshold rule.
const (
	ReminderWindowMin = 24 * time.Hour
	ReminderWindowMax = 48 * time.Hour
)

type IStatusService interface {
	// UpdateStatus rewrites the status of the latest outcome for the email.
	// ConfirmedAt is stamped only for "confirmed" and cleared otherwise.
	UpdateStatus(ctx context.Context, email, status string) (*dto.OutcomeResponse, error)

	// Confirm consumes a one-shot confirmation token. A token that was
	// already used yields a precondition error without mutating anything.
	Confirm(ctx context.Context, email, token string) (*dto.OutcomeResponse, error)

	ListOutcomes(ctx context.Context, limit int) ([]dto.OutcomeResponse, error)

	// RunReminderSweep dispatches a reminder for every eligible outcome,
	// sequentially with a pacing delay between sends.
	RunReminderSweep(ctx context.Context) (*dto.SweepResponse, error)
}

type statusService struct {
	outcomeRepo      contract.OutcomeRepository
	confirmationRepo contract.ConfirmationRepository
	dispatchService  IDispatchService
	contextCache     *memory.ContextCache
	publisher        message.Publisher
	log              logger.ILogger
	sweepDelay       time.Duration
}

func NewStatusService(
	outcomeRepo contract.OutcomeRepository,
	confirmationRepo contract.ConfirmationRepository,
	dispatchService IDispatchService,
	contextCache *memory.ContextCache,
	publisher message.Publisher,
	log logger.ILogger,
	sweepDelay time.Duration,
) IStatusService {
	return &statusService{
		outcomeRepo:      outcomeRepo,
		confirmationRepo: confirmationRepo,
		dispatchService:  dispatchService,
		contextCache:     contextCache,
		publisher:        publisher,
		log:              log,
		sweepDelay:       sweepDelay,
	}
}

func (s *statusService) UpdateStatus(ctx context.Context, email, status string) (*dto.OutcomeResponse, error) {
	outcome, err := s.outcomeRepo.FindLatestByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if outcome == nil {
		return nil, apperror.NewNotFound("dispatch outcome")
	}

	outcome.Status = status
	if status == entity.OutcomeStatusConfirmed {
		now := time.Now()
		outcome.ConfirmedAt = &now
	} else {
		outcome.ConfirmedAt = nil
	}

	if err := s.outcomeRepo.Update(ctx, outcome); err != nil {
		return nil, err
	}

	s.contextCache.Invalidate()
	s.publishStatusChanged(outcome)

	s.log.Info("Status", "Outcome status updated", map[string]interface{}{
		"email":  email,
		"status": status,
	})
	res := mapOutcome(outcome)
	return &res, nil
}

func (s *statusService) Confirm(ctx context.Context, email, token string) (*dto.OutcomeResponse, error) {
	confirmation, err := s.confirmationRepo.FindByToken(ctx, token)
	if err != nil {
		return nil, err
	}
	if confirmation == nil {
		return nil, apperror.NewNotFound("confirmation token")
	}
	if confirmation.Consumed() {
		return nil, apperror.NewPrecondition(apperror.CodeAlreadyConfirmed,
			"Vous avez déjà confirmé votre présence à cet entretien")
	}

	outcome, err := s.UpdateStatus(ctx, email, entity.OutcomeStatusConfirmed)
	if err != nil {
		return nil, err
	}

	if err := s.confirmationRepo.MarkConsumed(ctx, confirmation.Id, time.Now()); err != nil {
		// The outcome is already confirmed; a stale token row only risks a
		// second click hitting the idempotent path below it.
		s.log.Warn("Status", "Failed to mark confirmation token consumed", map[string]interface{}{
			"email": email,
			"error": err.Error(),
		})
	}

	return outcome, nil
}

func (s *statusService) ListOutcomes(ctx context.Context, limit int) ([]dto.OutcomeResponse, error) {
	outcomes, err := s.outcomeRepo.FindRecent(ctx, limit)
	if err != nil {
		return nil, err
	}
	return mapOutcomes(outcomes), nil
}

func (s *statusService) RunReminderSweep(ctx context.Context) (*dto.SweepResponse, error) {
	now := time.Now()
	eligible, err := s.outcomeRepo.FindPendingForReminder(ctx, now.Add(-ReminderWindowMax), now.Add(-ReminderWindowMin))
	if err != nil {
		return nil, err
	}

	result := &dto.SweepResponse{Total: len(eligible)}
	for i, outcome := range eligible {
		if _, err := s.dispatchService.SendReminder(ctx, outcome.CandidateEmail); err != nil {
			result.Failed++
			s.log.Warn("Sweep", "Reminder failed", map[string]interface{}{
				"email": outcome.CandidateEmail,
				"error": err.Error(),
			})
		} else {
			result.Sent++
		}

		// Pace outbound sends; intentional throttling, not a correctness
		// requirement.
		if s.sweepDelay > 0 && i < len(eligible)-1 {
			select {
			case <-ctx.Done():
				return result, ctx.Err()
			case <-time.After(s.sweepDelay):
			}
		}
	}

	s.log.Info("Sweep", "Reminder sweep complete", map[string]interface{}{
		"sent":   result.Sent,
		"failed": result.Failed,
		"total":  result.Total,
	})
	return result, nil
}

func (s *statusService) publishStatusChanged(outcome *entity.DispatchOutcome) {
	if s.publisher == nil {
		return
	}
	event := events.OutcomeEvent{
		Kind:           events.KindStatusChanged,
		OutcomeId:      outcome.Id,
		CandidateEmail: outcome.CandidateEmail,
		CandidateName:  outcome.CandidateName,
		Status:         outcome.Status,
		OccurredAt:     time.Now(),
	}
	msg, err := event.NewMessage()
	if err != nil {
		s.log.Warn("Status", "Failed to serialize status event", map[string]interface{}{"error": err.Error()})
		return
	}
	if err := s.publisher.Publish(events.TopicOutcomeEvents, msg); err != nil {
		s.log.Warn("Status", "Failed to publish status event", map[string]interface{}{"error": err.Error()})
	}
}
