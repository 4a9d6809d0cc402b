package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"time"

	"ats-scheduler-be/internal/constant"
	"ats-scheduler-be/internal/entity"
	"ats-scheduler-be/internal/pkg/apperror"
	"ats-scheduler-be/internal/pkg/logger"
	"ats-scheduler-be/internal/pkg/mailer"
	"ats-scheduler-be/internal/repository/contract"
	"ats-scheduler-be/internal/repository/memory"
	"ats-scheduler-be/pkg/events"
	"ats-scheduler-be/pkg/llm"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"
)

type IDispatchService interface {
	// SendInvitation renders and sends the invitation email, then persists
	// a DispatchOutcome. Delivery failure is fatal; persistence failure
	// after a successful send is logged and swallowed.
	SendInvitation(ctx context.Context, record *entity.InvitationRecord) (*entity.DispatchOutcome, error)

	// SendReminder sends a follow-up for the latest outcome of the email
	// and returns the new reminder count.
	SendReminder(ctx context.Context, email string) (int, error)
}

type dispatchService struct {
	llmProvider      llm.LLMProvider
	emailService     mailer.IEmailService
	outcomeRepo      contract.OutcomeRepository
	confirmationRepo contract.ConfirmationRepository
	contextCache     *memory.ContextCache
	publisher        message.Publisher
	log              logger.ILogger
	baseURL          string
}

func NewDispatchService(
	llmProvider llm.LLMProvider,
	emailService mailer.IEmailService,
	outcomeRepo contract.OutcomeRepository,
	confirmationRepo contract.ConfirmationRepository,
	contextCache *memory.ContextCache,
	publisher message.Publisher,
	log logger.ILogger,
	baseURL string,
) IDispatchService {
	return &dispatchService{
		llmProvider:      llmProvider,
		emailService:     emailService,
		outcomeRepo:      outcomeRepo,
		confirmationRepo: confirmationRepo,
		contextCache:     contextCache,
		publisher:        publisher,
		log:              log,
		baseURL:          baseURL,
	}
}

type emailContent struct {
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

var codeFenceRe = regexp.MustCompile("(?s)^```(?:json)?\\s*(.*?)\\s*```$")

func (s *dispatchService) SendInvitation(ctx context.Context, record *entity.InvitationRecord) (*entity.DispatchOutcome, error) {
	if record.InterviewDuration == "" {
		record.InterviewDuration = entity.DefaultDuration
	}
	if record.InterviewLocation == "" {
		record.InterviewLocation = entity.LocationDefault
	}

	content, usedFallback := s.generateContent(ctx, record)

	token := uuid.NewString()
	confirmURL := s.confirmationURL(record.CandidateEmail, token)
	calendarURL := mailer.GoogleCalendarLink(
		"Entretien - "+record.PostTitle,
		record.InterviewDate,
		record.InterviewTime,
		record.InterviewDuration,
	)

	html := mailer.InvitationHTML(record, content.Body, confirmURL, calendarURL)
	if err := s.emailService.Send(record.CandidateEmail, content.Subject, html); err != nil {
		return nil, apperror.NewUpstream("mailer", err)
	}

	// From here on the email is out: nothing below may fail the call.
	now := time.Now()
	outcome := &entity.DispatchOutcome{
		Id:                uuid.New(),
		CandidateName:     record.CandidateName,
		CandidateEmail:    record.CandidateEmail,
		PostTitle:         record.PostTitle,
		InterviewDate:     record.InterviewDate,
		InterviewTime:     record.InterviewTime,
		InterviewDuration: record.InterviewDuration,
		InterviewLocation: record.InterviewLocation,
		EmailSubject:      content.Subject,
		EmailBody:         content.Body,
		Status:            entity.OutcomeStatusSent,
		SentAt:            now,
		CreatedAt:         now,
		Meta:              map[string]interface{}{"fallback": usedFallback},
	}

	if err := s.outcomeRepo.Create(ctx, outcome); err != nil {
		s.log.Warn("Dispatch", "Outcome persistence failed after send", map[string]interface{}{
			"email": record.CandidateEmail,
			"error": err.Error(),
		})
	}

	confirmation := &entity.Confirmation{
		Id:             uuid.New(),
		CandidateEmail: record.CandidateEmail,
		Token:          token,
		CreatedAt:      now,
	}
	if err := s.confirmationRepo.Create(ctx, confirmation); err != nil {
		s.log.Warn("Dispatch", "Confirmation token persistence failed after send", map[string]interface{}{
			"email": record.CandidateEmail,
			"error": err.Error(),
		})
	}

	s.contextCache.Invalidate()
	s.publish(events.OutcomeEvent{
		Kind:           events.KindInvitationSent,
		OutcomeId:      outcome.Id,
		CandidateEmail: outcome.CandidateEmail,
		CandidateName:  outcome.CandidateName,
		Status:         outcome.Status,
		OccurredAt:     now,
	})

	s.log.Info("Dispatch", "Invitation sent", map[string]interface{}{
		"email":    record.CandidateEmail,
		"post":     record.PostTitle,
		"fallback": usedFallback,
	})
	return outcome, nil
}

func (s *dispatchService) SendReminder(ctx context.Context, email string) (int, error) {
	outcome, err := s.outcomeRepo.FindLatestByEmail(ctx, email)
	if err != nil {
		return 0, fmt.Errorf("lookup outcome: %w", err)
	}
	if outcome == nil {
		return 0, apperror.NewNotFound("dispatch outcome")
	}
	if outcome.IsConfirmed() {
		return 0, apperror.NewPrecondition(apperror.CodeAlreadyConfirmed, "Le candidat a déjà confirmé")
	}
	if outcome.ReminderLimitReached() {
		return 0, apperror.NewPrecondition(apperror.CodeReminderLimitReached, "Nombre maximum de rappels atteint (3)")
	}

	token := uuid.NewString()
	confirmURL := s.confirmationURL(email, token)
	subject := fmt.Sprintf("Rappel - Confirmation d'entretien pour %s", outcome.PostTitle)
	html := mailer.ReminderHTML(outcome, confirmURL)

	if err := s.emailService.Send(email, subject, html); err != nil {
		return 0, apperror.NewUpstream("mailer", err)
	}

	now := time.Now()
	if err := s.confirmationRepo.Create(ctx, &entity.Confirmation{
		Id:             uuid.New(),
		CandidateEmail: email,
		Token:          token,
		CreatedAt:      now,
	}); err != nil {
		s.log.Warn("Dispatch", "Reminder token persistence failed after send", map[string]interface{}{
			"email": email,
			"error": err.Error(),
		})
	}

	// Not atomic with the send: a failed update leaves the counter stale,
	// which is accepted and logged, never retried.
	newCount := outcome.ReminderCount + 1
	if err := s.outcomeRepo.IncrementReminder(ctx, outcome.Id, now); err != nil {
		s.log.Warn("Dispatch", "Reminder counter update failed after send", map[string]interface{}{
			"email": email,
			"error": err.Error(),
		})
	}

	s.contextCache.Invalidate()
	s.publish(events.OutcomeEvent{
		Kind:           events.KindReminderSent,
		OutcomeId:      outcome.Id,
		CandidateEmail: outcome.CandidateEmail,
		CandidateName:  outcome.CandidateName,
		Status:         outcome.Status,
		ReminderCount:  newCount,
		OccurredAt:     now,
	})

	s.log.Info("Dispatch", "Reminder sent", map[string]interface{}{
		"email": email,
		"count": newCount,
	})
	return newCount, nil
}

// generateContent asks the LLM for subject and body. Non-JSON output falls
// back to the deterministic template, which never fails.
func (s *dispatchService) generateContent(ctx context.Context, record *entity.InvitationRecord) (emailContent, bool) {
	prompt := fmt.Sprintf(constant.EmailGenerationPrompt,
		record.CandidateName,
		record.PostTitle,
		record.InterviewDate,
		record.InterviewTime,
		record.InterviewDuration,
		record.InterviewLocation,
	)

	raw, err := s.llmProvider.Generate(ctx, prompt)
	if err != nil {
		s.log.Warn("Dispatch", "Email content generation failed, using fallback", map[string]interface{}{
			"email": record.CandidateEmail,
			"error": err.Error(),
		})
		return fallbackContent(record), true
	}

	var content emailContent
	if err := json.Unmarshal([]byte(stripCodeFence(raw)), &content); err != nil || content.Subject == "" || content.Body == "" {
		s.log.Warn("Dispatch", "Generated email content is not valid JSON, using fallback", map[string]interface{}{
			"email": record.CandidateEmail,
		})
		return fallbackContent(record), true
	}
	return content, false
}

// stripCodeFence removes a markdown fence the provider may wrap around JSON.
func stripCodeFence(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if m := codeFenceRe.FindStringSubmatch(trimmed); m != nil {
		return m[1]
	}
	return trimmed
}

func fallbackContent(record *entity.InvitationRecord) emailContent {
	return emailContent{
		Subject: fmt.Sprintf("Convocation à un entretien - %s", record.PostTitle),
		Body: fmt.Sprintf(
			"Bonjour %s,\n\n"+
				"Nous avons le plaisir de vous convier à un entretien pour le poste de %s.\n\n"+
				"Date : %s\nHeure : %s\nDurée : %s\nModalité : %s\n\n"+
				"Merci de confirmer votre présence via le lien ci-dessous.\n\n"+
				"Cordialement,\nL'équipe RH",
			record.CandidateName,
			record.PostTitle,
			record.InterviewDate,
			record.InterviewTime,
			record.InterviewDuration,
			record.InterviewLocation,
		),
	}
}

func (s *dispatchService) confirmationURL(email, token string) string {
	return fmt.Sprintf("%s/api/confirm?email=%s&token=%s", s.baseURL, url.QueryEscape(email), token)
}

func (s *dispatchService) publish(event events.OutcomeEvent) {
	if s.publisher == nil {
		return
	}
	msg, err := event.NewMessage()
	if err != nil {
		s.log.Warn("Dispatch", "Failed to serialize outcome event", map[string]interface{}{"error": err.Error()})
		return
	}
	if err := s.publisher.Publish(events.TopicOutcomeEvents, msg); err != nil {
		s.log.Warn("Dispatch", "Failed to publish outcome event", map[string]interface{}{"error": err.Error()})
	}
}
