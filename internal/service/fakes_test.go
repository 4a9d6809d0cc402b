package service

import (
	"context"
	"time"

	"ats-scheduler-be/internal/entity"
	"ats-scheduler-be/pkg/llm"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"
)

type fakeLLM struct {
	chatReply     string
	chatErr       error
	generateReply string
	generateErr   error
	lastHistory   []llm.Message
	lastPrompt    string
}

func (f *fakeLLM) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error) {
	f.lastHistory = history
	return f.chatReply, f.chatErr
}

func (f *fakeLLM) Generate(ctx context.Context, prompt string, options ...llm.Option) (string, error) {
	f.lastPrompt = prompt
	return f.generateReply, f.generateErr
}

type sentEmail struct {
	To      string
	Subject string
	Body    string
}

type fakeMailer struct {
	sendErr error
	sent    []sentEmail
}

func (f *fakeMailer) Send(toEmail, subject, htmlBody string) error {
	if f.sendErr != nil {
		return f.sendErr
	}
	f.sent = append(f.sent, sentEmail{To: toEmail, Subject: subject, Body: htmlBody})
	return nil
}

type fakeOutcomeRepo struct {
	latest    *entity.DispatchOutcome
	recent    []*entity.DispatchOutcome
	pending   []*entity.DispatchOutcome
	created   []*entity.DispatchOutcome
	updated   []*entity.DispatchOutcome
	findErr   error
	createErr error
	updateErr error
	sweepFrom time.Time
	sweepTo   time.Time
}

func (f *fakeOutcomeRepo) Create(ctx context.Context, outcome *entity.DispatchOutcome) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.created = append(f.created, outcome)
	return nil
}

func (f *fakeOutcomeRepo) Update(ctx context.Context, outcome *entity.DispatchOutcome) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	f.updated = append(f.updated, outcome)
	return nil
}

func (f *fakeOutcomeRepo) FindLatestByEmail(ctx context.Context, email string) (*entity.DispatchOutcome, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	return f.latest, nil
}

func (f *fakeOutcomeRepo) FindRecent(ctx context.Context, limit int) ([]*entity.DispatchOutcome, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	return f.recent, nil
}

func (f *fakeOutcomeRepo) FindPendingForReminder(ctx context.Context, from, to time.Time) ([]*entity.DispatchOutcome, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	f.sweepFrom = from
	f.sweepTo = to
	return f.pending, nil
}

func (f *fakeOutcomeRepo) IncrementReminder(ctx context.Context, id uuid.UUID, at time.Time) error {
	if f.latest != nil && f.latest.Id == id {
		f.latest.ReminderCount++
		f.latest.LastReminderAt = &at
	}
	return nil
}

type fakeConfirmationRepo struct {
	byToken  *entity.Confirmation
	created  []*entity.Confirmation
	consumed []uuid.UUID
}

func (f *fakeConfirmationRepo) Create(ctx context.Context, confirmation *entity.Confirmation) error {
	f.created = append(f.created, confirmation)
	return nil
}

func (f *fakeConfirmationRepo) FindByToken(ctx context.Context, token string) (*entity.Confirmation, error) {
	if f.byToken != nil && f.byToken.Token == token {
		return f.byToken, nil
	}
	return nil, nil
}

func (f *fakeConfirmationRepo) MarkConsumed(ctx context.Context, id uuid.UUID, at time.Time) error {
	f.consumed = append(f.consumed, id)
	if f.byToken != nil && f.byToken.Id == id {
		f.byToken.ConfirmedAt = &at
	}
	return nil
}

type fakeDispatchService struct {
	invitationOutcome *entity.DispatchOutcome
	invitationErr     error
	lastRecord        *entity.InvitationRecord
	reminderCount     int
	reminderErr       map[string]error
	remindedEmails    []string
}

func (f *fakeDispatchService) SendInvitation(ctx context.Context, record *entity.InvitationRecord) (*entity.DispatchOutcome, error) {
	f.lastRecord = record
	if f.invitationErr != nil {
		return nil, f.invitationErr
	}
	return f.invitationOutcome, nil
}

func (f *fakeDispatchService) SendReminder(ctx context.Context, email string) (int, error) {
	if err, ok := f.reminderErr[email]; ok {
		return 0, err
	}
	f.remindedEmails = append(f.remindedEmails, email)
	if f.reminderCount != 0 {
		return f.reminderCount, nil
	}
	return 1, nil
}

type fakePublisher struct {
	published map[string][]*message.Message
}

func (f *fakePublisher) Publish(topic string, messages ...*message.Message) error {
	if f.published == nil {
		f.published = make(map[string][]*message.Message)
	}
	f.published[topic] = append(f.published[topic], messages...)
	return nil
}

func (f *fakePublisher) Close() error { return nil }

type noopLogger struct{}

func (noopLogger) Debug(module, message string, details map[string]interface{}) {}
func (noopLogger) Info(module, message string, details map[string]interface{})  {}
func (noopLogger) Warn(module, message string, details map[string]interface{})  {}
func (noopLogger) Error(module, message string, details map[string]interface{}) {}
func (noopLogger) Sync() error                                                  { return nil }
