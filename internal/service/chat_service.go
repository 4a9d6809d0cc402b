package service

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"ats-scheduler-be/internal/constant"
	"ats-scheduler-be/internal/dto"
	"ats-scheduler-be/internal/entity"
	"ats-scheduler-be/internal/pkg/apperror"
	"ats-scheduler-be/internal/pkg/logger"
	"ats-scheduler-be/internal/repository/contract"
	"ats-scheduler-be/internal/repository/memory"
	"ats-scheduler-be/pkg/extract"
	"ats-scheduler-be/pkg/llm"
)

const recentOutcomesLimit = 5

type IChatService interface {
	SendChat(ctx context.Context, req *dto.ChatRequest) (*dto.ChatResponse, error)
}

type chatService struct {
	llmProvider     llm.LLMProvider
	dispatchService IDispatchService
	outcomeRepo     contract.OutcomeRepository
	contextCache    *memory.ContextCache
	extractor       extract.Extractor
	log             logger.ILogger
}

func NewChatService(
	llmProvider llm.LLMProvider,
	dispatchService IDispatchService,
	outcomeRepo contract.OutcomeRepository,
	contextCache *memory.ContextCache,
	extractor extract.Extractor,
	log logger.ILogger,
) IChatService {
	return &chatService{
		llmProvider:     llmProvider,
		dispatchService: dispatchService,
		outcomeRepo:     outcomeRepo,
		contextCache:    contextCache,
		extractor:       extractor,
		log:             log,
	}
}

const sentinelEmailArg = `:\s*<?\s*([a-zA-Z0-9._-]+@[a-zA-Z0-9._-]+\.[a-zA-Z0-9_-]+)\s*>?`

// Built from the same constants the system prompt advertises, so the prompt
// and the detectors cannot drift apart.
var (
	sendEmailRe = regexp.MustCompile(`(?i)` + constant.SentinelSendEmail)
	reminderRe  = regexp.MustCompile(`(?i)` + constant.SentinelSendReminder + sentinelEmailArg)
	statusRe    = regexp.MustCompile(`(?i)` + constant.SentinelCheckStatus + sentinelEmailArg)

	// Dangling sentinel prefixes left behind when the model emits a token
	// without a usable argument.
	danglingSentinelRe = regexp.MustCompile(`(?i)(?:` + constant.SentinelSendReminder + `|` + constant.SentinelCheckStatus + `):?`)
)

func (s *chatService) SendChat(ctx context.Context, req *dto.ChatRequest) (*dto.ChatResponse, error) {
	if strings.TrimSpace(req.Message) == "" {
		return nil, apperror.NewValidation("message is required", "message")
	}

	history := sanitizeHistory(req.ConversationHistory)
	recent := s.recentOutcomes(ctx)

	messages := make([]llm.Message, 0, len(history)+2)
	messages = append(messages, llm.Message{
		Role:    "system",
		Content: constant.AssistantSystemPrompt + "\n\nContexte actuel: " + contextLine(recent),
	})
	messages = append(messages, history...)
	messages = append(messages, llm.Message{Role: "user", Content: req.Message})

	// A generation failure is fatal for the whole turn: no partial reply,
	// no dispatch attempt.
	reply, err := s.llmProvider.Chat(ctx, messages, llm.WithTemperature(0.7), llm.WithMaxTokens(500))
	if err != nil {
		return nil, apperror.NewUpstream("llm", err)
	}

	resp := &dto.ChatResponse{
		RecentOutcomes: mapOutcomes(recent),
	}

	switch {
	case reminderRe.MatchString(reply):
		resp.Response = s.handleReminderTurn(ctx, reply)
	case statusRe.MatchString(reply):
		resp.Response = s.handleStatusTurn(ctx, reply)
	case sendEmailRe.MatchString(reply):
		s.handleInvitationTurn(ctx, history, req.Message, reply, resp)
	default:
		resp.Response = reply
	}

	// Defensive cleanup: no sentinel ever reaches the user, even when no
	// action fired.
	resp.Response = stripSentinels(resp.Response)

	return resp, nil
}

func (s *chatService) handleInvitationTurn(ctx context.Context, history []llm.Message, userMessage, reply string, resp *dto.ChatResponse) {
	resp.ShouldSendEmail = true

	transcript := buildTranscript(history, userMessage, reply)
	record, missing := s.extractor.Extract(transcript)
	if len(missing) > 0 {
		resp.MissingFields = missing
		resp.Response = reply + fmt.Sprintf(
			"\n\nIl me manque encore les informations suivantes : %s.",
			strings.Join(missing, ", "),
		)
		return
	}

	outcome, err := s.dispatchService.SendInvitation(ctx, record)
	if err != nil {
		// Non-fatal for the conversation: the reply still goes out with a
		// warning appended.
		s.log.Error("Chat", "Automatic invitation dispatch failed", map[string]interface{}{
			"email": record.CandidateEmail,
			"error": err.Error(),
		})
		resp.Response = reply + "\n\n⚠️ L'envoi automatique de l'email n'a pas abouti. Veuillez réessayer ou envoyer la convocation manuellement."
		return
	}

	resp.EmailSent = true
	resp.EmailResult = &dto.EmailResultDTO{
		OutcomeId: outcome.Id.String(),
		Email:     outcome.CandidateEmail,
	}
	resp.Response = sendEmailRe.ReplaceAllString(reply,
		fmt.Sprintf("✅ Email de convocation envoyé à %s.", record.CandidateEmail))
}

func (s *chatService) handleReminderTurn(ctx context.Context, reply string) string {
	email := reminderRe.FindStringSubmatch(reply)[1]
	display := reminderRe.ReplaceAllString(reply, "")

	count, err := s.dispatchService.SendReminder(ctx, email)
	if err != nil {
		s.log.Warn("Chat", "Reminder from conversation failed", map[string]interface{}{
			"email": email,
			"error": err.Error(),
		})
		return display
	}
	return display + fmt.Sprintf("\n\n✅ Rappel envoyé à %s (rappel n°%d).", email, count)
}

func (s *chatService) handleStatusTurn(ctx context.Context, reply string) string {
	email := statusRe.FindStringSubmatch(reply)[1]
	display := statusRe.ReplaceAllString(reply, "")

	outcome, err := s.outcomeRepo.FindLatestByEmail(ctx, email)
	if err != nil || outcome == nil {
		if err != nil {
			s.log.Error("Chat", "Status lookup failed", map[string]interface{}{
				"email": email,
				"error": err.Error(),
			})
		}
		return display
	}

	block := fmt.Sprintf("\n\n📋 Statut de %s : %s\nConvocation envoyée le : %s",
		email, outcome.Status, outcome.SentAt.Format("02/01/2006"))
	if outcome.ConfirmedAt != nil {
		block += fmt.Sprintf("\nConfirmé le : %s", outcome.ConfirmedAt.Format("02/01/2006"))
	}
	return display + block
}

// sanitizeHistory drops malformed entries (non-object, missing role or
// content) and coerces unknown roles to "user".
func sanitizeHistory(raw []json.RawMessage) []llm.Message {
	history := make([]llm.Message, 0, len(raw))
	for _, entry := range raw {
		var msg dto.ChatHistoryEntry
		if err := json.Unmarshal(entry, &msg); err != nil {
			continue
		}
		if msg.Role == "" || msg.Content == "" {
			continue
		}
		if msg.Role != "user" && msg.Role != "assistant" {
			msg.Role = "user"
		}
		history = append(history, llm.Message{Role: msg.Role, Content: msg.Content})
	}
	return history
}

func buildTranscript(history []llm.Message, userMessage, reply string) string {
	parts := make([]string, 0, len(history)+2)
	for _, msg := range history {
		parts = append(parts, msg.Content)
	}
	parts = append(parts, userMessage, reply)
	return strings.Join(parts, "\n")
}

func contextLine(recent []*entity.DispatchOutcome) string {
	if len(recent) == 0 {
		return "Aucun candidat récent trouvé."
	}
	summaries := make([]string, len(recent))
	for i, o := range recent {
		summaries[i] = fmt.Sprintf("%s (%s)", o.CandidateName, o.Status)
	}
	return "Candidats récents: " + strings.Join(summaries, ", ")
}

func (s *chatService) recentOutcomes(ctx context.Context) []*entity.DispatchOutcome {
	if cached, found := s.contextCache.GetRecent(); found {
		return cached
	}

	recent, err := s.outcomeRepo.FindRecent(ctx, recentOutcomesLimit)
	if err != nil {
		// Context is best effort; the conversation continues without it.
		s.log.Warn("Chat", "Failed to load recent outcomes for context", map[string]interface{}{
			"error": err.Error(),
		})
		return nil
	}
	s.contextCache.SaveRecent(recent)
	return recent
}

func stripSentinels(text string) string {
	text = reminderRe.ReplaceAllString(text, "")
	text = statusRe.ReplaceAllString(text, "")
	text = sendEmailRe.ReplaceAllString(text, "")
	text = danglingSentinelRe.ReplaceAllString(text, "")
	return strings.TrimSpace(text)
}

func mapOutcome(o *entity.DispatchOutcome) dto.OutcomeResponse {
	return dto.OutcomeResponse{
		Id:                o.Id,
		CandidateName:     o.CandidateName,
		CandidateEmail:    o.CandidateEmail,
		PostTitle:         o.PostTitle,
		InterviewDate:     o.InterviewDate,
		InterviewTime:     o.InterviewTime,
		InterviewDuration: o.InterviewDuration,
		InterviewLocation: o.InterviewLocation,
		Status:            o.Status,
		ReminderCount:     o.ReminderCount,
		LastReminderAt:    o.LastReminderAt,
		ConfirmedAt:       o.ConfirmedAt,
		SentAt:            o.SentAt,
	}
}

func mapOutcomes(outcomes []*entity.DispatchOutcome) []dto.OutcomeResponse {
	result := make([]dto.OutcomeResponse, len(outcomes))
	for i, o := range outcomes {
		result[i] = mapOutcome(o)
	}
	return result
}
