package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/seyitm/baby-ai/internal"
	"github.com/seyitm/baby-ai/internal/llm"
	"github.com/seyitm/baby-ai/internal/report"
	"github.com/seyitm/baby-ai/internal/storage"
)

var validate = validator.New()

type ChatRequest struct {
	Question  string `json:"question" validate:"required"`
	SessionID string `json:"session_id,omitempty" validate:"omitempty,max=128"`
	BabyID    string `json:"baby_id,omitempty" validate:"omitempty,max=128"`
}

type ChatResult struct {
	Response  string `json:"response"`
	SessionID string `json:"session_id"`
}

func ValidateChatRequest(req *ChatRequest) error {
	return validate.Struct(req)
}

// ContextKinds are the report kinds pulled into the prompt, most
// comprehensive first.
var ContextKinds = []internal.ReportKind{
	internal.ReportWeeklySummary,
	internal.ReportEndOfDay,
}

// ChatService runs one chat turn: resolve the baby, assemble record context,
// trim history, call the model and persist the exchange. Every store failure
// degrades the reply instead of failing the request; only the final response
// path is mandatory.
type ChatService struct {
	babies     storage.BabyRepository
	history    storage.ChatHistoryRepository
	assembler  *report.Assembler
	llm        llm.Client
	logger     internal.Logger
	maxHistory int
}

func NewChatService(
	babies storage.BabyRepository,
	history storage.ChatHistoryRepository,
	assembler *report.Assembler,
	client llm.Client,
	logger internal.Logger,
	maxHistory int,
) *ChatService {
	if maxHistory <= 0 {
		maxHistory = 20
	}
	return &ChatService{
		babies:     babies,
		history:    history,
		assembler:  assembler,
		llm:        client,
		logger:     logger,
		maxHistory: maxHistory,
	}
}

func (s *ChatService) Chat(ctx context.Context, user *internal.User, token string, req *ChatRequest) *ChatResult {
	sessionID := req.SessionID
	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	babyID := req.BabyID
	if babyID == "" {
		id, err := s.babies.LatestBabyID(ctx, user.ID, token)
		if err != nil {
			s.logger.Warnf("baby lookup failed for user=%s: %v", user.ID, err)
		}
		babyID = id
	}

	contextText := ""
	if babyID != "" {
		contextText = s.assembler.Combine(ctx, babyID, token, ContextKinds, report.WeeklyFirst)
	}

	messages := s.buildMessages(ctx, sessionID, token, contextText, req.Question)

	answer, err := s.llm.Chat(ctx, messages)
	if err != nil {
		s.logger.Errorf("completion failed session=%s: %v", sessionID, err)
		answer = llm.ApologyMessage
	}

	// History writes are best-effort; the reply still goes out if they fail.
	s.append(ctx, sessionID, user.ID, token, internal.RoleHuman, req.Question)
	s.append(ctx, sessionID, user.ID, token, internal.RoleAI, answer)

	return &ChatResult{Response: answer, SessionID: sessionID}
}

func (s *ChatService) buildMessages(ctx context.Context, sessionID, token, contextText, question string) []llm.Message {
	system := llm.GeneralSystemPrompt
	if contextText != "" {
		system = llm.ContextSystemPrompt + contextText
	}
	messages := []llm.Message{{Role: "system", Content: system}}

	history, err := s.history.ListMessages(ctx, sessionID, token)
	if err != nil {
		s.logger.Warnf("history fetch failed session=%s: %v", sessionID, err)
		history = nil
	}
	if len(history) > s.maxHistory {
		history = history[len(history)-s.maxHistory:]
	}
	for _, m := range history {
		if m.Content == "" {
			continue
		}
		if m.Role != internal.RoleHuman && m.Role != internal.RoleAI {
			continue
		}
		messages = append(messages, llm.Message{Role: m.Role, Content: m.Content})
	}

	return append(messages, llm.Message{Role: internal.RoleHuman, Content: question})
}

func (s *ChatService) append(ctx context.Context, sessionID, userID, token, role, content string) {
	msg := &internal.ChatMessage{
		SessionID: sessionID,
		UserID:    userID,
		Role:      role,
		Content:   content,
	}
	if err := s.history.AppendMessage(ctx, msg, token); err != nil {
		s.logger.Warnf("history save failed session=%s role=%s: %v", sessionID, role, err)
	}
}
