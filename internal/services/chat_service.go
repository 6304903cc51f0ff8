// Package services – ChatService
//
// This file implements ChatService, the application-level component that
// owns a chat turn end to end. It validates input, resolves the visitor's
// session, forwards the turn to the assistant webhook with recent
// conversation history, falls back to the knowledge base when the webhook
// is unreachable, and persists the user/assistant message pair atomically.
//
// Observability: all public methods are OpenTelemetry-instrumented; spans
// include session identifiers and pagination parameters where applicable.
package services

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"gorm.io/gorm"

	"github.com/colormebooth/go-chat-gateway/internal/domain"
	"github.com/colormebooth/go-chat-gateway/internal/knowledge"
	"github.com/colormebooth/go-chat-gateway/internal/repo"
	"github.com/colormebooth/go-chat-gateway/internal/session"
	"github.com/colormebooth/go-chat-gateway/internal/webhook"

	// OpenTelemetry
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Answer sources, reported to the client so the frontend can tell a live
// assistant reply from a canned one.
const (
	AnswerWebhook   = "webhook"
	AnswerKnowledge = "knowledge"
	AnswerFallback  = "fallback"
)

const fallbackReply = "Sorry, I'm having trouble connecting right now. Please try again or fill out the contact form below!"

// Chatbot sends one chat turn to the assistant webhook.
type Chatbot interface {
	SendChatMessage(ctx context.Context, req webhook.ChatRequest) (*webhook.ChatResult, error)
}

// ChatService coordinates session resolution, webhook delivery, and
// transcript persistence.
type ChatService struct {
	DB        *gorm.DB
	Sessions  *session.Manager
	Chatbot   Chatbot
	Knowledge *knowledge.Matcher

	// HistoryLimit bounds how many recent messages travel with each turn.
	// Zero means no bound.
	HistoryLimit int

	// MaxMessageRunes rejects oversized input when > 0.
	MaxMessageRunes int
}

// ConverseInput is one inbound chat turn.
type ConverseInput struct {
	SessionID string
	Message   string
	PageURL   string
	EventType domain.EventType
}

// ConverseResult is the outcome of a chat turn.
type ConverseResult struct {
	SessionID          string
	NewSession         bool
	Reply              *domain.ChatMessage
	Source             string
	CaptureLead        bool
	SuggestedQuestions []string
}

// Converse runs one chat turn: validate, resolve the session, obtain a
// reply (webhook first, knowledge base when the webhook fails, canned
// apology last), and persist both sides of the exchange in one transaction.
//
// Webhook failures are absorbed. The visitor always gets a reply; the
// Source field says where it came from.
func (s *ChatService) Converse(ctx context.Context, in ConverseInput) (*ConverseResult, error) {
	tr := otel.Tracer("services/ChatService")
	ctx, span := tr.Start(ctx, "Converse",
		trace.WithAttributes(
			attribute.String("session.id", in.SessionID),
			attribute.String("event.type", string(in.EventType)),
		),
	)
	defer span.End()

	msg := strings.TrimSpace(in.Message)
	if msg == "" {
		return nil, ErrEmptyMessage
	}
	if s.MaxMessageRunes > 0 && utf8.RuneCountInString(msg) > s.MaxMessageRunes {
		return nil, ErrTooLong
	}

	rec, created, err := s.Sessions.GetOrCreate(ctx, in.SessionID, in.PageURL, in.EventType)
	if err != nil {
		return nil, err
	}

	// The transcript FK needs a session row regardless of which store
	// backs the manager.
	if err := s.ensureSessionRow(ctx, rec); err != nil {
		return nil, err
	}

	history, err := repo.TailMessages(ctx, s.DB, rec.ID, s.HistoryLimit)
	if err != nil {
		return nil, err
	}

	reply, source, capture, suggested := s.resolveReply(ctx, webhook.ChatRequest{
		SessionID:           rec.ID,
		Message:             msg,
		PageURL:             in.PageURL,
		EventType:           rec.EventType,
		ConversationHistory: history,
	})

	var assistantMsg *domain.ChatMessage
	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := repo.AppendMessage(ctx, tx, rec.ID, domain.RoleUser, msg); err != nil {
			return err
		}
		m, err := repo.AppendMessage(ctx, tx, rec.ID, domain.RoleAssistant, reply)
		if err != nil {
			return err
		}
		assistantMsg = m
		return nil
	})
	if err != nil {
		return nil, err
	}

	span.SetAttributes(attribute.String("answer.source", source))

	return &ConverseResult{
		SessionID:          rec.ID,
		NewSession:         created,
		Reply:              assistantMsg,
		Source:             source,
		CaptureLead:        capture,
		SuggestedQuestions: suggested,
	}, nil
}

// resolveReply picks the best available answer for a turn.
func (s *ChatService) resolveReply(ctx context.Context, req webhook.ChatRequest) (reply, source string, capture bool, suggested []string) {
	tr := otel.Tracer("services/ChatService")
	ctx, span := tr.Start(ctx, "resolveReply")
	defer span.End()

	if s.Chatbot != nil {
		res, err := s.Chatbot.SendChatMessage(ctx, req)
		if err == nil {
			return res.Response, AnswerWebhook, res.CaptureLead(), res.SuggestedQuestions
		}
		span.RecordError(err)
	}

	if s.Knowledge != nil {
		if entry := s.Knowledge.Match(req.Message, req.EventType); entry != nil {
			return entry.Answer, AnswerKnowledge, false, nil
		}
	}
	return fallbackReply, AnswerFallback, false, nil
}

func (s *ChatService) ensureSessionRow(ctx context.Context, rec *session.Record) error {
	err := repo.TouchSession(ctx, s.DB, rec.ID, rec.PageURL, rec.EventType)
	if errors.Is(err, repo.ErrNotFound) {
		_, err = repo.CreateSession(ctx, s.DB, rec.ID, rec.PageURL, rec.EventType)
	}
	return err
}

// History returns paginated transcript messages for a session.
func (s *ChatService) History(ctx context.Context, sessionID string, page, pageSize int) ([]domain.ChatMessage, int64, error) {
	tr := otel.Tracer("services/ChatService")
	ctx, span := tr.Start(ctx, "History",
		trace.WithAttributes(
			attribute.String("session.id", sessionID),
			attribute.Int("page", page),
			attribute.Int("page_size", pageSize),
		),
	)
	defer span.End()

	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 20
	}
	offset := (page - 1) * pageSize

	if _, err := repo.GetSession(ctx, s.DB, sessionID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, 0, ErrSessionNotFound
		}
		return nil, 0, err
	}

	total, err := repo.CountMessages(ctx, s.DB, sessionID)
	if err != nil {
		return nil, 0, err
	}
	if total == 0 {
		return []domain.ChatMessage{}, 0, nil
	}

	items, err := repo.ListMessagesPage(ctx, s.DB, sessionID, offset, pageSize)
	return items, total, err
}
