package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	sqlite "github.com/glebarez/sqlite" // pure-Go SQLite
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/colormebooth/go-chat-gateway/internal/domain"
	"github.com/colormebooth/go-chat-gateway/internal/knowledge"
	"github.com/colormebooth/go-chat-gateway/internal/repo"
	"github.com/colormebooth/go-chat-gateway/internal/session"
	"github.com/colormebooth/go-chat-gateway/internal/webhook"
)

// ---------- test helpers ----------

func newSvcDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:chatsvc_%s?mode=memory&cache=shared", uuid.NewString())

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	db.Exec("PRAGMA foreign_keys=ON;")
	if err := repo.AutoMigrate(db); err != nil {
		t.Fatalf("automigrate: %v", err)
	}
	return db
}

type fakeChatbot struct {
	res  *webhook.ChatResult
	err  error
	reqs []webhook.ChatRequest
}

func (f *fakeChatbot) SendChatMessage(_ context.Context, req webhook.ChatRequest) (*webhook.ChatResult, error) {
	f.reqs = append(f.reqs, req)
	if f.err != nil {
		return nil, f.err
	}
	res := *f.res
	return &res, nil
}

func newChatService(t *testing.T, bot Chatbot) (*ChatService, *gorm.DB) {
	t.Helper()
	db := newSvcDB(t)
	store, err := session.NewStore(session.KindMemory, session.Options{})
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	return &ChatService{
		DB:           db,
		Sessions:     session.NewManager(store),
		Chatbot:      bot,
		Knowledge:    knowledge.Default(),
		HistoryLimit: 20,
	}, db
}

// ---------- Converse() ----------

func TestConverse_EmptyMessage(t *testing.T) {
	s, _ := newChatService(t, &fakeChatbot{})
	if _, err := s.Converse(context.Background(), ConverseInput{Message: "   "}); !errors.Is(err, ErrEmptyMessage) {
		t.Fatalf("expected ErrEmptyMessage, got %v", err)
	}
}

func TestConverse_TooLong(t *testing.T) {
	s, _ := newChatService(t, &fakeChatbot{})
	s.MaxMessageRunes = 5
	if _, err := s.Converse(context.Background(), ConverseInput{Message: "tell me everything"}); !errors.Is(err, ErrTooLong) {
		t.Fatalf("expected ErrTooLong, got %v", err)
	}
}

func TestConverse_MintsSessionAndPersistsPair(t *testing.T) {
	bot := &fakeChatbot{res: &webhook.ChatResult{Response: "happy to help"}}
	s, db := newChatService(t, bot)
	ctx := context.Background()

	res, err := s.Converse(ctx, ConverseInput{
		Message:   "what areas do you serve?",
		PageURL:   "/weddings",
		EventType: domain.EventWedding,
	})
	if err != nil {
		t.Fatalf("Converse: %v", err)
	}
	if !res.NewSession || res.SessionID == "" {
		t.Fatalf("expected a minted session, got %+v", res)
	}
	if res.Source != AnswerWebhook || res.Reply.Content != "happy to help" {
		t.Fatalf("unexpected reply: %+v", res)
	}

	row, err := repo.GetSession(ctx, db, res.SessionID)
	if err != nil {
		t.Fatalf("session row missing: %v", err)
	}
	if row.EventType != domain.EventWedding {
		t.Fatalf("session context wrong: %+v", row)
	}

	msgs, err := repo.ListMessages(ctx, db, res.SessionID, 0)
	if err != nil {
		t.Fatalf("ListMessages: %v", err)
	}
	if len(msgs) != 2 || msgs[0].Role != domain.RoleUser || msgs[1].Role != domain.RoleAssistant {
		t.Fatalf("expected persisted pair, got %+v", msgs)
	}
}

func TestConverse_ReusesSessionAndShipsHistory(t *testing.T) {
	bot := &fakeChatbot{res: &webhook.ChatResult{Response: "ok"}}
	s, _ := newChatService(t, bot)
	ctx := context.Background()

	first, err := s.Converse(ctx, ConverseInput{Message: "hello"})
	if err != nil {
		t.Fatalf("first Converse: %v", err)
	}
	second, err := s.Converse(ctx, ConverseInput{SessionID: first.SessionID, Message: "and pricing?"})
	if err != nil {
		t.Fatalf("second Converse: %v", err)
	}
	if second.NewSession || second.SessionID != first.SessionID {
		t.Fatalf("session not reused: %+v", second)
	}

	req := bot.reqs[1]
	if len(req.ConversationHistory) != 2 {
		t.Fatalf("history = %d messages, want the first exchange", len(req.ConversationHistory))
	}
	if req.ConversationHistory[0].Content != "hello" {
		t.Fatalf("history order wrong: %+v", req.ConversationHistory)
	}
}

func TestConverse_HistoryLimitTrimsOldTurns(t *testing.T) {
	bot := &fakeChatbot{res: &webhook.ChatResult{Response: "ok"}}
	s, _ := newChatService(t, bot)
	s.HistoryLimit = 2
	ctx := context.Background()

	first, err := s.Converse(ctx, ConverseInput{Message: "one"})
	if err != nil {
		t.Fatalf("Converse: %v", err)
	}
	for _, m := range []string{"two", "three"} {
		if _, err := s.Converse(ctx, ConverseInput{SessionID: first.SessionID, Message: m}); err != nil {
			t.Fatalf("Converse %q: %v", m, err)
		}
	}

	last := bot.reqs[len(bot.reqs)-1]
	if len(last.ConversationHistory) != 2 {
		t.Fatalf("history = %d messages, want 2", len(last.ConversationHistory))
	}
	if last.ConversationHistory[0].Role != domain.RoleUser || last.ConversationHistory[0].Content != "two" {
		t.Fatalf("expected the most recent turns, got %+v", last.ConversationHistory)
	}
}

func TestConverse_CapturePropagates(t *testing.T) {
	bot := &fakeChatbot{res: &webhook.ChatResult{
		Response:           "want a quote?",
		LeadCapturePrompt:  true,
		SuggestedQuestions: []string{"How do I book?"},
	}}
	s, _ := newChatService(t, bot)

	res, err := s.Converse(context.Background(), ConverseInput{Message: "pricing"})
	if err != nil {
		t.Fatalf("Converse: %v", err)
	}
	if !res.CaptureLead || len(res.SuggestedQuestions) != 1 {
		t.Fatalf("capture signals lost: %+v", res)
	}
}

func TestConverse_WebhookDownFallsBackToKnowledge(t *testing.T) {
	bot := &fakeChatbot{err: &webhook.NetworkError{Err: errors.New("refused")}}
	s, db := newChatService(t, bot)
	ctx := context.Background()

	res, err := s.Converse(ctx, ConverseInput{
		Message:   "How much does it cost?",
		EventType: domain.EventDebut,
	})
	if err != nil {
		t.Fatalf("Converse: %v", err)
	}
	if res.Source != AnswerKnowledge {
		t.Fatalf("source = %q, want knowledge", res.Source)
	}
	if !strings.Contains(res.Reply.Content, "debut") {
		t.Fatalf("expected debut pricing answer, got %q", res.Reply.Content)
	}

	// The fallback exchange is still persisted.
	msgs, _ := repo.ListMessages(ctx, db, res.SessionID, 0)
	if len(msgs) != 2 {
		t.Fatalf("transcript = %d messages, want 2", len(msgs))
	}
}

func TestConverse_WebhookDownNoMatchApologizes(t *testing.T) {
	bot := &fakeChatbot{err: errors.New("boom")}
	s, _ := newChatService(t, bot)

	res, err := s.Converse(context.Background(), ConverseInput{Message: "zzz qqq xxx"})
	if err != nil {
		t.Fatalf("Converse: %v", err)
	}
	if res.Source != AnswerFallback || res.Reply.Content != fallbackReply {
		t.Fatalf("expected canned apology, got %+v", res)
	}
}

func TestConverse_NoChatbotGoesStraightToKnowledge(t *testing.T) {
	s, _ := newChatService(t, nil)
	s.Chatbot = nil

	res, err := s.Converse(context.Background(), ConverseInput{Message: "What areas do you serve?"})
	if err != nil {
		t.Fatalf("Converse: %v", err)
	}
	if res.Source != AnswerKnowledge {
		t.Fatalf("source = %q, want knowledge", res.Source)
	}
}

// ---------- History() ----------

func TestHistory_UnknownSession(t *testing.T) {
	s, _ := newChatService(t, &fakeChatbot{})
	if _, _, err := s.History(context.Background(), "missing", 1, 10); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
}

func TestHistory_EmptyTranscript(t *testing.T) {
	s, db := newChatService(t, &fakeChatbot{})
	ctx := context.Background()
	if _, err := repo.CreateSession(ctx, db, "s1", "/", ""); err != nil {
		t.Fatalf("CreateSession: %v", err)
	}

	items, total, err := s.History(ctx, "s1", 1, 10)
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if total != 0 || len(items) != 0 {
		t.Fatalf("expected empty page, got total=%d items=%v", total, items)
	}
}

func TestHistory_PaginatesAndNormalizesParams(t *testing.T) {
	s, db := newChatService(t, &fakeChatbot{})
	ctx := context.Background()
	if _, err := repo.CreateSession(ctx, db, "s1", "/", ""); err != nil {
		t.Fatalf("CreateSession: %v", err)
	}
	base := time.Now().UTC().Add(-time.Hour)
	for i := 0; i < 5; i++ {
		m := &domain.ChatMessage{
			ID:        fmt.Sprintf("m%d", i),
			SessionID: "s1",
			Role:      domain.RoleUser,
			Content:   fmt.Sprintf("msg %d", i),
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}
		if err := db.Create(m).Error; err != nil {
			t.Fatalf("seed: %v", err)
		}
	}

	items, total, err := s.History(ctx, "s1", 2, 2)
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if total != 5 || len(items) != 2 || items[0].ID != "m2" {
		t.Fatalf("page wrong: total=%d items=%+v", total, items)
	}

	// Out-of-range params fall back to defaults.
	items, total, err = s.History(ctx, "s1", 0, -1)
	if err != nil {
		t.Fatalf("History defaults: %v", err)
	}
	if total != 5 || len(items) != 5 {
		t.Fatalf("defaults wrong: total=%d items=%d", total, len(items))
	}
}
