package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/colormebooth/go-chat-gateway/internal/domain"
	"github.com/colormebooth/go-chat-gateway/internal/services"
	"github.com/colormebooth/go-chat-gateway/internal/webhook"
)

// ---------- flexible service stubs ----------

type stubChatSvc struct {
	converse func(context.Context, services.ConverseInput) (*services.ConverseResult, error)
	history  func(context.Context, string, int, int) ([]domain.ChatMessage, int64, error)
}

func (s stubChatSvc) Converse(ctx context.Context, in services.ConverseInput) (*services.ConverseResult, error) {
	if s.converse != nil {
		return s.converse(ctx, in)
	}
	return &services.ConverseResult{
		SessionID: "chat_1_abcdef012",
		Reply:     &domain.ChatMessage{Role: domain.RoleAssistant, Content: "hi", CreatedAt: time.Now().UTC()},
		Source:    services.AnswerWebhook,
	}, nil
}

func (s stubChatSvc) History(ctx context.Context, sessionID string, page, pageSize int) ([]domain.ChatMessage, int64, error) {
	if s.history != nil {
		return s.history(ctx, sessionID, page, pageSize)
	}
	return nil, 0, nil
}

type stubLeadSvc struct {
	submit func(context.Context, domain.LeadData, string) (*webhook.LeadResult, error)
}

func (s stubLeadSvc) Submit(ctx context.Context, lead domain.LeadData, sessionID string) (*webhook.LeadResult, error) {
	if s.submit != nil {
		return s.submit(ctx, lead, sessionID)
	}
	return &webhook.LeadResult{}, nil
}

type stubKB struct {
	match func(string, domain.EventType) *domain.KnowledgeBaseEntry
	n     int
}

func (s stubKB) Match(q string, et domain.EventType) *domain.KnowledgeBaseEntry {
	if s.match != nil {
		return s.match(q, et)
	}
	return nil
}

func (s stubKB) Len() int { return s.n }

func newChatRouter(chat ChatService, lead LeadService, kb KnowledgeBase) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := New(chat, lead, kb)
	r := gin.New()
	r.POST("/chat", h.PostChat)
	r.GET("/sessions/:id/messages", h.ListSessionMessages)
	r.POST("/leads", h.PostLead)
	r.GET("/knowledge/answer", h.GetKnowledgeAnswer)
	return r
}

func postJSON(t *testing.T, r *gin.Engine, path string, payload any) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal payload: %v", err)
	}
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

// ---------- helpers ----------

func Test_clampPagination(t *testing.T) {
	gin.SetMode(gin.TestMode)

	get := func(query string) (int, int) {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Request = httptest.NewRequest(http.MethodGet, "/?"+query, nil)
		return clampPagination(c)
	}

	if p, ps := get(""); p != 1 || ps != 20 {
		t.Fatalf("defaults = (%d,%d); want (1,20)", p, ps)
	}
	if p, ps := get("page=3&page_size=50"); p != 3 || ps != 50 {
		t.Fatalf("explicit = (%d,%d); want (3,50)", p, ps)
	}
	if p, ps := get("page=-2&page_size=0"); p != 1 || ps != 1 {
		t.Fatalf("clamped low = (%d,%d); want (1,1)", p, ps)
	}
	if _, ps := get("page_size=5000"); ps != 100 {
		t.Fatalf("page_size cap = %d; want 100", ps)
	}
	if p, ps := get("page=abc&page_size=xyz"); p != 1 || ps != 20 {
		t.Fatalf("garbage = (%d,%d); want (1,20)", p, ps)
	}
}

func Test_parseEventType(t *testing.T) {
	if got := parseEventType(" weddings "); got != domain.EventWedding {
		t.Fatalf("parseEventType(weddings) = %q", got)
	}
	if got := parseEventType("debut"); got != domain.EventDebut {
		t.Fatalf("parseEventType(debut) = %q", got)
	}
	if got := parseEventType("birthday"); got != domain.EventType("") {
		t.Fatalf("unknown event type should degrade to empty, got %q", got)
	}
}

// ---------- PostChat ----------

func TestPostChat_MissingMessage(t *testing.T) {
	r := newChatRouter(stubChatSvc{}, stubLeadSvc{}, stubKB{})

	w := postJSON(t, r, "/chat", map[string]any{"session_id": "s1"})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d; want 400", w.Code)
	}
	var body ErrorResponse
	_ = json.Unmarshal(w.Body.Bytes(), &body)
	if body.Code != ErrCodeBadRequest {
		t.Fatalf("code = %q", body.Code)
	}
}

func TestPostChat_WhitespaceOnlyMessage(t *testing.T) {
	r := newChatRouter(stubChatSvc{}, stubLeadSvc{}, stubKB{})

	w := postJSON(t, r, "/chat", map[string]any{"message": "   "})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d; want 400", w.Code)
	}
}

func TestPostChat_MessageTooLong(t *testing.T) {
	r := newChatRouter(stubChatSvc{}, stubLeadSvc{}, stubKB{})

	// Stub service has no configured limit, so the conservative 2000-rune
	// fallback applies.
	w := postJSON(t, r, "/chat", map[string]any{"message": strings.Repeat("a", 2001)})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d; want 400", w.Code)
	}
	if !strings.Contains(w.Body.String(), "too long") {
		t.Fatalf("expected length error, got %s", w.Body.String())
	}
}

func TestPostChat_Success(t *testing.T) {
	created := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	var gotIn services.ConverseInput
	svc := stubChatSvc{
		converse: func(_ context.Context, in services.ConverseInput) (*services.ConverseResult, error) {
			gotIn = in
			return &services.ConverseResult{
				SessionID:          "chat_9_aaaaaaaaa",
				NewSession:         true,
				Reply:              &domain.ChatMessage{Role: domain.RoleAssistant, Content: "We'd love to help!", CreatedAt: created},
				Source:             services.AnswerWebhook,
				CaptureLead:        true,
				SuggestedQuestions: []string{"What packages do you offer?"},
			}, nil
		},
	}
	r := newChatRouter(svc, stubLeadSvc{}, stubKB{})

	w := postJSON(t, r, "/chat", map[string]any{
		"message":    "  How much for a wedding?  ",
		"page_url":   "/weddings",
		"event_type": "weddings",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d; body = %s", w.Code, w.Body.String())
	}

	if gotIn.Message != "How much for a wedding?" {
		t.Fatalf("message not trimmed: %q", gotIn.Message)
	}
	if gotIn.EventType != domain.EventWedding {
		t.Fatalf("event type = %q; want wedding", gotIn.EventType)
	}

	var resp PostChatResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp.Response != "We'd love to help!" || resp.SessionID != "chat_9_aaaaaaaaa" || !resp.NewSession {
		t.Fatalf("unexpected response: %+v", resp)
	}
	if resp.Source != services.AnswerWebhook {
		t.Fatalf("source = %q", resp.Source)
	}
	if !resp.LeadCapturePrompt || !resp.ShouldCaptureLead {
		t.Fatalf("both capture flags should mirror the service flag: %+v", resp)
	}
	if resp.Timestamp != created.Format(time.RFC3339) {
		t.Fatalf("timestamp = %q", resp.Timestamp)
	}
	if len(resp.SuggestedQuestions) != 1 {
		t.Fatalf("suggested questions = %v", resp.SuggestedQuestions)
	}
}

func TestPostChat_ServiceErrors(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{services.ErrEmptyMessage, http.StatusBadRequest},
		{services.ErrTooLong, http.StatusBadRequest},
		{errors.New("db on fire"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		svc := stubChatSvc{
			converse: func(context.Context, services.ConverseInput) (*services.ConverseResult, error) {
				return nil, tc.err
			},
		}
		r := newChatRouter(svc, stubLeadSvc{}, stubKB{})
		w := postJSON(t, r, "/chat", map[string]any{"message": "hello"})
		if w.Code != tc.want {
			t.Fatalf("err %v -> status %d; want %d", tc.err, w.Code, tc.want)
		}
	}
}

// ---------- ListSessionMessages ----------

func TestListSessionMessages_Success(t *testing.T) {
	svc := stubChatSvc{
		history: func(_ context.Context, sessionID string, page, pageSize int) ([]domain.ChatMessage, int64, error) {
			if sessionID != "chat_1_abcdef012" {
				t.Fatalf("session id = %q", sessionID)
			}
			if page != 2 || pageSize != 10 {
				t.Fatalf("pagination = (%d,%d)", page, pageSize)
			}
			return []domain.ChatMessage{
				{ID: "m1", Role: domain.RoleUser, Content: "hi"},
				{ID: "m2", Role: domain.RoleAssistant, Content: "hello"},
			}, 25, nil
		},
	}
	r := newChatRouter(svc, stubLeadSvc{}, stubKB{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/sessions/chat_1_abcdef012/messages?page=2&page_size=10", nil)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d; body = %s", w.Code, w.Body.String())
	}

	var resp ListMessagesResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp.SessionID != "chat_1_abcdef012" || len(resp.Messages) != 2 {
		t.Fatalf("unexpected response: %+v", resp)
	}
	p := resp.Pagination
	if p.Page != 2 || p.PageSize != 10 || p.Total != 25 || p.TotalPages != 3 || !p.HasNext {
		t.Fatalf("pagination math: %+v", p)
	}
}

func TestListSessionMessages_NotFound(t *testing.T) {
	svc := stubChatSvc{
		history: func(context.Context, string, int, int) ([]domain.ChatMessage, int64, error) {
			return nil, 0, services.ErrSessionNotFound
		},
	}
	r := newChatRouter(svc, stubLeadSvc{}, stubKB{})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/sessions/nope/messages", nil))
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d; want 404", w.Code)
	}
}

func TestListSessionMessages_ListFailed(t *testing.T) {
	svc := stubChatSvc{
		history: func(context.Context, string, int, int) ([]domain.ChatMessage, int64, error) {
			return nil, 0, errors.New("disk gone")
		},
	}
	r := newChatRouter(svc, stubLeadSvc{}, stubKB{})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/sessions/x/messages", nil))
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d; want 500", w.Code)
	}
	var body ErrorResponse
	_ = json.Unmarshal(w.Body.Bytes(), &body)
	if body.Code != ErrCodeListFailed {
		t.Fatalf("code = %q; want %q", body.Code, ErrCodeListFailed)
	}
}
