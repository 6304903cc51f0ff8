package httpapi

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	sqlite "github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/colormebooth/go-chat-gateway/internal/config"
	"github.com/colormebooth/go-chat-gateway/internal/knowledge"
	"github.com/colormebooth/go-chat-gateway/internal/repo"
	"github.com/colormebooth/go-chat-gateway/internal/session"
	"github.com/colormebooth/go-chat-gateway/internal/webhook"
)

// --- test DB helper (pure-Go sqlite, no CGO) ---
func newRouterDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:routerdb_%s?mode=memory&cache=shared", uuid.NewString())
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

func newRouterDeps(t *testing.T) Deps {
	t.Helper()
	store, err := session.NewStore(session.KindMemory, session.Options{TTL: time.Hour})
	if err != nil {
		t.Fatalf("session store: %v", err)
	}
	mgr := session.NewManager(store)
	t.Cleanup(func() { _ = mgr.Close() })

	return Deps{
		DB:        newRouterDB(t),
		Sessions:  mgr,
		Webhook:   webhook.New(webhook.Endpoints{}, time.Second), // no endpoints configured
		Knowledge: knowledge.Default(),
	}
}

func baseConfig() config.Config {
	return config.Config{
		APIBasePath:     "/api/chat",
		RateRPS:         100,
		RateBurst:       10,
		HistoryLimit:    20,
		MaxMessageRunes: 2000,
		CORS:            config.CORSConfig{}, // allow-all branch
		Security:        config.SecurityConfig{},
		OTEL:            config.OTELConfig{ServiceName: "test-svc"},
	}
}

func TestRegisterRoutes_Health_Metrics_Fallbacks(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	RegisterRoutes(r, newRouterDeps(t), baseConfig())

	// /health works and allow-all CORS sets a wildcard origin
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("GET /health = %d", w.Code)
	}
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Fatalf("AllowAllOrigins expected '*', got %q", got)
	}

	// /metrics is wired and excluded from gzip
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if w.Code != http.StatusOK || w.Body.Len() == 0 {
		t.Fatalf("GET /metrics bad: code=%d len=%d", w.Code, w.Body.Len())
	}

	// NoRoute -> 404 envelope
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/nope", nil))
	if w.Code != http.StatusNotFound {
		t.Fatalf("GET /nope expected 404, got %d", w.Code)
	}

	// NoMethod -> 405 (POST /health)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/health", nil))
	if w.Code != http.StatusMethodNotAllowed {
		t.Fatalf("POST /health expected 405, got %d", w.Code)
	}
}

func TestRegisterRoutes_CORSWithOrigins_HeaderEcho(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	cfg := baseConfig()
	cfg.CORS = config.CORSConfig{AllowedOrigins: []string{"https://colormebooth.com"}}
	RegisterRoutes(r, newRouterDeps(t), cfg)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("Origin", "https://colormebooth.com")
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("GET /health = %d", w.Code)
	}
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "https://colormebooth.com" {
		t.Fatalf("expected ACAO echo, got %q", got)
	}
}

func TestRegisterRoutes_ChatTurn_EndToEnd(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	// No chatbot endpoint configured, so the reply comes from the knowledge
	// base (or the canned fallback).
	RegisterRoutes(r, newRouterDeps(t), baseConfig())

	payload, _ := json.Marshal(map[string]any{
		"message":    "How much does it cost?",
		"page_url":   "/debuts",
		"event_type": "debut",
	})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/chat/chat", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("POST /api/chat/chat = %d; body = %s", w.Code, w.Body.String())
	}

	var resp struct {
		Response   string `json:"response"`
		SessionID  string `json:"session_id"`
		NewSession bool   `json:"new_session"`
		Source     string `json:"source"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp.Response == "" || resp.SessionID == "" || !resp.NewSession {
		t.Fatalf("unexpected chat response: %+v", resp)
	}
	if resp.Source != "knowledge" {
		t.Fatalf("source = %q; want knowledge", resp.Source)
	}

	// The transcript endpoint should list both sides of the turn.
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/chat/sessions/"+resp.SessionID+"/messages", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("list messages = %d; body = %s", w.Code, w.Body.String())
	}
	var list struct {
		Messages []struct {
			Role string `json:"role"`
		} `json:"messages"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &list); err != nil {
		t.Fatalf("unmarshal list: %v", err)
	}
	if len(list.Messages) != 2 {
		t.Fatalf("expected 2 transcript messages, got %d", len(list.Messages))
	}
}

func TestRegisterRoutes_KnowledgeAnswer(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	RegisterRoutes(r, newRouterDeps(t), baseConfig())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/chat/knowledge/answer?q=How+much+does+it+cost%3F&event_type=debut", nil)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("knowledge answer = %d; body = %s", w.Code, w.Body.String())
	}
	var resp struct {
		Entry struct {
			ID string `json:"id"`
		} `json:"entry"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp.Entry.ID == "" {
		t.Fatalf("expected a matched entry, got %s", w.Body.String())
	}
}

func TestRegisterRoutes_LeadWithoutEndpoint_Is503(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	RegisterRoutes(r, newRouterDeps(t), baseConfig())

	payload, _ := json.Marshal(map[string]any{
		"name":       "Maria Santos",
		"email":      "maria@example.com",
		"event_type": "wedding",
	})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/chat/leads", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("lead without endpoint = %d; want 503", w.Code)
	}
}

func Test_limitBody_Middleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(limitBody(10))
	r.POST("/echo", func(c *gin.Context) {
		if _, err := io.ReadAll(c.Request.Body); err != nil {
			c.String(http.StatusRequestEntityTooLarge, "too big")
			return
		}
		c.String(http.StatusOK, "ok")
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/echo", bytes.NewBufferString("0123456789AB"))
	r.ServeHTTP(w, req)
	if w.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("expected 413 from limitBody, got %d", w.Code)
	}
}

func Test_groupWithPrefix(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	root1 := groupWithPrefix(r, "/")
	root1.GET("/one", func(c *gin.Context) { c.String(http.StatusOK, "one") })
	root2 := groupWithPrefix(r, "")
	root2.GET("/two", func(c *gin.Context) { c.String(http.StatusOK, "two") })
	api := groupWithPrefix(r, "/api")
	api.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })

	for path, want := range map[string]string{"/one": "one", "/two": "two", "/api/ping": "pong"} {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		if rec.Code != http.StatusOK || rec.Body.String() != want {
			t.Fatalf("GET %s got %d %q", path, rec.Code, rec.Body.String())
		}
	}
}

func Test_chatbotOrNil(t *testing.T) {
	if got := chatbotOrNil(webhook.New(webhook.Endpoints{}, time.Second)); got != nil {
		t.Fatalf("unconfigured chatbot should yield nil")
	}
	if got := chatbotOrNil(webhook.New(webhook.Endpoints{Chatbot: "https://n8n.example.com/hook"}, time.Second)); got == nil {
		t.Fatalf("configured chatbot should yield a client")
	}
}

func TestPipeline_Smoke(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	cfg := baseConfig()
	cfg.Security = config.SecurityConfig{EnableHSTS: true, HSTSMaxAge: time.Hour}
	RegisterRoutes(r, newRouterDeps(t), cfg)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("X-Session-ID", "chat_1_abcdef012")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("pipeline GET /health = %d", w.Code)
	}
	if rid := w.Header().Get("X-Request-ID"); rid == "" {
		t.Fatalf("expected X-Request-ID header to be set")
	}
	if got := w.Header().Get("X-Content-Type-Options"); got != "nosniff" {
		t.Fatalf("expected security headers, got %q", got)
	}
}
