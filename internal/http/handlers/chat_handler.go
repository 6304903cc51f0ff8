// Chat HTTP handlers.
//
// This file exposes REST endpoints for the website chat widget:
//   - POST /chat                       (run one chat turn)
//   - GET  /sessions/{id}/messages     (list paginated transcript messages)
//
// Handlers are transport-thin:
//   - validate & normalize inputs (including event type and length constraints)
//   - delegate to application services (ChatService)
//   - translate service and webhook errors into stable error codes
package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/gin-gonic/gin"

	"github.com/colormebooth/go-chat-gateway/internal/domain"
	"github.com/colormebooth/go-chat-gateway/internal/http/middleware"
	"github.com/colormebooth/go-chat-gateway/internal/services"
	"github.com/colormebooth/go-chat-gateway/internal/utils"
	"github.com/colormebooth/go-chat-gateway/internal/webhook"
)

//
// Service contracts (context-aware)
//

// ChatService defines the chat operations consumed by HTTP handlers.
//
// Implementations should be safe for concurrent use and must honor the
// provided context for cancellation and timeouts.
type ChatService interface {
	// Converse runs one chat turn and persists both sides of the exchange.
	Converse(ctx context.Context, in services.ConverseInput) (*services.ConverseResult, error)
	// History returns a page of transcript messages and the total count.
	History(ctx context.Context, sessionID string, page, pageSize int) ([]domain.ChatMessage, int64, error)
}

// LeadService defines lead submission operations consumed by HTTP handlers.
type LeadService interface {
	// Submit forwards a lead and attributes it to sessionID when non-empty.
	Submit(ctx context.Context, lead domain.LeadData, sessionID string) (*webhook.LeadResult, error)
}

//
// Handler wiring
//

// Handlers groups HTTP endpoints for chat, leads, and the knowledge base.
// It depends on abstract service interfaces to keep transport concerns
// separate from business logic.
type Handlers struct {
	chatSvc ChatService
	leadSvc LeadService
	kb      KnowledgeBase
}

// New constructs and returns a Handlers instance bound to the given services.
func New(chatSvc ChatService, leadSvc LeadService, kb KnowledgeBase) *Handlers {
	return &Handlers{chatSvc: chatSvc, leadSvc: leadSvc, kb: kb}
}

//
// DTOs
//

// PostChatRequest is the JSON payload for one chat turn. The field names
// mirror what the browser widget sends.
type PostChatRequest struct {
	// SessionID resumes an existing conversation; empty starts a new one.
	SessionID string `json:"session_id" example:"chat_1726000000000_3f2a9c1d0"`
	// Message is the visitor's text. It must be non-empty.
	Message string `json:"message" binding:"required,min=1" example:"How much does a wedding package cost?"`
	// PageURL is the page the widget is mounted on.
	PageURL string `json:"page_url" example:"/weddings"`
	// EventType is the celebration category implied by the page.
	EventType string `json:"event_type" example:"wedding"`
}

// PostChatResponse is the JSON envelope for an assistant reply. Its shape
// matches the webhook contract the widget already understands, plus the
// answer source.
type PostChatResponse struct {
	Response           string   `json:"response"`
	SessionID          string   `json:"session_id"`
	NewSession         bool     `json:"new_session"`
	Source             string   `json:"source" example:"webhook"`
	Timestamp          string   `json:"timestamp"`
	LeadCapturePrompt  bool     `json:"lead_capture_prompt"`
	ShouldCaptureLead  bool     `json:"should_capture_lead"`
	SuggestedQuestions []string `json:"suggested_questions,omitempty"`
}

// ListMessagesResponse contains a page of transcript messages and pagination
// metadata.
type ListMessagesResponse struct {
	SessionID  string               `json:"session_id"`
	Messages   []domain.ChatMessage `json:"messages"`
	Pagination Pagination           `json:"pagination"`
}

// Pagination carries pagination metadata for list responses.
type Pagination struct {
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
	HasNext    bool  `json:"has_next"`
}

//
// Helpers
//

// clampPagination parses page/page_size from query parameters, applies sane
// defaults and caps, and returns the validated (page, pageSize).
func clampPagination(c *gin.Context) (page, pageSize int) {
	const (
		defaultPage     = 1
		defaultPageSize = 20
		maxPageSize     = 100
	)
	page = utils.AtoiDefault(c.Query("page"), defaultPage)
	if page < 1 {
		page = 1
	}
	pageSize = utils.AtoiDefault(c.Query("page_size"), defaultPageSize)
	if pageSize < 1 {
		pageSize = 1
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}
	return
}

// parseEventType accepts both canonical values ("wedding") and the page-path
// variants the frontend sends ("weddings"). Unknown values degrade to the
// generic event rather than failing the request.
func parseEventType(raw string) domain.EventType {
	et, _ := domain.ParseEventType(strings.TrimSpace(raw))
	return et
}

// discoverMaxMessageRunes inspects the concrete ChatService for a configured
// message-length limit. If unavailable, it returns a conservative fallback.
func discoverMaxMessageRunes(svc ChatService) int {
	const fallback = 2000
	if cs, ok := svc.(*services.ChatService); ok {
		if cs.MaxMessageRunes > 0 {
			return cs.MaxMessageRunes
		}
	}
	return fallback
}

//
// Handlers
//

// PostChat godoc
// @ID          postChat
// @Summary     Send a chat message
// @Description Runs one chat turn: resolves (or mints) the session, forwards the
// @Description message to the assistant with recent history, and persists the
// @Description exchange. When the assistant webhook is unreachable the reply is
// @Description answered from the built-in knowledge base; the `source` field
// @Description reports where the answer came from.
// @Tags        Chat
// @Accept      json
// @Produce     json
//
// @Param       body  body  handlers.PostChatRequest  true  "Chat turn payload"
//
// @Success     200  {object}  handlers.PostChatResponse  "Assistant reply"
// @Failure     400  {object}  handlers.ErrorResponse     "Bad request"
// @Failure     500  {object}  handlers.ErrorResponse     "Internal error"
// @Router      /chat [post]
func (h *Handlers) PostChat(c *gin.Context) {
	ctx := c.Request.Context()

	var req PostChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "message required")
		return
	}

	msg := strings.TrimSpace(req.Message)
	maxRunes := discoverMaxMessageRunes(h.chatSvc)
	if maxRunes > 0 && utf8.RuneCountInString(msg) > maxRunes {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, fmt.Sprintf("message too long: max %d runes", maxRunes))
		return
	}
	if msg == "" {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "message required")
		return
	}

	res, err := h.chatSvc.Converse(ctx, services.ConverseInput{
		SessionID: strings.TrimSpace(req.SessionID),
		Message:   msg,
		PageURL:   req.PageURL,
		EventType: parseEventType(req.EventType),
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrEmptyMessage):
			fail(c, http.StatusBadRequest, ErrCodeBadRequest, "message required")
		case errors.Is(err, services.ErrTooLong):
			fail(c, http.StatusBadRequest, ErrCodeBadRequest, fmt.Sprintf("message too long: max %d runes", maxRunes))
		default:
			fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		}
		return
	}

	middleware.ObserveChatReply(res.Source)

	capture := res.CaptureLead
	ok(c, http.StatusOK, PostChatResponse{
		Response:           res.Reply.Content,
		SessionID:          res.SessionID,
		NewSession:         res.NewSession,
		Source:             res.Source,
		Timestamp:          res.Reply.CreatedAt.Format(time.RFC3339),
		LeadCapturePrompt:  capture,
		ShouldCaptureLead:  capture,
		SuggestedQuestions: res.SuggestedQuestions,
	})
}

// ListSessionMessages godoc
// @ID          listSessionMessages
// @Summary     List transcript messages for a session
// @Description Returns a paginated, chronologically ordered list of messages.
// @Tags        Chat
// @Produce     json
//
// @Param       id         path   string  true  "Session ID"
// @Param       page       query  int     false "Page number"     minimum(1) default(1)
// @Param       page_size  query  int     false "Items per page"  minimum(1) maximum(100) default(20)
//
// @Success     200  {object} handlers.ListMessagesResponse
// @Failure     404  {object} handlers.ErrorResponse "Session not found"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /sessions/{id}/messages [get]
func (h *Handlers) ListSessionMessages(c *gin.Context) {
	ctx := c.Request.Context()
	sessionID := c.Param("id")

	page, pageSize := clampPagination(c)

	items, total, err := h.chatSvc.History(ctx, sessionID, page, pageSize)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrSessionNotFound):
			fail(c, http.StatusNotFound, ErrCodeNotFound, "session not found")
		default:
			fail(c, http.StatusInternalServerError, ErrCodeListFailed, err.Error())
		}
		return
	}

	totalPages := int((total + int64(pageSize) - 1) / int64(pageSize))
	ok(c, http.StatusOK, ListMessagesResponse{
		SessionID: sessionID,
		Messages:  items,
		Pagination: Pagination{
			Page:       page,
			PageSize:   pageSize,
			Total:      total,
			TotalPages: totalPages,
			HasNext:    page < totalPages,
		},
	})
}
