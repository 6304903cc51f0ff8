// Knowledge base HTTP handlers.
//
// This file exposes the FAQ lookup endpoint:
//   - GET /knowledge/answer   (best canned answer for a free-text question)
//
// The widget uses it to answer instantly while the assistant webhook is
// down, and the marketing site uses it to pre-render FAQ sections.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/colormebooth/go-chat-gateway/internal/domain"
)

// KnowledgeBase is the lookup surface the handler needs; *knowledge.Matcher
// satisfies it.
type KnowledgeBase interface {
	Match(query string, eventType domain.EventType) *domain.KnowledgeBaseEntry
	Len() int
}

// KnowledgeAnswerResponse wraps the best-matching FAQ entry.
type KnowledgeAnswerResponse struct {
	Entry *domain.KnowledgeBaseEntry `json:"entry"`
}

// GetKnowledgeAnswer godoc
// @ID          getKnowledgeAnswer
// @Summary     Answer a question from the knowledge base
// @Description Scores the query against the FAQ entries, preferring entries
// @Description tagged with the given event type, and returns the best match.
// @Tags        Knowledge
// @Produce     json
//
// @Param       q           query  string  true   "Free-text question"  example(How much does it cost?)
// @Param       event_type  query  string  false  "Event type context"  example(wedding)
//
// @Success     200  {object}  handlers.KnowledgeAnswerResponse
// @Failure     400  {object}  handlers.ErrorResponse  "Missing query"
// @Failure     404  {object}  handlers.ErrorResponse  "No confident answer"
// @Router      /knowledge/answer [get]
func (h *Handlers) GetKnowledgeAnswer(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "q required")
		return
	}

	entry := h.kb.Match(query, parseEventType(c.Query("event_type")))
	if entry == nil {
		fail(c, http.StatusNotFound, ErrCodeNotFound, "no confident answer")
		return
	}
	ok(c, http.StatusOK, KnowledgeAnswerResponse{Entry: entry})
}
