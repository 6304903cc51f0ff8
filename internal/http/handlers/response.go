// Package handlers implements the public API endpoints: chat turns,
// transcript listing, lead submission, and knowledge-base lookups.
//
// This file holds the shared response helpers. Every failure goes through
// fail(), so each endpoint returns the same envelope with a stable
// machine-readable code (errors.go) that the widget keys its error bubbles
// on, for example:
//
//	HTTP/1.1 404 Not Found
//	{
//	  "request_id": "123e4567-e89b-12d3-a456-426614174000",
//	  "code": "not_found",
//	  "message": "session not found"
//	}
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/colormebooth/go-chat-gateway/internal/http/middleware"
)

// ErrorResponse is the error envelope returned by every endpoint. RequestID
// echoes the X-Request-ID header so client-side errors can be matched to
// server logs; Message is safe to show to visitors.
type ErrorResponse struct {
	// Correlates server logs and client errors
	RequestID string `json:"request_id,omitempty" example:"123e4567-e89b-12d3-a456-426614174000"`
	// Stable, machine-readable code (see errors.go constants)
	Code string `json:"code" example:"not_found"`
	// Human-readable message (safe to show to users)
	Message string `json:"message" example:"session not found"`
}

// fail aborts the request with the standard envelope. 5xx responses are
// additionally logged through the request-scoped logger; 4xx are the
// caller's fault and stay out of the error stream.
func fail(c *gin.Context, status int, code, msg string) {
	reqID := c.Writer.Header().Get("X-Request-ID")
	resp := ErrorResponse{
		RequestID: reqID,
		Code:      code,
		Message:   msg,
	}

	if status >= http.StatusInternalServerError {
		lg := middleware.LoggerFrom(c)
		lg.Error().
			Int("status", status).
			Str("code", code).
			Str("message", msg).
			Msg("api error")
	}

	c.AbortWithStatusJSON(status, resp)
}

// Fail exposes fail to the router for NoRoute/NoMethod handlers.
func Fail(c *gin.Context, status int, code, msg string) { fail(c, status, code, msg) }

// ok writes body as JSON with the given status.
func ok(c *gin.Context, status int, body any) {
	c.JSON(status, body)
}
