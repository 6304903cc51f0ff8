// Lead HTTP handlers.
//
// This file exposes the lead capture endpoint:
//   - POST /leads   (validate and forward a lead to the automation webhook)
//
// The handler is transport-thin: it binds the payload, delegates to
// LeadService, and maps the webhook error taxonomy onto HTTP statuses so
// the frontend can tell "fix your input" from "try again later".
package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/colormebooth/go-chat-gateway/internal/domain"
	"github.com/colormebooth/go-chat-gateway/internal/http/middleware"
	"github.com/colormebooth/go-chat-gateway/internal/services"
	"github.com/colormebooth/go-chat-gateway/internal/webhook"
)

// nameCaser title-cases submitted names for the thank-you message, so
// "maria santos" reads back as "Maria Santos".
var nameCaser = cases.Title(language.English)

//
// DTOs
//

// PostLeadRequest is the JSON payload for submitting a lead. Field names
// match the webhook contract so the browser widget can post either here or
// directly upstream.
type PostLeadRequest struct {
	// SessionID attributes the lead to a chat session when it came from the
	// widget. Optional.
	SessionID string `json:"session_id" example:"chat_1726000000000_3f2a9c1d0"`
	// Source identifies the surface that produced the lead. Defaults to
	// contact_form.
	Source string `json:"source" example:"chatbot"`
	// EventType is the celebration category. Optional.
	EventType string `json:"event_type" example:"debut"`
	// Name is the prospect's name. Required.
	Name string `json:"name" binding:"required,min=1" example:"Maria Santos"`
	// Email is the prospect's email address. Required.
	Email           string `json:"email" binding:"required,min=3" example:"maria@example.com"`
	Phone           string `json:"phone" example:"+63 917 000 0000"`
	EventDate       string `json:"event_date" example:"2026-11-20"`
	Venue           string `json:"venue" example:"Shangri-La The Fort"`
	PackageInterest string `json:"package_interest" example:"Grand Debut Bundle"`
	Message         string `json:"message" example:"Looking for a booth for 150 guests"`
	PageURL         string `json:"page_url" example:"/debuts"`
}

// PostLeadResponse confirms an accepted lead.
type PostLeadResponse struct {
	// LeadID is the upstream system's identifier, when it assigned one.
	LeadID string `json:"lead_id,omitempty"`
	// Message is a display-ready confirmation for the visitor.
	Message string `json:"message"`
	// LeadScore is the upstream qualification score, when provided.
	LeadScore *float64 `json:"lead_score,omitempty"`
}

// PostLead godoc
// @ID          postLead
// @Summary     Submit a lead
// @Description Validates contact details and forwards the lead to the booking
// @Description automation. When the lead originated in a chat session, the
// @Description session is marked as converted.
// @Tags        Leads
// @Accept      json
// @Produce     json
//
// @Param       body  body  handlers.PostLeadRequest  true  "Lead payload"
//
// @Success     200  {object}  handlers.PostLeadResponse  "Lead accepted"
// @Failure     400  {object}  handlers.ErrorResponse     "Invalid contact details"
// @Failure     502  {object}  handlers.ErrorResponse     "Automation webhook rejected or unreachable"
// @Failure     503  {object}  handlers.ErrorResponse     "No webhook configured"
// @Failure     504  {object}  handlers.ErrorResponse     "Automation webhook timed out"
// @Router      /leads [post]
func (h *Handlers) PostLead(c *gin.Context) {
	ctx := c.Request.Context()

	var req PostLeadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "name and email required")
		return
	}

	lead := domain.LeadData{
		Source:          domain.LeadSource(strings.TrimSpace(req.Source)),
		EventType:       parseEventType(req.EventType),
		Name:            strings.TrimSpace(req.Name),
		Email:           strings.TrimSpace(req.Email),
		Phone:           strings.TrimSpace(req.Phone),
		EventDate:       strings.TrimSpace(req.EventDate),
		Venue:           strings.TrimSpace(req.Venue),
		PackageInterest: strings.TrimSpace(req.PackageInterest),
		Message:         req.Message,
		PageURL:         req.PageURL,
	}

	res, err := h.leadSvc.Submit(ctx, lead, strings.TrimSpace(req.SessionID))
	if err != nil {
		middleware.ObserveLeadSubmission("rejected")
		failLead(c, err)
		return
	}
	middleware.ObserveLeadSubmission("accepted")

	msg := res.Message
	if msg == "" {
		msg = fmt.Sprintf(
			"Thank you %s! We've received your information and someone from our team will reach out within 24-48 hours.",
			nameCaser.String(strings.ToLower(lead.Name)),
		)
	}
	ok(c, http.StatusOK, PostLeadResponse{
		LeadID:    res.LeadID,
		Message:   msg,
		LeadScore: res.LeadScore,
	})
}

// failLead maps service and webhook errors onto HTTP statuses.
func failLead(c *gin.Context, err error) {
	var (
		verr *webhook.ValidationError
		cerr *webhook.ConfigError
		nerr *webhook.NetworkError
		werr *webhook.WebhookError
	)
	switch {
	case errors.As(err, &verr):
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, verr.Error())
	case errors.As(err, &cerr):
		fail(c, http.StatusServiceUnavailable, ErrCodeNotConfigured, cerr.Error())
	case errors.As(err, &nerr) && nerr.Timeout:
		fail(c, http.StatusGatewayTimeout, ErrCodeUpstreamTimeout, "automation webhook timed out")
	case errors.As(err, &nerr):
		fail(c, http.StatusBadGateway, ErrCodeUnreachable, "automation webhook unreachable")
	case errors.As(err, &werr):
		fail(c, http.StatusBadGateway, ErrCodeUpstreamError, werr.Error())
	case errors.Is(err, services.ErrInvalidSource):
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, err.Error())
	default:
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
	}
}
