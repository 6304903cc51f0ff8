// Package services – LeadService
//
// This file implements LeadService, which owns lead submission: defaulting
// and validating attribution fields, forwarding the lead to the external
// automation webhook, and flagging the originating chat session (when there
// is one) as converted.
package services

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/colormebooth/go-chat-gateway/internal/domain"
	"github.com/colormebooth/go-chat-gateway/internal/repo"
	"github.com/colormebooth/go-chat-gateway/internal/session"
	"github.com/colormebooth/go-chat-gateway/internal/webhook"

	// OpenTelemetry
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// LeadSubmitter forwards a validated lead to the automation webhook.
type LeadSubmitter interface {
	SubmitLead(ctx context.Context, lead domain.LeadData) (*webhook.LeadResult, error)
}

// LeadService validates, forwards, and attributes lead submissions.
type LeadService struct {
	DB        *gorm.DB
	Sessions  *session.Manager
	Submitter LeadSubmitter
}

// Submit forwards a lead and, when sessionID names a chat session, marks it
// converted. Session bookkeeping is best effort: the lead has already
// reached the automation system, so a bookkeeping failure must not turn an
// accepted submission into an error.
func (s *LeadService) Submit(ctx context.Context, lead domain.LeadData, sessionID string) (*webhook.LeadResult, error) {
	tr := otel.Tracer("services/LeadService")
	ctx, span := tr.Start(ctx, "Submit",
		trace.WithAttributes(
			attribute.String("lead.source", string(lead.Source)),
			attribute.String("session.id", sessionID),
		),
	)
	defer span.End()

	if lead.Source == "" {
		lead.Source = domain.SourceContactForm
	}
	if !lead.Source.Valid() {
		return nil, ErrInvalidSource
	}
	if lead.Timestamp == "" {
		lead.Timestamp = time.Now().UTC().Format(time.RFC3339)
	}

	res, err := s.Submitter.SubmitLead(ctx, lead)
	if err != nil {
		return nil, err
	}

	if sessionID != "" {
		s.markConverted(ctx, sessionID, res)
	}
	return res, nil
}

func (s *LeadService) markConverted(ctx context.Context, sessionID string, res *webhook.LeadResult) {
	var leadID *string
	if res != nil && res.LeadID != "" {
		leadID = &res.LeadID
	}

	if s.Sessions != nil {
		if err := s.Sessions.MarkLeadCaptured(ctx, sessionID, leadID); err != nil &&
			!errors.Is(err, session.ErrUnknownSession) {
			trace.SpanFromContext(ctx).RecordError(err)
		}
	}
	if s.DB != nil {
		if err := repo.MarkLeadCaptured(ctx, s.DB, sessionID, leadID); err != nil &&
			!errors.Is(err, repo.ErrNotFound) {
			trace.SpanFromContext(ctx).RecordError(err)
		}
	}
}
