// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the
// ChatSession model.
//
// All functions are context-aware and accept a *gorm.DB handle, making them
// safe for use within transactions or connection-scoped operations.
// They follow the "thin repository" approach: no business logic, only CRUD
// persistence and query composition.
//
// Error semantics:
//   - When a session is not found, functions return gorm.ErrRecordNotFound
//     (also exported here as ErrNotFound for convenience).
//   - On DB errors (constraint violations, connectivity issues, etc.),
//     the raw gorm error is propagated.
package repo

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/colormebooth/go-chat-gateway/internal/domain"
)

// ErrNotFound is returned when a requested record does not exist.
// It aliases gorm.ErrRecordNotFound for convenience and consistency
// across the service layer and handlers.
var ErrNotFound = gorm.ErrRecordNotFound

// CreateSession inserts a new ChatSession row with the caller-supplied ID.
// Session IDs are generated by the session package, not here, so that the
// same ID the browser holds is the primary key.
func CreateSession(ctx context.Context, db *gorm.DB, id, pageURL string, eventType domain.EventType) (*domain.ChatSession, error) {
	now := time.Now().UTC()
	s := &domain.ChatSession{
		ID:        id,
		PageURL:   pageURL,
		EventType: eventType,
		Status:    domain.SessionActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := db.WithContext(ctx).Create(s).Error; err != nil {
		return nil, err
	}
	return s, nil
}

// GetSession fetches a single session by ID, or ErrNotFound if missing.
func GetSession(ctx context.Context, db *gorm.DB, id string) (*domain.ChatSession, error) {
	var s domain.ChatSession
	if err := db.WithContext(ctx).Where("id = ?", id).First(&s).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

// TouchSession refreshes the session's UpdatedAt and optionally its context
// fields. Page URL and event type follow the visitor as they navigate, so
// the stored session reflects the page the latest message came from.
// Returns ErrNotFound if the session does not exist.
func TouchSession(ctx context.Context, db *gorm.DB, id, pageURL string, eventType domain.EventType) error {
	updates := map[string]any{"updated_at": time.Now().UTC()}
	if pageURL != "" {
		updates["page_url"] = pageURL
	}
	if eventType != "" {
		updates["event_type"] = eventType
	}
	res := db.WithContext(ctx).
		Model(&domain.ChatSession{}).
		Where("id = ?", id).
		Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// UpdateSessionStatus sets the lifecycle status of a session.
// Returns ErrNotFound if the session does not exist.
func UpdateSessionStatus(ctx context.Context, db *gorm.DB, id string, status domain.SessionStatus) error {
	res := db.WithContext(ctx).
		Model(&domain.ChatSession{}).
		Where("id = ?", id).
		Updates(map[string]any{"status": status, "updated_at": time.Now().UTC()})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// MarkLeadCaptured records that a lead was submitted for this session and
// stores the webhook-assigned lead ID when one was returned.
// Returns ErrNotFound if the session does not exist.
func MarkLeadCaptured(ctx context.Context, db *gorm.DB, id string, leadID *string) error {
	res := db.WithContext(ctx).
		Model(&domain.ChatSession{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"lead_captured": true,
			"lead_id":       leadID,
			"status":        domain.SessionLeadCaptured,
			"updated_at":    time.Now().UTC(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// UpsertSession inserts the session row or, when the ID already exists,
// overwrites all of its columns. Used by the SQLite-backed session store,
// which treats the row as a single replaceable record.
func UpsertSession(ctx context.Context, db *gorm.DB, s *domain.ChatSession) error {
	return db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(s).Error
}

// DeleteSession removes a session row (and, via the FK cascade, its
// messages). Deleting a missing session is not an error.
func DeleteSession(ctx context.Context, db *gorm.DB, id string) error {
	return db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&domain.ChatSession{}).Error
}

// CountSessions returns the total number of sessions.
// On DB error, it returns the error.
func CountSessions(ctx context.Context, db *gorm.DB) (int64, error) {
	var total int64
	err := db.WithContext(ctx).
		Model(&domain.ChatSession{}).
		Count(&total).Error
	return total, err
}
