// Package session manages chat session identity and lifecycle.
//
// A session ties together everything a single website visitor does in the
// chat widget: the page they are on, the event type that page implies, the
// transcript, and whether a lead has been captured. The browser keeps the
// session ID under a fixed storage key and replays it on every request, so
// the ID format and the "reuse if present, mint if absent" behavior here
// mirror what the frontend widget does.
//
// Session records live in a pluggable Store (memory, SQLite, or Redis);
// see store.go for the factory.
package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/colormebooth/go-chat-gateway/internal/domain"
)

// StorageKey is the browser storage key the widget uses to persist its
// session ID between page loads.
const StorageKey = "colorme_chat_session_id"

// ErrUnknownSession is returned when an operation references a session ID
// that has no record in the store.
var ErrUnknownSession = errors.New("session: unknown session id")

// GenerateSessionID mints a new session ID of the form
// chat_<unix-millis>_<suffix>, e.g. "chat_1726000000000_3f2a9c1d0".
// The millisecond prefix makes IDs roughly sortable by creation time and
// the random suffix keeps concurrent visitors distinct.
func GenerateSessionID() string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:9]
	return fmt.Sprintf("chat_%d_%s", time.Now().UnixMilli(), suffix)
}

// Record is the store-level view of a session. It is intentionally small:
// the transcript itself is persisted separately and only referenced by ID.
type Record struct {
	ID           string           `json:"id"`
	PageURL      string           `json:"page_url,omitempty"`
	EventType    domain.EventType `json:"event_type,omitempty"`
	LeadCaptured bool             `json:"lead_captured"`
	LeadID       *string          `json:"lead_id,omitempty"`
	CreatedAt    time.Time        `json:"created_at"`
	UpdatedAt    time.Time        `json:"updated_at"`
}

// Manager resolves incoming session IDs against a Store, minting new
// sessions when the visitor arrives without one.
type Manager struct {
	store Store
}

// NewManager returns a Manager backed by the given store.
func NewManager(store Store) *Manager {
	return &Manager{store: store}
}

// GetOrCreate resolves the session for a request. When id is non-empty and
// known, the existing record is refreshed with the current page context and
// returned. When id is non-empty but unknown (store restarted, TTL expired),
// the ID is kept and a fresh record is created under it, matching the
// browser's assumption that its stored ID stays valid. When id is empty a
// new ID is minted.
//
// The second return value reports whether a new record was created.
func (m *Manager) GetOrCreate(ctx context.Context, id, pageURL string, eventType domain.EventType) (*Record, bool, error) {
	if id != "" {
		rec, err := m.store.Get(ctx, id)
		if err != nil {
			return nil, false, err
		}
		if rec != nil {
			if pageURL != "" {
				rec.PageURL = pageURL
			}
			if eventType != "" {
				rec.EventType = eventType
			}
			rec.UpdatedAt = time.Now().UTC()
			if err := m.store.Put(ctx, rec); err != nil {
				return nil, false, err
			}
			return rec, false, nil
		}
	}

	if id == "" {
		id = GenerateSessionID()
	}
	now := time.Now().UTC()
	rec := &Record{
		ID:        id,
		PageURL:   pageURL,
		EventType: eventType,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := m.store.Put(ctx, rec); err != nil {
		return nil, false, err
	}
	return rec, true, nil
}

// Get returns the record for id, or ErrUnknownSession when missing.
func (m *Manager) Get(ctx context.Context, id string) (*Record, error) {
	rec, err := m.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, ErrUnknownSession
	}
	return rec, nil
}

// MarkLeadCaptured flags the session as having produced a lead and stores
// the webhook-assigned lead ID when one was returned.
func (m *Manager) MarkLeadCaptured(ctx context.Context, id string, leadID *string) error {
	rec, err := m.store.Get(ctx, id)
	if err != nil {
		return err
	}
	if rec == nil {
		return ErrUnknownSession
	}
	rec.LeadCaptured = true
	rec.LeadID = leadID
	rec.UpdatedAt = time.Now().UTC()
	return m.store.Put(ctx, rec)
}

// Close releases the underlying store.
func (m *Manager) Close() error {
	return m.store.Close()
}
