package domain

import (
	"time"
)

// ChatSession represents one visitor conversation, correlated across page
// loads by a client-minted opaque session id. Sessions and their messages
// are persisted so that the full conversation history can be replayed to
// the automation webhook on every turn.
//
// Fields:
//   - ID: opaque session id minted by the session manager (primary key).
//   - PageURL: URL of the page the widget was opened on.
//   - EventType: celebration category driving chatbot context.
//   - Status: active, idle, or lead_captured.
//   - LeadCaptured / LeadID: set once a lead has been submitted from this
//     session; LeadID is the identifier echoed by the downstream system.
//   - CreatedAt / UpdatedAt: timestamps managed by GORM.
type ChatSession struct {
	ID           string        `json:"session_id" gorm:"type:varchar(64);primaryKey"`
	PageURL      string        `json:"page_url"   gorm:"type:varchar(512)"`
	EventType    EventType     `json:"event_type" gorm:"type:varchar(32);not null;index:idx_session_event"`
	Status       SessionStatus `json:"status"     gorm:"type:varchar(16);not null;default:'active'"`
	LeadCaptured bool          `json:"lead_captured" gorm:"not null;default:false"`
	LeadID       *string       `json:"lead_id,omitempty" gorm:"type:varchar(64)"`
	CreatedAt    time.Time     `json:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at"`
}

// TableName returns the database table name for ChatSession.
func (ChatSession) TableName() string { return "chat_sessions" }

// ChatMessage is a single utterance within a session. Messages are
// append-only: once created they are never mutated, and their insertion
// order is the conversation order.
//
// The JSON shape (role/content/timestamp) doubles as the wire format for
// the webhook's conversation_history field.
type ChatMessage struct {
	ID        string    `json:"-"         gorm:"type:char(36);primaryKey"`
	SessionID string    `json:"-"         gorm:"type:varchar(64);not null;index:idx_session_msgs,priority:1"`
	Role      ChatRole  `json:"role"      gorm:"type:varchar(16);not null;check:role IN ('user','assistant','system')"`
	Content   string    `json:"content"   gorm:"type:text;not null"`
	CreatedAt time.Time `json:"timestamp,omitempty" gorm:"index:idx_session_msgs,priority:2"`

	// Session is the parent conversation. Messages are cascade-deleted
	// if their session is removed.
	Session ChatSession `json:"-" gorm:"foreignKey:SessionID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

// TableName returns the database table name for ChatMessage.
func (ChatMessage) TableName() string { return "chat_messages" }

// LeadData is a prospective customer's contact information captured for
// sales follow-up. It is write-once: built at submission time, validated,
// and forwarded to the external system of record. The gateway keeps no
// copy beyond the outgoing request.
type LeadData struct {
	Source          LeadSource `json:"source"`
	EventType       EventType  `json:"event_type"`
	Name            string     `json:"name"`
	Email           string     `json:"email"`
	Phone           string     `json:"phone,omitempty"`
	EventDate       string     `json:"event_date,omitempty"`
	Venue           string     `json:"venue,omitempty"`
	PackageInterest string     `json:"package_interest,omitempty"`
	Message         string     `json:"message,omitempty"`
	PageURL         string     `json:"page_url"`
	Timestamp       string     `json:"timestamp"`
}

// KnowledgeBaseEntry is a canned FAQ answer matched against free-text
// queries. Entries are static reference data: loaded once (built-in set or
// TOML file) and never mutated at runtime.
type KnowledgeBaseEntry struct {
	ID         string      `json:"id"          toml:"id"`
	Category   string      `json:"category"    toml:"category"`
	Question   string      `json:"question"    toml:"question"`
	Answer     string      `json:"answer"      toml:"answer"`
	EventTypes []EventType `json:"event_types,omitempty" toml:"event_types"`
	Keywords   []string    `json:"keywords"    toml:"keywords"`
}

// AppliesTo reports whether the entry is tagged with the given event type.
func (e KnowledgeBaseEntry) AppliesTo(t EventType) bool {
	for _, et := range e.EventTypes {
		if et == t {
			return true
		}
	}
	return false
}
