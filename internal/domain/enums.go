// Package domain defines the core types shared across the chat gateway:
// event-type and lead-source enumerations, persisted chat sessions and
// messages, outgoing lead records, and knowledge-base entries.
package domain

// EventType is the category of celebration a page (and therefore a chat
// session or lead) belongs to. It drives both the chatbot context sent to
// the automation webhook and the localized welcome copy.
type EventType string

const (
	EventKiddieParty EventType = "kiddie_party"
	EventWedding     EventType = "wedding"
	EventDebut       EventType = "debut"
	EventCorporate   EventType = "corporate"
)

// Valid reports whether e is one of the known event types.
func (e EventType) Valid() bool {
	switch e {
	case EventKiddieParty, EventWedding, EventDebut, EventCorporate:
		return true
	}
	return false
}

// Label returns the human-readable event name used in chat copy.
// Unknown values fall back to the generic "event".
func (e EventType) Label() string {
	switch e {
	case EventKiddieParty:
		return "kiddie party"
	case EventWedding:
		return "wedding"
	case EventDebut:
		return "debut"
	case EventCorporate:
		return "corporate event"
	default:
		return "event"
	}
}

// ParseEventType maps a raw string (including the hyphenated page-path
// variants such as "kiddie-party" or "corporate-event") to an EventType.
// The second return value reports whether the input was recognized.
func ParseEventType(s string) (EventType, bool) {
	switch s {
	case string(EventKiddieParty), "kiddie-party":
		return EventKiddieParty, true
	case string(EventWedding), "weddings":
		return EventWedding, true
	case string(EventDebut), "debuts":
		return EventDebut, true
	case string(EventCorporate), "corporate-event":
		return EventCorporate, true
	}
	return "", false
}

// LeadSource identifies which surface produced a lead.
type LeadSource string

const (
	SourceContactForm LeadSource = "contact_form"
	SourceChatbot     LeadSource = "chatbot"
	SourceBookNow     LeadSource = "book_now"
)

// Valid reports whether s is one of the known lead sources.
func (s LeadSource) Valid() bool {
	switch s {
	case SourceContactForm, SourceChatbot, SourceBookNow:
		return true
	}
	return false
}

// ChatRole is the author of a chat message.
type ChatRole string

const (
	RoleUser      ChatRole = "user"
	RoleAssistant ChatRole = "assistant"
	RoleSystem    ChatRole = "system"
)

// Valid reports whether r is one of the known chat roles.
func (r ChatRole) Valid() bool {
	switch r {
	case RoleUser, RoleAssistant, RoleSystem:
		return true
	}
	return false
}

// SessionStatus is the lifecycle state of a chat session.
type SessionStatus string

const (
	SessionActive       SessionStatus = "active"
	SessionIdle         SessionStatus = "idle"
	SessionLeadCaptured SessionStatus = "lead_captured"
)
