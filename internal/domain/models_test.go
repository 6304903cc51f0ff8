package domain

import "testing"

func TestEventType_Valid(t *testing.T) {
	for _, et := range []EventType{EventKiddieParty, EventWedding, EventDebut, EventCorporate} {
		if !et.Valid() {
			t.Fatalf("%q should be valid", et)
		}
	}
	if EventType("birthday").Valid() {
		t.Fatalf("unknown event type should be invalid")
	}
	if EventType("").Valid() {
		t.Fatalf("empty event type should be invalid")
	}
}

func TestEventType_Label(t *testing.T) {
	cases := map[EventType]string{
		EventKiddieParty:    "kiddie party",
		EventWedding:        "wedding",
		EventDebut:          "debut",
		EventCorporate:      "corporate event",
		EventType("nope"):   "event",
		EventType(""):       "event",
	}
	for et, want := range cases {
		if got := et.Label(); got != want {
			t.Fatalf("Label(%q) = %q, want %q", et, got, want)
		}
	}
}

func TestParseEventType(t *testing.T) {
	cases := []struct {
		in   string
		want EventType
		ok   bool
	}{
		{"kiddie_party", EventKiddieParty, true},
		{"kiddie-party", EventKiddieParty, true},
		{"wedding", EventWedding, true},
		{"weddings", EventWedding, true},
		{"debut", EventDebut, true},
		{"debuts", EventDebut, true},
		{"corporate", EventCorporate, true},
		{"corporate-event", EventCorporate, true},
		{"gala", "", false},
		{"", "", false},
	}
	for _, tc := range cases {
		got, ok := ParseEventType(tc.in)
		if got != tc.want || ok != tc.ok {
			t.Fatalf("ParseEventType(%q) = (%q, %v), want (%q, %v)", tc.in, got, ok, tc.want, tc.ok)
		}
	}
}

func TestLeadSource_Valid(t *testing.T) {
	for _, s := range []LeadSource{SourceContactForm, SourceChatbot, SourceBookNow} {
		if !s.Valid() {
			t.Fatalf("%q should be valid", s)
		}
	}
	if LeadSource("billboard").Valid() {
		t.Fatalf("unknown source should be invalid")
	}
}

func TestChatRole_Valid(t *testing.T) {
	for _, r := range []ChatRole{RoleUser, RoleAssistant, RoleSystem} {
		if !r.Valid() {
			t.Fatalf("%q should be valid", r)
		}
	}
	if ChatRole("bot").Valid() {
		t.Fatalf("unknown role should be invalid")
	}
}

func TestKnowledgeBaseEntry_AppliesTo(t *testing.T) {
	e := KnowledgeBaseEntry{
		ID:         "pricing-wedding",
		EventTypes: []EventType{EventWedding},
	}
	if !e.AppliesTo(EventWedding) {
		t.Fatalf("entry tagged wedding should apply to wedding")
	}
	if e.AppliesTo(EventDebut) {
		t.Fatalf("entry tagged wedding should not apply to debut")
	}

	untagged := KnowledgeBaseEntry{ID: "pricing-general"}
	if untagged.AppliesTo(EventWedding) {
		t.Fatalf("untagged entry applies to no specific event type")
	}
}

func TestTableNames(t *testing.T) {
	if (ChatSession{}).TableName() != "chat_sessions" {
		t.Fatalf("unexpected session table name")
	}
	if (ChatMessage{}).TableName() != "chat_messages" {
		t.Fatalf("unexpected message table name")
	}
}
