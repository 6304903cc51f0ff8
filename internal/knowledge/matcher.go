// Package knowledge provides a small, deterministic FAQ matcher used as the
// offline answer source for the chat widget. It scores a static set of
// knowledge-base entries against a free-text query plus an optional
// event-type context and returns the single best match, or nothing when no
// entry scores above the noise threshold.
//
// Design notes, in the spirit of the rest of this codebase:
//
//   - No logging in the library (callers decide how/what to log)
//   - Pure scoring, no side effects, safe for concurrent use
//   - Deterministic: ties are broken by original entry order (stable sort)
//   - The entry set is swappable atomically (see loader.go) so a file
//     reload never races an in-flight Match call
package knowledge

import (
	"sort"
	"strings"
	"sync/atomic"
	"unicode/utf8"

	"github.com/colormebooth/go-chat-gateway/internal/domain"
)

// Scoring weights. An entry tagged with the caller's event type gets a
// strong head start; each keyword found in the query and each long query
// word found in the entry's question adds smaller increments.
const (
	eventTypeBonus    = 10
	keywordBonus      = 5
	questionWordBonus = 2

	// minScore is the exclusive floor below which a best match is still
	// reported as "no match", suppressing weak or accidental hits.
	minScore = 5

	// minQueryWordRunes: only query words strictly longer than this take
	// part in question-text matching.
	minQueryWordRunes = 3
)

// Matcher scores knowledge-base entries against queries. The zero value is
// not usable; construct one with NewMatcher.
type Matcher struct {
	entries atomic.Pointer[[]domain.KnowledgeBaseEntry]
}

// NewMatcher returns a Matcher over the given entries. Passing nil entries
// yields a matcher that never matches; use Default() for the built-in set.
func NewMatcher(entries []domain.KnowledgeBaseEntry) *Matcher {
	m := &Matcher{}
	m.Replace(entries)
	return m
}

// Default returns a Matcher over the built-in knowledge base.
func Default() *Matcher {
	return NewMatcher(BuiltinEntries())
}

// Replace atomically swaps the entry set. In-flight Match calls keep
// scoring against the set they started with.
func (m *Matcher) Replace(entries []domain.KnowledgeBaseEntry) {
	cp := make([]domain.KnowledgeBaseEntry, len(entries))
	copy(cp, entries)
	m.entries.Store(&cp)
}

// Len returns the number of entries currently loaded.
func (m *Matcher) Len() int {
	return len(*m.entries.Load())
}

// Match returns the best-scoring entry for the query, or nil when nothing
// scores above the noise threshold. eventType may be empty; when set,
// entries tagged with it are strongly preferred (e.g. the wedding pricing
// entry beats the generic pricing entry for wedding pages).
func (m *Matcher) Match(query string, eventType domain.EventType) *domain.KnowledgeBaseEntry {
	entries := *m.entries.Load()
	if len(entries) == 0 || strings.TrimSpace(query) == "" {
		return nil
	}

	lowerQuery := strings.ToLower(query)
	queryWords := longWords(lowerQuery)

	type scored struct {
		idx   int
		score int
	}
	buf := make([]scored, 0, len(entries))
	for i := range entries {
		buf = append(buf, scored{idx: i, score: score(&entries[i], lowerQuery, queryWords, eventType)})
	}

	// Stable: equal scores keep original list order.
	sort.SliceStable(buf, func(a, b int) bool { return buf[a].score > buf[b].score })

	best := buf[0]
	if best.score <= minScore {
		return nil
	}
	e := entries[best.idx]
	return &e
}

// score computes the match score of a single entry.
func score(e *domain.KnowledgeBaseEntry, lowerQuery string, queryWords []string, eventType domain.EventType) int {
	s := 0

	if eventType != "" && e.AppliesTo(eventType) {
		s += eventTypeBonus
	}

	for _, kw := range e.Keywords {
		if kw == "" {
			continue
		}
		if strings.Contains(lowerQuery, strings.ToLower(kw)) {
			s += keywordBonus
		}
	}

	lowerQuestion := strings.ToLower(e.Question)
	for _, w := range queryWords {
		if strings.Contains(lowerQuestion, w) {
			s += questionWordBonus
		}
	}

	return s
}

// longWords splits an already-lowercased query on spaces and keeps words
// longer than minQueryWordRunes.
func longWords(lowerQuery string) []string {
	fields := strings.Fields(lowerQuery)
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		if utf8.RuneCountInString(f) > minQueryWordRunes {
			out = append(out, f)
		}
	}
	return out
}
