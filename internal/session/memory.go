package session

import (
	"context"
	"sync"
	"time"
)

// memoryStore keeps session records in a map with lazy TTL eviction.
// It is the default backend and is suitable for a single-instance gateway.
type memoryStore struct {
	mu   sync.RWMutex
	recs map[string]memoryEntry
	ttl  time.Duration
}

type memoryEntry struct {
	rec     Record
	expires time.Time
}

func newMemoryStore(ttl time.Duration) *memoryStore {
	return &memoryStore{
		recs: make(map[string]memoryEntry),
		ttl:  ttl,
	}
}

// Get returns a copy of the record, or nil when missing or expired.
// Reading refreshes the TTL, mirroring Redis backend behavior.
func (s *memoryStore) Get(_ context.Context, id string) (*Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.recs[id]
	if !ok {
		return nil, nil
	}
	if time.Now().After(e.expires) {
		delete(s.recs, id)
		return nil, nil
	}
	e.expires = time.Now().Add(s.ttl)
	s.recs[id] = e

	rec := e.rec
	return &rec, nil
}

func (s *memoryStore) Put(_ context.Context, rec *Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.recs[rec.ID] = memoryEntry{
		rec:     *rec,
		expires: time.Now().Add(s.ttl),
	}
	return nil
}

func (s *memoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.recs, id)
	return nil
}

func (s *memoryStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.recs = nil
	return nil
}
