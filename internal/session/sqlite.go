package session

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/colormebooth/go-chat-gateway/internal/domain"
	"github.com/colormebooth/go-chat-gateway/internal/repo"
)

// sqliteStore rides the repo layer so session records land in the same
// chat_sessions table the transcript FK points at. Records survive restarts
// and no TTL applies.
type sqliteStore struct {
	db *gorm.DB
}

func (s *sqliteStore) Get(ctx context.Context, id string) (*Record, error) {
	row, err := repo.GetSession(ctx, s.db, id)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &Record{
		ID:           row.ID,
		PageURL:      row.PageURL,
		EventType:    row.EventType,
		LeadCaptured: row.LeadCaptured,
		LeadID:       row.LeadID,
		CreatedAt:    row.CreatedAt,
		UpdatedAt:    row.UpdatedAt,
	}, nil
}

func (s *sqliteStore) Put(ctx context.Context, rec *Record) error {
	status := domain.SessionActive
	if rec.LeadCaptured {
		status = domain.SessionLeadCaptured
	}
	return repo.UpsertSession(ctx, s.db, &domain.ChatSession{
		ID:           rec.ID,
		PageURL:      rec.PageURL,
		EventType:    rec.EventType,
		Status:       status,
		LeadCaptured: rec.LeadCaptured,
		LeadID:       rec.LeadID,
		CreatedAt:    rec.CreatedAt,
		UpdatedAt:    rec.UpdatedAt,
	})
}

func (s *sqliteStore) Delete(ctx context.Context, id string) error {
	return repo.DeleteSession(ctx, s.db, id)
}

// Close is a no-op: the DB handle is owned by the caller.
func (s *sqliteStore) Close() error {
	return nil
}
