package session

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Kind selects the session store backend.
type Kind string

const (
	KindMemory Kind = "memory"
	KindSQLite Kind = "sqlite"
	KindRedis  Kind = "redis"
)

var (
	// ErrInvalidKind is returned by NewStore for an unrecognized backend name.
	ErrInvalidKind = errors.New("session: invalid store kind")
	// ErrMissingBackend is returned when the selected kind needs a client or
	// DB handle that was not provided.
	ErrMissingBackend = errors.New("session: store backend not configured")
)

// Store persists session records. Get returns (nil, nil) when the ID is
// unknown; absence is a normal outcome, not an error. Put is an upsert.
type Store interface {
	Get(ctx context.Context, id string) (*Record, error)
	Put(ctx context.Context, rec *Record) error
	Delete(ctx context.Context, id string) error
	Close() error
}

// Options carries the backend handles and tuning for NewStore. Only the
// fields the selected Kind needs have to be set.
type Options struct {
	// DB backs the sqlite kind. The store does not own the handle and will
	// not close it.
	DB *gorm.DB
	// Redis backs the redis kind. The store takes ownership and closes the
	// client on Close.
	Redis *redis.Client
	// TTL bounds how long an untouched session survives (memory and redis
	// kinds). Zero or negative means DefaultTTL.
	TTL time.Duration
}

// DefaultTTL is how long an idle session is kept when no TTL is configured.
const DefaultTTL = 24 * time.Hour

// NewStore builds the session store named by kind.
func NewStore(kind Kind, opts Options) (Store, error) {
	ttl := opts.TTL
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	switch kind {
	case KindMemory:
		return newMemoryStore(ttl), nil
	case KindSQLite:
		if opts.DB == nil {
			return nil, ErrMissingBackend
		}
		return &sqliteStore{db: opts.DB}, nil
	case KindRedis:
		if opts.Redis == nil {
			return nil, ErrMissingBackend
		}
		return &redisStore{client: opts.Redis, ttl: ttl}, nil
	default:
		return nil, ErrInvalidKind
	}
}
