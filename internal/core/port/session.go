package port

import (
	"context"
	"time"

	"todoweb/internal/core/domain"
)

// SessionStore persists session records between requests.
// Get returns domain.ErrSessionNotFound for unknown or expired ids.
type SessionStore interface {
	Get(ctx context.Context, id string) (domain.Session, error)
	Save(ctx context.Context, session domain.Session, ttl time.Duration) error
	Delete(ctx context.Context, id string) error
	Close() error
}
