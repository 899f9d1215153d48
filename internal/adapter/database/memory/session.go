package memory

import (
	"context"
	"time"

	"github.com/patrickmn/go-cache"

	"todoweb/internal/core/domain"
	"todoweb/internal/core/port"
)

const cleanupInterval = 10 * time.Minute

type sessionStore struct {
	cache *cache.Cache
}

// NewSessionStore keeps sessions in process memory. Restarting the
// server logs everybody out.
func NewSessionStore() port.SessionStore {
	return &sessionStore{cache: cache.New(cache.NoExpiration, cleanupInterval)}
}

func (s *sessionStore) Get(ctx context.Context, id string) (domain.Session, error) {
	value, found := s.cache.Get(id)

	if !found {
		return domain.Session{}, domain.ErrSessionNotFound
	}

	session := value.(domain.Session)
	session.Flashes = append([]domain.Flash(nil), session.Flashes...)

	return session, nil
}

func (s *sessionStore) Save(ctx context.Context, session domain.Session, ttl time.Duration) error {
	session.Flashes = append([]domain.Flash(nil), session.Flashes...)
	s.cache.Set(session.ID, session, ttl)

	return nil
}

func (s *sessionStore) Delete(ctx context.Context, id string) error {
	s.cache.Delete(id)

	return nil
}

func (s *sessionStore) Close() error {
	s.cache.Flush()

	return nil
}
