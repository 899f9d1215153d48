package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"todoweb/internal/core/domain"
	"todoweb/internal/core/port"
)

const keyPrefix = "session:"

type sessionStore struct {
	client *redis.Client
}

// NewClient parses a redis:// or rediss:// url and checks the server answers.
func NewClient(ctx context.Context, url string) (*redis.Client, error) {
	options, err := redis.ParseURL(url)

	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	client := redis.NewClient(options)

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("connect to redis: %w", err)
	}

	return client, nil
}

func NewSessionStore(client *redis.Client) port.SessionStore {
	return &sessionStore{client: client}
}

func (s *sessionStore) Get(ctx context.Context, id string) (domain.Session, error) {
	data, err := s.client.Get(ctx, keyPrefix+id).Bytes()

	if errors.Is(err, redis.Nil) {
		return domain.Session{}, domain.ErrSessionNotFound
	}

	if err != nil {
		return domain.Session{}, err
	}

	var session domain.Session

	if err := json.Unmarshal(data, &session); err != nil {
		return domain.Session{}, fmt.Errorf("decode session: %w", err)
	}

	return session, nil
}

func (s *sessionStore) Save(ctx context.Context, session domain.Session, ttl time.Duration) error {
	data, err := json.Marshal(session)

	if err != nil {
		return err
	}

	return s.client.Set(ctx, keyPrefix+session.ID, data, ttl).Err()
}

func (s *sessionStore) Delete(ctx context.Context, id string) error {
	return s.client.Del(ctx, keyPrefix+id).Err()
}

func (s *sessionStore) Close() error {
	return s.client.Close()
}
