package session

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"todoweb/internal/core/domain"
	"todoweb/internal/core/port"
	"todoweb/pkg/auth"
)

const (
	CookieName = "session"
	contextKey = "todoweb.session"

	// AnonymousTTL caps how long a session without a user is kept. Such a
	// session only carries flashes to the next page.
	AnonymousTTL = 10 * time.Minute
)

// Manager issues the signed session cookie and loads the record it points to.
type Manager struct {
	store  port.SessionStore
	signer *auth.JWT
	ttl    time.Duration
	secure bool
}

func NewManager(store port.SessionStore, secret string, ttl time.Duration, secure bool) *Manager {
	return &Manager{
		store:  store,
		signer: &auth.JWT{Secret: secret},
		ttl:    ttl,
		secure: secure,
	}
}

// Session is the per-request view of a stored session. Changes are
// written back by Save; an untouched anonymous session is never stored.
type Session struct {
	manager *Manager
	data    domain.Session
	dirty   bool
}

// Load resolves the request cookie into a session. A missing, forged,
// expired or unknown cookie yields a fresh anonymous session.
func (m *Manager) Load(c *gin.Context) (*Session, error) {
	token, err := c.Cookie(CookieName)

	if err != nil || token == "" {
		return m.newSession(), nil
	}

	id, err := m.signer.VerifyToken(token)

	if err != nil {
		return m.newSession(), nil
	}

	data, err := m.store.Get(c.Request.Context(), id)

	if errors.Is(err, domain.ErrSessionNotFound) {
		return m.newSession(), nil
	}

	if err != nil {
		return nil, err
	}

	return &Session{manager: m, data: data}, nil
}

func (m *Manager) newSession() *Session {
	return &Session{
		manager: m,
		data: domain.Session{
			ID:        uuid.NewString(),
			CreatedAt: time.Now().UTC(),
		},
	}
}

func (m *Manager) ttlFor(data domain.Session) time.Duration {
	if !data.IsAuthenticated() && m.ttl > AnonymousTTL {
		return AnonymousTTL
	}

	return m.ttl
}

func (m *Manager) setCookie(c *gin.Context, value string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(CookieName, value, maxAge, "/", "", m.secure, true)
}

// Save persists pending changes and refreshes the cookie. It must run
// before the response body is written.
func (s *Session) Save(c *gin.Context) error {
	if !s.dirty {
		return nil
	}

	ttl := s.manager.ttlFor(s.data)

	if err := s.manager.store.Save(c.Request.Context(), s.data, ttl); err != nil {
		return err
	}

	token, err := s.manager.signer.CreateToken(s.data.ID, ttl)

	if err != nil {
		return err
	}

	s.manager.setCookie(c, token, int(ttl.Seconds()))
	s.dirty = false

	return nil
}

// Login binds userID under a new session id so a pre-login id can't be reused.
func (s *Session) Login(ctx context.Context, userID int) error {
	if err := s.manager.store.Delete(ctx, s.data.ID); err != nil {
		return err
	}

	s.data.ID = uuid.NewString()
	s.data.UserID = userID
	s.data.CreatedAt = time.Now().UTC()
	s.dirty = true

	return nil
}

// Logout drops the stored record and continues with a fresh anonymous
// session, which can still carry a flash to the next page.
func (s *Session) Logout(ctx context.Context) error {
	if err := s.manager.store.Delete(ctx, s.data.ID); err != nil {
		return err
	}

	s.data = s.manager.newSession().data
	s.dirty = true

	return nil
}

func (s *Session) UserID() int {
	return s.data.UserID
}

func (s *Session) ID() string {
	return s.data.ID
}

func (s *Session) IsAuthenticated() bool {
	return s.data.IsAuthenticated()
}

func (s *Session) AddFlash(category domain.FlashCategory, message string) {
	s.data.Flashes = append(s.data.Flashes, domain.Flash{Category: category, Message: message})
	s.dirty = true
}

func (s *Session) PopFlashes() []domain.Flash {
	flashes := s.data.Flashes

	if len(flashes) > 0 {
		s.data.Flashes = nil
		s.dirty = true
	}

	return flashes
}

func Set(c *gin.Context, s *Session) {
	c.Set(contextKey, s)
}

// FromContext returns the session attached by the session middleware,
// or nil when none ran.
func FromContext(c *gin.Context) *Session {
	value, exists := c.Get(contextKey)

	if !exists {
		return nil
	}

	s, _ := value.(*Session)

	return s
}
