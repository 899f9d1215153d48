package domain

import "time"

type FlashCategory string

const (
	FlashSuccess FlashCategory = "success"
	FlashInfo    FlashCategory = "info"
	FlashDanger  FlashCategory = "danger"
)

type Flash struct {
	Category FlashCategory `json:"category"`
	Message  string        `json:"message"`
}

// Session is the server-side state addressed by the session cookie.
// A zero UserID means the visitor is anonymous.
type Session struct {
	ID        string    `json:"id"`
	UserID    int       `json:"user_id"`
	Flashes   []Flash   `json:"flashes,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func (s *Session) IsAuthenticated() bool {
	return s.UserID != 0
}
