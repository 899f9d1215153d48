package memory

import (
	"context"
	"testing"
	"time"

	. "github.com/onsi/gomega"

	"todoweb/internal/core/domain"
)

func TestSessionStore(t *testing.T) {
	RegisterTestingT(t)

	ctx := context.Background()

	t.Run("should return not found for unknown ids", func(t *testing.T) {
		store := NewSessionStore()

		_, err := store.Get(ctx, "missing")

		Expect(err).To(MatchError(domain.ErrSessionNotFound))
	})

	t.Run("should round trip a session", func(t *testing.T) {
		store := NewSessionStore()
		session := domain.Session{
			ID:      "abc",
			UserID:  3,
			Flashes: []domain.Flash{{Category: domain.FlashSuccess, Message: "hi"}},
		}

		Expect(store.Save(ctx, session, time.Hour)).To(Succeed())

		loaded, err := store.Get(ctx, "abc")

		Expect(err).To(BeNil())
		Expect(loaded.UserID).To(Equal(3))
		Expect(loaded.Flashes).To(HaveLen(1))
	})

	t.Run("should not share flash slices with callers", func(t *testing.T) {
		store := NewSessionStore()
		session := domain.Session{ID: "abc", Flashes: []domain.Flash{{Message: "one"}}}

		store.Save(ctx, session, time.Hour)
		session.Flashes[0].Message = "changed"

		loaded, _ := store.Get(ctx, "abc")
		Expect(loaded.Flashes[0].Message).To(Equal("one"))
	})

	t.Run("should expire after the ttl", func(t *testing.T) {
		store := NewSessionStore()

		store.Save(ctx, domain.Session{ID: "short"}, 10*time.Millisecond)
		time.Sleep(30 * time.Millisecond)

		_, err := store.Get(ctx, "short")
		Expect(err).To(MatchError(domain.ErrSessionNotFound))
	})

	t.Run("should delete", func(t *testing.T) {
		store := NewSessionStore()

		store.Save(ctx, domain.Session{ID: "gone"}, time.Hour)
		Expect(store.Delete(ctx, "gone")).To(Succeed())

		_, err := store.Get(ctx, "gone")
		Expect(err).To(MatchError(domain.ErrSessionNotFound))
	})
}
