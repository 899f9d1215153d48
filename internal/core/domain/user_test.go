package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUser_IsPersisted(t *testing.T) {
	t.Run("should return false before the store assigns an id", func(t *testing.T) {
		user := User{Username: "alice"}

		assert.False(t, user.IsPersisted())
	})

	t.Run("should return true once an id is set", func(t *testing.T) {
		user := User{ID: 1, Username: "alice"}

		assert.True(t, user.IsPersisted())
	})
}

func TestSession_IsAuthenticated(t *testing.T) {
	assert.False(t, (&Session{ID: "abc"}).IsAuthenticated())
	assert.True(t, (&Session{ID: "abc", UserID: 7}).IsAuthenticated())
}
