package factory

import (
	"time"

	fab "github.com/Goldziher/fabricator"
	"golang.org/x/crypto/bcrypt"
)

const DefaultPassword = "12345678"

// NewUser builds a T with random fields. Unless a PasswordHash is given,
// the result carries the bcrypt hash of DefaultPassword.
func NewUser[T any](customData ...map[string]any) T {
	instance := fab.New(*new(T))

	defaults := map[string]any{
		"ID":        0,
		"CreatedAt": time.Now().UTC(),
	}

	hash, _ := bcrypt.GenerateFromPassword([]byte(DefaultPassword), bcrypt.MinCost)
	defaults["PasswordHash"] = string(hash)

	return instance.Build(merge(defaults, customData))
}
