package domain

import (
	"strings"
	"time"
)

const TitleMaxLength = 80

type Todo struct {
	ID          int       `db:"id"`
	Title       string    `db:"title"`
	Description string    `db:"description"`
	UserId      int       `db:"owner_id"`
	CreatedAt   time.Time `db:"created_at"`
}

func (t *Todo) ToMap() map[string]interface{} {
	return map[string]interface{}{
		"title":       t.Title,
		"description": t.Description,
	}
}

// HasOwner reports whether the todo was created by an authenticated user.
// Todos created in single-tenant mode carry no owner.
func (t *Todo) HasOwner() bool {
	return t.UserId != 0
}

func (t *Todo) BelongsToUser(userID int) bool {
	return t.UserId == userID
}

func (t *Todo) Validate() error {
	if strings.TrimSpace(t.Title) == "" {
		return &ValidationError{Field: "title", Err: ErrInvalidTodo}
	}

	if len([]rune(t.Title)) > TitleMaxLength {
		return &ValidationError{Field: "title", Err: ErrInvalidTodo}
	}

	if strings.TrimSpace(t.Description) == "" {
		return &ValidationError{Field: "desc", Err: ErrInvalidTodo}
	}

	return nil
}

func (t Todo) String() string {
	return t.Title
}
