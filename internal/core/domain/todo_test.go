package domain

import (
	"errors"
	"strings"
	"testing"

	. "github.com/onsi/gomega"
	"github.com/stretchr/testify/assert"
)

func TestTodo_BelongsToUser(t *testing.T) {
	todo := Todo{ID: 5, Title: "Buy milk", UserId: 1}

	assert.True(t, todo.BelongsToUser(1))
	assert.False(t, todo.BelongsToUser(2))
	assert.True(t, todo.HasOwner())
	assert.False(t, (&Todo{}).HasOwner())
}

func TestTodo_Validate(t *testing.T) {
	RegisterTestingT(t)

	t.Run("should accept a title and description", func(t *testing.T) {
		todo := Todo{Title: "Buy milk", Description: "2%"}

		Expect(todo.Validate()).To(Succeed())
	})

	t.Run("should reject a blank title", func(t *testing.T) {
		todo := Todo{Title: "   ", Description: "2%"}

		err := todo.Validate()

		var validationErr *ValidationError
		Expect(errors.As(err, &validationErr)).To(BeTrue())
		Expect(validationErr.Field).To(Equal("title"))
		Expect(errors.Is(err, ErrInvalidTodo)).To(BeTrue())
	})

	t.Run("should reject a title longer than the column", func(t *testing.T) {
		todo := Todo{Title: strings.Repeat("a", TitleMaxLength+1), Description: "2%"}

		Expect(todo.Validate()).To(MatchError(ErrInvalidTodo))
	})

	t.Run("should reject an empty description", func(t *testing.T) {
		todo := Todo{Title: "Buy milk"}

		err := todo.Validate()

		var validationErr *ValidationError
		Expect(errors.As(err, &validationErr)).To(BeTrue())
		Expect(validationErr.Field).To(Equal("desc"))
	})
}

func TestIsNotFound(t *testing.T) {
	assert.True(t, IsNotFound(ErrTodoNotFound))
	assert.True(t, IsNotFound(ErrUserNotFound))
	assert.False(t, IsNotFound(ErrForbidden))
}
