package validation

import (
	"strings"
	"testing"

	. "github.com/onsi/gomega"

	"todoweb/internal/core/model/request"
)

func TestValidate(t *testing.T) {
	RegisterTestingT(t)

	t.Run("should accept a complete todo", func(t *testing.T) {
		Expect(Validate(&request.TodoRequest{Title: "Buy milk", Description: "2%"})).To(Succeed())
	})

	t.Run("should report blank fields by form name", func(t *testing.T) {
		err := Validate(&request.TodoRequest{Title: "   ", Description: ""})

		errs := FormatValidationErrors(err)

		Expect(errs).To(HaveLen(2))
		Expect(errs[0].Field).To(Equal("title"))
		Expect(errs[0].Message).To(Equal("Title is required"))
		Expect(errs[1].Field).To(Equal("desc"))
		Expect(errs[1].Message).To(Equal("Description is required"))
	})

	t.Run("should report an overlong title", func(t *testing.T) {
		err := Validate(&request.TodoRequest{Title: strings.Repeat("a", 81), Description: "x"})

		errs := FormatValidationErrors(err)

		Expect(errs).To(HaveLen(1))
		Expect(errs[0].Message).To(Equal("Title must be at most 80 characters"))
	})

	t.Run("should require credentials", func(t *testing.T) {
		err := Validate(&request.LoginRequest{})

		Expect(FormatValidationErrors(err)).To(HaveLen(2))
	})

	t.Run("should measure passwords in bytes", func(t *testing.T) {
		password := strings.Repeat("é", 40)

		err := Validate(&request.SignUpRequest{Username: "carol", Password: password})

		errs := FormatValidationErrors(err)

		Expect(errs).To(HaveLen(1))
		Expect(errs[0].Field).To(Equal("password"))
		Expect(errs[0].Message).To(Equal("Password must be at most 72 bytes"))
	})

	t.Run("should accept a password of exactly 72 bytes", func(t *testing.T) {
		password := strings.Repeat("é", 36)

		Expect(Validate(&request.SignUpRequest{Username: "carol", Password: password})).To(Succeed())
	})
}
