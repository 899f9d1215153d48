package view

import (
	"bytes"
	"testing"
	"time"

	. "github.com/onsi/gomega"

	"todoweb/internal/core/domain"
	"todoweb/internal/core/model/response"
)

func TestTemplates(t *testing.T) {
	RegisterTestingT(t)

	tmpl, err := Templates()
	Expect(err).To(BeNil())

	for _, name := range []string{"index.html", "update.html", "login.html", "signup.html", "about.html", "error.html"} {
		Expect(tmpl.Lookup(name)).NotTo(BeNil(), name)
	}

	t.Run("should render the list with flashes and field errors", func(t *testing.T) {
		var out bytes.Buffer

		err := tmpl.ExecuteTemplate(&out, "index.html", &response.TodoListView{
			Page: response.Page{
				Title:       "Home",
				MultiUser:   true,
				CurrentUser: &response.UserResponse{ID: 1, Username: "alice"},
				Flashes:     []domain.Flash{{Category: domain.FlashSuccess, Message: "Saved"}},
				Errors:      []response.ValidationError{{Field: "title", Message: "Title is required"}},
			},
			Todos: []response.TodoResponse{{ID: 5, Title: "<b>milk</b>", Description: "2%", CreatedAt: time.Now()}},
		})

		Expect(err).To(BeNil())
		Expect(out.String()).To(ContainSubstring("alert-success"))
		Expect(out.String()).To(ContainSubstring("Title is required"))
		Expect(out.String()).To(ContainSubstring(`href="/delete/5"`))
		Expect(out.String()).To(ContainSubstring("&lt;b&gt;milk&lt;/b&gt;"))
		Expect(out.String()).To(ContainSubstring("Log out"))
	})

	t.Run("should hide account links in single-tenant mode", func(t *testing.T) {
		var out bytes.Buffer

		err := tmpl.ExecuteTemplate(&out, "about.html", &response.AboutView{Page: response.Page{Title: "About"}})

		Expect(err).To(BeNil())
		Expect(out.String()).NotTo(ContainSubstring("Log in"))
	})
}
