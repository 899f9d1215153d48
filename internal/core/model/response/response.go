package response

import (
	"time"

	"todoweb/internal/core/domain"
)

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type UserResponse struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
}

type TodoResponse struct {
	ID          int       `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"desc"`
	CreatedAt   time.Time `json:"created_at"`
}

func NewTodoResponse(todo domain.Todo) TodoResponse {
	return TodoResponse{
		ID:          todo.ID,
		Title:       todo.Title,
		Description: todo.Description,
		CreatedAt:   todo.CreatedAt,
	}
}

// Page holds what every rendered view shows: the signed in user,
// pending flash messages and form errors.
type Page struct {
	Title       string            `json:"title"`
	CurrentUser *UserResponse     `json:"current_user,omitempty"`
	MultiUser   bool              `json:"multi_user"`
	Flashes     []domain.Flash    `json:"flashes,omitempty"`
	Errors      []ValidationError `json:"errors,omitempty"`
}

func (p *Page) Base() *Page {
	return p
}

type View interface {
	Base() *Page
}

type TodoListView struct {
	Page
	Todos []TodoResponse `json:"todos"`
	Form  TodoResponse   `json:"form"`
}

type TodoEditView struct {
	Page
	Todo TodoResponse `json:"todo"`
}

type AuthFormView struct {
	Page
	Username string `json:"username,omitempty"`
}

type AboutView struct {
	Page
}

type ErrorView struct {
	Page
	Code    string `json:"code"`
	Message string `json:"message"`
}
