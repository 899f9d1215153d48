package service

import (
	"context"
	"fmt"
	"time"

	"todoweb/internal/core/domain"
	"todoweb/internal/core/port"
	"todoweb/pkg/tracing"
)

const serviceName = "todo"

type TodoService struct {
	repo port.TodoRepository
}

func NewTodoService(repo port.TodoRepository) *TodoService {
	return &TodoService{repo}
}

func (ts *TodoService) List(ctx context.Context, userId int) ([]domain.Todo, error) {
	if userId == 0 {
		return ts.repo.GetAll(ctx)
	}

	return ts.repo.GetAllByUser(ctx, userId)
}

func (ts *TodoService) Create(ctx context.Context, todo domain.Todo) (domain.Todo, error) {
	newTodo := domain.Todo{
		Title:       todo.Title,
		Description: todo.Description,
		UserId:      todo.UserId,
		CreatedAt:   time.Now().UTC(),
	}

	if err := newTodo.Validate(); err != nil {
		return domain.Todo{}, err
	}

	var saved domain.Todo

	err := tracing.ServiceSpanWrapper(ctx, serviceName, "create", todo.UserId, func(ctx context.Context) error {
		var err error
		saved, err = ts.repo.Create(ctx, newTodo)
		return err
	})

	if err != nil {
		return domain.Todo{}, fmt.Errorf("create todo: %w", err)
	}

	return saved, nil
}

// Get loads a todo on behalf of userId, failing with ErrForbidden
// when somebody else owns it.
func (ts *TodoService) Get(ctx context.Context, id int, userId int) (domain.Todo, error) {
	todo, err := ts.repo.GetByID(ctx, id)

	if err != nil {
		return domain.Todo{}, err
	}

	if !todo.BelongsToUser(userId) {
		return domain.Todo{}, fmt.Errorf("todo %d: %w", id, domain.ErrForbidden)
	}

	return todo, nil
}

// Update rewrites a todo previously loaded through Get. Ownership is
// checked again against the loaded copy, without another read.
func (ts *TodoService) Update(ctx context.Context, todo domain.Todo, userId int, title string, description string) (domain.Todo, error) {
	if !todo.BelongsToUser(userId) {
		return domain.Todo{}, fmt.Errorf("todo %d: %w", todo.ID, domain.ErrForbidden)
	}

	todo.Title = title
	todo.Description = description

	if err := todo.Validate(); err != nil {
		return domain.Todo{}, err
	}

	var updated domain.Todo

	err := tracing.ServiceSpanWrapper(ctx, serviceName, "update", userId, func(ctx context.Context) error {
		var err error
		updated, err = ts.repo.Update(ctx, todo)
		return err
	})

	return updated, err
}

func (ts *TodoService) Delete(ctx context.Context, id int, userId int) error {
	if _, err := ts.Get(ctx, id, userId); err != nil {
		return err
	}

	return tracing.ServiceSpanWrapper(ctx, serviceName, "delete", userId, func(ctx context.Context) error {
		return ts.repo.DeleteByID(ctx, id)
	})
}
