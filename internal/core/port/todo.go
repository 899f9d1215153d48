package port

import (
	"context"

	"todoweb/internal/core/domain"
)

type TodoRepository interface {
	GetAll(ctx context.Context) ([]domain.Todo, error)
	GetAllByUser(ctx context.Context, userId int) ([]domain.Todo, error)
	GetByID(ctx context.Context, id int) (domain.Todo, error)
	Create(ctx context.Context, todo domain.Todo) (domain.Todo, error)
	Update(ctx context.Context, todo domain.Todo) (domain.Todo, error)
	DeleteByID(ctx context.Context, id int) error
}

// TodoService applies ownership rules on top of the repository.
// A userId of zero is the single-tenant actor, which lists every todo
// but may only change unowned ones.
type TodoService interface {
	List(ctx context.Context, userId int) ([]domain.Todo, error)
	Get(ctx context.Context, id int, userId int) (domain.Todo, error)
	Create(ctx context.Context, todo domain.Todo) (domain.Todo, error)
	Update(ctx context.Context, todo domain.Todo, userId int, title string, description string) (domain.Todo, error)
	Delete(ctx context.Context, id int, userId int) error
}
