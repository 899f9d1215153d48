package port

import (
	"context"

	"todoweb/internal/core/domain"
)

type UserRepository interface {
	GetByID(ctx context.Context, id int) (domain.User, error)
	GetByUsername(ctx context.Context, username string) (domain.User, error)
	Create(ctx context.Context, user domain.User) (domain.User, error)
	DeleteByID(ctx context.Context, id int) error
}

type UserService interface {
	GetByID(ctx context.Context, id int) (domain.User, error)
	DeleteByID(ctx context.Context, id int) error
}
