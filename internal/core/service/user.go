package service

import (
	"context"

	"todoweb/internal/core/domain"
	"todoweb/internal/core/port"
)

type UserService struct {
	repo port.UserRepository
}

func NewUserService(repo port.UserRepository) *UserService {
	return &UserService{repo}
}

func (u *UserService) GetByID(ctx context.Context, id int) (domain.User, error) {
	return u.repo.GetByID(ctx, id)
}

// DeleteByID removes the account. The todos it owns go with it through
// the ON DELETE CASCADE on todos.owner_id.
func (u *UserService) DeleteByID(ctx context.Context, id int) error {
	return u.repo.DeleteByID(ctx, id)
}
