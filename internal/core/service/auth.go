package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"todoweb/internal/core/domain"
	"todoweb/internal/core/model/request"
	"todoweb/internal/core/port"
)

type AuthService struct {
	repo   port.UserRepository
	hasher port.PasswordHasher
}

func NewAuthService(repo port.UserRepository, hasher port.PasswordHasher) *AuthService {
	return &AuthService{repo: repo, hasher: hasher}
}

// Registration creates an account after checking the username is free.
// Two concurrent signups for the same name can both pass the check;
// the unique index on users.username rejects the loser.
func (us *AuthService) Registration(ctx context.Context, req *request.SignUpRequest) (*domain.User, error) {
	username := strings.TrimSpace(req.Username)

	_, err := us.repo.GetByUsername(ctx, username)

	if err == nil {
		return nil, domain.ErrUsernameTaken
	}

	if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, fmt.Errorf("lookup username: %w", err)
	}

	encrypted, err := us.hasher.Hash(req.Password)

	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := domain.User{
		Username:     username,
		PasswordHash: encrypted,
		CreatedAt:    time.Now().UTC(),
	}

	savedUser, err := us.repo.Create(ctx, user)

	if err != nil {
		return nil, err
	}

	return &savedUser, nil
}

func (us *AuthService) Authenticate(ctx context.Context, req *request.LoginRequest) (*domain.User, error) {
	user, err := us.repo.GetByUsername(ctx, strings.TrimSpace(req.Username))

	if errors.Is(err, domain.ErrUserNotFound) {
		return nil, domain.ErrInvalidCredentials
	}

	if err != nil {
		return nil, fmt.Errorf("lookup username: %w", err)
	}

	if !us.hasher.Verify(req.Password, user.PasswordHash) {
		return nil, domain.ErrInvalidCredentials
	}

	return &user, nil
}
