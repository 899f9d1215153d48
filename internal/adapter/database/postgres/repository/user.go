package repository

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"todoweb/internal/adapter/database/postgres"
	"todoweb/internal/core/domain"
	"todoweb/internal/core/port"
	"todoweb/pkg/tracing"
)

const uniqueViolation = "23505"

type UserRepository struct {
	db *postgres.DB
}

func NewUserRepository(db *postgres.DB) port.UserRepository {
	return &UserRepository{db: db}
}

func scanUser(row pgx.Row) (domain.User, error) {
	var user domain.User

	err := row.Scan(&user.ID, &user.Username, &user.PasswordHash, &user.CreatedAt)

	return user, err
}

func (ur *UserRepository) getOne(ctx context.Context, where sq.Sqlizer) (domain.User, error) {
	stmt, args, err := ur.db.QueryBuilder.Select("id", "username", "password_hash", "created_at").
		From("users").
		Where(where).
		Limit(1).
		ToSql()

	if err != nil {
		return domain.User{}, err
	}

	return scanUser(ur.db.QueryRow(ctx, stmt, args...))
}

func (ur *UserRepository) GetByID(ctx context.Context, id int) (domain.User, error) {
	user, err := ur.getOne(ctx, sq.Eq{"id": id})

	if errors.Is(err, pgx.ErrNoRows) {
		return domain.User{}, fmt.Errorf("user %d: %w", id, domain.ErrUserNotFound)
	}

	return user, err
}

func (ur *UserRepository) GetByUsername(ctx context.Context, username string) (domain.User, error) {
	user, err := ur.getOne(ctx, sq.Eq{"username": username})

	if errors.Is(err, pgx.ErrNoRows) {
		return domain.User{}, fmt.Errorf("user %q: %w", username, domain.ErrUserNotFound)
	}

	return user, err
}

func (ur *UserRepository) Create(ctx context.Context, user domain.User) (domain.User, error) {
	var saved domain.User

	err := tracing.DatabaseSpanWrapper(ctx, system, "users", "INSERT", func(ctx context.Context) error {
		stmt, args, err := ur.db.QueryBuilder.Insert("users").
			Columns("username", "password_hash", "created_at").
			Values(user.Username, user.PasswordHash, user.CreatedAt).
			Suffix("RETURNING id, username, password_hash, created_at").
			ToSql()

		if err != nil {
			return err
		}

		saved, err = scanUser(ur.db.QueryRow(ctx, stmt, args...))

		var pgErr *pgconn.PgError

		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return domain.ErrUsernameTaken
		}

		return err
	})

	if err != nil {
		return domain.User{}, err
	}

	return saved, nil
}

func (ur *UserRepository) DeleteByID(ctx context.Context, id int) error {
	stmt, args, err := ur.db.QueryBuilder.Delete("users").
		Where(sq.Eq{"id": id}).
		ToSql()

	if err != nil {
		return err
	}

	tag, err := ur.db.Exec(ctx, stmt, args...)

	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("user %d: %w", id, domain.ErrUserNotFound)
	}

	return nil
}
