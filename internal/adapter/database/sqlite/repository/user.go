package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/mattn/go-sqlite3"

	"todoweb/internal/adapter/database/sqlite"
	"todoweb/internal/core/domain"
	"todoweb/internal/core/port"
)

var userColumns = []string{"id", "username", "password_hash", "created_at"}

type UserRepository struct {
	db      *sqlite.DB
	scanner *sqlite.Scanner
}

func NewUserRepository(db *sqlite.DB) port.UserRepository {
	return &UserRepository{
		db:      db,
		scanner: sqlite.NewScanner(),
	}
}

func (ur *UserRepository) GetByID(ctx context.Context, id int) (domain.User, error) {
	user, err := ur.getOne(ctx, ur.db.DB, sq.Eq{"id": id})

	if errors.Is(err, sql.ErrNoRows) {
		return domain.User{}, fmt.Errorf("user %d: %w", id, domain.ErrUserNotFound)
	}

	return user, err
}

// GetByUsername matches the stored name exactly; callers trim input first.
func (ur *UserRepository) GetByUsername(ctx context.Context, username string) (domain.User, error) {
	user, err := ur.getOne(ctx, ur.db.DB, sq.Eq{"username": username})

	if errors.Is(err, sql.ErrNoRows) {
		return domain.User{}, fmt.Errorf("user %q: %w", username, domain.ErrUserNotFound)
	}

	return user, err
}

type querier interface {
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
}

func (ur *UserRepository) getOne(ctx context.Context, q querier, where sq.Sqlizer) (domain.User, error) {
	stmt, args, err := ur.db.QueryBuilder.Select(userColumns...).
		From("users").
		Where(where).
		Limit(1).
		ToSql()

	if err != nil {
		return domain.User{}, err
	}

	rows, err := q.QueryContext(ctx, stmt, args...)

	if err != nil {
		return domain.User{}, err
	}

	defer rows.Close()

	var user domain.User

	if err := ur.scanner.ScanRowToStruct(rows, &user); err != nil {
		return domain.User{}, err
	}

	return user, nil
}

func (ur *UserRepository) Create(ctx context.Context, user domain.User) (domain.User, error) {
	tx, err := ur.db.BeginTx(ctx, nil)

	if err != nil {
		return domain.User{}, err
	}

	defer tx.Rollback()

	stmt, args, err := ur.db.QueryBuilder.Insert("users").
		Columns("username", "password_hash", "created_at").
		Values(user.Username, user.PasswordHash, user.CreatedAt).
		ToSql()

	if err != nil {
		return domain.User{}, err
	}

	result, err := tx.ExecContext(ctx, stmt, args...)

	if isUniqueViolation(err) {
		return domain.User{}, domain.ErrUsernameTaken
	}

	if err != nil {
		return domain.User{}, err
	}

	id, err := result.LastInsertId()

	if err != nil {
		return domain.User{}, err
	}

	saved, err := ur.getOne(ctx, tx, sq.Eq{"id": id})

	if err != nil {
		return domain.User{}, err
	}

	return saved, tx.Commit()
}

// DeleteByID removes the account; the todos foreign key cascades.
func (ur *UserRepository) DeleteByID(ctx context.Context, id int) error {
	stmt, args, err := ur.db.QueryBuilder.Delete("users").
		Where(sq.Eq{"id": id}).
		ToSql()

	if err != nil {
		return err
	}

	result, err := ur.db.ExecContext(ctx, stmt, args...)

	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()

	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return fmt.Errorf("user %d: %w", id, domain.ErrUserNotFound)
	}

	return nil
}

func isUniqueViolation(err error) bool {
	var sqliteErr sqlite3.Error

	return errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique
}
