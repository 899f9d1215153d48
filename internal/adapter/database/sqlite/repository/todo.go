package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"todoweb/internal/adapter/database/sqlite"
	"todoweb/internal/core/domain"
	"todoweb/internal/core/port"
)

var todoColumns = []string{"id", "title", "description", "owner_id", "created_at"}

type TodoRepository struct {
	db      *sqlite.DB
	scanner *sqlite.Scanner
}

func NewTodoRepository(db *sqlite.DB) port.TodoRepository {
	return &TodoRepository{
		db:      db,
		scanner: sqlite.NewScanner(),
	}
}

func (tr *TodoRepository) GetAll(ctx context.Context) ([]domain.Todo, error) {
	return tr.list(ctx, nil)
}

func (tr *TodoRepository) GetAllByUser(ctx context.Context, userId int) ([]domain.Todo, error) {
	return tr.list(ctx, sq.Eq{"owner_id": userId})
}

func (tr *TodoRepository) list(ctx context.Context, where sq.Sqlizer) ([]domain.Todo, error) {
	query := tr.db.QueryBuilder.Select(todoColumns...).
		From("todos").
		OrderBy("id ASC")

	if where != nil {
		query = query.Where(where)
	}

	stmt, args, err := query.ToSql()

	if err != nil {
		return nil, err
	}

	rows, err := tr.db.QueryContext(ctx, stmt, args...)

	if err != nil {
		return nil, err
	}

	defer rows.Close()

	todos := make([]domain.Todo, 0)

	if err := tr.scanner.ScanRowsToSlice(rows, &todos); err != nil {
		return nil, err
	}

	return todos, nil
}

func (tr *TodoRepository) GetByID(ctx context.Context, id int) (domain.Todo, error) {
	stmt, args, err := tr.db.QueryBuilder.Select(todoColumns...).
		From("todos").
		Where(sq.Eq{"id": id}).
		Limit(1).
		ToSql()

	if err != nil {
		return domain.Todo{}, err
	}

	rows, err := tr.db.QueryContext(ctx, stmt, args...)

	if err != nil {
		return domain.Todo{}, err
	}

	defer rows.Close()

	var todo domain.Todo

	err = tr.scanner.ScanRowToStruct(rows, &todo)

	if errors.Is(err, sql.ErrNoRows) {
		return domain.Todo{}, fmt.Errorf("todo %d: %w", id, domain.ErrTodoNotFound)
	}

	if err != nil {
		return domain.Todo{}, err
	}

	return todo, nil
}

func (tr *TodoRepository) Create(ctx context.Context, todo domain.Todo) (domain.Todo, error) {
	stmt, args, err := tr.db.QueryBuilder.Insert("todos").
		Columns("title", "description", "owner_id", "created_at").
		Values(todo.Title, todo.Description, sqlite.NullableID(todo.UserId), todo.CreatedAt).
		ToSql()

	if err != nil {
		return domain.Todo{}, err
	}

	result, err := tr.db.ExecContext(ctx, stmt, args...)

	if err != nil {
		return domain.Todo{}, err
	}

	id, err := result.LastInsertId()

	if err != nil {
		return domain.Todo{}, err
	}

	return tr.GetByID(ctx, int(id))
}

func (tr *TodoRepository) Update(ctx context.Context, todo domain.Todo) (domain.Todo, error) {
	stmt, args, err := tr.db.QueryBuilder.Update("todos").
		SetMap(todo.ToMap()).
		Where(sq.Eq{"id": todo.ID}).
		ToSql()

	if err != nil {
		return domain.Todo{}, err
	}

	result, err := tr.db.ExecContext(ctx, stmt, args...)

	if err != nil {
		return domain.Todo{}, err
	}

	rowsAffected, err := result.RowsAffected()

	if err != nil {
		return domain.Todo{}, err
	}

	if rowsAffected == 0 {
		return domain.Todo{}, fmt.Errorf("todo %d: %w", todo.ID, domain.ErrTodoNotFound)
	}

	return tr.GetByID(ctx, todo.ID)
}

func (tr *TodoRepository) DeleteByID(ctx context.Context, id int) error {
	stmt, args, err := tr.db.QueryBuilder.Delete("todos").
		Where(sq.Eq{"id": id}).
		ToSql()

	if err != nil {
		return err
	}

	result, err := tr.db.ExecContext(ctx, stmt, args...)

	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()

	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return fmt.Errorf("todo %d: %w", id, domain.ErrTodoNotFound)
	}

	return nil
}
