package repository

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"todoweb/internal/adapter/database/postgres"
	"todoweb/internal/core/domain"
	"todoweb/internal/core/port"
	"todoweb/pkg/tracing"
)

const system = "postgresql"

var todoColumns = []string{"id", "title", "description", "owner_id", "created_at"}

type TodoRepository struct {
	db *postgres.DB
}

func NewTodoRepository(db *postgres.DB) port.TodoRepository {
	return &TodoRepository{db: db}
}

func scanTodo(row pgx.Row) (domain.Todo, error) {
	var todo domain.Todo
	var ownerID *int

	err := row.Scan(&todo.ID, &todo.Title, &todo.Description, &ownerID, &todo.CreatedAt)

	if err != nil {
		return domain.Todo{}, err
	}

	if ownerID != nil {
		todo.UserId = *ownerID
	}

	return todo, nil
}

func (tr *TodoRepository) GetAll(ctx context.Context) ([]domain.Todo, error) {
	return tr.list(ctx, nil)
}

func (tr *TodoRepository) GetAllByUser(ctx context.Context, userId int) ([]domain.Todo, error) {
	return tr.list(ctx, sq.Eq{"owner_id": userId})
}

func (tr *TodoRepository) list(ctx context.Context, where sq.Sqlizer) ([]domain.Todo, error) {
	todos := make([]domain.Todo, 0)

	err := tracing.DatabaseSpanWrapper(ctx, system, "todos", "SELECT", func(ctx context.Context) error {
		query := tr.db.QueryBuilder.Select(todoColumns...).
			From("todos").
			OrderBy("id ASC")

		if where != nil {
			query = query.Where(where)
		}

		stmt, args, err := query.ToSql()

		if err != nil {
			return err
		}

		rows, err := tr.db.Query(ctx, stmt, args...)

		if err != nil {
			return err
		}

		defer rows.Close()

		for rows.Next() {
			todo, err := scanTodo(rows)

			if err != nil {
				return err
			}

			todos = append(todos, todo)
		}

		return rows.Err()
	})

	if err != nil {
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

	todo, err := scanTodo(tr.db.QueryRow(ctx, stmt, args...))

	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Todo{}, fmt.Errorf("todo %d: %w", id, domain.ErrTodoNotFound)
	}

	return todo, err
}

func (tr *TodoRepository) Create(ctx context.Context, todo domain.Todo) (domain.Todo, error) {
	var saved domain.Todo

	err := tracing.DatabaseSpanWrapper(ctx, system, "todos", "INSERT", func(ctx context.Context) error {
		stmt, args, err := tr.db.QueryBuilder.Insert("todos").
			Columns("title", "description", "owner_id", "created_at").
			Values(todo.Title, todo.Description, postgres.NullableID(todo.UserId), todo.CreatedAt).
			Suffix("RETURNING id, title, description, owner_id, created_at").
			ToSql()

		if err != nil {
			return err
		}

		saved, err = scanTodo(tr.db.QueryRow(ctx, stmt, args...))

		return err
	})

	return saved, err
}

func (tr *TodoRepository) Update(ctx context.Context, todo domain.Todo) (domain.Todo, error) {
	stmt, args, err := tr.db.QueryBuilder.Update("todos").
		SetMap(todo.ToMap()).
		Where(sq.Eq{"id": todo.ID}).
		Suffix("RETURNING id, title, description, owner_id, created_at").
		ToSql()

	if err != nil {
		return domain.Todo{}, err
	}

	updated, err := scanTodo(tr.db.QueryRow(ctx, stmt, args...))

	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Todo{}, fmt.Errorf("todo %d: %w", todo.ID, domain.ErrTodoNotFound)
	}

	return updated, err
}

func (tr *TodoRepository) DeleteByID(ctx context.Context, id int) error {
	return tracing.DatabaseSpanWrapper(ctx, system, "todos", "DELETE", func(ctx context.Context) error {
		stmt, args, err := tr.db.QueryBuilder.Delete("todos").
			Where(sq.Eq{"id": id}).
			ToSql()

		if err != nil {
			return err
		}

		tag, err := tr.db.Exec(ctx, stmt, args...)

		if err != nil {
			return err
		}

		if tag.RowsAffected() == 0 {
			return fmt.Errorf("todo %d: %w", id, domain.ErrTodoNotFound)
		}

		return nil
	})
}
