package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/jaekwang-park/todo-crud/internal/model"
)

const todoColumns = `id, title, description, status, finished_at, created_at`

type PostgresTodoRepository struct {
	db *sql.DB
}

func NewPostgresTodo(db *sql.DB) *PostgresTodoRepository {
	return &PostgresTodoRepository{db: db}
}

func (r *PostgresTodoRepository) List(ctx context.Context) ([]model.Todo, error) {
	query := `
		SELECT ` + todoColumns + `
		FROM todos
		ORDER BY created_at, id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list todos: %w", err)
	}
	defer rows.Close()

	todos := []model.Todo{}
	for rows.Next() {
		todo, err := scanTodo(rows)
		if err != nil {
			return nil, err
		}
		todos = append(todos, todo)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate todos: %w", err)
	}

	return todos, nil
}

func (r *PostgresTodoRepository) GetByID(ctx context.Context, id uuid.UUID) (model.Todo, error) {
	query := `
		SELECT ` + todoColumns + `
		FROM todos
		WHERE id = $1`

	row := r.db.QueryRowContext(ctx, query, id)
	return scanTodo(row)
}

func (r *PostgresTodoRepository) Create(ctx context.Context, todo model.Todo) (model.Todo, error) {
	query := `
		INSERT INTO todos (id, title, description, status, finished_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + todoColumns

	row := r.db.QueryRowContext(ctx, query,
		todo.ID, todo.Title, todo.Description, todo.Status, todo.FinishedAt, todo.CreatedAt,
	)

	return scanTodo(row)
}

func (r *PostgresTodoRepository) Update(ctx context.Context, id uuid.UUID, todo model.Todo) (model.Todo, error) {
	query := `
		UPDATE todos
		SET title = $1, description = $2, status = $3, finished_at = $4
		WHERE id = $5
		RETURNING ` + todoColumns

	row := r.db.QueryRowContext(ctx, query,
		todo.Title, todo.Description, todo.Status, todo.FinishedAt, id,
	)

	return scanTodo(row)
}

func (r *PostgresTodoRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM todos WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete todo: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return sql.ErrNoRows
	}

	return nil
}

type scannable interface {
	Scan(dest ...any) error
}

func scanTodo(row scannable) (model.Todo, error) {
	var t model.Todo
	err := row.Scan(
		&t.ID, &t.Title, &t.Description,
		&t.Status, &t.FinishedAt, &t.CreatedAt,
	)
	if err != nil {
		return model.Todo{}, fmt.Errorf("failed to scan todo: %w", err)
	}
	return t, nil
}

// ensure compile-time interface compliance
var _ TodoRepository = (*PostgresTodoRepository)(nil)
