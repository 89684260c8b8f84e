package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/jaekwang-park/todo-crud/internal/model"
)

// TodoRepository persists todos. Lookups and writes against a missing id
// return an error wrapping sql.ErrNoRows.
type TodoRepository interface {
	List(ctx context.Context) ([]model.Todo, error)
	GetByID(ctx context.Context, id uuid.UUID) (model.Todo, error)
	Create(ctx context.Context, todo model.Todo) (model.Todo, error)
	Update(ctx context.Context, id uuid.UUID, todo model.Todo) (model.Todo, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
