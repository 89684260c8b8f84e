package model

import (
	"time"

	"github.com/google/uuid"
)

// Now returns the current time as stored by the database: UTC at microsecond precision.
var Now = func() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}

type Todo struct {
	ID          uuid.UUID  `json:"id"`
	Title       string     `json:"title"`
	Description *string    `json:"description"`
	Status      Status     `json:"status"`
	FinishedAt  *time.Time `json:"finished_at"`
	CreatedAt   time.Time  `json:"created_at"`
}

// NewTodo builds a pending todo with a fresh id and creation time.
func NewTodo(title string, description *string) Todo {
	return Todo{
		ID:          uuid.New(),
		Title:       title,
		Description: description,
		Status:      StatusPending,
		CreatedAt:   Now(),
	}
}

// Update overwrites the title, keeps the previous description when none is
// given, and recomputes FinishedAt whenever a status is supplied. A todo that
// is already Done keeps its original FinishedAt when set to Done again.
func (t *Todo) Update(title string, description *string, status *Status) {
	t.Title = title
	if description != nil {
		t.Description = description
	}
	if status == nil {
		return
	}

	switch {
	case *status != StatusDone:
		t.FinishedAt = nil
	case t.Status != StatusDone || t.FinishedAt == nil:
		finishedAt := Now()
		t.FinishedAt = &finishedAt
	}
	t.Status = *status
}

// TodoRequest is the body accepted by create and update.
type TodoRequest struct {
	Title       string  `json:"title"`
	Description *string `json:"description"`
	Status      *Status `json:"status"`
}

// ToTodo builds a new todo from the request. Status is ignored on creation.
func (r TodoRequest) ToTodo() Todo {
	return NewTodo(r.Title, r.Description)
}

// ApplyTo applies the request as a full update of t.
func (r TodoRequest) ApplyTo(t *Todo) {
	t.Update(r.Title, r.Description, r.Status)
}
