package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/todoloop/remind-api/internal/domain"
)

// TaskStore defines the interface for task data persistence.
// The reminder engine treats this as an external collaborator: it only reads
// (GetAll, GetByID); the mutating operations serve the task CRUD API.
type TaskStore interface {
	// Create saves a new task to the store.
	// Returns validation errors from the domain Task if data is invalid.
	Create(ctx context.Context, task *domain.Task) error

	// GetByID retrieves a task by its unique ID.
	// Returns ErrTaskNotFound if the task does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Task, error)

	// GetAll retrieves every task in the store in insertion order.
	// A store failure is returned as an error; an empty store returns an
	// empty slice, never nil, so callers can tell the two apart.
	GetAll(ctx context.Context) ([]*domain.Task, error)

	// ListByOwner retrieves all tasks belonging to the given owner, in
	// insertion order. Returns an empty slice if the owner has no tasks.
	ListByOwner(ctx context.Context, ownerID string) ([]*domain.Task, error)

	// Update modifies an existing task. The caller provides the complete
	// task; all mutable fields are written.
	// Returns ErrTaskNotFound if the task does not exist.
	Update(ctx context.Context, task *domain.Task) error

	// SetCompleted sets the completed flag on an existing task.
	// Returns ErrTaskNotFound if the task does not exist.
	SetCompleted(ctx context.Context, id uuid.UUID, completed bool) error

	// Delete removes a task from the store by its ID.
	// Returns ErrTaskNotFound if the task does not exist.
	Delete(ctx context.Context, id uuid.UUID) error
}
