package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Task-specific validation errors
var (
	// ErrTaskIDEmpty is returned when a task ID is empty or nil.
	ErrTaskIDEmpty = errors.New("task ID cannot be empty")

	// ErrTaskTitleEmpty is returned when a task's title is empty.
	ErrTaskTitleEmpty = errors.New("task title cannot be empty")

	// ErrTaskOwnerIDEmpty is returned when a task's owner ID is empty.
	ErrTaskOwnerIDEmpty = errors.New("task owner ID cannot be empty")

	// ErrTaskOwnerNameEmpty is returned when a task's owner name is empty.
	ErrTaskOwnerNameEmpty = errors.New("task owner name cannot be empty")

	// ErrTaskPriorityInvalid is returned when a task's priority is not one of
	// the known priority values.
	ErrTaskPriorityInvalid = errors.New("task priority must be high, medium, or low")
)

// Priority represents the importance level of a task.
// An empty Priority means the task has no priority assigned.
type Priority string

// Valid priority values.
const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// IsValid reports whether p is a known priority or unset.
func (p Priority) IsValid() bool {
	switch p {
	case "", PriorityHigh, PriorityMedium, PriorityLow:
		return true
	}
	return false
}

// Task represents a single to-do item belonging to a user.
// Ownership fields are denormalized onto the task: the owner ID comes from the
// external auth provider (an opaque string, not an ID this service mints), and
// the owner's display name and email travel with the task so reminder
// processing never needs a user lookup. OwnerEmail may be empty, in which case
// the task is excluded from all notification processing.
type Task struct {
	ID         uuid.UUID  `json:"id"`
	Title      string     `json:"title"`
	DueDate    *time.Time `json:"date,omitempty"`
	Priority   Priority   `json:"priority,omitempty"`
	Reminder   string     `json:"reminder,omitempty"`
	Completed  bool       `json:"completed"`
	OwnerID    string     `json:"user_id"`
	OwnerName  string     `json:"username"`
	OwnerEmail string     `json:"email,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// NewTask creates a new Task with a generated ID and creation timestamps.
// Returns an error if validation fails.
func NewTask(title string, dueDate *time.Time, priority Priority, ownerID, ownerName, ownerEmail string) (*Task, error) {
	now := time.Now().UTC()
	task := &Task{
		ID:         uuid.New(),
		Title:      title,
		DueDate:    dueDate,
		Priority:   priority,
		OwnerID:    ownerID,
		OwnerName:  ownerName,
		OwnerEmail: ownerEmail,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := task.Validate(); err != nil {
		return nil, err
	}

	return task, nil
}

// Validate checks if the Task has valid data.
// Returns an error if any field fails validation.
func (t *Task) Validate() error {
	if t.ID == uuid.Nil {
		return ErrTaskIDEmpty
	}

	if t.Title == "" {
		return ErrTaskTitleEmpty
	}

	if t.OwnerID == "" {
		return ErrTaskOwnerIDEmpty
	}

	if t.OwnerName == "" {
		return ErrTaskOwnerNameEmpty
	}

	if !t.Priority.IsValid() {
		return ErrTaskPriorityInvalid
	}

	return nil
}

// HasEmail reports whether the task's owner can receive notifications.
func (t *Task) HasEmail() bool {
	return t.OwnerEmail != ""
}
