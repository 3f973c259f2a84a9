package api

import (
	"errors"
	"net/http"

	"github.com/todoloop/remind-api/internal/reminder"
	"github.com/todoloop/remind-api/internal/store"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	// Not found errors
	case errors.Is(err, store.ErrTaskNotFound),
		errors.Is(err, reminder.ErrNoRecipientEmail):
		return http.StatusNotFound

	// Conflict errors
	case errors.Is(err, store.ErrDuplicate):
		return http.StatusConflict

	// Bad request errors
	case errors.Is(err, store.ErrInvalidEntity):
		return http.StatusBadRequest

	// Default: internal server error
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type. This prevents leaking sensitive internal details.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	switch {
	// A targeted reminder needs both a task and an owner address; the two
	// cases are indistinguishable to the caller on purpose.
	case errors.Is(err, store.ErrTaskNotFound),
		errors.Is(err, reminder.ErrNoRecipientEmail):
		return "Task or email not found"

	case errors.Is(err, reminder.ErrNoTestRecipient):
		return "No test recipient configured"

	case errors.Is(err, reminder.ErrFetchTasks):
		return "Failed to fetch tasks"

	case errors.Is(err, store.ErrDuplicate):
		return "Task already exists"

	case errors.Is(err, store.ErrInvalidEntity):
		return "Invalid task data"

	default:
		return "Failed to send reminders"
	}
}
