package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestNewTask(t *testing.T) {
	t.Parallel()

	due := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)

	task, err := NewTask("Write report", &due, PriorityHigh, "user_2abc", "Ada Lovelace", "ada@example.com")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if task.ID == uuid.Nil {
		t.Error("Expected non-nil UUID, got nil UUID")
	}

	if task.Title != "Write report" {
		t.Errorf("Expected title %q, got %q", "Write report", task.Title)
	}

	if task.DueDate == nil || !task.DueDate.Equal(due) {
		t.Errorf("Expected due date %v, got %v", due, task.DueDate)
	}

	if task.Completed {
		t.Error("Expected new task to be incomplete")
	}

	if task.CreatedAt.IsZero() || task.UpdatedAt.IsZero() {
		t.Error("Expected non-zero timestamps")
	}

	// Optional fields may be absent.
	task, err = NewTask("No date, no priority", nil, "", "user_2abc", "Ada Lovelace", "")
	if err != nil {
		t.Fatalf("Expected no error for task without date/priority/email, got %v", err)
	}
	if task.HasEmail() {
		t.Error("Expected HasEmail to be false for empty owner email")
	}

	// Invalid title
	if _, err := NewTask("", &due, PriorityHigh, "user_2abc", "Ada Lovelace", ""); err != ErrTaskTitleEmpty {
		t.Errorf("Expected error %v, got %v", ErrTaskTitleEmpty, err)
	}

	// Invalid owner ID
	if _, err := NewTask("Title", &due, PriorityHigh, "", "Ada Lovelace", ""); err != ErrTaskOwnerIDEmpty {
		t.Errorf("Expected error %v, got %v", ErrTaskOwnerIDEmpty, err)
	}

	// Invalid owner name
	if _, err := NewTask("Title", &due, PriorityHigh, "user_2abc", "", ""); err != ErrTaskOwnerNameEmpty {
		t.Errorf("Expected error %v, got %v", ErrTaskOwnerNameEmpty, err)
	}

	// Invalid priority
	if _, err := NewTask("Title", &due, Priority("urgent"), "user_2abc", "Ada Lovelace", ""); err != ErrTaskPriorityInvalid {
		t.Errorf("Expected error %v, got %v", ErrTaskPriorityInvalid, err)
	}
}

func TestPriorityIsValid(t *testing.T) {
	t.Parallel()

	valid := []Priority{"", PriorityHigh, PriorityMedium, PriorityLow}
	for _, p := range valid {
		if !p.IsValid() {
			t.Errorf("Expected priority %q to be valid", p)
		}
	}

	invalid := []Priority{"urgent", "HIGH", "none"}
	for _, p := range invalid {
		if p.IsValid() {
			t.Errorf("Expected priority %q to be invalid", p)
		}
	}
}
