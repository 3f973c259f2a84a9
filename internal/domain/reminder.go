package domain

import (
	"errors"
	"time"
)

// ErrReminderTypeInvalid is returned when a reminder type is not one of the
// known type values.
var ErrReminderTypeInvalid = errors.New("reminder type must be overdue or reminder")

// ReminderType identifies which kind of notification a message carries.
// It is a closed enumeration: the renderer and the dispatcher switch on it,
// and the API rejects any other value.
type ReminderType string

const (
	// ReminderOverdue marks a notification about tasks whose due date has
	// already passed.
	ReminderOverdue ReminderType = "overdue"

	// ReminderUpcoming marks a notification about tasks due within the next
	// 24 hours. The wire value is "reminder" for compatibility with existing
	// clients.
	ReminderUpcoming ReminderType = "reminder"
)

// IsValid reports whether rt is a known reminder type.
func (rt ReminderType) IsValid() bool {
	return rt == ReminderOverdue || rt == ReminderUpcoming
}

// IsOverdue reports whether the task's due date has passed as of now.
// The comparison is by calendar day: both dates are truncated to midnight and
// the task is overdue only if its day is strictly before today. A task with no
// due date or a completed task is never overdue.
func IsOverdue(task *Task, now time.Time) bool {
	if task.DueDate == nil || task.Completed {
		return false
	}
	return startOfDay(*task.DueDate).Before(startOfDay(now))
}

// IsDueSoon reports whether the task's due date falls within the closed
// interval [now, now+24h]. Unlike IsOverdue this compares raw timestamps
// against the reference instant, with no day truncation. A task with no due
// date or a completed task is never due soon.
func IsDueSoon(task *Task, now time.Time) bool {
	if task.DueDate == nil || task.Completed {
		return false
	}
	due := *task.DueDate
	return !due.Before(now) && !due.After(now.Add(24*time.Hour))
}

// ClassifyReminder returns the reminder type appropriate for a single task:
// ReminderOverdue if the task is overdue as of now, ReminderUpcoming otherwise.
func ClassifyReminder(task *Task, now time.Time) ReminderType {
	if IsOverdue(task, now) {
		return ReminderOverdue
	}
	return ReminderUpcoming
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
