// Package reminder implements the reminder engine: classification-driven
// aggregation of tasks into per-recipient groups, concurrent dispatch of
// notifications through an email transport, and the orchestration behind the
// sweep, targeted, and diagnostic entry points.
package reminder

import (
	"time"

	"github.com/todoloop/remind-api/internal/domain"
	"github.com/todoloop/remind-api/internal/email"
)

// GroupMode selects which buckets GroupByRecipient populates and whether
// recipients with no relevant tasks are kept.
type GroupMode int

const (
	// GroupOverdueOnly populates only the overdue bucket and drops any
	// recipient whose overdue bucket ends up empty. Used by the scheduled
	// sweep.
	GroupOverdueOnly GroupMode = iota

	// GroupOverdueAndUpcoming populates both buckets and keeps every
	// recipient owning at least one addressable task, even when both buckets
	// are empty. Used by the on-demand sweep.
	GroupOverdueAndUpcoming
)

// RecipientGroup is the per-user aggregation of tasks eligible for
// notification. Groups are rebuilt on every invocation and never persisted.
type RecipientGroup struct {
	UserID   string
	Name     string
	Email    string
	Overdue  []*domain.Task
	Upcoming []*domain.Task
}

// FirstName returns the recipient's leading name for the email greeting.
func (g *RecipientGroup) FirstName() string {
	return email.FirstName(g.Name)
}

// GroupByRecipient walks the task collection once and groups tasks by owner.
// Tasks whose owner has no email address are silently skipped: they cannot be
// notified and are not an error. Bucket ordering preserves the input order of
// the collection.
func GroupByRecipient(tasks []*domain.Task, now time.Time, mode GroupMode) map[string]*RecipientGroup {
	groups := make(map[string]*RecipientGroup)

	for _, task := range tasks {
		if !task.HasEmail() {
			continue
		}

		group, ok := groups[task.OwnerID]
		if !ok {
			group = &RecipientGroup{
				UserID: task.OwnerID,
				Name:   task.OwnerName,
				Email:  task.OwnerEmail,
			}
			groups[task.OwnerID] = group
		}

		switch mode {
		case GroupOverdueOnly:
			if domain.IsOverdue(task, now) {
				group.Overdue = append(group.Overdue, task)
			}
		case GroupOverdueAndUpcoming:
			if domain.IsOverdue(task, now) {
				group.Overdue = append(group.Overdue, task)
			} else if domain.IsDueSoon(task, now) {
				group.Upcoming = append(group.Upcoming, task)
			}
		}
	}

	if mode == GroupOverdueOnly {
		for id, group := range groups {
			if len(group.Overdue) == 0 {
				delete(groups, id)
			}
		}
	}

	return groups
}
