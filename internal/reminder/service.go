package reminder

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/todoloop/remind-api/internal/domain"
	"github.com/todoloop/remind-api/internal/store"
)

// Service-level errors.
var (
	// ErrNoRecipientEmail is returned by SendTaskReminder when the task
	// exists but its owner has no email address to deliver to.
	ErrNoRecipientEmail = errors.New("task has no recipient email")

	// ErrNoTestRecipient is returned by the diagnostic operations when no
	// test recipient address is configured.
	ErrNoTestRecipient = errors.New("no test recipient configured")

	// ErrFetchTasks wraps task store failures during a sweep. The whole
	// invocation is abandoned: no partial aggregation is attempted.
	ErrFetchTasks = errors.New("failed to fetch tasks")
)

// Diagnostic recipient identity used by the diagnostic sweep: every overdue
// task in the store is reassigned to this single recipient, regardless of
// real ownership.
const (
	diagnosticUserID = "test-user"
	diagnosticName   = "Test User"
)

// SweepResult aggregates one sweep invocation: the counts reported to the
// caller plus the per-send outcomes behind them. EmailsSent counts send
// operations issued, matching the number of outcomes.
type SweepResult struct {
	EmailsSent        int
	UsersNotified     int
	TotalOverdueTasks int
	Outcomes          []Outcome
}

// Service orchestrates the reminder engine's entry points over a task store
// and a dispatcher. Each invocation is independent: the service holds no
// state across calls beyond its injected collaborators.
type Service struct {
	tasks         store.TaskStore
	dispatcher    *Dispatcher
	testRecipient string
	logger        *slog.Logger
	now           func() time.Time
}

// NewService creates a reminder Service. testRecipient may be empty, in which
// case the diagnostic operations return ErrNoTestRecipient. If logger is nil,
// a default logger will be used.
func NewService(tasks store.TaskStore, dispatcher *Dispatcher, testRecipient string, logger *slog.Logger) *Service {
	if tasks == nil {
		panic("tasks cannot be nil")
	}
	if dispatcher == nil {
		panic("dispatcher cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &Service{
		tasks:         tasks,
		dispatcher:    dispatcher,
		testRecipient: testRecipient,
		logger:        logger.With(slog.String("component", "reminder_service")),
		now:           time.Now,
	}
}

// SetClock overrides the service's time source. Intended for tests that need
// a fixed reference instant for classification.
func (s *Service) SetClock(now func() time.Time) {
	s.now = now
}

// OverdueSweep runs the scheduled sweep: fetch all tasks, group overdue ones
// by recipient, and send one overdue notification per recipient. When no
// recipient has overdue tasks the dispatcher is never invoked and a zero
// result is returned. A task fetch failure is fatal to the invocation.
func (s *Service) OverdueSweep(ctx context.Context) (*SweepResult, error) {
	tasks, err := s.tasks.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetchTasks, err)
	}

	groups := GroupByRecipient(tasks, s.now(), GroupOverdueOnly)
	if len(groups) == 0 {
		s.logger.Info("overdue sweep found no overdue tasks")
		return &SweepResult{Outcomes: []Outcome{}}, nil
	}

	outcomes := s.dispatcher.Dispatch(ctx, groups)
	result := summarize(groups, outcomes)

	s.logger.Info("overdue sweep completed",
		slog.Int("users_notified", result.UsersNotified),
		slog.Int("emails_sent", result.EmailsSent),
		slog.Int("total_overdue_tasks", result.TotalOverdueTasks))
	return result, nil
}

// FullSweep runs the on-demand sweep in overdue-and-upcoming mode: every
// recipient owning at least one addressable task is grouped, and one message
// goes out per non-empty bucket. Returns the per-send outcomes.
func (s *Service) FullSweep(ctx context.Context) ([]Outcome, error) {
	tasks, err := s.tasks.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetchTasks, err)
	}

	groups := GroupByRecipient(tasks, s.now(), GroupOverdueAndUpcoming)
	return s.dispatcher.Dispatch(ctx, groups), nil
}

// SendTaskReminder sends a single reminder for one task. If typ is empty the
// type is inferred from the task's classification at the current instant.
// Returns the transport message ID.
// Returns store.ErrTaskNotFound if the task does not exist and
// ErrNoRecipientEmail if its owner has no address.
func (s *Service) SendTaskReminder(ctx context.Context, taskID uuid.UUID, typ domain.ReminderType) (string, error) {
	task, err := s.tasks.GetByID(ctx, taskID)
	if err != nil {
		return "", err
	}

	if !task.HasEmail() {
		return "", ErrNoRecipientEmail
	}

	if typ == "" {
		typ = domain.ClassifyReminder(task, s.now())
	}

	messageID, err := s.dispatcher.SendTargeted(ctx, task, typ)
	if err != nil {
		return "", fmt.Errorf("failed to send reminder: %w", err)
	}

	s.logger.Info("targeted reminder sent",
		slog.String("task_id", taskID.String()),
		slog.String("type", string(typ)),
		slog.String("message_id", messageID))
	return messageID, nil
}

// DueCounts reports how many tasks in the store are currently overdue and how
// many are due soon, without sending anything.
func (s *Service) DueCounts(ctx context.Context) (overdue, upcoming int, err error) {
	tasks, err := s.tasks.GetAll(ctx)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %v", ErrFetchTasks, err)
	}

	now := s.now()
	for _, task := range tasks {
		if domain.IsOverdue(task, now) {
			overdue++
		} else if domain.IsDueSoon(task, now) {
			upcoming++
		}
	}

	return overdue, upcoming, nil
}

// DiagnosticSweep runs an operational verification sweep: every overdue task
// in the store, regardless of owner, is grouped under the configured test
// recipient, and the detailed per-send outcomes are returned. Real users are
// never contacted.
func (s *Service) DiagnosticSweep(ctx context.Context) (*SweepResult, error) {
	if s.testRecipient == "" {
		return nil, ErrNoTestRecipient
	}

	tasks, err := s.tasks.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetchTasks, err)
	}

	group := &RecipientGroup{
		UserID: diagnosticUserID,
		Name:   diagnosticName,
		Email:  s.testRecipient,
	}
	now := s.now()
	for _, task := range tasks {
		if domain.IsOverdue(task, now) {
			group.Overdue = append(group.Overdue, task)
		}
	}

	if len(group.Overdue) == 0 {
		return &SweepResult{Outcomes: []Outcome{}}, nil
	}

	groups := map[string]*RecipientGroup{group.UserID: group}
	outcomes := s.dispatcher.Dispatch(ctx, groups)
	return summarize(groups, outcomes), nil
}

// SendTestEmail sends a canned overdue notification with two sample tasks to
// the configured test recipient and returns the transport message ID.
func (s *Service) SendTestEmail(ctx context.Context) (string, error) {
	if s.testRecipient == "" {
		return "", ErrNoTestRecipient
	}

	now := s.now()
	yesterday := now.Add(-24 * time.Hour)
	twoDaysAgo := now.Add(-48 * time.Hour)
	samples := []*domain.Task{
		{
			ID:        uuid.New(),
			Title:     "Complete project report",
			DueDate:   &yesterday,
			Priority:  domain.PriorityHigh,
			OwnerID:   diagnosticUserID,
			OwnerName: diagnosticName,
		},
		{
			ID:        uuid.New(),
			Title:     "Schedule team meeting",
			DueDate:   &twoDaysAgo,
			Priority:  domain.PriorityMedium,
			OwnerID:   diagnosticUserID,
			OwnerName: diagnosticName,
		},
	}

	group := &RecipientGroup{
		UserID:  diagnosticUserID,
		Name:    diagnosticName,
		Email:   s.testRecipient,
		Overdue: samples,
	}

	outcomes := s.dispatcher.Dispatch(ctx, map[string]*RecipientGroup{group.UserID: group})
	if len(outcomes) != 1 {
		return "", fmt.Errorf("expected one send, got %d", len(outcomes))
	}
	if !outcomes[0].Success {
		return "", fmt.Errorf("failed to send test email: %s", outcomes[0].Error)
	}

	return outcomes[0].MessageID, nil
}

// summarize builds the aggregate counts for a completed sweep.
func summarize(groups map[string]*RecipientGroup, outcomes []Outcome) *SweepResult {
	totalOverdue := 0
	for _, group := range groups {
		totalOverdue += len(group.Overdue)
	}

	return &SweepResult{
		EmailsSent:        len(outcomes),
		UsersNotified:     len(groups),
		TotalOverdueTasks: totalOverdue,
		Outcomes:          outcomes,
	}
}
