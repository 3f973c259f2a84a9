package reminder

import (
	"context"
	"log/slog"
	"sort"
	"sync"

	"github.com/todoloop/remind-api/internal/domain"
	"github.com/todoloop/remind-api/internal/email"
)

// Outcome is the per-send result record collected during dispatch.
// It is built fresh for each invocation and never persisted.
type Outcome struct {
	UserID    string              `json:"userId"`
	Email     string              `json:"email"`
	Type      domain.ReminderType `json:"type"`
	Success   bool                `json:"success"`
	MessageID string              `json:"messageId,omitempty"`
	Error     string              `json:"error,omitempty"`
	TaskCount int                 `json:"tasksCount"`
}

// Dispatcher fans reminder notifications out to an email transport: one send
// per non-empty bucket per recipient, all issued concurrently, with a
// wait-for-all barrier before the outcomes are returned. A transport failure
// for one send never aborts its siblings; it becomes a failed Outcome.
type Dispatcher struct {
	sender email.Sender
	from   string
	logger *slog.Logger
}

// NewDispatcher creates a Dispatcher sending through the given transport with
// the given From identity. If logger is nil, a default logger will be used.
func NewDispatcher(sender email.Sender, from string, logger *slog.Logger) *Dispatcher {
	if sender == nil {
		panic("sender cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &Dispatcher{
		sender: sender,
		from:   from,
		logger: logger.With(slog.String("component", "dispatcher")),
	}
}

// sendJob is one bucket's worth of notification for one recipient.
type sendJob struct {
	group *RecipientGroup
	typ   domain.ReminderType
	tasks []*domain.Task
}

// Dispatch sends one message per non-empty bucket per recipient and returns
// an Outcome for every send, successes and failures alike. Outcomes are
// ordered by recipient ID (overdue before upcoming within a recipient) so
// callers get stable output regardless of send completion order.
func (d *Dispatcher) Dispatch(ctx context.Context, groups map[string]*RecipientGroup) []Outcome {
	jobs := buildJobs(groups)
	if len(jobs) == 0 {
		return []Outcome{}
	}

	outcomes := make([]Outcome, len(jobs))
	var wg sync.WaitGroup
	for i, job := range jobs {
		wg.Add(1)
		go func(i int, job sendJob) {
			defer wg.Done()
			outcomes[i] = d.send(ctx, job)
		}(i, job)
	}
	wg.Wait()

	return outcomes
}

// SendTargeted sends a single-task reminder directly to the task's owner and
// returns the transport message ID. Unlike Dispatch, a failure here is
// returned as an error: the caller asked for exactly this send.
func (d *Dispatcher) SendTargeted(ctx context.Context, task *domain.Task, typ domain.ReminderType) (string, error) {
	body, err := email.RenderBody(email.FirstName(task.OwnerName), []*domain.Task{task}, typ)
	if err != nil {
		return "", err
	}

	return d.sender.Send(ctx, email.Message{
		From:    d.from,
		To:      []string{task.OwnerEmail},
		Subject: email.TargetedSubject(typ),
		HTML:    body,
	})
}

func (d *Dispatcher) send(ctx context.Context, job sendJob) Outcome {
	outcome := Outcome{
		UserID:    job.group.UserID,
		Email:     job.group.Email,
		Type:      job.typ,
		TaskCount: len(job.tasks),
	}

	body, err := email.RenderBody(job.group.FirstName(), job.tasks, job.typ)
	if err != nil {
		outcome.Error = err.Error()
		return outcome
	}

	messageID, err := d.sender.Send(ctx, email.Message{
		From:    d.from,
		To:      []string{job.group.Email},
		Subject: email.SweepSubject(job.typ, len(job.tasks)),
		HTML:    body,
	})
	if err != nil {
		d.logger.Warn("reminder send failed",
			slog.String("user_id", job.group.UserID),
			slog.String("type", string(job.typ)),
			slog.String("error", err.Error()))
		outcome.Error = err.Error()
		return outcome
	}

	outcome.Success = true
	outcome.MessageID = messageID
	return outcome
}

func buildJobs(groups map[string]*RecipientGroup) []sendJob {
	userIDs := make([]string, 0, len(groups))
	for id := range groups {
		userIDs = append(userIDs, id)
	}
	sort.Strings(userIDs)

	var jobs []sendJob
	for _, id := range userIDs {
		group := groups[id]
		if len(group.Overdue) > 0 {
			jobs = append(jobs, sendJob{group: group, typ: domain.ReminderOverdue, tasks: group.Overdue})
		}
		if len(group.Upcoming) > 0 {
			jobs = append(jobs, sendJob{group: group, typ: domain.ReminderUpcoming, tasks: group.Upcoming})
		}
	}

	return jobs
}
