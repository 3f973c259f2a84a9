package api

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/todoloop/remind-api/internal/api/shared"
	"github.com/todoloop/remind-api/internal/domain"
	"github.com/todoloop/remind-api/internal/platform/logger"
	"github.com/todoloop/remind-api/internal/reminder"
)

// ReminderService defines the reminder operations the HTTP layer depends on.
// It is satisfied by *reminder.Service.
type ReminderService interface {
	OverdueSweep(ctx context.Context) (*reminder.SweepResult, error)
	FullSweep(ctx context.Context) ([]reminder.Outcome, error)
	SendTaskReminder(
		ctx context.Context,
		taskID uuid.UUID,
		typ domain.ReminderType,
	) (string, error)
	DueCounts(ctx context.Context) (overdue, upcoming int, err error)
	DiagnosticSweep(ctx context.Context) (*reminder.SweepResult, error)
	SendTestEmail(ctx context.Context) (string, error)
}

// SendReminderRequest represents the request body for POST /api/send.
// UserID and TaskID together select targeted mode; with both absent the
// handler runs a full sweep instead.
type SendReminderRequest struct {
	UserID string `json:"userId"`
	TaskID string `json:"taskId"`
	Type   string `json:"type"   validate:"omitempty,oneof=overdue reminder"`
}

// SweepResponse represents the response for sweep-style endpoints.
type SweepResponse struct {
	Success           bool               `json:"success"`
	Message           string             `json:"message,omitempty"`
	EmailsSent        int                `json:"emailsSent"`
	UsersNotified     int                `json:"usersNotified,omitempty"`
	TotalOverdueTasks int                `json:"totalOverdueTasks,omitempty"`
	Details           []reminder.Outcome `json:"details,omitempty"`
}

// FullSweepResponse represents the response for a POST /api/send sweep.
type FullSweepResponse struct {
	Success    bool               `json:"success"`
	EmailsSent int                `json:"emailsSent"`
	Results    []reminder.Outcome `json:"results"`
}

// TargetedSendResponse represents the response for a targeted reminder send.
type TargetedSendResponse struct {
	ID string `json:"id"`
}

// DueCountsResponse represents the response for GET /api/send.
type DueCountsResponse struct {
	OverdueTasks  int `json:"overdueTasks"`
	UpcomingTasks int `json:"upcomingTasks"`
}

// TestEmailResponse represents the response for GET /api/test-email.
type TestEmailResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	ID      string `json:"id"`
}

// ReminderHandler handles reminder-related HTTP requests
type ReminderHandler struct {
	service   ReminderService
	validator *validator.Validate
	logger    *slog.Logger
}

// NewReminderHandler creates a new ReminderHandler
func NewReminderHandler(service ReminderService, log *slog.Logger) *ReminderHandler {
	if service == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("service cannot be nil for ReminderHandler")
	}
	if log == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for ReminderHandler")
	}

	return &ReminderHandler{
		service:   service,
		validator: validator.New(),
		logger:    log.With(slog.String("component", "reminder_handler")),
	}
}

// ScheduledSweep handles GET /api/cron/daily-reminders requests. It runs the
// overdue-only sweep; authentication is enforced by the cron-auth middleware.
func (h *ReminderHandler) ScheduledSweep(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	result, err := h.service.OverdueSweep(r.Context())
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err),
			GetSafeErrorMessage(err), err)
		return
	}

	if result.UsersNotified == 0 {
		log.Info("scheduled sweep found no overdue tasks")
		shared.RespondWithJSON(w, r, http.StatusOK, SweepResponse{
			Success:    true,
			Message:    "No overdue tasks found",
			EmailsSent: 0,
		})
		return
	}

	log.Info("scheduled sweep completed",
		slog.Int("emails_sent", result.EmailsSent),
		slog.Int("users_notified", result.UsersNotified))

	shared.RespondWithJSON(w, r, http.StatusOK, SweepResponse{
		Success:           true,
		EmailsSent:        result.EmailsSent,
		UsersNotified:     result.UsersNotified,
		TotalOverdueTasks: result.TotalOverdueTasks,
	})
}

// SendReminders handles POST /api/send requests. With userId and taskId in
// the body it sends one targeted reminder; otherwise it sweeps every
// recipient's overdue and due-soon tasks.
func (h *ReminderHandler) SendReminders(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req SendReminderRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	if req.UserID != "" && req.TaskID != "" {
		h.sendTargeted(w, r, req, log)
		return
	}

	outcomes, err := h.service.FullSweep(r.Context())
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err),
			GetSafeErrorMessage(err), err)
		return
	}

	log.Info("full sweep completed", slog.Int("emails_sent", len(outcomes)))

	shared.RespondWithJSON(w, r, http.StatusOK, FullSweepResponse{
		Success:    true,
		EmailsSent: len(outcomes),
		Results:    outcomes,
	})
}

func (h *ReminderHandler) sendTargeted(
	w http.ResponseWriter,
	r *http.Request,
	req SendReminderRequest,
	log *slog.Logger,
) {
	taskID, err := uuid.Parse(req.TaskID)
	if err != nil {
		// An unparseable ID can never name a task; same outcome as a miss.
		shared.RespondWithError(w, r, http.StatusNotFound, "Task or email not found")
		return
	}

	id, err := h.service.SendTaskReminder(r.Context(), taskID, domain.ReminderType(req.Type))
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err),
			GetSafeErrorMessage(err), err)
		return
	}

	log.Info("targeted reminder sent",
		slog.String("task_id", taskID.String()),
		slog.String("message_id", id))

	shared.RespondWithJSON(w, r, http.StatusOK, TargetedSendResponse{ID: id})
}

// DueCounts handles GET /api/send requests. It reports how many tasks are
// currently overdue or due soon without sending anything.
func (h *ReminderHandler) DueCounts(w http.ResponseWriter, r *http.Request) {
	overdue, upcoming, err := h.service.DueCounts(r.Context())
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err),
			GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, DueCountsResponse{
		OverdueTasks:  overdue,
		UpcomingTasks: upcoming,
	})
}

// DiagnosticSweep handles GET /api/test-reminders requests. It runs the
// overdue sweep against the configured test recipient and reports per-send
// details.
func (h *ReminderHandler) DiagnosticSweep(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	result, err := h.service.DiagnosticSweep(r.Context())
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err),
			GetSafeErrorMessage(err), err)
		return
	}

	if result.UsersNotified == 0 {
		shared.RespondWithJSON(w, r, http.StatusOK, SweepResponse{
			Success:    true,
			Message:    "No overdue tasks found",
			EmailsSent: 0,
		})
		return
	}

	log.Info("diagnostic sweep completed",
		slog.Int("emails_sent", result.EmailsSent),
		slog.Int("users_notified", result.UsersNotified))

	shared.RespondWithJSON(w, r, http.StatusOK, SweepResponse{
		Success:           true,
		EmailsSent:        result.EmailsSent,
		UsersNotified:     result.UsersNotified,
		TotalOverdueTasks: result.TotalOverdueTasks,
		Details:           result.Outcomes,
	})
}

// TestEmail handles GET /api/test-email requests. It sends a canned sample
// message to the configured test recipient.
func (h *ReminderHandler) TestEmail(w http.ResponseWriter, r *http.Request) {
	id, err := h.service.SendTestEmail(r.Context())
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError,
			"Failed to send test email", err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, TestEmailResponse{
		Success: true,
		Message: "Test email sent",
		ID:      id,
	})
}
