package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/todoloop/remind-api/internal/api/shared"
	"github.com/todoloop/remind-api/internal/domain"
	"github.com/todoloop/remind-api/internal/platform/logger"
	"github.com/todoloop/remind-api/internal/store"
)

// CreateTaskRequest represents the request body for creating a new task
type CreateTaskRequest struct {
	Title      string     `json:"title"    validate:"required,min=1"`
	DueDate    *time.Time `json:"date"`
	Priority   string     `json:"priority" validate:"omitempty,oneof=high medium low"`
	Reminder   string     `json:"reminder"`
	OwnerID    string     `json:"user_id"  validate:"required"`
	OwnerName  string     `json:"username" validate:"required"`
	OwnerEmail string     `json:"email"    validate:"omitempty,email"`
}

// UpdateTaskRequest represents the request body for updating an existing task.
// Owner identity is immutable; only the task's own fields may change.
type UpdateTaskRequest struct {
	Title     string     `json:"title"    validate:"required,min=1"`
	DueDate   *time.Time `json:"date"`
	Priority  string     `json:"priority" validate:"omitempty,oneof=high medium low"`
	Reminder  string     `json:"reminder"`
	Completed bool       `json:"completed"`
}

// CompleteTaskRequest represents the request body for toggling completion
type CompleteTaskRequest struct {
	Completed bool `json:"completed"`
}

// TaskHandler handles task CRUD HTTP requests
type TaskHandler struct {
	tasks     store.TaskStore
	validator *validator.Validate
	logger    *slog.Logger
}

// NewTaskHandler creates a new TaskHandler
func NewTaskHandler(tasks store.TaskStore, log *slog.Logger) *TaskHandler {
	if tasks == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("task store cannot be nil for TaskHandler")
	}
	if log == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for TaskHandler")
	}

	return &TaskHandler{
		tasks:     tasks,
		validator: validator.New(),
		logger:    log.With(slog.String("component", "task_handler")),
	}
}

// CreateTask handles POST /api/tasks requests
func (h *TaskHandler) CreateTask(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req CreateTaskRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	task, err := domain.NewTask(
		req.Title,
		req.DueDate,
		domain.Priority(req.Priority),
		req.OwnerID,
		req.OwnerName,
		req.OwnerEmail,
	)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid task data")
		return
	}
	task.Reminder = req.Reminder

	if err := h.tasks.Create(r.Context(), task); err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err),
			GetSafeErrorMessage(err), err)
		return
	}

	log.Info("task created",
		slog.String("task_id", task.ID.String()),
		slog.String("owner_id", task.OwnerID))

	shared.RespondWithJSON(w, r, http.StatusCreated, task)
}

// ListTasks handles GET /api/tasks requests. With a userId query parameter it
// returns that owner's tasks; without one it returns every task.
func (h *TaskHandler) ListTasks(w http.ResponseWriter, r *http.Request) {
	var (
		tasks []*domain.Task
		err   error
	)

	if ownerID := r.URL.Query().Get("userId"); ownerID != "" {
		tasks, err = h.tasks.ListByOwner(r.Context(), ownerID)
	} else {
		tasks, err = h.tasks.GetAll(r.Context())
	}
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError,
			"Failed to fetch tasks", err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, tasks)
}

// GetTask handles GET /api/tasks/{id} requests
func (h *TaskHandler) GetTask(w http.ResponseWriter, r *http.Request) {
	id, ok := taskIDFromURL(w, r)
	if !ok {
		return
	}

	task, err := h.tasks.GetByID(r.Context(), id)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err),
			GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, task)
}

// UpdateTask handles PUT /api/tasks/{id} requests
func (h *TaskHandler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	id, ok := taskIDFromURL(w, r)
	if !ok {
		return
	}

	var req UpdateTaskRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	task, err := h.tasks.GetByID(r.Context(), id)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err),
			GetSafeErrorMessage(err), err)
		return
	}

	task.Title = req.Title
	task.DueDate = req.DueDate
	task.Priority = domain.Priority(req.Priority)
	task.Reminder = req.Reminder
	task.Completed = req.Completed
	task.UpdatedAt = time.Now().UTC()

	if err := h.tasks.Update(r.Context(), task); err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err),
			GetSafeErrorMessage(err), err)
		return
	}

	log.Debug("task updated", slog.String("task_id", id.String()))

	shared.RespondWithJSON(w, r, http.StatusOK, task)
}

// CompleteTask handles PATCH /api/tasks/{id}/complete requests
func (h *TaskHandler) CompleteTask(w http.ResponseWriter, r *http.Request) {
	id, ok := taskIDFromURL(w, r)
	if !ok {
		return
	}

	var req CompleteTaskRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.tasks.SetCompleted(r.Context(), id, req.Completed); err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err),
			GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, map[string]bool{"completed": req.Completed})
}

// DeleteTask handles DELETE /api/tasks/{id} requests
func (h *TaskHandler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	id, ok := taskIDFromURL(w, r)
	if !ok {
		return
	}

	if err := h.tasks.Delete(r.Context(), id); err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err),
			GetSafeErrorMessage(err), err)
		return
	}

	log.Debug("task deleted", slog.String("task_id", id.String()))

	w.WriteHeader(http.StatusNoContent)
}

// taskIDFromURL parses the {id} URL parameter, writing a 400 response and
// returning ok=false when it is not a valid UUID.
func taskIDFromURL(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid task ID")
		return uuid.Nil, false
	}
	return id, true
}
