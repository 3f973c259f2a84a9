package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/todoloop/remind-api/internal/api"
	apiMiddleware "github.com/todoloop/remind-api/internal/api/middleware"
)

// setupRouter creates and configures the application router with all routes
// and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.TraceMiddleware)

	reminderHandler := api.NewReminderHandler(app.reminders, app.logger)
	taskHandler := api.NewTaskHandler(app.taskStore, app.logger)

	// The scheduler credential is enforced everywhere except development.
	cronAuth := apiMiddleware.NewCronAuthMiddleware(
		app.config.Cron.Secret,
		app.config.Server.IsDevelopment(),
	)

	r.Route("/api", func(r chi.Router) {
		// Scheduled sweep (guarded by the shared bearer secret)
		r.Group(func(r chi.Router) {
			r.Use(cronAuth.Authenticate)
			r.Get("/cron/daily-reminders", reminderHandler.ScheduledSweep)
		})

		// On-demand reminder endpoints
		r.Post("/send", reminderHandler.SendReminders)
		r.Get("/send", reminderHandler.DueCounts)

		// Diagnostic endpoints
		r.Get("/test-reminders", reminderHandler.DiagnosticSweep)
		r.Get("/test-email", reminderHandler.TestEmail)

		// Task CRUD endpoints
		r.Post("/tasks", taskHandler.CreateTask)
		r.Get("/tasks", taskHandler.ListTasks)
		r.Get("/tasks/{id}", taskHandler.GetTask)
		r.Put("/tasks/{id}", taskHandler.UpdateTask)
		r.Patch("/tasks/{id}/complete", taskHandler.CompleteTask)
		r.Delete("/tasks/{id}", taskHandler.DeleteTask)
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("Failed to write health check response", "error", err)
		}
	})

	return r
}
