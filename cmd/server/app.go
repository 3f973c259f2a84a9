package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/todoloop/remind-api/internal/config"
	"github.com/todoloop/remind-api/internal/email"
	"github.com/todoloop/remind-api/internal/platform/logger"
	"github.com/todoloop/remind-api/internal/platform/postgres"
	"github.com/todoloop/remind-api/internal/reminder"
	"github.com/todoloop/remind-api/internal/store"
)

// application holds the assembled dependencies of the running server.
type application struct {
	config    *config.Config
	logger    *slog.Logger
	db        *sql.DB
	taskStore store.TaskStore
	reminders *reminder.Service
}

// initializeApp loads configuration and wires up every application component:
// logging, the database connection and migrations, the email transport, and
// the reminder service.
func initializeApp(ctx context.Context) (*application, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	appLogger, err := logger.Setup(cfg.Server)
	if err != nil {
		return nil, fmt.Errorf("failed to set up logger: %w", err)
	}

	appLogger.Info("Server configuration loaded",
		slog.Int("port", cfg.Server.Port),
		slog.String("log_level", cfg.Server.LogLevel),
		slog.String("env", cfg.Server.Env),
		slog.String("email_provider", cfg.Email.Provider))

	db, err := setupDatabase(ctx, cfg, appLogger)
	if err != nil {
		return nil, err
	}

	taskStore := postgres.NewPostgresTaskStore(db, appLogger)

	sender, err := setupSender(ctx, cfg)
	if err != nil {
		db.Close()
		return nil, err
	}

	dispatcher := reminder.NewDispatcher(sender, cfg.Email.From, appLogger)
	reminderService := reminder.NewService(
		taskStore,
		dispatcher,
		cfg.Email.TestRecipient,
		appLogger,
	)

	return &application{
		config:    cfg,
		logger:    appLogger,
		db:        db,
		taskStore: taskStore,
		reminders: reminderService,
	}, nil
}

// setupSender builds the configured outbound email transport.
func setupSender(ctx context.Context, cfg *config.Config) (email.Sender, error) {
	switch cfg.Email.Provider {
	case "resend":
		return email.NewResendSender(cfg.Email.ResendAPIKey), nil
	case "gmail":
		sender, err := email.NewGmailSender(ctx, cfg.Email.Gmail)
		if err != nil {
			return nil, fmt.Errorf("failed to set up gmail transport: %w", err)
		}
		return sender, nil
	default:
		// Unreachable with a validated config.
		return nil, fmt.Errorf("unknown email provider %q", cfg.Email.Provider)
	}
}

// cleanup releases resources held by the application.
func (app *application) cleanup() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("Failed to close database connection", "error", err)
		}
	}
}
