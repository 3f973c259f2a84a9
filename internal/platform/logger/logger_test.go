package logger

import (
	"context"
	"log/slog"
	"os"
	"testing"

	"github.com/todoloop/remind-api/internal/config"
)

func TestSetupLevels(t *testing.T) {
	tests := []struct {
		name          string
		configLevel   string
		enabledLevel  slog.Level
		disabledLevel slog.Level
	}{
		{"debug level", "debug", slog.LevelDebug, slog.LevelDebug - 1},
		{"info level", "info", slog.LevelInfo, slog.LevelDebug},
		{"warn level", "warn", slog.LevelWarn, slog.LevelInfo},
		{"error level", "error", slog.LevelError, slog.LevelWarn},
		{"case insensitive", "WARN", slog.LevelWarn, slog.LevelInfo},
		{"invalid falls back to info", "verbose", slog.LevelInfo, slog.LevelDebug},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			logger, err := Setup(config.ServerConfig{Port: 8080, LogLevel: tc.configLevel})
			if err != nil {
				t.Fatalf("Setup() returned error: %v", err)
			}
			if logger == nil {
				t.Fatal("Setup() returned nil logger")
			}

			ctx := context.Background()
			if !logger.Enabled(ctx, tc.enabledLevel) {
				t.Errorf("Expected level %v to be enabled for config level %q", tc.enabledLevel, tc.configLevel)
			}
			if logger.Enabled(ctx, tc.disabledLevel) {
				t.Errorf("Expected level %v to be disabled for config level %q", tc.disabledLevel, tc.configLevel)
			}
		})
	}
}

func TestSetupSetsDefault(t *testing.T) {
	previous := slog.Default()
	defer slog.SetDefault(previous)

	logger, err := Setup(config.ServerConfig{Port: 8080, LogLevel: "info"})
	if err != nil {
		t.Fatalf("Setup() returned error: %v", err)
	}

	if slog.Default() != logger {
		t.Error("Expected Setup to install the returned logger as the default")
	}
}

func TestContextHelpers(t *testing.T) {
	defaultLogger := slog.Default()
	customLogger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	if got := FromContextOrDefault(context.Background(), defaultLogger); got != defaultLogger {
		t.Error("Expected default logger for context without logger")
	}

	if got := FromContextOrDefault(nil, defaultLogger); got != defaultLogger { //nolint:staticcheck
		t.Error("Expected default logger for nil context")
	}

	ctx := WithLogger(context.Background(), customLogger)
	if got := FromContext(ctx); got != customLogger {
		t.Error("Expected stored logger from context")
	}
	if got := FromContextOrDefault(ctx, defaultLogger); got != customLogger {
		t.Error("Expected stored logger to win over default")
	}

	defer func() {
		if recover() == nil {
			t.Error("Expected WithLogger(nil) to panic")
		}
	}()
	WithLogger(context.Background(), nil)
}
