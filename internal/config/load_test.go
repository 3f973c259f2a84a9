package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Setenv("REMIND_DATABASE_URL", "postgres://localhost:5432/todoloop")
	t.Setenv("REMIND_EMAIL_RESEND_API_KEY", "re_test_key")
}

func TestLoadDefaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "info", cfg.Server.LogLevel)
	assert.Equal(t, EnvDevelopment, cfg.Server.Env)
	assert.Equal(t, "resend", cfg.Email.Provider)
	assert.True(t, cfg.Server.IsDevelopment())
}

func TestLoadFromEnvironment(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("REMIND_SERVER_PORT", "9090")
	t.Setenv("REMIND_SERVER_LOG_LEVEL", "debug")
	t.Setenv("REMIND_SERVER_ENV", "production")
	t.Setenv("REMIND_CRON_SECRET", "sweep-secret")
	t.Setenv("REMIND_EMAIL_TEST_RECIPIENT", "ops@example.com")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Server.LogLevel)
	assert.Equal(t, "production", cfg.Server.Env)
	assert.Equal(t, "sweep-secret", cfg.Cron.Secret)
	assert.Equal(t, "ops@example.com", cfg.Email.TestRecipient)
	assert.False(t, cfg.Server.IsDevelopment())
}

func TestLoadRejectsMissingDatabaseURL(t *testing.T) {
	t.Setenv("REMIND_EMAIL_RESEND_API_KEY", "re_test_key")
	t.Setenv("REMIND_DATABASE_URL", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation")
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"bad log level", "REMIND_SERVER_LOG_LEVEL", "verbose"},
		{"bad environment", "REMIND_SERVER_ENV", "staging"},
		{"bad provider", "REMIND_EMAIL_PROVIDER", "sendgrid"},
		{"bad test recipient", "REMIND_EMAIL_TEST_RECIPIENT", "not-an-address"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			setRequiredEnv(t)
			t.Setenv(tc.key, tc.value)

			_, err := Load()
			require.Error(t, err)
		})
	}
}

func TestLoadGmailProvider(t *testing.T) {
	t.Setenv("REMIND_DATABASE_URL", "postgres://localhost:5432/todoloop")
	t.Setenv("REMIND_EMAIL_PROVIDER", "gmail")
	t.Setenv("REMIND_EMAIL_GMAIL_CLIENT_ID", "client-id")
	t.Setenv("REMIND_EMAIL_GMAIL_CLIENT_SECRET", "client-secret")
	t.Setenv("REMIND_EMAIL_GMAIL_REFRESH_TOKEN", "refresh-token")

	cfg, err := Load()
	require.NoError(t, err)

	// The resend key is only required for the resend provider.
	assert.Equal(t, "gmail", cfg.Email.Provider)
	assert.Equal(t, "client-id", cfg.Email.Gmail.ClientID)
	assert.Equal(t, "refresh-token", cfg.Email.Gmail.RefreshToken)
}
