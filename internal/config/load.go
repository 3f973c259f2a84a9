package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// envPrefix is the prefix for all environment variables read by the loader,
// e.g. REMIND_SERVER_PORT or REMIND_DATABASE_URL.
const envPrefix = "REMIND"

// Load configuration from environment variables and optionally a config file.
// Environment variables take precedence over values from config files.
// Returns a populated Config struct or an error if loading/validation fails.
func Load() (*Config, error) {
	v := viper.New()

	// Defaults
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.log_level", "info")
	v.SetDefault("server.env", EnvDevelopment)
	v.SetDefault("email.provider", "resend")
	v.SetDefault("email.from", "TodoList <notifications@yourtodoapp.com>")

	// Optional config file in the working directory.
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// Environment variables with the REMIND_ prefix; nested keys use
	// underscores (server.log_level -> REMIND_SERVER_LOG_LEVEL).
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Viper only surfaces env-var-backed keys during Unmarshal when it knows
	// about them, so bind every key explicitly.
	for _, key := range []string{
		"server.port", "server.log_level", "server.env",
		"database.url",
		"email.provider", "email.from", "email.resend_api_key", "email.test_recipient",
		"email.gmail.client_id", "email.gmail.client_secret", "email.gmail.refresh_token",
		"cron.secret",
	} {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("failed to bind environment variable for %s: %w", key, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &cfg, nil
}
