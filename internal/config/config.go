package config

// Environment names recognized in ServerConfig.Env. The cron entry point's
// credential check is enforced in every environment except development.
const (
	EnvDevelopment = "development"
	EnvTest        = "test"
	EnvProduction  = "production"
)

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"   validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	Email    EmailConfig    `mapstructure:"email"    validate:"required"`
	Cron     CronConfig     `mapstructure:"cron"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port"      validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
	Env      string `mapstructure:"env"       validate:"required,oneof=development test production"`
}

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	URL string `mapstructure:"url" validate:"required"`
}

// EmailConfig contains the outbound email settings: which transport provider
// to use, the sender identity, and the diagnostic recipient used by the
// test endpoints.
type EmailConfig struct {
	Provider      string      `mapstructure:"provider"       validate:"required,oneof=resend gmail"`
	From          string      `mapstructure:"from"           validate:"required"`
	ResendAPIKey  string      `mapstructure:"resend_api_key" validate:"required_if=Provider resend"`
	TestRecipient string      `mapstructure:"test_recipient" validate:"omitempty,email"`
	Gmail         GmailConfig `mapstructure:"gmail"`
}

// GmailConfig contains the OAuth credentials for the Gmail transport.
// Required only when the provider is gmail.
type GmailConfig struct {
	ClientID     string `mapstructure:"client_id"`
	ClientSecret string `mapstructure:"client_secret"`
	RefreshToken string `mapstructure:"refresh_token"`
}

// CronConfig contains the settings for the scheduled sweep entry point.
type CronConfig struct {
	// Secret is the shared bearer credential the scheduler must present.
	// May be empty in development, where the check is bypassed.
	Secret string `mapstructure:"secret"`
}

// IsDevelopment reports whether the server runs in the designated
// non-production mode.
func (c ServerConfig) IsDevelopment() bool {
	return c.Env == EnvDevelopment
}
