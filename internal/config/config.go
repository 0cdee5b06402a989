package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server" validate:"required"`
	Store    StoreConfig    `mapstructure:"store" validate:"required"`
	Database DatabaseConfig `mapstructure:"database"`
	Auth     AuthConfig     `mapstructure:"auth" validate:"required"`
	LLM      LLMConfig      `mapstructure:"llm" validate:"required"`
}

// ServerConfig contains all HTTP-server-related settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// StoreConfig selects and configures the reading store backend.
type StoreConfig struct {
	// Backend selects the reading store implementation.
	Backend string `mapstructure:"backend" validate:"required,oneof=local postgres"`

	// LocalPath is the JSON file the local backend persists readings to.
	LocalPath string `mapstructure:"local_path"`
}

// DatabaseConfig contains the settings for the postgres backend.
// URL is required only when that backend is selected.
type DatabaseConfig struct {
	URL string `mapstructure:"url"`
}

// AuthConfig contains authentication settings for the networked variant.
// The secret is required only when the postgres backend (and with it the
// account endpoints) is enabled.
type AuthConfig struct {
	JWTSecret            string `mapstructure:"jwt_secret" validate:"omitempty,min=32"`
	TokenLifetimeMinutes int    `mapstructure:"token_lifetime_minutes" validate:"required,gt=0"`
}

// LLMConfig contains the Gemini integration settings. A missing API key is
// not a boot failure: the interpretation endpoint reports it per-request and
// the reading flow degrades to templated text.
type LLMConfig struct {
	GeminiAPIKey string `mapstructure:"gemini_api_key"`
	ModelName    string `mapstructure:"model_name" validate:"required"`
}
