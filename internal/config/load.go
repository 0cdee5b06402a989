package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Load reads configuration from environment variables (prefix TAROT_, with
// dots mapped to underscores, e.g. TAROT_SERVER_PORT) and an optional
// config.yaml in the working directory. Environment variables take
// precedence over file values, which take precedence over defaults.
// Returns a populated Config or an error if loading or validation fails.
func Load() (*Config, error) {
	v := viper.New()

	v.SetDefault("server.port", 8080)
	v.SetDefault("server.log_level", "info")
	v.SetDefault("store.backend", "local")
	v.SetDefault("store.local_path", "tarot-readings.json")
	v.SetDefault("auth.token_lifetime_minutes", 60)
	v.SetDefault("llm.model_name", "gemini-2.5-flash-lite")

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		// A missing config file is fine; env vars and defaults cover it.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	v.SetEnvPrefix("TAROT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// The original deployment configures the Gemini key under this name, so
	// honor it alongside the TAROT_-prefixed variant.
	if err := v.BindEnv("llm.gemini_api_key", "TAROT_LLM_GEMINI_API_KEY", "GOOGLE_GENERATIVE_AI_API_KEY"); err != nil {
		return nil, fmt.Errorf("failed to bind gemini key env: %w", err)
	}
	if err := v.BindEnv("database.url", "TAROT_DATABASE_URL", "DATABASE_URL"); err != nil {
		return nil, fmt.Errorf("failed to bind database url env: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks the configuration against the struct rules plus the
// cross-field constraints the tag language cannot express.
func Validate(cfg *Config) error {
	if err := validator.New().Struct(cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	switch cfg.Store.Backend {
	case "postgres":
		if cfg.Database.URL == "" {
			return fmt.Errorf("invalid configuration: database.url is required for the postgres backend")
		}
		if cfg.Auth.JWTSecret == "" {
			return fmt.Errorf("invalid configuration: auth.jwt_secret is required for the postgres backend")
		}
	case "local":
		if cfg.Store.LocalPath == "" {
			return fmt.Errorf("invalid configuration: store.local_path is required for the local backend")
		}
	}

	return nil
}
