package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "info", cfg.Server.LogLevel)
	assert.Equal(t, "local", cfg.Store.Backend)
	assert.Equal(t, "tarot-readings.json", cfg.Store.LocalPath)
	assert.Equal(t, 60, cfg.Auth.TokenLifetimeMinutes)
	assert.Equal(t, "gemini-2.5-flash-lite", cfg.LLM.ModelName)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("TAROT_SERVER_PORT", "9999")
	t.Setenv("TAROT_SERVER_LOG_LEVEL", "debug")
	t.Setenv("TAROT_STORE_LOCAL_PATH", "/tmp/readings.json")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9999, cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Server.LogLevel)
	assert.Equal(t, "/tmp/readings.json", cfg.Store.LocalPath)
}

func TestLoadHonorsUnprefixedGeminiKey(t *testing.T) {
	t.Setenv("GOOGLE_GENERATIVE_AI_API_KEY", "key-from-deploy-env")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "key-from-deploy-env", cfg.LLM.GeminiAPIKey)
}

func TestValidate(t *testing.T) {
	t.Parallel()

	valid := func() *Config {
		return &Config{
			Server: ServerConfig{Port: 8080, LogLevel: "info"},
			Store:  StoreConfig{Backend: "local", LocalPath: "readings.json"},
			Auth:   AuthConfig{TokenLifetimeMinutes: 60},
			LLM:    LLMConfig{ModelName: "gemini-2.5-flash-lite"},
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:   "valid local backend",
			mutate: func(c *Config) {},
		},
		{
			name: "valid postgres backend",
			mutate: func(c *Config) {
				c.Store.Backend = "postgres"
				c.Database.URL = "postgres://localhost/tarot"
				c.Auth.JWTSecret = "0123456789abcdef0123456789abcdef"
			},
		},
		{
			name:    "unknown backend",
			mutate:  func(c *Config) { c.Store.Backend = "redis" },
			wantErr: "invalid configuration",
		},
		{
			name:    "postgres without database url",
			mutate:  func(c *Config) { c.Store.Backend = "postgres"; c.Auth.JWTSecret = "0123456789abcdef0123456789abcdef" },
			wantErr: "database.url is required",
		},
		{
			name:    "postgres without jwt secret",
			mutate:  func(c *Config) { c.Store.Backend = "postgres"; c.Database.URL = "postgres://localhost/tarot" },
			wantErr: "auth.jwt_secret is required",
		},
		{
			name: "short jwt secret",
			mutate: func(c *Config) {
				c.Store.Backend = "postgres"
				c.Database.URL = "postgres://localhost/tarot"
				c.Auth.JWTSecret = "too-short"
			},
			wantErr: "invalid configuration",
		},
		{
			name:    "local without path",
			mutate:  func(c *Config) { c.Store.LocalPath = "" },
			wantErr: "store.local_path is required",
		},
		{
			name:    "bad port",
			mutate:  func(c *Config) { c.Server.Port = 0 },
			wantErr: "invalid configuration",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			cfg := valid()
			tc.mutate(cfg)

			err := Validate(cfg)
			if tc.wantErr == "" {
				assert.NoError(t, err)
			} else {
				assert.ErrorContains(t, err, tc.wantErr)
			}
		})
	}
}
