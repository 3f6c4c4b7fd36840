package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		Port:      "8460",
		Env:       "development",
		JWTSecret: "some-secret",
		DBDriver:  "postgres",
	}
}

func TestValidate(t *testing.T) {
	require.NoError(t, validConfig().Validate())

	t.Run("MissingPort", func(t *testing.T) {
		cfg := validConfig()
		cfg.Port = ""
		assert.Error(t, cfg.Validate())
	})

	t.Run("MissingJWTSecret", func(t *testing.T) {
		cfg := validConfig()
		cfg.JWTSecret = ""
		assert.Error(t, cfg.Validate())
	})

	t.Run("UnknownDriver", func(t *testing.T) {
		cfg := validConfig()
		cfg.DBDriver = "oracle"
		assert.Error(t, cfg.Validate())
	})

	t.Run("SqliteAllowedOutsideProduction", func(t *testing.T) {
		cfg := validConfig()
		cfg.DBDriver = "sqlite"
		assert.NoError(t, cfg.Validate())
	})
}

func TestValidateProduction(t *testing.T) {
	t.Run("RejectsDefaultSecret", func(t *testing.T) {
		cfg := validConfig()
		cfg.Env = "production"
		cfg.JWTSecret = "your-secret-key-change-in-production"
		assert.Error(t, cfg.Validate())
	})

	t.Run("RejectsSqlite", func(t *testing.T) {
		cfg := validConfig()
		cfg.Env = "prod"
		cfg.DBDriver = "sqlite"
		assert.Error(t, cfg.Validate())
	})

	t.Run("AcceptsHardenedConfig", func(t *testing.T) {
		cfg := validConfig()
		cfg.Env = "production"
		assert.NoError(t, cfg.Validate())
	})
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9100")
	t.Setenv("APP_ENV", "test")
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("DB_NAME", ":memory:")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "9100", cfg.Port)
	assert.Equal(t, "test", cfg.Env)
	assert.Equal(t, "sqlite", cfg.DBDriver)
	assert.Equal(t, ":memory:", cfg.DBName)

	// Untouched keys keep their defaults.
	assert.Equal(t, "localhost:6379", cfg.RedisURL)
}
