package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func validConfig() *Config {
	return &Config{
		Port:       "8470",
		JWTSecret:  "a-development-secret-that-is-long-enough",
		DBPassword: "password",
		AuthMode:   AuthModeJWT,
		Env:        "development",
	}
}

func TestConfigValidate(t *testing.T) {
	t.Run("valid development config", func(t *testing.T) {
		assert.NoError(t, validConfig().Validate())
	})

	t.Run("missing port", func(t *testing.T) {
		cfg := validConfig()
		cfg.Port = ""
		assert.Error(t, cfg.Validate())
	})

	t.Run("missing jwt secret", func(t *testing.T) {
		cfg := validConfig()
		cfg.JWTSecret = ""
		assert.Error(t, cfg.Validate())
	})

	t.Run("unknown auth mode", func(t *testing.T) {
		cfg := validConfig()
		cfg.AuthMode = "magic"
		assert.Error(t, cfg.Validate())
	})

	t.Run("dev auth mode allowed outside production", func(t *testing.T) {
		cfg := validConfig()
		cfg.AuthMode = AuthModeDev
		assert.NoError(t, cfg.Validate())
	})
}

func TestConfigValidateProduction(t *testing.T) {
	prod := func() *Config {
		return &Config{
			Port:       "8470",
			JWTSecret:  "this-is-a-sufficiently-long-production-secret",
			DBPassword: "s3cure-db-pass",
			DBSSLMode:  "require",
			AuthMode:   AuthModeJWT,
			Env:        "production",
		}
	}

	t.Run("valid production config", func(t *testing.T) {
		assert.NoError(t, prod().Validate())
	})

	t.Run("default jwt secret rejected", func(t *testing.T) {
		cfg := prod()
		cfg.JWTSecret = "your-secret-key-change-in-production"
		assert.Error(t, cfg.Validate())
	})

	t.Run("short jwt secret rejected", func(t *testing.T) {
		cfg := prod()
		cfg.JWTSecret = "short"
		assert.Error(t, cfg.Validate())
	})

	t.Run("weak db password rejected", func(t *testing.T) {
		cfg := prod()
		cfg.DBPassword = "password"
		assert.Error(t, cfg.Validate())
	})

	t.Run("dev auth mode rejected", func(t *testing.T) {
		cfg := prod()
		cfg.AuthMode = AuthModeDev
		assert.Error(t, cfg.Validate())
	})
}
