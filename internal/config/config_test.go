package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"guildgate/internal/config"
	autherrors "guildgate/internal/errors"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, name := range []string{
		"PORT", "APP_NAME", "ENV", "BASE_URL", "LOG_LEVEL",
		"DISCORD_CLIENT_ID", "DISCORD_CLIENT_SECRET", "DISCORD_REDIRECT_URI",
		"DISCORD_GUILD_ID", "DISCORD_BOT_TOKEN", "DISCORD_BASIC_ROLE_ID",
		"DISCORD_PRO_ROLE_ID", "DISCORD_TIMEOUT",
		"SESSION_SECRET", "SESSION_TTL", "PREMIUM_DIR",
	} {
		t.Setenv(name, "")
	}
}

func TestLoad(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		clearEnv(t)

		cfg, err := config.Load()
		require.NoError(t, err)

		assert.Equal(t, "8080", cfg.Port)
		assert.Equal(t, "Guild Gate", cfg.AppName)
		assert.Equal(t, "DEV", cfg.Env)
		assert.Equal(t, 10*time.Second, cfg.DiscordTimeout)
		assert.Equal(t, 24*time.Hour, cfg.SessionTTL)
		assert.Equal(t, "./premium", cfg.PremiumDir)
		assert.Empty(t, cfg.DiscordClientID)
	})

	t.Run("environment overrides", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("PORT", "9090")
		t.Setenv("DISCORD_CLIENT_ID", "client-id")
		t.Setenv("DISCORD_TIMEOUT", "3s")
		t.Setenv("SESSION_TTL", "90m")

		cfg, err := config.Load()
		require.NoError(t, err)

		assert.Equal(t, "9090", cfg.Port)
		assert.Equal(t, "client-id", cfg.DiscordClientID)
		assert.Equal(t, 3*time.Second, cfg.DiscordTimeout)
		assert.Equal(t, 90*time.Minute, cfg.SessionTTL)
	})
}

func TestConfig_Addr(t *testing.T) {
	assert.Equal(t, ":8080", config.Config{Port: "8080"}.Addr())
	assert.Equal(t, ":9090", config.Config{Port: ":9090"}.Addr())
}

func TestConfig_IsDev(t *testing.T) {
	assert.True(t, config.Config{Env: "DEV"}.IsDev())
	assert.True(t, config.Config{Env: "dev"}.IsDev())
	assert.False(t, config.Config{Env: "PROD"}.IsDev())
}

func TestConfig_OAuthLoginReady(t *testing.T) {
	t.Run("ready", func(t *testing.T) {
		cfg := config.Config{
			DiscordClientID:    "client-id",
			DiscordRedirectURI: "http://localhost:8080/callback",
		}
		require.NoError(t, cfg.OAuthLoginReady())
	})

	t.Run("missing client id", func(t *testing.T) {
		cfg := config.Config{DiscordRedirectURI: "http://localhost:8080/callback"}
		err := cfg.OAuthLoginReady()
		require.ErrorIs(t, err, autherrors.ErrConfiguration)
		require.Contains(t, err.Error(), "DISCORD_CLIENT_ID")
	})

	t.Run("missing redirect uri", func(t *testing.T) {
		cfg := config.Config{DiscordClientID: "client-id"}
		err := cfg.OAuthLoginReady()
		require.ErrorIs(t, err, autherrors.ErrConfiguration)
		require.Contains(t, err.Error(), "DISCORD_REDIRECT_URI")
	})
}

func TestConfig_OAuthCallbackReady(t *testing.T) {
	ready := config.Config{
		DiscordClientID:     "client-id",
		DiscordClientSecret: "client-secret",
		DiscordRedirectURI:  "http://localhost:8080/callback",
	}
	require.NoError(t, ready.OAuthCallbackReady())

	t.Run("missing client secret", func(t *testing.T) {
		cfg := ready
		cfg.DiscordClientSecret = ""
		err := cfg.OAuthCallbackReady()
		require.ErrorIs(t, err, autherrors.ErrConfiguration)
		require.Contains(t, err.Error(), "DISCORD_CLIENT_SECRET")
	})
}
