// Package config loads the service's settings from the environment exactly
// once at startup. Nothing else in the codebase reads environment variables.
package config

import (
	"strings"
	"time"

	"github.com/joeshaw/envdecode"

	autherrors "guildgate/internal/errors"
)

// Config is the full configuration surface. The Discord settings are
// optional at load time: a route that needs a missing setting fails with a
// configuration error, and the guild lookup fails closed, instead of taking
// the process down.
type Config struct {
	Port     string `env:"PORT,default=8080"`
	AppName  string `env:"APP_NAME,default=Guild Gate"`
	Env      string `env:"ENV,default=DEV"`
	BaseURL  string `env:"BASE_URL,default=http://localhost:8080"`
	LogLevel string `env:"LOG_LEVEL,default=info"`

	DiscordClientID     string        `env:"DISCORD_CLIENT_ID"`
	DiscordClientSecret string        `env:"DISCORD_CLIENT_SECRET"`
	DiscordRedirectURI  string        `env:"DISCORD_REDIRECT_URI"`
	DiscordGuildID      string        `env:"DISCORD_GUILD_ID"`
	DiscordBotToken     string        `env:"DISCORD_BOT_TOKEN"`
	DiscordBasicRoleID  string        `env:"DISCORD_BASIC_ROLE_ID"`
	DiscordProRoleID    string        `env:"DISCORD_PRO_ROLE_ID"`
	DiscordTimeout      time.Duration `env:"DISCORD_TIMEOUT,default=10s"`

	SessionSecret string        `env:"SESSION_SECRET"`
	SessionTTL    time.Duration `env:"SESSION_TTL,default=24h"`

	PremiumDir string `env:"PREMIUM_DIR,default=./premium"`
}

// Load decodes the configuration from the environment.
func Load() (Config, error) {
	var cfg Config
	if err := envdecode.Decode(&cfg); err != nil {
		return Config{}, autherrors.Wrapf(err, "failed to decode configuration")
	}
	return cfg, nil
}

// Addr returns the listen address for the HTTP server.
func (c Config) Addr() string {
	if strings.HasPrefix(c.Port, ":") {
		return c.Port
	}
	return ":" + c.Port
}

// IsDev reports whether the service runs in its development environment.
func (c Config) IsDev() bool {
	return strings.EqualFold(c.Env, "DEV")
}

// OAuthLoginReady reports whether the settings the login redirect needs are
// present, naming the missing ones otherwise.
func (c Config) OAuthLoginReady() error {
	return missingSettings(
		setting{"DISCORD_CLIENT_ID", c.DiscordClientID},
		setting{"DISCORD_REDIRECT_URI", c.DiscordRedirectURI},
	)
}

// OAuthCallbackReady reports whether the settings the code exchange needs
// are present, naming the missing ones otherwise.
func (c Config) OAuthCallbackReady() error {
	return missingSettings(
		setting{"DISCORD_CLIENT_ID", c.DiscordClientID},
		setting{"DISCORD_CLIENT_SECRET", c.DiscordClientSecret},
		setting{"DISCORD_REDIRECT_URI", c.DiscordRedirectURI},
	)
}

type setting struct {
	name  string
	value string
}

func missingSettings(settings ...setting) error {
	var missing []string
	for _, s := range settings {
		if s.value == "" {
			missing = append(missing, s.name)
		}
	}
	if len(missing) == 0 {
		return nil
	}
	return autherrors.Wrapf(autherrors.ErrConfiguration, "%s", strings.Join(missing, ", "))
}
