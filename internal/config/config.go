// Package config loads server settings from the environment.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds the server settings.
type Config struct {
	Port   int    `env:"STUDYHALL_PORT"    envDefault:"8080"`
	DBPath string `env:"STUDYHALL_DB_PATH" envDefault:"./data/studyhall.db"`

	JWTSecret string        `env:"STUDYHALL_JWT_SECRET,required,notEmpty"`
	TokenTTL  time.Duration `env:"STUDYHALL_TOKEN_TTL" envDefault:"24h"`

	// SweepInterval is how often the background sweeper expires stale
	// invitations. Zero disables it.
	SweepInterval time.Duration `env:"STUDYHALL_SWEEP_INTERVAL" envDefault:"1m"`

	// InviteAutoConfirm switches groups without asking when an accepted
	// invitation conflicts with exactly one existing membership.
	InviteAutoConfirm bool `env:"STUDYHALL_INVITE_AUTO_CONFIRM" envDefault:"false"`

	AllowedOrigins []string `env:"STUDYHALL_ALLOWED_ORIGINS" envDefault:"*" envSeparator:","`

	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
}

// Load reads Config from the process environment.
func Load() (Config, error) {
	return parse(env.Options{})
}

// LoadFrom reads Config from vars instead of the process environment.
func LoadFrom(vars map[string]string) (Config, error) {
	return parse(env.Options{Environment: vars})
}

func parse(opts env.Options) (Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if cfg.Port <= 0 || cfg.Port > 65535 {
		return Config{}, fmt.Errorf("invalid port %d", cfg.Port)
	}
	if cfg.SweepInterval < 0 {
		return Config{}, fmt.Errorf("sweep interval must not be negative")
	}
	return cfg, nil
}

// Addr is the listen address.
func (c Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}
