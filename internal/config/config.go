package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	// Core
	DatabaseURL string `env:"DATABASE_URL,required"`
	DBMaxConns  int32  `env:"DB_MAX_CONNS" envDefault:"20"`
	DBMinConns  int32  `env:"DB_MIN_CONNS" envDefault:"5"`
	OracleURL   string `env:"ORACLE_URL,required"`
	OracleKey   string `env:"ORACLE_API_KEY"`

	// Server
	Port int `env:"PORT" envDefault:"8080"`

	// Oracle request timeout; the client unblocks only when the request settles.
	OracleTimeout time.Duration `env:"ORACLE_TIMEOUT" envDefault:"60s"`

	// Auth
	SessionTTL   time.Duration `env:"SESSION_TTL" envDefault:"720h"`
	CookieDomain string        `env:"COOKIE_DOMAIN"`
	CookieSecure bool          `env:"COOKIE_SECURE" envDefault:"false"`

	// Crisis interstitial countdown in seconds.
	CrisisCountdown int `env:"CRISIS_COUNTDOWN" envDefault:"15"`

	// Resource search
	SearchEnabled bool `env:"SEARCH_ENABLED" envDefault:"true"`
}

func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}
