package config

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// seconds is a duration read from the environment: Go syntax ("10s",
// "1m30s") or a bare number of seconds.
type seconds time.Duration

func (d *seconds) UnmarshalEnvironment(v string) error {
	parsed, err := parseSeconds(v)
	if err != nil {
		return err
	}
	*d = seconds(parsed)
	return nil
}

func (d seconds) Duration() time.Duration { return time.Duration(d) }

func parseSeconds(v string) (time.Duration, error) {
	v = strings.TrimSpace(v)
	if n, err := strconv.Atoi(v); err == nil {
		return time.Duration(n) * time.Second, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid duration %q: use 10s, 5m or a number of seconds", v)
	}
	return d, nil
}

type Config struct {
	App       AppConfig
	HTTP      HTTPConfig
	CORS      CORSConfig
	RateLimit RateLimitConfig
	Identity  IdentityConfig
	Log       LogConfig
}

type AppConfig struct {
	Env     string `env:"APP_ENV" env-default:"dev"`
	Version string `env:"VERSION" env-default:"dev"`
}

type HTTPConfig struct {
	Port string `env:"HTTP_PORT" env-default:"3000"`

	ReadTimeout     seconds `env:"HTTP_READ_TIMEOUT" env-default:"10s"`
	WriteTimeout    seconds `env:"HTTP_WRITE_TIMEOUT" env-default:"10s"`
	IdleTimeout     seconds `env:"HTTP_IDLE_TIMEOUT" env-default:"60s"`
	ShutdownTimeout seconds `env:"HTTP_SHUTDOWN_TIMEOUT" env-default:"10s"`
}

type CORSConfig struct {
	AllowOrigins []string `env:"CORS_ALLOW_ORIGINS" env-separator:"," env-default:"*"`
}

type RateLimitConfig struct {
	Enabled bool    `env:"RATE_LIMIT_ENABLED" env-default:"false"`
	RPS     float64 `env:"RATE_LIMIT_RPS" env-default:"10"`
	Burst   int     `env:"RATE_LIMIT_BURST" env-default:"20"`
}

// IdentityConfig provisions the user registry. File, when set, replaces the
// single seed user.
type IdentityConfig struct {
	File         string `env:"IDENTITY_FILE" env-default:""`
	SeedID       int64  `env:"SEED_USER_ID" env-default:"1"`
	SeedEmail    string `env:"SEED_USER_EMAIL" env-default:"teste@unisagrado.edu"`
	SeedPassword string `env:"SEED_USER_PASSWORD" env-default:"123456"`
	SeedName     string `env:"SEED_USER_NAME" env-default:"Usuário Teste"`
}

type LogConfig struct {
	Level  string `env:"LOG_LEVEL" env-default:"info"`
	Format string `env:"LOG_FORMAT" env-default:""` // "json" or "text"; empty picks by APP_ENV
}

func Load() (Config, error) {
	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return Config{}, fmt.Errorf("read env: %w", err)
	}
	if cfg.RateLimit.Enabled && (cfg.RateLimit.RPS <= 0 || cfg.RateLimit.Burst <= 0) {
		return Config{}, fmt.Errorf("RATE_LIMIT_RPS and RATE_LIMIT_BURST must be positive")
	}
	if _, err := ParseLevel(cfg.Log.Level); err != nil {
		return Config{}, fmt.Errorf("LOG_LEVEL: %w", err)
	}
	return cfg, nil
}

// ParseLevel maps LOG_LEVEL onto a slog level.
func ParseLevel(s string) (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return 0, err
	}
	return lvl, nil
}
