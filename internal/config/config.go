// Package config loads guestbook settings. Environment variables (including
// those loaded from .env) override config.yaml, which overrides the defaults.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	envPrefix      = "GUESTBOOK"
	configFileName = "config"
	configFileType = "yaml"
)

// Config keys.
const (
	KeyAddr          = "addr"
	KeyBackend       = "backend"
	KeyDataDir       = "data_dir"
	KeyDatabaseURL   = "database_url"
	KeySessionSecret = "session_secret"
	KeyHeaderOffset  = "header_offset"
	KeyNotifyDelay   = "notify_delay"
	KeyFadeDuration  = "fade_duration"
	KeyRateLimit     = "rate_limit"
	KeyVisitor       = "visitor"
)

// Supported storage backends.
const (
	BackendMemory   = "memory"
	BackendFile     = "file"
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
)

var (
	ErrBackendUnknown      = errors.New("unknown backend")
	ErrDatabaseURLRequired = errors.New("database_url is required for the postgres backend")
	ErrInvalidDuration     = errors.New("durations must be positive")
	ErrInvalidRateLimit    = errors.New("rate_limit must be positive")
)

// Config is the resolved runtime configuration shared by the server and the CLI.
type Config struct {
	Addr          string
	Backend       string
	DataDir       string
	DatabaseURL   string
	SessionSecret string
	// HeaderOffset is subtracted from anchor targets when scrolling (px).
	HeaderOffset int
	NotifyDelay  time.Duration
	FadeDuration time.Duration
	// RateLimit is the number of POST requests allowed per client per minute.
	RateLimit int
	// Visitor is the storage namespace the CLI works in.
	Visitor string
}

// Defaults returns the configuration used when nothing is set.
func Defaults() Config {
	return Config{
		Addr:          ":8080",
		Backend:       BackendSQLite,
		DataDir:       ".guestbook",
		SessionSecret: "dev-secret-change-in-production-32bytes",
		HeaderOffset:  80,
		NotifyDelay:   3 * time.Second,
		FadeDuration:  300 * time.Millisecond,
		RateLimit:     30,
		Visitor:       "local",
	}
}

// Load reads .env (if present), then builds a Viper instance over the
// environment and configDir/config.yaml. An empty configDir skips the file.
// A missing config.yaml is not an error.
func Load(configDir string) (*Config, error) {
	_ = godotenv.Load()

	v, err := newViper(configDir)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Addr:          v.GetString(KeyAddr),
		Backend:       strings.ToLower(v.GetString(KeyBackend)),
		DataDir:       v.GetString(KeyDataDir),
		DatabaseURL:   v.GetString(KeyDatabaseURL),
		SessionSecret: v.GetString(KeySessionSecret),
		HeaderOffset:  v.GetInt(KeyHeaderOffset),
		NotifyDelay:   v.GetDuration(KeyNotifyDelay),
		FadeDuration:  v.GetDuration(KeyFadeDuration),
		RateLimit:     v.GetInt(KeyRateLimit),
		Visitor:       v.GetString(KeyVisitor),
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newViper(configDir string) (*viper.Viper, error) {
	d := Defaults()
	v := viper.New()
	v.SetDefault(KeyAddr, d.Addr)
	v.SetDefault(KeyBackend, d.Backend)
	v.SetDefault(KeyDataDir, d.DataDir)
	v.SetDefault(KeyDatabaseURL, "")
	v.SetDefault(KeySessionSecret, d.SessionSecret)
	v.SetDefault(KeyHeaderOffset, d.HeaderOffset)
	v.SetDefault(KeyNotifyDelay, d.NotifyDelay)
	v.SetDefault(KeyFadeDuration, d.FadeDuration)
	v.SetDefault(KeyRateLimit, d.RateLimit)
	v.SetDefault(KeyVisitor, d.Visitor)

	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()
	// The unprefixed names match what deployments already export.
	if err := v.BindEnv(KeyDatabaseURL, envPrefix+"_DATABASE_URL", "DATABASE_URL"); err != nil {
		return nil, fmt.Errorf("bind env: %w", err)
	}
	if err := v.BindEnv(KeySessionSecret, envPrefix+"_SESSION_SECRET", "SESSION_SECRET"); err != nil {
		return nil, fmt.Errorf("bind env: %w", err)
	}

	if configDir == "" {
		return v, nil
	}
	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(configDir)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return v, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	return v, nil
}

// Validate checks that the Config is usable.
func (c Config) Validate() error {
	switch c.Backend {
	case BackendMemory, BackendFile, BackendSQLite:
	case BackendPostgres:
		if c.DatabaseURL == "" {
			return ErrDatabaseURLRequired
		}
	default:
		return fmt.Errorf("%w: %q", ErrBackendUnknown, c.Backend)
	}
	if c.NotifyDelay <= 0 || c.FadeDuration <= 0 {
		return ErrInvalidDuration
	}
	if c.RateLimit <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidRateLimit, c.RateLimit)
	}
	return nil
}
