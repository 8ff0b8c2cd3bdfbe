// Package config loads the server configuration.
//
// Values are layered, later sources win:
// flag defaults, the YAML file given by --config, FLASHSYNC_* environment
// variables, flags set on the command line. Flags are named after the keys
// they set ("jwt.secret"); in environment variables "__" separates nesting
// levels (FLASHSYNC_JWT__SECRET).
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

// EnvPrefix is the prefix of environment variables read by Load
const EnvPrefix = "FLASHSYNC_"

// ErrInvalidConfig is returned by Validate and ValidateStorage
var ErrInvalidConfig = errors.New("invalid config")

// Config is the server configuration
type Config struct {
	Addr            string          `koanf:"addr" validate:"required,hostname_port"`
	DataDir         string          `koanf:"data_dir" validate:"required"`
	JWT             JWTConfig       `koanf:"jwt"`
	Log             LogConfig       `koanf:"log"`
	RateLimit       RateLimitConfig `koanf:"rate_limit"`
	MaxOpenAccounts int             `koanf:"max_open_accounts" validate:"min=1"`
	ShutdownTimeout time.Duration   `koanf:"shutdown_timeout" validate:"gt=0"`
	SecureCookies   bool            `koanf:"secure_cookies"`
	TrustProxy      bool            `koanf:"trust_proxy"`
}

// JWTConfig содержит конфигурацию для JWT
type JWTConfig struct {
	Secret string        `koanf:"secret" validate:"required,min=32"`
	TTL    time.Duration `koanf:"ttl" validate:"gt=0"`
}

// LogConfig configures the slog handler
type LogConfig struct {
	Level  string `koanf:"level" validate:"oneof=debug info warn error"`
	Format string `koanf:"format" validate:"oneof=json text"`
}

// RateLimitConfig limits auth requests per client IP
type RateLimitConfig struct {
	AuthRate   int           `koanf:"auth_rate" validate:"min=1"`
	AuthWindow time.Duration `koanf:"auth_window" validate:"gt=0"`
}

// RegisterFlags adds every configuration key to fs with its default value
func RegisterFlags(fs *pflag.FlagSet) {
	fs.String("config", "", "path to a YAML config file")

	fs.String("addr", ":8080", "HTTP listen address")
	fs.String("data_dir", "./data", "directory for accounts.db and per-account databases")
	fs.Int("max_open_accounts", 64, "number of idle account databases kept open")
	fs.Duration("shutdown_timeout", 10*time.Second, "graceful shutdown timeout")
	fs.Bool("secure_cookies", false, "set the Secure attribute on session cookies")
	fs.Bool("trust_proxy", false, "take client IP from X-Forwarded-For for rate limiting")

	fs.String("jwt.secret", "", "HS256 signing secret, at least 32 characters")
	fs.Duration("jwt.ttl", 24*time.Hour, "access token lifetime")

	fs.String("log.level", "info", "log level: debug, info, warn, error")
	fs.String("log.format", "json", "log format: json, text")

	fs.Int("rate_limit.auth_rate", 10, "auth requests allowed per window and IP")
	fs.Duration("rate_limit.auth_window", time.Minute, "auth rate limit window")
}

// Load builds the configuration from fs (already parsed), the config file and
// the environment. The result is not validated.
func Load(fs *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	path, err := fs.GetString("config")
	if err != nil {
		return nil, fmt.Errorf("config flag not registered: %w", err)
	}
	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment: %w", err)
	}

	// Флаги последними: явно заданные перекрывают все, остальные только заполняют пропуски
	if err := k.Load(posflag.Provider(fs, ".", k), nil); err != nil {
		return nil, fmt.Errorf("failed to load flags: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	return &cfg, nil
}

// envKey maps FLASHSYNC_RATE_LIMIT__AUTH_RATE to rate_limit.auth_rate
func envKey(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	return strings.ReplaceAll(key, "__", ".")
}

// Validate checks the whole configuration
func (c *Config) Validate() error {
	return formatErrors(newValidator().Struct(c))
}

// ValidateStorage checks only what offline commands need (no HTTP, no JWT)
func (c *Config) ValidateStorage() error {
	return formatErrors(newValidator().StructPartial(c, "DataDir", "MaxOpenAccounts", "Log.Level", "Log.Format"))
}

// LogLevel returns the slog level of Log.Level
func (c *Config) LogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.Log.Level)); err != nil {
		return slog.LevelInfo
	}
	return level
}

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		return field.Tag.Get("koanf")
	})
	return v
}

func formatErrors(err error) error {
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		key := strings.TrimPrefix(fe.Namespace(), "Config.")
		if fe.Param() != "" {
			msgs = append(msgs, fmt.Sprintf("%s: failed %s=%s", key, fe.Tag(), fe.Param()))
		} else {
			msgs = append(msgs, fmt.Sprintf("%s: failed %s", key, fe.Tag()))
		}
	}

	return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(msgs, "; "))
}
