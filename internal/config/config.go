// Package config loads the service configuration from the environment.
//
// Variables are read with the EDU_ prefix. A double underscore separates
// nested keys, so EDU_SERVER__PORT maps to server.port and
// EDU_AUTH__JWT_SECRET maps to auth.jwt_secret. A .env file in the working
// directory is loaded first when present.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

const envPrefix = "EDU_"

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
	EnvTest        = "test"
)

var defaultOrigins = []string{
	"http://localhost:3000",
	"http://localhost:5173",
}

const (
	StorageLocal = "local"
	StorageGCS   = "gcs"
)

type Config struct {
	Env      string         `koanf:"env" validate:"required,oneof=development production test"`
	Server   ServerConfig   `koanf:"server"`
	Database DatabaseConfig `koanf:"database"`
	Auth     AuthConfig     `koanf:"auth"`
	Storage  StorageConfig  `koanf:"storage"`
	Log      LogConfig      `koanf:"log"`
}

type ServerConfig struct {
	Port               string        `koanf:"port" validate:"required,numeric"`
	ReadTimeout        time.Duration `koanf:"read_timeout" validate:"gt=0"`
	WriteTimeout       time.Duration `koanf:"write_timeout" validate:"gt=0"`
	IdleTimeout        time.Duration `koanf:"idle_timeout" validate:"gt=0"`
	CORSAllowedOrigins []string      `koanf:"cors_allowed_origins" validate:"required,dive,required"`
}

type DatabaseConfig struct {
	DSN             string        `koanf:"dsn" validate:"required"`
	MaxOpenConns    int           `koanf:"max_open_conns" validate:"gte=1"`
	MaxIdleConns    int           `koanf:"max_idle_conns" validate:"gte=0"`
	ConnMaxLifetime time.Duration `koanf:"conn_max_lifetime" validate:"gte=0"`
}

type AuthConfig struct {
	JWTSecret  string        `koanf:"jwt_secret" validate:"required,min=16"`
	AccessTTL  time.Duration `koanf:"access_ttl" validate:"gt=0"`
	RefreshTTL time.Duration `koanf:"refresh_ttl" validate:"gtfield=AccessTTL"`
}

// StorageConfig selects where uploaded material files are kept.
type StorageConfig struct {
	Driver        string `koanf:"driver" validate:"required,oneof=local gcs"`
	LocalDir      string `koanf:"local_dir" validate:"required_if=Driver local"`
	PublicBaseURL string `koanf:"public_base_url" validate:"required"`
	GCSBucket     string `koanf:"gcs_bucket" validate:"required_if=Driver gcs"`
	// GCSBaseURL overrides the public object URL, e.g. a CDN domain.
	GCSBaseURL string `koanf:"gcs_base_url" validate:"omitempty,url"`
}

type LogConfig struct {
	Level string `koanf:"level" validate:"oneof=debug info warn error"`
}

func (c *Config) IsProduction() bool {
	return c.Env == EnvProduction
}

// Defaults returns a Config populated with every optional value.
// The database DSN and JWT secret have no defaults. CORS origins fall back
// to the local dev servers in Load when unset.
func Defaults() *Config {
	return &Config{
		Env: EnvDevelopment,
		Server: ServerConfig{
			Port:         "3000",
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		Database: DatabaseConfig{
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 30 * time.Minute,
		},
		Auth: AuthConfig{
			AccessTTL:  time.Hour,
			RefreshTTL: 168 * time.Hour,
		},
		Storage: StorageConfig{
			Driver:        StorageLocal,
			LocalDir:      "./media",
			PublicBaseURL: "/media",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load reads EDU_* variables over the defaults and validates the result.
func Load() (*Config, error) {
	k := koanf.New(".")

	err := k.Load(env.ProviderWithValue(envPrefix, ".", envValue), nil)
	if err != nil {
		return nil, fmt.Errorf("load env: %w", err)
	}

	cfg := Defaults()
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	cfg.Server.CORSAllowedOrigins = trimAll(cfg.Server.CORSAllowedOrigins)
	if len(cfg.Server.CORSAllowedOrigins) == 0 {
		cfg.Server.CORSAllowedOrigins = append([]string(nil), defaultOrigins...)
	}
	cfg.Storage.PublicBaseURL = strings.TrimSuffix(cfg.Storage.PublicBaseURL, "/")

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// envKey turns EDU_STORAGE__GCS_BUCKET into storage.gcs_bucket.
func envKey(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, envPrefix))
	return strings.ReplaceAll(key, "__", ".")
}

// listKeys hold comma separated values.
var listKeys = map[string]bool{
	"server.cors_allowed_origins": true,
}

func envValue(name, value string) (string, interface{}) {
	key := envKey(name)
	if listKeys[key] {
		return key, strings.Split(value, ",")
	}
	return key, value
}

func trimAll(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
