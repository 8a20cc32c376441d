package config

import (
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

// Supported values of DATABASE_TYPE
const (
	DatabaseMemory   = "memory"
	DatabaseMongo    = "mongo"
	DatabasePostgres = "postgres"
)

type Config struct {
	DatabaseType string `env:"DATABASE_TYPE" env-default:"memory"`
	Mongo        MongoConfig
	DB           DbConfig
	Auth         AuthConfig
	LogLevel     string `env:"LOG_LEVEL" env-default:"info"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI" env-default:"mongodb://localhost:27017"`
	Database string `env:"MONGO_DATABASE" env-default:"simple_cms"`
}

type DbConfig struct {
	Port     uint16 `env:"CMS_PG_PORT" env-default:"5432"`
	Host     string `env:"CMS_PG_HOST" env-default:"localhost"`
	Name     string `env:"CMS_PG_NAME" env-default:"cms_db"`
	User     string `env:"CMS_PG_USER" env-default:"cms"`
	Password string `env:"CMS_PG_PASSWORD" env-default:"pwd"`
}

type AuthConfig struct {
	JWTSecret  string        `env:"JWT_SECRET" env-default:"change-me"`
	TokenTTL   time.Duration `env:"TOKEN_TTL" env-default:"1h"`
	BcryptCost int           `env:"BCRYPT_COST" env-default:"10"`
}

// DatabaseURL returns the postgres connection string
func (c DbConfig) DatabaseURL() string {
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(c.User, c.Password),
		Host:   fmt.Sprintf("%s:%d", c.Host, c.Port),
		Path:   c.Name,
	}
	return u.String()
}

// Load reads an optional .env file, then the environment
func Load() (Config, error) {
	// .env is optional
	_ = godotenv.Load()

	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to read configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects settings the server cannot start with
func (c Config) Validate() error {
	switch c.DatabaseType {
	case DatabaseMemory, DatabaseMongo, DatabasePostgres:
	default:
		return fmt.Errorf("unsupported DATABASE_TYPE %q", c.DatabaseType)
	}
	if c.Auth.JWTSecret == "" {
		return errors.New("JWT_SECRET must not be empty")
	}
	if c.Auth.TokenTTL <= 0 {
		return fmt.Errorf("TOKEN_TTL must be positive, got %s", c.Auth.TokenTTL)
	}
	return nil
}

// SlogLevel maps LOG_LEVEL to a slog level, defaulting to info
func (c Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}
