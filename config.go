package main

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds the app configuration. Values come from SOCIAL_* environment
// variables; in development a .env file is loaded first if one exists.
type Config struct {
	Port       int            `envconfig:"port" default:"8080"`
	Env        string         `envconfig:"env" default:"dev"`
	Pepper     string         `envconfig:"pepper" default:"secret-random-string"`
	JWTSecret  string         `envconfig:"jwt_secret" default:"secret-jwt-key"`
	AccessTTL  time.Duration  `envconfig:"access_ttl" default:"15m"`
	RefreshTTL time.Duration  `envconfig:"refresh_ttl" default:"720h"`
	Database   PostgresConfig `envconfig:"database"`
}

// PostgresConfig holds the database connection parameters.
type PostgresConfig struct {
	Host     string `envconfig:"host" default:"localhost"`
	Port     int    `envconfig:"port" default:"5432"`
	User     string `envconfig:"user" default:"postgres"`
	Password string `envconfig:"password"`
	Name     string `envconfig:"name" default:"wtf_social"`
}

// ConnectionInfo builds the connection string out of the database parameters.
func (pc PostgresConfig) ConnectionInfo() string {
	if pc.Password == "" {
		return fmt.Sprintf("host=%s port=%d user=%s dbname=%s sslmode=disable",
			pc.Host, pc.Port, pc.User, pc.Name)
	}
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		pc.Host, pc.Port, pc.User, pc.Password, pc.Name)
}

// IsProd reports whether the app runs in production.
func (c Config) IsProd() bool {
	return c.Env == "prod"
}

// LoadConfig loads the configuration from the environment. Outside of
// production a missing .env file is fine, the defaults cover local dev.
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Info("no .env file loaded, relying on environment and defaults")
	}
	var c Config
	if err := envconfig.Process("social", &c); err != nil {
		return nil, err
	}
	return &c, nil
}
