package config

import (
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	defaultPostgresDSN = "host=localhost user=postgres password=postgres dbname=transport port=5432 sslmode=disable"
	defaultSQLiteDSN   = "file:transport.db?_pragma=busy_timeout(5000)"
	defaultCORSOrigins = "http://localhost:5173"
)

type Config struct {
	HTTPPort       string
	ConsolePort    string
	DatabaseDriver string
	DatabaseDSN    string
	JWTSecret      string
	CORSOrigins    string
	APIBaseURL     string
	APITimeout     time.Duration
	KafkaBroker    string // empty disables event publishing
	KafkaTopic     string
}

// Load reads .env (when present), the optional CONFIG_FILE and the
// environment, in increasing priority. Invalid settings are fatal.
func Load() *Config {
	if err := godotenv.Load(); err == nil {
		log.Println("Loaded settings from .env")
	}

	cfg, err := load(viper.New())
	if err != nil {
		log.Fatalf("[FATAL] %v", err)
	}

	if cfg.JWTSecret == "" {
		log.Println("[WARN] JWT_SECRET is not set, the API accepts unauthenticated requests. Set it in production.")
	}
	if cfg.DatabaseDriver == "postgres" && cfg.DatabaseDSN == defaultPostgresDSN {
		log.Println("[WARN] DATABASE_DSN uses the default value, set your own Postgres connection for production.")
	}
	if cfg.CORSOrigins == defaultCORSOrigins {
		log.Println("[WARN] CORS_ALLOWED_ORIGINS uses the default value, set your own domain for production.")
	}

	return cfg
}

func load(v *viper.Viper) (*Config, error) {
	v.AutomaticEnv()
	v.SetDefault("HTTP_PORT", "8080")
	v.SetDefault("CONSOLE_PORT", "5173")
	v.SetDefault("DATABASE_DRIVER", "postgres")
	v.SetDefault("CORS_ALLOWED_ORIGINS", defaultCORSOrigins)
	v.SetDefault("API_BASE_URL", "http://localhost:8080")
	v.SetDefault("API_TIMEOUT", "30s")
	v.SetDefault("KAFKA_TOPIC", "shipments")

	if file := v.GetString("CONFIG_FILE"); file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config file %s: %w", file, err)
		}
	}

	cfg := &Config{
		HTTPPort:       v.GetString("HTTP_PORT"),
		ConsolePort:    v.GetString("CONSOLE_PORT"),
		DatabaseDriver: v.GetString("DATABASE_DRIVER"),
		DatabaseDSN:    v.GetString("DATABASE_DSN"),
		JWTSecret:      v.GetString("JWT_SECRET"),
		CORSOrigins:    v.GetString("CORS_ALLOWED_ORIGINS"),
		APIBaseURL:     v.GetString("API_BASE_URL"),
		KafkaBroker:    v.GetString("KAFKA_BROKER"),
		KafkaTopic:     v.GetString("KAFKA_TOPIC"),
	}

	timeout, err := time.ParseDuration(v.GetString("API_TIMEOUT"))
	if err != nil || timeout <= 0 {
		return nil, fmt.Errorf("API_TIMEOUT must be a positive duration such as 30s, got %q", v.GetString("API_TIMEOUT"))
	}
	cfg.APITimeout = timeout

	switch cfg.DatabaseDriver {
	case "postgres":
		if cfg.DatabaseDSN == "" {
			cfg.DatabaseDSN = defaultPostgresDSN
		}
	case "sqlite":
		if cfg.DatabaseDSN == "" {
			cfg.DatabaseDSN = defaultSQLiteDSN
		}
	default:
		return nil, fmt.Errorf("DATABASE_DRIVER must be postgres or sqlite, got %q", cfg.DatabaseDriver)
	}

	if cfg.JWTSecret != "" && len(cfg.JWTSecret) < 32 {
		return nil, fmt.Errorf("JWT_SECRET must be at least 32 characters")
	}

	return cfg, nil
}
