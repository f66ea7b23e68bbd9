package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

type Config struct {
	AppEnv   string
	Port     string
	Database Database
	Redis    Redis
	Kafka    Kafka
	Auth     Auth
	CORS     CORS
}

type Database struct {
	Driver      string
	Host        string
	User        string
	Password    string
	Name        string
	Port        string
	SSLMode     string
	SQLitePath  string
	AutoMigrate bool
	MaxRetries  int
}

type Redis struct {
	Addr string
}

type Kafka struct {
	Broker             string
	GroupID            string
	OutboxPollInterval time.Duration
}

type Auth struct {
	JWTSecret string
}

type CORS struct {
	AllowedOrigins []string
}

// Load reads .env (when present) and the process environment.
func Load() (Config, error) {
	_ = godotenv.Load()
	return FromEnv(os.Getenv)
}

// FromEnv builds a Config from a lookup function so tests can inject values.
func FromEnv(getenv func(string) string) (Config, error) {
	get := func(key, def string) string {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			return v
		}
		return def
	}

	cfg := Config{
		AppEnv: get("APP_ENV", "development"),
		Port:   get("PORT", "3000"),
		Database: Database{
			Driver:     strings.ToLower(get("DB_DRIVER", DriverPostgres)),
			Host:       get("DB_HOST", "localhost"),
			User:       get("DB_USER", "postgres"),
			Password:   getenv("DB_PASSWORD"),
			Name:       get("DB_NAME", "hr_dashboard"),
			Port:       get("DB_PORT", "5432"),
			SSLMode:    get("DB_SSLMODE", "disable"),
			SQLitePath: get("SQLITE_PATH", "hrdash.db"),
		},
		Redis: Redis{Addr: get("REDIS_ADDR", "")},
		Kafka: Kafka{
			Broker:  get("KAFKA_BROKER", ""),
			GroupID: get("KAFKA_GROUP_ID", "go-hrdash-promotion-completion"),
		},
		Auth: Auth{JWTSecret: getenv("JWT_SECRET")},
	}

	switch cfg.Database.Driver {
	case DriverPostgres, DriverSQLite:
	default:
		return Config{}, fmt.Errorf("DB_DRIVER must be %q or %q, got %q", DriverPostgres, DriverSQLite, cfg.Database.Driver)
	}

	autoMigrate, err := strconv.ParseBool(get("DB_AUTO_MIGRATE", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("DB_AUTO_MIGRATE: %w", err)
	}
	cfg.Database.AutoMigrate = autoMigrate

	retries, err := strconv.Atoi(get("DB_MAX_RETRIES", "5"))
	if err != nil || retries < 1 {
		return Config{}, fmt.Errorf("DB_MAX_RETRIES must be a positive integer")
	}
	cfg.Database.MaxRetries = retries

	poll, err := time.ParseDuration(get("OUTBOX_POLL_INTERVAL", "3s"))
	if err != nil {
		return Config{}, fmt.Errorf("OUTBOX_POLL_INTERVAL: %w", err)
	}
	cfg.Kafka.OutboxPollInterval = poll

	for _, origin := range strings.Split(get("CORS_ALLOWED_ORIGINS", "http://localhost:5173"), ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			cfg.CORS.AllowedOrigins = append(cfg.CORS.AllowedOrigins, origin)
		}
	}

	return cfg, nil
}

func (c Config) IsProduction() bool {
	return c.AppEnv == "production"
}

func (d Database) PostgresDSN() string {
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		d.Host, d.User, d.Password, d.Name, d.Port, d.SSLMode,
	)
}
