package bootstrap

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"gokhale/internal/storage"

	"github.com/joho/godotenv"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

var ErrMissingEnv = errors.New("missing env var")

// Config is everything the binaries read from the environment.
type Config struct {
	Port        string
	DBDriver    string
	DatabaseURL string
	SQLitePath  string
	JWTSecret   string
	CORSOrigins []string

	KafkaBrokers string
	KafkaTopic   string

	AdminEmail    string
	AdminPassword string

	R2        storage.Config
	R2Enabled bool

	ExportInterval    time.Duration
	ExportMetricsPort string
}

// Load reads .env (outside production) and validates the environment.
func Load() (Config, error) {
	if os.Getenv("APP_ENV") != "production" {
		_ = godotenv.Load()
	}

	cfg := Config{
		Port:          envOr("PORT", "8000"),
		DBDriver:      strings.ToLower(envOr("DB_DRIVER", DriverPostgres)),
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		SQLitePath:    os.Getenv("SQLITE_PATH"),
		JWTSecret:     os.Getenv("JWT_SECRET"),
		CORSOrigins:   splitCSV(envOr("CORS_ORIGINS", "http://localhost:3000,http://localhost:5173")),
		KafkaBrokers:  os.Getenv("KAFKA_BROKERS"),
		KafkaTopic:    envOr("KAFKA_ORDER_TOPIC", "orders"),
		AdminEmail:    os.Getenv("ADMIN_EMAIL"),
		AdminPassword: os.Getenv("ADMIN_PASSWORD"),
	}
	cfg.R2, cfg.R2Enabled = storage.ConfigFromEnv()

	interval, err := time.ParseDuration(envOr("PREP_EXPORT_INTERVAL", "15m"))
	if err != nil || interval <= 0 {
		return Config{}, fmt.Errorf("invalid PREP_EXPORT_INTERVAL: %q", os.Getenv("PREP_EXPORT_INTERVAL"))
	}
	cfg.ExportInterval = interval
	cfg.ExportMetricsPort = envOr("EXPORTER_METRICS_PORT", "9102")

	required := []string{"JWT_SECRET"}
	switch cfg.DBDriver {
	case DriverPostgres:
		required = append(required, "DATABASE_URL")
	case DriverSQLite:
		required = append(required, "SQLITE_PATH")
	default:
		return Config{}, fmt.Errorf("unknown DB_DRIVER %q", cfg.DBDriver)
	}

	for _, k := range required {
		if os.Getenv(k) == "" {
			return Config{}, fmt.Errorf("%w: %s", ErrMissingEnv, k)
		}
	}

	return cfg, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
