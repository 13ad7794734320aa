package api

import (
	"fmt"
	"os"
	"strings"
	"time"

	"go.temporal.io/sdk/client"

	"github.com/Apurer/sales-order-api/internal/domains/sales/application"
	"github.com/Apurer/sales-order-api/internal/platform/database"
)

// Config carries environment-driven settings for the API and worker processes.
type Config struct {
	Port              string
	DBDriver          string
	PostgresDSN       string
	MySQLDSN          string
	TemporalAddress   string
	TemporalNamespace string
	TemporalDisabled  bool
	InvoicePrefix     string
	SeedDemoData      bool
	ShutdownTimeout   time.Duration
}

// LoadConfig reads environment variables, applies defaults, and validates basic constraints.
func LoadConfig() (Config, error) {
	cfg := Config{
		Port:              envDefault("PORT", "8080"),
		DBDriver:          strings.ToLower(envDefault("DB_DRIVER", database.DriverPostgres)),
		PostgresDSN:       strings.TrimSpace(os.Getenv("POSTGRES_DSN")),
		MySQLDSN:          strings.TrimSpace(os.Getenv("MYSQL_DSN")),
		TemporalAddress:   envDefault("TEMPORAL_ADDRESS", client.DefaultHostPort),
		TemporalNamespace: envDefault("TEMPORAL_NAMESPACE", client.DefaultNamespace),
		TemporalDisabled:  isTruthy(os.Getenv("TEMPORAL_DISABLED")),
		InvoicePrefix:     envDefault("INVOICE_PREFIX", application.DefaultInvoicePrefix),
		SeedDemoData:      isTruthy(envDefault("SEED_DEMO_DATA", "true")),
		ShutdownTimeout:   10 * time.Second,
	}
	switch cfg.DBDriver {
	case database.DriverPostgres, database.DriverMySQL:
	default:
		return Config{}, fmt.Errorf("DB_DRIVER must be %q or %q", database.DriverPostgres, database.DriverMySQL)
	}
	if raw := strings.TrimSpace(os.Getenv("SHUTDOWN_TIMEOUT")); raw != "" {
		timeout, err := time.ParseDuration(raw)
		if err != nil || timeout <= 0 {
			return Config{}, fmt.Errorf("SHUTDOWN_TIMEOUT must be a positive duration")
		}
		cfg.ShutdownTimeout = timeout
	}
	return cfg, nil
}

// DatabaseSettings selects the DSN matching the configured driver.
func (c Config) DatabaseSettings() database.Settings {
	dsn := c.PostgresDSN
	if c.DBDriver == database.DriverMySQL {
		dsn = c.MySQLDSN
	}
	return database.Settings{Driver: c.DBDriver, DSN: dsn}
}

func envDefault(key, fallback string) string {
	if val := strings.TrimSpace(os.Getenv(key)); val != "" {
		return val
	}
	return fallback
}

func isTruthy(value string) bool {
	value = strings.TrimSpace(strings.ToLower(value))
	return value == "1" || value == "true" || value == "yes"
}
