package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/guttosm/optionform/internal/form"
)

// Config holds the full application configuration loaded from environment variables or .env file.
//
// Example ENV equivalent:
//
//	SERVER_PORT=8080
//	PRICING_API_URL=http://localhost:8081/api/
//	PRICING_TIMEOUT=0s
//	RESULT_ORDERING=last-resolved
//	DIAGNOSTICS_JOURNAL=false
//	POSTGRES_HOST=localhost
//	POSTGRES_PORT=5432
//	POSTGRES_USER=postgres
//	POSTGRES_PASSWORD=postgres
//	POSTGRES_DB=optionform
//	POSTGRES_SSLMODE=disable
//	POSTGRES_URL=            (optional, overrides the fields above)
type Config struct {
	Server      ServerConfig      // HTTP server configuration
	Pricing     PricingConfig     // Pricing API client settings
	Diagnostics DiagnosticsConfig // Where failed submissions are reported
	Postgres    PostgresConfig    // PostgreSQL connection settings (diagnostic journal)
}

// ServerConfig holds HTTP server settings such as the port to listen on.
type ServerConfig struct {
	Port string // The TCP port the HTTP server will listen on (e.g., "8080")
}

// PricingConfig describes the upstream pricing API.
//
// Fields:
//   - BaseURL: prefix the selected method is appended to.
//   - Timeout: per-exchange bound; zero means no timeout.
//   - Ordering: "last-resolved" or "latest-submission".
type PricingConfig struct {
	BaseURL  string
	Timeout  time.Duration
	Ordering string
}

// DiagnosticsConfig toggles the Postgres-backed failure journal.
// Failures are always logged.
type DiagnosticsConfig struct {
	Journal bool
}

// PostgresConfig defines connection details for PostgreSQL.
type PostgresConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
	URL      string
}

// DSN returns URL when set, otherwise a postgres:// URL built from the
// individual fields.
func (p PostgresConfig) DSN() string {
	if p.URL != "" {
		return p.URL
	}
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		p.User,
		p.Password,
		p.Host,
		p.Port,
		p.DBName,
		p.SSLMode,
	)
}

// AppConfig is the globally accessible configuration instance.
//
// It is populated once via LoadConfig() and used throughout the application.
var AppConfig Config

// LoadConfig initializes the global AppConfig by reading from .env file
// or directly from environment variables.
//
// Precedence (from lowest to highest):
//  1. Defaults set in this function.
//  2. Values from .env file (if present).
//  3. Environment variables.
//
// Fatal exit:
//   - If required variables are missing or invalid, validateConfig() terminates
//     the app with a descriptive log message.
func LoadConfig() {
	viper.SetDefault("SERVER_PORT", "8080")

	viper.SetDefault("PRICING_API_URL", "http://localhost:8081/api/")
	viper.SetDefault("PRICING_TIMEOUT", "0s")
	viper.SetDefault("RESULT_ORDERING", "last-resolved")

	viper.SetDefault("DIAGNOSTICS_JOURNAL", false)

	viper.SetDefault("POSTGRES_HOST", "localhost")
	viper.SetDefault("POSTGRES_PORT", 5432)
	viper.SetDefault("POSTGRES_USER", "postgres")
	viper.SetDefault("POSTGRES_PASSWORD", "postgres")
	viper.SetDefault("POSTGRES_DB", "optionform")
	viper.SetDefault("POSTGRES_SSLMODE", "disable")

	// Optionally read from .env if present (common in local dev)
	viper.SetConfigFile(".env")
	_ = viper.ReadInConfig() // ignore error if no .env

	viper.AutomaticEnv()

	AppConfig = Config{
		Server: ServerConfig{
			Port: viper.GetString("SERVER_PORT"),
		},
		Pricing: PricingConfig{
			BaseURL:  viper.GetString("PRICING_API_URL"),
			Timeout:  viper.GetDuration("PRICING_TIMEOUT"),
			Ordering: normalizeOrdering(viper.GetString("RESULT_ORDERING")),
		},
		Diagnostics: DiagnosticsConfig{
			Journal: viper.GetBool("DIAGNOSTICS_JOURNAL"),
		},
		Postgres: PostgresConfig{
			Host:     viper.GetString("POSTGRES_HOST"),
			Port:     viper.GetInt("POSTGRES_PORT"),
			User:     viper.GetString("POSTGRES_USER"),
			Password: viper.GetString("POSTGRES_PASSWORD"),
			DBName:   viper.GetString("POSTGRES_DB"),
			SSLMode:  viper.GetString("POSTGRES_SSLMODE"),
			URL:      viper.GetString("POSTGRES_URL"),
		},
	}

	validateConfig()
}

// normalizeOrdering lower-cases and trims RESULT_ORDERING so the stored value
// matches the names form.ParseOrdering accepts.
func normalizeOrdering(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// missingFields lists required settings that are absent or invalid.
// Postgres settings are only required when the journal is enabled and
// POSTGRES_URL is not set.
func missingFields(cfg Config) []string {
	var missing []string

	if cfg.Server.Port == "" {
		missing = append(missing, "SERVER_PORT")
	}
	if cfg.Pricing.BaseURL == "" {
		missing = append(missing, "PRICING_API_URL")
	}
	if cfg.Pricing.Timeout < 0 {
		missing = append(missing, "PRICING_TIMEOUT")
	}
	if _, err := form.ParseOrdering(cfg.Pricing.Ordering); err != nil {
		missing = append(missing, "RESULT_ORDERING")
	}

	if cfg.Diagnostics.Journal && cfg.Postgres.URL == "" {
		if cfg.Postgres.Host == "" {
			missing = append(missing, "POSTGRES_HOST")
		}
		if cfg.Postgres.Port == 0 {
			missing = append(missing, "POSTGRES_PORT")
		}
		if cfg.Postgres.User == "" {
			missing = append(missing, "POSTGRES_USER")
		}
		if cfg.Postgres.Password == "" {
			missing = append(missing, "POSTGRES_PASSWORD")
		}
		if cfg.Postgres.DBName == "" {
			missing = append(missing, "POSTGRES_DB")
		}
	}
	return missing
}

// validateConfig terminates the application when required settings are missing.
func validateConfig() {
	if missing := missingFields(AppConfig); len(missing) > 0 {
		log.Fatalf("❌ Missing or invalid environment variables: %v\n", missing)
	}
}
