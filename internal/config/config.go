package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"autoparts-backend/internal/saga"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"

	defaultDSN        = "host=localhost user=postgres password=postgres dbname=autoparts port=5432 sslmode=disable"
	defaultCORSOrigin = "http://localhost:5173"
)

type Config struct {
	HTTPPort    string
	DBDriver    string
	DatabaseDSN string
	JWTSecret   string
	CORSOrigins string
	LogLevel    string

	SessionTTL        time.Duration
	AutoConfirmSignUp bool
	QueryTimeout      time.Duration

	// StaticAdminEnabled keeps the hardcoded admin@auto.com login working.
	StaticAdminEnabled   bool
	CompoundPolicy       string
	RestoreStockOnDelete bool

	// Printed on sales receipts.
	ShopName    string
	ShopAddress string
	ShopPhone   string
}

// Load reads .env (if present) and the process environment.
func Load() (*Config, []string) {
	_ = godotenv.Load()

	cfg := &Config{
		HTTPPort:             getEnv("HTTP_PORT", "8080"),
		DBDriver:             strings.ToLower(getEnv("DB_DRIVER", DriverPostgres)),
		DatabaseDSN:          getEnv("DATABASE_DSN", defaultDSN),
		JWTSecret:            strings.TrimSpace(getEnv("JWT_SECRET", "")),
		CORSOrigins:          getEnv("CORS_ALLOWED_ORIGINS", defaultCORSOrigin),
		LogLevel:             getEnv("LOG_LEVEL", "info"),
		SessionTTL:           getEnvDuration("SESSION_TTL", 24*time.Hour),
		AutoConfirmSignUp:    getEnvBool("AUTO_CONFIRM_SIGNUP", true),
		QueryTimeout:         getEnvDuration("DB_QUERY_TIMEOUT", 10*time.Second),
		StaticAdminEnabled:   getEnvBool("STATIC_ADMIN_ENABLED", true),
		CompoundPolicy:       strings.ToLower(getEnv("COMPOUND_POLICY", string(saga.Compensate))),
		RestoreStockOnDelete: getEnvBool("RESTORE_STOCK_ON_DELETE", false),
		ShopName:             getEnv("SHOP_NAME", "AutoPro"),
		ShopAddress:          getEnv("SHOP_ADDRESS", ""),
		ShopPhone:            getEnv("SHOP_PHONE", ""),
	}

	return cfg, cfg.warnings()
}

// Validate reports settings the server must not start with.
func (c *Config) Validate() []string {
	var problems []string
	if c.JWTSecret == "" {
		problems = append(problems, "JWT_SECRET is not set")
	} else if len(c.JWTSecret) < 32 {
		problems = append(problems, "JWT_SECRET must be at least 32 characters")
	}
	if c.DBDriver != DriverPostgres && c.DBDriver != DriverSQLite {
		problems = append(problems, "DB_DRIVER must be postgres or sqlite")
	}
	if _, err := saga.ParsePolicy(c.CompoundPolicy); err != nil {
		problems = append(problems, "COMPOUND_POLICY must be compensate or tolerate")
	}
	return problems
}

func (c *Config) warnings() []string {
	var warns []string
	if c.DBDriver == DriverPostgres && c.DatabaseDSN == defaultDSN {
		warns = append(warns, "DATABASE_DSN uses the default value, set your own Postgres connection for production")
	}
	if c.CORSOrigins == defaultCORSOrigin {
		warns = append(warns, "CORS_ALLOWED_ORIGINS uses the default value, set your own domain for production")
	}
	if c.StaticAdminEnabled {
		warns = append(warns, "STATIC_ADMIN_ENABLED: admin@auto.com/admin123 bypasses authentication, disable it in production")
	}
	return warns
}

// Log writes the load warnings through the application logger.
func Log(log *zap.Logger, warns []string) {
	for _, w := range warns {
		log.Warn("config", zap.String("warning", w))
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return def
	}
	return d
}
