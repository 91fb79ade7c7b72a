package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"autoparts-backend/internal/saga"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "0123456789abcdef0123456789abcdef")
	t.Setenv("DB_DRIVER", "")
	t.Setenv("COMPOUND_POLICY", "")
	t.Setenv("STATIC_ADMIN_ENABLED", "")

	cfg, warns := Load()
	require.NotNil(t, cfg)

	assert.Equal(t, DriverPostgres, cfg.DBDriver)
	assert.Equal(t, string(saga.Compensate), cfg.CompoundPolicy)
	assert.True(t, cfg.StaticAdminEnabled)
	assert.False(t, cfg.RestoreStockOnDelete)
	assert.Equal(t, 24*time.Hour, cfg.SessionTTL)
	assert.Empty(t, cfg.Validate())
	assert.NotEmpty(t, warns)
}

func TestValidateRejectsShortSecretAndUnknownPolicy(t *testing.T) {
	cfg := &Config{JWTSecret: "short", DBDriver: DriverSQLite, CompoundPolicy: "retry"}

	problems := cfg.Validate()
	assert.Len(t, problems, 2)

	cfg = &Config{JWTSecret: "0123456789abcdef0123456789abcdef", DBDriver: DriverSQLite, CompoundPolicy: string(saga.Tolerate)}
	assert.Empty(t, cfg.Validate())
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("DB_DRIVER", "SQLite")
	t.Setenv("SESSION_TTL", "90m")
	t.Setenv("RESTORE_STOCK_ON_DELETE", "true")
	t.Setenv("DB_QUERY_TIMEOUT", "nonsense")

	cfg, _ := Load()
	assert.Equal(t, DriverSQLite, cfg.DBDriver)
	assert.Equal(t, 90*time.Minute, cfg.SessionTTL)
	assert.True(t, cfg.RestoreStockOnDelete)
	assert.Equal(t, 10*time.Second, cfg.QueryTimeout)
}
