package database

import (
	"fmt"
	"strings"

	"github.com/glebarez/sqlite"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"autoparts-backend/internal/config"
	"autoparts-backend/internal/models"
)

// Open connects to the configured driver and migrates the schema.
func Open(cfg *config.Config, log *zap.Logger) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.DBDriver {
	case config.DriverSQLite:
		dialector = sqlite.Open(sqliteDSN(cfg.DatabaseDSN))
	case config.DriverPostgres:
		dialector = postgres.Open(cfg.DatabaseDSN)
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("connect %s: %w", cfg.DBDriver, err)
	}

	if cfg.DBDriver == config.DriverSQLite {
		sqlDB, err := db.DB()
		if err != nil {
			return nil, fmt.Errorf("connect %s: %w", cfg.DBDriver, err)
		}
		// SQLite serializes writers; one connection avoids "database is locked".
		sqlDB.SetMaxOpenConns(1)
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}

	log.Info("database connected, migration done", zap.String("driver", cfg.DBDriver))
	return db, nil
}

// sqliteDSN turns on foreign keys so child rows cascade with their invoice.
func sqliteDSN(dsn string) string {
	if strings.Contains(dsn, "foreign_keys") {
		return dsn
	}
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	return dsn + sep + "_pragma=foreign_keys(1)"
}

// Migrate creates or updates every table the gateway serves.
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.AuthAccount{},
		&models.User{},
		&models.Supplier{},
		&models.Product{},
		&models.PurchaseInvoice{},
		&models.SalesInvoice{},
		&models.SalesItem{},
		&models.PaymentHistory{},
		&models.WorkerPayment{},
	)
	if err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}
