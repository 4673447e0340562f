// Package repositories provides data access layer implementations.
// It handles all database operations and data persistence logic.
package repositories

import (
	"errors"
	"fmt"
	"time"

	"kycdesk/internal/config"
	"kycdesk/internal/models"

	zlog "github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var (
	// ErrNotFound keeps storage 404s consistent across repositories.
	ErrNotFound = errors.New("record not found")
	// ErrDatabaseOperation hides driver errors from callers.
	ErrDatabaseOperation = errors.New("database operation failed")
)

// Tables in dependency order.
var tables = []any{
	&models.User{},
	&models.KYCCase{},
	&models.Transaction{},
	&models.AuditLog{},
}

// InitDB opens the Postgres connection and configures the pool.
func InitDB(cfg config.DBConfig) (*gorm.DB, error) {
	gormLogger := logger.New(
		&zlog.Logger,
		logger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)

	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{
		Logger:         gormLogger,
		TranslateError: true,
		// References are enforced by the application only; deleting a user
		// orphans its cases, transactions and audit entries.
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		return nil, fmt.Errorf("connect to postgres: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get database instance: %w", err)
	}
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	sqlDB.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	return db, nil
}

// Migrate brings the schema up to date.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(tables...)
}

// ResetDatabase drops and recreates every table.
func ResetDatabase(db *gorm.DB) error {
	if err := db.Migrator().DropTable(tables...); err != nil {
		return err
	}
	return Migrate(db)
}

// Close releases the underlying pool.
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// translate maps gorm errors onto repository errors.
func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	default:
		return fmt.Errorf("%w: %v", ErrDatabaseOperation, err)
	}
}
