// Package db opens the backing database and runs schema migration.
package db

import (
	"context"
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/mbgplatform/mbg/internal/log"
	"github.com/mbgplatform/mbg/internal/store"
	"github.com/mbgplatform/mbg/internal/store/gormstore"
)

// Config holds database connection settings.
type Config struct {
	DSN   string `conf:"dsn" yaml:"dsn" json:"dsn"`
	Debug bool   `conf:"debug" yaml:"debug" json:"debug"`
}

// Validate checks required settings.
func (c Config) Validate() error {
	if c.DSN == "" {
		return fmt.Errorf("db: dsn is required")
	}

	return nil
}

// NewGorm opens a postgres connection. TranslateError must stay on so
// unique violations surface as gorm.ErrDuplicatedKey for the store layer.
func NewGorm(cfg Config) (*gorm.DB, error) {
	level := gormlogger.Silent
	if cfg.Debug {
		level = gormlogger.Info
	}

	db, err := gorm.Open(postgres.Open(cfg.DSN), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(level),
	})
	if err != nil {
		return nil, fmt.Errorf("db: open: %w", err)
	}

	return db, nil
}

// Migrate brings the schema up to date.
func Migrate(ctx context.Context, db *gorm.DB) error {
	log.Info(ctx, "db: running schema migration")

	return db.WithContext(ctx).AutoMigrate(
		&store.Organization{},
		&store.Branch{},
		&store.User{},
		&store.School{},
		&store.Student{},
		&store.Meal{},
		&store.Supplier{},
		&store.Order{},
		&store.Document{},
		&store.FinancialRecord{},
		&store.Permission{},
		&store.RolePermission{},
		&store.AuditLog{},
	)
}

// NewStore binds the repositories to the connection.
func NewStore(db *gorm.DB) *store.Store {
	return gormstore.New(db)
}
