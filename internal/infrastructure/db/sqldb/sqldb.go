// Package sqldb is the relational storage backend, built on gorm. The same
// repositories serve PostgreSQL in production and SQLite for single-node
// installs and tests.
package sqldb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/societyhub/apartment-system/internal/core/domain"
	"github.com/societyhub/apartment-system/internal/core/ports"
)

const defaultTimeout = 10 * time.Second

// Config selects the driver and where to connect.
type Config struct {
	Driver string // postgres | sqlite
	DSN    string
	Debug  bool
}

// Open connects to the configured database and verifies it with a ping.
func Open(ctx context.Context, cfg Config) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.Driver {
	case "postgres":
		dialector = postgres.Open(cfg.DSN)
	case "sqlite":
		dialector = sqlite.Open(cfg.DSN)
	default:
		return nil, fmt.Errorf("sql open: unsupported driver %q", cfg.Driver)
	}

	level := logger.Warn
	if cfg.Debug {
		level = logger.Info
	}
	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         logger.Default.LogMode(level),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("sql open: %w", err)
	}

	if err := Ping(ctx, db); err != nil {
		return nil, err
	}
	return db, nil
}

// Ping checks the underlying connection pool.
func Ping(ctx context.Context, db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("sql ping: %w", err)
	}
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()
	if err := sqlDB.PingContext(ctx); err != nil {
		return fmt.Errorf("sql ping: %w", err)
	}
	return nil
}

// Close releases the connection pool.
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Migrate creates or updates every table.
func Migrate(ctx context.Context, db *gorm.DB) error {
	err := db.WithContext(ctx).AutoMigrate(
		&userRow{},
		&apartmentRow{},
		&maintenanceRow{},
		&paymentRow{},
		&visitorRow{},
		&announcementRow{},
		&notificationRow{},
	)
	if err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}

// NewRepositories wires every gorm-backed repository onto db.
func NewRepositories(db *gorm.DB) ports.Repositories {
	return ports.Repositories{
		Users:         NewUserRepository(db),
		Apartments:    NewApartmentRepository(db),
		Maintenance:   NewMaintenanceRepository(db),
		Payments:      NewPaymentRepository(db),
		Visitors:      NewVisitorRepository(db),
		Announcements: NewAnnouncementRepository(db),
		Notifications: NewNotificationRepository(db),
	}
}

// casMiss explains why a conditional update touched no row: either the row
// is gone or its status moved on.
func casMiss(tx *gorm.DB, model interface{}, id int64, notFound error) error {
	var n int64
	if err := tx.Model(model).Where("id = ?", id).Count(&n).Error; err != nil {
		return fmt.Errorf("check row: %w", err)
	}
	if n == 0 {
		return notFound
	}
	return domain.ErrConflict
}

func isNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
