package database

import (
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/skrylabs/skry/logger"
)

// DB wraps a GORM database handle with skry logging.
type DB struct {
	Gorm *gorm.DB
	log  *logger.Logger
	cfg  Config
}

// Open connects to the database described by cfg using the given dialector
// and applies connection pool settings.
func Open(dialector gorm.Dialector, cfg Config, log *logger.Logger) (*DB, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	gdb, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("database: failed to open: %w", err)
	}

	sqlDB, err := gdb.DB()
	if err != nil {
		return nil, fmt.Errorf("database: failed to access connection pool: %w", err)
	}
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	if lifetime, err := time.ParseDuration(cfg.ConnMaxLifetime); err == nil {
		sqlDB.SetConnMaxLifetime(lifetime)
	}

	dblog := log.WithComponent("database")
	dblog.Info("database connected", map[string]interface{}{
		"max_open_conns": cfg.MaxOpenConns,
	})

	return &DB{Gorm: gdb, log: dblog, cfg: cfg}, nil
}

// AutoMigrate runs GORM auto-migration for the given models.
func (db *DB) AutoMigrate(models ...any) error {
	if err := db.Gorm.AutoMigrate(models...); err != nil {
		return fmt.Errorf("database: auto-migration failed: %w", err)
	}
	return nil
}

// Close closes the underlying connection pool.
func (db *DB) Close() error {
	sqlDB, err := db.Gorm.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
