package database

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/golang-migrate/migrate/v4"
	migratedb "github.com/golang-migrate/migrate/v4/database"
	migratepg "github.com/golang-migrate/migrate/v4/database/postgres"
	migratesqlite "github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"expensetracker/internal/logger"
)

//go:embed migrations/sqlite/*.sql migrations/postgres/*.sql
var migrationsFS embed.FS

// Manager handles database operations
type Manager struct {
	db     *gorm.DB
	driver string
}

// NewManager opens the configured database, retrying with exponential
// backoff until ConnectTimeout elapses.
func NewManager(config *Config) (*Manager, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	log := logger.Named("database")
	gormCfg := &gorm.Config{Logger: gormlogger.Default.LogMode(gormlogger.Silent)}

	var db *gorm.DB
	connect := func() error {
		var err error
		db, err = open(config, gormCfg)
		if err != nil {
			return err
		}
		sqlDB, err := db.DB()
		if err != nil {
			return backoff.Permanent(err)
		}
		return sqlDB.Ping()
	}

	policy := backoff.NewExponentialBackOff()
	policy.MaxElapsedTime = config.ConnectTimeout
	notify := func(err error, wait time.Duration) {
		log.Warnw("database not ready, retrying", "driver", config.Driver, "error", err, "wait", wait)
	}
	if err := backoff.RetryNotify(connect, policy, notify); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying DB: %w", err)
	}
	if config.Driver == DriverSQLite {
		// SQLite allows one writer; a single connection also keeps
		// in-memory databases alive across calls.
		sqlDB.SetMaxOpenConns(1)
	} else {
		sqlDB.SetMaxIdleConns(10)
		sqlDB.SetMaxOpenConns(100)
		sqlDB.SetConnMaxLifetime(time.Hour)
	}

	log.Infow("database connected", "driver", config.Driver)
	return &Manager{db: db, driver: config.Driver}, nil
}

func open(config *Config, gormCfg *gorm.Config) (*gorm.DB, error) {
	if config.Driver == DriverPostgres {
		return gorm.Open(postgres.New(postgres.Config{
			DSN:                  config.DSN(),
			PreferSimpleProtocol: true,
		}), gormCfg)
	}

	path := config.SQLitePath
	if !strings.HasPrefix(path, "file:") && path != ":memory:" {
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, backoff.Permanent(fmt.Errorf("failed to create database directory: %w", err))
			}
		}
	}
	return gorm.Open(sqlite.Open(path), gormCfg)
}

// migrator builds a migrate instance over the open connection. The caller
// must not Close it: that would close the shared *sql.DB.
func (m *Manager) migrator() (*migrate.Migrate, error) {
	sqlDB, err := m.db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying DB: %w", err)
	}

	driver, err := m.migrationDriver(sqlDB)
	if err != nil {
		return nil, fmt.Errorf("failed to create migration driver: %w", err)
	}

	src, err := iofs.New(migrationsFS, "migrations/"+m.driver)
	if err != nil {
		return nil, fmt.Errorf("failed to open embedded migrations: %w", err)
	}

	mig, err := migrate.NewWithInstance("iofs", src, m.driver, driver)
	if err != nil {
		return nil, fmt.Errorf("failed to create migrate instance: %w", err)
	}
	return mig, nil
}

func (m *Manager) migrationDriver(sqlDB *sql.DB) (migratedb.Driver, error) {
	if m.driver == DriverPostgres {
		return migratepg.WithInstance(sqlDB, &migratepg.Config{})
	}
	return migratesqlite.WithInstance(sqlDB, &migratesqlite.Config{})
}

// Migrate applies pending SQL migrations embedded in the binary.
func (m *Manager) Migrate() error {
	log := logger.Named("database")
	log.Info("Running database migrations...")

	mig, err := m.migrator()
	if err != nil {
		return err
	}
	if err := mig.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migration failed: %w", err)
	}

	log.Info("Database migrations completed successfully")
	return nil
}

// MigrateDown rolls back the given number of migrations.
func (m *Manager) MigrateDown(steps int) error {
	if steps < 1 {
		return fmt.Errorf("step count must be positive, got %d", steps)
	}
	mig, err := m.migrator()
	if err != nil {
		return err
	}
	if err := mig.Steps(-steps); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migration down failed: %w", err)
	}
	return nil
}

// Version reports the applied migration version. A database with no
// migrations reports version 0.
func (m *Manager) Version() (uint, bool, error) {
	mig, err := m.migrator()
	if err != nil {
		return 0, false, err
	}
	version, dirty, err := mig.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("failed to get version: %w", err)
	}
	return version, dirty, nil
}

// DB returns the underlying GORM database instance
func (m *Manager) DB() *gorm.DB {
	return m.db
}

// Driver returns the configured driver name.
func (m *Manager) Driver() string {
	return m.driver
}

// Ping checks that the database answers within the context deadline.
func (m *Manager) Ping(ctx context.Context) error {
	sqlDB, err := m.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// Close releases the connection pool.
func (m *Manager) Close() error {
	sqlDB, err := m.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
