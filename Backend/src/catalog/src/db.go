package main

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/mattn/go-sqlite3" // cgo driver, registered as "sqlite3"
	_ "modernc.org/sqlite"          // pure Go driver, registered as "sqlite"
)

const (
	driverModernc = "sqlite"
	driverCgo     = "sqlite3"
	memoryDB      = ":memory:"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

//go:embed seed.sql
var seedSQL string

func dsn(driver, path string) (string, error) {
	if path == memoryDB {
		return path, nil
	}
	switch driver {
	case driverModernc:
		return fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)", path), nil
	case driverCgo:
		return fmt.Sprintf("%s?_busy_timeout=5000&_journal_mode=WAL", path), nil
	}
	return "", fmt.Errorf("unsupported db driver %q (want %q or %q)", driver, driverModernc, driverCgo)
}

// openDB opens the catalog database with a single connection, so every write
// is serialized by the pool and :memory: databases stay one database.
func openDB(driver, path string) (*sql.DB, error) {
	source, err := dsn(driver, path)
	if err != nil {
		return nil, err
	}
	if path != memoryDB {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("create db dir: %w", err)
		}
	}
	db, err := sql.Open(driver, source)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	db.SetMaxOpenConns(1)
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return db, nil
}

// runMigrations applies the embedded migrations. The migrate instance is not
// closed: closing it would close db as well.
func runMigrations(db *sql.DB, driver string) error {
	var (
		target database.Driver
		err    error
	)
	switch driver {
	case driverModernc:
		target, err = sqlite.WithInstance(db, &sqlite.Config{})
	case driverCgo:
		target, err = sqlite3.WithInstance(db, &sqlite3.Config{})
	default:
		err = fmt.Errorf("unsupported db driver %q", driver)
	}
	if err != nil {
		return fmt.Errorf("could not create migration driver: %w", err)
	}

	src, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("could not open migrations: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", src, driver, target)
	if err != nil {
		return fmt.Errorf("could not create migrate instance: %w", err)
	}
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("could not run migrations: %w", err)
	}
	return nil
}

// seedIfEmpty loads the sample catalog into an empty books table. It reports
// whether rows were inserted.
func seedIfEmpty(ctx context.Context, db *sql.DB) (bool, error) {
	var c int64
	if err := db.QueryRowContext(ctx, `SELECT COUNT(1) FROM books`).Scan(&c); err != nil {
		return false, fmt.Errorf("count books: %w", err)
	}
	if c > 0 {
		return false, nil
	}
	if _, err := db.ExecContext(ctx, seedSQL); err != nil {
		return false, fmt.Errorf("seed books: %w", err)
	}
	return true, nil
}
