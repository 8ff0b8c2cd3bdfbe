package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"

	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite" // SQLite driver
)

//go:embed migrations/accounts/*.sql migrations/records/*.sql
var embedMigrations embed.FS

const (
	accountsMigrations = "migrations/accounts"
	recordsMigrations  = "migrations/records"
)

// Storage is the account registry (users table) backed by SQLite
type Storage struct {
	db *sql.DB
}

// New creates a new SQLite account registry
// dbPath is the path to the SQLite database file
// Use ":memory:" for in-memory database (useful for testing)
func New(ctx context.Context, dbPath string) (*Storage, error) {
	db, err := openDB(ctx, dbPath)
	if err != nil {
		return nil, err
	}

	if err := migrate(ctx, db, accountsMigrations); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &Storage{db: db}, nil
}

// Close closes the database connection
func (s *Storage) Close() error {
	return s.db.Close()
}

// Ping checks that the registry database is reachable
func (s *Storage) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// DB returns the underlying database connection for testing purposes
func (s *Storage) DB() *sql.DB {
	return s.db
}

// openDB открывает базу и настраивает соединение
// Прагмы передаются через DSN, чтобы они применялись к каждому новому соединению
func openDB(ctx context.Context, dbPath string) (*sql.DB, error) {
	dsn := dbPath
	if dbPath != ":memory:" {
		// _txlock=immediate: транзакция берет write lock сразу на BEGIN,
		// поэтому чтение и запись внутри одной sync-транзакции не пересекаются с другой
		dsn = "file:" + dbPath +
			"?_pragma=journal_mode(WAL)" +
			"&_pragma=synchronous(NORMAL)" +
			"&_pragma=busy_timeout(5000)" +
			"&_txlock=immediate"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite поддерживает только одного писателя
	// Одно соединение также сериализует транзакции внутри процесса
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}

// migrate applies the embedded migrations found in dir.
// A goose.Provider is used instead of the package-level goose functions
// because account stores are migrated concurrently.
func migrate(ctx context.Context, db *sql.DB, dir string) error {
	fsys, err := fs.Sub(embedMigrations, dir)
	if err != nil {
		return fmt.Errorf("failed to open migrations %s: %w", dir, err)
	}

	provider, err := goose.NewProvider(goose.DialectSQLite3, db, fsys)
	if err != nil {
		return fmt.Errorf("failed to create goose provider: %w", err)
	}

	if _, err := provider.Up(ctx); err != nil {
		return fmt.Errorf("goose up failed: %w", err)
	}

	return nil
}
