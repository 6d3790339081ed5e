package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	// Postgres via the pgx database/sql driver.
	_ "github.com/jackc/pgx/v5/stdlib"
	// Pure Go SQLite driver (no CGO).
	_ "modernc.org/sqlite"
)

// Driver selects the SQL backend.
type Driver string

const (
	DriverSQLite   Driver = "sqlite"
	DriverPostgres Driver = "postgres"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("not found")

// Store persists generated exams and graded results.
type Store struct {
	db     *sql.DB
	driver Driver
}

// Open connects to the database, applies SQLite pragmas where relevant
// and creates the schema if it is missing.
func Open(ctx context.Context, driver Driver, dsn string) (*Store, error) {
	var drvName string
	switch driver {
	case DriverSQLite:
		drvName = "sqlite"
	case DriverPostgres:
		drvName = "pgx"
	default:
		return nil, fmt.Errorf("unsupported driver: %q", driver)
	}

	db, err := sql.Open(drvName, dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if driver == DriverSQLite {
		// One connection keeps pragmas in effect and serializes writers.
		db.SetMaxOpenConns(1)
		if err := applyPragmas(ctx, db); err != nil {
			db.Close()
			return nil, fmt.Errorf("apply pragmas: %w", err)
		}
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := migrate(ctx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return &Store{db: db, driver: driver}, nil
}

// DB returns the underlying *sql.DB for raw queries.
func (s *Store) DB() *sql.DB {
	return s.db
}

// Driver returns the backend in use.
func (s *Store) Driver() Driver {
	return s.driver
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// applyPragmas configures SQLite for optimal single-user performance.
func applyPragmas(ctx context.Context, db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
		"PRAGMA synchronous = NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			return fmt.Errorf("%s: %w", p, err)
		}
	}
	return nil
}

// schema uses types both SQLite and Postgres accept. Statements run one
// at a time.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS exams (
		id TEXT PRIMARY KEY,
		batch_seed TEXT NOT NULL,
		section TEXT NOT NULL,
		exam_index INTEGER NOT NULL,
		questions_json TEXT NOT NULL,
		areas_json TEXT NOT NULL,
		substitutions_json TEXT NOT NULL,
		generated_at BIGINT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_exams_section ON exams (section)`,
	`CREATE TABLE IF NOT EXISTS exam_results (
		id TEXT PRIMARY KEY,
		exam_id TEXT NOT NULL REFERENCES exams(id) ON DELETE CASCADE,
		section TEXT NOT NULL,
		correct INTEGER NOT NULL,
		total INTEGER NOT NULL,
		percentage DOUBLE PRECISION NOT NULL,
		passed INTEGER NOT NULL,
		result_json TEXT NOT NULL,
		submitted_at BIGINT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_exam_results_section ON exam_results (section, submitted_at)`,
}

func migrate(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}

// DefaultDBPath resolves the database file path in priority order:
// 1. CERTPREP_DB environment variable
// 2. $XDG_DATA_HOME/certprep/certprep.db
// 3. ~/.local/share/certprep/certprep.db
func DefaultDBPath() (string, error) {
	if p := os.Getenv("CERTPREP_DB"); p != "" {
		return p, EnsureDir(p)
	}

	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		dataHome = filepath.Join(home, ".local", "share")
	}

	p := filepath.Join(dataHome, "certprep", "certprep.db")
	return p, EnsureDir(p)
}

// EnsureDir creates the parent directory of path if it doesn't exist.
func EnsureDir(path string) error {
	dir := filepath.Dir(path)
	return os.MkdirAll(dir, 0o755)
}
