package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3" // sqlite3 driver
	"github.com/rs/zerolog"

	"opennoution/internal/ports"
)

const schemaVersion = "1"

// errSchemaMismatch marks a database written by a different schema version
var errSchemaMismatch = errors.New("schema version mismatch")

const schema = `
	PRAGMA synchronous = NORMAL;
	PRAGMA temp_store = MEMORY;

	CREATE TABLE IF NOT EXISTS pages (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		title TEXT NOT NULL,
		parent_id INTEGER,
		position INTEGER NOT NULL DEFAULT 0,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);
	CREATE TABLE IF NOT EXISTS blocks (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		page_id INTEGER NOT NULL,
		type TEXT NOT NULL,
		content TEXT NOT NULL DEFAULT '',
		checked INTEGER,
		position INTEGER NOT NULL DEFAULT 0,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);
	CREATE TABLE IF NOT EXISTS user (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		email TEXT NOT NULL DEFAULT '',
		occupation TEXT NOT NULL DEFAULT '',
		purpose TEXT NOT NULL DEFAULT '',
		created_at TEXT NOT NULL
	);
	CREATE TABLE IF NOT EXISTS settings (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);
	CREATE TABLE IF NOT EXISTS meta (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_pages_parent ON pages(parent_id, position);
	CREATE INDEX IF NOT EXISTS idx_blocks_page ON blocks(page_id, position);
`

// Store implements ports.Store on a local SQLite file
type Store struct {
	collections
	db   *sql.DB
	path string
	log  zerolog.Logger
}

// Ensure Store implements ports.Store
var _ ports.Store = (*Store)(nil)

// Open opens or creates the database at path. When the first attempt fails
// the database files are removed and the schema is created from scratch
// once. If that fails too, the returned error wraps ports.ErrStoreInit.
func Open(ctx context.Context, path string, log zerolog.Logger) (*Store, error) {
	s, err := open(ctx, path, log)
	if err == nil {
		log.Debug().Str("path", path).Msg("store opened")
		return s, nil
	}

	log.Warn().Err(err).Str("path", path).Msg("store open failed, recreating database")

	if rmErr := removeDatabase(path); rmErr != nil {
		return nil, fmt.Errorf("%w: %w", ports.ErrStoreInit, errors.Join(err, rmErr))
	}

	s, retryErr := open(ctx, path, log)
	if retryErr != nil {
		log.Error().Err(retryErr).Str("path", path).Msg("failed to recreate database")
		return nil, fmt.Errorf("%w: %w", ports.ErrStoreInit, retryErr)
	}

	log.Info().Str("path", path).Msg("database recreated")
	return s, nil
}

func open(ctx context.Context, path string, log zerolog.Logger) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// One connection keeps transactions and plain calls strictly sequential
	db.SetMaxOpenConns(1)

	if err := checkSchemaVersion(ctx, db); err != nil {
		db.Close()
		return nil, err
	}

	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to setup database: %w", err)
	}

	if _, err := db.ExecContext(ctx,
		`INSERT OR REPLACE INTO meta (key, value) VALUES ('schema_version', ?)`, schemaVersion); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to update metadata: %w", err)
	}

	return &Store{
		collections: collections{q: db},
		db:          db,
		path:        path,
		log:         log,
	}, nil
}

// checkSchemaVersion rejects databases written by another schema version.
// A fresh database has no meta table yet and passes.
func checkSchemaVersion(ctx context.Context, db *sql.DB) error {
	var exists int
	err := db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = 'meta'`).Scan(&exists)
	if err != nil {
		return fmt.Errorf("failed to read database: %w", err)
	}
	if exists == 0 {
		return nil
	}

	var version string
	err = db.QueryRowContext(ctx, `SELECT value FROM meta WHERE key = 'schema_version'`).Scan(&version)
	if errors.Is(err, sql.ErrNoRows) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}
	if version != schemaVersion {
		return fmt.Errorf("%w: found %s, want %s", errSchemaMismatch, version, schemaVersion)
	}
	return nil
}

// removeDatabase deletes the database file and its WAL side files
func removeDatabase(path string) error {
	var errs []error
	for _, p := range []string{path, path + "-wal", path + "-shm"} {
		if err := os.Remove(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Path returns the database file path
func (s *Store) Path() string {
	return s.path
}

// Close closes the database connection
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Begin starts a new transaction
func (s *Store) Begin(ctx context.Context) (ports.StoreTx, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	return &storeTx{collections: collections{q: tx}, tx: tx}, nil
}

// queryer is satisfied by both *sql.DB and *sql.Tx
type queryer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// collections implements ports.Collections over a queryer
type collections struct {
	q queryer
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTime(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid timestamp %q: %w", s, err)
	}
	return t, nil
}
