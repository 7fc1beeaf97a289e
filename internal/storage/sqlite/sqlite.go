// Package sqlite provides a SQLite-backed implementation of the
// storage.Storage interface using Go's standard database/sql package.
//
// WHY SQLite?
// ───────────
// SQLite stores everything in a single file on disk. There is no
// network, no separate server process, and no installation beyond the
// driver. It is fast enough for most projects and trivial to set up.
//
// Importing the sqlite3 package registers the "sqlite3" driver with
// database/sql as a side effect (the driver's init() does this).
// We also use it directly: isDuplicate inspects the driver's typed
// sqlite3.Error to recognise primary-key violations.
//
// The CRUD methods live in one file per resource (person.go, address.go,
// mealplan.go, dininglocation.go); this file owns the connection, the
// schema, and the helpers they all share.
package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/mattn/go-sqlite3"
	"github.com/meera-iyer/campus-dining-api/internal/config"
)

// SQLite is the concrete implementation of storage.Storage.
// It holds a *sql.DB which is a connection pool managed by database/sql.
// A single *sql.DB is safe for concurrent use by multiple goroutines.
type SQLite struct {
	Db *sql.DB
}

// New opens the SQLite database at the path specified in cfg.StoragePath,
// creates the four resource tables if they do not already exist, and
// returns a ready-to-use *SQLite.
func New(cfg *config.Config) (*SQLite, error) {
	// sql.Open does NOT open a real connection yet — it just validates
	// the driver name and data source name (DSN).
	// The first actual connection happens on the first query.
	db, err := sql.Open("sqlite3", cfg.StoragePath)
	if err != nil {
		return nil, fmt.Errorf("sqlite.New: open db: %w", err)
	}

	// CREATE TABLE IF NOT EXISTS is idempotent — safe to run on every
	// startup. Ids are client-visible UUID strings, so TEXT primary
	// keys rather than integer autoincrement. Timestamps are stored as
	// RFC3339 TEXT (see formatTime/parseTime below).
	schema := []string{
		`CREATE TABLE IF NOT EXISTS persons (
			id         TEXT PRIMARY KEY,
			name       TEXT NOT NULL,
			email      TEXT NOT NULL,
			phone      TEXT NOT NULL DEFAULT '',
			created_at TEXT NOT NULL,
			updated_at TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS addresses (
			id          TEXT PRIMARY KEY,
			street      TEXT NOT NULL,
			city        TEXT NOT NULL,
			state       TEXT NOT NULL DEFAULT '',
			postal_code TEXT NOT NULL DEFAULT '',
			country     TEXT NOT NULL DEFAULT '',
			created_at  TEXT NOT NULL,
			updated_at  TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS meal_plans (
			id         TEXT PRIMARY KEY,
			name       TEXT NOT NULL,
			type       TEXT NOT NULL,
			cost       REAL NOT NULL,
			start_date TEXT,
			end_date   TEXT,
			created_at TEXT NOT NULL,
			updated_at TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS dining_locations (
			id         TEXT PRIMARY KEY,
			name       TEXT NOT NULL,
			capacity   INTEGER NOT NULL,
			created_at TEXT NOT NULL,
			updated_at TEXT NOT NULL
		)`,
	}

	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			return nil, fmt.Errorf("sqlite.New: create table: %w", err)
		}
	}

	return &SQLite{Db: db}, nil
}

// Close releases the underlying connection pool.
func (s *SQLite) Close() error {
	return s.Db.Close()
}

// timeFormat is how timestamps are written to the database. RFC3339Nano
// sorts lexicographically the same way it sorts chronologically (for a
// fixed UTC offset), which keeps the stored text both readable and
// ORDER BY-friendly.
const timeFormat = time.RFC3339Nano

func formatTime(t time.Time) string {
	return t.UTC().Format(timeFormat)
}

func parseTime(s string) (time.Time, error) {
	return time.Parse(timeFormat, s)
}

// formatNullableTime converts an optional timestamp into a driver value:
// nil stays nil (stored as SQL NULL), everything else becomes text.
func formatNullableTime(t *time.Time) any {
	if t == nil {
		return nil
	}
	return formatTime(*t)
}

// parseNullableTime is the inverse of formatNullableTime for values
// scanned into a sql.NullString.
func parseNullableTime(ns sql.NullString) (*time.Time, error) {
	if !ns.Valid {
		return nil, nil
	}
	t, err := parseTime(ns.String)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// isDuplicate reports whether err is SQLite's primary-key violation.
// The driver returns a typed sqlite3.Error, so we match on its extended
// result code rather than sniffing the message text.
func isDuplicate(err error) bool {
	var sqliteErr sqlite3.Error
	return errors.As(err, &sqliteErr) &&
		sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
}
