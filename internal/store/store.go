// Package store provides the SQLite persistence layer for the CRM.
package store

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"modernc.org/sqlite"
)

// ErrNotFound is returned when a referenced row does not exist.
var ErrNotFound = errors.New("not found")

// ErrInvalidRef is returned when a write names a foreign row that does not
// exist, such as a deal pointing at an unknown contact.
var ErrInvalidRef = errors.New("referenced record not found")

// SQLITE_CONSTRAINT_FOREIGNKEY. modernc surfaces the extended result code.
const sqliteConstraintFK = 787

// classifyErr translates driver foreign-key failures into ErrInvalidRef so
// handlers can reject the request instead of reporting a server fault.
func classifyErr(err error) error {
	var serr *sqlite.Error
	if errors.As(err, &serr) && serr.Code() == sqliteConstraintFK {
		return ErrInvalidRef
	}
	return err
}

// DefaultAnnualGoal seeds the annual_goal setting on first run.
const DefaultAnnualGoal = "1000000"

// Store wraps the CRM database. One Store is opened at process start and
// shared by every handler.
type Store struct {
	db *sql.DB
}

// Open opens or creates the CRM database at the given path, ensures the
// schema exists, and seeds the SKU catalog and default settings.
func Open(dbPath string) (*Store, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("creating data dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=synchronous(normal)&_pragma=foreign_keys(on)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening crm db: %w", err)
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	s := &Store{db: db}
	if err := s.seed(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("seeding defaults: %w", err)
	}

	return s, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) seed() error {
	now := nowRFC3339()
	for _, sku := range skuCatalog {
		_, err := s.db.Exec(
			"INSERT OR IGNORE INTO skus (name, category, subcategory) VALUES (?, ?, ?)",
			sku.Name, sku.Category, sku.Subcategory,
		)
		if err != nil {
			return err
		}
	}

	_, err := s.db.Exec(
		"INSERT OR IGNORE INTO settings (key, value, updated_at) VALUES (?, ?, ?)",
		"annual_goal", DefaultAnnualGoal, now,
	)
	return err
}

func nowRFC3339() string {
	return time.Now().UTC().Format(time.RFC3339)
}

// nullStr converts an optional string to its sql representation.
func nullStr(p *string) sql.NullString {
	if p == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *p, Valid: true}
}

// nullInt converts an optional int64 to its sql representation.
func nullInt(p *int64) sql.NullInt64 {
	if p == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *p, Valid: true}
}

// nullFloat converts an optional float64 to its sql representation.
func nullFloat(p *float64) sql.NullFloat64 {
	if p == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *p, Valid: true}
}

func strPtr(v sql.NullString) *string {
	if !v.Valid {
		return nil
	}
	s := v.String
	return &s
}

func intPtr(v sql.NullInt64) *int64 {
	if !v.Valid {
		return nil
	}
	n := v.Int64
	return &n
}

func floatPtr(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Float64
	return &f
}
