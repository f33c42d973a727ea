// Package sqlite provides a SQLite-backed VariantStore for
// installations that need variants to survive process restarts.
// The driver is pure Go (modernc.org/sqlite), so no cgo toolchain is
// required to build or cross-compile.
package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	_ "modernc.org/sqlite"

	"github.com/culturebridge-labs/culturebridge/internal/core/domain"
	"github.com/culturebridge-labs/culturebridge/internal/core/ports/driven"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// VariantStore persists variants in a SQLite database. The full
// pipeline state is stored as a JSON document; only the ID and
// creation time are queryable columns.
type VariantStore struct {
	db *sql.DB
}

var _ driven.VariantStore = (*VariantStore)(nil)

// Open opens (creating if needed) the database at path and applies
// pending migrations.
func Open(path string) (*VariantStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("setting pragma: %w", err)
		}
	}

	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}
	return &VariantStore{db: db}, nil
}

func runMigrations(db *sql.DB) error {
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS schema_migrations (
		version TEXT PRIMARY KEY,
		applied_at TEXT NOT NULL
	)`); err != nil {
		return fmt.Errorf("creating migrations table: %w", err)
	}

	entries, err := migrationsFS.ReadDir("migrations")
	if err != nil {
		return fmt.Errorf("reading migrations: %w", err)
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		names = append(names, entry.Name())
	}
	sort.Strings(names)

	for _, name := range names {
		var count int
		if err := db.QueryRow(
			"SELECT COUNT(*) FROM schema_migrations WHERE version = ?", name,
		).Scan(&count); err != nil {
			return fmt.Errorf("checking migration %s: %w", name, err)
		}
		if count > 0 {
			continue
		}

		script, err := migrationsFS.ReadFile("migrations/" + name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}

		tx, err := db.Begin()
		if err != nil {
			return fmt.Errorf("beginning migration %s: %w", name, err)
		}
		if _, err := tx.Exec(string(script)); err != nil {
			tx.Rollback()
			return fmt.Errorf("applying migration %s: %w", name, err)
		}
		if _, err := tx.Exec(
			"INSERT INTO schema_migrations (version, applied_at) VALUES (?, ?)",
			name, time.Now().UTC().Format(time.RFC3339),
		); err != nil {
			tx.Rollback()
			return fmt.Errorf("recording migration %s: %w", name, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("committing migration %s: %w", name, err)
		}
	}
	return nil
}

// Put stores a variant. ON CONFLICT DO NOTHING makes a retried put of
// an already stored ID a no-op rather than an overwrite.
func (s *VariantStore) Put(ctx context.Context, spec domain.VariantSpec) error {
	payload, err := json.Marshal(spec)
	if err != nil {
		return fmt.Errorf("marshaling variant %s: %w", spec.ID, err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO variants (id, state, created_at) VALUES (?, ?, ?)
		 ON CONFLICT(id) DO NOTHING`,
		spec.ID, string(payload), spec.CreatedAt.UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("storing variant %s: %w", spec.ID, err)
	}
	return nil
}

// Get retrieves a variant by ID.
func (s *VariantStore) Get(ctx context.Context, id string) (*domain.VariantSpec, error) {
	var payload string
	err := s.db.QueryRowContext(ctx,
		"SELECT state FROM variants WHERE id = ?", id).Scan(&payload)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: variant %s", domain.ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("loading variant %s: %w", id, err)
	}

	var spec domain.VariantSpec
	if err := json.Unmarshal([]byte(payload), &spec); err != nil {
		return nil, fmt.Errorf("decoding variant %s: %w", id, err)
	}
	return &spec, nil
}

// List returns all stored variant IDs, sorted.
func (s *VariantStore) List(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT id FROM variants ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("listing variants: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scanning variant id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating variants: %w", err)
	}
	return ids, nil
}

// Delete removes a variant.
func (s *VariantStore) Delete(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM variants WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting variant %s: %w", id, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking delete of %s: %w", id, err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: variant %s", domain.ErrNotFound, id)
	}
	return nil
}

// Close closes the database.
func (s *VariantStore) Close() error {
	return s.db.Close()
}
