// The sqlstore package defines a SQLite store that fulfills the ResultStore interface in models.
package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/vertex-lab/linkrank/pkg/models"
	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS ranking (
    id        TEXT PRIMARY KEY,
    position  INTEGER NOT NULL,
    label     TEXT NOT NULL DEFAULT '',
    score     REAL NOT NULL,
    out_links TEXT NOT NULL DEFAULT ''
);

CREATE INDEX IF NOT EXISTS ranking_position ON ranking (position);
`

// ResultStore fulfills the ResultStore interface defined in models.
type ResultStore struct {
	db *sql.DB
}

// NewResultStore() opens (or creates) the SQLite database at path and creates the schema.
func NewResultStore(ctx context.Context, path string) (*ResultStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %v: %w", path, err)
	}

	// SQLite supports a single writer
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, "PRAGMA busy_timeout=5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to set busy timeout: %w", err)
	}

	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	return &ResultStore{db: db}, nil
}

// Validate() returns the appropriate error if the store or the database are nil.
func (s *ResultStore) Validate() error {
	if s == nil {
		return models.ErrNilStorePointer
	}

	if s.db == nil {
		return models.ErrNilClientPointer
	}

	return nil
}

// Size() returns the number of ranked vertices (ignores errors).
func (s *ResultStore) Size(ctx context.Context) int {
	if s.Validate() != nil {
		return 0
	}

	var size int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM ranking").Scan(&size); err != nil {
		return 0
	}
	return size
}

// Save() replaces the stored ranking with the provided one in a single transaction.
func (s *ResultStore) Save(ctx context.Context, ranking []models.Ranked[string]) error {
	if err := s.Validate(); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM ranking"); err != nil {
		return fmt.Errorf("failed to delete the old ranking: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO ranking (id, position, label, score, out_links)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			position  = excluded.position,
			label     = excluded.label,
			score     = excluded.score,
			out_links = excluded.out_links`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for pos, entry := range ranking {
		if _, err := stmt.ExecContext(ctx, entry.ID, pos, entry.Label, entry.Score, models.FormatLinks(entry.OutLinks)); err != nil {
			return fmt.Errorf("failed to insert %v: %w", entry.ID, err)
		}
	}

	return tx.Commit()
}

// Top() returns the first limit entries of the ranking.
func (s *ResultStore) Top(ctx context.Context, limit int) ([]models.Ranked[string], error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}

	if limit <= 0 {
		return nil, models.ErrInvalidLimit
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, label, score, out_links FROM ranking
		ORDER BY position LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	top := make([]models.Ranked[string], 0, limit)
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		top = append(top, entry)
	}

	return top, rows.Err()
}

// Vertex() returns the ranking entry of the specified vertex.
func (s *ResultStore) Vertex(ctx context.Context, ID string) (models.Ranked[string], error) {
	if err := s.Validate(); err != nil {
		return models.Ranked[string]{}, err
	}

	row := s.db.QueryRowContext(ctx, "SELECT id, label, score, out_links FROM ranking WHERE id = ?", ID)
	entry, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Ranked[string]{}, models.ErrVertexNotFound
	}

	return entry, err
}

// Close() closes the database.
func (s *ResultStore) Close() error {
	if err := s.Validate(); err != nil {
		return err
	}
	return s.db.Close()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanEntry(row scanner) (models.Ranked[string], error) {
	var entry models.Ranked[string]
	var links string
	if err := row.Scan(&entry.ID, &entry.Label, &entry.Score, &links); err != nil {
		return models.Ranked[string]{}, err
	}

	entry.OutLinks = models.ParseLinks(links)
	return entry, nil
}
