package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/viant/vec-outliers/vector"
)

// Store persists named embedding sets in a SQLite database. A set is an
// ordered matrix of equal-dimension vectors; row order is preserved across
// save and load so scores line up with ingested rows.
type Store struct {
	db *sql.DB
}

// New creates a Store over the provided database, ensuring the base schema
// exists.
func New(db *sql.DB) (*Store, error) {
	if db == nil {
		return nil, fmt.Errorf("store: db is nil")
	}
	if err := EnsureSchema(db); err != nil {
		return nil, err
	}
	return &Store{db: db}, nil
}

// SaveSet stores the matrix under the given name, replacing any previous set
// with that name. The whole set is written in one transaction.
func (s *Store) SaveSet(ctx context.Context, name string, m vector.Matrix) error {
	if name == "" {
		return fmt.Errorf("store: set name must not be empty")
	}
	if err := m.Validate(); err != nil {
		return fmt.Errorf("store: %w", err)
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM embedding_sets WHERE set_name = ?`, name); err != nil {
		return err
	}
	stmt, err := tx.PrepareContext(ctx, `INSERT INTO embedding_sets(set_name, row_idx, dim, embedding) VALUES(?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	dim := m.Dim()
	for i := range m {
		blob, err := vector.EncodeEmbedding(m[i])
		if err != nil {
			return err
		}
		if _, err := stmt.ExecContext(ctx, name, i, dim, blob); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// LoadSet reads the named set back in row order. It fails when the set does
// not exist or a stored row does not match the recorded dimension.
func (s *Store) LoadSet(ctx context.Context, name string) (vector.Matrix, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT dim, embedding FROM embedding_sets WHERE set_name = ? ORDER BY row_idx`, name)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var m vector.Matrix
	for rows.Next() {
		var dim int
		var blob []byte
		if err := rows.Scan(&dim, &blob); err != nil {
			return nil, err
		}
		vec, err := vector.DecodeEmbedding(blob, dim)
		if err != nil {
			return nil, fmt.Errorf("store: set %q row %d: %w", name, len(m), err)
		}
		m = append(m, vec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(m) == 0 {
		return nil, fmt.Errorf("store: set %q not found", name)
	}
	return m, nil
}

// DeleteSet removes the named set. Deleting a missing set is not an error.
func (s *Store) DeleteSet(ctx context.Context, name string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM embedding_sets WHERE set_name = ?`, name)
	return err
}

// ListSets returns the stored set names with their row counts, ordered by
// name.
func (s *Store) ListSets(ctx context.Context) (map[string]int, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT set_name, COUNT(*) FROM embedding_sets GROUP BY set_name ORDER BY set_name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	sets := make(map[string]int)
	for rows.Next() {
		var name string
		var count int
		if err := rows.Scan(&name, &count); err != nil {
			return nil, err
		}
		sets[name] = count
	}
	return sets, rows.Err()
}
