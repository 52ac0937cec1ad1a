package store

import (
	"context"
	"database/sql"
	"fmt"
)

// SQLite stores documents in a local SQLite database.
type SQLite struct {
	DB *sql.DB
}

// NewSQLite creates a SQLite-backed document store over an open database.
func NewSQLite(db *sql.DB) *SQLite {
	return &SQLite{DB: db}
}

// Put inserts or replaces the document with the given code. An update keeps
// the row's original rowid, so the document keeps its ListAll position.
func (s *SQLite) Put(ctx context.Context, collection, code string, data []byte) error {
	_, err := s.DB.ExecContext(ctx,
		`INSERT INTO documents (collection, code, data) VALUES (?, ?, ?)
		 ON CONFLICT (collection, code)
		 DO UPDATE SET data = excluded.data, updated_at = CURRENT_TIMESTAMP`,
		collection, code, data,
	)
	if err != nil {
		return fmt.Errorf("storing document %s/%s: %w", collection, code, err)
	}
	return nil
}

// Delete removes the document with the given code. Deleting an absent code
// is not an error here; the repository owns not-found semantics.
func (s *SQLite) Delete(ctx context.Context, collection, code string) error {
	_, err := s.DB.ExecContext(ctx,
		`DELETE FROM documents WHERE collection = ? AND code = ?`,
		collection, code,
	)
	if err != nil {
		return fmt.Errorf("deleting document %s/%s: %w", collection, code, err)
	}
	return nil
}

// ListAll returns every document in the collection in insertion order.
func (s *SQLite) ListAll(ctx context.Context, collection string) ([]Record, error) {
	rows, err := s.DB.QueryContext(ctx,
		`SELECT code, data FROM documents WHERE collection = ? ORDER BY rowid`,
		collection,
	)
	if err != nil {
		return nil, fmt.Errorf("listing documents in %s: %w", collection, err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var rec Record
		if err := rows.Scan(&rec.Code, (*[]byte)(&rec.Data)); err != nil {
			return nil, fmt.Errorf("scanning document: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}
