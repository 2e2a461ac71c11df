package store

import (
	"context"
	"fmt"
	"time"
)

// SaveProject inserts or replaces a project document.
//
// The id is sanitized (see SanitizeID) and the name normalized before
// writing; the sanitized id is returned so callers know the storage key.
// Saving an existing id overwrites the document and name, preserving
// created_at.
func (s *Store) SaveProject(ctx context.Context, id, name string, doc []byte) (string, error) {
	if len(doc) == 0 {
		return "", fmt.Errorf("save project: empty document")
	}
	id = SanitizeID(id)
	if id == "" {
		return "", fmt.Errorf("save project: empty id")
	}
	name = NormalizeName(name)

	now := time.Now().Unix()
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO projects (id, name, doc, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			doc = excluded.doc,
			updated_at = excluded.updated_at
	`, id, name, string(doc), now, now)
	if err != nil {
		return "", fmt.Errorf("save project: %w", err)
	}
	return id, nil
}

// DeleteProject removes a project by id. Deleting a missing id is not an
// error; the end state is the same.
func (s *Store) DeleteProject(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM projects WHERE id = ?", SanitizeID(id))
	if err != nil {
		return fmt.Errorf("delete project: %w", err)
	}
	return nil
}
