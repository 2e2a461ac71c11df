package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// ErrNotFound is returned when a project id does not exist.
var ErrNotFound = errors.New("project not found")

// ProjectInfo describes a stored project without its document.
type ProjectInfo struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	CreatedAt int64  `json:"created_at"`
	UpdatedAt int64  `json:"updated_at"`
}

// LoadProject returns the stored document for a project id.
func (s *Store) LoadProject(ctx context.Context, id string) ([]byte, error) {
	var doc string
	err := s.db.QueryRowContext(ctx,
		"SELECT doc FROM projects WHERE id = ?", SanitizeID(id),
	).Scan(&doc)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("load project %q: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("load project %q: %w", id, err)
	}
	return []byte(doc), nil
}

// ListProjects returns metadata for every stored project, most recently
// updated first; ties break on id so the order is stable.
func (s *Store) ListProjects(ctx context.Context) ([]ProjectInfo, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, created_at, updated_at
		FROM projects
		ORDER BY updated_at DESC, id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	defer rows.Close()

	var infos []ProjectInfo
	for rows.Next() {
		var info ProjectInfo
		if err := rows.Scan(&info.ID, &info.Name, &info.CreatedAt, &info.UpdatedAt); err != nil {
			return nil, fmt.Errorf("list projects: %w", err)
		}
		infos = append(infos, info)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	return infos, nil
}
