package sqlite

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"forkcast/internal/models"
)

// CreateTag persists a standalone tag (tags created during a food write
// are inserted inside that write's transaction instead).
func (s *SQLiteStore) CreateTag(ctx context.Context, tag *models.Tag) error {
	if tag.ID == "" {
		tag.ID = uuid.New().String()
	}
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO tags (id, household_id, name, type, color) VALUES (?, ?, ?, ?, ?)",
		tag.ID, tag.HouseholdID, tag.Name, string(tag.Type), tag.Color,
	)
	if err != nil {
		return fmt.Errorf("failed to insert tag: %w", err)
	}
	return nil
}

// ListTags returns the household's tags ordered by name.
func (s *SQLiteStore) ListTags(ctx context.Context, householdID string) ([]models.Tag, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, household_id, name, type, color FROM tags WHERE household_id = ? ORDER BY name",
		householdID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list tags: %w", err)
	}
	defer rows.Close()

	var tags []models.Tag
	for rows.Next() {
		var t models.Tag
		if err := rows.Scan(&t.ID, &t.HouseholdID, &t.Name, &t.Type, &t.Color); err != nil {
			return nil, fmt.Errorf("failed to scan tag: %w", err)
		}
		tags = append(tags, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate tags: %w", err)
	}
	return tags, nil
}
