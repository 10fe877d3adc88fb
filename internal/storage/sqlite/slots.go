package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"forkcast/internal/models"
)

// CreateSlot persists a new meal slot.
func (s *SQLiteStore) CreateSlot(ctx context.Context, slot *models.MealSlot) error {
	if slot.ID == "" {
		slot.ID = uuid.New().String()
	}
	if slot.CreatedAt == 0 {
		slot.CreatedAt = time.Now().Unix()
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO meal_slots (id, household_id, name, sort_order, is_visible, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		slot.ID, slot.HouseholdID, slot.Name, slot.SortOrder, slot.IsVisible, slot.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert meal slot: %w", err)
	}
	return nil
}

// DeleteSlot removes a meal slot. Its calendar entries go with it
// (FK CASCADE).
func (s *SQLiteStore) DeleteSlot(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM meal_slots WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete meal slot: %w", err)
	}
	return requireRow(res, "meal slot", id)
}

// ListSlots returns the household's slots in display order. Rows with the
// same sort_order keep a stable order by id.
func (s *SQLiteStore) ListSlots(ctx context.Context, householdID string) ([]models.MealSlot, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, household_id, name, sort_order, is_visible, created_at
		 FROM meal_slots WHERE household_id = ? ORDER BY sort_order, id`,
		householdID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list meal slots: %w", err)
	}
	defer rows.Close()

	var slots []models.MealSlot
	for rows.Next() {
		var slot models.MealSlot
		if err := rows.Scan(&slot.ID, &slot.HouseholdID, &slot.Name, &slot.SortOrder,
			&slot.IsVisible, &slot.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan meal slot: %w", err)
		}
		slots = append(slots, slot)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate meal slots: %w", err)
	}
	return slots, nil
}
