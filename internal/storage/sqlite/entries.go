package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"forkcast/internal/models"
	"forkcast/internal/storage"
)

// CreateEntry persists a new calendar entry. The slot must belong to the
// same household as the entry; a cross-household slot is rejected before
// the insert.
func (s *SQLiteStore) CreateEntry(ctx context.Context, entry *models.Entry) error {
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	if entry.CreatedAt == 0 {
		entry.CreatedAt = time.Now().Unix()
	}

	var slotHousehold string
	err := s.db.QueryRowContext(ctx,
		"SELECT household_id FROM meal_slots WHERE id = ?", entry.MealSlotID,
	).Scan(&slotHousehold)
	if err == sql.ErrNoRows {
		return fmt.Errorf("meal slot %s: %w", entry.MealSlotID, storage.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("failed to check meal slot: %w", err)
	}
	if slotHousehold != entry.HouseholdID {
		return fmt.Errorf("meal slot %s belongs to another household", entry.MealSlotID)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO calendar_entries (id, household_id, food_id, meal_slot_id, date, is_leftover, created_by, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		entry.ID, entry.HouseholdID, nullString(entry.FoodID), entry.MealSlotID,
		string(entry.Date), entry.IsLeftover, entry.CreatedBy, entry.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert entry: %w", err)
	}
	return nil
}

// UpdateEntryPlacement moves an entry to a new (date, slot) cell. Nothing
// else on the row changes.
func (s *SQLiteStore) UpdateEntryPlacement(ctx context.Context, entryID string, date models.Date, slotID string) error {
	res, err := s.db.ExecContext(ctx,
		"UPDATE calendar_entries SET date = ?, meal_slot_id = ? WHERE id = ?",
		string(date), slotID, entryID,
	)
	if err != nil {
		return fmt.Errorf("failed to update entry placement: %w", err)
	}
	return requireRow(res, "entry", entryID)
}

// DeleteEntry removes a calendar entry. The referenced food, if any, is
// untouched.
func (s *SQLiteStore) DeleteEntry(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM calendar_entries WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete entry: %w", err)
	}
	return requireRow(res, "entry", id)
}

// GetEntry retrieves a calendar entry by ID.
func (s *SQLiteStore) GetEntry(ctx context.Context, id string) (*models.Entry, error) {
	entry := &models.Entry{}
	var foodID sql.NullString
	var date string
	err := s.db.QueryRowContext(ctx,
		`SELECT id, household_id, food_id, meal_slot_id, date, is_leftover, created_by, created_at
		 FROM calendar_entries WHERE id = ?`, id,
	).Scan(&entry.ID, &entry.HouseholdID, &foodID, &entry.MealSlotID, &date,
		&entry.IsLeftover, &entry.CreatedBy, &entry.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("entry %s: %w", id, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get entry: %w", err)
	}
	entry.FoodID = foodID.String
	entry.Date = models.Date(date)
	return entry, nil
}

// ListEntries returns every calendar entry in the household.
func (s *SQLiteStore) ListEntries(ctx context.Context, householdID string) ([]models.Entry, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, household_id, food_id, meal_slot_id, date, is_leftover, created_by, created_at
		 FROM calendar_entries WHERE household_id = ? ORDER BY date, created_at`,
		householdID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list entries: %w", err)
	}
	defer rows.Close()

	var entries []models.Entry
	for rows.Next() {
		var e models.Entry
		var foodID sql.NullString
		var date string
		if err := rows.Scan(&e.ID, &e.HouseholdID, &foodID, &e.MealSlotID, &date,
			&e.IsLeftover, &e.CreatedBy, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan entry: %w", err)
		}
		e.FoodID = foodID.String
		e.Date = models.Date(date)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate entries: %w", err)
	}
	return entries, nil
}

// CreateFavorite persists a (user, food) favorite.
func (s *SQLiteStore) CreateFavorite(ctx context.Context, fav *models.Favorite) error {
	if fav.ID == "" {
		fav.ID = uuid.New().String()
	}
	if fav.CreatedAt == 0 {
		fav.CreatedAt = time.Now().Unix()
	}

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO favorites (id, user_id, food_id, created_at) VALUES (?, ?, ?, ?)",
		fav.ID, fav.UserID, fav.FoodID, fav.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert favorite: %w", err)
	}
	return nil
}

// DeleteFavorite removes a favorite by ID.
func (s *SQLiteStore) DeleteFavorite(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM favorites WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete favorite: %w", err)
	}
	return requireRow(res, "favorite", id)
}
