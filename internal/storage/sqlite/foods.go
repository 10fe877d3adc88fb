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

// CreateFood persists a food together with its tag links and ingredient
// lines in a single transaction.
func (s *SQLiteStore) CreateFood(ctx context.Context, w *storage.FoodWrite) error {
	food := &w.Food
	if food.ID == "" {
		food.ID = uuid.New().String()
	}
	now := time.Now().Unix()
	if food.CreatedAt == 0 {
		food.CreatedAt = now
	}
	food.UpdatedAt = now

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO foods (id, household_id, name, recipe_markdown, image_url, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		food.ID, food.HouseholdID, food.Name, food.RecipeMarkdown, food.ImageURL,
		food.CreatedAt, food.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert food: %w", err)
	}

	if err := s.writeFoodDetails(ctx, tx, w); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// ReplaceFoodDetails updates the food row and rewrites its tag links and
// ingredient lines. The delete-and-reinsert of links happens inside one
// transaction, so a crash can never leave a food with half its tags.
func (s *SQLiteStore) ReplaceFoodDetails(ctx context.Context, w *storage.FoodWrite) error {
	food := &w.Food
	food.UpdatedAt = time.Now().Unix()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		"UPDATE foods SET name = ?, recipe_markdown = ?, updated_at = ? WHERE id = ?",
		food.Name, food.RecipeMarkdown, food.UpdatedAt, food.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update food: %w", err)
	}
	if err := requireRow(res, "food", food.ID); err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM food_tags WHERE food_id = ?", food.ID); err != nil {
		return fmt.Errorf("failed to clear food tags: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM food_ingredients WHERE food_id = ?", food.ID); err != nil {
		return fmt.Errorf("failed to clear food ingredients: %w", err)
	}

	if err := s.writeFoodDetails(ctx, tx, w); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// writeFoodDetails inserts tag links (creating pending tags first) and
// ingredient lines for w.Food within tx.
func (s *SQLiteStore) writeFoodDetails(ctx context.Context, tx *sql.Tx, w *storage.FoodWrite) error {
	food := &w.Food

	for _, ref := range w.Tags {
		tagID := ref.ID
		if ref.Pending != nil {
			tagID = uuid.New().String()
			_, err := tx.ExecContext(ctx,
				"INSERT INTO tags (id, household_id, name, type, color) VALUES (?, ?, ?, ?, '')",
				tagID, food.HouseholdID, ref.Pending.Name, string(ref.Pending.Type),
			)
			if err != nil {
				return fmt.Errorf("failed to insert tag: %w", err)
			}
		} else {
			// Reject links to another household's tags.
			var owner string
			err := tx.QueryRowContext(ctx,
				"SELECT household_id FROM tags WHERE id = ?", tagID,
			).Scan(&owner)
			if err == sql.ErrNoRows {
				return fmt.Errorf("tag %s: %w", tagID, storage.ErrNotFound)
			}
			if err != nil {
				return fmt.Errorf("failed to check tag: %w", err)
			}
			if owner != food.HouseholdID {
				return fmt.Errorf("tag %s belongs to another household", tagID)
			}
		}

		_, err := tx.ExecContext(ctx,
			"INSERT INTO food_tags (food_id, tag_id) VALUES (?, ?)",
			food.ID, tagID,
		)
		if err != nil {
			return fmt.Errorf("failed to link tag: %w", err)
		}
	}

	for i := range w.Ingredients {
		ing := &w.Ingredients[i]
		if ing.ID == "" {
			ing.ID = uuid.New().String()
		}
		ing.FoodID = food.ID
		_, err := tx.ExecContext(ctx,
			"INSERT INTO food_ingredients (id, food_id, name, quantity, unit) VALUES (?, ?, ?, ?, ?)",
			ing.ID, ing.FoodID, ing.Name, ing.Quantity, string(ing.Unit),
		)
		if err != nil {
			return fmt.Errorf("failed to insert ingredient: %w", err)
		}
	}

	return nil
}

// DeleteFood removes a food. Calendar entries referencing it keep their
// identity and lose only the food reference (FK SET NULL).
func (s *SQLiteStore) DeleteFood(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM foods WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete food: %w", err)
	}
	return requireRow(res, "food", id)
}

// UpdateFoodImage sets the food's photo URL.
func (s *SQLiteStore) UpdateFoodImage(ctx context.Context, id, url string) error {
	res, err := s.db.ExecContext(ctx,
		"UPDATE foods SET image_url = ?, updated_at = ? WHERE id = ?",
		url, time.Now().Unix(), id,
	)
	if err != nil {
		return fmt.Errorf("failed to update food image: %w", err)
	}
	return requireRow(res, "food", id)
}

// GetFood retrieves one food with tags, ingredients and favorites.
func (s *SQLiteStore) GetFood(ctx context.Context, id string) (*models.FoodDetails, error) {
	food := &models.FoodDetails{}
	err := s.db.QueryRowContext(ctx,
		`SELECT id, household_id, name, recipe_markdown, image_url, created_at, updated_at
		 FROM foods WHERE id = ?`, id,
	).Scan(&food.ID, &food.HouseholdID, &food.Name, &food.RecipeMarkdown,
		&food.ImageURL, &food.CreatedAt, &food.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("food %s: %w", id, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get food: %w", err)
	}

	if err := s.hydrateFood(ctx, food); err != nil {
		return nil, err
	}
	return food, nil
}

// ListFoods returns the household's foods, newest first, each hydrated
// with tags, ingredients and favorites.
func (s *SQLiteStore) ListFoods(ctx context.Context, householdID string) ([]models.FoodDetails, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, household_id, name, recipe_markdown, image_url, created_at, updated_at
		 FROM foods WHERE household_id = ? ORDER BY created_at DESC, id`,
		householdID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list foods: %w", err)
	}
	defer rows.Close()

	var foods []models.FoodDetails
	for rows.Next() {
		var f models.FoodDetails
		if err := rows.Scan(&f.ID, &f.HouseholdID, &f.Name, &f.RecipeMarkdown,
			&f.ImageURL, &f.CreatedAt, &f.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan food: %w", err)
		}
		foods = append(foods, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate foods: %w", err)
	}

	for i := range foods {
		if err := s.hydrateFood(ctx, &foods[i]); err != nil {
			return nil, err
		}
	}
	return foods, nil
}

// hydrateFood attaches tags, ingredient lines and favorites to food.
func (s *SQLiteStore) hydrateFood(ctx context.Context, food *models.FoodDetails) error {
	tagRows, err := s.db.QueryContext(ctx,
		`SELECT t.id, t.household_id, t.name, t.type, t.color
		 FROM tags t JOIN food_tags ft ON ft.tag_id = t.id
		 WHERE ft.food_id = ? ORDER BY t.name`,
		food.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to get food tags: %w", err)
	}
	defer tagRows.Close()
	for tagRows.Next() {
		var t models.Tag
		if err := tagRows.Scan(&t.ID, &t.HouseholdID, &t.Name, &t.Type, &t.Color); err != nil {
			return fmt.Errorf("failed to scan tag: %w", err)
		}
		food.Tags = append(food.Tags, t)
	}
	if err := tagRows.Err(); err != nil {
		return fmt.Errorf("failed to iterate tags: %w", err)
	}

	ingRows, err := s.db.QueryContext(ctx,
		`SELECT id, food_id, name, quantity, unit FROM food_ingredients
		 WHERE food_id = ? ORDER BY rowid`,
		food.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to get ingredients: %w", err)
	}
	defer ingRows.Close()
	for ingRows.Next() {
		var ing models.Ingredient
		if err := ingRows.Scan(&ing.ID, &ing.FoodID, &ing.Name, &ing.Quantity, &ing.Unit); err != nil {
			return fmt.Errorf("failed to scan ingredient: %w", err)
		}
		food.Ingredients = append(food.Ingredients, ing)
	}
	if err := ingRows.Err(); err != nil {
		return fmt.Errorf("failed to iterate ingredients: %w", err)
	}

	favRows, err := s.db.QueryContext(ctx,
		"SELECT id, user_id, food_id, created_at FROM favorites WHERE food_id = ?",
		food.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to get favorites: %w", err)
	}
	defer favRows.Close()
	for favRows.Next() {
		var fav models.Favorite
		if err := favRows.Scan(&fav.ID, &fav.UserID, &fav.FoodID, &fav.CreatedAt); err != nil {
			return fmt.Errorf("failed to scan favorite: %w", err)
		}
		food.Favorites = append(food.Favorites, fav)
	}
	if err := favRows.Err(); err != nil {
		return fmt.Errorf("failed to iterate favorites: %w", err)
	}

	return nil
}
