// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"forkcast/internal/models"
)

// ErrNotFound is returned when an operation targets a row that does not
// exist. Implementations wrap it so callers can match with errors.Is.
var ErrNotFound = errors.New("not found")

// FoodWrite bundles the food row with the tag refs and ingredient lines of
// a create or update request. Tags and ingredients always travel with the
// food so the store can write all three in one transaction.
type FoodWrite struct {
	Food        models.Food
	Tags        []models.TagRef
	Ingredients []models.Ingredient
}

// Store defines the interface for Forkcast's persistence operations.
// This abstraction allows swapping storage backends (SQLite, PostgreSQL,
// etc.) without changing the planner or API layers.
//
// All list operations are household-scoped: they filter by an equality
// predicate on the household column. Create operations populate generated
// IDs and timestamps on the passed model.
type Store interface {
	// Users.
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id string) (*models.User, error)
	// SetUserHousehold moves the user into the given household.
	SetUserHousehold(ctx context.Context, userID, householdID string) error

	// Households.
	CreateHousehold(ctx context.Context, h *models.Household) error
	GetHousehold(ctx context.Context, id string) (*models.Household, error)
	ListHouseholdMembers(ctx context.Context, householdID string) ([]models.User, error)

	// Foods. CreateFood persists the food, resolves tag refs (inserting
	// pending tags) and writes ingredient lines in one transaction.
	// ReplaceFoodDetails updates the food row and rewrites its tag links
	// and ingredient lines, also in one transaction. DeleteFood removes
	// the food; calendar entries referencing it keep their identity and
	// lose only the reference.
	CreateFood(ctx context.Context, w *FoodWrite) error
	ReplaceFoodDetails(ctx context.Context, w *FoodWrite) error
	DeleteFood(ctx context.Context, id string) error
	UpdateFoodImage(ctx context.Context, id, url string) error
	GetFood(ctx context.Context, id string) (*models.FoodDetails, error)
	ListFoods(ctx context.Context, householdID string) ([]models.FoodDetails, error)

	// Tags.
	CreateTag(ctx context.Context, tag *models.Tag) error
	ListTags(ctx context.Context, householdID string) ([]models.Tag, error)

	// Meal slots. DeleteSlot cascades to the slot's calendar entries.
	CreateSlot(ctx context.Context, slot *models.MealSlot) error
	DeleteSlot(ctx context.Context, id string) error
	ListSlots(ctx context.Context, householdID string) ([]models.MealSlot, error)

	// Calendar entries. UpdateEntryPlacement changes only date and slot;
	// identity, food reference and creator are preserved.
	CreateEntry(ctx context.Context, entry *models.Entry) error
	UpdateEntryPlacement(ctx context.Context, entryID string, date models.Date, slotID string) error
	DeleteEntry(ctx context.Context, id string) error
	GetEntry(ctx context.Context, id string) (*models.Entry, error)
	ListEntries(ctx context.Context, householdID string) ([]models.Entry, error)

	// Favorites.
	CreateFavorite(ctx context.Context, fav *models.Favorite) error
	DeleteFavorite(ctx context.Context, id string) error

	// Close releases any resources held by the store.
	Close() error
}
