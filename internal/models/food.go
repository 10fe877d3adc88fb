package models

// Food represents a dish in the household's recipe library.
type Food struct {
	// ID is the unique identifier for the food (UUID format).
	ID string

	// HouseholdID is the household that owns this food.
	HouseholdID string

	// Name is the display name of the dish.
	Name string

	// RecipeMarkdown is optional free-text cooking instructions.
	RecipeMarkdown string

	// ImageURL is an optional photo, uploaded separately.
	ImageURL string

	// CreatedAt and UpdatedAt are Unix timestamps.
	CreatedAt int64
	UpdatedAt int64
}

// Ingredient is one line of a food's ingredient list.
type Ingredient struct {
	// ID is the unique identifier for the ingredient row (UUID format).
	ID string

	// FoodID is the food this line belongs to.
	FoodID string

	// Name is the ingredient name as the user typed it.
	Name string

	// Quantity is the amount in Unit. The planner does not validate sign
	// here; that is a recipe-editing concern.
	Quantity float64

	// Unit is the measurement unit for Quantity.
	Unit Unit
}

// FoodDetails is a food hydrated with its tags, ingredient lines and
// favorites, as assembled by a snapshot refresh.
type FoodDetails struct {
	Food
	Tags        []Tag
	Ingredients []Ingredient
	Favorites   []Favorite
}

// FavoritedBy reports whether userID has favorited this food.
func (f *FoodDetails) FavoritedBy(userID string) bool {
	for _, fav := range f.Favorites {
		if fav.UserID == userID {
			return true
		}
	}
	return false
}

// MutualFavorite reports whether every given member has favorited this
// food. Derived, never stored.
func (f *FoodDetails) MutualFavorite(memberIDs []string) bool {
	if len(memberIDs) == 0 {
		return false
	}
	for _, id := range memberIDs {
		if !f.FavoritedBy(id) {
			return false
		}
	}
	return true
}

// Favorite marks a (user, food) pair as liked. Each household member
// favorites independently.
type Favorite struct {
	// ID is the unique identifier for the favorite (UUID format).
	ID string

	// UserID is the user who marked the food.
	UserID string

	// FoodID is the food that was marked.
	FoodID string

	// CreatedAt is the Unix timestamp when the favorite was added.
	CreatedAt int64
}
