package models

// MealSlot is a named calendar row category (e.g. "Breakfast"), scoped to
// a household. Slots order the calendar vertically and can be hidden
// without being deleted.
type MealSlot struct {
	// ID is the unique identifier for the slot (UUID format).
	ID string

	// HouseholdID is the household that owns this slot.
	HouseholdID string

	// Name is the display name of the slot.
	Name string

	// SortOrder is the integer display-order key. Ordering across the
	// household's slots is total; ties keep the store's stable order.
	SortOrder int

	// IsVisible toggles the slot row in the calendar view.
	IsVisible bool

	// CreatedAt is the Unix timestamp when the slot was created.
	CreatedAt int64
}
