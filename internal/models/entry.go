package models

// Entry is one scheduled meal: the assignment of a food (or none) to a
// (date, slot) cell of the household calendar.
//
// Lifecycle: absent -> placed -> placed (relocated, same identity) ->
// absent (removed). Relocation changes only Date and MealSlotID; the ID,
// food reference and creator never change after placement.
type Entry struct {
	// ID is the unique identifier for the entry (UUID format).
	ID string

	// HouseholdID is the household whose calendar this entry is on.
	HouseholdID string

	// FoodID is the scheduled food. Empty means no recipe backs this
	// entry: either it was placed as leftovers, or its food was deleted
	// after scheduling. The entry itself survives recipe deletion.
	FoodID string

	// MealSlotID is the slot row the entry sits in. Always set.
	MealSlotID string

	// Date is the calendar day the entry is scheduled on.
	Date Date

	// IsLeftover marks an entry placed as leftovers rather than a cook.
	IsLeftover bool

	// CreatedBy is the user who placed the entry. Preserved across
	// relocation.
	CreatedBy string

	// CreatedAt is the Unix timestamp when the entry was placed.
	CreatedAt int64
}

// EntryWithFood is an entry hydrated with its food and slot rows. Food is
// nil for leftover entries and for entries whose food was deleted; Slot is
// nil only transiently, when the slot vanished between fetches.
type EntryWithFood struct {
	Entry
	Food *FoodDetails
	Slot *MealSlot
}
