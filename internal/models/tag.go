package models

// TagType is the two-valued kind of a tag.
type TagType string

const (
	// TagSpecific is a general category tag (e.g. "pasta", "quick").
	TagSpecific TagType = "specific"

	// TagGlobal is a macro/nutrient category tag (e.g. "protein", "carbs").
	TagGlobal TagType = "global"
)

// ValidTagType reports whether t is one of the known tag kinds.
func ValidTagType(t TagType) bool {
	return t == TagSpecific || t == TagGlobal
}

// Tag is a household-scoped label attached to foods.
type Tag struct {
	// ID is the unique identifier for the tag (UUID format).
	ID string

	// HouseholdID is the household that owns this tag.
	HouseholdID string

	// Name is the display name of the tag.
	Name string

	// Type is the tag kind.
	Type TagType

	// Color is an optional display color.
	Color string
}

// TagDraft describes a tag that does not exist yet and must be inserted
// as part of a food write.
type TagDraft struct {
	Name string
	Type TagType
}

// TagRef identifies a tag in a food create/update request: either an
// existing row by ID, or a draft to insert. Exactly one side is set,
// making "is this a stored row" a type-level fact rather than an ID
// format heuristic.
type TagRef struct {
	// ID of a persisted tag. Empty when Pending is set.
	ID string

	// Pending describes a tag to create. Nil when ID is set.
	Pending *TagDraft
}

// Persisted reports whether the ref points at an existing tag row.
func (r TagRef) Persisted() bool {
	return r.ID != "" && r.Pending == nil
}
