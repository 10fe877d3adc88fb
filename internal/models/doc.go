// Package models defines the core domain models for Forkcast.
//
// # Tenancy
//
// The household is the sharing boundary: every food, tag, meal slot and
// calendar entry is scoped to exactly one household, and every member of a
// household sees the same library and calendar. Users hold an optional
// HouseholdID; a user without one has registered but not yet created or
// joined a household.
//
// # Relationships
//
// Models reference each other by ID strings rather than pointers to avoid
// circular references. The hydrated view types (FoodDetails, EntryWithFood)
// are assembled by the planner from a freshly fetched snapshot and carry
// the joined rows the UI needs.
//
// # Calendar dates
//
// Calendar entries carry a Date, an ISO "YYYY-MM-DD" value. ISO dates
// compare chronologically as plain strings, which the shopping aggregator
// and the copy-week logic rely on.
package models
