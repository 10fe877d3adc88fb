package models

import (
	"time"

	"github.com/google/uuid"
)

// defaultUserColor is assigned at registration; users can pick their own
// accent color later so the calendar shows who planned which meal.
const defaultUserColor = "#60a5fa"

// User represents a registered household member.
type User struct {
	// ID is the unique identifier for the user (UUID format).
	ID string

	// Email is the user's email address (unique). Used for login.
	Email string

	// Name is the display name shown on calendar entries.
	Name string

	// Color is the accent color used to mark this user's entries.
	Color string

	// PasswordHash is the bcrypt hash of the user's password.
	// Never serialized to API responses.
	PasswordHash string

	// HouseholdID is the household this user belongs to.
	// Empty until the user creates or joins a household.
	HouseholdID string

	// CreatedAt is the Unix timestamp when the account was created.
	CreatedAt int64
}

// NewUser creates a user with a generated ID and default color.
func NewUser(email, name, passwordHash string) *User {
	return &User{
		ID:           uuid.New().String(),
		Email:        email,
		Name:         name,
		Color:        defaultUserColor,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now().Unix(),
	}
}

// Household is the tenant boundary: the set of users who share one recipe
// library, one slot layout and one calendar. In practice it holds two
// members, but nothing below enforces that.
type Household struct {
	// ID is the unique identifier for the household (UUID format).
	ID string

	// Name is the display name (e.g. "Chez Nous").
	Name string

	// CreatedAt is the Unix timestamp when the household was created.
	CreatedAt int64
}
