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

// CreateUser persists a new user account.
func (s *SQLiteStore) CreateUser(ctx context.Context, user *models.User) error {
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	if user.CreatedAt == 0 {
		user.CreatedAt = time.Now().Unix()
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO users (id, email, name, color, password_hash, household_id, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		user.ID, user.Email, user.Name, user.Color, user.PasswordHash,
		nullString(user.HouseholdID), user.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert user: %w", err)
	}
	return nil
}

// GetUserByEmail retrieves a user by email address.
func (s *SQLiteStore) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.getUser(ctx, "email", email)
}

// GetUserByID retrieves a user by ID.
func (s *SQLiteStore) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	return s.getUser(ctx, "id", id)
}

func (s *SQLiteStore) getUser(ctx context.Context, column, value string) (*models.User, error) {
	user := &models.User{}
	var household sql.NullString
	err := s.db.QueryRowContext(ctx,
		fmt.Sprintf(`SELECT id, email, name, color, password_hash, household_id, created_at
		 FROM users WHERE %s = ?`, column),
		value,
	).Scan(&user.ID, &user.Email, &user.Name, &user.Color, &user.PasswordHash,
		&household, &user.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("user %s=%s: %w", column, value, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	user.HouseholdID = household.String
	return user, nil
}

// SetUserHousehold moves the user into the given household.
func (s *SQLiteStore) SetUserHousehold(ctx context.Context, userID, householdID string) error {
	res, err := s.db.ExecContext(ctx,
		"UPDATE users SET household_id = ? WHERE id = ?",
		nullString(householdID), userID,
	)
	if err != nil {
		return fmt.Errorf("failed to update user household: %w", err)
	}
	return requireRow(res, "user", userID)
}

// CreateHousehold persists a new household.
func (s *SQLiteStore) CreateHousehold(ctx context.Context, h *models.Household) error {
	if h.ID == "" {
		h.ID = uuid.New().String()
	}
	if h.CreatedAt == 0 {
		h.CreatedAt = time.Now().Unix()
	}

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO households (id, name, created_at) VALUES (?, ?, ?)",
		h.ID, h.Name, h.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert household: %w", err)
	}
	return nil
}

// GetHousehold retrieves a household by ID.
func (s *SQLiteStore) GetHousehold(ctx context.Context, id string) (*models.Household, error) {
	h := &models.Household{}
	err := s.db.QueryRowContext(ctx,
		"SELECT id, name, created_at FROM households WHERE id = ?", id,
	).Scan(&h.ID, &h.Name, &h.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("household %s: %w", id, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get household: %w", err)
	}
	return h, nil
}

// ListHouseholdMembers returns all users in a household, oldest first.
func (s *SQLiteStore) ListHouseholdMembers(ctx context.Context, householdID string) ([]models.User, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, email, name, color, password_hash, household_id, created_at
		 FROM users WHERE household_id = ? ORDER BY created_at`,
		householdID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list household members: %w", err)
	}
	defer rows.Close()

	var members []models.User
	for rows.Next() {
		var u models.User
		var household sql.NullString
		if err := rows.Scan(&u.ID, &u.Email, &u.Name, &u.Color, &u.PasswordHash,
			&household, &u.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan member: %w", err)
		}
		u.HouseholdID = household.String
		members = append(members, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate members: %w", err)
	}
	return members, nil
}

// nullString maps "" to SQL NULL for optional foreign keys.
func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

// requireRow converts a zero-row UPDATE/DELETE into ErrNotFound.
func requireRow(res sql.Result, kind, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%s %s: %w", kind, id, storage.ErrNotFound)
	}
	return nil
}
