package repository

import (
	"context"
	"fmt"
	"strings"

	"oneaccord/database"
	"oneaccord/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// UserRepository implements the service.UserRepository interface
type UserRepository struct {
	q queryable
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *database.DB) *UserRepository {
	return &UserRepository{q: db.Pool}
}

// newUserRepositoryWithTx creates a new user repository with a transaction
func newUserRepositoryWithTx(tx queryable) *UserRepository {
	return &UserRepository{q: tx}
}

const userColumns = `
	id, phone, username, display_name, avatar_url, active_role,
	onboarding_complete, created_at, last_login_at
`

func scanUser(row pgx.Row) (*models.User, error) {
	var user models.User
	err := row.Scan(
		&user.ID,
		&user.Phone,
		&user.Username,
		&user.DisplayName,
		&user.AvatarURL,
		&user.ActiveRole,
		&user.OnboardingComplete,
		&user.CreatedAt,
		&user.LastLoginAt,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetByID retrieves a user by id
func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	user, err := scanUser(r.q.QueryRow(ctx, query, id))
	if err != nil {
		return nil, fmt.Errorf("failed to get user %s: %w", id, err)
	}
	return user, nil
}

// GetByUsername retrieves a user by username, case-insensitive
func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE LOWER(username) = LOWER($1)`

	user, err := scanUser(r.q.QueryRow(ctx, query, username))
	if err != nil {
		return nil, fmt.Errorf("failed to get user by username %q: %w", username, err)
	}
	return user, nil
}

// Search returns users whose username or display name contains the query,
// excluding one id, limited
func (r *UserRepository) Search(ctx context.Context, query string, excludeID uuid.UUID, limit int) ([]*models.User, error) {
	sql := `
		SELECT ` + userColumns + `
		FROM users
		WHERE (username ILIKE $1 OR display_name ILIKE $1)
		  AND id != $2
		ORDER BY username
		LIMIT $3
	`

	pattern := "%" + strings.TrimSpace(query) + "%"
	rows, err := r.q.Query(ctx, sql, pattern, excludeID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to search users: %w", err)
	}
	defer rows.Close()

	var users []*models.User
	for rows.Next() {
		var user models.User
		err := rows.Scan(
			&user.ID,
			&user.Phone,
			&user.Username,
			&user.DisplayName,
			&user.AvatarURL,
			&user.ActiveRole,
			&user.OnboardingComplete,
			&user.CreatedAt,
			&user.LastLoginAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, &user)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate users: %w", err)
	}

	return users, nil
}

// Create creates a new user
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (phone, username, display_name, avatar_url, active_role)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, onboarding_complete, created_at
	`

	err := r.q.QueryRow(ctx, query,
		user.Phone,
		user.Username,
		user.DisplayName,
		user.AvatarURL,
		user.ActiveRole,
	).Scan(&user.ID, &user.OnboardingComplete, &user.CreatedAt)

	if err != nil {
		return fmt.Errorf("failed to create user %q: %w", user.Username, err)
	}

	return nil
}

// UpdateProfile updates display name, avatar and active role
func (r *UserRepository) UpdateProfile(ctx context.Context, user *models.User) error {
	query := `
		UPDATE users
		SET display_name = $1, avatar_url = $2, active_role = $3
		WHERE id = $4
	`

	result, err := r.q.Exec(ctx, query, user.DisplayName, user.AvatarURL, user.ActiveRole, user.ID)
	if err != nil {
		return fmt.Errorf("failed to update profile for user %s: %w", user.ID, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("user %s not found", user.ID)
	}

	return nil
}

// SetOnboardingComplete marks the user's onboarding walkthrough done
func (r *UserRepository) SetOnboardingComplete(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE users SET onboarding_complete = TRUE WHERE id = $1`

	result, err := r.q.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to set onboarding complete for user %s: %w", id, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("user %s not found", id)
	}

	return nil
}

// TouchLastLogin stamps the user's last login time
func (r *UserRepository) TouchLastLogin(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE users SET last_login_at = NOW() WHERE id = $1`

	result, err := r.q.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to touch last login for user %s: %w", id, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("user %s not found", id)
	}

	return nil
}
