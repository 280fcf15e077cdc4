package repository

import (
	"context"
	"fmt"

	"oneaccord/database"
	"oneaccord/models"
	"oneaccord/service"

	"github.com/google/uuid"
)

// KeyRepository implements the service.KeyRepository interface
type KeyRepository struct {
	q queryable
}

// NewKeyRepository creates a new key repository
func NewKeyRepository(db *database.DB) *KeyRepository {
	return &KeyRepository{q: db.Pool}
}

// newKeyRepositoryWithTx creates a new key repository with a transaction
func newKeyRepositoryWithTx(tx queryable) *KeyRepository {
	return &KeyRepository{q: tx}
}

// GetByUser returns all keys held by a user
func (r *KeyRepository) GetByUser(ctx context.Context, userID uuid.UUID) ([]*models.Key, error) {
	query := `
		SELECT id, user_id, key_type, display_id, status, created_at
		FROM keys
		WHERE user_id = $1
		ORDER BY created_at
	`

	rows, err := r.q.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get keys for user %s: %w", userID, err)
	}
	defer rows.Close()

	var keys []*models.Key
	for rows.Next() {
		var key models.Key
		err := rows.Scan(
			&key.ID,
			&key.UserID,
			&key.KeyType,
			&key.DisplayID,
			&key.Status,
			&key.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan key: %w", err)
		}
		keys = append(keys, &key)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate keys: %w", err)
	}

	return keys, nil
}

// Create issues a new key
func (r *KeyRepository) Create(ctx context.Context, key *models.Key) error {
	query := `
		INSERT INTO keys (user_id, key_type, display_id, status)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`

	err := r.q.QueryRow(ctx, query,
		key.UserID,
		key.KeyType,
		key.DisplayID,
		key.Status,
	).Scan(&key.ID, &key.CreatedAt)

	if err != nil {
		return fmt.Errorf("failed to create key for user %s: %w", key.UserID, err)
	}

	return nil
}

// SetStatus activates or deactivates a key
func (r *KeyRepository) SetStatus(ctx context.Context, id uuid.UUID, status models.KeyStatus) error {
	query := `UPDATE keys SET status = $1 WHERE id = $2`

	result, err := r.q.Exec(ctx, query, status, id)
	if err != nil {
		return fmt.Errorf("failed to set status for key %s: %w", id, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("key %s: %w", id, service.ErrNotFound)
	}

	return nil
}
