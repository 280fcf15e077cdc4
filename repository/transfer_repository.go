package repository

import (
	"context"
	"fmt"

	"oneaccord/database"
	"oneaccord/models"
	"oneaccord/service"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// TransferRepository implements the service.TransferRepository interface
type TransferRepository struct {
	q queryable
}

// NewTransferRepository creates a new transfer repository
func NewTransferRepository(db *database.DB) *TransferRepository {
	return &TransferRepository{q: db.Pool}
}

// newTransferRepositoryWithTx creates a new transfer repository with a transaction
func newTransferRepositoryWithTx(tx queryable) *TransferRepository {
	return &TransferRepository{q: tx}
}

// joinedTransferColumns selects a transfer plus both endpoint profiles via
// LEFT JOINs; external deposits/withdrawals have one side NULL
const joinedTransferColumns = `
	t.id, t.from_user_id, t.to_user_id, t.amount, t.purpose, t.status,
	t.created_at, t.responded_at,
	fu.id, fu.username, fu.display_name, fu.avatar_url, fu.active_role,
	tu.id, tu.username, tu.display_name, tu.avatar_url, tu.active_role
`

const joinedTransferFrom = `
	FROM transfers t
	LEFT JOIN users fu ON fu.id = t.from_user_id
	LEFT JOIN users tu ON tu.id = t.to_user_id
`

func scanJoinedTransfer(row pgx.Row) (*models.Transfer, error) {
	var t models.Transfer
	var fromID, toID *uuid.UUID
	var fromUsername, fromDisplayName, fromAvatar, fromRole *string
	var toUsername, toDisplayName, toAvatar, toRole *string

	err := row.Scan(
		&t.ID,
		&t.FromUserID,
		&t.ToUserID,
		&t.Amount,
		&t.Purpose,
		&t.Status,
		&t.CreatedAt,
		&t.RespondedAt,
		&fromID, &fromUsername, &fromDisplayName, &fromAvatar, &fromRole,
		&toID, &toUsername, &toDisplayName, &toAvatar, &toRole,
	)
	if err != nil {
		return nil, err
	}

	if fromID != nil {
		t.From = &models.UserProfile{
			ID:          *fromID,
			Username:    *fromUsername,
			DisplayName: *fromDisplayName,
			AvatarURL:   *fromAvatar,
			ActiveRole:  models.UserRole(*fromRole),
		}
	}
	if toID != nil {
		t.To = &models.UserProfile{
			ID:          *toID,
			Username:    *toUsername,
			DisplayName: *toDisplayName,
			AvatarURL:   *toAvatar,
			ActiveRole:  models.UserRole(*toRole),
		}
	}

	return &t, nil
}

func (r *TransferRepository) queryJoinedTransfers(ctx context.Context, sql string, args ...any) ([]*models.Transfer, error) {
	rows, err := r.q.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var transfers []*models.Transfer
	for rows.Next() {
		transfer, err := scanJoinedTransfer(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transfer: %w", err)
		}
		transfers = append(transfers, transfer)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate transfers: %w", err)
	}

	return transfers, nil
}

// Create inserts a new transfer row
func (r *TransferRepository) Create(ctx context.Context, transfer *models.Transfer) error {
	query := `
		INSERT INTO transfers (from_user_id, to_user_id, amount, purpose, status, responded_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`

	err := r.q.QueryRow(ctx, query,
		transfer.FromUserID,
		transfer.ToUserID,
		transfer.Amount,
		transfer.Purpose,
		transfer.Status,
		transfer.RespondedAt,
	).Scan(&transfer.ID, &transfer.CreatedAt)

	if err != nil {
		return fmt.Errorf("failed to create transfer: %w", err)
	}

	return nil
}

// GetByID retrieves a transfer by id
func (r *TransferRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Transfer, error) {
	query := `SELECT ` + joinedTransferColumns + joinedTransferFrom + ` WHERE t.id = $1`

	transfer, err := scanJoinedTransfer(r.q.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get transfer %s: %w", id, err)
	}

	return transfer, nil
}

// MarkResolved moves a transfer to a terminal status. The status guard in
// the WHERE clause makes resolution single-shot: a second accept or
// decline on the same id matches no rows.
func (r *TransferRepository) MarkResolved(ctx context.Context, id uuid.UUID, status models.TransferStatus) (*models.Transfer, error) {
	query := `
		UPDATE transfers
		SET status = $2, responded_at = NOW()
		WHERE id = $1 AND status IN ('pending', 'requested')
		RETURNING id, from_user_id, to_user_id, amount, purpose, status, created_at, responded_at
	`

	var t models.Transfer
	err := r.q.QueryRow(ctx, query, id, status).Scan(
		&t.ID,
		&t.FromUserID,
		&t.ToUserID,
		&t.Amount,
		&t.Purpose,
		&t.Status,
		&t.CreatedAt,
		&t.RespondedAt,
	)

	if err == pgx.ErrNoRows {
		// Distinguish a missing transfer from one already resolved
		existing, getErr := r.GetByID(ctx, id)
		if getErr != nil {
			return nil, fmt.Errorf("failed to check transfer: %w", getErr)
		}
		if existing == nil {
			return nil, fmt.Errorf("transfer %s: %w", id, service.ErrNotFound)
		}
		return nil, fmt.Errorf("transfer %s is %s: %w", id, existing.Status, service.ErrInvalidTransferState)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to resolve transfer %s: %w", id, err)
	}

	return &t, nil
}

// GetPendingForUser returns unresponded incoming transfers, newest first,
// with sender profiles joined
func (r *TransferRepository) GetPendingForUser(ctx context.Context, userID uuid.UUID) ([]*models.Transfer, error) {
	query := `SELECT ` + joinedTransferColumns + joinedTransferFrom + `
		WHERE t.to_user_id = $1 AND t.status IN ('pending', 'requested')
		ORDER BY t.created_at DESC
	`

	transfers, err := r.queryJoinedTransfers(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get pending transfers for user %s: %w", userID, err)
	}
	return transfers, nil
}

// GetByUser returns transfers where the user is either endpoint, newest
// first, limited, with both endpoint profiles joined
func (r *TransferRepository) GetByUser(ctx context.Context, userID uuid.UUID, limit int) ([]*models.Transfer, error) {
	query := `SELECT ` + joinedTransferColumns + joinedTransferFrom + `
		WHERE t.from_user_id = $1 OR t.to_user_id = $1
		ORDER BY t.created_at DESC
		LIMIT $2
	`

	transfers, err := r.queryJoinedTransfers(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get transfers for user %s: %w", userID, err)
	}
	return transfers, nil
}

// GetBetweenUsers returns transfers between exactly two users, oldest
// first (chat order), limited, with both endpoint profiles joined
func (r *TransferRepository) GetBetweenUsers(ctx context.Context, userA, userB uuid.UUID, limit int) ([]*models.Transfer, error) {
	query := `SELECT ` + joinedTransferColumns + joinedTransferFrom + `
		WHERE (t.from_user_id = $1 AND t.to_user_id = $2)
		   OR (t.from_user_id = $2 AND t.to_user_id = $1)
		ORDER BY t.created_at ASC
		LIMIT $3
	`

	transfers, err := r.queryJoinedTransfers(ctx, query, userA, userB, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get transfers between %s and %s: %w", userA, userB, err)
	}
	return transfers, nil
}
