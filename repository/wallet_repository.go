package repository

import (
	"context"
	"fmt"

	"oneaccord/database"
	"oneaccord/models"
	"oneaccord/service"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// WalletRepository implements the service.WalletRepository interface
type WalletRepository struct {
	q queryable
}

// NewWalletRepository creates a new wallet repository
func NewWalletRepository(db *database.DB) *WalletRepository {
	return &WalletRepository{q: db.Pool}
}

// newWalletRepositoryWithTx creates a new wallet repository with a transaction
func newWalletRepositoryWithTx(tx queryable) *WalletRepository {
	return &WalletRepository{q: tx}
}

func scanWallet(row pgx.Row) (*models.Wallet, error) {
	var wallet models.Wallet
	err := row.Scan(
		&wallet.ID,
		&wallet.UserID,
		&wallet.WalletType,
		&wallet.DisplayID,
		&wallet.Balance,
		&wallet.CreatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &wallet, nil
}

// GetByUser retrieves a user's wallet of the given type
func (r *WalletRepository) GetByUser(ctx context.Context, userID uuid.UUID, walletType models.WalletType) (*models.Wallet, error) {
	query := `
		SELECT id, user_id, wallet_type, display_id, balance, created_at
		FROM wallets
		WHERE user_id = $1 AND wallet_type = $2
	`

	wallet, err := scanWallet(r.q.QueryRow(ctx, query, userID, walletType))
	if err != nil {
		return nil, fmt.Errorf("failed to get wallet for user %s: %w", userID, err)
	}
	return wallet, nil
}

// GetByID retrieves a wallet by id
func (r *WalletRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Wallet, error) {
	query := `
		SELECT id, user_id, wallet_type, display_id, balance, created_at
		FROM wallets
		WHERE id = $1
	`

	wallet, err := scanWallet(r.q.QueryRow(ctx, query, id))
	if err != nil {
		return nil, fmt.Errorf("failed to get wallet %s: %w", id, err)
	}
	return wallet, nil
}

// Create creates a new wallet
func (r *WalletRepository) Create(ctx context.Context, wallet *models.Wallet) error {
	query := `
		INSERT INTO wallets (user_id, wallet_type, display_id, balance)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`

	err := r.q.QueryRow(ctx, query,
		wallet.UserID,
		wallet.WalletType,
		wallet.DisplayID,
		wallet.Balance,
	).Scan(&wallet.ID, &wallet.CreatedAt)

	if err != nil {
		return fmt.Errorf("failed to create wallet for user %s: %w", wallet.UserID, err)
	}

	return nil
}

// UpdateBalance overwrites a wallet's balance
func (r *WalletRepository) UpdateBalance(ctx context.Context, id uuid.UUID, newBalance decimal.Decimal) error {
	query := `UPDATE wallets SET balance = $1 WHERE id = $2`

	result, err := r.q.Exec(ctx, query, newBalance, id)
	if err != nil {
		return fmt.Errorf("failed to update balance for wallet %s: %w", id, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("wallet %s: %w", id, service.ErrNotFound)
	}

	return nil
}

// AddBalance credits a wallet atomically
func (r *WalletRepository) AddBalance(ctx context.Context, id uuid.UUID, amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return service.ErrInvalidAmount
	}

	query := `UPDATE wallets SET balance = balance + $1 WHERE id = $2`

	result, err := r.q.Exec(ctx, query, amount, id)
	if err != nil {
		return fmt.Errorf("failed to add balance for wallet %s: %w", id, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("wallet %s: %w", id, service.ErrNotFound)
	}

	return nil
}

// DeductBalance debits a wallet atomically. The WHERE guard makes the
// insufficient-balance check and the debit a single statement, so a
// concurrent debit on the same wallet cannot drive the balance negative.
func (r *WalletRepository) DeductBalance(ctx context.Context, id uuid.UUID, amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return service.ErrInvalidAmount
	}

	query := `
		UPDATE wallets
		SET balance = balance - $1
		WHERE id = $2 AND balance >= $1
	`

	result, err := r.q.Exec(ctx, query, amount, id)
	if err != nil {
		return fmt.Errorf("failed to deduct balance for wallet %s: %w", id, err)
	}

	if result.RowsAffected() == 0 {
		// Distinguish a missing wallet from an insufficient balance
		wallet, err := r.GetByID(ctx, id)
		if err != nil {
			return fmt.Errorf("failed to check wallet: %w", err)
		}
		if wallet == nil {
			return fmt.Errorf("wallet %s: %w", id, service.ErrNotFound)
		}
		return fmt.Errorf("have %s, need %s: %w",
			wallet.Balance.StringFixed(2), amount.StringFixed(2), service.ErrInsufficientBalance)
	}

	return nil
}
