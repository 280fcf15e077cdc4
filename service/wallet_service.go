package service

import (
	"context"
	"encoding/hex"
	"fmt"
	"strings"

	"oneaccord/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// walletDisplayIDLength is the number of hex characters shown after the 0x prefix
const walletDisplayIDLength = 12

type walletService struct {
	uowFactory UnitOfWorkFactory
}

// NewWalletService creates a new wallet service
func NewWalletService(uowFactory UnitOfWorkFactory) WalletService {
	return &walletService{
		uowFactory: uowFactory,
	}
}

// GetWallet retrieves a user's wallet of the given type
func (s *walletService) GetWallet(ctx context.Context, userID uuid.UUID, walletType models.WalletType) (*models.Wallet, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	wallet, err := uow.WalletRepository().GetByUser(ctx, userID, walletType)
	if err != nil {
		return nil, fmt.Errorf("failed to get wallet: %w", err)
	}
	if wallet == nil {
		return nil, fmt.Errorf("wallet for user %s: %w", userID, ErrNotFound)
	}

	return wallet, nil
}

// CreateWallet creates a wallet with a display id derived from a fresh
// random unique id
func (s *walletService) CreateWallet(ctx context.Context, userID uuid.UUID, walletType models.WalletType, initialBalance decimal.Decimal) (*models.Wallet, error) {
	if initialBalance.IsNegative() {
		return nil, ErrInvalidAmount
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	wallet, err := createWalletInTx(ctx, uow, userID, walletType, initialBalance)
	if err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return wallet, nil
}

// GetOrCreateWallet retrieves a wallet or lazily creates it with a zero balance
func (s *walletService) GetOrCreateWallet(ctx context.Context, userID uuid.UUID, walletType models.WalletType) (*models.Wallet, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	wallet, err := uow.WalletRepository().GetByUser(ctx, userID, walletType)
	if err != nil {
		return nil, fmt.Errorf("failed to get wallet: %w", err)
	}
	if wallet == nil {
		wallet, err = createWalletInTx(ctx, uow, userID, walletType, decimal.Zero)
		if err != nil {
			return nil, err
		}
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return wallet, nil
}

// SetBalance overwrites a wallet's balance. Transfer paths never use this;
// it exists for administrative correction only.
func (s *walletService) SetBalance(ctx context.Context, walletID uuid.UUID, newBalance decimal.Decimal) (*models.Wallet, error) {
	if newBalance.IsNegative() {
		return nil, ErrInvalidAmount
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	if err := uow.WalletRepository().UpdateBalance(ctx, walletID, newBalance); err != nil {
		return nil, err
	}

	wallet, err := uow.WalletRepository().GetByID(ctx, walletID)
	if err != nil {
		return nil, fmt.Errorf("failed to get wallet: %w", err)
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return wallet, nil
}

// createWalletInTx inserts a wallet within an already-open unit of work
func createWalletInTx(ctx context.Context, uow UnitOfWork, userID uuid.UUID, walletType models.WalletType, initialBalance decimal.Decimal) (*models.Wallet, error) {
	wallet := &models.Wallet{
		UserID:     userID,
		WalletType: walletType,
		DisplayID:  NewWalletDisplayID(),
		Balance:    initialBalance,
	}

	if err := uow.WalletRepository().Create(ctx, wallet); err != nil {
		return nil, fmt.Errorf("failed to create wallet: %w", err)
	}

	return wallet, nil
}

// NewWalletDisplayID derives a display identifier from a fresh random
// unique id: hex-encoded, uppercased, truncated, 0x-prefixed
func NewWalletDisplayID() string {
	id := uuid.New()
	encoded := strings.ToUpper(hex.EncodeToString(id[:]))
	return "0x" + encoded[:walletDisplayIDLength]
}
