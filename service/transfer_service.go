package service

import (
	"context"
	"fmt"
	"time"

	"oneaccord/events"
	"oneaccord/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

type transferService struct {
	uowFactory UnitOfWorkFactory
}

// NewTransferService creates a new transfer service
func NewTransferService(uowFactory UnitOfWorkFactory) TransferService {
	return &transferService{
		uowFactory: uowFactory,
	}
}

// CreateTransfer debits the sender's wallet and inserts a pending transfer
// in a single transaction. The debit and the insert commit or roll back
// together, so a failed insert can never leave the sender short.
func (s *transferService) CreateTransfer(ctx context.Context, fromUserID, toUserID uuid.UUID, amount decimal.Decimal, purpose string) (*models.Transfer, error) {
	if !amount.IsPositive() {
		return nil, ErrInvalidAmount
	}
	if fromUserID == toUserID {
		return nil, ErrSelfTransfer
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	// Look up the sender's wallet
	senderWallet, err := uow.WalletRepository().GetByUser(ctx, fromUserID, models.WalletTypePersonal)
	if err != nil {
		return nil, fmt.Errorf("failed to get sender wallet: %w", err)
	}
	if senderWallet == nil {
		return nil, fmt.Errorf("sender wallet: %w", ErrNotFound)
	}

	// Optimistic debit at creation time. The conditional update enforces
	// the non-negative balance invariant.
	if err := uow.WalletRepository().DeductBalance(ctx, senderWallet.ID, amount); err != nil {
		return nil, fmt.Errorf("failed to debit sender: %w", err)
	}

	transfer := &models.Transfer{
		FromUserID: &fromUserID,
		ToUserID:   &toUserID,
		Amount:     amount,
		Purpose:    purpose,
		Status:     models.TransferStatusPending,
	}

	if err := uow.TransferRepository().Create(ctx, transfer); err != nil {
		return nil, fmt.Errorf("failed to create transfer: %w", err)
	}

	uow.EventBus().Publish(events.TransferCreatedEvent{
		TransferID: transfer.ID,
		FromUserID: transfer.FromUserID,
		ToUserID:   transfer.ToUserID,
		Amount:     transfer.Amount,
		Status:     string(transfer.Status),
	})

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	log.WithFields(log.Fields{
		"transferID": transfer.ID,
		"amount":     amount.StringFixed(2),
	}).Info("Transfer created")

	return transfer, nil
}

// AcceptTransfer resolves a transfer in the recipient's favor. For a
// pending transfer the sender was already debited at creation, so only the
// recipient is credited here. For a payment request nothing has moved yet:
// the payer is debited and the requester credited in the same transaction.
func (s *transferService) AcceptTransfer(ctx context.Context, transferID uuid.UUID) (*models.Transfer, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	transfer, err := uow.TransferRepository().GetByID(ctx, transferID)
	if err != nil {
		return nil, fmt.Errorf("failed to get transfer: %w", err)
	}
	if transfer == nil {
		return nil, fmt.Errorf("transfer %s: %w", transferID, ErrNotFound)
	}
	if !transfer.CanBeResponded() {
		return nil, fmt.Errorf("transfer %s is %s: %w", transferID, transfer.Status, ErrInvalidTransferState)
	}
	if transfer.ToUserID == nil {
		return nil, fmt.Errorf("transfer %s has no recipient: %w", transferID, ErrInvalidTransferState)
	}

	if transfer.Status == models.TransferStatusRequested {
		// The payer is debited only now, the first moment both sides agree
		if transfer.FromUserID == nil {
			return nil, fmt.Errorf("payment request %s has no payer: %w", transferID, ErrInvalidTransferState)
		}
		payerWallet, err := uow.WalletRepository().GetByUser(ctx, *transfer.FromUserID, models.WalletTypePersonal)
		if err != nil {
			return nil, fmt.Errorf("failed to get payer wallet: %w", err)
		}
		if payerWallet == nil {
			return nil, fmt.Errorf("payer wallet: %w", ErrNotFound)
		}
		if err := uow.WalletRepository().DeductBalance(ctx, payerWallet.ID, transfer.Amount); err != nil {
			return nil, fmt.Errorf("failed to debit payer: %w", err)
		}
	}

	recipientWallet, err := uow.WalletRepository().GetByUser(ctx, *transfer.ToUserID, models.WalletTypePersonal)
	if err != nil {
		return nil, fmt.Errorf("failed to get recipient wallet: %w", err)
	}
	if recipientWallet == nil {
		return nil, fmt.Errorf("recipient wallet: %w", ErrNotFound)
	}

	if err := uow.WalletRepository().AddBalance(ctx, recipientWallet.ID, transfer.Amount); err != nil {
		return nil, fmt.Errorf("failed to credit recipient: %w", err)
	}

	// The status guard in MarkResolved makes the credit single-shot even
	// under a concurrent accept on the same id
	resolved, err := uow.TransferRepository().MarkResolved(ctx, transferID, models.TransferStatusAccepted)
	if err != nil {
		return nil, err
	}

	uow.EventBus().Publish(events.TransferResolvedEvent{
		TransferID: resolved.ID,
		FromUserID: resolved.FromUserID,
		ToUserID:   resolved.ToUserID,
		Amount:     resolved.Amount,
		Accepted:   true,
	})

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return resolved, nil
}

// DeclineTransfer resolves a transfer against the recipient. A pending
// transfer refunds the sender the original amount; a declined payment
// request moves no money because none was ever debited.
func (s *transferService) DeclineTransfer(ctx context.Context, transferID uuid.UUID) (*models.Transfer, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	transfer, err := uow.TransferRepository().GetByID(ctx, transferID)
	if err != nil {
		return nil, fmt.Errorf("failed to get transfer: %w", err)
	}
	if transfer == nil {
		return nil, fmt.Errorf("transfer %s: %w", transferID, ErrNotFound)
	}
	if !transfer.CanBeResponded() {
		return nil, fmt.Errorf("transfer %s is %s: %w", transferID, transfer.Status, ErrInvalidTransferState)
	}

	if transfer.Status == models.TransferStatusPending {
		if transfer.FromUserID == nil {
			return nil, fmt.Errorf("transfer %s has no sender: %w", transferID, ErrInvalidTransferState)
		}
		senderWallet, err := uow.WalletRepository().GetByUser(ctx, *transfer.FromUserID, models.WalletTypePersonal)
		if err != nil {
			return nil, fmt.Errorf("failed to get sender wallet: %w", err)
		}
		if senderWallet == nil {
			return nil, fmt.Errorf("sender wallet: %w", ErrNotFound)
		}
		if err := uow.WalletRepository().AddBalance(ctx, senderWallet.ID, transfer.Amount); err != nil {
			return nil, fmt.Errorf("failed to refund sender: %w", err)
		}
	}

	resolved, err := uow.TransferRepository().MarkResolved(ctx, transferID, models.TransferStatusDeclined)
	if err != nil {
		return nil, err
	}

	uow.EventBus().Publish(events.TransferResolvedEvent{
		TransferID: resolved.ID,
		FromUserID: resolved.FromUserID,
		ToUserID:   resolved.ToUserID,
		Amount:     resolved.Amount,
		Accepted:   false,
	})

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return resolved, nil
}

// GetPendingTransfers returns unresponded incoming transfers, newest first
func (s *transferService) GetPendingTransfers(ctx context.Context, userID uuid.UUID) ([]*models.Transfer, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	transfers, err := uow.TransferRepository().GetPendingForUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get pending transfers: %w", err)
	}

	return transfers, nil
}

// GetTransfersForUser returns the user's transfer history, newest first
func (s *transferService) GetTransfersForUser(ctx context.Context, userID uuid.UUID, limit int) ([]*models.Transfer, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	transfers, err := uow.TransferRepository().GetByUser(ctx, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get transfers: %w", err)
	}

	return transfers, nil
}

// GetConversationHistory returns transfers between two users, oldest first
func (s *transferService) GetConversationHistory(ctx context.Context, userA, userB uuid.UUID, limit int) ([]*models.Transfer, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	transfers, err := uow.TransferRepository().GetBetweenUsers(ctx, userA, userB, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get conversation history: %w", err)
	}

	return transfers, nil
}

// RecordDeposit credits the wallet and records the external deposit as an
// accepted transfer with no sender, both in one transaction
func (s *transferService) RecordDeposit(ctx context.Context, userID uuid.UUID, amount decimal.Decimal, method string) (*models.Transfer, error) {
	if !amount.IsPositive() {
		return nil, ErrInvalidAmount
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	wallet, err := uow.WalletRepository().GetByUser(ctx, userID, models.WalletTypePersonal)
	if err != nil {
		return nil, fmt.Errorf("failed to get wallet: %w", err)
	}
	if wallet == nil {
		return nil, fmt.Errorf("wallet: %w", ErrNotFound)
	}

	if err := uow.WalletRepository().AddBalance(ctx, wallet.ID, amount); err != nil {
		return nil, fmt.Errorf("failed to credit wallet: %w", err)
	}

	now := time.Now()
	transfer := &models.Transfer{
		ToUserID:    &userID,
		Amount:      amount,
		Purpose:     fmt.Sprintf("Deposit via %s", method),
		Status:      models.TransferStatusAccepted,
		RespondedAt: &now,
	}

	if err := uow.TransferRepository().Create(ctx, transfer); err != nil {
		return nil, fmt.Errorf("failed to record deposit: %w", err)
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return transfer, nil
}

// RecordWithdrawal debits the wallet and records the external withdrawal
// as an accepted transfer with no recipient, both in one transaction
func (s *transferService) RecordWithdrawal(ctx context.Context, userID uuid.UUID, amount decimal.Decimal, bankName string) (*models.Transfer, error) {
	if !amount.IsPositive() {
		return nil, ErrInvalidAmount
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	wallet, err := uow.WalletRepository().GetByUser(ctx, userID, models.WalletTypePersonal)
	if err != nil {
		return nil, fmt.Errorf("failed to get wallet: %w", err)
	}
	if wallet == nil {
		return nil, fmt.Errorf("wallet: %w", ErrNotFound)
	}

	if err := uow.WalletRepository().DeductBalance(ctx, wallet.ID, amount); err != nil {
		return nil, fmt.Errorf("failed to debit wallet: %w", err)
	}

	now := time.Now()
	transfer := &models.Transfer{
		FromUserID:  &userID,
		Amount:      amount,
		Purpose:     fmt.Sprintf("Withdrawal to %s", bankName),
		Status:      models.TransferStatusAccepted,
		RespondedAt: &now,
	}

	if err := uow.TransferRepository().Create(ctx, transfer); err != nil {
		return nil, fmt.Errorf("failed to record withdrawal: %w", err)
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return transfer, nil
}

// CreatePaymentRequest inserts a requested transfer without debiting
// anyone. The distinct status keeps requests apart from debit-backed
// pending transfers so accepting one cannot mint value.
func (s *transferService) CreatePaymentRequest(ctx context.Context, fromUserID, toUserID uuid.UUID, amount decimal.Decimal, message string) (*models.Transfer, error) {
	if !amount.IsPositive() {
		return nil, ErrInvalidAmount
	}
	if fromUserID == toUserID {
		return nil, ErrSelfTransfer
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	// The payer must at least exist, even though they are not debited yet
	payer, err := uow.UserRepository().GetByID(ctx, fromUserID)
	if err != nil {
		return nil, fmt.Errorf("failed to get payer: %w", err)
	}
	if payer == nil {
		return nil, fmt.Errorf("payer: %w", ErrNotFound)
	}

	transfer := &models.Transfer{
		FromUserID: &fromUserID,
		ToUserID:   &toUserID,
		Amount:     amount,
		Purpose:    message,
		Status:     models.TransferStatusRequested,
	}

	if err := uow.TransferRepository().Create(ctx, transfer); err != nil {
		return nil, fmt.Errorf("failed to create payment request: %w", err)
	}

	uow.EventBus().Publish(events.TransferCreatedEvent{
		TransferID: transfer.ID,
		FromUserID: transfer.FromUserID,
		ToUserID:   transfer.ToUserID,
		Amount:     transfer.Amount,
		Status:     string(transfer.Status),
	})

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return transfer, nil
}
