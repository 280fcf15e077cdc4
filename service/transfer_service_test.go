package service

import (
	"context"
	"errors"
	"testing"

	"oneaccord/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newTransferServiceMocks() (*MockUnitOfWork, *MockUnitOfWorkFactory, *MockUserRepository, *MockWalletRepository, *MockTransferRepository) {
	mockUoW := new(MockUnitOfWork)
	mockFactory := new(MockUnitOfWorkFactory)
	mockUserRepo := new(MockUserRepository)
	mockWalletRepo := new(MockWalletRepository)
	mockTransferRepo := new(MockTransferRepository)

	mockUoW.SetRepositories(mockUserRepo, mockWalletRepo, mockTransferRepo, nil, nil)

	return mockUoW, mockFactory, mockUserRepo, mockWalletRepo, mockTransferRepo
}

func TestTransferService_CreateTransfer_Success(t *testing.T) {
	ctx := context.Background()

	mockUoW, mockFactory, _, mockWalletRepo, mockTransferRepo := newTransferServiceMocks()
	service := NewTransferService(mockFactory)

	fromUserID := uuid.New()
	toUserID := uuid.New()
	amount := decimal.NewFromInt(25)

	senderWallet := &models.Wallet{
		ID:         uuid.New(),
		UserID:     fromUserID,
		WalletType: models.WalletTypePersonal,
		Balance:    decimal.NewFromInt(100),
	}

	mockFactory.On("Create").Return(mockUoW)
	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Commit").Return(nil)
	mockUoW.On("Rollback").Return(nil)

	mockWalletRepo.On("GetByUser", ctx, fromUserID, models.WalletTypePersonal).Return(senderWallet, nil)
	mockWalletRepo.On("DeductBalance", ctx, senderWallet.ID, amount).Return(nil)
	mockTransferRepo.On("Create", ctx, mock.MatchedBy(func(tr *models.Transfer) bool {
		return tr.FromUserID != nil && *tr.FromUserID == fromUserID &&
			tr.ToUserID != nil && *tr.ToUserID == toUserID &&
			tr.Amount.Equal(amount) &&
			tr.Purpose == "lunch" &&
			tr.Status == models.TransferStatusPending
	})).Return(nil)

	transfer, err := service.CreateTransfer(ctx, fromUserID, toUserID, amount, "lunch")

	assert.NoError(t, err)
	assert.NotNil(t, transfer)
	assert.Equal(t, models.TransferStatusPending, transfer.Status)

	mockFactory.AssertExpectations(t)
	mockUoW.AssertExpectations(t)
	mockWalletRepo.AssertExpectations(t)
	mockTransferRepo.AssertExpectations(t)
}

func TestTransferService_CreateTransfer_InsufficientBalance(t *testing.T) {
	ctx := context.Background()

	mockUoW, mockFactory, _, mockWalletRepo, mockTransferRepo := newTransferServiceMocks()
	service := NewTransferService(mockFactory)

	fromUserID := uuid.New()
	toUserID := uuid.New()
	amount := decimal.NewFromInt(500)

	senderWallet := &models.Wallet{
		ID:      uuid.New(),
		UserID:  fromUserID,
		Balance: decimal.NewFromInt(10),
	}

	mockFactory.On("Create").Return(mockUoW)
	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Rollback").Return(nil)
	// No Commit expected, the failed debit rolls everything back

	mockWalletRepo.On("GetByUser", ctx, fromUserID, models.WalletTypePersonal).Return(senderWallet, nil)
	mockWalletRepo.On("DeductBalance", ctx, senderWallet.ID, amount).Return(ErrInsufficientBalance)

	transfer, err := service.CreateTransfer(ctx, fromUserID, toUserID, amount, "")

	assert.Error(t, err)
	assert.Nil(t, transfer)
	assert.ErrorIs(t, err, ErrInsufficientBalance)

	mockUoW.AssertExpectations(t)
	mockUoW.AssertNotCalled(t, "Commit")
	mockTransferRepo.AssertNotCalled(t, "Create")
}

func TestTransferService_CreateTransfer_InvalidAmount(t *testing.T) {
	ctx := context.Background()

	_, mockFactory, _, _, _ := newTransferServiceMocks()
	service := NewTransferService(mockFactory)

	transfer, err := service.CreateTransfer(ctx, uuid.New(), uuid.New(), decimal.Zero, "")

	assert.ErrorIs(t, err, ErrInvalidAmount)
	assert.Nil(t, transfer)

	transfer, err = service.CreateTransfer(ctx, uuid.New(), uuid.New(), decimal.NewFromInt(-5), "")

	assert.ErrorIs(t, err, ErrInvalidAmount)
	assert.Nil(t, transfer)

	mockFactory.AssertNotCalled(t, "Create")
}

func TestTransferService_CreateTransfer_SelfTransfer(t *testing.T) {
	ctx := context.Background()

	_, mockFactory, _, _, _ := newTransferServiceMocks()
	service := NewTransferService(mockFactory)

	userID := uuid.New()
	transfer, err := service.CreateTransfer(ctx, userID, userID, decimal.NewFromInt(10), "")

	assert.ErrorIs(t, err, ErrSelfTransfer)
	assert.Nil(t, transfer)

	mockFactory.AssertNotCalled(t, "Create")
}

func TestTransferService_AcceptTransfer_Pending(t *testing.T) {
	ctx := context.Background()

	mockUoW, mockFactory, _, mockWalletRepo, mockTransferRepo := newTransferServiceMocks()
	service := NewTransferService(mockFactory)

	fromUserID := uuid.New()
	toUserID := uuid.New()
	transferID := uuid.New()
	amount := decimal.NewFromInt(40)

	pending := &models.Transfer{
		ID:         transferID,
		FromUserID: &fromUserID,
		ToUserID:   &toUserID,
		Amount:     amount,
		Status:     models.TransferStatusPending,
	}
	accepted := &models.Transfer{
		ID:         transferID,
		FromUserID: &fromUserID,
		ToUserID:   &toUserID,
		Amount:     amount,
		Status:     models.TransferStatusAccepted,
	}

	recipientWallet := &models.Wallet{
		ID:     uuid.New(),
		UserID: toUserID,
	}

	mockFactory.On("Create").Return(mockUoW)
	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Commit").Return(nil)
	mockUoW.On("Rollback").Return(nil)

	mockTransferRepo.On("GetByID", ctx, transferID).Return(pending, nil)
	mockWalletRepo.On("GetByUser", ctx, toUserID, models.WalletTypePersonal).Return(recipientWallet, nil)
	mockWalletRepo.On("AddBalance", ctx, recipientWallet.ID, amount).Return(nil)
	mockTransferRepo.On("MarkResolved", ctx, transferID, models.TransferStatusAccepted).Return(accepted, nil)

	resolved, err := service.AcceptTransfer(ctx, transferID)

	assert.NoError(t, err)
	assert.Equal(t, accepted, resolved)

	// The sender was debited at creation, only the recipient moves here
	mockWalletRepo.AssertNotCalled(t, "DeductBalance")

	mockUoW.AssertExpectations(t)
	mockWalletRepo.AssertExpectations(t)
	mockTransferRepo.AssertExpectations(t)
}

func TestTransferService_AcceptTransfer_Requested(t *testing.T) {
	ctx := context.Background()

	mockUoW, mockFactory, _, mockWalletRepo, mockTransferRepo := newTransferServiceMocks()
	service := NewTransferService(mockFactory)

	payerID := uuid.New()
	requesterID := uuid.New()
	transferID := uuid.New()
	amount := decimal.NewFromInt(75)

	requested := &models.Transfer{
		ID:         transferID,
		FromUserID: &payerID,
		ToUserID:   &requesterID,
		Amount:     amount,
		Status:     models.TransferStatusRequested,
	}
	accepted := &models.Transfer{
		ID:         transferID,
		FromUserID: &payerID,
		ToUserID:   &requesterID,
		Amount:     amount,
		Status:     models.TransferStatusAccepted,
	}

	payerWallet := &models.Wallet{ID: uuid.New(), UserID: payerID}
	requesterWallet := &models.Wallet{ID: uuid.New(), UserID: requesterID}

	mockFactory.On("Create").Return(mockUoW)
	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Commit").Return(nil)
	mockUoW.On("Rollback").Return(nil)

	mockTransferRepo.On("GetByID", ctx, transferID).Return(requested, nil)
	mockWalletRepo.On("GetByUser", ctx, payerID, models.WalletTypePersonal).Return(payerWallet, nil)
	mockWalletRepo.On("DeductBalance", ctx, payerWallet.ID, amount).Return(nil)
	mockWalletRepo.On("GetByUser", ctx, requesterID, models.WalletTypePersonal).Return(requesterWallet, nil)
	mockWalletRepo.On("AddBalance", ctx, requesterWallet.ID, amount).Return(nil)
	mockTransferRepo.On("MarkResolved", ctx, transferID, models.TransferStatusAccepted).Return(accepted, nil)

	resolved, err := service.AcceptTransfer(ctx, transferID)

	assert.NoError(t, err)
	assert.Equal(t, accepted, resolved)

	mockUoW.AssertExpectations(t)
	mockWalletRepo.AssertExpectations(t)
	mockTransferRepo.AssertExpectations(t)
}

func TestTransferService_AcceptTransfer_RequestedPayerBroke(t *testing.T) {
	ctx := context.Background()

	mockUoW, mockFactory, _, mockWalletRepo, mockTransferRepo := newTransferServiceMocks()
	service := NewTransferService(mockFactory)

	payerID := uuid.New()
	requesterID := uuid.New()
	transferID := uuid.New()
	amount := decimal.NewFromInt(75)

	requested := &models.Transfer{
		ID:         transferID,
		FromUserID: &payerID,
		ToUserID:   &requesterID,
		Amount:     amount,
		Status:     models.TransferStatusRequested,
	}
	payerWallet := &models.Wallet{ID: uuid.New(), UserID: payerID}

	mockFactory.On("Create").Return(mockUoW)
	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Rollback").Return(nil)

	mockTransferRepo.On("GetByID", ctx, transferID).Return(requested, nil)
	mockWalletRepo.On("GetByUser", ctx, payerID, models.WalletTypePersonal).Return(payerWallet, nil)
	mockWalletRepo.On("DeductBalance", ctx, payerWallet.ID, amount).Return(ErrInsufficientBalance)

	resolved, err := service.AcceptTransfer(ctx, transferID)

	assert.ErrorIs(t, err, ErrInsufficientBalance)
	assert.Nil(t, resolved)

	// Nothing may resolve or credit when the payer cannot cover the request
	mockWalletRepo.AssertNotCalled(t, "AddBalance")
	mockTransferRepo.AssertNotCalled(t, "MarkResolved")
	mockUoW.AssertNotCalled(t, "Commit")

	mockUoW.AssertExpectations(t)
}

func TestTransferService_AcceptTransfer_AlreadyResolved(t *testing.T) {
	ctx := context.Background()

	mockUoW, mockFactory, _, mockWalletRepo, mockTransferRepo := newTransferServiceMocks()
	service := NewTransferService(mockFactory)

	fromUserID := uuid.New()
	toUserID := uuid.New()
	transferID := uuid.New()

	resolved := &models.Transfer{
		ID:         transferID,
		FromUserID: &fromUserID,
		ToUserID:   &toUserID,
		Amount:     decimal.NewFromInt(10),
		Status:     models.TransferStatusAccepted,
	}

	mockFactory.On("Create").Return(mockUoW)
	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Rollback").Return(nil)

	mockTransferRepo.On("GetByID", ctx, transferID).Return(resolved, nil)

	result, err := service.AcceptTransfer(ctx, transferID)

	assert.ErrorIs(t, err, ErrInvalidTransferState)
	assert.Nil(t, result)

	// A second accept must never credit again
	mockWalletRepo.AssertNotCalled(t, "AddBalance")
	mockUoW.AssertNotCalled(t, "Commit")
}

func TestTransferService_AcceptTransfer_NotFound(t *testing.T) {
	ctx := context.Background()

	mockUoW, mockFactory, _, _, mockTransferRepo := newTransferServiceMocks()
	service := NewTransferService(mockFactory)

	transferID := uuid.New()

	mockFactory.On("Create").Return(mockUoW)
	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Rollback").Return(nil)

	mockTransferRepo.On("GetByID", ctx, transferID).Return(nil, nil)

	result, err := service.AcceptTransfer(ctx, transferID)

	assert.ErrorIs(t, err, ErrNotFound)
	assert.Nil(t, result)
}

func TestTransferService_DeclineTransfer_PendingRefundsSender(t *testing.T) {
	ctx := context.Background()

	mockUoW, mockFactory, _, mockWalletRepo, mockTransferRepo := newTransferServiceMocks()
	service := NewTransferService(mockFactory)

	fromUserID := uuid.New()
	toUserID := uuid.New()
	transferID := uuid.New()
	amount := decimal.NewFromInt(33)

	pending := &models.Transfer{
		ID:         transferID,
		FromUserID: &fromUserID,
		ToUserID:   &toUserID,
		Amount:     amount,
		Status:     models.TransferStatusPending,
	}
	declined := &models.Transfer{
		ID:         transferID,
		FromUserID: &fromUserID,
		ToUserID:   &toUserID,
		Amount:     amount,
		Status:     models.TransferStatusDeclined,
	}

	senderWallet := &models.Wallet{ID: uuid.New(), UserID: fromUserID}

	mockFactory.On("Create").Return(mockUoW)
	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Commit").Return(nil)
	mockUoW.On("Rollback").Return(nil)

	mockTransferRepo.On("GetByID", ctx, transferID).Return(pending, nil)
	mockWalletRepo.On("GetByUser", ctx, fromUserID, models.WalletTypePersonal).Return(senderWallet, nil)
	mockWalletRepo.On("AddBalance", ctx, senderWallet.ID, amount).Return(nil)
	mockTransferRepo.On("MarkResolved", ctx, transferID, models.TransferStatusDeclined).Return(declined, nil)

	resolved, err := service.DeclineTransfer(ctx, transferID)

	assert.NoError(t, err)
	assert.Equal(t, declined, resolved)

	mockUoW.AssertExpectations(t)
	mockWalletRepo.AssertExpectations(t)
	mockTransferRepo.AssertExpectations(t)
}

func TestTransferService_DeclineTransfer_RequestedMovesNothing(t *testing.T) {
	ctx := context.Background()

	mockUoW, mockFactory, _, mockWalletRepo, mockTransferRepo := newTransferServiceMocks()
	service := NewTransferService(mockFactory)

	payerID := uuid.New()
	requesterID := uuid.New()
	transferID := uuid.New()

	requested := &models.Transfer{
		ID:         transferID,
		FromUserID: &payerID,
		ToUserID:   &requesterID,
		Amount:     decimal.NewFromInt(20),
		Status:     models.TransferStatusRequested,
	}
	declined := &models.Transfer{
		ID:         transferID,
		FromUserID: &payerID,
		ToUserID:   &requesterID,
		Amount:     decimal.NewFromInt(20),
		Status:     models.TransferStatusDeclined,
	}

	mockFactory.On("Create").Return(mockUoW)
	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Commit").Return(nil)
	mockUoW.On("Rollback").Return(nil)

	mockTransferRepo.On("GetByID", ctx, transferID).Return(requested, nil)
	mockTransferRepo.On("MarkResolved", ctx, transferID, models.TransferStatusDeclined).Return(declined, nil)

	resolved, err := service.DeclineTransfer(ctx, transferID)

	assert.NoError(t, err)
	assert.Equal(t, declined, resolved)

	// No debit ever happened for a request, so declining refunds nothing
	mockWalletRepo.AssertNotCalled(t, "AddBalance")
	mockWalletRepo.AssertNotCalled(t, "DeductBalance")

	mockUoW.AssertExpectations(t)
	mockTransferRepo.AssertExpectations(t)
}

func TestTransferService_DeclineTransfer_AlreadyResolved(t *testing.T) {
	ctx := context.Background()

	mockUoW, mockFactory, _, mockWalletRepo, mockTransferRepo := newTransferServiceMocks()
	service := NewTransferService(mockFactory)

	fromUserID := uuid.New()
	toUserID := uuid.New()
	transferID := uuid.New()

	declined := &models.Transfer{
		ID:         transferID,
		FromUserID: &fromUserID,
		ToUserID:   &toUserID,
		Amount:     decimal.NewFromInt(10),
		Status:     models.TransferStatusDeclined,
	}

	mockFactory.On("Create").Return(mockUoW)
	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Rollback").Return(nil)

	mockTransferRepo.On("GetByID", ctx, transferID).Return(declined, nil)

	result, err := service.DeclineTransfer(ctx, transferID)

	assert.ErrorIs(t, err, ErrInvalidTransferState)
	assert.Nil(t, result)

	// A second decline must never refund again
	mockWalletRepo.AssertNotCalled(t, "AddBalance")
	mockUoW.AssertNotCalled(t, "Commit")
}

func TestTransferService_RecordDeposit(t *testing.T) {
	ctx := context.Background()

	mockUoW, mockFactory, _, mockWalletRepo, mockTransferRepo := newTransferServiceMocks()
	service := NewTransferService(mockFactory)

	userID := uuid.New()
	amount := decimal.NewFromInt(200)
	wallet := &models.Wallet{ID: uuid.New(), UserID: userID}

	mockFactory.On("Create").Return(mockUoW)
	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Commit").Return(nil)
	mockUoW.On("Rollback").Return(nil)

	mockWalletRepo.On("GetByUser", ctx, userID, models.WalletTypePersonal).Return(wallet, nil)
	mockWalletRepo.On("AddBalance", ctx, wallet.ID, amount).Return(nil)
	mockTransferRepo.On("Create", ctx, mock.MatchedBy(func(tr *models.Transfer) bool {
		return tr.FromUserID == nil &&
			tr.ToUserID != nil && *tr.ToUserID == userID &&
			tr.Amount.Equal(amount) &&
			tr.Status == models.TransferStatusAccepted &&
			tr.RespondedAt != nil &&
			tr.Purpose == "Deposit via Apple Pay"
	})).Return(nil)

	transfer, err := service.RecordDeposit(ctx, userID, amount, "Apple Pay")

	assert.NoError(t, err)
	assert.NotNil(t, transfer)
	assert.Nil(t, transfer.FromUserID)
	assert.True(t, transfer.IsExternal())

	mockUoW.AssertExpectations(t)
	mockWalletRepo.AssertExpectations(t)
	mockTransferRepo.AssertExpectations(t)
}

func TestTransferService_RecordWithdrawal(t *testing.T) {
	ctx := context.Background()

	mockUoW, mockFactory, _, mockWalletRepo, mockTransferRepo := newTransferServiceMocks()
	service := NewTransferService(mockFactory)

	userID := uuid.New()
	amount := decimal.NewFromInt(60)
	wallet := &models.Wallet{ID: uuid.New(), UserID: userID}

	mockFactory.On("Create").Return(mockUoW)
	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Commit").Return(nil)
	mockUoW.On("Rollback").Return(nil)

	mockWalletRepo.On("GetByUser", ctx, userID, models.WalletTypePersonal).Return(wallet, nil)
	mockWalletRepo.On("DeductBalance", ctx, wallet.ID, amount).Return(nil)
	mockTransferRepo.On("Create", ctx, mock.MatchedBy(func(tr *models.Transfer) bool {
		return tr.ToUserID == nil &&
			tr.FromUserID != nil && *tr.FromUserID == userID &&
			tr.Status == models.TransferStatusAccepted &&
			tr.Purpose == "Withdrawal to Chase"
	})).Return(nil)

	transfer, err := service.RecordWithdrawal(ctx, userID, amount, "Chase")

	assert.NoError(t, err)
	assert.NotNil(t, transfer)
	assert.Nil(t, transfer.ToUserID)

	mockUoW.AssertExpectations(t)
	mockWalletRepo.AssertExpectations(t)
	mockTransferRepo.AssertExpectations(t)
}

func TestTransferService_RecordWithdrawal_InsufficientBalance(t *testing.T) {
	ctx := context.Background()

	mockUoW, mockFactory, _, mockWalletRepo, mockTransferRepo := newTransferServiceMocks()
	service := NewTransferService(mockFactory)

	userID := uuid.New()
	amount := decimal.NewFromInt(999)
	wallet := &models.Wallet{ID: uuid.New(), UserID: userID}

	mockFactory.On("Create").Return(mockUoW)
	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Rollback").Return(nil)

	mockWalletRepo.On("GetByUser", ctx, userID, models.WalletTypePersonal).Return(wallet, nil)
	mockWalletRepo.On("DeductBalance", ctx, wallet.ID, amount).Return(ErrInsufficientBalance)

	transfer, err := service.RecordWithdrawal(ctx, userID, amount, "Chase")

	assert.ErrorIs(t, err, ErrInsufficientBalance)
	assert.Nil(t, transfer)

	mockTransferRepo.AssertNotCalled(t, "Create")
	mockUoW.AssertNotCalled(t, "Commit")
}

func TestTransferService_CreatePaymentRequest(t *testing.T) {
	ctx := context.Background()

	mockUoW, mockFactory, mockUserRepo, mockWalletRepo, mockTransferRepo := newTransferServiceMocks()
	service := NewTransferService(mockFactory)

	payerID := uuid.New()
	requesterID := uuid.New()
	amount := decimal.NewFromInt(45)

	payer := &models.User{ID: payerID, Username: "payer"}

	mockFactory.On("Create").Return(mockUoW)
	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Commit").Return(nil)
	mockUoW.On("Rollback").Return(nil)

	mockUserRepo.On("GetByID", ctx, payerID).Return(payer, nil)
	mockTransferRepo.On("Create", ctx, mock.MatchedBy(func(tr *models.Transfer) bool {
		return tr.Status == models.TransferStatusRequested &&
			tr.FromUserID != nil && *tr.FromUserID == payerID &&
			tr.ToUserID != nil && *tr.ToUserID == requesterID &&
			tr.Amount.Equal(amount)
	})).Return(nil)

	transfer, err := service.CreatePaymentRequest(ctx, payerID, requesterID, amount, "split the bill")

	assert.NoError(t, err)
	assert.NotNil(t, transfer)
	assert.Equal(t, models.TransferStatusRequested, transfer.Status)

	// A request never touches wallets at creation time
	mockWalletRepo.AssertNotCalled(t, "DeductBalance")
	mockWalletRepo.AssertNotCalled(t, "AddBalance")

	mockUoW.AssertExpectations(t)
	mockUserRepo.AssertExpectations(t)
	mockTransferRepo.AssertExpectations(t)
}

func TestTransferService_CreatePaymentRequest_PayerMissing(t *testing.T) {
	ctx := context.Background()

	mockUoW, mockFactory, mockUserRepo, _, mockTransferRepo := newTransferServiceMocks()
	service := NewTransferService(mockFactory)

	payerID := uuid.New()

	mockFactory.On("Create").Return(mockUoW)
	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Rollback").Return(nil)

	mockUserRepo.On("GetByID", ctx, payerID).Return(nil, nil)

	transfer, err := service.CreatePaymentRequest(ctx, payerID, uuid.New(), decimal.NewFromInt(5), "")

	assert.ErrorIs(t, err, ErrNotFound)
	assert.Nil(t, transfer)

	mockTransferRepo.AssertNotCalled(t, "Create")
}

func TestTransferService_GetPendingTransfers(t *testing.T) {
	ctx := context.Background()

	mockUoW, mockFactory, _, _, mockTransferRepo := newTransferServiceMocks()
	service := NewTransferService(mockFactory)

	userID := uuid.New()
	fromUserID := uuid.New()
	expected := []*models.Transfer{
		{ID: uuid.New(), FromUserID: &fromUserID, ToUserID: &userID, Status: models.TransferStatusPending},
	}

	mockFactory.On("Create").Return(mockUoW)
	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Rollback").Return(nil)

	mockTransferRepo.On("GetPendingForUser", ctx, userID).Return(expected, nil)

	transfers, err := service.GetPendingTransfers(ctx, userID)

	assert.NoError(t, err)
	assert.Equal(t, expected, transfers)

	mockUoW.AssertExpectations(t)
	mockTransferRepo.AssertExpectations(t)
}

func TestTransferService_GetConversationHistory_Error(t *testing.T) {
	ctx := context.Background()

	mockUoW, mockFactory, _, _, mockTransferRepo := newTransferServiceMocks()
	service := NewTransferService(mockFactory)

	userA := uuid.New()
	userB := uuid.New()

	mockFactory.On("Create").Return(mockUoW)
	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Rollback").Return(nil)

	mockTransferRepo.On("GetBetweenUsers", ctx, userA, userB, 100).Return(nil, errors.New("database error"))

	transfers, err := service.GetConversationHistory(ctx, userA, userB, 100)

	assert.Error(t, err)
	assert.Nil(t, transfers)
	assert.Contains(t, err.Error(), "failed to get conversation history")
}
