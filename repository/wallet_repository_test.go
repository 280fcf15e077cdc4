package repository

import (
	"context"
	"errors"
	"testing"

	"oneaccord/repository/testutil"
	"oneaccord/service"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWalletRepository_CreateAndGet(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)

	userRepo := NewUserRepository(testDB.DB)
	repo := NewWalletRepository(testDB.DB)
	ctx := context.Background()

	user := testutil.CreateTestUser("walletowner")
	require.NoError(t, userRepo.Create(ctx, user))

	t.Run("create and get by user", func(t *testing.T) {
		wallet := testutil.CreateTestWallet(user.ID, decimal.NewFromInt(100))
		require.NoError(t, repo.Create(ctx, wallet))
		assert.NotEqual(t, uuid.Nil, wallet.ID)

		found, err := repo.GetByUser(ctx, user.ID, wallet.WalletType)
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.True(t, found.Balance.Equal(decimal.NewFromInt(100)))
		assert.Equal(t, wallet.DisplayID, found.DisplayID)
	})

	t.Run("one wallet per user and type", func(t *testing.T) {
		duplicate := testutil.CreateTestWallet(user.ID, decimal.Zero)
		err := repo.Create(ctx, duplicate)
		assert.Error(t, err)
	})

	t.Run("get missing wallet returns nil", func(t *testing.T) {
		found, err := repo.GetByID(ctx, uuid.New())
		require.NoError(t, err)
		assert.Nil(t, found)
	})
}

func TestWalletRepository_BalanceMutations(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)

	userRepo := NewUserRepository(testDB.DB)
	repo := NewWalletRepository(testDB.DB)
	ctx := context.Background()

	user := testutil.CreateTestUser("spender")
	require.NoError(t, userRepo.Create(ctx, user))

	wallet := testutil.CreateTestWallet(user.ID, decimal.NewFromInt(50))
	require.NoError(t, repo.Create(ctx, wallet))

	t.Run("add balance", func(t *testing.T) {
		require.NoError(t, repo.AddBalance(ctx, wallet.ID, decimal.NewFromInt(25)))

		found, err := repo.GetByID(ctx, wallet.ID)
		require.NoError(t, err)
		assert.True(t, found.Balance.Equal(decimal.NewFromInt(75)))
	})

	t.Run("deduct balance", func(t *testing.T) {
		require.NoError(t, repo.DeductBalance(ctx, wallet.ID, decimal.NewFromInt(30)))

		found, err := repo.GetByID(ctx, wallet.ID)
		require.NoError(t, err)
		assert.True(t, found.Balance.Equal(decimal.NewFromInt(45)))
	})

	t.Run("deduct more than balance fails and changes nothing", func(t *testing.T) {
		err := repo.DeductBalance(ctx, wallet.ID, decimal.NewFromInt(1000))
		assert.ErrorIs(t, err, service.ErrInsufficientBalance)

		found, getErr := repo.GetByID(ctx, wallet.ID)
		require.NoError(t, getErr)
		assert.True(t, found.Balance.Equal(decimal.NewFromInt(45)))
	})

	t.Run("deduct exactly the balance succeeds", func(t *testing.T) {
		require.NoError(t, repo.DeductBalance(ctx, wallet.ID, decimal.NewFromInt(45)))

		found, err := repo.GetByID(ctx, wallet.ID)
		require.NoError(t, err)
		assert.True(t, found.Balance.IsZero())
	})

	t.Run("deduct from missing wallet", func(t *testing.T) {
		err := repo.DeductBalance(ctx, uuid.New(), decimal.NewFromInt(1))
		assert.ErrorIs(t, err, service.ErrNotFound)
	})

	t.Run("non-positive amounts rejected", func(t *testing.T) {
		assert.ErrorIs(t, repo.AddBalance(ctx, wallet.ID, decimal.Zero), service.ErrInvalidAmount)
		assert.ErrorIs(t, repo.DeductBalance(ctx, wallet.ID, decimal.NewFromInt(-1)), service.ErrInvalidAmount)
	})

	t.Run("update balance overwrites", func(t *testing.T) {
		require.NoError(t, repo.UpdateBalance(ctx, wallet.ID, decimal.NewFromInt(500)))

		found, err := repo.GetByID(ctx, wallet.ID)
		require.NoError(t, err)
		assert.True(t, found.Balance.Equal(decimal.NewFromInt(500)))
	})
}

func TestWalletRepository_TransactionRollback(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)

	userRepo := NewUserRepository(testDB.DB)
	repo := NewWalletRepository(testDB.DB)
	ctx := context.Background()

	user := testutil.CreateTestUser("txuser")
	require.NoError(t, userRepo.Create(ctx, user))

	wallet := testutil.CreateTestWallet(user.ID, decimal.NewFromInt(100))
	require.NoError(t, repo.Create(ctx, wallet))

	// A failing function rolls back every statement issued through the tx
	errBoom := errors.New("boom")
	err := testDB.DB.WithTransaction(ctx, func(tx pgx.Tx) error {
		txRepo := newWalletRepositoryWithTx(tx)
		if err := txRepo.DeductBalance(ctx, wallet.ID, decimal.NewFromInt(60)); err != nil {
			return err
		}
		return errBoom
	})
	assert.ErrorIs(t, err, errBoom)

	found, getErr := repo.GetByID(ctx, wallet.ID)
	require.NoError(t, getErr)
	assert.True(t, found.Balance.Equal(decimal.NewFromInt(100)), "rolled-back debit must not stick")

	// A successful function commits
	err = testDB.DB.WithTransaction(ctx, func(tx pgx.Tx) error {
		return newWalletRepositoryWithTx(tx).DeductBalance(ctx, wallet.ID, decimal.NewFromInt(60))
	})
	require.NoError(t, err)

	found, getErr = repo.GetByID(ctx, wallet.ID)
	require.NoError(t, getErr)
	assert.True(t, found.Balance.Equal(decimal.NewFromInt(40)))
}
