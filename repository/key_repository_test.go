package repository

import (
	"context"
	"testing"

	"oneaccord/models"
	"oneaccord/repository/testutil"
	"oneaccord/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeyRepository(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)

	userRepo := NewUserRepository(testDB.DB)
	repo := NewKeyRepository(testDB.DB)
	ctx := context.Background()

	user := testutil.CreateTestUser("keyholder")
	require.NoError(t, userRepo.Create(ctx, user))

	seed := &models.Key{
		UserID:    user.ID,
		KeyType:   models.KeyTypeSeed,
		DisplayID: "0xSEED00000001",
		Status:    models.KeyStatusActive,
	}
	require.NoError(t, repo.Create(ctx, seed))

	mission := &models.Key{
		UserID:    user.ID,
		KeyType:   models.KeyTypeMission,
		DisplayID: "0xMISSION00001",
		Status:    models.KeyStatusActive,
	}
	require.NoError(t, repo.Create(ctx, mission))

	t.Run("get by user", func(t *testing.T) {
		keys, err := repo.GetByUser(ctx, user.ID)
		require.NoError(t, err)
		require.Len(t, keys, 2)
		assert.Equal(t, models.KeyTypeSeed, keys[0].KeyType)
	})

	t.Run("set status", func(t *testing.T) {
		require.NoError(t, repo.SetStatus(ctx, mission.ID, models.KeyStatusInactive))

		keys, err := repo.GetByUser(ctx, user.ID)
		require.NoError(t, err)
		for _, k := range keys {
			if k.ID == mission.ID {
				assert.Equal(t, models.KeyStatusInactive, k.Status)
			}
		}
	})

	t.Run("set status on missing key", func(t *testing.T) {
		err := repo.SetStatus(ctx, uuid.New(), models.KeyStatusInactive)
		assert.ErrorIs(t, err, service.ErrNotFound)
	})
}
