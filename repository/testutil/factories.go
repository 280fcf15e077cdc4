package testutil

import (
	"fmt"

	"oneaccord/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateTestUser builds a user with default values. The id is assigned by
// the database on insert.
func CreateTestUser(username string) *models.User {
	return &models.User{
		Phone:       fmt.Sprintf("+1555%07d", len(username)),
		Username:    username,
		DisplayName: username,
		ActiveRole:  models.UserRoleActivator,
	}
}

// CreateTestWallet builds a personal wallet for a user
func CreateTestWallet(userID uuid.UUID, balance decimal.Decimal) *models.Wallet {
	return &models.Wallet{
		UserID:     userID,
		WalletType: models.WalletTypePersonal,
		DisplayID:  "0x" + uuid.New().String()[:12],
		Balance:    balance,
	}
}

// CreateTestTransfer builds a pending transfer between two users
func CreateTestTransfer(fromUserID, toUserID uuid.UUID, amount decimal.Decimal) *models.Transfer {
	return &models.Transfer{
		FromUserID: &fromUserID,
		ToUserID:   &toUserID,
		Amount:     amount,
		Purpose:    "test transfer",
		Status:     models.TransferStatusPending,
	}
}

// CreateTestPost builds a story post authored by a user
func CreateTestPost(authorID uuid.UUID, body string) *models.Post {
	return &models.Post{
		AuthorID: authorID,
		PostType: models.PostTypeStory,
		Body:     body,
	}
}
