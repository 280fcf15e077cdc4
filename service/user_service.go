package service

import (
	"context"
	"fmt"
	"strings"

	"oneaccord/events"
	"oneaccord/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type userService struct {
	uowFactory      UnitOfWorkFactory
	startingBalance decimal.Decimal
}

// NewUserService creates a new user service. startingBalance seeds each
// new user's personal wallet.
func NewUserService(uowFactory UnitOfWorkFactory, startingBalance decimal.Decimal) UserService {
	return &userService{
		uowFactory:      uowFactory,
		startingBalance: startingBalance,
	}
}

// SignUp creates a user, their personal wallet, and an active SeedKey in
// one transaction
func (s *userService) SignUp(ctx context.Context, username, displayName, phone string) (*models.User, error) {
	username = strings.TrimPrefix(strings.TrimSpace(username), "@")
	if username == "" {
		return nil, fmt.Errorf("username cannot be empty")
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	existing, err := uow.UserRepository().GetByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("failed to check username: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("username %q: %w", username, ErrUsernameTaken)
	}

	user := &models.User{
		Phone:       phone,
		Username:    username,
		DisplayName: displayName,
		ActiveRole:  models.UserRoleActivator,
	}
	if err := uow.UserRepository().Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	wallet := &models.Wallet{
		UserID:     user.ID,
		WalletType: models.WalletTypePersonal,
		DisplayID:  NewWalletDisplayID(),
		Balance:    s.startingBalance,
	}
	if err := uow.WalletRepository().Create(ctx, wallet); err != nil {
		return nil, fmt.Errorf("failed to create wallet: %w", err)
	}

	key := &models.Key{
		UserID:    user.ID,
		KeyType:   models.KeyTypeSeed,
		DisplayID: NewWalletDisplayID(),
		Status:    models.KeyStatusActive,
	}
	if err := uow.KeyRepository().Create(ctx, key); err != nil {
		return nil, fmt.Errorf("failed to issue seed key: %w", err)
	}

	uow.EventBus().Publish(events.UserCreatedEvent{
		UserID:   user.ID,
		Username: user.Username,
	})

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return user, nil
}

// GetUser retrieves a user by id
func (s *userService) GetUser(ctx context.Context, id uuid.UUID) (*models.User, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	user, err := uow.UserRepository().GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, fmt.Errorf("user %s: %w", id, ErrNotFound)
	}

	return user, nil
}

// FindByUsername resolves a username, stripping any @ prefix, case-insensitive
func (s *userService) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	username = strings.TrimPrefix(strings.TrimSpace(username), "@")

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	user, err := uow.UserRepository().GetByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	if user == nil {
		return nil, fmt.Errorf("user %q: %w", username, ErrNotFound)
	}

	return user, nil
}

// SearchUsers finds users by substring match on username or display name
func (s *userService) SearchUsers(ctx context.Context, query string, excludeID uuid.UUID, limit int) ([]*models.User, error) {
	if strings.TrimSpace(query) == "" {
		return nil, nil
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	users, err := uow.UserRepository().Search(ctx, query, excludeID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to search users: %w", err)
	}

	return users, nil
}

// CompleteOnboarding marks the walkthrough finished
func (s *userService) CompleteOnboarding(ctx context.Context, id uuid.UUID) error {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	if err := uow.UserRepository().SetOnboardingComplete(ctx, id); err != nil {
		return fmt.Errorf("failed to complete onboarding: %w", err)
	}

	if err := uow.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// UpdateProfile updates display name, avatar and role
func (s *userService) UpdateProfile(ctx context.Context, user *models.User) error {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	if err := uow.UserRepository().UpdateProfile(ctx, user); err != nil {
		return fmt.Errorf("failed to update profile: %w", err)
	}

	if err := uow.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// TouchLastLogin stamps the last login time
func (s *userService) TouchLastLogin(ctx context.Context, id uuid.UUID) error {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	if err := uow.UserRepository().TouchLastLogin(ctx, id); err != nil {
		return fmt.Errorf("failed to touch last login: %w", err)
	}

	if err := uow.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// GetKeys returns the user's role credentials
func (s *userService) GetKeys(ctx context.Context, userID uuid.UUID) ([]*models.Key, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	keys, err := uow.KeyRepository().GetByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get keys: %w", err)
	}

	return keys, nil
}

// IssueKey issues a new role credential to a user
func (s *userService) IssueKey(ctx context.Context, userID uuid.UUID, keyType models.KeyType) (*models.Key, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	user, err := uow.UserRepository().GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, fmt.Errorf("user %s: %w", userID, ErrNotFound)
	}

	key := &models.Key{
		UserID:    userID,
		KeyType:   keyType,
		DisplayID: NewWalletDisplayID(),
		Status:    models.KeyStatusActive,
	}
	if err := uow.KeyRepository().Create(ctx, key); err != nil {
		return nil, fmt.Errorf("failed to issue key: %w", err)
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return key, nil
}
