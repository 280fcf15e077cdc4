package service

import (
	"context"

	"oneaccord/events"
	"oneaccord/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	// GetByID retrieves a user by id
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)

	// GetByUsername retrieves a user by username, case-insensitive
	GetByUsername(ctx context.Context, username string) (*models.User, error)

	// Search returns users whose username or display name contains the
	// query, excluding one id, limited
	Search(ctx context.Context, query string, excludeID uuid.UUID, limit int) ([]*models.User, error)

	// Create creates a new user
	Create(ctx context.Context, user *models.User) error

	// UpdateProfile updates display name, avatar and active role
	UpdateProfile(ctx context.Context, user *models.User) error

	// SetOnboardingComplete marks the user's onboarding walkthrough done
	SetOnboardingComplete(ctx context.Context, id uuid.UUID) error

	// TouchLastLogin stamps the user's last login time
	TouchLastLogin(ctx context.Context, id uuid.UUID) error
}

// WalletRepository defines the interface for wallet data access
type WalletRepository interface {
	// GetByUser retrieves a user's wallet of the given type
	GetByUser(ctx context.Context, userID uuid.UUID, walletType models.WalletType) (*models.Wallet, error)

	// GetByID retrieves a wallet by id
	GetByID(ctx context.Context, id uuid.UUID) (*models.Wallet, error)

	// Create creates a new wallet
	Create(ctx context.Context, wallet *models.Wallet) error

	// UpdateBalance overwrites a wallet's balance
	UpdateBalance(ctx context.Context, id uuid.UUID, newBalance decimal.Decimal) error

	// AddBalance credits a wallet atomically
	AddBalance(ctx context.Context, id uuid.UUID, amount decimal.Decimal) error

	// DeductBalance debits a wallet atomically, failing with
	// ErrInsufficientBalance if the balance would go negative
	DeductBalance(ctx context.Context, id uuid.UUID, amount decimal.Decimal) error
}

// TransferRepository defines the interface for transfer data access
type TransferRepository interface {
	// Create inserts a new transfer row
	Create(ctx context.Context, transfer *models.Transfer) error

	// GetByID retrieves a transfer by id
	GetByID(ctx context.Context, id uuid.UUID) (*models.Transfer, error)

	// MarkResolved moves a transfer to a terminal status, guarded so a
	// transfer can only be resolved once. Returns ErrInvalidTransferState
	// if the row was already terminal.
	MarkResolved(ctx context.Context, id uuid.UUID, status models.TransferStatus) (*models.Transfer, error)

	// GetPendingForUser returns unresponded incoming transfers, newest
	// first, with sender profiles joined
	GetPendingForUser(ctx context.Context, userID uuid.UUID) ([]*models.Transfer, error)

	// GetByUser returns transfers where the user is either endpoint,
	// newest first, limited, with both endpoint profiles joined
	GetByUser(ctx context.Context, userID uuid.UUID, limit int) ([]*models.Transfer, error)

	// GetBetweenUsers returns transfers between exactly two users, oldest
	// first (chat order), limited, with both endpoint profiles joined
	GetBetweenUsers(ctx context.Context, userA, userB uuid.UUID, limit int) ([]*models.Transfer, error)
}

// PostRepository defines the interface for feed data access
type PostRepository interface {
	// Create inserts a new post
	Create(ctx context.Context, post *models.Post) error

	// GetByID retrieves a post by id
	GetByID(ctx context.Context, id uuid.UUID) (*models.Post, error)

	// GetFeed returns posts newest first, limited, with author profiles
	GetFeed(ctx context.Context, limit int) ([]*models.Post, error)

	// IncrementLikes bumps a post's like counter
	IncrementLikes(ctx context.Context, id uuid.UUID) error

	// CreateComment inserts a comment and bumps the post's comment counter
	CreateComment(ctx context.Context, comment *models.Comment) error

	// GetComments returns a post's comments oldest first
	GetComments(ctx context.Context, postID uuid.UUID) ([]*models.Comment, error)
}

// KeyRepository defines the interface for role credential data access
type KeyRepository interface {
	// GetByUser returns all keys held by a user
	GetByUser(ctx context.Context, userID uuid.UUID) ([]*models.Key, error)

	// Create issues a new key
	Create(ctx context.Context, key *models.Key) error

	// SetStatus activates or deactivates a key
	SetStatus(ctx context.Context, id uuid.UUID, status models.KeyStatus) error
}

// WalletService defines the interface for wallet ledger operations
type WalletService interface {
	// GetWallet retrieves a user's wallet of the given type
	GetWallet(ctx context.Context, userID uuid.UUID, walletType models.WalletType) (*models.Wallet, error)

	// CreateWallet creates a wallet with a derived display id
	CreateWallet(ctx context.Context, userID uuid.UUID, walletType models.WalletType, initialBalance decimal.Decimal) (*models.Wallet, error)

	// GetOrCreateWallet retrieves a wallet or lazily creates it with a
	// zero balance
	GetOrCreateWallet(ctx context.Context, userID uuid.UUID, walletType models.WalletType) (*models.Wallet, error)

	// SetBalance overwrites a wallet's balance
	SetBalance(ctx context.Context, walletID uuid.UUID, newBalance decimal.Decimal) (*models.Wallet, error)
}

// TransferService defines the interface for the transfer lifecycle
type TransferService interface {
	// CreateTransfer debits the sender and inserts a pending transfer in
	// one transaction
	CreateTransfer(ctx context.Context, fromUserID, toUserID uuid.UUID, amount decimal.Decimal, purpose string) (*models.Transfer, error)

	// AcceptTransfer credits the recipient (and for payment requests,
	// debits the payer) and marks the transfer accepted
	AcceptTransfer(ctx context.Context, transferID uuid.UUID) (*models.Transfer, error)

	// DeclineTransfer refunds the sender of a pending transfer and marks
	// the transfer declined
	DeclineTransfer(ctx context.Context, transferID uuid.UUID) (*models.Transfer, error)

	// GetPendingTransfers returns unresponded incoming transfers
	GetPendingTransfers(ctx context.Context, userID uuid.UUID) ([]*models.Transfer, error)

	// GetTransfersForUser returns the user's transfer history
	GetTransfersForUser(ctx context.Context, userID uuid.UUID, limit int) ([]*models.Transfer, error)

	// GetConversationHistory returns transfers between two users in chat order
	GetConversationHistory(ctx context.Context, userA, userB uuid.UUID, limit int) ([]*models.Transfer, error)

	// RecordDeposit credits the wallet and records an external deposit
	RecordDeposit(ctx context.Context, userID uuid.UUID, amount decimal.Decimal, method string) (*models.Transfer, error)

	// RecordWithdrawal debits the wallet and records an external withdrawal
	RecordWithdrawal(ctx context.Context, userID uuid.UUID, amount decimal.Decimal, bankName string) (*models.Transfer, error)

	// CreatePaymentRequest inserts a requested transfer without debiting anyone
	CreatePaymentRequest(ctx context.Context, fromUserID, toUserID uuid.UUID, amount decimal.Decimal, message string) (*models.Transfer, error)
}

// ConversationService derives the per-partner inbox view
type ConversationService interface {
	// GetConversations returns the user's conversation list, newest first
	GetConversations(ctx context.Context, userID uuid.UUID) ([]*models.Conversation, error)
}

// UserService defines the interface for the user directory
type UserService interface {
	// SignUp creates a user, their personal wallet with the starting
	// balance, and an active SeedKey
	SignUp(ctx context.Context, username, displayName, phone string) (*models.User, error)

	// GetUser retrieves a user by id
	GetUser(ctx context.Context, id uuid.UUID) (*models.User, error)

	// FindByUsername resolves a username, stripping any @ prefix,
	// case-insensitive
	FindByUsername(ctx context.Context, username string) (*models.User, error)

	// SearchUsers finds users by substring match on username or display name
	SearchUsers(ctx context.Context, query string, excludeID uuid.UUID, limit int) ([]*models.User, error)

	// CompleteOnboarding marks the walkthrough finished
	CompleteOnboarding(ctx context.Context, id uuid.UUID) error

	// UpdateProfile updates display name, avatar and role
	UpdateProfile(ctx context.Context, user *models.User) error

	// TouchLastLogin stamps the last login time
	TouchLastLogin(ctx context.Context, id uuid.UUID) error

	// GetKeys returns the user's role credentials
	GetKeys(ctx context.Context, userID uuid.UUID) ([]*models.Key, error)

	// IssueKey issues a new role credential to a user
	IssueKey(ctx context.Context, userID uuid.UUID, keyType models.KeyType) (*models.Key, error)
}

// FeedService defines the interface for the post feed
type FeedService interface {
	// CreatePost appends a post to the feed
	CreatePost(ctx context.Context, post *models.Post) (*models.Post, error)

	// GetFeed returns the feed, newest first
	GetFeed(ctx context.Context, limit int) ([]*models.Post, error)

	// LikePost increments a post's like counter
	LikePost(ctx context.Context, postID uuid.UUID) error

	// AddComment inserts a comment and bumps the post's comment counter
	// in one transaction
	AddComment(ctx context.Context, postID, authorID uuid.UUID, body string) (*models.Comment, error)

	// GetComments returns a post's comments oldest first
	GetComments(ctx context.Context, postID uuid.UUID) ([]*models.Comment, error)
}

// EventPublisher defines the interface for publishing events
type EventPublisher interface {
	Publish(event events.Event)
}

// UnitOfWork defines the interface for transactional repository operations
type UnitOfWork interface {
	// Begin starts a new transaction
	Begin(ctx context.Context) error

	// Commit commits the transaction
	Commit() error

	// Rollback rolls back the transaction
	Rollback() error

	// Repository getters
	UserRepository() UserRepository
	WalletRepository() WalletRepository
	TransferRepository() TransferRepository
	PostRepository() PostRepository
	KeyRepository() KeyRepository
	EventBus() EventPublisher
}

// UnitOfWorkFactory defines the interface for creating UnitOfWork instances
type UnitOfWorkFactory interface {
	// Create creates a new UnitOfWork instance
	Create() UnitOfWork
}
