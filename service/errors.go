package service

import "errors"

// Business-rule failures are sentinel errors so callers can distinguish
// them from infrastructure failures with errors.Is. Infrastructure errors
// (network, storage) are wrapped pgx errors and match none of these.
var (
	// ErrNotFound means a referenced user, wallet, or transfer does not exist
	ErrNotFound = errors.New("not found")

	// ErrInsufficientBalance means the wallet balance is less than the
	// requested amount at debit time
	ErrInsufficientBalance = errors.New("insufficient balance")

	// ErrInvalidTransferState means accept/decline was attempted on a
	// transfer that is already in a terminal state
	ErrInvalidTransferState = errors.New("transfer is not awaiting a response")

	// ErrSelfTransfer means both endpoints of a transfer are the same user
	ErrSelfTransfer = errors.New("cannot transfer to yourself")

	// ErrInvalidAmount means the amount is zero or negative
	ErrInvalidAmount = errors.New("amount must be positive")

	// ErrUsernameTaken means the requested username already exists
	// (case-insensitive)
	ErrUsernameTaken = errors.New("username already taken")
)
