package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/temidayo/shareboard/internal/models"
)

// User repository interface
type UserRepo interface {
	// Create user
	// If user with the username exists already has to return apperrors.ErrUserAlreadyExists
	CreateUser(ctx context.Context, name string, userName string) (models.User, error)

	// Get user by id
	// If user not found must return apperrors.ErrUserNotFound
	GetUserByID(ctx context.Context, userID uuid.UUID) (models.User, error)
}

// Share holdings and purchase transactions
type ShareRepo interface {
	// Add shares to the user's holding of the given kind, creating the
	// holding row when it does not exist yet
	AddToHolding(ctx context.Context, userID uuid.UUID, kind string, shares int64) (models.ShareHolding, error)

	// Record one purchase transaction
	CreateTransaction(ctx context.Context, tx models.ShareTransaction) (models.ShareTransaction, error)
}

// Referral counters and referral credit transactions
type ReferralRepo interface {
	// Get referral row for user
	// If the user has no referral row must return apperrors.ErrUserNotFound
	GetByUserID(ctx context.Context, userID uuid.UUID) (models.Referral, error)

	// Same but takes a row lock; call inside InTx only
	GetByUserIDForUpdate(ctx context.Context, userID uuid.UUID) (models.Referral, error)

	// Credit one referral: bump referred_users and total_earnings,
	// creating the referral row when absent
	Credit(ctx context.Context, userID uuid.UUID, amount decimal.Decimal) (models.Referral, error)

	// Apply deltas to the withdrawal counters. Deltas may be negative,
	// the repository must fail if a counter would go below zero.
	ApplyWithdrawalDeltas(ctx context.Context, userID uuid.UUID, withdrawn, pending, processing decimal.Decimal) (models.Referral, error)

	// Record one referral credit transaction
	CreateTransaction(ctx context.Context, tx models.ReferralTransaction) (models.ReferralTransaction, error)
}

// Withdrawal ledger
type WithdrawalRepo interface {
	Create(ctx context.Context, userID uuid.UUID, amount decimal.Decimal) (models.Withdrawal, error)

	// Get withdrawal with a row lock; call inside InTx only
	// If not found must return apperrors.ErrWithdrawalNotFound
	GetByIDForUpdate(ctx context.Context, id uuid.UUID) (models.Withdrawal, error)

	UpdateStatus(ctx context.Context, id uuid.UUID, status string) (models.Withdrawal, error)
}

// LeaderboardReader is the read contract the aggregation engine consumes.
// ListActiveUsers returns the root rows; the remaining methods return the
// sibling rows of one collection for the given id set. Implementations must
// preserve CreatedAt as a comparable timestamp and Status as its string enum.
type LeaderboardReader interface {
	ListActiveUsers(ctx context.Context) ([]models.User, error)
	ListShareHoldings(ctx context.Context, userIDs []uuid.UUID) ([]models.ShareHolding, error)
	ListShareTransactions(ctx context.Context, userIDs []uuid.UUID) ([]models.ShareTransaction, error)
	ListReferrals(ctx context.Context, userIDs []uuid.UUID) ([]models.Referral, error)
	ListReferralTransactions(ctx context.Context, userIDs []uuid.UUID) ([]models.ReferralTransaction, error)
	ListWithdrawals(ctx context.Context, userIDs []uuid.UUID) ([]models.Withdrawal, error)
}

// Storage bundles all repositories over one database handle
type Storage interface {
	User() UserRepo
	Share() ShareRepo
	Referral() ReferralRepo
	Withdrawal() WithdrawalRepo
	Leaderboard() LeaderboardReader

	// Run fn inside a database transaction. The storage passed to fn is
	// bound to the transaction; returning an error rolls back.
	InTx(ctx context.Context, fn func(Storage) error) error
}
