package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/temidayo/shareboard/internal/models"
)

// LeaderboardRepo implements the read contract of the aggregation engine.
// Each method is one flat SELECT; the join and the derived metrics live in
// the engine, not in SQL.
type LeaderboardRepo struct {
	DB DBTX
}

const listActiveUsers = `-- name: ListActiveUsers
SELECT id, created_at, name, username, is_active, is_banned, state, city
FROM users
WHERE is_active AND NOT is_banned
`

func (r *LeaderboardRepo) ListActiveUsers(ctx context.Context) ([]models.User, error) {
	rows, _ := r.DB.Query(ctx, listActiveUsers)
	users, err := pgx.CollectRows(rows, rowToUser)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return users, nil
}

const listShareHoldings = `-- name: ListShareHoldings
SELECT id, user_id, kind, total_shares
FROM share_holdings
WHERE user_id = ANY($1)
`

func (r *LeaderboardRepo) ListShareHoldings(ctx context.Context, userIDs []uuid.UUID) ([]models.ShareHolding, error) {
	rows, _ := r.DB.Query(ctx, listShareHoldings, userIDs)
	holdings, err := pgx.CollectRows(rows, rowToHolding)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return holdings, nil
}

const listShareTransactions = `-- name: ListShareTransactions
SELECT id, user_id, kind, total_amount, created_at
FROM share_transactions
WHERE user_id = ANY($1)
`

func (r *LeaderboardRepo) ListShareTransactions(ctx context.Context, userIDs []uuid.UUID) ([]models.ShareTransaction, error) {
	rows, _ := r.DB.Query(ctx, listShareTransactions, userIDs)
	transactions, err := pgx.CollectRows(rows, rowToShareTransaction)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return transactions, nil
}

const listReferrals = `-- name: ListReferrals
SELECT id, user_id, referred_users, total_earnings, total_withdrawn, pending_withdrawals, processing_withdrawals
FROM referrals
WHERE user_id = ANY($1)
`

func (r *LeaderboardRepo) ListReferrals(ctx context.Context, userIDs []uuid.UUID) ([]models.Referral, error) {
	rows, _ := r.DB.Query(ctx, listReferrals, userIDs)
	referrals, err := pgx.CollectRows(rows, rowToReferral)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return referrals, nil
}

const listReferralTransactions = `-- name: ListReferralTransactions
SELECT id, beneficiary_id, amount, created_at
FROM referral_transactions
WHERE beneficiary_id = ANY($1)
`

func (r *LeaderboardRepo) ListReferralTransactions(ctx context.Context, userIDs []uuid.UUID) ([]models.ReferralTransaction, error) {
	rows, _ := r.DB.Query(ctx, listReferralTransactions, userIDs)
	transactions, err := pgx.CollectRows(rows, rowToReferralTransaction)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return transactions, nil
}

const listWithdrawals = `-- name: ListWithdrawals
SELECT id, user_id, amount, status, created_at
FROM withdrawals
WHERE user_id = ANY($1)
`

func (r *LeaderboardRepo) ListWithdrawals(ctx context.Context, userIDs []uuid.UUID) ([]models.Withdrawal, error) {
	rows, _ := r.DB.Query(ctx, listWithdrawals, userIDs)
	withdrawals, err := pgx.CollectRows(rows, rowToWithdrawal)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return withdrawals, nil
}
