package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"

	"github.com/temidayo/shareboard/internal/apperrors"
	"github.com/temidayo/shareboard/internal/models"
)

type ReferralRepo struct {
	DB DBTX
}

const getReferralByUserID = `-- name: GetReferralByUserID
SELECT id, user_id, referred_users, total_earnings, total_withdrawn, pending_withdrawals, processing_withdrawals
FROM referrals
WHERE user_id = $1
`

func (r *ReferralRepo) GetByUserID(ctx context.Context, userID uuid.UUID) (models.Referral, error) {
	rows, _ := r.DB.Query(ctx, getReferralByUserID, userID)
	return collectReferral(rows)
}

const getReferralByUserIDForUpdate = getReferralByUserID + `FOR UPDATE
`

func (r *ReferralRepo) GetByUserIDForUpdate(ctx context.Context, userID uuid.UUID) (models.Referral, error) {
	rows, _ := r.DB.Query(ctx, getReferralByUserIDForUpdate, userID)
	return collectReferral(rows)
}

// Credit bumps referred_users and total_earnings in one statement, creating
// the referral row on first credit
const creditReferral = `-- name: CreditReferral
INSERT INTO referrals (id, user_id, referred_users, total_earnings)
VALUES ($1, $2, 1, $3)
ON CONFLICT (user_id)
DO UPDATE SET
	referred_users = referrals.referred_users + 1,
	total_earnings = referrals.total_earnings + EXCLUDED.total_earnings
RETURNING id, user_id, referred_users, total_earnings, total_withdrawn, pending_withdrawals, processing_withdrawals
`

func (r *ReferralRepo) Credit(ctx context.Context, userID uuid.UUID, amount decimal.Decimal) (models.Referral, error) {
	rows, _ := r.DB.Query(ctx, creditReferral, uuid.New(), userID, amount)
	referral, err := pgx.CollectOneRow(rows, rowToReferral)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.ForeignKeyViolation {
			return referral, apperrors.ErrUserNotFound
		}

		return referral, fmt.Errorf("db error: %w", err)
	}

	return referral, nil
}

const applyWithdrawalDeltas = `-- name: ApplyWithdrawalDeltas
UPDATE referrals
SET
	total_withdrawn = total_withdrawn + $2,
	pending_withdrawals = pending_withdrawals + $3,
	processing_withdrawals = processing_withdrawals + $4
WHERE user_id = $1
RETURNING id, user_id, referred_users, total_earnings, total_withdrawn, pending_withdrawals, processing_withdrawals
`

func (r *ReferralRepo) ApplyWithdrawalDeltas(ctx context.Context, userID uuid.UUID, withdrawn, pending, processing decimal.Decimal) (models.Referral, error) {
	rows, _ := r.DB.Query(ctx, applyWithdrawalDeltas, userID, withdrawn, pending, processing)
	return collectReferral(rows)
}

const createReferralTransaction = `-- name: CreateReferralTransaction
INSERT INTO referral_transactions (id, beneficiary_id, amount, created_at)
VALUES ($1, $2, $3, $4)
RETURNING id, beneficiary_id, amount, created_at
`

func (r *ReferralRepo) CreateTransaction(ctx context.Context, tx models.ReferralTransaction) (models.ReferralTransaction, error) {
	rows, _ := r.DB.Query(ctx, createReferralTransaction, tx.ID, tx.BeneficiaryID, tx.Amount, tx.CreatedAt)
	created, err := pgx.CollectOneRow(rows, rowToReferralTransaction)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.ForeignKeyViolation {
			return created, apperrors.ErrUserNotFound
		}

		return created, fmt.Errorf("db error: %w", err)
	}

	return created, nil
}

func collectReferral(rows pgx.Rows) (models.Referral, error) {
	referral, err := pgx.CollectOneRow(rows, rowToReferral)

	switch {
	case err == nil:
		return referral, nil
	case errors.Is(err, pgx.ErrNoRows):
		return referral, apperrors.ErrUserNotFound
	default:
		return referral, fmt.Errorf("db error: %w", err)
	}
}

func rowToReferral(row pgx.CollectableRow) (models.Referral, error) {
	var r models.Referral
	err := row.Scan(&r.ID, &r.UserID, &r.ReferredUsers, &r.TotalEarnings, &r.TotalWithdrawn, &r.PendingWithdrawals, &r.ProcessingWithdrawals)
	return r, err
}

func rowToReferralTransaction(row pgx.CollectableRow) (models.ReferralTransaction, error) {
	var t models.ReferralTransaction
	err := row.Scan(&t.ID, &t.BeneficiaryID, &t.Amount, &t.CreatedAt)
	return t, err
}
