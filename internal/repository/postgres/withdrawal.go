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

type WithdrawalRepo struct {
	DB DBTX
}

const createWithdrawal = `-- name: CreateWithdrawal
INSERT INTO withdrawals (id, user_id, amount, status)
VALUES ($1, $2, $3, 'pending')
RETURNING id, user_id, amount, status, created_at
`

func (r *WithdrawalRepo) Create(ctx context.Context, userID uuid.UUID, amount decimal.Decimal) (models.Withdrawal, error) {
	rows, _ := r.DB.Query(ctx, createWithdrawal, uuid.New(), userID, amount)
	withdrawal, err := pgx.CollectOneRow(rows, rowToWithdrawal)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.ForeignKeyViolation {
			return withdrawal, apperrors.ErrUserNotFound
		}

		return withdrawal, fmt.Errorf("db error: %w", err)
	}

	return withdrawal, nil
}

const getWithdrawalForUpdate = `-- name: GetWithdrawalForUpdate
SELECT id, user_id, amount, status, created_at
FROM withdrawals
WHERE id = $1
FOR UPDATE
`

func (r *WithdrawalRepo) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (models.Withdrawal, error) {
	rows, _ := r.DB.Query(ctx, getWithdrawalForUpdate, id)
	withdrawal, err := pgx.CollectOneRow(rows, rowToWithdrawal)

	switch {
	case err == nil:
		return withdrawal, nil
	case errors.Is(err, pgx.ErrNoRows):
		return withdrawal, apperrors.ErrWithdrawalNotFound
	default:
		return withdrawal, fmt.Errorf("db error: %w", err)
	}
}

const updateWithdrawalStatus = `-- name: UpdateWithdrawalStatus
UPDATE withdrawals
SET status = $2
WHERE id = $1
RETURNING id, user_id, amount, status, created_at
`

func (r *WithdrawalRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status string) (models.Withdrawal, error) {
	rows, _ := r.DB.Query(ctx, updateWithdrawalStatus, id, status)
	withdrawal, err := pgx.CollectOneRow(rows, rowToWithdrawal)

	switch {
	case err == nil:
		return withdrawal, nil
	case errors.Is(err, pgx.ErrNoRows):
		return withdrawal, apperrors.ErrWithdrawalNotFound
	default:
		return withdrawal, fmt.Errorf("db error: %w", err)
	}
}

func rowToWithdrawal(row pgx.CollectableRow) (models.Withdrawal, error) {
	var w models.Withdrawal
	err := row.Scan(&w.ID, &w.UserID, &w.Amount, &w.Status, &w.CreatedAt)
	return w, err
}
