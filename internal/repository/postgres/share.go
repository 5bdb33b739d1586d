package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/temidayo/shareboard/internal/apperrors"
	"github.com/temidayo/shareboard/internal/models"
)

type ShareRepo struct {
	DB DBTX
}

const addToHolding = `-- name: AddToHolding
INSERT INTO share_holdings (id, user_id, kind, total_shares)
VALUES ($1, $2, $3, $4)
ON CONFLICT (user_id, kind)
DO UPDATE SET total_shares = share_holdings.total_shares + EXCLUDED.total_shares
RETURNING id, user_id, kind, total_shares
`

func (r *ShareRepo) AddToHolding(ctx context.Context, userID uuid.UUID, kind string, shares int64) (models.ShareHolding, error) {
	rows, _ := r.DB.Query(ctx, addToHolding, uuid.New(), userID, kind, shares)
	holding, err := pgx.CollectOneRow(rows, rowToHolding)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch {
			case pgErr.Code == pgerrcode.CheckViolation:
				return holding, apperrors.ErrInvalidShareKind
			case pgErr.Code == pgerrcode.ForeignKeyViolation:
				return holding, apperrors.ErrUserNotFound
			}
		}

		return holding, fmt.Errorf("db error: %w", err)
	}

	return holding, nil
}

const createShareTransaction = `-- name: CreateShareTransaction
INSERT INTO share_transactions (id, user_id, kind, total_amount, created_at)
VALUES ($1, $2, $3, $4, $5)
RETURNING id, user_id, kind, total_amount, created_at
`

func (r *ShareRepo) CreateTransaction(ctx context.Context, tx models.ShareTransaction) (models.ShareTransaction, error) {
	rows, _ := r.DB.Query(ctx, createShareTransaction, tx.ID, tx.UserID, tx.Kind, tx.TotalAmount, tx.CreatedAt)
	created, err := pgx.CollectOneRow(rows, rowToShareTransaction)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.ForeignKeyViolation {
			return created, apperrors.ErrUserNotFound
		}

		return created, fmt.Errorf("db error: %w", err)
	}

	return created, nil
}

func rowToHolding(row pgx.CollectableRow) (models.ShareHolding, error) {
	var h models.ShareHolding
	err := row.Scan(&h.ID, &h.UserID, &h.Kind, &h.TotalShares)
	return h, err
}

func rowToShareTransaction(row pgx.CollectableRow) (models.ShareTransaction, error) {
	var t models.ShareTransaction
	err := row.Scan(&t.ID, &t.UserID, &t.Kind, &t.TotalAmount, &t.CreatedAt)
	return t, err
}
