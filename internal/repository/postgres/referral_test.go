package postgres

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/temidayo/shareboard/internal/apperrors"
	"github.com/temidayo/shareboard/internal/models"
	"github.com/temidayo/shareboard/internal/testutil"
)

func Test_ReferralRepo(t *testing.T) {
	t.Parallel()

	pg := testutil.StartPostgresContainer(t)
	t.Cleanup(pg.Terminate)

	t.Run("credit creates row on first call", func(t *testing.T) {
		testutil.WithTx(pg.Pool, t, func(tx pgx.Tx) {
			users := UserRepo{DB: tx}
			r := ReferralRepo{DB: tx}

			user, err := users.CreateUser(t.Context(), "Ada Obi", "ada")
			require.NoError(t, err)

			referral, err := r.Credit(t.Context(), user.ID, decimal.RequireFromString("100"))

			require.NoError(t, err)
			assert.Equal(t, user.ID, referral.UserID)
			assert.Equal(t, int64(1), referral.ReferredUsers)
			assert.True(t, decimal.RequireFromString("100").Equal(referral.TotalEarnings))
			assert.True(t, referral.TotalWithdrawn.IsZero())
		})
	})

	t.Run("credit accumulates", func(t *testing.T) {
		testutil.WithTx(pg.Pool, t, func(tx pgx.Tx) {
			users := UserRepo{DB: tx}
			r := ReferralRepo{DB: tx}

			user, err := users.CreateUser(t.Context(), "Ada Obi", "ada")
			require.NoError(t, err)

			_, err = r.Credit(t.Context(), user.ID, decimal.RequireFromString("100"))
			require.NoError(t, err)

			referral, err := r.Credit(t.Context(), user.ID, decimal.RequireFromString("50"))

			require.NoError(t, err)
			assert.Equal(t, int64(2), referral.ReferredUsers)
			assert.True(t, decimal.RequireFromString("150").Equal(referral.TotalEarnings))
		})
	})

	t.Run("credit unknown user", func(t *testing.T) {
		testutil.WithTx(pg.Pool, t, func(tx pgx.Tx) {
			r := ReferralRepo{DB: tx}

			_, err := r.Credit(t.Context(), uuid.New(), decimal.RequireFromString("100"))

			assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
		})
	})

	t.Run("get by user id not found", func(t *testing.T) {
		testutil.WithTx(pg.Pool, t, func(tx pgx.Tx) {
			users := UserRepo{DB: tx}
			r := ReferralRepo{DB: tx}

			user, err := users.CreateUser(t.Context(), "Ada Obi", "ada")
			require.NoError(t, err)

			_, err = r.GetByUserID(t.Context(), user.ID)

			assert.ErrorIs(t, err, apperrors.ErrUserNotFound, "no referral row yet")
		})
	})

	t.Run("get for update returns the row", func(t *testing.T) {
		testutil.WithTx(pg.Pool, t, func(tx pgx.Tx) {
			users := UserRepo{DB: tx}
			r := ReferralRepo{DB: tx}

			user, err := users.CreateUser(t.Context(), "Ada Obi", "ada")
			require.NoError(t, err)

			created, err := r.Credit(t.Context(), user.ID, decimal.RequireFromString("100"))
			require.NoError(t, err)

			got, err := r.GetByUserIDForUpdate(t.Context(), user.ID)

			require.NoError(t, err)
			assert.Equal(t, created.ID, got.ID)
			assert.True(t, created.TotalEarnings.Equal(got.TotalEarnings))
		})
	})

	t.Run("apply withdrawal deltas", func(t *testing.T) {
		testutil.WithTx(pg.Pool, t, func(tx pgx.Tx) {
			users := UserRepo{DB: tx}
			r := ReferralRepo{DB: tx}

			user, err := users.CreateUser(t.Context(), "Ada Obi", "ada")
			require.NoError(t, err)

			_, err = r.Credit(t.Context(), user.ID, decimal.RequireFromString("100"))
			require.NoError(t, err)

			hold := decimal.RequireFromString("40")
			referral, err := r.ApplyWithdrawalDeltas(t.Context(), user.ID, decimal.Zero, hold, decimal.Zero)
			require.NoError(t, err)
			assert.True(t, hold.Equal(referral.PendingWithdrawals))

			// Move the hold into withdrawn
			referral, err = r.ApplyWithdrawalDeltas(t.Context(), user.ID, hold, hold.Neg(), decimal.Zero)
			require.NoError(t, err)
			assert.True(t, referral.PendingWithdrawals.IsZero())
			assert.True(t, hold.Equal(referral.TotalWithdrawn))
			assert.True(t, decimal.RequireFromString("60").Equal(referral.AvailableBalance()))
		})
	})

	t.Run("apply withdrawal deltas cannot go negative", func(t *testing.T) {
		testutil.WithTx(pg.Pool, t, func(tx pgx.Tx) {
			users := UserRepo{DB: tx}
			r := ReferralRepo{DB: tx}

			user, err := users.CreateUser(t.Context(), "Ada Obi", "ada")
			require.NoError(t, err)

			_, err = r.Credit(t.Context(), user.ID, decimal.RequireFromString("100"))
			require.NoError(t, err)

			_, err = r.ApplyWithdrawalDeltas(t.Context(), user.ID, decimal.Zero, decimal.RequireFromString("-10"), decimal.Zero)

			assert.Error(t, err, "pending counter would go below zero")
		})
	})

	t.Run("create transaction ok", func(t *testing.T) {
		testutil.WithTx(pg.Pool, t, func(tx pgx.Tx) {
			users := UserRepo{DB: tx}
			r := ReferralRepo{DB: tx}

			user, err := users.CreateUser(t.Context(), "Ada Obi", "ada")
			require.NoError(t, err)

			created, err := r.CreateTransaction(t.Context(), models.ReferralTransaction{
				ID:            uuid.New(),
				BeneficiaryID: user.ID,
				Amount:        decimal.RequireFromString("75"),
				CreatedAt:     time.Now(),
			})

			require.NoError(t, err)
			assert.Equal(t, user.ID, created.BeneficiaryID)
			assert.True(t, decimal.RequireFromString("75").Equal(created.Amount))
		})
	})

	t.Run("create transaction unknown beneficiary", func(t *testing.T) {
		testutil.WithTx(pg.Pool, t, func(tx pgx.Tx) {
			r := ReferralRepo{DB: tx}

			_, err := r.CreateTransaction(t.Context(), models.ReferralTransaction{
				ID:            uuid.New(),
				BeneficiaryID: uuid.New(),
				Amount:        decimal.RequireFromString("75"),
				CreatedAt:     time.Now(),
			})

			assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
		})
	})
}
