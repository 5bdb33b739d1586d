package wallet

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/temidayo/shareboard/internal/apperrors"
	"github.com/temidayo/shareboard/internal/models"
	"github.com/temidayo/shareboard/internal/repository"
)

// Service owns the money-moving write paths: share purchases and the
// withdrawal lifecycle. Every mutation that touches the referral counters
// runs in one database transaction with the event that caused it, which is
// what keeps the counter-based balance formula trustworthy.
type Service struct {
	storage repository.Storage
	now     func() time.Time
}

type Option func(*Service)

func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

func NewService(storage repository.Storage, opts ...Option) *Service {
	s := &Service{
		storage: storage,
		now:     time.Now,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Purchase records one share purchase: a transaction row plus the holding
// bump, atomically.
func (s *Service) Purchase(ctx context.Context, userID uuid.UUID, kind string, shares int64, amount decimal.Decimal) (models.ShareTransaction, error) {
	if kind != models.ShareKindRegular && kind != models.ShareKindCofounder {
		return models.ShareTransaction{}, apperrors.ErrInvalidShareKind
	}
	if shares <= 0 || !amount.IsPositive() {
		return models.ShareTransaction{}, apperrors.ErrInvalidAmount
	}

	var created models.ShareTransaction
	err := s.storage.InTx(ctx, func(st repository.Storage) error {
		var err error
		created, err = st.Share().CreateTransaction(ctx, models.ShareTransaction{
			ID:          uuid.New(),
			UserID:      userID,
			Kind:        kind,
			TotalAmount: amount,
			CreatedAt:   s.now(),
		})
		if err != nil {
			return err
		}

		_, err = st.Share().AddToHolding(ctx, userID, kind, shares)
		return err
	})
	if err != nil {
		return models.ShareTransaction{}, fmt.Errorf("purchase failed: %w", err)
	}

	return created, nil
}

// RequestWithdrawal creates a pending withdrawal after checking the available
// referral balance under a row lock, and moves the amount into the pending
// counter in the same transaction.
func (s *Service) RequestWithdrawal(ctx context.Context, userID uuid.UUID, amount decimal.Decimal) (models.Withdrawal, error) {
	if !amount.IsPositive() {
		return models.Withdrawal{}, apperrors.ErrInvalidAmount
	}

	var created models.Withdrawal
	err := s.storage.InTx(ctx, func(st repository.Storage) error {
		referral, err := st.Referral().GetByUserIDForUpdate(ctx, userID)
		switch {
		case errors.Is(err, apperrors.ErrUserNotFound):
			// no referral row means no earnings at all
			return apperrors.ErrBalanceInsufficient
		case err != nil:
			return err
		}

		if amount.GreaterThan(referral.AvailableBalance()) {
			return apperrors.ErrBalanceInsufficient
		}

		created, err = st.Withdrawal().Create(ctx, userID, amount)
		if err != nil {
			return err
		}

		_, err = st.Referral().ApplyWithdrawalDeltas(ctx, userID, decimal.Zero, amount, decimal.Zero)
		return err
	})
	if err != nil {
		return models.Withdrawal{}, err
	}

	return created, nil
}

// TransitionWithdrawal moves a withdrawal to a new status and shifts the
// referral counters accordingly, all in one transaction.
func (s *Service) TransitionWithdrawal(ctx context.Context, id uuid.UUID, status string) (models.Withdrawal, error) {
	var updated models.Withdrawal
	err := s.storage.InTx(ctx, func(st repository.Storage) error {
		withdrawal, err := st.Withdrawal().GetByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}

		withdrawn, pending, processing, err := counterDeltas(withdrawal.Status, status, withdrawal.Amount)
		if err != nil {
			return err
		}

		updated, err = st.Withdrawal().UpdateStatus(ctx, id, status)
		if err != nil {
			return err
		}

		_, err = st.Referral().ApplyWithdrawalDeltas(ctx, withdrawal.UserID, withdrawn, pending, processing)
		return err
	})
	if err != nil {
		return models.Withdrawal{}, err
	}

	return updated, nil
}

// counterDeltas maps a status transition to the referral counter movement.
// Allowed: pending -> processing | approved | paid | rejected,
// processing -> approved | paid | rejected.
func counterDeltas(from, to string, amount decimal.Decimal) (withdrawn, pending, processing decimal.Decimal, err error) {
	withdrawn, pending, processing = decimal.Zero, decimal.Zero, decimal.Zero

	switch {
	case from == models.WithdrawalPending && to == models.WithdrawalProcessing:
		pending = amount.Neg()
		processing = amount
	case from == models.WithdrawalPending && (to == models.WithdrawalApproved || to == models.WithdrawalPaid):
		pending = amount.Neg()
		withdrawn = amount
	case from == models.WithdrawalPending && to == models.WithdrawalRejected:
		pending = amount.Neg()
	case from == models.WithdrawalProcessing && (to == models.WithdrawalApproved || to == models.WithdrawalPaid):
		processing = amount.Neg()
		withdrawn = amount
	case from == models.WithdrawalProcessing && to == models.WithdrawalRejected:
		processing = amount.Neg()
	default:
		err = apperrors.ErrWithdrawalInvalidTransition
	}

	return withdrawn, pending, processing, err
}
