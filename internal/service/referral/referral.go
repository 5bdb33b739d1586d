package referral

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/temidayo/shareboard/internal/apperrors"
	"github.com/temidayo/shareboard/internal/models"
	"github.com/temidayo/shareboard/internal/repository"
)

// Service credits referral earnings. One credit writes one transaction row
// and bumps the beneficiary's counters atomically, so the transaction stream
// and the denormalized counters never drift apart.
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

// Credit records one referred user and the commission earned from them.
// A zero amount is valid: the referral counts, it just earned nothing.
func (s *Service) Credit(ctx context.Context, beneficiaryID uuid.UUID, amount decimal.Decimal) (models.Referral, error) {
	if amount.IsNegative() {
		return models.Referral{}, apperrors.ErrInvalidAmount
	}

	var referral models.Referral
	err := s.storage.InTx(ctx, func(st repository.Storage) error {
		_, err := st.Referral().CreateTransaction(ctx, models.ReferralTransaction{
			ID:            uuid.New(),
			BeneficiaryID: beneficiaryID,
			Amount:        amount,
			CreatedAt:     s.now(),
		})
		if err != nil {
			return err
		}

		referral, err = st.Referral().Credit(ctx, beneficiaryID, amount)
		return err
	})
	if err != nil {
		return models.Referral{}, fmt.Errorf("referral credit failed: %w", err)
	}

	return referral, nil
}
