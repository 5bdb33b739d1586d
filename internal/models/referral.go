package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Referral holds the per-user denormalized referral counters. At most one row
// exists per user; writers maintain the counters in the same transaction as
// the event that changes them, so
// TotalEarnings >= TotalWithdrawn + PendingWithdrawals + ProcessingWithdrawals
// holds at all times.
type Referral struct {
	ID                    uuid.UUID
	UserID                uuid.UUID
	ReferredUsers         int64
	TotalEarnings         decimal.Decimal
	TotalWithdrawn        decimal.Decimal
	PendingWithdrawals    decimal.Decimal
	ProcessingWithdrawals decimal.Decimal
}

// ZeroReferral is the projection used for users without a referral row.
func ZeroReferral(userID uuid.UUID) Referral {
	return Referral{
		UserID:                userID,
		TotalEarnings:         decimal.Zero,
		TotalWithdrawn:        decimal.Zero,
		PendingWithdrawals:    decimal.Zero,
		ProcessingWithdrawals: decimal.Zero,
	}
}

// AvailableBalance is the unwithdrawn, uncommitted part of the earnings.
// Not clamped: a negative result means a writer broke the counter invariant.
func (r Referral) AvailableBalance() decimal.Decimal {
	return r.TotalEarnings.
		Sub(r.TotalWithdrawn).
		Sub(r.PendingWithdrawals).
		Sub(r.ProcessingWithdrawals)
}

// ReferralTransaction is one referral credit for a beneficiary. The windowed
// referral count and the windowed earnings sum are both computed over these
// rows, one row per credited referral.
type ReferralTransaction struct {
	ID            uuid.UUID
	BeneficiaryID uuid.UUID
	Amount        decimal.Decimal
	CreatedAt     time.Time
}
