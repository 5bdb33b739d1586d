package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	WithdrawalPending    = "pending"
	WithdrawalProcessing = "processing"
	WithdrawalApproved   = "approved"
	WithdrawalPaid       = "paid"
	WithdrawalRejected   = "rejected"
)

type Withdrawal struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Amount    decimal.Decimal
	Status    string
	CreatedAt time.Time
}

// Completed reports whether the withdrawal is a finished outflow.
func (w Withdrawal) Completed() bool {
	return w.Status == WithdrawalPaid || w.Status == WithdrawalApproved
}
