package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Share kinds. Regular shares and co-founder shares are tracked in separate
// holdings and count toward different leaderboard categories.
const (
	ShareKindRegular   = "regular"
	ShareKindCofounder = "cofounder"
)

type ShareHolding struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	Kind        string
	TotalShares int64
}

type ShareTransaction struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	Kind        string
	TotalAmount decimal.Decimal
	CreatedAt   time.Time
}
