package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Leaderboard categories. Each category ranks users on a different derived
// metric; registration is the default and the only one without a
// strict-positive match on its sort key.
const (
	CategoryRegistration = "registration"
	CategoryReferrals    = "referrals"
	CategorySpending     = "spending"
	CategoryCofounder    = "cofounder"
	CategoryEarnings     = "earnings"
	CategoryShares       = "shares"
)

// Time frames. The empty string means all-time.
const (
	TimeFrameAll     = ""
	TimeFrameDaily   = "daily"
	TimeFrameWeekly  = "weekly"
	TimeFrameMonthly = "monthly"
	TimeFrameYearly  = "yearly"
)

// ParseCategory returns the matching category, falling back to registration
// for anything unknown. Unknown values are not an error.
func ParseCategory(s string) string {
	switch s {
	case CategoryReferrals, CategorySpending, CategoryCofounder, CategoryEarnings, CategoryShares:
		return s
	default:
		return CategoryRegistration
	}
}

// ParseTimeFrame returns the matching time frame, falling back to all-time.
func ParseTimeFrame(s string) string {
	switch s {
	case TimeFrameDaily, TimeFrameWeekly, TimeFrameMonthly, TimeFrameYearly:
		return s
	default:
		return TimeFrameAll
	}
}

// LeaderboardEntry is one ranked row of a leaderboard response. The period
// fields are set only when the request had a time frame and the category
// aggregates a transaction stream; exactly one of them drives the sort then.
type LeaderboardEntry struct {
	ID                          uuid.UUID       `json:"id"`
	Name                        string          `json:"name"`
	UserName                    string          `json:"userName"`
	TotalShares                 int64           `json:"totalShares"`
	TotalCofounderShares        int64           `json:"totalCofounderShares"`
	CombinedShares              int64           `json:"combinedShares"`
	ReferralCount               int64           `json:"referralCount"`
	TotalEarnings               decimal.Decimal `json:"totalEarnings"`
	CurrentBalance              decimal.Decimal `json:"currentBalance"`
	WithdrawalAmount            decimal.Decimal `json:"withdrawalAmount"`
	PendingWithdrawalsAmount    decimal.Decimal `json:"pendingWithdrawalsAmount"`
	ProcessingWithdrawalsAmount decimal.Decimal `json:"processingWithdrawalsAmount"`
	TotalSpent                  decimal.Decimal `json:"totalSpent"`
	CreatedAt                   time.Time       `json:"createdAt"`

	PeriodEarnings  *decimal.Decimal `json:"periodEarnings,omitempty"`
	PeriodSpending  *decimal.Decimal `json:"periodSpending,omitempty"`
	PeriodReferrals *int64           `json:"periodReferrals,omitempty"`
}
