package leaderboard

import (
	"context"
	"fmt"
	"sort"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/temidayo/shareboard/internal/models"
	"github.com/temidayo/shareboard/internal/repository"
)

// scored pairs an entry with its primary sort key. Registration sorts on
// createdAt, which is the tiebreak anyway, so its key stays zero.
type scored struct {
	entry models.LeaderboardEntry
	key   decimal.Decimal
}

// aggregate runs the staged pipeline: fetch the user set and the five sibling
// collections, derive per-user metrics, window, match, sort and truncate.
// Any read failure fails the whole request; partial results are never built.
func aggregate(ctx context.Context, store repository.LeaderboardReader, d Descriptor) ([]models.LeaderboardEntry, error) {
	users, err := store.ListActiveUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("leaderboard aggregation: %w", err)
	}

	if len(users) == 0 {
		return []models.LeaderboardEntry{}, nil
	}

	ids := make([]uuid.UUID, len(users))
	for i, u := range users {
		ids[i] = u.ID
	}

	holdings, err := store.ListShareHoldings(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("leaderboard aggregation: %w", err)
	}
	shareTxs, err := store.ListShareTransactions(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("leaderboard aggregation: %w", err)
	}
	referrals, err := store.ListReferrals(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("leaderboard aggregation: %w", err)
	}
	referralTxs, err := store.ListReferralTransactions(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("leaderboard aggregation: %w", err)
	}
	withdrawals, err := store.ListWithdrawals(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("leaderboard aggregation: %w", err)
	}

	holdingsByUser := groupBy(holdings, func(h models.ShareHolding) uuid.UUID { return h.UserID })
	shareTxsByUser := groupBy(shareTxs, func(t models.ShareTransaction) uuid.UUID { return t.UserID })
	referralByUser := make(map[uuid.UUID]models.Referral, len(referrals))
	for _, r := range referrals {
		// 0..1 cardinality per user; first row wins if a writer ever
		// violates that
		if _, ok := referralByUser[r.UserID]; !ok {
			referralByUser[r.UserID] = r
		}
	}
	referralTxsByUser := groupBy(referralTxs, func(t models.ReferralTransaction) uuid.UUID { return t.BeneficiaryID })
	withdrawalsByUser := groupBy(withdrawals, func(w models.Withdrawal) uuid.UUID { return w.UserID })

	rows := make([]scored, 0, len(users))
	for _, u := range users {
		row := buildRow(u, d,
			holdingsByUser[u.ID],
			shareTxsByUser[u.ID],
			referralByUser,
			referralTxsByUser[u.ID],
			withdrawalsByUser[u.ID],
		)

		if matches(u, d, row) {
			rows = append(rows, scored{entry: row.entry, key: row.key})
		}
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return lessRow(d, rows[i], rows[j])
	})

	if len(rows) > d.Limit {
		rows = rows[:d.Limit]
	}

	entries := make([]models.LeaderboardEntry, len(rows))
	for i, r := range rows {
		entries[i] = r.entry
	}

	return entries, nil
}

// buildRow computes the all-time metrics and, when the descriptor asks for
// one, the windowed metric. The windowed metric also becomes the sort key.
func buildRow(
	u models.User,
	d Descriptor,
	holdings []models.ShareHolding,
	shareTxs []models.ShareTransaction,
	referralByUser map[uuid.UUID]models.Referral,
	referralTxs []models.ReferralTransaction,
	withdrawals []models.Withdrawal,
) scored {
	var totalShares, totalCofounder int64
	for _, h := range holdings {
		switch h.Kind {
		case models.ShareKindCofounder:
			totalCofounder += h.TotalShares
		default:
			totalShares += h.TotalShares
		}
	}

	totalSpent := decimal.Zero
	for _, t := range shareTxs {
		totalSpent = totalSpent.Add(t.TotalAmount)
	}

	referral, ok := referralByUser[u.ID]
	if !ok {
		referral = models.ZeroReferral(u.ID)
	}

	withdrawn := decimal.Zero
	pending := decimal.Zero
	processing := decimal.Zero
	for _, w := range withdrawals {
		if !d.Threshold.IsZero() && w.CreatedAt.Before(d.Threshold) {
			continue
		}

		switch {
		case w.Completed():
			withdrawn = withdrawn.Add(w.Amount)
		case w.Status == models.WithdrawalProcessing:
			processing = processing.Add(w.Amount)
		case w.Status == models.WithdrawalPending:
			pending = pending.Add(w.Amount)
		}
	}

	entry := models.LeaderboardEntry{
		ID:                          u.ID,
		Name:                        u.Name,
		UserName:                    u.UserName,
		TotalShares:                 totalShares,
		TotalCofounderShares:        totalCofounder,
		CombinedShares:              totalShares + totalCofounder,
		ReferralCount:               referral.ReferredUsers,
		TotalEarnings:               referral.TotalEarnings,
		CurrentBalance:              referral.AvailableBalance(),
		WithdrawalAmount:            withdrawn,
		PendingWithdrawalsAmount:    pending,
		ProcessingWithdrawalsAmount: processing,
		TotalSpent:                  totalSpent,
		CreatedAt:                   u.CreatedAt,
	}

	row := scored{entry: entry, key: allTimeKey(d.Category, entry)}

	switch d.window {
	case windowReferrals:
		var count int64
		for _, t := range referralTxs {
			if !t.CreatedAt.Before(d.Threshold) {
				count++
			}
		}
		row.entry.PeriodReferrals = &count
		row.key = decimal.NewFromInt(count)
	case windowSpending:
		sum := decimal.Zero
		for _, t := range shareTxs {
			if !t.CreatedAt.Before(d.Threshold) {
				sum = sum.Add(t.TotalAmount)
			}
		}
		row.entry.PeriodSpending = &sum
		row.key = sum
	case windowEarnings:
		sum := decimal.Zero
		for _, t := range referralTxs {
			if !t.CreatedAt.Before(d.Threshold) {
				sum = sum.Add(t.Amount)
			}
		}
		row.entry.PeriodEarnings = &sum
		row.key = sum
	}

	return row
}

// allTimeKey is the primary sort key when no window applies. Registration
// sorts on createdAt which lessRow handles as the tiebreak already.
func allTimeKey(category string, e models.LeaderboardEntry) decimal.Decimal {
	switch category {
	case models.CategoryReferrals:
		return decimal.NewFromInt(e.ReferralCount)
	case models.CategorySpending:
		return e.TotalSpent
	case models.CategoryCofounder:
		return decimal.NewFromInt(e.TotalCofounderShares)
	case models.CategoryEarnings:
		return e.TotalEarnings
	case models.CategoryShares:
		return decimal.NewFromInt(e.CombinedShares)
	default:
		return decimal.Zero
	}
}

// matches applies the category's row filter. All categories except
// registration require their sort key strictly positive. When a threshold is
// present and the category has no windowed sub-aggregation the window falls
// on the user's own registration date.
func matches(u models.User, d Descriptor, row scored) bool {
	if d.Category != models.CategoryRegistration && !row.key.IsPositive() {
		return false
	}

	if !d.Threshold.IsZero() && !d.windowed() && u.CreatedAt.Before(d.Threshold) {
		return false
	}

	return true
}

// lessRow orders rows by (primary desc, createdAt desc, id asc)
func lessRow(d Descriptor, a, b scored) bool {
	if d.Category != models.CategoryRegistration {
		if c := a.key.Cmp(b.key); c != 0 {
			return c > 0
		}
	}

	if !a.entry.CreatedAt.Equal(b.entry.CreatedAt) {
		return a.entry.CreatedAt.After(b.entry.CreatedAt)
	}

	return a.entry.ID.String() < b.entry.ID.String()
}

func groupBy[T any](items []T, key func(T) uuid.UUID) map[uuid.UUID][]T {
	grouped := make(map[uuid.UUID][]T)
	for _, item := range items {
		grouped[key(item)] = append(grouped[key(item)], item)
	}
	return grouped
}
