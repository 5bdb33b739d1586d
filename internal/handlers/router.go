package handlers

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/temidayo/shareboard/internal/handlers/middleware"
	"github.com/temidayo/shareboard/internal/logger"
	"github.com/temidayo/shareboard/internal/models"
	"github.com/temidayo/shareboard/internal/service/leaderboard"
)

// chain applies middlewares in the given order: m1(m2(...(h)))
func chain(h http.Handler, mds ...func(next http.Handler) http.Handler) http.Handler {
	for i := len(mds) - 1; i >= 0; i-- {
		h = mds[i](h)
	}
	return h
}

// NewRouter wires the leaderboard read surface and the platform write
// surface. diagnostics controls whether failure envelopes carry the
// underlying error message.
func NewRouter(
	leaderboardService leaderboardService,
	userService userService,
	walletService walletService,
	referralService referralService,
	l logger.Logger,
	diagnostics bool,
) http.Handler {
	mux := http.NewServeMux()

	// Generic endpoint: caller picks filter and time frame
	mux.Handle("GET /leaderboard", handleLeaderboard(leaderboardService, l, diagnostics))

	// Category endpoints force the filter, all-time window
	for _, category := range []string{
		models.CategoryRegistration,
		models.CategoryReferrals,
		models.CategorySpending,
		models.CategoryCofounder,
		models.CategoryEarnings,
		models.CategoryShares,
	} {
		mux.Handle("GET /leaderboard/"+category, handleCategoryLeaderboard(leaderboardService, category, l, diagnostics))
	}

	// Time frame endpoints force the window, filter defaults to earnings
	for _, frame := range []string{
		models.TimeFrameDaily,
		models.TimeFrameWeekly,
		models.TimeFrameMonthly,
		models.TimeFrameYearly,
	} {
		mux.Handle("GET /leaderboard/"+frame, handleTimeFrameLeaderboard(leaderboardService, frame, l, diagnostics))
	}

	mux.Handle("POST /users", handleCreateUser(userService, l))
	mux.Handle("POST /shares/purchase", handlePurchase(walletService, l))
	mux.Handle("POST /referrals/credit", handleReferralCredit(referralService, l))
	mux.Handle("POST /withdrawals", handleRequestWithdrawal(walletService, l))
	mux.Handle("PATCH /withdrawals/{id}", handleTransitionWithdrawal(walletService, l))

	return chain(mux,
		middleware.LoggerMiddleware(l),
	)
}

type leaderboardService interface {
	Leaderboard(ctx context.Context, req leaderboard.Request) (leaderboard.Result, error)
}

type userService interface {
	// Create user
	// Has to return apperrors.ErrUserAlreadyExists when the username is taken
	CreateUser(ctx context.Context, name string, userName string) (models.User, error)
}

type walletService interface {
	Purchase(ctx context.Context, userID uuid.UUID, kind string, shares int64, amount decimal.Decimal) (models.ShareTransaction, error)

	// Has to return apperrors.ErrBalanceInsufficient when the amount
	// exceeds the available referral balance
	RequestWithdrawal(ctx context.Context, userID uuid.UUID, amount decimal.Decimal) (models.Withdrawal, error)

	// Has to return apperrors.ErrWithdrawalInvalidTransition for moves
	// the lifecycle does not allow
	TransitionWithdrawal(ctx context.Context, id uuid.UUID, status string) (models.Withdrawal, error)
}

type referralService interface {
	Credit(ctx context.Context, beneficiaryID uuid.UUID, amount decimal.Decimal) (models.Referral, error)
}
