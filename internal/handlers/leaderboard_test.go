package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/temidayo/shareboard/internal/models"
	"github.com/temidayo/shareboard/internal/service/leaderboard"
)

func TestLeaderboardEndpoint(t *testing.T) {
	entry := models.LeaderboardEntry{
		ID:       uuid.New(),
		Name:     "Ada",
		UserName: "ada",
	}

	t.Run("passes query params to the service", func(t *testing.T) {
		router, stubs := newTestRouter(t, false)
		stubs.leaderboard.result = leaderboard.Result{
			Category:  models.CategoryEarnings,
			TimeFrame: models.TimeFrameDaily,
			Entries:   []models.LeaderboardEntry{entry},
		}

		rec := doRequest(t, router, http.MethodGet, "/leaderboard?filter=earnings&timeFrame=daily&limit=5", "")

		require.Equal(t, http.StatusOK, rec.Code)
		require.Equal(t, leaderboard.Request{Category: "earnings", TimeFrame: "daily", Limit: 5}, stubs.leaderboard.gotReq)

		var body struct {
			Success     bool              `json:"success"`
			Filter      string            `json:"filter"`
			TimeFrame   string            `json:"timeFrame"`
			Leaderboard []json.RawMessage `json:"leaderboard"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		require.True(t, body.Success)
		require.Equal(t, "earnings", body.Filter)
		require.Equal(t, "daily", body.TimeFrame)
		require.Len(t, body.Leaderboard, 1)
	})

	t.Run("all-time label for empty time frame", func(t *testing.T) {
		router, stubs := newTestRouter(t, false)
		stubs.leaderboard.result = leaderboard.Result{
			Category: models.CategoryRegistration,
			Entries:  []models.LeaderboardEntry{},
		}

		rec := doRequest(t, router, http.MethodGet, "/leaderboard", "")

		require.Equal(t, http.StatusOK, rec.Code)
		require.JSONEq(t,
			`{"success":true,"filter":"registration","timeFrame":"all-time","leaderboard":[]}`,
			rec.Body.String(),
		)
	})

	t.Run("missing limit uses default", func(t *testing.T) {
		router, stubs := newTestRouter(t, false)
		stubs.leaderboard.result = leaderboard.Result{Entries: []models.LeaderboardEntry{}}

		doRequest(t, router, http.MethodGet, "/leaderboard", "")

		require.Equal(t, leaderboard.DefaultLimit, stubs.leaderboard.gotReq.Limit)
	})

	t.Run("rejects bad limit", func(t *testing.T) {
		for _, limit := range []string{"abc", "0", "-3", "1.5"} {
			router, _ := newTestRouter(t, false)

			rec := doRequest(t, router, http.MethodGet, "/leaderboard?limit="+limit, "")

			require.Equal(t, http.StatusBadRequest, rec.Code, "limit=%s", limit)
			require.JSONEq(t,
				`{"success":false,"message":"Limit must be a positive integer"}`,
				rec.Body.String(),
			)
		}
	})

	t.Run("service failure without diagnostics", func(t *testing.T) {
		router, stubs := newTestRouter(t, false)
		stubs.leaderboard.err = errors.New("pg down")

		rec := doRequest(t, router, http.MethodGet, "/leaderboard", "")

		require.Equal(t, http.StatusInternalServerError, rec.Code)
		require.JSONEq(t,
			`{"success":false,"message":"Failed to fetch leaderboard"}`,
			rec.Body.String(),
		)
	})

	t.Run("service failure with diagnostics", func(t *testing.T) {
		router, stubs := newTestRouter(t, true)
		stubs.leaderboard.err = errors.New("pg down")

		rec := doRequest(t, router, http.MethodGet, "/leaderboard", "")

		require.Equal(t, http.StatusInternalServerError, rec.Code)
		require.JSONEq(t,
			`{"success":false,"message":"Failed to fetch leaderboard","error":"pg down"}`,
			rec.Body.String(),
		)
	})
}

func TestCategoryEndpoints(t *testing.T) {
	categories := []string{
		models.CategoryRegistration,
		models.CategoryReferrals,
		models.CategorySpending,
		models.CategoryCofounder,
		models.CategoryEarnings,
		models.CategoryShares,
	}

	for _, category := range categories {
		t.Run(category, func(t *testing.T) {
			router, stubs := newTestRouter(t, false)
			stubs.leaderboard.result = leaderboard.Result{Category: category, Entries: []models.LeaderboardEntry{}}

			rec := doRequest(t, router, http.MethodGet, "/leaderboard/"+category, "")

			require.Equal(t, http.StatusOK, rec.Code)
			require.Equal(t, category, stubs.leaderboard.gotReq.Category)
			require.Equal(t, models.TimeFrameAll, stubs.leaderboard.gotReq.TimeFrame)
		})
	}

	t.Run("category endpoint ignores timeFrame param", func(t *testing.T) {
		router, stubs := newTestRouter(t, false)
		stubs.leaderboard.result = leaderboard.Result{Entries: []models.LeaderboardEntry{}}

		doRequest(t, router, http.MethodGet, "/leaderboard/shares?timeFrame=daily", "")

		require.Equal(t, models.TimeFrameAll, stubs.leaderboard.gotReq.TimeFrame)
	})
}

func TestTimeFrameEndpoints(t *testing.T) {
	frames := []string{
		models.TimeFrameDaily,
		models.TimeFrameWeekly,
		models.TimeFrameMonthly,
		models.TimeFrameYearly,
	}

	for _, frame := range frames {
		t.Run(frame+" defaults to earnings", func(t *testing.T) {
			router, stubs := newTestRouter(t, false)
			stubs.leaderboard.result = leaderboard.Result{Entries: []models.LeaderboardEntry{}}

			rec := doRequest(t, router, http.MethodGet, "/leaderboard/"+frame, "")

			require.Equal(t, http.StatusOK, rec.Code)
			require.Equal(t, models.CategoryEarnings, stubs.leaderboard.gotReq.Category)
			require.Equal(t, frame, stubs.leaderboard.gotReq.TimeFrame)
		})
	}

	t.Run("filter param overrides the default", func(t *testing.T) {
		router, stubs := newTestRouter(t, false)
		stubs.leaderboard.result = leaderboard.Result{Entries: []models.LeaderboardEntry{}}

		doRequest(t, router, http.MethodGet, "/leaderboard/weekly?filter=referrals", "")

		require.Equal(t, models.CategoryReferrals, stubs.leaderboard.gotReq.Category)
		require.Equal(t, models.TimeFrameWeekly, stubs.leaderboard.gotReq.TimeFrame)
	})
}

func TestLeaderboardEntrySerialization(t *testing.T) {
	period := decimal.RequireFromString("250")
	entry := models.LeaderboardEntry{
		ID:             uuid.MustParse("aaaaaaaa-0000-0000-0000-000000000001"),
		Name:           "Ada",
		UserName:       "ada",
		TotalShares:    100,
		CombinedShares: 100,
		PeriodEarnings: &period,
	}

	router, stubs := newTestRouter(t, false)
	stubs.leaderboard.result = leaderboard.Result{
		Category:  models.CategoryEarnings,
		TimeFrame: models.TimeFrameMonthly,
		Entries:   []models.LeaderboardEntry{entry},
	}

	rec := doRequest(t, router, http.MethodGet, "/leaderboard/monthly", "")

	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Leaderboard []map[string]json.RawMessage `json:"leaderboard"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Leaderboard, 1)

	row := body.Leaderboard[0]
	require.Contains(t, row, "periodEarnings")
	require.NotContains(t, row, "periodSpending", "unset period fields must be omitted")
	require.NotContains(t, row, "periodReferrals")
	require.Contains(t, row, "currentBalance")
	require.Contains(t, row, "combinedShares")
}
