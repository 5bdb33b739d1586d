package handlers

import (
	"net/http"
	"strconv"

	"github.com/temidayo/shareboard/internal/apperrors"
	"github.com/temidayo/shareboard/internal/handlers/render"
	"github.com/temidayo/shareboard/internal/logger"
	"github.com/temidayo/shareboard/internal/models"
	"github.com/temidayo/shareboard/internal/service/leaderboard"
)

type leaderboardResponse struct {
	Success     bool                      `json:"success"`
	Filter      string                    `json:"filter"`
	TimeFrame   string                    `json:"timeFrame"`
	Leaderboard []models.LeaderboardEntry `json:"leaderboard"`
}

// handleLeaderboard serves the generic endpoint: filter and timeFrame come
// from the query string, unknown values silently fall back.
func handleLeaderboard(s leaderboardService, l logger.Logger, diagnostics bool) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		req := leaderboard.Request{
			Category:  r.URL.Query().Get("filter"),
			TimeFrame: r.URL.Query().Get("timeFrame"),
		}

		serveLeaderboard(w, r, s, l, diagnostics, req)
	})
}

// handleCategoryLeaderboard forces the filter; the window stays all-time
func handleCategoryLeaderboard(s leaderboardService, category string, l logger.Logger, diagnostics bool) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		req := leaderboard.Request{
			Category: category,
		}

		serveLeaderboard(w, r, s, l, diagnostics, req)
	})
}

// handleTimeFrameLeaderboard forces the window; the filter comes from the
// query string and defaults to earnings
func handleTimeFrameLeaderboard(s leaderboardService, frame string, l logger.Logger, diagnostics bool) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		category := r.URL.Query().Get("filter")
		if category == "" {
			category = models.CategoryEarnings
		}

		req := leaderboard.Request{
			Category:  category,
			TimeFrame: frame,
		}

		serveLeaderboard(w, r, s, l, diagnostics, req)
	})
}

func serveLeaderboard(w http.ResponseWriter, r *http.Request, s leaderboardService, l logger.Logger, diagnostics bool, req leaderboard.Request) {
	limit, err := parseLimit(r)
	if err != nil {
		render.Fail(w, "Limit must be a positive integer", http.StatusBadRequest)
		return
	}
	req.Limit = limit

	result, err := s.Leaderboard(r.Context(), req)
	if err != nil {
		l.Error("Failed to fetch leaderboard", "error", err)
		render.FailErr(w, "Failed to fetch leaderboard", http.StatusInternalServerError, err, diagnostics)
		return
	}

	render.JSON(w, leaderboardResponse{
		Success:     true,
		Filter:      result.Category,
		TimeFrame:   timeFrameLabel(result.TimeFrame),
		Leaderboard: result.Entries,
	})
}

// parseLimit reads the limit query param. Absent means the default; values
// that do not parse as a positive integer are a bad request. Values above
// the maximum are clamped by the resolver, not rejected.
func parseLimit(r *http.Request) (int, error) {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return leaderboard.DefaultLimit, nil
	}

	limit, err := strconv.Atoi(raw)
	if err != nil || limit <= 0 {
		return 0, apperrors.ErrInvalidLimit
	}

	return limit, nil
}

func timeFrameLabel(frame string) string {
	if frame == models.TimeFrameAll {
		return "all-time"
	}
	return frame
}
