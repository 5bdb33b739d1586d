package leaderboard

import (
	"context"
	"time"

	"github.com/temidayo/shareboard/internal/models"
	"github.com/temidayo/shareboard/internal/repository"
)

// Result carries the resolved filter and time frame next to the entries so
// the HTTP layer can echo what was actually applied.
type Result struct {
	Category  string
	TimeFrame string
	Entries   []models.LeaderboardEntry
}

type Service struct {
	store repository.LeaderboardReader
	now   func() time.Time
}

type Option func(*Service)

// WithClock replaces the threshold clock. Tests use it for deterministic
// calendar windows.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

func NewService(store repository.LeaderboardReader, opts ...Option) *Service {
	s := &Service{
		store: store,
		now:   time.Now,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Leaderboard resolves the request against the current clock and runs the
// aggregation. Stateless per call; concurrent calls share nothing.
func (s *Service) Leaderboard(ctx context.Context, req Request) (Result, error) {
	d := Resolve(s.now(), req)

	entries, err := aggregate(ctx, s.store, d)
	if err != nil {
		return Result{}, err
	}

	return Result{
		Category:  d.Category,
		TimeFrame: d.TimeFrame,
		Entries:   entries,
	}, nil
}
