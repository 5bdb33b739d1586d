package leaderboard

import (
	"time"

	"github.com/temidayo/shareboard/internal/models"
)

const (
	DefaultLimit = 10
	MaxLimit     = 100
)

// Request is the raw (category, timeFrame, limit) triple as the HTTP layer
// parsed it. Unknown category and time frame values are not errors, they fall
// back to registration and all-time.
type Request struct {
	Category  string
	TimeFrame string
	Limit     int
}

// windowSource names the transaction stream a windowed request aggregates.
// Categories without a stream (registration, cofounder, shares) window on the
// user's own createdAt instead.
type windowSource int

const (
	windowNone windowSource = iota
	windowReferrals
	windowSpending
	windowEarnings
)

// Descriptor is the resolved request: concrete threshold, effective limit and
// the sub-aggregation the engine has to run. Threshold zero means all-time.
type Descriptor struct {
	Category  string
	TimeFrame string
	Threshold time.Time
	Limit     int

	window windowSource
}

// Resolve turns a raw request into a descriptor using the given clock
// reading. Thresholds are calendar-aligned in now's location.
func Resolve(now time.Time, req Request) Descriptor {
	d := Descriptor{
		Category:  models.ParseCategory(req.Category),
		TimeFrame: models.ParseTimeFrame(req.TimeFrame),
		Limit:     req.Limit,
	}

	if d.Limit <= 0 {
		d.Limit = DefaultLimit
	}
	if d.Limit > MaxLimit {
		d.Limit = MaxLimit
	}

	d.Threshold = threshold(now, d.TimeFrame)

	if !d.Threshold.IsZero() {
		switch d.Category {
		case models.CategoryReferrals:
			d.window = windowReferrals
		case models.CategorySpending:
			d.window = windowSpending
		case models.CategoryEarnings:
			d.window = windowEarnings
		}
	}

	return d
}

// windowed reports whether a period metric drives the sort.
func (d Descriptor) windowed() bool {
	return d.window != windowNone
}

// threshold computes the calendar-aligned lower bound for a time frame.
// The week starts on Sunday.
func threshold(now time.Time, frame string) time.Time {
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	switch frame {
	case models.TimeFrameDaily:
		return midnight
	case models.TimeFrameWeekly:
		return midnight.AddDate(0, 0, -int(now.Weekday()))
	case models.TimeFrameMonthly:
		return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	case models.TimeFrameYearly:
		return time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, now.Location())
	default:
		return time.Time{}
	}
}
