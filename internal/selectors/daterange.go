// Package selectors contains pure read-only projections over store
// snapshots. Nothing here caches or mutates; every function recomputes from
// its arguments, which is fine at single-user ledger volumes.
package selectors

import (
	"time"

	apperrors "tally/internal/errors"
	"tally/internal/models"
)

const dateLayout = "2006-01-02"

// Span is an inclusive calendar interval in YYYY-MM-DD form.
type Span struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// Range computes the inclusive span for a granularity anchored at date.
// Weeks run Sunday through Saturday; months and years cover the full
// calendar month/year containing the date.
func Range(r models.DateRange, date string) (Span, error) {
	day, err := time.Parse(dateLayout, date)
	if err != nil {
		return Span{}, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid date: "+date)
	}

	var start, end time.Time
	switch r {
	case models.DateRangeDay:
		start, end = day, day
	case models.DateRangeWeek:
		start = day.AddDate(0, 0, -int(day.Weekday()))
		end = start.AddDate(0, 0, 6)
	case models.DateRangeMonth:
		start = time.Date(day.Year(), day.Month(), 1, 0, 0, 0, 0, time.UTC)
		end = start.AddDate(0, 1, -1)
	case models.DateRangeYear:
		start = time.Date(day.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
		end = time.Date(day.Year(), time.December, 31, 0, 0, 0, 0, time.UTC)
	default:
		return Span{}, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid date range: "+string(r))
	}

	return Span{Start: start.Format(dateLayout), End: end.Format(dateLayout)}, nil
}
