// Package periods centralizes every calendar computation that depends on the
// books' fixed local timezone. Day and month boundaries are resolved in that
// zone and converted to UTC instants before they reach the store.
package periods

import (
	"fmt"
	"time"

	"github.com/quipuerp/accounting/internal/apperrors"
)

// NameLayout is the canonical period key, e.g. "2025-02".
const NameLayout = "2006-01"

// NameFor returns the canonical period name for an instant, evaluated in the
// given local timezone.
func NameFor(t time.Time, loc *time.Location) string {
	return t.In(loc).Format(NameLayout)
}

// MonthBounds resolves a "YYYY-MM" period name to its inclusive UTC range:
// local midnight of the 1st through 23:59:59.999 local of the last day.
func MonthBounds(name string, loc *time.Location) (start, end time.Time, err error) {
	parsed, err := time.ParseInLocation(NameLayout, name, loc)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: period must be YYYY-MM, got %q", apperrors.ErrValidation, name)
	}
	start = parsed
	end = parsed.AddDate(0, 1, 0).Add(-time.Millisecond)
	return start.UTC(), end.UTC(), nil
}

// DayStart interprets a calendar date as local midnight and returns the UTC
// instant.
func DayStart(year int, month time.Month, day int, loc *time.Location) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, loc).UTC()
}

// DayEnd interprets a calendar date as local end-of-day (23:59:59.999).
func DayEnd(year int, month time.Month, day int, loc *time.Location) time.Time {
	return time.Date(year, month, day, 23, 59, 59, 999_000_000, loc).UTC()
}

// RangeBounds normalizes an optional inclusive [from, to] date pair. A nil
// bound stays nil; "to" defaults to "from" when only "from" is given, which
// makes a single-day query out of a single date. The calendar components of
// each bound are taken as written (query parsers produce UTC-midnight
// values) and re-anchored to the books' local day, never shifted across
// zones first.
func RangeBounds(from, to *time.Time, loc *time.Location) (start, end *time.Time) {
	if from != nil {
		y, m, d := from.Date()
		s := DayStart(y, m, d, loc)
		start = &s
	}
	effective := to
	if effective == nil {
		effective = from
	}
	if effective != nil {
		y, m, d := effective.Date()
		e := DayEnd(y, m, d, loc)
		end = &e
	}
	return start, end
}
