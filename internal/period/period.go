// Package period maps a (year, month, week, quarter) tuple to a concrete
// calendar date range. A zero month/week/quarter means "not given"; the
// granularity is picked from which components are present:
//
//	year+quarter      -> the three months of the quarter
//	year+month+week   -> 7-day chunk counted from the 1st of the month,
//	                     clipped at the month's last day
//	year+month        -> the calendar month
//	year              -> the calendar year
//
// Contradictory shapes (month together with quarter, week without month) are
// rejected outright rather than resolved by precedence.
package period

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidShape marks every period shape rejection, so callers can tell a
// bad request apart from an infrastructure failure with errors.Is.
var ErrInvalidShape = errors.New("invalid period")

// Validate checks that year/month/week/quarter form one of the four valid
// period shapes, without resolving dates.
func Validate(year, month, week, quarter int) error {
	if year < 1 {
		return fmt.Errorf("%w: invalid year %d", ErrInvalidShape, year)
	}
	if quarter != 0 {
		if quarter < 1 || quarter > 4 {
			return fmt.Errorf("%w: invalid quarter %d", ErrInvalidShape, quarter)
		}
		if month != 0 || week != 0 {
			return fmt.Errorf("%w: quarter cannot be combined with month or week", ErrInvalidShape)
		}
		return nil
	}
	if month != 0 && (month < 1 || month > 12) {
		return fmt.Errorf("%w: invalid month %d", ErrInvalidShape, month)
	}
	if week != 0 {
		if month == 0 {
			return fmt.Errorf("%w: week requires a month", ErrInvalidShape)
		}
		if week < 1 || week > 5 {
			return fmt.Errorf("%w: invalid week %d", ErrInvalidShape, week)
		}
	}
	return nil
}

// Resolve returns the inclusive [start, end] date range for the period.
// Dates are plain calendar dates at UTC midnight.
func Resolve(year, month, week, quarter int) (time.Time, time.Time, error) {
	if err := Validate(year, month, week, quarter); err != nil {
		return time.Time{}, time.Time{}, err
	}

	switch {
	case quarter != 0:
		startMonth := time.Month((quarter-1)*3 + 1)
		start := time.Date(year, startMonth, 1, 0, 0, 0, 0, time.UTC)
		// Day 0 of month+3 is the last day of the quarter's third month.
		end := time.Date(year, startMonth+3, 0, 0, 0, 0, 0, time.UTC)
		return start, end, nil

	case month != 0 && week != 0:
		first := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
		start := first.AddDate(0, 0, (week-1)*7)
		if start.Month() != first.Month() {
			return time.Time{}, time.Time{}, fmt.Errorf("%w: week %d does not fall within %d-%02d", ErrInvalidShape, week, year, month)
		}
		last := time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC)
		end := start.AddDate(0, 0, 6)
		if end.After(last) {
			end = last
		}
		return start, end, nil

	case month != 0:
		start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
		end := time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC)
		return start, end, nil

	default:
		start := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
		end := time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC)
		return start, end, nil
	}
}
