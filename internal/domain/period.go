package domain

import (
	"fmt"
	"strings"
	"time"
)

// Period is a calendar bucket used to filter sales for reporting.
type Period string

const (
	PeriodMonthly   Period = "monthly"
	PeriodQuarterly Period = "quarterly"
	PeriodYearly    Period = "yearly"
)

// ParsePeriod converts a user-supplied string to a Period.
func ParsePeriod(s string) (Period, error) {
	switch Period(strings.ToLower(strings.TrimSpace(s))) {
	case PeriodMonthly:
		return PeriodMonthly, nil
	case PeriodQuarterly:
		return PeriodQuarterly, nil
	case PeriodYearly:
		return PeriodYearly, nil
	default:
		return "", NewValidationError("period", fmt.Sprintf("must be one of monthly, quarterly, yearly (got %q)", s))
	}
}

// Validate reports whether p is one of the known calendar buckets. Values
// built through ParsePeriod always pass.
func (p Period) Validate() error {
	switch p {
	case PeriodMonthly, PeriodQuarterly, PeriodYearly:
		return nil
	default:
		return NewValidationError("period", fmt.Sprintf("unknown period %q", string(p)))
	}
}

// Range returns the half-open interval [start, end) of the calendar bucket
// containing asOf: the calendar month, quarter, or year, in asOf's location.
// An unknown period yields zero times; callers must Validate first.
func (p Period) Range(asOf time.Time) (start, end time.Time) {
	y, m, _ := asOf.Date()
	loc := asOf.Location()

	switch p {
	case PeriodMonthly:
		start = time.Date(y, m, 1, 0, 0, 0, 0, loc)
		end = start.AddDate(0, 1, 0)
	case PeriodQuarterly:
		qm := time.Month((int(m)-1)/3*3 + 1)
		start = time.Date(y, qm, 1, 0, 0, 0, 0, loc)
		end = start.AddDate(0, 3, 0)
	case PeriodYearly:
		start = time.Date(y, time.January, 1, 0, 0, 0, 0, loc)
		end = start.AddDate(1, 0, 0)
	}
	return start, end
}
