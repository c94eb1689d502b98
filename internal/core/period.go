package core

import (
	"fmt"
	"time"
)

// Period names a calendar or rolling time window used to restrict a
// transaction collection.
type Period string

const (
	PeriodAll   Period = "all"
	PeriodToday Period = "today"
	PeriodWeek  Period = "week"
	PeriodMonth Period = "month"
	PeriodYear  Period = "year"
)

// ParsePeriod validates a period coming off the wire. The empty string means
// no constraint and parses as PeriodAll.
func ParsePeriod(s string) (Period, error) {
	switch Period(s) {
	case "":
		return PeriodAll, nil
	case PeriodAll, PeriodToday, PeriodWeek, PeriodMonth, PeriodYear:
		return Period(s), nil
	default:
		return "", fmt.Errorf("unknown period %q", s)
	}
}

// InPeriod reports whether ts falls inside the window anchored at now. The
// reference time is injected, never read from a clock here, so period logic is
// testable against fixed dates.
//
// today is calendar-day equality, week is a rolling 7x24h window inclusive at
// the lower bound, and month/year compare decomposed calendar fields rather
// than elapsed days so months of different lengths cannot drift.
func InPeriod(ts time.Time, p Period, now time.Time) bool {
	if p == PeriodAll {
		return true
	}
	ts = ts.In(now.Location())
	switch p {
	case PeriodToday:
		y1, m1, d1 := ts.Date()
		y2, m2, d2 := now.Date()
		return y1 == y2 && m1 == m2 && d1 == d2
	case PeriodWeek:
		return !ts.Before(now.Add(-7 * 24 * time.Hour))
	case PeriodMonth:
		return ts.Year() == now.Year() && ts.Month() == now.Month()
	case PeriodYear:
		return ts.Year() == now.Year()
	default:
		return false
	}
}
