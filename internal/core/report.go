package core

import (
	"fmt"
	"time"
)

// ReportKind selects one of the canned reports.
type ReportKind string

const (
	ReportDaily      ReportKind = "daily"
	ReportWeekly     ReportKind = "weekly"
	ReportMonthly    ReportKind = "monthly"
	ReportComparison ReportKind = "comparison"
)

// ParseReportKind validates a report kind coming off the wire.
func ParseReportKind(s string) (ReportKind, error) {
	switch ReportKind(s) {
	case ReportDaily, ReportWeekly, ReportMonthly, ReportComparison:
		return ReportKind(s), nil
	default:
		return "", fmt.Errorf("unknown report kind %q", s)
	}
}

// ReportTotals is the common shape of a report window.
type ReportTotals struct {
	Income   float64 `json:"income"`
	Expenses float64 `json:"expenses"`
	Net      float64 `json:"net"`
	Count    int     `json:"count"`
}

// Report is the result of BuildReport. ByCategory is populated for monthly
// reports; Current, Previous and Diff for comparison reports.
type Report struct {
	Kind       ReportKind         `json:"kind"`
	Totals     ReportTotals       `json:"totals"`
	ByCategory map[string]float64 `json:"byCategory,omitempty"`
	Current    *ReportTotals      `json:"current,omitempty"`
	Previous   *ReportTotals      `json:"previous,omitempty"`
	Diff       *ReportTotals      `json:"diff,omitempty"`
}

// BuildReport answers "what happened in this window" from the full record
// set. Reports deliberately ignore whatever ad-hoc filter the user has
// active: callers must pass the unfiltered collection. Empty windows yield
// zero totals, never an error.
func BuildReport(kind ReportKind, records []TransactionRecord, now time.Time) (Report, error) {
	switch kind {
	case ReportDaily:
		return windowReport(kind, records, PeriodToday, now), nil
	case ReportWeekly:
		return windowReport(kind, records, PeriodWeek, now), nil
	case ReportMonthly:
		r := windowReport(kind, records, PeriodMonth, now)
		s := Aggregate(periodSubset(records, PeriodMonth, now))
		r.ByCategory = s.ByCategory
		return r, nil
	case ReportComparison:
		return comparisonReport(records, now), nil
	default:
		return Report{}, fmt.Errorf("unknown report kind %q", kind)
	}
}

func windowReport(kind ReportKind, records []TransactionRecord, p Period, now time.Time) Report {
	return Report{Kind: kind, Totals: totalsOf(periodSubset(records, p, now))}
}

func periodSubset(records []TransactionRecord, p Period, now time.Time) []TransactionRecord {
	return ApplyFilters(records, FilterCriteria{Period: p}, now)
}

func totalsOf(records []TransactionRecord) ReportTotals {
	s := Aggregate(records)
	return ReportTotals{Income: s.Income, Expenses: s.Expenses, Net: s.Net, Count: s.Count}
}

// PreviousMonth steps one calendar month back, rolling January over to
// December of the prior year.
func PreviousMonth(year int, month time.Month) (int, time.Month) {
	if month == time.January {
		return year - 1, time.December
	}
	return year, month - 1
}

func comparisonReport(records []TransactionRecord, now time.Time) Report {
	curYear, curMonth := now.Year(), now.Month()
	prevYear, prevMonth := PreviousMonth(curYear, curMonth)

	current := totalsOf(monthSubset(records, curYear, curMonth, now.Location()))
	previous := totalsOf(monthSubset(records, prevYear, prevMonth, now.Location()))
	diff := ReportTotals{
		Income:   current.Income - previous.Income,
		Expenses: current.Expenses - previous.Expenses,
		Net:      current.Net - previous.Net,
		Count:    current.Count - previous.Count,
	}
	return Report{
		Kind:     ReportComparison,
		Totals:   current,
		Current:  &current,
		Previous: &previous,
		Diff:     &diff,
	}
}

func monthSubset(records []TransactionRecord, year int, month time.Month, loc *time.Location) []TransactionRecord {
	out := make([]TransactionRecord, 0)
	for _, r := range records {
		if !r.HasTimestamp() {
			continue
		}
		ts := r.Timestamp.In(loc)
		if ts.Year() == year && ts.Month() == month {
			out = append(out, r)
		}
	}
	return out
}
