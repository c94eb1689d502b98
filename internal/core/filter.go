package core

import "time"

// FilterCriteria is the transient filter state owned by the presentation
// layer. Empty string fields mean no constraint; PeriodAll means no time
// constraint. The engine receives it by value and never stores it.
type FilterCriteria struct {
	Bank           string `json:"bank"`
	Category       string `json:"category"`
	Classification string `json:"classification"`
	Period         Period `json:"period"`
}

// IsZero reports whether no constraint is active.
func (c FilterCriteria) IsZero() bool {
	return c.Bank == "" && c.Category == "" && c.Classification == "" &&
		(c.Period == "" || c.Period == PeriodAll)
}

// ApplyFilters returns the records matching every active constraint. The
// input is never mutated and the result is always a fresh slice, so repeated
// application is safe and idempotent.
func ApplyFilters(records []TransactionRecord, c FilterCriteria, now time.Time) []TransactionRecord {
	out := make([]TransactionRecord, 0, len(records))
	for _, r := range records {
		if matches(r, c, now) {
			out = append(out, r)
		}
	}
	return out
}

func matches(r TransactionRecord, c FilterCriteria, now time.Time) bool {
	// Banks compare canonically so a legacy slug filter still finds records
	// stored under the Arabic name and vice versa.
	if c.Bank != "" && CanonicalBankName(r.Bank) != CanonicalBankName(c.Bank) {
		return false
	}
	if c.Category != "" && r.Category != c.Category {
		return false
	}
	if c.Classification != "" && r.Classification != c.Classification {
		return false
	}
	if c.Period != "" && c.Period != PeriodAll {
		// A record without a usable date fails an active period constraint
		// like any other mismatch.
		if !r.HasTimestamp() || !InPeriod(r.Timestamp, c.Period, now) {
			return false
		}
	}
	return true
}
