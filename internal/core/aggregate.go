package core

import "sort"

// Summary is the aggregate the dashboard totals and breakdown charts are
// painted from. Breakdown maps cover expense-classified records only: income
// is a single number and transfers are internal movements, not P&L events, so
// neither belongs in a spending chart.
type Summary struct {
	Income       float64            `json:"income"`
	Expenses     float64            `json:"expenses"`
	Net          float64            `json:"net"`
	Count        int                `json:"count"`
	Unclassified int                `json:"unclassified"`
	ByCategory   map[string]float64 `json:"byCategory"`
	ByBank       map[string]float64 `json:"byBank"`
	ByClassification map[string]float64 `json:"byClassification"`
}

// Aggregate computes totals and expense breakdowns over records. Transfers
// and unclassified records contribute to no total; unclassified ones are
// counted so data quality stays visible. Records whose amount cannot be
// summed are skipped individually.
func Aggregate(records []TransactionRecord) Summary {
	s := Summary{
		ByCategory:       make(map[string]float64),
		ByBank:           make(map[string]float64),
		ByClassification: make(map[string]float64),
	}
	for _, r := range records {
		s.Count++
		if !r.HasAmount() {
			continue
		}
		switch Classify(r) {
		case KindIncome:
			s.Income += r.Magnitude()
		case KindExpense:
			s.Expenses += r.Magnitude()
			s.ByCategory[r.Category] += r.Magnitude()
			// Bank buckets group by display name so legacy slugs and Arabic
			// names never split.
			s.ByBank[CanonicalBankName(r.Bank)] += r.Magnitude()
			s.ByClassification[r.Classification] += r.Magnitude()
		case KindUnclassified:
			s.Unclassified++
		}
	}
	s.Net = s.Income - s.Expenses
	return s
}

// BarPercents sizes the income and expense bars relative to the larger of the
// two. Both zero yields zero for both.
func BarPercents(income, expenses float64) (incomePct, expensesPct float64) {
	max := income
	if expenses > max {
		max = expenses
	}
	if max <= 0 {
		return 0, 0
	}
	return income / max * 100, expenses / max * 100
}

// MostRecent returns up to n records ordered newest first. The sort is stable
// so records sharing a timestamp keep their input order, and the input slice
// is left untouched.
func MostRecent(records []TransactionRecord, n int) []TransactionRecord {
	out := make([]TransactionRecord, len(records))
	copy(out, records)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Timestamp.After(out[j].Timestamp)
	})
	if n >= 0 && n < len(out) {
		out = out[:n]
	}
	return out
}
