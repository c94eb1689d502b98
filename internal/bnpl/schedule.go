// Package bnpl models buy-now-pay-later installment schedules from the
// tamara and tabby providers.
package bnpl

import (
	"math"
	"sort"
	"time"
)

// StatusPending marks an installment that has not been paid yet. Anything
// else (paid, cancelled) is out of scope for the due-soon view.
const StatusPending = "pending"

// Providers as displayed on the dashboard.
const (
	ProviderTamara = "تمارا"
	ProviderTabby  = "تابي"
)

// Payment is one installment of a BNPL purchase.
type Payment struct {
	Provider      string  `json:"provider,omitempty"`
	Merchant      string  `json:"merchant,omitempty"`
	Amount        float64 `json:"amount"`
	DueDate       string  `json:"due_date"`
	Status        string  `json:"status"`
	PaymentNumber int     `json:"payment_number,omitempty"`
	TotalPayments int     `json:"total_payments,omitempty"`
}

// Due parses the installment's due date. A malformed date is reported as the
// zero time so the payment still shows up, just without urgency signals.
func (p Payment) Due() time.Time {
	for _, layout := range []string{"2006-01-02", time.RFC3339} {
		if ts, err := time.Parse(layout, p.DueDate); err == nil {
			return ts
		}
	}
	return time.Time{}
}

// DaysLeft counts whole days until the due date, rounding up. Overdue
// installments come back negative.
func (p Payment) DaysLeft(now time.Time) int {
	due := p.Due()
	if due.IsZero() {
		return 0
	}
	return int(math.Ceil(due.Sub(now).Hours() / 24))
}

// Urgent reports whether the installment is due within three days.
func (p Payment) Urgent(now time.Time) bool {
	return !p.Due().IsZero() && p.DaysLeft(now) <= 3
}

// Schedule is the on-disk shape of bnpl-payments.json: one payment list per
// provider.
type Schedule struct {
	Tamara []Payment `json:"tamara"`
	Tabby  []Payment `json:"tabby"`
}

// Pending merges both providers, keeps only unpaid installments and orders
// them by due date ascending. Provider labels are stamped on the way out.
func (s Schedule) Pending() []Payment {
	out := make([]Payment, 0, len(s.Tamara)+len(s.Tabby))
	for _, p := range s.Tamara {
		if p.Status == StatusPending {
			p.Provider = ProviderTamara
			out = append(out, p)
		}
	}
	for _, p := range s.Tabby {
		if p.Status == StatusPending {
			p.Provider = ProviderTabby
			out = append(out, p)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Due().Before(out[j].Due())
	})
	return out
}

// Outstanding totals the amounts of all pending installments.
func (s Schedule) Outstanding() float64 {
	var total float64
	for _, p := range s.Pending() {
		total += p.Amount
	}
	return total
}
