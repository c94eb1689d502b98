package core

import (
	"encoding/json"
	"math"
	"sort"
)

// LocalCurrency is the display currency. Cards denominated in anything else
// pass through untouched and stay out of computed totals.
const LocalCurrency = "SAR"

// BalanceAccount is one sub-account inside a bank's balance breakdown.
type BalanceAccount struct {
	Name    string  `json:"name,omitempty"`
	Balance float64 `json:"balance"`
}

// BalanceCard is one card inside a bank's balance breakdown.
type BalanceCard struct {
	Name     string  `json:"name,omitempty"`
	Balance  float64 `json:"balance"`
	Currency string  `json:"currency,omitempty"`
}

// BalanceSnapshot is one bank's entry in balances.json. The file stores
// either a bare number or a structured breakdown; both decode into this.
type BalanceSnapshot struct {
	Balance  float64                   `json:"balance"`
	Accounts map[string]BalanceAccount `json:"accounts,omitempty"`
	Cards    map[string]BalanceCard    `json:"cards,omitempty"`
}

func (b *BalanceSnapshot) UnmarshalJSON(data []byte) error {
	var flat float64
	if err := json.Unmarshal(data, &flat); err == nil {
		*b = BalanceSnapshot{Balance: flat}
		return nil
	}
	type snapshot BalanceSnapshot
	var full snapshot
	if err := json.Unmarshal(data, &full); err != nil {
		return err
	}
	*b = BalanceSnapshot(full)
	return nil
}

// MarshalJSON keeps the on-disk format stable: entries without a breakdown
// are written back as bare numbers.
func (b BalanceSnapshot) MarshalJSON() ([]byte, error) {
	if !b.HasBreakdown() {
		return json.Marshal(b.Balance)
	}
	type snapshot BalanceSnapshot
	return json.Marshal(snapshot(b))
}

// Total is the bank's balance for display. The flat field is authoritative;
// the breakdown only corroborates it.
func (b BalanceSnapshot) Total() float64 {
	return b.Balance
}

// HasBreakdown reports whether the entry carries sub-accounts or cards.
func (b BalanceSnapshot) HasBreakdown() bool {
	return len(b.Accounts) > 0 || len(b.Cards) > 0
}

// ComputedTotal sums the breakdown: every sub-account plus local-currency
// cards. Foreign-currency cards are excluded because their balance is not in
// the display currency.
func (b BalanceSnapshot) ComputedTotal() float64 {
	var sum float64
	for _, acc := range b.Accounts {
		sum += acc.Balance
	}
	for _, card := range b.Cards {
		if card.Currency != "" && card.Currency != LocalCurrency {
			continue
		}
		sum += card.Balance
	}
	return sum
}

// BreakdownFinding records a stated-vs-computed balance mismatch. It is a
// data-integrity defect to surface in an audit, never a reason to fail.
type BreakdownFinding struct {
	Bank     string  `json:"bank"`
	Stated   float64 `json:"stated"`
	Computed float64 `json:"computed"`
}

// CheckBreakdowns compares each structured entry's flat balance with its
// breakdown sum and returns the mismatches beyond a rounding tolerance,
// ordered by bank for stable output.
func CheckBreakdowns(balances map[string]BalanceSnapshot) []BreakdownFinding {
	var findings []BreakdownFinding
	for bank, b := range balances {
		if !b.HasBreakdown() {
			continue
		}
		computed := b.ComputedTotal()
		if math.Abs(b.Balance-computed) > 0.01 {
			findings = append(findings, BreakdownFinding{Bank: bank, Stated: b.Balance, Computed: computed})
		}
	}
	sort.Slice(findings, func(i, j int) bool { return findings[i].Bank < findings[j].Bank })
	return findings
}

// TotalBalances sums every bank's stated balance.
func TotalBalances(balances map[string]BalanceSnapshot) float64 {
	var total float64
	for _, b := range balances {
		total += b.Total()
	}
	return total
}
