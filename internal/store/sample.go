package store

import (
	"time"

	"github.com/FerasMahmoud/firas-finance-dashboard/internal/core"
)

// sampleTransactions mirrors the demo data the dashboard shows when the real
// files are unavailable.
func sampleTransactions(now time.Time) []core.TransactionRecord {
	return []core.TransactionRecord{
		{
			ID:              1,
			Timestamp:       now,
			Bank:            "banque-saudi",
			Amount:          150,
			Merchant:        "مطعم النخيل",
			Category:        "طعام",
			Classification:  "شخصي",
			TransactionType: core.TagExpense,
			Note:            "غداء",
			Confirmed:       true,
		},
		{
			ID:              2,
			Timestamp:       now.Add(-24 * time.Hour),
			Bank:            "alrajhi",
			Amount:          500,
			Merchant:        "كارفور",
			Category:        "تسوق",
			Classification:  "عائلة",
			TransactionType: core.TagExpense,
			Note:            "مشتريات شهرية",
			Confirmed:       true,
		},
		{
			ID:              3,
			Timestamp:       now.Add(-48 * time.Hour),
			Bank:            "stc",
			Amount:          5000,
			Merchant:        "راتب",
			Category:        "دخل",
			Classification:  "شخصي",
			TransactionType: core.TagIncome,
			Confirmed:       true,
		},
	}
}

func sampleBalances() map[string]core.BalanceSnapshot {
	return map[string]core.BalanceSnapshot{
		"banque-saudi": {Balance: 15000},
		"alrajhi":      {Balance: 8500},
		"barq":         {Balance: 2000},
		"tikmo":        {Balance: 1500},
		"stc":          {Balance: 3000},
	}
}
