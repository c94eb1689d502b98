package core

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBalanceSnapshotDecodesFlatNumber(t *testing.T) {
	var b BalanceSnapshot
	require.NoError(t, json.Unmarshal([]byte(`12500.75`), &b))
	assert.Equal(t, 12500.75, b.Total())
	assert.False(t, b.HasBreakdown())
}

func TestBalanceSnapshotDecodesBreakdown(t *testing.T) {
	raw := `{
		"balance": 9000,
		"accounts": {"main": {"balance": 6000}, "savings": {"balance": 2500}},
		"cards": {"visa": {"balance": 500, "currency": "SAR"}}
	}`
	var b BalanceSnapshot
	require.NoError(t, json.Unmarshal([]byte(raw), &b))
	assert.Equal(t, 9000.0, b.Total())
	assert.True(t, b.HasBreakdown())
	assert.Equal(t, 9000.0, b.ComputedTotal())
}

func TestBalanceSnapshotDecodeFailure(t *testing.T) {
	var b BalanceSnapshot
	assert.Error(t, json.Unmarshal([]byte(`"not a balance"`), &b))
}

func TestComputedTotalExcludesForeignCurrencyCards(t *testing.T) {
	b := BalanceSnapshot{
		Balance:  1000,
		Accounts: map[string]BalanceAccount{"main": {Balance: 1000}},
		Cards: map[string]BalanceCard{
			"usd":   {Balance: 300, Currency: "USD"},
			"local": {Balance: 50, Currency: "SAR"},
			"plain": {Balance: 25},
		},
	}
	// USD card stays out; an unlabeled card counts as local currency.
	assert.Equal(t, 1075.0, b.ComputedTotal())
}

func TestCheckBreakdowns(t *testing.T) {
	balances := map[string]BalanceSnapshot{
		"الراجحي": {Balance: 5000, Accounts: map[string]BalanceAccount{"main": {Balance: 4000}}},
		"stc":     {Balance: 300, Accounts: map[string]BalanceAccount{"main": {Balance: 300}}},
		"برق":     {Balance: 120}, // flat entry, nothing to corroborate
	}
	findings := CheckBreakdowns(balances)
	require.Len(t, findings, 1)
	assert.Equal(t, "الراجحي", findings[0].Bank)
	assert.Equal(t, 5000.0, findings[0].Stated)
	assert.Equal(t, 4000.0, findings[0].Computed)
}

func TestCheckBreakdownsTolerance(t *testing.T) {
	balances := map[string]BalanceSnapshot{
		"stc": {Balance: 100.004, Accounts: map[string]BalanceAccount{"main": {Balance: 100}}},
	}
	assert.Empty(t, CheckBreakdowns(balances))
}

func TestCheckBreakdownsSortedByBank(t *testing.T) {
	balances := map[string]BalanceSnapshot{
		"zeta":  {Balance: 10, Accounts: map[string]BalanceAccount{"a": {Balance: 1}}},
		"alpha": {Balance: 10, Accounts: map[string]BalanceAccount{"a": {Balance: 1}}},
	}
	findings := CheckBreakdowns(balances)
	require.Len(t, findings, 2)
	assert.Equal(t, "alpha", findings[0].Bank)
	assert.Equal(t, "zeta", findings[1].Bank)
}

func TestTotalBalances(t *testing.T) {
	balances := map[string]BalanceSnapshot{
		"alrajhi": {Balance: 5000},
		"stc":     {Balance: 250.5},
	}
	assert.Equal(t, 5250.5, TotalBalances(balances))
	assert.Zero(t, TotalBalances(nil))
}
