package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FerasMahmoud/firas-finance-dashboard/internal/bnpl"
	"github.com/FerasMahmoud/firas-finance-dashboard/internal/core"
)

type fakeLedger struct {
	transactions []core.TransactionRecord
	balances     map[string]core.BalanceSnapshot
	appendErr    error
}

func (f *fakeLedger) Transactions(ctx context.Context) ([]core.TransactionRecord, error) {
	return f.transactions, nil
}

func (f *fakeLedger) Balances(ctx context.Context) (map[string]core.BalanceSnapshot, error) {
	return f.balances, nil
}

func (f *fakeLedger) Schedule(ctx context.Context) (bnpl.Schedule, error) {
	return bnpl.Schedule{}, nil
}

func (f *fakeLedger) AppendTransaction(ctx context.Context, rec core.TransactionRecord) (core.TransactionRecord, error) {
	if f.appendErr != nil {
		return core.TransactionRecord{}, f.appendErr
	}
	rec.ID = int64(len(f.transactions) + 1)
	f.transactions = append(f.transactions, rec)
	return rec, nil
}

func (f *fakeLedger) SetBalance(ctx context.Context, bank string, amount float64) error {
	if f.balances == nil {
		f.balances = make(map[string]core.BalanceSnapshot)
	}
	f.balances[bank] = core.BalanceSnapshot{Balance: amount}
	return nil
}

func (f *fakeLedger) AdjustBalance(ctx context.Context, bank string, delta float64) (float64, error) {
	entry := f.balances[bank]
	entry.Balance += delta
	if f.balances == nil {
		f.balances = make(map[string]core.BalanceSnapshot)
	}
	f.balances[bank] = entry
	return entry.Balance, nil
}

func (f *fakeLedger) Close() error { return nil }

type fakeNotifier struct {
	published []int64
	err       error
}

func (f *fakeNotifier) PublishLedgerChanged(ctx context.Context, id int64, source string) error {
	if f.err != nil {
		return f.err
	}
	f.published = append(f.published, id)
	return nil
}

func (f *fakeNotifier) Close() error { return nil }

func TestAddTransactionPublishesChange(t *testing.T) {
	ledger := &fakeLedger{}
	notifier := &fakeNotifier{}
	svc := NewLedgerService(ledger, notifier)

	saved, err := svc.AddTransaction(context.Background(), core.TransactionRecord{
		Timestamp:       time.Now(),
		Bank:            "stc",
		Amount:          42,
		TransactionType: core.TagExpense,
	}, "cli")
	require.NoError(t, err)
	assert.Equal(t, int64(1), saved.ID)
	assert.Equal(t, []int64{1}, notifier.published)
}

func TestAddTransactionSurvivesPublishFailure(t *testing.T) {
	ledger := &fakeLedger{}
	notifier := &fakeNotifier{err: errors.New("broker down")}
	svc := NewLedgerService(ledger, notifier)

	saved, err := svc.AddTransaction(context.Background(), core.TransactionRecord{
		Timestamp:       time.Now(),
		Bank:            "stc",
		Amount:          42,
		TransactionType: core.TagExpense,
	}, "http")
	require.NoError(t, err)
	assert.Equal(t, int64(1), saved.ID)
	assert.Len(t, ledger.transactions, 1)
}

func TestAddTransactionWithoutNotifier(t *testing.T) {
	svc := NewLedgerService(&fakeLedger{}, nil)

	_, err := svc.AddTransaction(context.Background(), core.TransactionRecord{
		Timestamp:       time.Now(),
		Bank:            "stc",
		Amount:          10,
		TransactionType: core.TagIncome,
	}, "cli")
	assert.NoError(t, err)
}

func TestAddTransactionAppendError(t *testing.T) {
	svc := NewLedgerService(&fakeLedger{appendErr: errors.New("disk full")}, &fakeNotifier{})

	_, err := svc.AddTransaction(context.Background(), core.TransactionRecord{}, "cli")
	assert.Error(t, err)
}

func TestBalanceWrites(t *testing.T) {
	ledger := &fakeLedger{balances: map[string]core.BalanceSnapshot{"stc": {Balance: 100}}}
	notifier := &fakeNotifier{}
	svc := NewLedgerService(ledger, notifier)

	require.NoError(t, svc.SetBalance(context.Background(), "alrajhi", 500, "cli"))

	got, err := svc.AdjustBalance(context.Background(), "stc", -30, "cli")
	require.NoError(t, err)
	assert.Equal(t, 70.0, got)
	assert.Len(t, notifier.published, 2)
}

func TestAudit(t *testing.T) {
	now := time.Now()
	ledger := &fakeLedger{
		transactions: []core.TransactionRecord{
			{ID: 1, Timestamp: now, Bank: "stc", Amount: 10, TransactionType: core.TagExpense},
			{ID: 2, Timestamp: now, Bank: "mystery-bank", Amount: 20}, // unclassified + unmapped
			{ID: 3, Bank: "stc", Amount: 30, TransactionType: core.TagIncome},
		},
		balances: map[string]core.BalanceSnapshot{
			"stc": {
				Balance:  1000,
				Accounts: map[string]core.BalanceAccount{"main": {Balance: 400}},
			},
		},
	}
	svc := NewLedgerService(ledger, nil)

	report, err := svc.Audit(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 3, report.Transactions)
	assert.Equal(t, 1, report.Unclassified)
	assert.Equal(t, 1, report.MissingTimestamps)
	assert.Zero(t, report.BadAmounts)
	assert.Equal(t, []string{"mystery-bank"}, report.UnmappedBanks)
	require.Len(t, report.BalanceFindings, 1)
	assert.Equal(t, "stc", report.BalanceFindings[0].Bank)
	assert.False(t, report.Clean())
}

func TestAuditClean(t *testing.T) {
	ledger := &fakeLedger{
		transactions: []core.TransactionRecord{
			{ID: 1, Timestamp: time.Now(), Bank: "stc", Amount: 10, TransactionType: core.TagExpense},
		},
	}
	svc := NewLedgerService(ledger, nil)

	report, err := svc.Audit(context.Background())
	require.NoError(t, err)
	assert.True(t, report.Clean())
}
