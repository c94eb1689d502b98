// Package store persists the ledger: transactions, per-bank balances and the
// BNPL installment schedule. Two implementations exist, a JSON file store
// matching the dashboard's data directory layout and a SQLite store for
// larger histories.
package store

import (
	"context"

	"github.com/FerasMahmoud/firas-finance-dashboard/internal/bnpl"
	"github.com/FerasMahmoud/firas-finance-dashboard/internal/core"
)

// Ledger is the storage contract shared by the HTTP API, the CLI and the
// services layer.
type Ledger interface {
	// Transactions returns the full unfiltered transaction history.
	Transactions(ctx context.Context) ([]core.TransactionRecord, error)

	// Balances returns the per-bank balance entries keyed by raw bank id.
	Balances(ctx context.Context) (map[string]core.BalanceSnapshot, error)

	// Schedule returns the BNPL installment schedule. An empty schedule is
	// normal when no installments exist.
	Schedule(ctx context.Context) (bnpl.Schedule, error)

	// AppendTransaction validates and persists a new record, assigning the
	// next free id. The stored record is returned.
	AppendTransaction(ctx context.Context, rec core.TransactionRecord) (core.TransactionRecord, error)

	// SetBalance overwrites a bank's flat balance.
	SetBalance(ctx context.Context, bank string, amount float64) error

	// AdjustBalance adds delta to a bank's flat balance and returns the new
	// value.
	AdjustBalance(ctx context.Context, bank string, delta float64) (float64, error)

	Close() error
}
