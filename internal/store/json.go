package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/FerasMahmoud/firas-finance-dashboard/internal/bnpl"
	"github.com/FerasMahmoud/firas-finance-dashboard/internal/core"
)

const (
	transactionsFile = "transactions.json"
	balancesFile     = "balances.json"
	bnplFile         = "bnpl-payments.json"
)

// FileStore serves the ledger from the dashboard's JSON data directory. Reads
// come from an in-memory snapshot that Reload swaps atomically; writes update
// both the snapshot and the files.
type FileStore struct {
	dir string

	mu           sync.RWMutex
	transactions []core.TransactionRecord
	balances     map[string]core.BalanceSnapshot
	schedule     bnpl.Schedule
	skipped      int
	sampleData   bool
}

// NewFileStore loads the data directory. A missing or unreadable required
// file switches the store to generated sample data instead of failing, so the
// dashboard always has something to show.
func NewFileStore(ctx context.Context, dir string) (*FileStore, error) {
	s := &FileStore{dir: dir}
	if err := s.Reload(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

// Reload re-reads all data files concurrently and swaps the snapshot in one
// step. Readers never observe a half-loaded state.
func (s *FileStore) Reload(ctx context.Context) error {
	var (
		transactions []core.TransactionRecord
		balances     map[string]core.BalanceSnapshot
		schedule     bnpl.Schedule
		skipped      int
	)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		transactions, skipped, err = s.loadTransactions(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		balances, err = s.loadBalances(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		schedule, err = s.loadSchedule(ctx)
		return err
	})

	sample := false
	if err := g.Wait(); err != nil {
		slog.Warn("Data files unavailable, serving sample data", "dir", s.dir, "error", err)
		transactions = sampleTransactions(time.Now())
		balances = sampleBalances()
		schedule = bnpl.Schedule{}
		skipped = 0
		sample = true
	}

	s.mu.Lock()
	s.transactions = transactions
	s.balances = balances
	s.schedule = schedule
	s.skipped = skipped
	s.sampleData = sample
	s.mu.Unlock()

	slog.Info("Ledger loaded",
		"dir", s.dir,
		"transactions", len(transactions),
		"banks", len(balances),
		"skipped_records", skipped,
		"sample_data", sample)
	return nil
}

// loadTransactions decodes the history record by record so one malformed
// entry does not poison the rest of the file.
func (s *FileStore) loadTransactions(ctx context.Context) ([]core.TransactionRecord, int, error) {
	if err := ctx.Err(); err != nil {
		return nil, 0, err
	}
	data, err := os.ReadFile(filepath.Join(s.dir, transactionsFile))
	if err != nil {
		return nil, 0, fmt.Errorf("read %s: %w", transactionsFile, err)
	}

	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, 0, fmt.Errorf("decode %s: %w", transactionsFile, err)
	}

	records := make([]core.TransactionRecord, 0, len(raw))
	skipped := 0
	for i, msg := range raw {
		var rec core.TransactionRecord
		if err := json.Unmarshal(msg, &rec); err != nil {
			slog.Warn("Skipping malformed transaction record", "index", i, "error", err)
			skipped++
			continue
		}
		records = append(records, rec)
	}
	return records, skipped, nil
}

func (s *FileStore) loadBalances(ctx context.Context) (map[string]core.BalanceSnapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(filepath.Join(s.dir, balancesFile))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", balancesFile, err)
	}

	balances := make(map[string]core.BalanceSnapshot)
	if err := json.Unmarshal(data, &balances); err != nil {
		return nil, fmt.Errorf("decode %s: %w", balancesFile, err)
	}
	return balances, nil
}

// loadSchedule tolerates a missing installment file: most months have none.
func (s *FileStore) loadSchedule(ctx context.Context) (bnpl.Schedule, error) {
	if err := ctx.Err(); err != nil {
		return bnpl.Schedule{}, err
	}
	data, err := os.ReadFile(filepath.Join(s.dir, bnplFile))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return bnpl.Schedule{}, nil
		}
		return bnpl.Schedule{}, fmt.Errorf("read %s: %w", bnplFile, err)
	}

	var schedule bnpl.Schedule
	if err := json.Unmarshal(data, &schedule); err != nil {
		return bnpl.Schedule{}, fmt.Errorf("decode %s: %w", bnplFile, err)
	}
	return schedule, nil
}

func (s *FileStore) Transactions(ctx context.Context) ([]core.TransactionRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]core.TransactionRecord, len(s.transactions))
	copy(out, s.transactions)
	return out, nil
}

func (s *FileStore) Balances(ctx context.Context) (map[string]core.BalanceSnapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]core.BalanceSnapshot, len(s.balances))
	for bank, b := range s.balances {
		out[bank] = b
	}
	return out, nil
}

func (s *FileStore) Schedule(ctx context.Context) (bnpl.Schedule, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.schedule, nil
}

// SkippedRecords reports how many entries were dropped as malformed during
// the last load. Exposed for the data-quality audit.
func (s *FileStore) SkippedRecords() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.skipped
}

// ServingSampleData reports whether the store fell back to demo data.
func (s *FileStore) ServingSampleData() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sampleData
}

func (s *FileStore) AppendTransaction(ctx context.Context, rec core.TransactionRecord) (core.TransactionRecord, error) {
	if rec.Timestamp.IsZero() {
		rec.Timestamp = time.Now()
	}
	if err := rec.Validate(); err != nil {
		return core.TransactionRecord{}, fmt.Errorf("validate transaction: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var maxID int64
	for _, t := range s.transactions {
		if t.ID > maxID {
			maxID = t.ID
		}
	}
	rec.ID = maxID + 1

	updated := append(append([]core.TransactionRecord{}, s.transactions...), rec)
	if err := s.writeJSON(transactionsFile, updated); err != nil {
		return core.TransactionRecord{}, err
	}
	s.transactions = updated

	slog.InfoContext(ctx, "Transaction appended",
		"id", rec.ID,
		"bank", rec.Bank,
		"amount", rec.Amount,
		"type", rec.TransactionType)
	return rec, nil
}

func (s *FileStore) SetBalance(ctx context.Context, bank string, amount float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry := s.balances[bank]
	entry.Balance = amount
	return s.saveBalance(ctx, bank, entry)
}

func (s *FileStore) AdjustBalance(ctx context.Context, bank string, delta float64) (float64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry := s.balances[bank]
	entry.Balance += delta
	if err := s.saveBalance(ctx, bank, entry); err != nil {
		return 0, err
	}
	return entry.Balance, nil
}

// saveBalance writes the updated map and mutates the snapshot. Callers hold
// the write lock.
func (s *FileStore) saveBalance(ctx context.Context, bank string, entry core.BalanceSnapshot) error {
	updated := make(map[string]core.BalanceSnapshot, len(s.balances)+1)
	for k, v := range s.balances {
		updated[k] = v
	}
	updated[bank] = entry

	if err := s.writeJSON(balancesFile, updated); err != nil {
		return err
	}
	s.balances = updated

	slog.InfoContext(ctx, "Balance updated", "bank", bank, "balance", entry.Balance)
	return nil
}

// writeJSON writes through a temp file and renames, so a crash mid-write
// never truncates the data file.
func (s *FileStore) writeJSON(name string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal %s: %w", name, err)
	}

	path := filepath.Join(s.dir, name)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("replace %s: %w", name, err)
	}
	return nil
}

func (s *FileStore) Close() error {
	return nil
}
