// Package services orchestrates ledger writes with change notifications.
package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/FerasMahmoud/firas-finance-dashboard/internal/core"
	"github.com/FerasMahmoud/firas-finance-dashboard/internal/store"
)

// Notifier is the slice of the AMQP client the service needs. A nil
// implementation disables eventing.
type Notifier interface {
	PublishLedgerChanged(ctx context.Context, id int64, source string) error
	Close() error
}

// LedgerService couples storage writes with ledger-changed notices so
// long-lived readers can invalidate their caches.
type LedgerService struct {
	ledger   store.Ledger
	notifier Notifier
}

func NewLedgerService(ledger store.Ledger, notifier Notifier) *LedgerService {
	return &LedgerService{
		ledger:   ledger,
		notifier: notifier,
	}
}

// AddTransaction persists the record and announces the change. Publish
// failures are logged, never surfaced: the write already succeeded locally.
func (s *LedgerService) AddTransaction(ctx context.Context, rec core.TransactionRecord, source string) (core.TransactionRecord, error) {
	saved, err := s.ledger.AppendTransaction(ctx, rec)
	if err != nil {
		return core.TransactionRecord{}, fmt.Errorf("append transaction: %w", err)
	}

	s.publishChange(ctx, saved.ID, source)
	return saved, nil
}

// SetBalance overwrites a bank's balance and announces the change.
func (s *LedgerService) SetBalance(ctx context.Context, bank string, amount float64, source string) error {
	if err := s.ledger.SetBalance(ctx, bank, amount); err != nil {
		return fmt.Errorf("set balance: %w", err)
	}
	s.publishChange(ctx, 0, source)
	return nil
}

// AdjustBalance shifts a bank's balance by delta and announces the change.
func (s *LedgerService) AdjustBalance(ctx context.Context, bank string, delta float64, source string) (float64, error) {
	balance, err := s.ledger.AdjustBalance(ctx, bank, delta)
	if err != nil {
		return 0, fmt.Errorf("adjust balance: %w", err)
	}
	s.publishChange(ctx, 0, source)
	return balance, nil
}

// Transactions returns the full transaction history.
func (s *LedgerService) Transactions(ctx context.Context) ([]core.TransactionRecord, error) {
	return s.ledger.Transactions(ctx)
}

// Balances returns the balance snapshot for every bank.
func (s *LedgerService) Balances(ctx context.Context) (map[string]core.BalanceSnapshot, error) {
	return s.ledger.Balances(ctx)
}

func (s *LedgerService) publishChange(ctx context.Context, id int64, source string) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.PublishLedgerChanged(ctx, id, source); err != nil {
		slog.ErrorContext(ctx, "Failed to publish ledger change notice",
			"id", id, "source", source, "error", err)
	}
}

// AuditReport is the data-quality summary behind the validate command.
type AuditReport struct {
	Transactions      int                     `json:"transactions"`
	Unclassified      int                     `json:"unclassified"`
	MissingTimestamps int                     `json:"missing_timestamps"`
	BadAmounts        int                     `json:"bad_amounts"`
	UnmappedBanks     []string                `json:"unmapped_banks,omitempty"`
	BalanceFindings   []core.BreakdownFinding `json:"balance_findings,omitempty"`
}

// Clean reports whether the audit found nothing to fix.
func (r AuditReport) Clean() bool {
	return r.Unclassified == 0 &&
		r.MissingTimestamps == 0 &&
		r.BadAmounts == 0 &&
		len(r.UnmappedBanks) == 0 &&
		len(r.BalanceFindings) == 0
}

// Audit walks the full ledger and collects integrity findings: records the
// classifier cannot place, unusable fields, banks outside the known
// vocabulary and balance breakdowns that disagree with their stated total.
func (s *LedgerService) Audit(ctx context.Context) (AuditReport, error) {
	records, err := s.ledger.Transactions(ctx)
	if err != nil {
		return AuditReport{}, fmt.Errorf("load transactions: %w", err)
	}
	balances, err := s.ledger.Balances(ctx)
	if err != nil {
		return AuditReport{}, fmt.Errorf("load balances: %w", err)
	}

	report := AuditReport{Transactions: len(records)}
	for _, rec := range records {
		if core.Classify(rec) == core.KindUnclassified {
			report.Unclassified++
		}
		if !rec.HasTimestamp() {
			report.MissingTimestamps++
		}
		if !rec.HasAmount() {
			report.BadAmounts++
		}
	}
	report.UnmappedBanks = core.UnmappedBanks(records)
	sort.Strings(report.UnmappedBanks)
	report.BalanceFindings = core.CheckBreakdowns(balances)

	return report, nil
}

// Close closes both storage and the notifier connection
func (s *LedgerService) Close() error {
	var errs []error

	if s.ledger != nil {
		if err := s.ledger.Close(); err != nil {
			errs = append(errs, fmt.Errorf("ledger: %w", err))
		}
	}

	if s.notifier != nil {
		if err := s.notifier.Close(); err != nil {
			errs = append(errs, fmt.Errorf("notifier: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("close ledger service: %v", errs)
	}

	return nil
}
