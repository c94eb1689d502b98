package store

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/FerasMahmoud/firas-finance-dashboard/internal/bnpl"
	"github.com/FerasMahmoud/firas-finance-dashboard/internal/core"

	_ "modernc.org/sqlite"
)

// SQLiteStore keeps the ledger in a SQLite database. Schema is managed by
// the embedded migrations.
type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *SQLiteStore) Transactions(ctx context.Context) ([]core.TransactionRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, timestamp, bank, amount, merchant, category, classification, transaction_type, note, confirmed
		FROM transactions
		ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query transactions: %w", err)
	}
	defer rows.Close()

	var records []core.TransactionRecord
	for rows.Next() {
		var (
			rec       core.TransactionRecord
			timestamp string
			confirmed int
		)
		if err := rows.Scan(&rec.ID, &timestamp, &rec.Bank, &rec.Amount, &rec.Merchant,
			&rec.Category, &rec.Classification, &rec.TransactionType, &rec.Note, &confirmed); err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		// A bad stored timestamp degrades the record, not the query.
		if ts, err := core.ParseTimestamp(timestamp); err == nil {
			rec.Timestamp = ts
		} else {
			slog.Warn("Skipping unparseable stored timestamp", "id", rec.ID, "timestamp", timestamp)
		}
		rec.Confirmed = confirmed != 0
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate transactions: %w", err)
	}
	return records, nil
}

func (s *SQLiteStore) Balances(ctx context.Context) (map[string]core.BalanceSnapshot, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT bank, balance FROM balances`)
	if err != nil {
		return nil, fmt.Errorf("query balances: %w", err)
	}
	defer rows.Close()

	balances := make(map[string]core.BalanceSnapshot)
	for rows.Next() {
		var (
			bank    string
			balance float64
		)
		if err := rows.Scan(&bank, &balance); err != nil {
			return nil, fmt.Errorf("scan balance: %w", err)
		}
		balances[bank] = core.BalanceSnapshot{Balance: balance}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate balances: %w", err)
	}
	return balances, nil
}

func (s *SQLiteStore) Schedule(ctx context.Context) (bnpl.Schedule, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT provider, merchant, amount, due_date, status, payment_number, total_payments
		FROM bnpl_payments
		ORDER BY due_date`)
	if err != nil {
		return bnpl.Schedule{}, fmt.Errorf("query bnpl payments: %w", err)
	}
	defer rows.Close()

	var schedule bnpl.Schedule
	for rows.Next() {
		var (
			provider string
			p        bnpl.Payment
		)
		if err := rows.Scan(&provider, &p.Merchant, &p.Amount, &p.DueDate, &p.Status,
			&p.PaymentNumber, &p.TotalPayments); err != nil {
			return bnpl.Schedule{}, fmt.Errorf("scan bnpl payment: %w", err)
		}
		switch provider {
		case "tamara":
			schedule.Tamara = append(schedule.Tamara, p)
		case "tabby":
			schedule.Tabby = append(schedule.Tabby, p)
		default:
			slog.Warn("Unknown BNPL provider in database", "provider", provider)
		}
	}
	if err := rows.Err(); err != nil {
		return bnpl.Schedule{}, fmt.Errorf("iterate bnpl payments: %w", err)
	}
	return schedule, nil
}

func (s *SQLiteStore) AppendTransaction(ctx context.Context, rec core.TransactionRecord) (core.TransactionRecord, error) {
	if rec.Timestamp.IsZero() {
		rec.Timestamp = time.Now()
	}
	if err := rec.Validate(); err != nil {
		return core.TransactionRecord{}, fmt.Errorf("validate transaction: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return core.TransactionRecord{}, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	var maxID sql.NullInt64
	if err := tx.QueryRowContext(ctx, `SELECT MAX(id) FROM transactions`).Scan(&maxID); err != nil {
		return core.TransactionRecord{}, fmt.Errorf("next id: %w", err)
	}
	rec.ID = maxID.Int64 + 1

	confirmed := 0
	if rec.Confirmed {
		confirmed = 1
	}
	_, err = tx.ExecContext(ctx, `
		INSERT INTO transactions (id, timestamp, bank, amount, merchant, category, classification, transaction_type, note, confirmed)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.Timestamp.Format(time.RFC3339), rec.Bank, rec.Amount, rec.Merchant,
		rec.Category, rec.Classification, rec.TransactionType, rec.Note, confirmed)
	if err != nil {
		return core.TransactionRecord{}, fmt.Errorf("insert transaction: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return core.TransactionRecord{}, fmt.Errorf("commit transaction: %w", err)
	}

	slog.InfoContext(ctx, "Transaction saved to SQLite",
		"id", rec.ID,
		"bank", rec.Bank,
		"amount", rec.Amount,
		"type", rec.TransactionType)
	return rec, nil
}

func (s *SQLiteStore) SetBalance(ctx context.Context, bank string, amount float64) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO balances (bank, balance) VALUES (?, ?)
		ON CONFLICT(bank) DO UPDATE SET balance = excluded.balance`,
		bank, amount)
	if err != nil {
		return fmt.Errorf("set balance: %w", err)
	}
	slog.InfoContext(ctx, "Balance updated", "bank", bank, "balance", amount)
	return nil
}

func (s *SQLiteStore) AdjustBalance(ctx context.Context, bank string, delta float64) (float64, error) {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO balances (bank, balance) VALUES (?, ?)
		ON CONFLICT(bank) DO UPDATE SET balance = balance + excluded.balance`,
		bank, delta)
	if err != nil {
		return 0, fmt.Errorf("adjust balance: %w", err)
	}

	var balance float64
	if err := s.db.QueryRowContext(ctx, `SELECT balance FROM balances WHERE bank = ?`, bank).Scan(&balance); err != nil {
		return 0, fmt.Errorf("read adjusted balance: %w", err)
	}
	slog.InfoContext(ctx, "Balance adjusted", "bank", bank, "delta", delta, "balance", balance)
	return balance, nil
}
