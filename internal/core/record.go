// Package core implements the transaction classification, filtering and
// reporting engine behind the dashboard. Everything in this package is a pure
// computation over in-memory collections: no I/O, no ambient clock, no shared
// state between calls.
package core

import (
	"encoding/json"
	"errors"
	"math"
	"time"
)

var (
	ErrInvalidAmount    = errors.New("invalid amount")
	ErrInvalidTimestamp = errors.New("invalid timestamp")
	ErrEmptyBank        = errors.New("empty bank")
)

// TransactionRecord is the normalized representation of one ledger entry.
// Amount is always a magnitude; direction comes from TransactionType alone.
type TransactionRecord struct {
	ID              int64     `json:"id"`
	Timestamp       time.Time `json:"timestamp"`
	Bank            string    `json:"bank"`
	Amount          float64   `json:"amount"`
	Merchant        string    `json:"merchant"`
	Category        string    `json:"category,omitempty"`
	Classification  string    `json:"classification,omitempty"`
	TransactionType string    `json:"transactionType,omitempty"`
	Note            string    `json:"note,omitempty"`
	Confirmed       bool      `json:"confirmed"`
}

// transactionJSON mirrors TransactionRecord with a loosely typed timestamp so
// a record with a bad date still decodes instead of poisoning the whole file.
type transactionJSON struct {
	ID              int64   `json:"id"`
	Timestamp       string  `json:"timestamp"`
	Bank            string  `json:"bank"`
	Amount          float64 `json:"amount"`
	Merchant        string  `json:"merchant"`
	Category        string  `json:"category"`
	Classification  string  `json:"classification"`
	TransactionType string  `json:"transactionType"`
	Note            string  `json:"note"`
	Confirmed       bool    `json:"confirmed"`
}

func (t *TransactionRecord) UnmarshalJSON(data []byte) error {
	var raw transactionJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	ts, err := ParseTimestamp(raw.Timestamp)
	if err != nil {
		// Leave the timestamp zero. The record stays visible to totals that
		// do not need a date and is skipped by period logic via Valid.
		ts = time.Time{}
	}
	*t = TransactionRecord{
		ID:              raw.ID,
		Timestamp:       ts,
		Bank:            raw.Bank,
		Amount:          raw.Amount,
		Merchant:        raw.Merchant,
		Category:        raw.Category,
		Classification:  raw.Classification,
		TransactionType: raw.TransactionType,
		Note:            raw.Note,
		Confirmed:       raw.Confirmed,
	}
	return nil
}

func (t TransactionRecord) MarshalJSON() ([]byte, error) {
	raw := transactionJSON{
		ID:              t.ID,
		Timestamp:       t.Timestamp.Format(time.RFC3339),
		Bank:            t.Bank,
		Amount:          t.Amount,
		Merchant:        t.Merchant,
		Category:        t.Category,
		Classification:  t.Classification,
		TransactionType: t.TransactionType,
		Note:            t.Note,
		Confirmed:       t.Confirmed,
	}
	return json.Marshal(raw)
}

// ParseTimestamp accepts the ISO-8601 shapes observed in the data files.
func ParseTimestamp(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, ErrInvalidTimestamp
	}
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"} {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts, nil
		}
	}
	return time.Time{}, ErrInvalidTimestamp
}

// HasTimestamp reports whether the record carries a usable date. Records
// without one are excluded from period computations but never abort anything.
func (t TransactionRecord) HasTimestamp() bool {
	return !t.Timestamp.IsZero()
}

// HasAmount reports whether the amount can participate in sums.
func (t TransactionRecord) HasAmount() bool {
	return !math.IsNaN(t.Amount) && !math.IsInf(t.Amount, 0)
}

// Validate flags defects a write path should reject. Read paths never call
// this; they degrade record-by-record instead.
func (t TransactionRecord) Validate() error {
	if !t.HasTimestamp() {
		return ErrInvalidTimestamp
	}
	if !t.HasAmount() || t.Amount < 0 {
		return ErrInvalidAmount
	}
	if t.Bank == "" {
		return ErrEmptyBank
	}
	return nil
}

// Magnitude returns the absolute amount. Older data mixed signed amounts, so
// sums always go through here.
func (t TransactionRecord) Magnitude() float64 {
	return math.Abs(t.Amount)
}
