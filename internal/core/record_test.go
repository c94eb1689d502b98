package core

import (
	"encoding/json"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTimestamp(t *testing.T) {
	cases := []struct {
		in   string
		want time.Time
	}{
		{"2024-06-10T12:30:00Z", time.Date(2024, 6, 10, 12, 30, 0, 0, time.UTC)},
		{"2024-06-10T12:30:00.123Z", time.Date(2024, 6, 10, 12, 30, 0, 123000000, time.UTC)},
		{"2024-06-10T12:30:00", time.Date(2024, 6, 10, 12, 30, 0, 0, time.UTC)},
		{"2024-06-10", time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)},
	}
	for _, tc := range cases {
		got, err := ParseTimestamp(tc.in)
		require.NoError(t, err, tc.in)
		assert.True(t, got.Equal(tc.want), tc.in)
	}

	for _, bad := range []string{"", "yesterday", "10/06/2024"} {
		_, err := ParseTimestamp(bad)
		assert.ErrorIs(t, err, ErrInvalidTimestamp, bad)
	}
}

func TestTransactionRecordRoundTrip(t *testing.T) {
	rec := TransactionRecord{
		ID:              7,
		Timestamp:       time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC),
		Bank:            "alrajhi",
		Amount:          150,
		Merchant:        "مطعم النخيل",
		Category:        "طعام",
		Classification:  "شخصي",
		TransactionType: TagExpense,
		Confirmed:       true,
	}
	data, err := json.Marshal(rec)
	require.NoError(t, err)

	var back TransactionRecord
	require.NoError(t, json.Unmarshal(data, &back))
	assert.True(t, back.Timestamp.Equal(rec.Timestamp))
	back.Timestamp = rec.Timestamp
	assert.Equal(t, rec, back)
}

func TestTransactionRecordToleratesBadTimestamp(t *testing.T) {
	raw := `{"id": 3, "timestamp": "not a date", "bank": "stc", "amount": 42, "transactionType": "صرف"}`
	var rec TransactionRecord
	require.NoError(t, json.Unmarshal([]byte(raw), &rec))
	assert.False(t, rec.HasTimestamp())
	assert.Equal(t, 42.0, rec.Amount)
	assert.Equal(t, KindExpense, Classify(rec))
}

func TestValidate(t *testing.T) {
	ts := time.Now()
	good := TransactionRecord{Timestamp: ts, Bank: "stc", Amount: 10}
	assert.NoError(t, good.Validate())

	tests := []struct {
		name string
		rec  TransactionRecord
		want error
	}{
		{"missing timestamp", TransactionRecord{Bank: "stc", Amount: 10}, ErrInvalidTimestamp},
		{"negative amount", TransactionRecord{Timestamp: ts, Bank: "stc", Amount: -5}, ErrInvalidAmount},
		{"nan amount", TransactionRecord{Timestamp: ts, Bank: "stc", Amount: math.NaN()}, ErrInvalidAmount},
		{"empty bank", TransactionRecord{Timestamp: ts, Amount: 10}, ErrEmptyBank},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, tt.rec.Validate(), tt.want)
		})
	}
}

func TestMagnitude(t *testing.T) {
	assert.Equal(t, 80.0, TransactionRecord{Amount: -80}.Magnitude())
	assert.Equal(t, 80.0, TransactionRecord{Amount: 80}.Magnitude())
}
