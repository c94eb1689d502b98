package bnpl

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPendingMergesAndSorts(t *testing.T) {
	s := Schedule{
		Tamara: []Payment{
			{Merchant: "نون", Amount: 150, DueDate: "2024-07-20", Status: StatusPending},
			{Merchant: "نون", Amount: 150, DueDate: "2024-06-20", Status: "paid"},
		},
		Tabby: []Payment{
			{Merchant: "اكسترا", Amount: 300, DueDate: "2024-07-05", Status: StatusPending},
			{Merchant: "اكسترا", Amount: 300, DueDate: "2024-08-05", Status: StatusPending},
		},
	}

	got := s.Pending()
	require.Len(t, got, 3)
	assert.Equal(t, "2024-07-05", got[0].DueDate)
	assert.Equal(t, ProviderTabby, got[0].Provider)
	assert.Equal(t, "2024-07-20", got[1].DueDate)
	assert.Equal(t, ProviderTamara, got[1].Provider)
	assert.Equal(t, "2024-08-05", got[2].DueDate)
}

func TestPendingEmptySchedule(t *testing.T) {
	assert.Empty(t, Schedule{}.Pending())
	assert.Zero(t, Schedule{}.Outstanding())
}

func TestOutstandingCountsOnlyPending(t *testing.T) {
	s := Schedule{
		Tamara: []Payment{
			{Amount: 100, DueDate: "2024-07-01", Status: StatusPending},
			{Amount: 999, DueDate: "2024-06-01", Status: "paid"},
		},
		Tabby: []Payment{
			{Amount: 50.5, DueDate: "2024-07-10", Status: StatusPending},
		},
	}
	assert.Equal(t, 150.5, s.Outstanding())
}

func TestDaysLeft(t *testing.T) {
	now := time.Date(2024, 7, 1, 12, 0, 0, 0, time.UTC)

	p := Payment{DueDate: "2024-07-04"}
	assert.Equal(t, 3, p.DaysLeft(now))
	assert.True(t, p.Urgent(now))

	far := Payment{DueDate: "2024-07-20"}
	assert.False(t, far.Urgent(now))

	overdue := Payment{DueDate: "2024-06-28"}
	assert.Negative(t, overdue.DaysLeft(now))
	assert.True(t, overdue.Urgent(now))
}

func TestMalformedDueDate(t *testing.T) {
	p := Payment{DueDate: "soon", Status: StatusPending}
	assert.True(t, p.Due().IsZero())
	assert.Zero(t, p.DaysLeft(time.Now()))
	assert.False(t, p.Urgent(time.Now()))
}
