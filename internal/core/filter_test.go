package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func filterFixture(now time.Time) []TransactionRecord {
	return []TransactionRecord{
		{ID: 1, Timestamp: now, Bank: "الراجحي", Amount: 150, Merchant: "مطعم النخيل", Category: "طعام", Classification: "شخصي", TransactionType: TagExpense},
		{ID: 2, Timestamp: now.Add(-26 * time.Hour), Bank: "alrajhi", Amount: 500, Merchant: "كارفور", Category: "تسوق", Classification: "عائلة", TransactionType: TagExpense},
		{ID: 3, Timestamp: now.Add(-3 * 24 * time.Hour), Bank: "stc", Amount: 5000, Merchant: "راتب", Category: "دخل", Classification: "شخصي", TransactionType: TagIncome},
		{ID: 4, Timestamp: now.Add(-40 * 24 * time.Hour), Bank: "برق", Amount: 80, Merchant: "تحويل داخلي", Classification: "شخصي", TransactionType: TagTransfer},
	}
}

func ids(records []TransactionRecord) []int64 {
	out := make([]int64, 0, len(records))
	for _, r := range records {
		out = append(out, r.ID)
	}
	return out
}

func TestApplyFiltersEmptyCriteriaIsIdentity(t *testing.T) {
	now := time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC)
	records := filterFixture(now)
	got := ApplyFilters(records, FilterCriteria{Period: PeriodAll}, now)
	assert.Equal(t, ids(records), ids(got))
}

func TestApplyFiltersBankMatchesAcrossAliases(t *testing.T) {
	now := time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC)
	records := filterFixture(now)

	// Filtering by the legacy slug must find the record stored under the
	// Arabic name, and the other way around.
	bySlug := ApplyFilters(records, FilterCriteria{Bank: "alrajhi"}, now)
	byName := ApplyFilters(records, FilterCriteria{Bank: "الراجحي"}, now)
	assert.Equal(t, []int64{1, 2}, ids(bySlug))
	assert.Equal(t, ids(bySlug), ids(byName))
}

func TestApplyFiltersCompound(t *testing.T) {
	now := time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC)
	records := filterFixture(now)

	got := ApplyFilters(records, FilterCriteria{
		Bank:           "الراجحي",
		Classification: "شخصي",
		Period:         PeriodWeek,
	}, now)
	assert.Equal(t, []int64{1}, ids(got))
}

func TestApplyFiltersPeriod(t *testing.T) {
	now := time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC)
	records := filterFixture(now)

	tests := []struct {
		period Period
		want   []int64
	}{
		{PeriodToday, []int64{1}},
		{PeriodWeek, []int64{1, 2, 3}},
		{PeriodMonth, []int64{1, 2, 3}},
		{PeriodYear, []int64{1, 2, 3, 4}},
		{PeriodAll, []int64{1, 2, 3, 4}},
	}
	for _, tt := range tests {
		got := ApplyFilters(records, FilterCriteria{Period: tt.period}, now)
		assert.Equal(t, tt.want, ids(got), string(tt.period))
	}
}

func TestApplyFiltersIdempotent(t *testing.T) {
	now := time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC)
	records := filterFixture(now)
	c := FilterCriteria{Classification: "شخصي", Period: PeriodWeek}

	once := ApplyFilters(records, c, now)
	twice := ApplyFilters(once, c, now)
	assert.Equal(t, once, twice)
}

func TestApplyFiltersDoesNotMutateInput(t *testing.T) {
	now := time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC)
	records := filterFixture(now)
	before := make([]TransactionRecord, len(records))
	copy(before, records)

	_ = ApplyFilters(records, FilterCriteria{Bank: "stc", Period: PeriodToday}, now)
	assert.Equal(t, before, records)
}

func TestApplyFiltersMissingFieldsFailActiveConstraints(t *testing.T) {
	now := time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC)
	records := []TransactionRecord{
		{ID: 1, Timestamp: now, Bank: "stc", Amount: 10, TransactionType: TagExpense}, // no category
		{ID: 2, Bank: "stc", Amount: 10, TransactionType: TagExpense},                 // no timestamp
	}

	assert.Empty(t, ApplyFilters(records, FilterCriteria{Category: "طعام"}, now))

	got := ApplyFilters(records, FilterCriteria{Period: PeriodToday}, now)
	require.Len(t, got, 1)
	assert.Equal(t, int64(1), got[0].ID)
}

func TestApplyFiltersEmptyInput(t *testing.T) {
	now := time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC)
	got := ApplyFilters(nil, FilterCriteria{Period: PeriodToday}, now)
	assert.Empty(t, got)

	// Aggregating the empty result is a zero summary, not an error.
	s := Aggregate(got)
	assert.Zero(t, s.Income)
	assert.Zero(t, s.Expenses)
	assert.Zero(t, s.Net)
	assert.Zero(t, s.Count)
}
