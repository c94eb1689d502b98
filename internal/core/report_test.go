package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func reportFixture(now time.Time) []TransactionRecord {
	prevYear, prevMonth := PreviousMonth(now.Year(), now.Month())
	lastMonth := time.Date(prevYear, prevMonth, 10, 9, 0, 0, 0, time.UTC)
	return []TransactionRecord{
		{ID: 1, Timestamp: now.Add(-time.Hour), Bank: "stc", Amount: 300, Category: "طعام", TransactionType: TagExpense},
		{ID: 2, Timestamp: now.Add(-2 * 24 * time.Hour), Bank: "stc", Amount: 5000, Category: "دخل", TransactionType: TagIncome},
		{ID: 3, Timestamp: now.Add(-10 * 24 * time.Hour), Bank: "stc", Amount: 200, Category: "تسوق", TransactionType: TagExpense},
		{ID: 4, Timestamp: lastMonth, Bank: "stc", Amount: 4000, Category: "دخل", TransactionType: TagIncome},
		{ID: 5, Timestamp: lastMonth, Bank: "stc", Amount: 700, Category: "طعام", TransactionType: TagExpense},
	}
}

func TestBuildReportDaily(t *testing.T) {
	now := time.Date(2024, 6, 15, 18, 0, 0, 0, time.UTC)
	r, err := BuildReport(ReportDaily, reportFixture(now), now)
	require.NoError(t, err)
	assert.Equal(t, ReportDaily, r.Kind)
	assert.Equal(t, 300.0, r.Totals.Expenses)
	assert.Zero(t, r.Totals.Income)
	assert.Equal(t, 1, r.Totals.Count)
	assert.Nil(t, r.ByCategory)
}

func TestBuildReportWeekly(t *testing.T) {
	now := time.Date(2024, 6, 15, 18, 0, 0, 0, time.UTC)
	r, err := BuildReport(ReportWeekly, reportFixture(now), now)
	require.NoError(t, err)
	assert.Equal(t, 5000.0, r.Totals.Income)
	assert.Equal(t, 300.0, r.Totals.Expenses)
	assert.Equal(t, 4700.0, r.Totals.Net)
	assert.Equal(t, 2, r.Totals.Count)
}

func TestBuildReportMonthlyHasCategoryBreakdown(t *testing.T) {
	now := time.Date(2024, 6, 15, 18, 0, 0, 0, time.UTC)
	r, err := BuildReport(ReportMonthly, reportFixture(now), now)
	require.NoError(t, err)
	assert.Equal(t, 5000.0, r.Totals.Income)
	assert.Equal(t, 500.0, r.Totals.Expenses)
	assert.Equal(t, map[string]float64{"طعام": 300, "تسوق": 200}, r.ByCategory)
}

func TestBuildReportComparison(t *testing.T) {
	now := time.Date(2024, 6, 15, 18, 0, 0, 0, time.UTC)
	r, err := BuildReport(ReportComparison, reportFixture(now), now)
	require.NoError(t, err)
	require.NotNil(t, r.Current)
	require.NotNil(t, r.Previous)
	require.NotNil(t, r.Diff)

	assert.Equal(t, 5000.0, r.Current.Income)
	assert.Equal(t, 500.0, r.Current.Expenses)
	assert.Equal(t, 4000.0, r.Previous.Income)
	assert.Equal(t, 700.0, r.Previous.Expenses)
	assert.Equal(t, 1000.0, r.Diff.Income)
	assert.Equal(t, -200.0, r.Diff.Expenses)
	assert.Equal(t, r.Current.Net-r.Previous.Net, r.Diff.Net)
}

func TestPreviousMonthYearRollover(t *testing.T) {
	year, month := PreviousMonth(2024, time.January)
	assert.Equal(t, 2023, year)
	assert.Equal(t, time.December, month)

	year, month = PreviousMonth(2024, time.March)
	assert.Equal(t, 2024, year)
	assert.Equal(t, time.February, month)

	// Guard against degenerate month arithmetic: previous never equals
	// current for any month.
	for m := time.January; m <= time.December; m++ {
		py, pm := PreviousMonth(2024, m)
		assert.False(t, py == 2024 && pm == m)
	}
}

func TestBuildReportComparisonAcrossYearBoundary(t *testing.T) {
	now := time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC)
	records := []TransactionRecord{
		{ID: 1, Timestamp: time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC), Bank: "stc", Amount: 100, TransactionType: TagExpense},
		{ID: 2, Timestamp: time.Date(2023, 12, 20, 0, 0, 0, 0, time.UTC), Bank: "stc", Amount: 250, TransactionType: TagExpense},
	}
	r, err := BuildReport(ReportComparison, records, now)
	require.NoError(t, err)
	assert.Equal(t, 100.0, r.Current.Expenses)
	assert.Equal(t, 250.0, r.Previous.Expenses)
}

func TestBuildReportEmptySet(t *testing.T) {
	now := time.Now()
	for _, kind := range []ReportKind{ReportDaily, ReportWeekly, ReportMonthly, ReportComparison} {
		r, err := BuildReport(kind, nil, now)
		require.NoError(t, err, string(kind))
		assert.Zero(t, r.Totals.Income)
		assert.Zero(t, r.Totals.Expenses)
		assert.Zero(t, r.Totals.Net)
	}
}

func TestBuildReportUnknownKind(t *testing.T) {
	_, err := BuildReport(ReportKind("quarterly"), nil, time.Now())
	assert.Error(t, err)

	_, err = ParseReportKind("quarterly")
	assert.Error(t, err)

	kind, err := ParseReportKind("comparison")
	require.NoError(t, err)
	assert.Equal(t, ReportComparison, kind)
}
