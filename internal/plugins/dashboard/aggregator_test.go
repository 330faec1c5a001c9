package dashboard

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arlden/adpanel/internal/gateway"
)

type mockGateway struct {
	gateway.Client

	fetchBudgetSumsFunc     func(ctx context.Context) (gateway.BudgetSums, error)
	fetchRecordsByMonthFunc func(ctx context.Context, month string) ([]gateway.MonthlyRecord, error)
}

func (m *mockGateway) FetchBudgetSums(ctx context.Context) (gateway.BudgetSums, error) {
	return m.fetchBudgetSumsFunc(ctx)
}

func (m *mockGateway) FetchRecordsByMonth(ctx context.Context, month string) ([]gateway.MonthlyRecord, error) {
	return m.fetchRecordsByMonthFunc(ctx, month)
}

func TestRefreshSums(t *testing.T) {
	gw := &mockGateway{
		fetchBudgetSumsFunc: func(ctx context.Context) (gateway.BudgetSums, error) {
			return gateway.BudgetSums{TotalBudgetSum: "1500.50", DailyBudgetSum: "75.25"}, nil
		},
	}
	agg := NewAggregator(gw)

	_, ok := agg.Sums()
	assert.False(t, ok, "nothing fetched yet")

	require.NoError(t, agg.RefreshSums(context.Background()))

	sums, ok := agg.Sums()
	assert.True(t, ok)
	assert.Equal(t, "1500.50", sums.TotalBudgetSum)
	assert.Equal(t, "75.25", sums.DailyBudgetSum)
}

func TestSumsFailureKeepsPreviousResult(t *testing.T) {
	calls := 0
	gw := &mockGateway{
		fetchBudgetSumsFunc: func(ctx context.Context) (gateway.BudgetSums, error) {
			calls++
			if calls == 1 {
				return gateway.BudgetSums{TotalBudgetSum: "100", DailyBudgetSum: "10"}, nil
			}
			return gateway.BudgetSums{}, errors.New("unreachable")
		},
	}
	agg := NewAggregator(gw)

	require.NoError(t, agg.RefreshSums(context.Background()))
	require.Error(t, agg.RefreshSums(context.Background()))

	sums, ok := agg.Sums()
	assert.True(t, ok)
	assert.Equal(t, "100", sums.TotalBudgetSum)
}

func TestLoadMonthAppliesSeries(t *testing.T) {
	gw := &mockGateway{
		fetchRecordsByMonthFunc: func(ctx context.Context, month string) ([]gateway.MonthlyRecord, error) {
			assert.Equal(t, "2024-03", month)
			return []gateway.MonthlyRecord{
				{CreatedAt: "2024-03-02", TotalBudget: 200, DailyBudget: 20},
				{CreatedAt: "2024-03-01", TotalBudget: 100, DailyBudget: 10},
			}, nil
		},
	}
	agg := NewAggregator(gw)

	require.NoError(t, agg.LoadMonth(context.Background(), "2024-03"))

	assert.Equal(t, "2024-03", agg.Month())
	records, ok := agg.Records()
	require.True(t, ok)
	require.Len(t, records, 2)
	// Server order is preserved as-is.
	assert.Equal(t, "2024-03-02", records[0].CreatedAt)
}

func TestLoadMonthDefaultsWhenEmpty(t *testing.T) {
	var requested string
	gw := &mockGateway{
		fetchRecordsByMonthFunc: func(ctx context.Context, month string) ([]gateway.MonthlyRecord, error) {
			requested = month
			return nil, nil
		},
	}
	agg := NewAggregator(gw)

	require.NoError(t, agg.LoadMonth(context.Background(), ""))
	assert.Equal(t, DefaultMonth, requested)
}

func TestStaleMonthFetchIsDiscarded(t *testing.T) {
	// started guarantees the "2024-01" selection happened first; release
	// then lets its response arrive after "2024-02" already applied.
	started := make(chan struct{})
	release := make(chan struct{})
	gw := &mockGateway{
		fetchRecordsByMonthFunc: func(ctx context.Context, month string) ([]gateway.MonthlyRecord, error) {
			if month == "2024-01" {
				close(started)
				<-release
				return []gateway.MonthlyRecord{{CreatedAt: "2024-01-01", TotalBudget: 1}}, nil
			}
			return []gateway.MonthlyRecord{{CreatedAt: "2024-02-01", TotalBudget: 2}}, nil
		},
	}
	agg := NewAggregator(gw)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		assert.NoError(t, agg.LoadMonth(context.Background(), "2024-01"))
	}()

	<-started
	require.NoError(t, agg.LoadMonth(context.Background(), "2024-02"))
	close(release)
	wg.Wait()

	// The later selection wins regardless of arrival order.
	records, ok := agg.Records()
	require.True(t, ok)
	require.Len(t, records, 1)
	assert.Equal(t, "2024-02-01", records[0].CreatedAt)
	assert.Equal(t, "2024-02", agg.Month())
}

func TestSeriesFailureDoesNotClearSums(t *testing.T) {
	gw := &mockGateway{
		fetchBudgetSumsFunc: func(ctx context.Context) (gateway.BudgetSums, error) {
			return gateway.BudgetSums{TotalBudgetSum: "500", DailyBudgetSum: "50"}, nil
		},
		fetchRecordsByMonthFunc: func(ctx context.Context, month string) ([]gateway.MonthlyRecord, error) {
			return nil, errors.New("unreachable")
		},
	}
	agg := NewAggregator(gw)

	require.NoError(t, agg.RefreshSums(context.Background()))
	require.Error(t, agg.LoadMonth(context.Background(), "2024-02"))

	sums, ok := agg.Sums()
	assert.True(t, ok, "sums slot must survive a series failure")
	assert.Equal(t, "500", sums.TotalBudgetSum)

	_, ok = agg.Records()
	assert.False(t, ok)
}

func TestBarData(t *testing.T) {
	records := []gateway.MonthlyRecord{
		{CreatedAt: "2024-01-01", TotalBudget: 100, DailyBudget: 10},
		{CreatedAt: "2024-01-05", TotalBudget: 250, DailyBudget: 25},
	}

	s := BarData(records)
	assert.Equal(t, []string{"2024-01-01", "2024-01-05"}, s.Labels)
	assert.Equal(t, []float64{100, 250}, s.Total)
	assert.Equal(t, []float64{10, 25}, s.Daily)
}

func TestPieData(t *testing.T) {
	total, daily := PieData(gateway.BudgetSums{TotalBudgetSum: "1500.50", DailyBudgetSum: "75.25"})
	assert.Equal(t, 1500.50, total)
	assert.Equal(t, 75.25, daily)

	total, daily = PieData(gateway.BudgetSums{TotalBudgetSum: "not-a-number"})
	assert.Zero(t, total)
	assert.Zero(t, daily)
}
