// Package dashboard implements the budget overview: total/daily budget
// sums and a month-scoped record series, shaped into chart-ready data.
package dashboard

import (
	"context"
	"strconv"
	"sync"

	"github.com/arlden/adpanel/internal/gateway"
)

// DefaultMonth is the month key the dashboard opens on.
const DefaultMonth = "2024-01"

// Aggregator holds one session's dashboard state: a budget-sum slot and a
// month-keyed record series slot. The two slots are fetched independently;
// a failure in one never clears the other's last successful result.
//
// Switching month bumps a generation counter. A fetched series is applied
// only when its generation is still current, so out-of-order arrivals from
// rapid month switching cannot overwrite a newer selection.
type Aggregator struct {
	gw gateway.Client

	mu       sync.Mutex
	sums     gateway.BudgetSums
	sumsOK   bool
	month    string
	records  []gateway.MonthlyRecord
	seriesOK bool
	gen      uint64
}

// NewAggregator creates an aggregator with nothing fetched and the default
// month selected.
func NewAggregator(gw gateway.Client) *Aggregator {
	return &Aggregator{gw: gw, month: DefaultMonth}
}

// RefreshSums fetches the budget-sum summary. On failure the previous
// sums, if any, are kept.
func (a *Aggregator) RefreshSums(ctx context.Context) error {
	sums, err := a.gw.FetchBudgetSums(ctx)
	if err != nil {
		return err
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	a.sums = sums
	a.sumsOK = true
	return nil
}

// LoadMonth selects a month and fetches its record series. The selection
// takes effect immediately; the fetched series is applied only if no newer
// selection superseded it while the fetch was in flight. On failure the
// previous series is kept and the selection still moves to the new month.
func (a *Aggregator) LoadMonth(ctx context.Context, month string) error {
	if month == "" {
		month = DefaultMonth
	}

	a.mu.Lock()
	a.month = month
	a.gen++
	gen := a.gen
	a.mu.Unlock()

	records, err := a.gw.FetchRecordsByMonth(ctx, month)

	a.mu.Lock()
	defer a.mu.Unlock()
	if gen != a.gen {
		// A newer month selection superseded this fetch.
		return nil
	}
	if err != nil {
		return err
	}
	a.records = records
	a.seriesOK = true
	return nil
}

// Sums returns the last successfully fetched budget sums and whether any
// fetch has succeeded yet.
func (a *Aggregator) Sums() (gateway.BudgetSums, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.sums, a.sumsOK
}

// Month returns the currently selected month key.
func (a *Aggregator) Month() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.month
}

// Records returns the last successfully fetched series in server order and
// whether any series fetch has succeeded yet.
func (a *Aggregator) Records() ([]gateway.MonthlyRecord, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]gateway.MonthlyRecord, len(a.records))
	copy(out, a.records)
	return out, a.seriesOK
}

// BarSeries is the bar chart's input: one label and two bars per record.
type BarSeries struct {
	Labels []string  `json:"labels"`
	Total  []float64 `json:"total"`
	Daily  []float64 `json:"daily"`
}

// BarData shapes a record series for the monthly bar chart, preserving
// server order.
func BarData(records []gateway.MonthlyRecord) BarSeries {
	s := BarSeries{
		Labels: make([]string, 0, len(records)),
		Total:  make([]float64, 0, len(records)),
		Daily:  make([]float64, 0, len(records)),
	}
	for _, r := range records {
		s.Labels = append(s.Labels, r.CreatedAt)
		s.Total = append(s.Total, r.TotalBudget)
		s.Daily = append(s.Daily, r.DailyBudget)
	}
	return s
}

// PieData parses the decimal-string sums into the pie chart's two slices.
// The textual precision of the sums is a display concern elsewhere;
// numeric parsing happens only here, at the chart boundary. An unparseable
// sum becomes a zero slice.
func PieData(sums gateway.BudgetSums) (total, daily float64) {
	total, _ = strconv.ParseFloat(sums.TotalBudgetSum, 64)
	daily, _ = strconv.ParseFloat(sums.DailyBudgetSum, 64)
	return total, daily
}
