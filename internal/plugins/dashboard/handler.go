package dashboard

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/arlden/adpanel/internal/gateway"
	"github.com/arlden/adpanel/internal/middleware"
	"github.com/arlden/adpanel/internal/plugins/session"
	"github.com/arlden/adpanel/internal/state"
)

const (
	msgSumsFailed    = "Failed to load budget summary. Please try again later."
	msgRecordsFailed = "Failed to load monthly records. Please try again later."
)

// Handler handles the dashboard views. Per-session aggregators are looked
// up by browser session token.
type Handler struct {
	aggs *state.Registry[*Aggregator]
}

// NewHandler creates a dashboard handler with a fresh per-session registry.
func NewHandler(gw gateway.Client, ttl time.Duration) *Handler {
	return &Handler{
		aggs: state.NewRegistry(ttl, func() *Aggregator { return NewAggregator(gw) }),
	}
}

// Dashboard renders the full overview (GET /dashboard). Both slots are
// refreshed; each failure shows its own banner without touching the other
// slot's data.
func (h *Handler) Dashboard(c echo.Context) error {
	agg := h.aggs.Get(session.CurrentToken(c))
	ctx := c.Request().Context()

	sumsErr := ""
	if err := agg.RefreshSums(ctx); err != nil {
		sumsErr = msgSumsFailed
	}

	recordsErr := ""
	if err := agg.LoadMonth(ctx, agg.Month()); err != nil {
		recordsErr = msgRecordsFailed
	}

	sums, _ := agg.Sums()
	records, _ := agg.Records()
	return middleware.Render(c, http.StatusOK, DashboardPage(sums, sumsErr, agg.Month(), records, recordsErr))
}

// Records switches the selected month and renders the series section
// (GET /dashboard/records?month=YYYY-MM, an HTMX fragment swap).
func (h *Handler) Records(c echo.Context) error {
	agg := h.aggs.Get(session.CurrentToken(c))

	recordsErr := ""
	if err := agg.LoadMonth(c.Request().Context(), c.QueryParam("month")); err != nil {
		recordsErr = msgRecordsFailed
	}

	records, _ := agg.Records()
	return middleware.Render(c, http.StatusOK, RecordsSection(agg.Month(), records, recordsErr))
}
