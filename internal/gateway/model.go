// Package gateway is the typed REST client for the remote campaign and
// authentication service. It is the only package that talks to the remote
// API; everything above it works with the normalized types defined here.
package gateway

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"time"
)

// Campaign represents one advertising campaign as exchanged with the remote
// service. A zero ID denotes an unsaved campaign.
type Campaign struct {
	ID          int64        `json:"id"`
	Name        string       `json:"name"`
	From        string       `json:"from"`
	To          string       `json:"to"`
	DailyBudget float64      `json:"daily_budget"`
	TotalBudget float64      `json:"total_budget"`
	Creatives   CreativeList `json:"creatives"`
}

// UnmarshalJSON decodes a campaign and normalizes an absent creatives field
// to an empty list. The null/array/encoded-string shapes are handled by
// CreativeList itself, but a field the server omitted entirely never
// reaches that codepath, so the guarantee that consumers always see a list
// is completed here.
func (c *Campaign) UnmarshalJSON(data []byte) error {
	type campaignAlias Campaign
	var a campaignAlias
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	if a.Creatives == nil {
		a.Creatives = CreativeList{}
	}
	*c = Campaign(a)
	return nil
}

// CreativeList is an ordered sequence of creative asset URLs. The remote
// service legally hands this field back in three shapes: a JSON array, a
// single JSON-encoded array string, or null/absent. Normalization happens
// here, at the deserialization boundary, so every consumer only ever sees
// a plain list.
type CreativeList []string

// UnmarshalJSON normalizes the three wire shapes into a list. A malformed
// encoded value is logged and recovered to an empty list; it never fails
// the surrounding decode.
func (c *CreativeList) UnmarshalJSON(data []byte) error {
	*c = CreativeList{}

	if len(data) == 0 || string(data) == "null" {
		return nil
	}

	// Literal array.
	var urls []string
	if err := json.Unmarshal(data, &urls); err == nil {
		*c = urls
		return nil
	}

	// Single string holding an encoded array.
	var encoded string
	if err := json.Unmarshal(data, &encoded); err != nil {
		slog.Warn("unexpected creatives shape", slog.String("raw", string(data)))
		return nil
	}
	if err := json.Unmarshal([]byte(encoded), &urls); err != nil {
		slog.Warn("malformed encoded creatives list",
			slog.String("raw", encoded),
			slog.Any("error", err),
		)
		return nil
	}
	*c = urls
	return nil
}

// MarshalJSON always emits a JSON array, never null, so the remote service
// and templates see a consistent shape.
func (c CreativeList) MarshalJSON() ([]byte, error) {
	if c == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]string(c))
}

// BudgetSums is the server-computed aggregate of budgets across campaigns.
// The sums are decimal-formatted strings; textual precision is preserved
// and only parsed to a number when shaping chart input.
type BudgetSums struct {
	TotalBudgetSum string `json:"total_budget_sum"`
	DailyBudgetSum string `json:"daily_budget_sum"`
}

// MonthlyRecord is one per-period statistics entry for the dashboard's
// time-series chart. The server-supplied order of records is preserved.
type MonthlyRecord struct {
	CreatedAt   string  `json:"created_at"`
	TotalBudget float64 `json:"total_budget"`
	DailyBudget float64 `json:"daily_budget"`
}

// Credentials is the login request payload.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Registration is the account signup payload.
type Registration struct {
	Name                 string `json:"name"`
	Email                string `json:"email"`
	Password             string `json:"password"`
	PasswordConfirmation string `json:"password_confirmation"`
	Role                 string `json:"role"`
}

// Profile is the authenticated user's account details.
type Profile struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// dateLayouts are the remote representations a campaign date may arrive in,
// tried in order.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// TruncateDate reduces a remote date-time value to its YYYY-MM-DD component
// for use in editable date fields.
func TruncateDate(s string) (string, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("2006-01-02"), nil
		}
	}
	return "", fmt.Errorf("unrecognized date value %q", s)
}
