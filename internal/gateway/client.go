package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/cenkalti/backoff/v5"

	"github.com/arlden/adpanel/internal/apperror"
	"github.com/arlden/adpanel/internal/config"
)

// Client defines one operation per remote capability. Every authenticated
// operation attaches the current session token (carried in the context)
// as a bearer credential.
type Client interface {
	ListCampaigns(ctx context.Context) ([]Campaign, error)
	GetCampaign(ctx context.Context, id int64) (Campaign, error)
	// SaveCampaign dispatches a create request when the campaign's ID is
	// zero and an update request otherwise. It returns no payload.
	SaveCampaign(ctx context.Context, campaign Campaign) error
	DeleteCampaign(ctx context.Context, id int64) error

	FetchBudgetSums(ctx context.Context) (BudgetSums, error)
	FetchRecordsByMonth(ctx context.Context, month string) ([]MonthlyRecord, error)

	Login(ctx context.Context, creds Credentials) (string, error)
	Register(ctx context.Context, reg Registration) error
	FetchProfile(ctx context.Context) (Profile, error)
	Logout(ctx context.Context) error
}

// tokenKey is the private context key carrying the session's bearer token.
type tokenKey struct{}

// WithToken returns a context carrying the remote bearer token. The session
// middleware sets it once per request; the client reads it on every call.
func WithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenKey{}, token)
}

// ContextToken returns the bearer token from the context, or "".
func ContextToken(ctx context.Context) string {
	token, _ := ctx.Value(tokenKey{}).(string)
	return token
}

// apiClient implements Client over the remote REST surface.
type apiClient struct {
	baseURL string
	client  *http.Client
}

// NewClient creates a gateway client for the configured remote API.
func NewClient(cfg config.APIConfig) Client {
	return &apiClient{
		baseURL: cfg.BaseURL,
		client:  &http.Client{Timeout: cfg.Timeout},
	}
}

// validationBody is the remote service's 422 response shape.
type validationBody struct {
	Errors map[string][]string `json:"errors"`
}

// loginResponse is the remote auth service's login payload.
type loginResponse struct {
	AccessToken string `json:"access_token"`
}

// maxAttempts bounds transport-level retries per call: one retry after the
// initial attempt. Remote-reported failures (4xx/5xx) are never retried.
const maxAttempts = 2

// makeRequest performs one remote call: marshals the body, attaches the
// bearer token and JSON content type, retries transient transport failures
// with exponential backoff, maps error statuses to apperror types, and
// decodes a successful response into out (when out is non-nil).
func (c *apiClient) makeRequest(ctx context.Context, method, endpoint string, body, out any) error {
	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return apperror.NewInternal(fmt.Errorf("marshaling request body: %w", err))
		}
	}

	operation := func() ([]byte, error) {
		var reqBody io.Reader
		if payload != nil {
			reqBody = bytes.NewReader(payload)
		}

		req, err := http.NewRequestWithContext(ctx, method, c.baseURL+endpoint, reqBody)
		if err != nil {
			return nil, backoff.Permanent(apperror.NewInternal(fmt.Errorf("creating request: %w", err)))
		}

		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Accept", "application/json")
		if token := ContextToken(ctx); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}

		resp, err := c.client.Do(req)
		if err != nil {
			// Transport failure: the one retryable case.
			return nil, apperror.NewNetwork(err)
		}
		defer resp.Body.Close()

		respBody, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, backoff.Permanent(apperror.NewNetwork(err))
		}

		if resp.StatusCode >= 400 {
			return nil, backoff.Permanent(c.statusError(resp.StatusCode, respBody, method, endpoint))
		}

		return respBody, nil
	}

	respBody, err := backoff.Retry(ctx, operation,
		backoff.WithBackOff(backoff.NewExponentialBackOff()),
		backoff.WithMaxTries(maxAttempts),
	)
	if err != nil {
		return err
	}

	if out == nil || len(respBody) == 0 {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return apperror.NewNetwork(fmt.Errorf("decoding %s %s response: %w", method, endpoint, err))
	}
	return nil
}

// statusError maps a remote error status to the domain error taxonomy.
func (c *apiClient) statusError(status int, body []byte, method, endpoint string) error {
	switch status {
	case http.StatusNotFound:
		return apperror.NewNotFound("record not found")
	case http.StatusUnauthorized:
		return apperror.NewUnauthorized("session expired or invalid")
	case http.StatusUnprocessableEntity:
		var vb validationBody
		if err := json.Unmarshal(body, &vb); err != nil || len(vb.Errors) == 0 {
			slog.Warn("unparseable validation response",
				slog.String("endpoint", endpoint),
				slog.String("body", string(body)),
			)
			return apperror.NewValidation(map[string][]string{"request": {"invalid data"}})
		}
		return apperror.NewValidation(vb.Errors)
	default:
		return apperror.NewNetwork(fmt.Errorf("%s %s: remote status %d", method, endpoint, status))
	}
}

// --- Campaign operations ---

func (c *apiClient) ListCampaigns(ctx context.Context) ([]Campaign, error) {
	var campaigns []Campaign
	if err := c.makeRequest(ctx, http.MethodGet, "/campaigns", nil, &campaigns); err != nil {
		return nil, err
	}
	return campaigns, nil
}

func (c *apiClient) GetCampaign(ctx context.Context, id int64) (Campaign, error) {
	var campaign Campaign
	endpoint := fmt.Sprintf("/campaigns/%d", id)
	if err := c.makeRequest(ctx, http.MethodGet, endpoint, nil, &campaign); err != nil {
		return Campaign{}, err
	}
	return campaign, nil
}

func (c *apiClient) SaveCampaign(ctx context.Context, campaign Campaign) error {
	if campaign.ID == 0 {
		return c.makeRequest(ctx, http.MethodPost, "/create", campaign, nil)
	}
	endpoint := fmt.Sprintf("/campaigns/%d", campaign.ID)
	return c.makeRequest(ctx, http.MethodPut, endpoint, campaign, nil)
}

func (c *apiClient) DeleteCampaign(ctx context.Context, id int64) error {
	endpoint := fmt.Sprintf("/campaigns/%d", id)
	return c.makeRequest(ctx, http.MethodDelete, endpoint, nil, nil)
}

// --- Dashboard operations ---

func (c *apiClient) FetchBudgetSums(ctx context.Context) (BudgetSums, error) {
	var sums BudgetSums
	if err := c.makeRequest(ctx, http.MethodGet, "/budget-sums", nil, &sums); err != nil {
		return BudgetSums{}, err
	}
	return sums, nil
}

func (c *apiClient) FetchRecordsByMonth(ctx context.Context, month string) ([]MonthlyRecord, error) {
	var records []MonthlyRecord
	endpoint := "/records-by-month?month=" + url.QueryEscape(month)
	if err := c.makeRequest(ctx, http.MethodGet, endpoint, nil, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// --- Auth operations ---

func (c *apiClient) Login(ctx context.Context, creds Credentials) (string, error) {
	var resp loginResponse
	if err := c.makeRequest(ctx, http.MethodPost, "/auth/login", creds, &resp); err != nil {
		return "", err
	}
	if resp.AccessToken == "" {
		return "", apperror.NewNetwork(fmt.Errorf("login response missing access_token"))
	}
	return resp.AccessToken, nil
}

func (c *apiClient) Register(ctx context.Context, reg Registration) error {
	return c.makeRequest(ctx, http.MethodPost, "/auth/register", reg, nil)
}

func (c *apiClient) FetchProfile(ctx context.Context) (Profile, error) {
	var profile Profile
	if err := c.makeRequest(ctx, http.MethodGet, "/auth/profile", nil, &profile); err != nil {
		return Profile{}, err
	}
	return profile, nil
}

// Logout invalidates the server-side session. Best-effort: callers clear
// local session state regardless of the outcome.
func (c *apiClient) Logout(ctx context.Context) error {
	return c.makeRequest(ctx, http.MethodPost, "/auth/logout", struct{}{}, nil)
}

// Interface guard.
var _ Client = (*apiClient)(nil)
