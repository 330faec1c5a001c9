package gateway

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arlden/adpanel/internal/apperror"
	"github.com/arlden/adpanel/internal/config"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(config.APIConfig{BaseURL: srv.URL, Timeout: 5 * time.Second})
}

func TestListCampaignsAttachesCredentials(t *testing.T) {
	var gotAuth, gotContentType string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotContentType = r.Header.Get("Content-Type")
		w.Write([]byte(`[{"id":1,"name":"spring","from":"2024-03-01","to":"2024-03-31","daily_budget":10,"total_budget":300,"creatives":null}]`))
	})

	ctx := WithToken(context.Background(), "tok-123")
	campaigns, err := client.ListCampaigns(ctx)
	require.NoError(t, err)

	assert.Equal(t, "Bearer tok-123", gotAuth)
	assert.Equal(t, "application/json", gotContentType)
	require.Len(t, campaigns, 1)
	assert.Equal(t, "spring", campaigns[0].Name)
	assert.Equal(t, CreativeList{}, campaigns[0].Creatives)
}

func TestSaveCampaignDispatch(t *testing.T) {
	var gotMethod, gotPath string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		w.WriteHeader(http.StatusOK)
	})

	ctx := context.Background()

	require.NoError(t, client.SaveCampaign(ctx, Campaign{Name: "new"}))
	assert.Equal(t, http.MethodPost, gotMethod)
	assert.Equal(t, "/create", gotPath)

	require.NoError(t, client.SaveCampaign(ctx, Campaign{ID: 7, Name: "existing"}))
	assert.Equal(t, http.MethodPut, gotMethod)
	assert.Equal(t, "/campaigns/7", gotPath)
}

func TestGetCampaignNotFound(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	_, err := client.GetCampaign(context.Background(), 99)
	require.Error(t, err)
	assert.True(t, apperror.IsType(err, apperror.TypeNotFound))
}

func TestSaveCampaignValidationFailure(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"errors":{"name":["required"]}}`))
	})

	err := client.SaveCampaign(context.Background(), Campaign{Name: ""})
	require.Error(t, err)

	appErr, ok := err.(*apperror.AppError)
	require.True(t, ok)
	assert.Equal(t, apperror.TypeValidation, appErr.Type)
	assert.Equal(t, "Validation failed: required", appErr.Message)
	assert.Equal(t, []string{"required"}, appErr.Fields["name"])
}

func TestValidationFlattenMultipleFields(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"errors":{"name":["required"],"to":["must be after from"]}}`))
	})

	err := client.SaveCampaign(context.Background(), Campaign{})
	require.Error(t, err)
	assert.Equal(t, "Validation failed: required, must be after from", apperror.SafeMessage(err))
}

func TestTransportFailureIsNetwork(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close() // Connection refused from here on.

	client := NewClient(config.APIConfig{BaseURL: srv.URL, Timeout: time.Second})
	_, err := client.ListCampaigns(context.Background())
	require.Error(t, err)
	assert.True(t, apperror.IsType(err, apperror.TypeNetwork))
}

func TestRemoteErrorsAreNotRetried(t *testing.T) {
	var calls int
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusInternalServerError)
	})

	_, err := client.FetchBudgetSums(context.Background())
	require.Error(t, err)
	assert.True(t, apperror.IsType(err, apperror.TypeNetwork))
	assert.Equal(t, 1, calls)
}

func TestFetchRecordsByMonthPreservesOrder(t *testing.T) {
	var gotQuery string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		w.Write([]byte(`[
			{"created_at":"2024-02-03","total_budget":100,"daily_budget":10},
			{"created_at":"2024-02-01","total_budget":200,"daily_budget":20}
		]`))
	})

	records, err := client.FetchRecordsByMonth(context.Background(), "2024-02")
	require.NoError(t, err)
	assert.Equal(t, "month=2024-02", gotQuery)
	require.Len(t, records, 2)
	assert.Equal(t, "2024-02-03", records[0].CreatedAt)
	assert.Equal(t, "2024-02-01", records[1].CreatedAt)
}

func TestLoginReturnsAccessToken(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/auth/login", r.URL.Path)
		w.Write([]byte(`{"access_token":"tok-abc"}`))
	})

	token, err := client.Login(context.Background(), Credentials{Email: "a@b.c", Password: "pw"})
	require.NoError(t, err)
	assert.Equal(t, "tok-abc", token)
}

func TestFetchBudgetSumsKeepsStrings(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"total_budget_sum":"1234.50","daily_budget_sum":"56.70"}`))
	})

	sums, err := client.FetchBudgetSums(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "1234.50", sums.TotalBudgetSum)
	assert.Equal(t, "56.70", sums.DailyBudgetSum)
}
