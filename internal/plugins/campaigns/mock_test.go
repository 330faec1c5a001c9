package campaigns

import (
	"context"
	"errors"

	"github.com/arlden/adpanel/internal/gateway"
)

// mockGateway implements gateway.Client with overridable function fields.
// Unset operations fail loudly so a test only exercises what it stubs.
type mockGateway struct {
	listCampaignsFunc  func(ctx context.Context) ([]gateway.Campaign, error)
	getCampaignFunc    func(ctx context.Context, id int64) (gateway.Campaign, error)
	saveCampaignFunc   func(ctx context.Context, campaign gateway.Campaign) error
	deleteCampaignFunc func(ctx context.Context, id int64) error
}

var errNotStubbed = errors.New("operation not stubbed")

func (m *mockGateway) ListCampaigns(ctx context.Context) ([]gateway.Campaign, error) {
	if m.listCampaignsFunc != nil {
		return m.listCampaignsFunc(ctx)
	}
	return nil, errNotStubbed
}

func (m *mockGateway) GetCampaign(ctx context.Context, id int64) (gateway.Campaign, error) {
	if m.getCampaignFunc != nil {
		return m.getCampaignFunc(ctx, id)
	}
	return gateway.Campaign{}, errNotStubbed
}

func (m *mockGateway) SaveCampaign(ctx context.Context, campaign gateway.Campaign) error {
	if m.saveCampaignFunc != nil {
		return m.saveCampaignFunc(ctx, campaign)
	}
	return errNotStubbed
}

func (m *mockGateway) DeleteCampaign(ctx context.Context, id int64) error {
	if m.deleteCampaignFunc != nil {
		return m.deleteCampaignFunc(ctx, id)
	}
	return errNotStubbed
}

func (m *mockGateway) FetchBudgetSums(ctx context.Context) (gateway.BudgetSums, error) {
	return gateway.BudgetSums{}, errNotStubbed
}

func (m *mockGateway) FetchRecordsByMonth(ctx context.Context, month string) ([]gateway.MonthlyRecord, error) {
	return nil, errNotStubbed
}

func (m *mockGateway) Login(ctx context.Context, creds gateway.Credentials) (string, error) {
	return "", errNotStubbed
}

func (m *mockGateway) Register(ctx context.Context, reg gateway.Registration) error {
	return errNotStubbed
}

func (m *mockGateway) FetchProfile(ctx context.Context) (gateway.Profile, error) {
	return gateway.Profile{}, errNotStubbed
}

func (m *mockGateway) Logout(ctx context.Context) error {
	return errNotStubbed
}
