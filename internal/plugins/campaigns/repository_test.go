package campaigns

import (
	"context"
	"errors"
	"testing"

	"github.com/arlden/adpanel/internal/gateway"
)

func sampleCampaigns(ids ...int64) []gateway.Campaign {
	out := make([]gateway.Campaign, 0, len(ids))
	for _, id := range ids {
		out = append(out, gateway.Campaign{ID: id, Name: "c", Creatives: gateway.CreativeList{}})
	}
	return out
}

func TestRepositoryStartsLoading(t *testing.T) {
	repo := NewRepository(&mockGateway{})
	if repo.State() != StateLoading {
		t.Fatalf("expected StateLoading, got %v", repo.State())
	}
}

func TestRefreshReplacesCollection(t *testing.T) {
	gw := &mockGateway{
		listCampaignsFunc: func(ctx context.Context) ([]gateway.Campaign, error) {
			return sampleCampaigns(1, 2, 3), nil
		},
	}
	repo := NewRepository(gw)

	if err := repo.Refresh(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.State() != StateReady {
		t.Fatalf("expected StateReady, got %v", repo.State())
	}
	if repo.Len() != 3 {
		t.Fatalf("expected 3 campaigns, got %d", repo.Len())
	}

	gw.listCampaignsFunc = func(ctx context.Context) ([]gateway.Campaign, error) {
		return sampleCampaigns(7), nil
	}
	if err := repo.Refresh(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got := repo.Campaigns()
	if len(got) != 1 || got[0].ID != 7 {
		t.Fatalf("expected collection to be replaced, got %+v", got)
	}
}

func TestRefreshEmptyCollection(t *testing.T) {
	gw := &mockGateway{
		listCampaignsFunc: func(ctx context.Context) ([]gateway.Campaign, error) {
			return nil, nil
		},
	}
	repo := NewRepository(gw)

	if err := repo.Refresh(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.State() != StateEmpty {
		t.Fatalf("expected StateEmpty, got %v", repo.State())
	}
}

func TestRefreshFailureKeepsPreviousCollection(t *testing.T) {
	gw := &mockGateway{
		listCampaignsFunc: func(ctx context.Context) ([]gateway.Campaign, error) {
			return sampleCampaigns(1, 2), nil
		},
	}
	repo := NewRepository(gw)
	if err := repo.Refresh(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	gw.listCampaignsFunc = func(ctx context.Context) ([]gateway.Campaign, error) {
		return nil, errors.New("connection refused")
	}
	if err := repo.Refresh(context.Background()); err == nil {
		t.Fatal("expected an error")
	}
	if repo.State() != StateFailed {
		t.Fatalf("expected StateFailed, got %v", repo.State())
	}
	if repo.Len() != 2 {
		t.Fatalf("expected previous collection to survive, got %d items", repo.Len())
	}
}

func TestRemoveDeletesRemotelyThenLocally(t *testing.T) {
	var deleted int64
	gw := &mockGateway{
		listCampaignsFunc: func(ctx context.Context) ([]gateway.Campaign, error) {
			return sampleCampaigns(1, 2, 3), nil
		},
		deleteCampaignFunc: func(ctx context.Context, id int64) error {
			deleted = id
			return nil
		},
	}
	repo := NewRepository(gw)
	if err := repo.Refresh(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := repo.Remove(context.Background(), 2); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if deleted != 2 {
		t.Fatalf("expected remote delete of 2, got %d", deleted)
	}

	got := repo.Campaigns()
	if len(got) != 2 || got[0].ID != 1 || got[1].ID != 3 {
		t.Fatalf("expected [1 3] in order, got %+v", got)
	}
}

func TestRemoveFailureLeavesCollection(t *testing.T) {
	gw := &mockGateway{
		listCampaignsFunc: func(ctx context.Context) ([]gateway.Campaign, error) {
			return sampleCampaigns(1, 2), nil
		},
		deleteCampaignFunc: func(ctx context.Context, id int64) error {
			return errors.New("boom")
		},
	}
	repo := NewRepository(gw)
	if err := repo.Refresh(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := repo.Remove(context.Background(), 1); err == nil {
		t.Fatal("expected an error")
	}
	if repo.Len() != 2 {
		t.Fatalf("expected collection unchanged, got %d items", repo.Len())
	}
}

func TestRemoveLastCampaignEmptiesState(t *testing.T) {
	gw := &mockGateway{
		listCampaignsFunc: func(ctx context.Context) ([]gateway.Campaign, error) {
			return sampleCampaigns(5), nil
		},
		deleteCampaignFunc: func(ctx context.Context, id int64) error {
			return nil
		},
	}
	repo := NewRepository(gw)
	if err := repo.Refresh(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := repo.Remove(context.Background(), 5); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.State() != StateEmpty {
		t.Fatalf("expected StateEmpty after removing the last campaign, got %v", repo.State())
	}
}

func TestRemoveAbsentIDIsNoOp(t *testing.T) {
	gw := &mockGateway{
		listCampaignsFunc: func(ctx context.Context) ([]gateway.Campaign, error) {
			return sampleCampaigns(1), nil
		},
		deleteCampaignFunc: func(ctx context.Context, id int64) error {
			return nil
		},
	}
	repo := NewRepository(gw)
	if err := repo.Refresh(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := repo.Remove(context.Background(), 99); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.Len() != 1 {
		t.Fatalf("expected collection untouched, got %d items", repo.Len())
	}
}
