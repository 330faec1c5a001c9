package campaigns

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/arlden/adpanel/internal/gateway"
)

func TestOpenTruncatesDates(t *testing.T) {
	gw := &mockGateway{
		getCampaignFunc: func(ctx context.Context, id int64) (gateway.Campaign, error) {
			return gateway.Campaign{
				ID:   4,
				Name: "spring",
				From: "2024-03-01T00:00:00Z",
				To:   "2024-03-31 12:30:00",
			}, nil
		},
	}
	form := NewForm(gw)

	if err := form.Open(context.Background(), 4); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	working := form.Working()
	if working.From != "2024-03-01" {
		t.Errorf("expected truncated from date, got %q", working.From)
	}
	if working.To != "2024-03-31" {
		t.Errorf("expected truncated to date, got %q", working.To)
	}
	if working.Creatives == nil {
		t.Error("expected creatives to be normalized to an empty list")
	}
}

func TestOpenFailureKeepsPriorState(t *testing.T) {
	gw := &mockGateway{
		getCampaignFunc: func(ctx context.Context, id int64) (gateway.Campaign, error) {
			if id == 1 {
				return gateway.Campaign{ID: 1, Name: "kept", From: "2024-01-01", To: "2024-02-01"}, nil
			}
			return gateway.Campaign{}, errors.New("not reachable")
		},
	}
	form := NewForm(gw)

	if err := form.Open(context.Background(), 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := form.Open(context.Background(), 2); err == nil {
		t.Fatal("expected an error")
	}

	if got := form.Working().Name; got != "kept" {
		t.Fatalf("expected prior working copy to survive, got %q", got)
	}
}

func TestStaleOpenIsDiscarded(t *testing.T) {
	// started guarantees Open(1) has claimed its generation before Open(2)
	// runs; release then lets its fetch return after Open(2) finished.
	started := make(chan struct{})
	release := make(chan struct{})
	gw := &mockGateway{
		getCampaignFunc: func(ctx context.Context, id int64) (gateway.Campaign, error) {
			if id == 1 {
				close(started)
				<-release
				return gateway.Campaign{ID: 1, Name: "slow", From: "2024-01-01", To: "2024-02-01"}, nil
			}
			return gateway.Campaign{ID: 2, Name: "fast", From: "2024-03-01", To: "2024-04-01"}, nil
		},
	}
	form := NewForm(gw)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := form.Open(context.Background(), 1); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	}()

	<-started
	if err := form.Open(context.Background(), 2); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	close(release)
	wg.Wait()

	if got := form.Working().Name; got != "fast" {
		t.Fatalf("expected the later open to win, got %q", got)
	}
}

func TestSaveDispatchesCreateForZeroID(t *testing.T) {
	var saved gateway.Campaign
	gw := &mockGateway{
		saveCampaignFunc: func(ctx context.Context, campaign gateway.Campaign) error {
			saved = campaign
			return nil
		},
	}
	form := NewForm(gw)
	form.SetFields("new campaign", "2024-05-01", "2024-06-01", 10, 300)

	created, err := form.Save(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !created {
		t.Fatal("expected a create")
	}
	if saved.Name != "new campaign" || saved.ID != 0 {
		t.Fatalf("unexpected payload: %+v", saved)
	}

	if got := form.Working(); got.Name != "" || got.ID != 0 {
		t.Fatalf("expected working copy reset after save, got %+v", got)
	}
}

func TestSaveDispatchesUpdateForExistingID(t *testing.T) {
	gw := &mockGateway{
		getCampaignFunc: func(ctx context.Context, id int64) (gateway.Campaign, error) {
			return gateway.Campaign{ID: 9, Name: "old", From: "2024-01-01", To: "2024-02-01"}, nil
		},
		saveCampaignFunc: func(ctx context.Context, campaign gateway.Campaign) error {
			return nil
		},
	}
	form := NewForm(gw)
	if err := form.Open(context.Background(), 9); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	form.SetFields("renamed", "2024-01-01", "2024-02-01", 5, 100)

	created, err := form.Save(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created {
		t.Fatal("expected an update, not a create")
	}
}

func TestSaveFailureKeepsWorkingCopy(t *testing.T) {
	gw := &mockGateway{
		saveCampaignFunc: func(ctx context.Context, campaign gateway.Campaign) error {
			return errors.New("validation failed")
		},
	}
	form := NewForm(gw)
	form.SetFields("draft", "2024-05-01", "2024-06-01", 1, 2)

	if _, err := form.Save(context.Background()); err == nil {
		t.Fatal("expected an error")
	}
	if got := form.Working().Name; got != "draft" {
		t.Fatalf("expected working copy kept for correction, got %q", got)
	}
}

func TestAppendCreativesAccumulates(t *testing.T) {
	form := NewForm(&mockGateway{})

	form.AppendCreatives([]string{"/media/a.png"})
	form.AppendCreatives([]string{"/media/b.png", "/media/c.png"})
	form.AppendCreatives(nil)

	got := form.Working().Creatives
	want := []string{"/media/a.png", "/media/b.png", "/media/c.png"}
	if len(got) != len(want) {
		t.Fatalf("expected %d creatives, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("creative %d: got %q, want %q", i, got[i], want[i])
		}
	}
}

func TestSetFieldsStripsMarkupFromName(t *testing.T) {
	form := NewForm(&mockGateway{})
	form.SetFields("<b>Spring</b> Sale", "2024-01-01", "2024-02-01", 1, 2)

	if got := form.Working().Name; got != "Spring Sale" {
		t.Fatalf("expected markup stripped from name, got %q", got)
	}
}

func TestSetFieldsDoesNotTouchCreatives(t *testing.T) {
	form := NewForm(&mockGateway{})
	form.AppendCreatives([]string{"/media/a.png"})

	form.SetFields("named", "2024-01-01", "2024-02-01", 1, 2)

	if got := form.Working().Creatives; len(got) != 1 {
		t.Fatalf("expected creatives untouched, got %v", got)
	}
}
