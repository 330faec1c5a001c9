package campaigns

import (
	"context"
	"log/slog"
	"sync"

	"github.com/arlden/adpanel/internal/gateway"
)

// State describes what the repository currently holds. An unfetched
// collection, an empty one, and a failed fetch are distinct states so the
// list view can tell "nothing yet" from "nothing there" from "broke".
type State int

const (
	// StateLoading means no fetch has completed yet.
	StateLoading State = iota

	// StateReady means the collection holds at least one campaign.
	StateReady

	// StateEmpty means the last fetch succeeded and returned no campaigns.
	StateEmpty

	// StateFailed means the last fetch failed; the previous collection, if
	// any, is left in place.
	StateFailed
)

// Repository holds one session's in-memory copy of the campaign collection
// for the list view. It is refreshed wholesale from the gateway and mutated
// locally only after a successful remote delete. It never merges partial
// server updates; any external mutation requires another Refresh.
type Repository struct {
	gw gateway.Client

	mu    sync.Mutex
	state State
	items []gateway.Campaign
}

// NewRepository creates an unfetched repository backed by the gateway.
func NewRepository(gw gateway.Client) *Repository {
	return &Repository{gw: gw, state: StateLoading}
}

// Refresh replaces the collection with the gateway's current list result.
// On failure the collection is left unchanged and the state reports the
// failure.
func (r *Repository) Refresh(ctx context.Context) error {
	items, err := r.gw.ListCampaigns(ctx)

	r.mu.Lock()
	defer r.mu.Unlock()

	if err != nil {
		r.state = StateFailed
		return err
	}

	r.items = items
	if len(items) == 0 {
		r.state = StateEmpty
	} else {
		r.state = StateReady
	}
	return nil
}

// Remove deletes the campaign remotely and, only on success, removes the
// matching entry from the collection, preserving the order of the rest.
// Removing an id that is no longer present locally is a no-op. Failure
// leaves the collection unchanged.
func (r *Repository) Remove(ctx context.Context, id int64) error {
	if err := r.gw.DeleteCampaign(ctx, id); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	kept := r.items[:0]
	for _, c := range r.items {
		if c.ID != id {
			kept = append(kept, c)
		}
	}
	if len(kept) == len(r.items) {
		slog.Debug("deleted campaign was not in the local collection", slog.Int64("id", id))
	}
	r.items = kept
	if r.state == StateReady && len(r.items) == 0 {
		r.state = StateEmpty
	}
	return nil
}

// State returns the repository's current state.
func (r *Repository) State() State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

// Campaigns returns a copy of the collection in server order.
func (r *Repository) Campaigns() []gateway.Campaign {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]gateway.Campaign, len(r.items))
	copy(out, r.items)
	return out
}

// Find returns the campaign with the given id from the collection.
func (r *Repository) Find(id int64) (gateway.Campaign, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.items {
		if c.ID == id {
			return c, true
		}
	}
	return gateway.Campaign{}, false
}

// Len returns the number of campaigns in the collection.
func (r *Repository) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.items)
}
