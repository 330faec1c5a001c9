package campaigns

import (
	"context"
	"sync"

	"github.com/arlden/adpanel/internal/apperror"
	"github.com/arlden/adpanel/internal/gateway"
	"github.com/arlden/adpanel/internal/sanitize"
)

// Form manages one session's edit/create workflow. It owns a single working
// copy of the campaign under edit, independent from the repository's
// collection: editing never touches the list until the next refresh.
//
// Each Open bumps a generation counter; a load whose generation has been
// superseded (the user navigated to another campaign while the fetch was in
// flight) is discarded instead of clobbering the newer working copy.
type Form struct {
	gw gateway.Client

	mu      sync.Mutex
	working gateway.Campaign
	gen     uint64
}

// NewForm creates a form controller opened on a blank campaign.
func NewForm(gw gateway.Client) *Form {
	return &Form{
		gw:      gw,
		working: blankCampaign(),
	}
}

func blankCampaign() gateway.Campaign {
	return gateway.Campaign{Creatives: gateway.CreativeList{}}
}

// OpenNew resets the working copy to a blank unsaved campaign.
func (f *Form) OpenNew() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.gen++
	f.working = blankCampaign()
}

// Open loads the campaign with the given id into the working copy. The
// from/to dates are truncated to their calendar-date component; a record
// whose dates cannot be read as calendar dates is not editable. On any
// failure the working copy keeps its prior state and the returned error is
// reportable as a load failure.
func (f *Form) Open(ctx context.Context, id int64) error {
	f.mu.Lock()
	f.gen++
	gen := f.gen
	f.mu.Unlock()

	campaign, err := f.gw.GetCampaign(ctx, id)
	if err != nil {
		return err
	}

	from, err := gateway.TruncateDate(campaign.From)
	if err != nil {
		return apperror.NewInternal(err)
	}
	to, err := gateway.TruncateDate(campaign.To)
	if err != nil {
		return apperror.NewInternal(err)
	}
	campaign.From = from
	campaign.To = to
	if campaign.Creatives == nil {
		campaign.Creatives = gateway.CreativeList{}
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if gen != f.gen {
		// A newer Open superseded this load; drop the stale result.
		return nil
	}
	f.working = campaign
	return nil
}

// Working returns a copy of the current working campaign.
func (f *Form) Working() gateway.Campaign {
	f.mu.Lock()
	defer f.mu.Unlock()
	c := f.working
	c.Creatives = append(gateway.CreativeList{}, f.working.Creatives...)
	return c
}

// SetFields applies the editable form fields to the working copy. The name
// is reduced to plain text; the id and the accumulated creatives are not
// touched.
func (f *Form) SetFields(name, from, to string, dailyBudget, totalBudget float64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.working.Name = sanitize.PlainText(name)
	f.working.From = from
	f.working.To = to
	f.working.DailyBudget = dailyBudget
	f.working.TotalBudget = totalBudget
}

// AppendCreatives appends newly attached asset references to the working
// copy. Accumulation is append-only within an editing session; previously
// attached references are never replaced.
func (f *Form) AppendCreatives(urls []string) {
	if len(urls) == 0 {
		return
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.working.Creatives = append(f.working.Creatives, urls...)
}

// Save submits the working copy: a create request when the id is zero, an
// update otherwise. It reports whether the submission was a create so the
// caller can pick the right success message. On success the working copy
// is reset for the next session.
func (f *Form) Save(ctx context.Context) (created bool, err error) {
	f.mu.Lock()
	snapshot := f.working
	f.mu.Unlock()

	created = snapshot.ID == 0
	if err := f.gw.SaveCampaign(ctx, snapshot); err != nil {
		return created, err
	}

	f.mu.Lock()
	f.gen++
	f.working = blankCampaign()
	f.mu.Unlock()
	return created, nil
}
