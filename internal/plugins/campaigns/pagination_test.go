package campaigns

import "testing"

func TestPaginateTwelveItems(t *testing.T) {
	items := sampleCampaigns(1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12)

	first := Paginate(items, 5, 1)
	if first.Count != 3 {
		t.Fatalf("expected 3 pages, got %d", first.Count)
	}
	if len(first.Items) != 5 || first.Items[0].ID != 1 || first.Items[4].ID != 5 {
		t.Fatalf("unexpected first page: %+v", first.Items)
	}

	last := Paginate(items, 5, 3)
	if len(last.Items) != 2 || last.Items[0].ID != 11 || last.Items[1].ID != 12 {
		t.Fatalf("unexpected last page: %+v", last.Items)
	}
}

func TestPaginateClampsPageNumber(t *testing.T) {
	items := sampleCampaigns(1, 2, 3, 4, 5, 6)

	over := Paginate(items, 5, 9)
	if over.Number != 2 {
		t.Fatalf("expected page clamped to 2, got %d", over.Number)
	}
	if len(over.Items) != 1 || over.Items[0].ID != 6 {
		t.Fatalf("unexpected clamped page: %+v", over.Items)
	}

	under := Paginate(items, 5, 0)
	if under.Number != 1 {
		t.Fatalf("expected page clamped to 1, got %d", under.Number)
	}
}

func TestPaginateEmptyCollection(t *testing.T) {
	page := Paginate(nil, 5, 1)
	if page.Count != 1 || page.Number != 1 {
		t.Fatalf("expected single empty page, got %+v", page)
	}
	if len(page.Items) != 0 {
		t.Fatalf("expected no items, got %d", len(page.Items))
	}
}

func TestPageCount(t *testing.T) {
	cases := []struct {
		n, size, want int
	}{
		{0, 5, 1},
		{1, 5, 1},
		{5, 5, 1},
		{6, 5, 2},
		{12, 5, 3},
	}
	for _, tc := range cases {
		if got := PageCount(tc.n, tc.size); got != tc.want {
			t.Errorf("PageCount(%d, %d) = %d, want %d", tc.n, tc.size, got, tc.want)
		}
	}
}
