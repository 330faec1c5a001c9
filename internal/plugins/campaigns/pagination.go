package campaigns

import "github.com/arlden/adpanel/internal/gateway"

// PageSize is the fixed number of campaigns shown per list page.
const PageSize = 5

// Page is one slice of the campaign collection plus the numbers the
// pagination controls need.
type Page struct {
	// Items is the slice [(Number-1)*size, Number*size) clipped to the
	// collection length.
	Items []gateway.Campaign

	// Number is the 1-indexed current page.
	Number int

	// Count is the total number of pages: ceil(Total / size), at least 1.
	Count int

	// Total is the collection length.
	Total int
}

// Paginate slices the collection into the requested page. Page numbers are
// clamped into [1, Count], so a stale page number (after a delete emptied
// the last page) degrades to the nearest valid page instead of rendering
// an empty one. Changing page is a local transition: no network involved.
func Paginate(items []gateway.Campaign, size, page int) Page {
	if size < 1 {
		size = PageSize
	}

	count := PageCount(len(items), size)
	page = ClampPage(page, count)

	start := (page - 1) * size
	end := start + size
	if start > len(items) {
		start = len(items)
	}
	if end > len(items) {
		end = len(items)
	}

	return Page{
		Items:  items[start:end],
		Number: page,
		Count:  count,
		Total:  len(items),
	}
}

// PageCount returns ceil(n / size), never less than 1 so an empty
// collection still renders a single (empty) page.
func PageCount(n, size int) int {
	if n <= 0 {
		return 1
	}
	return (n + size - 1) / size
}

// ClampPage bounds a 1-indexed page number to [1, count].
func ClampPage(page, count int) int {
	if page < 1 {
		return 1
	}
	if page > count {
		return count
	}
	return page
}
