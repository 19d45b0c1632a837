package search

// PageSize is the fixed number of results per provider page
const PageSize = 10

// WindowSize is the maximum number of page links shown at once
const WindowSize = 9

// Pagination is the rendered state of the pager
type Pagination struct {
	Page    int
	Total   int
	Pages   []int // contiguous, ascending
	HasPrev bool
	HasNext bool
	Visible bool // false when there is at most one page
}

// TotalPages returns ceil(totalResults / PageSize)
func TotalPages(totalResults int) int {
	if totalResults <= 0 {
		return 0
	}
	return (totalResults + PageSize - 1) / PageSize
}

// Window centers a WindowSize range on page where possible, shifting it
// left near the last page. A page beyond totalPages still yields a window
// ending at totalPages.
func Window(page, totalPages int) Pagination {
	p := Pagination{
		Page:    page,
		Total:   totalPages,
		HasPrev: page > 1,
		HasNext: page < totalPages,
		Visible: totalPages > 1,
	}
	if totalPages < 1 {
		return p
	}

	half := WindowSize / 2
	start := max(1, page-half)
	end := start + WindowSize - 1
	if end > totalPages {
		end = totalPages
		start = max(1, end-WindowSize+1)
	}

	p.Pages = make([]int, 0, end-start+1)
	for n := start; n <= end; n++ {
		p.Pages = append(p.Pages, n)
	}
	return p
}
