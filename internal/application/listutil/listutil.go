// Package listutil pages through result lists shown at the desk.
package listutil

// DefaultPerPage is used when a caller asks for paging without a page size.
const DefaultPerPage = 20

// MaxPerPage caps a single page.
const MaxPerPage = 500

// PageInfo describes one page of a result list.
type PageInfo struct {
	Page       int // current page (1-indexed)
	PerPage    int // rows per page
	Total      int // total matching rows
	TotalPages int
}

// NewPageInfo computes page metadata. A perPage of zero or less means the
// whole list is one page.
// PRE: total >= 0
// POST: 1 <= Page <= TotalPages; TotalPages >= 1
func NewPageInfo(page, perPage, total int) PageInfo {
	switch {
	case perPage <= 0:
		perPage = total
		if perPage == 0 {
			perPage = DefaultPerPage
		}
	case perPage > MaxPerPage:
		perPage = MaxPerPage
	}
	totalPages := (total + perPage - 1) / perPage
	if totalPages < 1 {
		totalPages = 1
	}
	if page > totalPages {
		page = totalPages
	}
	if page < 1 {
		page = 1
	}
	return PageInfo{Page: page, PerPage: perPage, Total: total, TotalPages: totalPages}
}

// Offset returns the index of the first row on the page.
func (p PageInfo) Offset() int {
	return (p.Page - 1) * p.PerPage
}

// StartRow returns the 1-indexed first row number on the page, 0 when empty.
func (p PageInfo) StartRow() int {
	if p.Total == 0 {
		return 0
	}
	return p.Offset() + 1
}

// EndRow returns the 1-indexed last row number on the page.
func (p PageInfo) EndRow() int {
	end := p.Offset() + p.PerPage
	if end > p.Total {
		end = p.Total
	}
	return end
}

// Paged reports whether the list spans more than one page.
func (p PageInfo) Paged() bool {
	return p.Total > p.PerPage
}

// Window returns the rows of items that fall on page p.
// PRE: p was computed for len(items)
func Window[T any](items []T, p PageInfo) []T {
	if p.Total == 0 {
		return items[:0]
	}
	return items[p.Offset():p.EndRow()]
}
