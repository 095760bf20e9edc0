// Package pagination computes the bounded, ellipsis-compressed page
// control every listing renders. It is the single implementation shared
// by all screens.
package pagination

// Kind discriminates window items.
type Kind int

const (
	KindPage Kind = iota
	KindEllipsis
)

// Item is one rendered control: a page number or an ellipsis marker.
type Item struct {
	Kind    Kind
	Number  int
	Current bool
}

// TotalPages returns ceil(total/pageSize), 0 when the list is empty.
func TotalPages(total, pageSize int) int {
	if total <= 0 || pageSize <= 0 {
		return 0
	}
	return (total + pageSize - 1) / pageSize
}

// Window lays out the page controls for the given list state. An empty
// list yields no items at all. Up to five numbered pages are shown; longer
// lists keep a five-wide window around the current page with the first and
// last page pinned behind single ellipses.
func Window(total, page, pageSize int) []Item {
	totalPages := TotalPages(total, pageSize)
	if totalPages == 0 {
		return nil
	}

	if totalPages <= 5 {
		items := make([]Item, 0, totalPages)
		for i := 1; i <= totalPages; i++ {
			items = append(items, Item{Kind: KindPage, Number: i, Current: i == page})
		}
		return items
	}

	startPage := page - 2
	if startPage < 1 {
		startPage = 1
	}
	endPage := startPage + 4
	if endPage > totalPages {
		endPage = totalPages
	}
	// Shift the window left near the end so five numbers still show.
	if endPage-startPage < 4 {
		startPage = endPage - 4
		if startPage < 1 {
			startPage = 1
		}
	}

	items := make([]Item, 0, 9)

	if startPage > 1 {
		items = append(items, Item{Kind: KindPage, Number: 1, Current: page == 1})
		if startPage > 2 {
			items = append(items, Item{Kind: KindEllipsis})
		}
	}

	for i := startPage; i <= endPage; i++ {
		items = append(items, Item{Kind: KindPage, Number: i, Current: i == page})
	}

	if endPage < totalPages {
		if endPage < totalPages-1 {
			items = append(items, Item{Kind: KindEllipsis})
		}
		items = append(items, Item{Kind: KindPage, Number: totalPages, Current: page == totalPages})
	}

	return items
}

// Pager validates page-change requests for one list. The zero value is
// unusable; construct with NewPager.
type Pager struct {
	total    int
	page     int
	pageSize int
	onChange func(page int)
}

// NewPager builds a pager at page 1. onChange fires only for accepted
// page changes and may be nil.
func NewPager(pageSize int, onChange func(page int)) *Pager {
	if pageSize < 1 {
		pageSize = 1
	}
	return &Pager{page: 1, pageSize: pageSize, onChange: onChange}
}

// SetTotal replaces the authoritative item count after a fetch.
func (p *Pager) SetTotal(total int) {
	if total < 0 {
		total = 0
	}
	p.total = total
}

// Page returns the current 1-indexed page.
func (p *Pager) Page() int { return p.page }

// PageSize returns the fixed page size.
func (p *Pager) PageSize() int { return p.pageSize }

// TotalPages returns the page count for the current total.
func (p *Pager) TotalPages() int { return TotalPages(p.total, p.pageSize) }

// Items returns the window layout for the current state.
func (p *Pager) Items() []Item { return Window(p.total, p.page, p.pageSize) }

// Request moves to newPage if it is in range and different from the
// current page. Out-of-range requests are silently rejected.
func (p *Pager) Request(newPage int) bool {
	if newPage < 1 || newPage > p.TotalPages() || newPage == p.page {
		return false
	}
	p.page = newPage
	if p.onChange != nil {
		p.onChange(newPage)
	}
	return true
}

// Next advances one page, rejected on the last page.
func (p *Pager) Next() bool { return p.Request(p.page + 1) }

// Prev moves back one page, rejected on the first page.
func (p *Pager) Prev() bool { return p.Request(p.page - 1) }

// HasNext reports whether a Next request would be accepted.
func (p *Pager) HasNext() bool { return p.page < p.TotalPages() }

// HasPrev reports whether a Prev request would be accepted.
func (p *Pager) HasPrev() bool { return p.page > 1 }

// Reset moves back to page 1 without firing onChange. Criterion changes
// use this before refetching.
func (p *Pager) Reset() { p.page = 1 }
