package ui

import (
	"strconv"
	"strings"

	"github.com/fatih/color"

	"github.com/projectnest/nestctl/internal/pagination"
)

var currentPage = color.New(color.Bold, color.ReverseVideo)

// PageStrip renders the pagination control for one list state. Empty
// lists render nothing at all, matching the window layout.
func PageStrip(total, page, pageSize int) string {
	items := pagination.Window(total, page, pageSize)
	if len(items) == 0 {
		return ""
	}

	totalPages := pagination.TotalPages(total, pageSize)
	parts := make([]string, 0, len(items)+2)

	if page > 1 {
		parts = append(parts, "< Prev")
	}
	for _, it := range items {
		switch it.Kind {
		case pagination.KindEllipsis:
			parts = append(parts, "...")
		case pagination.KindPage:
			label := strconv.Itoa(it.Number)
			if it.Current {
				label = currentPage.Sprintf("[%d]", it.Number)
			}
			parts = append(parts, label)
		}
	}
	if page < totalPages {
		parts = append(parts, "Next >")
	}

	return strings.Join(parts, " ")
}
