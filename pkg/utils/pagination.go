package utils

import (
	"strconv"

	"github.com/labstack/echo/v4"
)

// PaginationParams represents pagination parameters
type PaginationParams struct {
	Page     int
	PageSize int
	Offset   int
}

// GetPaginationParams extracts pagination parameters from request
func GetPaginationParams(c echo.Context, defaultPageSize int) PaginationParams {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	pageSize, _ := strconv.Atoi(c.QueryParam("limit"))

	if page <= 0 {
		page = 1
	}

	if pageSize <= 0 || pageSize > 100 {
		pageSize = defaultPageSize
	}

	offset := (page - 1) * pageSize

	return PaginationParams{
		Page:     page,
		PageSize: pageSize,
		Offset:   offset,
	}
}

// Window is the slice of a result set shown on one page. Start and End are
// indexes into the full result set; Start == End means an empty page.
type Window struct {
	TotalPages int
	Start      int
	End        int
}

// Len is the number of items on the page.
func (w Window) Len() int {
	return w.End - w.Start
}

// TotalPages is max(1, ceil(total/perPage)).
func TotalPages(total, perPage int) int {
	if perPage <= 0 {
		perPage = 1
	}
	pages := total / perPage
	if total%perPage != 0 {
		pages++
	}
	if pages < 1 {
		return 1
	}
	return pages
}

// ComputeWindow does not correct an out-of-range page; callers that change
// perPage or total are expected to ClampPage first. An out-of-range page
// simply yields an empty window.
func ComputeWindow(total, perPage, page int) Window {
	if perPage <= 0 {
		perPage = 1
	}
	if total < 0 {
		total = 0
	}
	w := Window{TotalPages: TotalPages(total, perPage)}

	// Bounds are checked on the page number so huge pages cannot overflow.
	if page < 1 || page > w.TotalPages {
		w.Start, w.End = total, total
		return w
	}
	start := (page - 1) * perPage
	if start >= total {
		w.Start, w.End = total, total
		return w
	}
	end := total
	if total-start > perPage {
		end = start + perPage
	}
	w.Start, w.End = start, end
	return w
}

// Paginate returns the items on the given page with ordinary slice semantics.
func Paginate[T any](items []T, perPage, page int) []T {
	w := ComputeWindow(len(items), perPage, page)
	return items[w.Start:w.End]
}

// ClampPage forces page into [1, totalPages].
func ClampPage(page, totalPages int) int {
	if totalPages < 1 {
		totalPages = 1
	}
	if page < 1 {
		return 1
	}
	if page > totalPages {
		return totalPages
	}
	return page
}

// PageItem is one entry of the page navigation strip.
type PageItem struct {
	Page     int  `json:"page,omitempty"`
	Current  bool `json:"current,omitempty"`
	Ellipsis bool `json:"ellipsis,omitempty"`
}

// PageItems builds the navigation strip. When there are more pages than
// maxVisible it keeps a window around the current page and adds first/last
// shortcuts separated by ellipsis markers. Purely cosmetic.
func PageItems(current, totalPages, maxVisible int) []PageItem {
	if totalPages < 1 {
		totalPages = 1
	}
	if maxVisible < 1 {
		maxVisible = 1
	}

	if totalPages <= maxVisible {
		items := make([]PageItem, 0, totalPages)
		for p := 1; p <= totalPages; p++ {
			items = append(items, PageItem{Page: p, Current: p == current})
		}
		return items
	}

	anchor := ClampPage(current, totalPages)
	start := anchor - maxVisible/2
	if start < 1 {
		start = 1
	}
	end := start + maxVisible - 1
	if end > totalPages {
		end = totalPages
		start = end - maxVisible + 1
	}

	var items []PageItem
	if start > 1 {
		items = append(items, PageItem{Page: 1, Current: current == 1})
		if start > 2 {
			items = append(items, PageItem{Ellipsis: true})
		}
	}
	for p := start; p <= end; p++ {
		items = append(items, PageItem{Page: p, Current: p == current})
	}
	if end < totalPages {
		if end < totalPages-1 {
			items = append(items, PageItem{Ellipsis: true})
		}
		items = append(items, PageItem{Page: totalPages, Current: current == totalPages})
	}
	return items
}
