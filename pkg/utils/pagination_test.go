package utils

import (
	"math"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func TestComputeWindowLaw(t *testing.T) {
	for total := 0; total <= 40; total++ {
		for perPage := 1; perPage <= 13; perPage++ {
			for page := 1; page <= 8; page++ {
				w := ComputeWindow(total, perPage, page)

				wantPages := (total + perPage - 1) / perPage
				if wantPages < 1 {
					wantPages = 1
				}
				assert.Equal(t, wantPages, w.TotalPages, "total=%d perPage=%d", total, perPage)

				remaining := total - (page-1)*perPage
				if remaining < 0 {
					remaining = 0
				}
				wantLen := perPage
				if remaining < wantLen {
					wantLen = remaining
				}
				assert.Equal(t, wantLen, w.Len(), "total=%d perPage=%d page=%d", total, perPage, page)
			}
		}
	}
}

func TestOutOfRangePageIsEmptyNotPanic(t *testing.T) {
	items := []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15}

	w := ComputeWindow(len(items), 12, 5)
	assert.Equal(t, 2, w.TotalPages)
	assert.Equal(t, 0, w.Len())

	assert.NotPanics(t, func() {
		assert.Empty(t, Paginate(items, 12, 5))
	})
	assert.Empty(t, Paginate(items, 12, 0))
}

func TestHugePageDoesNotWrapAround(t *testing.T) {
	items := make([]int, 30)
	for i := range items {
		items[i] = i
	}

	for _, page := range []int{1<<62 + 2, math.MaxInt, math.MinInt} {
		w := ComputeWindow(len(items), 12, page)
		assert.Equal(t, 3, w.TotalPages)
		assert.Equal(t, 0, w.Len(), "page %d", page)
		assert.Empty(t, Paginate(items, 12, page), "page %d", page)
	}

	assert.Equal(t, 1, TotalPages(30, math.MaxInt))
	assert.Len(t, Paginate(items, math.MaxInt, 1), 30)
}

func TestPaginateScenario(t *testing.T) {
	items := make([]string, 15)
	for i := range items {
		items[i] = string(rune('a' + i))
	}

	assert.Len(t, Paginate(items, 12, 1), 12)
	assert.Equal(t, []string{"m", "n", "o"}, Paginate(items, 12, 2))
	assert.Equal(t, 2, TotalPages(len(items), 12))
}

func TestTotalPagesEmpty(t *testing.T) {
	assert.Equal(t, 1, TotalPages(0, 12))
	assert.Equal(t, 1, ComputeWindow(0, 12, 1).TotalPages)
}

func TestClampPage(t *testing.T) {
	assert.Equal(t, 1, ClampPage(0, 3))
	assert.Equal(t, 3, ClampPage(9, 3))
	assert.Equal(t, 2, ClampPage(2, 3))
	assert.Equal(t, 1, ClampPage(4, 0))
}

func TestPageItemsSmall(t *testing.T) {
	items := PageItems(2, 3, 5)
	assert.Equal(t, []PageItem{{Page: 1}, {Page: 2, Current: true}, {Page: 3}}, items)
}

func TestPageItemsWindowed(t *testing.T) {
	items := PageItems(6, 12, 5)
	assert.Equal(t, []PageItem{
		{Page: 1},
		{Ellipsis: true},
		{Page: 4}, {Page: 5}, {Page: 6, Current: true}, {Page: 7}, {Page: 8},
		{Ellipsis: true},
		{Page: 12},
	}, items)
}

func TestPageItemsEdges(t *testing.T) {
	head := PageItems(1, 10, 5)
	assert.Equal(t, PageItem{Page: 1, Current: true}, head[0])
	assert.Equal(t, PageItem{Page: 10}, head[len(head)-1])
	assert.Equal(t, PageItem{Ellipsis: true}, head[len(head)-2])

	tail := PageItems(10, 10, 5)
	assert.Equal(t, PageItem{Page: 1}, tail[0])
	assert.Equal(t, PageItem{Page: 10, Current: true}, tail[len(tail)-1])
}

func TestGetPaginationParams(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/?page=3&limit=500", nil)
	c := e.NewContext(req, httptest.NewRecorder())

	p := GetPaginationParams(c, 12)
	assert.Equal(t, 3, p.Page)
	assert.Equal(t, 12, p.PageSize)
	assert.Equal(t, 24, p.Offset)
}
