package search

import (
	"context"
	"errors"
	"net/url"
	"sync"

	"tripspot/internal/domain/entity"
	"tripspot/pkg/logger"
	"tripspot/pkg/utils"
)

// ErrSuperseded is returned by a fetch that finished after a newer one was
// started. Its results are discarded.
var ErrSuperseded = errors.New("search superseded by a newer request")

// Fetcher runs a filtered place query. Failures are reported in-band as an
// empty result.
type Fetcher interface {
	FetchPlaces(ctx context.Context, filter entity.PlaceFilter) []entity.PlaceSummary
}

// Snapshot is the observable state of a Controller.
type Snapshot struct {
	Spec       Spec                  `json:"-"`
	Query      string                `json:"query"`
	Items      []entity.PlaceSummary `json:"items"`
	Total      int                   `json:"total"`
	Page       int                   `json:"page"`
	TotalPages int                   `json:"totalPages"`
	PerPage    int                   `json:"perPage"`
	Loading    bool                  `json:"loading"`
	Pages      []utils.PageItem      `json:"pages"`
	Seq        uint64                `json:"seq"`
}

// Controller keeps the filter, the current page and the fetched result set
// consistent with the URL it is synced to.
type Controller struct {
	fetcher    Fetcher
	perPage    int
	maxVisible int

	mu       sync.Mutex
	spec     Spec
	synced   bool
	fetched  bool
	loading  bool
	results  []entity.PlaceSummary
	seq      uint64
	cancel   context.CancelFunc
	observer func(Snapshot)
}

func NewController(fetcher Fetcher, perPage, maxVisible int) *Controller {
	if perPage <= 0 {
		perPage = 12
	}
	if maxVisible <= 0 {
		maxVisible = 5
	}
	return &Controller{
		fetcher:    fetcher,
		perPage:    perPage,
		maxVisible: maxVisible,
		spec:       Spec{Page: 1},
		results:    []entity.PlaceSummary{},
	}
}

// OnChange registers fn to receive every state transition, including the
// loading state at dispatch.
func (c *Controller) OnChange(fn func(Snapshot)) {
	c.mu.Lock()
	c.observer = fn
	c.mu.Unlock()
}

// Sync applies a URL change. The first sync adopts the URL as is. Later, a
// changed filter resets the page to 1 before fetching, and an unchanged
// filter only adopts the page.
func (c *Controller) Sync(ctx context.Context, values url.Values) (Snapshot, error) {
	next := ParseSpec(values)

	c.mu.Lock()
	switch {
	case !c.synced:
		c.synced = true
		c.spec = next
	case !next.Filter.Equal(c.spec.Filter):
		c.spec = Spec{Filter: next.Filter, Page: 1}
	default:
		c.spec.Page = next.Page
		if c.fetched || c.loading {
			if c.fetched {
				c.spec.Page = utils.ClampPage(c.spec.Page, utils.TotalPages(len(c.results), c.perPage))
			}
			snap := c.snapshotLocked()
			c.mu.Unlock()
			c.notify(snap)
			return snap, nil
		}
	}
	return c.fetchLocked(ctx)
}

// SyncQuery is Sync over a raw query string.
func (c *Controller) SyncQuery(ctx context.Context, raw string) (Snapshot, error) {
	spec, err := ParseQuery(raw)
	if err != nil {
		return c.Snapshot(), err
	}
	return c.Sync(ctx, spec.Values())
}

// Retry refetches the current filter.
func (c *Controller) Retry(ctx context.Context) (Snapshot, error) {
	c.mu.Lock()
	c.synced = true
	return c.fetchLocked(ctx)
}

// SetPage moves to page without refetching. The page is clamped once the
// result set is known.
func (c *Controller) SetPage(page int) Snapshot {
	c.mu.Lock()
	if page < 1 {
		page = 1
	}
	if c.fetched {
		page = utils.ClampPage(page, utils.TotalPages(len(c.results), c.perPage))
	}
	c.spec.Page = page
	snap := c.snapshotLocked()
	c.mu.Unlock()

	c.notify(snap)
	return snap
}

func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

// Close cancels any in-flight fetch.
func (c *Controller) Close() {
	c.mu.Lock()
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
	c.mu.Unlock()
}

// fetchLocked is entered with c.mu held and releases it.
func (c *Controller) fetchLocked(ctx context.Context) (Snapshot, error) {
	if c.cancel != nil {
		c.cancel()
	}
	fctx, cancel := context.WithCancel(ctx)
	c.seq++
	seq := c.seq
	c.cancel = cancel
	c.loading = true
	c.fetched = false
	c.results = []entity.PlaceSummary{}
	filter := c.spec.Filter
	loading := c.snapshotLocked()
	c.mu.Unlock()

	c.notify(loading)

	items := c.fetcher.FetchPlaces(fctx, filter)

	c.mu.Lock()
	if seq != c.seq {
		c.mu.Unlock()
		cancel()
		logger.Debug("Discarding search %d for %s", seq, filter.Key())
		return Snapshot{}, ErrSuperseded
	}
	if items == nil {
		items = []entity.PlaceSummary{}
	}
	c.results = items
	c.fetched = true
	c.loading = false
	c.cancel = nil
	c.spec.Page = utils.ClampPage(c.spec.Page, utils.TotalPages(len(items), c.perPage))
	snap := c.snapshotLocked()
	c.mu.Unlock()
	cancel()

	c.notify(snap)
	return snap, nil
}

func (c *Controller) snapshotLocked() Snapshot {
	total := len(c.results)
	totalPages := utils.TotalPages(total, c.perPage)
	page := utils.Paginate(c.results, c.perPage, c.spec.Page)
	items := make([]entity.PlaceSummary, len(page))
	copy(items, page)

	return Snapshot{
		Spec:       c.spec,
		Query:      c.spec.Encode(),
		Items:      items,
		Total:      total,
		Page:       c.spec.Page,
		TotalPages: totalPages,
		PerPage:    c.perPage,
		Loading:    c.loading,
		Pages:      utils.PageItems(c.spec.Page, totalPages, c.maxVisible),
		Seq:        c.seq,
	}
}

func (c *Controller) notify(snap Snapshot) {
	c.mu.Lock()
	fn := c.observer
	c.mu.Unlock()
	if fn != nil {
		fn(snap)
	}
}
