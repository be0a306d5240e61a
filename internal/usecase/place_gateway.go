package usecase

import (
	"context"
	"sort"
	"strconv"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"tripspot/internal/domain/entity"
	"tripspot/internal/domain/repository"
	"tripspot/internal/infrastructure/cache"
	"tripspot/internal/infrastructure/notify"
	"tripspot/pkg/errors"
	"tripspot/pkg/logger"
)

const (
	msgPlacesLoadFailed = "여행지 목록을 불러오는데 실패했습니다."
	msgPlaceLoadFailed  = "여행지 정보를 불러오는데 실패했습니다."

	byIDConcurrency = 10
)

type GatewayOptions struct {
	Placeholder  string
	QueryTimeout time.Duration
	ListTTL      time.Duration
	DetailTTL    time.Duration
	SuggestTTL   time.Duration
}

// PlaceGateway is the typed boundary over the places store. Read paths never
// return errors: failures become empty results plus a notice on the
// context's notifier. Write paths return errors to the caller.
type PlaceGateway struct {
	places repository.PlaceRepository
	cache  cache.Cache
	opts   GatewayOptions
}

func NewPlaceGateway(places repository.PlaceRepository, c cache.Cache, opts GatewayOptions) *PlaceGateway {
	if c == nil {
		c = cache.Noop{}
	}
	if opts.QueryTimeout <= 0 {
		opts.QueryTimeout = 10 * time.Second
	}
	return &PlaceGateway{
		places: places,
		cache:  c,
		opts:   opts,
	}
}

func (g *PlaceGateway) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, g.opts.QueryTimeout)
}

// FetchPlaces returns summaries of every listable place matching filter.
func (g *PlaceGateway) FetchPlaces(ctx context.Context, filter entity.PlaceFilter) []entity.PlaceSummary {
	key := cache.Key(g.generation(ctx), "places", filter.Key())
	var cached []entity.PlaceSummary
	if g.cacheGet(ctx, key, &cached) {
		return cached
	}

	qctx, cancel := g.withTimeout(ctx)
	defer cancel()

	places, err := g.places.List(qctx, filter)
	if err != nil {
		g.recoverRead(ctx, msgPlacesLoadFailed, err)
		return []entity.PlaceSummary{}
	}

	summaries := g.summarize(places)
	g.cacheSet(ctx, key, summaries, g.opts.ListTTL)
	return summaries
}

// FetchPlaceByID distinguishes a missing place from a failed read.
func (g *PlaceGateway) FetchPlaceByID(ctx context.Context, id string) entity.PlaceLookup {
	if strings.TrimSpace(id) == "" {
		return entity.NotFound()
	}

	key := cache.Key(g.generation(ctx), "place", id)
	var cached entity.Place
	if g.cacheGet(ctx, key, &cached) {
		cached.ID = id
		return entity.Found(&cached)
	}

	qctx, cancel := g.withTimeout(ctx)
	defer cancel()

	place, err := g.places.GetByID(qctx, id)
	if err != nil {
		if errors.IsNotFound(err) {
			return entity.NotFound()
		}
		g.recoverRead(ctx, msgPlaceLoadFailed, err)
		if errors.IsNetwork(err) {
			return entity.Failed(errors.Unavailable(msgPlaceLoadFailed, err))
		}
		return entity.Failed(err)
	}
	if !place.Listable() {
		return entity.NotFound()
	}

	g.cacheSet(ctx, key, place, g.opts.DetailTTL)
	return entity.Found(place)
}

// FetchPlacesByIDs reads each id concurrently and keeps input order. Missing
// places are dropped.
func (g *PlaceGateway) FetchPlacesByIDs(ctx context.Context, ids []string) []entity.PlaceSummary {
	if len(ids) == 0 {
		return []entity.PlaceSummary{}
	}

	qctx, cancel := g.withTimeout(ctx)
	defer cancel()

	found := make([]*entity.Place, len(ids))
	group, gctx := errgroup.WithContext(qctx)
	group.SetLimit(byIDConcurrency)
	for i, id := range ids {
		i, id := i, id
		group.Go(func() error {
			place, err := g.places.GetByID(gctx, id)
			if err != nil {
				if errors.IsNotFound(err) {
					return nil
				}
				return err
			}
			found[i] = place
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		g.recoverRead(ctx, msgPlacesLoadFailed, err)
		return []entity.PlaceSummary{}
	}

	summaries := make([]entity.PlaceSummary, 0, len(ids))
	for _, place := range found {
		if place == nil || !place.Listable() {
			continue
		}
		summaries = append(summaries, place.Summary(g.opts.Placeholder))
	}
	return summaries
}

// CreateEmptyPlace inserts a draft placeholder so images can be attached
// before the place is populated.
func (g *PlaceGateway) CreateEmptyPlace(ctx context.Context) (string, error) {
	qctx, cancel := g.withTimeout(ctx)
	defer cancel()
	return g.places.CreateEmpty(qctx)
}

func (g *PlaceGateway) UpdatePlace(ctx context.Context, id string, fields entity.PlaceFields) error {
	qctx, cancel := g.withTimeout(ctx)
	defer cancel()

	if err := g.places.Update(qctx, id, fields); err != nil {
		return err
	}
	g.Invalidate(ctx)
	return nil
}

func (g *PlaceGateway) IncrementLikes(ctx context.Context, id string) error {
	return g.adjustLikes(ctx, id, 1)
}

func (g *PlaceGateway) DecrementLikes(ctx context.Context, id string) error {
	return g.adjustLikes(ctx, id, -1)
}

func (g *PlaceGateway) adjustLikes(ctx context.Context, id string, delta int64) error {
	qctx, cancel := g.withTimeout(ctx)
	defer cancel()

	if err := g.places.AdjustLikes(qctx, id, delta); err != nil {
		return err
	}
	g.Invalidate(ctx)
	return nil
}

// SuggestKeywords scans every place's keywords for a case-insensitive
// substring match.
func (g *PlaceGateway) SuggestKeywords(ctx context.Context, prefix string, limit int) []string {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" || limit <= 0 {
		return []string{}
	}

	key := cache.Key(g.generation(ctx), "suggest", strconv.Itoa(limit)+":"+strings.ToLower(prefix))
	var cached []string
	if g.cacheGet(ctx, key, &cached) {
		return cached
	}

	qctx, cancel := g.withTimeout(ctx)
	defer cancel()

	sets, err := g.places.Keywords(qctx)
	if err != nil {
		logger.Warn("Keyword scan failed: %v", err)
		return []string{}
	}

	out := MatchKeywords(sets, prefix, limit)
	g.cacheSet(ctx, key, out, g.opts.SuggestTTL)
	return out
}

// MatchKeywords returns the distinct keywords containing term, sorted and
// truncated to limit.
func MatchKeywords(sets [][]string, term string, limit int) []string {
	needle := strings.ToLower(term)
	seen := make(map[string]struct{})
	for _, set := range sets {
		for _, kw := range set {
			if kw == "" {
				continue
			}
			if strings.Contains(strings.ToLower(kw), needle) {
				seen[kw] = struct{}{}
			}
		}
	}

	out := make([]string, 0, len(seen))
	for kw := range seen {
		out = append(out, kw)
	}
	sort.Strings(out)
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

// Invalidate drops every cached read.
func (g *PlaceGateway) Invalidate(ctx context.Context) {
	if err := g.cache.Invalidate(ctx); err != nil {
		logger.Warn("Cache invalidation failed: %v", err)
	}
}

func (g *PlaceGateway) summarize(places []*entity.Place) []entity.PlaceSummary {
	summaries := make([]entity.PlaceSummary, 0, len(places))
	for _, place := range places {
		if !place.Listable() {
			continue
		}
		summaries = append(summaries, place.Summary(g.opts.Placeholder))
	}
	return summaries
}

// recoverRead logs a failed read and queues a notice, unless the caller has
// already gone away.
func (g *PlaceGateway) recoverRead(ctx context.Context, title string, err error) {
	if ctx.Err() == context.Canceled {
		logger.Debug("Read abandoned by caller: %v", err)
		return
	}
	logger.Error("%s: %v", title, err)
	notify.Failure(ctx, title, err)
}

func (g *PlaceGateway) generation(ctx context.Context) int64 {
	gen, err := g.cache.Generation(ctx)
	if err != nil {
		logger.Warn("Cache generation lookup failed: %v", err)
		return 0
	}
	return gen
}

func (g *PlaceGateway) cacheGet(ctx context.Context, key string, dst interface{}) bool {
	hit, err := g.cache.Get(ctx, key, dst)
	if err != nil {
		logger.Warn("Cache read %s failed: %v", key, err)
		return false
	}
	return hit
}

func (g *PlaceGateway) cacheSet(ctx context.Context, key string, value interface{}, ttl time.Duration) {
	if ttl <= 0 {
		return
	}
	if err := g.cache.Set(ctx, key, value, ttl); err != nil {
		logger.Warn("Cache write %s failed: %v", key, err)
	}
}
