package usecase

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sync"
	"time"

	"tripspot/internal/domain/entity"
	"tripspot/pkg/errors"
)

type fakePlaceRepo struct {
	mu       sync.Mutex
	places   map[string]*entity.Place
	order    []string
	likes    map[string]int64
	deleted  []string
	nextID   int
	listErr  error
	getErr   error
	likeErr  error
	listCall int
}

func newFakePlaceRepo(places ...*entity.Place) *fakePlaceRepo {
	r := &fakePlaceRepo{
		places: make(map[string]*entity.Place),
		likes:  make(map[string]int64),
	}
	for _, p := range places {
		r.places[p.ID] = p
		r.order = append(r.order, p.ID)
	}
	return r
}

func (r *fakePlaceRepo) List(ctx context.Context, filter entity.PlaceFilter) ([]*entity.Place, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.listCall++
	if r.listErr != nil {
		return nil, r.listErr
	}
	out := make([]*entity.Place, 0, len(r.order))
	for _, id := range r.order {
		p := r.places[id]
		if filter.Keyword != "" && indexOf(p.Keywords, filter.Keyword) < 0 {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

func (r *fakePlaceRepo) GetByID(ctx context.Context, id string) (*entity.Place, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.getErr != nil {
		return nil, r.getErr
	}
	p, ok := r.places[id]
	if !ok {
		return nil, errors.NotFound("Place", nil)
	}
	return p, nil
}

func (r *fakePlaceRepo) CreateEmpty(ctx context.Context) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	id := fmt.Sprintf("new-%d", r.nextID)
	r.places[id] = &entity.Place{ID: id, Draft: true, CreatedAt: time.Now()}
	r.order = append(r.order, id)
	return id, nil
}

func (r *fakePlaceRepo) Update(ctx context.Context, id string, fields entity.PlaceFields) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.places[id]
	if !ok {
		return errors.NotFound("Place", nil)
	}
	if fields.Name != nil {
		p.Name = *fields.Name
	}
	if fields.Location != nil {
		p.Location = *fields.Location
	}
	if fields.RegionType != nil {
		p.RegionType = *fields.RegionType
	}
	if fields.BudgetLevel != nil {
		p.BudgetLevel = *fields.BudgetLevel
	}
	if fields.CreatedBy != nil {
		p.CreatedBy = *fields.CreatedBy
	}
	if fields.Draft != nil {
		p.Draft = *fields.Draft
	}
	if fields.ImageURLs != nil {
		p.ImageURLs = fields.ImageURLs
	}
	if fields.SeasonTags != nil {
		p.SeasonTags = fields.SeasonTags
	}
	if fields.Keywords != nil {
		p.Keywords = fields.Keywords
	}
	return nil
}

func (r *fakePlaceRepo) AdjustLikes(ctx context.Context, id string, delta int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.likeErr != nil {
		return r.likeErr
	}
	r.likes[id] += delta
	return nil
}

func (r *fakePlaceRepo) Keywords(ctx context.Context) ([][]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var sets [][]string
	for _, id := range r.order {
		sets = append(sets, r.places[id].Keywords)
	}
	return sets, nil
}

func (r *fakePlaceRepo) ListDraftsBefore(ctx context.Context, cutoff time.Time) ([]*entity.Place, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Place
	for _, id := range r.order {
		p := r.places[id]
		if p.Draft && p.CreatedAt.Before(cutoff) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *fakePlaceRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.places, id)
	r.deleted = append(r.deleted, id)
	return nil
}

func (r *fakePlaceRepo) likeCount(id string) int64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.likes[id]
}

type fakeUserRepo struct {
	mu        sync.Mutex
	users     map[string]*entity.User
	wishlists map[string][]string
	writes    int
	creates   int
	writeErr  error
	watch     chan []string
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		users:     make(map[string]*entity.User),
		wishlists: make(map[string][]string),
	}
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, errors.NotFound("User", nil)
	}
	return u, nil
}

func (r *fakeUserRepo) CreateIfAbsent(ctx context.Context, user *entity.User) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.creates++
	if _, ok := r.users[user.ID]; ok {
		return false, nil
	}
	r.users[user.ID] = user
	return true, nil
}

func (r *fakeUserRepo) GetWishlist(ctx context.Context, uid string) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string{}, r.wishlists[uid]...), nil
}

// SetWishlistMember decides membership under the repo lock, the way the
// Firestore transaction does. writes counts actual changes.
func (r *fakeUserRepo) SetWishlistMember(ctx context.Context, uid, placeID string, member bool) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.writeErr != nil {
		return false, r.writeErr
	}
	i := indexOf(r.wishlists[uid], placeID)
	if (i >= 0) == member {
		return false, nil
	}
	r.writes++
	if member {
		r.wishlists[uid] = append(r.wishlists[uid], placeID)
	} else {
		r.wishlists[uid] = append(r.wishlists[uid][:i:i], r.wishlists[uid][i+1:]...)
	}
	return true, nil
}

func (r *fakeUserRepo) WatchWishlist(ctx context.Context, uid string, fn func([]string)) error {
	if r.watch == nil {
		<-ctx.Done()
		return nil
	}
	for {
		select {
		case <-ctx.Done():
			return nil
		case ids := <-r.watch:
			fn(ids)
		}
	}
}

func (r *fakeUserRepo) wishlist(uid string) []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string{}, r.wishlists[uid]...)
}

func (r *fakeUserRepo) writeCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.writes
}

// mapCache is an in-process cache.Cache with JSON values.
type mapCache struct {
	mu          sync.Mutex
	gen         int64
	data        map[string][]byte
	invalidated int
}

func newMapCache() *mapCache {
	return &mapCache{data: make(map[string][]byte)}
}

func (c *mapCache) Get(ctx context.Context, key string, dst interface{}) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	raw, ok := c.data[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(raw, dst)
}

func (c *mapCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = raw
	return nil
}

func (c *mapCache) Generation(ctx context.Context) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.gen, nil
}

func (c *mapCache) Invalidate(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gen++
	c.invalidated++
	return nil
}

func (c *mapCache) Close() error { return nil }

type fakeReviewRepo struct {
	mu      sync.Mutex
	reviews []*entity.Review
	err     error
}

func (r *fakeReviewRepo) ListByPlace(ctx context.Context, placeID string) ([]*entity.Review, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Review
	for i := len(r.reviews) - 1; i >= 0; i-- {
		if r.reviews[i].PlaceID == placeID {
			out = append(out, r.reviews[i])
		}
	}
	return out, nil
}

func (r *fakeReviewRepo) Create(ctx context.Context, review *entity.Review) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	review.ID = fmt.Sprintf("r%d", len(r.reviews)+1)
	review.CreatedAt = time.Now()
	r.reviews = append(r.reviews, review)
	return nil
}

type fakeFileRepo struct {
	mu    sync.Mutex
	files map[string]*entity.FileMetadata
	next  int
}

func newFakeFileRepo() *fakeFileRepo {
	return &fakeFileRepo{files: make(map[string]*entity.FileMetadata)}
}

func (r *fakeFileRepo) Create(ctx context.Context, m *entity.FileMetadata) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.next++
	m.ID = fmt.Sprintf("f%d", r.next)
	r.files[m.ID] = m
	return nil
}

func (r *fakeFileRepo) ListByPlace(ctx context.Context, placeID string) ([]*entity.FileMetadata, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.FileMetadata
	for _, m := range r.files {
		if m.PlaceID == placeID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *fakeFileRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.files, id)
	return nil
}

type fakeUploader struct {
	mu       sync.Mutex
	uploaded []string
	deleted  []string
	failOn   string
}

func (u *fakeUploader) UploadFile(ctx context.Context, file io.Reader, fileType, folder string, isPublic bool) (string, error) {
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, file); err != nil {
		return "", err
	}
	if u.failOn != "" && buf.String() == u.failOn {
		return "", fmt.Errorf("upload refused")
	}
	u.mu.Lock()
	defer u.mu.Unlock()
	url := fmt.Sprintf("https://storage.googleapis.com/bucket/public/%s/%d", folder, len(u.uploaded))
	u.uploaded = append(u.uploaded, url)
	return url, nil
}

func (u *fakeUploader) DeleteFile(ctx context.Context, fileURL string) error {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.deleted = append(u.deleted, fileURL)
	return nil
}

func (u *fakeUploader) Close() error { return nil }

func newPlace(id, name string, keywords ...string) *entity.Place {
	return &entity.Place{
		ID:         id,
		Name:       name,
		Location:   entity.Location{Region: "제주"},
		RegionType: "국내",
		Keywords:   keywords,
	}
}
