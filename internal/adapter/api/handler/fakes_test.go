package handler

import (
	"context"
	"fmt"
	"io"
	"net/http/httptest"
	"strings"
	"sync"
	"time"

	"github.com/labstack/echo/v4"

	"tripspot/internal/adapter/api"
	"tripspot/internal/adapter/api/middleware"
	"tripspot/internal/domain/entity"
	"tripspot/internal/usecase"
	"tripspot/pkg/errors"
)

type memPlaces struct {
	mu     sync.Mutex
	places map[string]*entity.Place
	order  []string
	likes  map[string]int64
	nextID int
}

func newMemPlaces(places ...*entity.Place) *memPlaces {
	m := &memPlaces{places: map[string]*entity.Place{}, likes: map[string]int64{}}
	for _, p := range places {
		m.places[p.ID] = p
		m.order = append(m.order, p.ID)
	}
	return m
}

func (m *memPlaces) List(ctx context.Context, filter entity.PlaceFilter) ([]*entity.Place, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*entity.Place
	for _, id := range m.order {
		p := m.places[id]
		if filter.Keyword != "" && !contains(p.Keywords, filter.Keyword) {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

func (m *memPlaces) GetByID(ctx context.Context, id string) (*entity.Place, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if p, ok := m.places[id]; ok {
		return p, nil
	}
	return nil, errors.NotFound("Place", nil)
}

func (m *memPlaces) CreateEmpty(ctx context.Context) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	id := fmt.Sprintf("new-%d", m.nextID)
	m.places[id] = &entity.Place{ID: id, Draft: true, CreatedAt: time.Now()}
	m.order = append(m.order, id)
	return id, nil
}

func (m *memPlaces) Update(ctx context.Context, id string, fields entity.PlaceFields) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.places[id]
	if !ok {
		return errors.NotFound("Place", nil)
	}
	if fields.Name != nil {
		p.Name = *fields.Name
	}
	if fields.Draft != nil {
		p.Draft = *fields.Draft
	}
	if fields.Keywords != nil {
		p.Keywords = fields.Keywords
	}
	if fields.ImageURLs != nil {
		p.ImageURLs = fields.ImageURLs
	}
	return nil
}

func (m *memPlaces) AdjustLikes(ctx context.Context, id string, delta int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.likes[id] += delta
	return nil
}

func (m *memPlaces) Keywords(ctx context.Context) ([][]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var sets [][]string
	for _, id := range m.order {
		sets = append(sets, m.places[id].Keywords)
	}
	return sets, nil
}

func (m *memPlaces) ListDraftsBefore(ctx context.Context, cutoff time.Time) ([]*entity.Place, error) {
	return nil, nil
}

func (m *memPlaces) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.places, id)
	return nil
}

type memUsers struct {
	mu        sync.Mutex
	users     map[string]*entity.User
	wishlists map[string][]string
	writes    int
	getErr    error
}

func newMemUsers() *memUsers {
	return &memUsers{users: map[string]*entity.User{}, wishlists: map[string][]string{}}
}

func (m *memUsers) GetByID(ctx context.Context, id string) (*entity.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, errors.NotFound("User", nil)
}

func (m *memUsers) CreateIfAbsent(ctx context.Context, user *entity.User) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[user.ID]; ok {
		return false, nil
	}
	m.users[user.ID] = user
	return true, nil
}

func (m *memUsers) GetWishlist(ctx context.Context, uid string) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.getErr != nil {
		return nil, m.getErr
	}
	return append([]string{}, m.wishlists[uid]...), nil
}

func (m *memUsers) SetWishlistMember(ctx context.Context, uid, placeID string, member bool) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if contains(m.wishlists[uid], placeID) == member {
		return false, nil
	}
	m.writes++
	if member {
		m.wishlists[uid] = append(m.wishlists[uid], placeID)
		return true, nil
	}
	var kept []string
	for _, id := range m.wishlists[uid] {
		if id != placeID {
			kept = append(kept, id)
		}
	}
	m.wishlists[uid] = kept
	return true, nil
}

func (m *memUsers) WatchWishlist(ctx context.Context, uid string, fn func([]string)) error {
	<-ctx.Done()
	return nil
}

type memReviews struct {
	mu      sync.Mutex
	reviews []*entity.Review
}

func (m *memReviews) ListByPlace(ctx context.Context, placeID string) ([]*entity.Review, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*entity.Review
	for _, r := range m.reviews {
		if r.PlaceID == placeID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *memReviews) Create(ctx context.Context, review *entity.Review) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	review.ID = fmt.Sprintf("r%d", len(m.reviews)+1)
	m.reviews = append(m.reviews, review)
	return nil
}

type memFiles struct {
	mu    sync.Mutex
	files []*entity.FileMetadata
}

func (m *memFiles) Create(ctx context.Context, f *entity.FileMetadata) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.files = append(m.files, f)
	return nil
}

func (m *memFiles) ListByPlace(ctx context.Context, placeID string) ([]*entity.FileMetadata, error) {
	return nil, nil
}

func (m *memFiles) Delete(ctx context.Context, id string) error { return nil }

type memUploader struct {
	mu    sync.Mutex
	count int
}

func (u *memUploader) UploadFile(ctx context.Context, file io.Reader, fileType, folder string, isPublic bool) (string, error) {
	if _, err := io.ReadAll(file); err != nil {
		return "", err
	}
	u.mu.Lock()
	defer u.mu.Unlock()
	u.count++
	return fmt.Sprintf("https://storage.googleapis.com/bucket/public/%s/%d.jpg", folder, u.count), nil
}

func (u *memUploader) DeleteFile(ctx context.Context, fileURL string) error { return nil }

func (u *memUploader) Close() error { return nil }

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}

func newGateway(places *memPlaces) *usecase.PlaceGateway {
	return usecase.NewPlaceGateway(places, nil, usecase.GatewayOptions{Placeholder: "/img/placeholder.png"})
}

func newEcho() *echo.Echo {
	e := echo.New()
	e.Validator = api.NewValidator()
	return e
}

// newRequestContext builds a context, authenticated as uid unless uid is empty.
func newRequestContext(e *echo.Echo, method, target, body, uid string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if uid != "" {
		c.Set(middleware.UIDKey, uid)
	}
	return c, rec
}

func jejuPlaces(n int) []*entity.Place {
	out := make([]*entity.Place, n)
	for i := range out {
		out[i] = &entity.Place{
			ID:       fmt.Sprintf("p%02d", i+1),
			Name:     fmt.Sprintf("제주 명소 %d", i+1),
			Location: entity.Location{Region: "제주"},
			Keywords: []string{"제주"},
		}
	}
	return out
}
