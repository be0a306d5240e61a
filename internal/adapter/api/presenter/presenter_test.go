package presenter

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tripspot/internal/domain/entity"
	"tripspot/internal/search"
)

func TestListingStates(t *testing.T) {
	loading := NewListing(search.Snapshot{Loading: true, Page: 1, TotalPages: 1}, "/search", nil)
	assert.Equal(t, StateLoading, loading.State)
	assert.Equal(t, SkeletonCount, loading.Skeletons)

	spec, err := search.ParseQuery("keyword=제주")
	require.NoError(t, err)
	empty := NewListing(search.Snapshot{Spec: spec, Query: spec.Encode(), Page: 1, TotalPages: 1}, "/search", nil)
	assert.Equal(t, StateEmpty, empty.State)
	assert.Equal(t, "검색 결과가 없습니다.", empty.Message)
	require.NotNil(t, empty.Retry)
	assert.Equal(t, "다시 시도", empty.Retry.Label)
	assert.Equal(t, "/search?"+spec.Encode(), empty.Retry.Href)

	none := NewListing(search.Snapshot{Page: 1, TotalPages: 1}, "/search", nil)
	assert.Equal(t, "등록된 여행지가 없습니다.", none.Message)
	assert.Equal(t, "/search", none.Retry.Href)
}

func TestListingAppliesLiked(t *testing.T) {
	items := make([]entity.PlaceSummary, 3)
	for i := range items {
		items[i] = entity.PlaceSummary{ID: fmt.Sprintf("p%d", i)}
	}
	snap := search.Snapshot{Items: items, Total: 3, Page: 1, TotalPages: 1}

	view := NewListing(snap, "/search", func(id string) bool { return id == "p1" })
	assert.Equal(t, StateReady, view.State)
	require.Len(t, view.Items, 3)
	assert.False(t, view.Items[0].Liked)
	assert.True(t, view.Items[1].Liked)
	assert.False(t, items[1].Liked)
}

func TestDetailNotFound(t *testing.T) {
	view := NewDetail("missing", entity.NotFound(), "/img/placeholder.png", nil)
	assert.Equal(t, StateNotFound, view.State)
	assert.Equal(t, http.StatusNotFound, view.Status)
	assert.Nil(t, view.Place)
	assert.Equal(t, []Link{
		{Label: "홈으로 이동", Href: "/"},
		{Label: "여행지 검색", Href: "/search"},
	}, view.Links)
}

func TestDetailFoundAndError(t *testing.T) {
	p := &entity.Place{ID: "p1", Name: "우도", RegionType: "국내", Stats: entity.PlaceStats{Likes: 4, ReviewCount: 2}}
	view := NewDetail("p1", entity.Found(p), "/img/placeholder.png", func(string) bool { return true })
	assert.Equal(t, http.StatusOK, view.Status)
	require.NotNil(t, view.Place)
	assert.Equal(t, []string{"/img/placeholder.png"}, view.Place.Images)
	assert.Equal(t, int64(4), view.Place.Likes)
	assert.True(t, view.Place.Liked)
	assert.Equal(t, "domestic", view.Place.Region)
	assert.NotNil(t, view.Place.Keywords)

	failed := NewDetail("p1", entity.Failed(fmt.Errorf("unavailable")), "", nil)
	assert.Equal(t, StateError, failed.State)
	assert.Equal(t, http.StatusServiceUnavailable, failed.Status)
	assert.Equal(t, "/places/p1", failed.Links[0].Href)
}
