package presenter

import (
	"net/http"

	"tripspot/internal/domain/entity"
	"tripspot/internal/search"
	"tripspot/pkg/utils"
)

type State string

const (
	StateLoading  State = "loading"
	StateEmpty    State = "empty"
	StateReady    State = "ready"
	StateFound    State = "found"
	StateNotFound State = "not_found"
	StateError    State = "error"
)

const (
	SkeletonCount = 5

	msgNoResults     = "검색 결과가 없습니다."
	msgNoPlaces      = "등록된 여행지가 없습니다."
	msgTryOther      = "다른 검색 조건을 시도해보세요."
	msgNotFound      = "페이지를 찾을 수 없습니다"
	msgNotFoundDesc  = "요청하신 페이지가 존재하지 않거나 이동되었을 수 있습니다."
	msgLoadFailed    = "여행지 정보를 불러오는데 실패했습니다."
	msgRetry         = "다시 시도"
	msgHome          = "홈으로 이동"
	msgSearch        = "여행지 검색"
	homePath         = "/"
	searchPath       = "/search"
	placesPath       = "/places/"
)

type Link struct {
	Label string `json:"label"`
	Href  string `json:"href"`
}

// Listing is the grid view model.
type Listing struct {
	State       State                 `json:"state"`
	Items       []entity.PlaceSummary `json:"items"`
	Total       int                   `json:"total"`
	Page        int                   `json:"page"`
	TotalPages  int                   `json:"totalPages"`
	Pages       []utils.PageItem      `json:"pages"`
	Query       string                `json:"query"`
	Message     string                `json:"message,omitempty"`
	Description string                `json:"description,omitempty"`
	Retry       *Link                 `json:"retry,omitempty"`
	Skeletons   int                   `json:"skeletons,omitempty"`
	Seq         uint64                `json:"seq"`
}

// NewListing renders a controller snapshot. liked may be nil for anonymous
// callers. basePath is the listing URL the retry link points back to.
func NewListing(snap search.Snapshot, basePath string, liked func(string) bool) Listing {
	view := Listing{
		Items:      make([]entity.PlaceSummary, 0, len(snap.Items)),
		Total:      snap.Total,
		Page:       snap.Page,
		TotalPages: snap.TotalPages,
		Pages:      snap.Pages,
		Query:      snap.Query,
		Seq:        snap.Seq,
	}

	switch {
	case snap.Loading:
		view.State = StateLoading
		view.Skeletons = SkeletonCount
		return view
	case snap.Total == 0:
		view.State = StateEmpty
		if snap.Spec.Filter.IsEmpty() {
			view.Message = msgNoPlaces
		} else {
			view.Message = msgNoResults
			view.Description = msgTryOther
		}
		view.Retry = &Link{Label: msgRetry, Href: withQuery(basePath, snap.Query)}
		return view
	}

	view.State = StateReady
	view.Items = Cards(snap.Items, liked)
	return view
}

// Cards applies the liked predicate to a plain list of summaries.
func Cards(items []entity.PlaceSummary, liked func(string) bool) []entity.PlaceSummary {
	out := make([]entity.PlaceSummary, 0, len(items))
	for _, item := range items {
		if liked != nil {
			item.Liked = liked(item.ID)
		}
		out = append(out, item)
	}
	return out
}

type PlaceView struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Images      []string        `json:"images"`
	Location    entity.Location `json:"location"`
	Region      string          `json:"region,omitempty"`
	RegionType  string          `json:"regionType"`
	SeasonTags  []string        `json:"seasonTags"`
	BudgetLevel string          `json:"budgetLevel"`
	Keywords    []string        `json:"keywords"`
	Likes       int64           `json:"likes"`
	ReviewCount int64           `json:"reviewCount"`
	Liked       bool            `json:"liked"`
}

// Detail is the place page view model. Status is the HTTP status to send.
type Detail struct {
	State       State      `json:"state"`
	Place       *PlaceView `json:"place,omitempty"`
	Message     string     `json:"message,omitempty"`
	Description string     `json:"description,omitempty"`
	Links       []Link     `json:"links,omitempty"`
	Status      int        `json:"-"`
}

// NewDetail renders a lookup of place id.
func NewDetail(id string, lookup entity.PlaceLookup, placeholder string, liked func(string) bool) Detail {
	switch lookup.Status {
	case entity.LookupFound:
		p := lookup.Place
		images := p.ImageURLs
		if len(images) == 0 {
			images = []string{placeholder}
		}
		view := &PlaceView{
			ID:          p.ID,
			Name:        p.Name,
			Description: p.Description,
			Images:      images,
			Location:    p.Location,
			RegionType:  p.RegionType,
			SeasonTags:  nonNil(p.SeasonTags),
			BudgetLevel: p.BudgetLevel,
			Keywords:    nonNil(p.Keywords),
			Likes:       p.Stats.Likes,
			ReviewCount: p.Stats.ReviewCount,
		}
		if region, ok := p.Region(); ok {
			view.Region = string(region)
		}
		if liked != nil {
			view.Liked = liked(p.ID)
		}
		return Detail{State: StateFound, Place: view, Status: http.StatusOK}

	case entity.LookupNotFound:
		return NotFound()
	}

	return Detail{
		State:   StateError,
		Message: msgLoadFailed,
		Links:   []Link{{Label: msgRetry, Href: placesPath + id}},
		Status:  http.StatusServiceUnavailable,
	}
}

// NotFound is the empty state for a missing page or place.
func NotFound() Detail {
	return Detail{
		State:       StateNotFound,
		Message:     msgNotFound,
		Description: msgNotFoundDesc,
		Links: []Link{
			{Label: msgHome, Href: homePath},
			{Label: msgSearch, Href: searchPath},
		},
		Status: http.StatusNotFound,
	}
}

func withQuery(path, query string) string {
	if query == "" {
		return path
	}
	return path + "?" + query
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
