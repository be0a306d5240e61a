package entity

import (
	"strings"
	"time"
)

// RegionClass is the domestic/abroad split used in URLs. The store keeps
// its own Korean labels in the regionType field.
type RegionClass string

const (
	RegionDomestic RegionClass = "domestic"
	RegionAbroad   RegionClass = "abroad"
)

const (
	regionLabelDomestic = "국내"
	regionLabelAbroad   = "해외"
)

func ParseRegionClass(s string) (RegionClass, bool) {
	switch RegionClass(s) {
	case RegionDomestic, RegionAbroad:
		return RegionClass(s), true
	}
	return "", false
}

// StoreLabel maps the class to the regionType value stored on places.
func (r RegionClass) StoreLabel() string {
	switch r {
	case RegionDomestic:
		return regionLabelDomestic
	case RegionAbroad:
		return regionLabelAbroad
	}
	return ""
}

func RegionClassFromLabel(label string) (RegionClass, bool) {
	switch label {
	case regionLabelDomestic:
		return RegionDomestic, true
	case regionLabelAbroad:
		return RegionAbroad, true
	}
	return "", false
}

type Season string

const (
	SeasonSpring Season = "봄"
	SeasonSummer Season = "여름"
	SeasonFall   Season = "가을"
	SeasonWinter Season = "겨울"
)

var Seasons = []Season{SeasonSpring, SeasonSummer, SeasonFall, SeasonWinter}

func ParseSeason(s string) (Season, bool) {
	for _, season := range Seasons {
		if string(season) == s {
			return season, true
		}
	}
	return "", false
}

// BudgetTier is ordered low < medium < high.
type BudgetTier string

const (
	BudgetLow    BudgetTier = "저예산"
	BudgetMedium BudgetTier = "중간"
	BudgetHigh   BudgetTier = "고급"
)

var BudgetTiers = []BudgetTier{BudgetLow, BudgetMedium, BudgetHigh}

func ParseBudgetTier(s string) (BudgetTier, bool) {
	for _, tier := range BudgetTiers {
		if string(tier) == s {
			return tier, true
		}
	}
	return "", false
}

// Rank is 0 for low, 2 for high and -1 for unknown tiers.
func (b BudgetTier) Rank() int {
	for i, tier := range BudgetTiers {
		if tier == b {
			return i
		}
	}
	return -1
}

type Location struct {
	Region   string `json:"region" firestore:"region"`
	District string `json:"district,omitempty" firestore:"district,omitempty"`
}

type PlaceStats struct {
	Likes       int64 `json:"likes" firestore:"likes"`
	ReviewCount int64 `json:"reviewCount" firestore:"reviewCount"`
}

// Place is a document in the places collection. ID is the document ID and
// is not stored as a field.
type Place struct {
	ID          string     `json:"id" firestore:"-"`
	Name        string     `json:"name" firestore:"name"`
	Description string     `json:"description,omitempty" firestore:"description,omitempty"`
	ImageURLs   []string   `json:"imageUrls" firestore:"imageUrls"`
	Location    Location   `json:"location" firestore:"location"`
	RegionType  string     `json:"regionType" firestore:"regionType"`
	SeasonTags  []string   `json:"seasonTags" firestore:"seasonTags"`
	BudgetLevel string     `json:"budgetLevel" firestore:"budgetLevel"`
	Keywords    []string   `json:"keywords" firestore:"keywords"`
	CreatedBy   string     `json:"createdBy" firestore:"createdBy"`
	CreatedAt   time.Time  `json:"createdAt" firestore:"createdAt"`
	Stats       PlaceStats `json:"stats" firestore:"stats"`
	Draft       bool       `json:"-" firestore:"draft"`
}

// Listable reports whether the place has finished two-phase creation.
func (p *Place) Listable() bool {
	return !p.Draft && p.Name != ""
}

func (p *Place) Region() (RegionClass, bool) {
	return RegionClassFromLabel(p.RegionType)
}

// Summary builds the card view, falling back to placeholder when the place
// has no images.
func (p *Place) Summary(placeholder string) PlaceSummary {
	thumbnail := placeholder
	if len(p.ImageURLs) > 0 && p.ImageURLs[0] != "" {
		thumbnail = p.ImageURLs[0]
	}
	return PlaceSummary{
		ID:        p.ID,
		Name:      p.Name,
		Region:    p.Location.Region,
		Thumbnail: thumbnail,
	}
}

type PlaceSummary struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Region    string `json:"region"`
	Thumbnail string `json:"thumbnail"`
	Liked     bool   `json:"liked"`
}

// PlaceFields is a partial update. Nil fields are left untouched.
type PlaceFields struct {
	Name        *string
	Description *string
	ImageURLs   []string
	Location    *Location
	RegionType  *string
	SeasonTags  []string
	BudgetLevel *string
	Keywords    []string
	CreatedBy   *string
	Draft       *bool
}

// PlaceFilter is the set of search constraints. Nil or empty fields are
// not constrained.
type PlaceFilter struct {
	Keyword string
	Region  *RegionClass
	Season  *Season
	Budget  *BudgetTier
}

func (f PlaceFilter) Equal(other PlaceFilter) bool {
	return f.Keyword == other.Keyword &&
		f.regionValue() == other.regionValue() &&
		f.seasonValue() == other.seasonValue() &&
		f.budgetValue() == other.budgetValue()
}

func (f PlaceFilter) IsEmpty() bool {
	return f.Keyword == "" && f.Region == nil && f.Season == nil && f.Budget == nil
}

// Key is a stable textual form used for cache keys and logs.
func (f PlaceFilter) Key() string {
	var b strings.Builder
	b.WriteString("k=")
	b.WriteString(f.Keyword)
	b.WriteString("|r=")
	b.WriteString(string(f.regionValue()))
	b.WriteString("|s=")
	b.WriteString(string(f.seasonValue()))
	b.WriteString("|b=")
	b.WriteString(string(f.budgetValue()))
	return b.String()
}

func (f PlaceFilter) regionValue() RegionClass {
	if f.Region == nil {
		return ""
	}
	return *f.Region
}

func (f PlaceFilter) seasonValue() Season {
	if f.Season == nil {
		return ""
	}
	return *f.Season
}

func (f PlaceFilter) budgetValue() BudgetTier {
	if f.Budget == nil {
		return ""
	}
	return *f.Budget
}

type LookupStatus string

const (
	LookupFound    LookupStatus = "found"
	LookupNotFound LookupStatus = "not_found"
	LookupFailed   LookupStatus = "failed"
)

// PlaceLookup is the outcome of reading one place.
type PlaceLookup struct {
	Status LookupStatus
	Place  *Place
	Err    error
}

func Found(place *Place) PlaceLookup {
	return PlaceLookup{Status: LookupFound, Place: place}
}

func NotFound() PlaceLookup {
	return PlaceLookup{Status: LookupNotFound}
}

func Failed(err error) PlaceLookup {
	return PlaceLookup{Status: LookupFailed, Err: err}
}
