package search

import (
	"net/url"
	"strconv"
	"strings"
	"unicode/utf8"

	"tripspot/internal/domain/entity"
)

// URL query parameters.
const (
	ParamKeyword = "keyword"
	ParamRegion  = "region"
	ParamSeason  = "season"
	ParamBudget  = "budget"
	ParamPage    = "page"

	MaxKeywordLength = 50

	allValue = "all"
)

// Spec is the filter specification carried in a search URL.
type Spec struct {
	Filter entity.PlaceFilter
	Page   int
}

// ParseSpec reads a Spec from URL query values. Unknown enum values, "all"
// and empty values leave the field unconstrained; a missing or invalid page
// is page 1.
func ParseSpec(values url.Values) Spec {
	spec := Spec{Page: 1}

	spec.Filter.Keyword = normalizeKeyword(values.Get(ParamKeyword))

	if raw := values.Get(ParamRegion); raw != "" && raw != allValue {
		if region, ok := entity.ParseRegionClass(raw); ok {
			spec.Filter.Region = &region
		}
	}
	if raw := values.Get(ParamSeason); raw != "" && raw != allValue {
		if season, ok := entity.ParseSeason(raw); ok {
			spec.Filter.Season = &season
		}
	}
	if raw := values.Get(ParamBudget); raw != "" && raw != allValue {
		if budget, ok := entity.ParseBudgetTier(raw); ok {
			spec.Filter.Budget = &budget
		}
	}

	if page, err := strconv.Atoi(values.Get(ParamPage)); err == nil && page > 1 {
		spec.Page = page
	}
	return spec
}

// ParseQuery is ParseSpec over a raw query string. A leading "?" is allowed.
func ParseQuery(raw string) (Spec, error) {
	values, err := url.ParseQuery(strings.TrimPrefix(raw, "?"))
	if err != nil {
		return Spec{Page: 1}, err
	}
	return ParseSpec(values), nil
}

// Values is the canonical query form: unconstrained fields and page 1 are
// omitted.
func (s Spec) Values() url.Values {
	values := url.Values{}
	if s.Filter.Keyword != "" {
		values.Set(ParamKeyword, s.Filter.Keyword)
	}
	if s.Filter.Region != nil {
		values.Set(ParamRegion, string(*s.Filter.Region))
	}
	if s.Filter.Season != nil {
		values.Set(ParamSeason, string(*s.Filter.Season))
	}
	if s.Filter.Budget != nil {
		values.Set(ParamBudget, string(*s.Filter.Budget))
	}
	if s.Page > 1 {
		values.Set(ParamPage, strconv.Itoa(s.Page))
	}
	return values
}

func (s Spec) Encode() string {
	return s.Values().Encode()
}

// WithPage returns a copy of s on page.
func (s Spec) WithPage(page int) Spec {
	if page < 1 {
		page = 1
	}
	s.Page = page
	return s
}

func normalizeKeyword(raw string) string {
	kw := strings.TrimSpace(raw)
	if utf8.RuneCountInString(kw) > MaxKeywordLength {
		kw = string([]rune(kw)[:MaxKeywordLength])
	}
	return kw
}
