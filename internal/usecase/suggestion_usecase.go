package usecase

import (
	"context"
	"sort"
	"strings"

	"tripspot/internal/domain/repository"
	"tripspot/internal/domain/service"
	"tripspot/pkg/logger"
)

// SuggestionUseCase answers keyword suggestions from the bleve index when one
// is configured and falls back to the gateway's scan otherwise.
type SuggestionUseCase struct {
	places  repository.PlaceRepository
	gateway *PlaceGateway
	index   service.KeywordIndex
	limit   int
}

// NewSuggestionUseCase accepts a nil index for the scan backend.
func NewSuggestionUseCase(places repository.PlaceRepository, gateway *PlaceGateway, index service.KeywordIndex, limit int) *SuggestionUseCase {
	if limit <= 0 {
		limit = 5
	}
	return &SuggestionUseCase{
		places:  places,
		gateway: gateway,
		index:   index,
		limit:   limit,
	}
}

func (uc *SuggestionUseCase) Suggest(ctx context.Context, q string, limit int) []string {
	q = strings.TrimSpace(q)
	if q == "" {
		return []string{}
	}
	if limit <= 0 || limit > uc.limit {
		limit = uc.limit
	}

	if uc.index != nil {
		out, err := uc.index.Suggest(q, limit)
		if err == nil {
			return out
		}
		logger.Warn("Keyword index query failed, falling back to scan: %v", err)
	}
	return uc.gateway.SuggestKeywords(ctx, q, limit)
}

// RefreshIndex rebuilds the index from the keyword sets of every place.
func (uc *SuggestionUseCase) RefreshIndex(ctx context.Context) error {
	if uc.index == nil {
		return nil
	}

	sets, err := uc.places.Keywords(ctx)
	if err != nil {
		return err
	}

	keywords := distinctKeywords(sets)
	if err := uc.index.Replace(keywords); err != nil {
		return err
	}
	logger.Info("Keyword index refreshed with %d keywords", len(keywords))
	return nil
}

func (uc *SuggestionUseCase) AddKeywords(keywords []string) {
	if uc.index == nil || len(keywords) == 0 {
		return
	}
	if err := uc.index.Add(keywords); err != nil {
		logger.Warn("Failed to index keywords %v: %v", keywords, err)
	}
}

func distinctKeywords(sets [][]string) []string {
	seen := make(map[string]struct{})
	for _, set := range sets {
		for _, kw := range set {
			kw = strings.TrimSpace(kw)
			if kw != "" {
				seen[kw] = struct{}{}
			}
		}
	}
	out := make([]string, 0, len(seen))
	for kw := range seen {
		out = append(out, kw)
	}
	sort.Strings(out)
	return out
}
