package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tripspot/internal/infrastructure/searchindex"
)

func TestSuggestFromIndex(t *testing.T) {
	places := newFakePlaceRepo(
		newPlace("p1", "A", "카페투어", "해변"),
		newPlace("p2", "B", "카페투어", "야경"),
	)
	index, err := searchindex.NewKeywordIndex()
	require.NoError(t, err)
	defer index.Close()

	uc := NewSuggestionUseCase(places, newTestGateway(places, nil), index, 5)
	require.NoError(t, uc.RefreshIndex(context.Background()))

	count, err := index.Count()
	require.NoError(t, err)
	assert.Equal(t, uint64(3), count)

	assert.Equal(t, []string{"카페투어"}, uc.Suggest(context.Background(), "카페", 0))
	assert.Empty(t, uc.Suggest(context.Background(), "  ", 5))
}

func TestSuggestScanBackend(t *testing.T) {
	places := newFakePlaceRepo(newPlace("p1", "A", "카페투어", "야시장"))
	uc := NewSuggestionUseCase(places, newTestGateway(places, nil), nil, 5)

	require.NoError(t, uc.RefreshIndex(context.Background()))
	assert.Equal(t, []string{"카페투어"}, uc.Suggest(context.Background(), "카페", 10))
}
