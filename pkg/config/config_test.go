package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("FIREBASE_PROJECT_ID", "tripspot-dev")
	t.Setenv("STORAGE_BUCKET", "tripspot-dev.appspot.com")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, 12, cfg.PerPage)
	assert.Equal(t, 5, cfg.MaxVisiblePages)
	assert.Equal(t, 5, cfg.SuggestionLimit)
	assert.Equal(t, "index", cfg.SuggestBackend)
	assert.Equal(t, 5*time.Minute, cfg.CacheTTLList)
	assert.Equal(t, 24*time.Hour, cfg.OrphanTTL)
	assert.False(t, cfg.IsProduction())
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("FIREBASE_PROJECT_ID", "tripspot")
	t.Setenv("STORAGE_BUCKET", "bucket")
	t.Setenv("PER_PAGE", "20")
	t.Setenv("QUERY_TIMEOUT", "3s")
	t.Setenv("SUGGEST_BACKEND", "scan")
	t.Setenv("ENVIRONMENT", "production")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 20, cfg.PerPage)
	assert.Equal(t, 3*time.Second, cfg.QueryTimeout)
	assert.Equal(t, "scan", cfg.SuggestBackend)
	assert.True(t, cfg.IsProduction())
}

func TestValidateRejects(t *testing.T) {
	base := Config{FirebaseProject: "p", StorageBucket: "b", PerPage: 12, MaxVisiblePages: 5, SuggestionLimit: 5, SuggestBackend: "index"}
	require.NoError(t, base.Validate())

	missingProject := base
	missingProject.FirebaseProject = ""
	assert.Error(t, missingProject.Validate())

	zeroPage := base
	zeroPage.PerPage = 0
	assert.Error(t, zeroPage.Validate())

	badBackend := base
	badBackend.SuggestBackend = "algolia"
	assert.Error(t, badBackend.Validate())
}
