package searchindex

import (
	"fmt"
	"strings"
	"sync"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/keyword"
	"github.com/blevesearch/bleve/v2/mapping"

	"tripspot/internal/domain/service"
)

const (
	termField = "term"
	batchSize = 500
)

var wildcardStripper = strings.NewReplacer("*", "", "?", "")

// KeywordIndex is an in-memory bleve index of distinct place keywords.
// Each keyword is one document whose ID is the keyword itself.
type KeywordIndex struct {
	mu    sync.RWMutex
	index bleve.Index
}

var _ service.KeywordIndex = (*KeywordIndex)(nil)

func NewKeywordIndex() (*KeywordIndex, error) {
	index, err := newMemIndex()
	if err != nil {
		return nil, err
	}
	return &KeywordIndex{index: index}, nil
}

func buildMapping() mapping.IndexMapping {
	indexMapping := bleve.NewIndexMapping()
	indexMapping.DefaultAnalyzer = keyword.Name

	termMapping := bleve.NewTextFieldMapping()
	termMapping.Analyzer = keyword.Name
	termMapping.Store = false

	docMapping := bleve.NewDocumentMapping()
	docMapping.AddFieldMappingsAt(termField, termMapping)
	indexMapping.DefaultMapping = docMapping

	return indexMapping
}

func newMemIndex() (bleve.Index, error) {
	index, err := bleve.NewMemOnly(buildMapping())
	if err != nil {
		return nil, fmt.Errorf("create keyword index: %w", err)
	}
	return index, nil
}

// Replace builds a fresh index from keywords and swaps it in.
func (k *KeywordIndex) Replace(keywords []string) error {
	fresh, err := newMemIndex()
	if err != nil {
		return err
	}
	if err := indexKeywords(fresh, keywords); err != nil {
		fresh.Close()
		return err
	}

	k.mu.Lock()
	old := k.index
	k.index = fresh
	k.mu.Unlock()

	return old.Close()
}

func (k *KeywordIndex) Add(keywords []string) error {
	k.mu.RLock()
	defer k.mu.RUnlock()
	return indexKeywords(k.index, keywords)
}

func indexKeywords(index bleve.Index, keywords []string) error {
	for i := 0; i < len(keywords); i += batchSize {
		end := i + batchSize
		if end > len(keywords) {
			end = len(keywords)
		}

		batch := index.NewBatch()
		for _, kw := range keywords[i:end] {
			if strings.TrimSpace(kw) == "" {
				continue
			}
			if err := batch.Index(kw, map[string]interface{}{termField: strings.ToLower(kw)}); err != nil {
				return fmt.Errorf("batch index %q: %w", kw, err)
			}
		}
		if err := index.Batch(batch); err != nil {
			return fmt.Errorf("commit keyword batch %d-%d: %w", i, end, err)
		}
	}
	return nil
}

// Suggest matches term anywhere in the lowercased keyword. Results are
// ordered by keyword.
func (k *KeywordIndex) Suggest(term string, limit int) ([]string, error) {
	term = strings.ToLower(wildcardStripper.Replace(strings.TrimSpace(term)))
	if term == "" || limit <= 0 {
		return []string{}, nil
	}

	q := bleve.NewWildcardQuery("*" + term + "*")
	q.SetField(termField)

	req := bleve.NewSearchRequestOptions(q, limit, 0, false)
	req.SortBy([]string{"_id"})

	k.mu.RLock()
	result, err := k.index.Search(req)
	k.mu.RUnlock()
	if err != nil {
		return nil, fmt.Errorf("keyword search: %w", err)
	}

	out := make([]string, 0, len(result.Hits))
	for _, hit := range result.Hits {
		out = append(out, hit.ID)
	}
	return out, nil
}

func (k *KeywordIndex) Count() (uint64, error) {
	k.mu.RLock()
	defer k.mu.RUnlock()
	return k.index.DocCount()
}

func (k *KeywordIndex) Close() error {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.index.Close()
}
