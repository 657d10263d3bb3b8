package services

import (
	"context"
	"log"
	"strings"

	"farmer-market/internal/domain"
	"farmer-market/internal/repository"
)

const suggestLimit = 5

// kannadaSynonyms maps transliterated Kannada produce names to the English
// names farmers list under. Only whole queries are substituted.
var kannadaSynonyms = map[string]string{
	"akki":       "rice",
	"godhi":      "wheat",
	"ragi":       "finger millet",
	"huruli":     "horse gram",
	"togari":     "pigeon pea",
	"kadale":     "chickpea",
	"hasi avare": "beans",
	"bhatta":     "paddy",
	"sakkare":    "sugar",
	"tengu":      "coconut",
	"hannu":      "fruit",
}

// SuggestCache is satisfied by redisx.SuggestCache.
type SuggestCache interface {
	Get(ctx context.Context, term string) ([]domain.Suggestion, int64, bool, error)
	Set(ctx context.Context, version int64, term string, s []domain.Suggestion) error
	Invalidate(ctx context.Context) error
}

// NormalizeQuery lower-cases and trims q, then applies the synonym map.
func NormalizeQuery(q string) string {
	q = strings.ToLower(strings.TrimSpace(q))
	if en, ok := kannadaSynonyms[q]; ok {
		return en
	}
	return q
}

type SearchService struct {
	products repository.ProductRepository
	cache    SuggestCache
}

func NewSearchService(products repository.ProductRepository, cache SuggestCache) *SearchService {
	return &SearchService{products: products, cache: cache}
}

func (s *SearchService) Suggest(ctx context.Context, q string) ([]domain.Suggestion, error) {
	term := NormalizeQuery(q)
	if term == "" {
		return []domain.Suggestion{}, nil
	}

	var version int64
	cached := false
	if s.cache != nil {
		hits, v, ok, err := s.cache.Get(ctx, term)
		switch {
		case err != nil:
			log.Printf("suggest cache read failed: %v", err)
		case ok:
			return hits, nil
		default:
			version, cached = v, true
		}
	}

	out, err := s.products.Suggest(ctx, term, suggestLimit)
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []domain.Suggestion{}
	}

	if cached {
		if err := s.cache.Set(ctx, version, term, out); err != nil {
			log.Printf("suggest cache write failed: %v", err)
		}
	}
	return out, nil
}

// Search matches unsold products by name or description, best rated first.
// An empty query matches everything unsold.
func (s *SearchService) Search(ctx context.Context, q string) ([]domain.ProductListing, error) {
	out, err := s.products.Search(ctx, NormalizeQuery(q))
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []domain.ProductListing{}
	}
	return out, nil
}

// invalidateCatalog bumps the catalog version after any mutation that can
// change suggestions.
func invalidateCatalog(ctx context.Context, cache SuggestCache) {
	if cache == nil {
		return
	}
	if err := cache.Invalidate(ctx); err != nil {
		log.Printf("catalog cache invalidation failed: %v", err)
	}
}
