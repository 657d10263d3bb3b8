package redisx

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"farmer-market/internal/domain"

	"github.com/redis/go-redis/v9"
)

// SuggestCache stores suggestion lists under the current catalog version.
// Bumping the version orphans every older entry, which then expires by TTL.
type SuggestCache struct {
	rdb *redis.Client
}

func NewSuggestCache(rdb *redis.Client) *SuggestCache {
	return &SuggestCache{rdb: rdb}
}

func (c *SuggestCache) version(ctx context.Context) (int64, error) {
	v, err := c.rdb.Get(ctx, KeyCatalogVersion).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return v, err
}

// Get returns the cached list for term and the catalog version it was
// looked up under; pass that version back to Set.
func (c *SuggestCache) Get(ctx context.Context, term string) ([]domain.Suggestion, int64, bool, error) {
	v, err := c.version(ctx)
	if err != nil {
		return nil, 0, false, err
	}
	b, err := c.rdb.Get(ctx, fmt.Sprintf(KeySuggest, v, term)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, v, false, nil
	}
	if err != nil {
		return nil, v, false, err
	}
	var out []domain.Suggestion
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, v, false, err
	}
	return out, v, true, nil
}

// Set stores under the version observed before the database read, so a
// mutation that lands in between leaves the entry unreachable.
func (c *SuggestCache) Set(ctx context.Context, version int64, term string, s []domain.Suggestion) error {
	b, err := json.Marshal(s)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, fmt.Sprintf(KeySuggest, version, term), b, TTLSuggest).Err()
}

func (c *SuggestCache) Invalidate(ctx context.Context) error {
	return c.rdb.Incr(ctx, KeyCatalogVersion).Err()
}
