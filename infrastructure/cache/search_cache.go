package cache

import (
	"context"
	"fmt"
	"sync"

	"yt-duration-match/domain/model"
	"yt-duration-match/domain/repository"
)

// SearchCache keeps query results in memory and writes the whole mapping
// through to its store on every update. Entries never expire.
type SearchCache struct {
	mu      sync.Mutex
	entries map[string][]string
	store   repository.ISearchCacheStore
}

// NewSearchCache loads every persisted entry from store
func NewSearchCache(ctx context.Context, store repository.ISearchCacheStore) (*SearchCache, error) {
	entries, err := store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load search cache: %w", err)
	}
	if entries == nil {
		entries = make(map[string][]string)
	}

	return &SearchCache{entries: entries, store: store}, nil
}

// Get returns a copy of the cached ids for query
func (c *SearchCache) Get(query model.Query) ([]string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	ids, ok := c.entries[string(query)]
	if !ok {
		return nil, false
	}
	return append([]string(nil), ids...), true
}

// Put records ids for query and persists the whole cache while holding the lock.
// The entry stays in memory even when persisting fails.
func (c *SearchCache) Put(ctx context.Context, query model.Query, videoIDs []string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[string(query)] = append([]string(nil), videoIDs...)
	if err := c.store.Save(ctx, c.entries); err != nil {
		return fmt.Errorf("persist search cache: %w", err)
	}
	return nil
}

// Len returns the number of cached queries
func (c *SearchCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
