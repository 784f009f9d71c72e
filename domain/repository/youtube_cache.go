package repository

import (
	"context"

	"yt-duration-match/domain/model"
)

// ISearchCache maps a search query to the ids it returned
type ISearchCache interface {
	Get(query model.Query) ([]string, bool)
	// Put stores the ids and persists the whole cache before returning
	Put(ctx context.Context, query model.Query, videoIDs []string) error
}

// ISearchCacheStore is the durable backing of a search cache. Entries are loaded and saved wholesale.
type ISearchCacheStore interface {
	Load(ctx context.Context) (map[string][]string, error)
	Save(ctx context.Context, entries map[string][]string) error
}
