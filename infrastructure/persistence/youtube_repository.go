package persistence

import (
	"context"
	"fmt"
	"time"

	"yt-duration-match/domain/model"
	"yt-duration-match/domain/repository"
	"yt-duration-match/infrastructure/logger"
)

// YouTubeRepository implements repository.IYouTube and answers searches from the cache when it can
type YouTubeRepository struct {
	Cache            repository.ISearchCache // optional
	YouTubeAPIClient repository.IYouTube
}

// SearchVideoIDs returns cached ids on a hit without any network call.
// On a miss it searches and persists the result before returning.
func (r *YouTubeRepository) SearchVideoIDs(ctx context.Context, query model.Query, category model.DurationCategory) ([]string, error) {
	if r.Cache != nil {
		if ids, ok := r.Cache.Get(query); ok {
			logger.GetLogger().WithFields(map[string]interface{}{
				"query":  query,
				"videos": len(ids),
			}).Info("Search cache hit")
			return ids, nil
		}
	}

	ids, err := r.YouTubeAPIClient.SearchVideoIDs(ctx, query, category)
	if err != nil {
		return nil, err
	}

	if r.Cache != nil {
		if err := r.Cache.Put(ctx, query, ids); err != nil {
			return nil, fmt.Errorf("failed to cache search results: %w", err)
		}
	}
	return ids, nil
}

// GetVideoDurations is never cached
func (r *YouTubeRepository) GetVideoDurations(ctx context.Context, videoIDs []string) (map[string]time.Duration, error) {
	return r.YouTubeAPIClient.GetVideoDurations(ctx, videoIDs)
}
