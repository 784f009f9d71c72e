package repository

import (
	"context"
	"time"

	"yt-duration-match/domain/model"
)

// IYouTube defines the YouTube operations the duration matcher depends on
type IYouTube interface {
	// SearchVideoIDs returns video ids for a free-text query, capped at the configured maximum
	SearchVideoIDs(ctx context.Context, query model.Query, category model.DurationCategory) ([]string, error)
	// GetVideoDurations returns the exact duration of every id the API knows about.
	// Any failed batch fails the whole call.
	GetVideoDurations(ctx context.Context, videoIDs []string) (map[string]time.Duration, error)
}
