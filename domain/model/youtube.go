package model

import (
	"fmt"
	"time"
)

// WatchURLPrefix is the public watch page for a video id
const WatchURLPrefix = "https://www.youtube.com/watch?v="

// DurationCategory is the coarse bucket accepted by the search endpoint's videoDuration filter
type DurationCategory string

const (
	DurationShort  DurationCategory = "short"
	DurationMedium DurationCategory = "medium"
	DurationLong   DurationCategory = "long"
)

const (
	shortDurationLimit  = 4 * time.Minute
	mediumDurationLimit = 20 * time.Minute
)

// Query is the free-text search term for a target duration. It doubles as the search cache key.
type Query string

// NewQuery builds the search term for a target duration
func NewQuery(minutes, seconds int) Query {
	return Query(fmt.Sprintf("%d minutes %d seconds", minutes, seconds))
}

// TargetDuration converts caller input into the duration matched against video metadata
func TargetDuration(minutes, seconds int) time.Duration {
	return time.Duration(minutes)*time.Minute + time.Duration(seconds)*time.Second
}

// Classify maps a duration onto the search API's duration category.
// Thresholds are strict: 4m is medium and 20m is long.
func Classify(d time.Duration) (DurationCategory, error) {
	if d < 0 {
		return "", fmt.Errorf("%w: %s", ErrInvalidDuration, d)
	}
	switch {
	case d < shortDurationLimit:
		return DurationShort, nil
	case d < mediumDurationLimit:
		return DurationMedium, nil
	default:
		return DurationLong, nil
	}
}

// WatchURL returns the watch page of a video
func WatchURL(videoID string) string {
	return WatchURLPrefix + videoID
}
