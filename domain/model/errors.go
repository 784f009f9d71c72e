package model

import "errors"

var (
	// ErrInvalidDuration is returned when a value cannot be treated as an elapsed time
	ErrInvalidDuration = errors.New("invalid duration")
	// ErrMalformedDuration is returned when the API reports a duration that is not ISO-8601
	ErrMalformedDuration = errors.New("malformed ISO-8601 duration")
	// ErrSearchFailed is returned when a search page could not be fetched within the retry policy
	ErrSearchFailed = errors.New("video search failed")
	// ErrLookupFailed is returned when a duration batch request fails. No partial results accompany it.
	ErrLookupFailed = errors.New("video duration lookup failed")
)
