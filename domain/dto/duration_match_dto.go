package dto

import (
	"time"

	"yt-duration-match/domain/model"
)

// DurationMatchRequest represents the target duration to search for
type DurationMatchRequest struct {
	Minutes int `json:"minutes"`
	Seconds int `json:"seconds"`
}

// DurationMatchResult represents the outcome of one search-lookup-filter-rank run
type DurationMatchResult struct {
	Query     model.Query            `json:"query"`
	Target    time.Duration          `json:"target"`
	Category  model.DurationCategory `json:"category"`
	Found     int                    `json:"found"`
	Retrieved int                    `json:"retrieved"`
	VideoIDs  []string               `json:"video_ids"` // ranked, best first
}
