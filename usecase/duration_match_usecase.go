package usecase

import (
	"context"
	"fmt"

	"yt-duration-match/domain/dto"
	"yt-duration-match/domain/model"
	"yt-duration-match/domain/repository"
	"yt-duration-match/infrastructure/logger"
)

// IDurationMatchUseCase finds videos whose duration equals a target exactly
type IDurationMatchUseCase interface {
	FindMatches(ctx context.Context, req *dto.DurationMatchRequest) (*dto.DurationMatchResult, error)
}

// DurationMatchUseCase runs search, duration lookup, filter and rank in sequence
type DurationMatchUseCase struct {
	youtubeRepo repository.IYouTube
}

func NewDurationMatchUseCase(youtubeRepo repository.IYouTube) IDurationMatchUseCase {
	return &DurationMatchUseCase{youtubeRepo: youtubeRepo}
}

// FindMatches returns the ranked ids of videos lasting exactly req.Minutes:req.Seconds.
// Lookup and parse failures abort the run with no partial result.
func (u *DurationMatchUseCase) FindMatches(ctx context.Context, req *dto.DurationMatchRequest) (*dto.DurationMatchResult, error) {
	query := model.NewQuery(req.Minutes, req.Seconds)
	target := model.TargetDuration(req.Minutes, req.Seconds)
	category, err := model.Classify(target)
	if err != nil {
		return nil, err
	}

	videoIDs, err := u.youtubeRepo.SearchVideoIDs(ctx, query, category)
	if err != nil {
		return nil, fmt.Errorf("failed to search videos: %w", err)
	}
	logger.GetLogger().WithFields(map[string]interface{}{
		"query":    query,
		"category": category,
		"videos":   len(videoIDs),
	}).Info("Found videos for query")

	durations, err := u.youtubeRepo.GetVideoDurations(ctx, uniqueIDs(videoIDs))
	if err != nil {
		return nil, fmt.Errorf("failed to get video durations: %w", err)
	}
	logger.GetLogger().WithField("videos", len(durations)).Info("Retrieved video durations")

	matched := FilterByDuration(durations, target)
	logger.GetLogger().WithFields(map[string]interface{}{
		"videos": len(matched),
		"target": target.String(),
	}).Info("Filtered videos matching target duration")

	return &dto.DurationMatchResult{
		Query:     query,
		Target:    target,
		Category:  category,
		Found:     len(videoIDs),
		Retrieved: len(durations),
		VideoIDs:  RankVideoIDs(matched),
	}, nil
}

// uniqueIDs drops repeated ids, keeping first occurrence order
func uniqueIDs(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
