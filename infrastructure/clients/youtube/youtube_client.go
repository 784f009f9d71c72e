package youtube

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"yt-duration-match/domain/model"
	"yt-duration-match/infrastructure/logger"
	"yt-duration-match/infrastructure/retry"

	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"
)

const (
	// SearchPageLimit is the largest maxResults search.list accepts
	SearchPageLimit = 50
	// BatchLimit is the most ids videos.list accepts per request
	BatchLimit = 50

	searchFields = "items(id/videoId),nextPageToken"
	videoFields  = "items(id,contentDetails/duration)"
)

// Client represents YouTube API client
type Client struct {
	service        *youtube.Service
	maxResults     int
	retryPolicy    retry.Policy
	requestTimeout time.Duration
}

// Config represents YouTube API configuration
type Config struct {
	APIKey string
	// MaxResults caps the number of ids one search collects across pages
	MaxResults int
	// SearchRetry governs how a failed search page is retried
	SearchRetry retry.Policy
	// RequestTimeout bounds every API call. Zero disables the timeout.
	RequestTimeout time.Duration
}

// NewYouTubeClient creates a new YouTube API client in API key (read-only) mode.
// Extra options are appended after the API key, which lets tests swap the endpoint and HTTP client.
func NewYouTubeClient(ctx context.Context, config *Config, opts ...option.ClientOption) (*Client, error) {
	if config.APIKey == "" {
		return nil, errors.New("youtube API key is empty")
	}
	if config.MaxResults <= 0 {
		return nil, fmt.Errorf("max results must be positive, got %d", config.MaxResults)
	}

	clientOpts := append([]option.ClientOption{option.WithAPIKey(config.APIKey)}, opts...)
	service, err := youtube.NewService(ctx, clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create YouTube service with API key: %w", err)
	}

	return &Client{
		service:        service,
		maxResults:     config.MaxResults,
		retryPolicy:    config.SearchRetry,
		requestTimeout: config.RequestTimeout,
	}, nil
}

// SearchVideoIDs pages through search results for query until MaxResults ids are collected
// or the API stops returning a continuation token. A failed page is retried as-is.
func (c *Client) SearchVideoIDs(ctx context.Context, query model.Query, category model.DurationCategory) ([]string, error) {
	videoIDs := make([]string, 0, c.maxResults)
	pageToken := ""

	for len(videoIDs) < c.maxResults {
		pageSize := min(SearchPageLimit, c.maxResults-len(videoIDs))

		var response *youtube.SearchListResponse
		attempt := 0
		err := retry.Do(ctx, c.retryPolicy, func(ctx context.Context) error {
			attempt++
			res, err := c.searchPage(ctx, query, category, pageSize, pageToken)
			if err != nil {
				logger.GetLogger().WithFields(map[string]interface{}{
					"error":     err,
					"status":    statusCode(err),
					"query":     query,
					"pageToken": pageToken,
					"attempt":   attempt,
				}).Warn("Error fetching search page")
				return err
			}
			response = res
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("%w: %w", model.ErrSearchFailed, err)
		}

		for _, item := range response.Items {
			if item.Id != nil && item.Id.VideoId != "" {
				videoIDs = append(videoIDs, item.Id.VideoId)
			}
		}

		pageToken = response.NextPageToken
		if pageToken == "" {
			break
		}
	}

	if len(videoIDs) > c.maxResults {
		videoIDs = videoIDs[:c.maxResults]
	}
	return videoIDs, nil
}

func (c *Client) searchPage(ctx context.Context, query model.Query, category model.DurationCategory, pageSize int, pageToken string) (*youtube.SearchListResponse, error) {
	ctx, cancel := c.callContext(ctx)
	defer cancel()

	call := c.service.Search.List([]string{"id"}).
		Q(string(query)).
		Type("video").
		VideoDuration(string(category)).
		MaxResults(int64(pageSize)).
		Fields(searchFields)

	if pageToken != "" {
		call = call.PageToken(pageToken)
	}

	return call.Context(ctx).Do()
}

// GetVideoDurations looks ids up in batches of BatchLimit and merges the durations.
// The first failed batch aborts the lookup and nothing is returned.
func (c *Client) GetVideoDurations(ctx context.Context, videoIDs []string) (map[string]time.Duration, error) {
	durations := make(map[string]time.Duration, len(videoIDs))

	for start := 0; start < len(videoIDs); start += BatchLimit {
		end := min(start+BatchLimit, len(videoIDs))

		response, err := c.listDurations(ctx, videoIDs[start:end])
		if err != nil {
			logger.GetLogger().WithFields(map[string]interface{}{
				"error":  err,
				"status": statusCode(err),
				"batch":  fmt.Sprintf("%d-%d", start, end),
			}).Error("Error fetching video details")
			return nil, fmt.Errorf("%w: batch %d-%d: %w", model.ErrLookupFailed, start, end, err)
		}

		for _, item := range response.Items {
			if item.ContentDetails == nil {
				return nil, fmt.Errorf("%w: video %s has no content details", model.ErrMalformedDuration, item.Id)
			}
			duration, err := ParseISODuration(item.ContentDetails.Duration)
			if err != nil {
				return nil, fmt.Errorf("video %s: %w", item.Id, err)
			}
			durations[item.Id] = duration
		}
	}

	return durations, nil
}

func (c *Client) listDurations(ctx context.Context, batch []string) (*youtube.VideoListResponse, error) {
	ctx, cancel := c.callContext(ctx)
	defer cancel()

	return c.service.Videos.List([]string{"contentDetails"}).
		Id(strings.Join(batch, ",")).
		Fields(videoFields).
		Context(ctx).
		Do()
}

func (c *Client) callContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.requestTimeout > 0 {
		return context.WithTimeout(ctx, c.requestTimeout)
	}
	return context.WithCancel(ctx)
}

// statusCode extracts the HTTP status from an API error, 0 when there is none
func statusCode(err error) int {
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		return apiErr.Code
	}
	return 0
}
