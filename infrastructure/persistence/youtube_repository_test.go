package persistence_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"yt-duration-match/domain/model"
	"yt-duration-match/infrastructure/cache"
	"yt-duration-match/infrastructure/filestore"
	"yt-duration-match/infrastructure/persistence"
)

type MockYouTube struct {
	mock.Mock
}

func (m *MockYouTube) SearchVideoIDs(ctx context.Context, query model.Query, category model.DurationCategory) ([]string, error) {
	args := m.Called(ctx, query, category)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockYouTube) GetVideoDurations(ctx context.Context, videoIDs []string) (map[string]time.Duration, error) {
	args := m.Called(ctx, videoIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]time.Duration), args.Error(1)
}

func newFileCache(t *testing.T, path string) *cache.SearchCache {
	t.Helper()
	searchCache, err := cache.NewSearchCache(context.Background(), filestore.NewGobStore(path))
	require.NoError(t, err)
	return searchCache
}

func TestYouTubeRepository_CacheSurvivesRestart(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.gob")
	query := model.NewQuery(5, 0)

	// first process: miss, search, persist
	api := new(MockYouTube)
	api.On("SearchVideoIDs", mock.Anything, query, model.DurationMedium).
		Return([]string{"abc123"}, nil).
		Once()
	first := &persistence.YouTubeRepository{Cache: newFileCache(t, path), YouTubeAPIClient: api}

	ids, err := first.SearchVideoIDs(context.Background(), query, model.DurationMedium)
	require.NoError(t, err)
	assert.Equal(t, []string{"abc123"}, ids)
	api.AssertExpectations(t)

	// fresh process on the same file: hit, no network call
	freshAPI := new(MockYouTube)
	second := &persistence.YouTubeRepository{Cache: newFileCache(t, path), YouTubeAPIClient: freshAPI}

	ids, err = second.SearchVideoIDs(context.Background(), query, model.DurationMedium)
	require.NoError(t, err)
	assert.Equal(t, []string{"abc123"}, ids)
	freshAPI.AssertNotCalled(t, "SearchVideoIDs", mock.Anything, mock.Anything, mock.Anything)
}

func TestYouTubeRepository_SearchErrorIsNotCached(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.gob")
	query := model.NewQuery(1, 0)
	searchCache := newFileCache(t, path)

	api := new(MockYouTube)
	api.On("SearchVideoIDs", mock.Anything, query, model.DurationShort).
		Return(nil, model.ErrSearchFailed).
		Once()
	repo := &persistence.YouTubeRepository{Cache: searchCache, YouTubeAPIClient: api}

	_, err := repo.SearchVideoIDs(context.Background(), query, model.DurationShort)

	require.ErrorIs(t, err, model.ErrSearchFailed)
	assert.Equal(t, 0, searchCache.Len())
	api.AssertExpectations(t)
}

func TestYouTubeRepository_WithoutCache(t *testing.T) {
	query := model.NewQuery(1, 0)
	api := new(MockYouTube)
	api.On("SearchVideoIDs", mock.Anything, query, model.DurationShort).Return([]string{"a"}, nil).Twice()
	repo := &persistence.YouTubeRepository{YouTubeAPIClient: api}

	for i := 0; i < 2; i++ {
		ids, err := repo.SearchVideoIDs(context.Background(), query, model.DurationShort)
		require.NoError(t, err)
		assert.Equal(t, []string{"a"}, ids)
	}
	api.AssertExpectations(t)
}

func TestYouTubeRepository_GetVideoDurationsForwards(t *testing.T) {
	api := new(MockYouTube)
	expected := map[string]time.Duration{"a": time.Minute}
	api.On("GetVideoDurations", mock.Anything, []string{"a"}).Return(expected, nil).Once()
	repo := &persistence.YouTubeRepository{Cache: newFileCache(t, filepath.Join(t.TempDir(), "c.gob")), YouTubeAPIClient: api}

	durations, err := repo.GetVideoDurations(context.Background(), []string{"a"})

	require.NoError(t, err)
	assert.Equal(t, expected, durations)
	api.AssertExpectations(t)
}
