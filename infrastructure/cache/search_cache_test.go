package cache_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"yt-duration-match/domain/model"
	"yt-duration-match/infrastructure/cache"
)

type MockSearchCacheStore struct {
	mock.Mock
}

func (m *MockSearchCacheStore) Load(ctx context.Context) (map[string][]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string][]string), args.Error(1)
}

func (m *MockSearchCacheStore) Save(ctx context.Context, entries map[string][]string) error {
	args := m.Called(ctx, entries)
	return args.Error(0)
}

func TestSearchCache_LoadsPersistedEntries(t *testing.T) {
	store := new(MockSearchCacheStore)
	store.On("Load", mock.Anything).
		Return(map[string][]string{"5 minutes 0 seconds": {"abc123"}}, nil).
		Once()

	searchCache, err := cache.NewSearchCache(context.Background(), store)
	require.NoError(t, err)

	ids, ok := searchCache.Get(model.NewQuery(5, 0))
	assert.True(t, ok)
	assert.Equal(t, []string{"abc123"}, ids)

	_, ok = searchCache.Get(model.NewQuery(5, 1))
	assert.False(t, ok)
	store.AssertExpectations(t)
}

func TestSearchCache_LoadError(t *testing.T) {
	store := new(MockSearchCacheStore)
	store.On("Load", mock.Anything).Return(nil, assert.AnError).Once()

	_, err := cache.NewSearchCache(context.Background(), store)
	require.ErrorIs(t, err, assert.AnError)
}

func TestSearchCache_PutPersistsWholeCache(t *testing.T) {
	store := new(MockSearchCacheStore)
	store.On("Load", mock.Anything).Return(map[string][]string{"1 minutes 0 seconds": {"old"}}, nil).Once()
	store.On("Save", mock.Anything, map[string][]string{
		"1 minutes 0 seconds": {"old"},
		"2 minutes 0 seconds": {"new1", "new2"},
	}).Return(nil).Once()

	searchCache, err := cache.NewSearchCache(context.Background(), store)
	require.NoError(t, err)

	require.NoError(t, searchCache.Put(context.Background(), model.NewQuery(2, 0), []string{"new1", "new2"}))
	assert.Equal(t, 2, searchCache.Len())
	store.AssertExpectations(t)
}

func TestSearchCache_PutReturnsSaveError(t *testing.T) {
	store := new(MockSearchCacheStore)
	store.On("Load", mock.Anything).Return(map[string][]string{}, nil).Once()
	store.On("Save", mock.Anything, mock.Anything).Return(assert.AnError).Once()

	searchCache, err := cache.NewSearchCache(context.Background(), store)
	require.NoError(t, err)

	err = searchCache.Put(context.Background(), model.NewQuery(2, 0), []string{"a"})
	require.ErrorIs(t, err, assert.AnError)

	ids, ok := searchCache.Get(model.NewQuery(2, 0))
	assert.True(t, ok)
	assert.Equal(t, []string{"a"}, ids)
}

func TestSearchCache_ReturnsCopies(t *testing.T) {
	store := new(MockSearchCacheStore)
	store.On("Load", mock.Anything).Return(map[string][]string{}, nil).Once()
	store.On("Save", mock.Anything, mock.Anything).Return(nil)

	searchCache, err := cache.NewSearchCache(context.Background(), store)
	require.NoError(t, err)

	input := []string{"a", "b"}
	require.NoError(t, searchCache.Put(context.Background(), model.NewQuery(1, 1), input))
	input[0] = "mutated"

	ids, _ := searchCache.Get(model.NewQuery(1, 1))
	ids[1] = "mutated"

	again, _ := searchCache.Get(model.NewQuery(1, 1))
	assert.Equal(t, []string{"a", "b"}, again)
}

func TestSearchCache_ConcurrentAccess(t *testing.T) {
	store := new(MockSearchCacheStore)
	store.On("Load", mock.Anything).Return(map[string][]string{}, nil).Once()
	store.On("Save", mock.Anything, mock.Anything).Return(nil)

	searchCache, err := cache.NewSearchCache(context.Background(), store)
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			query := model.NewQuery(i, 0)
			_ = searchCache.Put(context.Background(), query, []string{"id"})
			_, _ = searchCache.Get(query)
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 20, searchCache.Len())
}
