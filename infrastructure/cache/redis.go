package cache

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
)

const searchCacheKey = "search_cache"

// NewCache connects to Redis and verifies the connection with PING
func NewCache(ctx context.Context, address, username, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     address,
		Username: username,
		Password: password,
		DB:       db,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping %s: %w", address, err)
	}
	return client, nil
}

// RedisSearchStore persists the search cache as one Redis hash of query -> JSON id list
type RedisSearchStore struct {
	client *redis.Client
	key    string
}

// NewRedisSearchStore creates a store writing to "<keyPrefix>search_cache"
func NewRedisSearchStore(client *redis.Client, keyPrefix string) *RedisSearchStore {
	return &RedisSearchStore{client: client, key: keyPrefix + searchCacheKey}
}

// Load reads every cached query. A missing hash is an empty cache.
func (s *RedisSearchStore) Load(ctx context.Context) (map[string][]string, error) {
	raw, err := s.client.HGetAll(ctx, s.key).Result()
	if err != nil {
		return nil, fmt.Errorf("redis hgetall: %w", err)
	}

	entries := make(map[string][]string, len(raw))
	for query, data := range raw {
		var ids []string
		if err := json.Unmarshal([]byte(data), &ids); err != nil {
			return nil, fmt.Errorf("decode cached ids for %q: %w", query, err)
		}
		entries[query] = ids
	}
	return entries, nil
}

// Save replaces the hash with entries in a single MULTI/EXEC
func (s *RedisSearchStore) Save(ctx context.Context, entries map[string][]string) error {
	fields := make(map[string]interface{}, len(entries))
	for query, ids := range entries {
		data, err := json.Marshal(ids)
		if err != nil {
			return fmt.Errorf("encode cached ids for %q: %w", query, err)
		}
		fields[query] = data
	}

	pipe := s.client.TxPipeline()
	pipe.Del(ctx, s.key)
	if len(fields) > 0 {
		pipe.HSet(ctx, s.key, fields)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("redis save search cache: %w", err)
	}
	return nil
}
