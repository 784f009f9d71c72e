package filestore

import (
	"context"
	"encoding/gob"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"yt-duration-match/infrastructure/logger"
)

// GobStore keeps the search cache in a single gob-encoded file.
// Saves go to a temp file in the same directory that is renamed over the target.
type GobStore struct {
	path string
}

func NewGobStore(path string) *GobStore {
	return &GobStore{path: path}
}

// Path returns the cache file location
func (s *GobStore) Path() string {
	return s.path
}

// Load decodes the cache file. A missing or empty file is an empty cache.
func (s *GobStore) Load(_ context.Context) (map[string][]string, error) {
	entries := make(map[string][]string)

	file, err := os.Open(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			logger.GetLogger().WithField("path", s.path).Debug("Cache file not found, starting empty")
			return entries, nil
		}
		logger.GetLogger().WithField("error", err).Error("Error while open file")
		return nil, err
	}
	defer file.Close()

	if err := gob.NewDecoder(file).Decode(&entries); err != nil {
		if errors.Is(err, io.EOF) {
			return make(map[string][]string), nil
		}
		return nil, fmt.Errorf("decode cache file %s: %w", s.path, err)
	}
	return entries, nil
}

// Save rewrites the whole cache file
func (s *GobStore) Save(_ context.Context, entries map[string][]string) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create cache directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".search-cache-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	if err := gob.NewEncoder(tmp).Encode(entries); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("encode cache file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("sync: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("close: %w", err)
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("rename: %w", err)
	}
	return nil
}

// Size returns the size of the cache file in bytes
func (s *GobStore) Size() (int64, error) {
	info, err := os.Stat(s.path)
	if err != nil {
		return 0, err
	}
	return info.Size(), nil
}
