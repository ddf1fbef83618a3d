package cache

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/abdidvp/archguard/internal/domain"
)

// File is where the extraction cache lives, relative to the project root.
const File = ".archguard/cache/extraction.json"

// Store is a file-based implementation of domain.CacheStore.
type Store struct{}

// New creates a new file-based cache store.
func New() *Store {
	return &Store{}
}

// Load reads a project cache from disk. Returns (nil, nil) if no cache exists.
func (s *Store) Load(projectPath string) (*domain.ExtractionCache, error) {
	data, err := os.ReadFile(cachePath(projectPath))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil // no cache is not an error
		}
		return nil, err
	}

	var cache domain.ExtractionCache
	if err := json.Unmarshal(data, &cache); err != nil {
		return nil, fmt.Errorf("reading %s: %w", File, err)
	}
	return &cache, nil
}

// Save writes a project cache to disk, creating directories as needed.
func (s *Store) Save(projectPath string, cache *domain.ExtractionCache) error {
	path := cachePath(projectPath)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := json.Marshal(cache)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// Invalidate removes the cache file for the given project path.
func (s *Store) Invalidate(projectPath string) error {
	if err := os.Remove(cachePath(projectPath)); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func cachePath(projectPath string) string {
	return filepath.Join(projectPath, filepath.FromSlash(File))
}
