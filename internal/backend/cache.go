package backend

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// CacheEntry records one applied patch.
type CacheEntry struct {
	Name      string    `json:"name"`
	Size      int64     `json:"size"`
	AppliedAt time.Time `json:"applied_at"`
}

type cacheFile struct {
	Applied []CacheEntry `json:"applied"`
}

func (c cacheFile) contains(name string) bool {
	for _, entry := range c.Applied {
		if entry.Name == name {
			return true
		}
	}
	return false
}

// readCache loads the cache at path. A missing file is an empty cache.
func readCache(path string) (cacheFile, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cacheFile{}, nil
	}
	if err != nil {
		return cacheFile{}, fmt.Errorf("read cache %s: %w", path, err)
	}
	var c cacheFile
	if err := json.Unmarshal(data, &c); err != nil {
		return cacheFile{}, fmt.Errorf("decode cache %s: %w", path, err)
	}
	return c, nil
}

func writeCache(path string, c cacheFile) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("encode cache: %w", err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create cache directory: %w", err)
		}
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write cache %s: %w", path, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("replace cache %s: %w", path, err)
	}
	return nil
}
