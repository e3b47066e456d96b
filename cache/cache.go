// Package cache persists the most recent generation result to disk so
// read-only commands can show it without re-generating.
//
// The cache holds at most one result, replaced wholesale on every save,
// mirroring the session store's replace-only result lifecycle. Encoding is
// msgpack; the file is written atomically via a temp file and rename.
package cache

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/gnomonworks/yantra/types"
)

// ErrNoResult indicates the cache holds no saved result.
var ErrNoResult = errors.New("no cached result")

// fileName is the cache file within the cache directory.
const fileName = "last_result.msgpack"

// Cache stores the last generation result under a directory.
type Cache struct {
	dir string
}

// New creates a Cache rooted at dir, creating the directory if needed.
func New(dir string) (*Cache, error) {
	if dir == "" {
		return nil, errors.New("cache requires a directory")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create cache dir %q: %w", dir, err)
	}
	return &Cache{dir: dir}, nil
}

// Path returns the cache file path.
func (c *Cache) Path() string {
	return filepath.Join(c.dir, fileName)
}

// Save replaces the cached result.
func (c *Cache) Save(result *types.GenerationResult) error {
	data, err := msgpack.Marshal(result)
	if err != nil {
		return fmt.Errorf("encode result: %w", err)
	}

	tmp, err := os.CreateTemp(c.dir, fileName+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("write cache: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("close cache: %w", err)
	}
	if err := os.Rename(tmpName, c.Path()); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("install cache: %w", err)
	}
	return nil
}

// Load returns the cached result, or ErrNoResult when none is saved.
func (c *Cache) Load() (*types.GenerationResult, error) {
	data, err := os.ReadFile(c.Path())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNoResult
		}
		return nil, fmt.Errorf("read cache: %w", err)
	}

	var result types.GenerationResult
	if err := msgpack.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("decode cache: %w", err)
	}
	return &result, nil
}

// Clear removes the cached result. Clearing an empty cache is a no-op.
func (c *Cache) Clear() error {
	err := os.Remove(c.Path())
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("clear cache: %w", err)
	}
	return nil
}
