package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
)

// Cache resolves the configuration that applies to a directory by merging the
// files found in it and all of its ancestors. Results are memoised per
// directory. Workers walking the tree concurrently share one Cache; a single
// mutex guards every read and write.
type Cache struct {
	mu      sync.Mutex
	entries map[string]*File
	root    *File // applied beneath every discovered file
}

// NewCache creates a cache. base, if non-nil, is layered below every file
// found on disk (e.g. a file passed explicitly on the command line).
func NewCache(base *File) *Cache {
	return &Cache{entries: make(map[string]*File), root: base}
}

// Resolve returns the merged configuration for dir. The result must be treated
// as read-only.
func (c *Cache) Resolve(dir string) (*File, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.resolveLocked(abs)
}

// Len reports the number of cached directories.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

func (c *Cache) resolveLocked(dir string) (*File, error) {
	if f, ok := c.entries[dir]; ok {
		return f, nil
	}
	var parent *File
	if up := filepath.Dir(dir); up != dir {
		p, err := c.resolveLocked(up)
		if err != nil {
			return nil, err
		}
		parent = p
	} else {
		parent = c.root
	}
	local, err := loadDir(dir)
	if err != nil {
		return nil, err
	}
	merged := Merge(parent, local)
	if merged == nil {
		merged = &File{Options: map[string]string{}}
	}
	c.entries[dir] = merged
	return merged, nil
}

// loadDir loads the first configuration file present in dir, if any.
func loadDir(dir string) (*File, error) {
	for _, name := range FileNames {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return nil, err
		}
		return LoadFile(path)
	}
	return nil, nil
}
