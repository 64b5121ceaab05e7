package driver

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"swiftformat/internal/config"
	"swiftformat/internal/rules"
)

// Current schema version - increment when cacheEntry or the key derivation
// changes.
const resultCacheSchema uint16 = 1

// Digest identifies a file content formatted under one configuration.
type Digest [sha256.Size]byte

func (d Digest) String() string { return hex.EncodeToString(d[:]) }

// ResultCache remembers which inputs are already formatted so that FormatPaths
// can skip them. An entry exists for a key only when formatting that content
// with that configuration is known to be a no-op.
// Thread-safe for concurrent access.
type ResultCache struct {
	mu  sync.RWMutex
	dir string
}

type cacheEntry struct {
	Schema uint16
	Path   string
	Size   int
	Stored time.Time
}

// OpenResultCache returns the cache at the standard per-user location.
func OpenResultCache(app string) (*ResultCache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	return NewResultCache(filepath.Join(base, app))
}

// NewResultCache returns a cache rooted at dir, creating it if needed.
func NewResultCache(dir string) (*ResultCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &ResultCache{dir: dir}, nil
}

// Dir returns the cache directory.
func (c *ResultCache) Dir() string { return c.dir }

func (c *ResultCache) pathFor(key Digest) string {
	hexKey := key.String()
	// Two-level fan-out keeps directories small.
	return filepath.Join(c.dir, "results", hexKey[:2], hexKey+".mp")
}

// Put marks key as formatted. path is informational.
func (c *ResultCache) Put(key Digest, path string, size int) error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	defer func() {
		if rmErr := os.Remove(f.Name()); rmErr != nil && !errors.Is(rmErr, os.ErrNotExist) {
			log.Warning("failed to remove temp file", "path", f.Name(), "error", rmErr)
		}
	}()

	entry := cacheEntry{Schema: resultCacheSchema, Path: path, Size: size, Stored: time.Now().UTC()}
	if err := msgpack.NewEncoder(f).Encode(&entry); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	// Atomic replace
	return os.Rename(f.Name(), p)
}

// Has reports whether key was stored by a cache with the current schema.
func (c *ResultCache) Has(key Digest) (bool, error) {
	if c == nil {
		return false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.pathFor(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	defer f.Close()

	var entry cacheEntry
	if err := msgpack.NewDecoder(f).Decode(&entry); err != nil {
		return false, err
	}
	return entry.Schema == resultCacheSchema, nil
}

// DropAll removes every entry.
func (c *ResultCache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	old := filepath.Join(c.dir, "results.old-"+time.Now().Format("20060102150405"))
	if err := os.Rename(filepath.Join(c.dir, "results"), old); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	return os.RemoveAll(old)
}

// cacheKey hashes content together with everything that influences the
// output: every named option, file metadata and the active rule names.
func cacheKey(content []byte, opts config.Options, rs []*rules.Rule) Digest {
	h := sha256.New()
	_, _ = h.Write([]byte{byte(resultCacheSchema >> 8), byte(resultCacheSchema)})
	for _, d := range config.Descriptors() {
		_, _ = h.Write([]byte(d.Name + "=" + d.Get(&opts) + "\x00"))
	}
	fi := opts.FileInfo
	_, _ = h.Write([]byte(fi.FilePath + "\x00" + fi.Author + "\x00" + fi.Email + "\x00" + fi.Created.UTC().Format(time.RFC3339) + "\x00"))
	for _, name := range rules.Names(rs) {
		_, _ = h.Write([]byte(name + "\x00"))
	}
	_, _ = h.Write(content)
	var out Digest
	copy(out[:], h.Sum(nil))
	return out
}
