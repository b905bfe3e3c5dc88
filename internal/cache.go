package internal

import (
	"crypto/md5"
	"encoding/gob"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	tt "github.com/cfglab/condlint/internal/types"
)

const cacheFileName = "condlint_cache.gob"

// CacheEntry stores the lint results for one file, together with the file
// hash and schema fingerprint the results were computed against.
type CacheEntry struct {
	FileHash  string
	SchemaFp  string
	Issues    []tt.Issue
	CreatedAt time.Time
}

// Cache persists per-file lint results between runs. An entry is valid only
// while both the file contents and the schema are unchanged.
type Cache struct {
	dir      string
	schemaFp string
	entries  map[string]CacheEntry
	mutex    sync.Mutex
}

func NewCache(dir, schemaFingerprint string) (*Cache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}

	cache := &Cache{
		dir:      dir,
		schemaFp: schemaFingerprint,
		entries:  make(map[string]CacheEntry),
	}
	if err := cache.load(); err != nil {
		return nil, fmt.Errorf("failed to load cache: %w", err)
	}
	return cache, nil
}

func (c *Cache) load() error {
	file, err := os.Open(filepath.Join(c.dir, cacheFileName))
	if os.IsNotExist(err) {
		return nil // cache file doesn't exist yet. This is fine.
	}
	if err != nil {
		return fmt.Errorf("failed to open cache file: %w", err)
	}
	defer file.Close()

	decoder := gob.NewDecoder(file)
	if err := decoder.Decode(&c.entries); err != nil {
		return fmt.Errorf("failed to decode cache file: %w", err)
	}
	return nil
}

func (c *Cache) save() error {
	file, err := os.Create(filepath.Join(c.dir, cacheFileName))
	if err != nil {
		return fmt.Errorf("failed to create cache file: %w", err)
	}
	defer file.Close()

	encoder := gob.NewEncoder(file)
	if err := encoder.Encode(c.entries); err != nil {
		return fmt.Errorf("failed to encode cache file: %w", err)
	}
	return nil
}

// Get returns the cached issues for filename when the entry is still valid.
func (c *Cache) Get(filename string) ([]tt.Issue, bool) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	entry, exists := c.entries[filename]
	if !exists {
		return nil, false
	}
	if entry.SchemaFp != c.schemaFp {
		delete(c.entries, filename)
		return nil, false
	}
	hash, err := hashFile(filename)
	if err != nil || hash != entry.FileHash {
		delete(c.entries, filename)
		return nil, false
	}
	return entry.Issues, true
}

// Set records the issues for filename and persists the cache.
func (c *Cache) Set(filename string, issues []tt.Issue) error {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	hash, err := hashFile(filename)
	if err != nil {
		return fmt.Errorf("failed to hash file: %w", err)
	}

	c.entries[filename] = CacheEntry{
		FileHash:  hash,
		SchemaFp:  c.schemaFp,
		Issues:    issues,
		CreatedAt: time.Now(),
	}
	return c.save()
}

func hashFile(filename string) (string, error) {
	file, err := os.Open(filename)
	if err != nil {
		return "", err
	}
	defer file.Close()

	h := md5.New()
	if _, err := io.Copy(h, file); err != nil {
		return "", err
	}
	return fmt.Sprintf("%x", h.Sum(nil)), nil
}
