// Package assets resolves, loads and caches KV6 models.
package assets

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/Faultbox/kv6view/pkg/formats"
)

// ErrModelNotFound is returned when a model path matches no file.
var ErrModelNotFound = errors.New("model not found")

// Built-in light marker: a small yellow ball.
const (
	markerRadius = 2
	markerKey    = "builtin:light"
)

var markerColor = formats.KV6Color{B: 0, G: 220, R: 255, A: 128}

// Manager loads KV6 models from the file system.
// Relative paths are tried as given, then under each search dir in order.
type Manager struct {
	searchDirs []string
	cache      *Cache
	mu         sync.Mutex
}

// NewManager creates a new asset manager.
func NewManager(searchDirs ...string) *Manager {
	return &Manager{
		searchDirs: searchDirs,
		cache:      NewCache(),
	}
}

// Resolve returns the first existing file for path.
func (m *Manager) Resolve(path string) (string, error) {
	candidates := []string{path}
	if !filepath.IsAbs(path) {
		for _, dir := range m.searchDirs {
			candidates = append(candidates, filepath.Join(dir, path))
		}
	}

	for _, c := range candidates {
		info, err := os.Stat(c)
		if err == nil && !info.IsDir() {
			return c, nil
		}
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return "", err
		}
	}
	return "", fmt.Errorf("%w: %s", ErrModelNotFound, path)
}

// LoadKV6 resolves, decodes and validates a model. Results are cached by
// resolved path.
func (m *Manager) LoadKV6(path string) (*formats.KV6, error) {
	resolved, err := m.Resolve(path)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if model, ok := m.cache.Get(resolved); ok {
		return model, nil
	}

	model, err := formats.ParseKV6File(resolved)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", resolved, err)
	}
	if err := model.Validate(); err != nil {
		return nil, fmt.Errorf("loading %s: %w", resolved, err)
	}

	m.cache.Set(resolved, model)
	return model, nil
}

// LightMarker loads the light marker model from path, or returns the
// built-in marker when path is empty.
func (m *Manager) LightMarker(path string) (*formats.KV6, error) {
	if path != "" {
		return m.LoadKV6(path)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if model, ok := m.cache.Get(markerKey); ok {
		return model, nil
	}
	size := 2*markerRadius + 1
	model := formats.BuildKV6(size, size, size, formats.Sphere(markerRadius, markerColor))
	m.cache.Set(markerKey, model)
	return model, nil
}

// Close drops all cached models.
func (m *Manager) Close() {
	m.cache.Clear()
}

// Cache is a simple in-memory cache for decoded models.
type Cache struct {
	data map[string]*formats.KV6
	mu   sync.Mutex

	// Stats
	hits   int
	misses int
}

// NewCache creates a new cache.
func NewCache() *Cache {
	return &Cache{
		data: make(map[string]*formats.KV6),
	}
}

// Get retrieves an item from cache.
func (c *Cache) Get(key string) (*formats.KV6, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	model, ok := c.data[key]
	if ok {
		c.hits++
	} else {
		c.misses++
	}
	return model, ok
}

// Set stores an item in cache.
func (c *Cache) Set(key string, model *formats.KV6) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = model
}

// Clear clears the cache.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data = make(map[string]*formats.KV6)
	c.hits = 0
	c.misses = 0
}

// Stats returns cache statistics.
func (c *Cache) Stats() (hits, misses int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hits, c.misses
}
