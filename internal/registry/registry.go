// Package registry provides a global registry of playable levels.
// Levels register themselves in init() functions, allowing the platform
// to discover and load them without hardcoded dependencies.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/memory-lane/internal/level"
)

// Factory builds a fresh copy of a level.
type Factory func() (*level.Geometry, error)

// LevelInfo contains metadata about a registered level.
type LevelInfo struct {
	ID    string
	Title string
}

var (
	factories = make(map[string]Factory)
	titles    = make(map[string]string)
	mu        sync.RWMutex
)

// Register adds a level factory to the registry.
// Panics if a level with the same ID is already registered or the factory
// cannot build its level.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[id]; exists {
		panic(fmt.Sprintf("registry: level %q already registered", id))
	}

	g, err := f()
	if err != nil {
		panic(fmt.Sprintf("registry: level %q: %v", id, err))
	}

	factories[id] = f
	titles[id] = g.Name
}

// List returns information about all registered levels, sorted by ID.
func List() []LevelInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]LevelInfo, 0, len(factories))
	for id := range factories {
		result = append(result, LevelInfo{
			ID:    id,
			Title: titles[id],
		})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})
	return result
}

// Create builds a registered level by its ID.
func Create(id string) (*level.Geometry, error) {
	mu.RLock()
	f, ok := factories[id]
	mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("registry: unknown level %q", id)
	}
	return f()
}

// Exists checks if a level with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[id]
	return ok
}

// Resolve loads a level either from a registered ID or, when ref looks like
// a file path, from a YAML file.
func Resolve(ref string) (*level.Geometry, error) {
	if Exists(ref) {
		return Create(ref)
	}
	if level.LooksLikePath(ref) {
		return level.LoadFile(ref)
	}
	return nil, fmt.Errorf("registry: unknown level %q", ref)
}
