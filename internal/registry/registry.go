// Package registry provides a global registry for level packs.
// Packs register themselves in init() functions, allowing the platform
// to discover and load packs without hardcoded dependencies.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/vexed/internal/games/vexed/core"
)

// Pack is a playable, ordered collection of levels.
type Pack interface {
	core.LevelSource

	// ID returns a unique identifier for this pack (e.g., "classic").
	// Used for CLI flags, API routes and progress storage.
	ID() string

	// Title returns a human-readable name for display.
	Title() string
}

// PackInfo contains metadata about a registered pack.
type PackInfo struct {
	ID    string
	Title string
}

// Factory loads a pack. It may read files, so it can fail.
type Factory func() (Pack, error)

var (
	factories = make(map[string]Factory)
	titles    = make(map[string]string)
	mu        sync.RWMutex
)

// Register adds a pack factory to the registry.
// Typically called from a pack's init() function.
// Panics if a pack with the same ID is already registered.
func Register(id, title string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[id]; exists {
		panic(fmt.Sprintf("registry: pack %q already registered", id))
	}

	factories[id] = f
	titles[id] = title
}

// Replace registers f under id, overwriting any existing factory.
// Used for packs chosen at runtime such as a --levels directory.
func Replace(id, title string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	factories[id] = f
	titles[id] = title
}

// List returns information about all registered packs, sorted by ID.
func List() []PackInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]PackInfo, 0, len(factories))
	for id := range factories {
		result = append(result, PackInfo{
			ID:    id,
			Title: titles[id],
		})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}

// Create loads a pack by its ID.
// Returns an error if the pack ID is not registered or fails to load.
func Create(id string) (Pack, error) {
	mu.RLock()
	f, ok := factories[id]
	mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("registry: unknown pack %q", id)
	}

	p, err := f()
	if err != nil {
		return nil, fmt.Errorf("registry: cannot load pack %q: %w", id, err)
	}
	return p, nil
}

// Exists checks if a pack with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[id]
	return ok
}
