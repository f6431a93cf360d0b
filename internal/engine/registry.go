package engine

import (
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/battlefield/internal/loop"
)

// RendererInfo describes a registered renderer type.
type RendererInfo struct {
	Name  string
	Title string
}

// RendererFactory creates a renderer whose asset-loading callbacks are
// posted through post.
type RendererFactory func(post loop.Poster) Renderer

var (
	factories = make(map[string]RendererFactory)
	titles    = make(map[string]string)
	mu        sync.RWMutex
)

// RegisterRenderer adds a renderer factory. Typically called from init().
// Panics if the name is already taken.
func RegisterRenderer(name, title string, f RendererFactory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[name]; exists {
		panic(fmt.Sprintf("engine: renderer %q already registered", name))
	}
	factories[name] = f
	titles[name] = title
}

// Renderers returns all registered renderer types, sorted by name.
func Renderers() []RendererInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]RendererInfo, 0, len(factories))
	for name := range factories {
		result = append(result, RendererInfo{Name: name, Title: titles[name]})
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Name < result[j].Name
	})
	return result
}

// NewRenderer instantiates a registered renderer by name.
func NewRenderer(name string, post loop.Poster) (Renderer, error) {
	mu.RLock()
	f, ok := factories[name]
	mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("engine: unknown renderer %q", name)
	}
	return f(post), nil
}

// RendererExists reports whether a renderer with the given name is registered.
func RendererExists(name string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[name]
	return ok
}
