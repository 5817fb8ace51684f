package chrome

import (
	"fmt"
	"sort"
	"sync"
)

// Registry stores chromes by name, providing discovery and duplication
// safeguards.
type Registry struct {
	mu      sync.RWMutex
	chromes map[string]Chrome
}

// NewRegistry creates an empty registry instance.
func NewRegistry() *Registry {
	return &Registry{
		chromes: make(map[string]Chrome),
	}
}

// Register adds a chrome by its Name(). Duplicate names return an error.
func (r *Registry) Register(chrome Chrome) error {
	if chrome == nil {
		return fmt.Errorf("chrome: chrome is required")
	}
	name := chrome.Name()
	if name == "" {
		return fmt.Errorf("chrome: chrome name is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.chromes[name]; exists {
		return fmt.Errorf("chrome: chrome %q already registered", name)
	}

	r.chromes[name] = chrome
	return nil
}

// MustRegister panics on registration failure. Useful for init-time wiring.
func (r *Registry) MustRegister(chrome Chrome) {
	if err := r.Register(chrome); err != nil {
		panic(err)
	}
}

// Get retrieves a chrome by name.
func (r *Registry) Get(name string) (Chrome, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	chrome, ok := r.chromes[name]
	if !ok {
		return nil, fmt.Errorf("chrome: chrome %q not found", name)
	}
	return chrome, nil
}

// List returns a sorted list of chrome names.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.chromes))
	for name := range r.chromes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Has reports whether a chrome is registered.
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.chromes[name]
	return ok
}

// DefaultRegistry wires the embedded chromes.
func DefaultRegistry() (*Registry, error) {
	registry := NewRegistry()
	for name, file := range map[string]string{
		"standard": "standard",
		"premium":  "premium",
	} {
		c, err := New(name, file)
		if err != nil {
			return nil, err
		}
		if err := registry.Register(c); err != nil {
			return nil, err
		}
	}
	return registry, nil
}
