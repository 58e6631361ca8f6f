package config

import (
	"fmt"
	"sync"
)

// Registry maps stage names to stage targets (pipeline.Stage functions or
// pipeline.Component values). Safe for concurrent use.
type Registry struct {
	mu     sync.RWMutex
	stages map[string]any
}

// NewRegistry returns an empty stage registry.
func NewRegistry() *Registry {
	return &Registry{stages: make(map[string]any)}
}

// Register adds a stage target under the given name. Overwrites any existing
// registration.
func (r *Registry) Register(name string, target any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.stages == nil {
		r.stages = make(map[string]any)
	}
	r.stages[name] = target
}

// Get returns the target for name, or nil and false if not found.
func (r *Registry) Get(name string) (any, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.stages[name]
	return t, ok
}

// MustGet returns the target for name, or panics if not found.
func (r *Registry) MustGet(name string) any {
	t, ok := r.Get(name)
	if !ok {
		panic(fmt.Sprintf("config: stage %q not registered", name))
	}
	return t
}

// Names returns all registered stage names (unordered).
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.stages))
	for n := range r.stages {
		names = append(names, n)
	}
	return names
}
