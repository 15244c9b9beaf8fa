package tools

import (
	"fmt"
	"strings"
	"sync"
)

// Registry maps tool names to specs. It is filled once at startup and read
// concurrently afterwards.
type Registry struct {
	specs []Spec
	index map[string]int
	mtx   sync.RWMutex
}

// NewRegistry returns a Registry holding specs, failing on the first
// invalid or duplicate one.
func NewRegistry(specs ...Spec) (*Registry, error) {
	r := &Registry{
		specs: make([]Spec, 0, len(specs)),
		index: make(map[string]int, len(specs)),
	}
	for _, spec := range specs {
		if err := r.Register(spec); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Register adds a spec. Names are unique.
func (r *Registry) Register(spec Spec) error {
	if err := spec.Validate(); err != nil {
		return err
	}
	r.mtx.Lock()
	defer r.mtx.Unlock()
	if _, exists := r.index[spec.Name]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicate, spec.Name)
	}
	r.index[spec.Name] = len(r.specs)
	r.specs = append(r.specs, spec)
	return nil
}

// RegisterTool adds a Tool implementation
func (r *Registry) RegisterTool(t Tool) error {
	return r.Register(SpecOf(t))
}

// Resolve returns the spec registered under name, or ErrNotFound
func (r *Registry) Resolve(name string) (Spec, error) {
	r.mtx.RLock()
	defer r.mtx.RUnlock()
	idx, ok := r.index[name]
	if !ok {
		return Spec{}, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	return r.specs[idx], nil
}

// List returns the specs in registration order
func (r *Registry) List() []Spec {
	r.mtx.RLock()
	defer r.mtx.RUnlock()
	list := make([]Spec, len(r.specs))
	copy(list, r.specs)
	return list
}

// Names returns the tool names in registration order
func (r *Registry) Names() []string {
	r.mtx.RLock()
	defer r.mtx.RUnlock()
	names := make([]string, 0, len(r.specs))
	for _, spec := range r.specs {
		names = append(names, spec.Name)
	}
	return names
}

// Len returns the number of registered tools
func (r *Registry) Len() int {
	r.mtx.RLock()
	defer r.mtx.RUnlock()
	return len(r.specs)
}

// Title implements systemprompt.ContextProvider
func (r *Registry) Title() string {
	return "Available tools"
}

// Info implements systemprompt.ContextProvider, one line per tool
func (r *Registry) Info() string {
	specs := r.List()
	lines := make([]string, 0, len(specs))
	for _, spec := range specs {
		lines = append(lines, fmt.Sprintf("- %s: %s", spec.Name, spec.Description))
	}
	return strings.Join(lines, "\n")
}
