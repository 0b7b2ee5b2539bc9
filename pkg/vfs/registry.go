package vfs

import (
	"fmt"
	"sync"
)

// Constructor builds a layer instance wrapping next, configured from the
// layer's decoded configuration section.
type Constructor func(next Layer, options map[string]any) (Layer, error)

// Registry manages named layer constructors and composes chains from them.
// It provides thread-safe registration and lookup.
//
// Layers register a constructor under a fixed name; hosts then build a chain
// from an ordered name list. The first name in the list becomes the outermost
// layer, mirroring how operations flow through the chain.
//
// Example usage:
//
//	reg := vfs.NewRegistry()
//	reg.Register("rdirect", rdirect.New)
//
//	chain, _ := reg.Build([]string{"rdirect"}, vfs.NewPassthrough(), options)
//	handle, _ := chain.OpenAt(ctx, nil, "data.bin", os.O_RDONLY, 0644)
type Registry struct {
	mu           sync.RWMutex
	constructors map[string]Constructor
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		constructors: make(map[string]Constructor),
	}
}

// Register adds a named layer constructor to the registry.
// Returns an error if a constructor with the same name already exists.
func (r *Registry) Register(name string, ctor Constructor) error {
	if ctor == nil {
		return fmt.Errorf("cannot register nil constructor")
	}
	if name == "" {
		return fmt.Errorf("cannot register layer with empty name")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.constructors[name]; exists {
		return fmt.Errorf("layer %q already registered", name)
	}

	r.constructors[name] = ctor
	return nil
}

// Lookup retrieves a layer constructor by name.
// Returns nil, error if the layer doesn't exist.
func (r *Registry) Lookup(name string) (Constructor, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ctor, exists := r.constructors[name]
	if !exists {
		return nil, fmt.Errorf("layer %q: %w", name, ErrLayerNotFound)
	}
	return ctor, nil
}

// Build composes a chain from the ordered name list over the given terminal
// layer. Names are applied back-to-front so that names[0] ends up outermost.
// The options map provides each layer's configuration section, keyed by layer
// name; layers with no section receive nil.
//
// Returns an error if terminal is nil or any name is unregistered.
func (r *Registry) Build(names []string, terminal Layer, options map[string]map[string]any) (Layer, error) {
	if terminal == nil {
		return nil, fmt.Errorf("cannot build chain without a terminal layer")
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	chain := terminal
	for i := len(names) - 1; i >= 0; i-- {
		name := names[i]
		ctor, exists := r.constructors[name]
		if !exists {
			return nil, fmt.Errorf("layer %q: %w", name, ErrLayerNotFound)
		}

		layer, err := ctor(chain, options[name])
		if err != nil {
			return nil, fmt.Errorf("build layer %q: %w", name, err)
		}
		chain = layer
	}

	return chain, nil
}

// ListLayers returns all registered layer names.
// The returned slice is a copy and safe to modify.
func (r *Registry) ListLayers() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.constructors))
	for name := range r.constructors {
		names = append(names, name)
	}
	return names
}
