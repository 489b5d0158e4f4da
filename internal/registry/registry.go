package registry

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"slices"
	"sync"

	"github.com/specialistvlad/texgrid/internal/manifest"
	"github.com/specialistvlad/texgrid/internal/node"
)

// Module is the interface that all compiled-in node type modules must
// implement to be registered.
type Module interface {
	Register(r *Registry)
}

// Factory returns a new descriptor on every call. Descriptors handed to
// different nodes must not share properties.
type Factory func() node.Descriptor

var (
	// ErrUnknownNodeType is returned for a type name that was never registered.
	ErrUnknownNodeType = errors.New("unknown node type")

	// ErrDuplicateNodeType is returned when a type name is registered twice.
	ErrDuplicateNodeType = errors.New("node type already registered")
)

type entry struct {
	displayName string
	factory     Factory
	// source is the manifest file the type came from, empty for Go modules.
	source string
}

// Registry holds the node types known to a single application instance.
type Registry struct {
	mu      sync.RWMutex
	entries map[string]entry
	loader  *manifest.Loader
}

// New creates an empty Registry.
func New() *Registry {
	return &Registry{
		entries: make(map[string]entry),
		loader:  manifest.NewLoader(),
	}
}

// Register adds a node type. An empty display name defaults to name.
func (r *Registry) Register(name, displayName string, f Factory) error {
	return r.register(name, displayName, f, "")
}

// MustRegister is like Register but panics on error. It is meant for
// compiled-in modules, where a clash is a programming error.
func (r *Registry) MustRegister(name, displayName string, f Factory) {
	if err := r.Register(name, displayName, f); err != nil {
		panic(err)
	}
}

func (r *Registry) register(name, displayName string, f Factory, source string) error {
	if name == "" {
		return errors.New("node type name must not be empty")
	}
	if f == nil {
		return fmt.Errorf("node type %q has a nil factory", name)
	}
	if displayName == "" {
		displayName = name
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if prev, exists := r.entries[name]; exists {
		if prev.source != "" {
			return fmt.Errorf("%w: %q (first declared in %s)", ErrDuplicateNodeType, name, prev.source)
		}
		return fmt.Errorf("%w: %q", ErrDuplicateNodeType, name)
	}
	r.entries[name] = entry{displayName: displayName, factory: f, source: source}
	return nil
}

func (r *Registry) lookup(name string) (entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.entries[name]
	if !ok {
		return entry{}, fmt.Errorf("%w: %q", ErrUnknownNodeType, name)
	}
	return e, nil
}

// Create invokes the named type's factory and returns a new, unconfigured
// node declared by the result.
func (r *Registry) Create(name string, rt node.Runtime) (*node.Node, error) {
	e, err := r.lookup(name)
	if err != nil {
		return nil, err
	}
	return node.New(name, e.factory(), rt), nil
}

// Descriptor returns a fresh descriptor for the named type.
func (r *Registry) Descriptor(name string) (node.Descriptor, error) {
	e, err := r.lookup(name)
	if err != nil {
		return node.Descriptor{}, err
	}
	return e.factory(), nil
}

// Build creates a node of the named type and initializes it. A node that
// fails to initialize is disposed and not returned.
func (r *Registry) Build(ctx context.Context, name string, rt node.Runtime) (*node.Node, error) {
	n, err := r.Create(name, rt)
	if err != nil {
		return nil, err
	}
	if err := n.Initialize(ctx); err != nil {
		n.Dispose()
		return nil, err
	}
	return n, nil
}

// Names returns the registered type names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Sorted(maps.Keys(r.entries))
}

// DisplayName returns the human-readable name of a type.
func (r *Registry) DisplayName(name string) (string, bool) {
	e, err := r.lookup(name)
	if err != nil {
		return "", false
	}
	return e.displayName, true
}

// Source returns the manifest file a type was loaded from, or "" for types
// registered from Go.
func (r *Registry) Source(name string) string {
	e, _ := r.lookup(name)
	return e.source
}
