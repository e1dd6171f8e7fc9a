package components

import (
	"bytes"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/goliatone/go-formbuilder/pkg/fields"
	"github.com/goliatone/go-formbuilder/pkg/model"
)

// Field is what a component renderer receives: the descriptor, its registry
// spec, and the resolved naming and value for this render.
type Field struct {
	Descriptor model.FieldDescriptor
	Spec       fields.Spec
	// Key is the submission payload key; it doubles as the input name.
	Key string
	// ID is the DOM id of the control.
	ID string
	// Value is the pre-populated value: the request value when present,
	// the descriptor default otherwise.
	Value   string
	Invalid bool
}

// Renderer writes the control markup for one field into buf.
type Renderer func(buf *bytes.Buffer, field Field) error

// Descriptor bundles a renderer with how the surrounding chrome treats it.
type Descriptor struct {
	Name     string
	Renderer Renderer
	// HandlesChrome marks components that render their own wrapper content
	// (headings, dividers) and need no label or error list.
	HandlesChrome bool
	// LabelFor reports whether the label can point at a single control id.
	LabelFor bool
}

// Registry tracks component descriptors keyed by preview control. Callers
// can register new controls or override defaults.
type Registry struct {
	mu         sync.RWMutex
	components map[string]Descriptor
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{components: make(map[string]Descriptor)}
}

// Clone returns a copy of the registry for isolated overrides.
func (r *Registry) Clone() *Registry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	cloned := New()
	for name, descriptor := range r.components {
		cloned.components[name] = descriptor
	}
	return cloned
}

// Register associates a descriptor with name, replacing existing entries.
func (r *Registry) Register(name string, descriptor Descriptor) error {
	if name = normalize(name); name == "" {
		return fmt.Errorf("components: component name is required")
	}
	if descriptor.Renderer == nil {
		return fmt.Errorf("components: renderer for %q is nil", name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	descriptor.Name = name
	r.components[name] = descriptor
	return nil
}

// MustRegister is Register for init-time wiring.
func (r *Registry) MustRegister(name string, descriptor Descriptor) {
	if err := r.Register(name, descriptor); err != nil {
		panic(err)
	}
}

// Descriptor fetches a descriptor by name.
func (r *Registry) Descriptor(name string) (Descriptor, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	descriptor, ok := r.components[normalize(name)]
	return descriptor, ok
}

// Names returns the sorted component names.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.components))
	for name := range r.components {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

func normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
