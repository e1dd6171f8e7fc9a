package fields

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/goliatone/go-formbuilder/pkg/model"
)

var (
	// ErrUnknownType is returned for field types without a registry entry.
	ErrUnknownType = errors.New("fields: unknown field type")
	// ErrDuplicateType is returned when a type is registered twice.
	ErrDuplicateType = errors.New("fields: field type already registered")
)

// Registry maps field types to their specs. Lookups are safe for concurrent
// use; the default registry is built once and never mutated afterwards.
type Registry struct {
	mu    sync.RWMutex
	specs map[model.FieldType]Spec
	order []model.FieldType
}

// NewRegistry constructs an empty registry.
func NewRegistry() *Registry {
	return &Registry{specs: make(map[model.FieldType]Spec)}
}

var (
	defaultOnce     sync.Once
	defaultRegistry *Registry
)

// Default returns the registry holding every built-in field type, in add-field
// menu order.
func Default() *Registry {
	defaultOnce.Do(func() {
		reg := NewRegistry()
		for _, spec := range builtinSpecs() {
			if err := reg.Register(spec); err != nil {
				panic(err)
			}
		}
		defaultRegistry = reg
	})
	return defaultRegistry
}

// Register adds spec to the registry. Types are unique; a second
// registration for the same type fails.
func (r *Registry) Register(spec Spec) error {
	if r == nil {
		return errors.New("fields: registry is nil")
	}
	if strings.TrimSpace(string(spec.Type)) == "" {
		return errors.New("fields: spec type is required")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.specs[spec.Type]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateType, spec.Type)
	}
	r.specs[spec.Type] = spec
	r.order = append(r.order, spec.Type)
	return nil
}

// Lookup returns the spec registered for fieldType.
func (r *Registry) Lookup(fieldType model.FieldType) (Spec, bool) {
	if r == nil {
		return Spec{}, false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	spec, ok := r.specs[fieldType]
	return spec, ok
}

// MustLookup is Lookup for callers that already validated the type.
func (r *Registry) MustLookup(fieldType model.FieldType) Spec {
	spec, ok := r.Lookup(fieldType)
	if !ok {
		panic(fmt.Errorf("%w: %s", ErrUnknownType, fieldType))
	}
	return spec
}

// Types returns the registered types in registration order.
func (r *Registry) Types() []model.FieldType {
	if r == nil {
		return nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]model.FieldType(nil), r.order...)
}

// Parse resolves raw to a registered type, ignoring case.
func (r *Registry) Parse(raw string) (model.FieldType, error) {
	fieldType, ok := model.ParseFieldType(raw)
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownType, raw)
	}
	if _, ok := r.Lookup(fieldType); !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownType, raw)
	}
	return fieldType, nil
}

// NewDescriptor returns a descriptor with the defaults a freshly added field
// carries: label "New <Type> Field", full size, not required, empty strings.
func (r *Registry) NewDescriptor(fieldType model.FieldType) (model.FieldDescriptor, error) {
	if _, ok := r.Lookup(fieldType); !ok {
		return model.FieldDescriptor{}, fmt.Errorf("%w: %s", ErrUnknownType, fieldType)
	}
	return model.FieldDescriptor{
		Type:  fieldType,
		Label: "New " + string(fieldType) + " Field",
		Size:  model.SizeFull,
	}, nil
}

// Normalize checks a descriptor loaded from outside the editor. Empty sizes
// become full; unknown types and sizes are rejected.
func (r *Registry) Normalize(field model.FieldDescriptor) (model.FieldDescriptor, error) {
	fieldType, err := r.Parse(string(field.Type))
	if err != nil {
		return field, err
	}
	field.Type = fieldType
	if field.Size == "" {
		field.Size = model.SizeFull
	}
	if !field.Size.Valid() {
		return field, fmt.Errorf("fields: invalid size %q for %q", field.Size, field.Label)
	}
	return field, nil
}

// Option is one parsed choice of a Select or Radio field.
type Option struct {
	Value string
	Label string
}

// ParseOptions splits a comma separated options string. Entries are trimmed
// and empty entries dropped; each value equals its label.
func ParseOptions(raw string) []Option {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]Option, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed == "" {
			continue
		}
		out = append(out, Option{Value: trimmed, Label: trimmed})
	}
	return out
}

// OptionValues returns the values of ParseOptions(raw).
func OptionValues(raw string) []string {
	options := ParseOptions(raw)
	values := make([]string, len(options))
	for idx, option := range options {
		values[idx] = option.Value
	}
	return values
}
