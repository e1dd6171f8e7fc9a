// Package draft holds the in-progress form a merchant is editing. A Draft is
// owned by a single editing session and is not safe for concurrent use;
// Snapshot hands out copies for renderers and the save gateway.
package draft

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/goliatone/go-formbuilder/pkg/fields"
	"github.com/goliatone/go-formbuilder/pkg/model"
)

var (
	// ErrFieldNotFound is returned when an id does not match any field.
	ErrFieldNotFound = errors.New("draft: field not found")
	// ErrTypeImmutable is returned when a patch tries to change a field type.
	ErrTypeImmutable = errors.New("draft: field type cannot change")
)

// Field is a descriptor together with the identity the editor assigned when
// the field was added. The id never leaves the draft.
type Field struct {
	ID string `json:"-"`
	model.FieldDescriptor
}

// Snapshot is a read-only copy of the draft state.
type Snapshot struct {
	Name       string
	StoreID    string
	Fields     []Field
	SelectedID string
}

// Descriptors returns the snapshot fields without their draft ids.
func (s Snapshot) Descriptors() []model.FieldDescriptor {
	out := make([]model.FieldDescriptor, len(s.Fields))
	for idx, field := range s.Fields {
		out[idx] = field.FieldDescriptor
	}
	return out
}

// Form converts the snapshot into a form without an id. Used by preview.
func (s Snapshot) Form() model.Form {
	return model.Form{
		FormName: s.Name,
		StoreID:  s.StoreID,
		Fields:   s.Descriptors(),
	}
}

// Payload builds the save request for formID. Only descriptor attributes are
// included; ids and selection stay behind.
func (s Snapshot) Payload(formID string) model.SaveFormRequest {
	return model.SaveFormRequest{
		FormID:   formID,
		FormName: s.Name,
		Fields:   s.Descriptors(),
		StoreID:  s.StoreID,
	}
}

// Option configures a Draft.
type Option func(*Draft)

// WithRegistry swaps the field registry used for defaults.
func WithRegistry(reg *fields.Registry) Option {
	return func(d *Draft) {
		if reg != nil {
			d.registry = reg
		}
	}
}

// WithIDGenerator overrides field id generation, mainly for tests.
func WithIDGenerator(fn func() string) Option {
	return func(d *Draft) {
		if fn != nil {
			d.newID = fn
		}
	}
}

// Draft is the mutable form under construction.
type Draft struct {
	registry *fields.Registry
	newID    func() string

	name     string
	storeID  string
	fields   []Field
	selected string
}

// New returns an empty draft owned by storeID. The store id may be empty
// until the store-info lookup resolves it.
func New(storeID string, opts ...Option) *Draft {
	d := &Draft{
		registry: fields.Default(),
		newID:    uuid.NewString,
		storeID:  storeID,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(d)
		}
	}
	return d
}

// Name returns the form name, possibly empty.
func (d *Draft) Name() string { return d.name }

// SetName updates the form name.
func (d *Draft) SetName(name string) { d.name = name }

// StoreID returns the owning store id.
func (d *Draft) StoreID() string { return d.storeID }

// SetStoreID records the resolved owning store.
func (d *Draft) SetStoreID(storeID string) { d.storeID = strings.TrimSpace(storeID) }

// Registry exposes the registry used for new fields.
func (d *Draft) Registry() *fields.Registry { return d.registry }

// AddField appends a field of fieldType with default attributes and selects
// it.
func (d *Draft) AddField(fieldType model.FieldType) (string, error) {
	descriptor, err := d.registry.NewDescriptor(fieldType)
	if err != nil {
		return "", fmt.Errorf("draft: add field: %w", err)
	}
	return d.append(descriptor), nil
}

// AddDescriptor appends an existing descriptor, e.g. one loaded from a
// definition file. The new field is selected.
func (d *Draft) AddDescriptor(descriptor model.FieldDescriptor) (string, error) {
	normalized, err := d.registry.Normalize(descriptor)
	if err != nil {
		return "", fmt.Errorf("draft: add field: %w", err)
	}
	return d.append(normalized), nil
}

func (d *Draft) append(descriptor model.FieldDescriptor) string {
	id := d.newID()
	d.fields = append(d.fields, Field{ID: id, FieldDescriptor: descriptor})
	d.selected = id
	return id
}

// Patch lists attribute updates; nil members are left unchanged.
type Patch struct {
	Type         *model.FieldType
	Label        *string
	Size         *model.Size
	Required     *bool
	DefaultValue *string
	Placeholder  *string
	Options      *string
	Min          *string
	Max          *string
	CustomClass  *string
}

// UpdateField applies patch to the field with id in place. A patch that
// changes the type is rejected; one that repeats the current type is fine.
func (d *Draft) UpdateField(id string, patch Patch) error {
	idx := d.indexOf(id)
	if idx < 0 {
		return fmt.Errorf("%w: %s", ErrFieldNotFound, id)
	}
	field := d.fields[idx].FieldDescriptor
	if patch.Type != nil && *patch.Type != field.Type {
		return fmt.Errorf("%w: %s to %s", ErrTypeImmutable, field.Type, *patch.Type)
	}
	if patch.Size != nil && !patch.Size.Valid() {
		return fmt.Errorf("draft: invalid size %q", *patch.Size)
	}
	if patch.Label != nil {
		field.Label = *patch.Label
	}
	if patch.Size != nil {
		field.Size = *patch.Size
	}
	if patch.Required != nil {
		field.Required = *patch.Required
	}
	if patch.DefaultValue != nil {
		field.DefaultValue = *patch.DefaultValue
	}
	if patch.Placeholder != nil {
		field.Placeholder = *patch.Placeholder
	}
	if patch.Options != nil {
		field.Options = *patch.Options
	}
	if patch.Min != nil {
		field.Min = *patch.Min
	}
	if patch.Max != nil {
		field.Max = *patch.Max
	}
	if patch.CustomClass != nil {
		field.CustomClass = *patch.CustomClass
	}
	d.fields[idx].FieldDescriptor = field
	return nil
}

// ApplySetting writes one settings panel value into the field with id.
func (d *Draft) ApplySetting(id string, key fields.SettingKey, value string) error {
	idx := d.indexOf(id)
	if idx < 0 {
		return fmt.Errorf("%w: %s", ErrFieldNotFound, id)
	}
	updated, err := fields.Apply(d.fields[idx].FieldDescriptor, key, value)
	if err != nil {
		return fmt.Errorf("draft: apply %s: %w", key, err)
	}
	d.fields[idx].FieldDescriptor = updated
	return nil
}

// RemoveField deletes the field with id. The selection is cleared only when
// the removed field was the selected one.
func (d *Draft) RemoveField(id string) error {
	idx := d.indexOf(id)
	if idx < 0 {
		return fmt.Errorf("%w: %s", ErrFieldNotFound, id)
	}
	d.fields = append(d.fields[:idx], d.fields[idx+1:]...)
	if d.selected == id {
		d.selected = ""
	}
	return nil
}

// Select marks the field with id as the one being edited.
func (d *Draft) Select(id string) error {
	if d.indexOf(id) < 0 {
		return fmt.Errorf("%w: %s", ErrFieldNotFound, id)
	}
	d.selected = id
	return nil
}

// CloseSelection clears the selection.
func (d *Draft) CloseSelection() { d.selected = "" }

// SelectedID returns the selected field id or "".
func (d *Draft) SelectedID() string { return d.selected }

// Selected returns the selected field.
func (d *Draft) Selected() (Field, bool) {
	if d.selected == "" {
		return Field{}, false
	}
	return d.Field(d.selected)
}

// Field returns the field with id.
func (d *Draft) Field(id string) (Field, bool) {
	idx := d.indexOf(id)
	if idx < 0 {
		return Field{}, false
	}
	return d.fields[idx], true
}

// Fields returns a copy of the fields in display order.
func (d *Draft) Fields() []Field {
	return append([]Field(nil), d.fields...)
}

// Len reports the number of fields.
func (d *Draft) Len() int { return len(d.fields) }

// Snapshot returns a copy of the current state.
func (d *Draft) Snapshot() Snapshot {
	return Snapshot{
		Name:       d.name,
		StoreID:    d.storeID,
		Fields:     d.Fields(),
		SelectedID: d.selected,
	}
}

// Reset empties the draft. The store id is kept.
func (d *Draft) Reset() {
	d.name = ""
	d.fields = nil
	d.selected = ""
}

func (d *Draft) indexOf(id string) int {
	if id == "" {
		return -1
	}
	for idx := range d.fields {
		if d.fields[idx].ID == id {
			return idx
		}
	}
	return -1
}
