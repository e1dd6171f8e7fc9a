package vanilla

import (
	"bytes"
	"fmt"
	"html"
	"strings"

	"github.com/goliatone/go-formbuilder/pkg/fields"
	"github.com/goliatone/go-formbuilder/pkg/model"
	"github.com/goliatone/go-formbuilder/pkg/renderers/vanilla/components"
)

// block is one rendered field, already wrapped in its layout chrome.
type block struct {
	HTML string `json:"html"`
}

type componentRenderer struct {
	fields   *fields.Registry
	registry *components.Registry
}

func newComponentRenderer(fieldRegistry *fields.Registry, registry *components.Registry) *componentRenderer {
	if fieldRegistry == nil {
		fieldRegistry = fields.Default()
	}
	if registry == nil {
		registry = components.NewDefaultRegistry()
	}
	return &componentRenderer{fields: fieldRegistry, registry: registry}
}

// render produces the block for descriptor. Types without a registry entry
// render a notice instead of failing the whole preview.
func (r *componentRenderer) render(descriptor model.FieldDescriptor, key, value string, errs []string) (string, error) {
	spec, ok := r.fields.Lookup(descriptor.Type)
	if !ok {
		return buildUnsupportedMarkup(descriptor), nil
	}

	componentName := string(spec.Control)
	component, ok := r.registry.Descriptor(componentName)
	if !ok {
		return "", fmt.Errorf("component %q not registered for field %q", componentName, key)
	}

	field := components.Field{
		Descriptor: descriptor,
		Spec:       spec,
		Key:        key,
		ID:         controlID(key),
		Value:      value,
		Invalid:    len(errs) > 0,
	}

	var control bytes.Buffer
	if err := component.Renderer(&control, field); err != nil {
		return "", fmt.Errorf("render component %q for field %q: %w", componentName, key, err)
	}
	return buildFieldMarkup(field, component, control.String(), errs), nil
}

func buildFieldMarkup(field components.Field, component components.Descriptor, control string, errs []string) string {
	var builder strings.Builder
	builder.Grow(len(control) + 256)

	builder.WriteString(`<div class="`)
	builder.WriteString(html.EscapeString(fieldClasses(field.Descriptor)))
	builder.WriteString(`" data-field-type="`)
	builder.WriteString(html.EscapeString(string(field.Descriptor.Type)))
	builder.WriteString(`">`)

	if component.HandlesChrome {
		builder.WriteString(control)
		builder.WriteString(`</div>`)
		return builder.String()
	}

	builder.WriteString(`<label class="fg-label"`)
	if component.LabelFor && field.ID != "" {
		builder.WriteString(` for="`)
		builder.WriteString(html.EscapeString(field.ID))
		builder.WriteString(`"`)
	}
	builder.WriteString(`>`)
	builder.WriteString(html.EscapeString(LabelText(field.Descriptor, field.Spec)))
	builder.WriteString(`</label>`)
	builder.WriteString(control)

	if len(errs) > 0 {
		builder.WriteString(`<ul class="`)
		builder.WriteString(string(ClassErrors))
		builder.WriteString(`" role="alert">`)
		for _, message := range errs {
			builder.WriteString(`<li>`)
			builder.WriteString(html.EscapeString(message))
			builder.WriteString(`</li>`)
		}
		builder.WriteString(`</ul>`)
	}
	builder.WriteString(`</div>`)
	return builder.String()
}

func buildUnsupportedMarkup(descriptor model.FieldDescriptor) string {
	var builder strings.Builder
	builder.WriteString(`<div class="`)
	builder.WriteString(html.EscapeString(fieldClasses(descriptor)))
	builder.WriteString(`"><p class="fg-unsupported">Unsupported field type: `)
	builder.WriteString(html.EscapeString(string(descriptor.Type)))
	builder.WriteString(`</p></div>`)
	return builder.String()
}

// LabelText is the visible label of a field: the descriptor label, the
// rating cap for Ratings, and a " *" suffix when required.
func LabelText(descriptor model.FieldDescriptor, spec fields.Spec) string {
	label := descriptor.Label
	if spec.Control == fields.ControlRatings {
		label += " (Max rating: " + spec.Max(descriptor) + ")"
	}
	if descriptor.Required {
		label += " *"
	}
	return label
}

// SizeClass maps a layout hint to its class; empty or unknown sizes render
// full width.
func SizeClass(size model.Size) string {
	if !size.Valid() {
		size = model.SizeFull
	}
	return "fg-size-" + string(size)
}

func fieldClasses(descriptor model.FieldDescriptor) string {
	classes := []string{string(ClassField), SizeClass(descriptor.Size)}
	if extra := sanitizeClassList(descriptor.CustomClass); extra != "" {
		classes = append(classes, extra)
	}
	return strings.Join(classes, " ")
}
