package components

import (
	"bytes"
	"html"
	"strconv"
	"strings"

	"github.com/microcosm-cc/bluemonday"

	"github.com/goliatone/go-formbuilder/pkg/fields"
)

// headingPolicy strips markup from heading text and escapes the remainder.
var headingPolicy = bluemonday.StrictPolicy()

// NewDefaultRegistry returns a registry with a component for every built-in
// preview control.
func NewDefaultRegistry() *Registry {
	registry := New()
	registry.MustRegister(NameInput, Descriptor{Renderer: inputRenderer, LabelFor: true})
	registry.MustRegister(NameTextarea, Descriptor{Renderer: textareaRenderer, LabelFor: true})
	registry.MustRegister(NameToggle, Descriptor{Renderer: toggleRenderer, LabelFor: true})
	registry.MustRegister(NameSelect, Descriptor{Renderer: selectRenderer, LabelFor: true})
	registry.MustRegister(NameRadio, Descriptor{Renderer: radioRenderer})
	registry.MustRegister(NameRange, Descriptor{Renderer: rangeRenderer, LabelFor: true})
	registry.MustRegister(NameFile, Descriptor{Renderer: fileRenderer, LabelFor: true})
	registry.MustRegister(NameRatings, Descriptor{Renderer: ratingsRenderer, LabelFor: true})
	registry.MustRegister(NameHeading, Descriptor{Renderer: headingRenderer, HandlesChrome: true})
	registry.MustRegister(NameDivider, Descriptor{Renderer: dividerRenderer, HandlesChrome: true})
	registry.MustRegister(NameSpacer, Descriptor{Renderer: spacerRenderer, HandlesChrome: true})
	return registry
}

type attrs struct {
	b *strings.Builder
}

func (a attrs) set(name, value string) {
	a.b.WriteString(" ")
	a.b.WriteString(name)
	a.b.WriteString(`="`)
	a.b.WriteString(html.EscapeString(value))
	a.b.WriteString(`"`)
}

func (a attrs) setIf(name, value string) {
	if value != "" {
		a.set(name, value)
	}
}

func (a attrs) flag(name string, on bool) {
	if on {
		a.b.WriteString(" ")
		a.b.WriteString(name)
	}
}

func writeCommon(a attrs, field Field) {
	a.setIf("id", field.ID)
	a.setIf("name", field.Key)
	a.flag("required", field.Descriptor.Required)
	if field.Invalid {
		a.set("aria-invalid", "true")
	}
}

func inputRenderer(buf *bytes.Buffer, field Field) error {
	var builder strings.Builder
	a := attrs{&builder}
	inputType := field.Spec.InputType
	if inputType == "" {
		inputType = "text"
	}
	builder.WriteString(`<input`)
	a.set("type", inputType)
	writeCommon(a, field)
	a.setIf("value", field.Value)
	a.setIf("placeholder", field.Descriptor.Placeholder)
	builder.WriteString(`>`)
	buf.WriteString(builder.String())
	return nil
}

func textareaRenderer(buf *bytes.Buffer, field Field) error {
	var builder strings.Builder
	a := attrs{&builder}
	builder.WriteString(`<textarea`)
	writeCommon(a, field)
	a.set("rows", "4")
	a.setIf("placeholder", field.Descriptor.Placeholder)
	builder.WriteString(`>`)
	builder.WriteString(html.EscapeString(field.Value))
	builder.WriteString(`</textarea>`)
	buf.WriteString(builder.String())
	return nil
}

func toggleRenderer(buf *bytes.Buffer, field Field) error {
	var builder strings.Builder
	a := attrs{&builder}
	builder.WriteString(`<input`)
	a.set("type", "checkbox")
	writeCommon(a, field)
	a.set("value", "true")
	a.flag("checked", field.Value == "true")
	builder.WriteString(`>`)
	buf.WriteString(builder.String())
	return nil
}

func selectRenderer(buf *bytes.Buffer, field Field) error {
	var builder strings.Builder
	a := attrs{&builder}
	builder.WriteString(`<select`)
	writeCommon(a, field)
	builder.WriteString(`>`)
	for _, option := range fields.ParseOptions(field.Descriptor.Options) {
		builder.WriteString(`<option`)
		a.set("value", option.Value)
		a.flag("selected", option.Value == field.Value)
		builder.WriteString(`>`)
		builder.WriteString(html.EscapeString(option.Label))
		builder.WriteString(`</option>`)
	}
	builder.WriteString(`</select>`)
	buf.WriteString(builder.String())
	return nil
}

func radioRenderer(buf *bytes.Buffer, field Field) error {
	var builder strings.Builder
	a := attrs{&builder}
	builder.WriteString(`<div class="fg-radio-group"`)
	a.setIf("id", field.ID)
	a.set("role", "radiogroup")
	builder.WriteString(`>`)
	for idx, option := range fields.ParseOptions(field.Descriptor.Options) {
		optionID := field.ID + "-" + strconv.Itoa(idx+1)
		builder.WriteString(`<label class="fg-radio"`)
		a.set("for", optionID)
		builder.WriteString(`><input`)
		a.set("type", "radio")
		a.set("id", optionID)
		a.setIf("name", field.Key)
		a.set("value", option.Value)
		a.flag("required", field.Descriptor.Required)
		a.flag("checked", option.Value == field.Value)
		builder.WriteString(`> `)
		builder.WriteString(html.EscapeString(option.Label))
		builder.WriteString(`</label>`)
	}
	builder.WriteString(`</div>`)
	buf.WriteString(builder.String())
	return nil
}

func rangeRenderer(buf *bytes.Buffer, field Field) error {
	var builder strings.Builder
	a := attrs{&builder}
	builder.WriteString(`<input`)
	a.set("type", "range")
	writeCommon(a, field)
	a.set("min", field.Spec.Min(field.Descriptor))
	a.set("max", field.Spec.Max(field.Descriptor))
	a.setIf("value", field.Value)
	builder.WriteString(`>`)
	buf.WriteString(builder.String())
	return nil
}

func fileRenderer(buf *bytes.Buffer, field Field) error {
	var builder strings.Builder
	a := attrs{&builder}
	builder.WriteString(`<input`)
	a.set("type", "file")
	writeCommon(a, field)
	a.setIf("placeholder", field.Descriptor.Placeholder)
	builder.WriteString(`>`)
	buf.WriteString(builder.String())
	return nil
}

func ratingsRenderer(buf *bytes.Buffer, field Field) error {
	var builder strings.Builder
	a := attrs{&builder}
	builder.WriteString(`<input`)
	a.set("type", "number")
	writeCommon(a, field)
	a.setIf("min", field.Spec.Min(field.Descriptor))
	a.set("max", field.Spec.Max(field.Descriptor))
	a.set("step", "1")
	a.setIf("value", field.Value)
	builder.WriteString(`>`)
	buf.WriteString(builder.String())
	return nil
}

func headingRenderer(buf *bytes.Buffer, field Field) error {
	buf.WriteString(`<h2 class="fg-heading">`)
	buf.WriteString(headingPolicy.Sanitize(field.Descriptor.Label))
	buf.WriteString(`</h2>`)
	return nil
}

func dividerRenderer(buf *bytes.Buffer, _ Field) error {
	buf.WriteString(`<hr class="fg-divider">`)
	return nil
}

func spacerRenderer(buf *bytes.Buffer, _ Field) error {
	buf.WriteString(`<div class="fg-spacer" aria-hidden="true"></div>`)
	return nil
}
