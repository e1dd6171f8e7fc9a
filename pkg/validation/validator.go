// Package validation checks shopper submissions against the form they target.
// A form is compiled into an OpenAPI object schema (one property per input
// field, keyed by model.FieldKeys) that kin-openapi validates; the same
// schema is exported as an OpenAPI document for integrators.
package validation

import (
	"fmt"
	"html"
	"sort"
	"strconv"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/microcosm-cc/bluemonday"

	"github.com/goliatone/go-formbuilder/pkg/fields"
	"github.com/goliatone/go-formbuilder/pkg/model"
	"github.com/goliatone/go-formbuilder/pkg/render"
)

const (
	emailPattern = `^[^@\s]+@[^@\s]+\.[^@\s]+$`
	urlPattern   = `^[A-Za-z][A-Za-z0-9+.-]*://\S+$`
)

// Error reports a rejected submission. Fields is keyed by field key; Form
// holds messages that could not be attributed to a field.
type Error struct {
	Fields map[string][]string
	Form   []string
}

func (e *Error) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for key := range e.Fields {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys)+len(e.Form))
	for _, key := range keys {
		parts = append(parts, key+": "+strings.Join(e.Fields[key], ", "))
	}
	parts = append(parts, e.Form...)
	return "validation: " + strings.Join(parts, "; ")
}

// Option configures a Validator.
type Option func(*Validator)

// WithRegistry overrides the field registry.
func WithRegistry(registry *fields.Registry) Option {
	return func(v *Validator) {
		if registry != nil {
			v.registry = registry
		}
	}
}

// WithPolicy overrides the sanitising policy.
func WithPolicy(policy *bluemonday.Policy) Option {
	return func(v *Validator) {
		if policy != nil {
			v.policy = policy
		}
	}
}

// Validator builds submission schemas and validates submissions.
type Validator struct {
	registry *fields.Registry
	policy   *bluemonday.Policy
}

// New returns a validator backed by the default field registry and a strict
// sanitising policy that strips all markup.
func New(opts ...Option) *Validator {
	v := &Validator{registry: fields.Default(), policy: bluemonday.StrictPolicy()}
	for _, opt := range opts {
		if opt != nil {
			opt(v)
		}
	}
	return v
}

// Schema compiles the submission schema for form. Static fields and fields of
// unknown type get no property.
func (v *Validator) Schema(form model.Form) *openapi3.Schema {
	schema := openapi3.NewObjectSchema()
	keys := model.FieldKeys(form.Fields)
	for idx, field := range form.Fields {
		spec, ok := v.registry.Lookup(field.Type)
		if !ok || spec.Static {
			continue
		}
		property := propertySchema(spec, field)
		if field.Label != "" {
			property.Title = field.Label
		}
		schema.WithProperty(keys[idx], property)
		if field.Required {
			schema.Required = append(schema.Required, keys[idx])
		}
	}
	return schema
}

func propertySchema(spec fields.Spec, field model.FieldDescriptor) *openapi3.Schema {
	switch spec.Control {
	case fields.ControlToggle:
		if field.Required {
			return openapi3.NewStringSchema().WithEnum("true")
		}
		return openapi3.NewStringSchema().WithEnum("true", "false")
	case fields.ControlSelect, fields.ControlRadio:
		schema := openapi3.NewStringSchema()
		if values := fields.OptionValues(field.Options); len(values) > 0 {
			enum := make([]any, len(values))
			for i, value := range values {
				enum[i] = value
			}
			schema.WithEnum(enum...)
		}
		return schema
	case fields.ControlRange, fields.ControlRatings:
		schema := openapi3.NewFloat64Schema()
		if minValue, err := strconv.ParseFloat(spec.Min(field), 64); err == nil {
			schema.WithMin(minValue)
		}
		if maxValue, err := strconv.ParseFloat(spec.Max(field), 64); err == nil {
			schema.WithMax(maxValue)
		}
		return schema
	}

	switch spec.InputType {
	case "number":
		return openapi3.NewFloat64Schema()
	case "email":
		return openapi3.NewStringSchema().WithFormat("email").WithPattern(emailPattern)
	case "url":
		return openapi3.NewStringSchema().WithFormat("uri").WithPattern(urlPattern)
	}
	return openapi3.NewStringSchema()
}

// Validate checks data against form. Empty values count as absent, numeric
// fields are parsed before validation. The returned error is an *Error.
func (v *Validator) Validate(form model.Form, data map[string]string) error {
	schema := v.Schema(form)
	document := coerce(schema, data)

	err := schema.VisitJSON(document, openapi3.MultiErrors())
	if err == nil {
		return nil
	}

	payload := make(map[string][]string)
	for _, schemaErr := range flatten(err) {
		path := "/submissionData"
		if pointer := schemaErr.JSONPointer(); len(pointer) > 0 {
			path += "/" + strings.Join(pointer, "/")
		}
		payload[path] = append(payload[path], message(schemaErr))
	}
	for path, other := range otherErrors(err) {
		payload[path] = append(payload[path], other...)
	}

	mapping := render.MapErrorPayload(form, payload)
	return &Error{Fields: mapping.Fields, Form: mapping.Form}
}

func coerce(schema *openapi3.Schema, data map[string]string) map[string]any {
	document := make(map[string]any, len(data))
	for key, raw := range data {
		value := strings.TrimSpace(raw)
		if value == "" {
			continue
		}
		property, ok := schema.Properties[key]
		if ok && property.Value != nil && property.Value.Type.Is(openapi3.TypeNumber) {
			if number, err := strconv.ParseFloat(value, 64); err == nil {
				document[key] = number
				continue
			}
		}
		document[key] = value
	}
	return document
}

func flatten(err error) []*openapi3.SchemaError {
	var out []*openapi3.SchemaError
	switch typed := err.(type) {
	case openapi3.MultiError:
		for _, inner := range typed {
			out = append(out, flatten(inner)...)
		}
	case *openapi3.SchemaError:
		out = append(out, typed)
	}
	return out
}

func otherErrors(err error) map[string][]string {
	out := make(map[string][]string)
	var walk func(error)
	walk = func(err error) {
		switch typed := err.(type) {
		case openapi3.MultiError:
			for _, inner := range typed {
				walk(inner)
			}
		case *openapi3.SchemaError:
		default:
			out[""] = append(out[""], err.Error())
		}
	}
	walk(err)
	return out
}

func message(err *openapi3.SchemaError) string {
	schema := err.Schema
	switch err.SchemaField {
	case "required":
		return "is required"
	case "type":
		if schema != nil && schema.Type.Is(openapi3.TypeNumber) {
			return "must be a number"
		}
	case "enum":
		if schema != nil {
			values := make([]string, 0, len(schema.Enum))
			for _, value := range schema.Enum {
				values = append(values, fmt.Sprint(value))
			}
			return "must be one of: " + strings.Join(values, ", ")
		}
	case "pattern":
		if schema != nil {
			switch schema.Format {
			case "email":
				return "must be a valid email address"
			case "uri":
				return "must be a valid URL"
			}
		}
	case "minimum":
		if schema != nil && schema.Min != nil {
			return "must be at least " + strconv.FormatFloat(*schema.Min, 'f', -1, 64)
		}
	case "maximum":
		if schema != nil && schema.Max != nil {
			return "must be at most " + strconv.FormatFloat(*schema.Max, 'f', -1, 64)
		}
	}
	return err.Reason
}

// Sanitize strips markup from every value and trims surrounding whitespace.
// Entities produced by the policy are decoded so plain text is stored as
// typed.
func (v *Validator) Sanitize(data map[string]string) map[string]string {
	if data == nil {
		return map[string]string{}
	}
	out := make(map[string]string, len(data))
	for key, value := range data {
		cleanKey := strings.TrimSpace(v.policy.Sanitize(key))
		if cleanKey == "" {
			continue
		}
		out[html.UnescapeString(cleanKey)] = strings.TrimSpace(html.UnescapeString(v.policy.Sanitize(value)))
	}
	return out
}
