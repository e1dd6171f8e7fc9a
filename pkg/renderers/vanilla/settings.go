package vanilla

import (
	"context"
	"fmt"

	"github.com/goliatone/go-formbuilder/pkg/draft"
	"github.com/goliatone/go-formbuilder/pkg/fields"
	"github.com/goliatone/go-formbuilder/pkg/model"
	rendertemplate "github.com/goliatone/go-formbuilder/pkg/render/template"
)

// SettingsRenderer renders the configuration panel of the selected draft
// field: one input per registry setting plus Remove and Close actions.
type SettingsRenderer struct {
	templates rendertemplate.TemplateRenderer
	fields    *fields.Registry
}

// NewSettings constructs the settings panel renderer.
func NewSettings(options ...Option) (*SettingsRenderer, error) {
	cfg, templates, err := newConfig(options)
	if err != nil {
		return nil, err
	}
	if !templates.Has(settingsTemplate) {
		return nil, fmt.Errorf("vanilla settings: template bundle lacks %s", settingsTemplate)
	}
	return &SettingsRenderer{templates: templates, fields: cfg.fields}, nil
}

func (r *SettingsRenderer) ContentType() string {
	return "text/html; charset=utf-8"
}

// Render renders the panel for the snapshot's selected field. Nothing
// selected renders nothing.
func (r *SettingsRenderer) Render(ctx context.Context, snapshot draft.Snapshot, action string) ([]byte, error) {
	if snapshot.SelectedID == "" {
		return nil, nil
	}
	for _, field := range snapshot.Fields {
		if field.ID == snapshot.SelectedID {
			return r.RenderField(ctx, field, action)
		}
	}
	return nil, nil
}

// RenderField renders the panel for field.
func (r *SettingsRenderer) RenderField(_ context.Context, field draft.Field, action string) ([]byte, error) {
	spec, ok := r.fields.Lookup(field.Type)
	if !ok {
		return nil, fmt.Errorf("vanilla settings: %w: %s", fields.ErrUnknownType, field.Type)
	}

	settings := fields.PanelSettings(spec)
	rows := make([]map[string]any, 0, len(settings))
	for _, setting := range settings {
		value := fields.Value(field.FieldDescriptor, setting.Key)
		if value == "" {
			value = setting.Default
		}
		row := map[string]any{
			"key":     string(setting.Key),
			"label":   setting.Label,
			"input":   string(setting.Input),
			"value":   value,
			"checked": value == "true",
		}
		if setting.Key == fields.SettingSize {
			row["options"] = sizeOptions(model.Size(value))
		}
		rows = append(rows, row)
	}

	result, err := r.templates.RenderTemplate(settingsTemplate, map[string]any{
		"fieldId":   field.ID,
		"fieldType": string(field.Type),
		"action":    action,
		"settings":  rows,
		"classes":   chromeClasses(),
	})
	if err != nil {
		return nil, fmt.Errorf("vanilla settings: render template: %w", err)
	}
	return []byte(result), nil
}

func sizeOptions(selected model.Size) []map[string]any {
	sizes := model.Sizes()
	out := make([]map[string]any, 0, len(sizes))
	for _, size := range sizes {
		out = append(out, map[string]any{
			"value":    string(size),
			"label":    fields.SizeLabel(size),
			"selected": size == selected,
		})
	}
	return out
}
