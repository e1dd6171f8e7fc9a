package vanilla

import (
	"context"
	"fmt"
	"io/fs"
	"os"

	"github.com/goliatone/go-formbuilder/pkg/fields"
	"github.com/goliatone/go-formbuilder/pkg/model"
	"github.com/goliatone/go-formbuilder/pkg/render"
	rendertemplate "github.com/goliatone/go-formbuilder/pkg/render/template"
	gotemplate "github.com/goliatone/go-formbuilder/pkg/render/template/gotemplate"
	"github.com/goliatone/go-formbuilder/pkg/renderers/vanilla/components"
)

const (
	// PreviewName is the registry name of the preview renderer.
	PreviewName = "preview"
	// UntitledForm is shown when a form has no name yet.
	UntitledForm = "Untitled Form"
	// DefaultSubmitLabel is the submit button text.
	DefaultSubmitLabel = "Submit"
)

// Option configures the HTML renderers.
type Option func(*config)

type config struct {
	templateFS       fs.FS
	templateRenderer rendertemplate.TemplateRenderer
	fields           *fields.Registry
	components       *components.Registry
	inlineStyles     bool
}

// WithTemplatesFS supplies an alternate template bundle via fs.FS.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templateFS = files
	}
}

// WithTemplatesDir loads templates from a directory on disk.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		if path == "" {
			return
		}
		cfg.templateFS = os.DirFS(path)
	}
}

// WithTemplateRenderer injects a custom template renderer implementation.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templateRenderer = renderer
		}
	}
}

// WithFieldRegistry swaps the field registry used to resolve controls.
func WithFieldRegistry(reg *fields.Registry) Option {
	return func(cfg *config) {
		if reg != nil {
			cfg.fields = reg
		}
	}
}

// WithComponents swaps the component registry used for controls.
func WithComponents(reg *components.Registry) Option {
	return func(cfg *config) {
		if reg != nil {
			cfg.components = reg
		}
	}
}

// WithInlineStyles toggles embedding the layout stylesheet in the output.
func WithInlineStyles(enabled bool) Option {
	return func(cfg *config) {
		cfg.inlineStyles = enabled
	}
}

func newConfig(options []Option) (config, rendertemplate.TemplateRenderer, error) {
	cfg := config{templateFS: TemplatesFS(), inlineStyles: true}
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}
	if cfg.templateFS == nil {
		cfg.templateFS = TemplatesFS()
	}
	if cfg.fields == nil {
		cfg.fields = fields.Default()
	}

	renderer := cfg.templateRenderer
	if renderer == nil {
		engine, err := gotemplate.New(
			gotemplate.WithFS(cfg.templateFS),
			gotemplate.WithExtension(".tmpl"),
		)
		if err != nil {
			return cfg, nil, fmt.Errorf("vanilla renderer: configure template renderer: %w", err)
		}
		renderer = engine
	}
	return cfg, renderer, nil
}

const (
	previewTemplate  = "templates/preview.tmpl"
	settingsTemplate = "templates/settings.tmpl"
)

// PreviewRenderer renders a form the way shoppers will see it. It is
// stateless and safe for concurrent use.
type PreviewRenderer struct {
	templates    rendertemplate.TemplateRenderer
	components   *componentRenderer
	inlineStyles bool
}

var _ render.Renderer = (*PreviewRenderer)(nil)

// NewPreview constructs the preview renderer.
func NewPreview(options ...Option) (*PreviewRenderer, error) {
	cfg, templates, err := newConfig(options)
	if err != nil {
		return nil, err
	}
	if !templates.Has(previewTemplate) {
		return nil, fmt.Errorf("vanilla renderer: template bundle lacks %s", previewTemplate)
	}
	return &PreviewRenderer{
		templates:    templates,
		components:   newComponentRenderer(cfg.fields, cfg.components),
		inlineStyles: cfg.inlineStyles,
	}, nil
}

func (r *PreviewRenderer) Name() string {
	return PreviewName
}

func (r *PreviewRenderer) ContentType() string {
	return "text/html; charset=utf-8"
}

// Render produces the preview HTML: title, one block per field in order and
// a submit button.
func (r *PreviewRenderer) Render(_ context.Context, form model.Form, options render.RenderOptions) ([]byte, error) {
	if r.templates == nil {
		return nil, fmt.Errorf("vanilla renderer: template renderer is nil")
	}

	keys := model.FieldKeys(form.Fields)
	blocks := make([]string, 0, len(form.Fields))
	for idx, descriptor := range form.Fields {
		key := keys[idx]
		value, ok := options.Values[key]
		if !ok {
			value = descriptor.DefaultValue
		}
		markup, err := r.components.render(descriptor, key, value, options.Errors[key])
		if err != nil {
			return nil, fmt.Errorf("vanilla renderer: %w", err)
		}
		blocks = append(blocks, markup)
	}

	title := form.FormName
	if title == "" {
		title = UntitledForm
	}
	submitLabel := options.SubmitLabel
	if submitLabel == "" {
		submitLabel = DefaultSubmitLabel
	}

	hidden := render.SortedHiddenFields(options.HiddenFields)
	hiddenData := make([]map[string]any, 0, len(hidden))
	for _, field := range hidden {
		hiddenData = append(hiddenData, map[string]any{"name": field.Name, "value": field.Value})
	}

	styles := ""
	if r.inlineStyles {
		styles = defaultStylesheet()
	}

	result, err := r.templates.RenderTemplate(previewTemplate, map[string]any{
		"title":        title,
		"action":       options.Action,
		"blocks":       blocks,
		"hiddenFields": hiddenData,
		"formErrors":   render.MergeFormErrors(options.FormErrors),
		"submitLabel":  submitLabel,
		"styles":       styles,
		"classes":      chromeClasses(),
	})
	if err != nil {
		return nil, fmt.Errorf("vanilla renderer: render template: %w", err)
	}
	return []byte(result), nil
}

func chromeClasses() map[string]any {
	return map[string]any{
		"form":       string(ClassForm),
		"title":      string(ClassTitle),
		"grid":       string(ClassGrid),
		"actions":    string(ClassActions),
		"settings":   string(ClassSettings),
		"formErrors": string(ClassFormError),
	}
}
