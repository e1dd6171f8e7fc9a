// Package formbuilder exposes the shortest paths through the module: render
// a stored form the way shoppers see it, render the settings panel of a
// draft, and reach the embedded templates and stylesheet.
package formbuilder

import (
	"context"
	"io/fs"

	"github.com/goliatone/go-formbuilder/pkg/draft"
	"github.com/goliatone/go-formbuilder/pkg/model"
	"github.com/goliatone/go-formbuilder/pkg/render"
	"github.com/goliatone/go-formbuilder/pkg/renderers/vanilla"
	"github.com/goliatone/go-formbuilder/pkg/validation"
)

// RenderOptions describes per-request overrides that renderers can use to
// prefill values or surface server-side validation errors.
type RenderOptions = render.RenderOptions

// PreviewOptions returns the options the API uses for a stored form: submit
// to the public endpoint and carry the form id as a hidden input.
func PreviewOptions(form model.Form) RenderOptions {
	return RenderOptions{
		Action:       validation.SubmitPath,
		HiddenFields: render.MergeHiddenFields(nil, render.FormIDField(form.FormID)),
	}
}

// RenderPreview renders form as HTML with PreviewOptions applied.
func RenderPreview(ctx context.Context, form model.Form, options ...vanilla.Option) ([]byte, error) {
	renderer, err := vanilla.NewPreview(options...)
	if err != nil {
		return nil, err
	}
	return renderer.Render(ctx, form, PreviewOptions(form))
}

// RenderSettings renders the settings panel of the selected field of d, or
// an empty panel when nothing is selected.
func RenderSettings(ctx context.Context, d *draft.Draft, action string, options ...vanilla.Option) ([]byte, error) {
	renderer, err := vanilla.NewSettings(options...)
	if err != nil {
		return nil, err
	}
	return renderer.Render(ctx, d.Snapshot(), action)
}

// EmbeddedTemplates exposes the built-in templates so callers can reuse or
// extend them without importing the renderer package directly.
func EmbeddedTemplates() fs.FS {
	return vanilla.TemplatesFS()
}

// AssetsFS exposes the layout stylesheet.
//
// Typical mount:
//
//	mux.Handle("/assets/",
//	  http.StripPrefix("/assets/",
//	    http.FileServerFS(formbuilder.AssetsFS()),
//	  ),
//	)
func AssetsFS() fs.FS {
	return vanilla.AssetsFS()
}
