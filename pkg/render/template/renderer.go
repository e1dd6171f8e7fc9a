package template

import (
	"io"
)

// TemplateRenderer is the engine contract the HTML renderers depend on.
// Names are paths inside the engine's template bundle.
type TemplateRenderer interface {
	RenderTemplate(name string, data any, out ...io.Writer) (string, error)
	Has(name string) bool
}
