// Package template defines the template engine seam used by the HTML
// renderers. Swapping engines means implementing TemplateRenderer.
package template
