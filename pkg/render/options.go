package render

// RenderOptions carry per-request data renderers use without mutating the
// form.
type RenderOptions struct {
	// Action is the URL the rendered form submits to. Empty renders a form
	// without an action attribute.
	Action string
	// Values pre-populates controls keyed by field key (see model.FieldKeys).
	// Descriptor defaults apply when a key is absent.
	Values map[string]string
	// Errors surfaces server-side validation feedback keyed by field key.
	// Use MapErrorPayload to turn validator output into this shape.
	Errors map[string][]string
	// FormErrors are messages not tied to a single field.
	FormErrors []string
	// HiddenFields are emitted as hidden inputs in name order.
	HiddenFields map[string]string
	// SubmitLabel overrides the submit button text.
	SubmitLabel string
}
