package vanilla

// ChromeClass is a typed identifier for the structural CSS classes the
// renderers emit around fields.
type ChromeClass string

const (
	ClassForm      ChromeClass = "fg-form"
	ClassTitle     ChromeClass = "fg-title"
	ClassGrid      ChromeClass = "fg-grid"
	ClassField     ChromeClass = "fg-field"
	ClassErrors    ChromeClass = "fg-errors"
	ClassActions   ChromeClass = "fg-actions"
	ClassSettings  ChromeClass = "fg-settings"
	ClassFormError ChromeClass = "fg-form-errors"
)
