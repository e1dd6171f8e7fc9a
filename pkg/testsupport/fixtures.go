package testsupport

import (
	"bytes"
	"io"
	"testing"
	"time"

	"github.com/goliatone/go-formbuilder/pkg/model"
)

// SampleFields returns a small field list covering the common controls: a
// required text input, an email input, a select with messy options, a range
// without bounds and a heading.
func SampleFields() []model.FieldDescriptor {
	return []model.FieldDescriptor{
		{Type: model.FieldTypeHeading, Label: "Contact us", Size: model.SizeFull},
		{Type: model.FieldTypeText, Label: "Full name", Size: model.SizeHalf, Required: true, Placeholder: "Jane Doe"},
		{Type: model.FieldTypeEmail, Label: "Email", Size: model.SizeHalf, Required: true},
		{Type: model.FieldTypeSelect, Label: "Colour", Size: model.SizeOneThird, Options: "Red, Blue ,Green"},
		{Type: model.FieldTypeRange, Label: "Budget", Size: model.SizeFull},
	}
}

// SampleForm returns a persisted form built from SampleFields.
func SampleForm(formID, storeID string) model.Form {
	return model.Form{
		FormID:    formID,
		FormName:  "Contact",
		Fields:    SampleFields(),
		StoreID:   storeID,
		CreatedAt: time.Date(2024, time.March, 1, 9, 30, 0, 0, time.UTC),
	}
}

// Clock returns a func reporting a fixed instant, for components with an
// injectable clock.
func Clock(at time.Time) func() time.Time {
	return func() time.Time { return at }
}

// CaptureTemplateOutput executes a render function that writes to an io.Writer,
// returning both the string result and the writer contents. Tests can assert
// the renderer returns and writes the same payload without duplicating buffer
// setup.
func CaptureTemplateOutput(t *testing.T, render func(io.Writer) (string, error)) (string, string) {
	t.Helper()

	var buf bytes.Buffer
	out, err := render(&buf)
	if err != nil {
		t.Fatalf("render template: %v", err)
	}

	return out, buf.String()
}
