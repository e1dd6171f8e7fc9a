package validation_test

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formbuilder/pkg/model"
	"github.com/goliatone/go-formbuilder/pkg/validation"
)

func surveyForm() model.Form {
	return model.Form{
		FormID:   "form_1",
		FormName: "Survey",
		StoreID:  "store-1",
		Fields: []model.FieldDescriptor{
			{Type: model.FieldTypeHeading, Label: "Tell us more"},
			{Type: model.FieldTypeEmail, Label: "Email", Required: true},
			{Type: model.FieldTypeNumber, Label: "Age"},
			{Type: model.FieldTypeSelect, Label: "Colour", Options: "Red, Blue ,Green"},
			{Type: model.FieldTypeRange, Label: "Budget", Min: "10", Max: "50"},
			{Type: model.FieldTypeRatings, Label: "Rating"},
			{Type: model.FieldTypeURL, Label: "Website"},
			{Type: model.FieldTypeSingleCheckbox, Label: "Terms", Required: true},
		},
	}
}

func validationError(t *testing.T, err error) *validation.Error {
	t.Helper()
	var vErr *validation.Error
	if !errors.As(err, &vErr) {
		t.Fatalf("expected *validation.Error, got %v", err)
	}
	return vErr
}

func TestValidateAcceptsValidSubmission(t *testing.T) {
	v := validation.New()
	err := v.Validate(surveyForm(), map[string]string{
		"email":   "jane@example.com",
		"age":     "42",
		"colour":  "Blue",
		"budget":  "25",
		"rating":  "5",
		"website": "https://example.com",
		"terms":   "true",
	})
	if err != nil {
		t.Fatalf("expected valid submission, got %v", err)
	}
}

func TestValidateRatingsHasNoFloor(t *testing.T) {
	v := validation.New()
	err := v.Validate(surveyForm(), map[string]string{
		"email":  "jane@example.com",
		"rating": "0",
		"terms":  "true",
	})
	if err != nil {
		t.Fatalf("zero rating rejected: %v", err)
	}
}

func TestValidateReportsFieldErrors(t *testing.T) {
	v := validation.New()
	err := v.Validate(surveyForm(), map[string]string{
		"email":   "not-an-email",
		"age":     "old",
		"colour":  "Purple",
		"budget":  "80",
		"rating":  "6",
		"website": "example",
	})
	vErr := validationError(t, err)

	want := map[string][]string{
		"email":   {"must be a valid email address"},
		"age":     {"must be a number"},
		"colour":  {"must be one of: Red, Blue, Green"},
		"budget":  {"must be at most 50"},
		"rating":  {"must be at most 5"},
		"website": {"must be a valid URL"},
		"terms":   {"is required"},
	}
	if diff := cmp.Diff(want, vErr.Fields); diff != "" {
		t.Fatalf("field errors mismatch (-want +got):\n%s", diff)
	}
	if len(vErr.Form) != 0 {
		t.Fatalf("unexpected form errors: %v", vErr.Form)
	}
}

func TestValidateTreatsBlankAsMissing(t *testing.T) {
	err := validation.New().Validate(surveyForm(), map[string]string{
		"email": "   ",
		"terms": "true",
	})
	vErr := validationError(t, err)
	if diff := cmp.Diff(map[string][]string{"email": {"is required"}}, vErr.Fields); diff != "" {
		t.Fatalf("field errors mismatch (-want +got):\n%s", diff)
	}
}

func TestValidateIgnoresStaticFields(t *testing.T) {
	schema := validation.New().Schema(surveyForm())
	if _, ok := schema.Properties["tell_us_more"]; ok {
		t.Fatalf("heading must not be part of the submission schema")
	}
	if diff := cmp.Diff([]string{"email", "terms"}, schema.Required); diff != "" {
		t.Fatalf("required mismatch (-want +got):\n%s", diff)
	}
}

func TestErrorMessageIsStable(t *testing.T) {
	err := &validation.Error{Fields: map[string][]string{"b": {"x"}, "a": {"y", "z"}}, Form: []string{"form"}}
	if got := err.Error(); got != "validation: a: y, z; b: x; form" {
		t.Fatalf("error string = %q", got)
	}
}

func TestSanitizeStripsMarkup(t *testing.T) {
	got := validation.New().Sanitize(map[string]string{
		"name":              "  <b>Jane</b> & co ",
		"<i>comment</i>":    `<script>alert("x")</script>hello`,
		"<script></script>": "dropped",
	})
	want := map[string]string{
		"name":    "Jane & co",
		"comment": "hello",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("sanitize mismatch (-want +got):\n%s", diff)
	}
}

func TestDocumentDescribesSubmitOperation(t *testing.T) {
	doc := validation.New().Document(surveyForm())
	item := doc.Paths.Find(validation.SubmitPath)
	if item == nil || item.Post == nil {
		t.Fatalf("missing POST %s", validation.SubmitPath)
	}
	if _, ok := doc.Components.Schemas["SubmissionData"]; !ok {
		t.Fatalf("missing SubmissionData schema")
	}
	raw, err := json.Marshal(doc)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	for _, fragment := range []string{`"openapi":"3.0.3"`, `"#/components/schemas/SubmissionData"`, `"email"`} {
		if !strings.Contains(string(raw), fragment) {
			t.Fatalf("document missing %s:\n%s", fragment, raw)
		}
	}
}
