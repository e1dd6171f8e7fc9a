package render_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/goliatone/go-formbuilder/pkg/model"
	"github.com/goliatone/go-formbuilder/pkg/render"
)

func TestMapErrorPayload(t *testing.T) {
	form := model.Form{
		Fields: []model.FieldDescriptor{
			{Type: model.FieldTypeText, Label: "Full name"},
			{Type: model.FieldTypeEmail, Label: "Email"},
			{Type: model.FieldTypeRatings, Label: "Rating"},
		},
	}

	payload := map[string][]string{
		"/submissionData/full_name": {"Full name is required", " Full name is required "},
		"submissionData.email":      {"Email invalid"},
		"$.body.rating":             {"Rating must be at most 5"},
		"non_field_errors":          {"Form level error"},
		"/submissionData/unknown":   {"Should fall back to form errors"},
		"":                          {"Unscoped form error"},
	}

	mapped := render.MapErrorPayload(form, payload)

	wantFields := map[string][]string{
		"full_name": {"Full name is required"},
		"email":     {"Email invalid"},
		"rating":    {"Rating must be at most 5"},
	}
	if diff := cmp.Diff(wantFields, mapped.Fields); diff != "" {
		t.Fatalf("field errors mismatch (-want +got):\n%s", diff)
	}

	wantForm := []string{"Form level error", "Should fall back to form errors", "Unscoped form error"}
	if diff := cmp.Diff(wantForm, mapped.Form, cmpopts.SortSlices(func(a, b string) bool { return a < b })); diff != "" {
		t.Fatalf("form errors mismatch (-want +got):\n%s", diff)
	}
}

func TestMapErrorPayloadEmpty(t *testing.T) {
	mapped := render.MapErrorPayload(model.Form{}, nil)
	if mapped.Fields != nil || mapped.Form != nil {
		t.Fatalf("expected empty mapping, got %+v", mapped)
	}
}

func TestMergeFormErrors(t *testing.T) {
	merged := render.MergeFormErrors([]string{" First ", "Second"}, "Second", "third", "  ")
	want := []string{"First", "Second", "third"}

	if diff := cmp.Diff(want, merged); diff != "" {
		t.Fatalf("merged form errors mismatch (-want +got):\n%s", diff)
	}
}
