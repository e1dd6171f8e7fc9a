package vanilla_test

import (
	"context"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/goliatone/go-formbuilder/pkg/draft"
	"github.com/goliatone/go-formbuilder/pkg/model"
	"github.com/goliatone/go-formbuilder/pkg/render"
	"github.com/goliatone/go-formbuilder/pkg/renderers/vanilla"
	"github.com/goliatone/go-formbuilder/pkg/testsupport"
)

func newPreview(t *testing.T) *vanilla.PreviewRenderer {
	t.Helper()
	renderer, err := vanilla.NewPreview(vanilla.WithInlineStyles(false))
	if err != nil {
		t.Fatalf("new preview: %v", err)
	}
	return renderer
}

func renderForm(t *testing.T, form model.Form, opts render.RenderOptions) string {
	t.Helper()
	out, err := newPreview(t).Render(context.Background(), form, opts)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	return string(out)
}

func assertContains(t *testing.T, html string, fragments ...string) {
	t.Helper()
	for _, fragment := range fragments {
		if !strings.Contains(html, fragment) {
			t.Fatalf("expected %q in output:\n%s", fragment, html)
		}
	}
}

func TestPreviewUntitledForm(t *testing.T) {
	html := renderForm(t, model.Form{}, render.RenderOptions{})
	assertContains(t, html, vanilla.UntitledForm, `<button type="submit">Submit</button>`)
}

func TestPreviewSampleForm(t *testing.T) {
	html := renderForm(t, testsupport.SampleForm("form_1", "store-1"), render.RenderOptions{
		Action:       "/api/submit-form",
		HiddenFields: render.MergeHiddenFields(nil, render.FormIDField("form_1")),
	})

	assertContains(t, html,
		`<h1 class="fg-title">Contact</h1>`,
		`action="/api/submit-form"`,
		`<input type="hidden" name="formId" value="form_1">`,
		`<h2 class="fg-heading">Contact us</h2>`,
		`Full name *`,
		`class="fg-field fg-size-half"`,
		`class="fg-field fg-size-one-third"`,
		`<input type="email" id="fg-email" name="email" required>`,
		`<input type="range" id="fg-budget" name="budget" min="0" max="100">`,
	)
	if strings.Count(html, "<option") != 3 {
		t.Fatalf("expected three select options:\n%s", html)
	}
	assertContains(t, html, `<option value="Blue">Blue</option>`)
}

func TestPreviewFieldOrder(t *testing.T) {
	html := renderForm(t, testsupport.SampleForm("form_1", "store-1"), render.RenderOptions{})
	order := []string{"fg-heading", "fg-full_name", "fg-email", "fg-colour", "fg-budget"}
	last := -1
	for _, marker := range order {
		idx := strings.Index(html, marker)
		if idx < 0 || idx < last {
			t.Fatalf("marker %q out of order in:\n%s", marker, html)
		}
		last = idx
	}
}

func TestPreviewUnsupportedType(t *testing.T) {
	form := model.Form{FormName: "X", Fields: []model.FieldDescriptor{{Type: "Signature", Label: "Sign"}}}
	html := renderForm(t, form, render.RenderOptions{})
	assertContains(t, html, "Unsupported field type: Signature", "fg-size-full")
}

func TestPreviewRatingsAndRequired(t *testing.T) {
	form := model.Form{Fields: []model.FieldDescriptor{
		{Type: model.FieldTypeRatings, Label: "Rating", Size: model.SizeFull, Required: true},
	}}
	html := renderForm(t, form, render.RenderOptions{})
	assertContains(t, html, "Rating (Max rating: 5) *", `max="5"`)
	if strings.Contains(html, `min="`) {
		t.Fatalf("ratings input should not carry a minimum:\n%s", html)
	}
}

func TestPreviewStaticFields(t *testing.T) {
	form := model.Form{Fields: []model.FieldDescriptor{
		{Type: model.FieldTypeDivider, Label: "Divider", Size: model.SizeFull},
		{Type: model.FieldTypeSpacer, Label: "Spacer", Size: model.SizeHalf, CustomClass: "gap fg-size-full"},
	}}
	html := renderForm(t, form, render.RenderOptions{})
	assertContains(t, html, `<hr class="fg-divider">`, `class="fg-field fg-size-half gap"`, `fg-spacer`)
	if strings.Contains(html, "<label") {
		t.Fatalf("static fields render no labels:\n%s", html)
	}
}

func TestPreviewValuesAndErrors(t *testing.T) {
	form := model.Form{Fields: []model.FieldDescriptor{
		{Type: model.FieldTypeEmail, Label: "Email", Size: model.SizeFull, DefaultValue: "default@example.com"},
		{Type: model.FieldTypeCheckbox, Label: "Subscribe", Size: model.SizeFull, DefaultValue: "true"},
	}}
	html := renderForm(t, form, render.RenderOptions{
		Values:     map[string]string{"email": "not-an-email"},
		Errors:     map[string][]string{"email": {"Email must be a valid email address"}},
		FormErrors: []string{"Please fix the errors below"},
	})
	assertContains(t, html,
		`value="not-an-email"`,
		`aria-invalid="true"`,
		`<li>Email must be a valid email address</li>`,
		`<li>Please fix the errors below</li>`,
		`value="true" checked`,
	)
}

func TestPreviewEscapesLabels(t *testing.T) {
	form := model.Form{FormName: "<script>x</script>", Fields: []model.FieldDescriptor{
		{Type: model.FieldTypeText, Label: `<img src=x onerror=alert(1)>`, Size: model.SizeFull},
	}}
	html := renderForm(t, form, render.RenderOptions{})
	if strings.Contains(html, "<script>") || strings.Contains(html, "<img") {
		t.Fatalf("unescaped markup in output:\n%s", html)
	}
}

func TestPreviewInlineStyles(t *testing.T) {
	renderer, err := vanilla.NewPreview()
	if err != nil {
		t.Fatalf("new preview: %v", err)
	}
	out, err := renderer.Render(context.Background(), model.Form{}, render.RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	assertContains(t, string(out), "<style>", ".fg-size-one-third")
}

func TestSettingsNothingSelected(t *testing.T) {
	settings, err := vanilla.NewSettings()
	if err != nil {
		t.Fatalf("new settings: %v", err)
	}
	d := draft.New("store-1")
	_, _ = d.AddField(model.FieldTypeText)
	d.CloseSelection()
	out, err := settings.Render(context.Background(), d.Snapshot(), "")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if len(out) != 0 {
		t.Fatalf("expected empty output, got %s", out)
	}
}

func TestSettingsForRange(t *testing.T) {
	settings, err := vanilla.NewSettings()
	if err != nil {
		t.Fatalf("new settings: %v", err)
	}
	d := draft.New("store-1")
	id, _ := d.AddField(model.FieldTypeRange)
	out, err := settings.Render(context.Background(), d.Snapshot(), "/editor/fields/"+id)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	html := string(out)
	assertContains(t, html,
		`data-field-id="`+id+`"`,
		"Field label",
		`value="New Range Field"`,
		"Field Size",
		`<option value="full" selected>Full</option>`,
		"Minimum value",
		`name="min" value="0"`,
		`name="max" value="100"`,
		"Required field",
		"Field Custom Class",
		"Remove Field",
		"Close",
	)
	if strings.Contains(html, "Field placeholder") {
		t.Fatalf("range has no placeholder setting:\n%s", html)
	}
}

func TestSettingsForCheckbox(t *testing.T) {
	settings, err := vanilla.NewSettings()
	if err != nil {
		t.Fatalf("new settings: %v", err)
	}
	d := draft.New("store-1")
	id, _ := d.AddField(model.FieldTypeCheckbox)
	if err := d.ApplySetting(id, "checked", "true"); err != nil {
		t.Fatalf("apply: %v", err)
	}
	out, err := settings.Render(context.Background(), d.Snapshot(), "")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	assertContains(t, string(out), `name="checked" value="true" checked`, "Checked by default")
}

func TestRenderersRejectIncompleteBundle(t *testing.T) {
	bundle := fstest.MapFS{
		"templates/other.tmpl": &fstest.MapFile{Data: []byte("{{ form.formName }}")},
	}
	if _, err := vanilla.NewPreview(vanilla.WithTemplatesFS(bundle)); err == nil {
		t.Fatalf("expected error for bundle without preview template")
	}
	if _, err := vanilla.NewSettings(vanilla.WithTemplatesFS(bundle)); err == nil {
		t.Fatalf("expected error for bundle without settings template")
	}
}
