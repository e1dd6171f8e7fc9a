package formbuilder

import (
	"context"
	"io/fs"
	"strings"
	"testing"

	"github.com/goliatone/go-formbuilder/pkg/draft"
	"github.com/goliatone/go-formbuilder/pkg/model"
	"github.com/goliatone/go-formbuilder/pkg/testsupport"
)

func TestAssetsFSContainsStylesheet(t *testing.T) {
	data, err := fs.ReadFile(AssetsFS(), "formbuilder.css")
	if err != nil {
		t.Fatalf("expected stylesheet to be readable: %v", err)
	}
	if len(data) == 0 {
		t.Fatalf("stylesheet is empty")
	}
}

func TestEmbeddedTemplatesIncludePreview(t *testing.T) {
	if _, err := fs.Stat(EmbeddedTemplates(), "templates/preview.tmpl"); err != nil {
		t.Fatalf("preview template missing: %v", err)
	}
}

func TestRenderPreviewTargetsSubmitEndpoint(t *testing.T) {
	out, err := RenderPreview(context.Background(), testsupport.SampleForm("form_1", "store-1"))
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	html := string(out)
	for _, want := range []string{`action="/api/submit-form"`, `name="formId" value="form_1"`} {
		if !strings.Contains(html, want) {
			t.Fatalf("missing %q in:\n%s", want, html)
		}
	}
}

func TestRenderSettingsFollowsSelection(t *testing.T) {
	d := draft.New("store-1")
	id, err := d.AddField(model.FieldTypeRange)
	if err != nil {
		t.Fatalf("add field: %v", err)
	}

	out, err := RenderSettings(context.Background(), d, "/fields")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(string(out), `data-field-id="`+id+`"`) {
		t.Fatalf("panel not rendered for %s:\n%s", id, out)
	}

	d.CloseSelection()
	out, err = RenderSettings(context.Background(), d, "/fields")
	if err != nil || len(out) != 0 {
		t.Fatalf("closed panel = %q, %v", out, err)
	}
}
