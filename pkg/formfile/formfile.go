// Package formfile reads form definitions from JSON or YAML files. The CLI
// uses it to preview forms, export their submission schema, and seed the
// terminal editor.
package formfile

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formbuilder/pkg/draft"
	"github.com/goliatone/go-formbuilder/pkg/fields"
	"github.com/goliatone/go-formbuilder/pkg/model"
)

// Load reads and parses the definition at path.
func Load(path string, registry *fields.Registry) (model.Form, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.Form{}, fmt.Errorf("formfile: read %s: %w", path, err)
	}
	return Parse(data, path, registry)
}

// LoadFS reads and parses the definition at path inside fsys.
func LoadFS(fsys fs.FS, path string, registry *fields.Registry) (model.Form, error) {
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return model.Form{}, fmt.Errorf("formfile: read %s: %w", path, err)
	}
	return Parse(data, path, registry)
}

// Parse decodes data as JSON, falling back to YAML, and normalises every
// field against registry (nil means fields.Default). Field types match case
// insensitively; missing sizes become full.
func Parse(data []byte, source string, registry *fields.Registry) (model.Form, error) {
	if registry == nil {
		registry = fields.Default()
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		return model.Form{}, fmt.Errorf("formfile: file %s is empty", source)
	}

	var form model.Form
	if err := json.Unmarshal(data, &form); err != nil {
		form = model.Form{}
		if yamlErr := yaml.Unmarshal(data, &form); yamlErr != nil {
			return model.Form{}, fmt.Errorf("formfile: parse %s: invalid JSON or YAML: %w", source, yamlErr)
		}
	}

	form.FormName = strings.TrimSpace(form.FormName)
	form.StoreID = strings.TrimSpace(form.StoreID)
	if form.Fields == nil {
		form.Fields = []model.FieldDescriptor{}
	}
	for idx, field := range form.Fields {
		normalized, err := registry.Normalize(field)
		if err != nil {
			return model.Form{}, fmt.Errorf("formfile: %s: field %d: %w", source, idx+1, err)
		}
		form.Fields[idx] = normalized
	}
	return form, nil
}

// Seed copies the name and fields of form into d. The store id of d is kept
// unless it is empty. The selection is closed afterwards.
func Seed(d *draft.Draft, form model.Form) error {
	d.SetName(form.FormName)
	if d.StoreID() == "" {
		d.SetStoreID(form.StoreID)
	}
	for _, field := range form.Fields {
		if _, err := d.AddDescriptor(field); err != nil {
			return fmt.Errorf("formfile: seed: %w", err)
		}
	}
	d.CloseSelection()
	return nil
}
