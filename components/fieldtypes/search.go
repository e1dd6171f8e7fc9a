package fieldtypes

import (
	"sort"
	"strings"

	"github.com/goliatone/go-formbuilder/pkg/fields"
)

// Setting describes one settings panel input of a type.
type Setting struct {
	Key     string `json:"key"`
	Label   string `json:"label"`
	Input   string `json:"input"`
	Default string `json:"default,omitempty"`
}

// Option is one catalogue entry.
type Option struct {
	Value    string    `json:"value"`
	Label    string    `json:"label"`
	Control  string    `json:"control"`
	Static   bool      `json:"static,omitempty"`
	Settings []Setting `json:"settings"`
}

// Search returns the specs matching query in menu order, prefix matches
// first.
func Search(registry *fields.Registry, query string, limit int, opts Options) []fields.Spec {
	limit = clampLimit(limit, opts)
	if limit == 0 || registry == nil {
		return nil
	}

	specs := make([]fields.Spec, 0, len(registry.Types()))
	for _, fieldType := range registry.Types() {
		if spec, ok := registry.Lookup(fieldType); ok {
			specs = append(specs, spec)
		}
	}

	query = strings.TrimSpace(query)
	if query == "" {
		if opts.EmptySearchMode != EmptySearchAll {
			return nil
		}
		if len(specs) > limit {
			specs = specs[:limit]
		}
		return specs
	}

	q := strings.ToLower(query)
	matches := make([]matchedSpec, 0, len(specs))
	for idx, spec := range specs {
		name := strings.ToLower(string(spec.Type))
		if !strings.Contains(name, q) {
			continue
		}
		matches = append(matches, matchedSpec{spec: spec, order: idx, isPrefix: strings.HasPrefix(name, q)})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].isPrefix != matches[j].isPrefix {
			return matches[i].isPrefix
		}
		return matches[i].order < matches[j].order
	})

	if len(matches) > limit {
		matches = matches[:limit]
	}
	out := make([]fields.Spec, 0, len(matches))
	for _, match := range matches {
		out = append(out, match.spec)
	}
	return out
}

// SearchOptions is Search rendered as catalogue entries.
func SearchOptions(registry *fields.Registry, query string, limit int, opts Options) []Option {
	results := Search(registry, query, limit, opts)
	if len(results) == 0 {
		return nil
	}
	out := make([]Option, 0, len(results))
	for _, spec := range results {
		out = append(out, toOption(spec))
	}
	return out
}

func toOption(spec fields.Spec) Option {
	panel := fields.PanelSettings(spec)
	settings := make([]Setting, 0, len(panel))
	for _, setting := range panel {
		settings = append(settings, Setting{
			Key:     string(setting.Key),
			Label:   setting.Label,
			Input:   string(setting.Input),
			Default: setting.Default,
		})
	}
	return Option{
		Value:    string(spec.Type),
		Label:    string(spec.Type),
		Control:  string(spec.Control),
		Static:   spec.Static,
		Settings: settings,
	}
}

type matchedSpec struct {
	spec     fields.Spec
	order    int
	isPrefix bool
}
