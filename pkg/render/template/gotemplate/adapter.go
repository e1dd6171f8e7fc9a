// Package gotemplate implements template.TemplateRenderer with pongo2. Every
// template in the bundle is parsed when the engine is built, so a broken
// bundle fails at startup instead of on the first request.
package gotemplate

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"sort"
	"strings"
	"sync"

	"github.com/flosch/pongo2/v6"

	"github.com/goliatone/go-formbuilder/pkg/render/template"
)

// Option configures the engine.
type Option func(*config)

type config struct {
	templates fs.FS
	extension string
	required  []string
}

// WithFS sets the template bundle, typically an embed.FS.
func WithFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templates = files
	}
}

// WithExtension selects which files of the bundle are templates. Defaults
// to ".tmpl".
func WithExtension(ext string) Option {
	return func(cfg *config) {
		ext = strings.TrimSpace(ext)
		if ext == "" {
			return
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		cfg.extension = ext
	}
}

// WithRequired fails construction unless every named template is present.
func WithRequired(names ...string) Option {
	return func(cfg *config) {
		cfg.required = append(cfg.required, names...)
	}
}

// Engine holds the parsed bundle. It is immutable after New and safe for
// concurrent use.
type Engine struct {
	extension string
	templates map[string]*pongo2.Template
}

var _ template.TemplateRenderer = (*Engine)(nil)

// New parses every template of the bundle.
func New(options ...Option) (*Engine, error) {
	cfg := &config{extension: ".tmpl"}
	for _, opt := range options {
		if opt != nil {
			opt(cfg)
		}
	}
	if cfg.templates == nil {
		return nil, errors.New("gotemplate: template bundle is required")
	}
	registerFilters()

	set := pongo2.NewSet("formbuilder", pongo2.NewFSLoader(cfg.templates))
	engine := &Engine{extension: cfg.extension, templates: make(map[string]*pongo2.Template)}
	err := fs.WalkDir(cfg.templates, ".", func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if entry.IsDir() || !strings.HasSuffix(path, cfg.extension) {
			return nil
		}
		tmpl, err := set.FromFile(path)
		if err != nil {
			return fmt.Errorf("gotemplate: parse %s: %w", path, err)
		}
		engine.templates[path] = tmpl
		return nil
	})
	if err != nil {
		return nil, err
	}

	for _, name := range cfg.required {
		if !engine.Has(name) {
			return nil, fmt.Errorf("gotemplate: template %q missing from bundle", name)
		}
	}
	return engine, nil
}

// Has reports whether name resolves to a parsed template.
func (e *Engine) Has(name string) bool {
	_, ok := e.lookup(name)
	return ok
}

// Names lists the parsed templates.
func (e *Engine) Names() []string {
	names := make([]string, 0, len(e.templates))
	for name := range e.templates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (e *Engine) lookup(name string) (*pongo2.Template, bool) {
	if e == nil {
		return nil, false
	}
	if !strings.HasSuffix(name, e.extension) {
		name += e.extension
	}
	tmpl, ok := e.templates[name]
	return tmpl, ok
}

// RenderTemplate executes name, with or without its extension, and copies
// the result to every writer in out.
func (e *Engine) RenderTemplate(name string, data any, out ...io.Writer) (string, error) {
	tmpl, ok := e.lookup(name)
	if !ok {
		return "", fmt.Errorf("gotemplate: template %q not found", name)
	}
	ctx, err := toContext(data)
	if err != nil {
		return "", fmt.Errorf("gotemplate: convert data for %q: %w", name, err)
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteWriter(ctx, &buf); err != nil {
		return "", fmt.Errorf("gotemplate: execute %q: %w", name, err)
	}
	rendered := buf.String()
	for _, w := range out {
		if _, err := io.WriteString(w, rendered); err != nil {
			return "", err
		}
	}
	return rendered, nil
}

// toContext turns data into a pongo2.Context. Structs are round-tripped
// through JSON so templates address them by json tag.
func toContext(data any) (pongo2.Context, error) {
	switch v := data.(type) {
	case nil:
		return pongo2.Context{}, nil
	case pongo2.Context:
		return v, nil
	case map[string]any:
		return pongo2.Context(v), nil
	}
	raw, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}
	var ctx pongo2.Context
	if err := json.Unmarshal(raw, &ctx); err != nil {
		return nil, err
	}
	return ctx, nil
}

var filtersOnce sync.Once

// registerFilters adds the filters the bundled templates rely on. pongo2
// filters are process-wide and its filter map is not guarded.
func registerFilters() {
	filtersOnce.Do(func() {
		if !pongo2.FilterExists("trim") {
			_ = pongo2.RegisterFilter("trim", func(in *pongo2.Value, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
				return pongo2.AsValue(strings.TrimSpace(in.String())), nil
			})
		}
	})
}
