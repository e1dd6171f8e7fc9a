package tui

import (
	"context"

	"github.com/AlecAivazis/survey/v2/terminal"
	"go.uber.org/zap"

	"github.com/goliatone/go-formbuilder/pkg/draft"
	"github.com/goliatone/go-formbuilder/pkg/model"
)

// Saver persists a draft. pkg/gateway.Client satisfies it.
type Saver interface {
	Save(ctx context.Context, d *draft.Draft) (model.Form, error)
}

// Theme captures optional message prefixes the editor applies when printing.
type Theme struct {
	InfoPrefix  string
	ErrorPrefix string
}

// Option configures the Editor.
type Option func(*Editor)

// WithPromptDriver overrides the prompt driver used by the editor.
func WithPromptDriver(driver PromptDriver) Option {
	return func(e *Editor) {
		if driver != nil {
			e.driver = driver
		}
	}
}

// WithStdio points the survey prompts at the given terminal streams.
// Ignored when WithPromptDriver supplies a driver.
func WithStdio(stdio terminal.Stdio) Option {
	return func(e *Editor) {
		if stdio.In != nil && stdio.Out != nil {
			e.stdio = stdio
		}
	}
}

// WithSaver enables the "Save form" action.
func WithSaver(saver Saver) Option {
	return func(e *Editor) {
		e.saver = saver
	}
}

// WithLogger sets the logger used for session events.
func WithLogger(logger *zap.Logger) Option {
	return func(e *Editor) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithTheme applies optional message prefixes.
func WithTheme(theme Theme) Option {
	return func(e *Editor) {
		e.theme = theme
	}
}
