package tui

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/AlecAivazis/survey/v2/terminal"
	"go.uber.org/zap"

	"github.com/goliatone/go-formbuilder/pkg/draft"
	"github.com/goliatone/go-formbuilder/pkg/fields"
	"github.com/goliatone/go-formbuilder/pkg/model"
)

// Menu entries of the editing session, in display order.
const (
	ActionAddField    = "Add field"
	ActionEditField   = "Edit field"
	ActionRemoveField = "Remove field"
	ActionRename      = "Rename form"
	ActionShow        = "Show fields"
	ActionSave        = "Save form"
	ActionQuit        = "Quit"
)

var menu = []string{
	ActionAddField, ActionEditField, ActionRemoveField, ActionRename,
	ActionShow, ActionSave, ActionQuit,
}

// Editor is the terminal settings panel: a prompt-driven session that edits
// a draft in place. Every answer is applied to the draft immediately.
type Editor struct {
	driver PromptDriver
	draft  *draft.Draft
	saver  Saver
	logger *zap.Logger
	theme  Theme
	stdio  terminal.Stdio
}

// NewEditor constructs an editor for d using the survey driver unless
// WithPromptDriver overrides it.
func NewEditor(d *draft.Draft, options ...Option) (*Editor, error) {
	if d == nil {
		return nil, errors.New("tui: draft is required")
	}
	e := &Editor{
		draft:  d,
		logger: zap.NewNop(),
		stdio:  defaultStdio(),
	}
	for _, opt := range options {
		if opt != nil {
			opt(e)
		}
	}
	if e.driver == nil {
		e.driver = &surveyDriver{stdio: e.stdio}
	}
	return e, nil
}

// Run shows the main menu until the user quits. Aborting a prompt ends the
// session with ErrAborted.
func (e *Editor) Run(ctx context.Context) error {
	if e.draft.Name() == "" {
		name, err := e.driver.Input(ctx, InputConfig{Message: "Form name"})
		if err != nil {
			return err
		}
		e.draft.SetName(name)
	}

	for {
		choice, err := e.driver.Select(ctx, SelectConfig{Message: "What next?", Options: menu})
		if err != nil {
			return err
		}
		if choice < 0 || choice >= len(menu) {
			return fmt.Errorf("tui: invalid menu choice %d", choice)
		}

		switch menu[choice] {
		case ActionAddField:
			err = e.addField(ctx)
		case ActionEditField:
			err = e.editField(ctx)
		case ActionRemoveField:
			err = e.removeField(ctx)
		case ActionRename:
			err = e.rename(ctx)
		case ActionShow:
			err = e.show(ctx)
		case ActionSave:
			err = e.save(ctx)
		case ActionQuit:
			done, quitErr := e.quit(ctx)
			if quitErr != nil || done {
				return quitErr
			}
		}
		if err != nil {
			return err
		}
	}
}

func (e *Editor) addField(ctx context.Context) error {
	types := e.draft.Registry().Types()
	options := make([]string, len(types))
	for idx, fieldType := range types {
		options[idx] = string(fieldType)
	}
	choice, err := e.driver.Select(ctx, SelectConfig{Message: "Field type", Options: options, PageSize: 12})
	if err != nil {
		return err
	}
	if choice < 0 || choice >= len(types) {
		return fmt.Errorf("tui: invalid field type choice %d", choice)
	}
	id, err := e.draft.AddField(types[choice])
	if err != nil {
		return err
	}
	e.logger.Debug("field added", zap.String("type", string(types[choice])), zap.String("id", id))
	return e.EditSelected(ctx)
}

func (e *Editor) editField(ctx context.Context) error {
	id, ok, err := e.pickField(ctx, "Field to edit")
	if err != nil || !ok {
		return err
	}
	if err := e.draft.Select(id); err != nil {
		return err
	}
	return e.EditSelected(ctx)
}

func (e *Editor) removeField(ctx context.Context) error {
	id, ok, err := e.pickField(ctx, "Field to remove")
	if err != nil || !ok {
		return err
	}
	field, _ := e.draft.Field(id)
	confirmed, err := e.driver.Confirm(ctx, ConfirmConfig{Message: fmt.Sprintf("Remove %q?", field.Label)})
	if err != nil || !confirmed {
		return err
	}
	e.logger.Debug("field removed", zap.String("id", id))
	return e.draft.RemoveField(id)
}

func (e *Editor) pickField(ctx context.Context, message string) (string, bool, error) {
	current := e.draft.Fields()
	if len(current) == 0 {
		return "", false, e.info(ctx, "No fields yet.")
	}
	options := make([]string, len(current))
	defaultIdx := 0
	for idx, field := range current {
		options[idx] = fieldSummary(idx, field)
		if field.ID == e.draft.SelectedID() {
			defaultIdx = idx
		}
	}
	choice, err := e.driver.Select(ctx, SelectConfig{Message: message, Options: options, DefaultIndex: defaultIdx})
	if err != nil {
		return "", false, err
	}
	if choice < 0 || choice >= len(current) {
		return "", false, fmt.Errorf("tui: invalid field choice %d", choice)
	}
	return current[choice].ID, true, nil
}

// EditSelected prompts for every setting the registry lists for the selected
// field, then closes the selection.
func (e *Editor) EditSelected(ctx context.Context) error {
	field, ok := e.draft.Selected()
	if !ok {
		return e.info(ctx, "No field selected.")
	}
	spec, ok := e.draft.Registry().Lookup(field.Type)
	if !ok {
		return fmt.Errorf("tui: %w: %s", fields.ErrUnknownType, field.Type)
	}

	for _, setting := range fields.PanelSettings(spec) {
		current := fields.Value(field.FieldDescriptor, setting.Key)
		if current == "" {
			current = setting.Default
		}
		answer, err := e.ask(ctx, field, setting, current)
		if err != nil {
			return err
		}
		if err := e.draft.ApplySetting(field.ID, setting.Key, answer); err != nil {
			return err
		}
		field, _ = e.draft.Field(field.ID)
	}
	e.draft.CloseSelection()
	return nil
}

func (e *Editor) ask(ctx context.Context, field draft.Field, setting fields.Setting, current string) (string, error) {
	switch setting.Input {
	case fields.InputCheckbox:
		checked, err := e.driver.Confirm(ctx, ConfirmConfig{Message: setting.Label, Default: current == "true"})
		if err != nil {
			return "", err
		}
		return strconv.FormatBool(checked), nil
	case fields.InputSelect:
		sizes := model.Sizes()
		labels := make([]string, len(sizes))
		defaultIdx := len(sizes) - 1
		for idx, size := range sizes {
			labels[idx] = fields.SizeLabel(size)
			if string(size) == current {
				defaultIdx = idx
			}
		}
		choice, err := e.driver.Select(ctx, SelectConfig{Message: setting.Label, Options: labels, DefaultIndex: defaultIdx})
		if err != nil {
			return "", err
		}
		if choice < 0 || choice >= len(sizes) {
			return "", fmt.Errorf("tui: invalid size choice %d", choice)
		}
		return string(sizes[choice]), nil
	case fields.InputNumber:
		return e.driver.Input(ctx, InputConfig{Message: setting.Label, Default: current, Validator: validateNumber})
	default:
		if field.Type == model.FieldTypeTextarea && setting.Key == fields.SettingDefaultValue {
			return e.driver.TextArea(ctx, TextAreaConfig{Message: setting.Label, Default: current})
		}
		return e.driver.Input(ctx, InputConfig{Message: setting.Label, Default: current})
	}
}

func (e *Editor) rename(ctx context.Context) error {
	name, err := e.driver.Input(ctx, InputConfig{Message: "Form name", Default: e.draft.Name()})
	if err != nil {
		return err
	}
	e.draft.SetName(name)
	return nil
}

func (e *Editor) show(ctx context.Context) error {
	name := e.draft.Name()
	if name == "" {
		name = "Untitled Form"
	}
	lines := []string{name}
	for idx, field := range e.draft.Fields() {
		lines = append(lines, fieldSummary(idx, field))
	}
	return e.info(ctx, strings.Join(lines, "\n"))
}

func (e *Editor) save(ctx context.Context) error {
	if e.saver == nil {
		return e.info(ctx, e.theme.ErrorPrefix+ErrNoSaver.Error())
	}
	if e.draft.StoreID() == "" {
		return e.info(ctx, e.theme.ErrorPrefix+"Store information is not available yet.")
	}
	form, err := e.saver.Save(ctx, e.draft)
	if err != nil {
		e.logger.Warn("save failed", zap.Error(err))
		return e.info(ctx, e.theme.ErrorPrefix+"Save failed: "+err.Error())
	}
	e.logger.Info("form saved", zap.String("form_id", form.FormID))
	return e.info(ctx, "Form saved: "+form.FormID)
}

func (e *Editor) quit(ctx context.Context) (bool, error) {
	if e.draft.Len() == 0 {
		return true, nil
	}
	return e.driver.Confirm(ctx, ConfirmConfig{Message: "Discard unsaved fields and quit?"})
}

func (e *Editor) info(ctx context.Context, msg string) error {
	return e.driver.Info(ctx, e.theme.InfoPrefix+msg)
}

func fieldSummary(idx int, field draft.Field) string {
	label := field.Label
	if field.Required {
		label += " *"
	}
	return fmt.Sprintf("%d. %s (%s, %s)", idx+1, label, field.Type, fields.SizeLabel(field.Size))
}

func validateNumber(value string) error {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return nil
	}
	if _, err := strconv.ParseFloat(trimmed, 64); err != nil {
		return fmt.Errorf("%q is not a number", value)
	}
	return nil
}
