package tui

import (
	"context"
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/AlecAivazis/survey/v2/terminal"
	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formbuilder/pkg/draft"
	"github.com/goliatone/go-formbuilder/pkg/model"
)

type stubDriver struct {
	inputs       []string
	selectIdx    []int
	confirm      []bool
	textAreas    []string
	infoMessages []string
	selectMsgs   []string
	inputPos     int
	selectPos    int
	confirmPos   int
	textPos      int
}

func (s *stubDriver) Input(_ context.Context, _ InputConfig) (string, error) {
	if s.inputPos >= len(s.inputs) {
		return "", errors.New("no input scripted")
	}
	val := s.inputs[s.inputPos]
	s.inputPos++
	return val, nil
}

func (s *stubDriver) Confirm(_ context.Context, _ ConfirmConfig) (bool, error) {
	if s.confirmPos >= len(s.confirm) {
		return false, errors.New("no confirm scripted")
	}
	val := s.confirm[s.confirmPos]
	s.confirmPos++
	return val, nil
}

func (s *stubDriver) Select(_ context.Context, cfg SelectConfig) (int, error) {
	s.selectMsgs = append(s.selectMsgs, cfg.Message)
	if s.selectPos >= len(s.selectIdx) {
		return -1, errors.New("no select scripted")
	}
	val := s.selectIdx[s.selectPos]
	s.selectPos++
	return val, nil
}

func (s *stubDriver) TextArea(_ context.Context, _ TextAreaConfig) (string, error) {
	if s.textPos >= len(s.textAreas) {
		return "", errors.New("no textarea scripted")
	}
	val := s.textAreas[s.textPos]
	s.textPos++
	return val, nil
}

func (s *stubDriver) Info(_ context.Context, msg string) error {
	s.infoMessages = append(s.infoMessages, msg)
	return nil
}

type stubSaver struct {
	saved []model.SaveFormRequest
	err   error
}

func (s *stubSaver) Save(_ context.Context, d *draft.Draft) (model.Form, error) {
	if s.err != nil {
		return model.Form{}, s.err
	}
	payload := d.Snapshot().Payload("form_1")
	s.saved = append(s.saved, payload)
	d.Reset()
	return model.Form{FormID: payload.FormID, FormName: payload.FormName}, nil
}

func menuIndex(action string) int {
	for idx, entry := range menu {
		if entry == action {
			return idx
		}
	}
	return -1
}

func typeIndex(fieldType model.FieldType) int {
	for idx, candidate := range model.FieldTypes() {
		if candidate == fieldType {
			return idx
		}
	}
	return -1
}

func TestEditorAddRangeAndSave(t *testing.T) {
	driver := &stubDriver{
		inputs: []string{"Budget form", "Budget", "10", "50", "wide"},
		selectIdx: []int{
			menuIndex(ActionAddField),
			typeIndex(model.FieldTypeRange),
			1, // Half
			menuIndex(ActionSave),
			menuIndex(ActionQuit),
		},
		confirm: []bool{true},
	}
	saver := &stubSaver{}
	d := draft.New("store-1")
	editor, err := NewEditor(d, WithPromptDriver(driver), WithSaver(saver))
	if err != nil {
		t.Fatalf("new editor: %v", err)
	}

	if err := editor.Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}

	if len(saver.saved) != 1 {
		t.Fatalf("expected one save, got %d", len(saver.saved))
	}
	want := model.SaveFormRequest{
		FormID:   "form_1",
		FormName: "Budget form",
		StoreID:  "store-1",
		Fields: []model.FieldDescriptor{{
			Type:        model.FieldTypeRange,
			Label:       "Budget",
			Size:        model.SizeHalf,
			Required:    true,
			Min:         "10",
			Max:         "50",
			CustomClass: "wide",
		}},
	}
	if diff := cmp.Diff(want, saver.saved[0]); diff != "" {
		t.Fatalf("saved payload mismatch (-want +got):\n%s", diff)
	}
	if got := driver.infoMessages[len(driver.infoMessages)-1]; got != "Form saved: form_1" {
		t.Fatalf("last info = %q", got)
	}
}

func TestEditorSaveWithoutStoreID(t *testing.T) {
	driver := &stubDriver{
		inputs:    []string{"Contact"},
		selectIdx: []int{menuIndex(ActionSave), menuIndex(ActionQuit)},
	}
	saver := &stubSaver{}
	editor, err := NewEditor(draft.New(""), WithPromptDriver(driver), WithSaver(saver))
	if err != nil {
		t.Fatalf("new editor: %v", err)
	}
	if err := editor.Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(saver.saved) != 0 {
		t.Fatalf("save must be blocked without a store id")
	}
	if !strings.Contains(strings.Join(driver.infoMessages, "\n"), "Store information") {
		t.Fatalf("expected store info message, got %v", driver.infoMessages)
	}
}

func TestEditorRemoveField(t *testing.T) {
	d := draft.New("store-1")
	d.SetName("Contact")
	_, _ = d.AddField(model.FieldTypeText)
	emailID, _ := d.AddField(model.FieldTypeEmail)
	d.CloseSelection()

	driver := &stubDriver{
		selectIdx: []int{menuIndex(ActionRemoveField), 0, menuIndex(ActionQuit)},
		confirm:   []bool{true, true},
	}
	editor, err := NewEditor(d, WithPromptDriver(driver))
	if err != nil {
		t.Fatalf("new editor: %v", err)
	}
	if err := editor.Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}
	remaining := d.Fields()
	if len(remaining) != 1 || remaining[0].ID != emailID {
		t.Fatalf("unexpected remaining fields: %+v", remaining)
	}
}

func TestEditorEditCheckbox(t *testing.T) {
	d := draft.New("store-1")
	d.SetName("Prefs")
	id, _ := d.AddField(model.FieldTypeCheckbox)

	driver := &stubDriver{
		inputs:    []string{"Subscribe", ""},
		selectIdx: []int{2}, // Full
		confirm:   []bool{true, false},
	}
	editor, err := NewEditor(d, WithPromptDriver(driver))
	if err != nil {
		t.Fatalf("new editor: %v", err)
	}
	if err := editor.EditSelected(context.Background()); err != nil {
		t.Fatalf("edit: %v", err)
	}
	field, _ := d.Field(id)
	if field.Label != "Subscribe" || field.DefaultValue != "true" || field.Required {
		t.Fatalf("unexpected field: %+v", field.FieldDescriptor)
	}
	if _, ok := d.Selected(); ok {
		t.Fatalf("selection should be closed after editing")
	}
}

func TestEditorAbortPropagates(t *testing.T) {
	driver := &abortDriver{stubDriver: &stubDriver{}}
	d := draft.New("store-1")
	d.SetName("x")
	editor, _ := NewEditor(d, WithPromptDriver(driver))
	if err := editor.Run(context.Background()); !errors.Is(err, ErrAborted) {
		t.Fatalf("expected ErrAborted, got %v", err)
	}
}

type abortDriver struct {
	*stubDriver
}

func (a *abortDriver) Select(context.Context, SelectConfig) (int, error) {
	return 0, ErrAborted
}

func TestValidateNumber(t *testing.T) {
	if err := validateNumber(""); err != nil {
		t.Fatalf("empty should be accepted: %v", err)
	}
	if err := validateNumber("12.5"); err != nil {
		t.Fatalf("number rejected: %v", err)
	}
	if err := validateNumber("ten"); err == nil {
		t.Fatalf("expected error for non-number")
	}
}

func TestNewEditorDefaultsToSurvey(t *testing.T) {
	stdio := terminal.Stdio{In: os.Stdin, Out: os.Stdout, Err: os.Stderr}
	editor, err := NewEditor(draft.New("store-1"), WithStdio(stdio))
	if err != nil {
		t.Fatalf("new editor: %v", err)
	}
	driver, ok := editor.driver.(*surveyDriver)
	if !ok {
		t.Fatalf("driver = %T", editor.driver)
	}
	if driver.stdio.Out != os.Stdout {
		t.Fatalf("stdio not applied")
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := driver.Input(ctx, InputConfig{Message: "Form name"}); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if _, err := driver.Select(context.Background(), SelectConfig{Message: "Field type"}); err == nil {
		t.Fatalf("expected error for empty options")
	}
}
