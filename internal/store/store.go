// Package store persists forms and their submissions. Three backends share
// one contract: Memory for tests and single-process use, File for a JSON
// document on disk, and Mongo for the forms/submissions collections.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/goliatone/go-formbuilder/pkg/model"
)

var (
	// ErrNotFound is returned when a form does not exist.
	ErrNotFound = errors.New("store: not found")
	// ErrConflict is returned when a form id is already taken.
	ErrConflict = errors.New("store: conflict")
)

// SubmissionFilter narrows submission counts. Empty members are ignored;
// From is inclusive and To is exclusive.
type SubmissionFilter struct {
	StoreID string
	FormID  string
	From    time.Time
	To      time.Time
}

// FormUpdate replaces the editable parts of a persisted form.
type FormUpdate struct {
	FormName  string
	Fields    []model.FieldDescriptor
	UpdatedAt time.Time
}

// Store is the persistence contract of the HTTP API. An empty storeID lists
// or counts across every store.
type Store interface {
	CreateForm(ctx context.Context, form model.Form) (model.Form, error)
	GetForm(ctx context.Context, formID string) (model.Form, error)
	UpdateForm(ctx context.Context, formID string, update FormUpdate) (model.Form, error)
	// DeleteForm removes the form and all of its submissions as one unit.
	DeleteForm(ctx context.Context, formID string) error
	CountForms(ctx context.Context, storeID string) (int64, error)
	ListForms(ctx context.Context, storeID string) ([]model.FormSummary, error)

	// CreateSubmission returns ErrNotFound for an unknown form. A blank
	// StoreID is taken from the form.
	CreateSubmission(ctx context.Context, submission model.Submission) (model.Submission, error)
	ListSubmissions(ctx context.Context, storeID string) ([]model.SubmissionView, error)
	CountSubmissions(ctx context.Context, filter SubmissionFilter) (int64, error)

	Close(ctx context.Context) error
}

func (f SubmissionFilter) matches(s model.Submission) bool {
	if f.StoreID != "" && s.StoreID != f.StoreID {
		return false
	}
	if f.FormID != "" && s.FormID != f.FormID {
		return false
	}
	if !f.From.IsZero() && s.SubmittedAt.Before(f.From) {
		return false
	}
	if !f.To.IsZero() && !s.SubmittedAt.Before(f.To) {
		return false
	}
	return true
}
