package store

import (
	"context"
	"sync"

	"github.com/goliatone/go-formbuilder/pkg/model"
)

// Memory keeps everything in process.
type Memory struct {
	mu   sync.RWMutex
	data *dataset
}

var _ Store = (*Memory)(nil)

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{data: newDataset()}
}

func (m *Memory) CreateForm(_ context.Context, form model.Form) (model.Form, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.data.createForm(form)
}

func (m *Memory) GetForm(_ context.Context, formID string) (model.Form, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.data.getForm(formID)
}

func (m *Memory) UpdateForm(_ context.Context, formID string, update FormUpdate) (model.Form, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.data.updateForm(formID, update)
}

func (m *Memory) DeleteForm(_ context.Context, formID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.data.deleteForm(formID)
}

func (m *Memory) CountForms(_ context.Context, storeID string) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.data.countForms(storeID), nil
}

func (m *Memory) ListForms(_ context.Context, storeID string) ([]model.FormSummary, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.data.listForms(storeID), nil
}

func (m *Memory) CreateSubmission(_ context.Context, submission model.Submission) (model.Submission, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.data.createSubmission(submission)
}

func (m *Memory) ListSubmissions(_ context.Context, storeID string) ([]model.SubmissionView, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.data.listSubmissions(storeID), nil
}

func (m *Memory) CountSubmissions(_ context.Context, filter SubmissionFilter) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.data.countSubmissions(filter), nil
}

func (m *Memory) Close(context.Context) error { return nil }
