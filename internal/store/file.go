package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/gofrs/flock"

	"github.com/goliatone/go-formbuilder/pkg/model"
)

const (
	fileVersion      = "1"
	lockRetryDelay   = 100 * time.Millisecond
	defaultLockAwait = 3 * time.Second
	lockSuffix       = ".lock"
)

// File stores forms and submissions in one JSON document. Every write
// rewrites the document through a temp file and rename while holding an
// exclusive lock on <path>.lock, so processes sharing the file never observe
// half a cascade. Each read takes its own shared lock on a separate handle.
type File struct {
	path      string
	lock      *flock.Flock
	lockAwait time.Duration
	mu        sync.RWMutex
}

var _ Store = (*File)(nil)

type fileDocument struct {
	Version   string    `json:"version"`
	UpdatedAt time.Time `json:"updated_at"`
	dataset
}

// FileOption configures a File store.
type FileOption func(*File)

// WithLockTimeout bounds how long an operation waits for the file lock.
func WithLockTimeout(d time.Duration) FileOption {
	return func(f *File) {
		if d > 0 {
			f.lockAwait = d
		}
	}
}

// NewFile returns a store backed by path. The file is created on first write.
func NewFile(path string, opts ...FileOption) (*File, error) {
	if path == "" {
		return nil, errors.New("store: file path is required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("store: create data dir: %w", err)
	}
	f := &File{
		path:      path,
		lock:      flock.New(path + lockSuffix),
		lockAwait: defaultLockAwait,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(f)
		}
	}
	return f, nil
}

func (f *File) lockPath() string { return f.path + lockSuffix }

func (f *File) acquire(ctx context.Context, shared bool) (func(), error) {
	ctx, cancel := context.WithTimeout(ctx, f.lockAwait)
	defer cancel()

	lock, tryLock := f.lock, f.lock.TryLockContext
	if shared {
		// Readers run concurrently under f.mu; one handle each keeps an early
		// Unlock from dropping the OS lock under the others.
		lock = flock.New(f.lockPath())
		tryLock = lock.TryRLockContext
	}
	locked, err := tryLock(ctx, lockRetryDelay)
	if err != nil {
		if shared {
			_ = lock.Close()
		}
		return nil, fmt.Errorf("store: acquire lock: %w", err)
	}
	if !locked {
		if shared {
			_ = lock.Close()
		}
		return nil, errors.New("store: could not acquire file lock")
	}
	if shared {
		return func() { _ = lock.Close() }, nil
	}
	return func() { _ = lock.Unlock() }, nil
}

func (f *File) load() (*dataset, error) {
	raw, err := os.ReadFile(f.path)
	if errors.Is(err, os.ErrNotExist) || (err == nil && len(raw) == 0) {
		return newDataset(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("store: read %s: %w", f.path, err)
	}
	var doc fileDocument
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("store: parse %s: %w", f.path, err)
	}
	data := doc.dataset
	if data.Forms == nil {
		data.Forms = []model.Form{}
	}
	if data.Submissions == nil {
		data.Submissions = []model.Submission{}
	}
	return &data, nil
}

func (f *File) save(data *dataset) error {
	doc := fileDocument{Version: fileVersion, UpdatedAt: time.Now().UTC(), dataset: *data}
	raw, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("store: encode: %w", err)
	}
	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o644); err != nil {
		return fmt.Errorf("store: write temp file: %w", err)
	}
	if err := os.Rename(tmp, f.path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("store: rename temp file: %w", err)
	}
	return nil
}

func (f *File) read(ctx context.Context, fn func(*dataset) error) error {
	f.mu.RLock()
	defer f.mu.RUnlock()
	unlock, err := f.acquire(ctx, true)
	if err != nil {
		return err
	}
	defer unlock()

	data, err := f.load()
	if err != nil {
		return err
	}
	return fn(data)
}

// write loads, mutates and saves under one lock. Nothing is written when fn
// fails.
func (f *File) write(ctx context.Context, fn func(*dataset) error) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	unlock, err := f.acquire(ctx, false)
	if err != nil {
		return err
	}
	defer unlock()

	data, err := f.load()
	if err != nil {
		return err
	}
	if err := fn(data); err != nil {
		return err
	}
	return f.save(data)
}

func (f *File) CreateForm(ctx context.Context, form model.Form) (model.Form, error) {
	var created model.Form
	err := f.write(ctx, func(d *dataset) (err error) {
		created, err = d.createForm(form)
		return err
	})
	return created, err
}

func (f *File) GetForm(ctx context.Context, formID string) (model.Form, error) {
	var form model.Form
	err := f.read(ctx, func(d *dataset) (err error) {
		form, err = d.getForm(formID)
		return err
	})
	return form, err
}

func (f *File) UpdateForm(ctx context.Context, formID string, update FormUpdate) (model.Form, error) {
	var updated model.Form
	err := f.write(ctx, func(d *dataset) (err error) {
		updated, err = d.updateForm(formID, update)
		return err
	})
	return updated, err
}

func (f *File) DeleteForm(ctx context.Context, formID string) error {
	return f.write(ctx, func(d *dataset) error {
		return d.deleteForm(formID)
	})
}

func (f *File) CountForms(ctx context.Context, storeID string) (int64, error) {
	var count int64
	err := f.read(ctx, func(d *dataset) error {
		count = d.countForms(storeID)
		return nil
	})
	return count, err
}

func (f *File) ListForms(ctx context.Context, storeID string) ([]model.FormSummary, error) {
	var forms []model.FormSummary
	err := f.read(ctx, func(d *dataset) error {
		forms = d.listForms(storeID)
		return nil
	})
	return forms, err
}

func (f *File) CreateSubmission(ctx context.Context, submission model.Submission) (model.Submission, error) {
	var created model.Submission
	err := f.write(ctx, func(d *dataset) (err error) {
		created, err = d.createSubmission(submission)
		return err
	})
	return created, err
}

func (f *File) ListSubmissions(ctx context.Context, storeID string) ([]model.SubmissionView, error) {
	var views []model.SubmissionView
	err := f.read(ctx, func(d *dataset) error {
		views = d.listSubmissions(storeID)
		return nil
	})
	return views, err
}

func (f *File) CountSubmissions(ctx context.Context, filter SubmissionFilter) (int64, error) {
	var count int64
	err := f.read(ctx, func(d *dataset) error {
		count = d.countSubmissions(filter)
		return nil
	})
	return count, err
}

// Close removes the lock file.
func (f *File) Close(context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	_ = f.lock.Close()
	if err := os.Remove(f.lockPath()); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("store: remove lock file: %w", err)
	}
	return nil
}
