// Package dashboard aggregates the counters and listings shown on the
// merchant dashboard.
package dashboard

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/goliatone/go-formbuilder/pkg/model"
)

// API is the subset of the form builder API the dashboard reads from.
// *gateway.Client satisfies it.
type API interface {
	TotalForms(ctx context.Context) (int64, error)
	SubmissionsToday(ctx context.Context) (int64, error)
	Submissions(ctx context.Context) ([]model.SubmissionView, error)
	FormDetails(ctx context.Context) ([]model.FormSummary, error)
	DeleteForm(ctx context.Context, formID string) error
}

// Summary is one consistent load of the dashboard.
type Summary struct {
	TotalForms       int64
	TotalSubmissions int64
	SubmissionsToday int64
	Rows             []model.FormSummary
}

// Option configures a Dashboard.
type Option func(*Dashboard)

// WithLogger sets the logger.
func WithLogger(logger *zap.Logger) Option {
	return func(d *Dashboard) {
		if logger != nil {
			d.logger = logger
		}
	}
}

// Dashboard holds the last loaded summary.
type Dashboard struct {
	api    API
	logger *zap.Logger

	mu      sync.Mutex
	summary Summary
}

// New returns a dashboard reading from api.
func New(api API, opts ...Option) *Dashboard {
	d := &Dashboard{api: api, logger: zap.NewNop()}
	for _, opt := range opts {
		if opt != nil {
			opt(d)
		}
	}
	return d
}

// Load issues the four reads concurrently. Any failure aborts the load and
// leaves the previous summary in place.
func (d *Dashboard) Load(ctx context.Context) (Summary, error) {
	var (
		next        Summary
		submissions []model.SubmissionView
	)

	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		total, err := d.api.TotalForms(egCtx)
		if err != nil {
			return fmt.Errorf("total forms: %w", err)
		}
		next.TotalForms = total
		return nil
	})
	eg.Go(func() error {
		list, err := d.api.Submissions(egCtx)
		if err != nil {
			return fmt.Errorf("submissions: %w", err)
		}
		submissions = list
		return nil
	})
	eg.Go(func() error {
		today, err := d.api.SubmissionsToday(egCtx)
		if err != nil {
			return fmt.Errorf("submissions today: %w", err)
		}
		next.SubmissionsToday = today
		return nil
	})
	eg.Go(func() error {
		rows, err := d.api.FormDetails(egCtx)
		if err != nil {
			return fmt.Errorf("form details: %w", err)
		}
		next.Rows = rows
		return nil
	})

	if err := eg.Wait(); err != nil {
		d.logger.Error("dashboard load failed", zap.Error(err))
		return Summary{}, fmt.Errorf("dashboard: load: %w", err)
	}

	next.TotalSubmissions = int64(len(submissions))
	if next.Rows == nil {
		next.Rows = []model.FormSummary{}
	}

	d.mu.Lock()
	d.summary = next
	d.mu.Unlock()
	return cloneSummary(next), nil
}

// Summary returns the last loaded summary.
func (d *Dashboard) Summary() Summary {
	d.mu.Lock()
	defer d.mu.Unlock()
	return cloneSummary(d.summary)
}

// Rows returns the form rows of the last load.
func (d *Dashboard) Rows() []model.FormSummary {
	return d.Summary().Rows
}

// Delete removes a form remotely, then drops its row from the local view.
// Counters are left as loaded until the next Load.
func (d *Dashboard) Delete(ctx context.Context, formID string) error {
	if err := d.api.DeleteForm(ctx, formID); err != nil {
		d.logger.Error("delete form failed", zap.String("form_id", formID), zap.Error(err))
		return fmt.Errorf("dashboard: delete %s: %w", formID, err)
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	rows := d.summary.Rows[:0:0]
	for _, row := range d.summary.Rows {
		if row.FormID != formID {
			rows = append(rows, row)
		}
	}
	d.summary.Rows = rows
	return nil
}

// Edit records the edit intent. Opening an existing form in the editor is not
// supported.
func (d *Dashboard) Edit(formID string) {
	d.logger.Info("edit form requested", zap.String("form_id", formID))
}

func cloneSummary(s Summary) Summary {
	if s.Rows != nil {
		rows := make([]model.FormSummary, len(s.Rows))
		for i, row := range s.Rows {
			row.Form = row.Form.Clone()
			rows[i] = row
		}
		s.Rows = rows
	}
	return s
}
