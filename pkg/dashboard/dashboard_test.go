package dashboard_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formbuilder/pkg/dashboard"
	"github.com/goliatone/go-formbuilder/pkg/gateway"
	"github.com/goliatone/go-formbuilder/pkg/model"
)

var _ dashboard.API = (*gateway.Client)(nil)

type stubAPI struct {
	total       int64
	today       int64
	submissions []model.SubmissionView
	details     []model.FormSummary
	failDetails error
	failDelete  error
	deleted     []string
}

func (s *stubAPI) TotalForms(context.Context) (int64, error)       { return s.total, nil }
func (s *stubAPI) SubmissionsToday(context.Context) (int64, error) { return s.today, nil }
func (s *stubAPI) Submissions(context.Context) ([]model.SubmissionView, error) {
	return s.submissions, nil
}

func (s *stubAPI) FormDetails(context.Context) ([]model.FormSummary, error) {
	if s.failDetails != nil {
		return nil, s.failDetails
	}
	return s.details, nil
}

func (s *stubAPI) DeleteForm(_ context.Context, formID string) error {
	if s.failDelete != nil {
		return s.failDelete
	}
	s.deleted = append(s.deleted, formID)
	return nil
}

func row(id string, total int64) model.FormSummary {
	return model.FormSummary{Form: model.Form{FormID: id, FormName: id, StoreID: "store-1"}, TotalSubmissions: total}
}

func newStub() *stubAPI {
	return &stubAPI{
		total: 2,
		today: 1,
		submissions: []model.SubmissionView{
			{Submission: model.Submission{ID: "s1", FormID: "form_1"}},
			{Submission: model.Submission{ID: "s2", FormID: "form_1"}},
			{Submission: model.Submission{ID: "s3", FormID: "form_2"}},
		},
		details: []model.FormSummary{row("form_1", 2), row("form_2", 1)},
	}
}

func TestLoadAggregatesReads(t *testing.T) {
	dash := dashboard.New(newStub())
	got, err := dash.Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	want := dashboard.Summary{
		TotalForms:       2,
		TotalSubmissions: 3,
		SubmissionsToday: 1,
		Rows:             []model.FormSummary{row("form_1", 2), row("form_2", 1)},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("summary mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadFailureReturnsNoPartialSummary(t *testing.T) {
	api := newStub()
	dash := dashboard.New(api)
	if _, err := dash.Load(context.Background()); err != nil {
		t.Fatalf("first load: %v", err)
	}

	boom := errors.New("boom")
	api.failDetails = boom
	api.total = 9
	got, err := dash.Load(context.Background())
	if !errors.Is(err, boom) {
		t.Fatalf("expected wrapped boom, got %v", err)
	}
	if diff := cmp.Diff(dashboard.Summary{}, got); diff != "" {
		t.Fatalf("expected zero summary on failure:\n%s", diff)
	}
	if dash.Summary().TotalForms != 2 {
		t.Fatalf("previous summary should be kept, got %+v", dash.Summary())
	}
}

func TestDeleteRemovesRow(t *testing.T) {
	api := newStub()
	dash := dashboard.New(api)
	if _, err := dash.Load(context.Background()); err != nil {
		t.Fatalf("load: %v", err)
	}
	if err := dash.Delete(context.Background(), "form_1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	rows := dash.Rows()
	if len(rows) != 1 || rows[0].FormID != "form_2" {
		t.Fatalf("unexpected rows: %+v", rows)
	}
	if diff := cmp.Diff([]string{"form_1"}, api.deleted); diff != "" {
		t.Fatalf("deleted ids mismatch:\n%s", diff)
	}
}

func TestDeleteFailureKeepsRow(t *testing.T) {
	api := newStub()
	dash := dashboard.New(api)
	if _, err := dash.Load(context.Background()); err != nil {
		t.Fatalf("load: %v", err)
	}
	api.failDelete = errors.New("status 500")
	if err := dash.Delete(context.Background(), "form_1"); err == nil {
		t.Fatalf("expected error")
	}
	if len(dash.Rows()) != 2 {
		t.Fatalf("row must stay after a failed delete")
	}
}

func TestEmptyDetailsYieldEmptyRows(t *testing.T) {
	api := newStub()
	api.details = nil
	got, err := dashboard.New(api).Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.Rows == nil || len(got.Rows) != 0 {
		t.Fatalf("expected empty non-nil rows, got %#v", got.Rows)
	}
}
