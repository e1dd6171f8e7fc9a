package store_test

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formbuilder/internal/store"
	"github.com/goliatone/go-formbuilder/pkg/model"
	"github.com/goliatone/go-formbuilder/pkg/testsupport"
)

var day = time.Date(2024, time.May, 4, 0, 0, 0, 0, time.UTC)

func backends(t *testing.T) map[string]func(t *testing.T) store.Store {
	t.Helper()
	return map[string]func(t *testing.T) store.Store{
		"memory": func(t *testing.T) store.Store { return store.NewMemory() },
		"file": func(t *testing.T) store.Store {
			s, err := store.NewFile(filepath.Join(t.TempDir(), "data", "forms.json"))
			if err != nil {
				t.Fatalf("new file store: %v", err)
			}
			t.Cleanup(func() { _ = s.Close(context.Background()) })
			return s
		},
	}
}

func runConformance(t *testing.T, fn func(t *testing.T, s store.Store)) {
	for name, factory := range backends(t) {
		t.Run(name, func(t *testing.T) {
			fn(t, factory(t))
		})
	}
}

func mustCreateForm(t *testing.T, s store.Store, formID, storeID string) model.Form {
	t.Helper()
	form := testsupport.SampleForm(formID, storeID)
	created, err := s.CreateForm(context.Background(), form)
	if err != nil {
		t.Fatalf("create form %s: %v", formID, err)
	}
	return created
}

func mustSubmit(t *testing.T, s store.Store, formID, storeID string, at time.Time) model.Submission {
	t.Helper()
	sub, err := s.CreateSubmission(context.Background(), model.Submission{
		FormID:         formID,
		StoreID:        storeID,
		SubmissionData: map[string]string{"email": "jane@example.com"},
		SubmittedAt:    at,
	})
	if err != nil {
		t.Fatalf("create submission: %v", err)
	}
	return sub
}

func TestCreateAndGetForm(t *testing.T) {
	runConformance(t, func(t *testing.T, s store.Store) {
		ctx := context.Background()
		created := mustCreateForm(t, s, "form_1", "store-1")

		got, err := s.GetForm(ctx, "form_1")
		if err != nil {
			t.Fatalf("get form: %v", err)
		}
		if diff := cmp.Diff(created, got); diff != "" {
			t.Fatalf("form mismatch (-want +got):\n%s", diff)
		}

		if _, err := s.CreateForm(ctx, testsupport.SampleForm("form_1", "store-1")); !errors.Is(err, store.ErrConflict) {
			t.Fatalf("expected ErrConflict, got %v", err)
		}
		if _, err := s.GetForm(ctx, "missing"); !errors.Is(err, store.ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})
}

func TestUpdateForm(t *testing.T) {
	runConformance(t, func(t *testing.T, s store.Store) {
		ctx := context.Background()
		mustCreateForm(t, s, "form_1", "store-1")

		at := day.Add(5 * time.Hour)
		fields := []model.FieldDescriptor{{Type: model.FieldTypeText, Label: "Name", Size: model.SizeFull}}
		updated, err := s.UpdateForm(ctx, "form_1", store.FormUpdate{FormName: "Renamed", Fields: fields, UpdatedAt: at})
		if err != nil {
			t.Fatalf("update: %v", err)
		}
		if updated.FormName != "Renamed" || !updated.UpdatedAt.Equal(at) || updated.StoreID != "store-1" {
			t.Fatalf("unexpected update result: %+v", updated)
		}
		if diff := cmp.Diff(fields, updated.Fields); diff != "" {
			t.Fatalf("fields mismatch (-want +got):\n%s", diff)
		}

		if _, err := s.UpdateForm(ctx, "missing", store.FormUpdate{FormName: "x"}); !errors.Is(err, store.ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})
}

func TestListFormsScopedByStore(t *testing.T) {
	runConformance(t, func(t *testing.T, s store.Store) {
		ctx := context.Background()
		mustCreateForm(t, s, "form_1", "store-1")
		mustCreateForm(t, s, "form_2", "store-1")
		mustCreateForm(t, s, "form_3", "store-2")
		mustSubmit(t, s, "form_1", "store-1", day)
		mustSubmit(t, s, "form_1", "store-1", day.Add(time.Hour))
		mustSubmit(t, s, "form_3", "store-2", day)

		rows, err := s.ListForms(ctx, "store-1")
		if err != nil {
			t.Fatalf("list forms: %v", err)
		}
		got := map[string]int64{}
		for _, row := range rows {
			got[row.FormID] = row.TotalSubmissions
		}
		if diff := cmp.Diff(map[string]int64{"form_1": 2, "form_2": 0}, got); diff != "" {
			t.Fatalf("rows mismatch (-want +got):\n%s", diff)
		}

		if total, _ := s.CountForms(ctx, ""); total != 3 {
			t.Fatalf("total forms = %d", total)
		}
		if scoped, _ := s.CountForms(ctx, "store-2"); scoped != 1 {
			t.Fatalf("store-2 forms = %d", scoped)
		}
	})
}

func TestSubmissionsPopulateForm(t *testing.T) {
	runConformance(t, func(t *testing.T, s store.Store) {
		ctx := context.Background()
		mustCreateForm(t, s, "form_1", "store-1")
		sub := mustSubmit(t, s, "form_1", "store-1", day)
		if sub.ID == "" {
			t.Fatalf("submission id should be generated")
		}

		views, err := s.ListSubmissions(ctx, "store-1")
		if err != nil {
			t.Fatalf("list submissions: %v", err)
		}
		if len(views) != 1 || views[0].Form == nil || views[0].Form.FormName != "Contact" {
			t.Fatalf("unexpected views: %+v", views)
		}
		if views[0].SubmissionData["email"] != "jane@example.com" {
			t.Fatalf("submission data lost: %+v", views[0].SubmissionData)
		}

		if _, err := s.CreateSubmission(ctx, model.Submission{FormID: "missing", SubmittedAt: day}); !errors.Is(err, store.ErrNotFound) {
			t.Fatalf("expected ErrNotFound for unknown form, got %v", err)
		}
	})
}

func TestCountSubmissionsWindowIsHalfOpen(t *testing.T) {
	runConformance(t, func(t *testing.T, s store.Store) {
		ctx := context.Background()
		mustCreateForm(t, s, "form_1", "store-1")
		nextDay := day.Add(24 * time.Hour)
		mustSubmit(t, s, "form_1", "store-1", day.Add(-time.Millisecond))
		mustSubmit(t, s, "form_1", "store-1", day)
		mustSubmit(t, s, "form_1", "store-1", nextDay.Add(-time.Millisecond))
		mustSubmit(t, s, "form_1", "store-1", nextDay)

		count, err := s.CountSubmissions(ctx, store.SubmissionFilter{From: day, To: nextDay})
		if err != nil {
			t.Fatalf("count: %v", err)
		}
		if count != 2 {
			t.Fatalf("expected 2 submissions inside the day, got %d", count)
		}
		if other, _ := s.CountSubmissions(ctx, store.SubmissionFilter{StoreID: "store-2"}); other != 0 {
			t.Fatalf("store-2 count = %d", other)
		}
	})
}

func TestDeleteFormCascades(t *testing.T) {
	runConformance(t, func(t *testing.T, s store.Store) {
		ctx := context.Background()
		mustCreateForm(t, s, "form_1", "store-1")
		mustCreateForm(t, s, "form_2", "store-1")
		mustSubmit(t, s, "form_1", "store-1", day)
		mustSubmit(t, s, "form_2", "store-1", day)

		if err := s.DeleteForm(ctx, "form_1"); err != nil {
			t.Fatalf("delete: %v", err)
		}
		rows, _ := s.ListForms(ctx, "store-1")
		if len(rows) != 1 || rows[0].FormID != "form_2" {
			t.Fatalf("details still list deleted form: %+v", rows)
		}
		views, _ := s.ListSubmissions(ctx, "store-1")
		if len(views) != 1 || views[0].FormID != "form_2" {
			t.Fatalf("submissions still list deleted form: %+v", views)
		}
		if err := s.DeleteForm(ctx, "form_1"); !errors.Is(err, store.ErrNotFound) {
			t.Fatalf("expected ErrNotFound on second delete, got %v", err)
		}
	})
}

func TestConcurrentWrites(t *testing.T) {
	runConformance(t, func(t *testing.T, s store.Store) {
		ctx := context.Background()
		mustCreateForm(t, s, "form_1", "store-1")

		var wg sync.WaitGroup
		for i := 0; i < 10; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				if _, err := s.CreateSubmission(ctx, model.Submission{FormID: "form_1", StoreID: "store-1", SubmittedAt: day}); err != nil {
					t.Errorf("submit: %v", err)
				}
			}()
		}
		wg.Wait()

		count, err := s.CountSubmissions(ctx, store.SubmissionFilter{FormID: "form_1"})
		if err != nil || count != 10 {
			t.Fatalf("count = %d, %v", count, err)
		}
	})
}

func TestFileStorePersistsAcrossInstances(t *testing.T) {
	path := filepath.Join(t.TempDir(), "forms.json")
	first, err := store.NewFile(path)
	if err != nil {
		t.Fatalf("new file: %v", err)
	}
	mustCreateForm(t, first, "form_1", "store-1")
	_ = first.Close(context.Background())

	second, err := store.NewFile(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	got, err := second.GetForm(context.Background(), "form_1")
	if err != nil {
		t.Fatalf("get after reopen: %v", err)
	}
	if got.FormName != "Contact" || len(got.Fields) != len(testsupport.SampleFields()) {
		t.Fatalf("unexpected form after reopen: %+v", got)
	}
}
