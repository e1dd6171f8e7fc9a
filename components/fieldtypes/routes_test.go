package fieldtypes

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestMountPath(t *testing.T) {
	cases := map[string]string{
		MountPath("/admin"):                               "/admin/api/field-types",
		MountPath("admin/"):                               "/admin/api/field-types",
		MountPath("", WithRoutePath("types")):             "/types",
		MountPath("/admin", WithRoutePath("/api/types/")): "/admin/api/types",
	}
	for got, want := range cases {
		if got != want {
			t.Fatalf("mount path = %q, want %q", got, want)
		}
	}
}

func TestComponentRegistersRoutes(t *testing.T) {
	mux := http.NewServeMux()
	pattern, err := New().RegisterRoutes(mux, "/")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if pattern != "/api/field-types" {
		t.Fatalf("pattern = %q", pattern)
	}

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, pattern+"?q=email", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	if _, err := RegisterRoutes(nil, "/"); err == nil {
		t.Fatalf("expected error for nil mux")
	}
}
