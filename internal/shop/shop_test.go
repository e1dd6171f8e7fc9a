package shop_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formbuilder/internal/shop"
)

func TestStatic(t *testing.T) {
	info, err := shop.Static{ID: "1", Name: "Demo"}.Resolve(context.Background())
	if err != nil || info.ID != "1" {
		t.Fatalf("resolve = %+v, %v", info, err)
	}
	if _, err := (shop.Static{}).Resolve(context.Background()); !errors.Is(err, shop.ErrUnresolved) {
		t.Fatalf("expected ErrUnresolved, got %v", err)
	}
}

func TestShopifyResolvesAndCaches(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		if r.URL.Path != "/admin/api/2024-04/shop.json" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if r.Header.Get(shop.AccessTokenHeader) != "secret" {
			t.Errorf("missing access token header")
		}
		_, _ = w.Write([]byte(`{"shop":{"id":548380009,"name":"John Smith Test Store","domain":"shop.apple.com"}}`))
	}))
	t.Cleanup(srv.Close)

	now := time.Date(2024, time.May, 4, 12, 0, 0, 0, time.UTC)
	resolver, err := shop.NewShopify("demo.myshopify.com", "secret",
		shop.WithBaseURL(srv.URL),
		shop.WithClock(func() time.Time { return now }),
	)
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	info, err := resolver.Resolve(context.Background())
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	want := shop.Info{ID: "548380009", Name: "John Smith Test Store", Domain: "shop.apple.com"}
	if diff := cmp.Diff(want, info); diff != "" {
		t.Fatalf("info mismatch (-want +got):\n%s", diff)
	}

	if _, err := resolver.Resolve(context.Background()); err != nil {
		t.Fatalf("cached resolve: %v", err)
	}
	if calls.Load() != 1 {
		t.Fatalf("expected cached result, got %d calls", calls.Load())
	}

	now = now.Add(10 * time.Minute)
	if _, err := resolver.Resolve(context.Background()); err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if calls.Load() != 2 {
		t.Fatalf("expected refresh after ttl, got %d calls", calls.Load())
	}
}

func TestShopifyFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, `{"errors":"[API] Invalid API key or access token"}`, http.StatusUnauthorized)
	}))
	t.Cleanup(srv.Close)

	resolver, err := shop.NewShopify("demo.myshopify.com", "bad", shop.WithBaseURL(srv.URL))
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if _, err := resolver.Resolve(context.Background()); !errors.Is(err, shop.ErrUnresolved) {
		t.Fatalf("expected ErrUnresolved, got %v", err)
	}
}

func TestNewShopifyRequiresCredentials(t *testing.T) {
	if _, err := shop.NewShopify("", "token"); err == nil {
		t.Fatalf("expected error for missing domain")
	}
	if _, err := shop.NewShopify("demo.myshopify.com", " "); err == nil {
		t.Fatalf("expected error for missing token")
	}
}
