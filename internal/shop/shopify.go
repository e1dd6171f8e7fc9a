package shop

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
)

const (
	// AccessTokenHeader authenticates Admin API calls.
	AccessTokenHeader = "X-Shopify-Access-Token"
	// DefaultAPIVersion is the Admin REST version used when none is set.
	DefaultAPIVersion = "2024-04"
	defaultCacheTTL   = 5 * time.Minute
)

// ShopifyOption configures a Shopify resolver.
type ShopifyOption func(*Shopify)

// WithHTTPClient overrides the HTTP client.
func WithHTTPClient(client *http.Client) ShopifyOption {
	return func(s *Shopify) {
		if client != nil {
			s.http = client
		}
	}
}

// WithBaseURL overrides https://<domain>, e.g. for tests.
func WithBaseURL(base string) ShopifyOption {
	return func(s *Shopify) {
		if base != "" {
			s.baseURL = strings.TrimRight(base, "/")
		}
	}
}

// WithAPIVersion selects the Admin REST version.
func WithAPIVersion(version string) ShopifyOption {
	return func(s *Shopify) {
		if version != "" {
			s.version = version
		}
	}
}

// WithCacheTTL sets how long a resolved shop is reused. Zero disables caching.
func WithCacheTTL(ttl time.Duration) ShopifyOption {
	return func(s *Shopify) {
		if ttl >= 0 {
			s.ttl = ttl
		}
	}
}

// WithLogger sets the logger.
func WithLogger(logger *zap.Logger) ShopifyOption {
	return func(s *Shopify) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithClock overrides the cache clock.
func WithClock(now func() time.Time) ShopifyOption {
	return func(s *Shopify) {
		if now != nil {
			s.now = now
		}
	}
}

// Shopify resolves the store through the Admin REST shop endpoint.
type Shopify struct {
	baseURL string
	token   string
	version string
	http    *http.Client
	logger  *zap.Logger
	ttl     time.Duration
	now     func() time.Time

	mu       sync.Mutex
	cached   Info
	cachedAt time.Time
}

var _ Resolver = (*Shopify)(nil)

// NewShopify returns a resolver for the shop at domain
// (e.g. "demo.myshopify.com") authenticated by an Admin API access token.
func NewShopify(domain, token string, opts ...ShopifyOption) (*Shopify, error) {
	domain = strings.TrimSpace(domain)
	if domain == "" {
		return nil, errors.New("shop: shop domain is required")
	}
	if strings.TrimSpace(token) == "" {
		return nil, errors.New("shop: access token is required")
	}
	s := &Shopify{
		baseURL: "https://" + strings.TrimPrefix(strings.TrimPrefix(domain, "https://"), "http://"),
		token:   token,
		version: DefaultAPIVersion,
		http:    &http.Client{Timeout: 10 * time.Second},
		logger:  zap.NewNop(),
		ttl:     defaultCacheTTL,
		now:     time.Now,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s, nil
}

type shopResponse struct {
	Shop struct {
		ID     json.Number `json:"id"`
		Name   string      `json:"name"`
		Domain string      `json:"domain"`
	} `json:"shop"`
}

// Resolve implements Resolver. Successful lookups are cached for the
// configured TTL; failures are not cached.
func (s *Shopify) Resolve(ctx context.Context) (Info, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cached.ID != "" && s.ttl > 0 && s.now().Sub(s.cachedAt) < s.ttl {
		return s.cached, nil
	}

	endpoint := fmt.Sprintf("%s/admin/api/%s/shop.json", s.baseURL, s.version)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return Info{}, fmt.Errorf("shop: build request: %w", err)
	}
	req.Header.Set(AccessTokenHeader, s.token)
	req.Header.Set("Accept", "application/json")

	resp, err := s.http.Do(req)
	if err != nil {
		return Info{}, fmt.Errorf("shop: fetch shop: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		s.logger.Warn("shop lookup failed", zap.Int("status", resp.StatusCode), zap.ByteString("body", raw))
		return Info{}, fmt.Errorf("shop: fetch shop: status %d: %w", resp.StatusCode, ErrUnresolved)
	}

	var payload shopResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return Info{}, fmt.Errorf("shop: decode shop: %w", err)
	}
	info := Info{ID: payload.Shop.ID.String(), Name: payload.Shop.Name, Domain: payload.Shop.Domain}
	if info.ID == "" {
		return Info{}, ErrUnresolved
	}

	s.cached = info
	s.cachedAt = s.now()
	return info, nil
}
