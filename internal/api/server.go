// Package api serves the form builder JSON API: form persistence, dashboard
// reads, shopper submissions, and server-rendered previews.
package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	formbuilder "github.com/goliatone/go-formbuilder"
	"github.com/goliatone/go-formbuilder/components/fieldtypes"
	"github.com/goliatone/go-formbuilder/internal/shop"
	"github.com/goliatone/go-formbuilder/internal/store"
	"github.com/goliatone/go-formbuilder/pkg/fields"
	"github.com/goliatone/go-formbuilder/pkg/render"
	"github.com/goliatone/go-formbuilder/pkg/renderers/vanilla"
	"github.com/goliatone/go-formbuilder/pkg/validation"
)

const (
	// IdempotencyHeader collapses retried save requests.
	IdempotencyHeader = "Idempotency-Key"

	defaultIdempotencyTTL = 24 * time.Hour
	maxBodyBytes          = 1 << 20
)

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the logger.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithClock overrides the clock used for timestamps and the "today" window.
func WithClock(now func() time.Time) Option {
	return func(s *Server) {
		if now != nil {
			s.now = now
		}
	}
}

// WithLocation sets the time zone whose calendar day "today" refers to.
// Defaults to time.Local.
func WithLocation(loc *time.Location) Option {
	return func(s *Server) {
		if loc != nil {
			s.loc = loc
		}
	}
}

// WithExposeErrors includes the raw error text in 500 responses.
func WithExposeErrors(expose bool) Option {
	return func(s *Server) {
		s.exposeErrors = expose
	}
}

// WithRegistry overrides the field registry used to check descriptors.
func WithRegistry(registry *fields.Registry) Option {
	return func(s *Server) {
		if registry != nil {
			s.registry = registry
		}
	}
}

// WithValidator overrides the submission validator.
func WithValidator(v *validation.Validator) Option {
	return func(s *Server) {
		if v != nil {
			s.validator = v
		}
	}
}

// WithRenderers replaces the preview renderer registry.
func WithRenderers(registry *render.Registry) Option {
	return func(s *Server) {
		if registry != nil {
			s.renderers = registry
		}
	}
}

// WithIDGenerator overrides submission id generation.
func WithIDGenerator(fn func() string) Option {
	return func(s *Server) {
		if fn != nil {
			s.newID = fn
		}
	}
}

// WithIdempotencyTTL sets how long save responses are replayed.
func WithIdempotencyTTL(ttl time.Duration) Option {
	return func(s *Server) {
		if ttl > 0 {
			s.idempotencyTTL = ttl
		}
	}
}

// Server holds the API dependencies.
type Server struct {
	store     store.Store
	shop      shop.Resolver
	logger    *zap.Logger
	now       func() time.Time
	loc       *time.Location
	registry  *fields.Registry
	validator *validation.Validator
	renderers *render.Registry
	newID     func() string

	exposeErrors   bool
	idempotencyTTL time.Duration
	replays        *replayCache
	flight         singleflight.Group
}

// New builds a server over st, resolving the owning store through resolver.
func New(st store.Store, resolver shop.Resolver, opts ...Option) (*Server, error) {
	if st == nil {
		return nil, errors.New("api: store is required")
	}
	if resolver == nil {
		return nil, errors.New("api: shop resolver is required")
	}
	s := &Server{
		store:          st,
		shop:           resolver,
		logger:         zap.NewNop(),
		now:            time.Now,
		loc:            time.Local,
		registry:       fields.Default(),
		newID:          uuid.NewString,
		idempotencyTTL: defaultIdempotencyTTL,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	if s.validator == nil {
		s.validator = validation.New(validation.WithRegistry(s.registry))
	}
	if s.renderers == nil {
		preview, err := vanilla.NewPreview(vanilla.WithFieldRegistry(s.registry))
		if err != nil {
			return nil, err
		}
		registry, err := render.NewRegistry(preview)
		if err != nil {
			return nil, err
		}
		s.renderers = registry
	}
	s.replays = newReplayCache(s.idempotencyTTL, s.now)
	return s, nil
}

// Handler returns the routed API.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(requestLogger(s.logger))
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok"))
	})

	r.Handle("/assets/*", http.StripPrefix("/assets/", http.FileServerFS(formbuilder.AssetsFS())))

	r.Route("/api", func(r chi.Router) {
		r.Use(limitBody)

		r.Get("/store/info", s.storeInfo)
		r.Post("/save-form", s.saveForm)
		r.Post("/submit-form", s.submitForm)
		r.Get("/submissions", s.listSubmissions)

		r.Get("/forms/total", s.totalForms)
		r.Get("/forms/today", s.submissionsToday)
		r.Get("/forms/details", s.formDetails)
		r.Put("/forms/{formId}", s.updateForm)
		r.Delete("/forms/{formId}", s.deleteForm)
		r.Get("/forms/{formId}/preview", s.previewForm)
		r.Get("/forms/{formId}/schema", s.formSchema)

		catalogue := fieldtypes.New(fieldtypes.WithRegistry(s.registry), fieldtypes.WithRoutePath("/field-types"))
		if _, err := catalogue.RegisterRoutes(r, "/"); err != nil {
			s.logger.Error("register field type catalogue", zap.Error(err))
		}
	})

	return r
}

func limitBody(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Body != nil {
			r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
		}
		next.ServeHTTP(w, r)
	})
}
