// Package api provides the HTTP API for colour lookup, picking and the saved
// colour collection.
package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/hashicorp/go-hclog"

	"github.com/figerout/figerout/internal/collection"
	"github.com/figerout/figerout/internal/describe"
	"github.com/figerout/figerout/internal/version"
)

// Defaults for Options.
const (
	DefaultMaxUpload  = 20 << 20
	DefaultMaxSurface = 2048
)

// Options configures a Server.
type Options struct {
	Collection *collection.Service
	Describer  describe.Describer
	Logger     hclog.Logger

	// MaxUpload bounds multipart image uploads, in bytes.
	MaxUpload int64

	// MaxSurface bounds each side of the sampling surface. Requests may ask
	// for a smaller surface with maxWidth/maxHeight but never a larger one.
	// Zero means DefaultMaxSurface.
	MaxSurface int

	// MaxPixels bounds the declared dimensions of uploaded images, checked
	// before decoding. Zero means image.DefaultMaxPixels.
	MaxPixels int

	// AllowedOrigins for CORS. Empty allows any origin.
	AllowedOrigins []string
}

// Server holds dependencies for HTTP handlers.
type Server struct {
	collection *collection.Service
	describer  describe.Describer
	validator  *requestValidator
	logger     hclog.Logger
	maxUpload  int64
	maxSurface int
	maxPixels  int
	origins    []string
	router     *chi.Mux
}

// NewServer creates a new HTTP server with all routes configured.
func NewServer(opts Options) *Server {
	s := &Server{
		collection: opts.Collection,
		describer:  opts.Describer,
		validator:  newRequestValidator(),
		logger:     opts.Logger,
		maxUpload:  opts.MaxUpload,
		maxSurface: opts.MaxSurface,
		maxPixels:  opts.MaxPixels,
		origins:    opts.AllowedOrigins,
		router:     chi.NewRouter(),
	}
	if s.logger == nil {
		s.logger = hclog.NewNullLogger()
	}
	if s.maxUpload <= 0 {
		s.maxUpload = DefaultMaxUpload
	}
	if s.maxSurface <= 0 {
		s.maxSurface = DefaultMaxSurface
	}
	if s.describer == nil {
		s.describer = describe.NewClient(nil, describe.Options{})
	}
	if len(s.origins) == 0 {
		s.origins = []string{"*"}
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(s.requestLogger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-Id"},
		ExposedHeaders: []string{"X-Request-Id"},
		MaxAge:         300,
	}))
}

func (s *Server) setupRoutes() {
	s.router.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", s.handleHealth)

		r.Route("/colours/{hex}", func(r chi.Router) {
			r.Get("/", s.handleGetColour)
			r.Get("/shades", s.handleGetShades)
			r.Get("/description", s.handleGetDescription)
		})

		r.Post("/sample", s.handleSample)

		r.Route("/collection", func(r chi.Router) {
			r.Get("/", s.handleListCollection)
			r.Post("/", s.handleSaveColour)
			r.Get("/{id}", s.handleGetSaved)
			r.Patch("/{id}", s.handleUpdateNote)
			r.Delete("/{id}", s.handleDeleteSaved)
		})
	})
}

// requestLogger logs one line per request through hclog.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}

// HealthResponse is returned by the health endpoint.
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{Status: "healthy", Version: version.Version}, s.logger)
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve %s: %w", addr, err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	s.logger.Info("shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
