package server

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/vango-dev/patterns/pkg/assets"
	"github.com/vango-dev/patterns/pkg/catalog"
	"github.com/vango-dev/patterns/pkg/middleware"
	"github.com/vango-dev/patterns/pkg/render"
	"github.com/vango-dev/patterns/pkg/routepath"
	"github.com/vango-dev/patterns/pkg/views"
)

// assetPrefix is where fingerprinted assets are served.
const assetPrefix = "/assets/"

// Server is the HTTP and websocket server for the catalog.
type Server struct {
	config  Config
	catalog catalog.Service
	router  chi.Router

	renderer *render.Renderer
	upgrader websocket.Upgrader
	assets   *assets.Manifest

	// Observability
	registry       *prometheus.Registry
	metrics        *middleware.Metrics
	tracerProvider trace.TracerProvider

	sessions *sessionRegistry

	mu         sync.Mutex
	httpServer *http.Server

	logger *slog.Logger
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithRegistry sets the Prometheus registry metrics are registered on.
// Defaults to a fresh registry carrying the Go and process collectors.
func WithRegistry(reg *prometheus.Registry) Option {
	return func(s *Server) {
		if reg != nil {
			s.registry = reg
		}
	}
}

// WithTracerProvider sets the tracer provider. Defaults to the global one.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(s *Server) {
		if tp != nil {
			s.tracerProvider = tp
		}
	}
}

// New creates a server over svc.
func New(config Config, svc catalog.Service, opts ...Option) *Server {
	s := &Server{
		config:   config.withDefaults(),
		renderer: render.NewRenderer(render.RendererConfig{}),
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.registry == nil {
		s.registry = prometheus.NewRegistry()
		s.registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	}
	if s.tracerProvider == nil {
		s.tracerProvider = otel.GetTracerProvider()
	}

	s.logger = s.logger.With("component", "server")
	s.metrics = middleware.NewMetrics(middleware.WithRegistry(s.registry))
	s.catalog = catalog.Traced(svc, s.tracerProvider.Tracer("github.com/vango-dev/patterns/pkg/catalog"))
	s.sessions = newSessionRegistry()
	s.assets = assets.NewManifest(assetPrefix)
	s.assets.Add("style.css", []byte(views.Stylesheet))
	s.assets.Add("live.js", []byte(liveScript))
	s.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 4096,
	}
	s.router = s.routes()

	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(routepath.Redirect)
	r.Use(middleware.OpenTelemetry(
		middleware.WithTracerProvider(s.tracerProvider),
		middleware.WithRequestFilter(func(r *http.Request) bool {
			return r.URL.Path != "/healthz" && r.URL.Path != s.config.MetricsPath
		}),
	))
	r.Use(s.metrics.Handler)
	r.Use(middleware.Logger(s.logger))
	r.Use(chimw.Recoverer)

	r.Get("/", s.page(homeView))
	r.Get("/pattern/{id}", func(w http.ResponseWriter, r *http.Request) {
		s.page(detailView(chi.URLParam(r, "id")))(w, r)
	})

	r.Handle(assetPrefix+"*", s.assets)

	r.Route("/api", func(r chi.Router) {
		r.Get("/patterns", s.listPatterns)
		r.Get("/patterns/{id}", s.getPattern)
	})

	if s.config.Live {
		r.Get("/live", s.handleLive)
	}
	r.Get("/healthz", s.health)
	if s.config.MetricsPath != "" {
		r.Method(http.MethodGet, s.config.MetricsPath, promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))
	}

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		s.write(w, r, views.Missing(r.URL.Path))
	})

	return r
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Run listens on the configured address and blocks until ctx is done or
// the server fails. Cancelling ctx shuts the server down gracefully.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.config.Address)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve is Run on an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: s.config.ReadHeaderTimeout,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}
	s.mu.Lock()
	s.httpServer = srv
	s.mu.Unlock()

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server starting", "address", ln.Addr().String())
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err

	case <-ctx.Done():
		s.logger.Info("shutting down...")
		return s.Shutdown(context.WithoutCancel(ctx))
	}
}

// Shutdown closes every live session and then stops the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, s.config.ShutdownTimeout)
	defer cancel()

	closed := s.sessions.closeAll()

	s.mu.Lock()
	srv := s.httpServer
	s.mu.Unlock()

	if srv != nil {
		if err := srv.Shutdown(ctx); err != nil {
			s.logger.Error("shutdown error", "error", err)
			return err
		}
	}

	s.logger.Info("server shutdown complete", "closed_sessions", closed)
	return nil
}

// Sessions returns the number of open live sessions.
func (s *Server) Sessions() int {
	return s.sessions.count()
}

// Config returns the server configuration.
func (s *Server) Config() Config {
	return s.config
}

// Registry returns the Prometheus registry.
func (s *Server) Registry() *prometheus.Registry {
	return s.registry
}

// env returns the view collaborators for a surface.
func (s *Server) env() views.Env {
	return views.Env{
		Catalog:  s.catalog,
		Observer: s.metrics,
		Logger:   s.logger,
	}
}
