package server

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/whiterosearts/petalsite/internal/content"
	"github.com/whiterosearts/petalsite/internal/scroll"
)

// Config holds server configuration.
type Config struct {
	Port      int
	SiteDir   string  // directory containing the generated site
	AllowAll  bool    // allow all CORS origins (dev mode)
	FrameRate int     // sampling rate of live scroll drivers
	Travel    float64 // reveal travel reported in live frames
}

// Server is the local preview server.
type Server struct {
	cfg        Config
	logger     *zap.Logger
	metrics    *metrics
	router     chi.Router
	httpServer *http.Server

	mu      sync.RWMutex
	content *content.Content

	sessionMu sync.Mutex
	sessions  sync.WaitGroup
	closing   chan struct{}
	stopOnce  sync.Once
}

// New creates a preview server for the site built from c.
func New(cfg Config, c *content.Content, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.FrameRate <= 0 {
		cfg.FrameRate = scroll.DefaultFrameRate
	}
	if cfg.Travel <= 0 {
		cfg.Travel = scroll.DefaultTravel
	}
	s := &Server{
		cfg:     cfg,
		logger:  logger,
		metrics: newMetrics(),
		content: c,
		closing: make(chan struct{}),
	}
	s.router = s.buildRouter()
	s.httpServer = &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
	return s
}

// buildRouter creates and configures the chi router with all routes.
func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(s.logger))
	r.Use(middleware.Recoverer)

	// CORS
	corsOpts := cors.Options{
		AllowedOrigins: []string{"http://localhost:*", "http://127.0.0.1:*"},
		AllowedMethods: []string{"GET", "HEAD", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}
	if s.cfg.AllowAll {
		corsOpts.AllowedOrigins = []string{"*"}
	}
	r.Use(cors.Handler(corsOpts))

	// The live socket outlives any request timeout.
	r.Get(liveRoute, s.handleLive)

	r.Group(func(r chi.Router) {
		r.Use(middleware.Timeout(60 * time.Second))

		r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			w.Write([]byte(`{"status":"ok"}`))
		})
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(s.metrics.registry, promhttp.HandlerOpts{}))
		r.Get("/go/{slug}/petal/{index}", s.handlePetal)

		if s.cfg.SiteDir != "" {
			r.Handle("/*", http.FileServer(http.Dir(s.cfg.SiteDir)))
		}
	})

	return r
}

// Router returns the chi router.
func (s *Server) Router() chi.Router { return s.router }

// Content returns the content currently served.
func (s *Server) Content() *content.Content {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.content
}

// SetContent swaps the content after a rebuild.
func (s *Server) SetContent(c *content.Content) {
	s.mu.Lock()
	s.content = c
	s.mu.Unlock()
}

// handlePetal redirects a petal click to its sheet link. A petal without a
// valid link is a no-op and answers 204.
func (s *Server) handlePetal(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	c := s.Content()
	if c == nil {
		http.NotFound(w, r)
		return
	}
	show, ok := c.FindShow(slug)
	if !ok {
		s.metrics.petalClicks.WithLabelValues(slug, "unknown_show").Inc()
		http.NotFound(w, r)
		return
	}

	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		s.metrics.petalClicks.WithLabelValues(slug, "noop").Inc()
		w.WriteHeader(http.StatusNoContent)
		return
	}
	link, ok := show.PetalLink(index)
	if !ok {
		s.logger.Debug("petal has no link",
			zap.String("show", slug),
			zap.Int("petal", index))
		s.metrics.petalClicks.WithLabelValues(slug, "noop").Inc()
		w.WriteHeader(http.StatusNoContent)
		return
	}

	s.metrics.petalClicks.WithLabelValues(slug, "redirect").Inc()
	http.Redirect(w, r, link.URL, http.StatusFound)
}

// Start begins listening on the configured port. It returns
// http.ErrServerClosed once Shutdown has been called, including when Shutdown
// ran first.
func (s *Server) Start() error {
	select {
	case <-s.closing:
		return http.ErrServerClosed
	default:
	}

	s.logger.Info("preview server listening",
		zap.String("addr", s.httpServer.Addr),
		zap.String("site", s.cfg.SiteDir))
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully shuts down the server and ends live sessions.
func (s *Server) Shutdown(ctx context.Context) error {
	s.stopOnce.Do(func() {
		s.sessionMu.Lock()
		close(s.closing)
		s.sessionMu.Unlock()
	})

	err := s.httpServer.Shutdown(ctx)

	done := make(chan struct{})
	go func() {
		s.sessions.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-ctx.Done():
		if err == nil {
			err = ctx.Err()
		}
	}
	return err
}

// requestLogger logs each request through zap once it completes.
func requestLogger(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			defer func() {
				logger.Debug("request",
					zap.String("method", r.Method),
					zap.String("path", r.URL.Path),
					zap.Int("status", ww.Status()),
					zap.Int("bytes", ww.BytesWritten()),
					zap.Duration("elapsed", time.Since(start)),
					zap.String("request_id", middleware.GetReqID(r.Context())))
			}()
			next.ServeHTTP(ww, r)
		})
	}
}
