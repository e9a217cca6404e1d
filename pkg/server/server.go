package server

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel/trace"

	"github.com/vango-dev/tooltip/pkg/geometry"
	"github.com/vango-dev/tooltip/pkg/telemetry"
)

// Server is the playground HTTP handler.
type Server struct {
	config   *Config
	router   chi.Router
	upgrader websocket.Upgrader
	logger   *slog.Logger

	registry prometheus.Registerer
	gatherer prometheus.Gatherer
	tracer   trace.TracerProvider
	metrics  *telemetry.Metrics
	solver   geometry.Solver

	mu       sync.Mutex
	sessions map[*Session]struct{}
}

// Option configures a Server.
type Option func(*Server)

// WithRegistry registers the tooltip metrics with reg and serves it on
// /metrics. Default: the global Prometheus registry.
func WithRegistry(reg *prometheus.Registry) Option {
	return func(s *Server) {
		s.registry = reg
		s.gatherer = reg
	}
}

// WithTracerProvider traces position computations with tp.
// Default: the global OpenTelemetry provider.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(s *Server) {
		s.tracer = tp
	}
}

// WithSolver replaces geometry.DefaultSolver.
func WithSolver(solver geometry.Solver) Option {
	return func(s *Server) {
		s.solver = solver
	}
}

// New creates the playground server. Without WithRegistry the metrics go
// to the global Prometheus registry; servers created in the same process
// then share one set of series.
func New(config *Config, opts ...Option) *Server {
	config = config.withDefaults()
	s := &Server{
		config:   config,
		logger:   config.Logger.With("component", "server"),
		registry: prometheus.DefaultRegisterer,
		gatherer: prometheus.DefaultGatherer,
		solver:   geometry.DefaultSolver,
		sessions: make(map[*Session]struct{}),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  config.ReadBufferSize,
			WriteBufferSize: config.WriteBufferSize,
			CheckOrigin:     config.CheckOrigin,
		},
	}
	for _, opt := range opts {
		opt(s)
	}

	if err := config.Tooltip.Validate(); err != nil {
		s.logger.Warn("config warning", "warning", err)
	}

	s.metrics = telemetry.NewMetrics(telemetry.WithRegistry(s.registry))
	var traceOpts []telemetry.TraceOption
	if s.tracer != nil {
		traceOpts = append(traceOpts, telemetry.WithTracerProvider(s.tracer))
	}
	s.solver = s.metrics.Solver(telemetry.TraceSolver(s.solver, traceOpts...))

	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/", s.handlePage)
	r.Get("/ws", s.HandleWebSocket)
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))
	r.Get("/healthz", s.handleHealthz)
	return r
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(pageHTML)
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"status":   "ok",
		"sessions": s.SessionCount(),
	})
}

// HandleWebSocket upgrades the connection, waits for the hello frame and
// starts a session.
func (s *Server) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error("websocket upgrade failed", "error", err)
		return
	}

	conn.SetReadLimit(s.config.MaxMessageSize)
	conn.SetReadDeadline(time.Now().Add(s.config.HandshakeTimeout))

	_, msg, err := conn.ReadMessage()
	if err != nil {
		s.logger.Error("handshake read failed", "error", err)
		conn.Close()
		return
	}

	hello, err := DecodeFrame(msg)
	if err == nil && hello.Type != FrameHello {
		err = errors.New("first frame must be hello")
	}
	if err != nil {
		s.logger.Warn("handshake rejected", "error", err)
		if data, merr := json.Marshal(errorFrame(err)); merr == nil {
			conn.WriteMessage(websocket.TextMessage, data)
		}
		conn.Close()
		return
	}

	session := newSession(conn, s.config, s.solver, s.metrics.AutoUpdater, hello)
	s.metrics.Observe(session.ctrl)
	session.onClose = s.removeSession

	s.mu.Lock()
	s.sessions[session] = struct{}{}
	s.mu.Unlock()

	session.logger.Info("session started", "remote", r.RemoteAddr)
	session.start()
}

func (s *Server) removeSession(session *Session) {
	s.mu.Lock()
	delete(s.sessions, session)
	s.mu.Unlock()
}

// SessionCount returns the number of live sessions.
func (s *Server) SessionCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// Run listens on config.Address until ctx is cancelled, then shuts down
// gracefully and closes every session.
func (s *Server) Run(ctx context.Context) error {
	httpServer := &http.Server{
		Addr:              s.config.Address,
		Handler:           s,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "address", s.config.Address)
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.config.ShutdownTimeout)
	defer cancel()
	err := httpServer.Shutdown(shutdownCtx)
	s.closeSessions()
	return err
}

func (s *Server) closeSessions() {
	s.mu.Lock()
	sessions := make([]*Session, 0, len(s.sessions))
	for session := range s.sessions {
		sessions = append(sessions, session)
	}
	s.mu.Unlock()

	for _, session := range sessions {
		session.Close()
	}
}
