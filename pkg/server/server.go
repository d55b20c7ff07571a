package server

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"go.opentelemetry.io/otel/trace"

	"github.com/vango-dev/draglist/pkg/metrics"
	"github.com/vango-dev/draglist/pkg/middleware"
)

// Server is the HTTP/WebSocket server hosting one drag-and-drop list.
type Server struct {
	config   *Config
	order    *Order
	sessions *SessionManager

	router   chi.Router
	upgrader websocket.Upgrader

	metrics *metrics.Collector
	tracer  trace.TracerProvider
	extra   []middleware.Middleware
	events  []middleware.Middleware

	httpServer *http.Server
	logger     *slog.Logger
}

// Option configures a Server.
type Option func(*Server)

// WithMetrics records session and event metrics and serves them at /metrics.
func WithMetrics(m *metrics.Collector) Option {
	return func(s *Server) {
		s.metrics = m
	}
}

// WithLogger sets the server logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithTracerProvider traces events with tp instead of the global provider.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(s *Server) {
		s.tracer = tp
	}
}

// WithEventMiddleware adds middleware around event dispatch. They run
// inside the built-in tracing and logging middleware, in the order given.
func WithEventMiddleware(mws ...middleware.Middleware) Option {
	return func(s *Server) {
		s.extra = append(s.extra, mws...)
	}
}

// New creates a Server for order. A nil config uses DefaultConfig.
func New(config *Config, order *Order, opts ...Option) *Server {
	config = config.withDefaults()

	s := &Server{
		config:   config,
		order:    order,
		sessions: NewSessionManager(),
		logger:   slog.Default().With("component", "server"),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  config.ReadBufferSize,
			WriteBufferSize: config.WriteBufferSize,
			CheckOrigin:     config.CheckOrigin,
		},
	}
	for _, opt := range opts {
		opt(s)
	}
	s.events = append([]middleware.Middleware{
		middleware.OpenTelemetry(
			middleware.WithTracerName(config.TracerName),
			middleware.WithTracerProvider(s.tracer),
		),
		middleware.Metrics(s.metrics),
		middleware.Logging(s.logger),
	}, s.extra...)
	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)

	r.Get("/", s.serveIndex)
	r.Get("/ws", s.HandleWebSocket)
	r.Get("/healthz", s.serveHealth)
	r.Get("/api/order", s.serveOrder)
	r.Get(thinClientPath, s.serveThinClient)
	r.Head(thinClientPath, s.serveThinClient)
	if s.metrics != nil {
		r.Method(http.MethodGet, "/metrics", s.metrics.Handler())
	}
	return r
}

// Handler returns the HTTP handler with all routes.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// HandleWebSocket upgrades the connection and starts a session.
func (s *Server) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error("websocket upgrade failed", "error", err)
		s.metrics.RecordWebSocketError("upgrade")
		return
	}
	conn.SetReadLimit(s.config.MaxMessageSize)

	session, err := newSession(conn, s)
	if err != nil {
		s.logger.Error("session mount failed", "error", err)
		conn.Close()
		return
	}
	s.sessions.Add(session)
	s.metrics.SessionOpened()
	session.logger.Info("session started", "remote", r.RemoteAddr)

	go func() {
		<-session.Done()
		s.sessions.Remove(session.ID)
		s.metrics.SessionClosed()
	}()
	session.Start()
}

// Run starts the server and blocks until ctx is cancelled or the listener
// fails.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.config.Address)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is cancelled.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	s.httpServer = &http.Server{
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server starting", "address", ln.Addr().String())
		errCh <- s.httpServer.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err

	case <-ctx.Done():
		s.logger.Info("shutting down...")
		return s.Shutdown(context.Background())
	}
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, s.config.ShutdownTimeout)
	defer cancel()

	// Close all sessions first
	s.sessions.Shutdown()

	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			s.logger.Error("shutdown error", "error", err)
			return err
		}
	}

	s.logger.Info("server shutdown complete")
	return nil
}

// Order returns the committed order.
func (s *Server) Order() *Order {
	return s.order
}

// Sessions returns the session manager.
func (s *Server) Sessions() *SessionManager {
	return s.sessions
}

// Config returns the server configuration.
func (s *Server) Config() *Config {
	return s.config
}
