// Copyright © 2025 jackelyj <dreamerlyj@gmail.com>
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE.
//

package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"

	"github.com/getsentry/sentry-go"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/innovationmech/hello/internal/hello/config"
	docshandler "github.com/innovationmech/hello/internal/hello/handler/http/docs"
	greeterhandler "github.com/innovationmech/hello/internal/hello/handler/http/greeter/v1"
	healthhandler "github.com/innovationmech/hello/internal/hello/handler/http/health"
	"github.com/innovationmech/hello/internal/hello/interfaces"
	hellomiddleware "github.com/innovationmech/hello/internal/hello/middleware"
	greeterv1 "github.com/innovationmech/hello/internal/hello/service/greeter/v1"
	"github.com/innovationmech/hello/pkg/logger"
	"github.com/innovationmech/hello/pkg/metrics"
	"github.com/innovationmech/hello/pkg/tracing"
)

// Option customizes a Server.
type Option func(*Server)

// WithGreeterService replaces the greeter built from configuration.
func WithGreeterService(service interfaces.GreeterService) Option {
	return func(s *Server) {
		s.greeter = service
	}
}

// WithTracingManager uses an already initialized tracing manager. The server
// then leaves its lifecycle to the caller.
func WithTracingManager(tm *tracing.Manager) Option {
	return func(s *Server) {
		s.tracer = tm
		s.ownsTracer = false
	}
}

// WithSentryHub reports recovered panics through hub instead of the process-wide hub.
func WithSentryHub(hub *sentry.Hub) Option {
	return func(s *Server) {
		s.hub = hub
	}
}

// WithRouteRegistrar mounts an additional route group next to the built-in routes.
func WithRouteRegistrar(registrar RouteRegistrar) Option {
	return func(s *Server) {
		s.extraRoutes = append(s.extraRoutes, registrar)
	}
}

// newTracingManager builds the manager a Server owns when none is injected.
var newTracingManager = func() *tracing.Manager {
	return tracing.NewManager()
}

// Server is the hello HTTP server.
type Server struct {
	config     *config.ServeConfig
	router     *gin.Engine
	registry   *RouteRegistry
	greeter    interfaces.GreeterService
	collector  *metrics.Collector
	tracer     *tracing.Manager
	ownsTracer bool
	hub        *sentry.Hub

	extraRoutes []RouteRegistrar

	mu       sync.Mutex
	srv      *http.Server
	listener net.Listener
	serveErr chan error
}

// NewServer builds the engine, middleware chain and routes for cfg.
func NewServer(cfg *config.ServeConfig, opts ...Option) (*Server, error) {
	if cfg == nil {
		return nil, errors.New("server config cannot be nil")
	}

	s := &Server{
		config:     cfg,
		registry:   NewRouteRegistry(),
		ownsTracer: true,
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.greeter == nil {
		s.greeter = greeterv1.NewService(greeterv1.WithServerTag(cfg.Greeter.ServerTag))
	}
	if s.hub == nil {
		s.hub = sentry.CurrentHub()
	}
	if s.tracer == nil {
		s.tracer = newTracingManager()
		if err := s.tracer.Initialize(context.Background(), &cfg.Tracing); err != nil {
			return nil, fmt.Errorf("failed to initialize tracing: %w", err)
		}
	}
	if err := s.setup(); err != nil {
		if s.ownsTracer {
			if shutdownErr := s.tracer.Shutdown(context.Background()); shutdownErr != nil {
				err = errors.Join(err, fmt.Errorf("tracing shutdown: %w", shutdownErr))
			}
		}
		return nil, err
	}
	return s, nil
}

// setup builds the engine and mounts the middleware chain and every route group.
func (s *Server) setup() error {
	cfg := s.config
	if cfg.Metrics.Enabled {
		s.collector = metrics.NewCollector(&cfg.Metrics)
	}

	s.router = gin.New()
	s.registry.RegisterMiddleware(hellomiddleware.NewGlobalMiddlewareRegistrar(s.hub, s.collector, s.tracer, &cfg.CORS, &cfg.Logging.Request))
	s.registry.RegisterRoute(greeterhandler.NewHandler(s.greeter))
	s.registry.RegisterRoute(healthhandler.NewHandler())
	s.registry.RegisterRoute(docshandler.NewHandler())
	if s.collector != nil {
		s.registry.RegisterRoute(newMetricsRoutes(s.collector, cfg.Metrics.Endpoint))
	}
	for _, registrar := range s.extraRoutes {
		s.registry.RegisterRoute(registrar)
	}
	if err := s.registry.Setup(s.router); err != nil {
		return fmt.Errorf("failed to setup routes: %w", err)
	}
	return nil
}

// Handler returns the HTTP handler serving all routes.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Collector returns the metrics collector, or nil when metrics are disabled.
func (s *Server) Collector() *metrics.Collector {
	return s.collector
}

// Start listens on the configured address and serves in the background.
func (s *Server) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.srv != nil {
		return errors.New("server already started")
	}

	var lc net.ListenConfig
	listener, err := lc.Listen(ctx, "tcp", s.config.Server.Address())
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.config.Server.Address(), err)
	}

	s.listener = listener
	s.srv = &http.Server{
		Handler:      s.router,
		ReadTimeout:  s.config.Server.ReadTimeout,
		WriteTimeout: s.config.Server.WriteTimeout,
	}
	s.serveErr = make(chan error, 1)

	go func(srv *http.Server, errCh chan<- error) {
		if err := srv.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}(s.srv, s.serveErr)

	logger.GetLogger().Info("HTTP server started", zap.String("address", listener.Addr().String()))
	return nil
}

// Address returns the bound listen address, or the configured one before Start.
func (s *Server) Address() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener != nil {
		return s.listener.Addr().String()
	}
	return s.config.Server.Address()
}

// Errors delivers a serve failure; it is closed when the server stops. It is nil before Start.
func (s *Server) Errors() <-chan error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.serveErr
}

// Stop drains in-flight requests and flushes tracing, bounded by the shutdown timeout.
func (s *Server) Stop(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, s.config.Server.ShutdownTimeout)
	defer cancel()

	s.mu.Lock()
	srv := s.srv
	s.mu.Unlock()

	var errs []error
	if srv != nil {
		if err := srv.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("http shutdown: %w", err))
		}
	}
	if s.ownsTracer {
		if err := s.tracer.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("tracing shutdown: %w", err))
		}
	}

	if err := errors.Join(errs...); err != nil {
		logger.GetLogger().Error("Server stopped with errors", zap.Error(err))
		return err
	}
	logger.GetLogger().Info("Server stopped successfully")
	return nil
}

// metricsRoutes exposes the Prometheus registry.
type metricsRoutes struct {
	collector *metrics.Collector
	endpoint  string
}

func newMetricsRoutes(collector *metrics.Collector, endpoint string) *metricsRoutes {
	if endpoint == "" {
		endpoint = metrics.DefaultConfig().Endpoint
	}
	return &metricsRoutes{collector: collector, endpoint: endpoint}
}

func (m *metricsRoutes) RegisterRoutes(rg *gin.RouterGroup) error {
	rg.GET(m.endpoint, gin.WrapH(m.collector.Handler()))
	return nil
}

func (m *metricsRoutes) GetName() string    { return "metrics" }
func (m *metricsRoutes) GetVersion() string { return RootVersion }
func (m *metricsRoutes) GetPrefix() string  { return "" }
