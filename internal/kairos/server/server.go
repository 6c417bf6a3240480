// Package server exposes the date formatting service over gRPC and serves
// Prometheus metrics over HTTP.
package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	kerror "github.com/msto63/kairos/foundation/core/error"
	"github.com/msto63/kairos/internal/kairos/metrics"
	"github.com/msto63/kairos/internal/kairos/service"
	"github.com/msto63/kairos/pkg/core/config"
	coreGrpc "github.com/msto63/kairos/pkg/core/grpc"
	"github.com/msto63/kairos/pkg/core/health"
	"github.com/msto63/kairos/pkg/core/logging"
	"github.com/msto63/kairos/pkg/core/version"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"google.golang.org/grpc"
)

// HealthInterval is the period between health registry evaluations
const HealthInterval = 15 * time.Second

// Server is the kairos gRPC server
type Server struct {
	service   *service.Service
	grpc      *coreGrpc.Server
	health    *health.Registry
	registry  *prometheus.Registry
	metrics   *http.Server
	logger    *logging.Logger
	config    *config.Config
	startTime time.Time
}

// New creates the server and the service behind it
func New(cfg *config.Config, logger *logging.Logger) (*Server, error) {
	if logger == nil {
		logger = logging.New("kairos-server")
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	svc, err := service.New(service.Config{
		Detection: cfg.Detection,
		Cache:     cfg.Cache,
		Metrics:   metrics.New(reg),
		Logger:    logger.With("component", "service"),
	})
	if err != nil {
		return nil, kerror.Wrap(err, "failed to create service").
			WithCode(kerror.CodeServiceInitialization).
			WithOperation("server.New")
	}

	grpcCfg := coreGrpc.DefaultServerConfig()
	grpcCfg.Host = cfg.Server.Host
	grpcCfg.Port = cfg.Server.Port
	if cfg.Server.MaxRecvMsgSize > 0 {
		grpcCfg.MaxRecvMsgSize = cfg.Server.MaxRecvMsgSize
	}
	grpcCfg.Logger = logger.With("component", "grpc")
	grpcServer := coreGrpc.NewServer(grpcCfg)

	healthRegistry := health.NewRegistry(cfg.General.Name, version.Server)
	for _, check := range svc.HealthChecks() {
		healthRegistry.Register(check)
	}

	s := &Server{
		service:   svc,
		grpc:      grpcServer,
		health:    healthRegistry,
		registry:  reg,
		logger:    logger,
		config:    cfg,
		startTime: time.Now(),
	}
	RegisterDateFormatServer(grpcServer.GRPCServer(), s)

	if addr := cfg.MetricsAddress(); addr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", s.MetricsHandler())
		s.metrics = &http.Server{
			Addr:              addr,
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		}
	}

	return s, nil
}

// MetricsHandler serves the Prometheus registry of this server
func (s *Server) MetricsHandler() http.Handler {
	return promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{Registry: s.registry})
}

// Run serves gRPC, and metrics when configured, until ctx is done
func (s *Server) Run(ctx context.Context) error {
	lis, err := s.grpc.Listen()
	if err != nil {
		return kerror.Wrap(err, "failed to start").
			WithCode(kerror.CodeServiceInitialization).
			WithOperation("server.Run")
	}
	return s.Serve(ctx, lis)
}

// Serve serves gRPC on lis until ctx is done, then shuts down within the
// configured timeout
func (s *Server) Serve(ctx context.Context, lis net.Listener) error {
	s.logger.Info("Starting kairos server",
		"address", lis.Addr().String(),
		"version", version.Server,
		"environment", s.config.General.Environment,
	)

	errCh := make(chan error, 2)
	go func() {
		errCh <- s.grpc.Serve(lis)
	}()

	if s.metrics != nil {
		go func() {
			s.logger.Info("Serving metrics", "address", s.metrics.Addr)
			if err := s.metrics.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- err
			}
		}()
	}

	s.grpc.UpdateHealth(ctx, s.health, ServiceName)
	ticker := time.NewTicker(HealthInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.grpc.UpdateHealth(ctx, s.health, ServiceName)
		case err := <-errCh:
			s.shutdown()
			if errors.Is(err, grpc.ErrServerStopped) {
				return nil
			}
			return err
		case <-ctx.Done():
			s.shutdown()
			return nil
		}
	}
}

func (s *Server) shutdown() {
	timeout := s.config.Server.ShutdownTimeout.Duration
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	s.logger.Info("Stopping kairos server", "uptime", time.Since(s.startTime).Round(time.Second).String())
	if s.metrics != nil {
		if err := s.metrics.Shutdown(ctx); err != nil {
			s.logger.Warn("metrics shutdown failed", "error", err.Error())
		}
	}
	s.grpc.StopWithTimeout(ctx)
	s.service.Close()
}

// Service returns the underlying service
func (s *Server) Service() *service.Service {
	return s.service
}

// HealthRegistry returns the health check registry
func (s *Server) HealthRegistry() *health.Registry {
	return s.health
}
