package grpc

import (
	"context"
	"fmt"
	"net"
	"strconv"
	"sync"
	"time"

	"github.com/msto63/kairos/pkg/core/health"
	"github.com/msto63/kairos/pkg/core/logging"
	"google.golang.org/grpc"
	grpchealth "google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/keepalive"
	"google.golang.org/grpc/reflection"
)

// ServerConfig holds gRPC server configuration
type ServerConfig struct {
	Host             string
	Port             int
	MaxRecvMsgSize   int
	MaxSendMsgSize   int
	EnableReflection bool
	// Keepalive pings idle clients every Interval and drops them after
	// Timeout without an answer
	KeepaliveInterval time.Duration
	KeepaliveTimeout  time.Duration
	Logger            *logging.Logger
}

const defaultMsgSize = 4 << 20

// DefaultServerConfig listens on all interfaces at 9260
func DefaultServerConfig() ServerConfig {
	return ServerConfig{
		Host:              "0.0.0.0",
		Port:              9260,
		MaxRecvMsgSize:    defaultMsgSize,
		MaxSendMsgSize:    defaultMsgSize,
		EnableReflection:  true,
		KeepaliveInterval: 30 * time.Second,
		KeepaliveTimeout:  10 * time.Second,
	}
}

// Addr returns host:port
func (c ServerConfig) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

func (c ServerConfig) options() []grpc.ServerOption {
	return []grpc.ServerOption{
		grpc.MaxRecvMsgSize(c.MaxRecvMsgSize),
		grpc.MaxSendMsgSize(c.MaxSendMsgSize),
		grpc.KeepaliveParams(keepalive.ServerParameters{
			Time:    c.KeepaliveInterval,
			Timeout: c.KeepaliveTimeout,
		}),
		grpc.KeepaliveEnforcementPolicy(keepalive.EnforcementPolicy{
			MinTime:             5 * time.Second,
			PermitWithoutStream: true,
		}),
		// request id first so recovery and logging can see it; status
		// mapping last so the logger records the mapped code
		grpc.ChainUnaryInterceptor(
			RequestIDInterceptor(),
			RecoveryInterceptor(),
			LoggingInterceptor(),
			StatusInterceptor(),
		),
		grpc.ChainStreamInterceptor(
			StreamRecoveryInterceptor(),
			StreamLoggingInterceptor(),
		),
	}
}

// Server wraps a gRPC server with the standard interceptor chain and the
// grpc.health.v1 endpoint
type Server struct {
	grpc   *grpc.Server
	health *grpchealth.Server
	config ServerConfig
	logger *logging.Logger

	mu       sync.Mutex
	listener net.Listener
}

// NewServer builds a server; opts are appended after the defaults
func NewServer(cfg ServerConfig, opts ...grpc.ServerOption) *Server {
	log := cfg.Logger
	if log == nil {
		log = logging.New("grpc-server")
	}
	SetLogger(log)

	gs := grpc.NewServer(append(cfg.options(), opts...)...)
	hs := grpchealth.NewServer()
	healthpb.RegisterHealthServer(gs, hs)
	if cfg.EnableReflection {
		reflection.Register(gs)
	}

	return &Server{grpc: gs, health: hs, config: cfg, logger: log}
}

// GRPCServer returns the underlying gRPC server for service registration
func (s *Server) GRPCServer() *grpc.Server {
	return s.grpc
}

// RegisterService registers a service implementation on the server
func (s *Server) RegisterService(desc *grpc.ServiceDesc, impl interface{}) {
	s.grpc.RegisterService(desc, impl)
}

// SetServingStatus publishes status for service on the gRPC health endpoint.
// The empty service name stands for the server as a whole.
func (s *Server) SetServingStatus(service string, status health.Status) {
	s.health.SetServingStatus(service, ServingStatus(status))
}

// UpdateHealth runs the registry checks and publishes the overall result for
// the server and each named service
func (s *Server) UpdateHealth(ctx context.Context, registry *health.Registry, services ...string) *health.Report {
	report := registry.Check(ctx)
	s.SetServingStatus("", report.Status)
	for _, name := range services {
		s.SetServingStatus(name, report.Status)
	}
	if report.Status != health.StatusHealthy {
		s.logger.Warn("health degraded", "status", string(report.Status), "checks", len(report.Checks))
	}
	return report
}

// Listen opens a TCP listener on the configured address
func (s *Server) Listen() (net.Listener, error) {
	lis, err := net.Listen("tcp", s.config.Addr())
	if err != nil {
		return nil, fmt.Errorf("listen on %s: %w", s.config.Addr(), err)
	}
	return lis, nil
}

// Serve blocks serving on listener until the server stops
func (s *Server) Serve(listener net.Listener) error {
	s.mu.Lock()
	s.listener = listener
	s.mu.Unlock()

	s.logger.Info("gRPC server listening", "address", listener.Addr().String())
	return s.grpc.Serve(listener)
}

// Stop gracefully stops the gRPC server
func (s *Server) Stop() {
	s.health.Shutdown()
	s.grpc.GracefulStop()
}

// StopWithTimeout stops the server gracefully, forcing it down once ctx is
// done
func (s *Server) StopWithTimeout(ctx context.Context) {
	s.health.Shutdown()

	done := make(chan struct{})
	go func() {
		s.grpc.GracefulStop()
		close(done)
	}()

	select {
	case <-done:
		return
	case <-ctx.Done():
		s.logger.Warn("graceful stop timed out, forcing shutdown")
		s.grpc.Stop()
	}
}

// Address returns the bound address once serving, else the configured one
func (s *Server) Address() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener != nil {
		return s.listener.Addr().String()
	}
	return s.config.Addr()
}
