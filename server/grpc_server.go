package server

import (
	"context"
	"net"
	"time"

	"github.com/sirupsen/logrus"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
)

// ServiceName is the gRPC health service name reported for the note store.
const ServiceName = "quicknotes"

const healthInterval = 10 * time.Second

// HealthServer publishes store health over the standard gRPC health protocol.
type HealthServer struct {
	grpc   *grpc.Server
	health *health.Server
	check  HealthFunc
}

func NewHealthServer(check HealthFunc) *HealthServer {
	s := grpc.NewServer()
	hs := health.NewServer()
	healthpb.RegisterHealthServer(s, hs)
	reflection.Register(s)

	return &HealthServer{grpc: s, health: hs, check: check}
}

// Refresh pings the store once and updates the reported status.
func (s *HealthServer) Refresh(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, healthTimeout)
	defer cancel()

	status := healthpb.HealthCheckResponse_SERVING
	if err := s.check(ctx); err != nil {
		logrus.WithError(err).Warn("Store health check failed")
		status = healthpb.HealthCheckResponse_NOT_SERVING
	}
	s.health.SetServingStatus("", status)
	s.health.SetServingStatus(ServiceName, status)
}

// Serve refreshes health on an interval and serves on lis until ctx is done.
func (s *HealthServer) Serve(ctx context.Context, lis net.Listener) error {
	s.Refresh(ctx)

	go func() {
		ticker := time.NewTicker(healthInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				s.health.Shutdown()
				s.grpc.GracefulStop()
				return
			case <-ticker.C:
				s.Refresh(ctx)
			}
		}
	}()

	logrus.Infof("Starting gRPC health server on %s", lis.Addr())
	return s.grpc.Serve(lis)
}

func RunGRPCServer(ctx context.Context, addr string, check HealthFunc) error {
	lis, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	return NewHealthServer(check).Serve(ctx, lis)
}
