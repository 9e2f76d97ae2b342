// Package health serves the standard gRPC health service so orchestrators
// can probe the storefront without speaking HTTP.
package health

import (
	"errors"
	"net"

	"github.com/sirupsen/logrus"
	"google.golang.org/grpc"
	grpchealth "google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
)

const ServiceName = "storefront"

type GRPCServer struct {
	server *grpc.Server
	health *grpchealth.Server
	log    *logrus.Logger
}

func NewGRPCServer(logger *logrus.Logger) *GRPCServer {
	server := grpc.NewServer()
	h := grpchealth.NewServer()
	healthpb.RegisterHealthServer(server, h)
	reflection.Register(server)

	h.SetServingStatus("", healthpb.HealthCheckResponse_NOT_SERVING)
	h.SetServingStatus(ServiceName, healthpb.HealthCheckResponse_NOT_SERVING)

	return &GRPCServer{server: server, health: h, log: logger}
}

// SetServing flips both the overall and the storefront status.
func (g *GRPCServer) SetServing(serving bool) {
	status := healthpb.HealthCheckResponse_NOT_SERVING
	if serving {
		status = healthpb.HealthCheckResponse_SERVING
	}
	g.health.SetServingStatus("", status)
	g.health.SetServingStatus(ServiceName, status)
	g.log.Infof("gRPC health status set to %s", status)
}

// Serve blocks until the listener fails or Stop is called.
func (g *GRPCServer) Serve(lis net.Listener) error {
	g.log.Infof("gRPC health server listening on %s", lis.Addr())
	if err := g.server.Serve(lis); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
		return err
	}
	return nil
}

func (g *GRPCServer) Stop() {
	g.health.Shutdown()
	g.server.GracefulStop()
	g.log.Info("gRPC health server stopped.")
}
