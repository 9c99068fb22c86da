package grpcserver

import (
	"net"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// ServiceName is the name reported on the health service besides the overall status.
const ServiceName = "clashfinder.api"

// HealthServer exposes the standard gRPC health check for the orchestrator.
type HealthServer struct {
	server *grpc.Server
	health *health.Server
}

// NewHealthServer creates a server reporting NOT_SERVING until SetServing is called.
func NewHealthServer() *HealthServer {
	server := grpc.NewServer()
	healthServer := health.NewServer()
	healthpb.RegisterHealthServer(server, healthServer)

	hs := &HealthServer{server: server, health: healthServer}
	hs.SetServing(false)
	return hs
}

// Serve blocks serving on the listener until Stop.
func (hs *HealthServer) Serve(lis net.Listener) error {
	return hs.server.Serve(lis)
}

// SetServing updates both the overall and the service status.
func (hs *HealthServer) SetServing(serving bool) {
	status := healthpb.HealthCheckResponse_NOT_SERVING
	if serving {
		status = healthpb.HealthCheckResponse_SERVING
	}
	hs.health.SetServingStatus("", status)
	hs.health.SetServingStatus(ServiceName, status)
}

// Stop marks the server as not serving and closes it.
func (hs *HealthServer) Stop() {
	hs.health.Shutdown()
	hs.server.GracefulStop()
}
