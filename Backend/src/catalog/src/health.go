package main

import (
	"net"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
)

const healthService = "catalog"

// HealthServer exposes grpc.health.v1 next to the REST API for probes that
// speak gRPC.
type HealthServer struct {
	srv    *grpc.Server
	health *health.Server
}

func NewHealthServer() *HealthServer {
	srv := grpc.NewServer()
	hs := health.NewServer()
	healthpb.RegisterHealthServer(srv, hs)
	reflection.Register(srv)
	hs.SetServingStatus(healthService, healthpb.HealthCheckResponse_NOT_SERVING)
	return &HealthServer{srv: srv, health: hs}
}

func (h *HealthServer) Serve(lis net.Listener) error { return h.srv.Serve(lis) }

func (h *HealthServer) SetServing(ok bool) {
	st := healthpb.HealthCheckResponse_NOT_SERVING
	if ok {
		st = healthpb.HealthCheckResponse_SERVING
	}
	h.health.SetServingStatus("", st)
	h.health.SetServingStatus(healthService, st)
}

// Stop reports NOT_SERVING to every watcher, then drains the server.
func (h *HealthServer) Stop() {
	h.health.Shutdown()
	h.srv.GracefulStop()
}
