package database

import (
	"context"
	"fmt"
	"net"
	"time"

	"presence_relay_service/pkg/logger"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/connectivity"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// HealthServer gRPC server exposing grpc.health.v1.Health
type HealthServer struct {
	Server *grpc.Server
	Health *health.Server
}

// NewHealthServer create a gRPC server with the standard health service registered, status SERVING
func NewHealthServer() *HealthServer {
	s := grpc.NewServer()
	h := health.NewServer()
	healthpb.RegisterHealthServer(s, h)
	h.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
	return &HealthServer{Server: s, Health: h}
}

// Serve block serving on lis
func (h *HealthServer) Serve(lis net.Listener) error {
	logger.Log.Info("grpc health listening", zap.String("addr", lis.Addr().String()))
	return h.Server.Serve(lis)
}

// Shutdown mark NOT_SERVING then stop gracefully
func (h *HealthServer) Shutdown() {
	h.Health.Shutdown()
	h.Server.GracefulStop()
}

// CreateGRPCClient create grpc client and wait until READY or timeout
func CreateGRPCClient(grpcIP string, timeout time.Duration) (*grpc.ClientConn, error) {
	client, err := grpc.NewClient(grpcIP, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, fmt.Errorf("grpc client %s: %w", grpcIP, err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	client.Connect()
	for {
		state := client.GetState()
		logger.Log.Debug("grpc connection state", zap.String("addr", grpcIP), zap.String("state", state.String()))
		if state == connectivity.Ready {
			return client, nil
		}
		if !client.WaitForStateChange(ctx, state) {
			_ = client.Close()
			return nil, fmt.Errorf("connection %s did not become READY within %s", grpcIP, timeout)
		}
	}
}
