package main

import (
	"context"
	"os"
	"time"

	"presence_relay_service/pkg/database"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

func createStatusCmd() *cobra.Command {
	var (
		addr    string
		timeout time.Duration
	)

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Query the relay gRPC health endpoint",
		Run: func(cmd *cobra.Command, args []string) {
			status, err := checkHealth(addr, timeout)
			if err != nil {
				color.Red("❌ No relay found at %s: %v", addr, err)
				os.Exit(1)
			}
			if status != healthpb.HealthCheckResponse_SERVING {
				color.Yellow("⚠️  Relay at %s is %s", addr, status)
				os.Exit(1)
			}
			color.Green("✅ Relay at %s is %s", addr, status)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "localhost:6000", "gRPC health address of the relay")
	cmd.Flags().DurationVar(&timeout, "timeout", 3*time.Second, "Connect timeout")
	return cmd
}

func checkHealth(addr string, timeout time.Duration) (healthpb.HealthCheckResponse_ServingStatus, error) {
	conn, err := database.CreateGRPCClient(addr, timeout)
	if err != nil {
		return healthpb.HealthCheckResponse_UNKNOWN, err
	}
	defer conn.Close()

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	resp, err := healthpb.NewHealthClient(conn).Check(ctx, &healthpb.HealthCheckRequest{})
	if err != nil {
		return healthpb.HealthCheckResponse_UNKNOWN, err
	}
	return resp.GetStatus(), nil
}
