package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"presence_relay_service/pkg/config"
	"presence_relay_service/pkg/logger"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func createServeCmd() *cobra.Command {
	var (
		port       string
		configPath string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the websocket relay",
		Run: func(cmd *cobra.Command, args []string) {
			logger.Log = logger.Initialize(config.EnvConfig.RelayService, config.EnvConfig.RelayServiceLogPath)
			defer logger.Log.Sync()

			if configPath == "" {
				configPath = config.EnvConfig.RelayServiceYAMLPath
			}
			cfg := config.LoadConfig[config.Relay](config.EnvConfig.RelayService, configPath, config.RelayDefaults())
			if port != "" {
				cfg.Port = port
			}
			if err := validateConfig(cfg); err != nil {
				color.Red("❌ Invalid config: %v", err)
				os.Exit(1)
			}

			// Handle interrupt signals (Ctrl+C, SIGTERM)
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			printBanner(cfg)
			if err := run(ctx, cfg, config.EnvConfig.RelayServiceLogPath, nil); err != nil {
				color.Red("❌ Server error: %v", err)
				logger.Log.Fatal("relay stopped with error", zap.Error(err))
			}
			color.Green("✅ Relay stopped gracefully")
		},
	}

	cmd.Flags().StringVarP(&port, "port", "p", "", "Port to listen on (overrides config port)")
	cmd.Flags().StringVar(&configPath, "config", "", "Directory holding relay_service.yaml")
	return cmd
}

func printBanner(cfg config.Relay) {
	color.Cyan("🚀 Relay service")
	color.White("   websocket : ws://0.0.0.0:%s/ws", cfg.Port)
	color.White("   displace  : %s", cfg.Session.DisplacePolicy)
	color.White("   event tap : %s", cfg.Tap.Driver)
	if cfg.GRPCHealthPort != "" {
		color.White("   health    : grpc :%s", cfg.GRPCHealthPort)
	}
	color.Yellow("   Press Ctrl+C to stop")
}
