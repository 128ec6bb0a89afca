package main

import (
	"context"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"time"

	"presence_relay_service/internal/relay/app"
	"presence_relay_service/internal/relay/repository"
	"presence_relay_service/internal/relay/router"
	"presence_relay_service/pkg"
	"presence_relay_service/pkg/config"
	"presence_relay_service/pkg/database"
	errprocess "presence_relay_service/pkg/err"
	"presence_relay_service/pkg/logger"
	testtool "presence_relay_service/pkg/test_tool"

	"github.com/gofiber/fiber/v2"
	fiber_log "github.com/gofiber/fiber/v2/middleware/logger"
	"go.uber.org/zap"
)

const shutdownTimeout = 5 * time.Second

var (
	displacePolicies = []string{config.DisplaceSilent, config.DisplaceNotify}
	tapDrivers       = []string{"", config.TapNone, config.TapRedis, config.TapKafka, config.TapRabbitMQ}
)

func validateConfig(cfg config.Relay) error {
	if cfg.Port == "" {
		return errprocess.Set("port is empty")
	}
	if !pkg.Contains(displacePolicies, cfg.Session.DisplacePolicy) {
		return errprocess.Set(fmt.Sprintf("session.displace_policy %q, want silent or notify", cfg.Session.DisplacePolicy))
	}
	if !pkg.Contains(tapDrivers, cfg.Tap.Driver) {
		return errprocess.Wrap(repository.ErrUnknownTapDriver, fmt.Sprintf("tap.driver %q", cfg.Tap.Driver))
	}
	if cfg.Session.SendBuffer <= 0 || cfg.Dispatch.QueueSize <= 0 {
		return errprocess.Set("session.send_buffer and dispatch.queue_size must be positive")
	}
	return nil
}

// run 組裝並啟動 relay, ctx 結束後依序關閉. ready 收到實際的 http 位址
func run(ctx context.Context, cfg config.Relay, logDir string, ready func(addr string)) error {
	logger.Log.SetDebugMode(cfg.Debug)

	// 1. event tap
	sink, err := repository.BuildEventTap(cfg.Tap)
	if err != nil {
		return fmt.Errorf("event tap: %w", err)
	}
	tap := repository.NewAsyncTap(sink, cfg.Tap.Buffer)
	defer func() {
		if err := tap.Close(); err != nil {
			logger.Log.Warn("event tap close", zap.Error(err))
		}
		logger.Log.Info("event tap closed", zap.Int64("dropped", tap.Dropped()))
	}()

	// 2. directory / router / hub / dispatcher
	directory := repository.NewSessionDirectory()
	uc := app.NewRelayUseCase(directory, tap, cfg.Session.DisplacePolicy == config.DisplaceNotify)
	hub := app.NewConnectionHub()
	dispatcher := app.NewDispatcher(uc, hub, cfg.Dispatch.QueueSize)

	loopCtx, stopLoop := context.WithCancel(ctx)
	defer stopLoop()
	go dispatcher.Run(loopCtx)

	// 3. gRPC health
	var healthSrv *database.HealthServer
	if cfg.GRPCHealthPort != "" {
		lis, err := net.Listen("tcp", ":"+cfg.GRPCHealthPort)
		if err != nil {
			return fmt.Errorf("grpc health listen: %w", err)
		}
		healthSrv = database.NewHealthServer()
		go func() {
			if err := healthSrv.Serve(lis); err != nil {
				logger.Log.Error("grpc health stopped", zap.Error(err))
			}
		}()
	}

	testtool.StartPprof(cfg.Pprof, testtool.PprofAddr)

	// 4. fiber
	r := fiber.New(fiber.Config{DisableStartupMessage: true})
	if err := os.MkdirAll(logDir, 0o755); err != nil {
		return fmt.Errorf("log dir: %w", err)
	}
	file, err := os.OpenFile(filepath.Join(logDir, "access.log"), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0666)
	if err != nil {
		return fmt.Errorf("open access log: %w", err)
	}
	defer file.Close()
	r.Use(fiber_log.New(fiber_log.Config{
		Output: file, // 将日志输出到文件
	}))

	router.RegisterRoutes(loopCtx, r, app.NewRelayWebsocketHandler(hub, dispatcher, cfg.Session), cfg.AllowOrigins)

	ln, err := net.Listen("tcp", ":"+cfg.Port)
	if err != nil {
		return fmt.Errorf("listen :%s: %w", cfg.Port, err)
	}
	logger.Log.Info("Relay Service listening", zap.String("addr", ln.Addr().String()))
	if ready != nil {
		ready(ln.Addr().String())
	}

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- r.Listener(ln)
	}()

	stats := time.NewTicker(time.Minute)
	defer stats.Stop()

	var runErr error
loop:
	for {
		select {
		case <-ctx.Done():
			logger.Log.Info("shutdown requested")
			break loop
		case err := <-serveErr:
			runErr = err
			break loop
		case <-stats.C:
			s := uc.Stats()
			logger.Log.Info("relay stats",
				zap.Int("online", s.Online),
				zap.Int("unread_recipients", s.Recipients),
				zap.Int("connections", hub.Count()),
				zap.Int64("tap_dropped", tap.Dropped()),
			)
		}
	}

	// 先停 dispatcher, session 的 Submit 會返回並關閉連線
	stopLoop()
	<-dispatcher.Done()
	if healthSrv != nil {
		healthSrv.Shutdown()
	}
	if err := r.ShutdownWithTimeout(shutdownTimeout); err != nil {
		logger.Log.Warn("fiber shutdown", zap.Error(err))
	}
	return runErr
}
