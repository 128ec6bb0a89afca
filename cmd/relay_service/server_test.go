package main

import (
	"context"
	"fmt"
	"net"
	"os"
	"testing"
	"time"

	"presence_relay_service/internal/relay/repository"
	"presence_relay_service/pkg/config"
	"presence_relay_service/pkg/logger"

	gws "github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

func TestMain(m *testing.M) {
	logger.SetNewNop()
	os.Exit(m.Run())
}

func testConfig(t *testing.T) config.Relay {
	t.Helper()
	cfg, err := config.Load[config.Relay]("relay_service", t.TempDir(), config.RelayDefaults())
	require.NoError(t, err)
	cfg.Port = "0"
	cfg.Session.PingInterval = time.Second
	return cfg
}

func freePort(t *testing.T) string {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()
	return fmt.Sprint(ln.Addr().(*net.TCPAddr).Port)
}

func TestValidateConfig(t *testing.T) {
	cfg := testConfig(t)
	assert.NoError(t, validateConfig(cfg))

	bad := cfg
	bad.Session.DisplacePolicy = "kick"
	assert.Error(t, validateConfig(bad))

	bad = cfg
	bad.Tap.Driver = "nats"
	assert.ErrorIs(t, validateConfig(bad), repository.ErrUnknownTapDriver)

	bad = cfg
	bad.Port = ""
	assert.Error(t, validateConfig(bad))

	bad = cfg
	bad.Dispatch.QueueSize = 0
	assert.Error(t, validateConfig(bad))
}

func TestRun_ServesAndShutsDown(t *testing.T) {
	cfg := testConfig(t)
	cfg.GRPCHealthPort = freePort(t)

	ctx, cancel := context.WithCancel(context.Background())
	addrCh := make(chan string, 1)
	done := make(chan error, 1)
	go func() {
		done <- run(ctx, cfg, t.TempDir(), func(addr string) { addrCh <- addr })
	}()

	var addr string
	select {
	case addr = <-addrCh:
	case err := <-done:
		t.Fatalf("run returned early: %v", err)
	case <-time.After(5 * time.Second):
		t.Fatal("relay did not start")
	}

	_, port, err := net.SplitHostPort(addr)
	require.NoError(t, err)
	conn, _, err := gws.DefaultDialer.Dial("ws://127.0.0.1:"+port+"/ws", nil)
	require.NoError(t, err)
	defer conn.Close()

	require.NoError(t, conn.WriteJSON(map[string]string{"action": "join", "payload": "alice"}))
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(3*time.Second)))
	var f struct {
		Action  string   `json:"action"`
		Payload []string `json:"payload"`
	}
	require.NoError(t, conn.ReadJSON(&f))
	assert.Equal(t, "update_users", f.Action)
	assert.Equal(t, []string{"alice"}, f.Payload)

	status, err := checkHealth("127.0.0.1:"+cfg.GRPCHealthPort, 3*time.Second)
	require.NoError(t, err)
	assert.Equal(t, healthpb.HealthCheckResponse_SERVING, status)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("relay did not shut down")
	}
}
