package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeYAML(t *testing.T, name, body string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name+".yaml"), []byte(body), 0o644))
	return dir
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("TAP_DRIVER", "")

	cfg, err := Load[Relay]("relay_service", t.TempDir(), RelayDefaults())
	require.NoError(t, err)

	assert.Equal(t, "5000", cfg.Port)
	assert.Equal(t, 64, cfg.Session.SendBuffer)
	assert.Equal(t, 30*time.Second, cfg.Session.PingInterval)
	assert.Equal(t, DisplaceSilent, cfg.Session.DisplacePolicy)
	assert.Equal(t, 256, cfg.Dispatch.QueueSize)
	assert.Equal(t, TapNone, cfg.Tap.Driver)
	assert.Equal(t, "relay:events", cfg.Tap.Redis.Channel)
}

func TestLoad_YAMLWithEnvPlaceholders(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("RELAY_TEST_BROKER", "kafka-1:9092")
	dir := writeYAML(t, "relay_service", `
port: "6001"
session:
  send_buffer: 8
  ping_interval: 5s
  displace_policy: notify
tap:
  driver: kafka
  kafka:
    brokers:
      - ${RELAY_TEST_BROKER}
    topic: presence
`)

	cfg, err := Load[Relay]("relay_service", dir, RelayDefaults())
	require.NoError(t, err)

	assert.Equal(t, "6001", cfg.Port)
	assert.Equal(t, 8, cfg.Session.SendBuffer)
	assert.Equal(t, 5*time.Second, cfg.Session.PingInterval)
	assert.Equal(t, DisplaceNotify, cfg.Session.DisplacePolicy)
	assert.Equal(t, TapKafka, cfg.Tap.Driver)
	assert.Equal(t, []string{"kafka-1:9092"}, cfg.Tap.Kafka.Brokers)
	assert.Equal(t, "presence", cfg.Tap.Kafka.Topic)
	// untouched keys keep defaults
	assert.Equal(t, 256, cfg.Dispatch.QueueSize)
}

func TestLoad_EnvOverridesKey(t *testing.T) {
	t.Setenv("PORT", "7007")
	dir := writeYAML(t, "relay_service", "port: \"6001\"\n")

	cfg, err := Load[Relay]("relay_service", dir, RelayDefaults())
	require.NoError(t, err)
	assert.Equal(t, "7007", cfg.Port)
}

func TestLoad_BrokenYAML(t *testing.T) {
	dir := writeYAML(t, "relay_service", "port: [unclosed\n")

	_, err := Load[Relay]("relay_service", dir, RelayDefaults())
	assert.Error(t, err)
}

func TestGetRedisSetting(t *testing.T) {
	t.Setenv("REDIS_MASTER_NAME", "relay-master")
	t.Setenv("REDIS_SENTINEL1_IP", "10.0.0.1")
	t.Setenv("REDIS_SENTINEL1_PORT", "26379")

	master, sentinels := GetRedisSetting()
	assert.Equal(t, "relay-master", master)
	assert.Contains(t, sentinels, "10.0.0.1:26379")
}

func TestGetPath(t *testing.T) {
	dir := t.TempDir()
	nested := filepath.Join(dir, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "marker.env"), nil, 0o644))

	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(nested))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	path, err := GetPath("marker.env", 5)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("..", "..", "marker.env"), path)

	_, err = GetPath("missing.env", 2)
	assert.Error(t, err)
}
