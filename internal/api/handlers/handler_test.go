package handlers

import (
	"io"
	"net/http/httptest"
	"os"
	"testing"

	"presence_relay_service/pkg/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	logger.SetNewNop()
	os.Exit(m.Run())
}

func TestConnectCheck(t *testing.T) {
	app := fiber.New()
	app.Get("/", ConnectCheck)

	resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, "relay service start!", string(body))
}

func TestDebugLogFlag(t *testing.T) {
	app := fiber.New()
	app.Post("/debug", DebugLogFlag)

	resp, err := app.Test(httptest.NewRequest("POST", "/debug?status=true", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.True(t, logger.Log.IsDebugMode())

	resp, err = app.Test(httptest.NewRequest("POST", "/debug?status=false", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.False(t, logger.Log.IsDebugMode())

	resp, err = app.Test(httptest.NewRequest("POST", "/debug?status=maybe", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}
