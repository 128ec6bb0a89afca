package middlewares

import (
	"presence_relay_service/pkg/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"go.uber.org/zap"
)

// WebsocketUpgrade 只放行 websocket upgrade 請求, 其他回 426
func WebsocketUpgrade() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		logger.Log.Debug("non-upgrade request on websocket route", zap.String("ip", c.IP()), zap.String("path", c.Path()))
		return c.Status(fiber.StatusUpgradeRequired).JSON(fiber.Map{
			"error": "websocket upgrade required",
		})
	}
}
