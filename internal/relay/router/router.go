package router

import (
	"context"

	"presence_relay_service/internal/api/handlers"
	"presence_relay_service/internal/relay/app"
	"presence_relay_service/pkg/middlewares"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/websocket/v2"
)

// RegisterRoutes 注册 relay 的路由, ctx 結束時所有 session 的 Submit 會返回
func RegisterRoutes(ctx context.Context, r *fiber.App, relayWebsocket *app.RelayWebsocketHandler, allowOrigins string) {
	r.Use(cors.New(cors.Config{
		AllowOrigins: allowOrigins,
		AllowMethods: "GET,POST",
	}))

	r.Get("/", handlers.ConnectCheck)
	r.Post("/debug", handlers.DebugLogFlag)

	r.Use("/ws", middlewares.WebsocketUpgrade())
	r.Get("/ws", websocket.New(func(c *websocket.Conn) {
		relayWebsocket.HandleConnection(ctx, c)
	}))
}
