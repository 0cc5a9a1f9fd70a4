package router

import (
	"context"
	"time"

	"job_board_service/internal/chat/api/handlers"
	"job_board_service/internal/chat/app"
	"job_board_service/pkg/middlewares"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"github.com/gofiber/websocket/v2"
)

// RegisterRoutes wires the chat routes
// @title Job Board Chat Service API
// @version 1.0
// @description Real-time messaging and notification API for the job board
// @host localhost:8086
// @BasePath /
func RegisterRoutes(
	r *fiber.App,
	chatWebsocket *app.ChatWebsocketHandler,
	chatHandler *handlers.ChatHandler,
	limiter middlewares.Limiter,
	limit int,
	window time.Duration,
) {
	r.Get("/swagger/*", swagger.HandlerDefault)
	r.Get("/", handlers.ConnectCheck)
	r.Post("/debug", handlers.DebugLogFlag)

	r.Use(middlewares.JWTMiddleware())

	r.Get("/ws", websocket.New(func(c *websocket.Conn) {
		chatWebsocket.HandleConnection(context.Background(), c)
	}))

	chatRoutes := r.Group("/api/chat")
	chatRoutes.Use(middlewares.RateLimitMiddleware(limiter, limit, window))
	chatRoutes.Get("/notifications", chatHandler.GetNotifications)
	chatRoutes.Get("/:applicationId", chatHandler.GetHistory)
	chatRoutes.Delete("/:applicationId", chatHandler.DeleteHistory)
}
