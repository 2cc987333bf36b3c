package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/wanjiru84/pro_marketplace/handlers"
	"github.com/wanjiru84/pro_marketplace/middleware"
)

func PaymentRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	api.Post("/payments/webhook", handlers.HandlePaymentWebhook)

	api.Post("/payments/transfer", middleware.Protected(), middleware.AdminRequired(), handlers.RecordTransfer)
}
