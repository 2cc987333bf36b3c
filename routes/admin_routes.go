package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/wanjiru84/pro_marketplace/handlers"
	"github.com/wanjiru84/pro_marketplace/middleware"
)

func AdminRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	admin := api.Group("/admin", middleware.Protected(), middleware.AdminRequired())
	admin.Get("/bookings", handlers.ListAllBookings)
	admin.Get("/payments", handlers.ListAllPayments)
}
