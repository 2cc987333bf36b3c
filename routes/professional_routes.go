package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/wanjiru84/pro_marketplace/handlers"
	"github.com/wanjiru84/pro_marketplace/middleware"
)

func ProfessionalRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	api.Post("/professionals/apply", middleware.Protected(), handlers.ApplyToBeAProfessional)

	pro := api.Group("/professionals/me", middleware.Protected(), middleware.ProfessionalRequired())
	pro.Patch("", handlers.UpdateProfessionalProfile)
	pro.Post("/services", handlers.CreateService)
	pro.Get("/services", handlers.GetMyServices)
}
