package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/wanjiru84/pro_marketplace/handlers"
	"github.com/wanjiru84/pro_marketplace/middleware"
)

func BookingRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	booking := api.Group("/bookings", middleware.Protected())
	booking.Get("/me", handlers.GetMyBookings)
	booking.Post("", handlers.CreateBooking)
	booking.Post("/:bookingId/review", handlers.CreateReview)

	proBooking := api.Group("/professional/bookings", middleware.Protected(), middleware.ProfessionalRequired())
	proBooking.Get("", handlers.GetProfessionalBookings)
	proBooking.Get("/stats", handlers.GetBookingStats)
	proBooking.Get("/upcoming", handlers.GetUpcomingBookings)
	proBooking.Get("/:bookingId", handlers.GetProfessionalBookingDetail)
	proBooking.Patch("/:bookingId/status", handlers.UpdateBookingStatus)
}
