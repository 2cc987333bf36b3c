package handlers

import (
	"github.com/go-playground/validator/v10"
	"github.com/wanjiru84/pro_marketplace/geo"
	"github.com/wanjiru84/pro_marketplace/metrics"
	"github.com/wanjiru84/pro_marketplace/services"
	"gorm.io/gorm"
)

var validate = validator.New()

var (
	bookingService   *services.BookingService
	paymentService   *services.PaymentService
	discoveryService *services.DiscoveryService
)

// Init wires the lifecycle services once the database connection is up.
// Must run before any route is served.
func Init(db *gorm.DB, geocoder geo.Geocoder, hooks metrics.Hooks) {
	bookingService = services.NewBookingService(db, hooks)
	paymentService = services.NewPaymentService(db)
	discoveryService = services.NewDiscoveryService(db, geocoder)
}
