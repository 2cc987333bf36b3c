package handlers

import (
	"errors"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/wanjiru84/pro_marketplace/database"
	"github.com/wanjiru84/pro_marketplace/models"
	"github.com/wanjiru84/pro_marketplace/notifications"
	"github.com/wanjiru84/pro_marketplace/services"
	"github.com/wanjiru84/pro_marketplace/utils"
	"gorm.io/gorm"
)

type CreateBookingRequest struct {
	ServiceID                string `json:"service_id" validate:"required,uuid"`
	EventDate                string `json:"event_date" validate:"required,datetime=2006-01-02T15:04:05Z07:00"`
	UpfrontPaymentIntentID   string `json:"upfront_payment_intent_id" validate:"required"`
	RemainingPaymentIntentID string `json:"remaining_payment_intent_id" validate:"required"`
}

func CreateBooking(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	clientID, _ := uuid.Parse(claims["user_id"].(string))

	var req CreateBookingRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	serviceID, _ := uuid.Parse(req.ServiceID)

	eventDate, _ := time.Parse(time.RFC3339, req.EventDate)
	if eventDate.Before(time.Now()) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Event date cannot be in the past"})
	}

	var service models.Service
	if err := database.DB.Preload("Professional").First(&service, "id = ? AND is_active = ?", serviceID, true).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Service not found"})
	}
	if !service.Professional.IsActive || service.Professional.IsDeleted || !service.Professional.IsAvailable {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Professional is not accepting bookings"})
	}

	var booking models.Booking
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		reference, err := utils.GenerateUniqueBookingReference(tx)
		if err != nil {
			return err
		}

		booking = models.Booking{
			Reference:      reference,
			ClientID:       clientID,
			ProfessionalID: service.ProfessionalID,
			ServiceID:      service.ID,
			Status:         models.BookingStatusPending,
			PaymentStatus:  "unpaid",
			TotalAmount:    service.Price,
			Currency:       service.Currency,
			EventDate:      eventDate,
		}
		if err := tx.Create(&booking).Error; err != nil {
			return err
		}

		if _, err := services.NewPaymentService(tx).CreateInstallments(c.UserContext(), &booking,
			req.UpfrontPaymentIntentID, req.RemainingPaymentIntentID); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		log.Printf("🔥 Failed to create booking for client %s: %v", clientID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create booking"})
	}

	return c.Status(fiber.StatusCreated).JSON(booking)
}

func GetMyBookings(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	clientID, _ := uuid.Parse(claims["user_id"].(string))

	bookings, err := bookingService.ListForClient(c.UserContext(), clientID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load bookings"})
	}
	return c.JSON(bookings)
}

type ReviewRequest struct {
	Rating  int    `json:"rating" validate:"required,min=1,max=5"`
	Comment string `json:"comment"`
}

func CreateReview(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	clientID, _ := uuid.Parse(claims["user_id"].(string))
	bookingID := c.Params("bookingId")

	var req ReviewRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var newReview models.Review
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		var booking models.Booking
		if err := tx.First(&booking, "id = ?", bookingID).Error; err != nil {
			return errors.New("booking not found")
		}
		if booking.ClientID != clientID {
			return errors.New("you are not the client for this booking")
		}
		if booking.Status != models.BookingStatusCompleted {
			return errors.New("reviews can only be submitted for completed bookings")
		}

		var existingReview models.Review
		if err := tx.Where("booking_id = ?", bookingID).First(&existingReview).Error; err == nil {
			return errors.New("a review for this booking has already been submitted")
		}

		newReview = models.Review{
			BookingID:      booking.ID,
			ClientID:       clientID,
			ProfessionalID: booking.ProfessionalID,
			Rating:         req.Rating,
			Comment:        req.Comment,
		}
		if err := tx.Create(&newReview).Error; err != nil {
			return err
		}

		var result struct {
			Avg float64
		}
		tx.Model(&models.Review{}).Where("professional_id = ?", booking.ProfessionalID).Select("avg(rating) as avg").Scan(&result)

		if err := tx.Model(&models.Professional{}).Where("id = ?", booking.ProfessionalID).Update("rating", result.Avg).Error; err != nil {
			return err
		}

		return nil
	})

	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	return c.Status(fiber.StatusCreated).JSON(newReview)
}

type UpdateBookingStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// UpdateBookingStatus is the professional-side status transition. A
// booking owned by another professional answers 404, the same as a
// missing one.
func UpdateBookingStatus(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	userID, _ := uuid.Parse(claims["user_id"].(string))
	bookingID, err := uuid.Parse(c.Params("bookingId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid booking ID format"})
	}

	var req UpdateBookingStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	professional, err := professionalForUser(userID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Professional profile not found"})
	}

	booking, err := bookingService.UpdateStatus(c.UserContext(), bookingID, professional.ID, req.Status)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Booking not found"})
		case errors.Is(err, services.ErrInvalidStatus):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Status must be one of confirmed, in_progress, completed, cancelled"})
		case errors.Is(err, services.ErrInvalidTransition):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Transition not allowed from the booking's current status"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update booking"})
	}

	if booking.Status == models.BookingStatusConfirmed || booking.Status == models.BookingStatusCompleted {
		go notifyClientOfStatus(booking)
	}

	return c.JSON(booking)
}

func notifyClientOfStatus(booking *models.Booking) {
	var client models.User
	if err := database.DB.First(&client, "id = ?", booking.ClientID).Error; err != nil {
		return
	}
	subject := "Your Booking is Confirmed!"
	body := "<h1>Booking Confirmed</h1><p>Your professional has confirmed booking " + booking.Reference + ".</p>"
	if booking.Status == models.BookingStatusCompleted {
		subject = "Your Booking is Complete"
		body = "<h1>Booking Complete</h1><p>Booking " + booking.Reference + " has been marked as completed. You can now leave a review.</p>"
	}
	notifications.SendEmail(client.FullName, client.Email, subject, body)
}

func GetProfessionalBookings(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	userID, _ := uuid.Parse(claims["user_id"].(string))

	professional, err := professionalForUser(userID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Professional profile not found"})
	}

	var filters services.BookingListFilters
	if raw := c.Query("client_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid client_id"})
		}
		filters.ClientID = &id
	}
	if raw := c.Query("service_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid service_id"})
		}
		filters.ServiceID = &id
	}

	bookings, err := bookingService.ListForProfessional(c.UserContext(), professional.ID, filters)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load bookings"})
	}
	return c.JSON(bookings)
}

func GetProfessionalBookingDetail(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	userID, _ := uuid.Parse(claims["user_id"].(string))
	bookingID, err := uuid.Parse(c.Params("bookingId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid booking ID format"})
	}

	professional, err := professionalForUser(userID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Professional profile not found"})
	}

	booking, err := bookingService.GetForProfessional(c.UserContext(), bookingID, professional.ID)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Booking not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load booking"})
	}
	return c.JSON(booking)
}

func GetBookingStats(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	userID, _ := uuid.Parse(claims["user_id"].(string))

	professional, err := professionalForUser(userID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Professional profile not found"})
	}

	stats, err := bookingService.Stats(c.UserContext(), professional.ID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to compute stats"})
	}
	return c.JSON(stats)
}

func GetUpcomingBookings(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	userID, _ := uuid.Parse(claims["user_id"].(string))

	professional, err := professionalForUser(userID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Professional profile not found"})
	}

	bookings, err := bookingService.Upcoming(c.UserContext(), professional.ID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load upcoming bookings"})
	}
	return c.JSON(bookings)
}

func professionalForUser(userID uuid.UUID) (*models.Professional, error) {
	var professional models.Professional
	err := database.DB.Where("user_id = ? AND is_deleted = ?", userID, false).First(&professional).Error
	if err != nil {
		return nil, err
	}
	return &professional, nil
}
