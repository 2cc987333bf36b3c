package handlers

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/wanjiru84/pro_marketplace/services"
)

type PaymentEventPayload struct {
	PaymentIntentID string `json:"payment_intent_id" validate:"required"`
	Status          string `json:"status" validate:"required"`
	Metadata        struct {
		FailureReason string `json:"failure_reason"`
	} `json:"metadata"`
}

// HandlePaymentWebhook records one payment-intent event from the
// processor. Delivery is at-least-once; replays of an already-applied
// event are acknowledged with 200 and no further side effects.
func HandlePaymentWebhook(c *fiber.Ctx) error {
	var payload PaymentEventPayload
	if err := c.BodyParser(&payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse webhook payload"})
	}
	if err := validate.Struct(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	log.Printf("Received payment event for intent %s: %s", payload.PaymentIntentID, payload.Status)

	payment, err := paymentService.RecordPaymentEvent(c.UserContext(), payload.PaymentIntentID, payload.Status,
		services.PaymentEventMeta{FailureReason: payload.Metadata.FailureReason})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Payment record not found"})
		case errors.Is(err, services.ErrInvalidStatus):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Unknown payment status: " + payload.Status})
		case errors.Is(err, services.ErrFailureReasonRequired):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "A failure reason is required for failed payments"})
		case errors.Is(err, services.ErrInvalidTransition):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Event not applicable from the payment's current status"})
		case errors.Is(err, services.ErrTerminalState):
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Payment is already in a terminal state"})
		}
		log.Printf("🔥 CRITICAL: Failed to record payment event for intent %s: %v", payload.PaymentIntentID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to process webhook"})
	}

	return c.JSON(fiber.Map{"message": "Webhook processed successfully", "payment": payment})
}

type RecordTransferRequest struct {
	PaymentIntentID string `json:"payment_intent_id" validate:"required"`
	TransferID      string `json:"transfer_id" validate:"required"`
}

// RecordTransfer stamps the payout of a captured installment. Transfer
// strictly follows capture.
func RecordTransfer(c *fiber.Ctx) error {
	var req RecordTransferRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	payment, err := paymentService.RecordTransfer(c.UserContext(), req.PaymentIntentID, req.TransferID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Payment record not found"})
		case errors.Is(err, services.ErrInvalidTransition):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Transfer can only be recorded after capture"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to record transfer"})
	}

	return c.JSON(payment)
}
