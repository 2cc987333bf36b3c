package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	PaymentTypeUpfront   = "upfront_30"
	PaymentTypeRemaining = "remaining_70"
)

const (
	PaymentStatusPending               = "pending"
	PaymentStatusRequiresPaymentMethod = "requires_payment_method"
	PaymentStatusRequiresConfirmation  = "requires_confirmation"
	PaymentStatusRequiresAction        = "requires_action"
	PaymentStatusProcessing            = "processing"
	PaymentStatusRequiresCapture       = "requires_capture"
	PaymentStatusSucceeded             = "succeeded"
	PaymentStatusCancelled             = "cancelled"
	PaymentStatusFailed                = "failed"
)

type BookingPayment struct {
	ID             uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	BookingID      uuid.UUID `gorm:"not null;uniqueIndex:idx_booking_payment_type" json:"booking_id"`
	ClientID       uuid.UUID `gorm:"not null" json:"client_id"`
	ProfessionalID uuid.UUID `gorm:"not null" json:"professional_id"`

	PaymentType string `gorm:"size:20;not null;uniqueIndex:idx_booking_payment_type" json:"payment_type"`

	StripePaymentIntentID string  `gorm:"size:255;not null;unique" json:"stripe_payment_intent_id"`
	StripeTransferID      *string `gorm:"size:255;unique" json:"stripe_transfer_id"`

	Amount             float64 `gorm:"type:numeric(10,2);not null" json:"amount"`
	PlatformFee        float64 `gorm:"type:numeric(10,2);not null" json:"platform_fee"`
	ProfessionalAmount float64 `gorm:"type:numeric(10,2);not null" json:"professional_amount"`
	Currency           string  `gorm:"size:3;not null" json:"currency"`

	Status        string     `gorm:"size:30;not null;default:'pending'" json:"status"`
	FailureReason *string    `gorm:"type:text" json:"failure_reason"`
	CapturedAt    *time.Time `json:"captured_at"`
	TransferredAt *time.Time `json:"transferred_at"`

	Booking Booking `gorm:"foreignkey:BookingID" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
