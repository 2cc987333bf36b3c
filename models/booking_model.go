package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	BookingStatusPending    = "pending"
	BookingStatusConfirmed  = "confirmed"
	BookingStatusInProgress = "in_progress"
	BookingStatusCompleted  = "completed"
	BookingStatusCancelled  = "cancelled"
	BookingStatusDisputed   = "disputed"
	BookingStatusRefunded   = "refunded"
)

type Booking struct {
	ID             uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Reference      string    `gorm:"size:12;not null;unique" json:"reference"`
	ClientID       uuid.UUID `gorm:"not null" json:"client_id"`
	ProfessionalID uuid.UUID `gorm:"not null" json:"professional_id"`
	ServiceID      uuid.UUID `gorm:"not null" json:"service_id"`

	Status        string  `gorm:"size:20;not null;default:'pending'" json:"status"`
	PaymentStatus string  `gorm:"size:20;not null;default:'unpaid'" json:"payment_status"`
	TotalAmount   float64 `gorm:"type:numeric(10,2);not null" json:"total_amount"`
	Currency      string  `gorm:"size:3;not null" json:"currency"`

	EventDate       time.Time  `gorm:"not null" json:"event_date"`
	StatusUpdatedAt *time.Time `json:"status_updated_at"`
	CompletionDate  *time.Time `json:"completion_date"`

	Client       User         `gorm:"foreignkey:ClientID" json:"client,omitempty"`
	Professional Professional `gorm:"foreignkey:ProfessionalID" json:"-"`
	Service      Service      `gorm:"foreignkey:ServiceID" json:"service,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
