package models

import (
	"time"

	"github.com/google/uuid"
)

type Service struct {
	ID             uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	ProfessionalID uuid.UUID `gorm:"not null" json:"professional_id"`
	Title          string    `gorm:"size:255;not null" json:"title"`
	Description    *string   `gorm:"type:text" json:"description"`
	Price          float64   `gorm:"type:numeric(10,2);not null" json:"price"`
	Currency       string    `gorm:"size:3;not null;default:'USD'" json:"currency"`
	IsActive       bool      `gorm:"default:true" json:"is_active"`

	Professional Professional `gorm:"foreignkey:ProfessionalID" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"-"`
}
