package models

import (
	"time"

	"github.com/google/uuid"
)

type Professional struct {
	ID     uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	UserID uuid.UUID `gorm:"not null;unique" json:"user_id"`

	Headline *string `gorm:"size:255" json:"headline"`
	Bio      *string `gorm:"type:text" json:"bio"`
	Location string  `gorm:"size:255" json:"location"`

	Rating      float64 `gorm:"default:0" json:"rating"`
	IsAvailable bool    `gorm:"default:true" json:"is_available"`
	IsActive    bool    `gorm:"default:true" json:"is_active"`
	IsDeleted   bool    `gorm:"default:false" json:"-"`

	StripeAccountID *string `gorm:"size:255;unique" json:"-"`

	Categories []*Category `gorm:"many2many:professional_categories;" json:"categories,omitempty"`
	User       User        `gorm:"foreignkey:UserID" json:"user"`

	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}
