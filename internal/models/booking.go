package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Booking struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	BarberID uuid.UUID `gorm:"type:uuid;index;not null" json:"barber_id"`
	Barber   *Barber   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"barber,omitempty"`

	ServiceID uuid.UUID `gorm:"type:uuid;not null" json:"service_id"`
	Service   *Service  `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"service,omitempty"`

	StartsAt time.Time `gorm:"type:timestamptz;not null" json:"starts_at"`
	EndsAt   time.Time `gorm:"type:timestamptz;not null" json:"ends_at"`

	CustomerName    string `gorm:"size:100;not null" json:"customer_name"`
	CustomerEmail   string `gorm:"size:100;not null" json:"customer_email"`
	CustomerPhone   string `gorm:"size:30;not null" json:"customer_phone"`
	CustomerAddress string `gorm:"size:255" json:"customer_address"`

	LocationType  string `gorm:"size:20;not null" json:"location_type"`
	PaymentMethod string `gorm:"size:20;not null" json:"payment_method"`
	PaymentStatus string `gorm:"size:20;default:'pending'" json:"payment_status"`
	Status        string `gorm:"size:20;default:'booked';index" json:"status"`

	CancellationToken string `gorm:"size:64;not null" json:"-"`
	PaymentIntentID   string `gorm:"size:100" json:"payment_intent_id,omitempty"`

	CancelledAt *time.Time `json:"cancelled_at"`
	CompletedAt *time.Time `json:"completed_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (b *Booking) BeforeCreate(*gorm.DB) error {
	ensureID(&b.ID)
	return nil
}
