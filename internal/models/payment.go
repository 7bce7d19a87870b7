package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Payment struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	BookingID uuid.UUID `gorm:"type:uuid;uniqueIndex;not null" json:"booking_id"`

	Provider          string          `gorm:"size:30;not null" json:"provider"`
	PreferenceID      string          `gorm:"size:100" json:"preference_id"`
	ProviderPaymentID string          `gorm:"size:100" json:"provider_payment_id"`
	CheckoutURL       string          `gorm:"size:500" json:"checkout_url"`
	Amount            decimal.Decimal `gorm:"type:numeric(10,2)" json:"amount"`
	Currency          string          `gorm:"size:3" json:"currency"`
	Status            string          `gorm:"size:20;default:'pending'" json:"status"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (p *Payment) BeforeCreate(*gorm.DB) error {
	ensureID(&p.ID)
	return nil
}
