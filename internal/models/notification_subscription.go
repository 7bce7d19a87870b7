package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type NotificationSubscription struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	BarberID uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_subscription_barber_email;not null" json:"barber_id"`

	SubscriberEmail string `gorm:"size:100;uniqueIndex:idx_subscription_barber_email;not null" json:"subscriber_email"`
	Active          bool   `gorm:"default:true" json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (n *NotificationSubscription) BeforeCreate(*gorm.DB) error {
	ensureID(&n.ID)
	return nil
}
