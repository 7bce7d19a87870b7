package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Barber struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID uuid.UUID `gorm:"type:uuid;uniqueIndex" json:"user_id"`

	Slug       string `gorm:"size:100;uniqueIndex;not null" json:"slug"`
	ShopName   string `gorm:"size:100;not null" json:"shop_name"`
	Address    string `gorm:"size:255" json:"address"`
	PostalCode string `gorm:"size:20" json:"postal_code"`
	City       string `gorm:"size:100" json:"city"`
	Phone      string `gorm:"size:30" json:"phone"`
	Email      string `gorm:"size:100" json:"email"`
	Bio        string `gorm:"type:text" json:"bio"`
	LogoURL    string `gorm:"size:255" json:"logo_url"`
	Timezone   string `gorm:"size:50;default:'America/Sao_Paulo'" json:"timezone"`

	TravelEnabled bool `gorm:"default:false" json:"travel_enabled"`

	ExtraSectionEnabled bool   `gorm:"default:false" json:"extra_section_enabled"`
	ExtraSectionTitle   string `gorm:"size:100" json:"extra_section_title"`
	ExtraSectionText    string `gorm:"type:text" json:"extra_section_text"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (b *Barber) BeforeCreate(*gorm.DB) error {
	ensureID(&b.ID)
	return nil
}
