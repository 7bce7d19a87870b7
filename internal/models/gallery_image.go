package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type GalleryImage struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	BarberID uuid.UUID `gorm:"type:uuid;index;not null" json:"barber_id"`

	URL        string `gorm:"size:500;not null" json:"url"`
	StorageKey string `gorm:"size:255" json:"-"`
	Position   int    `gorm:"default:0" json:"position"`

	CreatedAt time.Time `json:"created_at"`
}

func (g *GalleryImage) BeforeCreate(*gorm.DB) error {
	ensureID(&g.ID)
	return nil
}
