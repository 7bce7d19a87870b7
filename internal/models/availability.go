package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Availability é uma janela de atendimento num dia (fuso do barbeiro).
type Availability struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	BarberID uuid.UUID `gorm:"type:uuid;index:idx_availability_barber_date;not null" json:"barber_id"`

	Date      string `gorm:"size:10;index:idx_availability_barber_date;not null" json:"date"` // YYYY-MM-DD
	StartTime string `gorm:"size:5;not null" json:"start_time"`                               // HH:MM
	EndTime   string `gorm:"size:5;not null" json:"end_time"`                                 // HH:MM

	CreatedAt time.Time `json:"created_at"`
}

func (a *Availability) BeforeCreate(*gorm.DB) error {
	ensureID(&a.ID)
	return nil
}
