package dto

import "github.com/shopspring/decimal"

type ServiceRequest struct {
	Title           string          `json:"title" validate:"required,min=3,max=100"`
	Description     string          `json:"description" validate:"max=255"`
	DurationMinutes int             `json:"duration_minutes" validate:"required,min=5,max=600"`
	Price           decimal.Decimal `json:"price"`
	Active          *bool           `json:"active"`
}

type UpdateServiceRequest struct {
	Title           *string          `json:"title,omitempty" validate:"omitempty,min=3,max=100"`
	Description     *string          `json:"description,omitempty" validate:"omitempty,max=255"`
	DurationMinutes *int             `json:"duration_minutes,omitempty" validate:"omitempty,min=5,max=600"`
	Price           *decimal.Decimal `json:"price,omitempty"`
	Active          *bool            `json:"active,omitempty"`
}

type BarberProfileRequest struct {
	Slug                string `json:"slug" validate:"omitempty,min=3,max=100"`
	ShopName            string `json:"shop_name" validate:"required,min=3,max=100"`
	Address             string `json:"address" validate:"max=255"`
	PostalCode          string `json:"postal_code" validate:"max=20"`
	City                string `json:"city" validate:"max=100"`
	Phone               string `json:"phone" validate:"max=30"`
	Email               string `json:"email" validate:"omitempty,email"`
	Bio                 string `json:"bio"`
	Timezone            string `json:"timezone"`
	TravelEnabled       bool   `json:"travel_enabled"`
	ExtraSectionEnabled bool   `json:"extra_section_enabled"`
	ExtraSectionTitle   string `json:"extra_section_title" validate:"max=100"`
	ExtraSectionText    string `json:"extra_section_text"`
}

// WeeklyDay é um dia do modelo semanal (weekday 0 = domingo).
type WeeklyDay struct {
	Weekday   int    `json:"weekday" validate:"min=0,max=6"`
	Enabled   bool   `json:"enabled"`
	StartTime string `json:"start_time" validate:"required_if=Enabled true,omitempty,datetime=15:04"`
	EndTime   string `json:"end_time" validate:"required_if=Enabled true,omitempty,datetime=15:04"`
}

type WeeklyTemplateRequest struct {
	Days []WeeklyDay `json:"days" validate:"required,min=1,max=7,dive"`
}
