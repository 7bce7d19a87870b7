package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ======================================================
// REQUESTS
// ======================================================

type CreateBookingRequest struct {
	ServiceID       string `json:"service_id" validate:"required,uuid"`
	BarberID        string `json:"barber_id" validate:"required,uuid"`
	StartsAt        string `json:"starts_at" validate:"required,datetime=2006-01-02T15:04:05Z07:00"`
	EndsAt          string `json:"ends_at" validate:"omitempty,datetime=2006-01-02T15:04:05Z07:00"`
	CustomerName    string `json:"customer_name" validate:"required,min=2,max=100"`
	CustomerEmail   string `json:"customer_email" validate:"required,email,max=100"`
	CustomerPhone   string `json:"customer_phone" validate:"required,min=10,max=30"`
	LocationType    string `json:"location_type" validate:"required,oneof=in-shop home-visit"`
	CustomerAddress string `json:"customer_address" validate:"required_if=LocationType home-visit,max=255"`
	PaymentMethod   string `json:"payment_method" validate:"required,oneof=on-site online"`
}

type CancelBookingRequest struct {
	Token string `json:"token"`
}

type SubscribeRequest struct {
	BarberID        string `json:"barber_id" validate:"required,uuid"`
	SubscriberEmail string `json:"subscriber_email" validate:"required,email,max=100"`
}

type UpdateBookingStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=completed no-show cancelled"`
}

// ======================================================
// RESPONSES
// ======================================================

type CreateBookingResponse struct {
	BookingID  uuid.UUID `json:"booking_id"`
	PaymentURL string    `json:"payment_url,omitempty"`
}

type CancelBookingResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type SubscribeResponse struct {
	Success bool   `json:"success"`
	Status  string `json:"status"`
	Message string `json:"message"`
}

// BookingPublicDTO é o que a página de cancelamento enxerga.
type BookingPublicDTO struct {
	ID            uuid.UUID       `json:"id"`
	ShopName      string          `json:"shop_name"`
	ServiceTitle  string          `json:"service_title"`
	Price         decimal.Decimal `json:"price"`
	StartsAt      time.Time       `json:"starts_at"`
	EndsAt        time.Time       `json:"ends_at"`
	Status        string          `json:"status"`
	PaymentMethod string          `json:"payment_method"`
	PaymentStatus string          `json:"payment_status"`
	LocationType  string          `json:"location_type"`
	CustomerName  string          `json:"customer_name"`
	CanCancel     bool            `json:"can_cancel"`
}

// BookingListDTO é a linha da agenda no painel.
type BookingListDTO struct {
	ID              uuid.UUID `json:"id"`
	StartsAt        time.Time `json:"starts_at"`
	EndsAt          time.Time `json:"ends_at"`
	Status          string    `json:"status"`
	PaymentMethod   string    `json:"payment_method"`
	PaymentStatus   string    `json:"payment_status"`
	LocationType    string    `json:"location_type"`
	CustomerName    string    `json:"customer_name"`
	CustomerEmail   string    `json:"customer_email"`
	CustomerPhone   string    `json:"customer_phone"`
	CustomerAddress string    `json:"customer_address"`
	ServiceTitle    string    `json:"service_title"`
}
