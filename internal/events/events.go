package events

import (
	"context"
	"time"

	"github.com/google/uuid"
)

const (
	BookingCreated       = "booking.created"
	BookingCancelled     = "booking.cancelled"
	BookingStatusChanged = "booking.status_changed"
	PaymentUpdated       = "payment.updated"
)

type BookingEvent struct {
	Type          string    `json:"type"`
	BookingID     uuid.UUID `json:"booking_id"`
	BarberID      uuid.UUID `json:"barber_id"`
	ServiceID     uuid.UUID `json:"service_id"`
	StartsAt      time.Time `json:"starts_at"`
	EndsAt        time.Time `json:"ends_at"`
	Status        string    `json:"status"`
	PaymentStatus string    `json:"payment_status"`
	OccurredAt    time.Time `json:"occurred_at"`
}

type Publisher interface {
	Publish(ctx context.Context, routingKey string, payload any) error
	Close()
}

type Noop struct{}

func (Noop) Publish(context.Context, string, any) error { return nil }
func (Noop) Close()                                     {}
