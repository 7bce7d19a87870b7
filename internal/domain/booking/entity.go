package booking

import (
	"time"

	"github.com/BruksfildServices01/barber-booking/internal/models"
)

// ===============================
// Domain Actions
// ===============================

func Cancel(b *models.Booking, now time.Time) error {
	if err := CheckTransition(Status(b.Status), StatusCancelled); err != nil {
		return err
	}

	now = now.UTC()
	b.Status = string(StatusCancelled)
	b.CancelledAt = &now
	return nil
}

func Complete(b *models.Booking, now time.Time) error {
	if err := CheckTransition(Status(b.Status), StatusCompleted); err != nil {
		return err
	}

	now = now.UTC()
	b.Status = string(StatusCompleted)
	b.CompletedAt = &now
	return nil
}

func MarkNoShow(b *models.Booking) error {
	if err := CheckTransition(Status(b.Status), StatusNoShow); err != nil {
		return err
	}

	b.Status = string(StatusNoShow)
	return nil
}

// Apply aplica a transição pedida pelo dono da barbearia.
func Apply(b *models.Booking, next Status, now time.Time) error {
	switch next {
	case StatusCompleted:
		return Complete(b, now)
	case StatusNoShow:
		return MarkNoShow(b)
	case StatusCancelled:
		return Cancel(b, now)
	}
	return CheckTransition(Status(b.Status), next)
}
