package booking

import (
	"time"

	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

const CancellationWindow = 24 * time.Hour

// CanCancel: o início precisa estar a pelo menos 24h de now (24h exatas vale).
func CanCancel(startsAt, now time.Time) bool {
	return startsAt.UTC().Sub(now.UTC()) >= CancellationWindow
}

// CustomerCancel aplica as regras do cancelamento via token.
// A ordem das checagens define o código de erro devolvido.
func CustomerCancel(b *models.Booking, token string, now time.Time) error {
	if token == "" {
		return httperr.ErrBusiness(httperr.CodeTokenRequired)
	}
	if !TokenMatches(b.CancellationToken, token) {
		return httperr.ErrBusiness(httperr.CodeBookingNotFound)
	}

	switch Status(b.Status) {
	case StatusCancelled:
		return httperr.ErrBusiness(httperr.CodeAlreadyCancelled)
	case StatusBooked:
	default:
		return httperr.ErrBusiness(httperr.CodeInvalidState)
	}

	if !CanCancel(b.StartsAt, now) {
		return httperr.ErrBusiness(httperr.CodeCancellationWindowPassed)
	}

	return Cancel(b, now)
}
