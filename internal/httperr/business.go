package httperr

import "errors"

// ===============================
// Business error codes
// ===============================

const (
	CodeBarberNotFound           = "barber_not_found"
	CodeServiceNotFound          = "service_not_found"
	CodeServiceUnavailable       = "service_unavailable"
	CodeBookingNotFound          = "booking_not_found"
	CodeSlotUnavailable          = "slot_unavailable"
	CodeOutsideAvailability      = "outside_availability"
	CodeStartInPast              = "start_in_past"
	CodeEndMismatch              = "ends_at_mismatch"
	CodeHomeVisitUnavailable     = "home_visit_unavailable"
	CodeAddressRequired          = "address_required"
	CodeTokenRequired            = "token_required"
	CodeAlreadyCancelled         = "already_cancelled"
	CodeInvalidState             = "invalid_state"
	CodeCancellationWindowPassed = "cancellation_window_passed"
	CodeInvalidSignature         = "invalid_signature"
	CodeAlreadyPaid              = "already_paid"
	CodeNotOnlinePayment         = "not_online_payment"
	CodeServiceHasBookings       = "service_has_future_bookings"
	CodeSlugTaken                = "slug_already_exists"
	CodeEmailTaken               = "email_already_exists"
	CodeInvalidDate              = "invalid_date"
	CodeInvalidTemplate          = "invalid_template"
	CodeNotFound                 = "not_found"
)

type BusinessError struct {
	Code string
}

func (e BusinessError) Error() string {
	return e.Code
}

func ErrBusiness(code string) error {
	return BusinessError{Code: code}
}

func IsBusiness(err error, code string) bool {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code == code
	}
	return false
}

// AsBusiness extrai o BusinessError da cadeia, se houver.
func AsBusiness(err error) (BusinessError, bool) {
	var be BusinessError
	ok := errors.As(err, &be)
	return be, ok
}
