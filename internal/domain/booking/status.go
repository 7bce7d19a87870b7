package booking

import "github.com/BruksfildServices01/barber-booking/internal/httperr"

// ===============================
// Booking Status
// ===============================

type Status string

const (
	StatusBooked    Status = "booked"
	StatusCompleted Status = "completed"
	StatusNoShow    Status = "no-show"
	StatusCancelled Status = "cancelled"
)

func (s Status) Valid() bool {
	switch s {
	case StatusBooked, StatusCompleted, StatusNoShow, StatusCancelled:
		return true
	}
	return false
}

func (s Status) Terminal() bool {
	return s != StatusBooked
}

// ===============================
// Payment
// ===============================

type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentCompleted PaymentStatus = "completed"
	PaymentFailed    PaymentStatus = "failed"
	PaymentRefunded  PaymentStatus = "refunded"
)

type PaymentMethod string

const (
	PaymentOnSite PaymentMethod = "on-site"
	PaymentOnline PaymentMethod = "online"
)

type LocationType string

const (
	LocationInShop    LocationType = "in-shop"
	LocationHomeVisit LocationType = "home-visit"
)

// ===============================
// Validations
// ===============================

// CheckTransition valida a mudança de status. Só sai de "booked".
func CheckTransition(current, next Status) error {
	if !next.Valid() || next == StatusBooked {
		return httperr.ErrBusiness(httperr.CodeInvalidState)
	}
	if current == StatusCancelled {
		return httperr.ErrBusiness(httperr.CodeAlreadyCancelled)
	}
	if current != StatusBooked {
		return httperr.ErrBusiness(httperr.CodeInvalidState)
	}
	return nil
}

func InitialStatus() Status {
	return StatusBooked
}
