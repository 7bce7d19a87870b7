package booking

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/booking"
	"github.com/BruksfildServices01/barber-booking/internal/dto"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/timezone"
)

type ListBookingsInput struct {
	BarberID uuid.UUID
	From     string // YYYY-MM-DD, opcional
	To       string // YYYY-MM-DD inclusive, opcional
	Status   string
}

type ListBookings struct {
	repo domain.Repository
}

func NewListBookings(repo domain.Repository) *ListBookings {
	return &ListBookings{repo: repo}
}

func (uc *ListBookings) Execute(
	ctx context.Context,
	in ListBookingsInput,
) ([]dto.BookingListDTO, error) {

	barber, err := uc.repo.GetBarberByID(ctx, in.BarberID)
	if err != nil {
		return nil, err
	}
	loc := timezone.Location(barber.Timezone)

	filter := domain.ListFilter{BarberID: barber.ID}

	if in.From != "" {
		from, err := timezone.ParseDate(in.From, loc)
		if err != nil {
			return nil, httperr.ErrBusiness(httperr.CodeInvalidDate)
		}
		filter.From = &from
	}
	if in.To != "" {
		to, err := timezone.ParseDate(in.To, loc)
		if err != nil {
			return nil, httperr.ErrBusiness(httperr.CodeInvalidDate)
		}
		to = to.AddDate(0, 0, 1)
		filter.To = &to
	}
	if in.Status != "" {
		st := domain.Status(in.Status)
		if !st.Valid() {
			return nil, httperr.ErrBusiness(httperr.CodeInvalidState)
		}
		filter.Status = st
	}

	bookings, err := uc.repo.ListBookings(ctx, filter)
	if err != nil {
		return nil, err
	}

	out := make([]dto.BookingListDTO, 0, len(bookings))
	for _, b := range bookings {
		var row dto.BookingListDTO
		if err := copier.Copy(&row, &b); err != nil {
			return nil, err
		}
		row.StartsAt = b.StartsAt.In(loc)
		row.EndsAt = b.EndsAt.In(loc)
		if b.Service != nil {
			row.ServiceTitle = b.Service.Title
		}
		out = append(out, row)
	}

	return out, nil
}

// DefaultRange devolve o mês corrente no fuso do barbeiro quando o
// painel não informa período.
func DefaultRange(now time.Time, tz string) (string, string) {
	loc := timezone.Location(tz)
	day := timezone.StartOfDay(now, loc)
	first := time.Date(day.Year(), day.Month(), 1, 0, 0, 0, 0, loc)
	last := first.AddDate(0, 1, -1)
	return first.Format(domain.DateLayout), last.Format(domain.DateLayout)
}
