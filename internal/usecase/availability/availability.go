package availability

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/booking"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/models"
	"github.com/BruksfildServices01/barber-booking/internal/timezone"
)

// lastDate fecha o intervalo aberto de consultas "de hoje em diante".
const lastDate = "9999-12-31"

func loadBarber(ctx context.Context, repo domain.Repository, id uuid.UUID) (*models.Barber, error) {
	barber, err := repo.GetBarberByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, httperr.ErrBusiness(httperr.CodeBarberNotFound)
		}
		return nil, err
	}
	return barber, nil
}

func resolve(
	ctx context.Context,
	repo domain.Repository,
	barberID, serviceID uuid.UUID,
) (*models.Barber, *models.Service, error) {

	barber, err := loadBarber(ctx, repo, barberID)
	if err != nil {
		return nil, nil, err
	}

	svc, err := repo.GetService(ctx, serviceID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, nil, httperr.ErrBusiness(httperr.CodeServiceNotFound)
		}
		return nil, nil, err
	}
	if svc.BarberID != barber.ID {
		return nil, nil, httperr.ErrBusiness(httperr.CodeServiceNotFound)
	}
	if !svc.Active {
		return nil, nil, httperr.ErrBusiness(httperr.CodeServiceUnavailable)
	}

	return barber, svc, nil
}

// windowsByDate agrupa as linhas por data, já convertidas para o fuso.
func windowsByDate(rows []models.Availability, loc *time.Location) (map[string][]domain.Window, []string) {
	byDate := map[string][]domain.Window{}
	dates := []string{}

	for _, row := range rows {
		w, err := domain.WindowOf(row, loc)
		if err != nil || !w.End.After(w.Start) {
			continue
		}
		if _, ok := byDate[row.Date]; !ok {
			dates = append(dates, row.Date)
		}
		byDate[row.Date] = append(byDate[row.Date], w)
	}
	return byDate, dates
}

func span(windows []domain.Window) (time.Time, time.Time) {
	from, to := windows[0].Start, windows[0].End
	for _, w := range windows[1:] {
		if w.Start.Before(from) {
			from = w.Start
		}
		if w.End.After(to) {
			to = w.End
		}
	}
	return from, to
}

// computeSlots calcula os horários livres de uma data sem passar pelo cache.
func computeSlots(
	ctx context.Context,
	repo domain.Repository,
	barber *models.Barber,
	svc *models.Service,
	date string,
	now time.Time,
) ([]domain.TimeSlot, error) {

	loc := timezone.Location(barber.Timezone)

	rows, err := repo.ListAvailability(ctx, barber.ID, date, date)
	if err != nil {
		return nil, err
	}

	byDate, _ := windowsByDate(rows, loc)
	windows := byDate[date]
	if len(windows) == 0 {
		return []domain.TimeSlot{}, nil
	}

	from, to := span(windows)
	bookings, err := repo.ListActiveBookings(ctx, barber.ID, from, to)
	if err != nil {
		return nil, err
	}

	return domain.FreeSlots(windows, domain.BusyOf(bookings), svc.Duration(), now), nil
}

func futureOnly(slots []domain.TimeSlot, now time.Time) []domain.TimeSlot {
	out := make([]domain.TimeSlot, 0, len(slots))
	for _, s := range slots {
		if s.StartsAt.After(now) {
			out = append(out, s)
		}
	}
	return out
}
