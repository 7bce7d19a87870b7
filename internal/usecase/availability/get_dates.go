package availability

import (
	"context"
	"encoding/json"
	"sort"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/barber-booking/internal/cache"
	"github.com/BruksfildServices01/barber-booking/internal/clock"
	domain "github.com/BruksfildServices01/barber-booking/internal/domain/booking"
	"github.com/BruksfildServices01/barber-booking/internal/timezone"
)

// GetDates lista as datas futuras com pelo menos um horário livre
// para o serviço.
type GetDates struct {
	repo  domain.Repository
	cache cache.AvailabilityCache
	clock clock.Clock
}

func NewGetDates(
	repo domain.Repository,
	cache cache.AvailabilityCache,
	clock clock.Clock,
) *GetDates {
	return &GetDates{repo: repo, cache: cache, clock: clock}
}

func (uc *GetDates) Execute(
	ctx context.Context,
	barberID, serviceID uuid.UUID,
) ([]string, error) {

	barber, svc, err := resolve(ctx, uc.repo, barberID, serviceID)
	if err != nil {
		return nil, err
	}

	now := uc.clock.Now()
	loc := timezone.Location(barber.Timezone)
	today := timezone.StartOfDay(now, loc).Format(domain.DateLayout)
	field := "dates:" + svc.ID.String() + ":" + today

	if raw, ok := uc.cache.Get(ctx, barber.ID, field); ok {
		var cached []string
		if json.Unmarshal(raw, &cached) == nil {
			return uc.recheckToday(ctx, cached, today, barber.ID, svc.ID)
		}
	}

	rows, err := uc.repo.ListAvailability(ctx, barber.ID, today, lastDate)
	if err != nil {
		return nil, err
	}

	byDate, dates := windowsByDate(rows, loc)
	out := []string{}
	if len(dates) == 0 {
		return out, nil
	}

	all := []domain.Window{}
	for _, d := range dates {
		all = append(all, byDate[d]...)
	}
	from, to := span(all)

	bookings, err := uc.repo.ListActiveBookings(ctx, barber.ID, from, to)
	if err != nil {
		return nil, err
	}
	busy := domain.BusyOf(bookings)

	for _, d := range dates {
		if len(domain.FreeSlots(byDate[d], busy, svc.Duration(), now)) > 0 {
			out = append(out, d)
		}
	}
	sort.Strings(out)

	if raw, err := json.Marshal(out); err == nil {
		uc.cache.Set(ctx, barber.ID, field, raw)
	}
	return out, nil
}

// recheckToday recalcula só o dia de hoje, cujos horários vencem com o
// passar das horas mesmo sem mudança na agenda.
func (uc *GetDates) recheckToday(
	ctx context.Context,
	dates []string,
	today string,
	barberID, serviceID uuid.UUID,
) ([]string, error) {

	if len(dates) == 0 || dates[0] != today {
		return dates, nil
	}

	barber, svc, err := resolve(ctx, uc.repo, barberID, serviceID)
	if err != nil {
		return nil, err
	}
	slots, err := computeSlots(ctx, uc.repo, barber, svc, today, uc.clock.Now())
	if err != nil {
		return nil, err
	}
	if len(slots) == 0 {
		return dates[1:], nil
	}
	return dates, nil
}
