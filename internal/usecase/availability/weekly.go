package availability

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	"github.com/BruksfildServices01/barber-booking/internal/cache"
	"github.com/BruksfildServices01/barber-booking/internal/clock"
	domain "github.com/BruksfildServices01/barber-booking/internal/domain/booking"
	"github.com/BruksfildServices01/barber-booking/internal/dto"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/models"
	"github.com/BruksfildServices01/barber-booking/internal/timezone"
)

// ======================================================
// MODELO SEMANAL
// ======================================================

// GenerateWeekly materializa o modelo semanal em linhas de disponibilidade
// para os próximos dias. Só linhas futuras são substituídas; as de hoje
// ficam como estão.
type GenerateWeekly struct {
	repo  domain.Repository
	cache cache.AvailabilityCache
	audit *audit.Dispatcher
	clock clock.Clock
	days  int
}

func NewGenerateWeekly(
	repo domain.Repository,
	cache cache.AvailabilityCache,
	audit *audit.Dispatcher,
	clock clock.Clock,
	days int,
) *GenerateWeekly {
	if days <= 0 {
		days = 28
	}
	return &GenerateWeekly{repo: repo, cache: cache, audit: audit, clock: clock, days: days}
}

func (uc *GenerateWeekly) Execute(
	ctx context.Context,
	barberID uuid.UUID,
	userID uuid.UUID,
	template []dto.WeeklyDay,
) ([]models.Availability, error) {

	byWeekday, err := checkTemplate(template)
	if err != nil {
		return nil, err
	}

	barber, err := loadBarber(ctx, uc.repo, barberID)
	if err != nil {
		return nil, err
	}

	loc := timezone.Location(barber.Timezone)
	tomorrow := timezone.StartOfDay(uc.clock.Now(), loc).AddDate(0, 0, 1)

	rows := []models.Availability{}
	for i := 0; i < uc.days; i++ {
		day := tomorrow.AddDate(0, 0, i)
		d, ok := byWeekday[day.Weekday()]
		if !ok || !d.Enabled {
			continue
		}
		rows = append(rows, models.Availability{
			BarberID:  barber.ID,
			Date:      day.Format(domain.DateLayout),
			StartTime: d.StartTime,
			EndTime:   d.EndTime,
		})
	}

	if err := uc.repo.ReplaceAvailability(ctx, barber.ID, tomorrow.Format(domain.DateLayout), rows); err != nil {
		return nil, err
	}

	uc.cache.Invalidate(ctx, barber.ID)

	uc.audit.Dispatch(audit.Event{
		BarberID: barber.ID,
		UserID:   &userID,
		Action:   "availability_template_applied",
		Entity:   "availability",
		Metadata: map[string]any{"days": uc.days, "rows": len(rows)},
	})

	return rows, nil
}

func checkTemplate(template []dto.WeeklyDay) (map[time.Weekday]dto.WeeklyDay, error) {
	out := map[time.Weekday]dto.WeeklyDay{}

	for _, d := range template {
		if d.Weekday < 0 || d.Weekday > 6 {
			return nil, httperr.ErrBusiness(httperr.CodeInvalidTemplate)
		}
		wd := time.Weekday(d.Weekday)
		if _, dup := out[wd]; dup {
			return nil, httperr.ErrBusiness(httperr.CodeInvalidTemplate)
		}

		if d.Enabled {
			start, err := time.Parse(domain.HMLayout, d.StartTime)
			if err != nil {
				return nil, httperr.ErrBusiness(httperr.CodeInvalidTemplate)
			}
			end, err := time.Parse(domain.HMLayout, d.EndTime)
			if err != nil || !end.After(start) {
				return nil, httperr.ErrBusiness(httperr.CodeInvalidTemplate)
			}
		}
		out[wd] = d
	}
	return out, nil
}

// ======================================================
// JANELAS AVULSAS
// ======================================================

type ManageWindows struct {
	repo  domain.Repository
	cache cache.AvailabilityCache
	audit *audit.Dispatcher
	clock clock.Clock
}

func NewManageWindows(
	repo domain.Repository,
	cache cache.AvailabilityCache,
	audit *audit.Dispatcher,
	clock clock.Clock,
) *ManageWindows {
	return &ManageWindows{repo: repo, cache: cache, audit: audit, clock: clock}
}

// List devolve as janelas de hoje em diante.
func (uc *ManageWindows) List(ctx context.Context, barberID uuid.UUID) ([]models.Availability, error) {
	barber, err := loadBarber(ctx, uc.repo, barberID)
	if err != nil {
		return nil, err
	}
	loc := timezone.Location(barber.Timezone)
	today := timezone.StartOfDay(uc.clock.Now(), loc).Format(domain.DateLayout)

	return uc.repo.ListAvailability(ctx, barber.ID, today, lastDate)
}

func (uc *ManageWindows) Delete(
	ctx context.Context,
	barberID, userID, id uuid.UUID,
) error {

	if err := uc.repo.DeleteAvailability(ctx, barberID, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return httperr.ErrBusiness(httperr.CodeNotFound)
		}
		return err
	}

	uc.cache.Invalidate(ctx, barberID)

	uc.audit.Dispatch(audit.Event{
		BarberID: barberID,
		UserID:   &userID,
		Action:   "availability_deleted",
		Entity:   "availability",
		EntityID: &id,
	})
	return nil
}
