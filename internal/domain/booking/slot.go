package booking

import (
	"sort"
	"time"

	"github.com/BruksfildServices01/barber-booking/internal/models"
	"github.com/BruksfildServices01/barber-booking/internal/timezone"
)

const (
	DateLayout = "2006-01-02"
	HMLayout   = "15:04"
)

type TimeSlot struct {
	Start    string    `json:"start"`
	End      string    `json:"end"`
	StartsAt time.Time `json:"starts_at"`
	EndsAt   time.Time `json:"ends_at"`
}

// Window é um intervalo [Start, End).
type Window struct {
	Start time.Time
	End   time.Time
}

func (w Window) Overlaps(start, end time.Time) bool {
	return start.Before(w.End) && end.After(w.Start)
}

func (w Window) Contains(start, end time.Time) bool {
	return !start.Before(w.Start) && !end.After(w.End)
}

// WindowOf converte uma linha de disponibilidade para o fuso loc.
func WindowOf(a models.Availability, loc *time.Location) (Window, error) {
	day, err := timezone.ParseDate(a.Date, loc)
	if err != nil {
		return Window{}, err
	}
	start, err := timezone.At(day, a.StartTime)
	if err != nil {
		return Window{}, err
	}
	end, err := timezone.At(day, a.EndTime)
	if err != nil {
		return Window{}, err
	}
	return Window{Start: start, End: end}, nil
}

func BusyOf(bookings []models.Booking) []Window {
	busy := make([]Window, 0, len(bookings))
	for _, b := range bookings {
		if Status(b.Status) == StatusCancelled {
			continue
		}
		busy = append(busy, Window{Start: b.StartsAt, End: b.EndsAt})
	}
	sort.Slice(busy, func(i, j int) bool { return busy[i].Start.Before(busy[j].Start) })
	return busy
}

// FreeSlots percorre cada janela em passos de duration e devolve os
// horários que cabem na janela, começam depois de notBefore e não
// colidem com nenhum intervalo ocupado.
func FreeSlots(
	windows []Window,
	busy []Window,
	duration time.Duration,
	notBefore time.Time,
) []TimeSlot {

	slots := []TimeSlot{}
	if duration <= 0 {
		return slots
	}

	sort.Slice(windows, func(i, j int) bool { return windows[i].Start.Before(windows[j].Start) })

	for _, w := range windows {
		busyIdx := 0

		for cur := w.Start; !cur.Add(duration).After(w.End); cur = cur.Add(duration) {
			slotStart := cur
			slotEnd := cur.Add(duration)

			if !slotStart.After(notBefore) {
				continue
			}

			// avança ocupações que terminam antes do slot
			for busyIdx < len(busy) && !busy[busyIdx].End.After(slotStart) {
				busyIdx++
			}

			conflict := false
			for i := busyIdx; i < len(busy) && busy[i].Start.Before(slotEnd); i++ {
				if busy[i].Overlaps(slotStart, slotEnd) {
					conflict = true
					break
				}
			}

			if !conflict {
				slots = append(slots, TimeSlot{
					Start:    slotStart.Format(HMLayout),
					End:      slotEnd.Format(HMLayout),
					StartsAt: slotStart.UTC(),
					EndsAt:   slotEnd.UTC(),
				})
			}
		}
	}

	return slots
}

// FormatDate formata a data no fuso do barbeiro para e-mails.
func FormatDate(t time.Time, loc *time.Location) string {
	return t.In(loc).Format("02/01/2006")
}

func FormatTimeSlot(start, end time.Time, loc *time.Location) string {
	return start.In(loc).Format(HMLayout) + " - " + end.In(loc).Format(HMLayout)
}
