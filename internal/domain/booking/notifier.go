package booking

import "github.com/BruksfildServices01/barber-booking/internal/models"

// Notifier recebe os efeitos colaterais do ciclo de vida do agendamento.
// Implementações não bloqueiam e não devolvem erro: falhas ficam no log.
type Notifier interface {
	BookingConfirmed(b models.Booking)
	BookingCancelled(b models.Booking)
	BookingEvent(eventType string, b models.Booking)
}
