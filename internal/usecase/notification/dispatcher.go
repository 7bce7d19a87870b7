package notification

import (
	"context"
	"log/slog"
	"sync"
	"time"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/booking"
	"github.com/BruksfildServices01/barber-booking/internal/events"
	"github.com/BruksfildServices01/barber-booking/internal/metrics"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

const (
	jobConfirmation = "confirmation"
	jobCancellation = "cancellation"
	jobEvent        = "event"

	jobTimeout = 30 * time.Second
)

type job struct {
	kind      string
	eventType string
	booking   models.Booking
}

// Dispatcher executa notificações fora da requisição: fila com buffer,
// descarta quando cheia e nunca tenta de novo.
type Dispatcher struct {
	emails    *Emails
	publisher events.Publisher
	logger    *slog.Logger

	queue chan job
	wg    sync.WaitGroup
	once  sync.Once
}

func NewDispatcher(
	emails *Emails,
	publisher events.Publisher,
	logger *slog.Logger,
	workers int,
	buffer int,
) *Dispatcher {
	if workers <= 0 {
		workers = 1
	}
	if buffer <= 0 {
		buffer = 100
	}

	d := &Dispatcher{
		emails:    emails,
		publisher: publisher,
		logger:    logger,
		queue:     make(chan job, buffer),
	}

	for i := 0; i < workers; i++ {
		d.wg.Add(1)
		go d.worker()
	}
	return d
}

func (d *Dispatcher) BookingConfirmed(b models.Booking) {
	d.enqueue(job{kind: jobConfirmation, booking: b})
}

func (d *Dispatcher) BookingCancelled(b models.Booking) {
	d.enqueue(job{kind: jobCancellation, booking: b})
}

func (d *Dispatcher) BookingEvent(eventType string, b models.Booking) {
	d.enqueue(job{kind: jobEvent, eventType: eventType, booking: b})
}

func (d *Dispatcher) enqueue(j job) {
	defer func() {
		if recover() != nil {
			d.logger.Warn("notification dispatcher closed, dropping job", "kind", j.kind)
		}
	}()

	select {
	case d.queue <- j:
	default:
		metrics.IncNotificationDropped()
		d.logger.Warn("notification queue full, dropping job",
			"kind", j.kind,
			"booking_id", j.booking.ID,
		)
	}
}

func (d *Dispatcher) worker() {
	defer d.wg.Done()
	for j := range d.queue {
		d.run(j)
	}
}

func (d *Dispatcher) run(j job) {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	switch j.kind {
	case jobConfirmation:
		if err := d.emails.SendConfirmation(ctx, j.booking.ID); err != nil {
			d.logger.Error("confirmation email failed", "booking_id", j.booking.ID, "error", err)
		}

	case jobCancellation:
		if err := d.emails.SendCancellation(ctx, j.booking.ID); err != nil {
			d.logger.Error("cancellation email failed", "booking_id", j.booking.ID, "error", err)
		}
		sent, err := d.emails.NotifySlotFreed(ctx, j.booking.ID)
		if err != nil {
			d.logger.Error("slot freed fan-out failed", "booking_id", j.booking.ID, "error", err)
			return
		}
		d.logger.Info("slot freed fan-out", "booking_id", j.booking.ID, "sent", sent)

	case jobEvent:
		b := j.booking
		if err := d.publisher.Publish(ctx, j.eventType, events.BookingEvent{
			Type:          j.eventType,
			BookingID:     b.ID,
			BarberID:      b.BarberID,
			ServiceID:     b.ServiceID,
			StartsAt:      b.StartsAt,
			EndsAt:        b.EndsAt,
			Status:        b.Status,
			PaymentStatus: b.PaymentStatus,
			OccurredAt:    time.Now().UTC(),
		}); err != nil {
			d.logger.Error("event publish failed", "type", j.eventType, "booking_id", b.ID, "error", err)
		}
	}
}

// Close drena a fila e espera os workers.
func (d *Dispatcher) Close() {
	d.once.Do(func() {
		close(d.queue)
	})
	d.wg.Wait()
}

var _ domain.Notifier = (*Dispatcher)(nil)
