package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "barber_booking"

var (
	once sync.Once

	bookingCreated = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "booking_created_total",
			Help:      "Bookings created, by payment method.",
		},
		[]string{"payment_method"},
	)

	bookingRejected = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "booking_rejected_total",
			Help:      "Booking attempts rejected, by error code.",
		},
		[]string{"code"},
	)

	bookingCancelled = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "booking_cancelled_total",
			Help:      "Bookings cancelled by customers.",
		},
	)

	bookingStatus = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "booking_status_change_total",
			Help:      "Status changes made from the dashboard.",
		},
		[]string{"status"},
	)

	notificationSent = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "notification_total",
			Help:      "Notification attempts, by kind and result.",
		},
		[]string{"kind", "result"},
	)

	notificationDropped = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "notification_dropped_total",
			Help:      "Notifications dropped because the queue was full.",
		},
	)

	paymentWebhook = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "payment_webhook_total",
			Help:      "Payment webhooks processed, by resulting status.",
		},
		[]string{"status"},
	)

	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "route", "status"},
	)
)

// Register registra as métricas (idempotente).
func Register() {
	once.Do(func() {
		prometheus.MustRegister(
			bookingCreated,
			bookingRejected,
			bookingCancelled,
			bookingStatus,
			notificationSent,
			notificationDropped,
			paymentWebhook,
			httpDuration,
		)
	})
}

func IncBookingCreated(paymentMethod string) {
	bookingCreated.WithLabelValues(paymentMethod).Inc()
}

func IncBookingRejected(code string) {
	bookingRejected.WithLabelValues(code).Inc()
}

func IncBookingCancelled() {
	bookingCancelled.Inc()
}

func IncBookingStatus(status string) {
	bookingStatus.WithLabelValues(status).Inc()
}

func IncNotification(kind string, ok bool) {
	result := "ok"
	if !ok {
		result = "error"
	}
	notificationSent.WithLabelValues(kind, result).Inc()
}

func IncNotificationDropped() {
	notificationDropped.Inc()
}

func IncPaymentWebhook(status string) {
	paymentWebhook.WithLabelValues(status).Inc()
}

func ObserveHTTP(method, route, status string, seconds float64) {
	httpDuration.WithLabelValues(method, route, status).Observe(seconds)
}
