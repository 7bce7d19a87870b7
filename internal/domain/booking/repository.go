package booking

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/barber-booking/internal/models"
)

var ErrNotFound = errors.New("record not found")

// ErrStatusChanged indica que o status gravado já não é o esperado.
var ErrStatusChanged = errors.New("booking status changed")

type Repository interface {
	// -------- Barber --------
	GetBarberByID(ctx context.Context, id uuid.UUID) (*models.Barber, error)
	GetBarberBySlug(ctx context.Context, slug string) (*models.Barber, error)
	ListBarbers(ctx context.Context) ([]models.Barber, error)
	ListGalleryImages(ctx context.Context, barberID uuid.UUID) ([]models.GalleryImage, error)

	// -------- Service --------
	GetService(ctx context.Context, id uuid.UUID) (*models.Service, error)
	ListServices(ctx context.Context, barberID uuid.UUID, onlyActive bool) ([]models.Service, error)

	// -------- Availability --------
	// Datas no formato YYYY-MM-DD, intervalo fechado [fromDate, toDate].
	ListAvailability(ctx context.Context, barberID uuid.UUID, fromDate, toDate string) ([]models.Availability, error)
	ReplaceAvailability(ctx context.Context, barberID uuid.UUID, fromDate string, rows []models.Availability) error
	DeleteAvailability(ctx context.Context, barberID, id uuid.UUID) error

	// -------- Booking --------
	// CreateBooking devolve ErrBusiness(slot_unavailable) quando a
	// constraint de sobreposição é violada.
	CreateBooking(ctx context.Context, b *models.Booking) error
	GetBooking(ctx context.Context, id uuid.UUID) (*models.Booking, error)
	// TransitionBooking grava status, cancelled_at e completed_at só se o
	// status atual ainda for from. Senão devolve ErrStatusChanged.
	TransitionBooking(ctx context.Context, b *models.Booking, from Status) error
	// UpdateBookingPayment grava só as colunas de pagamento; vazios não mudam.
	UpdateBookingPayment(ctx context.Context, id uuid.UUID, status PaymentStatus, intentID string) error
	HasOverlap(ctx context.Context, barberID uuid.UUID, start, end time.Time) (bool, error)
	ListActiveBookings(ctx context.Context, barberID uuid.UUID, from, to time.Time) ([]models.Booking, error)
	ListBookings(ctx context.Context, filter ListFilter) ([]models.Booking, error)

	// -------- Subscription --------
	GetSubscription(ctx context.Context, barberID uuid.UUID, email string) (*models.NotificationSubscription, error)
	CreateSubscription(ctx context.Context, s *models.NotificationSubscription) error
	UpdateSubscription(ctx context.Context, s *models.NotificationSubscription) error
	ListActiveSubscribers(ctx context.Context, barberID uuid.UUID) ([]models.NotificationSubscription, error)

	// -------- Payment --------
	GetPaymentByBooking(ctx context.Context, bookingID uuid.UUID) (*models.Payment, error)
	SavePayment(ctx context.Context, p *models.Payment) error
}

// ListFilter filtra a listagem de agendamentos do painel.
type ListFilter struct {
	BarberID uuid.UUID
	From     *time.Time
	To       *time.Time
	Status   Status
}
