package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/booking"
	"github.com/BruksfildServices01/barber-booking/internal/errs"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

type BookingGormRepository struct {
	db *gorm.DB
}

func NewBookingGormRepository(db *gorm.DB) *BookingGormRepository {
	return &BookingGormRepository{db: db}
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.ErrNotFound
	}
	return err
}

// --------------------------------------------------
// Barber
// --------------------------------------------------

func (r *BookingGormRepository) GetBarberByID(
	ctx context.Context,
	id uuid.UUID,
) (*models.Barber, error) {

	var barber models.Barber
	if err := r.db.WithContext(ctx).First(&barber, "id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	return &barber, nil
}

func (r *BookingGormRepository) GetBarberBySlug(
	ctx context.Context,
	slug string,
) (*models.Barber, error) {

	var barber models.Barber
	if err := r.db.WithContext(ctx).
		Where("slug = ?", slug).
		First(&barber).Error; err != nil {
		return nil, notFound(err)
	}
	return &barber, nil
}

func (r *BookingGormRepository) ListBarbers(ctx context.Context) ([]models.Barber, error) {
	var barbers []models.Barber
	if err := r.db.WithContext(ctx).
		Order("shop_name ASC").
		Find(&barbers).Error; err != nil {
		return nil, errs.Wrap(err, "list barbers")
	}
	return barbers, nil
}

func (r *BookingGormRepository) ListGalleryImages(ctx context.Context, barberID uuid.UUID) ([]models.GalleryImage, error) {
	var images []models.GalleryImage
	if err := r.db.WithContext(ctx).
		Where("barber_id = ?", barberID).
		Order("position ASC, created_at ASC").
		Find(&images).Error; err != nil {
		return nil, errs.Wrap(err, "list gallery")
	}
	return images, nil
}

// --------------------------------------------------
// Service
// --------------------------------------------------

func (r *BookingGormRepository) GetService(
	ctx context.Context,
	id uuid.UUID,
) (*models.Service, error) {

	var service models.Service
	if err := r.db.WithContext(ctx).First(&service, "id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	return &service, nil
}

func (r *BookingGormRepository) ListServices(
	ctx context.Context,
	barberID uuid.UUID,
	onlyActive bool,
) ([]models.Service, error) {

	q := r.db.WithContext(ctx).Where("barber_id = ?", barberID)
	if onlyActive {
		q = q.Where("active = ?", true)
	}

	var services []models.Service
	if err := q.Order("title ASC").Find(&services).Error; err != nil {
		return nil, errs.Wrap(err, "list services")
	}
	return services, nil
}

// --------------------------------------------------
// Availability
// --------------------------------------------------

func (r *BookingGormRepository) ListAvailability(
	ctx context.Context,
	barberID uuid.UUID,
	fromDate string,
	toDate string,
) ([]models.Availability, error) {

	var rows []models.Availability
	if err := r.db.WithContext(ctx).
		Where("barber_id = ? AND date >= ? AND date <= ?", barberID, fromDate, toDate).
		Order("date ASC, start_time ASC").
		Find(&rows).Error; err != nil {
		return nil, errs.Wrap(err, "list availability")
	}
	return rows, nil
}

// ReplaceAvailability apaga as janelas a partir de fromDate e grava rows
// numa única transação.
func (r *BookingGormRepository) ReplaceAvailability(
	ctx context.Context,
	barberID uuid.UUID,
	fromDate string,
	rows []models.Availability,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Where("barber_id = ? AND date >= ?", barberID, fromDate).
			Delete(&models.Availability{}).Error; err != nil {
			return errs.Wrap(err, "delete future availability")
		}

		if len(rows) == 0 {
			return nil
		}

		if err := tx.CreateInBatches(rows, 100).Error; err != nil {
			return errs.Wrap(err, "insert availability")
		}
		return nil
	})
}

func (r *BookingGormRepository) DeleteAvailability(
	ctx context.Context,
	barberID uuid.UUID,
	id uuid.UUID,
) error {

	res := r.db.WithContext(ctx).
		Where("id = ? AND barber_id = ?", id, barberID).
		Delete(&models.Availability{})
	if res.Error != nil {
		return errs.Wrap(res.Error, "delete availability")
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// --------------------------------------------------
// Booking
// --------------------------------------------------

func (r *BookingGormRepository) CreateBooking(
	ctx context.Context,
	b *models.Booking,
) error {

	err := r.db.WithContext(ctx).Omit(clause.Associations).Create(b).Error
	if err == nil {
		return nil
	}
	if httperr.IsExclusionConflict(err) {
		return httperr.ErrBusiness(httperr.CodeSlotUnavailable)
	}
	return errs.Wrap(err, "create booking")
}

func (r *BookingGormRepository) GetBooking(
	ctx context.Context,
	id uuid.UUID,
) (*models.Booking, error) {

	var b models.Booking
	if err := r.db.WithContext(ctx).
		Preload("Service").
		Preload("Barber").
		First(&b, "id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	return &b, nil
}

// TransitionBooking é um UPDATE condicional: dois pedidos concorrentes
// não conseguem sair do mesmo status.
func (r *BookingGormRepository) TransitionBooking(
	ctx context.Context,
	b *models.Booking,
	from domain.Status,
) error {
	now := time.Now().UTC()

	res := r.db.WithContext(ctx).
		Model(&models.Booking{}).
		Where("id = ? AND status = ?", b.ID, string(from)).
		Updates(map[string]any{
			"status":       b.Status,
			"cancelled_at": b.CancelledAt,
			"completed_at": b.CompletedAt,
			"updated_at":   now,
		})
	if res.Error != nil {
		return errs.Wrap(res.Error, "transition booking")
	}
	if res.RowsAffected == 0 {
		return domain.ErrStatusChanged
	}

	b.UpdatedAt = now
	return nil
}

func (r *BookingGormRepository) UpdateBookingPayment(
	ctx context.Context,
	id uuid.UUID,
	status domain.PaymentStatus,
	intentID string,
) error {
	fields := map[string]any{"updated_at": time.Now().UTC()}
	if status != "" {
		fields["payment_status"] = string(status)
	}
	if intentID != "" {
		fields["payment_intent_id"] = intentID
	}

	res := r.db.WithContext(ctx).
		Model(&models.Booking{}).
		Where("id = ?", id).
		Updates(fields)
	if res.Error != nil {
		return errs.Wrap(res.Error, "update booking payment")
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *BookingGormRepository) HasOverlap(
	ctx context.Context,
	barberID uuid.UUID,
	start time.Time,
	end time.Time,
) (bool, error) {

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Booking{}).
		Where(
			"barber_id = ? AND status <> ? AND starts_at < ? AND ends_at > ?",
			barberID,
			string(domain.StatusCancelled),
			end,
			start,
		).
		Count(&count).Error; err != nil {
		return false, errs.Wrap(err, "check overlap")
	}

	return count > 0, nil
}

func (r *BookingGormRepository) ListActiveBookings(
	ctx context.Context,
	barberID uuid.UUID,
	from time.Time,
	to time.Time,
) ([]models.Booking, error) {

	var bookings []models.Booking
	if err := r.db.WithContext(ctx).
		Select("id", "starts_at", "ends_at", "status").
		Where(
			"barber_id = ? AND status <> ? AND starts_at < ? AND ends_at > ?",
			barberID,
			string(domain.StatusCancelled),
			to,
			from,
		).
		Order("starts_at ASC").
		Find(&bookings).Error; err != nil {
		return nil, errs.Wrap(err, "list active bookings")
	}

	return bookings, nil
}

func (r *BookingGormRepository) ListBookings(
	ctx context.Context,
	filter domain.ListFilter,
) ([]models.Booking, error) {

	q := r.db.WithContext(ctx).
		Preload("Service").
		Where("barber_id = ?", filter.BarberID)

	if filter.From != nil {
		q = q.Where("starts_at >= ?", *filter.From)
	}
	if filter.To != nil {
		q = q.Where("starts_at < ?", *filter.To)
	}
	if filter.Status != "" {
		q = q.Where("status = ?", string(filter.Status))
	}

	var bookings []models.Booking
	if err := q.Order("starts_at ASC").Find(&bookings).Error; err != nil {
		return nil, errs.Wrap(err, "list bookings")
	}
	return bookings, nil
}

// --------------------------------------------------
// Subscription
// --------------------------------------------------

func (r *BookingGormRepository) GetSubscription(
	ctx context.Context,
	barberID uuid.UUID,
	email string,
) (*models.NotificationSubscription, error) {

	var sub models.NotificationSubscription
	if err := r.db.WithContext(ctx).
		Where("barber_id = ? AND subscriber_email = ?", barberID, email).
		First(&sub).Error; err != nil {
		return nil, notFound(err)
	}
	return &sub, nil
}

func (r *BookingGormRepository) CreateSubscription(
	ctx context.Context,
	s *models.NotificationSubscription,
) error {
	if err := r.db.WithContext(ctx).Create(s).Error; err != nil {
		return errs.Wrap(err, "create subscription")
	}
	return nil
}

func (r *BookingGormRepository) UpdateSubscription(
	ctx context.Context,
	s *models.NotificationSubscription,
) error {
	if err := r.db.WithContext(ctx).Save(s).Error; err != nil {
		return errs.Wrap(err, "update subscription")
	}
	return nil
}

func (r *BookingGormRepository) ListActiveSubscribers(
	ctx context.Context,
	barberID uuid.UUID,
) ([]models.NotificationSubscription, error) {

	var subs []models.NotificationSubscription
	if err := r.db.WithContext(ctx).
		Where("barber_id = ? AND active = ?", barberID, true).
		Order("created_at ASC").
		Find(&subs).Error; err != nil {
		return nil, errs.Wrap(err, "list subscribers")
	}
	return subs, nil
}

// --------------------------------------------------
// Payment
// --------------------------------------------------

func (r *BookingGormRepository) GetPaymentByBooking(
	ctx context.Context,
	bookingID uuid.UUID,
) (*models.Payment, error) {

	var p models.Payment
	if err := r.db.WithContext(ctx).
		Where("booking_id = ?", bookingID).
		First(&p).Error; err != nil {
		return nil, notFound(err)
	}
	return &p, nil
}

// SavePayment faz upsert pelo booking_id.
func (r *BookingGormRepository) SavePayment(
	ctx context.Context,
	p *models.Payment,
) error {

	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "booking_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"provider", "preference_id", "provider_payment_id",
				"checkout_url", "amount", "currency", "status", "updated_at",
			}),
		}).
		Create(p).Error
	if err != nil {
		return errs.Wrap(err, "save payment")
	}
	return nil
}

// Compile-time check
var _ domain.Repository = (*BookingGormRepository)(nil)
