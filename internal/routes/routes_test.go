package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"github.com/BruksfildServices01/barber-booking/internal/cache"
	"github.com/BruksfildServices01/barber-booking/internal/config"
	domain "github.com/BruksfildServices01/barber-booking/internal/domain/booking"
	"github.com/BruksfildServices01/barber-booking/internal/events"
	"github.com/BruksfildServices01/barber-booking/internal/handlers"
	"github.com/BruksfildServices01/barber-booking/internal/middleware"
	"github.com/BruksfildServices01/barber-booking/internal/payment"
	"github.com/BruksfildServices01/barber-booking/internal/testutil"
	ucAvailability "github.com/BruksfildServices01/barber-booking/internal/usecase/availability"
	ucBooking "github.com/BruksfildServices01/barber-booking/internal/usecase/booking"
	ucNotification "github.com/BruksfildServices01/barber-booking/internal/usecase/notification"
	ucPayment "github.com/BruksfildServices01/barber-booking/internal/usecase/payment"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type APISuite struct {
	suite.Suite

	cfg     config.Config
	f       *testutil.Fixture
	gateway *testutil.FakeGateway
	sender  *testutil.RecordingSender
	engine  *gin.Engine
}

func TestAPISuite(t *testing.T) {
	suite.Run(t, new(APISuite))
}

func (s *APISuite) SetupTest() {
	s.cfg = config.NewTestConfig()
	s.f = testutil.NewFixture(s.T())
	s.gateway = &testutil.FakeGateway{Payments: map[string]payment.Info{}}
	s.sender = &testutil.RecordingSender{}
	s.engine = s.build(s.cfg)
}

// build monta o mesmo grafo do bootstrap, sem painel (modo demo).
func (s *APISuite) build(cfg config.Config) *gin.Engine {
	f := s.f
	availabilityCache := cache.Noop{}

	emails := ucNotification.NewEmails(f.Store, s.sender, cfg.App.BaseURL, f.Logger)
	checkout := ucPayment.NewStartCheckout(f.Store, s.gateway, f.Audit, "BRL", cfg.App.BaseURL, cfg.App.APIURL)
	deps := ucBooking.Deps{
		Repo:     f.Store,
		Audit:    f.Audit,
		Cache:    availabilityCache,
		Notifier: f.Notifier,
		Clock:    f.Clock,
	}

	pub := Public{
		Public: handlers.NewPublicHandler(
			f.Store,
			cfg.App,
			f.Clock,
			ucAvailability.NewGetDates(f.Store, availabilityCache, f.Clock),
			ucAvailability.NewGetSlots(f.Store, availabilityCache, f.Clock),
			ucBooking.NewCreateBooking(deps, checkout, f.Logger),
			ucBooking.NewCancelBooking(deps),
			ucBooking.NewGetBooking(f.Store),
			ucNotification.NewSubscribe(f.Store, f.Audit),
		),
		Payment: handlers.NewPaymentHandler(
			checkout,
			ucPayment.NewHandleWebhook(f.Store, s.gateway, f.Notifier, f.Audit, cfg.MercadoPago.WebhookSecret),
		),
		Internal: handlers.NewInternalHandler(emails),
	}

	r := gin.New()
	limiter := middleware.NewRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst)
	RegisterRoutes(r, cfg, f.Logger, limiter, pub, nil)
	return r
}

// ------------------------------
// helpers
// ------------------------------

func (s *APISuite) do(method, path string, body any, headers ...string) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		s.Require().NoError(json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)
	return w
}

func (s *APISuite) decode(w *httptest.ResponseRecorder, out any) {
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), out), w.Body.String())
}

func (s *APISuite) errorCode(w *httptest.ResponseRecorder) string {
	var body struct {
		Code string `json:"error_code"`
	}
	s.decode(w, &body)
	return body.Code
}

func (s *APISuite) bookingBody(start time.Time, method string) map[string]any {
	return map[string]any{
		"barber_id":      s.f.Barber.ID,
		"service_id":     s.f.Haircut.ID,
		"starts_at":      start.Format(time.RFC3339),
		"customer_name":  "Carlos Souza",
		"customer_email": "carlos@example.com",
		"customer_phone": "11977776666",
		"location_type":  "in-shop",
		"payment_method": method,
	}
}

func (s *APISuite) createBooking(start time.Time, method string) uuid.UUID {
	w := s.do(http.MethodPost, "/api/bookings", s.bookingBody(start, method))
	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())

	var out struct {
		BookingID uuid.UUID `json:"booking_id"`
	}
	s.decode(w, &out)
	return out.BookingID
}

func (s *APISuite) token(id uuid.UUID) string {
	b, err := s.f.Store.GetBooking(context.Background(), id)
	s.Require().NoError(err)
	return b.CancellationToken
}

// ======================================================
// Infra
// ======================================================

func (s *APISuite) TestHealthAndMetrics() {
	w := s.do(http.MethodGet, "/health", nil)
	s.Equal(http.StatusOK, w.Code)
	s.Contains(w.Body.String(), `"status":"ok"`)

	w = s.do(http.MethodGet, "/metrics", nil)
	s.Equal(http.StatusOK, w.Code)
}

func (s *APISuite) TestDashboardDisabledInDemo() {
	s.Equal(http.StatusNotFound, s.do(http.MethodGet, "/api/me", nil).Code)
	s.Equal(http.StatusNotFound, s.do(http.MethodPost, "/api/auth/login", map[string]string{}).Code)
}

// ======================================================
// Barbers
// ======================================================

func (s *APISuite) TestBarbers() {
	w := s.do(http.MethodGet, "/api/barbers", nil)
	s.Require().Equal(http.StatusOK, w.Code)

	var list struct {
		Data  []map[string]any `json:"data"`
		Total int              `json:"total"`
	}
	s.decode(w, &list)
	s.Equal(1, list.Total)
	s.Equal("luccifadez", list.Data[0]["slug"])

	w = s.do(http.MethodGet, "/api/barbers/luccifadez", nil)
	s.Require().Equal(http.StatusOK, w.Code)

	var profile struct {
		Services []map[string]any `json:"services"`
		Gallery  []map[string]any `json:"gallery"`
	}
	s.decode(w, &profile)
	s.Len(profile.Services, 1, "only active services")
	s.Empty(profile.Gallery)

	w = s.do(http.MethodGet, "/api/barbers/nope", nil)
	s.Equal(http.StatusNotFound, w.Code)
	s.Equal("barber_not_found", s.errorCode(w))
}

func (s *APISuite) TestBarbers_SingleMode() {
	cfg := s.cfg
	cfg.App.Mode = "single"
	cfg.App.SingleSlug = "outra"
	s.engine = s.build(cfg)

	w := s.do(http.MethodGet, "/api/barbers", nil)
	s.Require().Equal(http.StatusOK, w.Code)
	s.Contains(w.Body.String(), `"total":0`)
}

// ======================================================
// Availability
// ======================================================

func (s *APISuite) TestSlotsAndDates() {
	path := "/api/availability/slots?barber_id=" + s.f.Barber.ID.String() +
		"&service_id=" + s.f.Haircut.ID.String() + "&date=" + s.f.Date(1)
	w := s.do(http.MethodGet, path, nil)
	s.Require().Equal(http.StatusOK, w.Code)

	var out struct {
		Slots []domain.TimeSlot `json:"slots"`
	}
	s.decode(w, &out)
	s.Require().NotEmpty(out.Slots)
	s.Equal("09:00", out.Slots[0].Start)

	w = s.do(http.MethodGet, "/api/availability/dates?barber_id=x&service_id="+s.f.Haircut.ID.String(), nil)
	s.Equal(http.StatusBadRequest, w.Code)
	s.Equal("validation_failed", s.errorCode(w))

	w = s.do(http.MethodGet, "/api/availability/dates?barber_id="+s.f.Barber.ID.String()+
		"&service_id="+s.f.Haircut.ID.String(), nil)
	s.Require().Equal(http.StatusOK, w.Code)
	s.Contains(w.Body.String(), s.f.Date(1))
}

// ======================================================
// Bookings
// ======================================================

func (s *APISuite) TestCreateBooking_OnSite() {
	start := s.f.Local(2, 10, 0)
	id := s.createBooking(start, "on-site")

	s.Equal([]uuid.UUID{id}, s.f.Notifier.Confirmed)

	w := s.do(http.MethodPost, "/api/bookings", s.bookingBody(start.Add(15*time.Minute), "on-site"))
	s.Equal(http.StatusConflict, w.Code)
	s.Equal("slot_unavailable", s.errorCode(w))
}

func (s *APISuite) TestCreateBooking_Validation() {
	body := s.bookingBody(s.f.Local(2, 10, 0), "pix")
	delete(body, "customer_email")

	w := s.do(http.MethodPost, "/api/bookings", body)
	s.Require().Equal(http.StatusBadRequest, w.Code)

	var out struct {
		Code   string            `json:"error_code"`
		Fields map[string]string `json:"fields"`
	}
	s.decode(w, &out)
	s.Equal("validation_failed", out.Code)
	s.Contains(out.Fields, "customer_email")
	s.Contains(out.Fields, "payment_method")
}

func (s *APISuite) TestCreateBooking_Online() {
	w := s.do(http.MethodPost, "/api/bookings", s.bookingBody(s.f.Local(3, 11, 0), "online"))
	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())

	var out struct {
		BookingID  uuid.UUID `json:"booking_id"`
		PaymentURL string    `json:"payment_url"`
	}
	s.decode(w, &out)
	s.Equal("https://pay.test/checkout/"+out.BookingID.String(), out.PaymentURL)
	s.Empty(s.f.Notifier.Confirmed, "confirmation waits for the webhook")
}

func (s *APISuite) TestGetAndCancelBooking() {
	id := s.createBooking(s.f.Local(3, 14, 0), "on-site")
	tok := s.token(id)

	w := s.do(http.MethodGet, "/api/bookings/"+id.String()+"?token="+tok, nil)
	s.Require().Equal(http.StatusOK, w.Code)
	s.Contains(w.Body.String(), `"can_cancel":true`)
	s.Contains(w.Body.String(), `"service_title":"Corte"`)

	w = s.do(http.MethodGet, "/api/bookings/"+id.String()+"?token=wrong", nil)
	s.Equal(http.StatusNotFound, w.Code)

	cancelPath := "/api/bookings/" + id.String() + "/cancel"

	w = s.do(http.MethodPost, cancelPath, nil)
	s.Equal(http.StatusBadRequest, w.Code)
	s.Equal("token_required", s.errorCode(w))

	w = s.do(http.MethodPost, cancelPath, map[string]string{"token": tok})
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	s.Contains(w.Body.String(), `"success":true`)
	s.Equal([]uuid.UUID{id}, s.f.Notifier.Cancelled)

	w = s.do(http.MethodPost, cancelPath, map[string]string{"token": tok})
	s.Equal(http.StatusBadRequest, w.Code)
	s.Equal("already_cancelled", s.errorCode(w))
}

func (s *APISuite) TestCancel_WindowPassed() {
	id := s.createBooking(s.f.Local(0, 15, 0), "on-site")

	w := s.do(http.MethodPost, "/api/bookings/"+id.String()+"/cancel", map[string]string{"token": s.token(id)})
	s.Equal(http.StatusBadRequest, w.Code)
	s.Equal("cancellation_window_passed", s.errorCode(w))
}

// ======================================================
// Subscriptions
// ======================================================

func (s *APISuite) TestSubscribe() {
	body := map[string]any{
		"barber_id":        s.f.Barber.ID,
		"subscriber_email": "joao@example.com",
	}

	w := s.do(http.MethodPost, "/api/notifications/subscribe", body)
	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	s.Contains(w.Body.String(), ucNotification.StatusSubscribed)

	w = s.do(http.MethodPost, "/api/notifications/subscribe", body)
	s.Equal(http.StatusOK, w.Code)
	s.Contains(w.Body.String(), ucNotification.StatusAlreadySubscribed)
	s.Equal(1, s.f.Store.CountSubscriptions(s.f.Barber.ID))
}

// ======================================================
// Payments
// ======================================================

func (s *APISuite) TestWebhook() {
	start := s.f.Local(4, 10, 0)
	w := s.do(http.MethodPost, "/api/bookings", s.bookingBody(start, "online"))
	s.Require().Equal(http.StatusCreated, w.Code)
	var out struct {
		BookingID uuid.UUID `json:"booking_id"`
	}
	s.decode(w, &out)

	s.gateway.Payments["9001"] = payment.Info{
		ProviderPaymentID: "9001",
		Status:            "approved",
		BookingID:         out.BookingID,
	}

	path := "/api/payments/webhook?type=payment&data.id=9001"

	w = s.do(http.MethodPost, path, nil, "x-signature", "ts=1,v1=deadbeef", "x-request-id", "req-1")
	s.Equal(http.StatusBadRequest, w.Code)
	s.Equal("invalid_signature", s.errorCode(w))

	sig := payment.SignatureHeader(s.cfg.MercadoPago.WebhookSecret, "req-1", "9001", "1700000000")
	w = s.do(http.MethodPost, path, nil, "x-signature", sig, "x-request-id", "req-1")
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())

	b, err := s.f.Store.GetBooking(context.Background(), out.BookingID)
	s.Require().NoError(err)
	s.Equal(string(domain.PaymentCompleted), b.PaymentStatus)
	s.Equal([]uuid.UUID{out.BookingID}, s.f.Notifier.Confirmed)
	s.Contains(s.f.Notifier.Events, events.PaymentUpdated)

	// reentrega não confirma de novo
	w = s.do(http.MethodPost, path, nil, "x-signature", sig, "x-request-id", "req-1")
	s.Equal(http.StatusOK, w.Code)
	s.Len(s.f.Notifier.Confirmed, 1)
}

func (s *APISuite) TestCheckout_OnSiteRefused() {
	id := s.createBooking(s.f.Local(2, 16, 0), "on-site")

	w := s.do(http.MethodPost, "/api/payments/checkout", map[string]any{"booking_id": id})
	s.Equal(http.StatusBadRequest, w.Code)
	s.Equal("not_online_payment", s.errorCode(w))
}

// ======================================================
// Internal
// ======================================================

func (s *APISuite) TestInternalEmails() {
	body := map[string]string{
		"email":       "maria@example.com",
		"barber_name": "Luccifadez",
		"date":        s.f.Date(2),
	}

	w := s.do(http.MethodPost, "/api/internal/emails/slot-available", body)
	s.Equal(http.StatusUnauthorized, w.Code)

	w = s.do(http.MethodPost, "/api/internal/emails/slot-available", body,
		middleware.HeaderInternalKey, s.cfg.App.InternalKey)
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())

	sent := s.sender.Sent()
	s.Require().Len(sent, 1)
	s.Equal("maria@example.com", sent[0].To)

	id := s.createBooking(s.f.Local(5, 10, 0), "on-site")
	w = s.do(http.MethodPost, "/api/internal/emails/booking-confirmation", map[string]any{"booking_id": id},
		middleware.HeaderInternalKey, s.cfg.App.InternalKey)
	s.Equal(http.StatusOK, w.Code, w.Body.String())
	s.Len(s.sender.Sent(), 2)

	w = s.do(http.MethodPost, "/api/internal/emails/booking-confirmation", map[string]any{"booking_id": uuid.New()},
		middleware.HeaderInternalKey, s.cfg.App.InternalKey)
	s.Equal(http.StatusNotFound, w.Code)
}
