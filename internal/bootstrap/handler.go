package bootstrap

import (
	"go.uber.org/fx"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	"github.com/BruksfildServices01/barber-booking/internal/cache"
	"github.com/BruksfildServices01/barber-booking/internal/clock"
	"github.com/BruksfildServices01/barber-booking/internal/config"
	domain "github.com/BruksfildServices01/barber-booking/internal/domain/booking"
	"github.com/BruksfildServices01/barber-booking/internal/handlers"
	"github.com/BruksfildServices01/barber-booking/internal/routes"
	"github.com/BruksfildServices01/barber-booking/internal/storage"
	ucAvailability "github.com/BruksfildServices01/barber-booking/internal/usecase/availability"
	ucBooking "github.com/BruksfildServices01/barber-booking/internal/usecase/booking"
	ucNotification "github.com/BruksfildServices01/barber-booking/internal/usecase/notification"
	ucPayment "github.com/BruksfildServices01/barber-booking/internal/usecase/payment"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		NewPublicRoutes,
		NewDashboardRoutes,
	),
	fx.Invoke(routes.RegisterRoutes),
)

type publicParams struct {
	fx.In

	Cfg   config.Config
	Repo  domain.Repository
	Clock clock.Clock

	Dates     *ucAvailability.GetDates
	Slots     *ucAvailability.GetSlots
	Create    *ucBooking.CreateBooking
	Cancel    *ucBooking.CancelBooking
	Get       *ucBooking.GetBooking
	Subscribe *ucNotification.Subscribe
	Emails    *ucNotification.Emails
	Checkout  *ucPayment.StartCheckout
	Webhook   *ucPayment.HandleWebhook
}

func NewPublicRoutes(p publicParams) routes.Public {
	return routes.Public{
		Public: handlers.NewPublicHandler(
			p.Repo,
			p.Cfg.App,
			p.Clock,
			p.Dates,
			p.Slots,
			p.Create,
			p.Cancel,
			p.Get,
			p.Subscribe,
		),
		Payment:  handlers.NewPaymentHandler(p.Checkout, p.Webhook),
		Internal: handlers.NewInternalHandler(p.Emails),
	}
}

type dashboardParams struct {
	fx.In

	Cfg         config.Config
	Persistence Persistence
	Repo        domain.Repository
	Clock       clock.Clock
	Cache       cache.AvailabilityCache
	Audit       *audit.Dispatcher
	Images      storage.ImageStore `optional:"true"`

	Weekly  *ucAvailability.GenerateWeekly
	Windows *ucAvailability.ManageWindows
	List    *ucBooking.ListBookings
	Export  *ucBooking.ExportBookings
	Status  *ucBooking.UpdateBookingStatus
}

// NewDashboardRoutes devolve nil no modo demo: o painel depende do banco.
func NewDashboardRoutes(p dashboardParams) *routes.Dashboard {
	db := p.Persistence.DB
	if db == nil {
		return nil
	}

	return &routes.Dashboard{
		Auth:         handlers.NewAuthHandler(db, p.Cfg.JWT),
		Me:           handlers.NewMeHandler(db, p.Cfg.JWT, p.Cfg.App, p.Cache, p.Audit),
		Service:      handlers.NewServiceHandler(db, p.Cache, p.Audit, p.Clock),
		Availability: handlers.NewAvailabilityHandler(p.Weekly, p.Windows),
		Booking:      handlers.NewBookingHandler(p.Repo, p.Clock, p.List, p.Export, p.Status),
		Subscriber:   handlers.NewSubscriberHandler(db),
		Gallery:      handlers.NewGalleryHandler(db, p.Images, p.Audit, p.Cfg.Storage.MaxWidth),
		AuditLogs:    handlers.NewAuditLogsHandler(db),
	}
}
