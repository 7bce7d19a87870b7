package routes

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/BruksfildServices01/barber-booking/internal/config"
	"github.com/BruksfildServices01/barber-booking/internal/handlers"
	"github.com/BruksfildServices01/barber-booking/internal/middleware"
)

// Public agrupa os handlers que existem em qualquer modo.
type Public struct {
	Public   *handlers.PublicHandler
	Payment  *handlers.PaymentHandler
	Internal *handlers.InternalHandler
}

// Dashboard é nil no modo demo (sem banco).
type Dashboard struct {
	Auth         *handlers.AuthHandler
	Me           *handlers.MeHandler
	Service      *handlers.ServiceHandler
	Availability *handlers.AvailabilityHandler
	Booking      *handlers.BookingHandler
	Subscriber   *handlers.SubscriberHandler
	Gallery      *handlers.GalleryHandler
	AuditLogs    *handlers.AuditLogsHandler
}

func RegisterRoutes(
	r *gin.Engine,
	cfg config.Config,
	logger *slog.Logger,
	limiter *middleware.RateLimiter,
	pub Public,
	dash *Dashboard,
) {

	// ======================================================
	// 🌍 MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(middleware.CustomRecovery(logger))
	r.Use(middleware.RequestLogger(logger))
	r.Use(middleware.NewCORSMiddleware(cfg.CORS, logger))
	r.Use(middleware.Metrics())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
			"demo":   cfg.DemoMode(),
		})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	if gin.Mode() == gin.DebugMode {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	limited := limiter.Middleware()

	api := r.Group("/api")
	{
		// ------------------------------
		// 🌐 API PÚBLICA
		// ------------------------------
		api.GET("/barbers", pub.Public.ListBarbers)
		api.GET("/barbers/:slug", pub.Public.GetBarber)

		api.GET("/availability/dates", pub.Public.AvailableDates)
		api.GET("/availability/slots", pub.Public.AvailableSlots)

		api.POST("/bookings", limited, pub.Public.CreateBooking)
		api.GET("/bookings/:id", pub.Public.GetBooking)
		api.POST("/bookings/:id/cancel", limited, pub.Public.CancelBooking)

		api.POST("/notifications/subscribe", limited, pub.Public.Subscribe)

		api.POST("/payments/checkout", limited, pub.Payment.Checkout)
		api.POST("/payments/webhook", pub.Payment.Webhook)

		// ------------------------------
		// 🔑 API INTERNA
		// ------------------------------
		internal := api.Group("/internal")
		internal.Use(middleware.InternalKey(cfg.App.InternalKey))
		{
			internal.POST("/emails/booking-confirmation", pub.Internal.BookingConfirmation)
			internal.POST("/emails/booking-cancellation", pub.Internal.BookingCancellation)
			internal.POST("/emails/slot-available", pub.Internal.SlotAvailableEmail)
			internal.POST("/notifications/slot-available", pub.Internal.NotifySlotFreed)
		}

		if dash == nil {
			logger.Warn("demo mode: dashboard routes disabled")
			return
		}

		// ------------------------------
		// 🔐 AUTH
		// ------------------------------
		api.POST("/auth/register", limited, dash.Auth.Register)
		api.POST("/auth/login", limited, dash.Auth.Login)

		// ------------------------------
		// 🔐 API PRIVADA
		// ------------------------------
		secured := api.Group("/me")
		secured.Use(middleware.AuthMiddleware(cfg.JWT.Secret))
		{
			secured.GET("", dash.Me.GetMe)
			secured.GET("/barber", dash.Me.GetBarber)
			secured.PUT("/barber", dash.Me.PutBarber)
		}

		owner := secured.Group("")
		owner.Use(middleware.RequireBarber())
		{
			owner.GET("/services", dash.Service.List)
			owner.POST("/services", dash.Service.Create)
			owner.PATCH("/services/:id", dash.Service.Update)
			owner.DELETE("/services/:id", dash.Service.Delete)

			owner.GET("/availability", dash.Availability.List)
			owner.POST("/availability/weekly", dash.Availability.Weekly)
			owner.DELETE("/availability/:id", dash.Availability.Delete)

			// ------------------------------
			// BOOKINGS
			// ------------------------------
			owner.GET("/bookings", dash.Booking.List)
			owner.GET("/bookings/export", dash.Booking.Export)
			owner.PATCH("/bookings/:id/status", dash.Booking.UpdateStatus)

			owner.GET("/subscribers", dash.Subscriber.List)

			owner.GET("/gallery", dash.Gallery.List)
			owner.POST("/gallery", dash.Gallery.Upload)
			owner.DELETE("/gallery/:id", dash.Gallery.Delete)

			owner.GET("/audit-logs", dash.AuditLogs.List)
		}
	}
}
