package routes

import (
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/salon-scheduler/internal/audit"
	"github.com/BruksfildServices01/salon-scheduler/internal/checkout"
	"github.com/BruksfildServices01/salon-scheduler/internal/config"
	"github.com/BruksfildServices01/salon-scheduler/internal/handlers"
	infraRepo "github.com/BruksfildServices01/salon-scheduler/internal/infra/repository"
	"github.com/BruksfildServices01/salon-scheduler/internal/metrics"
	"github.com/BruksfildServices01/salon-scheduler/internal/middleware"
	"github.com/BruksfildServices01/salon-scheduler/internal/session"
	"github.com/BruksfildServices01/salon-scheduler/internal/storage"
	ucAppointment "github.com/BruksfildServices01/salon-scheduler/internal/usecase/appointment"
	ucPayment "github.com/BruksfildServices01/salon-scheduler/internal/usecase/payment"
	"github.com/BruksfildServices01/salon-scheduler/internal/web"
)

// Deps carries the process singletons. Revoker, Images and Checkout are
// optional integrations and may be nil.
type Deps struct {
	DB       *gorm.DB
	Config   *config.Config
	Audit    *audit.Dispatcher
	Metrics  *metrics.Metrics
	Revoker  session.Revoker
	Images   storage.ImageStore
	Checkout checkout.Provider
}

func RegisterRoutes(r *gin.Engine, d Deps) {
	db, cfg, tz := d.DB, d.Config, d.Config.SalonTimezone

	// ======================================================
	// 🌍 MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(middleware.CORSMiddleware(cfg.CORSAllowedOrigins))
	r.Use(d.Metrics.GinMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	if cfg.MetricsEnabled {
		r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	}

	// ======================================================
	// 🔧 INFRA (SINGLETONS)
	// ======================================================
	appointmentRepo := infraRepo.NewAppointmentGormRepository(db)
	paymentRepo := infraRepo.NewPaymentGormRepository(db)

	// ======================================================
	// 🧠 USE CASES - APPOINTMENTS
	// ======================================================
	listAppointmentsUC := ucAppointment.NewListAppointments(appointmentRepo)
	listAppointmentsByMonthUC := ucAppointment.NewListAppointmentsByMonth(appointmentRepo)

	appointmentUC := handlers.AppointmentUseCases{
		Create:   ucAppointment.NewCreateAppointment(appointmentRepo, d.Audit, d.Metrics),
		Update:   ucAppointment.NewUpdateAppointment(appointmentRepo, d.Audit, d.Metrics),
		Confirm:  ucAppointment.NewConfirmAppointment(appointmentRepo, d.Audit, d.Metrics),
		Cancel:   ucAppointment.NewCancelAppointment(appointmentRepo, d.Audit, d.Metrics),
		Complete: ucAppointment.NewCompleteAppointment(appointmentRepo, d.Audit, d.Metrics),
		Delete:   ucAppointment.NewDeleteAppointment(appointmentRepo, d.Audit),
		List:     listAppointmentsUC,
		Get:      ucAppointment.NewGetAppointment(appointmentRepo),
		ByDate:   ucAppointment.NewListAppointmentsByDate(appointmentRepo),
		ByMonth:  listAppointmentsByMonthUC,
	}

	// ======================================================
	// 🧠 USE CASES - PAYMENTS
	// ======================================================
	paymentUC := handlers.PaymentUseCases{
		Record:   ucPayment.NewRecordPayment(paymentRepo, d.Audit, d.Metrics),
		Update:   ucPayment.NewUpdatePayment(paymentRepo, d.Audit, d.Metrics),
		MarkPaid: ucPayment.NewMarkPaid(paymentRepo, d.Audit, d.Metrics),
		Refund:   ucPayment.NewRefund(paymentRepo, d.Audit, d.Metrics),
		Delete:   ucPayment.NewDeletePayment(paymentRepo, d.Audit),
		List:     ucPayment.NewListPayments(paymentRepo),
		Stats:    ucPayment.NewPaymentStats(paymentRepo),
		ByAppt:   ucPayment.NewPaymentsByAppointment(paymentRepo),
		Checkout: ucPayment.NewCreateCheckout(paymentRepo, d.Checkout, d.Audit),
	}

	// ======================================================
	// 🧩 HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg, d.Revoker, d.Audit)
	meHandler := handlers.NewMeHandler(db, tz)
	settingsHandler := handlers.NewSettingsHandler(db, tz, d.Audit)

	clientHandler := handlers.NewClientHandler(db, d.Audit, listAppointmentsUC)
	serviceHandler := handlers.NewServiceHandler(db, d.Audit, d.Images)

	appointmentHandler := handlers.NewAppointmentHandler(db, tz, appointmentUC)
	itemHandler := handlers.NewAppointmentItemHandler(
		ucAppointment.NewAddItem(appointmentRepo, d.Audit),
		ucAppointment.NewUpdateItem(appointmentRepo, d.Audit),
		ucAppointment.NewRemoveItem(appointmentRepo, d.Audit),
		ucAppointment.NewListItems(appointmentRepo),
	)
	paymentHandler := handlers.NewPaymentHandler(db, tz, paymentUC)

	auditLogsHandler := handlers.NewAuditLogsHandler(db, tz)
	appWebHandler := handlers.NewAppWebHandler(db, tz, authHandler, listAppointmentsByMonthUC)

	// ======================================================
	// 🌍 ROTAS WEB (HTML)
	// ======================================================
	r.SetHTMLTemplate(template.Must(web.Templates()))

	r.GET("/web/login", appWebHandler.LoginPage)
	r.POST("/web/login", appWebHandler.Login)
	r.GET("/web/logout", appWebHandler.Logout)

	webApp := r.Group("/web")
	webApp.Use(middleware.WebAuthMiddleware(cfg, d.Revoker, "/web/login"))
	{
		webApp.GET("/agenda", appWebHandler.Agenda)
		webApp.GET("/clientes", appWebHandler.Clients)
		webApp.GET("/servicios", appWebHandler.Services)
	}

	// ======================================================
	// 🌐 API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// 🔐 AUTH
		// ------------------------------
		api.POST("/auth/login", authHandler.Login)

		// ------------------------------
		// 🔐 API PRIVADA
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg, d.Revoker))
		{
			secured.POST("/auth/logout", authHandler.Logout)
			secured.GET("/me", meHandler.GetMe)

			secured.GET("/configuracion", settingsHandler.Get)
			secured.PATCH("/configuracion", settingsHandler.Update)

			// ------------------------------
			// CLIENTES
			// ------------------------------
			secured.GET("/clientes", clientHandler.List)
			secured.POST("/clientes", clientHandler.Create)
			secured.GET("/clientes/:id", clientHandler.Get)
			secured.PUT("/clientes/:id", clientHandler.Update)
			secured.PATCH("/clientes/:id", clientHandler.Update)
			secured.DELETE("/clientes/:id", clientHandler.Delete)
			secured.POST("/clientes/:id/activar", clientHandler.Activate)
			secured.POST("/clientes/:id/desactivar", clientHandler.Deactivate)
			secured.GET("/clientes/:id/citas", clientHandler.Appointments)

			// ------------------------------
			// SERVICIOS
			// ------------------------------
			secured.GET("/servicios", serviceHandler.List)
			secured.POST("/servicios", serviceHandler.Create)
			secured.GET("/servicios/:id", serviceHandler.Get)
			secured.PUT("/servicios/:id", serviceHandler.Update)
			secured.PATCH("/servicios/:id", serviceHandler.Update)
			secured.DELETE("/servicios/:id", serviceHandler.Delete)
			secured.POST("/servicios/:id/activar", serviceHandler.Activate)
			secured.POST("/servicios/:id/desactivar", serviceHandler.Deactivate)
			secured.POST("/servicios/:id/imagen", serviceHandler.UploadImage)

			// ------------------------------
			// CITAS
			// ------------------------------
			secured.GET("/citas", appointmentHandler.List)
			secured.POST("/citas", appointmentHandler.Create)
			secured.GET("/citas/proximas", appointmentHandler.Upcoming)
			secured.GET("/citas/del-dia", appointmentHandler.Today)
			secured.GET("/citas/mes", appointmentHandler.Month)
			secured.GET("/citas/:id", appointmentHandler.Get)
			secured.PUT("/citas/:id", appointmentHandler.Update)
			secured.PATCH("/citas/:id", appointmentHandler.Update)
			secured.DELETE("/citas/:id", appointmentHandler.Delete)
			secured.POST("/citas/:id/confirmar", appointmentHandler.Confirm)
			secured.POST("/citas/:id/cancelar", appointmentHandler.Cancel)
			secured.POST("/citas/:id/completar", appointmentHandler.Complete)
			secured.GET("/citas/:id/servicios", appointmentHandler.Services)

			// ------------------------------
			// DETALLES DE CITA
			// ------------------------------
			secured.GET("/detalles", itemHandler.List)
			secured.POST("/detalles", itemHandler.Create)
			secured.GET("/detalles/:id", itemHandler.Get)
			secured.PUT("/detalles/:id", itemHandler.Update)
			secured.PATCH("/detalles/:id", itemHandler.Update)
			secured.DELETE("/detalles/:id", itemHandler.Delete)
			secured.POST("/detalles/:id/aplicar-descuento", itemHandler.ApplyDiscount)
			secured.POST("/detalles/:id/actualizar-cantidad", itemHandler.UpdateQuantity)

			// ------------------------------
			// PAGOS
			// ------------------------------
			secured.GET("/pagos", paymentHandler.List)
			secured.POST("/pagos", paymentHandler.Create)
			secured.GET("/pagos/estadisticas", paymentHandler.Stats)
			secured.GET("/pagos/por-cita", paymentHandler.ByAppointment)
			secured.GET("/pagos/:id", paymentHandler.Get)
			secured.PUT("/pagos/:id", paymentHandler.Update)
			secured.PATCH("/pagos/:id", paymentHandler.Update)
			secured.DELETE("/pagos/:id", paymentHandler.Delete)
			secured.POST("/pagos/:id/marcar-pagado", paymentHandler.MarkPaid)
			secured.POST("/pagos/:id/reembolsar", paymentHandler.Refund)
			secured.POST("/pagos/:id/checkout", paymentHandler.Checkout)

			secured.GET("/audit-logs", auditLogsHandler.List)
		}
	}
}
