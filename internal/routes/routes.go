package routes

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/barberpro-booking/internal/audit"
	"github.com/BruksfildServices01/barberpro-booking/internal/config"
	"github.com/BruksfildServices01/barberpro-booking/internal/domain/account"
	domain "github.com/BruksfildServices01/barberpro-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barberpro-booking/internal/domain/catalog"
	"github.com/BruksfildServices01/barberpro-booking/internal/domain/schedule"
	"github.com/BruksfildServices01/barberpro-booking/internal/handlers"
	"github.com/BruksfildServices01/barberpro-booking/internal/media"
	"github.com/BruksfildServices01/barberpro-booking/internal/metrics"
	"github.com/BruksfildServices01/barberpro-booking/internal/middleware"
	"github.com/BruksfildServices01/barberpro-booking/internal/timezone"
	ucAccount "github.com/BruksfildServices01/barberpro-booking/internal/usecase/account"
	ucAppointment "github.com/BruksfildServices01/barberpro-booking/internal/usecase/appointment"
	ucReport "github.com/BruksfildServices01/barberpro-booking/internal/usecase/report"
	"github.com/BruksfildServices01/barberpro-booking/internal/validators"
)

// Deps reúne a infraestrutura já construída pelo main (ou pelos testes).
type Deps struct {
	Config       *config.Config
	Log          *slog.Logger
	Appointments domain.Repository
	Catalog      catalog.Repository
	Accounts     account.Repository
	Cache        domain.SlotCache
	Audit        *audit.Dispatcher
	Uploader     *media.Uploader
	Clock        timezone.Clock

	// SkipEmailDomainCheck desliga a consulta de MX.
	SkipEmailDomainCheck bool
}

func RegisterRoutes(r *gin.Engine, d Deps) {
	if d.Log == nil {
		d.Log = slog.Default()
	}

	// ======================================================
	// 🌍 MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger(d.Log))
	r.Use(middleware.CORSMiddleware(d.Config.CORSOrigins))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", metrics.Handler())

	// ======================================================
	// 🧠 USE CASES — APPOINTMENTS
	// ======================================================
	calendar := schedule.NewCalendar(d.Appointments, d.Log)

	availabilityUC := ucAppointment.NewGetAvailability(
		d.Appointments, calendar, d.Cache, d.Clock, d.Audit, d.Log,
	)
	bookUC := ucAppointment.NewBook(
		d.Appointments, calendar, d.Cache, d.Clock, d.Audit, d.Log,
	)
	markStatusUC := ucAppointment.NewMarkStatus(
		d.Appointments, d.Cache, d.Clock, d.Audit, d.Log,
	)
	cancelUC := ucAppointment.NewCancelAppointment(markStatusUC)
	rescheduleUC := ucAppointment.NewReschedule(
		d.Appointments, calendar, d.Cache, d.Clock, d.Audit, d.Log,
	)
	listByDateUC := ucAppointment.NewListAppointmentsByDate(d.Appointments)
	listByMonthUC := ucAppointment.NewListAppointmentsByMonth(d.Appointments)

	// ======================================================
	// 🧠 USE CASES — ACCOUNT
	// ======================================================
	var emailCheck func(string) bool
	if !d.SkipEmailDomainCheck {
		emailCheck = validators.NewEmailDomain().Valid
	}
	registerUC := ucAccount.NewRegister(d.Accounts, d.Config.JWTSecret, d.Clock, emailCheck)
	loginUC := ucAccount.NewLogin(d.Accounts, d.Config.JWTSecret, d.Clock)

	// ======================================================
	// 🧠 USE CASES — REPORTS
	// ======================================================
	summaryUC := ucReport.NewGetSummary(d.Appointments, d.Catalog)

	// ======================================================
	// 🧩 HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(registerUC, loginUC)
	meHandler := handlers.NewMeHandler(d.Appointments)
	tenantHandler := handlers.NewTenantHandler(d.Appointments, d.Catalog, d.Cache)
	professionalHandler := handlers.NewProfessionalHandler(d.Appointments, d.Catalog, d.Cache)
	serviceHandler := handlers.NewServiceHandler(d.Appointments, d.Catalog, d.Cache)
	clientHandler := handlers.NewClientHandler(d.Catalog)
	auditLogsHandler := handlers.NewAuditLogsHandler(d.Catalog)
	mediaHandler := handlers.NewMediaHandler(d.Appointments, d.Catalog, d.Uploader)
	productHandler := handlers.NewProductHandler(d.Catalog)
	cashflowHandler := handlers.NewCashflowHandler(d.Appointments, d.Catalog)
	reportHandler := handlers.NewReportHandler(summaryUC)

	appointmentHandler := handlers.NewAppointmentHandler(
		d.Appointments,
		availabilityUC,
		bookUC,
		markStatusUC,
		cancelUC,
		rescheduleUC,
		listByDateUC,
		listByMonthUC,
	)

	publicHandler := handlers.NewPublicHandler(
		d.Appointments,
		d.Catalog,
		availabilityUC,
		bookUC,
	)

	// ======================================================
	// 🌐 API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// 🌐 API PÚBLICA
		// ------------------------------
		publicAPI := api.Group("/public")
		{
			publicAPI.GET("/:slug", publicHandler.GetTenant)
			publicAPI.GET("/:slug/services", publicHandler.ListServices)
			publicAPI.GET("/:slug/professionals", publicHandler.ListProfessionals)
			publicAPI.GET("/:slug/availability", publicHandler.Availability)
			publicAPI.POST("/:slug/appointments", publicHandler.CreateAppointment)
		}

		// ------------------------------
		// 🔐 AUTH
		// ------------------------------
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)

		// ------------------------------
		// 🔐 API PRIVADA
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(d.Config))
		{
			secured.GET("/me", meHandler.GetMe)
			secured.GET("/me/tenant", tenantHandler.Get)
			secured.GET("/me/settings", tenantHandler.GetSettings)

			secured.GET("/me/clients", clientHandler.List)
			secured.GET("/me/services", serviceHandler.List)
			secured.GET("/me/professionals", professionalHandler.List)
			secured.GET("/me/professionals/:id/schedules", professionalHandler.GetSchedules)

			// ------------------------------
			// APPOINTMENTS
			// ------------------------------
			secured.GET("/me/availability", appointmentHandler.Availability)
			secured.POST("/me/appointments", appointmentHandler.Create)
			secured.GET("/me/appointments", appointmentHandler.ListByDate)
			secured.GET("/me/appointments/month", appointmentHandler.ListByMonth)
			secured.PATCH("/me/appointments/:id/cancel", appointmentHandler.Cancel)
			secured.PATCH("/me/appointments/:id/status", appointmentHandler.UpdateStatus)
			secured.PATCH("/me/appointments/:id/reschedule", appointmentHandler.Reschedule)
		}

		// ------------------------------
		// 🔐 ADMIN (DONO)
		// ------------------------------
		owner := api.Group("/")
		owner.Use(middleware.AuthMiddleware(d.Config), middleware.OwnerOnly())
		{
			owner.PATCH("/me/tenant", tenantHandler.Update)
			owner.POST("/me/tenant/logo", mediaHandler.UploadLogo)
			owner.PATCH("/me/settings", tenantHandler.UpdateSettings)

			owner.POST("/me/services", serviceHandler.Create)
			owner.PATCH("/me/services/:id", serviceHandler.Update)

			owner.POST("/me/professionals", professionalHandler.Create)
			owner.PATCH("/me/professionals/:id", professionalHandler.Update)
			owner.PUT("/me/professionals/:id/schedules", professionalHandler.ReplaceSchedules)
			owner.POST("/me/professionals/:id/avatar", mediaHandler.UploadAvatar)

			owner.GET("/me/products", productHandler.List)
			owner.POST("/me/products", productHandler.Create)
			owner.PATCH("/me/products/:id", productHandler.Update)

			owner.GET("/me/cashflow", cashflowHandler.ListEntries)
			owner.POST("/me/cashflow", cashflowHandler.CreateEntry)
			owner.GET("/me/cashflow/categories", cashflowHandler.ListCategories)
			owner.POST("/me/cashflow/categories", cashflowHandler.CreateCategory)

			owner.GET("/me/reports", reportHandler.Summary)

			owner.GET("/me/audit-logs", auditLogsHandler.List)
		}
	}
}
