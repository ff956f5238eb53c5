package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/barbeariapro/barbearia-api/internal/audit"
	"github.com/barbeariapro/barbearia-api/internal/cache"
	"github.com/barbeariapro/barbearia-api/internal/config"
	"github.com/barbeariapro/barbearia-api/internal/domain/access"
	"github.com/barbeariapro/barbearia-api/internal/handlers"
	infraRepo "github.com/barbeariapro/barbearia-api/internal/infra/repository"
	"github.com/barbeariapro/barbearia-api/internal/metrics"
	"github.com/barbeariapro/barbearia-api/internal/middleware"
	"github.com/barbeariapro/barbearia-api/internal/storage"
	ucSchedule "github.com/barbeariapro/barbearia-api/internal/usecase/schedule"
)

func RegisterRoutes(
	r *gin.Engine,
	db *gorm.DB,
	cfg *config.Config,
	cacheClient *cache.Client,
) {

	// ======================================================
	// MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(middleware.CORSMiddleware())

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	scheduleRepo := infraRepo.NewScheduleGormRepository(db)

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger)

	s3 := storage.NewS3Storage(cfg)

	// ======================================================
	// USE CASES (AGENDA)
	// ======================================================
	availabilityUC := ucSchedule.NewGetAvailability(scheduleRepo)
	reserveUC := ucSchedule.NewReserveSlot(scheduleRepo, auditDispatcher)
	listByDateUC := ucSchedule.NewListAppointmentsByDate(scheduleRepo)
	listByMonthUC := ucSchedule.NewListAppointmentsByMonth(scheduleRepo)
	cancelUC := ucSchedule.NewCancelAppointment(scheduleRepo, auditDispatcher)
	completeUC := ucSchedule.NewCompleteAppointment(scheduleRepo, auditDispatcher)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg)
	meHandler := handlers.NewMeHandler(db)
	barbershopHandler := handlers.NewBarbershopHandler(db, cfg, cacheClient, auditDispatcher)
	barberHandler := handlers.NewBarberHandler(db, auditDispatcher)
	clientHandler := handlers.NewClientHandler(db)
	workingHoursHandler := handlers.NewWorkingHoursHandler(db)
	serviceHandler := handlers.NewServiceHandler(db)
	settingsHandler := handlers.NewSettingsHandler(db, cacheClient, auditDispatcher)
	logoHandler := handlers.NewLogoHandler(db, s3, cacheClient, auditDispatcher)
	notificationHandler := handlers.NewNotificationHandler(scheduleRepo)
	auditLogsHandler := handlers.NewAuditLogsHandler(db)
	adminUserHandler := handlers.NewAdminUserHandler(db)

	appointmentHandler := handlers.NewAppointmentHandler(
		reserveUC,
		listByDateUC,
		listByMonthUC,
		cancelUC,
		completeUC,
	)

	publicHandler := handlers.NewPublicHandler(db, cacheClient, availabilityUC, reserveUC)

	// ======================================================
	// OBSERVABILIDADE
	// ======================================================
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	// ======================================================
	// ROTAS PÚBLICAS: AUTH
	// ======================================================
	auth := r.Group("/api/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
	}

	// ======================================================
	// ROTAS PÚBLICAS: PÁGINA DE AGENDAMENTO
	// ======================================================
	public := r.Group("/api/public/:slug")
	{
		public.GET("", publicHandler.GetProfile)
		public.GET("/barbers", publicHandler.ListBarbers)
		public.GET("/services", publicHandler.ListServices)
		public.GET("/availability", publicHandler.GetAvailability)
		public.POST("/appointments", publicHandler.CreateAppointment)
	}

	// ======================================================
	// ROTAS PROTEGIDAS: PAINEL
	// ======================================================
	api := r.Group("/api")
	api.Use(middleware.AuthMiddleware(cfg))

	tenantRoles := []access.Role{access.RoleBarbearia, access.RoleBarbeiro}
	ownerRoles := []access.Role{access.RoleBarbearia}

	// Dados da sessão e da barbearia servem tanto o setup inicial
	// quanto o painel; o gate resolve o caminho pela fase da conta.
	me := api.Group("/me")
	me.Use(middleware.GateOnboardingAware(tenantRoles...))
	{
		me.GET("", meHandler.GetMe)
		me.GET("/barbershop", barbershopHandler.GetMeBarbershop)
		me.PATCH("/barbershop", barbershopHandler.UpdateMeBarbershop)
	}

	dashboard := api.Group("/me")
	dashboard.Use(middleware.GateMiddleware(access.DashboardPath("{slug}"), tenantRoles...))
	{
		dashboard.GET("/appointments", appointmentHandler.ListByDate)
		dashboard.GET("/appointments/month", appointmentHandler.ListByMonth)
		dashboard.POST("/appointments", appointmentHandler.Create)
		dashboard.PATCH("/appointments/:id/cancel", appointmentHandler.Cancel)
		dashboard.PATCH("/appointments/:id/complete", appointmentHandler.Complete)

		dashboard.GET("/working-hours", workingHoursHandler.Get)
		dashboard.PUT("/working-hours", workingHoursHandler.Update)

		dashboard.GET("/notifications", notificationHandler.GetToday)
	}

	owner := api.Group("/me")
	owner.Use(middleware.GateMiddleware(access.DashboardPath("{slug}"), ownerRoles...))
	{
		owner.GET("/barbers", barberHandler.List)
		owner.POST("/barbers", barberHandler.Create)
		owner.PATCH("/barbers/:id", barberHandler.Update)
		owner.DELETE("/barbers/:id", barberHandler.Delete)

		owner.GET("/clients", clientHandler.List)

		owner.GET("/services", serviceHandler.List)
		owner.POST("/services", serviceHandler.Create)
		owner.PATCH("/services/:id", serviceHandler.Update)

		owner.GET("/settings", settingsHandler.Get)
		owner.PUT("/settings", settingsHandler.Update)

		owner.POST("/logo", logoHandler.Upload)

		owner.GET("/audit-logs", auditLogsHandler.List)
	}

	// ======================================================
	// ROTAS ADMIN: PLATAFORMA
	// ======================================================
	admin := api.Group("/admin")
	admin.Use(middleware.GateMiddleware("/admin", access.RoleAdmin))
	{
		admin.GET("/users", adminUserHandler.List)
		admin.POST("/users", adminUserHandler.Create)
		admin.DELETE("/users/:id", adminUserHandler.Delete)
	}
}
