package routes

import (
	"context"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/campus-scheduler/internal/audit"
	"github.com/BruksfildServices01/campus-scheduler/internal/cache"
	"github.com/BruksfildServices01/campus-scheduler/internal/config"
	"github.com/BruksfildServices01/campus-scheduler/internal/domain/identity"
	"github.com/BruksfildServices01/campus-scheduler/internal/handlers"
	infraRepo "github.com/BruksfildServices01/campus-scheduler/internal/infra/repository"
	"github.com/BruksfildServices01/campus-scheduler/internal/mail"
	"github.com/BruksfildServices01/campus-scheduler/internal/media"
	"github.com/BruksfildServices01/campus-scheduler/internal/middleware"
	"github.com/BruksfildServices01/campus-scheduler/internal/notify"
	"github.com/BruksfildServices01/campus-scheduler/internal/timezone"
	"github.com/BruksfildServices01/campus-scheduler/internal/token"
	ucAppointment "github.com/BruksfildServices01/campus-scheduler/internal/usecase/appointment"
	ucAuth "github.com/BruksfildServices01/campus-scheduler/internal/usecase/auth"
	ucSlot "github.com/BruksfildServices01/campus-scheduler/internal/usecase/slot"
	"github.com/BruksfildServices01/campus-scheduler/internal/validators"
)

// Deps are the process-wide singletons built in main.
type Deps struct {
	DB        *gorm.DB
	Config    *config.Config
	Logger    *zap.Logger
	Clock     timezone.Clock
	Tokens    *token.Manager
	Blacklist cache.Blacklist
	Limiter   cache.Limiter
	Mailer    mail.Mailer
	Store     media.Store
	Audit     *audit.Dispatcher
	AuditLog  *audit.Logger
	Notifier  notify.Notifier
}

func RegisterRoutes(r *gin.Engine, d Deps) {
	cfg := d.Config
	logger := d.Logger

	// ======================================================
	// MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(middleware.RequestLogger(logger))
	r.Use(middleware.CORSMiddleware(cfg.CORSOrigins))

	// ======================================================
	// INFRA
	// ======================================================
	appointmentRepo := infraRepo.NewAppointmentGormRepository(d.DB)
	slotRepo := infraRepo.NewSlotGormRepository(d.DB)
	userRepo := infraRepo.NewUserGormRepository(d.DB)
	notificationRepo := infraRepo.NewNotificationGormRepository(d.DB)

	var checkDomain validators.DomainChecker
	if cfg.CheckEmailMX {
		checkDomain = validators.IsEmailDomainValid
	}

	// ======================================================
	// USE CASES: AUTH
	// ======================================================
	verifier := ucAuth.NewVerificationSender(d.Tokens, d.Mailer, cfg.FrontendURL, cfg.VerifyTokenTTL)

	registerUC := ucAuth.NewRegister(userRepo, verifier, d.Audit, checkDomain, cfg.AllowedEmailDomain, logger)
	verifyUC := ucAuth.NewVerifyEmail(userRepo, d.Tokens, d.Audit)
	resendUC := ucAuth.NewResendVerification(userRepo, verifier, logger)
	loginUC := ucAuth.NewLogin(userRepo, d.Tokens, d.Audit)
	refreshUC := ucAuth.NewRefresh(userRepo, d.Tokens, d.Blacklist)
	logoutUC := ucAuth.NewLogout(d.Tokens, d.Blacklist, d.Audit)

	getMeUC := ucAuth.NewGetMe(userRepo)
	uploadAvatarUC := ucAuth.NewUploadAvatar(userRepo, d.Store, d.Audit)
	listSpecialistsUC := ucAuth.NewListSpecialists(userRepo)

	// ======================================================
	// USE CASES: SLOTS
	// ======================================================
	createSlotUC := ucSlot.NewCreateSlot(slotRepo, d.Audit, d.Clock)
	listAvailableUC := ucSlot.NewListAvailableSlots(slotRepo, d.Clock)
	listOwnSlotsUC := ucSlot.NewListOwnSlots(slotRepo)
	listAllSlotsUC := ucSlot.NewListAllSlots(slotRepo)
	deleteSlotUC := ucSlot.NewDeleteSlot(slotRepo, d.Audit)

	// ======================================================
	// USE CASES: APPOINTMENTS
	// ======================================================
	bookUC := ucAppointment.NewBookSlot(appointmentRepo, d.Notifier, d.Audit, d.Clock, logger)
	transitionUC := ucAppointment.NewTransitionAppointment(appointmentRepo, d.Notifier, d.Audit, d.Clock, logger)
	listAppointmentsUC := ucAppointment.NewListAppointments(appointmentRepo)
	getAppointmentUC := ucAppointment.NewGetAppointment(appointmentRepo)
	exportUC := ucAppointment.NewExportAppointments(appointmentRepo, d.Clock, logger)
	calendarUC := ucAppointment.NewCalendarEvent(appointmentRepo, d.Clock)

	// ======================================================
	// HANDLERS
	// ======================================================
	avatarURL := d.Store.URL

	healthHandler := handlers.NewHealthHandler(func(ctx context.Context) error {
		sqlDB, err := d.DB.DB()
		if err != nil {
			return err
		}
		return sqlDB.PingContext(ctx)
	})

	authHandler := handlers.NewAuthHandler(
		registerUC,
		verifyUC,
		resendUC,
		loginUC,
		refreshUC,
		logoutUC,
		avatarURL,
		logger,
	)
	meHandler := handlers.NewMeHandler(getMeUC, uploadAvatarUC, avatarURL, logger)
	specialistHandler := handlers.NewSpecialistHandler(listSpecialistsUC, avatarURL, logger)

	slotHandler := handlers.NewSlotHandler(
		createSlotUC,
		listAvailableUC,
		listOwnSlotsUC,
		listAllSlotsUC,
		deleteSlotUC,
		logger,
	)

	appointmentHandler := handlers.NewAppointmentHandler(
		bookUC,
		transitionUC,
		listAppointmentsUC,
		getAppointmentUC,
		exportUC,
		calendarUC,
		d.Clock,
		logger,
	)

	notificationHandler := handlers.NewNotificationHandler(notificationRepo, logger)
	auditLogsHandler := handlers.NewAuditLogsHandler(d.AuditLog, d.Clock, logger)

	auth := middleware.AuthMiddleware(d.Tokens)
	limited := middleware.RateLimit(d.Limiter, cfg.RateLimitPerMinute, logger)

	r.GET("/health", healthHandler.Health)

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// AUTH
		// ------------------------------
		authAPI := api.Group("/auth")
		{
			authAPI.POST("/register", limited, authHandler.Register)
			authAPI.POST("/login", limited, authHandler.Login)
			authAPI.POST("/refresh", limited, authHandler.Refresh)
			authAPI.POST("/resend-verification", limited, authHandler.ResendVerification)
			authAPI.GET("/verify-email/:token", authHandler.VerifyEmail)
			authAPI.POST("/logout", auth, authHandler.Logout)
		}

		// ------------------------------
		// PUBLIC
		// ------------------------------
		api.GET("/slots", slotHandler.ListAvailable)
		api.GET("/specialists", specialistHandler.List)

		// ------------------------------
		// PRIVATE
		// ------------------------------
		secured := api.Group("/")
		secured.Use(auth)
		{
			secured.GET("/me", meHandler.GetMe)
			secured.PUT("/me/avatar", meHandler.UploadAvatar)
			secured.GET("/me/audit-logs", auditLogsHandler.List)
			secured.GET("/me/slots", middleware.RequireRole(identity.RoleSpecialist), slotHandler.ListOwn)

			secured.POST("/slots", middleware.RequireRole(identity.RoleSpecialist), slotHandler.Create)

			// ------------------------------
			// APPOINTMENTS
			// ------------------------------
			secured.POST("/appointments", middleware.RequireRole(identity.RoleStudent), appointmentHandler.Book)
			secured.GET("/appointments", appointmentHandler.List)
			secured.GET("/appointments/export", middleware.RequireRole(identity.RoleSpecialist), appointmentHandler.Export)
			secured.GET("/appointments/:id", appointmentHandler.Get)
			secured.GET("/appointments/:id/calendar.ics", appointmentHandler.Calendar)
			secured.POST("/appointments/:id/:event", appointmentHandler.Transition)

			// ------------------------------
			// NOTIFICATIONS
			// ------------------------------
			secured.GET("/notifications", notificationHandler.List)
			secured.PATCH("/notifications/:id/read", notificationHandler.MarkRead)
			secured.POST("/notifications/read-all", notificationHandler.MarkAllRead)

			// ------------------------------
			// ADMIN
			// ------------------------------
			admin := secured.Group("/admin")
			admin.Use(middleware.RequireRole(identity.RoleAdmin))
			{
				admin.GET("/slots", slotHandler.ListAll)
				admin.DELETE("/slots/:id", slotHandler.Delete)
			}
		}
	}
}
