package router

import (
	"regexp"
	"time"

	"github.com/snehasingla/Hospital-Management-System/config"
	"github.com/snehasingla/Hospital-Management-System/internal/domain"
	"github.com/snehasingla/Hospital-Management-System/internal/handler"
	"github.com/snehasingla/Hospital-Management-System/internal/middleware"
	"github.com/snehasingla/Hospital-Management-System/internal/repository"
	"github.com/snehasingla/Hospital-Management-System/internal/service"
	"github.com/snehasingla/Hospital-Management-System/internal/ws"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
)

var timeslotRe = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)

// RegisterValidations installs custom binding validations. "timeslot"
// accepts 24h HH:MM appointment times.
func RegisterValidations() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterValidation("timeslot", func(fl validator.FieldLevel) bool {
			return timeslotRe.MatchString(fl.Field().String())
		})
	}
}

func Setup(cfg *config.Config, db *gorm.DB) *gin.Engine {
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	RegisterValidations()

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RateLimit(middleware.NewInMemoryRateLimiter(100, 60*time.Second)))

	// Repositories
	userRepo := repository.NewUserRepository(db)
	apptRepo := repository.NewAppointmentRepository(db)
	notifRepo := repository.NewNotificationRepository(db)
	adminRepo := repository.NewAdminRepository(db)

	// Live delivery: one hub of per-user groups, one presence registry,
	// both injected into the gateway and the dispatcher.
	hub := ws.NewHub()
	registry := ws.NewRegistry()

	// Services
	authSvc := service.NewAuthService(cfg, userRepo)
	notifSvc := service.NewNotificationService(notifRepo, hub, registry)

	// Handlers
	authHandler := handler.NewAuthHandler(authSvc)
	doctorHandler := handler.NewDoctorHandler(userRepo, apptRepo)
	patientHandler := handler.NewPatientHandler(userRepo)
	searchHandler := handler.NewSearchHandler(userRepo)
	apptHandler := handler.NewAppointmentHandler(apptRepo, userRepo, notifSvc)
	notifHandler := handler.NewNotificationHandler(notifRepo)
	adminHandler := handler.NewAdminHandler(adminRepo, userRepo, apptRepo, registry)

	authMw := middleware.AuthRequired(&cfg.JWT)

	r.POST("/signup", authHandler.Signup)
	r.POST("/login", authHandler.Login)
	r.POST("/refresh", authHandler.Refresh)

	api := r.Group("/api")
	{
		api.GET("/doctor/profile", authMw, middleware.RequireRole(domain.RoleDoctor), doctorHandler.GetProfile)
		api.GET("/doctor/stats", authMw, middleware.RequireRole(domain.RoleDoctor), apptHandler.DoctorStats)
		api.GET("/doctor/appointments", authMw, middleware.RequireRole(domain.RoleDoctor), apptHandler.ListForDoctor)
		api.PATCH("/doctor/appointments/update/:id", authMw, middleware.RequireRole(domain.RoleDoctor), apptHandler.Update)

		api.GET("/patient/profile", authMw, middleware.RequireRole(domain.RolePatient), patientHandler.GetProfile)
		api.PATCH("/patient/profile", authMw, middleware.RequireRole(domain.RolePatient), patientHandler.UpdateProfile)
		api.GET("/patient/appointments", authMw, middleware.RequireRole(domain.RolePatient), apptHandler.ListForPatient)

		api.GET("/doctors/search", searchHandler.SearchDoctors)
		api.GET("/specializations", searchHandler.ListSpecializations)

		api.POST("/appointments/book", authMw, middleware.RequireRole(domain.RolePatient), apptHandler.Book)

		notifications := api.Group("/notifications")
		notifications.Use(authMw)
		{
			notifications.GET("", notifHandler.List)
			notifications.PATCH("/read-all", notifHandler.MarkAllRead)
			notifications.GET("/unread-count", notifHandler.UnreadCount)
			notifications.PATCH("/:id/read", notifHandler.MarkRead)
		}

		admin := api.Group("/admin")
		admin.Use(authMw, middleware.RequireRole(domain.RoleAdmin))
		{
			admin.GET("/users", adminHandler.ListUsers)
			admin.GET("/users/:role", adminHandler.ListUsersByRole)
			admin.GET("/appointments", adminHandler.ListAppointments)
			admin.GET("/dashboard", adminHandler.Dashboard)
			admin.DELETE("/users/:userId", adminHandler.DeleteUser)
			admin.PATCH("/users/:userId/role", adminHandler.UpdateUserRole)
		}
	}

	r.GET("/ws/notifications", ws.UpgradeNotificationWS(&cfg.JWT, hub, registry))

	return r
}
