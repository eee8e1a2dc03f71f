package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"

	"github.com/propview/viewing-scheduler/internal/audit"
	"github.com/propview/viewing-scheduler/internal/cache"
	"github.com/propview/viewing-scheduler/internal/config"
	"github.com/propview/viewing-scheduler/internal/handlers"
	infraRepo "github.com/propview/viewing-scheduler/internal/infra/repository"
	"github.com/propview/viewing-scheduler/internal/middleware"
	ucSchedule "github.com/propview/viewing-scheduler/internal/usecase/schedule"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config) {

	// ======================================================
	// MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(middleware.CORSMiddleware())
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.Metrics())

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	scheduleRepo := infraRepo.NewScheduleGormRepository(db)
	scheduleCache := cache.New(cfg.RedisURL)
	locks := ucSchedule.NewLocks()

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger)

	// ======================================================
	// USE CASES — SCHEDULING
	// ======================================================
	getRangeUC := ucSchedule.NewGetRange(scheduleRepo, scheduleCache)

	upsertAvailabilityUC := ucSchedule.NewUpsertAvailability(
		scheduleRepo,
		locks,
		scheduleCache,
		auditDispatcher,
	)

	deleteOverrideUC := ucSchedule.NewDeleteOverride(
		scheduleRepo,
		locks,
		scheduleCache,
		auditDispatcher,
	)

	bookAppointmentUC := ucSchedule.NewBookAppointment(
		scheduleRepo,
		locks,
		scheduleCache,
		auditDispatcher,
	)

	cancelAppointmentUC := ucSchedule.NewCancelAppointment(
		scheduleRepo,
		locks,
		scheduleCache,
		auditDispatcher,
	)

	listAppointmentsUC := ucSchedule.NewListAppointments(scheduleRepo)

	// ======================================================
	// HANDLERS
	// ======================================================
	availabilityHandler := handlers.NewAvailabilityHandler(
		getRangeUC,
		upsertAvailabilityUC,
		deleteOverrideUC,
	)

	appointmentHandler := handlers.NewAppointmentHandler(
		bookAppointmentUC,
		cancelAppointmentUC,
		listAppointmentsUC,
	)

	// ======================================================
	// OBSERVABILITY
	// ======================================================
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		houses := api.Group("/houses/:house_id")
		{
			houses.GET("/availability", availabilityHandler.GetRange)
			houses.POST("/availability", availabilityHandler.Upsert)
			houses.DELETE("/availability", availabilityHandler.DeleteOverride)
		}

		api.POST("/appointments", appointmentHandler.Book)
		api.GET("/appointments", appointmentHandler.List)
		api.DELETE("/appointments/:appt_id", appointmentHandler.Cancel)
	}
}
