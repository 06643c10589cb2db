package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/planmeet/meeting-scheduler-backend/config"
	"github.com/planmeet/meeting-scheduler-backend/database"
	"github.com/planmeet/meeting-scheduler-backend/internal/attendee"
	"github.com/planmeet/meeting-scheduler-backend/internal/availability"
	"github.com/planmeet/meeting-scheduler-backend/internal/event"
	"github.com/planmeet/meeting-scheduler-backend/middleware"
)

func Setup(r *gin.Engine, cfg *config.Config) {
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "OK"})
	})

	api := r.Group("/api/v1")
	api.Use(middleware.RateLimiter(cfg))

	// ========== Wire repositories & services ==========
	eventRepo := event.NewRepository(database.DB)
	eventSvc := event.NewService(eventRepo, cfg)

	attendeeRepo := attendee.NewRepository(database.DB)
	attendeeSvc := attendee.NewService(attendeeRepo, cfg)

	availRepo := availability.NewRepository(database.DB)
	availSvc := availability.NewService(availRepo, eventSvc)

	eventHandler := event.NewHandler(eventSvc, availSvc)
	attendeeHandler := attendee.NewHandler(attendeeSvc, eventSvc)
	availHandler := availability.NewHandler(availSvc)

	// ========== Events ==========
	events := api.Group("/events")
	{
		events.POST("", eventHandler.CreateEvent)
		events.GET("/options", eventHandler.GetOptions)
		events.GET("/:unique_id", middleware.OptionalAttendeeAuth(cfg, attendeeSvc), eventHandler.GetEventByLink)

		events.POST("/:unique_id/signin", attendeeHandler.SignIn)

		events.POST("/:unique_id/availability", middleware.AttendeeAuth(cfg, attendeeSvc), availHandler.Toggle)
		events.GET("/:unique_id/availability/at", availHandler.AvailableAt)
	}
}
