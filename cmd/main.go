package main

import (
	"fmt"
	"log"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/planmeet/meeting-scheduler-backend/config"
	"github.com/planmeet/meeting-scheduler-backend/database"
	"github.com/planmeet/meeting-scheduler-backend/internal/attendee"
	"github.com/planmeet/meeting-scheduler-backend/internal/availability"
	"github.com/planmeet/meeting-scheduler-backend/internal/event"
	"github.com/planmeet/meeting-scheduler-backend/routes"
)

func main() {
	cfg := config.Load()
	db := database.Connect(cfg)

	// Auto-migrate models
	log.Println("🔄 Running database migrations...")
	if err := db.AutoMigrate(
		&event.Event{},
		&event.EventDate{},
		&event.EventWeekday{},
		&attendee.Attendee{},
		&availability.SpecificDateAvailability{},
		&availability.DayOfWeekAvailability{},
	); err != nil {
		panic(fmt.Sprintf("❌ DB AutoMigrate failed: %v", err))
	}
	log.Println("✅ Database migrations completed")

	// Setup Gin router
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:5173", "http://127.0.0.1:5173"},
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	routes.Setup(router, cfg)

	fmt.Printf("🚀 Server starting on port %s\n", cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		panic(fmt.Sprintf("Failed to start server: %v", err))
	}
}
