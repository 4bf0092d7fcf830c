package main

import (
	"log"
	"net/http"
	"os"

	"homestay/config"
	"homestay/jobs"
	middlewares "homestay/middleware"
	"homestay/models"
	"homestay/routes"
	"homestay/services"
	"homestay/services/logger"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func migrate() {
	if err := config.DB.AutoMigrate(
		&models.User{},
		&models.Accommodation{},
		&models.PricingConfiguration{},
		&models.PricingRule{},
		&models.Reservation{},
		&models.Review{},
		&models.Payment{},
		&models.Message{},
		&models.Notification{},
	); err != nil {
		panic("Failed to migrate tables: " + err.Error())
	}
}

func main() {

	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: không load được file .env, sử dụng biến môi trường có sẵn: %v", err)
	}

	router, m, c, err := config.InitApp()
	if err != nil {
		log.Fatalf("Failed to initialize app: %v", err)
	}

	migrate()

	router.Use(middlewares.ErrorHandler())

	reservationService := services.NewReservationService(services.ReservationServiceOptions{
		DB:     config.DB,
		Logger: logger.NewDefaultLogger(logger.InfoLevel),
	}, m)
	reservationServiceAdapter := services.NewReservationServiceAdapter(reservationService)
	jobs.SetReservationExpirer(reservationServiceAdapter)

	if err := jobs.InitCronJobs(c); err != nil {
		log.Fatalf("Failed to initialize cron jobs: %v", err)
	}

	services.RegisterWebSocketHandlers(m, reservationService)
	config.InitWebSocket(router, m)

	routes.SetupRoutes(router, config.DB, config.RedisClient, config.Cloudinary, m, reservationService)

	router.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "8083"
	}

	log.Println("Server starting on port " + port + "...")
	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
