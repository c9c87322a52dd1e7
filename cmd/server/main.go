package main

import (
	"context"
	"log"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"

	"github.com/Bri-fat-sen/bfse-management-system-sub010/internal/api/handlers"
	"github.com/Bri-fat-sen/bfse-management-system-sub010/internal/api/middleware"
	"github.com/Bri-fat-sen/bfse-management-system-sub010/internal/config"
	"github.com/Bri-fat-sen/bfse-management-system-sub010/internal/repository"
	"github.com/Bri-fat-sen/bfse-management-system-sub010/internal/service"
)

func main() {

	// LOAD ENV
	_ = godotenv.Load()
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("failed load config:", err)
	}

	// INIT DB
	repo, err := repository.NewPostgresRepoFromConfig(&repository.DBConfig{
		Host: cfg.DBHost,
		Port: cfg.DBPort,
		User: cfg.DBUser,
		Pass: cfg.DBPass,
		Name: cfg.DBName,
	})
	if err != nil {
		log.Fatal("failed connect db:", err)
	}

	// MIGRATIONS
	if err := repo.RunMigrations(context.Background()); err != nil {
		log.Fatal("migration error:", err)
	}

	// ADMIN SEED
	hashed, _ := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcrypt.DefaultCost)
	if err := repo.UpsertAdmin(context.Background(), cfg.AdminUsername, string(hashed)); err != nil {
		log.Println("failed seeding admin:", err)
	} else {
		log.Println("admin seeded OK")
	}

	// SERVICES
	gateway, err := service.NewGoogleGateway(context.Background(), cfg.GoogleAccessToken)
	if err != nil {
		log.Fatal("failed init google gateway:", err)
	}
	syncService := service.NewSyncService(repo, gateway, cfg.DefaultTimezone, cfg.ImportWindowDays)

	// HANDLERS
	authHandler := handlers.NewAuthHandler(repo, cfg.JWTSecret)
	calendarHandler := handlers.NewCalendarHandler(syncService, repo)

	// ROUTER
	r := gin.Default()
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	api := r.Group("/api/v1")

	// AUTH ROUTES
	auth := api.Group("/auth")
	{
		auth.POST("/login", authHandler.Login)
	}

	// CALENDAR SYNC ROUTES
	cal := api.Group("/calendar", middleware.JWTAuth(cfg.JWTSecret))
	{
		cal.GET("/calendars", calendarHandler.ListCalendars)
		cal.POST("/sync/to-google", calendarHandler.SyncToGoogle)
		cal.POST("/sync/from-google", calendarHandler.SyncFromGoogle)
		cal.POST("/sync/full", calendarHandler.FullSync)
		cal.POST("/events/delete", calendarHandler.DeleteEvent)
		cal.GET("/sync/history", calendarHandler.GetSyncHistory)
	}

	// START SERVER
	log.Println("Server running on port:", cfg.Port)
	r.Run(":" + cfg.Port)
}
