package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"pjhweb-backend/config"
	"pjhweb-backend/routes"
	"pjhweb-backend/services"
	"pjhweb-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}
	cfg := config.Load()

	db, err := config.ConnectDB(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to connect to database: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("❌ Failed to get database handle: %v", err)
	}

	if err := config.RunMigrations(context.Background(), db); err != nil {
		log.Fatalf("❌ Migration failed: %v", err)
	}

	auth := utils.NewTokenAuth(cfg.JWTSecret, cfg.JWTExpiry)
	notifier := services.NewNotifications(cfg)

	var reminders *services.ReminderService
	if cfg.RemindersEnabled {
		mailer := services.NewQuoteMailer(db, notifier, cfg.PublicURL)
		reminders = services.NewReminderService(db, mailer, cfg.ReminderAfterDays)
		if err := reminders.StartScheduler(cfg.ReminderCron); err != nil {
			log.Fatalf("❌ Failed to start reminder scheduler: %v", err)
		}
	}

	r := routes.SetupRouter(routes.Deps{
		DB:       db,
		Auth:     auth,
		Notifier: notifier,
		Config:   cfg,
	})
	printRoutes(r)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	go func() {
		log.Printf("🚀 Server listening on :%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("❌ Server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}

	if reminders != nil {
		reminders.Stop()
	}
	if err := sqlDB.Close(); err != nil {
		log.Printf("Error closing database: %v", err)
	}
	log.Println("Server exited")
}

func printRoutes(r *gin.Engine) {
	for _, route := range r.Routes() {
		fmt.Printf("%-6s %s\n", route.Method, route.Path)
	}
}
