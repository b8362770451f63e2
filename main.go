// File: janjitemu/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"janjitemu/config"
	"janjitemu/cron"
	"janjitemu/database"
	bookingRepo "janjitemu/database/repository/booking"
	"janjitemu/handlers"
	"janjitemu/routes"
	"janjitemu/services/calendar"
	"janjitemu/services/conversation"
	"janjitemu/services/schedule"
	"janjitemu/services/telegram"
	"janjitemu/utils"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// No .env in production; the environment is already populated there.
	_ = godotenv.Load()
	config.LoadConfig()
	logger := utils.GetLogger()

	ctx := context.Background()

	// Booking store backend.
	var repo bookingRepo.BookingRepository
	var err error
	switch config.AppConfig.BookingStore {
	case "sheets":
		repo, err = bookingRepo.NewSheetsBookingRepo(
			ctx,
			[]byte(config.AppConfig.GoogleCredsJSON),
			config.AppConfig.SheetID,
			config.AppConfig.SheetName,
		)
		if err != nil {
			logger.Sugar().Fatalf("main: failed to initialize sheets booking store: %v", err)
		}
	default:
		database.InitDB()
		repo, err = bookingRepo.NewMongoBookingRepo()
		if err != nil {
			logger.Sugar().Fatalf("main: failed to initialize mongo booking store: %v", err)
		}
	}

	// Officer calendars; the side effect degrades to a no-op without creds.
	var eventCreator calendar.EventCreator = calendar.Noop{}
	if config.AppConfig.GoogleCredsJSON != "" {
		officerCalendars := map[string]string{
			"DO":  config.AppConfig.CalendarIDDO,
			"ADO": config.AppConfig.CalendarIDADO,
		}
		gc, err := calendar.NewGoogleCalendar(ctx, []byte(config.AppConfig.GoogleCredsJSON), officerCalendars)
		if err != nil {
			logger.Sugar().Warnf("main: calendar service initialization failed, events disabled: %v", err)
		} else {
			eventCreator = gc
		}
	}

	sessions := &conversation.RedisSessionStore{
		Client: utils.GetSessionCacheClient(),
		TTL:    time.Duration(config.AppConfig.SessionTTLMinutes) * time.Minute,
	}

	// database.MongoClient stays nil in sheets mode; the monitor skips it.
	utils.StartHealthMonitor(utils.GetSessionCacheClient(), database.MongoClient)

	machine := &conversation.Machine{
		Sessions:  sessions,
		Repo:      repo,
		Avail:     &schedule.Availability{Repo: repo},
		Calendar:  eventCreator,
		Reminders: cron.NewReminderScheduler(),
	}

	tg, err := telegram.New(config.AppConfig.TelegramBotToken, machine)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to connect to Telegram: %v", err)
	}

	cron.InitReminderWorker(tg)

	pollCtx, stopPolling := context.WithCancel(ctx)
	defer stopPolling()
	switch config.AppConfig.TelegramMode {
	case "webhook":
		if err := tg.EnsureWebhook(config.AppConfig.TelegramWebhookURL); err != nil {
			logger.Sugar().Fatalf("main: failed to register Telegram webhook: %v", err)
		}
	default:
		go tg.RunPolling(pollCtx)
	}

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())

	webhookHandler := handlers.NewTelegramWebhookHandler(tg, config.AppConfig.TelegramBotToken)
	routes.RegisterRoutes(router, webhookHandler)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	stopPolling()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
