package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v76"
	"go.uber.org/zap"

	"beautybook/config"
	"beautybook/handlers"
	"beautybook/middleware"
	"beautybook/notion"
	"beautybook/routes"
	"beautybook/services/booking"
	"beautybook/services/places"
	"beautybook/utils"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("main: failed to load config: %v", err)
	}

	utils.InitLogger(cfg.Env, cfg.LogLevel)
	logger := utils.GetLogger()
	defer logger.Sync() //nolint:errcheck

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	stripe.Key = cfg.Stripe.SecretKey

	loc, err := time.LoadLocation(cfg.Appointments.Timezone)
	if err != nil {
		logger.Warn("invalid timezone, falling back to UTC",
			zap.String("timezone", cfg.Appointments.Timezone),
			zap.Error(err))
		loc = time.UTC
	}

	// Document store repositories.
	notionClient := notion.NewClient(cfg.Notion.Token, logger)
	appointmentRepo := notion.NewAppointmentRepo(notionClient, cfg.Notion.AppointmentsDB, loc, logger)
	customerRepo := notion.NewCustomerRepo(notionClient, cfg.Notion.CustomersDB, logger)

	if !appointmentRepo.Configured() {
		logger.Warn("appointments store not configured, bookings will be simulated")
	}

	engine := &booking.AvailabilityEngine{
		Store:         appointmentRepo,
		Hours:         cfg.Appointments.BusinessHours,
		BufferMinutes: cfg.Appointments.BufferMinutes,
		Location:      loc,
		Logger:        logger,
	}

	paymentProcessor := &booking.StripeProcessor{
		SuccessURL: cfg.Stripe.SuccessURL,
		CancelURL:  cfg.Stripe.CancelURL,
		Logger:     logger,
	}

	bookingService := &booking.DefaultBookingService{
		Store:     appointmentRepo,
		Customers: customerRepo,
		Payments:  paymentProcessor,
		Engine:    engine,
		Catalog:   cfg.Appointments.Types,
		Currency:  cfg.Stripe.Currency,
		Logger:    logger,
	}

	placesClient := places.NewClient(cfg.Places.APIKey, logger)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	handlerBundle := &routes.HandlerBundle{
		Booking:  handlers.NewBookingHandler(bookingService),
		Webhook:  handlers.NewWebhookHandler(cfg.Stripe.WebhookSecret, bookingService),
		Business: handlers.NewBusinessHandler(placesClient, cfg.Places.PlaceID),
	}
	routes.RegisterRoutes(router, handlerBundle)

	port := cfg.AppPort
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

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
