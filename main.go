package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"salonbook-backend/config"
	"salonbook-backend/controllers"
	"salonbook-backend/events"
	"salonbook-backend/routes"
	"salonbook-backend/services"

	"github.com/gin-gonic/gin"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if err := run(logger); err != nil {
		logger.Error("Server stopped", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run(logger *slog.Logger) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := config.ConnectDB(cfg.DatabaseURL)
	if err != nil {
		return err
	}
	if err := config.AutoMigrate(db); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	images, err := services.NewDiskImageStore(cfg.MediaRoot, cfg.MediaBaseURL)
	if err != nil {
		return err
	}

	limiter, err := config.NewLimiter(cfg.RateLimit, cfg.RedisURL)
	if err != nil {
		return err
	}

	categories := services.NewCategoryService(db)
	customers := services.NewCustomerService(db, categories)
	deps := services.BookingDeps{
		Customers: customers,
		Images:    images,
		Publisher: events.NewPublisher(cfg.AMQPURL),
	}

	if cfg.TwilioEnabled() {
		sender := services.NewTwilioSender(cfg.TwilioAccountSID, cfg.TwilioAuthToken, cfg.TwilioWhatsAppNumber, cfg.TwilioPhoneNumber)
		notifications := services.NewNotificationService(db, sender, logger)
		deps.Notifier = notifications

		scheduler, err := notifications.StartScheduler(cfg.ReminderCron)
		if err != nil {
			return err
		}
		defer scheduler.Stop()
	} else {
		logger.Warn("Twilio not configured, booking messages are disabled")
	}

	bookings := services.NewBookingService(db, deps)

	router := routes.SetupRouter(routes.Options{
		Logger:       logger,
		JWTSecret:    cfg.JWTSecret,
		CORSOrigins:  cfg.CORSOrigins,
		Limiter:      limiter,
		MediaRoot:    cfg.MediaRoot,
		MediaBaseURL: cfg.MediaBaseURL,
	}, routes.Controllers{
		Auth:       controllers.NewAuthController(services.NewAuthService(db, cfg.JWTSecret, cfg.JWTExpiry), cfg.JWTExpiry, cfg.IsProduction),
		Salons:     controllers.NewSalonController(services.NewSalonService(db)),
		Categories: controllers.NewCategoryController(categories),
		Catalog:    controllers.NewCatalogController(services.NewCatalogService(db, categories, images)),
		Staff:      controllers.NewStaffController(services.NewStaffService(db, categories)),
		Customers:  controllers.NewCustomerController(customers),
		Bookings:   controllers.NewBookingController(bookings),
		Reminders:  controllers.NewReminderController(services.NewTemplateService(db)),
		Tickets:    controllers.NewSupportTicketController(services.NewSupportTicketService(db, images)),
		Reports:    controllers.NewReportController(services.NewReportService(db, bookings)),
	})
	if !cfg.IsProduction {
		printRoutes(router)
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func printRoutes(r *gin.Engine) {
	for _, route := range r.Routes() {
		fmt.Printf("%-6s %s\n", route.Method, route.Path)
	}
}
