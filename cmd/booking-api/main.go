package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/gentlemens13/booking-api/api/swagger"
	"github.com/gentlemens13/booking-api/internal/handler"
	"github.com/gentlemens13/booking-api/internal/middleware"
	"github.com/gentlemens13/booking-api/internal/repository"
	"github.com/gentlemens13/booking-api/internal/service"
	"github.com/gentlemens13/booking-api/pkg/cache"
	"github.com/gentlemens13/booking-api/pkg/config"
	"github.com/gentlemens13/booking-api/pkg/database"
	"github.com/gentlemens13/booking-api/pkg/jobs"
	"github.com/gentlemens13/booking-api/pkg/logger"
	"github.com/gentlemens13/booking-api/pkg/mailer"
	corsmiddleware "github.com/gentlemens13/booking-api/pkg/middleware/cors"
	reqidmiddleware "github.com/gentlemens13/booking-api/pkg/middleware/requestid"
	"github.com/gentlemens13/booking-api/pkg/storage"
)

// @title Booking API
// @version 1.0.0
// @description Appointment booking engine with per-barber schedules and open-day calendars
// @BasePath /api/v1
// @schemes http

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Fatal("failed to connect to postgres", zap.Error(err))
	}
	defer db.Close()

	cacheRepo := repository.NewCacheRepository(nil, logr)
	if cfg.Availability.CacheEnabled {
		redisClient, err := cache.NewRedis(cfg.Redis)
		if err != nil {
			logr.Warn("redis unavailable, availability caching disabled", zap.Error(err))
		} else {
			cacheRepo = repository.NewCacheRepository(redisClient, logr)
		}
	}
	defer cacheRepo.Close() //nolint:errcheck

	fileStore, err := storage.NewFileStore(cfg.Uploads.StorageDir)
	if err != nil {
		logr.Fatal("failed to init upload storage", zap.Error(err))
	}
	signer := storage.NewURLSigner(cfg.Uploads.SignedURLSecret, cfg.Uploads.SignedURLTTL)

	var sender mailer.Sender
	if cfg.SMTP.Enabled {
		sender = mailer.NewSMTPSender(cfg.SMTP)
	}

	validate := validator.New()
	metrics := service.NewMetricsService()

	bookingRepo := repository.NewBookingRepository(db)
	barberRepo := repository.NewBarberRepository(db)
	dayOffRepo := repository.NewDayOffRepository(db)
	openDayRepo := repository.NewOpenDayRepository(db)
	userRepo := repository.NewUserRepository(db)

	cacheSvc := service.NewCacheService(cacheRepo, metrics, cfg.Availability.CacheTTL, logr, cfg.Availability.CacheEnabled)
	scheduleSvc := service.NewScheduleService(barberRepo, dayOffRepo, bookingRepo, openDayRepo, cacheSvc, logr, time.Local)
	notifySvc := service.NewNotificationService(sender, cfg.SMTP.NotifyEmail, metrics, logr, jobs.QueueConfig{
		Workers:    cfg.Notifications.Workers,
		BufferSize: cfg.Notifications.BufferSize,
		MaxRetries: cfg.Notifications.MaxRetries,
		RetryDelay: cfg.Notifications.RetryDelay,
	})
	bookingSvc := service.NewBookingService(bookingRepo, barberRepo, scheduleSvc, notifySvc, metrics, validate, logr)
	barberSvc := service.NewBarberService(barberRepo, scheduleSvc, validate, logr)
	dayOffSvc := service.NewDayOffService(dayOffRepo, barberRepo, scheduleSvc, validate, logr)
	openDaySvc := service.NewOpenDayService(openDayRepo, bookingRepo, dayOffRepo, validate, logr, time.Local)
	authSvc := service.NewAuthService(userRepo, cfg.JWT, validate, logr)
	exportSvc := service.NewExportService(bookingRepo, logr)
	sweeperSvc := service.NewSweeperService(bookingRepo, notifySvc, metrics, logr, cfg.Sweeper.Interval, cfg.Sweeper.ReminderHours)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	notifySvc.Start(ctx)
	defer notifySvc.Stop()
	sweeperSvc.Start(ctx)

	bookingHandler := handler.NewBookingHandler(bookingSvc)
	availabilityHandler := handler.NewAvailabilityHandler(scheduleSvc)
	barberHandler := handler.NewBarberHandler(barberSvc)
	dayOffHandler := handler.NewDayOffHandler(dayOffSvc)
	openDayHandler := handler.NewOpenDayHandler(openDaySvc)
	authHandler := handler.NewAuthHandler(authSvc)
	exportHandler := handler.NewExportHandler(exportSvc)
	photoHandler := handler.NewPhotoHandler(bookingSvc, fileStore, signer)
	metricsHandler := handler.NewMetricsHandler(metrics, db)

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.Middleware(cfg.CORS))
	r.Use(middleware.Metrics(metrics))

	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", metricsHandler.Ready)
	r.GET("/metrics", metricsHandler.Prometheus)
	r.GET("/files/:key", photoHandler.Serve)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)
	{
		api.POST("/auth/login", authHandler.Login)

		api.POST("/bookings", middleware.OptionalJWT(authSvc), bookingHandler.Create)
		api.GET("/barbers", barberHandler.List)
		api.GET("/barbers/:id", barberHandler.Get)
		api.GET("/barbers/:id/slots", availabilityHandler.Slots)
		api.GET("/open-days", openDayHandler.List)
		api.GET("/open-days/:date/times", openDayHandler.Times)
		api.GET("/dayoffs", dayOffHandler.List)

		admin := api.Group("/admin", middleware.JWT(authSvc), middleware.RequireAdmin())
		{
			admin.GET("/bookings", bookingHandler.List)
			admin.GET("/bookings/export", exportHandler.Export)
			admin.POST("/bookings/manual", bookingHandler.CreateManual)
			admin.GET("/bookings/:id", bookingHandler.Get)
			admin.PATCH("/bookings/:id/approve", bookingHandler.Approve)
			admin.PATCH("/bookings/:id/reject", bookingHandler.Reject)
			admin.PATCH("/bookings/:id/reschedule", bookingHandler.Reschedule)
			admin.POST("/bookings/:id/photo", photoHandler.Upload)
			admin.DELETE("/bookings/:id", bookingHandler.Delete)

			admin.POST("/dayoffs", dayOffHandler.Create)
			admin.DELETE("/dayoffs/:id", dayOffHandler.Delete)

			admin.POST("/open-days", openDayHandler.Enable)
			admin.DELETE("/open-days/:date", openDayHandler.Disable)

			admin.PUT("/barbers/:id/work-hours", barberHandler.UpdateWorkHours)
		}
	}

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Port),
		Handler: r,
	}

	go func() {
		logr.Info("server starting", zap.String("addr", srv.Addr), zap.String("env", cfg.Env))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logr.Fatal("server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logr.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logr.Error("graceful shutdown failed", zap.Error(err))
	}
}
