package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	createBookingHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/create_booking"
	createResourceHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/create_resource"
	exportScheduleHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/export_schedule"
	getAvailabilityHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/get_availability"
	getBookingHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/get_booking"
	getBookingHistoryHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/get_booking_history"
	getResourceHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/get_resource"
	getUserBookingsHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/get_user_bookings"
	getUserCalendarHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/get_user_calendar"
	listResourcesHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/list_resources"
	setResourceStatusHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/set_resource_status"
	transitionBookingHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/transition_booking"
	"github.com/m04kA/SMC-ReservationService/internal/api/middleware"
	"github.com/m04kA/SMC-ReservationService/internal/app"
	"github.com/m04kA/SMC-ReservationService/internal/config"
	bookingRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/booking"
	resourceRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/resource"
	"github.com/m04kA/SMC-ReservationService/internal/integrations/notification"
	bookingsService "github.com/m04kA/SMC-ReservationService/internal/service/bookings"
	resourcesService "github.com/m04kA/SMC-ReservationService/internal/service/resources"
	completeExpiredUC "github.com/m04kA/SMC-ReservationService/internal/usecase/complete_expired"
	createBookingUC "github.com/m04kA/SMC-ReservationService/internal/usecase/create_booking"
	exportScheduleUC "github.com/m04kA/SMC-ReservationService/internal/usecase/export_schedule"
	getAvailabilityUC "github.com/m04kA/SMC-ReservationService/internal/usecase/get_availability"
	transitionBookingUC "github.com/m04kA/SMC-ReservationService/internal/usecase/transition_booking"
	"github.com/m04kA/SMC-ReservationService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ReservationService/pkg/logger"
	"github.com/m04kA/SMC-ReservationService/pkg/metrics"
	"github.com/m04kA/SMC-ReservationService/pkg/redis"
	"github.com/m04kA/SMC-ReservationService/pkg/txmanager"
)

func main() {
	configPath := "config.toml"
	if p := os.Getenv("CONFIG_PATH"); p != "" {
		configPath = p
	}

	// Загружаем конфигурацию
	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Инициализируем логгер
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting SMC-ReservationService...")
	log.Info("Configuration loaded from %s", configPath)

	slots, err := cfg.Slots.ToDomain()
	if err != nil {
		log.Fatal("Invalid slots configuration: %v", err)
	}

	// Инициализируем метрики (если включены); nil-коллектор ничего не пишет
	var metricsCollector *metrics.Metrics
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Подключаемся к базе данных и применяем миграции
	ctx, cancelStartup := context.WithTimeout(context.Background(), 30*time.Second)
	db, builder, err := app.OpenDatabase(ctx, cfg.Database, log)
	cancelStartup()
	if err != nil {
		log.Fatal("Failed to open database: %v", err)
	}
	defer db.Close()
	log.Info("Successfully connected to database (driver=%s)", cfg.Database.Driver)

	wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, stopMetricsCh)

	// Инициализируем репозитории
	resourceRepository := resourceRepo.NewRepository(wrappedDB, builder)
	bookingRepository := bookingRepo.NewRepository(wrappedDB, builder)
	txMgr := txmanager.NewTransactionManager(wrappedDB)

	// Инициализируем уведомления
	sender, err := app.NewSender(cfg.Notifications, log)
	if err != nil {
		log.Fatal("Failed to initialize notifications: %v", err)
	}
	defer sender.Close()

	dispatcher := notification.NewDispatcher(
		sender,
		cfg.Notifications.QueueSize,
		cfg.Notifications.Workers,
		time.Duration(cfg.Notifications.PublishTimeout)*time.Second,
		metricsCollector,
		log,
	)
	log.Info("Notifications initialized (driver=%s, workers=%d, queue=%d)",
		cfg.Notifications.Driver, cfg.Notifications.Workers, cfg.Notifications.QueueSize)

	// Инициализируем сервисы
	resourceSvc := resourcesService.NewService(resourceRepository, log)
	bookingSvc := bookingsService.NewService(bookingRepository, resourceRepository, slots, log)

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		resourceRepository,
		bookingRepository,
		txMgr,
		dispatcher,
		metricsCollector,
		slots,
		createBookingUC.Options{
			AutoApprove:        cfg.Booking.AutoApprove,
			AdvanceBookingDays: cfg.Booking.AdvanceBookingDays,
			MaxPurposeLength:   cfg.Booking.MaxPurposeLength,
		},
		log,
	)

	transitionBookingUseCase := transitionBookingUC.NewUseCase(
		resourceRepository,
		bookingRepository,
		txMgr,
		dispatcher,
		metricsCollector,
		slots,
		log,
	)

	getAvailabilityUseCase := getAvailabilityUC.NewUseCase(resourceRepository, bookingRepository, slots, log)
	exportScheduleUseCase := exportScheduleUC.NewUseCase(resourceRepository, bookingRepository, slots, log)

	// Фоновое завершение прошедших бронирований
	workerCtx, stopWorker := context.WithCancel(context.Background())
	workerDone := make(chan struct{})
	if cfg.Completion.Enabled {
		completeExpired := completeExpiredUC.NewUseCase(
			bookingRepository,
			transitionBookingUseCase,
			slots,
			cfg.Completion.BatchSize,
			log,
		)
		worker := completeExpiredUC.NewWorker(completeExpired, time.Duration(cfg.Completion.Interval)*time.Second, log)
		go func() {
			defer close(workerDone)
			worker.Run(workerCtx)
		}()
	} else {
		close(workerDone)
	}

	// Инициализируем handlers
	listResources := listResourcesHandler.NewHandler(resourceSvc, log)
	getResource := getResourceHandler.NewHandler(resourceSvc, log)
	createResource := createResourceHandler.NewHandler(resourceSvc, log)
	setResourceStatus := setResourceStatusHandler.NewHandler(resourceSvc, log)
	getAvailability := getAvailabilityHandler.NewHandler(getAvailabilityUseCase, log)
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	transitionBooking := transitionBookingHandler.NewHandler(transitionBookingUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	getBookingHistory := getBookingHistoryHandler.NewHandler(bookingSvc, log)
	getUserBookings := getUserBookingsHandler.NewHandler(bookingSvc, log)
	getUserCalendar := getUserCalendarHandler.NewHandler(bookingSvc, log)
	exportSchedule := exportScheduleHandler.NewHandler(exportScheduleUseCase, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestID)

	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	public := api.PathPrefix("").Subrouter()
	public.Use(middleware.OptionalAuth)

	// Каталог ресурсов (?all=true только для администратора)
	public.HandleFunc("/resources", listResources.Handle).Methods(http.MethodGet)
	public.HandleFunc("/resources/{resourceId:[0-9]+}", getResource.Handle).Methods(http.MethodGet)

	// Свободные и занятые слоты ресурса на дату
	public.HandleFunc("/resources/{resourceId:[0-9]+}/availability", getAvailability.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	if cfg.RateLimit.Enabled {
		redisClient, err := redis.NewClient(context.Background(), redis.Config{
			Addr:        cfg.Redis.Addr,
			Password:    cfg.Redis.Password,
			DB:          cfg.Redis.DB,
			DialTimeout: 5 * time.Second,
		})
		if err != nil {
			log.Fatal("Failed to connect to redis: %v", err)
		}
		defer redisClient.Close()

		protected.Use(middleware.RateLimit(
			redisClient,
			cfg.RateLimit.Requests,
			time.Duration(cfg.RateLimit.Window)*time.Second,
			log,
		))
		log.Info("Rate limit enabled: %d requests per %ds", cfg.RateLimit.Requests, cfg.RateLimit.Window)
	}

	// --- Бронирования ---
	protected.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId}/history", getBookingHistory.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId}/transitions", transitionBooking.Handle).Methods(http.MethodPost)

	// --- Бронирования пользователя ---
	protected.HandleFunc("/users/{userId}/bookings", getUserBookings.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/users/{userId}/bookings.ics", getUserCalendar.Handle).Methods(http.MethodGet)

	// --- Администрирование ---
	admin := protected.PathPrefix("").Subrouter()
	admin.Use(middleware.RequireAdmin)

	admin.HandleFunc("/resources", createResource.Handle).Methods(http.MethodPost)
	admin.HandleFunc("/resources/{resourceId:[0-9]+}/status", setResourceStatus.Handle).Methods(http.MethodPatch)
	admin.HandleFunc("/schedule/export", exportSchedule.Handle).Methods(http.MethodGet)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	// Останавливаем фоновый обработчик
	stopWorker()
	<-workerDone

	// Доставляем оставшиеся уведомления
	if err := dispatcher.Close(shutdownCtx); err != nil {
		log.Warn("Notifications dropped on shutdown: %v", err)
	}

	// Останавливаем сбор метрик connection pool
	close(stopMetricsCh)

	log.Info("Server stopped gracefully")
}
