package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	addBlockedPeriodHandler "github.com/m04kA/SLN-SchedulingService/internal/api/handlers/add_blocked_period"
	bookingFlowHandler "github.com/m04kA/SLN-SchedulingService/internal/api/handlers/booking_flow"
	createBookingHandler "github.com/m04kA/SLN-SchedulingService/internal/api/handlers/create_booking"
	deleteBookingHandler "github.com/m04kA/SLN-SchedulingService/internal/api/handlers/delete_booking"
	getBookingHandler "github.com/m04kA/SLN-SchedulingService/internal/api/handlers/get_booking"
	getBookingsHandler "github.com/m04kA/SLN-SchedulingService/internal/api/handlers/get_bookings"
	getDayGridHandler "github.com/m04kA/SLN-SchedulingService/internal/api/handlers/get_day_grid"
	getScheduleConfigHandler "github.com/m04kA/SLN-SchedulingService/internal/api/handlers/get_schedule_config"
	removeBlockedPeriodHandler "github.com/m04kA/SLN-SchedulingService/internal/api/handlers/remove_blocked_period"
	updateBookingHandler "github.com/m04kA/SLN-SchedulingService/internal/api/handlers/update_booking"
	updateBookingStatusHandler "github.com/m04kA/SLN-SchedulingService/internal/api/handlers/update_booking_status"
	updateScheduleConfigHandler "github.com/m04kA/SLN-SchedulingService/internal/api/handlers/update_schedule_config"
	"github.com/m04kA/SLN-SchedulingService/internal/api/middleware"
	"github.com/m04kA/SLN-SchedulingService/internal/config"
	"github.com/m04kA/SLN-SchedulingService/internal/infra/notify"
	bookingRepo "github.com/m04kA/SLN-SchedulingService/internal/infra/storage/booking"
	"github.com/m04kA/SLN-SchedulingService/internal/infra/storage/flowsession"
	scheduleRepo "github.com/m04kA/SLN-SchedulingService/internal/infra/storage/schedule"
	catalogServiceClient "github.com/m04kA/SLN-SchedulingService/internal/integrations/catalogservice"
	inventoryServiceClient "github.com/m04kA/SLN-SchedulingService/internal/integrations/inventoryservice"
	bookingflowService "github.com/m04kA/SLN-SchedulingService/internal/service/bookingflow"
	bookingsService "github.com/m04kA/SLN-SchedulingService/internal/service/bookings"
	scheduleService "github.com/m04kA/SLN-SchedulingService/internal/service/schedule"
	createBookingUC "github.com/m04kA/SLN-SchedulingService/internal/usecase/create_booking"
	getDayGridUC "github.com/m04kA/SLN-SchedulingService/internal/usecase/get_day_grid"
	"github.com/m04kA/SLN-SchedulingService/pkg/dbmetrics"
	"github.com/m04kA/SLN-SchedulingService/pkg/logger"
	"github.com/m04kA/SLN-SchedulingService/pkg/metrics"
	"github.com/m04kA/SLN-SchedulingService/pkg/simpletxmanager"
	"github.com/m04kA/SLN-SchedulingService/pkg/txmanager"
)

func main() {
	// Загружаем конфигурацию
	cfg, err := config.Load("config.toml")
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

	log.Info("Starting SLN-SchedulingService...")
	log.Info("Configuration loaded from config.toml (tenant_id=%d)", cfg.Server.TenantID)

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	var wrappedDB *dbmetrics.DB
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Подключаемся к базе данных
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Настраиваем connection pool
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	// Проверяем соединение
	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// Канал уведомлений об изменениях (redis pub/sub, fire-and-forget)
	var publisher notify.ChangePublisher
	if cfg.Redis.Enabled {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer redisClient.Close()

		publisher = notify.NewPublisher(redisClient, cfg.Redis.Channel, log)
		log.Info("Change notifications enabled (redis=%s, channel=%s)", cfg.Redis.Addr, cfg.Redis.Channel)
	} else {
		publisher = notify.NewNoopPublisher()
		log.Info("Change notifications disabled")
	}

	// Инициализируем интеграционных клиентов
	catalogClient := catalogServiceClient.NewClient(
		cfg.CatalogService.URL,
		time.Duration(cfg.CatalogService.Timeout)*time.Second,
		log,
	)
	inventoryClient := inventoryServiceClient.NewClient(
		cfg.InventoryService.URL,
		time.Duration(cfg.InventoryService.Timeout)*time.Second,
		log,
	)
	log.Info("Integration clients initialized (CatalogService=%s timeout=%ds, InventoryService=%s timeout=%ds)",
		cfg.CatalogService.URL, cfg.CatalogService.Timeout, cfg.InventoryService.URL, cfg.InventoryService.Timeout)

	// Инициализируем репозитории (с метриками или без)
	var (
		bookingRepository  *bookingRepo.Repository
		scheduleRepository *scheduleRepo.Repository
	)

	// Интерфейс transaction manager (используется сервисами и use cases)
	type TxManager interface {
		Do(ctx context.Context, fn func(ctx context.Context) error) error
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		bookingRepository = bookingRepo.NewRepository(wrappedDB)
		scheduleRepository = scheduleRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		bookingRepository = bookingRepo.NewRepository(db)
		scheduleRepository = scheduleRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Хранилище сессий мастера записи (in-memory, с TTL)
	flowStore := flowsession.NewStore(time.Duration(cfg.Flow.SessionTTLMinutes) * time.Minute)
	log.Info("Flow session store initialized (ttl=%dm)", cfg.Flow.SessionTTLMinutes)

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		catalogClient,
		publisher,
		txMgr,
		log,
	)

	getDayGridUseCase := getDayGridUC.NewUseCase(
		bookingRepository,
		scheduleRepository,
		catalogClient,
		log,
	)

	// Инициализируем сервисы
	bookingSvc := bookingsService.NewService(
		bookingRepository,
		inventoryClient,
		publisher,
		log,
	)
	scheduleSvc := scheduleService.NewService(
		scheduleRepository,
		publisher,
		txMgr,
		log,
	)
	flowSvc := bookingflowService.NewService(
		cfg.Server.TenantID,
		flowStore,
		bookingRepository,
		catalogClient,
		createBookingUseCase,
		log,
	)

	// Инициализируем handlers
	getDayGrid := getDayGridHandler.NewHandler(cfg.Server.TenantID, getDayGridUseCase, log)
	createBooking := createBookingHandler.NewHandler(cfg.Server.TenantID, createBookingUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	getBookings := getBookingsHandler.NewHandler(cfg.Server.TenantID, bookingSvc, log)
	updateBookingStatus := updateBookingStatusHandler.NewHandler(bookingSvc, log)
	updateBooking := updateBookingHandler.NewHandler(bookingSvc, log)
	deleteBooking := deleteBookingHandler.NewHandler(bookingSvc, log)
	getScheduleConfig := getScheduleConfigHandler.NewHandler(cfg.Server.TenantID, scheduleSvc, log)
	updateScheduleConfig := updateScheduleConfigHandler.NewHandler(cfg.Server.TenantID, scheduleSvc, log)
	addBlockedPeriod := addBlockedPeriodHandler.NewHandler(cfg.Server.TenantID, scheduleSvc, log)
	removeBlockedPeriod := removeBlockedPeriodHandler.NewHandler(cfg.Server.TenantID, scheduleSvc, log)
	bookingFlow := bookingFlowHandler.NewHandler(flowSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		log.Info("HTTP metrics middleware enabled")
	}

	// Metrics endpoint (публичный, без аутентификации)
	if cfg.Metrics.Enabled {
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Конфигурация расписания (чтение)
	api.HandleFunc("/schedule", getScheduleConfig.Handle).Methods(http.MethodGet)

	// Размеченная сетка слотов на день
	api.HandleFunc("/day-grid", getDayGrid.Handle).Methods(http.MethodGet)

	// --- Мастер записи (клиентский путь) ---
	api.HandleFunc("/flow/sessions", bookingFlow.HandleStart).Methods(http.MethodPost)
	api.HandleFunc("/flow/sessions/{sessionId}", bookingFlow.HandleGet).Methods(http.MethodGet)
	api.HandleFunc("/flow/sessions/{sessionId}/services", bookingFlow.HandleSelectServices).Methods(http.MethodPost)
	api.HandleFunc("/flow/sessions/{sessionId}/date", bookingFlow.HandleSelectDate).Methods(http.MethodPost)
	api.HandleFunc("/flow/sessions/{sessionId}/time", bookingFlow.HandleSelectTime).Methods(http.MethodPost)
	api.HandleFunc("/flow/sessions/{sessionId}/submit", bookingFlow.HandleSubmit).Methods(http.MethodPost)
	api.HandleFunc("/flow/sessions/{sessionId}/back", bookingFlow.HandleBack).Methods(http.MethodPost)
	api.HandleFunc("/flow/sessions/{sessionId}/reset", bookingFlow.HandleReset).Methods(http.MethodPost)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Бронирования (административный путь) ---
	protected.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/bookings", getBookings.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId}/status", updateBookingStatus.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/bookings/{bookingId}", updateBooking.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/bookings/{bookingId}", deleteBooking.Handle).Methods(http.MethodDelete)

	// --- Конфигурация расписания (запись) ---
	protected.HandleFunc("/schedule", updateScheduleConfig.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/schedule/blocked-periods", addBlockedPeriod.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/schedule/blocked-periods/{periodId}", removeBlockedPeriod.Handle).Methods(http.MethodDelete)

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
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	// Останавливаем сбор метрик connection pool
	if cfg.Metrics.Enabled {
		close(stopMetricsCh)
		log.Info("Metrics collection stopped")
	}

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	log.Info("Server stopped gracefully")
}
