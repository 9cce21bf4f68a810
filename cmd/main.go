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

	acquireLockHandler "github.com/m04kA/SMC-SlotService/internal/api/handlers/acquire_lock"
	cancelBookingHandler "github.com/m04kA/SMC-SlotService/internal/api/handlers/cancel_booking"
	createBookingHandler "github.com/m04kA/SMC-SlotService/internal/api/handlers/create_booking"
	expandScheduleHandler "github.com/m04kA/SMC-SlotService/internal/api/handlers/expand_schedule"
	getBookingHandler "github.com/m04kA/SMC-SlotService/internal/api/handlers/get_booking"
	getSlotHandler "github.com/m04kA/SMC-SlotService/internal/api/handlers/get_slot"
	listSlotsHandler "github.com/m04kA/SMC-SlotService/internal/api/handlers/list_slots"
	queryHeldHandler "github.com/m04kA/SMC-SlotService/internal/api/handlers/query_held"
	reconcileHandler "github.com/m04kA/SMC-SlotService/internal/api/handlers/reconcile_capacities"
	releaseLockHandler "github.com/m04kA/SMC-SlotService/internal/api/handlers/release_lock"
	sweepLocksHandler "github.com/m04kA/SMC-SlotService/internal/api/handlers/sweep_locks"
	updateBookingStatusHandler "github.com/m04kA/SMC-SlotService/internal/api/handlers/update_booking_status"
	validateLockHandler "github.com/m04kA/SMC-SlotService/internal/api/handlers/validate_lock"
	"github.com/m04kA/SMC-SlotService/internal/api/middleware"
	"github.com/m04kA/SMC-SlotService/internal/config"
	bookingRepo "github.com/m04kA/SMC-SlotService/internal/infra/storage/booking"
	lockRepo "github.com/m04kA/SMC-SlotService/internal/infra/storage/reservationlock"
	shiftRepo "github.com/m04kA/SMC-SlotService/internal/infra/storage/shift"
	slotRepo "github.com/m04kA/SMC-SlotService/internal/infra/storage/slot"
	bookingsService "github.com/m04kA/SMC-SlotService/internal/service/bookings"
	locksService "github.com/m04kA/SMC-SlotService/internal/service/locks"
	slotsService "github.com/m04kA/SMC-SlotService/internal/service/slots"
	acquireLockUC "github.com/m04kA/SMC-SlotService/internal/usecase/acquire_lock"
	createBookingUC "github.com/m04kA/SMC-SlotService/internal/usecase/create_booking"
	expandScheduleUC "github.com/m04kA/SMC-SlotService/internal/usecase/expand_schedule"
	reconcileUC "github.com/m04kA/SMC-SlotService/internal/usecase/reconcile_capacities"
	"github.com/m04kA/SMC-SlotService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SlotService/pkg/logger"
	"github.com/m04kA/SMC-SlotService/pkg/metrics"
	"github.com/m04kA/SMC-SlotService/pkg/simpletxmanager"
	"github.com/m04kA/SMC-SlotService/pkg/txmanager"
)

// noopMetrics заглушка метрик для запуска с выключенным prometheus
type noopMetrics struct{}

func (noopMetrics) IncCapacityClamp() {}

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

	log.Info("Starting SMC-SlotService...")
	log.Info("Configuration loaded from config.toml")

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

	// Инициализируем репозитории (с метриками или без)
	var (
		slotRepository    *slotRepo.Repository
		lockRepository    *lockRepo.Repository
		bookingRepository *bookingRepo.Repository
		shiftRepository   *shiftRepo.Repository
	)

	// Интерфейс для transaction manager (используется в usecases и сервисах)
	type TxManager interface {
		Do(ctx context.Context, fn func(ctx context.Context) error) error
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		slotRepository = slotRepo.NewRepository(wrappedDB)
		lockRepository = lockRepo.NewRepository(wrappedDB)
		bookingRepository = bookingRepo.NewRepository(wrappedDB)
		shiftRepository = shiftRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		slotRepository = slotRepo.NewRepository(db)
		lockRepository = lockRepo.NewRepository(db)
		bookingRepository = bookingRepo.NewRepository(db)
		shiftRepository = shiftRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Метрики ёмкости: при выключенном prometheus используем заглушку
	var clampMetrics interface{ IncCapacityClamp() } = noopMetrics{}
	if cfg.Metrics.Enabled {
		clampMetrics = metricsCollector
	}

	clock := locksService.RealTimeProvider{}

	// Инициализируем сервисы
	lockSvc := locksService.NewService(lockRepository, clock, log)
	slotSvc := slotsService.NewService(slotRepository, lockRepository, clock, log)
	bookingSvc := bookingsService.NewService(bookingRepository, slotRepository, txMgr, clampMetrics, log)

	// Инициализируем use cases
	expandScheduleUseCase := expandScheduleUC.NewUseCase(
		shiftRepository,
		slotRepository,
		txMgr,
		expandScheduleUC.Config{MaxExpansionDays: cfg.Schedule.MaxExpansionDays},
		log,
	)
	acquireLockUseCase := acquireLockUC.NewUseCase(
		slotRepository,
		lockRepository,
		txMgr,
		clock,
		acquireLockUC.Config{
			DefaultTTLSeconds: cfg.Locks.DefaultTTLSeconds,
			MaxTTLSeconds:     cfg.Locks.MaxTTLSeconds,
		},
		log,
	)
	createBookingUseCase := createBookingUC.NewUseCase(
		slotRepository,
		lockRepository,
		bookingRepository,
		txMgr,
		clock,
		clampMetrics,
		log,
	)
	reconcileUseCase := reconcileUC.NewUseCase(
		slotRepository,
		bookingRepository,
		txMgr,
		clampMetrics,
		log,
	)

	// Инициализируем handlers
	expandSchedule := expandScheduleHandler.NewHandler(expandScheduleUseCase, log)
	acquireLock := acquireLockHandler.NewHandler(acquireLockUseCase, log)
	validateLock := validateLockHandler.NewHandler(lockSvc, log)
	releaseLock := releaseLockHandler.NewHandler(lockSvc, log)
	queryHeld := queryHeldHandler.NewHandler(lockSvc, log)
	sweepLocks := sweepLocksHandler.NewHandler(lockSvc, log)
	reconcile := reconcileHandler.NewHandler(reconcileUseCase, log)
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	updateBookingStatus := updateBookingStatusHandler.NewHandler(bookingSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	listSlots := listSlotsHandler.NewHandler(slotSvc, log)
	getSlot := getSlotHandler.NewHandler(slotSvc, log)

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

	// Слоты тенанта с эффективной доступностью
	api.HandleFunc("/tenants/{tenantId}/slots", listSlots.Handle).Methods(http.MethodGet)

	// Удержанная локами ёмкость по слотам
	api.HandleFunc("/slots/held", queryHeld.Handle).Methods(http.MethodGet)

	// Отдельный слот
	api.HandleFunc("/slots/{slotId}", getSlot.Handle).Methods(http.MethodGet)

	// Резервационные локи (checkout-флоу, держатель идентифицируется токеном)
	api.HandleFunc("/locks", acquireLock.Handle).Methods(http.MethodPost)
	api.HandleFunc("/locks/{lockId}", validateLock.Handle).Methods(http.MethodGet)
	api.HandleFunc("/locks/{lockId}", releaseLock.Handle).Methods(http.MethodDelete)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Бронирования ---
	protected.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId}/status", updateBookingStatus.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)

	// --- Расписание ---
	protected.HandleFunc("/shifts/{shiftId}/expand", expandSchedule.Handle).Methods(http.MethodPost)

	// ============================================================
	// ADMIN ROUTES (служебные операции)
	// ============================================================

	admin := r.PathPrefix("/admin").Subrouter()
	admin.HandleFunc("/locks/sweep", sweepLocks.Handle).Methods(http.MethodPost)
	admin.HandleFunc("/slots/reconcile", reconcile.Handle).Methods(http.MethodPost)

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
