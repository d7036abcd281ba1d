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
	"github.com/pressly/goose/v3"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	activitiesReportHandler "github.com/m04kA/SMC-ParkingService/internal/api/handlers/activities_report"
	cancelBookingHandler "github.com/m04kA/SMC-ParkingService/internal/api/handlers/cancel_booking"
	createBookingHandler "github.com/m04kA/SMC-ParkingService/internal/api/handlers/create_booking"
	createParkingHandler "github.com/m04kA/SMC-ParkingService/internal/api/handlers/create_parking"
	createSlotHandler "github.com/m04kA/SMC-ParkingService/internal/api/handlers/create_slot"
	createSlotsBulkHandler "github.com/m04kA/SMC-ParkingService/internal/api/handlers/create_slots_bulk"
	deleteParkingHandler "github.com/m04kA/SMC-ParkingService/internal/api/handlers/delete_parking"
	extendBookingHandler "github.com/m04kA/SMC-ParkingService/internal/api/handlers/extend_booking"
	getActivityHandler "github.com/m04kA/SMC-ParkingService/internal/api/handlers/get_activity"
	getAllBookingsHandler "github.com/m04kA/SMC-ParkingService/internal/api/handlers/get_all_bookings"
	getBookingHandler "github.com/m04kA/SMC-ParkingService/internal/api/handlers/get_booking"
	getEntryTicketHandler "github.com/m04kA/SMC-ParkingService/internal/api/handlers/get_entry_ticket"
	getParkingHandler "github.com/m04kA/SMC-ParkingService/internal/api/handlers/get_parking"
	getParkingSummaryHandler "github.com/m04kA/SMC-ParkingService/internal/api/handlers/get_parking_summary"
	getSlotsHandler "github.com/m04kA/SMC-ParkingService/internal/api/handlers/get_slots"
	getUserBookingsHandler "github.com/m04kA/SMC-ParkingService/internal/api/handlers/get_user_bookings"
	listActiveVehiclesHandler "github.com/m04kA/SMC-ParkingService/internal/api/handlers/list_active_vehicles"
	listParkingsHandler "github.com/m04kA/SMC-ParkingService/internal/api/handlers/list_parkings"
	recordEntryHandler "github.com/m04kA/SMC-ParkingService/internal/api/handlers/record_entry"
	recordExitHandler "github.com/m04kA/SMC-ParkingService/internal/api/handlers/record_exit"
	releaseBookingHandler "github.com/m04kA/SMC-ParkingService/internal/api/handlers/release_booking"
	updateParkingHandler "github.com/m04kA/SMC-ParkingService/internal/api/handlers/update_parking"
	"github.com/m04kA/SMC-ParkingService/internal/api/middleware"
	"github.com/m04kA/SMC-ParkingService/internal/config"
	activityRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/activity"
	bookingRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/booking"
	parkingRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/parking"
	slotRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/slot"
	vehicleRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/vehicle"
	activitiesService "github.com/m04kA/SMC-ParkingService/internal/service/activities"
	bookingsService "github.com/m04kA/SMC-ParkingService/internal/service/bookings"
	parkingsService "github.com/m04kA/SMC-ParkingService/internal/service/parkings"
	slotsService "github.com/m04kA/SMC-ParkingService/internal/service/slots"
	"github.com/m04kA/SMC-ParkingService/internal/sweeper"
	createBookingUC "github.com/m04kA/SMC-ParkingService/internal/usecase/create_booking"
	recordEntryUC "github.com/m04kA/SMC-ParkingService/internal/usecase/record_entry"
	"github.com/m04kA/SMC-ParkingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ParkingService/pkg/logger"
	"github.com/m04kA/SMC-ParkingService/pkg/metrics"
	"github.com/m04kA/SMC-ParkingService/pkg/simpletxmanager"
	"github.com/m04kA/SMC-ParkingService/pkg/txmanager"
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

	log.Info("Starting SMC-ParkingService...")
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

	// Применяем миграции (если включены)
	if cfg.Migrations.Enabled {
		if err := goose.SetDialect("postgres"); err != nil {
			log.Fatal("Failed to set migration dialect: %v", err)
		}
		if err := goose.Up(db, cfg.Migrations.Dir); err != nil {
			log.Fatal("Failed to apply migrations: %v", err)
		}
		log.Info("Migrations applied from %s", cfg.Migrations.Dir)
	}

	// Инициализируем репозитории (с метриками или без)
	var (
		slotRepository     *slotRepo.Repository
		parkingRepository  *parkingRepo.Repository
		bookingRepository  *bookingRepo.Repository
		activityRepository *activityRepo.Repository
		vehicleRepository  *vehicleRepo.Repository
	)

	// Интерфейс transaction manager (используется в сервисах и usecases)
	type TxManager interface {
		Do(ctx context.Context, fn func(ctx context.Context) error) error
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
		DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		slotRepository = slotRepo.NewRepository(wrappedDB)
		parkingRepository = parkingRepo.NewRepository(wrappedDB)
		bookingRepository = bookingRepo.NewRepository(wrappedDB)
		activityRepository = activityRepo.NewRepository(wrappedDB)
		vehicleRepository = vehicleRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		slotRepository = slotRepo.NewRepository(db)
		parkingRepository = parkingRepo.NewRepository(db)
		bookingRepository = bookingRepo.NewRepository(db)
		activityRepository = activityRepo.NewRepository(db)
		vehicleRepository = vehicleRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	bookingSvc := bookingsService.NewService(bookingRepository, slotRepository, txMgr, log)
	activitySvc := activitiesService.NewService(activityRepository, parkingRepository, txMgr, log)
	slotSvc := slotsService.NewService(slotRepository, log)
	parkingSvc := parkingsService.NewService(parkingRepository, activityRepository, txMgr, log)

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		slotRepository,
		vehicleRepository,
		txMgr,
		log,
	)
	recordEntryUseCase := recordEntryUC.NewUseCase(
		activityRepository,
		parkingRepository,
		vehicleRepository,
		txMgr,
		log,
	)

	// Инициализируем handlers
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	extendBooking := extendBookingHandler.NewHandler(bookingSvc, log)
	releaseBooking := releaseBookingHandler.NewHandler(bookingSvc, log)
	getUserBookings := getUserBookingsHandler.NewHandler(bookingSvc, log)
	getAllBookings := getAllBookingsHandler.NewHandler(bookingSvc, log)

	createSlot := createSlotHandler.NewHandler(slotSvc, log)
	createSlotsBulk := createSlotsBulkHandler.NewHandler(slotSvc, log)
	getSlots := getSlotsHandler.NewHandler(slotSvc, log)

	createParking := createParkingHandler.NewHandler(parkingSvc, log)
	getParking := getParkingHandler.NewHandler(parkingSvc, log)
	listParkings := listParkingsHandler.NewHandler(parkingSvc, log)
	updateParking := updateParkingHandler.NewHandler(parkingSvc, log)
	deleteParking := deleteParkingHandler.NewHandler(parkingSvc, log)

	recordEntry := recordEntryHandler.NewHandler(recordEntryUseCase, log)
	recordExit := recordExitHandler.NewHandler(activitySvc, log)
	getActivity := getActivityHandler.NewHandler(activitySvc, log)
	listActiveVehicles := listActiveVehiclesHandler.NewHandler(activitySvc, log)
	activitiesReport := activitiesReportHandler.NewHandler(activitySvc, log)
	getEntryTicket := getEntryTicketHandler.NewHandler(activitySvc, log)
	getParkingSummary := getParkingSummaryHandler.NewHandler(activitySvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		log.Info("HTTP metrics middleware enabled")

		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Список слотов (с фильтром ?available=true)
	api.HandleFunc("/slots", getSlots.Handle).Methods(http.MethodGet)

	// Список парковок и карточка парковки
	api.HandleFunc("/parkings", listParkings.Handle).Methods(http.MethodGet)
	api.HandleFunc("/parkings/{parkingId}", getParking.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Бронирования слотов ---
	protected.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/bookings", getAllBookings.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/bookings/{bookingId}/extend", extendBooking.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/bookings/{bookingId}/release", releaseBooking.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/users/{userId}/bookings", getUserBookings.Handle).Methods(http.MethodGet)

	// --- Управление слотами и парковками (для администраторов) ---
	protected.HandleFunc("/slots", createSlot.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/slots/bulk", createSlotsBulk.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/parkings", createParking.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/parkings/{parkingId}", updateParking.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/parkings/{parkingId}", deleteParking.Handle).Methods(http.MethodDelete)

	// --- Въезд/выезд ---
	// Конкретные пути регистрируются раньше шаблонных
	protected.HandleFunc("/activities/entry", recordEntry.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/activities/active", listActiveVehicles.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/activities/report", activitiesReport.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/activities/{activityId}", getActivity.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/activities/{activityId}/exit", recordExit.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/activities/{activityId}/ticket", getEntryTicket.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/activities/{activityId}/summary", getParkingSummary.Handle).Methods(http.MethodGet)

	// Запускаем sweeper просроченных бронирований (если включен)
	sweeperCtx, stopSweeper := context.WithCancel(context.Background())
	defer stopSweeper()

	if cfg.Sweeper.Enabled {
		overstaySweeper := sweeper.New(
			bookingSvc,
			time.Duration(cfg.Sweeper.Interval)*time.Second,
			log,
		)
		go overstaySweeper.Start(sweeperCtx)
		log.Info("Overstay sweeper started with interval %ds", cfg.Sweeper.Interval)
	}

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

	// Останавливаем sweeper
	stopSweeper()

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
