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

	advanceDraftHandler "github.com/m04kA/WM-BookingService/internal/api/handlers/advance_draft"
	backDraftHandler "github.com/m04kA/WM-BookingService/internal/api/handlers/back_draft"
	cancelBookingHandler "github.com/m04kA/WM-BookingService/internal/api/handlers/cancel_booking"
	createBranchHandler "github.com/m04kA/WM-BookingService/internal/api/handlers/create_branch"
	createDraftHandler "github.com/m04kA/WM-BookingService/internal/api/handlers/create_draft"
	deleteBranchHandler "github.com/m04kA/WM-BookingService/internal/api/handlers/delete_branch"
	getAvailableSlotsHandler "github.com/m04kA/WM-BookingService/internal/api/handlers/get_available_slots"
	getBookingHandler "github.com/m04kA/WM-BookingService/internal/api/handlers/get_booking"
	getBranchHandler "github.com/m04kA/WM-BookingService/internal/api/handlers/get_branch"
	getBranchBookingsHandler "github.com/m04kA/WM-BookingService/internal/api/handlers/get_branch_bookings"
	getDraftHandler "github.com/m04kA/WM-BookingService/internal/api/handlers/get_draft"
	listBranchesHandler "github.com/m04kA/WM-BookingService/internal/api/handlers/list_branches"
	reactivateBookingHandler "github.com/m04kA/WM-BookingService/internal/api/handlers/reactivate_booking"
	submitBookingHandler "github.com/m04kA/WM-BookingService/internal/api/handlers/submit_booking"
	submitDraftHandler "github.com/m04kA/WM-BookingService/internal/api/handlers/submit_draft"
	updateBookingHandler "github.com/m04kA/WM-BookingService/internal/api/handlers/update_booking"
	updateBranchHandler "github.com/m04kA/WM-BookingService/internal/api/handlers/update_branch"
	"github.com/m04kA/WM-BookingService/internal/api/middleware"
	"github.com/m04kA/WM-BookingService/internal/config"
	"github.com/m04kA/WM-BookingService/internal/infra/draftstore"
	bookingRepo "github.com/m04kA/WM-BookingService/internal/infra/storage/booking"
	branchRepo "github.com/m04kA/WM-BookingService/internal/infra/storage/branch"
	"github.com/m04kA/WM-BookingService/internal/integrations/mailer"
	"github.com/m04kA/WM-BookingService/internal/notify"
	bookingsService "github.com/m04kA/WM-BookingService/internal/service/bookings"
	branchesService "github.com/m04kA/WM-BookingService/internal/service/branches"
	draftsService "github.com/m04kA/WM-BookingService/internal/service/drafts"
	getAvailableSlotsUC "github.com/m04kA/WM-BookingService/internal/usecase/get_available_slots"
	submitBookingUC "github.com/m04kA/WM-BookingService/internal/usecase/submit_booking"
	"github.com/m04kA/WM-BookingService/pkg/dbmetrics"
	"github.com/m04kA/WM-BookingService/pkg/logger"
	"github.com/m04kA/WM-BookingService/pkg/metrics"
	"github.com/m04kA/WM-BookingService/pkg/simpletxmanager"
	"github.com/m04kA/WM-BookingService/pkg/txmanager"
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

	log.Info("Starting WM-BookingService...")
	log.Info("Configuration loaded from config.toml")

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
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

	// Подключаемся к Redis (хранилище черновиков)
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer redisClient.Close()

	if err := redisClient.Ping(context.Background()).Err(); err != nil {
		log.Fatal("Failed to ping redis: %v", err)
	}
	log.Info("Successfully connected to redis (addr=%s, db=%d)", cfg.Redis.Addr, cfg.Redis.DB)

	draftTTL := time.Duration(cfg.Redis.DraftTTL) * time.Minute
	draftStore := draftstore.NewStore(redisClient, draftTTL)
	log.Info("Draft store initialized (ttl=%s)", draftTTL)

	// Инициализируем уведомления
	type notifier interface {
		Enqueue(n mailer.Notification)
		Close()
	}
	var dispatcher notifier = notify.Discard{}

	if cfg.Notifications.Enabled {
		mailClient, err := mailer.NewClient(mailer.Config{
			Host:           cfg.SMTP.Host,
			Port:           cfg.SMTP.Port,
			Username:       cfg.SMTP.Username,
			Password:       cfg.SMTP.Password,
			From:           cfg.SMTP.From,
			AdminRecipient: cfg.SMTP.AdminRecipient,
		}, log)
		if err != nil {
			log.Fatal("Failed to initialize mail client: %v", err)
		}
		dispatcher = notify.NewDispatcher(
			mailClient,
			log,
			cfg.Notifications.QueueSize,
			time.Duration(cfg.Notifications.SendTimeout)*time.Second,
		)
		log.Info("Notification dispatcher started (queue=%d, smtp=%s:%d)",
			cfg.Notifications.QueueSize, cfg.SMTP.Host, cfg.SMTP.Port)
	} else {
		log.Info("Notifications disabled")
	}
	defer dispatcher.Close()

	// Инициализируем репозитории (с метриками или без)
	var (
		bookingRepository *bookingRepo.Repository
		branchRepository  *branchRepo.Repository
	)

	// Интерфейс для transaction manager (используется в usecases)
	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		bookingRepository = bookingRepo.NewRepository(wrappedDB)
		branchRepository = branchRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		bookingRepository = bookingRepo.NewRepository(db)
		branchRepository = branchRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем use cases
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUsecase(
		bookingRepository,
		branchRepository,
		log,
	)
	submitBookingUseCase := submitBookingUC.NewUsecase(
		bookingRepository,
		branchRepository,
		txMgr,
		dispatcher,
		submitBookingUC.RealTimeProvider{},
		log,
	)

	// Инициализируем сервисы
	bookingSvc := bookingsService.NewService(bookingRepository, branchRepository, log)
	branchSvc := branchesService.NewService(branchRepository, bookingRepository, log)
	draftSvc := draftsService.NewService(
		draftStore,
		branchRepository,
		getAvailableSlotsUseCase,
		submitBookingUseCase,
		log,
	)

	// Инициализируем handlers
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	submitBooking := submitBookingHandler.NewHandler(submitBookingUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	reactivateBooking := reactivateBookingHandler.NewHandler(bookingSvc, log)
	updateBooking := updateBookingHandler.NewHandler(bookingSvc, log)
	getBranchBookings := getBranchBookingsHandler.NewHandler(bookingSvc, log)
	listBranches := listBranchesHandler.NewHandler(branchSvc, log)
	getBranch := getBranchHandler.NewHandler(branchSvc, log)
	createBranch := createBranchHandler.NewHandler(branchSvc, log)
	updateBranch := updateBranchHandler.NewHandler(branchSvc, log)
	deleteBranch := deleteBranchHandler.NewHandler(branchSvc, log)
	createDraft := createDraftHandler.NewHandler(draftSvc, log)
	getDraft := getDraftHandler.NewHandler(draftSvc, log)
	advanceDraft := advanceDraftHandler.NewHandler(draftSvc, log)
	backDraft := backDraftHandler.NewHandler(draftSvc, log)
	submitDraft := submitDraftHandler.NewHandler(draftSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Каталог филиалов
	api.HandleFunc("/branches", listBranches.Handle).Methods(http.MethodGet)
	api.HandleFunc("/branches/{branchId}", getBranch.Handle).Methods(http.MethodGet)

	// Свободные слоты филиала на дату
	api.HandleFunc("/branches/{branchId}/available-slots", getAvailableSlots.Handle).Methods(http.MethodGet)

	// Мастер оформления записи
	api.HandleFunc("/drafts", createDraft.Handle).Methods(http.MethodPost)
	api.HandleFunc("/drafts/{draftId}", getDraft.Handle).Methods(http.MethodGet)
	api.HandleFunc("/drafts/{draftId}/advance", advanceDraft.Handle).Methods(http.MethodPost)
	api.HandleFunc("/drafts/{draftId}/back", backDraft.Handle).Methods(http.MethodPost)
	api.HandleFunc("/drafts/{draftId}/submit", submitDraft.Handle).Methods(http.MethodPost)

	// Прямое оформление полного черновика
	api.HandleFunc("/bookings", submitBooking.Handle).Methods(http.MethodPost)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Записи ---
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId}", updateBooking.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/bookings/{bookingId}/reactivate", reactivateBooking.Handle).Methods(http.MethodPatch)

	// --- Управление филиалами ---
	protected.HandleFunc("/branches", createBranch.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/branches/{branchId}", updateBranch.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/branches/{branchId}", deleteBranch.Handle).Methods(http.MethodDelete)
	protected.HandleFunc("/branches/{branchId}/bookings", getBranchBookings.Handle).Methods(http.MethodGet)

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
