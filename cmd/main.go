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

	addBikeHandler "github.com/veloservis/BikeShop-Service/internal/api/handlers/add_bike"
	addSlotHandler "github.com/veloservis/BikeShop-Service/internal/api/handlers/add_slot"
	createRequestHandler "github.com/veloservis/BikeShop-Service/internal/api/handlers/create_request"
	deleteBikeHandler "github.com/veloservis/BikeShop-Service/internal/api/handlers/delete_bike"
	deleteRequestHandler "github.com/veloservis/BikeShop-Service/internal/api/handlers/delete_request"
	getFreeSlotsHandler "github.com/veloservis/BikeShop-Service/internal/api/handlers/get_free_slots"
	getRequestHandler "github.com/veloservis/BikeShop-Service/internal/api/handlers/get_request"
	getUserBikesHandler "github.com/veloservis/BikeShop-Service/internal/api/handlers/get_user_bikes"
	getUserRequestsHandler "github.com/veloservis/BikeShop-Service/internal/api/handlers/get_user_requests"
	removeSlotHandler "github.com/veloservis/BikeShop-Service/internal/api/handlers/remove_slot"
	updateRequestStatusHandler "github.com/veloservis/BikeShop-Service/internal/api/handlers/update_request_status"
	updateSkillsHandler "github.com/veloservis/BikeShop-Service/internal/api/handlers/update_skills"
	upgradeMechanicHandler "github.com/veloservis/BikeShop-Service/internal/api/handlers/upgrade_mechanic"
	"github.com/veloservis/BikeShop-Service/internal/api/middleware"
	"github.com/veloservis/BikeShop-Service/internal/config"
	bikeRepo "github.com/veloservis/BikeShop-Service/internal/infra/storage/bike"
	mechanicRepo "github.com/veloservis/BikeShop-Service/internal/infra/storage/mechanic"
	requestRepo "github.com/veloservis/BikeShop-Service/internal/infra/storage/request"
	"github.com/veloservis/BikeShop-Service/internal/integrations/mailer"
	bikesService "github.com/veloservis/BikeShop-Service/internal/service/bikes"
	mechanicsService "github.com/veloservis/BikeShop-Service/internal/service/mechanics"
	requestsService "github.com/veloservis/BikeShop-Service/internal/service/requests"
	createRequestUC "github.com/veloservis/BikeShop-Service/internal/usecase/create_request"
	getFreeSlotsUC "github.com/veloservis/BikeShop-Service/internal/usecase/get_free_slots"
	"github.com/veloservis/BikeShop-Service/pkg/dbmetrics"
	"github.com/veloservis/BikeShop-Service/pkg/logger"
	"github.com/veloservis/BikeShop-Service/pkg/metrics"
	"github.com/veloservis/BikeShop-Service/pkg/simpletxmanager"
	"github.com/veloservis/BikeShop-Service/pkg/txmanager"
)

// Notifier общий интерфейс почтовых уведомлений (usecases и сервисы
// объявляют свои узкие версии, сюда подставляется клиент или заглушка)
type Notifier interface {
	SendRequestCreated(ctx context.Context, n mailer.RequestCreatedNotification) error
	SendStatusChanged(ctx context.Context, n mailer.StatusChangedNotification) error
}

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

	log.Info("Starting BikeShop-Service...")
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

	// Почтовые уведомления: реальный клиент или заглушка
	var notifier Notifier
	if cfg.Mailer.Enabled {
		notifier = mailer.NewClient(
			cfg.Mailer.URL,
			time.Duration(cfg.Mailer.Timeout)*time.Second,
			log,
		)
		log.Info("Mailer client initialized (url=%s timeout=%ds)", cfg.Mailer.URL, cfg.Mailer.Timeout)
	} else {
		notifier = mailer.Noop{}
		log.Info("Mailer disabled, notifications are dropped")
	}

	// Инициализируем репозитории и transaction manager (с метриками или без)
	var (
		mechanicRepository *mechanicRepo.Repository
		requestRepository  *requestRepo.Repository
		bikeRepository     *bikeRepo.Repository
	)

	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		mechanicRepository = mechanicRepo.NewRepository(wrappedDB)
		requestRepository = requestRepo.NewRepository(wrappedDB)
		bikeRepository = bikeRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		mechanicRepository = mechanicRepo.NewRepository(db)
		requestRepository = requestRepo.NewRepository(db)
		bikeRepository = bikeRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	requestsSvc := requestsService.NewService(
		requestRepository,
		txMgr,
		notifier,
		log,
	)
	mechanicsSvc := mechanicsService.NewService(
		mechanicRepository,
		log,
	)
	bikesSvc := bikesService.NewService(
		bikeRepository,
		log,
	)

	// Инициализируем use cases
	createRequestUseCase := createRequestUC.NewUseCase(
		mechanicRepository,
		requestRepository,
		bikeRepository,
		txMgr,
		notifier,
		log,
	)
	getFreeSlotsUseCase := getFreeSlotsUC.NewUseCase(
		mechanicRepository,
		requestRepository,
		log,
	)

	// Инициализируем handlers
	createRequest := createRequestHandler.New(createRequestUseCase, log)
	getRequest := getRequestHandler.New(requestsSvc, log)
	getUserRequests := getUserRequestsHandler.New(requestsSvc, log)
	updateRequestStatus := updateRequestStatusHandler.New(requestsSvc, log)
	deleteRequest := deleteRequestHandler.New(requestsSvc, log)
	getFreeSlots := getFreeSlotsHandler.New(getFreeSlotsUseCase, log)
	upgradeMechanic := upgradeMechanicHandler.New(mechanicsSvc, log)
	addSlot := addSlotHandler.New(mechanicsSvc, log)
	removeSlot := removeSlotHandler.New(mechanicsSvc, log)
	updateSkills := updateSkillsHandler.New(mechanicsSvc, log)
	addBike := addBikeHandler.New(bikesSvc, log)
	getUserBikes := getUserBikesHandler.New(bikesSvc, log)
	deleteBike := deleteBikeHandler.New(bikesSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Metrics middleware и endpoint (если метрики включены)
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

	// Свободные слоты механика
	api.HandleFunc("/mechanics/{mechanicId}/free-slots", getFreeSlots.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-Email header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Заявки на обслуживание ---
	protected.HandleFunc("/requests", createRequest.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/requests", getUserRequests.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/requests/{requestId}", getRequest.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/requests/{requestId}/status", updateRequestStatus.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/requests/{requestId}", deleteRequest.Handle).Methods(http.MethodDelete)

	// --- Профиль механика ---
	protected.HandleFunc("/mechanics/me", upgradeMechanic.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/mechanics/me", upgradeMechanic.HandleProfile).Methods(http.MethodGet)
	protected.HandleFunc("/mechanics/me/slots", addSlot.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/mechanics/me/slots", removeSlot.Handle).Methods(http.MethodDelete)
	protected.HandleFunc("/mechanics/me/skills", updateSkills.Handle).Methods(http.MethodPut)

	// --- Велосипеды ---
	protected.HandleFunc("/bikes", addBike.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/bikes", getUserBikes.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bikes/{bikeId}", deleteBike.Handle).Methods(http.MethodDelete)

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
