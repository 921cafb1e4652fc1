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
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	createTimeBlockHandler "github.com/m04kA/SMC-AvailabilityService/internal/api/handlers/create_time_block"
	deleteTimeBlockHandler "github.com/m04kA/SMC-AvailabilityService/internal/api/handlers/delete_time_block"
	getAvailabilityHandler "github.com/m04kA/SMC-AvailabilityService/internal/api/handlers/get_availability"
	getBufferTimesHandler "github.com/m04kA/SMC-AvailabilityService/internal/api/handlers/get_buffer_times"
	getTimeBlocksHandler "github.com/m04kA/SMC-AvailabilityService/internal/api/handlers/get_time_blocks"
	getWorkingHoursHandler "github.com/m04kA/SMC-AvailabilityService/internal/api/handlers/get_working_hours"
	updateBufferTimeHandler "github.com/m04kA/SMC-AvailabilityService/internal/api/handlers/update_buffer_time"
	updateWorkingHoursHandler "github.com/m04kA/SMC-AvailabilityService/internal/api/handlers/update_working_hours"
	"github.com/m04kA/SMC-AvailabilityService/internal/api/middleware"
	"github.com/m04kA/SMC-AvailabilityService/internal/config"
	bookingRepo "github.com/m04kA/SMC-AvailabilityService/internal/infra/storage/booking"
	bufferRepo "github.com/m04kA/SMC-AvailabilityService/internal/infra/storage/buffer"
	timeBlockRepo "github.com/m04kA/SMC-AvailabilityService/internal/infra/storage/timeblock"
	workingHoursRepo "github.com/m04kA/SMC-AvailabilityService/internal/infra/storage/workinghours"
	tenantServiceClient "github.com/m04kA/SMC-AvailabilityService/internal/integrations/tenantservice"
	scheduleService "github.com/m04kA/SMC-AvailabilityService/internal/service/schedule"
	getAvailabilityUC "github.com/m04kA/SMC-AvailabilityService/internal/usecase/get_availability"
	"github.com/m04kA/SMC-AvailabilityService/migrations"
	"github.com/m04kA/SMC-AvailabilityService/pkg/dbmetrics"
	"github.com/m04kA/SMC-AvailabilityService/pkg/logger"
	"github.com/m04kA/SMC-AvailabilityService/pkg/metrics"
	"github.com/m04kA/SMC-AvailabilityService/pkg/migrator"
	"github.com/m04kA/SMC-AvailabilityService/pkg/ratelimit"
	"github.com/m04kA/SMC-AvailabilityService/pkg/tracing"
	"github.com/m04kA/SMC-AvailabilityService/pkg/txmanager"
)

func configPath() string {
	if path := os.Getenv("CONFIG_PATH"); path != "" {
		return path
	}
	return "config.toml"
}

func main() {
	// Загружаем конфигурацию
	path := configPath()
	cfg, err := config.Load(path)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Инициализируем логгер
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level, cfg.App.Environment)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting %s (%s)...", cfg.App.Name, cfg.App.Environment)
	log.Info("Configuration loaded from %s", path)

	// Трейсинг
	shutdownTracing, err := tracing.Setup(context.Background(), tracing.Config{
		Enabled:      cfg.Tracing.Enabled,
		ServiceName:  cfg.App.Name,
		OTLPEndpoint: cfg.Tracing.OTLPEndpoint,
		SampleRatio:  cfg.Tracing.SampleRatio,
	})
	if err != nil {
		log.Fatal("Failed to initialize tracing: %v", err)
	}
	if cfg.Tracing.Enabled {
		log.Info("Tracing enabled, exporting to %s", cfg.Tracing.OTLPEndpoint)
	}

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

	// Применяем миграции
	if cfg.Database.AutoMigrate {
		m, err := migrator.New(db, migrations.FS, log.With("component", "migrator"))
		if err != nil {
			log.Fatal("Failed to initialize migrator: %v", err)
		}
		if err := m.Up(context.Background()); err != nil {
			log.Fatal("Failed to apply migrations: %v", err)
		}
	}

	// Без метрик обёртка работает как прозрачный прокси
	var wrappedDB *dbmetrics.DB
	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")
	} else {
		wrappedDB = dbmetrics.Wrap(db, nil, cfg.Metrics.ServiceName)
	}

	// Инициализируем репозитории
	workingHoursRepository := workingHoursRepo.NewRepository(wrappedDB)
	timeBlockRepository := timeBlockRepo.NewRepository(wrappedDB)
	bookingRepository := bookingRepo.NewRepository(wrappedDB)
	bufferRepository := bufferRepo.NewRepository(wrappedDB)
	txMgr := txmanager.NewTransactionManager(wrappedDB)

	// Инициализируем интеграционных клиентов
	tenantClient := tenantServiceClient.NewClient(
		cfg.TenantService.URL,
		time.Duration(cfg.TenantService.Timeout)*time.Second,
		log.With("component", "tenantservice"),
	)
	log.Info("Integration clients initialized (TenantService=%s timeout=%ds)",
		cfg.TenantService.URL, cfg.TenantService.Timeout)

	// Инициализируем сервисы и use cases
	scheduleSvc := scheduleService.NewService(
		workingHoursRepository,
		timeBlockRepository,
		bufferRepository,
		tenantClient,
		txMgr,
		log,
	)

	getAvailabilityUseCase := getAvailabilityUC.NewUseCase(
		tenantClient,
		workingHoursRepository,
		timeBlockRepository,
		bookingRepository,
		bufferRepository,
		txMgr,
		log,
	)

	// Инициализируем handlers
	getAvailability := getAvailabilityHandler.NewHandler(getAvailabilityUseCase, log)
	getWorkingHours := getWorkingHoursHandler.NewHandler(scheduleSvc, log)
	updateWorkingHours := updateWorkingHoursHandler.NewHandler(scheduleSvc, log)
	getTimeBlocks := getTimeBlocksHandler.NewHandler(scheduleSvc, log)
	createTimeBlock := createTimeBlockHandler.NewHandler(scheduleSvc, log)
	deleteTimeBlock := deleteTimeBlockHandler.NewHandler(scheduleSvc, log)
	getBufferTimes := getBufferTimesHandler.NewHandler(scheduleSvc, log)
	updateBufferTime := updateBufferTimeHandler.NewHandler(scheduleSvc, log)

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

	// Rate limiting (только для API)
	var rdb *redis.Client
	if cfg.RateLimit.Enabled {
		window := time.Duration(cfg.RateLimit.Window) * time.Second

		var limiter ratelimit.Limiter
		if cfg.RateLimit.Backend == config.RateLimitBackendRedis {
			rdb = redis.NewClient(&redis.Options{
				Addr:     cfg.RateLimit.RedisAddr,
				Password: cfg.RateLimit.RedisPassword,
				DB:       cfg.RateLimit.RedisDB,
			})
			if err := rdb.Ping(context.Background()).Err(); err != nil {
				log.Fatal("Failed to connect to redis at %s: %v", cfg.RateLimit.RedisAddr, err)
			}
			limiter = ratelimit.NewRedisLimiter(rdb, cfg.RateLimit.Requests, window, cfg.Metrics.ServiceName)
		} else {
			local := ratelimit.NewLocalLimiter(cfg.RateLimit.Requests, window)
			go local.RunSweeper(window, stopMetricsCh)
			limiter = local
		}

		api.Use(middleware.RateLimit(limiter, cfg.RateLimit.TrustForwardedFor, metricsCollector, cfg.Metrics.ServiceName, log))
		log.Info("Rate limiting enabled: backend=%s, %d requests per %s",
			cfg.RateLimit.Backend, cfg.RateLimit.Requests, window)
	}

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Расчет свободного времени
	api.HandleFunc("/tenants/{tenantId}/availability", getAvailability.Handle).Methods(http.MethodGet)

	// Просмотр расписания
	api.HandleFunc("/tenants/{tenantId}/working-hours", getWorkingHours.Handle).Methods(http.MethodGet)
	api.HandleFunc("/tenants/{tenantId}/time-blocks", getTimeBlocks.Handle).Methods(http.MethodGet)
	api.HandleFunc("/tenants/{tenantId}/buffer-times", getBufferTimes.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	protected.HandleFunc("/tenants/{tenantId}/working-hours", updateWorkingHours.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/tenants/{tenantId}/time-blocks", createTimeBlock.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/tenants/{tenantId}/time-blocks/{timeBlockId}", deleteTimeBlock.Handle).Methods(http.MethodDelete)
	protected.HandleFunc("/tenants/{tenantId}/buffer-times", updateBufferTime.Handle).Methods(http.MethodPut)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      otelhttp.NewHandler(r, cfg.App.Name),
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

	// Останавливаем фоновые задачи: метрики connection pool и очистку лимитера
	close(stopMetricsCh)

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	if rdb != nil {
		if err := rdb.Close(); err != nil {
			log.Error("Failed to close redis client: %v", err)
		}
	}

	if err := shutdownTracing(shutdownCtx); err != nil {
		log.Error("Failed to flush traces: %v", err)
	}

	log.Info("Server stopped gracefully")
}
