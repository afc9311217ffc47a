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

	cancelBookingHandler "github.com/johntint/booking-service/internal/api/handlers/cancel_booking"
	createBookingHandler "github.com/johntint/booking-service/internal/api/handlers/create_booking"
	exportBookingsHandler "github.com/johntint/booking-service/internal/api/handlers/export_bookings"
	getAvailabilityHandler "github.com/johntint/booking-service/internal/api/handlers/get_availability"
	getBookingHandler "github.com/johntint/booking-service/internal/api/handlers/get_booking"
	getScheduleHandler "github.com/johntint/booking-service/internal/api/handlers/get_schedule"
	getServicesHandler "github.com/johntint/booking-service/internal/api/handlers/get_services"
	getShadesHandler "github.com/johntint/booking-service/internal/api/handlers/get_shades"
	healthHandler "github.com/johntint/booking-service/internal/api/handlers/health"
	listBookingsHandler "github.com/johntint/booking-service/internal/api/handlers/list_bookings"
	refundBookingHandler "github.com/johntint/booking-service/internal/api/handlers/refund_booking"
	requestFinalPaymentHandler "github.com/johntint/booking-service/internal/api/handlers/request_final_payment"
	stripeWebhookHandler "github.com/johntint/booking-service/internal/api/handlers/stripe_webhook"
	toggleShadeHandler "github.com/johntint/booking-service/internal/api/handlers/toggle_shade"
	updateScheduleHandler "github.com/johntint/booking-service/internal/api/handlers/update_schedule"
	"github.com/johntint/booking-service/internal/api/middleware"
	"github.com/johntint/booking-service/internal/auth"
	"github.com/johntint/booking-service/internal/config"
	bookingRepo "github.com/johntint/booking-service/internal/infra/storage/booking"
	catalogRepo "github.com/johntint/booking-service/internal/infra/storage/catalog"
	scheduleRepo "github.com/johntint/booking-service/internal/infra/storage/schedule"
	"github.com/johntint/booking-service/internal/integrations/mailer"
	"github.com/johntint/booking-service/internal/integrations/stripepay"
	bookingsService "github.com/johntint/booking-service/internal/service/bookings"
	pricingService "github.com/johntint/booking-service/internal/service/pricing"
	scheduleService "github.com/johntint/booking-service/internal/service/schedule"
	createBookingUC "github.com/johntint/booking-service/internal/usecase/create_booking"
	getAvailabilityUC "github.com/johntint/booking-service/internal/usecase/get_availability"
	paymentEventsUC "github.com/johntint/booking-service/internal/usecase/payment_events"
	refundDepositUC "github.com/johntint/booking-service/internal/usecase/refund_deposit"
	requestFinalPaymentUC "github.com/johntint/booking-service/internal/usecase/request_final_payment"
	"github.com/johntint/booking-service/pkg/dbmetrics"
	"github.com/johntint/booking-service/pkg/logger"
	"github.com/johntint/booking-service/pkg/metrics"
	"github.com/johntint/booking-service/pkg/simpletxmanager"
	"github.com/johntint/booking-service/pkg/txmanager"
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

	log.Info("Starting booking-service...")
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
		bookingRepository  *bookingRepo.Repository
		catalogRepository  *catalogRepo.Repository
		scheduleRepository *scheduleRepo.Repository
	)

	// Интерфейс для transaction manager (используется в usecases)
	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, stopMetricsCh)
		log.Info("Database metrics collection started")

		// Инициализируем репозитории с обёрткой метрик
		bookingRepository = bookingRepo.NewRepository(wrappedDB)
		catalogRepository = catalogRepo.NewRepository(wrappedDB)
		scheduleRepository = scheduleRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		// Инициализируем репозитории без метрик
		bookingRepository = bookingRepo.NewRepository(db)
		catalogRepository = catalogRepo.NewRepository(db)
		scheduleRepository = scheduleRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем интеграции
	stripeClient := stripepay.NewClient(stripepay.Config{
		SecretKey:               cfg.Stripe.SecretKey,
		WebhookSecret:           cfg.Stripe.WebhookSecret,
		WebhookToleranceSeconds: cfg.Stripe.WebhookToleranceSeconds,
		SuccessURL:              cfg.Stripe.SuccessURL,
		CancelURL:               cfg.Stripe.CancelURL,
	}, log)

	// Уведомления: реальный SMTP-отправитель либо заглушка
	type notifierClient interface {
		Send(to, subject, body string) error
		NotifyShop(subject, body string) error
	}
	var notifier notifierClient = mailer.Noop{}
	if cfg.Notifications.Enabled {
		notifier = mailer.New(mailer.Config{
			Host:      cfg.Notifications.SMTPHost,
			Port:      cfg.Notifications.SMTPPort,
			Username:  cfg.Notifications.SMTPUser,
			Password:  cfg.Notifications.SMTPPassword,
			From:      cfg.Notifications.From,
			ShopEmail: cfg.Notifications.ShopEmail,
		}, log)
		log.Info("Email notifications enabled (smtp=%s:%d)", cfg.Notifications.SMTPHost, cfg.Notifications.SMTPPort)
	}

	// Инициализируем сервисы
	pricingSvc := pricingService.NewService(int64(cfg.Pricing.DepositPercent), cfg.Pricing.Currency, log)
	scheduleSvc := scheduleService.NewService(scheduleRepository, log)
	bookingSvc := bookingsService.NewService(bookingRepository, notifier, log)

	adminAuthorizer := auth.NewAdminAuthorizer(cfg.Admin.KeyHash, cfg.Admin.PlainEnv, log)

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		catalogRepository,
		scheduleSvc,
		pricingSvc,
		stripeClient,
		notifier,
		txMgr,
		cfg.Stripe.DepositFlowEnabled,
		log,
	)

	getAvailabilityUseCase := getAvailabilityUC.NewUseCase(
		bookingRepository,
		scheduleSvc,
		log,
	)

	paymentEventsUseCase := paymentEventsUC.NewUseCase(bookingRepository, notifier, log)
	requestFinalPaymentUseCase := requestFinalPaymentUC.NewUseCase(bookingRepository, stripeClient, notifier, log)
	refundDepositUseCase := refundDepositUC.NewUseCase(bookingRepository, stripeClient, notifier, log)

	// Инициализируем handlers
	getServices := getServicesHandler.NewHandler(catalogRepository, log)
	getShades := getShadesHandler.NewHandler(catalogRepository, log)
	getAvailability := getAvailabilityHandler.NewHandler(getAvailabilityUseCase, log)
	getSchedule := getScheduleHandler.NewHandler(scheduleSvc, log)
	var bookingCounter createBookingHandler.BookingCounter
	if metricsCollector != nil {
		bookingCounter = metricsCollector
	}
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, bookingCounter, log)

	var webhookCounter stripeWebhookHandler.EventCounter
	if metricsCollector != nil {
		webhookCounter = metricsCollector
	}
	stripeWebhook := stripeWebhookHandler.NewHandler(stripeClient, paymentEventsUseCase, webhookCounter, log)

	updateSchedule := updateScheduleHandler.NewHandler(scheduleSvc, log)
	toggleShade := toggleShadeHandler.NewHandler(catalogRepository, log)
	listBookings := listBookingsHandler.NewHandler(bookingSvc, log)
	exportBookings := exportBookingsHandler.NewHandler(bookingSvc, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	requestFinalPayment := requestFinalPaymentHandler.NewHandler(requestFinalPaymentUseCase, log)
	refundBooking := refundBookingHandler.NewHandler(refundDepositUseCase, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	health := healthHandler.NewHandler(db)

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

	// Health check
	r.HandleFunc("/api/health", health.Handle).Methods(http.MethodGet)

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Каталог услуг и оттенков
	api.HandleFunc("/services", getServices.Handle).Methods(http.MethodGet)
	api.HandleFunc("/services/{id}/shades", getShades.Handle).Methods(http.MethodGet)

	// Доступные слоты для записи
	api.HandleFunc("/availability", getAvailability.Handle).Methods(http.MethodGet)

	// Текущее расписание магазина
	api.HandleFunc("/schedule", getSchedule.Handle).Methods(http.MethodGet)

	// Создание записи
	api.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)

	// Stripe webhook: аутентифицируется подписью события, не админским ключом
	api.HandleFunc("/payments/stripe/webhook", stripeWebhook.Handle).Methods(http.MethodPost)

	// ============================================================
	// ADMIN ROUTES (требуют X-Admin-Key header)
	// ============================================================

	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(middleware.AdminAuth(adminAuthorizer, log))

	// Управление расписанием и каталогом
	admin.HandleFunc("/schedule", updateSchedule.Handle).Methods(http.MethodPut)
	admin.HandleFunc("/shades/{id}/toggle", toggleShade.Handle).Methods(http.MethodPost)

	// Записи: export регистрируется раньше {id}, иначе {id} перехватит путь
	admin.HandleFunc("/bookings/export", exportBookings.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/bookings", listBookings.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/bookings/{id}", getBooking.Handle).Methods(http.MethodGet)

	// Платёжные операции по записи
	admin.HandleFunc("/bookings/{id}/request-final-payment", requestFinalPayment.Handle).Methods(http.MethodPost)
	admin.HandleFunc("/bookings/{id}/refund-deposit", refundBooking.Handle).Methods(http.MethodPost)
	admin.HandleFunc("/bookings/{id}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)

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
