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
	"github.com/redis/go-redis/v9"
	_ "modernc.org/sqlite"

	bookingDraftsHandler "github.com/geopressci/pressing-gateway/internal/api/handlers/booking_drafts"
	bulkTimeSlotsHandler "github.com/geopressci/pressing-gateway/internal/api/handlers/bulk_time_slots"
	cancelAppointmentHandler "github.com/geopressci/pressing-gateway/internal/api/handlers/cancel_appointment"
	favoritesHandler "github.com/geopressci/pressing-gateway/internal/api/handlers/favorites"
	getAppointmentHandler "github.com/geopressci/pressing-gateway/internal/api/handlers/get_appointment"
	getAppointmentStatsHandler "github.com/geopressci/pressing-gateway/internal/api/handlers/get_appointment_stats"
	getAppointmentsHandler "github.com/geopressci/pressing-gateway/internal/api/handlers/get_appointments"
	getAvailableSlotsHandler "github.com/geopressci/pressing-gateway/internal/api/handlers/get_available_slots"
	getRouteHandler "github.com/geopressci/pressing-gateway/internal/api/handlers/get_route"
	healthHandler "github.com/geopressci/pressing-gateway/internal/api/handlers/health"
	recentSearchesHandler "github.com/geopressci/pressing-gateway/internal/api/handlers/recent_searches"
	rescheduleAppointmentHandler "github.com/geopressci/pressing-gateway/internal/api/handlers/reschedule_appointment"
	searchPressingsHandler "github.com/geopressci/pressing-gateway/internal/api/handlers/search_pressings"
	sessionHandler "github.com/geopressci/pressing-gateway/internal/api/handlers/session"
	timeSlotsHandler "github.com/geopressci/pressing-gateway/internal/api/handlers/time_slots"
	updateAppointmentStatusHandler "github.com/geopressci/pressing-gateway/internal/api/handlers/update_appointment_status"
	"github.com/geopressci/pressing-gateway/internal/api/middleware"
	"github.com/geopressci/pressing-gateway/internal/config"
	"github.com/geopressci/pressing-gateway/internal/domain"
	"github.com/geopressci/pressing-gateway/internal/geolocation"
	prefsStore "github.com/geopressci/pressing-gateway/internal/infra/storage/preferences"
	"github.com/geopressci/pressing-gateway/internal/integrations/mapbox"
	"github.com/geopressci/pressing-gateway/internal/integrations/pressingapi"
	appointmentsService "github.com/geopressci/pressing-gateway/internal/service/appointments"
	preferencesService "github.com/geopressci/pressing-gateway/internal/service/preferences"
	bookingUC "github.com/geopressci/pressing-gateway/internal/usecase/booking"
	loadAvailableSlotsUC "github.com/geopressci/pressing-gateway/internal/usecase/load_available_slots"
	planBulkSlotsUC "github.com/geopressci/pressing-gateway/internal/usecase/plan_bulk_slots"
	searchPressingsUC "github.com/geopressci/pressing-gateway/internal/usecase/search_pressings"
	"github.com/geopressci/pressing-gateway/pkg/logger"
	"github.com/geopressci/pressing-gateway/pkg/metrics"
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

	log.Info("Starting pressing-gateway...")
	log.Info("Configuration loaded (upstream=%s, storage=%s, mapbox=%v)",
		cfg.Upstream.BaseURL, cfg.Storage.Driver, cfg.MapboxEnabled())

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Подключаем хранилище предпочтений
	store, storageCheck, closeStore, err := openStore(context.Background(), cfg)
	if err != nil {
		log.Fatal("Failed to open preferences storage: %v", err)
	}
	defer closeStore()
	log.Info("Preferences storage ready (driver=%s)", cfg.Storage.Driver)

	// Сервисы предпочтений и сессии
	sessionStore := preferencesService.NewSessionStore(store, log)
	prefsSvc := preferencesService.NewService(store, cfg.Search.MaxRecentSearches, log)

	// Инициализируем интеграционных клиентов
	apiClient := pressingapi.NewClient(
		cfg.Upstream.BaseURL,
		cfg.UpstreamTimeout(),
		sessionStore,
		log,
		pressingapi.WithMetrics(metricsCollector),
	)
	mapboxClient := mapbox.NewClient(
		cfg.Mapbox.BaseURL,
		cfg.Mapbox.AccessToken,
		cfg.MapboxTimeout(),
		log,
	)
	log.Info("Integration clients initialized (API=%s timeout=%ds, Mapbox enabled=%v)",
		cfg.Upstream.BaseURL, cfg.Upstream.Timeout, mapboxClient.Enabled())

	// Геолокация: позиция браузера, при неудаче - по названию места через Mapbox
	var ipFallback geolocation.PositionSource
	if cfg.Geolocation.FallbackToIP && mapboxClient.Enabled() {
		ipFallback = geolocation.NewMapboxSource(mapboxClient, cfg.Mapbox.DefaultPlace)
		log.Info("Geolocation fallback enabled (place=%s)", cfg.Mapbox.DefaultPlace)
	}
	newLocator := func(primary geolocation.PositionSource) searchPressingsHandler.Locator {
		return geolocation.NewLocator(primary, ipFallback, cfg.GeolocationTimeout(), metricsCollector, log)
	}

	// Инициализируем сервисы
	appointmentsSvc := appointmentsService.NewService(apiClient, log)

	bookingOpts := bookingUC.Options{RequireAddress: cfg.Booking.RequireAddress}
	draftRepo := bookingUC.NewDraftRepository(store)
	draftSvc := bookingUC.NewService(draftRepo, bookingOpts, log)
	draftSubmitter := bookingUC.NewSubmitter(
		draftRepo,
		apiClient,
		bookingOpts,
		func(ctx context.Context, owner string, appointment *domain.Appointment) {
			log.Info("Booking completed: owner=%s, appointment_id=%s, pressing_id=%s",
				owner, appointment.ID, appointment.PressingID)
		},
		metricsCollector,
		log,
	)

	// Инициализируем use cases
	debouncer := searchPressingsUC.NewDebouncer(cfg.SearchDebounce())
	searchPressingsUseCase := searchPressingsUC.NewUseCase(apiClient, prefsSvc, debouncer, metricsCollector, log)
	loadAvailableSlotsUseCase := loadAvailableSlotsUC.NewUseCase(apiClient, metricsCollector, log)
	planBulkSlotsUseCase := planBulkSlotsUC.NewUseCase(apiClient, log)

	// Инициализируем handlers
	searchPressings := searchPressingsHandler.NewHandler(searchPressingsUseCase, prefsSvc, newLocator, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(loadAvailableSlotsUseCase, log)
	getRoute := getRouteHandler.NewHandler(apiClient, mapboxClient, log)
	favorites := favoritesHandler.NewHandler(prefsSvc, log)
	recentSearches := recentSearchesHandler.NewHandler(prefsSvc, log)
	bookingDrafts := bookingDraftsHandler.NewHandler(draftSvc, draftSubmitter, log)
	session := sessionHandler.NewHandler(sessionStore, log)
	getAppointments := getAppointmentsHandler.NewHandler(appointmentsSvc, log)
	getAppointment := getAppointmentHandler.NewHandler(appointmentsSvc, log)
	getAppointmentStats := getAppointmentStatsHandler.NewHandler(appointmentsSvc, log)
	cancelAppointment := cancelAppointmentHandler.NewHandler(appointmentsSvc, log)
	rescheduleAppointment := rescheduleAppointmentHandler.NewHandler(appointmentsSvc, log)
	updateAppointmentStatus := updateAppointmentStatusHandler.NewHandler(appointmentsSvc, log)
	timeSlots := timeSlotsHandler.NewHandler(apiClient, log)
	bulkTimeSlots := bulkTimeSlotsHandler.NewHandler(planBulkSlotsUseCase, log)
	health := healthHandler.NewHandler(log, storageCheck)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestID)

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		log.Info("HTTP metrics middleware enabled")
	}

	// Metrics endpoint (публичный, без сессии)
	if cfg.Metrics.Enabled {
		r.Handle(cfg.Metrics.Path, metricsCollector.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	r.HandleFunc("/health", health.Handle).Methods(http.MethodGet)

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()
	if !cfg.BearerAuthEnabled() {
		log.Warn("JWT_SECRET is not set: bearer tokens will be rejected, only X-Client-ID sessions are accepted")
	}
	api.Use(middleware.Session([]byte(cfg.Auth.JWTSecret), sessionStore, log))

	// ============================================================
	// PUBLIC ROUTES (токен необязателен)
	// ============================================================

	// Поиск pressings с фильтрами, сортировкой и геолокацией
	api.HandleFunc("/pressings/search", searchPressings.Handle).Methods(http.MethodGet)

	// Créneaux на дату (с подстановкой créneaux по умолчанию)
	api.HandleFunc("/pressings/{pressingId}/available-slots", getAvailableSlots.Handle).Methods(http.MethodGet)

	// Маршрут до pressing
	api.HandleFunc("/pressings/{pressingId}/route", getRoute.Handle).Methods(http.MethodGet)

	// ============================================================
	// OWNER ROUTES (требуют X-Client-ID или bearer-токен)
	// ============================================================

	owned := api.PathPrefix("").Subrouter()
	owned.Use(middleware.RequireOwner)

	// --- Избранное и история поиска ---
	owned.HandleFunc("/favorites", favorites.List).Methods(http.MethodGet)
	owned.HandleFunc("/favorites/{pressingId}", favorites.Toggle).Methods(http.MethodPut)
	owned.HandleFunc("/recent-searches", recentSearches.List).Methods(http.MethodGet)
	owned.HandleFunc("/recent-searches", recentSearches.Clear).Methods(http.MethodDelete)

	// --- Сессия анонимного клиента ---
	owned.HandleFunc("/session", session.Get).Methods(http.MethodGet)
	owned.HandleFunc("/session", session.Save).Methods(http.MethodPut)
	owned.HandleFunc("/session", session.Delete).Methods(http.MethodDelete)

	// --- Мастер записи ---
	owned.HandleFunc("/booking-drafts", bookingDrafts.Create).Methods(http.MethodPost)
	owned.HandleFunc("/booking-drafts/{draftId}", bookingDrafts.Get).Methods(http.MethodGet)
	owned.HandleFunc("/booking-drafts/{draftId}", bookingDrafts.Delete).Methods(http.MethodDelete)
	owned.HandleFunc("/booking-drafts/{draftId}/slot", bookingDrafts.SelectSlot).Methods(http.MethodPut)
	owned.HandleFunc("/booking-drafts/{draftId}/address", bookingDrafts.SetAddress).Methods(http.MethodPut)
	owned.HandleFunc("/booking-drafts/{draftId}/step", bookingDrafts.Step).Methods(http.MethodPost)
	owned.HandleFunc("/booking-drafts/{draftId}/submit", bookingDrafts.Submit).Methods(http.MethodPost)

	// ============================================================
	// PROTECTED ROUTES (требуют токен)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.RequireAuth)

	// --- Записи клиента ---
	// /appointments/stats регистрируется раньше /appointments/{appointmentId}
	protected.HandleFunc("/appointments", getAppointments.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/appointments/stats", getAppointmentStats.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/appointments/{appointmentId}", getAppointment.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/appointments/{appointmentId}/cancel", cancelAppointment.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/appointments/{appointmentId}/reschedule", rescheduleAppointment.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/appointments/{appointmentId}/confirm", updateAppointmentStatus.Confirm).Methods(http.MethodPatch)
	protected.HandleFunc("/appointments/{appointmentId}/complete", updateAppointmentStatus.Complete).Methods(http.MethodPatch)

	// --- Управление créneaux (для pressings) ---
	protected.HandleFunc("/pressings/{pressingId}/time-slots", timeSlots.Create).Methods(http.MethodPost)
	protected.HandleFunc("/pressings/{pressingId}/bulk-time-slots", bulkTimeSlots.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/pressings/{pressingId}/slot-stats", timeSlots.Stats).Methods(http.MethodGet)
	protected.HandleFunc("/time-slots/{slotId}", timeSlots.Update).Methods(http.MethodPut)
	protected.HandleFunc("/time-slots/{slotId}", timeSlots.Delete).Methods(http.MethodDelete)
	protected.HandleFunc("/time-slots/{slotId}/toggle-block", timeSlots.ToggleBlock).Methods(http.MethodPatch)

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

	// Отложенные записи истории поиска отбрасываются
	debouncer.Stop()

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

// openStore подключает хранилище предпочтений по драйверу из конфигурации
func openStore(ctx context.Context, cfg *config.Config) (prefsStore.Store, healthHandler.Checker, func(), error) {
	switch cfg.Storage.Driver {
	case config.StorageRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			_ = client.Close()
			return nil, nil, nil, fmt.Errorf("ping redis %s: %w", cfg.Redis.Addr, err)
		}

		check := healthHandler.CheckFunc{
			CheckName: "storage",
			Fn:        func(ctx context.Context) error { return client.Ping(ctx).Err() },
		}
		return prefsStore.NewRedisStore(client), check, func() { _ = client.Close() }, nil

	default:
		db, err := sql.Open(cfg.Storage.Driver, cfg.Storage.DSN)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("open %s: %w", cfg.Storage.Driver, err)
		}

		// Настраиваем connection pool
		db.SetMaxOpenConns(cfg.Storage.MaxOpenConns)
		db.SetMaxIdleConns(cfg.Storage.MaxIdleConns)
		db.SetConnMaxLifetime(time.Duration(cfg.Storage.ConnMaxLifetime) * time.Second)

		if err := db.PingContext(ctx); err != nil {
			_ = db.Close()
			return nil, nil, nil, fmt.Errorf("ping %s: %w", cfg.Storage.Driver, err)
		}

		store := prefsStore.NewSQLStore(db, cfg.Storage.Driver)
		if err := store.Migrate(ctx); err != nil {
			_ = db.Close()
			return nil, nil, nil, err
		}

		check := healthHandler.CheckFunc{CheckName: "storage", Fn: db.PingContext}
		return store, check, func() { _ = db.Close() }, nil
	}
}
