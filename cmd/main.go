package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/securecookie"
	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/shenikar/border_alert_system/internal/config"
	"github.com/shenikar/border_alert_system/internal/events"
	v1 "github.com/shenikar/border_alert_system/internal/handler/http/v1"
	"github.com/shenikar/border_alert_system/internal/observability"
	"github.com/shenikar/border_alert_system/internal/repository"
	"github.com/shenikar/border_alert_system/internal/service"
	"github.com/shenikar/border_alert_system/pkg/logger"
	redisclient "github.com/shenikar/border_alert_system/pkg/redis"

	_ "github.com/shenikar/border_alert_system/docs"
	"github.com/sirupsen/logrus"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title Border Alert System API
// @version 1.0
// @description Incident reporting and proximity alerting for border patrol officers.
// @host localhost:8080
// @BasePath /api/v1
// @securityDefinitions.apikey SessionToken
// @in header
// @name X-Session-Token
func main() {
	// Загрузка конфигурации
	cfg, err := config.LoadConfig()
	if err != nil {
		logrus.Fatalf("Failed to load config: %v", err)
	}

	// Инициализация логгера
	log := logger.New(cfg.LogLevel)

	// Контекст для graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	clock := clockwork.NewRealClock()
	metrics := observability.NewMetrics()

	// Журнал событий в Redis включается только при заданном REDIS_ADDR
	var publisher events.Publisher = events.NoopPublisher{}
	var journal *events.RedisPublisher
	if cfg.JournalEnabled() {
		redisClient, err := redisclient.NewRedisClient(ctx, cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
		if err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		defer redisClient.Close()
		log.Info("Successfully connected to Redis")

		journal = events.NewRedisPublisher(redisClient, cfg.EventJournalKey, cfg.EventJournalMaxLen)
		publisher = journal
	} else {
		log.Info("REDIS_ADDR not set, event journal disabled")
	}

	// Инициализация репозиториев
	now := clock.Now().UTC()
	incidentRepo := repository.NewIncidentRepository(repository.SeedIncidents(now))
	userRepo := repository.NewUserRepository(repository.SeedUsers())
	zoneRepo := repository.NewZoneRepository(repository.SeedZones())

	// Инициализация сервисов
	incidentService := service.NewIncidentService(incidentRepo, publisher, metrics, log, clock)
	sessionService := service.NewSessionManager(userRepo, incidentRepo, publisher, metrics, log, clock, service.SessionConfig{
		AlertRadiusKm:    cfg.AlertRadiusKm,
		AlertProbability: cfg.AlertProbability,
		TickInterval:     cfg.AlertTickInterval,
		SeedAlerts:       repository.SeedAlerts,
	})
	defer sessionService.Close()

	// Ключ cookie: без SESSION_SECRET сессии не переживают перезапуск
	secret := []byte(cfg.SessionSecret)
	if len(secret) == 0 {
		log.Warn("SESSION_SECRET not set, generating an ephemeral cookie key")
		secret = securecookie.GenerateRandomKey(32)
	}

	// Инициализация хэндлеров
	handler := v1.NewHandler(incidentService, sessionService, zoneRepo, v1.NewCookieStore(secret), log)
	if journal != nil {
		handler.WithJournal(journal)
	}

	// Настройка Gin роутера
	router := gin.New()
	router.Use(gin.Recovery(), logger.RequestLogger(log))
	api := router.Group("/api/v1")
	handler.RegisterRoutes(api)

	// Метрики Prometheus и Swagger UI
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Запуск HTTP-сервера
	serverAddr := fmt.Sprintf(":%s", cfg.HTTPPort)

	srv := &http.Server{
		Addr:    serverAddr,
		Handler: router,
	}

	// Запуск сервера в горутине
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Error starting HTTP server: %v", err)
		}
	}()
	log.Infof("HTTP server started on port %s", cfg.HTTPPort)

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Received shutdown signal, shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Errorf("Server forced to shutdown: %v", err)
	}

	log.Info("Server gracefully stopped")
}
