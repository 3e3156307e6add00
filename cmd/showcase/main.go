package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	pkgdb "github.com/Skotchmaster/showcase/pkg/db"
	"github.com/Skotchmaster/showcase/pkg/logging"
	middleware "github.com/Skotchmaster/showcase/pkg/middleware/auth"
	"github.com/Skotchmaster/showcase/pkg/middleware/csrf"
	loggingmw "github.com/Skotchmaster/showcase/pkg/middleware/logging"

	showcasecfg "github.com/Skotchmaster/showcase/internal/config"
	"github.com/Skotchmaster/showcase/internal/events"
	"github.com/Skotchmaster/showcase/internal/httpserver"
	"github.com/Skotchmaster/showcase/internal/repo"
	"github.com/Skotchmaster/showcase/internal/search"
	"github.com/Skotchmaster/showcase/internal/service"
	"github.com/Skotchmaster/showcase/internal/unlock"
)

const gateIdleTimeout = 30 * time.Minute

func main() {
	showcasecfg.LoadEnvFile(".env")
	cfg := showcasecfg.Load()

	logger := logging.New(cfg.LogLevel, cfg.LogFormat).With("service", cfg.ServiceName)
	slog.SetDefault(logger)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	db, err := pkgdb.Open(ctx, cfg.DBDriver, cfg.DatabaseURL)
	if err != nil {
		cancel()
		log.Fatalf("db open: %v", err)
	}

	store := &repo.GormRepo{DB: db}
	if err := store.Migrate(ctx); err != nil {
		cancel()
		log.Fatalf("db migrate: %v", err)
	}
	if cfg.SeedDefaults {
		if err := store.SeedDefaults(ctx, cfg.AdminDefaultCode); err != nil {
			cancel()
			log.Fatalf("db seed: %v", err)
		}
	}
	cancel()

	var (
		publisher events.Publisher = events.Nop{}
		producer  *events.Producer
	)
	if len(cfg.KafkaBrokers) > 0 {
		if err := events.EnsureTopics(cfg.KafkaBrokers[0], cfg.KafkaTopicCatalog, cfg.KafkaTopicClicks); err != nil {
			logger.Warn("kafka_topics_not_ensured", "error", err)
		}
		producer = events.NewProducer(cfg.KafkaBrokers, logger)
		publisher = producer
	}

	var index search.Indexer = search.Nop{}
	if cfg.ESURL != "" {
		es, err := search.NewClient(search.Config{URL: cfg.ESURL, User: cfg.ESUser, Password: cfg.ESPassword, Index: cfg.ESIndex})
		if err != nil {
			logger.Warn("search_disabled", "error", err)
		} else {
			ensureCtx, ensureCancel := context.WithTimeout(context.Background(), 10*time.Second)
			if err := es.EnsureIndex(ensureCtx); err != nil {
				logger.Warn("search_index_not_ensured", "error", err)
			}
			ensureCancel()
			index = es
		}
	}

	var renamer service.CategoryRenamer = service.NameOnly{}
	if cfg.CascadeCategoryRename {
		renamer = service.CascadingRename{}
	}

	catalog := &service.CatalogService{
		Repo:    store,
		Renamer: renamer,
		Index:   index,
		Notify:  service.Notifier{Events: publisher, Topic: cfg.KafkaTopicCatalog},
	}
	banners := &service.BannerService{
		Repo:   store,
		Notify: service.Notifier{Events: publisher, Topic: cfg.KafkaTopicCatalog},
	}
	settings := &service.SettingsService{Repo: store, DefaultCode: cfg.AdminDefaultCode}
	analytics := &service.AnalyticsService{
		Repo:   store,
		Notify: service.Notifier{Events: publisher, Topic: cfg.KafkaTopicClicks, Async: true},
	}

	gates := unlock.NewRegistry(settings, unlock.SystemClock{}, gateIdleTimeout)

	var csrfMW echo.MiddlewareFunc
	if cfg.CSRFEnabled {
		csrfCfg := csrf.DefaultConfig()
		csrfCfg.Secure = cfg.SecureCookies
		csrfMW = csrf.Middleware(csrfCfg)
	}

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Recover())
	e.Use(echomw.RequestID())
	e.Use(loggingmw.RequestLogger(logger, "/health"))
	e.Use(echomw.CORS())

	httpserver.Register(e, &httpserver.Deps{
		CatalogHandler: &httpserver.CatalogHTTP{Svc: catalog, Analytics: analytics},
		BannerHandler:  &httpserver.BannerHTTP{Svc: banners},
		AdminHandler:   &httpserver.AdminHTTP{Settings: settings, Analytics: analytics},
		GateHandler: &httpserver.GateHTTP{
			Gates:      gates,
			Secret:     cfg.AdminJWTSecret,
			SessionTTL: cfg.AdminSessionTTL,
			Secure:     cfg.SecureCookies,
		},
		AdminAuth: middleware.NewAdminSessionMiddleware(cfg.AdminJWTSecret, cfg.SecureCookies),
		CSRF:      csrfMW,
		Ready:     store.Ping,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           e,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      15 * time.Second,
		ReadHeaderTimeout: 3 * time.Second,
	}

	sweepDone := make(chan struct{})
	go func() {
		ticker := time.NewTicker(10 * time.Minute)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if n := gates.Sweep(); n > 0 {
					logger.Debug("gates_swept", "removed", n)
				}
			case <-sweepDone:
				return
			}
		}
	}()

	go func() {
		logger.Info("showcase_listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	_ = srv.Shutdown(shutdownCtx)
	close(sweepDone)

	if producer != nil {
		if err := producer.Close(); err != nil {
			logger.Warn("kafka_close_failed", "error", err)
		}
	}
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}

	logger.Info("showcase_stopped")
}
