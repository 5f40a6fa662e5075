package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	partnerapp "github.com/optica/backend/internal/application/partner"
	"github.com/optica/backend/internal/infrastructure/config"
	"github.com/optica/backend/internal/infrastructure/event"
	"github.com/optica/backend/internal/infrastructure/locale"
	"github.com/optica/backend/internal/infrastructure/logger"
	"github.com/optica/backend/internal/infrastructure/migration"
	"github.com/optica/backend/internal/infrastructure/persistence"
	"github.com/optica/backend/internal/infrastructure/postalcode"
	"github.com/optica/backend/internal/interfaces/http/handler"
	"github.com/optica/backend/internal/interfaces/http/middleware"
	"github.com/optica/backend/internal/interfaces/http/router"
	"github.com/optica/backend/migrations"
)

//	@title			Optica Backend API
//	@version		1.0
//	@description	Customer registry, masks, locale formatting and CEP lookup for the store front desk
//	@BasePath		/api/v1

const (
	slowQueryThreshold = 200 * time.Millisecond
	requestTimeout     = 30 * time.Second
	shutdownTimeout    = 30 * time.Second
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: cfg.Log.TimeFormat,
		Service:    cfg.App.Name,
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer logger.Sync(log)

	log.Info("Starting Optica Backend",
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
		zap.String("version", cfg.App.Version),
	)

	gormLog := logger.NewGormLogger(log, logger.GormLevel(cfg.Log.Level), slowQueryThreshold)
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	if cfg.Database.AutoMigrate {
		if err := migrate(db, log); err != nil {
			log.Fatal("Failed to apply migrations", zap.Error(err))
		}
	}

	formatter, err := locale.New(locale.Config{
		Language: cfg.Locale.Language,
		Currency: cfg.Locale.Currency,
		Timezone: cfg.Locale.Timezone,
	})
	if err != nil {
		log.Fatal("Invalid locale configuration", zap.Error(err))
	}

	cepClient, err := postalcode.NewClient(&postalcode.Config{BaseURL: cfg.PostalCode.BaseURL}, log)
	if err != nil {
		log.Fatal("Invalid postal code configuration", zap.Error(err))
	}

	eventBus := event.NewInMemoryEventBus(log)
	eventBus.Subscribe(event.NewAuditHandler(log))
	if err := eventBus.Start(context.Background()); err != nil {
		log.Fatal("Failed to start event bus", zap.Error(err))
	}

	customerService := partnerapp.NewCustomerService(
		persistence.NewGormCustomerRepository(db.DB),
		partnerapp.WithAddressLookup(cepClient),
		partnerapp.WithEventPublisher(eventBus),
		partnerapp.WithLogger(log.Named("customers")),
	)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	middleware.SetupValidator()

	engine := gin.New()
	if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
		log.Fatal("Invalid trusted proxies", zap.Error(err))
	}

	corsCfg := middleware.DefaultCORSConfig()
	corsCfg.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	corsCfg.AllowMethods = cfg.HTTP.CORSAllowMethods
	corsCfg.AllowHeaders = cfg.HTTP.CORSAllowHeaders

	securityCfg := middleware.DefaultSecurityConfig()
	securityCfg.HSTSEnabled = cfg.IsProduction()

	engine.Use(
		middleware.RequestID(),
		logger.GinMiddleware(log),
		logger.Recovery(log),
		middleware.CORSWithConfig(corsCfg),
		middleware.SecureWithConfig(securityCfg),
		middleware.BodyLimit(cfg.HTTP.MaxBodySize),
		middleware.Timeout(requestTimeout),
	)

	routes := router.Mount(engine, router.Handlers{
		System:   handler.NewSystemHandler(cfg.App.Name, cfg.App.Version, db),
		Masks:    handler.NewMaskHandler(),
		Format:   handler.NewFormatHandler(formatter),
		Address:  handler.NewAddressHandler(cepClient),
		Customer: handler.NewCustomerHandler(customerService),
	})
	log.Debug("Routes registered", zap.Int("count", len(routes)))

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}
	if err := eventBus.Stop(ctx); err != nil {
		log.Error("Failed to stop event bus", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}

// migrate applies the embedded migrations on the server's own pool
func migrate(db *persistence.Database, log *zap.Logger) error {
	sqlDB, err := db.SQL()
	if err != nil {
		return err
	}
	m, err := migration.NewEmbedded(sqlDB, migrations.FS, log.Named("migrate"))
	if err != nil {
		return err
	}
	// Close would also close the shared pool
	return m.Up()
}
