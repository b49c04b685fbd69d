package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/dmehra2102/prod-golang-projects/triagehub/internal/config"
	"github.com/dmehra2102/prod-golang-projects/triagehub/internal/domain/hospital"
	"github.com/dmehra2102/prod-golang-projects/triagehub/internal/domain/patient"
	"github.com/dmehra2102/prod-golang-projects/triagehub/internal/domain/resource"
	v1 "github.com/dmehra2102/prod-golang-projects/triagehub/internal/handler/v1"
	"github.com/dmehra2102/prod-golang-projects/triagehub/internal/middleware"
	"github.com/dmehra2102/prod-golang-projects/triagehub/internal/repository/mongodb"
	"github.com/dmehra2102/prod-golang-projects/triagehub/internal/repository/postgres"
	"github.com/dmehra2102/prod-golang-projects/triagehub/internal/repository/session"
	"github.com/dmehra2102/prod-golang-projects/triagehub/internal/service"
	"github.com/dmehra2102/prod-golang-projects/triagehub/pkg/auth"
	"github.com/dmehra2102/prod-golang-projects/triagehub/pkg/database"
	"github.com/dmehra2102/prod-golang-projects/triagehub/pkg/logger"
	"github.com/dmehra2102/prod-golang-projects/triagehub/pkg/metrics"
	"github.com/dmehra2102/prod-golang-projects/triagehub/pkg/tracer"
)

// repositories groups the storage backends selected by DB_DRIVER.
type repositories struct {
	users     service.UserRepository
	patients  patient.Repository
	hospitals hospital.Repository
	resources resource.Repository
	audit     service.AuditRepository
	close     func(ctx context.Context) error
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "triagehub: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	log, err := logger.New(cfg.Log, cfg.App)
	if err != nil {
		return fmt.Errorf("initialising logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	log.Info("starting application", zap.String("db_driver", cfg.Database.Driver))

	ctx := context.Background()

	tp, err := tracer.Init(ctx, cfg.Tracing, cfg.App.Version)
	if err != nil {
		return fmt.Errorf("initialising tracer: %w", err)
	}

	repos, err := openRepositories(ctx, cfg, log)
	if err != nil {
		return err
	}

	sessions, closeSessions, err := openSessionStore(ctx, cfg.Redis, log)
	if err != nil {
		return err
	}

	m := metrics.NewCollector("triagehub", prometheus.DefaultRegisterer)

	auditSvc := service.NewAuditService(repos.audit, m, log)
	authSvc := service.NewAuthService(repos.users, sessions, auth.NewJWTManager(cfg.JWT), auditSvc, m, log)
	patientSvc := service.NewPatientService(repos.patients, auditSvc, m, log)
	hospitalSvc := service.NewHospitalService(repos.hospitals, auditSvc, m, log)
	resourceSvc := service.NewResourceService(repos.resources, auditSvc, m, log)

	if cfg.App.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := v1.NewRouter(v1.RouterDeps{
		Config:    cfg,
		Log:       log,
		Metrics:   m,
		Gatherer:  prometheus.DefaultGatherer,
		Auth:      middleware.NewAuth(authSvc, cfg.Cookie.Name, log),
		Accounts:  authSvc,
		Patients:  patientSvc,
		Hospitals: hospitalSvc,
		Resources: resourceSvc,
	})

	server := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Info("HTTP server listening", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		log.Error("HTTP server failed", zap.Error(err))
	case sig := <-quit:
		log.Info("shutdown signal received", zap.String("signal", sig.String()))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("server forced to shutdown", zap.Error(err))
	}

	// Requests are drained; flush audit entries before closing storage.
	auditSvc.Shutdown(10 * time.Second)

	if err := tp.Shutdown(shutdownCtx); err != nil {
		log.Warn("tracer shutdown failed", zap.Error(err))
	}
	if err := closeSessions(); err != nil {
		log.Warn("closing session store failed", zap.Error(err))
	}
	if err := repos.close(shutdownCtx); err != nil {
		log.Warn("closing database failed", zap.Error(err))
	}

	log.Info("server gracefully stopped")
	return nil
}

func openRepositories(ctx context.Context, cfg *config.Config, log *zap.Logger) (*repositories, error) {
	switch cfg.Database.Driver {
	case config.DriverMongo:
		client, err := database.ConnectMongo(ctx, cfg.Mongo)
		if err != nil {
			return nil, fmt.Errorf("connecting to mongodb: %w", err)
		}
		db := client.Database(cfg.Mongo.Database)
		if err := database.EnsureIndexes(ctx, db, log); err != nil {
			return nil, fmt.Errorf("creating mongodb indexes: %w", err)
		}
		log.Info("mongodb connected", zap.String("database", cfg.Mongo.Database))

		return &repositories{
			users:     mongodb.NewUserRepository(db),
			patients:  mongodb.NewPatientRepository(db),
			hospitals: mongodb.NewHospitalRepository(db),
			resources: mongodb.NewResourceRepository(db),
			audit:     mongodb.NewAuditRepository(db),
			close:     client.Disconnect,
		}, nil

	default:
		db, err := database.Connect(cfg.Database, log)
		if err != nil {
			return nil, fmt.Errorf("connecting to postgres: %w", err)
		}
		if err := database.Migrate(db, log); err != nil {
			return nil, fmt.Errorf("migrating schema: %w", err)
		}

		return &repositories{
			users:     postgres.NewUserRepository(db),
			patients:  postgres.NewPatientRepository(db),
			hospitals: postgres.NewHospitalRepository(db),
			resources: postgres.NewResourceRepository(db),
			audit:     postgres.NewAuditRepository(db),
			close: func(context.Context) error {
				sqlDB, err := db.DB()
				if err != nil {
					return err
				}
				return sqlDB.Close()
			},
		}, nil
	}
}

// openSessionStore returns the revocation store. Without Redis, logout only
// clears the cookie and tokens stay valid until they expire.
func openSessionStore(ctx context.Context, cfg config.RedisConfig, log *zap.Logger) (service.SessionStore, func() error, error) {
	if !cfg.Enabled {
		log.Warn("redis disabled; session revocation is not enforced")
		return session.NoopStore{}, func() error { return nil }, nil
	}

	rdb, err := database.ConnectRedis(ctx, cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("connecting to redis: %w", err)
	}
	log.Info("redis connected", zap.String("addr", cfg.Addr))

	return session.NewRedisStore(rdb), rdb.Close, nil
}
