package main

import (
	"context"
	"time"

	"github.com/Behyna/paygate/internal/account"
	"github.com/Behyna/paygate/internal/api"
	v1 "github.com/Behyna/paygate/internal/api/v1"
	"github.com/Behyna/paygate/internal/api/v1/middleware"
	"github.com/Behyna/paygate/internal/api/validator"
	"github.com/Behyna/paygate/internal/config"
	"github.com/Behyna/paygate/internal/database"
	apperrors "github.com/Behyna/paygate/internal/errors"
	"github.com/Behyna/paygate/internal/metrics"
	"github.com/Behyna/paygate/internal/repository"
	"github.com/Behyna/paygate/internal/service"
	playground "github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

const (
	serviceName           = "paygate"
	dbStatsInterval       = 15 * time.Second
	serverShutdownTimeout = 10 * time.Second
)

func main() {
	fx.New(
		fx.Provide(
			config.Load,
			newLogger,
			database.NewDatabase,
			newRegistry,
			metrics.NewMetrics,
			metrics.NewDatabaseMetricsCollector,
			repository.NewTransactionManager,
			repository.NewTransactionRepository,
			repository.NewUserRepository,
			newAccountResolver,
			newMerchantService,
			newValidate,
			validator.NewXValidator,
			v1.NewHandler,
			newApp,
		),
		fx.Invoke(
			registerRoutes,
			registerDatabaseCollector,
			registerServer,
		),
	).Run()
}

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	if cfg.Log.Development {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

// newRegistry exposes the default registry both ways so /metrics also serves the Go and process collectors.
func newRegistry() (prometheus.Registerer, prometheus.Gatherer) {
	return prometheus.DefaultRegisterer, prometheus.DefaultGatherer
}

func newValidate() *playground.Validate {
	return playground.New()
}

func newAccountResolver(users repository.UserRepository, cfg *config.Config, logger *zap.Logger) account.Resolver {
	return account.NewUserResolver(users, cfg.Payme.Price, logger)
}

func newMerchantService(txRepo repository.TransactionRepository, txManager repository.TxManager,
	accounts account.Resolver, cfg *config.Config, m *metrics.Metrics, logger *zap.Logger) service.MerchantService {
	return service.NewMerchantService(txRepo, txManager, accounts, cfg, m, logger)
}

func newApp(logger *zap.Logger, m *metrics.Metrics, dbCollector *metrics.DatabaseMetricsCollector) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      serviceName,
		ErrorHandler: apperrors.ErrorHandler(api.WebhookPath, logger, m),
	})

	app.Use(
		recover.New(),
		middleware.RequestID(),
		middleware.HTTPMetricsMiddleware(m, logger),
		middleware.HealthCheckMiddleware(serviceName, dbCollector, logger),
	)

	return app
}

func registerRoutes(app *fiber.App, handler *v1.Handler, cfg *config.Config, gatherer prometheus.Gatherer, logger *zap.Logger) {
	api.SetupRoutes(app, handler, cfg, gatherer, logger)
}

func registerDatabaseCollector(lc fx.Lifecycle, collector *metrics.DatabaseMetricsCollector) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			collector.Start(dbStatsInterval)
			return nil
		},
		OnStop: func(ctx context.Context) error {
			collector.Stop()
			return nil
		},
	})
}

func registerServer(lc fx.Lifecycle, app *fiber.App, cfg *config.Config, logger *zap.Logger) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := app.Listen(cfg.API.Port); err != nil {
					logger.Error("HTTP server stopped", zap.Error(err))
				}
			}()
			logger.Info("HTTP server starting", zap.String("port", cfg.API.Port))
			return nil
		},
		OnStop: func(ctx context.Context) error {
			logger.Info("HTTP server shutting down")
			return app.ShutdownWithTimeout(serverShutdownTimeout)
		},
	})
}
