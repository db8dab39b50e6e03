package api

import (
	v1 "github.com/Behyna/paygate/internal/api/v1"
	"github.com/Behyna/paygate/internal/api/v1/middleware"
	"github.com/Behyna/paygate/internal/config"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

const (
	prefixPayment = "/api/payment/"

	WebhookPath = prefixPayment + "webhook"
)

func SetupRoutes(app *fiber.App, handler *v1.Handler, cfg *config.Config, gatherer prometheus.Gatherer, logger *zap.Logger) {
	app.Get("/ping", handler.Pong)
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))

	app.Post(WebhookPath,
		middleware.ProviderAuth(cfg.Payme, logger),
		middleware.Timeout(cfg.Payme.Timeout),
		handler.Webhook,
	)
	app.Get(prefixPayment+"checkout/:accountRef", middleware.Timeout(cfg.Payme.Timeout), handler.Checkout)
}
