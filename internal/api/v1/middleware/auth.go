package middleware

import (
	"errors"

	"github.com/Behyna/paygate/internal/config"
	"github.com/Behyna/paygate/internal/constants"
	"github.com/Behyna/paygate/internal/service"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/basicauth"
	"go.uber.org/zap"
)

var ErrUnauthorized = errors.New("provider credentials rejected")

// ProviderAuth checks the provider's basic credentials. An empty key disables the check.
func ProviderAuth(cfg config.Payme, logger *zap.Logger) fiber.Handler {
	if cfg.Key == "" {
		logger.Warn("Provider key is empty, webhook authorization is disabled")
		return func(c *fiber.Ctx) error {
			return c.Next()
		}
	}

	return basicauth.New(basicauth.Config{
		Users: map[string]string{cfg.Login: cfg.Key},
		Unauthorized: func(c *fiber.Ctx) error {
			logger.Warn("Rejected webhook call", zap.String("ip", c.IP()))
			return service.NewServiceError(constants.ErrCodeInsufficientPrivilege, ErrUnauthorized)
		},
	})
}
