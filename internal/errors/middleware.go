package errors

import (
	"encoding/json"
	"errors"

	"github.com/Behyna/paygate/internal/api/contract"
	"github.com/Behyna/paygate/internal/constants"
	"github.com/Behyna/paygate/internal/metrics"
	"github.com/Behyna/paygate/internal/service"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// ErrorHandler answers service errors with an HTTP 200 RPC error envelope. Transport errors keep their status;
// any other failure on rpcPath is logged and reported as an internal error without its cause.
func ErrorHandler(rpcPath string, logger *zap.Logger, m *metrics.Metrics) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var serviceErr service.Error
		if errors.As(err, &serviceErr) {
			return handleServiceError(c, serviceErr, logger, m)
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return c.Status(fiberErr.Code).JSON(fiber.Map{
				"error":   fiberErr.Message,
				"message": "Could not process the request",
			})
		}

		if c.Path() == rpcPath {
			logger.Error("Unhandled webhook failure", zap.String("path", c.Path()), zap.Error(err))
			return handleServiceError(c, service.Error{Code: constants.ErrCodeInternalError, Cause: err}, logger, m)
		}

		logger.Error("Unhandled request failure", zap.String("path", c.Path()), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error":   "Internal server error",
			"message": "Could not process the request",
		})
	}
}

func handleServiceError(c *fiber.Ctx, err service.Error, logger *zap.Logger, m *metrics.Metrics) error {
	res := contract.NewRPCError(err.Code, err.Data, rpcID(c))

	m.RecordRPCError(methodOf(c), res.Error.Code)

	if err.Code == constants.ErrCodeInternalError {
		logger.Error("Webhook internal error", zap.Error(err.Cause))
	} else {
		logger.Info("Webhook rejected",
			zap.String("kind", err.Code),
			zap.Int("code", res.Error.Code),
			zap.String("data", err.Data),
			zap.NamedError("cause", err.Cause))
	}

	return c.Status(fiber.StatusOK).JSON(res)
}

// rpcID returns the id parsed by the webhook handler, or reads it from the body when a middleware failed first.
func rpcID(c *fiber.Ctx) json.RawMessage {
	if id, ok := c.Locals(contract.RPCIDKey).(json.RawMessage); ok {
		return id
	}

	var envelope struct {
		ID json.RawMessage `json:"id"`
	}
	if err := json.Unmarshal(c.Body(), &envelope); err != nil {
		return nil
	}

	return envelope.ID
}

func methodOf(c *fiber.Ctx) string {
	var envelope struct {
		Method string `json:"method"`
	}
	if err := json.Unmarshal(c.Body(), &envelope); err != nil || envelope.Method == "" {
		return "unknown"
	}

	if !service.KnownMethod(envelope.Method) {
		return "unknown"
	}
	return envelope.Method
}
