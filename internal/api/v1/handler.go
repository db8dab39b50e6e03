package v1

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Behyna/paygate/internal/account"
	"github.com/Behyna/paygate/internal/api/contract"
	"github.com/Behyna/paygate/internal/api/validator"
	"github.com/Behyna/paygate/internal/config"
	"github.com/Behyna/paygate/internal/constants"
	"github.com/Behyna/paygate/internal/metrics"
	"github.com/Behyna/paygate/internal/model"
	"github.com/Behyna/paygate/internal/service"
	"github.com/Behyna/paygate/pkg/checkout"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

var (
	errMissingMethod  = errors.New("missing method")
	errUnknownMethod  = errors.New("unknown method")
	errReversedPeriod = errors.New("statement period ends before it starts")
)

type Handler struct {
	logger          *zap.Logger
	merchantService service.MerchantService
	accounts        account.Resolver
	XValidator      validator.IXValidator
	metrics         *metrics.Metrics
	checkout        checkout.Config
}

func NewHandler(logger *zap.Logger, merchantService service.MerchantService, accounts account.Resolver,
	XValidator validator.IXValidator, metrics *metrics.Metrics, cfg *config.Config) *Handler {
	return &Handler{
		logger:          logger,
		merchantService: merchantService,
		accounts:        accounts,
		XValidator:      XValidator,
		metrics:         metrics,
		checkout:        cfg.Checkout,
	}
}

func (h *Handler) Pong(c *fiber.Ctx) error {
	return c.SendString("pong")
}

// Webhook serves the provider's RPC envelope. Failures are returned as service errors and encoded by the
// error handler, so every parsed or unparsed envelope is answered with HTTP 200.
func (h *Handler) Webhook(c *fiber.Ctx) error {
	start := time.Now()

	var req contract.Request
	if err := json.Unmarshal(c.Body(), &req); err != nil {
		h.logger.Warn("Unparseable webhook envelope", zap.Error(err), requestID(c))
		h.metrics.RecordRPC("unknown", "invalid_request")
		return service.NewServiceError(constants.ErrCodeInvalidRequest, err)
	}

	c.Locals(contract.RPCIDKey, req.ID)

	if req.Method == "" {
		h.metrics.RecordRPC("unknown", "invalid_request")
		return service.NewServiceError(constants.ErrCodeInvalidRequest, errMissingMethod)
	}

	result, err := h.dispatch(c.UserContext(), req)
	if err != nil {
		h.metrics.RecordRPC(methodLabel(req.Method), "error")
		return err
	}

	h.metrics.RecordRPC(req.Method, "success")

	h.logger.Info("Webhook served",
		zap.String("method", req.Method),
		zap.Duration("duration", time.Since(start)),
		requestID(c),
	)

	return c.JSON(contract.RPCResponse{Result: result, ID: req.ID})
}

func (h *Handler) dispatch(ctx context.Context, req contract.Request) (any, error) {
	switch req.Method {
	case service.MethodCheckPerformTransaction:
		var params CheckPerformTransactionRequest
		if err := h.bind(req, &params); err != nil {
			return nil, err
		}

		res, err := h.merchantService.CheckPerformTransaction(ctx, service.CheckPerformCommand{
			OrderID: params.Account.OrderID,
			Amount:  params.Amount,
		})
		if err != nil {
			return nil, err
		}

		return CheckPerformTransactionResponse{Allow: res.Allow}, nil

	case service.MethodCreateTransaction:
		var params CreateTransactionRequest
		if err := h.bind(req, &params); err != nil {
			return nil, err
		}

		res, err := h.merchantService.CreateTransaction(ctx, service.CreateTransactionCommand{
			ExternalID: params.ID,
			OrderID:    params.Account.OrderID,
			Amount:     params.Amount,
			Time:       contract.FromUnixMillis(params.Time),
		})
		if err != nil {
			return nil, err
		}

		return newCreateTransactionResponse(res.Transaction), nil

	case service.MethodPerformTransaction:
		var params PerformTransactionRequest
		if err := h.bind(req, &params); err != nil {
			return nil, err
		}

		res, err := h.merchantService.PerformTransaction(ctx, service.PerformTransactionCommand{ExternalID: params.ID})
		if err != nil {
			return nil, err
		}

		return newPerformTransactionResponse(res.Transaction), nil

	case service.MethodCancelTransaction:
		var params CancelTransactionRequest
		if err := h.bind(req, &params); err != nil {
			return nil, err
		}

		res, err := h.merchantService.CancelTransaction(ctx, service.CancelTransactionCommand{
			ExternalID: params.ID,
			Reason:     model.CancelReason(params.Reason),
		})
		if err != nil {
			return nil, err
		}

		return newCancelTransactionResponse(res.Transaction), nil

	case service.MethodCheckTransaction:
		var params CheckTransactionRequest
		if err := h.bind(req, &params); err != nil {
			return nil, err
		}

		res, err := h.merchantService.CheckTransaction(ctx, service.CheckTransactionCommand{ExternalID: params.ID})
		if err != nil {
			return nil, err
		}

		return newCheckTransactionResponse(res.Transaction), nil

	case service.MethodGetStatement:
		var params GetStatementRequest
		if err := h.bind(req, &params); err != nil {
			return nil, err
		}
		if *params.To < *params.From {
			return nil, service.NewServiceErrorWithData(constants.ErrCodeInvalidRequest, "to", errReversedPeriod)
		}

		res, err := h.merchantService.GetStatement(ctx, service.GetStatementCommand{
			From: contract.FromUnix(*params.From),
			To:   contract.FromUnix(*params.To),
		})
		if err != nil {
			return nil, err
		}

		return newGetStatementResponse(res.Transactions), nil
	}

	h.logger.Warn("Unknown webhook method", zap.String("method", req.Method))
	return nil, service.NewServiceError(constants.ErrCodeMethodNotFound, fmt.Errorf("%w: %s", errUnknownMethod, req.Method))
}

func (h *Handler) bind(req contract.Request, dst any) error {
	err := h.XValidator.Bind(req.Params, dst)
	if err == nil {
		return nil
	}

	h.logger.Warn("Invalid webhook params", zap.String("method", req.Method), zap.Error(err))

	var validationErr *validator.ValidationError
	if errors.As(err, &validationErr) {
		return service.NewServiceErrorWithData(constants.ErrCodeInvalidRequest, validationErr.Field(), err)
	}

	return service.NewServiceError(constants.ErrCodeInvalidRequest, err)
}

// Checkout redirects a user to the provider's hosted checkout page for their account.
func (h *Handler) Checkout(c *fiber.Ctx) error {
	req := CheckoutRequest{AccountRef: c.Params("accountRef")}

	if errs := h.XValidator.Validate(&req); len(errs) > 0 {
		h.logger.Error("Error Validator", zap.Any("request", req))
		return c.Status(fiber.StatusBadRequest).JSON(contract.ResponseError{
			Code:    constants.ErrCodeValidationFailed,
			Message: fmt.Sprintf(constants.MessageErrorFormat, errs[0].FailedField),
		})
	}

	if h.checkout.MerchantID == "" {
		return c.Status(fiber.StatusServiceUnavailable).JSON(contract.ResponseError{
			Code:    constants.ErrCodeCheckoutNotConfigured,
			Message: constants.ErrMsgCheckoutNotConfigured,
		})
	}

	payer, err := h.accounts.Resolve(c.UserContext(), req.AccountRef)
	switch {
	case errors.Is(err, account.ErrAccountNotFound):
		return c.Status(fiber.StatusNotFound).JSON(contract.ResponseError{
			Code:    constants.ErrCodeAccountNotFound,
			Message: constants.ErrMsgAccountNotFound,
		})
	case errors.Is(err, account.ErrAccountNotPayable):
		return c.Status(fiber.StatusForbidden).JSON(contract.ResponseError{
			Code:    constants.ErrCodeAccountNotPayable,
			Message: constants.ErrMsgAccountNotPayable,
		})
	case err != nil:
		h.logger.Error("Error resolving checkout account", zap.String("accountRef", req.AccountRef), zap.Error(err))
		return err
	}

	target := checkout.URL(h.checkout.BaseURL(), h.checkout.Params(req.AccountRef, payer.Amount))

	h.logger.Info("Redirecting to checkout",
		zap.String("accountRef", req.AccountRef),
		zap.Int64("amount", payer.Amount),
		requestID(c),
	)

	return c.Redirect(target, fiber.StatusFound)
}

func methodLabel(method string) string {
	if !service.KnownMethod(method) {
		return "unknown"
	}
	return method
}

func requestID(c *fiber.Ctx) zap.Field {
	id, _ := c.Locals(contract.RequestIDKey).(string)
	return zap.String("requestID", id)
}
