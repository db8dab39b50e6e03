package errors

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Behyna/paygate/internal/constants"
	"github.com/Behyna/paygate/internal/metrics"
	"github.com/Behyna/paygate/internal/service"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const rpcPath = "/rpc"

func newApp(m *metrics.Metrics, fail error) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler(rpcPath, zap.NewNop(), m)})
	handler := func(c *fiber.Ctx) error { return fail }
	app.Post(rpcPath, handler)
	app.Get("/other", handler)
	return app
}

func do(t *testing.T, app *fiber.App, method, path, body string) (int, map[string]any) {
	t.Helper()

	resp, err := app.Test(httptest.NewRequest(method, path, strings.NewReader(body)), -1)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&decoded))
	return resp.StatusCode, decoded
}

func TestErrorHandler(t *testing.T) {
	t.Run("Service error becomes an RPC error at 200", func(t *testing.T) {
		m := metrics.NewMetrics(prometheus.NewRegistry())
		app := newApp(m, service.NewServiceErrorWithData(constants.ErrCodeTransactionConflict, "order_id", service.ErrPendingTransactionExists))

		status, body := do(t, app, http.MethodPost, rpcPath, `{"method":"CreateTransaction","id":"x-1"}`)

		assert.Equal(t, http.StatusOK, status)
		assert.Equal(t, "x-1", body["id"])
		rpcErr := body["error"].(map[string]any)
		assert.Equal(t, float64(constants.RPCTransactionConflict), rpcErr["code"])
		assert.Equal(t, "order_id", rpcErr["data"])
		assert.Equal(t, float64(1), testutil.ToFloat64(m.RPCErrorsTotal.WithLabelValues("CreateTransaction", "-31099")))
	})

	t.Run("Unknown failure on the RPC path hides its cause", func(t *testing.T) {
		app := newApp(metrics.NewMetrics(prometheus.NewRegistry()), errors.New("Error 1205: Lock wait timeout"))

		status, body := do(t, app, http.MethodPost, rpcPath, `{"method":"PerformTransaction","id":9}`)

		assert.Equal(t, http.StatusOK, status)
		assert.Equal(t, float64(9), body["id"])
		rpcErr := body["error"].(map[string]any)
		assert.Equal(t, float64(constants.RPCInternalError), rpcErr["code"])
		raw, _ := json.Marshal(rpcErr)
		assert.NotContains(t, string(raw), "1205")
	})

	t.Run("Transport error keeps its status", func(t *testing.T) {
		app := newApp(metrics.NewMetrics(prometheus.NewRegistry()), fiber.ErrRequestEntityTooLarge)

		status, _ := do(t, app, http.MethodPost, rpcPath, `{}`)

		assert.Equal(t, http.StatusRequestEntityTooLarge, status)
	})

	t.Run("Unknown failure elsewhere is a 500", func(t *testing.T) {
		app := newApp(metrics.NewMetrics(prometheus.NewRegistry()), errors.New("boom"))

		status, body := do(t, app, http.MethodGet, "/other", "")

		assert.Equal(t, http.StatusInternalServerError, status)
		assert.Equal(t, "Internal server error", body["error"])
	})
}
