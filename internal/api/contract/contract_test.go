package contract

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/Behyna/paygate/internal/constants"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRPCError(t *testing.T) {
	t.Run("Echoes string id and data", func(t *testing.T) {
		body, err := json.Marshal(NewRPCError(constants.ErrCodeInvalidAccount, "order_id", json.RawMessage(`"abc"`)))
		require.NoError(t, err)

		var decoded map[string]any
		require.NoError(t, json.Unmarshal(body, &decoded))

		assert.Equal(t, "abc", decoded["id"])
		rpcErr := decoded["error"].(map[string]any)
		assert.Equal(t, float64(constants.RPCInvalidAccount), rpcErr["code"])
		assert.Equal(t, "order_id", rpcErr["data"])
		assert.Contains(t, rpcErr["message"], "uz")
	})

	t.Run("Missing id is null and data is omitted", func(t *testing.T) {
		body, err := json.Marshal(NewRPCError(constants.ErrCodeMethodNotFound, "", nil))
		require.NoError(t, err)

		assert.JSONEq(t, `{"error":{"code":-32601,"message":{"ru":"Запрашиваемый метод не найден","uz":"So'ralgan metod topilmadi","en":"Requested method not found"}},"id":null}`, string(body))
	})

	t.Run("Numeric id is echoed unchanged", func(t *testing.T) {
		body, err := json.Marshal(RPCResponse{Result: map[string]bool{"allow": true}, ID: json.RawMessage(`1234`)})
		require.NoError(t, err)
		assert.JSONEq(t, `{"result":{"allow":true},"id":1234}`, string(body))
	})
}

func TestUnixTime(t *testing.T) {
	created := FromUnixMillis(1700000000000)

	assert.Equal(t, int64(1700000000), UnixTime(created))
	assert.Equal(t, int64(0), UnixTime(time.Time{}))
	assert.Equal(t, int64(0), UnixTimePtr(nil))
	assert.Equal(t, int64(1700000000), UnixTimePtr(&created))
	assert.Equal(t, created, FromUnix(1700000000))
}
