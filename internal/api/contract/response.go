package contract

import (
	"encoding/json"

	"github.com/Behyna/paygate/internal/constants"
)

// Fiber locals keys shared by middleware, handlers and the error handler.
const (
	RPCIDKey     = "rpc_id"
	RequestIDKey = "requestid"
)

// Request is the provider's call envelope. ID is echoed back verbatim, string or number.
type Request struct {
	Method string          `json:"method"`
	Params json.RawMessage `json:"params"`
	ID     json.RawMessage `json:"id"`
}

type RPCResponse struct {
	Result any             `json:"result"`
	ID     json.RawMessage `json:"id"`
}

type RPCError struct {
	Code    int               `json:"code"`
	Message constants.Message `json:"message"`
	Data    string            `json:"data,omitempty"`
}

type RPCErrorResponse struct {
	Error RPCError        `json:"error"`
	ID    json.RawMessage `json:"id"`
}

// NewRPCError encodes an error kind. A nil id is emitted as null.
func NewRPCError(kind, data string, id json.RawMessage) RPCErrorResponse {
	return RPCErrorResponse{
		Error: RPCError{
			Code:    constants.GetRPCCode(kind),
			Message: constants.GetErrorMessage(kind),
			Data:    data,
		},
		ID: id,
	}
}

type ResponseError struct {
	Successful bool   `json:"successful"`
	Code       string `json:"code"`
	Message    string `json:"message"`
}
