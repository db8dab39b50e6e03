package constants

// Error kinds. Several kinds share a protocol code, so the kind is the key for both tables below.
const (
	ErrCodeMethodNotFound        = "METHOD_NOT_FOUND"
	ErrCodeInvalidRequest        = "INVALID_REQUEST"
	ErrCodeInsufficientPrivilege = "INSUFFICIENT_PRIVILEGE"
	ErrCodeInternalError         = "INTERNAL_ERROR"
	ErrCodeTransactionNotFound   = "TRANSACTION_NOT_FOUND"
	ErrCodeInvalidState          = "INVALID_STATE"
	ErrCodeInvalidAmount         = "INVALID_AMOUNT"
	ErrCodeInvalidAccount        = "INVALID_ACCOUNT"
	ErrCodeTransactionConflict   = "TRANSACTION_CONFLICT"
)

// Protocol codes dictated by the provider.
const (
	RPCMethodNotFound        = -32601
	RPCInvalidRequest        = -32600
	RPCInsufficientPrivilege = -32504
	RPCInternalError         = -31008
	RPCTransactionNotFound   = -31003
	RPCInvalidState          = -31008
	RPCInvalidAmount         = -31001
	RPCInvalidAccount        = -31050
	RPCTransactionConflict   = -31099
)

type Message struct {
	Ru string `json:"ru"`
	Uz string `json:"uz"`
	En string `json:"en"`
}

var rpcCodes = map[string]int{
	ErrCodeMethodNotFound:        RPCMethodNotFound,
	ErrCodeInvalidRequest:        RPCInvalidRequest,
	ErrCodeInsufficientPrivilege: RPCInsufficientPrivilege,
	ErrCodeInternalError:         RPCInternalError,
	ErrCodeTransactionNotFound:   RPCTransactionNotFound,
	ErrCodeInvalidState:          RPCInvalidState,
	ErrCodeInvalidAmount:         RPCInvalidAmount,
	ErrCodeInvalidAccount:        RPCInvalidAccount,
	ErrCodeTransactionConflict:   RPCTransactionConflict,
}

var errorMessages = map[string]Message{
	ErrCodeMethodNotFound: {
		Ru: "Запрашиваемый метод не найден",
		Uz: "So'ralgan metod topilmadi",
		En: "Requested method not found",
	},
	ErrCodeInvalidRequest: {
		Ru: "Неверный запрос",
		Uz: "Noto'g'ri so'rov",
		En: "Invalid request",
	},
	ErrCodeInsufficientPrivilege: {
		Ru: "Недостаточно привилегий для выполнения метода",
		Uz: "Metodni bajarish uchun huquqlar yetarli emas",
		En: "Insufficient privileges to perform this method",
	},
	ErrCodeInternalError: {
		Ru: "Внутренняя ошибка сервера",
		Uz: "Serverning ichki xatosi",
		En: "Internal server error",
	},
	ErrCodeTransactionNotFound: {
		Ru: "Транзакция не найдена",
		Uz: "Tranzaksiya topilmadi",
		En: "Transaction not found",
	},
	ErrCodeInvalidState: {
		Ru: "Невозможно выполнить операцию в текущем состоянии транзакции",
		Uz: "Tranzaksiyaning joriy holatida amalni bajarib bo'lmaydi",
		En: "Unable to perform operation in the current transaction state",
	},
	ErrCodeInvalidAmount: {
		Ru: "Неверная сумма",
		Uz: "Noto'g'ri summa",
		En: "Invalid amount",
	},
	ErrCodeInvalidAccount: {
		Ru: "Заказ не найден",
		Uz: "Buyurtma topilmadi",
		En: "Order not found",
	},
	ErrCodeTransactionConflict: {
		Ru: "По заказу уже есть незавершенная транзакция",
		Uz: "Buyurtma bo'yicha tugallanmagan tranzaksiya mavjud",
		En: "Order already has a pending transaction",
	},
}

// GetRPCCode returns the protocol code for a kind; unknown kinds are internal errors.
func GetRPCCode(code string) int {
	if rpc, exists := rpcCodes[code]; exists {
		return rpc
	}
	return RPCInternalError
}

func GetErrorMessage(code string) Message {
	if msg, exists := errorMessages[code]; exists {
		return msg
	}
	return errorMessages[ErrCodeInternalError]
}
