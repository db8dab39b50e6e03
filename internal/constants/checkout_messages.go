package constants

const MessageErrorFormat = "The '%s' format is invalid"

// Codes of the plain JSON errors returned by the checkout redirect.
const (
	ErrCodeAccountNotFound       = "ACCOUNT_NOT_FOUND"
	ErrCodeAccountNotPayable     = "ACCOUNT_NOT_PAYABLE"
	ErrCodeValidationFailed      = "VALIDATION_FAILED"
	ErrCodeCheckoutNotConfigured = "CHECKOUT_NOT_CONFIGURED"
)

const (
	ErrMsgAccountNotFound       = "account not found"
	ErrMsgAccountNotPayable     = "account cannot pay"
	ErrMsgCheckoutNotConfigured = "checkout merchant is not configured"
)
