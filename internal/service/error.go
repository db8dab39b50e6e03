package service

import "errors"

var (
	ErrInvalidAmount            = errors.New("INVALID_AMOUNT")
	ErrPendingTransactionExists = errors.New("PENDING_TRANSACTION_EXISTS")
	ErrTransactionCancelled     = errors.New("TRANSACTION_CANCELLED")
	ErrTransactionExpired       = errors.New("TRANSACTION_EXPIRED")
	ErrTransitionContention     = errors.New("TRANSITION_CONTENTION")

	errAlreadyPending = errors.New("ALREADY_PENDING")
)

// Error carries an error kind from constants, optional protocol data (the offending field) and the cause.
type Error struct {
	Code  string
	Data  string
	Cause error
}

func NewServiceError(code string, cause error) error {
	return Error{Code: code, Cause: cause}
}

func NewServiceErrorWithData(code, data string, cause error) error {
	return Error{Code: code, Data: data, Cause: cause}
}

func (e Error) Error() string {
	if e.Cause == nil {
		return e.Code
	}
	return e.Cause.Error()
}

func (e Error) Unwrap() error {
	return e.Cause
}
