package service

import (
	"time"

	"github.com/Behyna/paygate/internal/model"
)

type CheckPerformCommand struct {
	OrderID string
	Amount  int64
}

type CreateTransactionCommand struct {
	ExternalID string
	OrderID    string
	Amount     int64
	Time       time.Time
}

type PerformTransactionCommand struct {
	ExternalID string
}

type CancelTransactionCommand struct {
	ExternalID string
	Reason     model.CancelReason
}

type CheckTransactionCommand struct {
	ExternalID string
}

type GetStatementCommand struct {
	From time.Time
	To   time.Time
}

type CheckPerformResult struct {
	Allow bool
}

// TransactionResult is the stored transaction after the call. Replayed is set when nothing was mutated
// because the call had already been applied.
type TransactionResult struct {
	Transaction model.Transaction
	Replayed    bool
}

type StatementResult struct {
	Transactions []model.Transaction
}
