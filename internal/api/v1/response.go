package v1

import (
	"strconv"

	"github.com/Behyna/paygate/internal/api/contract"
	"github.com/Behyna/paygate/internal/model"
)

type CheckPerformTransactionResponse struct {
	Allow bool `json:"allow"`
}

type CreateTransactionResponse struct {
	CreateTime  int64  `json:"create_time"`
	Transaction string `json:"transaction"`
	State       int    `json:"state"`
}

type PerformTransactionResponse struct {
	Transaction string `json:"transaction"`
	PerformTime int64  `json:"perform_time"`
	State       int    `json:"state"`
}

type CancelTransactionResponse struct {
	Transaction string `json:"transaction"`
	CancelTime  int64  `json:"cancel_time"`
	State       int    `json:"state"`
}

type CheckTransactionResponse struct {
	CreateTime  int64  `json:"create_time"`
	PerformTime int64  `json:"perform_time"`
	CancelTime  int64  `json:"cancel_time"`
	Transaction string `json:"transaction"`
	State       int    `json:"state"`
	Reason      *int   `json:"reason"`
}

// StatementTransaction echoes the provider's own time in milliseconds next to the CheckTransaction fields.
type StatementTransaction struct {
	ID      string  `json:"id"`
	Time    int64   `json:"time"`
	Amount  int64   `json:"amount"`
	Account Account `json:"account"`
	CheckTransactionResponse
}

type GetStatementResponse struct {
	Transactions []StatementTransaction `json:"transactions"`
}

func localID(tx model.Transaction) string {
	return strconv.FormatInt(tx.ID, 10)
}

func newCreateTransactionResponse(tx model.Transaction) CreateTransactionResponse {
	return CreateTransactionResponse{
		CreateTime:  contract.UnixTime(tx.CreatedAt),
		Transaction: localID(tx),
		State:       tx.State.Wire(),
	}
}

func newPerformTransactionResponse(tx model.Transaction) PerformTransactionResponse {
	return PerformTransactionResponse{
		Transaction: localID(tx),
		PerformTime: contract.UnixTimePtr(tx.PaidAt),
		State:       tx.State.Wire(),
	}
}

func newCancelTransactionResponse(tx model.Transaction) CancelTransactionResponse {
	return CancelTransactionResponse{
		Transaction: localID(tx),
		CancelTime:  contract.UnixTimePtr(tx.CancelledAt),
		State:       tx.State.Wire(),
	}
}

func newCheckTransactionResponse(tx model.Transaction) CheckTransactionResponse {
	res := CheckTransactionResponse{
		CreateTime:  contract.UnixTime(tx.CreatedAt),
		PerformTime: contract.UnixTimePtr(tx.PaidAt),
		CancelTime:  contract.UnixTimePtr(tx.CancelledAt),
		Transaction: localID(tx),
		State:       tx.State.Wire(),
	}

	if tx.Reason != nil {
		reason := int(*tx.Reason)
		res.Reason = &reason
	}

	return res
}

func newGetStatementResponse(txs []model.Transaction) GetStatementResponse {
	items := make([]StatementTransaction, 0, len(txs))
	for _, tx := range txs {
		items = append(items, StatementTransaction{
			ID:                       tx.ExternalID,
			Time:                     tx.CreatedAt.UnixMilli(),
			Amount:                   tx.Amount,
			Account:                  Account{OrderID: tx.OrderID},
			CheckTransactionResponse: newCheckTransactionResponse(tx),
		})
	}

	return GetStatementResponse{Transactions: items}
}
