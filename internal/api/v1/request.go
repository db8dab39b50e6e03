package v1

type Account struct {
	OrderID string `json:"order_id" validate:"required,account_ref"`
}

type CheckPerformTransactionRequest struct {
	Amount  int64   `json:"amount" validate:"required,gt=0"`
	Account Account `json:"account"`
}

type CreateTransactionRequest struct {
	ID      string  `json:"id" validate:"required,max=64"`
	Time    int64   `json:"time" validate:"required,gt=0"`
	Amount  int64   `json:"amount" validate:"required,gt=0"`
	Account Account `json:"account"`
}

type PerformTransactionRequest struct {
	ID string `json:"id" validate:"required,max=64"`
}

type CancelTransactionRequest struct {
	ID     string `json:"id" validate:"required,max=64"`
	Reason int    `json:"reason" validate:"required"`
}

type CheckTransactionRequest struct {
	ID string `json:"id" validate:"required,max=64"`
}

// GetStatementRequest bounds are unix seconds.
type GetStatementRequest struct {
	From *int64 `json:"from" validate:"required,gte=0"`
	To   *int64 `json:"to" validate:"required,gte=0"`
}

type CheckoutRequest struct {
	AccountRef string `json:"account_ref" validate:"required,account_ref"`
}
