package model

import "time"

type TransactionState string

const (
	TransactionStatePending   TransactionState = "PENDING"
	TransactionStatePaid      TransactionState = "PAID"
	TransactionStateCancelled TransactionState = "CANCELLED"
)

// Wire returns the integer the provider protocol uses for the state.
func (s TransactionState) Wire() int {
	switch s {
	case TransactionStatePending:
		return 1
	case TransactionStatePaid:
		return 2
	case TransactionStateCancelled:
		return -1
	default:
		return 0
	}
}

func (s TransactionState) IsTerminal() bool {
	return s == TransactionStatePaid || s == TransactionStateCancelled
}

// CanTransitionTo reports whether s -> next is an edge of the state machine.
// PENDING is never re-entered and CANCELLED has no outgoing edges.
func (s TransactionState) CanTransitionTo(next TransactionState) bool {
	switch s {
	case TransactionStatePending:
		return next == TransactionStatePaid || next == TransactionStateCancelled
	case TransactionStatePaid:
		return next == TransactionStateCancelled
	default:
		return false
	}
}

// CancelReason is the provider's cancellation reason code.
type CancelReason int

const (
	CancelReasonReceiverNotFound CancelReason = 1
	CancelReasonDebitFailed      CancelReason = 2
	CancelReasonExecutionFailed  CancelReason = 3
	CancelReasonTimeout          CancelReason = 4
	CancelReasonRefund           CancelReason = 5
	CancelReasonUnknown          CancelReason = 10
)

type Transaction struct {
	ID          int64            `gorm:"primaryKey;autoIncrement;<-:create"`
	ExternalID  string           `gorm:"type:varchar(64);not null;uniqueIndex;<-:create"`
	OrderID     string           `gorm:"type:varchar(64);not null;index:idx_order_state;<-:create"`
	Amount      int64            `gorm:"not null;<-:create"`
	State       TransactionState `gorm:"type:enum('PENDING','PAID','CANCELLED');not null;index:idx_order_state"`
	CreatedAt   time.Time        `gorm:"type:timestamp(3);not null;index;<-:create;autoCreateTime:false"`
	PaidAt      *time.Time       `gorm:"type:timestamp(3);null"`
	CancelledAt *time.Time       `gorm:"type:timestamp(3);null"`
	Reason      *CancelReason    `gorm:"null"`
	UserID      *int64           `gorm:"index;null;<-:create"`
	ReceivedAt  *time.Time       `gorm:"type:timestamp(3);null;<-:create"`
	UpdatedAt   time.Time        `gorm:"type:timestamp(3)"`
}

func (Transaction) TableName() string {
	return "payment_transactions"
}

// Expired reports whether a pending transaction has outlived timeout, measured from when this server stored it.
// CreatedAt is the provider's clock and is not compared with ours. A zero timeout or missing ReceivedAt never expires.
func (t *Transaction) Expired(now time.Time, timeout time.Duration) bool {
	if timeout <= 0 || t.State != TransactionStatePending || t.ReceivedAt == nil {
		return false
	}
	return now.Sub(*t.ReceivedAt) > timeout
}
