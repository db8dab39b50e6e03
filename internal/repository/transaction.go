package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Behyna/paygate/internal/model"
	"github.com/go-sql-driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrTransactionNotFound = errors.New("TRANSACTION_NOT_FOUND")
	ErrTransactionExisted  = errors.New("TRANSACTION_EXISTED")
	ErrNoRowsAffected      = errors.New("NO_ROWS_AFFECTED")
	ErrIllegalTransition   = errors.New("ILLEGAL_TRANSITION")
	ErrLockConflict        = errors.New("LOCK_CONFLICT")
)

const (
	mysqlDuplicateEntry   = 1062
	mysqlLockWaitTimeout  = 1205
	mysqlDeadlockDetected = 1213
)

type TransactionRepository interface {
	Create(ctx context.Context, tx *model.Transaction) error
	GetByExternalID(ctx context.Context, externalID string) (*model.Transaction, error)
	GetPendingByOrderID(ctx context.Context, orderID string) (*model.Transaction, error)
	UpdateState(ctx context.Context, tx *model.Transaction, expected model.TransactionState) error
	ListPaidBetween(ctx context.Context, from, to time.Time) ([]model.Transaction, error)
}

type transaction struct {
	db *gorm.DB
}

func NewTransactionRepository(db *gorm.DB) TransactionRepository {
	return &transaction{db: db}
}

func (t *transaction) Create(ctx context.Context, tx *model.Transaction) error {
	db := GetTx(ctx, t.db)
	err := db.Create(tx).Error
	if err == nil {
		return nil
	}

	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) && mysqlErr.Number == mysqlDuplicateEntry {
		return ErrTransactionExisted
	}

	return lockConflict(err)
}

func (t *transaction) GetByExternalID(ctx context.Context, externalID string) (*model.Transaction, error) {
	var tx model.Transaction

	err := GetTx(ctx, t.db).Where("external_id = ?", externalID).First(&tx).Error
	if err == nil {
		return &tx, nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrTransactionNotFound
	}

	return nil, err
}

// GetPendingByOrderID locks the matching index range, so two creates for one order serialize
// when both run inside WithTx. This needs REPEATABLE READ (pinned in the DSN); under READ COMMITTED InnoDB takes
// no gap lock and both inserts succeed. Two creates holding the same gap lock deadlock on insert, which
// Create reports as ErrLockConflict so the caller can retry and see the winner's row.
func (t *transaction) GetPendingByOrderID(ctx context.Context, orderID string) (*model.Transaction, error) {
	var tx model.Transaction

	err := GetTx(ctx, t.db).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("order_id = ? AND state = ?", orderID, model.TransactionStatePending).
		First(&tx).Error
	if err == nil {
		return &tx, nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrTransactionNotFound
	}

	return nil, lockConflict(err)
}

func lockConflict(err error) error {
	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) &&
		(mysqlErr.Number == mysqlDeadlockDetected || mysqlErr.Number == mysqlLockWaitTimeout) {
		return fmt.Errorf("%w: %v", ErrLockConflict, err)
	}
	return err
}

// UpdateState writes tx's state columns only if the stored state still equals expected.
// Amount, ids and creation time are never part of the update.
func (t *transaction) UpdateState(ctx context.Context, tx *model.Transaction, expected model.TransactionState) error {
	if !expected.CanTransitionTo(tx.State) {
		return ErrIllegalTransition
	}

	db := GetTx(ctx, t.db)
	result := db.Model(&model.Transaction{}).
		Where("external_id = ? AND state = ?", tx.ExternalID, expected).
		Updates(map[string]interface{}{
			"state":        tx.State,
			"paid_at":      tx.PaidAt,
			"cancelled_at": tx.CancelledAt,
			"reason":       tx.Reason,
		})

	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return ErrNoRowsAffected
	}

	return nil
}

func (t *transaction) ListPaidBetween(ctx context.Context, from, to time.Time) ([]model.Transaction, error) {
	var txs []model.Transaction

	err := GetTx(ctx, t.db).
		Where("created_at BETWEEN ? AND ? AND paid_at IS NOT NULL", from, to).
		Order("created_at ASC").
		Find(&txs).Error
	if err != nil {
		return nil, err
	}

	return txs, nil
}
