package service

import (
	"context"
	"errors"
	"time"

	"github.com/Behyna/paygate/internal/account"
	"github.com/Behyna/paygate/internal/config"
	"github.com/Behyna/paygate/internal/constants"
	"github.com/Behyna/paygate/internal/metrics"
	"github.com/Behyna/paygate/internal/model"
	"github.com/Behyna/paygate/internal/repository"
	"go.uber.org/zap"
)

const (
	MethodCheckPerformTransaction = "CheckPerformTransaction"
	MethodCreateTransaction       = "CreateTransaction"
	MethodPerformTransaction      = "PerformTransaction"
	MethodCancelTransaction       = "CancelTransaction"
	MethodCheckTransaction        = "CheckTransaction"
	MethodGetStatement            = "GetStatement"
)

// KnownMethod reports whether name is one of the provider's RPC methods.
func KnownMethod(name string) bool {
	switch name {
	case MethodCheckPerformTransaction, MethodCreateTransaction, MethodPerformTransaction,
		MethodCancelTransaction, MethodCheckTransaction, MethodGetStatement:
		return true
	}
	return false
}

const (
	transactionsTable     = "payment_transactions"
	maxTransitionAttempts = 3
)

type MerchantService interface {
	CheckPerformTransaction(ctx context.Context, cmd CheckPerformCommand) (CheckPerformResult, error)
	CreateTransaction(ctx context.Context, cmd CreateTransactionCommand) (TransactionResult, error)
	PerformTransaction(ctx context.Context, cmd PerformTransactionCommand) (TransactionResult, error)
	CancelTransaction(ctx context.Context, cmd CancelTransactionCommand) (TransactionResult, error)
	CheckTransaction(ctx context.Context, cmd CheckTransactionCommand) (TransactionResult, error)
	GetStatement(ctx context.Context, cmd GetStatementCommand) (StatementResult, error)
}

type Option func(*Merchant)

// WithClock replaces time.Now for perform/cancel timestamps and expiry checks.
func WithClock(now func() time.Time) Option {
	return func(m *Merchant) {
		m.now = now
	}
}

type Merchant struct {
	txRepo    repository.TransactionRepository
	txManager repository.TxManager
	accounts  account.Resolver
	expiry    time.Duration
	metrics   *metrics.Metrics
	logger    *zap.Logger
	now       func() time.Time
}

func NewMerchantService(txRepo repository.TransactionRepository, txManager repository.TxManager,
	accounts account.Resolver, cfg *config.Config, metrics *metrics.Metrics, logger *zap.Logger,
	opts ...Option) MerchantService {
	m := &Merchant{
		txRepo:    txRepo,
		txManager: txManager,
		accounts:  accounts,
		expiry:    cfg.Payme.TransactionTimeout,
		metrics:   metrics,
		logger:    logger,
		now:       time.Now,
	}

	for _, opt := range opts {
		opt(m)
	}

	return m
}

func (m *Merchant) CheckPerformTransaction(ctx context.Context, cmd CheckPerformCommand) (CheckPerformResult, error) {
	payer, err := m.resolveAccount(ctx, cmd.OrderID)
	if err != nil {
		return CheckPerformResult{}, err
	}

	if err := m.checkAmount(payer, cmd.OrderID, cmd.Amount); err != nil {
		return CheckPerformResult{}, err
	}

	return CheckPerformResult{Allow: true}, nil
}

func (m *Merchant) CreateTransaction(ctx context.Context, cmd CreateTransactionCommand) (TransactionResult, error) {
	existing, err := m.txRepo.GetByExternalID(ctx, cmd.ExternalID)
	if err == nil {
		return m.replay(MethodCreateTransaction, existing), nil
	}
	if !errors.Is(err, repository.ErrTransactionNotFound) {
		return TransactionResult{}, m.internal(MethodCreateTransaction, cmd.ExternalID, err)
	}

	payer, err := m.resolveAccount(ctx, cmd.OrderID)
	if err != nil {
		return TransactionResult{}, err
	}

	receivedAt := m.now()
	tx := model.Transaction{
		ExternalID: cmd.ExternalID,
		OrderID:    cmd.OrderID,
		Amount:     cmd.Amount,
		State:      model.TransactionStatePending,
		CreatedAt:  cmd.Time,
		UserID:     &payer.UserID,
		ReceivedAt: &receivedAt,
	}

	start := time.Now()
	for attempt := 1; ; attempt++ {
		err = m.insertPending(ctx, cmd, payer, &tx)
		if !errors.Is(err, repository.ErrLockConflict) || attempt == maxTransitionAttempts {
			break
		}

		m.logger.Debug("Create lost a lock race, retrying",
			zap.String("externalID", cmd.ExternalID),
			zap.String("orderID", cmd.OrderID),
			zap.Int("attempt", attempt))
	}

	switch {
	case errors.Is(err, errAlreadyPending):
		return m.replayAfterRace(ctx, MethodCreateTransaction, cmd.ExternalID)
	case errors.Is(err, repository.ErrTransactionExisted):
		m.metrics.RecordDBQuery("insert", transactionsTable, "duplicate", time.Since(start))
		return m.replayAfterRace(ctx, MethodCreateTransaction, cmd.ExternalID)
	case err != nil:
		var serviceErr Error
		if errors.As(err, &serviceErr) {
			return TransactionResult{}, err
		}
		m.metrics.RecordDBQuery("insert", transactionsTable, "error", time.Since(start))
		return TransactionResult{}, m.internal(MethodCreateTransaction, cmd.ExternalID, err)
	}

	m.metrics.RecordDBQuery("insert", transactionsTable, "success", time.Since(start))
	m.metrics.RecordTransition("NONE", string(model.TransactionStatePending))

	m.logger.Info("Transaction created",
		zap.String("externalID", tx.ExternalID),
		zap.String("orderID", tx.OrderID),
		zap.Int64("amount", tx.Amount),
		zap.Int64("transactionID", tx.ID))

	return TransactionResult{Transaction: tx}, nil
}

// insertPending inserts tx unless the order already has a pending transaction. The locked read makes a
// concurrent create for the same order wait for this one, or fail with a lock conflict.
func (m *Merchant) insertPending(ctx context.Context, cmd CreateTransactionCommand, payer account.Payer,
	tx *model.Transaction) error {
	return m.txManager.WithTx(ctx, func(ctx context.Context) error {
		pending, err := m.txRepo.GetPendingByOrderID(ctx, cmd.OrderID)
		if err == nil {
			if pending.ExternalID == cmd.ExternalID {
				return errAlreadyPending
			}

			m.logger.Warn("Order already has a pending transaction",
				zap.String("orderID", cmd.OrderID),
				zap.String("externalID", cmd.ExternalID),
				zap.String("pendingExternalID", pending.ExternalID))
			return NewServiceErrorWithData(constants.ErrCodeTransactionConflict, "order_id", ErrPendingTransactionExists)
		}
		if !errors.Is(err, repository.ErrTransactionNotFound) {
			return err
		}

		if err := m.checkAmount(payer, cmd.OrderID, cmd.Amount); err != nil {
			return err
		}

		return m.txRepo.Create(ctx, tx)
	})
}

func (m *Merchant) PerformTransaction(ctx context.Context, cmd PerformTransactionCommand) (TransactionResult, error) {
	tx, err := m.find(ctx, MethodPerformTransaction, cmd.ExternalID)
	if err != nil {
		return TransactionResult{}, err
	}

	switch tx.State {
	case model.TransactionStatePaid:
		return m.replay(MethodPerformTransaction, tx), nil
	case model.TransactionStateCancelled:
		return TransactionResult{}, NewServiceError(constants.ErrCodeInvalidState, ErrTransactionCancelled)
	}

	if tx.Expired(m.now(), m.expiry) {
		return TransactionResult{}, m.expire(ctx, tx)
	}

	paidAt := m.now()
	next := *tx
	next.State = model.TransactionStatePaid
	next.PaidAt = &paidAt

	start := time.Now()
	err = m.txManager.WithTx(ctx, func(ctx context.Context) error {
		if err := m.txRepo.UpdateState(ctx, &next, model.TransactionStatePending); err != nil {
			return err
		}

		if next.UserID == nil {
			m.logger.Warn("Performed transaction has no account to credit",
				zap.String("externalID", next.ExternalID),
				zap.String("orderID", next.OrderID))
			return nil
		}

		return m.accounts.Credit(ctx, *next.UserID)
	})

	if errors.Is(err, repository.ErrNoRowsAffected) {
		return m.replayAfterRace(ctx, MethodPerformTransaction, cmd.ExternalID)
	}
	if err != nil {
		m.metrics.RecordDBQuery("update", transactionsTable, "error", time.Since(start))
		return TransactionResult{}, m.internal(MethodPerformTransaction, cmd.ExternalID, err)
	}

	m.metrics.RecordDBQuery("update", transactionsTable, "success", time.Since(start))
	m.metrics.RecordTransition(string(model.TransactionStatePending), string(model.TransactionStatePaid))
	if next.UserID != nil {
		m.metrics.RecordAccountCredit()
	}

	m.logger.Info("Transaction performed",
		zap.String("externalID", next.ExternalID),
		zap.String("orderID", next.OrderID),
		zap.Int64("amount", next.Amount))

	return TransactionResult{Transaction: next}, nil
}

// CancelTransaction never revokes an entitlement granted by an earlier perform.
func (m *Merchant) CancelTransaction(ctx context.Context, cmd CancelTransactionCommand) (TransactionResult, error) {
	for attempt := 0; attempt < maxTransitionAttempts; attempt++ {
		tx, err := m.find(ctx, MethodCancelTransaction, cmd.ExternalID)
		if err != nil {
			return TransactionResult{}, err
		}

		if tx.State == model.TransactionStateCancelled {
			return m.replay(MethodCancelTransaction, tx), nil
		}

		next := m.cancelled(tx, cmd.Reason)

		err = m.txRepo.UpdateState(ctx, &next, tx.State)
		if err == nil {
			m.metrics.RecordTransition(string(tx.State), string(next.State))
			m.logger.Info("Transaction cancelled",
				zap.String("externalID", next.ExternalID),
				zap.String("orderID", next.OrderID),
				zap.String("previousState", string(tx.State)),
				zap.Int("reason", int(cmd.Reason)))

			return TransactionResult{Transaction: next}, nil
		}

		if !errors.Is(err, repository.ErrNoRowsAffected) {
			return TransactionResult{}, m.internal(MethodCancelTransaction, cmd.ExternalID, err)
		}

		m.logger.Debug("Cancel lost a concurrent transition, retrying",
			zap.String("externalID", cmd.ExternalID),
			zap.Int("attempt", attempt+1))
	}

	return TransactionResult{}, m.internal(MethodCancelTransaction, cmd.ExternalID, ErrTransitionContention)
}

func (m *Merchant) CheckTransaction(ctx context.Context, cmd CheckTransactionCommand) (TransactionResult, error) {
	tx, err := m.find(ctx, MethodCheckTransaction, cmd.ExternalID)
	if err != nil {
		return TransactionResult{}, err
	}

	return TransactionResult{Transaction: *tx}, nil
}

func (m *Merchant) GetStatement(ctx context.Context, cmd GetStatementCommand) (StatementResult, error) {
	start := time.Now()

	txs, err := m.txRepo.ListPaidBetween(ctx, cmd.From, cmd.To)
	if err != nil {
		m.metrics.RecordDBQuery("select", transactionsTable, "error", time.Since(start))
		return StatementResult{}, m.internal(MethodGetStatement, "", err)
	}

	m.metrics.RecordDBQuery("select", transactionsTable, "success", time.Since(start))

	m.logger.Debug("Statement built",
		zap.Time("from", cmd.From),
		zap.Time("to", cmd.To),
		zap.Int("count", len(txs)))

	return StatementResult{Transactions: txs}, nil
}

func (m *Merchant) resolveAccount(ctx context.Context, orderID string) (account.Payer, error) {
	payer, err := m.accounts.Resolve(ctx, orderID)
	if err != nil {
		if errors.Is(err, account.ErrAccountNotFound) || errors.Is(err, account.ErrAccountNotPayable) {
			return account.Payer{}, NewServiceErrorWithData(constants.ErrCodeInvalidAccount, "order_id", err)
		}
		return account.Payer{}, m.internal("ResolveAccount", orderID, err)
	}

	return payer, nil
}

// checkAmount accepts any positive amount when the payer has no fixed price.
func (m *Merchant) checkAmount(payer account.Payer, orderID string, amount int64) error {
	if amount > 0 && (payer.Amount <= 0 || amount == payer.Amount) {
		return nil
	}

	m.logger.Warn("Amount does not match order",
		zap.String("orderID", orderID),
		zap.Int64("amount", amount),
		zap.Int64("expected", payer.Amount))

	return NewServiceErrorWithData(constants.ErrCodeInvalidAmount, "amount", ErrInvalidAmount)
}

func (m *Merchant) find(ctx context.Context, method, externalID string) (*model.Transaction, error) {
	tx, err := m.txRepo.GetByExternalID(ctx, externalID)
	if err == nil {
		return tx, nil
	}

	if errors.Is(err, repository.ErrTransactionNotFound) {
		return nil, NewServiceError(constants.ErrCodeTransactionNotFound, err)
	}

	return nil, m.internal(method, externalID, err)
}

// replayAfterRace answers a call whose write lost to a concurrent delivery of the same transaction.
func (m *Merchant) replayAfterRace(ctx context.Context, method, externalID string) (TransactionResult, error) {
	tx, err := m.find(ctx, method, externalID)
	if err != nil {
		return TransactionResult{}, err
	}

	if method == MethodPerformTransaction && tx.State != model.TransactionStatePaid {
		return TransactionResult{}, NewServiceError(constants.ErrCodeInvalidState, ErrTransactionCancelled)
	}

	return m.replay(method, tx), nil
}

func (m *Merchant) replay(method string, tx *model.Transaction) TransactionResult {
	m.metrics.RecordReplay(method)
	m.logger.Debug("Replaying stored transaction",
		zap.String("method", method),
		zap.String("externalID", tx.ExternalID),
		zap.String("state", string(tx.State)))

	return TransactionResult{Transaction: *tx, Replayed: true}
}

// expire cancels a pending transaction that outlived the provider's timeout and reports the invalid state.
func (m *Merchant) expire(ctx context.Context, tx *model.Transaction) error {
	next := m.cancelled(tx, model.CancelReasonTimeout)

	err := m.txRepo.UpdateState(ctx, &next, model.TransactionStatePending)
	switch {
	case err == nil:
		m.metrics.RecordTransition(string(model.TransactionStatePending), string(model.TransactionStateCancelled))
		m.logger.Info("Pending transaction expired",
			zap.String("externalID", tx.ExternalID),
			zap.String("orderID", tx.OrderID),
			zap.Time("createdAt", tx.CreatedAt))
	case errors.Is(err, repository.ErrNoRowsAffected):
		m.logger.Debug("Expired transaction already moved on", zap.String("externalID", tx.ExternalID))
	default:
		return m.internal("ExpireTransaction", tx.ExternalID, err)
	}

	return NewServiceError(constants.ErrCodeInvalidState, ErrTransactionExpired)
}

func (m *Merchant) cancelled(tx *model.Transaction, reason model.CancelReason) model.Transaction {
	cancelledAt := m.now()

	next := *tx
	next.State = model.TransactionStateCancelled
	next.CancelledAt = &cancelledAt
	next.Reason = &reason

	return next
}

func (m *Merchant) internal(method, ref string, err error) error {
	m.logger.Error("Merchant operation failed",
		zap.String("method", method),
		zap.String("ref", ref),
		zap.Error(err))

	return NewServiceError(constants.ErrCodeInternalError, err)
}
