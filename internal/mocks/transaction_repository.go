package mocks

import (
	"context"
	"time"

	"github.com/Behyna/paygate/internal/model"
	"github.com/stretchr/testify/mock"
)

type TransactionRepository struct {
	mock.Mock
}

func (t *TransactionRepository) Create(ctx context.Context, tx *model.Transaction) error {
	args := t.Called(ctx, tx)
	return args.Error(0)
}

func (t *TransactionRepository) GetByExternalID(ctx context.Context, externalID string) (*model.Transaction, error) {
	args := t.Called(ctx, externalID)
	tx, _ := args.Get(0).(*model.Transaction)
	return tx, args.Error(1)
}

func (t *TransactionRepository) GetPendingByOrderID(ctx context.Context, orderID string) (*model.Transaction, error) {
	args := t.Called(ctx, orderID)
	tx, _ := args.Get(0).(*model.Transaction)
	return tx, args.Error(1)
}

func (t *TransactionRepository) UpdateState(ctx context.Context, tx *model.Transaction, expected model.TransactionState) error {
	args := t.Called(ctx, tx, expected)
	return args.Error(0)
}

func (t *TransactionRepository) ListPaidBetween(ctx context.Context, from, to time.Time) ([]model.Transaction, error) {
	args := t.Called(ctx, from, to)
	txs, _ := args.Get(0).([]model.Transaction)
	return txs, args.Error(1)
}
