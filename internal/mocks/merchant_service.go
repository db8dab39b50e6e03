package mocks

import (
	"context"

	"github.com/Behyna/paygate/internal/service"
	"github.com/stretchr/testify/mock"
)

type MerchantService struct {
	mock.Mock
}

func (m *MerchantService) CheckPerformTransaction(ctx context.Context, cmd service.CheckPerformCommand) (service.CheckPerformResult, error) {
	args := m.Called(ctx, cmd)
	return args.Get(0).(service.CheckPerformResult), args.Error(1)
}

func (m *MerchantService) CreateTransaction(ctx context.Context, cmd service.CreateTransactionCommand) (service.TransactionResult, error) {
	args := m.Called(ctx, cmd)
	return args.Get(0).(service.TransactionResult), args.Error(1)
}

func (m *MerchantService) PerformTransaction(ctx context.Context, cmd service.PerformTransactionCommand) (service.TransactionResult, error) {
	args := m.Called(ctx, cmd)
	return args.Get(0).(service.TransactionResult), args.Error(1)
}

func (m *MerchantService) CancelTransaction(ctx context.Context, cmd service.CancelTransactionCommand) (service.TransactionResult, error) {
	args := m.Called(ctx, cmd)
	return args.Get(0).(service.TransactionResult), args.Error(1)
}

func (m *MerchantService) CheckTransaction(ctx context.Context, cmd service.CheckTransactionCommand) (service.TransactionResult, error) {
	args := m.Called(ctx, cmd)
	return args.Get(0).(service.TransactionResult), args.Error(1)
}

func (m *MerchantService) GetStatement(ctx context.Context, cmd service.GetStatementCommand) (service.StatementResult, error) {
	args := m.Called(ctx, cmd)
	return args.Get(0).(service.StatementResult), args.Error(1)
}
