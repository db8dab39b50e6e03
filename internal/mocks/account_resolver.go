package mocks

import (
	"context"

	"github.com/Behyna/paygate/internal/account"
	"github.com/stretchr/testify/mock"
)

type AccountResolver struct {
	mock.Mock
}

func (a *AccountResolver) Resolve(ctx context.Context, orderID string) (account.Payer, error) {
	args := a.Called(ctx, orderID)
	return args.Get(0).(account.Payer), args.Error(1)
}

func (a *AccountResolver) Credit(ctx context.Context, userID int64) error {
	args := a.Called(ctx, userID)
	return args.Error(0)
}
