package account_test

import (
	"context"
	"errors"
	"testing"

	"github.com/Behyna/paygate/internal/account"
	"github.com/Behyna/paygate/internal/mocks"
	"github.com/Behyna/paygate/internal/model"
	"github.com/Behyna/paygate/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

func TestUserResolver_Resolve(t *testing.T) {
	ctx := context.Background()
	logger := zap.NewNop()

	t.Run("Payable user", func(t *testing.T) {
		users := &mocks.UserRepository{}
		users.On("GetByID", ctx, int64(42)).Return(&model.User{ID: 42, Tier: model.UserTierFree}, nil)

		payer, err := account.NewUserResolver(users, 500000, logger).Resolve(ctx, "42")

		assert.NoError(t, err)
		assert.Equal(t, account.Payer{UserID: 42, Amount: 500000}, payer)
		users.AssertExpectations(t)
	})

	t.Run("Non numeric order id never hits the store", func(t *testing.T) {
		users := &mocks.UserRepository{}

		for _, orderID := range []string{"", "abc", "-3", "0"} {
			_, err := account.NewUserResolver(users, 1, logger).Resolve(ctx, orderID)
			assert.ErrorIs(t, err, account.ErrAccountNotFound, orderID)
		}
		users.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
	})

	t.Run("Unknown user", func(t *testing.T) {
		users := &mocks.UserRepository{}
		users.On("GetByID", ctx, int64(7)).Return(nil, repository.ErrUserNotFound)

		_, err := account.NewUserResolver(users, 1, logger).Resolve(ctx, "7")
		assert.ErrorIs(t, err, account.ErrAccountNotFound)
	})

	t.Run("Blocked user", func(t *testing.T) {
		users := &mocks.UserRepository{}
		users.On("GetByID", ctx, int64(9)).Return(&model.User{ID: 9, Blocked: true}, nil)

		_, err := account.NewUserResolver(users, 1, logger).Resolve(ctx, "9")
		assert.ErrorIs(t, err, account.ErrAccountNotPayable)
	})

	t.Run("Store failure is passed through", func(t *testing.T) {
		users := &mocks.UserRepository{}
		boom := errors.New("db down")
		users.On("GetByID", ctx, int64(5)).Return(nil, boom)

		_, err := account.NewUserResolver(users, 1, logger).Resolve(ctx, "5")
		assert.ErrorIs(t, err, boom)
	})
}

func TestUserResolver_Credit(t *testing.T) {
	ctx := context.Background()

	users := &mocks.UserRepository{}
	users.On("MarkPremium", ctx, int64(42), mock.AnythingOfType("time.Time")).Return(nil).Once()

	err := account.NewUserResolver(users, 1, zap.NewNop()).Credit(ctx, 42)

	assert.NoError(t, err)
	users.AssertExpectations(t)
}
