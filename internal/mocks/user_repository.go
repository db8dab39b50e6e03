package mocks

import (
	"context"
	"time"

	"github.com/Behyna/paygate/internal/model"
	"github.com/stretchr/testify/mock"
)

type UserRepository struct {
	mock.Mock
}

func (u *UserRepository) GetByID(ctx context.Context, id int64) (*model.User, error) {
	args := u.Called(ctx, id)
	usr, _ := args.Get(0).(*model.User)
	return usr, args.Error(1)
}

func (u *UserRepository) MarkPremium(ctx context.Context, id int64, at time.Time) error {
	args := u.Called(ctx, id, at)
	return args.Error(0)
}
