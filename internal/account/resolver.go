// Package account resolves the provider's opaque order reference to a local payer.
package account

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/Behyna/paygate/internal/repository"
	"go.uber.org/zap"
)

var (
	ErrAccountNotFound   = errors.New("ACCOUNT_NOT_FOUND")
	ErrAccountNotPayable = errors.New("ACCOUNT_NOT_PAYABLE")
)

// Payer is a resolved, payable account and the amount it is expected to pay in minor units.
type Payer struct {
	UserID int64
	Amount int64
}

type Resolver interface {
	Resolve(ctx context.Context, orderID string) (Payer, error)
	Credit(ctx context.Context, userID int64) error
}

// UserResolver maps an order reference to a user id and grants premium on credit.
type UserResolver struct {
	users  repository.UserRepository
	price  int64
	logger *zap.Logger
	now    func() time.Time
}

func NewUserResolver(users repository.UserRepository, price int64, logger *zap.Logger) *UserResolver {
	return &UserResolver{users: users, price: price, logger: logger, now: time.Now}
}

func (r *UserResolver) Resolve(ctx context.Context, orderID string) (Payer, error) {
	userID, err := strconv.ParseInt(orderID, 10, 64)
	if err != nil || userID <= 0 {
		return Payer{}, ErrAccountNotFound
	}

	usr, err := r.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return Payer{}, ErrAccountNotFound
		}
		return Payer{}, err
	}

	if usr.Blocked {
		r.logger.Warn("Blocked account attempted payment", zap.Int64("userID", userID))
		return Payer{}, ErrAccountNotPayable
	}

	return Payer{UserID: usr.ID, Amount: r.price}, nil
}

// Credit joins the transaction carried by ctx, if any.
func (r *UserResolver) Credit(ctx context.Context, userID int64) error {
	if err := r.users.MarkPremium(ctx, userID, r.now()); err != nil {
		return err
	}

	r.logger.Info("Account upgraded to premium", zap.Int64("userID", userID))
	return nil
}
