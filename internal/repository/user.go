package repository

import (
	"context"
	"errors"
	"time"

	"github.com/Behyna/paygate/internal/model"
	"gorm.io/gorm"
)

var ErrUserNotFound = errors.New("USER_NOT_FOUND")

type UserRepository interface {
	GetByID(ctx context.Context, id int64) (*model.User, error)
	MarkPremium(ctx context.Context, id int64, at time.Time) error
}

type user struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &user{db: db}
}

func (u *user) GetByID(ctx context.Context, id int64) (*model.User, error) {
	var usr model.User

	err := GetTx(ctx, u.db).Where("id = ?", id).First(&usr).Error
	if err == nil {
		return &usr, nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}

	return nil, err
}

// MarkPremium upgrades the user's tier. premium_since keeps its first value.
// MySQL reports zero affected rows for a no-op update, so RowsAffected is not checked here.
func (u *user) MarkPremium(ctx context.Context, id int64, at time.Time) error {
	db := GetTx(ctx, u.db)
	return db.Model(&model.User{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"tier":          model.UserTierPremium,
			"premium_since": gorm.Expr("COALESCE(premium_since, ?)", at),
		}).Error
}
