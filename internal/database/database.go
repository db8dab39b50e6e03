package database

import (
	"fmt"

	"github.com/Behyna/paygate/internal/config"
	"github.com/Behyna/paygate/internal/model"
	"github.com/Behyna/paygate/pkg/mysql"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func NewDatabase(cfg *config.Config, logger *zap.Logger) (*gorm.DB, error) {
	db, err := mysql.NewConnection(cfg.Database, logger)
	if err != nil {
		return nil, err
	}

	if cfg.Database.AutoMigrate {
		if err := Migrate(db); err != nil {
			logger.Error("Failed to migrate database", zap.Error(err))
			return nil, err
		}
		logger.Info("Database schema migrated")
	}

	return db, nil
}

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&model.Transaction{}, &model.User{}); err != nil {
		return fmt.Errorf("failed to migrate: %w", err)
	}
	return nil
}
