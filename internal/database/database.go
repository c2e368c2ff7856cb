package database

import (
	"fmt"

	"github.com/MERAJ-droid/SoLverse/internal/config"
	"github.com/MERAJ-droid/SoLverse/internal/model"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func Init(cfg config.DatabaseConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.DBName, cfg.SSLMode)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Info),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// 自动迁移
	if err := Migrate(db); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return db, nil
}

// Migrate 迁移全部表结构
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.UserModel{},
		&model.ContributionModel{},
		&model.VerificationModel{},
		&model.SoulboundModel{},
		&model.ContentModel{},
		&model.ScoreSnapshotModel{},
	)
}
