package database

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	gormlogger "gorm.io/gorm/logger"

	"github.com/d60-Lab/heart-badge/config"
	"github.com/d60-Lab/heart-badge/internal/model"
)

// Open 按配置打开数据库连接
func Open(cfg config.DatabaseConfig) (*gorm.DB, error) {
	gormCfg := &gorm.Config{Logger: gormlogger.Default.LogMode(gormlogger.Warn)}
	switch cfg.Driver {
	case "postgres":
		return gorm.Open(postgres.Open(cfg.DSN), gormCfg)
	case "sqlite":
		return gorm.Open(sqlite.Open(cfg.DSN), gormCfg)
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", cfg.Driver)
	}
}

// Migrate 建表并写入徽章目录（目录是不可变参考数据，重复执行幂等）
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&model.Badge{},
		&model.UserBadge{},
		&model.Interaction{},
		&model.Notification{},
	); err != nil {
		return err
	}
	catalog := model.Catalog()
	return db.Clauses(clause.OnConflict{DoNothing: true}).Create(&catalog).Error
}
