package db

import (
	"fmt"

	"github.com/education-platform/backend/internal/config"
	"github.com/education-platform/backend/internal/logger"
	"github.com/education-platform/backend/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Models lists every table in migration order.
func Models() []interface{} {
	return []interface{}{
		&models.Profession{},
		&models.User{},
		&models.Competence{},
		&models.Material{},
		&models.Review{},
		&models.MarkedCompetence{},
	}
}

// GormConfig is shared by the postgres connection and the sqlite test database.
func GormConfig(log *logger.Logger) *gorm.Config {
	return &gorm.Config{
		Logger:         logger.NewGormLogger(log),
		TranslateError: true,
	}
}

func Connect(cfg config.DatabaseConfig, log *logger.Logger) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DSN), GormConfig(log))
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql.DB: %w", err)
	}

	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	return db, nil
}

func Migrate(db *gorm.DB) error {
	for _, model := range Models() {
		if err := db.AutoMigrate(model); err != nil {
			return fmt.Errorf("migrate %T: %w", model, err)
		}
	}

	return nil
}
