package config

import (
	"github.com/rs/zerolog/log"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	model "task-manager-api.com/task-manager-api/internal/models"
)

func NewDatabaseClient(dsn string) *gorm.DB {
	db, err := Open(dsn)
	if err != nil {
		log.Fatal().Err(err).Msg("db open failed")
	}

	if err := Migrate(db); err != nil {
		log.Fatal().Err(err).Msg("migration failed")
	}

	return db
}

func Open(dsn string) (*gorm.DB, error) {
	return gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&model.User{}, &model.Task{})
}
