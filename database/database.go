package database

import (
	"github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/rishebss/fifac-backend/config"
	"github.com/rishebss/fifac-backend/models"
)

var DB *gorm.DB

func Connect(cfg *config.Config) {
	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect database")
	}
	DB = db

	// AutoMigrate also provisions the composite (student_id, date) unique
	// index the attendance range query and upsert both depend on.
	if err := DB.AutoMigrate(
		&models.User{},
		&models.Lead{},
		&models.Student{},
		&models.AttendanceRecord{},
		&models.Payment{},
	); err != nil {
		log.Fatal().Err(err).Msg("auto migrate failed")
	}
}
