package database

import (
	"log"

	"forecast-backend/internal/config"
	"forecast-backend/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func Init(cfg *config.Config) {
	var err error

	// TranslateError turns Postgres duplicate-key errors into
	// gorm.ErrDuplicatedKey, which the forecast batch create relies on.
	DB, err = gorm.Open(postgres.Open(cfg.DatabaseDSN), &gorm.Config{
		TranslateError: true,
	})
	if err != nil {
		log.Fatalf("cannot connect to database: %v", err)
	}

	err = DB.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Store{},
		&models.Sale{},
		&models.Forecast{},
		&models.DayForecast{},
		&models.ImportJob{},
	)
	if err != nil {
		log.Fatalf("AutoMigrate failed: %v", err)
	}

	log.Println("database connected, migration complete")
}
