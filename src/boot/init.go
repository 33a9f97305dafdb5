package boot

import (
	"booktrack/src/db"
	"booktrack/src/models"
	"log"

	"gorm.io/gorm"
)

func InitDb() *gorm.DB {
	db := db.GetDb()

	err := db.AutoMigrate(
		&models.User{},
		&models.Service{},
		&models.Booking{},
		&models.PaymentTransaction{},
		&models.Review{},
	)
	if err != nil {
		log.Fatalf("error migration: %s", err.Error())
	}

	return db
}
