package database

import (
	"drivehub/internal/bookings"
	"drivehub/internal/cars"
	"drivehub/internal/users"

	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&users.User{},
		&cars.Car{},
		&bookings.Booking{},
	)
}
