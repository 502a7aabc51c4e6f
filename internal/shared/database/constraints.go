package database

import (
	"gorm.io/gorm"
)

// MigrateConstraints adds the constraints AutoMigrate cannot express
func MigrateConstraints(db *gorm.DB) error {
	// A car can back at most one approved booking at a time
	err := db.Exec(`
		CREATE UNIQUE INDEX IF NOT EXISTS idx_bookings_one_approved_per_car
		ON bookings (car_id)
		WHERE booking_status = 'APPROVED';
	`).Error
	if err != nil {
		return err
	}

	// History lookups match email case-insensitively
	err = db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_bookings_lower_email
		ON bookings (LOWER(email));
	`).Error
	if err != nil {
		return err
	}

	err = db.Exec(`
		CREATE UNIQUE INDEX IF NOT EXISTS idx_users_lower_email
		ON users (LOWER(email));
	`).Error
	if err != nil {
		return err
	}

	return nil
}
