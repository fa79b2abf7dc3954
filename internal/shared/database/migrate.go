package database

import (
	"roomly/internal/bookings"
	"roomly/internal/rooms"

	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&rooms.Room{},
		&bookings.Booking{},
	)
}
