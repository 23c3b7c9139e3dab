package database

import (
	"guideomra/internal/catalog"
	"guideomra/internal/reservations"
	"guideomra/internal/reviews"
	"guideomra/internal/users"

	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&users.Profile{},
		&users.GuideDetails{},
		&catalog.ServiceRecord{},
		&reservations.Reservation{},
		&reviews.Review{},
	)
}
