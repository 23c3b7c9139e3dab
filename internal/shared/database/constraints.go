package database

import (
	"fmt"

	"gorm.io/gorm"
)

// indexes backing the list queries the API serves most
var indexes = []struct {
	name string
	sql  string
}{
	{"idx_services_active_created", `CREATE INDEX IF NOT EXISTS idx_services_active_created
		ON services (active, created_at DESC)`},
	{"idx_services_guide_active", `CREATE INDEX IF NOT EXISTS idx_services_guide_active
		ON services (guide_id, active)`},
	{"idx_reservations_user_created", `CREATE INDEX IF NOT EXISTS idx_reservations_user_created
		ON reservations (user_id, created_at DESC)`},
	{"idx_reviews_guide_created", `CREATE INDEX IF NOT EXISTS idx_reviews_guide_created
		ON reviews (guide_id, created_at DESC)`},
}

// MigrateConstraints adds the composite indexes AutoMigrate cannot express
func MigrateConstraints(db *gorm.DB) error {
	for _, idx := range indexes {
		if err := db.Exec(idx.sql).Error; err != nil {
			return fmt.Errorf("create %s: %w", idx.name, err)
		}
	}
	return nil
}
