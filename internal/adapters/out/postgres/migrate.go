package postgres

import (
	"gorm.io/gorm"

	"foodflow/internal/adapters/out/postgres/assignmentrepo"
	"foodflow/internal/adapters/out/postgres/directoryrepo"
	"foodflow/internal/adapters/out/postgres/orderrepo"
)

// Migrate creates or updates the database schema for all persisted models.
//
// Beyond the AutoMigrate pass it installs a partial unique index on
// delivery_assignments.accepted_by covering accepted assignments only. The
// index is what makes "one live job per rider" hold under concurrent accepts:
// a second claim fails with a duplicate key error no matter how the requests
// interleave.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&orderrepo.OrderDTO{},
		&orderrepo.ShopOrderDTO{},
		&orderrepo.ShopOrderItemDTO{},
		&assignmentrepo.AssignmentDTO{},
		&directoryrepo.ShopDTO{},
		&directoryrepo.UserDTO{},
	); err != nil {
		return err
	}

	return db.Exec(`
		CREATE UNIQUE INDEX IF NOT EXISTS idx_delivery_assignments_active_rider
		ON delivery_assignments (accepted_by)
		WHERE status = 2
	`).Error
}
