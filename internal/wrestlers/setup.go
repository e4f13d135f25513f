package wrestlers

import (
	"fmt"

	"github.com/OWDB/OWDB-Backend/internal/db"
	"gorm.io/gorm"
)

// Migrate creates or updates the wrestlers table.
func Migrate(conn *gorm.DB) error {
	if err := db.EnsureSchema(conn, db.Schema); err != nil {
		return fmt.Errorf("failed to create %s schema: %w", db.Schema, err)
	}
	if err := conn.AutoMigrate(&Wrestler{}); err != nil {
		return fmt.Errorf("failed to auto-migrate wrestlers: %w", err)
	}
	return nil
}
