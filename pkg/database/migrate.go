package database

import (
	"log"

	"github.com/002sathwik/vs-billings/internal/models"
)

// Migrate creates or updates the bills/items tables, including the
// items.bill_id foreign key with ON DELETE CASCADE.
func Migrate() {
	log.Println("Running migrations...")

	if err := DB.AutoMigrate(
		&models.Bill{},
		&models.Item{},
	); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}

	log.Println("Migrations completed successfully.")
}
