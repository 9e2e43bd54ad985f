package migration

import (
	"FreshKeep/entities"
	"fmt"
	"log"

	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&entities.KVSlot{}); err != nil {
		log.Printf("Error migrating kv slot database: %v", err)
		return err
	}

	fmt.Println("Database migration complete")
	return nil
}
