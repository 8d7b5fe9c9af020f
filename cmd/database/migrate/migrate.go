package migration

import (
	"Health-Kitchen-Backend/entities"
	"fmt"
	"log"

	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	if db.Dialector.Name() == "postgres" {
		db.Exec("CREATE EXTENSION IF NOT EXISTS \"uuid-ossp\";")
	}

	if err := db.AutoMigrate(&entities.User{}); err != nil {
		log.Printf("Error migrating user database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.MasterProfileSnapshot{}); err != nil {
		log.Printf("Error migrating master profile database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.Recipe{}); err != nil {
		log.Printf("Error migrating recipe database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.ExtractionScan{}); err != nil {
		log.Printf("Error migrating extraction scan database: %v", err)
		return err
	}

	fmt.Println("Database migration complete")
	return nil
}
