package migration

import (
	"fmt"
	"foodgram-backend/entities"
	"log"

	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&entities.User{}); err != nil {
		log.Fatalf("Error migrating user database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.Follow{}); err != nil {
		log.Fatalf("Error migrating follow database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.Tag{}, &entities.Ingredient{}); err != nil {
		log.Fatalf("Error migrating catalog database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.Recipe{}, &entities.RecipeIngredient{}); err != nil {
		log.Fatalf("Error migrating recipe database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.Favorite{}, &entities.ShoppingCart{}); err != nil {
		log.Fatalf("Error migrating ledger database: %v", err)
		return err
	}

	fmt.Println("Database migration complete")
	return nil
}
