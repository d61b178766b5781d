package migration

import (
	"fmt"
	"log"

	"gorm.io/gorm"

	"koktajlove-api/entities"
)

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&entities.User{}); err != nil {
		log.Fatalf("Error migrating user database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.Ingredient{}); err != nil {
		log.Fatalf("Error migrating ingredient database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.Tag{}); err != nil {
		log.Fatalf("Error migrating tag database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.Cocktail{}); err != nil {
		log.Fatalf("Error migrating cocktail database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.CocktailIngredient{}); err != nil {
		log.Fatalf("Error migrating cocktail ingredient database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.CocktailTag{}); err != nil {
		log.Fatalf("Error migrating cocktail tag database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.Rating{}); err != nil {
		log.Fatalf("Error migrating rating database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.Favorite{}); err != nil {
		log.Fatalf("Error migrating favorite database: %v", err)
		return err
	}

	fmt.Println("Database migration complete")
	return nil
}
