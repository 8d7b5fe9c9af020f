package migration

import (
	"Health-Kitchen-Backend/entities"
	"encoding/json"
	"fmt"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type seedRecipe struct {
	Slug         string
	Name         string
	Cuisine      string
	GlutenFree   bool
	Vegan        bool
	DiabeticSafe bool
	RenalSafe    bool
	Ingredients  []string
	Instructions string
	Calories     int
	SugarG       int
	SodiumMg     int
}

var recipeSeeds = []seedRecipe{
	{
		Slug:         "paneer-butter-masala",
		Name:         "Paneer Butter Masala",
		Cuisine:      "Indian",
		GlutenFree:   true,
		RenalSafe:    true,
		Ingredients:  []string{"paneer", "butter", "tomato", "cream"},
		Instructions: "Saute tomato puree in butter, add cream and simmer, fold in paneer cubes.",
		Calories:     350,
		SugarG:       8,
		SodiumMg:     320,
	},
	{
		Slug:         "moong-dal-khichdi",
		Name:         "Moong Dal Khichdi",
		Cuisine:      "Indian",
		GlutenFree:   true,
		Vegan:        true,
		DiabeticSafe: true,
		RenalSafe:    true,
		Ingredients:  []string{"moong dal", "rice", "ghee", "salt"},
		Instructions: "Pressure cook rinsed moong dal and rice with salt, finish with ghee.",
		Calories:     280,
		SugarG:       2,
		SodiumMg:     180,
	},
}

// Seed inserts the sample recipes. Existing slugs are left untouched.
func Seed(db *gorm.DB) error {
	for _, s := range recipeSeeds {
		ingredients, err := json.Marshal(s.Ingredients)
		if err != nil {
			return err
		}
		recipe := entities.Recipe{
			Slug:         s.Slug,
			Name:         s.Name,
			Cuisine:      s.Cuisine,
			GlutenFree:   s.GlutenFree,
			Vegan:        s.Vegan,
			DiabeticSafe: s.DiabeticSafe,
			RenalSafe:    s.RenalSafe,
			Ingredients:  datatypes.JSON(ingredients),
			Instructions: s.Instructions,
			Calories:     s.Calories,
			SugarG:       s.SugarG,
			SodiumMg:     s.SodiumMg,
		}
		if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&recipe).Error; err != nil {
			return fmt.Errorf("seed recipe %s: %w", s.Slug, err)
		}
	}
	return nil
}
