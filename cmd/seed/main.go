package main

import (
	"context"
	"errors"
	"log"

	"github.com/joho/godotenv"
	"gorm.io/gorm"

	"github.com/annapurna-ai/backend/config"
	"github.com/annapurna-ai/backend/internal/database"
	"github.com/annapurna-ai/backend/internal/models"
	"github.com/annapurna-ai/backend/internal/service"
)

const (
	demoName     = "Demo User"
	demoEmail    = "demo@annapurna.local"
	demoPassword = "demo-password-123"
)

func f64(v float64) *float64 { return &v }

// starterRecipes is a small book of everyday Indian dishes so a fresh
// install has something to show before the user generates their own.
var starterRecipes = []models.Recipe{
	{
		Name:        "Palak Paneer",
		Description: "Paneer cubes simmered in a spiced spinach gravy.",
		Ingredients: models.JSONBIngredients{
			{Name: "Spinach", Quantity: "500 g"},
			{Name: "Paneer", Quantity: "200 g", Notes: "cubed"},
			{Name: "Onion", Quantity: "1 medium"},
			{Name: "Ginger-garlic paste", Quantity: "1 tbsp"},
			{Name: "Cream", Quantity: "2 tbsp"},
		},
		Servings: 3,
		Calories: 280,
		Protein:  f64(14),
		Fat:      f64(20),
	},
	{
		Name:        "Dal Tadka",
		Description: "Yellow lentils tempered with cumin, garlic and ghee.",
		Ingredients: models.JSONBIngredients{
			{Name: "Toor dal", Quantity: "1 cup"},
			{Name: "Ghee", Quantity: "1 tbsp"},
			{Name: "Cumin seeds", Quantity: "1 tsp"},
			{Name: "Garlic", Quantity: "4 cloves"},
			{Name: "Turmeric", Quantity: "1/2 tsp"},
		},
		Servings:      4,
		Calories:      180,
		Protein:       f64(9),
		Carbohydrates: f64(27),
		Fat:           f64(4),
		Fiber:         f64(7),
	},
	{
		Name:        "Vegetable Pulao",
		Description: "Fragrant basmati rice cooked with mixed vegetables and whole spices.",
		Ingredients: models.JSONBIngredients{
			{Name: "Basmati rice", Quantity: "1.5 cups"},
			{Name: "Mixed vegetables", Quantity: "2 cups", Notes: "carrot, peas, beans"},
			{Name: "Whole spices", Quantity: "1 tbsp", Notes: "bay leaf, cinnamon, cloves"},
			{Name: "Onion", Quantity: "1 large", Notes: "sliced"},
		},
		Servings:      4,
		Calories:      260,
		Protein:       f64(6),
		Carbohydrates: f64(48),
		Fat:           f64(5),
		Fiber:         f64(4),
	},
	{
		Name:        "Masala Omelette",
		Description: "Eggs whisked with onion, chilli and coriander, pan fried.",
		Ingredients: models.JSONBIngredients{
			{Name: "Eggs", Quantity: "2"},
			{Name: "Onion", Quantity: "1 small", Notes: "finely chopped"},
			{Name: "Green chilli", Quantity: "1"},
			{Name: "Coriander leaves", Quantity: "2 tbsp"},
		},
		Servings: 1,
		Calories: 210,
		Protein:  f64(13),
		Fat:      f64(16),
	},
}

func main() {
	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("[Seed] failed to load config: %v", err)
	}

	db, err := database.New(cfg)
	if err != nil {
		log.Fatalf("[Seed] failed to connect to database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatalf("[Seed] migration failed: %v", err)
	}

	ctx := context.Background()
	auth := service.NewAuthService(db, cfg.JWTSecret)

	var user models.User
	err = db.WithContext(ctx).First(&user, "email = ?", demoEmail).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		if _, err := auth.Register(ctx, demoName, demoEmail, demoPassword, models.NonVegetarian, 60); err != nil {
			log.Fatalf("[Seed] failed to create demo user: %v", err)
		}
		if err := db.WithContext(ctx).First(&user, "email = ?", demoEmail).Error; err != nil {
			log.Fatalf("[Seed] failed to load demo user: %v", err)
		}
		log.Printf("[Seed] created demo user %s", demoEmail)
	case err != nil:
		log.Fatalf("[Seed] failed to look up demo user: %v", err)
	default:
		log.Printf("[Seed] demo user %s already exists", demoEmail)
	}

	recipes := service.NewRecipeService(db)
	seeded := 0
	for _, r := range starterRecipes {
		var count int64
		db.WithContext(ctx).Model(&models.Recipe{}).
			Where("user_id = ? AND name = ?", user.ID, r.Name).Count(&count)
		if count > 0 {
			continue
		}
		recipe := r
		recipe.UserID = user.ID
		if _, err := recipes.CreateRecipe(ctx, &recipe); err != nil {
			log.Fatalf("[Seed] failed to seed recipe %q: %v", r.Name, err)
		}
		seeded++
	}
	log.Printf("[Seed] done, %d recipes added", seeded)
}
