package main

import (
	"context"
	"fmt"

	"foodie/internal/config"
	"foodie/internal/database"
	"foodie/internal/domain"
	jwtsvc "foodie/internal/pkg/jwt"
	"foodie/internal/pkg/logger"
	"foodie/internal/pkg/validator"
	"foodie/internal/repository"

	"go.uber.org/zap"
)

type seedMenu struct {
	menu  domain.Menu
	meals []domain.MenuMeal
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}
	log, err := logger.New(cfg.AppEnv, cfg.LogLevel)
	if err != nil {
		panic(err)
	}
	defer func() { _ = log.Sync() }()

	if cfg.IsProdLike() {
		log.Fatal("refusing to seed a production-like environment", zap.String("env", cfg.AppEnv))
	}

	db, err := database.Connect(cfg.DatabaseURL, log)
	if err != nil {
		log.Fatal("database connect failed", zap.Error(err))
	}
	if err := repository.Migrate(db); err != nil {
		log.Fatal("database migrate failed", zap.Error(err))
	}

	log.Info("cleaning old data")
	for _, table := range []string{"bookings", "menu_meals", "meals", "menus", "experiences", "chefs", "users"} {
		if err := db.Exec("DELETE FROM " + table).Error; err != nil {
			log.Fatal("cleanup failed", zap.String("table", table), zap.Error(err))
		}
	}

	ctx := context.Background()
	users := repository.NewUserRepository(db)
	experiences := repository.NewExperienceRepository(db)
	menus := repository.NewMenuRepository(db)
	meals := repository.NewMealRepository(db)

	// ================== USERS ==================
	accounts := []domain.User{
		{ID: "00000000-0000-0000-0000-00000000a001", Email: "admin@foodie.dev", Name: "Ops Admin", Role: domain.RoleAdmin},
		{ID: "00000000-0000-0000-0000-00000000c001", Email: "client1@foodie.dev", Name: "Dana Client", Role: domain.RoleClient},
		{ID: "00000000-0000-0000-0000-00000000c002", Email: "client2@foodie.dev", Name: "Alex Client", Role: domain.RoleClient},
		{ID: "00000000-0000-0000-0000-00000000f001", Email: "chef1@foodie.dev", Name: "Sam Chef", Role: domain.RoleChef},
	}
	for i := range accounts {
		mustValid(log, "user", &accounts[i])
		if err := users.Upsert(ctx, &accounts[i]); err != nil {
			log.Fatal("create user failed", zap.String("email", accounts[i].Email), zap.Error(err))
		}
	}

	// ================== MEALS ==================
	dishes := map[string]*domain.Meal{
		"burrata":  {Name: "Burrata with heirloom tomatoes", Price: 14.5, Category: domain.MealStarter, CuisineType: "italian", DietaryTags: []string{"vegetarian"}},
		"risotto":  {Name: "Wild mushroom risotto", Price: 24.99, Category: domain.MealMain, CuisineType: "italian", DietaryTags: []string{"vegetarian", "gluten-free"}},
		"branzino": {Name: "Grilled branzino", Price: 31, Category: domain.MealMain, CuisineType: "mediterranean", DietaryTags: []string{"gluten-free"}},
		"tiramisu": {Name: "Tiramisu", Price: 9.75, Category: domain.MealDessert, CuisineType: "italian"},
		"tacos":    {Name: "Al pastor tacos", Price: 12, Category: domain.MealMain, CuisineType: "mexican"},
		"churros":  {Name: "Churros with chocolate", Price: 7.5, Category: domain.MealDessert, CuisineType: "mexican", DietaryTags: []string{"vegetarian"}},
	}
	for key, meal := range dishes {
		meal.IsActive = true
		mustValid(log, "meal", meal)
		if err := meals.Create(ctx, meal); err != nil {
			log.Fatal("create meal failed", zap.String("meal", key), zap.Error(err))
		}
	}

	// ================== EXPERIENCES & MENUS ==================
	catalog := []struct {
		experience domain.Experience
		menus      []seedMenu
	}{
		{
			experience: domain.Experience{
				Name: "Private dinner", Slug: "private-dinner", Category: "dinner",
				Description: "A chef cooks a multi-course dinner in your home.",
				IsFeatured:  true, Status: domain.ExperiencePublished,
			},
			menus: []seedMenu{
				{
					menu: domain.Menu{
						Name: "Tuscan evening", BasePrice: 1000, PricePerPerson: 200,
						GuestMin: 2, GuestMax: 10, Status: domain.MenuActive,
						DietaryTags: []string{"vegetarian-option"},
					},
					meals: []domain.MenuMeal{
						{MealID: "burrata", CourseType: "starter", OrderIndex: 1},
						{MealID: "risotto", CourseType: "main", OrderIndex: 2},
						{MealID: "tiramisu", CourseType: "dessert", OrderIndex: 3},
					},
				},
				{
					menu: domain.Menu{
						Name: "Seaside table", BasePrice: 1400, PricePerPerson: 260,
						GuestMin: 4, GuestMax: 12, Status: domain.MenuInactive,
					},
					meals: []domain.MenuMeal{
						{MealID: "branzino", CourseType: "main", OrderIndex: 1},
					},
				},
			},
		},
		{
			experience: domain.Experience{
				Name: "Taco party", Slug: "taco-party", Category: "party",
				Description: "Street food for a crowd.",
				Status:      domain.ExperiencePublished,
			},
			menus: []seedMenu{
				{
					menu: domain.Menu{
						Name: "Fiesta", BasePrice: 300, PricePerPerson: 45,
						GuestMin: 8, GuestMax: 40, Status: domain.MenuActive,
					},
					meals: []domain.MenuMeal{
						{MealID: "tacos", CourseType: "main", OrderIndex: 1},
						{MealID: "churros", CourseType: "dessert", OrderIndex: 2},
					},
				},
			},
		},
		{
			experience: domain.Experience{
				Name: "Cooking class", Slug: "cooking-class", Category: "class",
				Status: domain.ExperienceDraft,
			},
		},
	}

	for _, entry := range catalog {
		exp := entry.experience
		mustValid(log, "experience", &exp)
		if err := experiences.Create(ctx, &exp); err != nil {
			log.Fatal("create experience failed", zap.String("slug", exp.Slug), zap.Error(err))
		}

		for _, sm := range entry.menus {
			menu := sm.menu
			menu.ExperienceID = exp.ID
			mustValid(log, "menu", &menu)
			if err := menus.Create(ctx, &menu); err != nil {
				log.Fatal("create menu failed", zap.String("menu", menu.Name), zap.Error(err))
			}

			links := make([]domain.MenuMeal, 0, len(sm.meals))
			for _, l := range sm.meals {
				l.MealID = dishes[l.MealID].ID
				links = append(links, l)
			}
			if err := meals.AssignToMenu(ctx, menu.ID, links); err != nil {
				log.Fatal("assign meals failed", zap.String("menu", menu.Name), zap.Error(err))
			}
			log.Info("menu seeded", zap.String("experience", exp.Slug), zap.String("menu", menu.Name), zap.String("id", menu.ID))
		}
	}

	// ================== DEV TOKENS ==================
	tokens := jwtsvc.New(cfg.JWTSecret, cfg.JWTDevTTL)
	fmt.Println("Seed completed. Dev tokens:")
	for _, u := range accounts {
		token, err := tokens.GenerateToken(u.ID, u.Email, string(u.Role))
		if err != nil {
			log.Fatal("token generation failed", zap.String("email", u.Email), zap.Error(err))
		}
		fmt.Printf("%-8s %-22s %s\n", u.Role, u.Email, token)
	}
}

func mustValid(log *zap.Logger, kind string, v any) {
	if errs := validator.Validate(v); errs != nil {
		log.Fatal("invalid seed data", zap.String("kind", kind), zap.String("errors", validator.Summary(errs)))
	}
}
