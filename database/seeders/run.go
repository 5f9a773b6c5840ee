// Package seeders bootstraps the database. Seeding is the only way an admin
// account comes into existence; no registration endpoint grants that role.
package seeders

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/shashiranjanraj/rasoi/app/models"
	"github.com/shashiranjanraj/rasoi/app/repositories"
	"github.com/shashiranjanraj/rasoi/config"
	"github.com/shashiranjanraj/rasoi/pkg/auth"
	"github.com/shashiranjanraj/rasoi/pkg/logger"
)

// Run seeds the admin account from ADMIN_EMAIL / ADMIN_PASSWORD and, when
// demo is true, a small demo dataset. Re-running is safe: existing records
// are left untouched.
func Run(ctx context.Context, db *mongo.Database, demo bool) error {
	accounts := repositories.NewAccountRepository(db)

	if err := seedAdmin(ctx, accounts); err != nil {
		return err
	}
	if demo {
		return seedDemo(ctx, db, accounts)
	}
	return nil
}

func seedAdmin(ctx context.Context, accounts repositories.AccountRepository) error {
	email := config.AdminEmail()
	password := config.AdminPassword()
	if email == "" || password == "" {
		return fmt.Errorf("ADMIN_EMAIL and ADMIN_PASSWORD must be set to seed the admin account")
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}

	admin := models.Account{
		Name:     "Administrator",
		Email:    email,
		Password: hash,
		Role:     models.RoleAdmin,
	}
	if err := accounts.Create(ctx, &admin); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			logger.Info("admin account already exists", "email", email)
			return nil
		}
		return err
	}
	logger.Info("admin account seeded", "email", email)
	return nil
}

func seedDemo(ctx context.Context, db *mongo.Database, accounts repositories.AccountRepository) error {
	services := repositories.NewCateringServiceRepository(db)
	categories := repositories.NewMenuCategoryRepository(db)
	items := repositories.NewMenuItemRepository(db)

	hash, err := auth.HashPassword("password123")
	if err != nil {
		return err
	}

	manager := models.Account{
		Name:            "Demo Manager",
		Email:           "manager@demo.local",
		Password:        hash,
		Role:            models.RoleManager,
		PhoneNumber:     "9876543210",
		CateringService: "Sunrise Catering",
	}
	if err := accounts.Create(ctx, &manager); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			logger.Info("demo data already seeded")
			return nil
		}
		return err
	}

	customer := models.Account{
		Name:     "Demo Customer",
		Email:    "customer@demo.local",
		Password: hash,
		Role:     models.RoleCustomer,
	}
	if err := accounts.Create(ctx, &customer); err != nil && !errors.Is(err, repositories.ErrDuplicate) {
		return err
	}

	svc := models.CateringService{
		Manager:     manager.ID,
		Name:        "Sunrise Catering",
		Description: "Weddings, birthdays and corporate events.",
		Location:    "Pune",
		Status:      models.ServiceApproved,
	}
	if err := services.Create(ctx, &svc); err != nil {
		return err
	}

	veg := models.MenuCategory{CateringService: svc.ID, Name: models.CategoryVeg}
	nonVeg := models.MenuCategory{CateringService: svc.ID, Name: models.CategoryNonVeg}
	for _, category := range []*models.MenuCategory{&veg, &nonVeg} {
		if err := categories.Create(ctx, category); err != nil {
			return err
		}
		if err := services.PushCategory(ctx, svc.ID, category.ID); err != nil {
			return err
		}
	}

	dishes := []models.MenuItem{
		{CateringService: svc.ID, Category: veg.ID, Name: "Veg Biryani", Price: 250},
		{CateringService: svc.ID, Category: veg.ID, Name: "Paneer Tikka", Price: 180},
		{CateringService: svc.ID, Category: nonVeg.ID, Name: "Chicken Biryani", Price: 320},
	}
	for i := range dishes {
		if err := items.Create(ctx, &dishes[i]); err != nil {
			return err
		}
		if err := services.PushMenuItem(ctx, svc.ID, dishes[i].ID); err != nil {
			return err
		}
	}

	logger.Info("demo data seeded", "service", svc.Name, "items", len(dishes))
	return nil
}
