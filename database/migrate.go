package database

import (
	"context"
	"fmt"

	"github.com/yeremiapane/mealbox-app/models"
	"github.com/yeremiapane/mealbox-app/utils"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func AutoMigrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.User{},
		&models.Customer{},
		&models.MenuItem{},
		&models.Pricing{},
		&models.Order{},
		&models.OrderItem{},
		&models.OrderExtra{},
		&models.MealPass{},
		&models.ImportRun{},
	)
	if err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	utils.InfoLogger.Println("AutoMigrate completed.")
	return nil
}

// SeedAdmin creates the bootstrap admin account when it does not exist yet.
func SeedAdmin(ctx context.Context, repo Repository, email, password string) error {
	if email == "" || password == "" {
		return nil
	}
	if _, err := repo.FindUserByEmail(ctx, email); err == nil {
		return nil
	} else if !IsNotFound(err) {
		return err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}
	if err := repo.CreateUser(ctx, &models.User{
		Name:     "Administrator",
		Email:    email,
		Password: string(hashed),
		Role:     models.RoleAdmin,
	}); err != nil {
		return err
	}
	utils.InfoLogger.WithField("email", email).Info("Seeded admin user")
	return nil
}
