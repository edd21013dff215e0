package seed

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/youssefalsaeed/order-management-system/pkg/db/models"
	"github.com/youssefalsaeed/order-management-system/pkg/logger"
)

// demoUsers and demoProducts are the demonstration fixtures ensured at boot.
// Users are keyed by email, products by name, so re-running is a no-op.
var demoUsers = []models.User{
	{Name: "Youssef Alsaeed", Email: "youssef.alsaeed@example.com", Password: "password1", Address: "123 Main St"},
	{Name: "Ahmed Smith", Email: "ahmed.smith@example.com", Password: "password2", Address: "456 New St"},
	{Name: "John Cena", Email: "john.cena@example.com", Password: "password3", Address: "789 Old St"},
}

var demoProducts = []models.Product{
	{Name: "Denim Jacket", Description: "Crafted from premium denim", Price: decimal.NewFromFloat(19.99), Stock: 100},
	{Name: "Striped Sweater", Description: "Knitted from soft cotton yarn", Price: decimal.NewFromFloat(29.99), Stock: 50},
	{Name: "Hiking Boots", Description: "Waterproof and durable", Price: decimal.NewFromFloat(15.99), Stock: 100},
}

// Run inserts the demo users and products that are not already present.
func Run(ctx context.Context, db *gorm.DB, logg *logger.Logger) error {
	if db == nil {
		return fmt.Errorf("db is required")
	}

	for _, user := range demoUsers {
		var existing models.User
		err := db.WithContext(ctx).Where("email = ?", user.Email).First(&existing).Error
		switch {
		case err == nil:
			if logg != nil {
				logg.Info(logg.WithField(ctx, "user", user.Name), "demo user already exists, skipping")
			}
		case errors.Is(err, gorm.ErrRecordNotFound):
			user.ID = uuid.New()
			if err := db.WithContext(ctx).Create(&user).Error; err != nil {
				return fmt.Errorf("seeding user %q: %w", user.Name, err)
			}
			if logg != nil {
				logg.Info(logg.WithField(ctx, "user", user.Name), "demo user added")
			}
		default:
			return fmt.Errorf("checking user %q: %w", user.Name, err)
		}
	}

	for _, product := range demoProducts {
		var existing models.Product
		err := db.WithContext(ctx).Where("name = ?", product.Name).First(&existing).Error
		switch {
		case err == nil:
			if logg != nil {
				logg.Info(logg.WithField(ctx, "product", product.Name), "demo product already exists, skipping")
			}
		case errors.Is(err, gorm.ErrRecordNotFound):
			product.ID = uuid.New()
			if err := db.WithContext(ctx).Create(&product).Error; err != nil {
				return fmt.Errorf("seeding product %q: %w", product.Name, err)
			}
			if logg != nil {
				logg.Info(logg.WithField(ctx, "product", product.Name), "demo product added")
			}
		default:
			return fmt.Errorf("checking product %q: %w", product.Name, err)
		}
	}

	return nil
}
