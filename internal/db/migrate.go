package db

import (
	"github.com/bigsofa/bigsofa-backend/internal/app/model"
	"github.com/bigsofa/bigsofa-backend/pkg/logger"
)

// Migrate runs database migrations
func Migrate() error {
	logger.Info("Running database migrations...")

	models := []interface{}{
		&model.Category{},
		&model.FurnitureItem{},
		&model.Order{},
		&model.OrderItem{},
	}

	if err := DB.AutoMigrate(models...); err != nil {
		logger.Error("Failed to run migrations", err)
		return err
	}

	logger.Info("Database migrations completed successfully", map[string]interface{}{
		"models_count": len(models),
	})
	return nil
}

// Seed creates the showroom categories if they do not exist yet.
func Seed() error {
	return seedCategories()
}

func seedCategories() error {
	var count int64
	if err := DB.Model(&model.Category{}).Count(&count).Error; err != nil {
		return err
	}

	if count > 0 {
		logger.Info("Categories already seeded, skipping...", map[string]interface{}{
			"existing_count": count,
		})
		return nil
	}

	logger.Info("Seeding category data...")

	categories := []model.Category{
		{Name: "Living Room"},
		{Name: "Dining"},
		{Name: "Bedroom"},
		{Name: "Office"},
	}

	for _, category := range categories {
		if err := DB.Create(&category).Error; err != nil {
			logger.Error("Failed to create category", err, map[string]interface{}{
				"category": category.Name,
			})
			return err
		}
	}

	logger.Info("Categories seeded successfully", map[string]interface{}{
		"total_categories": len(categories),
	})
	return nil
}
