package repository

import (
	"github.com/bigsofa/bigsofa-backend/internal/app/model"
	"github.com/bigsofa/bigsofa-backend/pkg/logger"
	"gorm.io/gorm"
)

type CategoryRepository interface {
	FindAll() ([]model.Category, error)
	FindByID(id uint) (*model.Category, error)
	Create(category *model.Category) error
}

type categoryRepository struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) CategoryRepository {
	return &categoryRepository{db: db}
}

func (r *categoryRepository) FindAll() ([]model.Category, error) {
	var categories []model.Category
	err := r.db.Order("id ASC").Find(&categories).Error
	if err != nil {
		logger.Error("Failed to list categories in database", err, nil)
		return nil, err
	}

	logger.Debug("Categories listed in database", map[string]interface{}{
		"count": len(categories),
	})
	return categories, nil
}

func (r *categoryRepository) FindByID(id uint) (*model.Category, error) {
	var category model.Category
	err := r.db.First(&category, id).Error
	if err != nil {
		logger.Debug("Category lookup failed in database", map[string]interface{}{
			"category_id": id,
			"error":       err.Error(),
		})
		return nil, err
	}
	return &category, nil
}

func (r *categoryRepository) Create(category *model.Category) error {
	if err := r.db.Create(category).Error; err != nil {
		logger.Error("Failed to create category in database", err, map[string]interface{}{
			"name": category.Name,
		})
		return err
	}

	logger.Debug("Category created in database", map[string]interface{}{
		"category_id": category.ID,
		"name":        category.Name,
	})
	return nil
}
