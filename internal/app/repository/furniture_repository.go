package repository

import (
	"github.com/bigsofa/bigsofa-backend/internal/app/model"
	"github.com/bigsofa/bigsofa-backend/pkg/logger"
	"gorm.io/gorm"
)

type FurnitureRepository interface {
	Create(item *model.FurnitureItem) error
	FindAll() ([]model.FurnitureItem, error)
	FindByID(id uint) (*model.FurnitureItem, error)
	FindByCategoryID(categoryID uint) ([]model.FurnitureItem, error)
	Update(item *model.FurnitureItem) error
	Delete(id uint) error
}

type furnitureRepository struct {
	db *gorm.DB
}

func NewFurnitureRepository(db *gorm.DB) FurnitureRepository {
	return &furnitureRepository{db: db}
}

func (r *furnitureRepository) Create(item *model.FurnitureItem) error {
	logger.Debug("Creating furniture item in database", map[string]interface{}{
		"name":        item.Name,
		"category_id": item.CategoryID,
		"price_cents": item.PriceCents,
	})

	if err := r.db.Create(item).Error; err != nil {
		logger.Error("Failed to create furniture item in database", err, map[string]interface{}{
			"name":        item.Name,
			"category_id": item.CategoryID,
		})
		return err
	}

	logger.Debug("Furniture item created in database", map[string]interface{}{
		"item_id": item.ID,
		"name":    item.Name,
	})
	return nil
}

func (r *furnitureRepository) FindAll() ([]model.FurnitureItem, error) {
	var items []model.FurnitureItem
	err := r.db.Preload("Category").Order("id ASC").Find(&items).Error
	if err != nil {
		logger.Error("Failed to list furniture items in database", err, nil)
		return nil, err
	}

	logger.Debug("Furniture items listed in database", map[string]interface{}{
		"count": len(items),
	})
	return items, nil
}

func (r *furnitureRepository) FindByID(id uint) (*model.FurnitureItem, error) {
	var item model.FurnitureItem
	err := r.db.Preload("Category").First(&item, id).Error
	if err != nil {
		logger.Debug("Furniture item lookup failed in database", map[string]interface{}{
			"item_id": id,
			"error":   err.Error(),
		})
		return nil, err
	}
	return &item, nil
}

func (r *furnitureRepository) FindByCategoryID(categoryID uint) ([]model.FurnitureItem, error) {
	var items []model.FurnitureItem
	err := r.db.Where("category_id = ?", categoryID).
		Preload("Category").
		Order("id ASC").
		Find(&items).Error
	if err != nil {
		logger.Error("Failed to list furniture items by category in database", err, map[string]interface{}{
			"category_id": categoryID,
		})
		return nil, err
	}

	logger.Debug("Furniture items listed by category in database", map[string]interface{}{
		"category_id": categoryID,
		"count":       len(items),
	})
	return items, nil
}

func (r *furnitureRepository) Update(item *model.FurnitureItem) error {
	logger.Debug("Updating furniture item in database", map[string]interface{}{
		"item_id":     item.ID,
		"name":        item.Name,
		"category_id": item.CategoryID,
		"price_cents": item.PriceCents,
	})

	if err := r.db.Save(item).Error; err != nil {
		logger.Error("Failed to update furniture item in database", err, map[string]interface{}{
			"item_id": item.ID,
		})
		return err
	}
	return nil
}

func (r *furnitureRepository) Delete(id uint) error {
	logger.Debug("Deleting furniture item from database", map[string]interface{}{
		"item_id": id,
	})

	if err := r.db.Delete(&model.FurnitureItem{}, id).Error; err != nil {
		logger.Error("Failed to delete furniture item from database", err, map[string]interface{}{
			"item_id": id,
		})
		return err
	}
	return nil
}
