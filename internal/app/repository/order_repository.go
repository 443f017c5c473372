package repository

import (
	"github.com/bigsofa/bigsofa-backend/internal/app/model"
	"github.com/bigsofa/bigsofa-backend/pkg/logger"
	"gorm.io/gorm"
)

type OrderRepository interface {
	FindByID(id uint) (*model.Order, error)
	FindAll() ([]model.Order, error)
	UpdateStatus(orderID uint, status model.OrderStatus) error
}

type orderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepository{db: db}
}

func (r *orderRepository) FindByID(id uint) (*model.Order, error) {
	var order model.Order
	err := r.db.Preload("Items").First(&order, id).Error
	if err != nil {
		logger.Debug("Order lookup failed in database", map[string]interface{}{
			"order_id": id,
			"error":    err.Error(),
		})
		return nil, err
	}
	return &order, nil
}

func (r *orderRepository) FindAll() ([]model.Order, error) {
	var orders []model.Order
	err := r.db.Preload("Items").Order("created_at DESC").Find(&orders).Error
	if err != nil {
		logger.Error("Failed to list orders in database", err, nil)
		return nil, err
	}

	logger.Debug("Orders listed in database", map[string]interface{}{
		"count": len(orders),
	})
	return orders, nil
}

func (r *orderRepository) UpdateStatus(orderID uint, status model.OrderStatus) error {
	logger.Debug("Updating order status in database", map[string]interface{}{
		"order_id": orderID,
		"status":   status,
	})

	result := r.db.Model(&model.Order{}).
		Where("id = ?", orderID).
		Update("status", status)
	if result.Error != nil {
		logger.Error("Failed to update order status in database", result.Error, map[string]interface{}{
			"order_id": orderID,
		})
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
