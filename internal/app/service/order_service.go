package service

import (
	"errors"
	"fmt"

	"github.com/bigsofa/bigsofa-backend/internal/app/model"
	"github.com/bigsofa/bigsofa-backend/internal/app/repository"
	"github.com/bigsofa/bigsofa-backend/pkg/logger"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrOrderNotFound   = errors.New("order not found")
	ErrEmptyCart       = errors.New("cart is empty")
	ErrItemUnavailable = errors.New("furniture item unavailable")
	ErrInvalidQuantity = errors.New("quantity must be at least 1")
)

// ContactInfo is the customer block of a guest checkout. There are no
// accounts; every order carries its own contact details.
type ContactInfo struct {
	CustomerName string
	Email        string
	Phone        string
	AddressLine1 string
	AddressLine2 string
	City         string
}

// OrderLine references a catalogue item by ID. Names and unit prices are
// snapshotted from the database at submission time, never trusted from the
// client.
type OrderLine struct {
	FurnitureItemID uint
	Quantity        int
}

type OrderService interface {
	CreateOrder(contact ContactInfo, lines []OrderLine) (*model.Order, error)
	GetOrders() ([]model.Order, error)
	GetOrderByID(id uint) (*model.Order, error)
	UpdateOrderStatus(orderID uint, status model.OrderStatus) error
}

type orderService struct {
	orderRepo repository.OrderRepository
	db        *gorm.DB
}

func NewOrderService(orderRepo repository.OrderRepository, db *gorm.DB) OrderService {
	return &orderService{
		orderRepo: orderRepo,
		db:        db,
	}
}

func (s *orderService) CreateOrder(contact ContactInfo, lines []OrderLine) (*model.Order, error) {
	logger.Info("Creating order", map[string]interface{}{
		"customer":   contact.CustomerName,
		"line_count": len(lines),
	})

	if len(lines) == 0 {
		logger.Warn("Cannot create order: cart is empty", map[string]interface{}{
			"customer": contact.CustomerName,
		})
		return nil, ErrEmptyCart
	}
	for _, line := range lines {
		if line.Quantity < 1 {
			return nil, ErrInvalidQuantity
		}
	}

	tx := s.db.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			logger.Error("Panic during order creation, rolling back", fmt.Errorf("panic: %v", r), map[string]interface{}{
				"customer": contact.CustomerName,
			})
		}
	}()

	var (
		totalCents int64
		orderItems []model.OrderItem
	)

	for _, line := range lines {
		var item model.FurnitureItem
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&item, line.FurnitureItemID).Error; err != nil {
			tx.Rollback()
			if errors.Is(err, gorm.ErrRecordNotFound) {
				logger.Warn("Furniture item not found during order creation", map[string]interface{}{
					"item_id": line.FurnitureItemID,
				})
				return nil, ErrItemUnavailable
			}
			logger.Error("Failed to fetch furniture item during order creation", err, map[string]interface{}{
				"item_id": line.FurnitureItemID,
			})
			return nil, err
		}

		orderItems = append(orderItems, model.OrderItem{
			FurnitureItemID: item.ID,
			Name:            item.Name,
			UnitPriceCents:  item.PriceCents,
			Quantity:        line.Quantity,
		})
		totalCents += item.PriceCents * int64(line.Quantity)
	}

	order := &model.Order{
		CustomerName: contact.CustomerName,
		Email:        contact.Email,
		Phone:        contact.Phone,
		AddressLine1: contact.AddressLine1,
		AddressLine2: contact.AddressLine2,
		City:         contact.City,
		TotalCents:   totalCents,
		Status:       model.OrderStatusPending,
		Items:        orderItems,
	}

	if err := tx.Create(order).Error; err != nil {
		tx.Rollback()
		logger.Error("Failed to create order", err, map[string]interface{}{
			"customer":    contact.CustomerName,
			"total_cents": totalCents,
		})
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		logger.Error("Failed to commit order transaction", err, map[string]interface{}{
			"order_id": order.ID,
		})
		return nil, err
	}

	logger.Info("Order created successfully", map[string]interface{}{
		"order_id":    order.ID,
		"customer":    contact.CustomerName,
		"total_cents": totalCents,
		"item_count":  len(orderItems),
	})

	return s.orderRepo.FindByID(order.ID)
}

func (s *orderService) GetOrders() ([]model.Order, error) {
	orders, err := s.orderRepo.FindAll()
	if err != nil {
		logger.Error("Failed to fetch orders", err, nil)
		return nil, err
	}

	logger.Debug("Orders fetched", map[string]interface{}{
		"count": len(orders),
	})
	return orders, nil
}

func (s *orderService) GetOrderByID(id uint) (*model.Order, error) {
	order, err := s.orderRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	return order, nil
}

func (s *orderService) UpdateOrderStatus(orderID uint, status model.OrderStatus) error {
	err := s.orderRepo.UpdateStatus(orderID, status)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrOrderNotFound
		}
		return err
	}

	logger.Info("Order status updated", map[string]interface{}{
		"order_id": orderID,
		"status":   status,
	})
	return nil
}
