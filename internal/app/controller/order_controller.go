package controller

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/bigsofa/bigsofa-backend/internal/app/service"
	apperrors "github.com/bigsofa/bigsofa-backend/internal/errors"
	"github.com/bigsofa/bigsofa-backend/internal/middleware"
	"github.com/bigsofa/bigsofa-backend/internal/websocket"
	"github.com/bigsofa/bigsofa-backend/pkg/util"
	"github.com/gin-gonic/gin"
)

// OrderController accepts direct order submissions carrying their own item
// list, for clients that manage cart state themselves.
type OrderController struct {
	orderService service.OrderService
	hub          *websocket.Hub
}

func NewOrderController(orderService service.OrderService, hub *websocket.Hub) *OrderController {
	return &OrderController{
		orderService: orderService,
		hub:          hub,
	}
}

type OrderItemRequest struct {
	FurnitureItemID uint `json:"furnitureItemId" binding:"required"`
	Quantity        int  `json:"quantity" binding:"required,gt=0"`
}

type CreateOrderRequest struct {
	CustomerName string             `json:"customerName" binding:"required"`
	Email        string             `json:"email" binding:"required,email"`
	Phone        string             `json:"phone"`
	AddressLine1 string             `json:"addressLine1" binding:"required"`
	AddressLine2 string             `json:"addressLine2"`
	City         string             `json:"city"`
	Items        []OrderItemRequest `json:"items" binding:"required,min=1,dive"`
}

// CreateOrder submits an order
// POST /api/orders
func (ctrl *OrderController) CreateOrder(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid order request", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Please fill in your contact details and at least one item")
		return
	}

	lines := make([]service.OrderLine, len(req.Items))
	for i, item := range req.Items {
		lines[i] = service.OrderLine{
			FurnitureItemID: item.FurnitureItemID,
			Quantity:        item.Quantity,
		}
	}

	order, err := ctrl.orderService.CreateOrder(service.ContactInfo{
		CustomerName: req.CustomerName,
		Email:        req.Email,
		Phone:        req.Phone,
		AddressLine1: req.AddressLine1,
		AddressLine2: req.AddressLine2,
		City:         req.City,
	}, lines)
	if err != nil {
		log.Error("Order submission failed", err, nil)
		switch {
		case errors.Is(err, service.ErrEmptyCart):
			apperrors.BadRequest(c, apperrors.OrderEmptyCart, "Your cart is empty")
		case errors.Is(err, service.ErrItemUnavailable):
			apperrors.BadRequest(c, apperrors.OrderInvalidItems, "An item in your order is no longer available")
		case errors.Is(err, service.ErrInvalidQuantity):
			apperrors.BadRequest(c, apperrors.OrderInvalidItems, "Quantities must be at least 1")
		default:
			apperrors.RespondWithError(c, http.StatusInternalServerError, apperrors.OrderCreateFailed, "We could not place your order. Please try again")
		}
		return
	}

	if ctrl.hub != nil {
		ctrl.hub.BroadcastNewOrder(order)
	}

	log.Info("Order submitted", map[string]interface{}{
		"order_id": order.ID,
	})

	c.JSON(http.StatusCreated, gin.H{
		"orderId":        order.ID,
		"totalCents":     order.TotalCents,
		"totalFormatted": util.FormatTZS(order.TotalCents),
		"message":        fmt.Sprintf("Thank you! Your order #%d has been received. We will contact you to arrange delivery.", order.ID),
	})
}
