package controller

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/bigsofa/bigsofa-backend/internal/app/service"
	apperrors "github.com/bigsofa/bigsofa-backend/internal/errors"
	"github.com/bigsofa/bigsofa-backend/internal/middleware"
	"github.com/bigsofa/bigsofa-backend/internal/session"
	"github.com/bigsofa/bigsofa-backend/internal/websocket"
	"github.com/bigsofa/bigsofa-backend/pkg/util"
	"github.com/gin-gonic/gin"
)

type CartController struct {
	catalogService service.CatalogService
	orderService   service.OrderService
	hub            *websocket.Hub
}

func NewCartController(
	catalogService service.CatalogService,
	orderService service.OrderService,
	hub *websocket.Hub,
) *CartController {
	return &CartController{
		catalogService: catalogService,
		orderService:   orderService,
		hub:            hub,
	}
}

type AddToCartRequest struct {
	FurnitureItemID uint `json:"furnitureItemId" binding:"required"`
	Quantity        int  `json:"quantity"`
}

type UpdateCartLineRequest struct {
	// Zero or negative removes the line, so no gt=0 constraint here.
	Quantity *int `json:"quantity" binding:"required"`
}

type CheckoutRequest struct {
	CustomerName string `json:"customerName" binding:"required"`
	Email        string `json:"email" binding:"required,email"`
	Phone        string `json:"phone"`
	AddressLine1 string `json:"addressLine1" binding:"required"`
	AddressLine2 string `json:"addressLine2"`
	City         string `json:"city"`
}

func cartView(sess *session.Session) gin.H {
	lines := sess.Lines()
	total := sess.TotalCents()
	return gin.H{
		"items":          lines,
		"count":          sess.ItemCount(),
		"totalCents":     total,
		"totalFormatted": util.FormatTZS(total),
	}
}

// GetCart returns the session cart
// GET /api/cart
func (ctrl *CartController) GetCart(c *gin.Context) {
	sess := middleware.GetSessionFromContext(c)
	c.JSON(http.StatusOK, cartView(sess))
}

// AddToCart adds an item to the session cart, incrementing the existing
// line when the item is already present
// POST /api/cart
func (ctrl *CartController) AddToCart(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)
	sess := middleware.GetSessionFromContext(c)

	var req AddToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid add to cart request", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "furnitureItemId is required")
		return
	}

	item, err := ctrl.catalogService.GetItem(req.FurnitureItemID)
	if err != nil {
		if errors.Is(err, service.ErrItemNotFound) {
			apperrors.NotFound(c, apperrors.CatalogItemNotFound, "We could not find that item")
			return
		}
		log.Error("Failed to fetch item for cart", err, map[string]interface{}{
			"item_id": req.FurnitureItemID,
		})
		apperrors.InternalError(c, "Could not add this item right now")
		return
	}

	sess.Add(session.CartLine{
		FurnitureItemID: item.ID,
		Name:            item.Name,
		PriceCents:      item.PriceCents,
		ImageURL:        item.ImageURL,
		Quantity:        req.Quantity,
	})

	log.Info("Item added to cart", map[string]interface{}{
		"session_id": sess.ID,
		"item_id":    item.ID,
		"quantity":   req.Quantity,
	})

	c.JSON(http.StatusOK, cartView(sess))
}

// UpdateCartLine replaces the quantity of one cart line; zero or negative
// removes it
// PUT /api/cart/:itemId
func (ctrl *CartController) UpdateCartLine(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)
	sess := middleware.GetSessionFromContext(c)

	itemID, err := strconv.ParseUint(c.Param("itemId"), 10, 32)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Item ID must be a number")
		return
	}

	var req UpdateCartLineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "quantity is required")
		return
	}

	sess.SetQuantity(uint(itemID), *req.Quantity)

	log.Debug("Cart line updated", map[string]interface{}{
		"session_id": sess.ID,
		"item_id":    itemID,
		"quantity":   *req.Quantity,
	})

	c.JSON(http.StatusOK, cartView(sess))
}

// RemoveCartLine removes one cart line
// DELETE /api/cart/:itemId
func (ctrl *CartController) RemoveCartLine(c *gin.Context) {
	sess := middleware.GetSessionFromContext(c)

	itemID, err := strconv.ParseUint(c.Param("itemId"), 10, 32)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Item ID must be a number")
		return
	}

	sess.Remove(uint(itemID))
	c.JSON(http.StatusOK, cartView(sess))
}

// ClearCart empties the session cart
// DELETE /api/cart
func (ctrl *CartController) ClearCart(c *gin.Context) {
	sess := middleware.GetSessionFromContext(c)
	sess.Clear()
	c.JSON(http.StatusOK, cartView(sess))
}

// Checkout submits the session cart as an order. An empty cart is rejected
// before any persistence work, only one submission may be in flight per
// session, and the cart survives a failed submission so the customer can
// retry without rebuilding it.
// POST /api/cart/checkout
func (ctrl *CartController) Checkout(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)
	sess := middleware.GetSessionFromContext(c)

	var req CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid checkout request", map[string]interface{}{
			"session_id": sess.ID,
			"error":      err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Please fill in your name, email and delivery address")
		return
	}

	cartLines := sess.Lines()
	if len(cartLines) == 0 {
		apperrors.BadRequest(c, apperrors.OrderEmptyCart, "Your cart is empty")
		return
	}

	if !sess.BeginCheckout() {
		log.Warn("Checkout already in flight", map[string]interface{}{
			"session_id": sess.ID,
		})
		apperrors.Conflict(c, apperrors.OrderInFlight, "Your order is already being submitted")
		return
	}
	defer sess.EndCheckout()

	lines := make([]service.OrderLine, len(cartLines))
	for i, line := range cartLines {
		lines[i] = service.OrderLine{
			FurnitureItemID: line.FurnitureItemID,
			Quantity:        line.Quantity,
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
		log.Error("Checkout failed", err, map[string]interface{}{
			"session_id": sess.ID,
		})
		switch {
		case errors.Is(err, service.ErrItemUnavailable):
			apperrors.BadRequest(c, apperrors.OrderInvalidItems, "An item in your cart is no longer available")
		case errors.Is(err, service.ErrInvalidQuantity):
			apperrors.BadRequest(c, apperrors.OrderInvalidItems, "Quantities must be at least 1")
		default:
			apperrors.RespondWithError(c, http.StatusInternalServerError, apperrors.OrderCreateFailed, "We could not place your order. Please try again")
		}
		return
	}

	// Only a confirmed order empties the cart.
	sess.Clear()

	if ctrl.hub != nil {
		ctrl.hub.BroadcastNewOrder(order)
	}

	log.Info("Checkout completed", map[string]interface{}{
		"session_id": sess.ID,
		"order_id":   order.ID,
	})

	c.JSON(http.StatusCreated, gin.H{
		"orderId":        order.ID,
		"totalCents":     order.TotalCents,
		"totalFormatted": util.FormatTZS(order.TotalCents),
		"message":        fmt.Sprintf("Thank you! Your order #%d has been received. We will contact you to arrange delivery.", order.ID),
	})
}
