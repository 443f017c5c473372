package controller

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/bigsofa/bigsofa-backend/internal/app/model"
	"github.com/bigsofa/bigsofa-backend/internal/app/service"
	apperrors "github.com/bigsofa/bigsofa-backend/internal/errors"
	"github.com/bigsofa/bigsofa-backend/internal/middleware"
	ws "github.com/bigsofa/bigsofa-backend/internal/websocket"
	"github.com/bigsofa/bigsofa-backend/pkg/util"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/xuri/excelize/v2"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// The dashboard runs on its own origin; the token check in the admin
	// middleware gates access.
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type AdminOrderController struct {
	orderService service.OrderService
	hub          *ws.Hub
}

func NewAdminOrderController(orderService service.OrderService, hub *ws.Hub) *AdminOrderController {
	return &AdminOrderController{
		orderService: orderService,
		hub:          hub,
	}
}

type UpdateOrderStatusRequest struct {
	Status model.OrderStatus `json:"status" binding:"required"`
}

// ListOrders returns all orders, newest first
// GET /api/admin/orders
func (ctrl *AdminOrderController) ListOrders(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	orders, err := ctrl.orderService.GetOrders()
	if err != nil {
		log.Error("Failed to list orders for dashboard", err, nil)
		apperrors.InternalError(c, "Could not load orders")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"orders": orders,
		"count":  len(orders),
	})
}

// GetOrder returns one order with its lines
// GET /api/admin/orders/:id
func (ctrl *AdminOrderController) GetOrder(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Order ID must be a number")
		return
	}

	order, err := ctrl.orderService.GetOrderByID(uint(id))
	if err != nil {
		if errors.Is(err, service.ErrOrderNotFound) {
			apperrors.NotFound(c, apperrors.OrderNotFound, "Order not found")
			return
		}
		log.Error("Failed to fetch order for dashboard", err, map[string]interface{}{
			"order_id": id,
		})
		apperrors.InternalError(c, "Could not load this order")
		return
	}

	c.JSON(http.StatusOK, order)
}

// UpdateStatus moves an order through its lifecycle
// PATCH /api/admin/orders/:id/status
func (ctrl *AdminOrderController) UpdateStatus(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Order ID must be a number")
		return
	}

	var req UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "status is required")
		return
	}
	if !validOrderStatus(req.Status) {
		apperrors.BadRequest(c, apperrors.ValidationInvalidFormat, "Unknown order status")
		return
	}

	if err := ctrl.orderService.UpdateOrderStatus(uint(id), req.Status); err != nil {
		if errors.Is(err, service.ErrOrderNotFound) {
			apperrors.NotFound(c, apperrors.OrderNotFound, "Order not found")
			return
		}
		log.Error("Failed to update order status", err, map[string]interface{}{
			"order_id": id,
		})
		apperrors.InternalError(c, "Could not update the order")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"orderId": id,
		"status":  req.Status,
	})
}

// ExportOrders streams all orders as an XLSX workbook
// GET /api/admin/orders/export
func (ctrl *AdminOrderController) ExportOrders(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	orders, err := ctrl.orderService.GetOrders()
	if err != nil {
		log.Error("Failed to fetch orders for export", err, nil)
		apperrors.InternalError(c, "Could not export orders")
		return
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)

	headers := []string{"ID", "Customer", "Email", "Phone", "Address", "City", "Items", "Total", "Status", "Created At"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
	}

	for rowIdx, order := range orders {
		address := order.AddressLine1
		if order.AddressLine2 != "" {
			address += ", " + order.AddressLine2
		}

		var itemParts []string
		for _, item := range order.Items {
			itemParts = append(itemParts, fmt.Sprintf("%dx %s", item.Quantity, item.Name))
		}

		values := []interface{}{
			order.ID,
			order.CustomerName,
			order.Email,
			order.Phone,
			address,
			order.City,
			strings.Join(itemParts, "; "),
			util.FormatTZS(order.TotalCents),
			string(order.Status),
			order.CreatedAt.Format("2006-01-02 15:04:05"),
		}
		for colIdx, v := range values {
			cell, _ := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			f.SetCellValue(sheet, cell, v)
		}
	}

	c.Header("Content-Disposition", "attachment; filename=orders.xlsx")
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Transfer-Encoding", "binary")

	if err := f.Write(c.Writer); err != nil {
		log.Error("Failed to write orders export", err, nil)
	}
}

// OrderFeed upgrades the connection and attaches it to the order event hub
// GET /api/admin/orders/ws
func (ctrl *AdminOrderController) OrderFeed(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Warn("WebSocket upgrade failed", map[string]interface{}{
			"error": err.Error(),
		})
		return
	}

	ctrl.hub.Serve(conn)
}

func validOrderStatus(status model.OrderStatus) bool {
	switch status {
	case model.OrderStatusPending, model.OrderStatusConfirmed, model.OrderStatusDelivered, model.OrderStatusCancelled:
		return true
	}
	return false
}
