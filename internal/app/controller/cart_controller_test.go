package controller

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/bigsofa/bigsofa-backend/internal/app/model"
	"github.com/bigsofa/bigsofa-backend/internal/app/repository"
	"github.com/bigsofa/bigsofa-backend/internal/app/service"
	"github.com/bigsofa/bigsofa-backend/internal/catalog"
	"github.com/bigsofa/bigsofa-backend/internal/db"
	"github.com/bigsofa/bigsofa-backend/internal/session"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupCartControllerTest(t *testing.T) (*CartController, *gin.Engine, *gorm.DB, *model.FurnitureItem) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	categoryRepo := repository.NewCategoryRepository(testDB)
	furnitureRepo := repository.NewFurnitureRepository(testDB)
	orderRepo := repository.NewOrderRepository(testDB)

	loader := catalog.NewLoader(func(q catalog.Query) ([]model.FurnitureItem, error) {
		return furnitureRepo.FindAll()
	})
	catalogService := service.NewCatalogService(categoryRepo, furnitureRepo, loader)
	orderService := service.NewOrderService(orderRepo, testDB)
	cartController := NewCartController(catalogService, orderService, nil)

	category := &model.Category{Name: "Living Room"}
	testDB.Create(category)

	item := &model.FurnitureItem{
		Name:       "Linen Sofa",
		PriceCents: 3500000,
		CategoryID: category.ID,
		ImageURL:   "/uploads/sofa.jpg",
	}
	testDB.Create(item)

	gin.SetMode(gin.TestMode)
	router := gin.New()

	return cartController, router, testDB, item
}

// Helper function to set the session in context
func setSessionInContext(sess *session.Session) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("session", sess)
	}
}

func checkoutBody() map[string]interface{} {
	return map[string]interface{}{
		"customerName": "Asha Mrema",
		"email":        "asha@example.com",
		"phone":        "+255700000001",
		"addressLine1": "12 Uhuru Street",
		"city":         "Dar es Salaam",
	}
}

func TestCartController_AddToCart_IncrementsExistingLine(t *testing.T) {
	controller, router, _, item := setupCartControllerTest(t)
	sess := session.New("test-session")

	router.POST("/cart", setSessionInContext(sess), controller.AddToCart)

	body, _ := json.Marshal(map[string]interface{}{"furnitureItemId": item.ID, "quantity": 1})
	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodPost, "/cart", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		require.Equal(t, http.StatusOK, w.Code)
	}

	lines := sess.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, 2, lines[0].Quantity)
	assert.Equal(t, int64(7000000), sess.TotalCents())
}

func TestCartController_AddToCart_UnknownItem(t *testing.T) {
	controller, router, _, _ := setupCartControllerTest(t)
	sess := session.New("test-session")

	router.POST("/cart", setSessionInContext(sess), controller.AddToCart)

	body, _ := json.Marshal(map[string]interface{}{"furnitureItemId": 999})
	req := httptest.NewRequest(http.MethodPost, "/cart", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Empty(t, sess.Lines())
}

func TestCartController_UpdateCartLine_ZeroRemoves(t *testing.T) {
	controller, router, _, item := setupCartControllerTest(t)
	sess := session.New("test-session")
	sess.Add(session.CartLine{FurnitureItemID: item.ID, Name: item.Name, PriceCents: item.PriceCents, Quantity: 2})

	router.PUT("/cart/:itemId", setSessionInContext(sess), controller.UpdateCartLine)

	body := strings.NewReader(`{"quantity": 0}`)
	req := httptest.NewRequest(http.MethodPut, fmt.Sprintf("/cart/%d", item.ID), body)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, sess.Lines())
}

func TestCartController_GetCart_FormatsTotal(t *testing.T) {
	controller, router, _, item := setupCartControllerTest(t)
	sess := session.New("test-session")
	sess.Add(session.CartLine{FurnitureItemID: item.ID, Name: item.Name, PriceCents: item.PriceCents, Quantity: 1})

	router.GET("/cart", setSessionInContext(sess), controller.GetCart)

	req := httptest.NewRequest(http.MethodGet, "/cart", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "TZS 35,000.00", response["totalFormatted"])
	assert.Equal(t, float64(3500000), response["totalCents"])
}

func TestCartController_Checkout_Success(t *testing.T) {
	controller, router, testDB, item := setupCartControllerTest(t)
	sess := session.New("test-session")
	sess.Add(session.CartLine{FurnitureItemID: item.ID, Name: item.Name, PriceCents: item.PriceCents, Quantity: 2})

	router.POST("/cart/checkout", setSessionInContext(sess), controller.Checkout)

	body, _ := json.Marshal(checkoutBody())
	req := httptest.NewRequest(http.MethodPost, "/cart/checkout", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))

	orderID := response["orderId"].(float64)
	assert.NotZero(t, orderID)
	// The confirmation message names the order.
	assert.Contains(t, response["message"], fmt.Sprintf("#%d", int(orderID)))

	// Success empties the cart.
	assert.Empty(t, sess.Lines())

	var order model.Order
	require.NoError(t, testDB.Preload("Items").First(&order, uint(orderID)).Error)
	assert.Equal(t, int64(7000000), order.TotalCents)
	require.Len(t, order.Items, 1)
	assert.Equal(t, 2, order.Items[0].Quantity)
}

func TestCartController_Checkout_EmptyCart(t *testing.T) {
	controller, router, testDB, _ := setupCartControllerTest(t)
	sess := session.New("test-session")

	router.POST("/cart/checkout", setSessionInContext(sess), controller.Checkout)

	body, _ := json.Marshal(checkoutBody())
	req := httptest.NewRequest(http.MethodPost, "/cart/checkout", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "ORDER_EMPTY_CART", response["error"])

	// Rejected locally: no order row was written.
	var count int64
	testDB.Model(&model.Order{}).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestCartController_Checkout_MissingContactFields(t *testing.T) {
	controller, router, _, item := setupCartControllerTest(t)
	sess := session.New("test-session")
	sess.Add(session.CartLine{FurnitureItemID: item.ID, Name: item.Name, PriceCents: item.PriceCents, Quantity: 1})

	router.POST("/cart/checkout", setSessionInContext(sess), controller.Checkout)

	body := strings.NewReader(`{"customerName": "Asha"}`)
	req := httptest.NewRequest(http.MethodPost, "/cart/checkout", body)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	// The cart is untouched by a failed validation.
	assert.Len(t, sess.Lines(), 1)
}

func TestCartController_Checkout_ConflictWhenInFlight(t *testing.T) {
	controller, router, _, item := setupCartControllerTest(t)
	sess := session.New("in-flight-session")
	sess.Add(session.CartLine{FurnitureItemID: item.ID, Name: item.Name, PriceCents: item.PriceCents, Quantity: 1})

	// Simulate an outstanding submission.
	require.True(t, sess.BeginCheckout())
	t.Cleanup(sess.EndCheckout)

	router.POST("/cart/checkout", setSessionInContext(sess), controller.Checkout)

	body, _ := json.Marshal(checkoutBody())
	req := httptest.NewRequest(http.MethodPost, "/cart/checkout", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "ORDER_IN_FLIGHT", response["error"])
	assert.Len(t, sess.Lines(), 1)
}

func TestCartController_Checkout_FailurePreservesCart(t *testing.T) {
	controller, router, _, item := setupCartControllerTest(t)
	sess := session.New("test-session")
	sess.Add(session.CartLine{FurnitureItemID: item.ID, Name: item.Name, PriceCents: item.PriceCents, Quantity: 1})
	// A line for an item that no longer exists makes the submission fail.
	sess.Add(session.CartLine{FurnitureItemID: 999, Name: "Ghost", PriceCents: 100, Quantity: 1})

	router.POST("/cart/checkout", setSessionInContext(sess), controller.Checkout)

	body, _ := json.Marshal(checkoutBody())
	req := httptest.NewRequest(http.MethodPost, "/cart/checkout", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "ORDER_INVALID_ITEMS", response["error"])

	// The customer can fix the cart and retry.
	assert.Len(t, sess.Lines(), 2)

	// And a later attempt is not blocked by a stuck in-flight flag.
	assert.True(t, sess.BeginCheckout())
	sess.EndCheckout()
}
