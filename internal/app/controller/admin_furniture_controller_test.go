package controller

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"github.com/bigsofa/bigsofa-backend/internal/app/model"
	"github.com/bigsofa/bigsofa-backend/internal/app/repository"
	"github.com/bigsofa/bigsofa-backend/internal/app/service"
	"github.com/bigsofa/bigsofa-backend/internal/catalog"
	"github.com/bigsofa/bigsofa-backend/internal/db"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// fakeStorage records uploads without touching disk.
type fakeStorage struct {
	uploads int
}

func (f *fakeStorage) Upload(_ context.Context, r io.Reader, filename, _ string) (string, error) {
	io.Copy(io.Discard, r)
	f.uploads++
	return "/uploads/stored-" + filename, nil
}

func setupAdminFurnitureTest(t *testing.T) (*AdminFurnitureController, *fakeStorage, *gin.Engine, *gorm.DB, *model.Category) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	furnitureRepo := repository.NewFurnitureRepository(testDB)
	categoryRepo := repository.NewCategoryRepository(testDB)
	loader := catalog.NewLoader(func(q catalog.Query) ([]model.FurnitureItem, error) {
		return furnitureRepo.FindAll()
	})
	furnitureService := service.NewFurnitureService(furnitureRepo, categoryRepo, loader)

	store := &fakeStorage{}
	controller := NewAdminFurnitureController(furnitureService, store, 5*1024*1024)

	category := &model.Category{Name: "Office"}
	testDB.Create(category)

	gin.SetMode(gin.TestMode)
	router := gin.New()

	return controller, store, router, testDB, category
}

type formFields map[string]string

func multipartRequest(t *testing.T, method, target string, fields formFields, withImage bool) *http.Request {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}

	if withImage {
		header := make(textproto.MIMEHeader)
		header.Set("Content-Disposition", `form-data; name="image"; filename="desk.jpg"`)
		header.Set("Content-Type", "image/jpeg")
		part, err := w.CreatePart(header)
		require.NoError(t, err)
		part.Write([]byte("fake image bytes"))
	}

	require.NoError(t, w.Close())

	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

func TestAdminFurnitureController_CreateItem(t *testing.T) {
	controller, store, router, _, category := setupAdminFurnitureTest(t)

	router.POST("/admin/furniture", controller.CreateItem)

	req := multipartRequest(t, http.MethodPost, "/admin/furniture", formFields{
		"name":       "Standing Desk",
		"priceTzs":   "450,000",
		"categoryId": fmt.Sprint(category.ID),
	}, true)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, 1, store.uploads)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	// "450,000" TZS is 45,000,000 minor units.
	assert.Equal(t, float64(45000000), response["priceCents"])
	assert.Equal(t, "/uploads/stored-desk.jpg", response["imageUrl"])
}

func TestAdminFurnitureController_CreateItem_RequiresImage(t *testing.T) {
	controller, _, router, _, category := setupAdminFurnitureTest(t)

	router.POST("/admin/furniture", controller.CreateItem)

	req := multipartRequest(t, http.MethodPost, "/admin/furniture", formFields{
		"name":       "Standing Desk",
		"priceTzs":   "450,000",
		"categoryId": fmt.Sprint(category.ID),
	}, false)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "UPLOAD_FILE_REQUIRED", response["error"])
}

func TestAdminFurnitureController_CreateItem_InvalidPrice(t *testing.T) {
	controller, _, router, _, category := setupAdminFurnitureTest(t)

	router.POST("/admin/furniture", controller.CreateItem)

	req := multipartRequest(t, http.MethodPost, "/admin/furniture", formFields{
		"name":       "Standing Desk",
		"priceTzs":   "not-a-price",
		"categoryId": fmt.Sprint(category.ID),
	}, true)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "CATALOG_INVALID_PRICE", response["error"])
}

func TestAdminFurnitureController_UpdateItem_KeepsImageWithoutFile(t *testing.T) {
	controller, _, router, testDB, category := setupAdminFurnitureTest(t)

	item := &model.FurnitureItem{
		Name:       "Desk Chair",
		PriceCents: 2000000,
		CategoryID: category.ID,
		ImageURL:   "/uploads/chair.jpg",
	}
	testDB.Create(item)

	router.PUT("/admin/furniture/:id", controller.UpdateItem)

	req := multipartRequest(t, http.MethodPut, fmt.Sprintf("/admin/furniture/%d", item.ID), formFields{
		"name":       "Desk Chair Deluxe",
		"priceCents": "2500000",
		"categoryId": fmt.Sprint(category.ID),
	}, false)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "Desk Chair Deluxe", response["name"])
	assert.Equal(t, float64(2500000), response["priceCents"])
	assert.Equal(t, "/uploads/chair.jpg", response["imageUrl"])
}

func TestAdminFurnitureController_UpdateItem_ReplacesImageWithFile(t *testing.T) {
	controller, store, router, testDB, category := setupAdminFurnitureTest(t)

	item := &model.FurnitureItem{
		Name:       "Desk Chair",
		PriceCents: 2000000,
		CategoryID: category.ID,
		ImageURL:   "/uploads/chair.jpg",
	}
	testDB.Create(item)

	router.PUT("/admin/furniture/:id", controller.UpdateItem)

	req := multipartRequest(t, http.MethodPut, fmt.Sprintf("/admin/furniture/%d", item.ID), formFields{
		"name":       "Desk Chair",
		"priceCents": "2000000",
		"categoryId": fmt.Sprint(category.ID),
	}, true)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, store.uploads)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "/uploads/stored-desk.jpg", response["imageUrl"])
}

func TestAdminFurnitureController_DeleteItem(t *testing.T) {
	controller, _, router, testDB, category := setupAdminFurnitureTest(t)

	item := &model.FurnitureItem{
		Name:       "Bookshelf",
		PriceCents: 1500000,
		CategoryID: category.ID,
	}
	testDB.Create(item)

	router.DELETE("/admin/furniture/:id", controller.DeleteItem)

	req := httptest.NewRequest(http.MethodDelete, fmt.Sprintf("/admin/furniture/%d", item.ID), nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)

	// A second delete reports not found.
	req = httptest.NewRequest(http.MethodDelete, fmt.Sprintf("/admin/furniture/%d", item.ID), nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
