package controller

import (
	"errors"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/bigsofa/bigsofa-backend/internal/app/service"
	apperrors "github.com/bigsofa/bigsofa-backend/internal/errors"
	"github.com/bigsofa/bigsofa-backend/internal/middleware"
	"github.com/bigsofa/bigsofa-backend/internal/storage"
	"github.com/bigsofa/bigsofa-backend/pkg/util"
	"github.com/gin-gonic/gin"
)

// AdminFurnitureController handles the dashboard item editor. The editor
// submits multipart forms: text fields plus an optional image file.
type AdminFurnitureController struct {
	furnitureService service.FurnitureService
	store            storage.Storage
	maxUploadBytes   int64
}

func NewAdminFurnitureController(
	furnitureService service.FurnitureService,
	store storage.Storage,
	maxUploadBytes int64,
) *AdminFurnitureController {
	return &AdminFurnitureController{
		furnitureService: furnitureService,
		store:            store,
		maxUploadBytes:   maxUploadBytes,
	}
}

// ItemForm carries the multipart text fields. Prices arrive either as exact
// minor units (priceCents) or as a human-entered major amount (priceTzs,
// commas allowed), never both required.
type ItemForm struct {
	Name        string `form:"name" binding:"required"`
	Description string `form:"description"`
	PriceCents  string `form:"priceCents"`
	PriceTzs    string `form:"priceTzs"`
	CategoryID  uint   `form:"categoryId" binding:"required"`
}

// ListItems returns the full catalogue in its dashboard shape
// GET /api/admin/furniture
func (ctrl *AdminFurnitureController) ListItems(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	items, err := ctrl.furnitureService.ListItems()
	if err != nil {
		log.Error("Failed to list items for dashboard", err, nil)
		apperrors.InternalError(c, "Could not load items")
		return
	}

	views := make([]interface{}, len(items))
	for i := range items {
		views[i] = items[i].Admin()
	}

	c.JSON(http.StatusOK, gin.H{
		"items": views,
		"count": len(views),
	})
}

// CreateItem creates a catalogue item; the image file is required
// POST /api/admin/furniture
func (ctrl *AdminFurnitureController) CreateItem(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var form ItemForm
	if err := c.ShouldBind(&form); err != nil {
		log.Warn("Invalid item form", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Name and category are required")
		return
	}

	priceCents, err := resolvePrice(form)
	if err != nil {
		apperrors.BadRequest(c, apperrors.CatalogInvalidPrice, "Price must be a positive amount")
		return
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		apperrors.BadRequest(c, apperrors.UploadFileRequired, "An image is required for new items")
		return
	}

	imageURL, ok := ctrl.storeImage(c, fileHeader)
	if !ok {
		return
	}

	item, err := ctrl.furnitureService.CreateItem(service.FurnitureInput{
		Name:        form.Name,
		Description: form.Description,
		PriceCents:  priceCents,
		CategoryID:  form.CategoryID,
		ImageURL:    imageURL,
	})
	if err != nil {
		ctrl.respondServiceError(c, err)
		return
	}

	log.Info("Dashboard created item", map[string]interface{}{
		"item_id": item.ID,
	})
	c.JSON(http.StatusCreated, item.Admin())
}

// UpdateItem updates a catalogue item; omitting the image file keeps the
// stored one
// PUT /api/admin/furniture/:id
func (ctrl *AdminFurnitureController) UpdateItem(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Item ID must be a number")
		return
	}

	var form ItemForm
	if err := c.ShouldBind(&form); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Name and category are required")
		return
	}

	priceCents, err := resolvePrice(form)
	if err != nil {
		apperrors.BadRequest(c, apperrors.CatalogInvalidPrice, "Price must be a positive amount")
		return
	}

	var imageURL string
	if fileHeader, err := c.FormFile("image"); err == nil {
		var ok bool
		imageURL, ok = ctrl.storeImage(c, fileHeader)
		if !ok {
			return
		}
	}

	item, err := ctrl.furnitureService.UpdateItem(uint(id), service.FurnitureInput{
		Name:        form.Name,
		Description: form.Description,
		PriceCents:  priceCents,
		CategoryID:  form.CategoryID,
		ImageURL:    imageURL,
	})
	if err != nil {
		ctrl.respondServiceError(c, err)
		return
	}

	log.Info("Dashboard updated item", map[string]interface{}{
		"item_id": item.ID,
	})
	c.JSON(http.StatusOK, item.Admin())
}

// DeleteItem removes a catalogue item
// DELETE /api/admin/furniture/:id
func (ctrl *AdminFurnitureController) DeleteItem(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Item ID must be a number")
		return
	}

	if err := ctrl.furnitureService.DeleteItem(uint(id)); err != nil {
		ctrl.respondServiceError(c, err)
		return
	}

	log.Info("Dashboard deleted item", map[string]interface{}{
		"item_id": id,
	})
	c.Status(http.StatusNoContent)
}

// resolvePrice normalizes the two accepted price fields to minor units.
func resolvePrice(form ItemForm) (int64, error) {
	if form.PriceCents != "" {
		cents, err := strconv.ParseInt(form.PriceCents, 10, 64)
		if err != nil || cents <= 0 {
			return 0, util.ErrInvalidPrice
		}
		return cents, nil
	}

	cents, err := util.ParseMajorUnits(form.PriceTzs)
	if err != nil {
		return 0, err
	}
	if cents <= 0 {
		return 0, util.ErrInvalidPrice
	}
	return cents, nil
}

// storeImage validates and persists the upload, responding with the
// appropriate error itself when it fails.
func (ctrl *AdminFurnitureController) storeImage(c *gin.Context, fileHeader *multipart.FileHeader) (string, bool) {
	log := middleware.GetLoggerFromContext(c)

	if err := storage.ValidateImage(fileHeader, ctrl.maxUploadBytes); err != nil {
		switch {
		case errors.Is(err, storage.ErrFileTooLarge):
			apperrors.BadRequest(c, apperrors.UploadFileTooLarge, "Image is too large")
		default:
			apperrors.BadRequest(c, apperrors.UploadInvalidFileType, "Only image files are allowed (JPEG, PNG, GIF, WEBP)")
		}
		return "", false
	}

	file, err := fileHeader.Open()
	if err != nil {
		log.Error("Failed to open uploaded image", err, nil)
		apperrors.RespondWithError(c, http.StatusInternalServerError, apperrors.UploadFailed, "Could not read the uploaded image")
		return "", false
	}
	defer file.Close()

	url, err := ctrl.store.Upload(c.Request.Context(), file, fileHeader.Filename, fileHeader.Header.Get("Content-Type"))
	if err != nil {
		log.Error("Failed to store uploaded image", err, map[string]interface{}{
			"filename": fileHeader.Filename,
		})
		apperrors.RespondWithError(c, http.StatusInternalServerError, apperrors.UploadFailed, "Could not store the uploaded image")
		return "", false
	}
	return url, true
}

func (ctrl *AdminFurnitureController) respondServiceError(c *gin.Context, err error) {
	log := middleware.GetLoggerFromContext(c)

	switch {
	case errors.Is(err, service.ErrItemNotFound):
		apperrors.NotFound(c, apperrors.CatalogItemNotFound, "Item not found")
	case errors.Is(err, service.ErrCategoryNotFound):
		apperrors.BadRequest(c, apperrors.CatalogCategoryNotFound, "Unknown category")
	case errors.Is(err, service.ErrInvalidPrice):
		apperrors.BadRequest(c, apperrors.CatalogInvalidPrice, "Price must be a positive amount")
	default:
		log.Error("Dashboard item operation failed", err, nil)
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "item save")
	}
}
