package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/bigsofa/bigsofa-backend/internal/app/service"
	apperrors "github.com/bigsofa/bigsofa-backend/internal/errors"
	"github.com/bigsofa/bigsofa-backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

type CatalogController struct {
	catalogService service.CatalogService
}

func NewCatalogController(catalogService service.CatalogService) *CatalogController {
	return &CatalogController{
		catalogService: catalogService,
	}
}

// GetCategories returns all categories
// GET /api/categories
func (ctrl *CatalogController) GetCategories(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	categories, err := ctrl.catalogService.GetCategories()
	if err != nil {
		log.Error("Failed to fetch categories", err, nil)
		apperrors.InternalError(c, "Could not load categories")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"categories": categories,
		"count":      len(categories),
	})
}

// GetItems returns the catalogue, optionally narrowed to a category and a
// search term
// GET /api/furniture?categoryId=&search=
func (ctrl *CatalogController) GetItems(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var categoryID uint
	if raw := c.Query("categoryId"); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			log.Warn("Invalid category ID in catalogue query", map[string]interface{}{
				"category_id": raw,
			})
			apperrors.BadRequest(c, apperrors.ValidationInvalidID, "categoryId must be a number")
			return
		}
		categoryID = uint(parsed)
	}

	list, err := ctrl.catalogService.GetItems(categoryID, c.Query("search"))
	if err != nil {
		if errors.Is(err, service.ErrCategoryNotFound) {
			apperrors.NotFound(c, apperrors.CatalogCategoryNotFound, "We could not find that category")
			return
		}
		log.Error("Failed to fetch catalogue items", err, map[string]interface{}{
			"category_id": categoryID,
		})
		apperrors.InternalError(c, "Could not load furniture right now")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"items":      list.Items,
		"count":      len(list.Items),
		"generation": list.Generation,
	})
}

// GetItem returns one catalogue item
// GET /api/furniture/:id
func (ctrl *CatalogController) GetItem(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Item ID must be a number")
		return
	}

	item, err := ctrl.catalogService.GetItem(uint(id))
	if err != nil {
		if errors.Is(err, service.ErrItemNotFound) {
			apperrors.NotFound(c, apperrors.CatalogItemNotFound, "We could not find that item")
			return
		}
		log.Error("Failed to fetch catalogue item", err, map[string]interface{}{
			"item_id": id,
		})
		apperrors.InternalError(c, "Could not load this item right now")
		return
	}

	c.JSON(http.StatusOK, item.Public())
}
