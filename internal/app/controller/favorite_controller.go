package controller

import (
	"net/http"
	"strconv"

	apperrors "github.com/bigsofa/bigsofa-backend/internal/errors"
	"github.com/bigsofa/bigsofa-backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// FavoriteController manages the session favorite set. Favorites are
// ephemeral decoration on the catalogue; they never leave the session.
type FavoriteController struct{}

func NewFavoriteController() *FavoriteController {
	return &FavoriteController{}
}

// GetFavorites returns the favorited item IDs
// GET /api/favorites
func (ctrl *FavoriteController) GetFavorites(c *gin.Context) {
	sess := middleware.GetSessionFromContext(c)

	ids := sess.Favorites()
	c.JSON(http.StatusOK, gin.H{
		"itemIds": ids,
		"count":   len(ids),
	})
}

// ToggleFavorite flips one item in the favorite set
// POST /api/favorites/:itemId/toggle
func (ctrl *FavoriteController) ToggleFavorite(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)
	sess := middleware.GetSessionFromContext(c)

	itemID, err := strconv.ParseUint(c.Param("itemId"), 10, 32)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Item ID must be a number")
		return
	}

	favorited := sess.ToggleFavorite(uint(itemID))

	log.Debug("Favorite toggled", map[string]interface{}{
		"session_id": sess.ID,
		"item_id":    itemID,
		"favorited":  favorited,
	})

	c.JSON(http.StatusOK, gin.H{
		"furnitureItemId": itemID,
		"favorited":       favorited,
	})
}
