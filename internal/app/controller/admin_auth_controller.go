package controller

import (
	"errors"
	"net/http"

	"github.com/bigsofa/bigsofa-backend/internal/app/service"
	apperrors "github.com/bigsofa/bigsofa-backend/internal/errors"
	"github.com/bigsofa/bigsofa-backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

type AdminAuthController struct {
	authService service.AdminAuthService
}

func NewAdminAuthController(authService service.AdminAuthService) *AdminAuthController {
	return &AdminAuthController{
		authService: authService,
	}
}

type AdminLoginRequest struct {
	Password string `json:"password" binding:"required"`
}

// Login exchanges the dashboard password for an admin token
// POST /api/admin/login
func (ctrl *AdminAuthController) Login(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req AdminLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Password is required")
		return
	}

	token, err := ctrl.authService.Login(req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			apperrors.RespondWithError(c, http.StatusUnauthorized, apperrors.AuthInvalidCredentials, "Wrong password")
			return
		}
		log.Error("Admin login failed", err, nil)
		apperrors.InternalError(c, "Could not log in right now")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": token,
	})
}
