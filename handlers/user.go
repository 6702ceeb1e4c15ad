package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/imudaynigam/finance-tracker-techbridge/middleware"
	"github.com/imudaynigam/finance-tracker-techbridge/models"
	"github.com/imudaynigam/finance-tracker-techbridge/services"
	"github.com/imudaynigam/finance-tracker-techbridge/utils"
)

// UserHandler serves the caller's own profile and 2FA settings.
type UserHandler struct {
	Users *services.UserService
}

func (h *UserHandler) SetupTOTP(c *gin.Context) {
	userID := c.GetString(middleware.ContextUserID)

	user, err := h.Users.GetByID(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	secret, url, err := utils.GenerateTOTPSecret(user.Email)
	if err != nil {
		respondError(c, err)
		return
	}

	// Stored disabled until the first code is verified.
	if err := h.Users.SetTOTP(c.Request.Context(), userID, secret, false); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.TOTPSetupResponse{Secret: secret, URL: url})
}

func (h *UserHandler) VerifyTOTP(c *gin.Context) {
	var req models.VerifyTOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "kind": "validation"})
		return
	}

	userID := c.GetString(middleware.ContextUserID)
	user, err := h.Users.GetByID(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	if user.TOTPSecret == "" || !utils.VerifyTOTP(user.TOTPSecret, req.Code) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid 2FA code", "kind": "validation"})
		return
	}

	if err := h.Users.SetTOTP(c.Request.Context(), userID, user.TOTPSecret, true); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "2FA enabled"})
}

func (h *UserHandler) DisableTOTP(c *gin.Context) {
	userID := c.GetString(middleware.ContextUserID)

	if err := h.Users.SetTOTP(c.Request.Context(), userID, "", false); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "2FA disabled"})
}
