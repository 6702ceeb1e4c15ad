package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/imudaynigam/finance-tracker-techbridge/middleware"
	"github.com/imudaynigam/finance-tracker-techbridge/models"
	"github.com/imudaynigam/finance-tracker-techbridge/services"
	"github.com/imudaynigam/finance-tracker-techbridge/utils"
)

type AuthHandler struct {
	Users *services.UserService
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "kind": "validation"})
		return
	}

	user, err := h.Users.Register(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}

	token, err := utils.GenerateAccessToken(user.ID, user.Email, user.Role)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.LogAuthAction("register", user.Email, true)
	c.JSON(http.StatusCreated, models.AuthResponse{Token: token, User: *user})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "kind": "validation"})
		return
	}

	user, err := h.Users.GetByEmail(c.Request.Context(), req.Email)
	if err != nil {
		utils.LogAuthAction("login", req.Email, false)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials", "kind": "unauthorized"})
		return
	}

	if !utils.CheckPassword(req.Password, user.PasswordHash) {
		utils.LogAuthAction("login", req.Email, false)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials", "kind": "unauthorized"})
		return
	}

	if user.TOTPEnabled {
		if req.TOTPCode == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "2FA code required", "requires_2fa": true})
			return
		}
		if !utils.VerifyTOTP(user.TOTPSecret, req.TOTPCode) {
			utils.LogAuthAction("login", req.Email, false)
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid 2FA code", "kind": "unauthorized"})
			return
		}
	}

	token, err := utils.GenerateAccessToken(user.ID, user.Email, user.Role)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.LogAuthAction("login", user.Email, true)
	c.JSON(http.StatusOK, models.AuthResponse{Token: token, User: *user})
}

// Logout exists for symmetry; tokens are stateless so removal happens
// client-side.
func (h *AuthHandler) Logout(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Logout successful"})
}

func (h *AuthHandler) Me(c *gin.Context) {
	userID := c.GetString(middleware.ContextUserID)

	user, err := h.Users.GetByID(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user})
}
