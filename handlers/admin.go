package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/imudaynigam/finance-tracker-techbridge/middleware"
	"github.com/imudaynigam/finance-tracker-techbridge/models"
	"github.com/imudaynigam/finance-tracker-techbridge/services"
)

// AdminHandler serves the admin-only surface: system overview, system
// analytics and user management. Routes are guarded by RequireAdmin and
// bypass owner scoping by design.
type AdminHandler struct {
	Admin *services.AdminService
	Users *services.UserService
}

func (h *AdminHandler) Overview(c *gin.Context) {
	overview, err := h.Admin.Overview(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"overview": overview})
}

func (h *AdminHandler) Analytics(c *gin.Context) {
	days := 30
	if raw := c.Query("period"); raw != "" {
		if d, err := strconv.Atoi(raw); err == nil {
			days = d
		}
	}

	analytics, err := h.Admin.Analytics(c.Request.Context(), days)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, analytics)
}

func (h *AdminHandler) ListUsers(c *gin.Context) {
	users, err := h.Users.ListWithStats(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"users": users})
}

func (h *AdminHandler) UserDetails(c *gin.Context) {
	user, txns, totals, breakdown, err := h.Admin.UserDetails(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user":         user,
		"transactions": txns,
		"stats": gin.H{
			"totals":             totals,
			"category_breakdown": breakdown,
		},
	})
}

func (h *AdminHandler) CreateUser(c *gin.Context) {
	var req models.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "kind": "validation"})
		return
	}

	user, err := h.Users.CreateWithRole(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "User created successfully", "user": user})
}

func (h *AdminHandler) UpdateUser(c *gin.Context) {
	var req models.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "kind": "validation"})
		return
	}

	user, err := h.Users.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "User updated successfully", "user": user})
}

func (h *AdminHandler) DeleteUser(c *gin.Context) {
	callerID := c.GetString(middleware.ContextUserID)

	if err := h.Users.Delete(c.Request.Context(), c.Param("id"), callerID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "User deleted successfully"})
}
