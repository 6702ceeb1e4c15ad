package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/imudaynigam/finance-tracker-techbridge/models"
	"github.com/imudaynigam/finance-tracker-techbridge/services"
)

type CategoryHandler struct {
	Categories *services.CategoryService
	Suggester  *services.SuggesterService
}

// List serves the shared active-category list, cache-aside with a 1h TTL.
func (h *CategoryHandler) List(c *gin.Context) {
	list, err := h.Categories.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, list)
}

// Suggest proposes a category for a transaction description, matching
// keyword rules first and the caller's own history second.
func (h *CategoryHandler) Suggest(c *gin.Context) {
	category, err := h.Suggester.Suggest(c.Request.Context(), callerScope(c), c.Query("description"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"category": category})
}

func (h *CategoryHandler) Create(c *gin.Context) {
	var req models.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "kind": "validation"})
		return
	}

	category, err := h.Categories.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Category created successfully", "category": category})
}

func (h *CategoryHandler) Update(c *gin.Context) {
	var req models.UpdateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "kind": "validation"})
		return
	}

	category, err := h.Categories.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Category updated successfully", "category": category})
}

// Delete soft-deletes: the category disappears from pickers but historical
// transactions keep their reference.
func (h *CategoryHandler) Delete(c *gin.Context) {
	if err := h.Categories.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Category deleted successfully"})
}
