package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/imudaynigam/finance-tracker-techbridge/services"
)

// respondError maps the service error taxonomy onto HTTP statuses. Anything
// outside the taxonomy is a persistence or internal failure and stays opaque
// to the caller.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "kind": "validation"})
	case errors.Is(err, services.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error(), "kind": "not_found"})
	case errors.Is(err, services.ErrPermission):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error(), "kind": "permission"})
	case errors.Is(err, services.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error(), "kind": "conflict"})
	default:
		log.Printf("❌ Internal error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error", "kind": "internal"})
	}
}
