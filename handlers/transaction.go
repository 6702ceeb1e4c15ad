package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/imudaynigam/finance-tracker-techbridge/middleware"
	"github.com/imudaynigam/finance-tracker-techbridge/models"
	"github.com/imudaynigam/finance-tracker-techbridge/scope"
	"github.com/imudaynigam/finance-tracker-techbridge/services"
)

type TransactionHandler struct {
	Txns *services.TransactionService
	WS   *WSHandler
}

// callerScope builds the query scope from the authenticated identity.
func callerScope(c *gin.Context) scope.Scope {
	return scope.ForCaller(c.GetString(middleware.ContextUserID), c.GetString(middleware.ContextRole))
}

func (h *TransactionHandler) List(c *gin.Context) {
	filter := models.TransactionFilter{
		Type:       c.Query("type"),
		CategoryID: c.Query("category_id"),
	}
	filter.Page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	filter.Limit, _ = strconv.Atoi(c.DefaultQuery("limit", "10"))

	if raw := c.Query("start_date"); raw != "" {
		if d, err := time.Parse("2006-01-02", raw); err == nil {
			filter.StartDate = &d
		}
	}
	if raw := c.Query("end_date"); raw != "" {
		if d, err := time.Parse("2006-01-02", raw); err == nil {
			filter.EndDate = &d
		}
	}

	list, err := h.Txns.List(c.Request.Context(), callerScope(c), filter)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, list)
}

func (h *TransactionHandler) Get(c *gin.Context) {
	txn, err := h.Txns.Get(c.Request.Context(), callerScope(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, txn)
}

func (h *TransactionHandler) Create(c *gin.Context) {
	var req models.CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "kind": "validation"})
		return
	}

	ownerID := c.GetString(middleware.ContextUserID)
	txn, err := h.Txns.Create(c.Request.Context(), ownerID, req)
	if err != nil {
		respondError(c, err)
		return
	}

	h.WS.NotifyUser(txn.UserID, "transaction_created")
	c.JSON(http.StatusCreated, gin.H{"message": "Transaction created successfully", "transaction": txn})
}

func (h *TransactionHandler) Update(c *gin.Context) {
	var req models.UpdateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "kind": "validation"})
		return
	}

	txn, err := h.Txns.Update(c.Request.Context(), callerScope(c), c.Param("id"), req)
	if err != nil {
		respondError(c, err)
		return
	}

	h.WS.NotifyUser(txn.UserID, "transaction_updated")
	c.JSON(http.StatusOK, gin.H{"message": "Transaction updated successfully", "transaction": txn})
}

func (h *TransactionHandler) Delete(c *gin.Context) {
	sc := callerScope(c)
	if err := h.Txns.Delete(c.Request.Context(), sc, c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	h.WS.NotifyUser(sc.CallerID, "transaction_deleted")
	c.JSON(http.StatusOK, gin.H{"message": "Transaction deleted successfully"})
}
