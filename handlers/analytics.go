package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/imudaynigam/finance-tracker-techbridge/services"
)

type AnalyticsHandler struct {
	Analytics *services.AnalyticsService
}

func (h *AnalyticsHandler) Totals(c *gin.Context) {
	totals, err := h.Analytics.Totals(c.Request.Context(), callerScope(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, totals)
}

func (h *AnalyticsHandler) Monthly(c *gin.Context) {
	year := yearParam(c)

	trends, err := h.Analytics.MonthlyTrends(c.Request.Context(), callerScope(c), year)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, trends)
}

func (h *AnalyticsHandler) Yearly(c *gin.Context) {
	year := yearParam(c)

	overview, err := h.Analytics.Yearly(c.Request.Context(), callerScope(c), year)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, overview)
}

func (h *AnalyticsHandler) Categories(c *gin.Context) {
	year := yearParam(c)
	month := int(time.Now().Month())
	if raw := c.Query("month"); raw != "" {
		if m, err := strconv.Atoi(raw); err == nil {
			month = m
		}
	}

	breakdown, err := h.Analytics.Categories(c.Request.Context(), callerScope(c), year, month, c.Query("type"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, breakdown)
}

func yearParam(c *gin.Context) int {
	if raw := c.Query("year"); raw != "" {
		if y, err := strconv.Atoi(raw); err == nil {
			return y
		}
	}
	return services.CurrentYear()
}
