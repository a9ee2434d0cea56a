package dashboard

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// --------------------------------------------------
// ADMIN: GET /admin/dashboard/summary?period=weekly|monthly|yearly
// --------------------------------------------------
func (h *Handler) Summary(c *gin.Context) {
	summary, err := h.service.Summary(c.Request.Context(), c.DefaultQuery("period", PeriodMonthly))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load summary"})
		return
	}
	c.JSON(http.StatusOK, summary)
}

// --------------------------------------------------
// ADMIN: GET /admin/dashboard/revenue?period=...
// --------------------------------------------------
func (h *Handler) Revenue(c *gin.Context) {
	points, err := h.service.Revenue(c.Request.Context(), c.DefaultQuery("period", PeriodMonthly))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load revenue"})
		return
	}
	c.JSON(http.StatusOK, points)
}

// --------------------------------------------------
// ADMIN: GET /admin/dashboard/top-products
// --------------------------------------------------
func (h *Handler) TopProducts(c *gin.Context) {
	products, err := h.service.TopProducts(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load top products"})
		return
	}
	c.JSON(http.StatusOK, products)
}
