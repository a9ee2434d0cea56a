package kitchen

import (
	"errors"
	"net/http"

	"gokhale/internal/orders"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// --------------------------------------------------
// ADMIN: GET /admin/kitchen-prep?status=confirmed,inprocess
// --------------------------------------------------
func (h *Handler) PrepList(c *gin.Context) {
	statuses := orders.ParseStatuses(c.Query("status"))

	items, err := h.service.PrepList(c.Request.Context(), statuses)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to build prep list"})
		return
	}

	c.JSON(http.StatusOK, items)
}

// --------------------------------------------------
// ADMIN: POST /admin/kitchen-prep/export?status=...&format=json|msgpack
// --------------------------------------------------
func (h *Handler) Export(c *gin.Context) {
	statuses := orders.ParseStatuses(c.Query("status"))

	result, err := h.service.Export(c.Request.Context(), statuses, c.Query("format"))
	switch {
	case err == nil:
		c.JSON(http.StatusCreated, result)
	case errors.Is(err, ErrUnsupportedFormat):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, ErrExportDisabled):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
