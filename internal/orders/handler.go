package orders

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// --------------------------------------------------
// POST /orders
// --------------------------------------------------
func (h *Handler) PlaceOrder(c *gin.Context) {
	var req struct {
		FirstName        string          `json:"first_name"`
		Phone            string          `json:"phone"`
		Amount           decimal.Decimal `json:"amount"`
		Items            json.RawMessage `json:"items"`
		DeliveryAddress  Address         `json:"delivery_address"`
		DeliveryDate     string          `json:"delivery_date"`
		PaymentReference string          `json:"payment_reference"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	userID := c.GetString("userID")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var delivery *time.Time
	if req.DeliveryDate != "" {
		d, err := time.Parse(deliveryDateLayout, req.DeliveryDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "delivery_date must be YYYY-MM-DD"})
			return
		}
		delivery = &d
	}

	order, err := h.service.PlaceOrder(c.Request.Context(), PlaceOrderInput{
		UserID:           userID,
		FirstName:        req.FirstName,
		MobileNumber:     req.Phone,
		DeliveryDate:     delivery,
		Address:          req.DeliveryAddress,
		Items:            DecodeItems(req.Items),
		TotalAmount:      req.Amount,
		PaymentReference: req.PaymentReference,
	})
	if err != nil {
		if errors.Is(err, ErrMissingFields) || errors.Is(err, ErrInvalidQuantity) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to place order"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"status":   "success",
		"order_id": order.ID,
	})
}

// --------------------------------------------------
// GET /orders
// --------------------------------------------------
func (h *Handler) ListMyOrders(c *gin.Context) {
	userID := c.GetString("userID")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	list, err := h.service.ListMyOrders(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch orders"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data":    nonNil(list),
		"message": "Orders fetched successfully",
	})
}

// --------------------------------------------------
// PATCH /orders/:id/cancel
// --------------------------------------------------
func (h *Handler) Cancel(c *gin.Context) {
	orderID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order id"})
		return
	}

	userID := c.GetString("userID")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	switch err := h.service.Cancel(c.Request.Context(), orderID, userID); {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{
			"status":  "success",
			"message": "Order cancelled successfully",
		})
	case errors.Is(err, ErrOrderNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, ErrCannotCancel):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to cancel order"})
	}
}

// --------------------------------------------------
// ADMIN: GET /admin/orders
// --------------------------------------------------
func (h *Handler) ListForAdmin(c *gin.Context) {
	list, err := h.service.ListForAdmin(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch orders"})
		return
	}

	c.JSON(http.StatusOK, nonNil(list))
}

// --------------------------------------------------
// ADMIN: PATCH /admin/orders/:id
// --------------------------------------------------
func (h *Handler) UpdateStatus(c *gin.Context) {
	orderID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order id"})
		return
	}

	var req struct {
		OrderStatus string `json:"order_status"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	order, err := h.service.UpdateStatus(c.Request.Context(), orderID, req.OrderStatus)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, order)
	case errors.Is(err, ErrInvalidStatus):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, ErrOrderNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update order"})
	}
}

func nonNil(list []*Order) []*Order {
	if list == nil {
		return []*Order{}
	}
	return list
}
