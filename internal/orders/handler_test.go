package orders

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"gokhale/internal/metrics"

	"github.com/gin-gonic/gin"
)

func setupOrderTestRouter(repo Repository, userID string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	handler := NewHandler(NewService(repo, nil, metrics.NewRegistry()))

	r.Use(func(c *gin.Context) {
		if userID != "" {
			c.Set("userID", userID)
		}
		c.Next()
	})

	r.POST("/orders", handler.PlaceOrder)
	r.GET("/orders", handler.ListMyOrders)
	r.PATCH("/orders/:id/cancel", handler.Cancel)
	r.GET("/admin/orders", handler.ListForAdmin)
	r.PATCH("/admin/orders/:id", handler.UpdateStatus)

	return r
}

func placeOrderBody() []byte {
	body, _ := json.Marshal(map[string]any{
		"first_name": "Asha",
		"phone":      "9999999999",
		"amount":     500,
		"items": []map[string]any{
			{"name": "Laddu", "quantity": 2, "variant": "500gm", "price": 250},
		},
		"delivery_address": map[string]string{"line1": "12 FC Road", "city": "Pune"},
		"delivery_date":    "2026-10-20",
	})
	return body
}

func TestPlaceOrderHandler_Created(t *testing.T) {
	repo := NewInMemoryRepository()
	r := setupOrderTestRouter(repo, "user-1")

	req := httptest.NewRequest(http.MethodPost, "/orders", bytes.NewBuffer(placeOrderBody()))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}

	var resp map[string]any
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	id := int64(resp["order_id"].(float64))

	order, err := repo.GetByID(context.Background(), id)
	if err != nil {
		t.Fatal(err)
	}
	if order.DeliveryDate == nil || order.DeliveryDate.Format("2006-01-02") != "2026-10-20" {
		t.Errorf("unexpected delivery date %v", order.DeliveryDate)
	}
}

func TestPlaceOrderHandler_Unauthenticated(t *testing.T) {
	r := setupOrderTestRouter(NewInMemoryRepository(), "")

	req := httptest.NewRequest(http.MethodPost, "/orders", bytes.NewBuffer(placeOrderBody()))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}

func TestPlaceOrderHandler_HugeQuantity(t *testing.T) {
	r := setupOrderTestRouter(NewInMemoryRepository(), "user-1")

	body, _ := json.Marshal(map[string]any{
		"phone":  "9999999999",
		"amount": 500,
		"items": []map[string]any{
			{"name": "Laddu", "quantity": 92233720368547758, "variant": "1kg", "price": 250},
		},
		"delivery_address": map[string]string{"line1": "12 FC Road"},
	})

	req := httptest.NewRequest(http.MethodPost, "/orders", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", w.Code, w.Body.String())
	}
}

func TestUpdateStatusHandler(t *testing.T) {
	repo := NewInMemoryRepository()
	_ = repo.Create(context.Background(), &Order{UserID: "user-1", Status: StatusPlaced})
	r := setupOrderTestRouter(repo, "admin-1")

	cases := []struct {
		name   string
		id     string
		body   string
		expect int
	}{
		{"valid", "1", `{"order_status":"confirmed"}`, http.StatusOK},
		{"invalid status", "1", `{"order_status":"eaten"}`, http.StatusBadRequest},
		{"missing order", "99", `{"order_status":"confirmed"}`, http.StatusNotFound},
		{"bad id", "abc", `{"order_status":"confirmed"}`, http.StatusBadRequest},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPatch, "/admin/orders/"+tc.id, bytes.NewBufferString(tc.body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			if w.Code != tc.expect {
				t.Fatalf("expected %d, got %d", tc.expect, w.Code)
			}
		})
	}
}

func TestCancelHandler_NotCancellable(t *testing.T) {
	repo := NewInMemoryRepository()
	order := &Order{UserID: "user-1", Status: StatusDispatched}
	_ = repo.Create(context.Background(), order)
	r := setupOrderTestRouter(repo, "user-1")

	req := httptest.NewRequest(http.MethodPatch, "/orders/"+strconv.FormatInt(order.ID, 10)+"/cancel", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}
