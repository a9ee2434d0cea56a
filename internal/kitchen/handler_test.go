package kitchen

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"gokhale/internal/metrics"

	"github.com/gin-gonic/gin"
)

func setupKitchenTestRouter(service *Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	handler := NewHandler(service)
	r.GET("/admin/kitchen-prep", handler.PrepList)
	r.POST("/admin/kitchen-prep/export", handler.Export)

	return r
}

func TestPrepListHandler_StatusQuery(t *testing.T) {
	r := setupKitchenTestRouter(NewService(seededRepo(t), nil, metrics.NewRegistry()))

	req := httptest.NewRequest(http.MethodGet, "/admin/kitchen-prep?status=placed,confirmed", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var items []map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &items); err != nil {
		t.Fatal(err)
	}
	if len(items) != 2 {
		t.Fatalf("expected Laddu and Modak, got %d items", len(items))
	}

	for _, key := range []string{"name", "totalQuantity", "totalWeight", "totalPieces", "orderCount", "variants", "priority", "estimatedPrepTime"} {
		if _, ok := items[0][key]; !ok {
			t.Errorf("missing field %q in response", key)
		}
	}
}

func TestPrepListHandler_EmptyIsArray(t *testing.T) {
	r := setupKitchenTestRouter(NewService(seededRepo(t), nil, metrics.NewRegistry()))

	req := httptest.NewRequest(http.MethodGet, "/admin/kitchen-prep?status=rejected", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK || w.Body.String() != "[]" {
		t.Fatalf("expected 200 with [], got %d %s", w.Code, w.Body.String())
	}
}

func TestExportHandler(t *testing.T) {
	cases := []struct {
		name    string
		storage Storage
		query   string
		expect  int
	}{
		{"disabled", nil, "", http.StatusServiceUnavailable},
		{"bad format", &fakeStorage{}, "?format=xml", http.StatusBadRequest},
		{"ok", &fakeStorage{}, "?format=json", http.StatusCreated},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := setupKitchenTestRouter(NewService(seededRepo(t), tc.storage, metrics.NewRegistry()))

			req := httptest.NewRequest(http.MethodPost, "/admin/kitchen-prep/export"+tc.query, nil)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			if w.Code != tc.expect {
				t.Fatalf("expected %d, got %d: %s", tc.expect, w.Code, w.Body.String())
			}
		})
	}
}
