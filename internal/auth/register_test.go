package auth

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func setupTestRouter() (*gin.Engine, *TokenIssuer) {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	tokens, _ := NewTokenIssuer("test-secret")
	h := NewHandler(NewService(NewInMemoryUserRepository()), tokens)
	r.POST("/auth/register", h.Register)
	r.POST("/auth/login", h.Login)

	return r, tokens
}

func postJSON(r *gin.Engine, path string, payload any) *httptest.ResponseRecorder {
	body, _ := json.Marshal(payload)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRegisterSuccess(t *testing.T) {
	r, _ := setupTestRouter()

	w := postJSON(r, "/auth/register", map[string]string{
		"name":     "Test User",
		"email":    "test@example.com",
		"password": "Password@123",
	})

	if w.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d", w.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp["role"] != RoleCustomer {
		t.Fatalf("expected customer role, got %v", resp["role"])
	}
	if _, leaked := resp["password"]; leaked {
		t.Fatal("password hash leaked in response")
	}
}

func TestRegisterMissingFields(t *testing.T) {
	r, _ := setupTestRouter()

	w := postJSON(r, "/auth/register", map[string]string{
		"email": "test@example.com",
	})

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", w.Code)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	r, _ := setupTestRouter()

	payload := map[string]string{
		"name":     "Test User",
		"email":    "test@example.com",
		"password": "Password@123",
	}

	// First request (should succeed)
	postJSON(r, "/auth/register", payload)

	// Second request (should fail)
	w2 := postJSON(r, "/auth/register", payload)

	if w2.Code != http.StatusConflict {
		t.Fatalf("expected status 409, got %d", w2.Code)
	}
}

func TestLoginReturnsToken(t *testing.T) {
	r, tokens := setupTestRouter()

	postJSON(r, "/auth/register", map[string]string{
		"name":     "Test User",
		"email":    "test@example.com",
		"password": "Password@123",
	})

	w := postJSON(r, "/auth/login", map[string]string{
		"email":    "test@example.com",
		"password": "Password@123",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}

	var resp struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}

	claims, err := tokens.Validate(resp.Token)
	if err != nil || claims.Email != "test@example.com" || claims.Role != RoleCustomer {
		t.Fatalf("unexpected token claims: %+v err=%v", claims, err)
	}

	bad := postJSON(r, "/auth/login", map[string]string{
		"email":    "test@example.com",
		"password": "nope",
	})
	if bad.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", bad.Code)
	}
}
