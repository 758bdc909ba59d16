package routes

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"loja-backend/mercadopago"
	"loja-backend/models"
	"loja-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func init() {
	gin.SetMode(gin.TestMode)
	os.Setenv("JWT_SECRET", "test-secret-for-routes")
}

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatal(err)
	}

	tables := []string{
		`CREATE TABLE IF NOT EXISTS "users" (
			"id" TEXT PRIMARY KEY, "email" TEXT NOT NULL UNIQUE, "password" TEXT NOT NULL,
			"name" TEXT, "role" TEXT DEFAULT 'customer', "phone" TEXT,
			"created_at" DATETIME, "updated_at" DATETIME, "deleted_at" DATETIME
		)`,
		`CREATE TABLE IF NOT EXISTS "categories" (
			"id" TEXT PRIMARY KEY, "name" TEXT NOT NULL, "slug" TEXT NOT NULL UNIQUE,
			"description" TEXT, "created_at" DATETIME, "updated_at" DATETIME, "deleted_at" DATETIME
		)`,
		`CREATE TABLE IF NOT EXISTS "products" (
			"id" TEXT PRIMARY KEY, "name" TEXT NOT NULL, "slug" TEXT NOT NULL UNIQUE,
			"price" REAL NOT NULL, "image" TEXT, "stock" INTEGER DEFAULT 0,
			"description" TEXT, "category_id" TEXT NOT NULL,
			"created_at" DATETIME, "updated_at" DATETIME, "deleted_at" DATETIME
		)`,
		`CREATE TABLE IF NOT EXISTS "coupons" (
			"id" TEXT PRIMARY KEY, "code" TEXT NOT NULL UNIQUE, "type" TEXT NOT NULL,
			"value" REAL NOT NULL, "is_active" INTEGER DEFAULT 1, "expires_at" DATETIME,
			"created_at" DATETIME, "updated_at" DATETIME, "deleted_at" DATETIME
		)`,
		`CREATE TABLE IF NOT EXISTS "orders" (
			"id" TEXT PRIMARY KEY, "reference" TEXT NOT NULL UNIQUE, "customer_email" TEXT NOT NULL,
			"customer_name" TEXT, "status" TEXT DEFAULT 'pending', "subtotal" REAL NOT NULL,
			"shipping" REAL DEFAULT 0, "discount" REAL DEFAULT 0, "total" REAL NOT NULL,
			"payment_id" INTEGER, "created_at" DATETIME, "updated_at" DATETIME, "deleted_at" DATETIME
		)`,
		`CREATE TABLE IF NOT EXISTS "order_items" (
			"id" TEXT PRIMARY KEY, "order_id" TEXT NOT NULL, "product_id" TEXT NOT NULL,
			"product_name" TEXT, "image" TEXT, "quantity" INTEGER NOT NULL, "price" REAL NOT NULL,
			"created_at" DATETIME
		)`,
	}
	for _, ddl := range tables {
		if err := db.Exec(ddl).Error; err != nil {
			t.Fatal(err)
		}
	}
	return db
}

func setupTestRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	db := setupTestDB(t)
	r := gin.New()
	SetupRoutes(r, db, mercadopago.NewClient("test-token"))
	return r, db
}

func customerToken(t *testing.T, db *gorm.DB) string {
	hashed, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	user := models.User{ID: uuid.New(), Email: "cliente@example.com", Password: string(hashed), Role: "customer"}
	db.Create(&user)
	token, err := utils.GenerateToken(user.ID, user.Email, user.Role)
	if err != nil {
		t.Fatal(err)
	}
	return token
}

func TestHealthCheck(t *testing.T) {
	r, _ := setupTestRouter(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/health", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}
}

func TestPublicRoutesReachable(t *testing.T) {
	r, _ := setupTestRouter(t)

	for _, path := range []string{"/api/products", "/api/categories", "/api/cart"} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest("GET", path, nil))
		if w.Code != http.StatusOK {
			t.Errorf("GET %s: expected 200, got %d", path, w.Code)
		}
	}
}

func TestCartMutationWired(t *testing.T) {
	r, _ := setupTestRouter(t)

	body, _ := json.Marshal(map[string]string{"action": "teleport"})
	req := httptest.NewRequest("POST", "/api/cart", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("Expected 400 for invalid action, got %d", w.Code)
	}
}

func TestProtectedRoutesRequireAuth(t *testing.T) {
	r, _ := setupTestRouter(t)

	for _, path := range []string{"/api/orders", "/api/wishlist", "/api/auth/profile"} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest("GET", path, nil))
		if w.Code != http.StatusUnauthorized {
			t.Errorf("GET %s: expected 401, got %d", path, w.Code)
		}
	}
}

func TestAdminRoutesRejectCustomers(t *testing.T) {
	r, db := setupTestRouter(t)
	token := customerToken(t, db)

	req := httptest.NewRequest("GET", "/api/admin/coupons", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusForbidden {
		t.Fatalf("Expected 403 for customer on admin route, got %d", w.Code)
	}
}

func TestWebhookAlwaysAcknowledges(t *testing.T) {
	r, _ := setupTestRouter(t)

	body, _ := json.Marshal(map[string]interface{}{"type": "test"})
	req := httptest.NewRequest("POST", "/api/webhooks/mercadopago", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}
}
