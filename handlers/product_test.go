package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestGetProductsEmpty(t *testing.T) {
	db := freshDB()
	router := setupProductRouter(db)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, jsonRequest("GET", "/api/products", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp["total"].(float64) != 0 {
		t.Errorf("Expected total 0, got %v", resp["total"])
	}
}

func TestGetProductsSearchFilter(t *testing.T) {
	db := freshDB()
	cat := seedCategory(db, "Canecas")
	seedProduct(db, "Caneca Azul", cat.ID, 25.0)
	seedProduct(db, "Caneca Vermelha", cat.ID, 25.0)
	seedProduct(db, "Camiseta Preta", cat.ID, 60.0)
	router := setupProductRouter(db)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, jsonRequest("GET", "/api/products?search=caneca", nil))

	resp := parseResponse(w)
	if resp["total"].(float64) != 2 {
		t.Errorf("Expected 2 matches, got %v", resp["total"])
	}
}

func TestGetProductsPagination(t *testing.T) {
	db := freshDB()
	cat := seedCategory(db, "Canecas")
	for i := 0; i < 5; i++ {
		seedProduct(db, "Produto", cat.ID, 10.0)
	}
	router := setupProductRouter(db)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, jsonRequest("GET", "/api/products?page=2&limit=2", nil))

	resp := parseResponse(w)
	products := resp["products"].([]interface{})
	if len(products) != 2 {
		t.Errorf("Expected 2 products on page 2, got %d", len(products))
	}
	if resp["total"].(float64) != 5 {
		t.Errorf("Expected total 5, got %v", resp["total"])
	}
}

func TestGetProductByID(t *testing.T) {
	db := freshDB()
	cat := seedCategory(db, "Canecas")
	prod := seedProduct(db, "Caneca Azul", cat.ID, 25.0)
	router := setupProductRouter(db)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, jsonRequest("GET", "/api/products/"+prod.ID.String(), nil))

	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}
	if parseResponse(w)["name"] != "Caneca Azul" {
		t.Errorf("Unexpected product: %v", parseResponse(w))
	}
}

func TestGetProductBySlug(t *testing.T) {
	db := freshDB()
	cat := seedCategory(db, "Canecas")
	prod := seedProduct(db, "Caneca Azul", cat.ID, 25.0)
	router := setupProductRouter(db)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, jsonRequest("GET", "/api/products/"+prod.Slug, nil))

	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200 by slug, got %d", w.Code)
	}
	if parseResponse(w)["id"] != prod.ID.String() {
		t.Errorf("Slug lookup returned wrong product: %v", parseResponse(w)["id"])
	}
}

func TestGetProductNotFound(t *testing.T) {
	db := freshDB()
	router := setupProductRouter(db)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, jsonRequest("GET", "/api/products/nao-existe", nil))

	if w.Code != http.StatusNotFound {
		t.Fatalf("Expected 404, got %d", w.Code)
	}
}

func TestCreateProductRequiresAdmin(t *testing.T) {
	db := freshDB()
	_, token := seedTestUser(db, "cliente@example.com", "customer")
	router := setupProductRouter(db)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, authRequest("POST", "/api/admin/products", map[string]interface{}{
		"name": "Caneca", "slug": "caneca", "price": 25.0, "category_id": "x",
	}, token))

	if w.Code != http.StatusForbidden {
		t.Fatalf("Expected 403 for non-admin, got %d", w.Code)
	}
}

func TestCreateProductAsAdmin(t *testing.T) {
	db := freshDB()
	_, token := seedTestUser(db, "admin@example.com", "admin")
	cat := seedCategory(db, "Canecas")
	router := setupProductRouter(db)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, authRequest("POST", "/api/admin/products", map[string]interface{}{
		"name":        "Caneca Nova",
		"slug":        "caneca-nova",
		"price":       29.9,
		"stock":       15,
		"category_id": cat.ID.String(),
	}, token))

	if w.Code != http.StatusCreated {
		t.Fatalf("Expected 201, got %d: %s", w.Code, w.Body.String())
	}
	resp := parseResponse(w)
	if resp["slug"] != "caneca-nova" || resp["stock"].(float64) != 15 {
		t.Errorf("Unexpected product: %v", resp)
	}
}

func TestCreateProductUnknownCategory(t *testing.T) {
	db := freshDB()
	_, token := seedTestUser(db, "admin@example.com", "admin")
	router := setupProductRouter(db)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, authRequest("POST", "/api/admin/products", map[string]interface{}{
		"name":        "Caneca",
		"slug":        "caneca",
		"price":       25.0,
		"category_id": "11111111-2222-3333-4444-555555555555",
	}, token))

	if w.Code != http.StatusNotFound {
		t.Fatalf("Expected 404 for unknown category, got %d", w.Code)
	}
}

func TestUpdateProductPartial(t *testing.T) {
	db := freshDB()
	_, token := seedTestUser(db, "admin@example.com", "admin")
	cat := seedCategory(db, "Canecas")
	prod := seedProduct(db, "Caneca Azul", cat.ID, 25.0)
	router := setupProductRouter(db)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, authRequest("PUT", "/api/admin/products/"+prod.ID.String(), map[string]interface{}{
		"price": 19.9,
	}, token))

	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}
	resp := parseResponse(w)
	if resp["price"].(float64) != 19.9 {
		t.Errorf("Expected price updated, got %v", resp["price"])
	}
	if resp["name"] != "Caneca Azul" {
		t.Errorf("Expected name untouched, got %v", resp["name"])
	}
}

func TestDeleteProduct(t *testing.T) {
	db := freshDB()
	_, token := seedTestUser(db, "admin@example.com", "admin")
	cat := seedCategory(db, "Canecas")
	prod := seedProduct(db, "Caneca Azul", cat.ID, 25.0)
	router := setupProductRouter(db)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, authRequest("DELETE", "/api/admin/products/"+prod.ID.String(), nil, token))

	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}

	w2 := httptest.NewRecorder()
	router.ServeHTTP(w2, jsonRequest("GET", "/api/products/"+prod.ID.String(), nil))
	if w2.Code != http.StatusNotFound {
		t.Errorf("Expected 404 after delete, got %d", w2.Code)
	}
}
