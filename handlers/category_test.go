package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestGetCategories(t *testing.T) {
	db := freshDB()
	seedCategory(db, "Canecas")
	seedCategory(db, "Camisetas")
	router := setupCategoryRouter(db)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, jsonRequest("GET", "/api/categories", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}
	if got := len(parseResponseArray(w)); got != 2 {
		t.Errorf("Expected 2 categories, got %d", got)
	}
}

func TestGetCategoryNotFound(t *testing.T) {
	db := freshDB()
	router := setupCategoryRouter(db)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, jsonRequest("GET", "/api/categories/11111111-2222-3333-4444-555555555555", nil))

	if w.Code != http.StatusNotFound {
		t.Fatalf("Expected 404, got %d", w.Code)
	}
}

func TestCreateCategoryAsAdmin(t *testing.T) {
	db := freshDB()
	_, token := seedTestUser(db, "admin@example.com", "admin")
	router := setupCategoryRouter(db)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, authRequest("POST", "/api/admin/categories", map[string]string{
		"name": "Acessórios",
		"slug": "acessorios",
	}, token))

	if w.Code != http.StatusCreated {
		t.Fatalf("Expected 201, got %d: %s", w.Code, w.Body.String())
	}
	if parseResponse(w)["slug"] != "acessorios" {
		t.Errorf("Unexpected category: %v", parseResponse(w))
	}
}

func TestCreateCategoryMissingName(t *testing.T) {
	db := freshDB()
	_, token := seedTestUser(db, "admin@example.com", "admin")
	router := setupCategoryRouter(db)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, authRequest("POST", "/api/admin/categories", map[string]string{
		"slug": "sem-nome",
	}, token))

	if w.Code != http.StatusBadRequest {
		t.Fatalf("Expected 400, got %d", w.Code)
	}
}

func TestDeleteCategoryWithProductsBlocked(t *testing.T) {
	db := freshDB()
	_, token := seedTestUser(db, "admin@example.com", "admin")
	cat := seedCategory(db, "Canecas")
	seedProduct(db, "Caneca Azul", cat.ID, 25.0)
	router := setupCategoryRouter(db)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, authRequest("DELETE", "/api/admin/categories/"+cat.ID.String(), nil, token))

	if w.Code != http.StatusBadRequest {
		t.Fatalf("Expected 400 deleting category with products, got %d", w.Code)
	}
}

func TestDeleteEmptyCategory(t *testing.T) {
	db := freshDB()
	_, token := seedTestUser(db, "admin@example.com", "admin")
	cat := seedCategory(db, "Vazia")
	router := setupCategoryRouter(db)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, authRequest("DELETE", "/api/admin/categories/"+cat.ID.String(), nil, token))

	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}
}
