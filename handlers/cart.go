package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"loja-backend/models"

	"github.com/gin-gonic/gin"
)

// CartHandler owns the cookie-backed cart. The cart lives entirely inside a
// single HTTP cookie so server-rendered pages can read it without JavaScript;
// there is no database row behind it.
type CartHandler struct{}

const (
	cartCookieName   = "cart"
	cartCookieMaxAge = int(7 * 24 * time.Hour / time.Second)
)

// readCart parses the cart cookie. An absent or malformed cookie degrades to
// an empty cart, never an error.
func readCart(c *gin.Context) []models.CartItem {
	raw, err := c.Cookie(cartCookieName)
	if err != nil {
		return []models.CartItem{}
	}

	var items []models.CartItem
	if err := json.Unmarshal([]byte(raw), &items); err != nil || items == nil {
		return []models.CartItem{}
	}
	return items
}

// writeCart rewrites the cookie wholesale with the new serialized list.
func writeCart(c *gin.Context, items []models.CartItem) error {
	data, err := json.Marshal(items)
	if err != nil {
		return err
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(cartCookieName, string(data), cartCookieMaxAge, "/", "", false, true)
	return nil
}

// GetCart returns the current cookie cart.
func (h *CartHandler) GetCart(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"success": true, "cart": readCart(c)})
}

type cartMutationRequest struct {
	Action    string           `json:"action"`
	Product   *models.CartItem `json:"product"`
	ProductID string           `json:"productId"`
	Quantity  *int             `json:"quantity"`
}

// MutateCart applies one add/remove/update/clear action to the cookie cart.
// Validation failures reject the whole request before the cookie is touched;
// a partial mutation is never committed.
func (h *CartHandler) MutateCart(c *gin.Context) {
	var req cartMutationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Corpo da requisição inválido"})
		return
	}

	items := readCart(c)

	switch req.Action {
	case "add":
		if req.Product == nil || req.Product.ID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Produto inválido"})
			return
		}
		items = addToCart(items, *req.Product)

	case "remove":
		if req.ProductID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "productId é obrigatório"})
			return
		}
		items = removeFromCart(items, req.ProductID)

	case "update":
		if req.ProductID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "productId é obrigatório"})
			return
		}
		if req.Quantity == nil || *req.Quantity < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "quantity deve ser maior ou igual a zero"})
			return
		}
		items = updateCartQuantity(items, req.ProductID, *req.Quantity)

	case "clear":
		items = []models.CartItem{}

	default:
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Ação inválida"})
		return
	}

	if err := writeCart(c, items); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Erro ao salvar o carrinho"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "cart": items})
}

// ReplaceCart overwrites the whole cookie cart with the posted list. This is
// the sync target for the client-side store, which always sends its full
// state. Entries without an id or with quantity < 1 are dropped.
func (h *CartHandler) ReplaceCart(c *gin.Context) {
	var incoming []models.CartItem
	if err := c.ShouldBindJSON(&incoming); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Corpo da requisição inválido"})
		return
	}

	items := make([]models.CartItem, 0, len(incoming))
	for _, item := range incoming {
		if item.Valid() {
			items = append(items, item)
		}
	}

	if err := writeCart(c, items); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Erro ao salvar o carrinho"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "cart": items})
}

func addToCart(items []models.CartItem, product models.CartItem) []models.CartItem {
	qty := product.Quantity
	if qty < 1 {
		qty = 1
	}
	for i := range items {
		if items[i].ID == product.ID {
			items[i].Quantity += qty
			return items
		}
	}
	product.Quantity = qty
	return append(items, product)
}

func removeFromCart(items []models.CartItem, productID string) []models.CartItem {
	result := make([]models.CartItem, 0, len(items))
	for _, item := range items {
		if item.ID != productID {
			result = append(result, item)
		}
	}
	return result
}

// updateCartQuantity sets the line verbatim; quantity zero deletes the line.
func updateCartQuantity(items []models.CartItem, productID string, quantity int) []models.CartItem {
	if quantity == 0 {
		return removeFromCart(items, productID)
	}
	for i := range items {
		if items[i].ID == productID {
			items[i].Quantity = quantity
			break
		}
	}
	return items
}
