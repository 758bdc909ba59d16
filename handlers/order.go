package handlers

import (
	"net/http"

	"loja-backend/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type OrderHandler struct {
	DB *gorm.DB
}

// GetOrders lists the caller's orders. Admins see every order and can
// filter by customer email.
func (h *OrderHandler) GetOrders(c *gin.Context) {
	email, exists := c.Get("user_email")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	query := h.DB.Preload("Items").Order("created_at DESC")

	role, _ := c.Get("user_role")
	if role == "admin" {
		if filter := c.Query("customer_email"); filter != "" {
			query = query.Where("customer_email = ?", filter)
		}
	} else {
		query = query.Where("customer_email = ?", email)
	}

	var orders []models.Order
	if err := query.Find(&orders).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch orders"})
		return
	}

	c.JSON(http.StatusOK, orders)
}

// GetOrder fetches a single order by id or external reference. Customers
// can only see their own.
func (h *OrderHandler) GetOrder(c *gin.Context) {
	email, exists := c.Get("user_email")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	key := c.Param("id")

	var order models.Order
	if err := h.DB.Preload("Items").Where("id = ? OR reference = ?", key, key).First(&order).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}

	role, _ := c.Get("user_role")
	if role != "admin" && order.CustomerEmail != email {
		c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
		return
	}

	c.JSON(http.StatusOK, order)
}
