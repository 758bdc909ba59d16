package handlers

import (
	"net/http"
	"time"

	"loja-backend/models"
	"loja-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CouponHandler struct {
	DB *gorm.DB
}

// ValidateCoupon checks a code against the active coupons and returns the
// discount it would apply to the given subtotal. Used by the storefront to
// preview totals before checkout.
func (h *CouponHandler) ValidateCoupon(c *gin.Context) {
	var req struct {
		Code     string  `json:"code" binding:"required"`
		Subtotal float64 `json:"subtotal" binding:"min=0"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": utils.SanitizeValidationError(err)})
		return
	}

	var coupon models.Coupon
	if err := h.DB.Where("code = ?", req.Code).First(&coupon).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Cupom inválido"})
		return
	}

	if !coupon.Usable(time.Now()) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cupom expirado ou inativo"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"code":     coupon.Code,
		"type":     coupon.Type,
		"value":    coupon.Value,
		"discount": coupon.Discount(req.Subtotal),
	})
}

func (h *CouponHandler) GetCoupons(c *gin.Context) {
	var coupons []models.Coupon
	if err := h.DB.Order("created_at DESC").Find(&coupons).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch coupons"})
		return
	}
	c.JSON(http.StatusOK, coupons)
}

type couponRequest struct {
	Code      string     `json:"code" binding:"required"`
	Type      string     `json:"type" binding:"required,oneof=percent fixed"`
	Value     float64    `json:"value" binding:"required,min=0"`
	IsActive  *bool      `json:"is_active"`
	ExpiresAt *time.Time `json:"expires_at"`
}

func (h *CouponHandler) CreateCoupon(c *gin.Context) {
	var req couponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": utils.SanitizeValidationError(err)})
		return
	}

	coupon := models.Coupon{
		ID:        uuid.New(),
		Code:      req.Code,
		Type:      models.CouponType(req.Type),
		Value:     req.Value,
		IsActive:  true,
		ExpiresAt: req.ExpiresAt,
	}
	if req.IsActive != nil {
		coupon.IsActive = *req.IsActive
	}

	if err := h.DB.Create(&coupon).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create coupon"})
		return
	}

	c.JSON(http.StatusCreated, coupon)
}

func (h *CouponHandler) UpdateCoupon(c *gin.Context) {
	id := c.Param("id")

	var coupon models.Coupon
	if err := h.DB.Where("id = ?", id).First(&coupon).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Coupon not found"})
		return
	}

	var req struct {
		Code      *string    `json:"code"`
		Type      *string    `json:"type"`
		Value     *float64   `json:"value"`
		IsActive  *bool      `json:"is_active"`
		ExpiresAt *time.Time `json:"expires_at"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": utils.SanitizeValidationError(err)})
		return
	}

	if req.Code != nil {
		coupon.Code = *req.Code
	}
	if req.Type != nil {
		if *req.Type != string(models.CouponTypePercent) && *req.Type != string(models.CouponTypeFixed) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "type deve ser percent ou fixed"})
			return
		}
		coupon.Type = models.CouponType(*req.Type)
	}
	if req.Value != nil {
		coupon.Value = *req.Value
	}
	if req.IsActive != nil {
		coupon.IsActive = *req.IsActive
	}
	if req.ExpiresAt != nil {
		coupon.ExpiresAt = req.ExpiresAt
	}

	if err := h.DB.Save(&coupon).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update coupon"})
		return
	}

	c.JSON(http.StatusOK, coupon)
}

func (h *CouponHandler) DeleteCoupon(c *gin.Context) {
	id := c.Param("id")

	if err := h.DB.Where("id = ?", id).Delete(&models.Coupon{}).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete coupon"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Coupon deleted"})
}
