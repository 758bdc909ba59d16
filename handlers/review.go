package handlers

import (
	"net/http"

	"loja-backend/models"
	"loja-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ReviewHandler struct {
	DB *gorm.DB
}

// GetProductReviews lists reviews for a product, newest first.
func (h *ReviewHandler) GetProductReviews(c *gin.Context) {
	productID := c.Param("id")

	var reviews []models.Review
	if err := h.DB.Preload("User").Where("product_id = ?", productID).Order("created_at DESC").Find(&reviews).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch reviews"})
		return
	}

	c.JSON(http.StatusOK, reviews)
}

// CreateReview adds a review for a product. One review per user per product;
// posting again overwrites the previous rating and comment.
func (h *ReviewHandler) CreateReview(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req struct {
		ProductID string `json:"product_id" binding:"required"`
		Rating    int    `json:"rating" binding:"required,min=1,max=5"`
		Comment   string `json:"comment"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": utils.SanitizeValidationError(err)})
		return
	}

	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product_id"})
		return
	}

	var product models.Product
	if err := h.DB.Where("id = ?", productID).First(&product).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}

	var review models.Review
	err = h.DB.Where("user_id = ? AND product_id = ?", userID, productID).First(&review).Error
	if err == nil {
		review.Rating = req.Rating
		review.Comment = req.Comment
		h.DB.Save(&review)
	} else {
		review = models.Review{
			ID:        uuid.New(),
			ProductID: productID,
			UserID:    userID.(uuid.UUID),
			Rating:    req.Rating,
			Comment:   req.Comment,
		}
		if err := h.DB.Create(&review).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create review"})
			return
		}
	}

	h.DB.Preload("User").Where("id = ?", review.ID).First(&review)
	c.JSON(http.StatusCreated, review)
}

// DeleteReview removes the caller's own review.
func (h *ReviewHandler) DeleteReview(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	id := c.Param("id")
	result := h.DB.Where("id = ? AND user_id = ?", id, userID).Delete(&models.Review{})
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete review"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Review not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Review deleted"})
}
