package handlers

import (
	"net/http"
	"strconv"

	"loja-backend/models"
	"loja-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProductHandler struct {
	DB *gorm.DB
}

// GetProducts lists catalog products with optional search, category and
// in-stock filters.
func (h *ProductHandler) GetProducts(c *gin.Context) {
	query := h.DB.Preload("Category")

	if search := c.Query("search"); search != "" {
		query = query.Where("LOWER(name) LIKE LOWER(?)", "%"+search+"%")
	}
	if categoryID := c.Query("category_id"); categoryID != "" {
		query = query.Where("category_id = ?", categoryID)
	}
	if c.Query("in_stock") == "true" {
		query = query.Where("stock > 0")
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	offset := (page - 1) * limit

	var total int64
	query.Model(&models.Product{}).Count(&total)

	var products []models.Product
	if err := query.Order("created_at DESC").Offset(offset).Limit(limit).Find(&products).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch products"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"products": products,
		"total":    total,
		"page":     page,
		"limit":    limit,
	})
}

// GetProduct looks a product up by id, falling back to slug so storefront
// URLs work with either.
func (h *ProductHandler) GetProduct(c *gin.Context) {
	key := c.Param("id")

	var product models.Product
	query := h.DB.Preload("Category")
	if _, err := uuid.Parse(key); err == nil {
		query = query.Where("id = ?", key)
	} else {
		query = query.Where("slug = ?", key)
	}

	if err := query.First(&product).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}

	c.JSON(http.StatusOK, product)
}

type productRequest struct {
	Name        string  `json:"name" binding:"required"`
	Slug        string  `json:"slug" binding:"required"`
	Price       float64 `json:"price" binding:"required,min=0"`
	Image       string  `json:"image"`
	Stock       *int    `json:"stock"`
	Description string  `json:"description"`
	CategoryID  string  `json:"category_id" binding:"required"`
}

func (h *ProductHandler) CreateProduct(c *gin.Context) {
	var req productRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": utils.SanitizeValidationError(err)})
		return
	}

	categoryID, err := uuid.Parse(req.CategoryID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid category_id"})
		return
	}

	var category models.Category
	if err := h.DB.Where("id = ?", categoryID).First(&category).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Category not found"})
		return
	}

	product := models.Product{
		ID:          uuid.New(),
		Name:        req.Name,
		Slug:        req.Slug,
		Price:       req.Price,
		Image:       req.Image,
		Description: req.Description,
		CategoryID:  categoryID,
	}
	if req.Stock != nil {
		product.Stock = *req.Stock
	}

	if err := h.DB.Create(&product).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create product"})
		return
	}

	h.DB.Preload("Category").Where("id = ?", product.ID).First(&product)
	c.JSON(http.StatusCreated, product)
}

func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	id := c.Param("id")

	var product models.Product
	if err := h.DB.Where("id = ?", id).First(&product).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}

	var req struct {
		Name        *string  `json:"name"`
		Slug        *string  `json:"slug"`
		Price       *float64 `json:"price"`
		Image       *string  `json:"image"`
		Stock       *int     `json:"stock"`
		Description *string  `json:"description"`
		CategoryID  *string  `json:"category_id"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": utils.SanitizeValidationError(err)})
		return
	}

	if req.Name != nil {
		product.Name = *req.Name
	}
	if req.Slug != nil {
		product.Slug = *req.Slug
	}
	if req.Price != nil {
		product.Price = *req.Price
	}
	if req.Image != nil {
		product.Image = *req.Image
	}
	if req.Stock != nil {
		product.Stock = *req.Stock
	}
	if req.Description != nil {
		product.Description = *req.Description
	}
	if req.CategoryID != nil {
		categoryID, err := uuid.Parse(*req.CategoryID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid category_id"})
			return
		}
		product.CategoryID = categoryID
	}

	if err := h.DB.Save(&product).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update product"})
		return
	}

	h.DB.Preload("Category").Where("id = ?", product.ID).First(&product)
	c.JSON(http.StatusOK, product)
}

func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	id := c.Param("id")

	if err := h.DB.Where("id = ?", id).Delete(&models.Product{}).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete product"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Product deleted"})
}
