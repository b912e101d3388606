package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/kozhomberdieveldar/dodo-pizza/config"
	"github.com/kozhomberdieveldar/dodo-pizza/models"
)

// sortColumns maps the public sort keys to order-by clauses
var sortColumns = map[string]string{
	"price":       "price asc",
	"-price":      "price desc",
	"rating":      "rating asc",
	"-rating":     "rating desc",
	"popularity":  "popularity asc",
	"-popularity": "popularity desc",
}

// ListPizzas returns the catalog with optional filters and sorting (public)
func ListPizzas(c *gin.Context) {
	query := config.DB.Preload("Category")

	if slug := c.Query("category"); slug != "" {
		var category models.Category
		if err := config.DB.Where("slug = ?", slug).First(&category).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Category not found"})
			return
		}
		query = query.Where("category_id = ?", category.ID)
	}
	if q := c.Query("q"); q != "" {
		query = query.Where("name LIKE ? OR description LIKE ?", "%"+q+"%", "%"+q+"%")
	}
	if minPrice := c.Query("min_price"); minPrice != "" {
		if min, err := decimal.NewFromString(minPrice); err == nil {
			query = query.Where("price >= ?", min)
		}
	}
	if maxPrice := c.Query("max_price"); maxPrice != "" {
		if max, err := decimal.NewFromString(maxPrice); err == nil {
			query = query.Where("price <= ?", max)
		}
	}
	if c.Query("available") == "true" {
		query = query.Where("is_available = ?", true)
	}
	if sort := c.Query("sort"); sort != "" {
		clause, ok := sortColumns[sort]
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown sort key: " + sort})
			return
		}
		query = query.Order(clause)
	}

	var pizzas []models.Pizza
	query.Find(&pizzas)
	c.JSON(http.StatusOK, gin.H{"count": len(pizzas), "pizzas": pizzas})
}

// GetPizza returns a single catalog entry (public)
func GetPizza(c *gin.Context) {
	var pizza models.Pizza
	if err := config.DB.Preload("Category").First(&pizza, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Pizza not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"pizza": pizza})
}

// ListCategories returns all categories (public)
func ListCategories(c *gin.Context) {
	var categories []models.Category
	config.DB.Order("name").Find(&categories)
	c.JSON(http.StatusOK, gin.H{"count": len(categories), "categories": categories})
}

// ListCategoryPizzas returns all pizzas in a category by slug (public)
func ListCategoryPizzas(c *gin.Context) {
	var category models.Category
	if err := config.DB.Where("slug = ?", c.Param("slug")).First(&category).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Category not found"})
		return
	}

	var pizzas []models.Pizza
	config.DB.Where("category_id = ?", category.ID).Find(&pizzas)
	c.JSON(http.StatusOK, gin.H{
		"category": category,
		"count":    len(pizzas),
		"pizzas":   pizzas,
	})
}

type PizzaRequest struct {
	Name        string          `json:"name" binding:"required"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price" binding:"required"`
	CategoryID  *uint           `json:"category_id"`
	ImageURL    string          `json:"image_url"`
	IsAvailable *bool           `json:"is_available"`
}

// CreatePizza adds a catalog entry (admin only)
func CreatePizza(c *gin.Context) {
	var req PizzaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Price.IsNegative() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Price must not be negative"})
		return
	}
	if req.CategoryID != nil {
		var category models.Category
		if err := config.DB.First(&category, *req.CategoryID).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Category not found"})
			return
		}
	}

	pizza := models.Pizza{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		CategoryID:  req.CategoryID,
		ImageURL:    req.ImageURL,
		IsAvailable: true,
	}
	if req.IsAvailable != nil {
		pizza.IsAvailable = *req.IsAvailable
	}
	if err := config.DB.Create(&pizza).Error; err != nil {
		internalError(c, "create pizza", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"pizza": pizza})
}

// UpdatePizza modifies a catalog entry (admin only). Price changes here
// never touch the snapshots held by existing order items.
func UpdatePizza(c *gin.Context) {
	var pizza models.Pizza
	if err := config.DB.First(&pizza, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Pizza not found"})
		return
	}

	var req PizzaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Price.IsNegative() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Price must not be negative"})
		return
	}

	if req.CategoryID != nil {
		var category models.Category
		if err := config.DB.First(&category, *req.CategoryID).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Category not found"})
			return
		}
	}

	pizza.Name = req.Name
	pizza.Description = req.Description
	pizza.Price = req.Price
	pizza.CategoryID = req.CategoryID
	pizza.ImageURL = req.ImageURL
	if req.IsAvailable != nil {
		pizza.IsAvailable = *req.IsAvailable
	}
	if err := config.DB.Save(&pizza).Error; err != nil {
		internalError(c, "update pizza", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"pizza": pizza})
}

// DeletePizza removes a catalog entry (admin only). Cart rows pointing
// at it go with it; order item snapshots stay untouched.
func DeletePizza(c *gin.Context) {
	var pizza models.Pizza
	if err := config.DB.First(&pizza, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Pizza not found"})
		return
	}
	err := config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("pizza_id = ?", pizza.ID).Delete(&models.CartItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(&pizza).Error
	})
	if err != nil {
		internalError(c, "delete pizza", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Pizza deleted", "pizza_id": pizza.ID})
}

type CategoryRequest struct {
	Name string `json:"name" binding:"required"`
	Slug string `json:"slug" binding:"required"`
}

// CreateCategory adds a category (admin only)
func CreateCategory(c *gin.Context) {
	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var existing models.Category
	if result := config.DB.Where("slug = ?", req.Slug).First(&existing); result.Error == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Category slug already exists"})
		return
	}

	category := models.Category{Name: req.Name, Slug: req.Slug}
	if err := config.DB.Create(&category).Error; err != nil {
		internalError(c, "create category", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"category": category})
}
