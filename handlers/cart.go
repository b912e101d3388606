package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/kozhomberdieveldar/dodo-pizza/config"
	"github.com/kozhomberdieveldar/dodo-pizza/middleware"
	"github.com/kozhomberdieveldar/dodo-pizza/models"
)

type AddToCartRequest struct {
	PizzaID  uint `json:"pizza_id" binding:"required"`
	Quantity int  `json:"quantity" binding:"required,min=1"`
}

// GetCart returns the caller's cart rows with per-row subtotals and the
// total at current catalog prices
func GetCart(c *gin.Context) {
	userID := middleware.GetUserID(c)

	var items []models.CartItem
	config.DB.Preload("Pizza").Where("user_id = ?", userID).Order("added_at").Find(&items)

	total := decimal.Zero
	rows := make([]gin.H, 0, len(items))
	for _, item := range items {
		subtotal := item.Pizza.Price.Mul(decimal.NewFromInt(int64(item.Quantity)))
		total = total.Add(subtotal)
		rows = append(rows, gin.H{
			"id":       item.ID,
			"pizza":    item.Pizza,
			"quantity": item.Quantity,
			"added_at": item.AddedAt,
			"subtotal": subtotal,
		})
	}

	c.JSON(http.StatusOK, gin.H{"count": len(rows), "items": rows, "total": total})
}

// AddToCart adds a pizza to the caller's cart. If the pizza is already
// there, the quantities are summed instead of a second row appearing.
func AddToCart(c *gin.Context) {
	userID := middleware.GetUserID(c)

	var req AddToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var pizza models.Pizza
	if err := config.DB.First(&pizza, req.PizzaID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Pizza not found"})
		return
	}
	if !pizza.IsAvailable {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Pizza '" + pizza.Name + "' is not available"})
		return
	}

	var item models.CartItem
	err := config.DB.Where("user_id = ? AND pizza_id = ?", userID, req.PizzaID).First(&item).Error
	if err == nil {
		item.Quantity += req.Quantity
		if err := config.DB.Save(&item).Error; err != nil {
			internalError(c, "update cart item", err)
			return
		}
	} else {
		item = models.CartItem{UserID: userID, PizzaID: req.PizzaID, Quantity: req.Quantity}
		if err := config.DB.Create(&item).Error; err != nil {
			internalError(c, "create cart item", err)
			return
		}
	}

	config.DB.Preload("Pizza").First(&item, item.ID)
	c.JSON(http.StatusCreated, gin.H{"item": item})
}

type UpdateCartItemRequest struct {
	Quantity int `json:"quantity" binding:"required,min=1"`
}

// UpdateCartItem sets the quantity on one of the caller's cart rows
func UpdateCartItem(c *gin.Context) {
	userID := middleware.GetUserID(c)

	var item models.CartItem
	if err := config.DB.Where("user_id = ?", userID).First(&item, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Cart item not found"})
		return
	}

	var req UpdateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	item.Quantity = req.Quantity
	if err := config.DB.Save(&item).Error; err != nil {
		internalError(c, "update cart item", err)
		return
	}

	config.DB.Preload("Pizza").First(&item, item.ID)
	c.JSON(http.StatusOK, gin.H{"item": item})
}

type UpdateCartRequest struct {
	ID       uint `json:"id" binding:"required"`
	Quantity int  `json:"quantity" binding:"required,min=1"`
}

// UpdateCart is the body-addressed variant of UpdateCartItem, kept for
// front ends that POST to /cart/update instead of PUT-ing the row
func UpdateCart(c *gin.Context) {
	userID := middleware.GetUserID(c)

	var req UpdateCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var item models.CartItem
	if err := config.DB.Where("user_id = ? AND id = ?", userID, req.ID).First(&item).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Cart item not found"})
		return
	}

	item.Quantity = req.Quantity
	if err := config.DB.Save(&item).Error; err != nil {
		internalError(c, "update cart item", err)
		return
	}

	config.DB.Preload("Pizza").First(&item, item.ID)
	c.JSON(http.StatusOK, gin.H{"item": item})
}

// DeleteCartItem removes one of the caller's cart rows
func DeleteCartItem(c *gin.Context) {
	userID := middleware.GetUserID(c)

	var item models.CartItem
	if err := config.DB.Where("user_id = ?", userID).First(&item, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Cart item not found"})
		return
	}
	if err := config.DB.Delete(&item).Error; err != nil {
		internalError(c, "delete cart item", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Cart item removed", "item_id": item.ID})
}
