package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/kozhomberdieveldar/dodo-pizza/config"
	"github.com/kozhomberdieveldar/dodo-pizza/middleware"
	"github.com/kozhomberdieveldar/dodo-pizza/models"
)

type CreateReviewRequest struct {
	PizzaID uint   `json:"pizza_id" binding:"required"`
	Rating  int    `json:"rating" binding:"required,min=1,max=5"`
	Comment string `json:"comment"`
}

// ListReviews returns reviews, optionally for one pizza, newest first (public)
func ListReviews(c *gin.Context) {
	query := config.DB.Order("created_at desc")
	if pizzaID := c.Query("pizza"); pizzaID != "" {
		query = query.Where("pizza_id = ?", pizzaID)
	}
	var reviews []models.Review
	query.Find(&reviews)
	c.JSON(http.StatusOK, gin.H{"count": len(reviews), "reviews": reviews})
}

// CreateReview stores a review and refreshes the pizza's rating to the
// exact mean of all its reviews. Anonymous reviews are allowed; the user
// is recorded when a valid token came with the request.
func CreateReview(c *gin.Context) {
	var req CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var pizza models.Pizza
	if err := config.DB.First(&pizza, req.PizzaID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Pizza not found"})
		return
	}

	review := models.Review{
		PizzaID: req.PizzaID,
		UserID:  middleware.OptionalUserID(c),
		Rating:  req.Rating,
		Comment: req.Comment,
	}

	err := config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&review).Error; err != nil {
			return err
		}
		var mean float64
		err := tx.Model(&models.Review{}).
			Where("pizza_id = ?", req.PizzaID).
			Select("AVG(rating)").
			Scan(&mean).Error
		if err != nil {
			return err
		}
		return tx.Model(&models.Pizza{}).Where("id = ?", req.PizzaID).
			Update("rating", mean).Error
	})
	if err != nil {
		internalError(c, "create review", err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"review": review})
}
