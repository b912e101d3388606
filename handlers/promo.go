package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/kozhomberdieveldar/dodo-pizza/config"
	"github.com/kozhomberdieveldar/dodo-pizza/models"
)

type ValidatePromoRequest struct {
	Code        string           `json:"code" binding:"required"`
	OrderAmount *decimal.Decimal `json:"order_amount"`
}

// ValidatePromo checks a code without consuming anything, so the front end
// can preview the discount before checkout. An expired code is reported
// distinctly from an unknown one.
func ValidatePromo(c *gin.Context) {
	var req ValidatePromoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var promo models.PromoCode
	err := config.DB.Where("code = ? AND is_active = ?", req.Code, true).First(&promo).Error
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid promo code"})
		return
	}
	if !promo.InWindow(time.Now()) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "expired promo code"})
		return
	}

	resp := gin.H{
		"code":             promo.Code,
		"discount_percent": promo.DiscountPercent,
		"discount_amount":  promo.DiscountAmount,
		"min_order_amount": promo.MinOrderAmount,
	}
	if req.OrderAmount != nil {
		if req.OrderAmount.LessThan(promo.MinOrderAmount) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":            "Order total is below the promo code minimum",
				"min_order_amount": promo.MinOrderAmount,
			})
			return
		}
		resp["discounted_total"] = promo.Apply(*req.OrderAmount)
	}
	c.JSON(http.StatusOK, resp)
}

type CreatePromoRequest struct {
	Code            string          `json:"code" binding:"required"`
	DiscountPercent int             `json:"discount_percent" binding:"min=0,max=100"`
	DiscountAmount  decimal.Decimal `json:"discount_amount"`
	MinOrderAmount  decimal.Decimal `json:"min_order_amount"`
	IsActive        *bool           `json:"is_active"`
	ValidFrom       time.Time       `json:"valid_from" binding:"required"`
	ValidTo         time.Time       `json:"valid_to" binding:"required"`
}

// CreatePromo registers a promo code (admin only)
func CreatePromo(c *gin.Context) {
	var req CreatePromoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.ValidTo.Before(req.ValidFrom) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "valid_to must not precede valid_from"})
		return
	}
	if req.DiscountAmount.IsNegative() || req.MinOrderAmount.IsNegative() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Amounts must not be negative"})
		return
	}

	var existing models.PromoCode
	if result := config.DB.Where("code = ?", req.Code).First(&existing); result.Error == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Promo code already exists"})
		return
	}

	promo := models.PromoCode{
		Code:            req.Code,
		DiscountPercent: req.DiscountPercent,
		DiscountAmount:  req.DiscountAmount,
		MinOrderAmount:  req.MinOrderAmount,
		IsActive:        true,
		ValidFrom:       req.ValidFrom,
		ValidTo:         req.ValidTo,
	}
	if req.IsActive != nil {
		promo.IsActive = *req.IsActive
	}
	if err := config.DB.Create(&promo).Error; err != nil {
		internalError(c, "create promo", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"promo": promo})
}

// ListPromos returns all promo codes (admin only)
func ListPromos(c *gin.Context) {
	var promos []models.PromoCode
	config.DB.Order("created_at desc").Find(&promos)
	c.JSON(http.StatusOK, gin.H{"count": len(promos), "promos": promos})
}
