package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/kozhomberdieveldar/dodo-pizza/config"
	"github.com/kozhomberdieveldar/dodo-pizza/middleware"
	"github.com/kozhomberdieveldar/dodo-pizza/models"
	"github.com/kozhomberdieveldar/dodo-pizza/statemachine"
)

// Checkout failures that map to client errors rather than a 500
var (
	errCartNotFound = errors.New("Cart items not found")
	errInvalidPromo = errors.New("invalid promo code")
	errExpiredPromo = errors.New("expired promo code")
	errPromoMinimum = errors.New("Order total is below the promo code minimum")
)

type CreateOrderRequest struct {
	CartItemIDs    []uint `json:"cart_item_ids" binding:"required,min=1"`
	PromoCode      string `json:"promo_code"`
	Address        string `json:"address"`
	Phone          string `json:"phone"`
	Comment        string `json:"comment"`
	IdempotencyKey string `json:"idempotency_key"`
}

// isCartSelectionError reports whether a binding failure is the missing or
// empty cart_item_ids list, as opposed to malformed JSON or another field.
func isCartSelectionError(err error) bool {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return false
	}
	for _, fe := range verrs {
		if fe.Field() == "CartItemIDs" {
			return true
		}
	}
	return false
}

// CreateOrder converts selected cart rows into an order.
//
// The selection is resolved against the caller's own cart only; rows
// belonging to other users or no longer existing are dropped silently.
// Order, item snapshots, popularity bumps and cart-row deletion happen
// inside one transaction, so a failure anywhere leaves no trace.
func CreateOrder(c *gin.Context) {
	userID := middleware.GetUserID(c)

	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		if isCartSelectionError(err) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "empty cart selection"})
		} else {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		}
		return
	}

	// Resubmission with the same key returns the stored order, no new effects
	if req.IdempotencyKey != "" {
		var existing models.Order
		err := config.DB.Preload("Items.Pizza").
			Where("user_id = ? AND idempotency_key = ?", userID, req.IdempotencyKey).
			First(&existing).Error
		if err == nil {
			c.JSON(http.StatusOK, gin.H{"order": existing, "duplicate": true})
			return
		}
	}

	// Resolving the cart rows, writing the order and consuming the rows
	// happen in the same transaction; two concurrent checkouts cannot
	// both capture a row.
	var order models.Order
	err := config.DB.Transaction(func(tx *gorm.DB) error {
		var fetched []models.CartItem
		tx.Preload("Pizza").
			Where("user_id = ? AND id IN ?", userID, req.CartItemIDs).
			Find(&fetched)

		// A row whose pizza left the catalog has no price to snapshot;
		// treat it like a nonexistent row.
		cartItems := fetched[:0]
		for _, item := range fetched {
			if item.Pizza.ID != 0 {
				cartItems = append(cartItems, item)
			}
		}
		if len(cartItems) == 0 {
			return errCartNotFound
		}

		subtotal := decimal.Zero
		for _, item := range cartItems {
			subtotal = subtotal.Add(item.Pizza.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
		}

		total := subtotal.Round(2)
		if req.PromoCode != "" {
			var promo models.PromoCode
			err := tx.Where("code = ? AND is_active = ?", req.PromoCode, true).First(&promo).Error
			if err != nil {
				return errInvalidPromo
			}
			if !promo.InWindow(time.Now()) {
				return errExpiredPromo
			}
			if subtotal.LessThan(promo.MinOrderAmount) {
				return errPromoMinimum
			}
			total = promo.Apply(subtotal)
		}

		// Delivery details default from the profile unless supplied
		var user models.User
		if err := tx.First(&user, userID).Error; err != nil {
			return err
		}
		address := req.Address
		if address == "" {
			address = user.Address
		}
		phone := req.Phone
		if phone == "" {
			phone = user.Phone
		}

		order = models.Order{
			Number:         uuid.NewString(),
			UserID:         userID,
			Status:         models.StatusNew,
			TotalPrice:     total,
			Address:        address,
			Phone:          phone,
			Comment:        req.Comment,
			PromoCode:      req.PromoCode,
			PaymentStatus:  models.PaymentNotPaid,
			IdempotencyKey: req.IdempotencyKey,
		}
		for _, item := range cartItems {
			order.Items = append(order.Items, models.OrderItem{
				PizzaID:      item.PizzaID,
				Quantity:     item.Quantity,
				PricePerItem: item.Pizza.Price, // frozen here, never re-read
			})
		}
		if err := tx.Create(&order).Error; err != nil {
			return err
		}

		resolved := make([]uint, 0, len(cartItems))
		for _, item := range cartItems {
			resolved = append(resolved, item.ID)
			err := tx.Model(&models.Pizza{}).Where("id = ?", item.PizzaID).
				UpdateColumn("popularity", gorm.Expr("popularity + ?", item.Quantity)).Error
			if err != nil {
				return err
			}
		}
		return tx.Where("user_id = ? AND id IN ?", userID, resolved).
			Delete(&models.CartItem{}).Error
	})
	switch {
	case err == nil:
	case errors.Is(err, errCartNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	case errors.Is(err, errInvalidPromo), errors.Is(err, errExpiredPromo), errors.Is(err, errPromoMinimum):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	default:
		internalError(c, "checkout", err)
		return
	}

	config.Log.Info("order placed",
		zap.Uint("user_id", userID),
		zap.String("number", order.Number),
		zap.String("total", order.TotalPrice.String()),
	)

	config.DB.Preload("Items.Pizza").First(&order, order.ID)
	c.JSON(http.StatusCreated, gin.H{"order": order})
}

// GetMyOrders returns the caller's orders, newest first
func GetMyOrders(c *gin.Context) {
	userID := middleware.GetUserID(c)

	query := config.DB.Preload("Items.Pizza").Where("user_id = ?", userID)
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var orders []models.Order
	query.Order("created_at desc").Find(&orders)
	c.JSON(http.StatusOK, gin.H{"count": len(orders), "orders": orders})
}

// GetOrderDetail returns a single order owned by the caller
func GetOrderDetail(c *gin.Context) {
	userID := middleware.GetUserID(c)

	var order models.Order
	if err := config.DB.Preload("Items.Pizza").First(&order, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}
	if order.UserID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "This order does not belong to you"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"order": order})
}

// GetStateMachineInfo returns the order lifecycle for documentation (public)
func GetStateMachineInfo(c *gin.Context) {
	transitions := statemachine.GetAllTransitions()
	info := make([]gin.H, 0, len(transitions))
	for _, t := range transitions {
		info = append(info, gin.H{
			"from":  t.From,
			"to":    t.To,
			"actor": t.Actor,
		})
	}
	c.JSON(http.StatusOK, gin.H{
		"state_machine":   info,
		"terminal_states": []models.OrderStatus{models.StatusCompleted, models.StatusCanceled},
		"description":     "Pizza Order Lifecycle State Machine",
	})
}

// CancelOrder cancels the caller's own order while it is still NEW or PROCESSING
func CancelOrder(c *gin.Context) {
	userID := middleware.GetUserID(c)

	var order models.Order
	if err := config.DB.First(&order, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}
	if order.UserID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "This order does not belong to you"})
		return
	}

	if err := statemachine.CanTransition(order.Status, models.StatusCanceled, "customer"); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":         "Cannot cancel order",
			"reason":        err.Error(),
			"current_state": order.Status,
		})
		return
	}

	prevStatus := order.Status
	if err := config.DB.Model(&order).Update("status", models.StatusCanceled).Error; err != nil {
		internalError(c, "cancel order", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":         "Order canceled",
		"order_id":        order.ID,
		"previous_status": prevStatus,
	})
}
