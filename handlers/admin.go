package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/kozhomberdieveldar/dodo-pizza/config"
	"github.com/kozhomberdieveldar/dodo-pizza/middleware"
	"github.com/kozhomberdieveldar/dodo-pizza/models"
	"github.com/kozhomberdieveldar/dodo-pizza/statemachine"
)

// AdminGetAllOrders returns all orders with a status summary — admin only
func AdminGetAllOrders(c *gin.Context) {
	query := config.DB.Preload("Items.Pizza").Preload("User")
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if userID := c.Query("user_id"); userID != "" {
		query = query.Where("user_id = ?", userID)
	}

	var orders []models.Order
	query.Order("created_at desc").Find(&orders)

	summary := map[string]int{}
	revenue := decimal.Zero
	for _, o := range orders {
		summary[string(o.Status)]++
		if o.Status == models.StatusCompleted {
			revenue = revenue.Add(o.TotalPrice)
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"order_summary":     summary,
		"completed_revenue": revenue,
		"count":             len(orders),
		"orders":            orders,
	})
}

type UpdateOrderStatusRequest struct {
	Status models.OrderStatus `json:"status" binding:"required"`
}

// AdminUpdateOrderStatus moves an order through its lifecycle — admin only.
// Transitions outside the state machine are rejected.
func AdminUpdateOrderStatus(c *gin.Context) {
	adminID := middleware.GetUserID(c)

	var order models.Order
	if err := config.DB.First(&order, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}

	var req UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := statemachine.CanTransition(order.Status, req.Status, "admin"); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":             "Invalid state transition",
			"current_status":    order.Status,
			"requested":         req.Status,
			"reason":            err.Error(),
			"valid_next_states": statemachine.ValidTransitionsFrom(order.Status),
		})
		return
	}

	prevStatus := order.Status
	if err := config.DB.Model(&order).Update("status", req.Status).Error; err != nil {
		internalError(c, "update order status", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":         "Order status updated",
		"order_id":        order.ID,
		"changed_by":      adminID,
		"previous_status": string(prevStatus),
		"current_status":  string(req.Status),
	})
}

// AdminMarkOrderPaid flips the payment flag; there is no gateway behind it
func AdminMarkOrderPaid(c *gin.Context) {
	var order models.Order
	if err := config.DB.First(&order, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}
	if err := config.DB.Model(&order).Update("payment_status", models.PaymentPaid).Error; err != nil {
		internalError(c, "mark order paid", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Order marked paid", "order_id": order.ID})
}

// AdminGetAllUsers returns all users — admin only
func AdminGetAllUsers(c *gin.Context) {
	var users []models.User
	query := config.DB
	if role := c.Query("role"); role != "" {
		query = query.Where("role = ?", role)
	}
	query.Find(&users)
	c.JSON(http.StatusOK, gin.H{"count": len(users), "users": users})
}
