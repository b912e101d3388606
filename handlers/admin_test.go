package handlers_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kozhomberdieveldar/dodo-pizza/config"
	"github.com/kozhomberdieveldar/dodo-pizza/models"
)

func placeOrder(t *testing.T, r *gin.Engine, token string, pizzaID uint, qty int) uint {
	t.Helper()
	itemID := addToCart(t, r, token, pizzaID, qty)
	w := doJSON(t, r, http.MethodPost, "/api/orders/create", token, gin.H{
		"cart_item_ids": []uint{itemID},
	})
	require.Equal(t, http.StatusCreated, w.Code)
	var resp orderResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.Order.ID
}

func TestAdminStatusTransitionGuard(t *testing.T) {
	r := setupRouter(t)
	admin := registerAdmin(t, r, "root")
	customer := registerUser(t, r, "alice")
	pizza := seedPizza(t, "Pepperoni", "395")
	orderID := placeOrder(t, r, customer, pizza.ID, 1)

	statusURL := fmt.Sprintf("/api/admin/orders/%d/status", orderID)

	// Skipping PROCESSING is rejected
	w := doJSON(t, r, http.MethodPut, statusURL, admin, gin.H{"status": "COMPLETED"})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	for _, status := range []string{"PROCESSING", "DELIVERING", "COMPLETED"} {
		w = doJSON(t, r, http.MethodPut, statusURL, admin, gin.H{"status": status})
		require.Equal(t, http.StatusOK, w.Code, "transition to %s", status)
	}

	// COMPLETED is terminal
	w = doJSON(t, r, http.MethodPut, statusURL, admin, gin.H{"status": "NEW"})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	var order models.Order
	require.NoError(t, config.DB.First(&order, orderID).Error)
	assert.Equal(t, models.StatusCompleted, order.Status)
}

func TestAdminOrderDashboard(t *testing.T) {
	r := setupRouter(t)
	admin := registerAdmin(t, r, "root")
	customer := registerUser(t, r, "alice")
	pizza := seedPizza(t, "Pepperoni", "395")

	first := placeOrder(t, r, customer, pizza.ID, 2)
	placeOrder(t, r, customer, pizza.ID, 1)

	for _, status := range []string{"PROCESSING", "DELIVERING", "COMPLETED"} {
		w := doJSON(t, r, http.MethodPut, fmt.Sprintf("/api/admin/orders/%d/status", first), admin, gin.H{"status": status})
		require.Equal(t, http.StatusOK, w.Code)
	}

	w := doJSON(t, r, http.MethodGet, "/api/admin/orders", admin, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		OrderSummary     map[string]int  `json:"order_summary"`
		CompletedRevenue json.RawMessage `json:"completed_revenue"`
		Count            int             `json:"count"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.Count)
	assert.Equal(t, 1, resp.OrderSummary["COMPLETED"])
	assert.Equal(t, 1, resp.OrderSummary["NEW"])
	assertDecimalEqual(t, "790", resp.CompletedRevenue)
}

func TestAdminMarkOrderPaid(t *testing.T) {
	r := setupRouter(t)
	admin := registerAdmin(t, r, "root")
	customer := registerUser(t, r, "alice")
	pizza := seedPizza(t, "Pepperoni", "395")
	orderID := placeOrder(t, r, customer, pizza.ID, 1)

	w := doJSON(t, r, http.MethodPut, fmt.Sprintf("/api/admin/orders/%d/paid", orderID), admin, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var order models.Order
	require.NoError(t, config.DB.First(&order, orderID).Error)
	assert.Equal(t, models.PaymentPaid, order.PaymentStatus)
}

func TestAdminRoutesClosedToCustomers(t *testing.T) {
	r := setupRouter(t)
	customer := registerUser(t, r, "alice")

	w := doJSON(t, r, http.MethodGet, "/api/admin/orders", customer, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doJSON(t, r, http.MethodGet, "/api/admin/users", customer, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
}
