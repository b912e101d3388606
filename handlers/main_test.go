package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/kozhomberdieveldar/dodo-pizza/config"
	"github.com/kozhomberdieveldar/dodo-pizza/models"
	"github.com/kozhomberdieveldar/dodo-pizza/routes"
)

// setupRouter wires the real route table onto a fresh in-memory database.
func setupRouter(t *testing.T) *gin.Engine {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	// A pooled :memory: handle is a different database per connection
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Pizza{},
		&models.CartItem{},
		&models.PromoCode{},
		&models.Order{},
		&models.OrderItem{},
		&models.Review{},
	))

	config.DB = db
	config.Log = zap.NewNop()
	config.JWTSecret = []byte("test_secret")

	gin.SetMode(gin.TestMode)
	r := gin.New()
	routes.SetupRoutes(r)
	return r
}

// doJSON performs a request against the router and returns the recorder.
func doJSON(t *testing.T, r *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// registerUser creates an account through the API and returns its token.
func registerUser(t *testing.T, r *gin.Engine, username string) string {
	t.Helper()

	w := doJSON(t, r, http.MethodPost, "/api/auth/register", "", gin.H{
		"username": username,
		"email":    username + "@example.com",
		"password": "secret123",
		"phone":    "+7 700 000 00 00",
		"address":  "Abaya 10",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

// registerAdmin creates an account and promotes it to admin directly.
func registerAdmin(t *testing.T, r *gin.Engine, username string) string {
	t.Helper()

	registerUser(t, r, username)
	require.NoError(t, config.DB.Model(&models.User{}).
		Where("username = ?", username).
		Update("role", models.RoleAdmin).Error)

	w := doJSON(t, r, http.MethodPost, "/api/auth/login", "", gin.H{
		"username": username,
		"password": "secret123",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.Token
}

// seedPizza inserts a catalog entry straight into the store.
func seedPizza(t *testing.T, name, price string) models.Pizza {
	t.Helper()

	p := models.Pizza{
		Name:        name,
		Description: name + " pizza",
		Price:       mustDecimal(t, price),
		IsAvailable: true,
	}
	require.NoError(t, config.DB.Create(&p).Error)
	return p
}

// assertDecimalEqual compares a JSON-encoded decimal by value, so "711"
// and "711.00" are the same thing.
func assertDecimalEqual(t *testing.T, want string, raw json.RawMessage) {
	t.Helper()
	var d decimal.Decimal
	require.NoError(t, json.Unmarshal(raw, &d))
	require.Truef(t, mustDecimal(t, want).Equal(d), "want %s, got %s", want, d)
}

func mustDecimal(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	require.NoError(t, err)
	return d
}

// addToCart puts a pizza in the caller's cart via the API and returns the row id.
func addToCart(t *testing.T, r *gin.Engine, token string, pizzaID uint, qty int) uint {
	t.Helper()

	w := doJSON(t, r, http.MethodPost, "/api/cart", token, gin.H{
		"pizza_id": pizzaID,
		"quantity": qty,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var resp struct {
		Item models.CartItem `json:"item"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.Item.ID
}
