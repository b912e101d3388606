package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus represents all possible states of an order
type OrderStatus string

const (
	StatusNew        OrderStatus = "NEW"
	StatusProcessing OrderStatus = "PROCESSING"
	StatusDelivering OrderStatus = "DELIVERING"
	StatusCompleted  OrderStatus = "COMPLETED"
	StatusCanceled   OrderStatus = "CANCELED"
)

const (
	PaymentNotPaid = "NOT_PAID"
	PaymentPaid    = "PAID"
)

type Order struct {
	ID             uint            `json:"id" gorm:"primaryKey"`
	Number         string          `json:"number" gorm:"uniqueIndex;not null"`
	UserID         uint            `json:"user_id" gorm:"not null;uniqueIndex:idx_order_idem,where:idempotency_key <> ''"`
	User           User            `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Status         OrderStatus     `json:"status" gorm:"not null;default:'NEW'"`
	TotalPrice     decimal.Decimal `json:"total_price" gorm:"type:decimal(10,2);not null"`
	Address        string          `json:"address"`
	Phone          string          `json:"phone"`
	Comment        string          `json:"comment"`
	PromoCode      string          `json:"promo_code,omitempty"`
	PaymentStatus  string          `json:"payment_status" gorm:"not null;default:'NOT_PAID'"`
	IdempotencyKey string          `json:"-" gorm:"uniqueIndex:idx_order_idem,where:idempotency_key <> ''"`
	Items          []OrderItem     `json:"items,omitempty" gorm:"foreignKey:OrderID"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// OrderItem is a frozen line of an order. PricePerItem is copied from the
// pizza at checkout time and is never re-read from the live catalog.
type OrderItem struct {
	ID           uint            `json:"id" gorm:"primaryKey"`
	OrderID      uint            `json:"order_id" gorm:"not null"`
	PizzaID      uint            `json:"pizza_id" gorm:"not null"`
	Pizza        Pizza           `json:"pizza,omitempty" gorm:"foreignKey:PizzaID"`
	Quantity     int             `json:"quantity" gorm:"not null"`
	PricePerItem decimal.Decimal `json:"price_per_item" gorm:"type:decimal(10,2);not null"`
}

// Cost is quantity times the captured per-item price.
func (i *OrderItem) Cost() decimal.Decimal {
	return i.PricePerItem.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// IsTerminal reports whether no further status transitions are possible.
func (s OrderStatus) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCanceled
}
