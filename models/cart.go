package models

import "time"

// CartItem is one pending row of a user's cart. A user holds at most one
// row per pizza; adding the same pizza again increments the quantity.
// Rows are consumed (deleted) when checkout captures them into an order.
type CartItem struct {
	ID       uint      `json:"id" gorm:"primaryKey"`
	UserID   uint      `json:"user_id" gorm:"not null;uniqueIndex:idx_cart_user_pizza"`
	PizzaID  uint      `json:"pizza_id" gorm:"not null;uniqueIndex:idx_cart_user_pizza"`
	Pizza    Pizza     `json:"pizza,omitempty" gorm:"foreignKey:PizzaID;constraint:OnDelete:CASCADE"`
	Quantity int       `json:"quantity" gorm:"not null;default:1"`
	AddedAt  time.Time `json:"added_at" gorm:"autoCreateTime"`
}
