package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type PromoCode struct {
	ID              uint            `json:"id" gorm:"primaryKey"`
	Code            string          `json:"code" gorm:"uniqueIndex;not null"`
	DiscountPercent int             `json:"discount_percent" gorm:"default:0"`
	DiscountAmount  decimal.Decimal `json:"discount_amount" gorm:"type:decimal(10,2);default:0"`
	MinOrderAmount  decimal.Decimal `json:"min_order_amount" gorm:"type:decimal(10,2);default:0"`
	IsActive        bool            `json:"is_active" gorm:"default:true"`
	ValidFrom       time.Time       `json:"valid_from"`
	ValidTo         time.Time       `json:"valid_to"`
	CreatedAt       time.Time       `json:"created_at"`
}

// InWindow reports whether now falls inside [ValidFrom, ValidTo].
// Both boundary instants count as valid.
func (p *PromoCode) InWindow(now time.Time) bool {
	return !now.Before(p.ValidFrom) && !now.After(p.ValidTo)
}

// Apply discounts subtotal by the promo terms: the percent discount first,
// then the flat amount, never below zero. Result is rounded to cents.
func (p *PromoCode) Apply(subtotal decimal.Decimal) decimal.Decimal {
	total := subtotal
	if p.DiscountPercent > 0 {
		factor := decimal.NewFromInt(int64(100 - p.DiscountPercent)).Div(decimal.NewFromInt(100))
		total = total.Mul(factor)
	}
	if p.DiscountAmount.IsPositive() {
		total = total.Sub(p.DiscountAmount)
	}
	if total.IsNegative() {
		total = decimal.Zero
	}
	return total.Round(2)
}
