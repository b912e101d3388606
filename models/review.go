package models

import "time"

type Review struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	PizzaID   uint      `json:"pizza_id" gorm:"not null"`
	UserID    *uint     `json:"user_id"` // nil for anonymous reviews
	User      *User     `json:"-" gorm:"foreignKey:UserID"`
	Rating    int       `json:"rating" gorm:"not null"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"created_at"`
}
