package domain

import "time"

// OrderStatus is the lifecycle state of a checkout.
type OrderStatus string

const (
	OrderPending   OrderStatus = "pending"
	OrderSent      OrderStatus = "sent"
	OrderConfirmed OrderStatus = "confirmed"
)

// Order records a cart that was handed off to the messaging app.
type Order struct {
	ID           string      `json:"id"`
	UserID       string      `json:"userId"`
	Items        []CartItem  `json:"items"`
	Total        float64     `json:"total"`
	Status       OrderStatus `json:"status"`
	WhatsappSent bool        `json:"whatsappSent"`
	CreatedAt    time.Time   `json:"createdAt"`
}
