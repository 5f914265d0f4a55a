package request

import "github.com/google/uuid"

// OrderItemRequest is one line of an order being placed
type OrderItemRequest struct {
	ProductID uuid.UUID `json:"product_id" binding:"required"`
	Quantity  int       `json:"quantity" binding:"required,gt=0"`
}

// PlaceOrderRequest represents an order placement request
type PlaceOrderRequest struct {
	PaymentMethod string             `json:"payment_method" binding:"omitempty,oneof=cash card upi bank"`
	CustomerName  string             `json:"customer_name" binding:"max=255"`
	CustomerPhone string             `json:"customer_phone" binding:"max=50"`
	Items         []OrderItemRequest `json:"items" binding:"required,min=1,dive"`
}
