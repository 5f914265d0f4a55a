package request

import "github.com/google/uuid"

// ReceiveStockRequest represents a stock receipt entry
type ReceiveStockRequest struct {
	ProductID       uuid.UUID `json:"product_id" binding:"required"`
	Quantity        int       `json:"quantity" binding:"required,gt=0"`
	TotalCost       float64   `json:"total_cost" binding:"gte=0"`
	GSTPercentage   float64   `json:"gst_percentage" binding:"gte=0,lte=100"`
	GSTType         string    `json:"gst_type" binding:"omitempty,oneof=cgst_sgst igst"`
	SellerName      string    `json:"seller_name" binding:"required,max=255"`
	SellerGSTNumber string    `json:"seller_gst_number" binding:"max=50"`
	InvoiceNumber   string    `json:"invoice_number" binding:"max=100"`
	Notes           string    `json:"notes"`
}

// DeriveFieldRequest carries the two known purchase-entry fields
type DeriveFieldRequest struct {
	Quantity     *float64 `json:"quantity"`
	TotalPrice   *float64 `json:"total_price"`
	PricePerUnit *float64 `json:"price_per_unit"`
}
