package request

// CreateProductRequest represents a product creation request
type CreateProductRequest struct {
	Name          string  `json:"name" binding:"required,min=1,max=255"`
	Description   string  `json:"description"`
	Category      string  `json:"category" binding:"max=100"`
	Price         float64 `json:"price" binding:"gte=0"`
	GSTPercentage float64 `json:"gst_percentage" binding:"gte=0,lte=100"`
	Barcode       string  `json:"barcode" binding:"max=100"`
	Unit          string  `json:"unit" binding:"max=50"`
}

// UpdateProductRequest represents a product update request; omitted fields stay as they are
type UpdateProductRequest struct {
	Name          *string  `json:"name" binding:"omitempty,min=1,max=255"`
	Description   *string  `json:"description"`
	Category      *string  `json:"category" binding:"omitempty,max=100"`
	Price         *float64 `json:"price" binding:"omitempty,gte=0"`
	GSTPercentage *float64 `json:"gst_percentage" binding:"omitempty,gte=0,lte=100"`
	Barcode       *string  `json:"barcode" binding:"omitempty,max=100"`
	Unit          *string  `json:"unit" binding:"omitempty,max=50"`
	IsActive      *bool    `json:"is_active"`
}
