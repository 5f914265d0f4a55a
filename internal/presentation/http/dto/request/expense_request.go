package request

// CreateExpenseRequest represents an expense entry
type CreateExpenseRequest struct {
	Title         string  `json:"title" binding:"required,min=1,max=255"`
	Amount        float64 `json:"amount" binding:"required,gt=0"`
	Category      string  `json:"category" binding:"omitempty,oneof=rent utilities salary supplies marketing transport maintenance food other"`
	Date          string  `json:"date" binding:"omitempty,datetime=2006-01-02"`
	Description   string  `json:"description"`
	PaymentMethod string  `json:"payment_method" binding:"omitempty,oneof=cash card upi bank"`
}

// UpdateExpenseRequest represents an expense update; omitted fields stay as they are
type UpdateExpenseRequest struct {
	Title         *string  `json:"title" binding:"omitempty,min=1,max=255"`
	Amount        *float64 `json:"amount" binding:"omitempty,gt=0"`
	Category      *string  `json:"category" binding:"omitempty,oneof=rent utilities salary supplies marketing transport maintenance food other"`
	Date          *string  `json:"date" binding:"omitempty,datetime=2006-01-02"`
	Description   *string  `json:"description"`
	PaymentMethod *string  `json:"payment_method" binding:"omitempty,oneof=cash card upi bank"`
}
