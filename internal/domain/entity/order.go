package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/kiranapos/kirana-api/internal/domain/enum"
	"gorm.io/gorm"
)

// Order is one completed sale. Subtotal, TotalGST and TotalAmount are always
// the sums over the line items; they are persisted redundantly for query
// efficiency and must never diverge from the item sums.
type Order struct {
	ID            uuid.UUID          `gorm:"type:uuid;primary_key" json:"id"`
	OrderNumber   string             `gorm:"size:50;uniqueIndex;not null" json:"order_number"`
	Subtotal      float64            `gorm:"type:numeric;not null" json:"subtotal"`
	TotalGST      float64            `gorm:"type:numeric;default:0" json:"total_gst"`
	TotalAmount   float64            `gorm:"type:numeric;not null" json:"total_amount"`
	PaymentMethod enum.PaymentMethod `gorm:"size:20;default:cash" json:"payment_method"`
	CustomerName  string             `gorm:"size:255" json:"customer_name"`
	CustomerPhone string             `gorm:"size:50" json:"customer_phone"`
	CashierID     uuid.UUID          `gorm:"type:uuid;index" json:"cashier_id"`
	Status        enum.OrderStatus   `gorm:"size:20;default:completed;index" json:"status"`
	CreatedAt     time.Time          `gorm:"index" json:"created_at"`
	UpdatedAt     time.Time          `json:"updated_at"`

	// Relationships
	Cashier *User       `gorm:"foreignKey:CashierID" json:"cashier,omitempty"`
	Items   []OrderItem `gorm:"foreignKey:OrderID" json:"items,omitempty"`
}

// BeforeCreate generates a UUID before creating a new order
func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Order model
func (Order) TableName() string {
	return "orders"
}

// OrderItem is one line of an order. Name, category, price and GST rate are
// snapshots taken at sale time so later product edits never alter history.
type OrderItem struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	OrderID       uuid.UUID `gorm:"type:uuid;not null;index" json:"order_id"`
	ProductID     uuid.UUID `gorm:"type:uuid;not null;index" json:"product_id"`
	Name          string    `gorm:"size:255;not null" json:"name"`
	Category      string    `gorm:"size:100" json:"category"`
	Price         float64   `gorm:"type:numeric;not null" json:"price"`
	Quantity      int       `gorm:"not null" json:"quantity"`
	GSTPercentage float64   `gorm:"type:numeric;default:0" json:"gst_percentage"`
	GSTAmount     float64   `gorm:"type:numeric;default:0" json:"gst_amount"`
	CreatedAt     time.Time `json:"created_at"`
}

// BeforeCreate generates a UUID before creating a new order item
func (i *OrderItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the OrderItem model
func (OrderItem) TableName() string {
	return "order_items"
}
