package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/kiranapos/kirana-api/internal/domain/enum"
	"gorm.io/gorm"
)

// StockReceipt records one purchase event from a seller. TotalCost is the
// GST-inclusive amount as entered; BaseAmount, GSTAmount, the split components
// and PurchasePrice are derived deterministically from it on creation and the
// figures are stored unrounded. Receipts are immutable once created.
type StockReceipt struct {
	ID              uuid.UUID    `gorm:"type:uuid;primary_key" json:"id"`
	ProductID       uuid.UUID    `gorm:"type:uuid;not null;index" json:"product_id"`
	Quantity        int          `gorm:"not null" json:"quantity"`
	TotalCost       float64      `gorm:"type:numeric;not null" json:"total_cost"`
	PurchasePrice   float64      `gorm:"type:numeric;default:0" json:"purchase_price"` // inclusive, per unit
	BaseAmount      float64      `gorm:"type:numeric;default:0" json:"base_amount"`    // total cost without GST
	SellerName      string       `gorm:"size:255;not null" json:"seller_name"`
	SellerGSTNumber string       `gorm:"size:50" json:"seller_gst_number"`
	GSTPercentage   float64      `gorm:"type:numeric;default:18" json:"gst_percentage"`
	GSTType         enum.GSTType `gorm:"size:20;default:cgst_sgst" json:"gst_type"`
	GSTAmount       float64      `gorm:"type:numeric;default:0" json:"gst_amount"`
	CGSTAmount      float64      `gorm:"type:numeric;default:0" json:"cgst_amount"`
	SGSTAmount      float64      `gorm:"type:numeric;default:0" json:"sgst_amount"`
	IGSTAmount      float64      `gorm:"type:numeric;default:0" json:"igst_amount"`
	InvoiceNumber   string       `gorm:"size:100" json:"invoice_number"`
	Notes           string       `gorm:"type:text" json:"notes"`
	AddedByID       uuid.UUID    `gorm:"type:uuid;index" json:"added_by_id"`
	CreatedAt       time.Time    `json:"created_at"`
	UpdatedAt       time.Time    `json:"updated_at"`

	// Relationships
	Product *Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	AddedBy *User    `gorm:"foreignKey:AddedByID" json:"added_by,omitempty"`
}

// BeforeCreate generates a UUID before creating a new stock receipt
func (s *StockReceipt) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the StockReceipt model
func (StockReceipt) TableName() string {
	return "stock_receipts"
}
