package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Product is a sellable item. Price is the GST-exclusive selling price per
// unit; CostPrice is the GST-exclusive cost per unit and always reflects the
// most recent stock receipt (last-purchase costing, not a weighted average).
// Stock only moves through stock receipts and orders, never via direct update.
type Product struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Name          string    `gorm:"size:255;not null;index" json:"name"`
	Description   string    `gorm:"type:text" json:"description"`
	Category      string    `gorm:"size:100;not null;index" json:"category"`
	Price         float64   `gorm:"type:numeric;not null" json:"price"`
	CostPrice     float64   `gorm:"type:numeric;default:0" json:"cost_price"`
	GSTPercentage float64   `gorm:"type:numeric;default:18" json:"gst_percentage"`
	Stock         int       `gorm:"default:0;check:stock >= 0" json:"stock"`
	Barcode       string    `gorm:"size:100;index" json:"barcode"`
	Unit          string    `gorm:"size:50;default:pcs" json:"unit"`
	IsActive      bool      `gorm:"default:true" json:"is_active"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// BeforeCreate generates a UUID before creating a new product
func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Product model
func (Product) TableName() string {
	return "products"
}
