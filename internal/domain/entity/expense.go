package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/kiranapos/kirana-api/internal/domain/enum"
	"gorm.io/gorm"
)

// Expense is one recorded business outflow
type Expense struct {
	ID            uuid.UUID            `gorm:"type:uuid;primary_key" json:"id"`
	Title         string               `gorm:"size:255;not null" json:"title"`
	Amount        float64              `gorm:"type:numeric;not null" json:"amount"`
	Category      enum.ExpenseCategory `gorm:"size:50;default:other;index" json:"category"`
	Date          time.Time            `gorm:"not null;index" json:"date"`
	Description   string               `gorm:"type:text" json:"description"`
	PaymentMethod enum.PaymentMethod   `gorm:"size:20;default:cash" json:"payment_method"`
	AddedByID     uuid.UUID            `gorm:"type:uuid;index" json:"added_by_id"`
	CreatedAt     time.Time            `json:"created_at"`
	UpdatedAt     time.Time            `json:"updated_at"`

	// Relationships
	AddedBy *User `gorm:"foreignKey:AddedByID" json:"added_by,omitempty"`
}

// BeforeCreate generates a UUID before creating a new expense
func (e *Expense) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Expense model
func (Expense) TableName() string {
	return "expenses"
}
