package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/kiranapos/kirana-api/internal/domain/entity"
	"github.com/kiranapos/kirana-api/pkg/pagination"
)

// StockReceiptRepository defines the interface for stock receipt data
// operations. Receipts are immutable; there is no update or delete.
type StockReceiptRepository interface {
	// CreateAndApply persists the receipt and, in the same transaction,
	// increments the product's stock by the received quantity and overwrites
	// its cost price with perUnitBaseCost (last-purchase costing)
	CreateAndApply(ctx context.Context, receipt *entity.StockReceipt, perUnitBaseCost float64) error

	GetByID(ctx context.Context, id uuid.UUID) (*entity.StockReceipt, error)
	List(ctx context.Context, params *StockReceiptFilterParams) ([]entity.StockReceipt, int64, error)
	ListBetween(ctx context.Context, start, end time.Time) ([]entity.StockReceipt, error)
}

// StockReceiptFilterParams contains filtering parameters for receipt queries
type StockReceiptFilterParams struct {
	Pagination *pagination.PaginationParams
	ProductID  *uuid.UUID
	StartDate  *time.Time
	EndDate    *time.Time
}
