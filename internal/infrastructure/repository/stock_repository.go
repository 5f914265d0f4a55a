package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/kiranapos/kirana-api/internal/domain/entity"
	domainRepo "github.com/kiranapos/kirana-api/internal/domain/repository"
	"gorm.io/gorm"
)

type stockReceiptRepository struct {
	db *gorm.DB
}

// NewStockReceiptRepository creates a new stock receipt repository
func NewStockReceiptRepository(db *gorm.DB) domainRepo.StockReceiptRepository {
	return &stockReceiptRepository{db: db}
}

// CreateAndApply inserts the receipt, increments the product's stock and
// overwrites its cost price in a single transaction. Either all three land
// or none do, so the ledger and the snapshot never drift apart.
func (r *stockReceiptRepository) CreateAndApply(ctx context.Context, receipt *entity.StockReceipt, perUnitBaseCost float64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(receipt).Error; err != nil {
			return err
		}

		return tx.Model(&entity.Product{}).
			Where("id = ?", receipt.ProductID).
			Updates(map[string]interface{}{
				"stock":      gorm.Expr("stock + ?", receipt.Quantity),
				"cost_price": perUnitBaseCost,
			}).Error
	})
}

func (r *stockReceiptRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.StockReceipt, error) {
	var receipt entity.StockReceipt
	err := r.db.WithContext(ctx).
		Preload("Product").
		Preload("AddedBy").
		First(&receipt, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &receipt, err
}

func (r *stockReceiptRepository) List(ctx context.Context, params *domainRepo.StockReceiptFilterParams) ([]entity.StockReceipt, int64, error) {
	var receipts []entity.StockReceipt
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.StockReceipt{})

	if params.ProductID != nil {
		query = query.Where("product_id = ?", *params.ProductID)
	}

	if params.StartDate != nil {
		query = query.Where("created_at >= ?", *params.StartDate)
	}

	if params.EndDate != nil {
		query = query.Where("created_at < ?", *params.EndDate)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Preload("Product").
		Order("created_at DESC").
		Find(&receipts).Error

	return receipts, total, err
}

func (r *stockReceiptRepository) ListBetween(ctx context.Context, start, end time.Time) ([]entity.StockReceipt, error) {
	var receipts []entity.StockReceipt
	err := r.db.WithContext(ctx).
		Where("created_at >= ? AND created_at < ?", start, end).
		Preload("Product").
		Order("created_at DESC").
		Find(&receipts).Error
	return receipts, err
}
