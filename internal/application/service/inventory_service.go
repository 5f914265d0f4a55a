package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/kiranapos/kirana-api/internal/domain/entity"
	"github.com/kiranapos/kirana-api/internal/domain/enum"
	"github.com/kiranapos/kirana-api/internal/domain/repository"
	"github.com/kiranapos/kirana-api/pkg/apperror"
	"github.com/kiranapos/kirana-api/pkg/gst"
	"github.com/kiranapos/kirana-api/pkg/pagination"
)

// InventoryService handles the purchase side of the ledger: receiving stock,
// deriving the tax breakdown of each receipt and maintaining product cost.
type InventoryService struct {
	stockRepo   repository.StockReceiptRepository
	productRepo repository.ProductRepository
}

// NewInventoryService creates a new inventory service
func NewInventoryService(
	stockRepo repository.StockReceiptRepository,
	productRepo repository.ProductRepository,
) *InventoryService {
	return &InventoryService{
		stockRepo:   stockRepo,
		productRepo: productRepo,
	}
}

// ReceiveStockInput represents a stock receipt being recorded
type ReceiveStockInput struct {
	ProductID       uuid.UUID
	Quantity        int
	TotalCost       float64
	GSTPercentage   float64
	GSTType         enum.GSTType
	SellerName      string
	SellerGSTNumber string
	InvoiceNumber   string
	Notes           string
	AddedByID       uuid.UUID
}

// ReceiveStock records a purchase. The entered total is GST-inclusive; the
// base amount and tax components are backed out of it and stored unrounded
// alongside the receipt. In the same transaction the product's stock rises by
// the received quantity and its cost price becomes the per-unit base cost of
// this receipt (last purchase wins, no averaging).
func (s *InventoryService) ReceiveStock(ctx context.Context, input *ReceiveStockInput) (*entity.StockReceipt, error) {
	if input.Quantity <= 0 {
		return nil, apperror.NewBadRequestError("Quantity must be positive")
	}
	if input.TotalCost < 0 {
		return nil, apperror.NewBadRequestError("Total cost cannot be negative")
	}
	if input.GSTPercentage < 0 {
		return nil, apperror.NewBadRequestError("GST percentage cannot be negative")
	}
	if input.SellerName == "" {
		return nil, apperror.NewBadRequestError("Seller name is required")
	}

	gstType := input.GSTType
	if gstType == "" {
		gstType = enum.GSTTypeCGSTSGST
	}
	if !gstType.IsValid() {
		return nil, apperror.NewBadRequestError("Unknown GST type")
	}

	product, err := s.productRepo.GetByID(ctx, input.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Product")
	}

	split := gst.SplitCGSTSGST
	if gstType == enum.GSTTypeIGST {
		split = gst.SplitIGST
	}
	breakdown := gst.ConvertInclusiveTotal(input.TotalCost, input.GSTPercentage, split)

	receipt := &entity.StockReceipt{
		ProductID:       input.ProductID,
		Quantity:        input.Quantity,
		TotalCost:       input.TotalCost,
		PurchasePrice:   input.TotalCost / float64(input.Quantity),
		BaseAmount:      breakdown.Base,
		SellerName:      input.SellerName,
		SellerGSTNumber: input.SellerGSTNumber,
		GSTPercentage:   input.GSTPercentage,
		GSTType:         gstType,
		GSTAmount:       breakdown.TaxAmount,
		CGSTAmount:      breakdown.CGST,
		SGSTAmount:      breakdown.SGST,
		IGSTAmount:      breakdown.IGST,
		InvoiceNumber:   input.InvoiceNumber,
		Notes:           input.Notes,
		AddedByID:       input.AddedByID,
	}

	perUnitBaseCost := breakdown.Base / float64(input.Quantity)
	if err := s.stockRepo.CreateAndApply(ctx, receipt, perUnitBaseCost); err != nil {
		return nil, err
	}

	return s.stockRepo.GetByID(ctx, receipt.ID)
}

// GetReceipt retrieves a stock receipt by ID
func (s *InventoryService) GetReceipt(ctx context.Context, id uuid.UUID) (*entity.StockReceipt, error) {
	receipt, err := s.stockRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if receipt == nil {
		return nil, apperror.NewNotFoundError("Stock receipt")
	}
	return receipt, nil
}

// ListReceipts lists stock receipts with filtering
func (s *InventoryService) ListReceipts(ctx context.Context, params *repository.StockReceiptFilterParams) (*pagination.PaginatedResult[entity.StockReceipt], error) {
	receipts, total, err := s.stockRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(receipts, pag), nil
}

// StockSummary aggregates the receipts of a period for the purchase register
type StockSummary struct {
	TotalPurchases float64                  `json:"total_purchases"`
	TotalBase      float64                  `json:"total_base"`
	TotalGSTPaid   float64                  `json:"total_gst_paid"`
	ReceiptCount   int                      `json:"receipt_count"`
	UnitsReceived  int                      `json:"units_received"`
	BySeller       map[string]SellerSummary `json:"by_seller"`
}

// SellerSummary is the per-seller slice of the purchase register
type SellerSummary struct {
	Total   float64 `json:"total"`
	GST     float64 `json:"gst"`
	Entries int     `json:"entries"`
}

// Summarize totals the receipts in [start, end). Figures are rounded to whole
// currency units here, at the report boundary.
func (s *InventoryService) Summarize(ctx context.Context, start, end time.Time) (*StockSummary, error) {
	receipts, err := s.stockRepo.ListBetween(ctx, start, end)
	if err != nil {
		return nil, err
	}

	summary := &StockSummary{
		ReceiptCount: len(receipts),
		BySeller:     make(map[string]SellerSummary),
	}
	for _, r := range receipts {
		summary.TotalPurchases += r.TotalCost
		summary.TotalBase += r.BaseAmount
		summary.TotalGSTPaid += r.GSTAmount
		summary.UnitsReceived += r.Quantity

		seller := summary.BySeller[r.SellerName]
		seller.Total += r.TotalCost
		seller.GST += r.GSTAmount
		seller.Entries++
		summary.BySeller[r.SellerName] = seller
	}

	for name, seller := range summary.BySeller {
		seller.Total = gst.RoundWhole(seller.Total)
		seller.GST = gst.RoundWhole(seller.GST)
		summary.BySeller[name] = seller
	}

	summary.TotalPurchases = gst.RoundWhole(summary.TotalPurchases)
	summary.TotalBase = gst.RoundWhole(summary.TotalBase)
	summary.TotalGSTPaid = gst.RoundWhole(summary.TotalGSTPaid)
	return summary, nil
}

// DeriveField fills in the missing one of quantity, total price and price per
// unit during purchase entry. Pure arithmetic; nothing is persisted.
func (s *InventoryService) DeriveField(known gst.TwoOfThree) (gst.Field, float64, error) {
	field, value, err := gst.DeriveThirdField(known)
	if err != nil {
		if errors.Is(err, gst.ErrNeedExactlyTwo) || errors.Is(err, gst.ErrDivisionByZero) {
			return "", 0, apperror.NewBadRequestError(err.Error())
		}
		return "", 0, err
	}
	return field, value, nil
}

// LowStockProducts returns the active products running lowest, for reorder prompts
func (s *InventoryService) LowStockProducts(ctx context.Context, threshold, limit int) ([]entity.Product, error) {
	if threshold <= 0 {
		threshold = 10
	}
	if limit <= 0 {
		limit = 5
	}
	return s.productRepo.GetLowStock(ctx, threshold, limit)
}
