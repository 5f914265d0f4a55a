package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/kiranapos/kirana-api/internal/domain/entity"
	"github.com/kiranapos/kirana-api/internal/domain/enum"
	"github.com/kiranapos/kirana-api/internal/domain/repository"
	"github.com/kiranapos/kirana-api/pkg/apperror"
	"github.com/kiranapos/kirana-api/pkg/gst"
	"github.com/kiranapos/kirana-api/pkg/pagination"
	"gorm.io/gorm"
)

// orderNumberAttempts bounds the retry loop on order number collisions
const orderNumberAttempts = 3

// OrderService handles the sales ledger: placing orders, reversing them and
// keeping stock consistent with both.
type OrderService struct {
	orderRepo   repository.OrderRepository
	productRepo repository.ProductRepository
}

// NewOrderService creates a new order service
func NewOrderService(
	orderRepo repository.OrderRepository,
	productRepo repository.ProductRepository,
) *OrderService {
	return &OrderService{
		orderRepo:   orderRepo,
		productRepo: productRepo,
	}
}

// OrderItemInput represents one line of an order being placed
type OrderItemInput struct {
	ProductID uuid.UUID
	Quantity  int
}

// PlaceOrderInput represents the place order input
type PlaceOrderInput struct {
	CashierID     uuid.UUID
	PaymentMethod enum.PaymentMethod
	CustomerName  string
	CustomerPhone string
	Items         []OrderItemInput
}

// PlaceOrder creates a completed sale. Prices, names, categories and GST rates
// are snapshotted from the products at this moment; stock is decremented
// atomically across all lines, so a sale either fully lands or leaves every
// quantity untouched.
func (s *OrderService) PlaceOrder(ctx context.Context, now time.Time, input *PlaceOrderInput) (*entity.Order, error) {
	if len(input.Items) == 0 {
		return nil, apperror.NewBadRequestError("Order must contain at least one item")
	}

	for _, item := range input.Items {
		if item.Quantity <= 0 {
			return nil, apperror.NewBadRequestError("Item quantity must be positive")
		}
	}

	paymentMethod := input.PaymentMethod
	if paymentMethod == "" {
		paymentMethod = enum.PaymentMethodCash
	}
	if !paymentMethod.IsValid() {
		return nil, apperror.NewBadRequestError("Unknown payment method")
	}

	// Batch fetch all products in one query (prevents N+1)
	productIDs := make([]uuid.UUID, len(input.Items))
	for i, item := range input.Items {
		productIDs[i] = item.ProductID
	}

	products, err := s.productRepo.GetByIDs(ctx, productIDs)
	if err != nil {
		return nil, err
	}

	productMap := make(map[uuid.UUID]*entity.Product, len(products))
	for i := range products {
		productMap[products[i].ID] = &products[i]
	}

	var subtotal, totalGST float64
	items := make([]entity.OrderItem, 0, len(input.Items))
	stockDecrements := make(map[uuid.UUID]int)

	for _, item := range input.Items {
		product, exists := productMap[item.ProductID]
		if !exists {
			return nil, apperror.NewNotFoundError(fmt.Sprintf("Product %s", item.ProductID))
		}
		if !product.IsActive {
			return nil, apperror.NewBadRequestError(fmt.Sprintf("Product %s is not active", product.Name))
		}

		// Selling prices exclude GST; tax is added on top per line
		lineTotal, taxAmount := gst.ExclusiveLineTax(product.Price, item.Quantity, product.GSTPercentage)
		subtotal += lineTotal
		totalGST += taxAmount

		items = append(items, entity.OrderItem{
			ProductID:     product.ID,
			Name:          product.Name,
			Category:      product.Category,
			Price:         product.Price,
			Quantity:      item.Quantity,
			GSTPercentage: product.GSTPercentage,
			GSTAmount:     taxAmount,
		})

		// The same product may appear on several lines
		stockDecrements[product.ID] += item.Quantity
	}

	// Atomically decrement stock - this is race-condition safe.
	// If any product has insufficient stock, nothing is decremented.
	failedIDs, err := s.productRepo.AtomicDecrementBatch(ctx, stockDecrements)
	if err != nil {
		return nil, err
	}

	if len(failedIDs) > 0 {
		var failedNames []string
		for _, id := range failedIDs {
			if product, exists := productMap[id]; exists {
				failedNames = append(failedNames, product.Name)
			}
		}
		return nil, apperror.NewInsufficientStockError(fmt.Sprintf("Insufficient stock for: %v", failedNames))
	}

	order := &entity.Order{
		Subtotal:      subtotal,
		TotalGST:      totalGST,
		TotalAmount:   subtotal + totalGST,
		PaymentMethod: paymentMethod,
		CustomerName:  input.CustomerName,
		CustomerPhone: input.CustomerPhone,
		CashierID:     input.CashierID,
		Status:        enum.OrderStatusCompleted,
		Items:         items,
	}

	// The random suffix makes same-day collisions possible; the unique index
	// catches them and we regenerate instead of checking ahead of time
	var createErr error
	for attempt := 0; attempt < orderNumberAttempts; attempt++ {
		order.OrderNumber = GenerateOrderNumber(now)
		createErr = s.orderRepo.Create(ctx, order)
		if createErr == nil {
			break
		}
		if !errors.Is(createErr, gorm.ErrDuplicatedKey) {
			break
		}
	}
	if createErr != nil {
		// Stock was already decremented - restore it
		_ = s.productRepo.AtomicIncrementBatch(ctx, stockDecrements)
		if errors.Is(createErr, gorm.ErrDuplicatedKey) {
			return nil, apperror.NewConflictError("Could not allocate a unique order number")
		}
		return nil, createErr
	}

	return s.orderRepo.GetByID(ctx, order.ID)
}

// GenerateOrderNumber builds an order number from the date and a random
// four-digit suffix, e.g. KP2608314217
func GenerateOrderNumber(now time.Time) string {
	return fmt.Sprintf("KP%s%d", now.Format("060102"), 1000+rand.Intn(9000))
}

// GetOrder retrieves an order by ID
func (s *OrderService) GetOrder(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	order, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, apperror.NewNotFoundError("Order")
	}
	return order, nil
}

// GetOrderByNumber retrieves an order by its order number
func (s *OrderService) GetOrderByNumber(ctx context.Context, orderNumber string) (*entity.Order, error) {
	order, err := s.orderRepo.GetByOrderNumber(ctx, orderNumber)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, apperror.NewNotFoundError("Order")
	}
	return order, nil
}

// ListOrders lists orders with filtering
func (s *OrderService) ListOrders(ctx context.Context, params *repository.OrderFilterParams) (*pagination.PaginatedResult[entity.Order], error) {
	orders, total, err := s.orderRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(orders, pag), nil
}

// CancelOrder cancels a completed order and restores its stock
func (s *OrderService) CancelOrder(ctx context.Context, orderID uuid.UUID) error {
	return s.reverseOrder(ctx, orderID, enum.OrderStatusCancelled)
}

// RefundOrder refunds a completed order and restores its stock
func (s *OrderService) RefundOrder(ctx context.Context, orderID uuid.UUID) error {
	return s.reverseOrder(ctx, orderID, enum.OrderStatusRefunded)
}

func (s *OrderService) reverseOrder(ctx context.Context, orderID uuid.UUID, to enum.OrderStatus) error {
	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return err
	}
	if order == nil {
		return apperror.NewNotFoundError("Order")
	}

	// Reversal is only valid once; a cancelled or refunded order has
	// already had its stock restored
	if order.Status.IsTerminal() {
		return apperror.NewBadRequestError(fmt.Sprintf("Order is already %s", order.Status))
	}

	stockIncrements := make(map[uuid.UUID]int)
	for _, item := range order.Items {
		stockIncrements[item.ProductID] += item.Quantity
	}

	if err := s.productRepo.AtomicIncrementBatch(ctx, stockIncrements); err != nil {
		return err
	}

	return s.orderRepo.UpdateStatus(ctx, orderID, to)
}
