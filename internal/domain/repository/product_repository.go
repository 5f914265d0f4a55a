package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/kiranapos/kirana-api/internal/domain/entity"
	"github.com/kiranapos/kirana-api/pkg/pagination"
)

// ProductRepository defines the interface for product data operations.
// Stock arithmetic goes through the atomic batch operations so concurrent
// sales can never drive a quantity below zero.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Product, error)
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params *ProductFilterParams) ([]entity.Product, int64, error)
	ListCategories(ctx context.Context) ([]string, error)

	// Count returns the size of the whole catalog, inactive products included
	Count(ctx context.Context) (int64, error)

	// GetLowStock returns active products at or below the threshold,
	// lowest stock first, at most limit entries; limit <= 0 returns all
	GetLowStock(ctx context.Context, threshold, limit int) ([]entity.Product, error)

	// AtomicDecrementBatch conditionally decrements stock for each product;
	// products whose stock would go negative are returned and the whole
	// batch is rolled back
	AtomicDecrementBatch(ctx context.Context, decrements map[uuid.UUID]int) ([]uuid.UUID, error)

	// AtomicIncrementBatch adds stock back, used by receipts and by
	// cancellations/refunds
	AtomicIncrementBatch(ctx context.Context, increments map[uuid.UUID]int) error
}

// ProductFilterParams contains filtering parameters for product queries
type ProductFilterParams struct {
	Pagination *pagination.PaginationParams
	Search     string
	Category   string
	Active     *bool
	SortBy     string
	SortOrder  string
}
