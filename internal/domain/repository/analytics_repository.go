package repository

import (
	"context"
	"time"
)

// AnalyticsRepository is the read-only aggregation surface behind dashboards,
// reports and insights. Every method takes its time window explicitly; the
// repository never reads ambient wall-clock time, which keeps the aggregation
// engine deterministic and testable. Reads are not point-in-time consistent
// with concurrent ledger writes, which is acceptable for dashboards.
type AnalyticsRepository interface {
	// RevenueBetween sums totalAmount and counts completed orders in [start, end)
	RevenueBetween(ctx context.Context, start, end time.Time) (revenue float64, orders int64, err error)

	// GSTCollectedBetween sums order totalGST over completed orders in [start, end)
	GSTCollectedBetween(ctx context.Context, start, end time.Time) (float64, error)

	// GSTPaidBetween sums stock receipt gstAmount in [start, end)
	GSTPaidBetween(ctx context.Context, start, end time.Time) (float64, error)

	// PurchaseTotalBetween sums stock receipt totalCost in [start, end)
	PurchaseTotalBetween(ctx context.Context, start, end time.Time) (float64, error)

	// ExpenseTotalBetween sums expense amounts in [start, end)
	ExpenseTotalBetween(ctx context.Context, start, end time.Time) (float64, error)

	// DailySeries returns one point per calendar day for the `days` days
	// ending on the day containing `now`, oldest first, including empty days
	DailySeries(ctx context.Context, now time.Time, days int) ([]DailyPoint, error)

	// SalesByDay groups completed-order revenue and counts by calendar day
	// within [start, end); days without sales are omitted
	SalesByDay(ctx context.Context, start, end time.Time) ([]DaySales, error)

	// SalesByCategory sums line price*quantity per product category over
	// completed orders in [start, end)
	SalesByCategory(ctx context.Context, start, end time.Time) ([]NameValue, error)

	// TopProductsByRevenue ranks products by line revenue in [start, end)
	TopProductsByRevenue(ctx context.Context, start, end time.Time, limit int) ([]ProductSales, error)

	// TopProductsByUnits ranks products by units sold in [start, end);
	// ties break on product name so the ranking is deterministic
	TopProductsByUnits(ctx context.Context, start, end time.Time, limit int) ([]ProductSales, error)

	// ExpensesByCategory sums expenses per category in [start, end)
	ExpensesByCategory(ctx context.Context, start, end time.Time) ([]NameValue, error)

	// RevenueByPaymentMethod sums completed-order revenue per payment method
	// in [start, end)
	RevenueByPaymentMethod(ctx context.Context, start, end time.Time) ([]NameValue, error)
}

// DailyPoint is one day of the dashboard time series
type DailyPoint struct {
	Date     time.Time `json:"date"`
	Revenue  float64   `json:"revenue"`
	Expenses float64   `json:"expenses"`
	Orders   int64     `json:"orders"`
}

// DaySales is one day of a report's sales series
type DaySales struct {
	Date    string  `json:"date"`
	Revenue float64 `json:"revenue"`
	Orders  int64   `json:"orders"`
}

// NameValue is a generic grouped aggregate row
type NameValue struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// ProductSales is a per-product sales aggregate row
type ProductSales struct {
	ProductID string  `json:"product_id"`
	Name      string  `json:"name"`
	Quantity  int64   `json:"quantity"`
	Revenue   float64 `json:"revenue"`
}
