package repository

import (
	"context"
	"time"

	domainRepo "github.com/kiranapos/kirana-api/internal/domain/repository"
	"gorm.io/gorm"
)

type analyticsRepository struct {
	db *gorm.DB
}

// NewAnalyticsRepository creates a new analytics repository
func NewAnalyticsRepository(db *gorm.DB) domainRepo.AnalyticsRepository {
	return &analyticsRepository{db: db}
}

func (r *analyticsRepository) RevenueBetween(ctx context.Context, start, end time.Time) (float64, int64, error) {
	var row struct {
		Revenue float64
		Orders  int64
	}
	err := r.db.WithContext(ctx).Raw(`
		SELECT
			COALESCE(SUM(total_amount), 0) as revenue,
			COUNT(id) as orders
		FROM orders
		WHERE status = 'completed'
		AND created_at >= ? AND created_at < ?
	`, start, end).Scan(&row).Error

	return row.Revenue, row.Orders, err
}

func (r *analyticsRepository) GSTCollectedBetween(ctx context.Context, start, end time.Time) (float64, error) {
	var total float64
	err := r.db.WithContext(ctx).Raw(`
		SELECT COALESCE(SUM(total_gst), 0)
		FROM orders
		WHERE status = 'completed'
		AND created_at >= ? AND created_at < ?
	`, start, end).Scan(&total).Error

	return total, err
}

func (r *analyticsRepository) GSTPaidBetween(ctx context.Context, start, end time.Time) (float64, error) {
	var total float64
	err := r.db.WithContext(ctx).Raw(`
		SELECT COALESCE(SUM(gst_amount), 0)
		FROM stock_receipts
		WHERE created_at >= ? AND created_at < ?
	`, start, end).Scan(&total).Error

	return total, err
}

func (r *analyticsRepository) PurchaseTotalBetween(ctx context.Context, start, end time.Time) (float64, error) {
	var total float64
	err := r.db.WithContext(ctx).Raw(`
		SELECT COALESCE(SUM(total_cost), 0)
		FROM stock_receipts
		WHERE created_at >= ? AND created_at < ?
	`, start, end).Scan(&total).Error

	return total, err
}

func (r *analyticsRepository) ExpenseTotalBetween(ctx context.Context, start, end time.Time) (float64, error) {
	var total float64
	err := r.db.WithContext(ctx).Raw(`
		SELECT COALESCE(SUM(amount), 0)
		FROM expenses
		WHERE date >= ? AND date < ?
	`, start, end).Scan(&total).Error

	return total, err
}

// DailySeries walks day by day so the series always has exactly `days` points,
// empty days included. One query pair per day is fine at dashboard scale.
func (r *analyticsRepository) DailySeries(ctx context.Context, now time.Time, days int) ([]domainRepo.DailyPoint, error) {
	results := make([]domainRepo.DailyPoint, 0, days)

	for i := days - 1; i >= 0; i-- {
		date := now.AddDate(0, 0, -i)
		startOfDay := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
		endOfDay := startOfDay.Add(24 * time.Hour)

		revenue, orders, err := r.RevenueBetween(ctx, startOfDay, endOfDay)
		if err != nil {
			return nil, err
		}

		expenses, err := r.ExpenseTotalBetween(ctx, startOfDay, endOfDay)
		if err != nil {
			return nil, err
		}

		results = append(results, domainRepo.DailyPoint{
			Date:     startOfDay,
			Revenue:  revenue,
			Expenses: expenses,
			Orders:   orders,
		})
	}

	return results, nil
}

func (r *analyticsRepository) SalesByDay(ctx context.Context, start, end time.Time) ([]domainRepo.DaySales, error) {
	var results []domainRepo.DaySales

	err := r.db.WithContext(ctx).Raw(`
		SELECT
			to_char(created_at, 'YYYY-MM-DD') as date,
			COALESCE(SUM(total_amount), 0) as revenue,
			COUNT(id) as orders
		FROM orders
		WHERE status = 'completed'
		AND created_at >= ? AND created_at < ?
		GROUP BY to_char(created_at, 'YYYY-MM-DD')
		ORDER BY date ASC
	`, start, end).Scan(&results).Error

	return results, err
}

func (r *analyticsRepository) SalesByCategory(ctx context.Context, start, end time.Time) ([]domainRepo.NameValue, error) {
	var results []domainRepo.NameValue

	err := r.db.WithContext(ctx).Raw(`
		SELECT
			COALESCE(NULLIF(oi.category, ''), 'Uncategorized') as name,
			COALESCE(SUM(oi.price * oi.quantity), 0) as value
		FROM order_items oi
		JOIN orders o ON o.id = oi.order_id
		WHERE o.status = 'completed'
		AND o.created_at >= ? AND o.created_at < ?
		GROUP BY COALESCE(NULLIF(oi.category, ''), 'Uncategorized')
		ORDER BY value DESC
	`, start, end).Scan(&results).Error

	return results, err
}

func (r *analyticsRepository) TopProductsByRevenue(ctx context.Context, start, end time.Time, limit int) ([]domainRepo.ProductSales, error) {
	var results []domainRepo.ProductSales

	err := r.db.WithContext(ctx).Raw(`
		SELECT
			oi.product_id as product_id,
			oi.name as name,
			COALESCE(SUM(oi.quantity), 0) as quantity,
			COALESCE(SUM(oi.price * oi.quantity), 0) as revenue
		FROM order_items oi
		JOIN orders o ON o.id = oi.order_id
		WHERE o.status = 'completed'
		AND o.created_at >= ? AND o.created_at < ?
		GROUP BY oi.product_id, oi.name
		ORDER BY revenue DESC, name ASC
		LIMIT ?
	`, start, end, limit).Scan(&results).Error

	return results, err
}

func (r *analyticsRepository) TopProductsByUnits(ctx context.Context, start, end time.Time, limit int) ([]domainRepo.ProductSales, error) {
	var results []domainRepo.ProductSales

	err := r.db.WithContext(ctx).Raw(`
		SELECT
			oi.product_id as product_id,
			oi.name as name,
			COALESCE(SUM(oi.quantity), 0) as quantity,
			COALESCE(SUM(oi.price * oi.quantity), 0) as revenue
		FROM order_items oi
		JOIN orders o ON o.id = oi.order_id
		WHERE o.status = 'completed'
		AND o.created_at >= ? AND o.created_at < ?
		GROUP BY oi.product_id, oi.name
		ORDER BY quantity DESC, name ASC
		LIMIT ?
	`, start, end, limit).Scan(&results).Error

	return results, err
}

func (r *analyticsRepository) ExpensesByCategory(ctx context.Context, start, end time.Time) ([]domainRepo.NameValue, error) {
	var results []domainRepo.NameValue

	err := r.db.WithContext(ctx).Raw(`
		SELECT
			category as name,
			COALESCE(SUM(amount), 0) as value
		FROM expenses
		WHERE date >= ? AND date < ?
		GROUP BY category
		ORDER BY value DESC
	`, start, end).Scan(&results).Error

	return results, err
}

func (r *analyticsRepository) RevenueByPaymentMethod(ctx context.Context, start, end time.Time) ([]domainRepo.NameValue, error) {
	var results []domainRepo.NameValue

	err := r.db.WithContext(ctx).Raw(`
		SELECT
			payment_method as name,
			COALESCE(SUM(total_amount), 0) as value
		FROM orders
		WHERE status = 'completed'
		AND created_at >= ? AND created_at < ?
		GROUP BY payment_method
		ORDER BY value DESC
	`, start, end).Scan(&results).Error

	return results, err
}
