package service

import (
	"context"
	"time"

	"github.com/kiranapos/kirana-api/internal/domain/entity"
	"github.com/kiranapos/kirana-api/internal/domain/repository"
	"github.com/kiranapos/kirana-api/pkg/gst"
)

const (
	dashboardSeriesDays   = 7
	dashboardTopProducts  = 5
	dashboardRecentOrders = 8
	lowStockThreshold     = 10
	lowStockLimit         = 5
)

// DashboardService assembles the storefront overview. It only reads; all
// figures come from the analytics repository and are rounded to whole currency
// units here, at the display boundary.
type DashboardService struct {
	analyticsRepo repository.AnalyticsRepository
	orderRepo     repository.OrderRepository
	productRepo   repository.ProductRepository
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(
	analyticsRepo repository.AnalyticsRepository,
	orderRepo repository.OrderRepository,
	productRepo repository.ProductRepository,
) *DashboardService {
	return &DashboardService{
		analyticsRepo: analyticsRepo,
		orderRepo:     orderRepo,
		productRepo:   productRepo,
	}
}

// Dashboard is the full overview payload
type Dashboard struct {
	TodayRevenue     float64                   `json:"today_revenue"`
	TodayOrders      int64                     `json:"today_orders"`
	MonthRevenue     float64                   `json:"month_revenue"`
	MonthOrders      int64                     `json:"month_orders"`
	MonthExpenses    float64                   `json:"month_expenses"`
	NetProfit        float64                   `json:"net_profit"`
	ProductCount     int64                     `json:"product_count"`
	GSTCollected     float64                   `json:"gst_collected"`
	GSTPaid          float64                   `json:"gst_paid"`
	NetGSTLiability  float64                   `json:"net_gst_liability"`
	WeeklySeries     []repository.DailyPoint   `json:"weekly_series"`
	SalesByCategory  []repository.NameValue    `json:"sales_by_category"`
	TopProducts      []repository.ProductSales `json:"top_products"`
	ExpenseBreakdown []repository.NameValue    `json:"expense_breakdown"`
	RecentOrders     []entity.Order            `json:"recent_orders"`
	LowStockProducts []entity.Product          `json:"low_stock_products"`
}

// GetDashboard builds the overview for the day and month containing now.
// GST collected and paid cover the current month, matching the filing period.
func (s *DashboardService) GetDashboard(ctx context.Context, now time.Time) (*Dashboard, error) {
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	endOfDay := startOfDay.Add(24 * time.Hour)
	startOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	endOfMonth := startOfMonth.AddDate(0, 1, 0)

	todayRevenue, todayOrders, err := s.analyticsRepo.RevenueBetween(ctx, startOfDay, endOfDay)
	if err != nil {
		return nil, err
	}

	monthRevenue, monthOrders, err := s.analyticsRepo.RevenueBetween(ctx, startOfMonth, endOfMonth)
	if err != nil {
		return nil, err
	}

	monthExpenses, err := s.analyticsRepo.ExpenseTotalBetween(ctx, startOfMonth, endOfMonth)
	if err != nil {
		return nil, err
	}

	gstCollected, err := s.analyticsRepo.GSTCollectedBetween(ctx, startOfMonth, endOfMonth)
	if err != nil {
		return nil, err
	}

	gstPaid, err := s.analyticsRepo.GSTPaidBetween(ctx, startOfMonth, endOfMonth)
	if err != nil {
		return nil, err
	}

	series, err := s.analyticsRepo.DailySeries(ctx, now, dashboardSeriesDays)
	if err != nil {
		return nil, err
	}
	for i := range series {
		series[i].Revenue = gst.RoundWhole(series[i].Revenue)
		series[i].Expenses = gst.RoundWhole(series[i].Expenses)
	}

	salesByCategory, err := s.analyticsRepo.SalesByCategory(ctx, startOfMonth, endOfMonth)
	if err != nil {
		return nil, err
	}
	for i := range salesByCategory {
		salesByCategory[i].Value = gst.RoundWhole(salesByCategory[i].Value)
	}

	topProducts, err := s.analyticsRepo.TopProductsByRevenue(ctx, startOfMonth, endOfMonth, dashboardTopProducts)
	if err != nil {
		return nil, err
	}
	for i := range topProducts {
		topProducts[i].Revenue = gst.RoundWhole(topProducts[i].Revenue)
	}

	expenseBreakdown, err := s.analyticsRepo.ExpensesByCategory(ctx, startOfMonth, endOfMonth)
	if err != nil {
		return nil, err
	}
	for i := range expenseBreakdown {
		expenseBreakdown[i].Value = gst.RoundWhole(expenseBreakdown[i].Value)
	}

	recentOrders, err := s.orderRepo.ListRecent(ctx, dashboardRecentOrders)
	if err != nil {
		return nil, err
	}

	lowStock, err := s.productRepo.GetLowStock(ctx, lowStockThreshold, lowStockLimit)
	if err != nil {
		return nil, err
	}

	productCount, err := s.productRepo.Count(ctx)
	if err != nil {
		return nil, err
	}

	return &Dashboard{
		TodayRevenue:     gst.RoundWhole(todayRevenue),
		TodayOrders:      todayOrders,
		MonthRevenue:     gst.RoundWhole(monthRevenue),
		MonthOrders:      monthOrders,
		MonthExpenses:    gst.RoundWhole(monthExpenses),
		NetProfit:        gst.RoundWhole(monthRevenue - monthExpenses),
		ProductCount:     productCount,
		GSTCollected:     gst.RoundWhole(gstCollected),
		GSTPaid:          gst.RoundWhole(gstPaid),
		NetGSTLiability:  gst.RoundWhole(gstCollected - gstPaid),
		WeeklySeries:     series,
		SalesByCategory:  salesByCategory,
		TopProducts:      topProducts,
		ExpenseBreakdown: expenseBreakdown,
		RecentOrders:     recentOrders,
		LowStockProducts: lowStock,
	}, nil
}
