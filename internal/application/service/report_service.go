package service

import (
	"context"
	"time"

	"github.com/kiranapos/kirana-api/internal/domain/repository"
	"github.com/kiranapos/kirana-api/pkg/apperror"
	"github.com/kiranapos/kirana-api/pkg/gst"
)

// ReportService builds the financial report for an arbitrary period
type ReportService struct {
	analyticsRepo repository.AnalyticsRepository
}

// NewReportService creates a new report service
func NewReportService(analyticsRepo repository.AnalyticsRepository) *ReportService {
	return &ReportService{analyticsRepo: analyticsRepo}
}

// Report is the financial report payload for one period
type Report struct {
	StartDate        string                 `json:"start_date"`
	EndDate          string                 `json:"end_date"`
	Revenue          float64                `json:"revenue"`
	Orders           int64                  `json:"orders"`
	Expenses         float64                `json:"expenses"`
	Purchases        float64                `json:"purchases"`
	NetProfit        float64                `json:"net_profit"`
	AvgOrderValue    float64                `json:"avg_order_value"`
	GSTCollected     float64                `json:"gst_collected"`
	GSTPaid          float64                `json:"gst_paid"`
	GSTLiability     float64                `json:"gst_liability"`
	SalesByDay       []repository.DaySales  `json:"sales_by_day"`
	ExpenseBreakdown []repository.NameValue `json:"expense_breakdown"`
	PaymentMethods   []repository.NameValue `json:"payment_methods"`
}

// GetReport aggregates the period [start, end). Figures are stored unrounded
// and rounded to whole currency units only here, so a report over two halves
// of a month totals the same as one over the whole month. Net profit is
// revenue minus operating expenses; stock purchases are reported separately
// and not subtracted, matching the dashboard figure.
func (s *ReportService) GetReport(ctx context.Context, start, end time.Time) (*Report, error) {
	if !end.After(start) {
		return nil, apperror.NewBadRequestError("End date must be after start date")
	}

	revenue, orders, err := s.analyticsRepo.RevenueBetween(ctx, start, end)
	if err != nil {
		return nil, err
	}

	expenses, err := s.analyticsRepo.ExpenseTotalBetween(ctx, start, end)
	if err != nil {
		return nil, err
	}

	purchases, err := s.analyticsRepo.PurchaseTotalBetween(ctx, start, end)
	if err != nil {
		return nil, err
	}

	gstCollected, err := s.analyticsRepo.GSTCollectedBetween(ctx, start, end)
	if err != nil {
		return nil, err
	}

	gstPaid, err := s.analyticsRepo.GSTPaidBetween(ctx, start, end)
	if err != nil {
		return nil, err
	}

	salesByDay, err := s.analyticsRepo.SalesByDay(ctx, start, end)
	if err != nil {
		return nil, err
	}
	for i := range salesByDay {
		salesByDay[i].Revenue = gst.RoundWhole(salesByDay[i].Revenue)
	}

	expenseBreakdown, err := s.analyticsRepo.ExpensesByCategory(ctx, start, end)
	if err != nil {
		return nil, err
	}
	for i := range expenseBreakdown {
		expenseBreakdown[i].Value = gst.RoundWhole(expenseBreakdown[i].Value)
	}

	paymentMethods, err := s.analyticsRepo.RevenueByPaymentMethod(ctx, start, end)
	if err != nil {
		return nil, err
	}
	for i := range paymentMethods {
		paymentMethods[i].Value = gst.RoundWhole(paymentMethods[i].Value)
	}

	var avgOrderValue float64
	if orders > 0 {
		avgOrderValue = revenue / float64(orders)
	}

	return &Report{
		StartDate:        start.Format("2006-01-02"),
		EndDate:          end.Format("2006-01-02"),
		Revenue:          gst.RoundWhole(revenue),
		Orders:           orders,
		Expenses:         gst.RoundWhole(expenses),
		Purchases:        gst.RoundWhole(purchases),
		NetProfit:        gst.RoundWhole(revenue - expenses),
		AvgOrderValue:    gst.RoundWhole(avgOrderValue),
		GSTCollected:     gst.RoundWhole(gstCollected),
		GSTPaid:          gst.RoundWhole(gstPaid),
		GSTLiability:     gst.RoundWhole(gstCollected - gstPaid),
		SalesByDay:       salesByDay,
		ExpenseBreakdown: expenseBreakdown,
		PaymentMethods:   paymentMethods,
	}, nil
}
