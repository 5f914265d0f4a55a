package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/kiranapos/kirana-api/internal/domain/repository"
	"github.com/kiranapos/kirana-api/pkg/ai"
	"github.com/kiranapos/kirana-api/pkg/gst"
)

// expenseSpikeFactor flags months spending more than 20% over the previous one
const expenseSpikeFactor = 1.2

// Insight is one advisory line for the shop owner. Items carries supporting
// detail for rules that name specific products, such as the low-stock list.
type Insight struct {
	Type    string   `json:"type"`
	Title   string   `json:"title"`
	Message string   `json:"message"`
	Items   []string `json:"items,omitempty"`
}

// Insight types
const (
	InsightTypeGrowth  = "growth"
	InsightTypeDecline = "decline"
	InsightTypeWarning = "warning"
	InsightTypeInfo    = "info"
	InsightTypeProfit  = "profit"
	InsightTypeLoss    = "loss"
)

// InsightService turns the month's aggregates into a fixed, ordered set of
// rule-based advisories, optionally followed by one generated free-text tip.
// The generated tip is best-effort; rule output never depends on it.
type InsightService struct {
	analyticsRepo repository.AnalyticsRepository
	productRepo   repository.ProductRepository
	generator     ai.Generator
}

// NewInsightService creates a new insight service. generator may be nil.
func NewInsightService(
	analyticsRepo repository.AnalyticsRepository,
	productRepo repository.ProductRepository,
	generator ai.Generator,
) *InsightService {
	return &InsightService{
		analyticsRepo: analyticsRepo,
		productRepo:   productRepo,
		generator:     generator,
	}
}

// GetInsights evaluates the rules for the month containing now, comparing
// against the previous month where a rule needs a baseline. Rules always run
// in the same order so the list is stable between refreshes.
func (s *InsightService) GetInsights(ctx context.Context, now time.Time) ([]Insight, error) {
	startOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	endOfMonth := startOfMonth.AddDate(0, 1, 0)
	startOfLastMonth := startOfMonth.AddDate(0, -1, 0)

	revenue, orders, err := s.analyticsRepo.RevenueBetween(ctx, startOfMonth, endOfMonth)
	if err != nil {
		return nil, err
	}
	lastRevenue, _, err := s.analyticsRepo.RevenueBetween(ctx, startOfLastMonth, startOfMonth)
	if err != nil {
		return nil, err
	}

	expenses, err := s.analyticsRepo.ExpenseTotalBetween(ctx, startOfMonth, endOfMonth)
	if err != nil {
		return nil, err
	}
	lastExpenses, err := s.analyticsRepo.ExpenseTotalBetween(ctx, startOfLastMonth, startOfMonth)
	if err != nil {
		return nil, err
	}

	purchases, err := s.analyticsRepo.PurchaseTotalBetween(ctx, startOfMonth, endOfMonth)
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

	insights := make([]Insight, 0, 8)

	// Revenue trend against last month
	if lastRevenue > 0 {
		change := (revenue - lastRevenue) / lastRevenue * 100
		if change > 0 {
			insights = append(insights, Insight{
				Type:    InsightTypeGrowth,
				Title:   "Sales are growing",
				Message: fmt.Sprintf("Revenue is up %.1f%% compared to last month.", change),
			})
		} else if change < 0 {
			insights = append(insights, Insight{
				Type:    InsightTypeDecline,
				Title:   "Sales are down",
				Message: fmt.Sprintf("Revenue is down %.1f%% compared to last month.", -change),
			})
		}
	}

	// Low stock, unbounded so the count and list cover every affected product
	lowStock, err := s.productRepo.GetLowStock(ctx, lowStockThreshold, 0)
	if err != nil {
		return nil, err
	}
	if len(lowStock) > 0 {
		items := make([]string, 0, len(lowStock))
		for _, p := range lowStock {
			items = append(items, fmt.Sprintf("%s (%d left)", p.Name, p.Stock))
		}
		insights = append(insights, Insight{
			Type:    InsightTypeWarning,
			Title:   "Low stock",
			Message: fmt.Sprintf("%d products are running low; reorder soon.", len(lowStock)),
			Items:   items,
		})
	}

	// Best seller
	top, err := s.analyticsRepo.TopProductsByUnits(ctx, startOfMonth, endOfMonth, 1)
	if err != nil {
		return nil, err
	}
	if len(top) > 0 {
		insights = append(insights, Insight{
			Type:    InsightTypeInfo,
			Title:   "Best seller",
			Message: fmt.Sprintf("%s leads this month with %d units sold.", top[0].Name, top[0].Quantity),
		})
	}

	// Expense spike
	if lastExpenses > 0 && expenses > lastExpenses*expenseSpikeFactor {
		increase := (expenses - lastExpenses) / lastExpenses * 100
		insights = append(insights, Insight{
			Type:    InsightTypeWarning,
			Title:   "Expenses are spiking",
			Message: fmt.Sprintf("Spending is up %.1f%% over last month.", increase),
		})
	}

	// Profitability, always reported; margin only makes sense with revenue
	profit := revenue - expenses
	var margin float64
	if revenue > 0 {
		margin = profit / revenue * 100
	}
	if profit >= 0 {
		insights = append(insights, Insight{
			Type:    InsightTypeProfit,
			Title:   "Running at a profit",
			Message: fmt.Sprintf("Net profit this month is %.0f (%.1f%% margin).", gst.RoundWhole(profit), margin),
		})
	} else {
		insights = append(insights, Insight{
			Type:    InsightTypeLoss,
			Title:   "Running at a loss",
			Message: fmt.Sprintf("Net loss this month is %.0f (%.1f%% margin).", gst.RoundWhole(-profit), margin),
		})
	}

	// GST position
	insights = append(insights, Insight{
		Type:    InsightTypeInfo,
		Title:   "GST position",
		Message: fmt.Sprintf("Collected %.0f, paid %.0f; net liability %.0f this month.", gst.RoundWhole(gstCollected), gst.RoundWhole(gstPaid), gst.RoundWhole(gstCollected-gstPaid)),
	})

	// Optional generated tip
	if s.generator != nil && s.generator.Available() {
		prompt := fmt.Sprintf(
			"You advise a small Indian grocery store. This month: revenue %.0f, %d orders, expenses %.0f, stock purchases %.0f. Give one short, practical tip.",
			revenue, orders, expenses, purchases,
		)
		tip, err := s.generator.Generate(ctx, prompt)
		if err != nil {
			log.Printf("Warning: insight generation failed: %v", err)
		} else if tip != "" {
			insights = append(insights, Insight{
				Type:    InsightTypeInfo,
				Title:   "Tip",
				Message: tip,
			})
		}
	}

	return insights, nil
}
