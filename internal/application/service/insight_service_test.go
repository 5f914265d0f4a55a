package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/kiranapos/kirana-api/internal/domain/entity"
	"github.com/kiranapos/kirana-api/internal/domain/repository"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type InsightServiceTestSuite struct {
	suite.Suite
	analyticsRepo *MockAnalyticsRepository
	productRepo   *MockProductRepository
	generator     *MockGenerator

	now        time.Time
	thisMonth  time.Time
	nextMonth  time.Time
	lastMonth  time.Time
}

func (s *InsightServiceTestSuite) SetupTest() {
	s.analyticsRepo = new(MockAnalyticsRepository)
	s.productRepo = new(MockProductRepository)
	s.generator = new(MockGenerator)

	s.now = time.Date(2026, 8, 31, 18, 0, 0, 0, time.UTC)
	s.thisMonth = time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	s.nextMonth = time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	s.lastMonth = time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)
}

// stubMonth wires the baseline aggregates every rule evaluation needs
func (s *InsightServiceTestSuite) stubMonth(revenue, lastRevenue, expenses, lastExpenses, purchases, gstCollected, gstPaid float64) {
	s.analyticsRepo.On("RevenueBetween", mock.Anything, s.thisMonth, s.nextMonth).Return(revenue, int64(30), nil)
	s.analyticsRepo.On("RevenueBetween", mock.Anything, s.lastMonth, s.thisMonth).Return(lastRevenue, int64(25), nil)
	s.analyticsRepo.On("ExpenseTotalBetween", mock.Anything, s.thisMonth, s.nextMonth).Return(expenses, nil)
	s.analyticsRepo.On("ExpenseTotalBetween", mock.Anything, s.lastMonth, s.thisMonth).Return(lastExpenses, nil)
	s.analyticsRepo.On("PurchaseTotalBetween", mock.Anything, s.thisMonth, s.nextMonth).Return(purchases, nil)
	s.analyticsRepo.On("GSTCollectedBetween", mock.Anything, s.thisMonth, s.nextMonth).Return(gstCollected, nil)
	s.analyticsRepo.On("GSTPaidBetween", mock.Anything, s.thisMonth, s.nextMonth).Return(gstPaid, nil)
}

func insightsByType(insights []Insight, typ string) []Insight {
	var out []Insight
	for _, in := range insights {
		if in.Type == typ {
			out = append(out, in)
		}
	}
	return out
}

func (s *InsightServiceTestSuite) TestGrowthInsight() {
	s.stubMonth(1200, 1000, 400, 400, 100, 500, 300)
	s.productRepo.On("GetLowStock", mock.Anything, mock.Anything, mock.Anything).Return([]entity.Product{}, nil)
	s.analyticsRepo.On("TopProductsByUnits", mock.Anything, s.thisMonth, s.nextMonth, 1).Return([]repository.ProductSales{}, nil)

	service := NewInsightService(s.analyticsRepo, s.productRepo, nil)
	insights, err := service.GetInsights(context.Background(), s.now)

	s.Require().NoError(err)
	growth := insightsByType(insights, InsightTypeGrowth)
	s.Require().Len(growth, 1)
	s.Contains(growth[0].Message, "20.0%")
	s.Empty(insightsByType(insights, InsightTypeDecline))
}

func (s *InsightServiceTestSuite) TestDeclineAndExpenseSpike() {
	// Revenue down 25%, expenses up 50%
	s.stubMonth(750, 1000, 600, 400, 100, 100, 50)
	s.productRepo.On("GetLowStock", mock.Anything, mock.Anything, mock.Anything).Return([]entity.Product{}, nil)
	s.analyticsRepo.On("TopProductsByUnits", mock.Anything, s.thisMonth, s.nextMonth, 1).Return([]repository.ProductSales{}, nil)

	service := NewInsightService(s.analyticsRepo, s.productRepo, nil)
	insights, err := service.GetInsights(context.Background(), s.now)

	s.Require().NoError(err)
	decline := insightsByType(insights, InsightTypeDecline)
	s.Require().Len(decline, 1)
	s.Contains(decline[0].Message, "25.0%")

	warnings := insightsByType(insights, InsightTypeWarning)
	s.Require().Len(warnings, 1)
	s.Contains(warnings[0].Message, "50.0%")
}

func (s *InsightServiceTestSuite) TestNoBaselineMonthSkipsTrend() {
	s.stubMonth(1200, 0, 400, 0, 100, 500, 300)
	s.productRepo.On("GetLowStock", mock.Anything, mock.Anything, mock.Anything).Return([]entity.Product{}, nil)
	s.analyticsRepo.On("TopProductsByUnits", mock.Anything, s.thisMonth, s.nextMonth, 1).Return([]repository.ProductSales{}, nil)

	service := NewInsightService(s.analyticsRepo, s.productRepo, nil)
	insights, err := service.GetInsights(context.Background(), s.now)

	s.Require().NoError(err)
	s.Empty(insightsByType(insights, InsightTypeGrowth))
	s.Empty(insightsByType(insights, InsightTypeDecline))
}

func (s *InsightServiceTestSuite) TestLowStockAndBestSeller() {
	s.stubMonth(1000, 1000, 200, 200, 100, 100, 50)
	// Unbounded fetch: seven products low means all seven are counted and listed
	s.productRepo.On("GetLowStock", mock.Anything, 10, 0).Return([]entity.Product{
		{Name: "Jaggery", Stock: 2},
		{Name: "Ghee", Stock: 4},
		{Name: "Tea 250g", Stock: 5},
		{Name: "Sugar 1kg", Stock: 6},
		{Name: "Atta 5kg", Stock: 7},
		{Name: "Dal 1kg", Stock: 8},
		{Name: "Salt", Stock: 9},
	}, nil)
	s.analyticsRepo.On("TopProductsByUnits", mock.Anything, s.thisMonth, s.nextMonth, 1).Return([]repository.ProductSales{
		{Name: "Rice 1kg", Quantity: 84},
	}, nil)

	service := NewInsightService(s.analyticsRepo, s.productRepo, nil)
	insights, err := service.GetInsights(context.Background(), s.now)

	s.Require().NoError(err)
	warnings := insightsByType(insights, InsightTypeWarning)
	s.Require().Len(warnings, 1)
	s.Contains(warnings[0].Message, "7 products")
	s.Require().Len(warnings[0].Items, 7)
	s.Equal("Jaggery (2 left)", warnings[0].Items[0])
	s.Equal("Salt (9 left)", warnings[0].Items[6])

	infos := insightsByType(insights, InsightTypeInfo)
	var foundBestSeller bool
	for _, in := range infos {
		if in.Title == "Best seller" {
			foundBestSeller = true
			s.Contains(in.Message, "Rice 1kg")
			s.Contains(in.Message, "84")
		}
	}
	s.True(foundBestSeller)
}

func (s *InsightServiceTestSuite) TestProfitLossAndGSTPosition() {
	// revenue 1000, expenses 1100: a 100 loss regardless of stock purchases
	s.stubMonth(1000, 1000, 1100, 1000, 500, 500, 300)
	s.productRepo.On("GetLowStock", mock.Anything, mock.Anything, mock.Anything).Return([]entity.Product{}, nil)
	s.analyticsRepo.On("TopProductsByUnits", mock.Anything, s.thisMonth, s.nextMonth, 1).Return([]repository.ProductSales{}, nil)

	service := NewInsightService(s.analyticsRepo, s.productRepo, nil)
	insights, err := service.GetInsights(context.Background(), s.now)

	s.Require().NoError(err)
	losses := insightsByType(insights, InsightTypeLoss)
	s.Require().Len(losses, 1)
	s.Contains(losses[0].Message, "100")
	s.Empty(insightsByType(insights, InsightTypeProfit))

	// GST position is always the last rule insight: collected 500, paid 300
	last := insights[len(insights)-1]
	s.Equal("GST position", last.Title)
	s.Contains(last.Message, "200")
}

func (s *InsightServiceTestSuite) TestZeroRevenueMonthStillReportsLoss() {
	// No sales at all, 500 spent: the loss must still surface, margin pinned to 0
	s.stubMonth(0, 0, 500, 0, 0, 0, 0)
	s.productRepo.On("GetLowStock", mock.Anything, mock.Anything, mock.Anything).Return([]entity.Product{}, nil)
	s.analyticsRepo.On("TopProductsByUnits", mock.Anything, s.thisMonth, s.nextMonth, 1).Return([]repository.ProductSales{}, nil)

	service := NewInsightService(s.analyticsRepo, s.productRepo, nil)
	insights, err := service.GetInsights(context.Background(), s.now)

	s.Require().NoError(err)
	losses := insightsByType(insights, InsightTypeLoss)
	s.Require().Len(losses, 1)
	s.Contains(losses[0].Message, "500")
	s.Contains(losses[0].Message, "0.0% margin")
}

func (s *InsightServiceTestSuite) TestGeneratedTipAppended() {
	s.stubMonth(1000, 1000, 200, 200, 100, 100, 50)
	s.productRepo.On("GetLowStock", mock.Anything, mock.Anything, mock.Anything).Return([]entity.Product{}, nil)
	s.analyticsRepo.On("TopProductsByUnits", mock.Anything, s.thisMonth, s.nextMonth, 1).Return([]repository.ProductSales{}, nil)

	s.generator.On("Available").Return(true)
	s.generator.On("Generate", mock.Anything, mock.AnythingOfType("string")).Return("Stock up before the festival weekend.", nil)

	service := NewInsightService(s.analyticsRepo, s.productRepo, s.generator)
	insights, err := service.GetInsights(context.Background(), s.now)

	s.Require().NoError(err)
	last := insights[len(insights)-1]
	s.Equal("Tip", last.Title)
	s.Equal("Stock up before the festival weekend.", last.Message)
}

func (s *InsightServiceTestSuite) TestGeneratorFailureIsSwallowed() {
	s.stubMonth(1000, 1000, 200, 200, 100, 100, 50)
	s.productRepo.On("GetLowStock", mock.Anything, mock.Anything, mock.Anything).Return([]entity.Product{}, nil)
	s.analyticsRepo.On("TopProductsByUnits", mock.Anything, s.thisMonth, s.nextMonth, 1).Return([]repository.ProductSales{}, nil)

	s.generator.On("Available").Return(true)
	s.generator.On("Generate", mock.Anything, mock.Anything).Return("", errors.New("timeout"))

	service := NewInsightService(s.analyticsRepo, s.productRepo, s.generator)
	insights, err := service.GetInsights(context.Background(), s.now)

	s.Require().NoError(err)
	s.Equal("GST position", insights[len(insights)-1].Title)
}

func TestInsightServiceTestSuite(t *testing.T) {
	suite.Run(t, new(InsightServiceTestSuite))
}
