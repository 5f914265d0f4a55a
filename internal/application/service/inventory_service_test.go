package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/kiranapos/kirana-api/internal/domain/entity"
	"github.com/kiranapos/kirana-api/internal/domain/enum"
	"github.com/kiranapos/kirana-api/pkg/apperror"
	"github.com/kiranapos/kirana-api/pkg/gst"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type InventoryServiceTestSuite struct {
	suite.Suite
	stockRepo   *MockStockReceiptRepository
	productRepo *MockProductRepository
	service     *InventoryService
}

func (s *InventoryServiceTestSuite) SetupTest() {
	s.stockRepo = new(MockStockReceiptRepository)
	s.productRepo = new(MockProductRepository)
	s.service = NewInventoryService(s.stockRepo, s.productRepo)
}

func (s *InventoryServiceTestSuite) TestReceiveStockBacksOutInclusiveGST() {
	product := &entity.Product{ID: uuid.New(), Name: "Biscuits", Stock: 3}
	s.productRepo.On("GetByID", mock.Anything, product.ID).Return(product, nil)

	var created *entity.StockReceipt
	var appliedCost float64
	s.stockRepo.On("CreateAndApply", mock.Anything, mock.AnythingOfType("*entity.StockReceipt"), mock.AnythingOfType("float64")).
		Run(func(args mock.Arguments) {
			created = args.Get(1).(*entity.StockReceipt)
			created.ID = uuid.New()
			appliedCost = args.Get(2).(float64)
		}).Return(nil)
	s.stockRepo.On("GetByID", mock.Anything, mock.Anything).Return(&entity.StockReceipt{}, nil)

	_, err := s.service.ReceiveStock(context.Background(), &ReceiveStockInput{
		ProductID:     product.ID,
		Quantity:      10,
		TotalCost:     220,
		GSTPercentage: 10,
		GSTType:       enum.GSTTypeCGSTSGST,
		SellerName:    "Sharma Distributors",
	})

	s.Require().NoError(err)
	s.Require().NotNil(created)
	s.InDelta(200.0, created.BaseAmount, 1e-9)
	s.InDelta(20.0, created.GSTAmount, 1e-9)
	s.InDelta(10.0, created.CGSTAmount, 1e-9)
	s.InDelta(10.0, created.SGSTAmount, 1e-9)
	s.Equal(0.0, created.IGSTAmount)
	s.InDelta(22.0, created.PurchasePrice, 1e-9) // inclusive, per unit
	s.InDelta(20.0, appliedCost, 1e-9)           // base, per unit: becomes the cost price
}

func (s *InventoryServiceTestSuite) TestReceiveStockIGSTCarriesFullTax() {
	product := &entity.Product{ID: uuid.New(), Name: "Imported Tea"}
	s.productRepo.On("GetByID", mock.Anything, product.ID).Return(product, nil)

	var created *entity.StockReceipt
	s.stockRepo.On("CreateAndApply", mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			created = args.Get(1).(*entity.StockReceipt)
		}).Return(nil)
	s.stockRepo.On("GetByID", mock.Anything, mock.Anything).Return(&entity.StockReceipt{}, nil)

	_, err := s.service.ReceiveStock(context.Background(), &ReceiveStockInput{
		ProductID:     product.ID,
		Quantity:      2,
		TotalCost:     118,
		GSTPercentage: 18,
		GSTType:       enum.GSTTypeIGST,
		SellerName:    "Assam Traders",
	})

	s.Require().NoError(err)
	s.InDelta(100.0, created.BaseAmount, 1e-9)
	s.InDelta(18.0, created.IGSTAmount, 1e-9)
	s.Equal(0.0, created.CGSTAmount)
	s.Equal(0.0, created.SGSTAmount)
}

func (s *InventoryServiceTestSuite) TestReceiveStockZeroRate() {
	product := &entity.Product{ID: uuid.New(), Name: "Fresh Milk"}
	s.productRepo.On("GetByID", mock.Anything, product.ID).Return(product, nil)

	var created *entity.StockReceipt
	s.stockRepo.On("CreateAndApply", mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			created = args.Get(1).(*entity.StockReceipt)
		}).Return(nil)
	s.stockRepo.On("GetByID", mock.Anything, mock.Anything).Return(&entity.StockReceipt{}, nil)

	_, err := s.service.ReceiveStock(context.Background(), &ReceiveStockInput{
		ProductID:  product.ID,
		Quantity:   4,
		TotalCost:  100,
		SellerName: "Local Dairy",
	})

	s.Require().NoError(err)
	// Zero rate: base equals total exactly, no tax at all
	s.Equal(100.0, created.BaseAmount)
	s.Equal(0.0, created.GSTAmount)
	s.Equal(enum.GSTTypeCGSTSGST, created.GSTType)
}

func (s *InventoryServiceTestSuite) TestReceiveStockValidation() {
	cases := []struct {
		name  string
		input ReceiveStockInput
	}{
		{"zero quantity", ReceiveStockInput{ProductID: uuid.New(), Quantity: 0, TotalCost: 100, SellerName: "X"}},
		{"negative quantity", ReceiveStockInput{ProductID: uuid.New(), Quantity: -1, TotalCost: 100, SellerName: "X"}},
		{"negative cost", ReceiveStockInput{ProductID: uuid.New(), Quantity: 1, TotalCost: -5, SellerName: "X"}},
		{"negative rate", ReceiveStockInput{ProductID: uuid.New(), Quantity: 1, TotalCost: 100, GSTPercentage: -1, SellerName: "X"}},
		{"missing seller", ReceiveStockInput{ProductID: uuid.New(), Quantity: 1, TotalCost: 100}},
		{"bad gst type", ReceiveStockInput{ProductID: uuid.New(), Quantity: 1, TotalCost: 100, SellerName: "X", GSTType: "vat"}},
	}

	for _, tc := range cases {
		s.Run(tc.name, func() {
			_, err := s.service.ReceiveStock(context.Background(), &tc.input)
			s.Require().Error(err)
			s.Equal(400, apperror.GetAppError(err).Code)
		})
	}

	s.stockRepo.AssertNotCalled(s.T(), "CreateAndApply", mock.Anything, mock.Anything, mock.Anything)
}

func (s *InventoryServiceTestSuite) TestReceiveStockUnknownProduct() {
	id := uuid.New()
	s.productRepo.On("GetByID", mock.Anything, id).Return(nil, nil)

	_, err := s.service.ReceiveStock(context.Background(), &ReceiveStockInput{
		ProductID:  id,
		Quantity:   1,
		TotalCost:  50,
		SellerName: "X",
	})

	s.Require().Error(err)
	s.Equal(404, apperror.GetAppError(err).Code)
}

func (s *InventoryServiceTestSuite) TestSummarizeTotalsReceipts() {
	start := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0)

	s.stockRepo.On("ListBetween", mock.Anything, start, end).Return([]entity.StockReceipt{
		{TotalCost: 220, BaseAmount: 200, GSTAmount: 20, Quantity: 10, SellerName: "Sharma Distributors"},
		{TotalCost: 118, BaseAmount: 100, GSTAmount: 18, Quantity: 2, SellerName: "Assam Traders"},
		{TotalCost: 110, BaseAmount: 100, GSTAmount: 10, Quantity: 5, SellerName: "Sharma Distributors"},
	}, nil)

	summary, err := s.service.Summarize(context.Background(), start, end)

	s.Require().NoError(err)
	s.Equal(448.0, summary.TotalPurchases)
	s.Equal(400.0, summary.TotalBase)
	s.Equal(48.0, summary.TotalGSTPaid)
	s.Equal(3, summary.ReceiptCount)
	s.Equal(17, summary.UnitsReceived)

	s.Len(summary.BySeller, 2)
	s.Equal(SellerSummary{Total: 330, GST: 30, Entries: 2}, summary.BySeller["Sharma Distributors"])
	s.Equal(SellerSummary{Total: 118, GST: 18, Entries: 1}, summary.BySeller["Assam Traders"])
}

func (s *InventoryServiceTestSuite) TestDeriveFieldMapsErrors() {
	qty := 10.0
	total := 200.0

	field, value, err := s.service.DeriveField(gst.TwoOfThree{Quantity: &qty, TotalPrice: &total})
	s.Require().NoError(err)
	s.Equal(gst.FieldPricePerUnit, field)
	s.Equal(20.0, value)

	_, _, err = s.service.DeriveField(gst.TwoOfThree{Quantity: &qty})
	s.Require().Error(err)
	s.Equal(400, apperror.GetAppError(err).Code)
}

func TestInventoryServiceTestSuite(t *testing.T) {
	suite.Run(t, new(InventoryServiceTestSuite))
}
