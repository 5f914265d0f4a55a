package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/kiranapos/kirana-api/internal/domain/entity"
	"github.com/kiranapos/kirana-api/internal/domain/enum"
	"github.com/kiranapos/kirana-api/pkg/apperror"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
)

type OrderServiceTestSuite struct {
	suite.Suite
	orderRepo   *MockOrderRepository
	productRepo *MockProductRepository
	service     *OrderService
	now         time.Time
}

func (s *OrderServiceTestSuite) SetupTest() {
	s.orderRepo = new(MockOrderRepository)
	s.productRepo = new(MockProductRepository)
	s.service = NewOrderService(s.orderRepo, s.productRepo)
	s.now = time.Date(2026, 8, 31, 14, 30, 0, 0, time.UTC)
}

func (s *OrderServiceTestSuite) TestPlaceOrderComputesExclusiveTax() {
	rice := entity.Product{ID: uuid.New(), Name: "Rice 1kg", Category: "Grocery", Price: 100, GSTPercentage: 5, Stock: 10, IsActive: true}
	oil := entity.Product{ID: uuid.New(), Name: "Sunflower Oil", Category: "Grocery", Price: 200, GSTPercentage: 18, Stock: 10, IsActive: true}

	s.productRepo.On("GetByIDs", mock.Anything, mock.Anything).Return([]entity.Product{rice, oil}, nil)
	s.productRepo.On("AtomicDecrementBatch", mock.Anything, map[uuid.UUID]int{rice.ID: 1, oil.ID: 1}).Return([]uuid.UUID{}, nil)

	var created *entity.Order
	s.orderRepo.On("Create", mock.Anything, mock.AnythingOfType("*entity.Order")).Run(func(args mock.Arguments) {
		created = args.Get(1).(*entity.Order)
		created.ID = uuid.New()
	}).Return(nil)
	s.orderRepo.On("GetByID", mock.Anything, mock.Anything).Return(&entity.Order{}, nil)

	_, err := s.service.PlaceOrder(context.Background(), s.now, &PlaceOrderInput{
		CashierID: uuid.New(),
		Items: []OrderItemInput{
			{ProductID: rice.ID, Quantity: 1},
			{ProductID: oil.ID, Quantity: 1},
		},
	})

	s.Require().NoError(err)
	s.Require().NotNil(created)
	s.Equal(300.0, created.Subtotal)
	s.Equal(41.0, created.TotalGST) // 5 on the rice line, 36 on the oil line
	s.Equal(341.0, created.TotalAmount)
	s.Equal(enum.OrderStatusCompleted, created.Status)
	s.Equal(enum.PaymentMethodCash, created.PaymentMethod)
	s.Len(created.Items, 2)
	s.Equal(5.0, created.Items[0].GSTAmount)
	s.Equal(36.0, created.Items[1].GSTAmount)
}

func (s *OrderServiceTestSuite) TestPlaceOrderSnapshotsProductFields() {
	product := entity.Product{ID: uuid.New(), Name: "Masala Tea", Category: "Beverages", Price: 50, GSTPercentage: 12, Stock: 5, IsActive: true}

	s.productRepo.On("GetByIDs", mock.Anything, mock.Anything).Return([]entity.Product{product}, nil)
	s.productRepo.On("AtomicDecrementBatch", mock.Anything, mock.Anything).Return([]uuid.UUID{}, nil)

	var created *entity.Order
	s.orderRepo.On("Create", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		created = args.Get(1).(*entity.Order)
	}).Return(nil)
	s.orderRepo.On("GetByID", mock.Anything, mock.Anything).Return(&entity.Order{}, nil)

	_, err := s.service.PlaceOrder(context.Background(), s.now, &PlaceOrderInput{
		Items: []OrderItemInput{{ProductID: product.ID, Quantity: 3}},
	})

	s.Require().NoError(err)
	item := created.Items[0]
	s.Equal("Masala Tea", item.Name)
	s.Equal("Beverages", item.Category)
	s.Equal(50.0, item.Price)
	s.Equal(12.0, item.GSTPercentage)
	s.Equal(3, item.Quantity)
}

func (s *OrderServiceTestSuite) TestPlaceOrderMergesDuplicateLines() {
	product := entity.Product{ID: uuid.New(), Name: "Soap", Price: 30, GSTPercentage: 18, Stock: 10, IsActive: true}

	s.productRepo.On("GetByIDs", mock.Anything, mock.Anything).Return([]entity.Product{product}, nil)
	s.productRepo.On("AtomicDecrementBatch", mock.Anything, map[uuid.UUID]int{product.ID: 5}).Return([]uuid.UUID{}, nil)
	s.orderRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
	s.orderRepo.On("GetByID", mock.Anything, mock.Anything).Return(&entity.Order{}, nil)

	_, err := s.service.PlaceOrder(context.Background(), s.now, &PlaceOrderInput{
		Items: []OrderItemInput{
			{ProductID: product.ID, Quantity: 2},
			{ProductID: product.ID, Quantity: 3},
		},
	})

	s.Require().NoError(err)
	s.productRepo.AssertExpectations(s.T())
}

func (s *OrderServiceTestSuite) TestPlaceOrderInsufficientStockLeavesStockUntouched() {
	product := entity.Product{ID: uuid.New(), Name: "Sugar", Price: 45, GSTPercentage: 5, Stock: 1, IsActive: true}

	s.productRepo.On("GetByIDs", mock.Anything, mock.Anything).Return([]entity.Product{product}, nil)
	s.productRepo.On("AtomicDecrementBatch", mock.Anything, mock.Anything).Return([]uuid.UUID{product.ID}, nil)

	_, err := s.service.PlaceOrder(context.Background(), s.now, &PlaceOrderInput{
		Items: []OrderItemInput{{ProductID: product.ID, Quantity: 5}},
	})

	s.Require().Error(err)
	appErr := apperror.GetAppError(err)
	s.Equal(400, appErr.Code)
	s.Contains(appErr.Message, "Sugar")

	// Nothing was created and no compensating increment ran; the failed
	// decrement batch rolled itself back
	s.orderRepo.AssertNotCalled(s.T(), "Create", mock.Anything, mock.Anything)
	s.productRepo.AssertNotCalled(s.T(), "AtomicIncrementBatch", mock.Anything, mock.Anything)
}

func (s *OrderServiceTestSuite) TestPlaceOrderRejectsUnknownProduct() {
	s.productRepo.On("GetByIDs", mock.Anything, mock.Anything).Return([]entity.Product{}, nil)

	_, err := s.service.PlaceOrder(context.Background(), s.now, &PlaceOrderInput{
		Items: []OrderItemInput{{ProductID: uuid.New(), Quantity: 1}},
	})

	s.Require().Error(err)
	s.Equal(404, apperror.GetAppError(err).Code)
}

func (s *OrderServiceTestSuite) TestPlaceOrderRejectsEmptyAndNonPositive() {
	_, err := s.service.PlaceOrder(context.Background(), s.now, &PlaceOrderInput{})
	s.Require().Error(err)
	s.Equal(400, apperror.GetAppError(err).Code)

	_, err = s.service.PlaceOrder(context.Background(), s.now, &PlaceOrderInput{
		Items: []OrderItemInput{{ProductID: uuid.New(), Quantity: 0}},
	})
	s.Require().Error(err)
	s.Equal(400, apperror.GetAppError(err).Code)
}

func (s *OrderServiceTestSuite) TestPlaceOrderRetriesOnDuplicateOrderNumber() {
	product := entity.Product{ID: uuid.New(), Name: "Salt", Price: 20, GSTPercentage: 5, Stock: 10, IsActive: true}

	s.productRepo.On("GetByIDs", mock.Anything, mock.Anything).Return([]entity.Product{product}, nil)
	s.productRepo.On("AtomicDecrementBatch", mock.Anything, mock.Anything).Return([]uuid.UUID{}, nil)

	s.orderRepo.On("Create", mock.Anything, mock.Anything).Return(gorm.ErrDuplicatedKey).Once()
	s.orderRepo.On("Create", mock.Anything, mock.Anything).Return(nil).Once()
	s.orderRepo.On("GetByID", mock.Anything, mock.Anything).Return(&entity.Order{}, nil)

	_, err := s.service.PlaceOrder(context.Background(), s.now, &PlaceOrderInput{
		Items: []OrderItemInput{{ProductID: product.ID, Quantity: 1}},
	})

	s.Require().NoError(err)
	s.orderRepo.AssertNumberOfCalls(s.T(), "Create", 2)
}

func (s *OrderServiceTestSuite) TestPlaceOrderRestoresStockWhenCreateFails() {
	product := entity.Product{ID: uuid.New(), Name: "Atta", Price: 60, GSTPercentage: 5, Stock: 10, IsActive: true}

	s.productRepo.On("GetByIDs", mock.Anything, mock.Anything).Return([]entity.Product{product}, nil)
	s.productRepo.On("AtomicDecrementBatch", mock.Anything, mock.Anything).Return([]uuid.UUID{}, nil)
	s.productRepo.On("AtomicIncrementBatch", mock.Anything, map[uuid.UUID]int{product.ID: 2}).Return(nil)
	s.orderRepo.On("Create", mock.Anything, mock.Anything).Return(errors.New("connection reset"))

	_, err := s.service.PlaceOrder(context.Background(), s.now, &PlaceOrderInput{
		Items: []OrderItemInput{{ProductID: product.ID, Quantity: 2}},
	})

	s.Require().Error(err)
	s.productRepo.AssertCalled(s.T(), "AtomicIncrementBatch", mock.Anything, map[uuid.UUID]int{product.ID: 2})
}

func (s *OrderServiceTestSuite) TestCancelOrderRestoresStock() {
	productID := uuid.New()
	order := &entity.Order{
		ID:     uuid.New(),
		Status: enum.OrderStatusCompleted,
		Items:  []entity.OrderItem{{ProductID: productID, Quantity: 4}},
	}

	s.orderRepo.On("GetByID", mock.Anything, order.ID).Return(order, nil)
	s.productRepo.On("AtomicIncrementBatch", mock.Anything, map[uuid.UUID]int{productID: 4}).Return(nil)
	s.orderRepo.On("UpdateStatus", mock.Anything, order.ID, enum.OrderStatusCancelled).Return(nil)

	err := s.service.CancelOrder(context.Background(), order.ID)

	s.Require().NoError(err)
	s.productRepo.AssertExpectations(s.T())
	s.orderRepo.AssertExpectations(s.T())
}

func (s *OrderServiceTestSuite) TestReverseOrderRejectsTerminalStatus() {
	order := &entity.Order{
		ID:     uuid.New(),
		Status: enum.OrderStatusCancelled,
		Items:  []entity.OrderItem{{ProductID: uuid.New(), Quantity: 1}},
	}

	s.orderRepo.On("GetByID", mock.Anything, order.ID).Return(order, nil)

	err := s.service.RefundOrder(context.Background(), order.ID)

	s.Require().Error(err)
	s.Equal(400, apperror.GetAppError(err).Code)
	// Stock must not be restored twice
	s.productRepo.AssertNotCalled(s.T(), "AtomicIncrementBatch", mock.Anything, mock.Anything)
}

func (s *OrderServiceTestSuite) TestRefundOrderMarksRefunded() {
	productID := uuid.New()
	order := &entity.Order{
		ID:     uuid.New(),
		Status: enum.OrderStatusCompleted,
		Items:  []entity.OrderItem{{ProductID: productID, Quantity: 2}},
	}

	s.orderRepo.On("GetByID", mock.Anything, order.ID).Return(order, nil)
	s.productRepo.On("AtomicIncrementBatch", mock.Anything, map[uuid.UUID]int{productID: 2}).Return(nil)
	s.orderRepo.On("UpdateStatus", mock.Anything, order.ID, enum.OrderStatusRefunded).Return(nil)

	err := s.service.RefundOrder(context.Background(), order.ID)

	s.Require().NoError(err)
	s.orderRepo.AssertExpectations(s.T())
}

func TestOrderServiceTestSuite(t *testing.T) {
	suite.Run(t, new(OrderServiceTestSuite))
}

func TestGenerateOrderNumber(t *testing.T) {
	now := time.Date(2026, 8, 31, 10, 0, 0, 0, time.UTC)

	for i := 0; i < 50; i++ {
		n := GenerateOrderNumber(now)
		if len(n) != 12 {
			t.Fatalf("expected 12 characters, got %q", n)
		}
		if n[:8] != "KP260831" {
			t.Fatalf("expected KP260831 prefix, got %q", n)
		}
		suffix := n[8:]
		if suffix < "1000" || suffix > "9999" {
			t.Fatalf("suffix out of range: %q", n)
		}
	}
}
