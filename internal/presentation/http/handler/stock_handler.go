package handler

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/kiranapos/kirana-api/internal/application/service"
	"github.com/kiranapos/kirana-api/internal/domain/enum"
	"github.com/kiranapos/kirana-api/internal/domain/repository"
	"github.com/kiranapos/kirana-api/internal/presentation/http/dto/request"
	"github.com/kiranapos/kirana-api/internal/presentation/http/dto/response"
	"github.com/kiranapos/kirana-api/pkg/gst"
	"github.com/kiranapos/kirana-api/pkg/pagination"
)

// StockHandler handles stock receipt HTTP requests
type StockHandler struct {
	inventoryService *service.InventoryService
}

// NewStockHandler creates a new stock handler
func NewStockHandler(inventoryService *service.InventoryService) *StockHandler {
	return &StockHandler{inventoryService: inventoryService}
}

// Receive handles recording a stock receipt
func (h *StockHandler) Receive(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req request.ReceiveStockRequest
	if !bindJSON(c, &req) {
		return
	}

	receipt, err := h.inventoryService.ReceiveStock(c.Request.Context(), &service.ReceiveStockInput{
		ProductID:       req.ProductID,
		Quantity:        req.Quantity,
		TotalCost:       req.TotalCost,
		GSTPercentage:   req.GSTPercentage,
		GSTType:         enum.GSTType(req.GSTType),
		SellerName:      req.SellerName,
		SellerGSTNumber: req.SellerGSTNumber,
		InvoiceNumber:   req.InvoiceNumber,
		Notes:           req.Notes,
		AddedByID:       *userID,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Stock received successfully", receipt)
}

// List handles listing stock receipts
func (h *StockHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "15"))

	params := &repository.StockReceiptFilterParams{
		Pagination: &pagination.PaginationParams{
			Page:    page,
			PerPage: perPage,
		},
	}

	if productIDStr := c.Query("product_id"); productIDStr != "" {
		if productID, err := uuid.Parse(productIDStr); err == nil {
			params.ProductID = &productID
		}
	}

	if startDateStr := c.Query("start_date"); startDateStr != "" {
		if startDate, err := time.Parse("2006-01-02", startDateStr); err == nil {
			params.StartDate = &startDate
		}
	}

	if endDateStr := c.Query("end_date"); endDateStr != "" {
		if endDate, err := time.Parse("2006-01-02", endDateStr); err == nil {
			end := endDate.Add(24 * time.Hour)
			params.EndDate = &end
		}
	}

	result, err := h.inventoryService.ListReceipts(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Stock receipts retrieved successfully", result)
}

// Get handles getting a single stock receipt
func (h *StockHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid receipt ID")
		return
	}

	receipt, err := h.inventoryService.GetReceipt(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Stock receipt retrieved successfully", receipt)
}

// Summary handles the purchase register summary for a period
func (h *StockHandler) Summary(c *gin.Context) {
	start, end, ok := parsePeriod(c)
	if !ok {
		return
	}

	summary, err := h.inventoryService.Summarize(c.Request.Context(), start, end)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Stock summary retrieved successfully", summary)
}

// DeriveField handles the purchase-entry convenience of filling in the third
// of quantity, total price and price per unit
func (h *StockHandler) DeriveField(c *gin.Context) {
	var req request.DeriveFieldRequest
	if !bindJSON(c, &req) {
		return
	}

	field, value, err := h.inventoryService.DeriveField(gst.TwoOfThree{
		Quantity:     req.Quantity,
		TotalPrice:   req.TotalPrice,
		PricePerUnit: req.PricePerUnit,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Field derived successfully", gin.H{
		"field": field,
		"value": value,
	})
}

// LowStock handles listing the products running lowest
func (h *StockHandler) LowStock(c *gin.Context) {
	threshold, _ := strconv.Atoi(c.DefaultQuery("threshold", "10"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "5"))

	products, err := h.inventoryService.LowStockProducts(c.Request.Context(), threshold, limit)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Low stock products retrieved successfully", products)
}

// parsePeriod reads start_date/end_date query params as an inclusive day range
// and returns it as a half-open timestamp window. Defaults to the last 30 days.
func parsePeriod(c *gin.Context) (time.Time, time.Time, bool) {
	now := time.Now()
	end := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).Add(24 * time.Hour)
	start := end.AddDate(0, 0, -30)

	if startDateStr := c.Query("start_date"); startDateStr != "" {
		parsed, err := time.Parse("2006-01-02", startDateStr)
		if err != nil {
			response.BadRequest(c, "Invalid start_date, expected YYYY-MM-DD")
			return time.Time{}, time.Time{}, false
		}
		start = parsed
	}

	if endDateStr := c.Query("end_date"); endDateStr != "" {
		parsed, err := time.Parse("2006-01-02", endDateStr)
		if err != nil {
			response.BadRequest(c, "Invalid end_date, expected YYYY-MM-DD")
			return time.Time{}, time.Time{}, false
		}
		end = parsed.Add(24 * time.Hour)
	}

	return start, end, true
}
