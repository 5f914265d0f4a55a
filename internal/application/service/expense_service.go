package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/kiranapos/kirana-api/internal/domain/entity"
	"github.com/kiranapos/kirana-api/internal/domain/enum"
	"github.com/kiranapos/kirana-api/internal/domain/repository"
	"github.com/kiranapos/kirana-api/pkg/apperror"
	"github.com/kiranapos/kirana-api/pkg/gst"
	"github.com/kiranapos/kirana-api/pkg/pagination"
)

// ExpenseService handles the expense ledger
type ExpenseService struct {
	expenseRepo repository.ExpenseRepository
}

// NewExpenseService creates a new expense service
func NewExpenseService(expenseRepo repository.ExpenseRepository) *ExpenseService {
	return &ExpenseService{expenseRepo: expenseRepo}
}

// CreateExpenseInput represents the create expense input
type CreateExpenseInput struct {
	Title         string
	Amount        float64
	Category      enum.ExpenseCategory
	Date          *time.Time
	Description   string
	PaymentMethod enum.PaymentMethod
	AddedByID     uuid.UUID
}

// CreateExpense records an expense. The date defaults to now when omitted so
// back-dated entries remain possible but are never required.
func (s *ExpenseService) CreateExpense(ctx context.Context, now time.Time, input *CreateExpenseInput) (*entity.Expense, error) {
	if input.Title == "" {
		return nil, apperror.NewBadRequestError("Expense title is required")
	}
	if input.Amount <= 0 {
		return nil, apperror.NewBadRequestError("Expense amount must be positive")
	}

	category := input.Category
	if category == "" {
		category = enum.ExpenseCategoryOther
	}
	if !category.IsValid() {
		return nil, apperror.NewBadRequestError("Unknown expense category")
	}

	paymentMethod := input.PaymentMethod
	if paymentMethod == "" {
		paymentMethod = enum.PaymentMethodCash
	}
	if !paymentMethod.IsValid() {
		return nil, apperror.NewBadRequestError("Unknown payment method")
	}

	date := now
	if input.Date != nil {
		date = *input.Date
	}

	expense := &entity.Expense{
		Title:         input.Title,
		Amount:        input.Amount,
		Category:      category,
		Date:          date,
		Description:   input.Description,
		PaymentMethod: paymentMethod,
		AddedByID:     input.AddedByID,
	}

	if err := s.expenseRepo.Create(ctx, expense); err != nil {
		return nil, err
	}

	return expense, nil
}

// UpdateExpenseInput represents the update expense input; nil fields are left unchanged
type UpdateExpenseInput struct {
	Title         *string
	Amount        *float64
	Category      *enum.ExpenseCategory
	Date          *time.Time
	Description   *string
	PaymentMethod *enum.PaymentMethod
}

// UpdateExpense edits a recorded expense
func (s *ExpenseService) UpdateExpense(ctx context.Context, id uuid.UUID, input *UpdateExpenseInput) (*entity.Expense, error) {
	expense, err := s.expenseRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if expense == nil {
		return nil, apperror.NewNotFoundError("Expense")
	}

	if input.Title != nil {
		if *input.Title == "" {
			return nil, apperror.NewBadRequestError("Expense title cannot be empty")
		}
		expense.Title = *input.Title
	}
	if input.Amount != nil {
		if *input.Amount <= 0 {
			return nil, apperror.NewBadRequestError("Expense amount must be positive")
		}
		expense.Amount = *input.Amount
	}
	if input.Category != nil {
		if !input.Category.IsValid() {
			return nil, apperror.NewBadRequestError("Unknown expense category")
		}
		expense.Category = *input.Category
	}
	if input.Date != nil {
		expense.Date = *input.Date
	}
	if input.Description != nil {
		expense.Description = *input.Description
	}
	if input.PaymentMethod != nil {
		if !input.PaymentMethod.IsValid() {
			return nil, apperror.NewBadRequestError("Unknown payment method")
		}
		expense.PaymentMethod = *input.PaymentMethod
	}

	if err := s.expenseRepo.Update(ctx, expense); err != nil {
		return nil, err
	}

	return expense, nil
}

// GetExpense retrieves an expense by ID
func (s *ExpenseService) GetExpense(ctx context.Context, id uuid.UUID) (*entity.Expense, error) {
	expense, err := s.expenseRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if expense == nil {
		return nil, apperror.NewNotFoundError("Expense")
	}
	return expense, nil
}

// ListExpenses lists expenses with filtering
func (s *ExpenseService) ListExpenses(ctx context.Context, params *repository.ExpenseFilterParams) (*pagination.PaginatedResult[entity.Expense], error) {
	expenses, total, err := s.expenseRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(expenses, pag), nil
}

// DeleteExpense removes an expense
func (s *ExpenseService) DeleteExpense(ctx context.Context, id uuid.UUID) error {
	expense, err := s.expenseRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if expense == nil {
		return apperror.NewNotFoundError("Expense")
	}
	return s.expenseRepo.Delete(ctx, id)
}

// ExpenseSummary is the expense screen payload: today's and the current
// month's spending, the month broken down by category, and a 30-day series
type ExpenseSummary struct {
	TodayTotal  float64            `json:"today_total"`
	MonthTotal  float64            `json:"month_total"`
	ByCategory  map[string]float64 `json:"by_category"`
	DailyTotals []DailyExpense     `json:"daily_totals"`
}

// DailyExpense is one day of the expense summary series
type DailyExpense struct {
	Date  string  `json:"date"`
	Total float64 `json:"total"`
}

// Summarize aggregates spending as of now. Today and month totals and the
// category breakdown cover the calendar day and month containing now; the
// daily series covers the 30 days ending today. Amounts are rounded to two
// decimals at this boundary; every day appears in the series even when
// nothing was spent.
func (s *ExpenseService) Summarize(ctx context.Context, now time.Time) (*ExpenseSummary, error) {
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	endOfToday := startOfDay.Add(24 * time.Hour)
	startOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	seriesStart := endOfToday.AddDate(0, 0, -30)

	// One fetch covers both windows
	fetchStart := seriesStart
	if startOfMonth.Before(fetchStart) {
		fetchStart = startOfMonth
	}

	expenses, err := s.expenseRepo.ListBetween(ctx, fetchStart, endOfToday)
	if err != nil {
		return nil, err
	}

	byCategory := make(map[string]float64)
	byDay := make(map[string]float64)
	var todayTotal, monthTotal float64

	for _, e := range expenses {
		if !e.Date.Before(startOfDay) {
			todayTotal += e.Amount
		}
		if !e.Date.Before(startOfMonth) {
			monthTotal += e.Amount
			byCategory[e.Category.String()] += e.Amount
		}
		if !e.Date.Before(seriesStart) {
			byDay[e.Date.Format("2006-01-02")] += e.Amount
		}
	}

	for k, v := range byCategory {
		byCategory[k] = gst.Round2(v)
	}

	dailyTotals := make([]DailyExpense, 0, 30)
	for d := seriesStart; d.Before(endOfToday); d = d.AddDate(0, 0, 1) {
		key := d.Format("2006-01-02")
		dailyTotals = append(dailyTotals, DailyExpense{
			Date:  key,
			Total: gst.Round2(byDay[key]),
		})
	}

	return &ExpenseSummary{
		TodayTotal:  gst.Round2(todayTotal),
		MonthTotal:  gst.Round2(monthTotal),
		ByCategory:  byCategory,
		DailyTotals: dailyTotals,
	}, nil
}
