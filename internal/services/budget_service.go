package services

import (
	"context"
	"errors"
	"strings"

	"github.com/shopspring/decimal"

	apperrors "finledger/internal/errors"
	"finledger/internal/models"
	"finledger/internal/persistence"
	"finledger/internal/uuid"
)

// BudgetPolicy carries the configured ceiling defaults applied to newly
// created budgets.
type BudgetPolicy struct {
	GoalLimit decimal.Decimal
	Mode      models.EnforcementMode
}

// budgetService owns the session's budgets, keyed by owner, and bridges the
// engine to the persistence gateway.
type budgetService struct {
	gateway persistence.Gateway
	policy  BudgetPolicy
	budgets map[string]*models.Budget
}

// NewBudgetService creates a new BudgetServicer.
func NewBudgetService(gateway persistence.Gateway, policy BudgetPolicy) BudgetServicer {
	return &budgetService{
		gateway: gateway,
		policy:  policy,
		budgets: make(map[string]*models.Budget),
	}
}

// Create makes a new budget for userID, seeded with initialFunding in month
// 1, under the configured goal limit and enforcement mode. Each user owns at
// most one budget.
func (s *budgetService) Create(userID, name string, initialFunding decimal.Decimal) (*models.Budget, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidField, "user ID cannot be empty")
	}
	if _, exists := s.budgets[userID]; exists {
		return nil, apperrors.ErrBudgetExists
	}

	budget, err := models.NewBudget(uuid.New(), name, initialFunding, s.policy.GoalLimit, s.policy.Mode)
	if err != nil {
		return nil, err
	}
	s.budgets[userID] = budget
	return budget, nil
}

// Get returns the budget owned by userID.
func (s *budgetService) Get(userID string) (*models.Budget, error) {
	budget, ok := s.budgets[userID]
	if !ok {
		return nil, apperrors.ErrBudgetNotFound
	}
	return budget, nil
}

// AddIncome records income on the user's budget.
func (s *budgetService) AddIncome(userID string, month int, category string, amount decimal.Decimal) error {
	budget, err := s.Get(userID)
	if err != nil {
		return err
	}
	return budget.AddIncome(month, category, amount)
}

// AddExpense records an expense on the user's budget, subject to the
// configured ceiling enforcement.
func (s *budgetService) AddExpense(userID string, month int, category string, amount decimal.Decimal) error {
	budget, err := s.Get(userID)
	if err != nil {
		return err
	}
	return budget.AddExpense(month, category, amount)
}

// MonthlySummary returns the read model for one month.
func (s *budgetService) MonthlySummary(userID string, month int) (*MonthlySummary, error) {
	budget, err := s.Get(userID)
	if err != nil {
		return nil, err
	}
	income, err := budget.MonthlyIncome(month)
	if err != nil {
		return nil, err
	}
	expenses, err := budget.MonthlyExpenses(month)
	if err != nil {
		return nil, err
	}
	return &MonthlySummary{
		Month:    month,
		Income:   income,
		Expenses: expenses,
		Balance:  income.Sub(expenses),
	}, nil
}

// Balance returns the budget's net balance across all twelve months.
func (s *budgetService) Balance(userID string) (decimal.Decimal, error) {
	budget, err := s.Get(userID)
	if err != nil {
		return decimal.Zero, err
	}
	return budget.Balance(), nil
}

// Reset starts a new spending period on the user's budget.
func (s *budgetService) Reset(userID string, newGoalLimit decimal.Decimal) error {
	budget, err := s.Get(userID)
	if err != nil {
		return err
	}
	return budget.Reset(newGoalLimit)
}

// Save writes the user's budget snapshot through the gateway. The caller
// holds the session quiescent for the duration of the call.
func (s *budgetService) Save(ctx context.Context, userID string) error {
	budget, err := s.Get(userID)
	if err != nil {
		return err
	}
	return s.gateway.SaveBudget(ctx, userID, budget.Snapshot())
}

// Load reads the user's budget snapshot through the gateway and installs it
// as the session budget, replacing any in-memory state.
func (s *budgetService) Load(ctx context.Context, userID string) (*models.Budget, error) {
	snap, err := s.gateway.LoadBudget(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrBudgetNotFound
		}
		return nil, err
	}
	budget, err := models.BudgetFromSnapshot(snap)
	if err != nil {
		return nil, err
	}
	s.budgets[userID] = budget
	return budget, nil
}
