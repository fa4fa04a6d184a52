package models

import (
	"strings"

	"github.com/shopspring/decimal"

	apperrors "finledger/internal/errors"
)

// monthsPerYear is the fixed number of ledgers a budget owns.
const monthsPerYear = 12

// InitialFundingCategory labels the income entry seeded at budget creation.
const InitialFundingCategory = "Initial Funding"

// BalanceBearer is the capability of anything that can report a net balance.
// Budget is the only implementation the engine needs.
type BalanceBearer interface {
	Balance() decimal.Decimal
}

// Budget owns twelve monthly ledgers and enforces an optional per-month
// expense ceiling. It is owned by exactly one user for persistence purposes,
// but the engine itself is budget-centric and user-agnostic.
type Budget struct {
	id        string
	name      string
	goalLimit decimal.Decimal
	mode      EnforcementMode
	exceeded  bool
	ledgers   [monthsPerYear]*MonthlyLedger
}

// NewBudget creates a budget with all twelve ledgers zeroed and month 1
// seeded with initialFunding as income. A zero goalLimit disables ceiling
// enforcement; an empty mode defaults to reject.
func NewBudget(id, name string, initialFunding, goalLimit decimal.Decimal, mode EnforcementMode) (*Budget, error) {
	if strings.TrimSpace(id) == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidField, "budget ID cannot be empty")
	}
	if strings.TrimSpace(name) == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidField, "budget name cannot be empty")
	}
	if initialFunding.IsNegative() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidAmount, "initial funding must be non-negative")
	}
	if goalLimit.IsNegative() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidAmount, "goal limit must be non-negative")
	}
	mode, err := ParseEnforcementMode(string(mode))
	if err != nil {
		return nil, err
	}

	b := &Budget{
		id:        id,
		name:      name,
		goalLimit: goalLimit,
		mode:      mode,
	}
	for i := 0; i < monthsPerYear; i++ {
		b.ledgers[i] = NewMonthlyLedger(i + 1)
	}

	if err := b.AddIncome(1, InitialFundingCategory, initialFunding); err != nil {
		return nil, err
	}
	return b, nil
}

// ID returns the budget's identifier.
func (b *Budget) ID() string { return b.id }

// Name returns the budget's display name.
func (b *Budget) Name() string { return b.name }

// GoalLimit returns the per-month expense ceiling. Zero means no enforcement.
func (b *Budget) GoalLimit() decimal.Decimal { return b.goalLimit }

// Mode returns the enforcement mode applied to expense additions.
func (b *Budget) Mode() EnforcementMode { return b.mode }

// Exceeded reports whether any month's expenses have crossed the goal limit.
func (b *Budget) Exceeded() bool { return b.exceeded }

// ledger returns the ledger for month, or ErrInvalidMonth when out of range.
func (b *Budget) ledger(month int) (*MonthlyLedger, error) {
	if month < 1 || month > monthsPerYear {
		return nil, apperrors.ErrInvalidMonth
	}
	return b.ledgers[month-1], nil
}

// AddIncome records income for the given month under a category.
func (b *Budget) AddIncome(month int, category string, amount decimal.Decimal) error {
	ledger, err := b.ledger(month)
	if err != nil {
		return err
	}
	if strings.TrimSpace(category) == "" {
		return apperrors.WithMessage(apperrors.ErrInvalidField, "income category cannot be empty")
	}
	return ledger.AddIncome(amount)
}

// AddExpense records an expense for the given month under a category.
//
// Under reject mode a ceiling crossing fails with ErrBudgetExceeded and the
// ledger stays unchanged; under warn mode the expense is applied and the
// budget's exceeded flag is raised instead.
func (b *Budget) AddExpense(month int, category string, amount decimal.Decimal) error {
	ledger, err := b.ledger(month)
	if err != nil {
		return err
	}
	if strings.TrimSpace(category) == "" {
		return apperrors.WithMessage(apperrors.ErrInvalidField, "expense category cannot be empty")
	}

	crossed, err := ledger.AddExpense(amount, b.goalLimit, b.mode)
	if err != nil {
		return err
	}
	if crossed {
		b.exceeded = true
	}
	return nil
}

// MonthlyIncome returns the accumulated income for a month.
func (b *Budget) MonthlyIncome(month int) (decimal.Decimal, error) {
	ledger, err := b.ledger(month)
	if err != nil {
		return decimal.Zero, err
	}
	return ledger.IncomeTotal(), nil
}

// MonthlyExpenses returns the accumulated expenses for a month.
func (b *Budget) MonthlyExpenses(month int) (decimal.Decimal, error) {
	ledger, err := b.ledger(month)
	if err != nil {
		return decimal.Zero, err
	}
	return ledger.ExpenseTotal(), nil
}

// Balance returns total income minus total expenses across all twelve
// months. The aggregate is computed fresh on every call.
func (b *Budget) Balance() decimal.Decimal {
	total := decimal.Zero
	for _, ledger := range b.ledgers {
		total = total.Add(ledger.Balance())
	}
	return total
}

// Reset zeroes every month's expense total, clears the exceeded flag, and
// installs newGoalLimit as the ceiling. Income history is preserved: the
// reset starts a new spending period, it does not rewrite what was earned.
func (b *Budget) Reset(newGoalLimit decimal.Decimal) error {
	if !newGoalLimit.IsPositive() {
		return apperrors.WithMessage(apperrors.ErrInvalidAmount, "new goal limit must be positive")
	}
	for _, ledger := range b.ledgers {
		ledger.resetExpenses()
	}
	b.goalLimit = newGoalLimit
	b.exceeded = false
	return nil
}

// Snapshot captures the budget's full state for persistence.
func (b *Budget) Snapshot() *BudgetSnapshot {
	snap := &BudgetSnapshot{
		ID:        b.id,
		Name:      b.name,
		GoalLimit: b.goalLimit,
		Mode:      b.mode,
		Exceeded:  b.exceeded,
	}
	for i, ledger := range b.ledgers {
		snap.Months[i] = MonthSnapshot{
			Month:        ledger.Month(),
			IncomeTotal:  ledger.IncomeTotal(),
			ExpenseTotal: ledger.ExpenseTotal(),
		}
	}
	return snap
}

// BudgetFromSnapshot rebuilds a budget from persisted state.
func BudgetFromSnapshot(snap *BudgetSnapshot) (*Budget, error) {
	if snap == nil {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidField, "budget snapshot cannot be nil")
	}
	if strings.TrimSpace(snap.ID) == "" || strings.TrimSpace(snap.Name) == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidField, "budget snapshot is missing ID or name")
	}
	mode, err := ParseEnforcementMode(string(snap.Mode))
	if err != nil {
		return nil, err
	}

	b := &Budget{
		id:        snap.ID,
		name:      snap.Name,
		goalLimit: snap.GoalLimit,
		mode:      mode,
		exceeded:  snap.Exceeded,
	}
	for i := 0; i < monthsPerYear; i++ {
		b.ledgers[i] = NewMonthlyLedger(i + 1)
	}
	for _, m := range snap.Months {
		ledger, err := b.ledger(m.Month)
		if err != nil {
			return nil, err
		}
		if m.IncomeTotal.IsNegative() || m.ExpenseTotal.IsNegative() {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidAmount, "snapshot totals must be non-negative")
		}
		ledger.incomeTotal = m.IncomeTotal
		ledger.expenseTotal = m.ExpenseTotal
	}
	return b, nil
}
