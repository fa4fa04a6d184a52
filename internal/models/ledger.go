package models

import (
	"github.com/shopspring/decimal"

	apperrors "finledger/internal/errors"
)

// EnforcementMode selects how a budget reacts when a month's accumulated
// expenses would cross the goal limit.
type EnforcementMode string

const (
	// EnforcementReject aborts the expense addition and leaves the ledger
	// untouched.
	EnforcementReject EnforcementMode = "reject"
	// EnforcementWarn applies the expense anyway and raises the budget's
	// exceeded flag.
	EnforcementWarn EnforcementMode = "warn"
)

// ParseEnforcementMode validates a mode string. An empty string defaults
// to reject.
func ParseEnforcementMode(s string) (EnforcementMode, error) {
	switch EnforcementMode(s) {
	case "":
		return EnforcementReject, nil
	case EnforcementReject, EnforcementWarn:
		return EnforcementMode(s), nil
	}
	return "", apperrors.WithMessage(apperrors.ErrInvalidField, "enforcement mode must be reject or warn")
}

// MonthlyLedger accumulates income and expense totals for one month of a
// budget. Totals only ever increase; the sole exception is a whole-budget
// reset, which zeroes expenses through the owning Budget.
type MonthlyLedger struct {
	month        int
	incomeTotal  decimal.Decimal
	expenseTotal decimal.Decimal
}

// NewMonthlyLedger creates a zeroed ledger for the given month (1-12).
func NewMonthlyLedger(month int) *MonthlyLedger {
	return &MonthlyLedger{
		month:        month,
		incomeTotal:  decimal.Zero,
		expenseTotal: decimal.Zero,
	}
}

// Month returns the month this ledger covers (1-12).
func (l *MonthlyLedger) Month() int { return l.month }

// IncomeTotal returns the accumulated income for the month.
func (l *MonthlyLedger) IncomeTotal() decimal.Decimal { return l.incomeTotal }

// ExpenseTotal returns the accumulated expenses for the month.
func (l *MonthlyLedger) ExpenseTotal() decimal.Decimal { return l.expenseTotal }

// AddIncome increases the income total by amount. There is no upper bound.
func (l *MonthlyLedger) AddIncome(amount decimal.Decimal) error {
	if amount.IsNegative() {
		return apperrors.ErrInvalidAmount
	}
	l.incomeTotal = l.incomeTotal.Add(amount)
	return nil
}

// AddExpense increases the expense total by amount, subject to the ceiling.
//
// A positive ceiling is enforced: if the new total would cross it, reject
// mode fails with ErrBudgetExceeded and leaves the ledger unchanged, while
// warn mode applies the expense and reports the crossing to the caller.
// A zero ceiling means no enforcement. The returned bool is true whenever
// the ceiling was crossed, regardless of mode.
func (l *MonthlyLedger) AddExpense(amount, ceiling decimal.Decimal, mode EnforcementMode) (bool, error) {
	if amount.IsNegative() {
		return false, apperrors.ErrInvalidAmount
	}

	newTotal := l.expenseTotal.Add(amount)
	crossed := ceiling.IsPositive() && newTotal.GreaterThan(ceiling)
	if crossed && mode == EnforcementReject {
		return true, apperrors.ErrBudgetExceeded
	}

	l.expenseTotal = newTotal
	return crossed, nil
}

// Balance returns income minus expenses for the month. May be negative.
func (l *MonthlyLedger) Balance() decimal.Decimal {
	return l.incomeTotal.Sub(l.expenseTotal)
}

// resetExpenses zeroes the expense total. Only the owning Budget calls this,
// as part of a whole-budget reset.
func (l *MonthlyLedger) resetExpenses() {
	l.expenseTotal = decimal.Zero
}
