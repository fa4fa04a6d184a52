package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// MonthSnapshot is the persisted form of one monthly ledger.
type MonthSnapshot struct {
	Month        int             `json:"month"`
	IncomeTotal  decimal.Decimal `json:"income_total"`
	ExpenseTotal decimal.Decimal `json:"expense_total"`
}

// BudgetSnapshot is the persisted form of a budget. Round-tripping a budget
// through its snapshot must reproduce it field for field.
type BudgetSnapshot struct {
	ID        string            `json:"id"`
	Name      string            `json:"name"`
	GoalLimit decimal.Decimal   `json:"goal_limit"`
	Mode      EnforcementMode   `json:"mode"`
	Exceeded  bool              `json:"exceeded"`
	Months    [12]MonthSnapshot `json:"months"`
}

// TransactionSnapshot is the persisted form of a transaction.
type TransactionSnapshot struct {
	ID          string          `json:"id"`
	Amount      decimal.Decimal `json:"amount"`
	Kind        TransactionKind `json:"kind"`
	Category    string          `json:"category"`
	Description string          `json:"description"`
	OccurredOn  time.Time       `json:"occurred_on"`
}

// StoreSnapshot is the persisted form of the transaction store: every user's
// ordered transaction sequence.
type StoreSnapshot struct {
	Users map[string][]TransactionSnapshot `json:"users"`
}
