package services

import (
	"context"

	"github.com/shopspring/decimal"

	"finledger/internal/models"
	"finledger/internal/pagination"
)

// BudgetServicer defines the contract for budget-related business logic.
// All mutations are single-session synchronous calls; the service provides
// no locking of its own.
type BudgetServicer interface {
	Create(userID, name string, initialFunding decimal.Decimal) (*models.Budget, error)
	Get(userID string) (*models.Budget, error)
	AddIncome(userID string, month int, category string, amount decimal.Decimal) error
	AddExpense(userID string, month int, category string, amount decimal.Decimal) error
	MonthlySummary(userID string, month int) (*MonthlySummary, error)
	Balance(userID string) (decimal.Decimal, error)
	Reset(userID string, newGoalLimit decimal.Decimal) error
	Save(ctx context.Context, userID string) error
	Load(ctx context.Context, userID string) (*models.Budget, error)
}

// MonthlySummary is the read model for one month of a budget.
type MonthlySummary struct {
	Month    int             `json:"month"`
	Income   decimal.Decimal `json:"income"`
	Expenses decimal.Decimal `json:"expenses"`
	Balance  decimal.Decimal `json:"balance"`
}

// TransactionStorer defines the contract for the per-user transaction
// sequence and its aggregate queries.
type TransactionStorer interface {
	Record(userID string, tx *models.Transaction) error
	TotalsByKind(userID string, kind models.TransactionKind) decimal.Decimal
	TotalsByCategory(userID string) map[string]decimal.Decimal
	Exceeding(userID string, ceiling decimal.Decimal) []*models.Transaction
	Transactions(userID string, page pagination.PageRequest) pagination.PageResponse[*models.Transaction]
	Reset(userID string)
	Snapshot() *models.StoreSnapshot
	Restore(snap *models.StoreSnapshot) error
}

// UserServicer defines the contract for the authentication collaborator.
// The ledger engine consumes nothing from it beyond an opaque user ID.
type UserServicer interface {
	Register(input RegisterInput) (*models.User, error)
	Authenticate(username, password string) (*models.User, string, error)
	GetByUsername(username string) (*models.User, error)
	EnsureDefaultAdmin() error
}

// RegisterInput carries a registration request through validation.
type RegisterInput struct {
	Username   string          `validate:"required,min=3,max=32"`
	Email      string          `validate:"required,email"`
	Password   string          `validate:"required,min=8"`
	BudgetGoal decimal.Decimal `validate:"-"`
	Role       models.UserRole `validate:"omitempty,user_role"`
}
