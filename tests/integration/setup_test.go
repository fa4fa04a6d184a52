package integration

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"finledger/internal/config"
	"finledger/internal/logger"
	"finledger/internal/models"
	"finledger/internal/persistence"
	"finledger/internal/services"
)

// testEngine holds the full engine stack for integration tests.
type testEngine struct {
	DB      *gorm.DB
	Gateway persistence.Gateway
	Users   services.UserServicer
	Budgets services.BudgetServicer
	Store   services.TransactionStorer
	Policy  services.BudgetPolicy
}

// dbCounter ensures each test gets a unique in-memory database.
var dbCounter atomic.Int64

func init() {
	logger.Init("test")
}

// setupIsolatedDB creates an isolated in-memory SQLite database for a single test.
func setupIsolatedDB(t *testing.T) *gorm.DB {
	t.Helper()

	n := dbCounter.Add(1)
	dsn := fmt.Sprintf("file:testdb%d?mode=memory&cache=shared", n)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	allModels := []interface{}{
		&models.User{},
		&persistence.BudgetRecord{},
		&persistence.BudgetMonthRecord{},
		&persistence.TransactionRecord{},
	}
	if err := db.AutoMigrate(allModels...); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

// setupEngine wires the full stack the way the application does: user
// service, budget service, and transaction store over a SQLite-backed
// persistence gateway.
func setupEngine(t *testing.T, mode models.EnforcementMode, goalLimit string) *testEngine {
	t.Helper()

	db := setupIsolatedDB(t)
	gateway := persistence.NewSQLiteGateway(db)

	limit, err := decimal.NewFromString(goalLimit)
	if err != nil {
		t.Fatalf("invalid goal limit %q: %v", goalLimit, err)
	}
	policy := services.BudgetPolicy{GoalLimit: limit, Mode: mode}

	cfg := &config.Config{
		Env:           "test",
		SessionSecret: "integration-secret",
		SessionTTL:    time.Hour,
	}

	return &testEngine{
		DB:      db,
		Gateway: gateway,
		Users:   services.NewUserService(db, cfg),
		Budgets: services.NewBudgetService(gateway, policy),
		Store:   services.NewTransactionStore(),
		Policy:  policy,
	}
}

// registerUser registers a user and returns its ID.
func (e *testEngine) registerUser(t *testing.T, username string) string {
	t.Helper()

	user, err := e.Users.Register(services.RegisterInput{
		Username:   username,
		Email:      fmt.Sprintf("%s@test.com", username),
		Password:   "password123",
		BudgetGoal: decimal.Zero,
	})
	if err != nil {
		t.Fatalf("failed to register %s: %v", username, err)
	}
	return user.ID
}

// mustDec parses a decimal literal.
func mustDec(t *testing.T, s string) decimal.Decimal {
	t.Helper()

	d, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatalf("invalid decimal literal %q: %v", s, err)
	}
	return d
}

// buildTransaction builds a transaction through the validating builder.
func buildTransaction(t *testing.T, kind models.TransactionKind, category, amount string, month int) *models.Transaction {
	t.Helper()

	b := models.NewTransactionBuilder()
	if err := b.Amount(mustDec(t, amount)); err != nil {
		t.Fatalf("failed to set amount: %v", err)
	}
	if err := b.Kind(kind); err != nil {
		t.Fatalf("failed to set kind: %v", err)
	}
	if err := b.Category(category); err != nil {
		t.Fatalf("failed to set category: %v", err)
	}
	if err := b.OccurredOn(time.Date(2025, time.Month(month), 15, 0, 0, 0, 0, time.UTC)); err != nil {
		t.Fatalf("failed to set date: %v", err)
	}
	tx, err := b.Build()
	if err != nil {
		t.Fatalf("failed to build transaction: %v", err)
	}
	return tx
}
