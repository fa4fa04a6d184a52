package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"finledger/internal/models"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// UniqueUserID returns a user identifier unused by any other fixture in this
// test run.
func UniqueUserID() string {
	return fmt.Sprintf("user-%d", nextID())
}

// Dec parses a decimal literal, failing the test on bad input.
func Dec(t *testing.T, s string) decimal.Decimal {
	t.Helper()

	d, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatalf("invalid decimal literal %q: %v", s, err)
	}
	return d
}

// CreateTestUser creates a user row with a hashed password and unique
// username.
func CreateTestUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()

	n := nextID()
	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &models.User{
		Username:     fmt.Sprintf("user%d", n),
		Email:        fmt.Sprintf("user%d@test.com", n),
		PasswordHash: string(hash),
		BudgetGoal:   decimal.Zero,
		Role:         models.RoleRegular,
		IsActive:     true,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateTestBudget creates a budget with the given initial funding and goal
// limit, in reject mode.
func CreateTestBudget(t *testing.T, initialFunding, goalLimit string) *models.Budget {
	t.Helper()

	budget, err := models.NewBudget(
		fmt.Sprintf("budget-%d", nextID()),
		fmt.Sprintf("Test Budget %d", nextID()),
		Dec(t, initialFunding),
		Dec(t, goalLimit),
		models.EnforcementReject,
	)
	if err != nil {
		t.Fatalf("failed to create test budget: %v", err)
	}
	return budget
}

// BuildTestTransaction builds a transaction of the given kind, category, and
// amount dated today.
func BuildTestTransaction(t *testing.T, kind models.TransactionKind, category, amount string) *models.Transaction {
	t.Helper()

	b := models.NewTransactionBuilder()
	if err := b.Amount(Dec(t, amount)); err != nil {
		t.Fatalf("failed to set amount: %v", err)
	}
	if err := b.Kind(kind); err != nil {
		t.Fatalf("failed to set kind: %v", err)
	}
	if err := b.Category(category); err != nil {
		t.Fatalf("failed to set category: %v", err)
	}
	if err := b.OccurredOn(time.Now()); err != nil {
		t.Fatalf("failed to set date: %v", err)
	}
	tx, err := b.Build()
	if err != nil {
		t.Fatalf("failed to build test transaction: %v", err)
	}
	return tx
}
